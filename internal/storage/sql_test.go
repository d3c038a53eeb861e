package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuplet/cuplet-go/internal/model"
)

func newTestSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDB_UnsupportedDialect(t *testing.T) {
	_, err := NewDB(context.Background(), Dialect("postgres"), "dsn")
	assert.Error(t, err)
}

func TestSQLMedium_LoadEmpty(t *testing.T) {
	ctx := context.Background()
	m, err := NewSQLMedium(ctx, newTestSQLite(t), DialectSQLite, "")
	require.NoError(t, err)

	doc, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, NewDocument(), doc)
}

func TestSQLMedium_SaveReplacesRow(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLite(t)
	m, err := NewSQLMedium(ctx, db, DialectSQLite, "test")
	require.NoError(t, err)

	first := sampleDocument()
	require.NoError(t, m.Save(ctx, first))

	second := sampleDocument()
	second.Coupons[0].Status = model.StatusUsed
	require.NoError(t, m.Save(ctx, second))

	got, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSQLMedium_DocumentsAreIsolatedByName(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLite(t)

	a, err := NewSQLMedium(ctx, db, DialectSQLite, "a")
	require.NoError(t, err)
	b, err := NewSQLMedium(ctx, db, DialectSQLite, "b")
	require.NoError(t, err)

	require.NoError(t, a.Save(ctx, sampleDocument()))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Users)
}

func TestSQLMedium_ClosedDB(t *testing.T) {
	ctx := context.Background()
	db := newTestSQLite(t)
	m, err := NewSQLMedium(ctx, db, DialectSQLite, "")
	require.NoError(t, err)
	db.Close()

	_, err = m.Load(ctx)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, m.Save(ctx, NewDocument()), ErrStorageUnavailable)
}
