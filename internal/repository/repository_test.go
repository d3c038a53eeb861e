package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cuplet/cuplet-go/internal/storage"
)

func newTestEngine(t *testing.T) *storage.Engine {
	t.Helper()
	e, err := storage.Open(context.Background(), storage.NewFileMedium(filepath.Join(t.TempDir(), "data.json")))
	require.NoError(t, err)
	return e
}
