package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DefaultDocumentName is the row key the application state is stored under.
const DefaultDocumentName = "cuplet"

var createTableQueries = map[Dialect]string{
	DialectMySQL: `CREATE TABLE IF NOT EXISTS documents (
		name       VARCHAR(64) NOT NULL PRIMARY KEY,
		body       LONGTEXT    NOT NULL,
		updated_at TIMESTAMP   NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	DialectSQLite: `CREATE TABLE IF NOT EXISTS documents (
		name       TEXT NOT NULL PRIMARY KEY,
		body       TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

var upsertQueries = map[Dialect]string{
	DialectMySQL: `INSERT INTO documents (name, body) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE body = VALUES(body)`,
	DialectSQLite: `INSERT INTO documents (name, body) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
}

// SQLMedium keeps the document as a single row of the documents table.
// Replacing the row is one statement, which makes Save atomic.
type SQLMedium struct {
	db      *sql.DB
	dialect Dialect
	name    string
}

// NewSQLMedium creates the documents table if it is missing and returns a
// medium that reads and writes the row called name.
func NewSQLMedium(ctx context.Context, db *sql.DB, dialect Dialect, name string) (*SQLMedium, error) {
	create, ok := createTableQueries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}
	if name == "" {
		name = DefaultDocumentName
	}

	if _, err := db.ExecContext(ctx, create); err != nil {
		return nil, unavailable("create documents table", err)
	}

	return &SQLMedium{db: db, dialect: dialect, name: name}, nil
}

// Load reads the document row. A missing row is an empty store.
func (m *SQLMedium) Load(ctx context.Context) (*Document, error) {
	var body string
	err := m.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, m.name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NewDocument(), nil
		}
		return nil, unavailable("select document", err)
	}

	return decodeDocument([]byte(body))
}

// Save replaces the document row.
func (m *SQLMedium) Save(ctx context.Context, doc *Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	if _, err := m.db.ExecContext(ctx, upsertQueries[m.dialect], m.name, string(data)); err != nil {
		return unavailable("upsert document", err)
	}

	return nil
}
