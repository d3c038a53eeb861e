package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileMedium keeps the document as a JSON file on local disk.
type FileMedium struct {
	path string
}

// NewFileMedium creates a FileMedium backed by the file at path. The file
// does not need to exist yet.
func NewFileMedium(path string) *FileMedium {
	return &FileMedium{path: path}
}

// Path returns the data file location.
func (m *FileMedium) Path() string {
	return m.path
}

// Load reads and decodes the data file. A missing file is an empty store.
func (m *FileMedium) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("load", err)
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDocument(), nil
		}
		return nil, unavailable("read data file", err)
	}

	return decodeDocument(data)
}

// Save writes the document to a temporary file next to the target and
// renames it into place, so readers never see a partially written file.
func (m *FileMedium) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return unavailable("save", err)
	}

	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return unavailable("create data dir", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(m.path)+".tmp-*")
	if err != nil {
		return unavailable("create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return unavailable("write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return unavailable("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return unavailable("close temp file", err)
	}

	if err := os.Rename(tmpName, m.path); err != nil {
		return unavailable("replace data file", err)
	}

	return nil
}
