package storage

import (
	"context"
	"sync"
)

// Engine owns the authoritative in-memory copy of the document and is the
// only path to the Medium. Every Update holds the write lock for its whole
// clone-mutate-save cycle, so two cycles never interleave.
type Engine struct {
	mu     sync.RWMutex
	medium Medium
	doc    *Document
}

// Open loads the current document from medium.
func Open(ctx context.Context, medium Medium) (*Engine, error) {
	doc, err := medium.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{medium: medium, doc: doc}, nil
}

// View runs fn against the current document under the read lock. fn must not
// modify the document or retain references into it.
func (e *Engine) View(fn func(doc *Document) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.doc)
}

// Update runs fn on a copy of the document and persists the copy if fn
// succeeds. If fn or the save fails, the previous document stays current and
// the error is returned unchanged.
//
// Cancelling ctx does not interrupt a cycle that has started.
func (e *Engine) Update(ctx context.Context, fn func(doc *Document) error) error {
	ctx = context.WithoutCancel(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := e.medium.Save(ctx, next); err != nil {
		return err
	}

	e.doc = next
	return nil
}
