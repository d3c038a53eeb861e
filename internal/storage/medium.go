package storage

import "context"

// Medium loads and saves a whole Document. Save must be atomic: a later Load
// observes either the previous document or the new one, never a mix.
//
// Only Engine calls a Medium.
type Medium interface {
	// Load returns the stored document, or an empty one if nothing has ever
	// been saved.
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}
