package assetstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Delete when the reference does not resolve to
// stored content.
var ErrNotFound = errors.New("asset not found")

// Store persists uploaded binary content under a collision-resistant name and
// returns a URL-shaped retrieval reference. Delete resolves such a reference
// back to the stored content and removes it.
type Store interface {
	Save(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
}
