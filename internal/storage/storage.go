// Package storage keeps uploaded complaint images.  Images are addressed by
// their stored name only; the database never holds a path.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrExists is returned by Save when name is already taken.
var ErrExists = errors.New("storage: object already exists")

// ErrNotExist is returned by Open when no object has the given name.
var ErrNotExist = errors.New("storage: object does not exist")

// Store is the set of operations the complaint workflow needs from an image
// backend.
type Store interface {
	// Save writes r under name.  It never overwrites an existing object.
	Save(ctx context.Context, name string, r io.Reader) error
	// Open returns a reader for the object called name.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes the object called name.  Deleting a missing object is
	// not an error.
	Delete(ctx context.Context, name string) error
}
