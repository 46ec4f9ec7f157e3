// Package store defines the PaletteStore interface for the keyed swatch
// catalog and its in-memory and SQLite implementations.
package store

import (
	"context"

	"github.com/nvandessel/chromaroot/internal/palette"
)

// PaletteStore is an owned, keyed catalog of swatches.
// Names are unique; Put replaces an existing swatch of the same name.
type PaletteStore interface {
	// Put validates sw against its seed and stores it.
	Put(ctx context.Context, sw palette.Swatch) error

	// Get returns the swatch with the given name, or nil if absent.
	Get(ctx context.Context, name string) (*palette.Swatch, error)

	// List returns every swatch ordered by name.
	List(ctx context.Context) ([]palette.Swatch, error)

	// Delete removes a swatch. Deleting an absent name is not an error.
	Delete(ctx context.Context, name string) error

	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the store for backend rooted at projectRoot.
func Open(backend, projectRoot string) (PaletteStore, error) {
	switch backend {
	case BackendMemory:
		return NewInMemoryPaletteStore(), nil
	case BackendSQLite, "":
		return NewSQLitePaletteStore(projectRoot)
	default:
		return nil, &UnknownBackendError{Backend: backend}
	}
}

// UnknownBackendError reports an unsupported store backend.
type UnknownBackendError struct {
	Backend string
}

func (e *UnknownBackendError) Error() string {
	return "unknown store backend: " + e.Backend
}
