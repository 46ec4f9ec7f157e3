package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nvandessel/chromaroot/internal/palette"
)

// InMemoryPaletteStore implements PaletteStore for testing and for servers
// started without a project directory.
type InMemoryPaletteStore struct {
	mu       sync.RWMutex
	swatches map[string]palette.Swatch
}

// NewInMemoryPaletteStore creates an empty in-memory store.
func NewInMemoryPaletteStore() *InMemoryPaletteStore {
	return &InMemoryPaletteStore{
		swatches: make(map[string]palette.Swatch),
	}
}

// Put stores sw after checking it against its seed.
func (s *InMemoryPaletteStore) Put(ctx context.Context, sw palette.Swatch) error {
	if err := sw.Validate(); err != nil {
		return fmt.Errorf("put swatch: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.swatches[sw.Name] = cloneSwatch(sw)
	return nil
}

// Get retrieves a swatch by name. Returns nil if not found.
func (s *InMemoryPaletteStore) Get(ctx context.Context, name string) (*palette.Swatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sw, ok := s.swatches[name]
	if !ok {
		return nil, nil
	}
	out := cloneSwatch(sw)
	return &out, nil
}

// List returns all swatches sorted by name.
func (s *InMemoryPaletteStore) List(ctx context.Context) ([]palette.Swatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]palette.Swatch, 0, len(s.swatches))
	for _, sw := range s.swatches {
		out = append(out, cloneSwatch(sw))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a swatch by name.
func (s *InMemoryPaletteStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.swatches, name)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryPaletteStore) Close() error {
	return nil
}

// cloneSwatch copies the seed's pointer fields so callers cannot mutate
// stored values.
func cloneSwatch(sw palette.Swatch) palette.Swatch {
	if sw.Seed.Fraction != nil {
		f := *sw.Seed.Fraction
		sw.Seed.Fraction = &f
	}
	if sw.Seed.Rotation != nil {
		r := *sw.Seed.Rotation
		sw.Seed.Rotation = &r
	}
	return sw
}
