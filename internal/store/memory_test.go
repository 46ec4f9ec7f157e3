package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nvandessel/chromaroot/internal/chroma"
	"github.com/nvandessel/chromaroot/internal/palette"
)

func mustDerive(t *testing.T, name string, seed palette.Seed) palette.Swatch {
	t.Helper()
	sw, err := palette.Derive(name, seed)
	if err != nil {
		t.Fatalf("Derive(%q) error = %v", name, err)
	}
	return sw
}

// exercisePaletteStore runs the behavior every PaletteStore must share.
func exercisePaletteStore(t *testing.T, s PaletteStore) {
	t.Helper()
	ctx := context.Background()

	violet := mustDerive(t, "violet", palette.FractionSeed(chroma.Fraction{Numerator: 7, Denominator: 4}, chroma.DefaultRotation()))
	cyan := mustDerive(t, "cyan", palette.DigitSeed(5, 0))

	if got, err := s.Get(ctx, "violet"); err != nil || got != nil {
		t.Fatalf("Get(missing) = %v, %v; want nil, nil", got, err)
	}

	for _, sw := range []palette.Swatch{violet, cyan} {
		if err := s.Put(ctx, sw); err != nil {
			t.Fatalf("Put(%q) error = %v", sw.Name, err)
		}
	}

	got, err := s.Get(ctx, "violet")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() returned nil for stored swatch")
	}
	if diff := cmp.Diff(violet, *got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]palette.Swatch{cyan, violet}, list); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	// Replace by name
	rotated := mustDerive(t, "violet", palette.FractionSeed(chroma.Fraction{Numerator: 7, Denominator: 4}, chroma.Rotation{Step: 1, BaseAngle: 60}))
	if err := s.Put(ctx, rotated); err != nil {
		t.Fatalf("Put(replace) error = %v", err)
	}
	got, _ = s.Get(ctx, "violet")
	if got == nil || got.CMYK != rotated.CMYK {
		t.Errorf("Get() after replace = %+v, want CMYK %+v", got, rotated.CMYK)
	}

	// Tampered swatches are rejected
	bad := cyan
	bad.Name = "bad"
	bad.CMYK = chroma.Black
	if err := s.Put(ctx, bad); !errors.Is(err, chroma.ErrInvalidInput) {
		t.Errorf("Put(tampered) error = %v, want ErrInvalidInput", err)
	}

	if err := s.Delete(ctx, "cyan"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "cyan"); err != nil {
		t.Fatalf("Delete(absent) error = %v", err)
	}
	list, _ = s.List(ctx)
	if len(list) != 1 || list[0].Name != "violet" {
		t.Errorf("List() after delete = %+v, want only violet", list)
	}
}

func TestInMemoryPaletteStore(t *testing.T) {
	s := NewInMemoryPaletteStore()
	defer s.Close()
	exercisePaletteStore(t, s)
}

func TestInMemoryPaletteStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryPaletteStore()

	sw := mustDerive(t, "v", palette.FractionSeed(chroma.Fraction{Numerator: 7, Denominator: 4}, chroma.DefaultRotation()))
	if err := s.Put(ctx, sw); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, _ := s.Get(ctx, "v")
	got.Seed.Fraction.Numerator = 1

	again, _ := s.Get(ctx, "v")
	if again.Seed.Fraction.Numerator != 7 {
		t.Errorf("stored numerator = %d, want 7", again.Seed.Fraction.Numerator)
	}
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()

	mem, err := Open(BackendMemory, tmpDir)
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	if _, ok := mem.(*InMemoryPaletteStore); !ok {
		t.Errorf("Open(memory) = %T, want *InMemoryPaletteStore", mem)
	}

	sq, err := Open(BackendSQLite, tmpDir)
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	defer sq.Close()
	if _, ok := sq.(*SQLitePaletteStore); !ok {
		t.Errorf("Open(sqlite) = %T, want *SQLitePaletteStore", sq)
	}

	_, err = Open("redis", tmpDir)
	var unknown *UnknownBackendError
	if !errors.As(err, &unknown) || unknown.Backend != "redis" {
		t.Errorf("Open(redis) error = %v, want UnknownBackendError", err)
	}
}
