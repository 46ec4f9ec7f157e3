package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nvandessel/chromaroot/internal/palette"
	"gopkg.in/yaml.v3"
)

// PaletteFileVersion is the current palette file format version.
const PaletteFileVersion = 1

// PaletteFile is the YAML document written by ExportYAML.
type PaletteFile struct {
	Version    int              `yaml:"version"`
	ExportedAt time.Time        `yaml:"exported_at"`
	Swatches   []palette.Swatch `yaml:"swatches"`
}

// ExportYAML writes every swatch in s to w.
func ExportYAML(ctx context.Context, s PaletteStore, w io.Writer) (int, error) {
	swatches, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := EncodeYAML(w, swatches); err != nil {
		return 0, err
	}
	return len(swatches), nil
}

// EncodeYAML writes swatches to w as a palette file.
func EncodeYAML(w io.Writer, swatches []palette.Swatch) error {
	doc := PaletteFile{
		Version:    PaletteFileVersion,
		ExportedAt: time.Now().UTC().Truncate(time.Second),
		Swatches:   swatches,
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode palette: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush palette: %w", err)
	}
	return nil
}

// DecodeYAML reads a palette file from r. Colors are recomputed from each
// seed; the cmyk and css fields in the file are ignored. An empty input
// yields no swatches.
func DecodeYAML(r io.Reader) ([]palette.Swatch, error) {
	var doc PaletteFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode palette: %w", err)
	}

	if doc.Version != PaletteFileVersion {
		return nil, fmt.Errorf("unsupported palette file version %d (want %d)", doc.Version, PaletteFileVersion)
	}

	swatches := make([]palette.Swatch, 0, len(doc.Swatches))
	for i, entry := range doc.Swatches {
		sw, err := palette.Derive(entry.Name, entry.Seed)
		if err != nil {
			return nil, fmt.Errorf("swatch %d: %w", i, err)
		}
		swatches = append(swatches, sw)
	}
	return swatches, nil
}

// ImportYAML reads a palette file from r into s and returns the number of
// swatches imported. Existing swatches with the same name are replaced.
func ImportYAML(ctx context.Context, s PaletteStore, r io.Reader) (int, error) {
	swatches, err := DecodeYAML(r)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, sw := range swatches {
		if err := s.Put(ctx, sw); err != nil {
			return imported, fmt.Errorf("swatch %q: %w", sw.Name, err)
		}
		imported++
	}
	return imported, nil
}
