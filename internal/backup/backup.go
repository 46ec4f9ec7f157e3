// Package backup provides snapshot and restore of the palette catalog.
package backup

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nvandessel/chromaroot/internal/store"
)

// DefaultBackupDir returns the project backup directory (<root>/.chromaroot/backups/).
func DefaultBackupDir(projectRoot string) string {
	return filepath.Join(store.LocalDataPath(projectRoot), "backups")
}

// GenerateBackupPath creates a timestamped backup filename in the given directory.
func GenerateBackupPath(dir string) string {
	ts := time.Now().UTC().Format("20060102-150405.000000")
	return filepath.Join(dir, fmt.Sprintf("%s%s%s", filePrefix, ts, fileExt))
}

// Backup writes every swatch in s to a snapshot file at outputPath.
func Backup(ctx context.Context, s store.PaletteStore, outputPath string) (*Header, error) {
	return writeSnapshot(ctx, s, outputPath)
}

// RestoreMode controls how restore handles existing swatches.
type RestoreMode string

const (
	// RestoreMerge skips swatches whose name already exists (default).
	RestoreMerge RestoreMode = "merge"
	// RestoreReplace overwrites existing swatches and then removes those
	// not in the snapshot.
	RestoreReplace RestoreMode = "replace"
)

// ParseRestoreMode validates a mode name. Empty means merge.
func ParseRestoreMode(s string) (RestoreMode, error) {
	switch RestoreMode(s) {
	case "", RestoreMerge:
		return RestoreMerge, nil
	case RestoreReplace:
		return RestoreReplace, nil
	default:
		return "", fmt.Errorf("unknown restore mode %q (valid: merge, replace)", s)
	}
}

// RestoreResult contains statistics about the restore operation.
type RestoreResult struct {
	Restored int `json:"restored"`
	Skipped  int `json:"skipped"`
	Removed  int `json:"removed"`
}

// Restore loads a snapshot file into s. The checksum is verified and every
// swatch is re-derived from its seed before the catalog is touched.
func Restore(ctx context.Context, s store.PaletteStore, inputPath string, mode RestoreMode) (*RestoreResult, error) {
	swatches, err := readSnapshot(inputPath)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{}
	restored := make(map[string]bool, len(swatches))

	for _, sw := range swatches {
		restored[sw.Name] = true

		if mode == RestoreMerge {
			existing, err := s.Get(ctx, sw.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to check existing swatch %s: %w", sw.Name, err)
			}
			if existing != nil {
				result.Skipped++
				continue
			}
		}

		if err := s.Put(ctx, sw); err != nil {
			return nil, fmt.Errorf("failed to restore swatch %s: %w", sw.Name, err)
		}
		result.Restored++
	}

	if mode != RestoreReplace {
		return result, nil
	}

	// Removal runs only after every snapshot swatch is written.
	existing, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing swatches: %w", err)
	}
	for _, sw := range existing {
		if restored[sw.Name] {
			continue
		}
		if err := s.Delete(ctx, sw.Name); err != nil {
			return nil, fmt.Errorf("failed to remove swatch %s: %w", sw.Name, err)
		}
		result.Removed++
	}

	return result, nil
}
