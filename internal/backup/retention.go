package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BackupInfo describes one snapshot on disk, taken from its header.
type BackupInfo struct {
	Path        string    `json:"path"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	SwatchCount int       `json:"swatch_count"`
	Digest      string    `json:"digest,omitempty"`
}

// RetentionPolicy selects the snapshots to keep. Input is ordered newest
// first and the result keeps that order.
type RetentionPolicy interface {
	Keep(snapshots []BackupInfo, now time.Time) []BackupInfo
}

// LatestPolicy keeps the Count newest snapshots.
type LatestPolicy struct {
	Count int
}

func (p LatestPolicy) Keep(snapshots []BackupInfo, _ time.Time) []BackupInfo {
	if p.Count <= 0 {
		return nil
	}
	return snapshots[:min(p.Count, len(snapshots))]
}

// MaxAgePolicy keeps snapshots whose header timestamp is within MaxAge of now.
type MaxAgePolicy struct {
	MaxAge time.Duration
}

func (p MaxAgePolicy) Keep(snapshots []BackupInfo, now time.Time) []BackupInfo {
	cutoff := now.Add(-p.MaxAge)
	return filter(snapshots, func(b BackupInfo) bool {
		return b.CreatedAt.After(cutoff)
	})
}

// AnyPolicy keeps a snapshot when at least one of its policies does.
type AnyPolicy []RetentionPolicy

func (p AnyPolicy) Keep(snapshots []BackupInfo, now time.Time) []BackupInfo {
	kept := make(map[string]bool)
	for _, policy := range p {
		for _, b := range policy.Keep(snapshots, now) {
			kept[b.Path] = true
		}
	}
	return filter(snapshots, func(b BackupInfo) bool {
		return kept[b.Path]
	})
}

// DistinctPolicy drops a snapshot when a newer one has the same palette
// digest, then hands the survivors to Then. A nil Then keeps them all.
// Snapshots without a digest are never treated as duplicates.
type DistinctPolicy struct {
	Then RetentionPolicy
}

func (p DistinctPolicy) Keep(snapshots []BackupInfo, now time.Time) []BackupInfo {
	seen := make(map[string]bool)
	distinct := filter(snapshots, func(b BackupInfo) bool {
		if b.Digest == "" {
			return true
		}
		if seen[b.Digest] {
			return false
		}
		seen[b.Digest] = true
		return true
	})
	if p.Then == nil {
		return distinct
	}
	return p.Then.Keep(distinct, now)
}

func filter(snapshots []BackupInfo, keep func(BackupInfo) bool) []BackupInfo {
	var out []BackupInfo
	for _, b := range snapshots {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// ListBackups reads the header of every snapshot in dir and returns them
// newest first by header timestamp. Unreadable files are skipped.
func ListBackups(dir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var snapshots []BackupInfo
	for _, e := range entries {
		if e.IsDir() || !isBackupFile(e.Name()) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(dir, e.Name())
		header, err := ReadHeader(path)
		if err != nil {
			continue
		}

		snapshots = append(snapshots, BackupInfo{
			Path:        path,
			Size:        info.Size(),
			CreatedAt:   header.CreatedAt,
			SwatchCount: header.SwatchCount,
			Digest:      header.Digest,
		})
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		if !snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
		}
		return snapshots[i].Path > snapshots[j].Path
	})

	return snapshots, nil
}

func isBackupFile(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileExt)
}

// ApplyRetention removes the snapshots in dir that policy does not keep and
// returns their paths.
func ApplyRetention(dir string, policy RetentionPolicy) ([]string, error) {
	snapshots, err := ListBackups(dir)
	if err != nil {
		return nil, err
	}

	kept := make(map[string]bool)
	for _, b := range policy.Keep(snapshots, time.Now()) {
		kept[b.Path] = true
	}

	var removed []string
	for _, b := range snapshots {
		if kept[b.Path] {
			continue
		}
		if err := os.Remove(b.Path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", filepath.Base(b.Path), err)
		}
		removed = append(removed, b.Path)
	}
	return removed, nil
}

var durationUnits = map[string]time.Duration{
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// ParseDuration accepts Go durations ("720h") plus whole days ("30d") and
// weeks ("2w").
func ParseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	for suffix, unit := range durationUnits {
		digits, ok := strings.CutSuffix(s, suffix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * unit, nil
	}
	return 0, fmt.Errorf("invalid duration %q (use e.g. 720h, 30d or 2w)", s)
}
