package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nvandessel/chromaroot/internal/palette"
)

var retentionNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// snapshotsAged builds newest-first snapshot infos named a, b, c... with the
// given ages relative to retentionNow.
func snapshotsAged(ages ...time.Duration) []BackupInfo {
	infos := make([]BackupInfo, len(ages))
	for i, age := range ages {
		infos[i] = BackupInfo{
			Path:      string(rune('a' + i)),
			CreatedAt: retentionNow.Add(-age),
		}
	}
	return infos
}

func keptPaths(infos []BackupInfo) []string {
	var paths []string
	for _, b := range infos {
		paths = append(paths, b.Path)
	}
	return paths
}

func TestRetentionPolicies(t *testing.T) {
	aged := snapshotsAged(time.Hour, 48*time.Hour, 30*24*time.Hour)

	withDigests := snapshotsAged(time.Hour, 2*time.Hour, 3*time.Hour, 4*time.Hour, 5*time.Hour)
	for i, digest := range []string{"sha256:x", "sha256:x", "sha256:y", "", "sha256:y"} {
		withDigests[i].Digest = digest
	}

	tests := []struct {
		name      string
		policy    RetentionPolicy
		snapshots []BackupInfo
		want      []string
	}{
		{"latest under limit", LatestPolicy{Count: 5}, aged, []string{"a", "b", "c"}},
		{"latest at limit", LatestPolicy{Count: 3}, aged, []string{"a", "b", "c"}},
		{"latest trims oldest", LatestPolicy{Count: 2}, aged, []string{"a", "b"}},
		{"latest zero keeps nothing", LatestPolicy{Count: 0}, aged, nil},
		{"max age", MaxAgePolicy{MaxAge: 72 * time.Hour}, aged, []string{"a", "b"}},
		{
			"any is a union",
			AnyPolicy{LatestPolicy{Count: 1}, MaxAgePolicy{MaxAge: 72 * time.Hour}},
			aged,
			[]string{"a", "b"},
		},
		{"distinct keeps newest of each palette", DistinctPolicy{}, withDigests, []string{"a", "c", "d"}},
		{"distinct then latest", DistinctPolicy{Then: LatestPolicy{Count: 2}}, withDigests, []string{"a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keptPaths(tt.policy.Keep(tt.snapshots, retentionNow))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Keep() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyRetention(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := seededStore(t, "amber")

	var paths []string
	for i := 0; i < 4; i++ {
		path := GenerateBackupPath(dir)
		if _, err := Backup(ctx, s, path); err != nil {
			t.Fatalf("Backup() error = %v", err)
		}
		paths = append(paths, path)
		time.Sleep(2 * time.Millisecond)
	}

	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	listed, err := ListBackups(dir)
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(listed) != 4 {
		t.Fatalf("ListBackups() = %d entries, want 4", len(listed))
	}
	if listed[0].Path != paths[3] {
		t.Errorf("newest = %q, want %q", listed[0].Path, paths[3])
	}
	if listed[0].SwatchCount != 1 {
		t.Errorf("SwatchCount = %d, want 1", listed[0].SwatchCount)
	}

	removed, err := ApplyRetention(dir, LatestPolicy{Count: 2})
	if err != nil {
		t.Fatalf("ApplyRetention() error = %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("removed %d, want 2", len(removed))
	}
	for _, p := range paths[:2] {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed", p)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Errorf("unrelated file removed: %v", err)
	}
}

func TestApplyRetention_DistinctPalettes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := seededStore(t, "amber")

	snapshot := func() string {
		t.Helper()
		path := GenerateBackupPath(dir)
		if _, err := Backup(ctx, s, path); err != nil {
			t.Fatalf("Backup() error = %v", err)
		}
		time.Sleep(2 * time.Millisecond)
		return path
	}

	first := snapshot()
	unchanged := snapshot()

	lime, _ := palette.Derive("lime", palette.DigitSeed(3, 0))
	if err := s.Put(ctx, lime); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	changed := snapshot()

	removed, err := ApplyRetention(dir, DistinctPolicy{})
	if err != nil {
		t.Fatalf("ApplyRetention() error = %v", err)
	}
	if diff := cmp.Diff([]string{first}, removed); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	for _, p := range []string{unchanged, changed} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to be kept: %v", p, err)
		}
	}
}

func TestListBackups_MissingDir(t *testing.T) {
	got, err := ListBackups(filepath.Join(t.TempDir(), "absent"))
	if err != nil || got != nil {
		t.Errorf("ListBackups(absent) = %v, %v; want nil, nil", got, err)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"720h", 720 * time.Hour, false},
		{"30d", 30 * 24 * time.Hour, false},
		{"2w", 14 * 24 * time.Hour, false},
		{"0d", 0, false},
		{"", 0, true},
		{"d", 0, true},
		{"5y", 0, true},
		{"xd", 0, true},
		{"-3d", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
