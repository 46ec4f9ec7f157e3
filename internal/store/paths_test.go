package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalDataPath(t *testing.T) {
	got := LocalDataPath("/projects/demo")
	want := filepath.Join("/projects/demo", ".chromaroot")
	if got != want {
		t.Errorf("LocalDataPath() = %q, want %q", got, want)
	}
}

func TestGlobalDataPath(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv("USERPROFILE", tmpHome)

	got, err := GlobalDataPath()
	if err != nil {
		t.Fatalf("GlobalDataPath() error = %v", err)
	}
	if want := filepath.Join(tmpHome, ".chromaroot"); got != want {
		t.Errorf("GlobalDataPath() = %q, want %q", got, want)
	}
}

func TestEnsureDataDir(t *testing.T) {
	root := t.TempDir()

	dir, err := EnsureDataDir(root)
	if err != nil {
		t.Fatalf("EnsureDataDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}

	// Second call is a no-op
	if _, err := EnsureDataDir(root); err != nil {
		t.Errorf("EnsureDataDir() second call error = %v", err)
	}
}
