package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvandessel/chromaroot/internal/constants"
)

// GlobalDataPath returns the path to the per-user data directory.
// On Unix: ~/.chromaroot
// On Windows: %USERPROFILE%\.chromaroot
func GlobalDataPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, constants.DataDirName), nil
}

// LocalDataPath returns the data directory for the given project root.
func LocalDataPath(projectRoot string) string {
	return filepath.Join(projectRoot, constants.DataDirName)
}

// EnsureDataDir creates the data directory under projectRoot if needed
// and returns its path.
func EnsureDataDir(projectRoot string) (string, error) {
	dir := LocalDataPath(projectRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", constants.DataDirName, err)
	}
	return dir, nil
}
