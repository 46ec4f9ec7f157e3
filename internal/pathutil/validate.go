// Package pathutil confines user-supplied snapshot paths to the backup directories.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvandessel/chromaroot/internal/constants"
)

// RedactPath shortens a path to .../<parent>/<base> for error messages.
func RedactPath(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	parent := filepath.Base(filepath.Dir(cleaned))
	if parent == "." || parent == string(filepath.Separator) {
		return filepath.Base(cleaned)
	}
	return ".../" + parent + "/" + filepath.Base(cleaned)
}

// ValidatePath reports an error unless path resolves, after symlinks, to a
// location inside one of allowedDirs. The file itself need not exist.
func ValidatePath(path string, allowedDirs []string) error {
	switch {
	case path == "":
		return fmt.Errorf("path validation failed: path is empty")
	case len(allowedDirs) == 0:
		return fmt.Errorf("path validation failed: no allowed directories configured")
	case strings.ContainsRune(path, 0):
		return fmt.Errorf("path validation failed: path contains null byte")
	}

	resolved, err := resolve(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}

	for _, dir := range allowedDirs {
		base, err := resolve(dir)
		if err != nil {
			continue
		}
		if within(resolved, base) {
			return nil
		}
	}

	return fmt.Errorf("path validation failed: %q is outside allowed directories", RedactPath(resolved))
}

// resolve makes path absolute and resolves symlinks in its deepest existing
// ancestor, re-appending the parts that do not exist yet.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("cannot resolve absolute path: %w", err)
	}

	var missing []string
	current := abs
	for {
		found, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				found = filepath.Join(found, missing[i])
			}
			return found, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("cannot resolve path: %s", RedactPath(abs))
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// within reports whether path equals base or lies beneath it.
func within(path, base string) bool {
	if path == base {
		return true
	}
	return strings.HasPrefix(path, base+string(os.PathSeparator))
}

// AllowedBackupDirs returns ~/.chromaroot/backups and, when projectRoot is
// non-empty, <projectRoot>/.chromaroot/backups.
func AllowedBackupDirs(projectRoot string) ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dirs := []string{filepath.Join(homeDir, constants.DataDirName, "backups")}
	if projectRoot != "" {
		dirs = append(dirs, filepath.Join(projectRoot, constants.DataDirName, "backups"))
	}
	return dirs, nil
}
