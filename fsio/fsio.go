// Package fsio provides the crash-safe write primitive used by save files
// and autosaves: write to a temp sibling, fsync, then rename over the
// destination. No third-party library in the reference corpus wraps this
// pattern (it is two syscalls), so it is implemented directly against
// os/io as the corpus itself does for plain file handling.
package fsio

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path by first writing to a temporary file
// in the same directory, then renaming it into place. This avoids leaving a
// truncated file behind if the process is killed mid-write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("fsio: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("fsio: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("fsio: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fsio: close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("fsio: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("fsio: rename temp file: %w", err)
	}
	cleanup = false
	return nil
}

// FindReadable searches path and then each of roots, in order, returning the
// first path that exists and is readable. This lets the CLI tolerate being
// launched from a build subdirectory while content/tech paths are given
// relative to the source root.
func FindReadable(path string, roots ...string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	for _, root := range roots {
		candidate := filepath.Join(root, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("fsio: %s not found in working directory or ancestor roots", path)
}

// DefaultAncestorRoots returns a small set of ancestor directories of the
// current working directory, used as a fallback search path by FindReadable.
func DefaultAncestorRoots() []string {
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	var roots []string
	dir := wd
	for i := 0; i < 4; i++ {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		roots = append(roots, parent)
		dir = parent
	}
	return roots
}
