package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempSuffix is appended to a document name to form its staging file
	// during a batch commit. Staging files are siblings of their final
	// documents so the rename stays on one filesystem.
	TempSuffix = ".tmp"

	// tempFilePrefix is used for the throwaway files behind single
	// conditional writes.
	tempFilePrefix = "schedsync-tmp-"
)

// writeFileAtomic stages data in a throwaway sibling file and renames it onto
// path, so concurrent readers of the shared folder only ever observe complete
// documents. Leftover staging files are removed on any failure; a cleanup
// that itself fails is logged and otherwise ignored, since List and Watch
// filter staging files out anyway.
func (s *Store) writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}
	name := tmp.Name()
	defer func() {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			s.config.Logger.Debug("failed to remove staging file", "path", name, "error", err)
		}
	}()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}

	if err := os.Chmod(name, perm); err != nil {
		return fmt.Errorf("failed to chmod staging file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// stagePath returns the staging sibling for a document path.
func stagePath(path string) string {
	return path + TempSuffix
}
