package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// PlaceBinary moves the extracted binary into the installation directory.
// The move is a rename; the extraction directory and the installation
// directory are expected to live on the same filesystem.
func PlaceBinary(extractDir string, binName string, installDir string) error {
	src := filepath.Join(extractDir, binName)
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s not found in %s", ErrBinaryMissingFromArchive, binName, extractDir)
		}
		return err
	}

	dst := filepath.Join(installDir, binName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move binary: %w", err)
	}

	return nil
}

// RemoveBinary deletes the previously placed binary. Deletion is
// best-effort: a binary that is already gone is not an error, uninstall
// stays idempotent.
func RemoveBinary(installDir string, binName string) {
	_ = os.Remove(filepath.Join(installDir, binName))
}
