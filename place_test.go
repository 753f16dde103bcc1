package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPlaceBinary(t *testing.T) {
	extractDir := t.TempDir()
	installDir := t.TempDir()

	src := filepath.Join(extractDir, "mytool")
	if err := os.WriteFile(src, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write source binary: %v", err)
	}

	if err := PlaceBinary(extractDir, "mytool", installDir); err != nil {
		t.Fatalf("PlaceBinary() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(installDir, "mytool")); err != nil {
		t.Errorf("binary not placed: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("source binary still present after move")
	}
}

func TestPlaceBinaryMissing(t *testing.T) {
	err := PlaceBinary(t.TempDir(), "mytool", t.TempDir())
	if !errors.Is(err, ErrBinaryMissingFromArchive) {
		t.Errorf("PlaceBinary() error = %v, want ErrBinaryMissingFromArchive", err)
	}
}

func TestRemoveBinary(t *testing.T) {
	installDir := t.TempDir()

	target := filepath.Join(installDir, "mytool")
	if err := os.WriteFile(target, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}

	RemoveBinary(installDir, "mytool")
	if _, err := os.Stat(target); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("binary still present after removal")
	}

	// removal of an absent binary is not an error
	RemoveBinary(installDir, "mytool")
	RemoveBinary(filepath.Join(installDir, "no-such-dir"), "mytool")
}
