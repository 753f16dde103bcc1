package main

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/binhook/binhook/internal/metaerr"
)

// FetchAndUnpack streams the asset's bytes through decompression and archive
// extraction into dir. Nothing is written to a temporary file; the network
// response backpressures the extraction. Any stage failing surfaces as a
// download failure wrapping the stage's error.
func FetchAndUnpack(ctx context.Context, client *ReleaseClient, owner string, repo string, assetID int64, dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create extraction dir: %w", err)
	}

	body, err := client.OpenAsset(ctx, owner, repo, assetID)
	if err != nil {
		return err
	}
	defer func() {
		_ = body.Close()
	}()

	if err := unpackTarGz(body, dir); err != nil {
		return metaerr.WithMetadata(fmt.Errorf("%w: %v", ErrDownloadFailed, err), "dir", dir)
	}

	return nil
}

// unpackTarGz extracts a gzip-compressed tar stream into dir. Directories,
// regular files and symlinks are materialized; other entry types are
// skipped. Entries escaping dir are rejected.
func unpackTarGz(r io.Reader, dir string) error {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("gunzip: %w", err)
	}
	defer func() {
		_ = gzReader.Close()
	}()

	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		target, err := securePath(dir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.ModePerm); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeFile(target, tarReader, os.FileMode(header.Mode)); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}
		}
	}
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return out.Close()
}

// securePath joins name onto dir, rejecting entries that would escape it.
// An entry naming the directory itself (a leading "./") is allowed.
func securePath(dir string, name string) (string, error) {
	target := filepath.Join(dir, name)
	if target != filepath.Clean(dir) && !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal archive entry path: %s", name)
	}
	return target, nil
}
