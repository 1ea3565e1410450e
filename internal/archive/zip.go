// Package archive unpacks the toolkit distribution archive. Only zip is
// supported; that is the only format the upstream distribution ships.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/vk/nerbox/internal/ctxlog"
)

// Extract unpacks the zip at archivePath into destDir and returns the name
// of the archive's single top-level directory. An archive whose entries do
// not all live under one top-level directory is rejected: the fetcher
// relies on that directory to produce the canonical install name.
func Extract(ctx context.Context, archivePath, destDir string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	// klauspost's flate is drop-in compatible and measurably faster on the
	// large model files in the distribution.
	reader.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	root, err := rootDirOf(reader.File)
	if err != nil {
		return "", err
	}
	logger.Debug("Extracting archive.", "entries", len(reader.File), "root", root)

	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := extractEntry(ctx, file, destDir); err != nil {
			return "", err
		}
	}

	logger.Debug("Archive extracted.")
	return root, nil
}

// rootDirOf determines the single top-level directory all entries live
// under. Top-level files or multiple top-level directories mean the
// archive does not have the expected layout.
func rootDirOf(files []*zip.File) (string, error) {
	root := ""
	for _, file := range files {
		name := strings.TrimSuffix(file.Name, "/")
		if name == "" {
			continue
		}
		first, _, found := strings.Cut(name, "/")
		if !found && !file.FileInfo().IsDir() {
			return "", fmt.Errorf("unexpected archive layout: top-level file %q", name)
		}
		if root == "" {
			root = first
			continue
		}
		if first != root {
			return "", fmt.Errorf("unexpected archive layout: multiple top-level entries (%q, %q)", root, first)
		}
	}
	if root == "" {
		return "", fmt.Errorf("unexpected archive layout: empty archive")
	}
	return root, nil
}

// extractEntry writes one zip entry under destDir, refusing entries whose
// names escape it.
func extractEntry(ctx context.Context, file *zip.File, destDir string) error {
	name := filepath.FromSlash(file.Name)
	if !filepath.IsLocal(name) {
		return fmt.Errorf("archive entry %q escapes the extraction directory", file.Name)
	}
	target := filepath.Join(destDir, name)

	info := file.FileInfo()
	if info.IsDir() {
		return os.MkdirAll(target, dirMode(info.Mode()))
	}
	if info.Mode()&os.ModeSymlink != 0 {
		// The distribution contains none; skipping is safer than creating links.
		ctxlog.FromContext(ctx).Debug("Skipping symlink entry.", "name", file.Name)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", file.Name, err)
	}

	in, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to read archive entry %s: %w", file.Name, err)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode(info.Mode()))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	return out.Close()
}

func dirMode(mode os.FileMode) os.FileMode {
	if perm := mode.Perm(); perm != 0 {
		return perm
	}
	return 0o755
}

func fileMode(mode os.FileMode) os.FileMode {
	if perm := mode.Perm(); perm != 0 {
		return perm
	}
	return 0o644
}
