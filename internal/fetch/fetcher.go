package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/vk/nerbox/internal/archive"
	"github.com/vk/nerbox/internal/ctxlog"
	"github.com/vk/nerbox/internal/fsutil"
)

// Request names one toolkit to install.
type Request struct {
	// URL of the zip distribution to download.
	URL string
	// DestName is the directory name the extracted tree ends up under,
	// relative to BaseDir.
	DestName string
	// BaseDir is where both the archive and the final directory live.
	BaseDir string
}

// Fetcher downloads and installs toolkit distributions.
type Fetcher struct {
	// Client is used for all HTTP traffic. Nil means http.DefaultClient.
	Client *http.Client
}

// New returns a Fetcher backed by http.DefaultClient.
func New() *Fetcher {
	return &Fetcher{}
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

// Fetch runs the full install pipeline: check the destination is free,
// download the archive next to it, extract, rename the extracted root to
// req.DestName, and delete the archive. The destination check happens
// before any network traffic, so an existing install costs no requests.
//
// On failure the partial state stays on disk: an interrupted download
// leaves the archive behind for a later resume, and a failed rename leaves
// the extracted tree under its original name.
func (f *Fetcher) Fetch(ctx context.Context, req Request) error {
	logger := ctxlog.FromContext(ctx)

	dest := filepath.Join(req.BaseDir, req.DestName)
	if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("%s: %w", dest, ErrAlreadyExists)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking destination %q: %w", dest, err)
	}

	if err := os.MkdirAll(req.BaseDir, 0o755); err != nil {
		return fmt.Errorf("creating base directory %q: %w", req.BaseDir, err)
	}

	archivePath := filepath.Join(req.BaseDir, archiveName(req.URL))
	logger.Info("⬇️ Fetching toolkit distribution.", "url", req.URL, "archive", archivePath)
	if err := f.download(ctx, req.URL, archivePath); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	logger.Info("Extracting archive.", "archive", archivePath, "into", req.BaseDir)
	root, err := archive.Extract(ctx, archivePath, req.BaseDir)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if root != req.DestName {
		extracted := filepath.Join(req.BaseDir, root)
		logger.Debug("Renaming extracted tree.", "from", extracted, "to", dest)
		if err := fsutil.MoveDir(extracted, dest); err != nil {
			return fmt.Errorf("rename failed: %w", err)
		}
	}

	if err := os.Remove(archivePath); err != nil {
		logger.Warn("Could not remove downloaded archive.", "path", archivePath, "error", err)
	}

	logger.Info("✅ Toolkit installed.", "path", dest)
	return nil
}

// archiveName derives the local archive file name from the download URL.
func archiveName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download.zip"
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "download.zip"
	}
	return name
}
