package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/vk/nerbox/internal/ctxlog"
	"github.com/vk/nerbox/internal/fsutil"
)

const progressStep = 16 << 20 // log every 16 MiB

// download streams srcURL into destPath. When destPath already holds a
// partial file, the request carries a Range header so a cooperating server
// can send only the remainder. A 200 response restarts from scratch, a 206
// appends, and a 416 means the file on disk is already complete.
func (f *Fetcher) download(ctx context.Context, srcURL, destPath string) error {
	logger := ctxlog.FromContext(ctx)

	offset, err := fsutil.FileSize(destPath)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("building request for %q: %w", srcURL, err)
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
		logger.Info("Resuming interrupted download.", "path", destPath, "bytes_have", offset)
	}

	resp, err := f.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	flags := os.O_CREATE | os.O_WRONLY
	switch resp.StatusCode {
	case http.StatusOK:
		// Server ignored the Range header (or none was sent); start over.
		flags |= os.O_TRUNC
		offset = 0
	case http.StatusPartialContent:
		flags |= os.O_APPEND
	case http.StatusRequestedRangeNotSatisfiable:
		logger.Info("File already fully downloaded.", "path", destPath)
		return nil
	default:
		return &StatusError{URL: srcURL, Status: resp.Status}
	}

	out, err := os.OpenFile(destPath, flags, 0o644)
	if err != nil {
		return err
	}

	counter := &progressWriter{logger: logger, written: offset}
	if resp.ContentLength > 0 {
		counter.total = offset + resp.ContentLength
	}

	_, err = io.Copy(io.MultiWriter(out, counter), resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("streaming %q: %w", srcURL, err)
	}

	logger.Info("Download complete.", "path", destPath, "bytes", counter.written)
	return nil
}

// progressWriter counts bytes as they land on disk and logs a line each
// time another progressStep worth has arrived.
type progressWriter struct {
	logger  *slog.Logger
	total   int64
	written int64
	marker  int64
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.written-w.marker >= progressStep {
		w.marker = w.written
		if w.total > 0 {
			w.logger.Info("Downloading...", "bytes", w.written, "total", w.total)
		} else {
			w.logger.Info("Downloading...", "bytes", w.written)
		}
	}
	return len(p), nil
}
