package testutil

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/nerbox/internal/config"
	"github.com/vk/nerbox/internal/ctxlog"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// QuietContext returns a context whose logger discards everything, for
// tests that do not care about log output.
func QuietContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

// CapturedContext returns a context whose debug-level logger writes into
// the returned buffer, so tests can assert on log lines.
func CapturedContext() (context.Context, *SafeBuffer) {
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// PinEnv blanks every environment variable the settings resolver reads, so
// a test only sees the variables it sets itself. Empty values count as
// unset. Tests calling this cannot run in parallel.
func PinEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvClassifier,
		config.EnvInputEncoding,
		config.EnvOutputEncoding,
		config.EnvTokenizerFactory,
		config.EnvHome,
		config.EnvJava,
		config.EnvConfigFile,
	} {
		t.Setenv(key, "")
	}
}

// ZipArchive builds an in-memory zip holding the given name to content
// mapping. Names use forward slashes, as zip entries do.
func ZipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
