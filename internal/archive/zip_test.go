package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zipEntry describes one entry for buildZip.
type zipEntry struct {
	name string
	body string
	mode os.FileMode
}

// buildZip writes a zip fixture to a temp file and returns its path.
func buildZip(t *testing.T, entries []zipEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		header := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		if e.mode != 0 {
			header.SetMode(e.mode)
		}
		entry, err := w.CreateHeader(header)
		require.NoError(t, err)
		_, err = entry.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestExtract(t *testing.T) {
	t.Parallel()

	archivePath := buildZip(t, []zipEntry{
		{name: "stanford-ner-2018-10-16/stanford-ner.jar", body: "jar bytes"},
		{name: "stanford-ner-2018-10-16/lib/joda-time.jar", body: "dep bytes"},
		{name: "stanford-ner-2018-10-16/classifiers/english.all.3class.distsim.crf.ser.gz", body: "model"},
		{name: "stanford-ner-2018-10-16/ner.sh", body: "#!/bin/sh\n", mode: 0o755},
	})
	destDir := t.TempDir()

	root, err := Extract(context.Background(), archivePath, destDir)
	require.NoError(t, err)
	assert.Equal(t, "stanford-ner-2018-10-16", root)

	jar, err := os.ReadFile(filepath.Join(destDir, root, "stanford-ner.jar"))
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(jar))

	model := filepath.Join(destDir, root, "classifiers", "english.all.3class.distsim.crf.ser.gz")
	_, err = os.Stat(model)
	require.NoError(t, err, "nested directories should be created as needed")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(destDir, root, "ner.sh"))
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&0o100, "executable bit should survive extraction")
	}
}

func TestExtract_LayoutErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		entries []zipEntry
		wantMsg string
	}{
		{
			name: "two top-level directories",
			entries: []zipEntry{
				{name: "one/a.txt", body: "a"},
				{name: "two/b.txt", body: "b"},
			},
			wantMsg: "multiple top-level entries",
		},
		{
			name: "top-level file",
			entries: []zipEntry{
				{name: "README.txt", body: "hello"},
			},
			wantMsg: "top-level file",
		},
		{
			name:    "empty archive",
			entries: nil,
			wantMsg: "empty archive",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			archivePath := buildZip(t, tc.entries)

			_, err := Extract(context.Background(), archivePath, t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestExtract_RejectsTraversal(t *testing.T) {
	t.Parallel()

	archivePath := buildZip(t, []zipEntry{
		{name: "pkg/ok.txt", body: "fine"},
		{name: "pkg/../../evil.txt", body: "nope"},
	})

	_, err := Extract(context.Background(), archivePath, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes the extraction directory")
}

func TestExtract_NotAZip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.zip")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip"), 0o644))

	_, err := Extract(context.Background(), path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open archive")
}
