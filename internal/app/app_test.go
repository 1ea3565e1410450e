package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/nerbox/internal/config"
	"github.com/vk/nerbox/internal/fetch"
	"github.com/vk/nerbox/internal/launch"
	"github.com/vk/nerbox/internal/testutil"
)

func newTestApp(t *testing.T, cfg *Config) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	a, err := NewApp(&out, &testutil.SafeBuffer{}, cfg)
	require.NoError(t, err)
	return a, &out
}

func TestNewApp_EnvironmentOverridesDefaults(t *testing.T) {
	testutil.PinEnv(t)
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvClassifier, "german.conll.crf.ser.gz")

	a, _ := newTestApp(t, &Config{})

	assert.Equal(t, home, a.Settings().HomeDir)
	assert.Equal(t, "german.conll.crf.ser.gz", a.Settings().Classifier)
	assert.Equal(t, config.DefaultInputEncoding, a.Settings().InputEncoding)
}

func TestNewApp_ConfigFileUnderEnvironment(t *testing.T) {
	testutil.PinEnv(t)

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
memory_limit = "2g"
classifier   = "from-file.crf.ser.gz"
`), 0o644))
	t.Setenv(config.EnvClassifier, "from-env.crf.ser.gz")

	// --- Act ---
	a, _ := newTestApp(t, &Config{ConfigFile: path})

	// --- Assert ---
	assert.Equal(t, "2g", a.Settings().MemoryLimit, "file value applies where the environment is silent")
	assert.Equal(t, "from-env.crf.ser.gz", a.Settings().Classifier, "environment wins over the file")
}

func TestNewApp_MissingExplicitConfigFile(t *testing.T) {
	testutil.PinEnv(t)

	var out bytes.Buffer
	_, err := NewApp(&out, &testutil.SafeBuffer{}, &Config{ConfigFile: filepath.Join(t.TempDir(), "nope.hcl")})

	require.Error(t, err)
}

func TestNewApp_RejectsInvalidSettings(t *testing.T) {
	testutil.PinEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(`server_port = 123456`), 0o644))

	var out bytes.Buffer
	_, err := NewApp(&out, &testutil.SafeBuffer{}, &Config{ConfigFile: path})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestApp_FetchInstallsAndRefusesSecondRun(t *testing.T) {
	testutil.PinEnv(t)

	// --- Arrange ---
	payload := testutil.ZipArchive(t, map[string]string{
		"dist-1.0/stanford-ner.jar": "jar",
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	a, _ := newTestApp(t, &Config{
		ArchiveURL:  server.URL + "/dist-1.0.zip",
		InstallName: "mytoolkit",
	})

	// --- Act / Assert ---
	require.NoError(t, a.Fetch(context.Background()))
	assert.FileExists(t, filepath.Join(home, "mytoolkit", "stanford-ner.jar"))

	err := a.Fetch(context.Background())
	require.ErrorIs(t, err, fetch.ErrAlreadyExists)
}

func TestApp_LaunchFailsWithoutToolkit(t *testing.T) {
	testutil.PinEnv(t)
	t.Setenv(config.EnvHome, t.TempDir())

	a, _ := newTestApp(t, &Config{Mode: launch.ModeServer})

	_, err := a.Launch(context.Background())

	require.ErrorIs(t, err, launch.ErrMissingToolkit)
	assert.Contains(t, err.Error(), "nerbox-get")
}

// installFakeToolkit creates the toolkit directory and a java stand-in that
// records its arguments and exits with the given code.
func installFakeToolkit(t *testing.T, home string, exitCode int) (argsFile string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(home, config.DefaultInstallName), 0o755))

	argsFile = filepath.Join(home, "captured-args")
	script := fmt.Sprintf("#!/bin/sh\necho \"$@\" > %q\nexit %d\n", argsFile, exitCode)
	javaStub := filepath.Join(home, "fake-java")
	require.NoError(t, os.WriteFile(javaStub, []byte(script), 0o755))
	t.Setenv(config.EnvJava, javaStub)
	return argsFile
}

func TestApp_LaunchServerMode(t *testing.T) {
	testutil.PinEnv(t)

	// --- Arrange ---
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	argsFile := installFakeToolkit(t, home, 0)

	a, _ := newTestApp(t, &Config{Mode: launch.ModeServer})

	// --- Act ---
	code, err := a.Launch(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "edu.stanford.nlp.ie.NERServer")
	assert.Contains(t, string(args), "-port 9001")
	assert.Contains(t, string(args), "-loadClassifier classifiers/"+config.DefaultClassifier)
}

func TestApp_LaunchHonorsClassifierOverride(t *testing.T) {
	testutil.PinEnv(t)

	// --- Arrange ---
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvClassifier, "foo.ser.gz")
	argsFile := installFakeToolkit(t, home, 0)

	a, _ := newTestApp(t, &Config{Mode: launch.ModeServer})

	// --- Act ---
	_, err := a.Launch(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "-loadClassifier classifiers/foo.ser.gz")
}

func TestApp_LaunchFileModePropagatesExitCode(t *testing.T) {
	testutil.PinEnv(t)

	// --- Arrange ---
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	argsFile := installFakeToolkit(t, home, 3)

	a, _ := newTestApp(t, &Config{Mode: launch.ModeFileTag, TextFile: "/data/article.txt"})

	// --- Act ---
	code, err := a.Launch(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 3, code, "the toolkit's exit code must pass through unchanged")

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "edu.stanford.nlp.ie.crf.CRFClassifier")
	assert.Contains(t, string(args), "-textFile /data/article.txt")
	assert.NotContains(t, string(args), "-port")
}

func TestApp_TagFileToTokens(t *testing.T) {
	testutil.PinEnv(t)

	// --- Arrange ---
	port := testutil.StartTagServer(t, testutil.TagEveryWord("PERSON"))
	input := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("John Smith"), 0o644))

	a, out := newTestApp(t, &Config{
		Host:  "127.0.0.1",
		Port:  port,
		Files: []string{input},
	})

	// --- Act ---
	err := a.Tag(context.Background(), strings.NewReader(""))

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "John")
	assert.Contains(t, out.String(), "PERSON")
}

func TestApp_TagStdinEntities(t *testing.T) {
	testutil.PinEnv(t)

	// --- Arrange ---
	port := testutil.StartTagServer(t, testutil.TagEveryWord("PERSON"))
	a, out := newTestApp(t, &Config{
		Host:     "127.0.0.1",
		Port:     port,
		Entities: true,
	})

	// --- Act ---
	err := a.Tag(context.Background(), strings.NewReader("John Smith"))

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "John Smith", "adjacent tokens with one label print as one entity")
}
