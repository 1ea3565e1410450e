package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vk/nerbox/internal/ctxlog"
)

// Environment variables recognized during resolution. The first four are
// the toolkit's documented configuration surface; the NERBOX_* ones are
// nerbox's own.
const (
	EnvClassifier       = "CLASSIFIER"
	EnvInputEncoding    = "INPUT_ENCODING"
	EnvOutputEncoding   = "OUTPUT_ENCODING"
	EnvTokenizerFactory = "TOKENIZER_FACTORY"

	EnvHome       = "NERBOX_HOME"
	EnvJava       = "NERBOX_JAVA"
	EnvConfigFile = "NERBOX_CONFIG"
)

// Built-in defaults. The classifier, encodings, tokenizer factory and port
// are part of the external toolkit's contract and must not drift.
const (
	DefaultClassifier       = "english.all.3class.distsim.crf.ser.gz"
	DefaultInputEncoding    = "UTF-8"
	DefaultOutputEncoding   = "UTF-8"
	DefaultTokenizerFactory = "edu.stanford.nlp.process.WhitespaceTokenizer"
	DefaultServerPort       = 9001
	DefaultInstallName      = "stanford-ner"
	DefaultArchiveURL       = "https://nlp.stanford.edu/software/stanford-ner-2018-10-16.zip"
	DefaultJavaBin          = "java"
	DefaultMemoryLimit      = "1000m"
)

// Settings holds every knob the fetcher and launcher consume, fully
// resolved. It is built once per invocation and passed around explicitly.
type Settings struct {
	// HomeDir is the base directory the toolkit is installed under.
	HomeDir string
	// InstallName is the canonical directory name of the toolkit under HomeDir.
	InstallName string
	// ArchiveURL is the distribution archive the fetcher downloads.
	ArchiveURL string

	JavaBin     string
	MemoryLimit string

	Classifier       string
	InputEncoding    string
	OutputEncoding   string
	TokenizerFactory string
	ServerPort       int
}

// ToolkitDir returns the directory the external toolkit lives in. It is
// both the launcher's precondition and the child process's working
// directory.
func (s Settings) ToolkitDir() string {
	return filepath.Join(s.HomeDir, s.InstallName)
}

var memoryLimitRe = regexp.MustCompile(`^[0-9]+[kKmMgG]?$`)

// Validate rejects settings no invocation could meaningfully run with.
func (s Settings) Validate() error {
	if s.ServerPort < 1 || s.ServerPort > 65535 {
		return fmt.Errorf("server port %d is out of range", s.ServerPort)
	}
	if !memoryLimitRe.MatchString(s.MemoryLimit) {
		return fmt.Errorf("memory limit %q is not a valid java heap size", s.MemoryLimit)
	}
	if s.InstallName == "" || strings.ContainsRune(s.InstallName, os.PathSeparator) {
		return fmt.Errorf("install name %q must be a bare directory name", s.InstallName)
	}
	return nil
}

// Defaults returns the built-in settings. HomeDir defaults to the directory
// containing the running executable: the toolkit is a sibling of the tool
// itself, never located relative to input files.
func Defaults() Settings {
	return Settings{
		HomeDir:          executableDir(),
		InstallName:      DefaultInstallName,
		ArchiveURL:       DefaultArchiveURL,
		JavaBin:          DefaultJavaBin,
		MemoryLimit:      DefaultMemoryLimit,
		Classifier:       DefaultClassifier,
		InputEncoding:    DefaultInputEncoding,
		OutputEncoding:   DefaultOutputEncoding,
		TokenizerFactory: DefaultTokenizerFactory,
		ServerPort:       DefaultServerPort,
	}
}

// Resolve layers a config file and the environment over base. Environment
// values win; empty strings count as unset at every layer.
func Resolve(base Settings, file *File, env map[string]string) Settings {
	s := base

	if file != nil {
		overrideString(&s.HomeDir, file.InstallDir)
		overrideString(&s.InstallName, file.InstallName)
		overrideString(&s.ArchiveURL, file.ArchiveURL)
		overrideString(&s.JavaBin, file.Java)
		overrideString(&s.MemoryLimit, file.MemoryLimit)
		overrideString(&s.Classifier, file.Classifier)
		overrideString(&s.InputEncoding, file.InputEncoding)
		overrideString(&s.OutputEncoding, file.OutputEncoding)
		overrideString(&s.TokenizerFactory, file.TokenizerFactory)
		if file.ServerPort != 0 {
			s.ServerPort = file.ServerPort
		}
	}

	overrideString(&s.HomeDir, env[EnvHome])
	overrideString(&s.JavaBin, env[EnvJava])
	overrideString(&s.Classifier, env[EnvClassifier])
	overrideString(&s.InputEncoding, env[EnvInputEncoding])
	overrideString(&s.OutputEncoding, env[EnvOutputEncoding])
	overrideString(&s.TokenizerFactory, env[EnvTokenizerFactory])

	return s
}

func overrideString(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

// EnvMap converts an os.Environ()-style slice into a lookup map.
func EnvMap(environ []string) map[string]string {
	envMap := make(map[string]string, len(environ))
	for _, e := range environ {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	return envMap
}

// LoadDotEnv merges a .env file from the working directory into the process
// environment, if one exists. Variables already set in the real environment
// are not overridden; godotenv guarantees that. Missing files are fine.
func LoadDotEnv(ctx context.Context) {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		ctxlog.FromContext(ctx).Warn("Could not read .env file.", "error", err)
		return
	}
	ctxlog.FromContext(ctx).Debug("Merged .env file into environment.")
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
