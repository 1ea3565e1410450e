package launch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/nerbox/internal/config"
	"github.com/vk/nerbox/internal/fsutil"
)

// Mode selects which of the toolkit's entry points the JVM runs.
type Mode int

const (
	// ModeServer starts the socket server that tags one line per connection.
	ModeServer Mode = iota
	// ModeFileTag tags a single text file and writes the result to stdout.
	ModeFileTag
)

func (m Mode) String() string {
	switch m {
	case ModeServer:
		return "server"
	case ModeFileTag:
		return "file"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Entry classes and fixed arguments of the toolkit's command line contract.
// The classpath is relative, which is why the child always runs with the
// toolkit directory as its working directory.
const (
	serverClass = "edu.stanford.nlp.ie.NERServer"
	taggerClass = "edu.stanford.nlp.ie.crf.CRFClassifier"

	classpath        = "stanford-ner.jar:lib/*"
	tokenizerOptions = "untokenizable=noneKeep"
)

// ErrMissingToolkit reports that the toolkit directory is not installed.
var ErrMissingToolkit = errors.New("toolkit is not installed")

// EnsureToolkit verifies the toolkit directory exists before anything is
// spawned.
func EnsureToolkit(dir string) error {
	if fsutil.DirExists(dir) {
		return nil
	}
	return fmt.Errorf("%s: %w", dir, ErrMissingToolkit)
}

// Invocation describes one launch of the toolkit.
type Invocation struct {
	Mode Mode
	// TextFile is the file to tag in ModeFileTag. Ignored in ModeServer.
	TextFile string
}

// Command is a fully built, not yet started process invocation.
type Command struct {
	Bin  string
	Args []string
	// Dir is the child's working directory.
	Dir string
}

// String renders the command the way a shell user would type it.
func (c *Command) String() string {
	return c.Bin + " " + strings.Join(c.Args, " ")
}

// BuildCommand assembles the java command line for inv from resolved
// settings. The argument order is part of the contract with the external
// toolkit and must stay stable.
func BuildCommand(s config.Settings, inv Invocation) *Command {
	entry := serverClass
	if inv.Mode == ModeFileTag {
		entry = taggerClass
	}

	args := []string{
		"-mx" + s.MemoryLimit,
		"-cp", classpath,
		entry,
		"-loadClassifier", "classifiers/" + s.Classifier,
		"-inputEncoding", s.InputEncoding,
		"-outputEncoding", s.OutputEncoding,
		"-tokenizerFactory", s.TokenizerFactory,
		"-tokenizerOptions", tokenizerOptions,
		"-encoding", "utf8",
	}

	switch inv.Mode {
	case ModeServer:
		args = append(args, "-port", strconv.Itoa(s.ServerPort))
	case ModeFileTag:
		args = append(args, "-textFile", inv.TextFile)
	}

	return &Command{
		Bin:  s.JavaBin,
		Args: args,
		Dir:  s.ToolkitDir(),
	}
}
