package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/nerbox/internal/app"
	"github.com/vk/nerbox/internal/launch"
)

const launcherHeader = `
nerbox - runs the Stanford NER toolkit as a socket server or over a file.

Usage:
  nerbox [options] [FILE]

Arguments:
  FILE
    Optional text file to tag. Without it the toolkit starts as a socket
    server on the configured port and runs until stopped.

Environment:
  CLASSIFIER          Classifier model file name under classifiers/.
  INPUT_ENCODING      Encoding of the text handed to the toolkit.
  OUTPUT_ENCODING     Encoding of the tagged output.
  TOKENIZER_FACTORY   Tokenizer factory class the toolkit loads.
  NERBOX_HOME         Directory the toolkit is installed under.
  NERBOX_JAVA         Java binary to launch.
  NERBOX_CONFIG       Path to a nerbox.hcl config file.

Options:
`

// ParseLauncher processes the launcher's command line. It returns a
// populated config, a boolean indicating the program should exit cleanly
// (help was printed), or an ExitError.
func ParseLauncher(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("nerbox", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageString(flagSet, launcherHeader))
	}

	configFlag := flagSet.String("config", "", "Path to a nerbox.hcl config file.")
	levelFlag, formatFlag := logFlags(flagSet)

	if helpRequested(args) {
		flagSet.Usage()
		return nil, true, nil
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	if err := validateLogOptions(*levelFlag, *formatFlag); err != nil {
		return nil, false, err
	}

	cfg := &app.Config{
		LogLevel:   strings.ToLower(*levelFlag),
		LogFormat:  strings.ToLower(*formatFlag),
		ConfigFile: *configFlag,
	}

	switch flagSet.NArg() {
	case 0:
		cfg.Mode = launch.ModeServer
	case 1:
		cfg.Mode = launch.ModeFileTag
		cfg.TextFile = flagSet.Arg(0)
	default:
		return nil, false, usageError(flagSet, launcherHeader, "expected at most one input file")
	}

	return cfg, false, nil
}
