package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/nerbox/internal/app"
)

const getHeader = `
nerbox-get - downloads and installs the Stanford NER toolkit.

Usage:
  nerbox-get [options]

The distribution archive is downloaded next to the executable (or into
NERBOX_HOME) and extracted under its canonical directory name. An existing
installation is left alone. Interrupted downloads are resumed.

Options:
`

// ParseGet processes the downloader's command line. The downloader takes no
// positional arguments; the archive it fetches and the name it installs
// under come from configuration.
func ParseGet(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("nerbox-get", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageString(flagSet, getHeader))
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

	if flagSet.NArg() > 0 {
		return nil, false, usageError(flagSet, getHeader, "takes no arguments")
	}

	return &app.Config{
		LogLevel:   strings.ToLower(*levelFlag),
		LogFormat:  strings.ToLower(*formatFlag),
		ConfigFile: *configFlag,
	}, false, nil
}
