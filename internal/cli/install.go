package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/nerbox/internal/app"
)

const installHeader = `
nerbox-install - downloads a zip distribution and installs it under a name
of your choosing.

Usage:
  nerbox-install [options] URL NAME

Arguments:
  URL
    Address of the zip archive to download.
  NAME
    Directory name to install the extracted tree under. Must be a bare
    name, not a path.

Options:
`

// ParseInstall processes the installer's command line. Exactly two
// positional arguments are required.
func ParseInstall(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("nerbox-install", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageString(flagSet, installHeader))
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

	if flagSet.NArg() != 2 {
		return nil, false, usageError(flagSet, installHeader, "expected exactly two arguments: URL and NAME")
	}

	url := flagSet.Arg(0)
	name := flagSet.Arg(1)
	if url == "" || name == "" {
		return nil, false, usageError(flagSet, installHeader, "URL and NAME must not be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, false, usageError(flagSet, installHeader, fmt.Sprintf("NAME %q must be a bare directory name", name))
	}

	return &app.Config{
		LogLevel:    strings.ToLower(*levelFlag),
		LogFormat:   strings.ToLower(*formatFlag),
		ConfigFile:  *configFlag,
		ArchiveURL:  url,
		InstallName: name,
	}, false, nil
}
