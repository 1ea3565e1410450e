package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/nerbox/internal/app"
)

const tagHeader = `
nerbox-tag - tags text against a running NER server.

Usage:
  nerbox-tag [options] [FILE...]

Arguments:
  FILE
    Text files to tag. With no files, text is read from stdin.

Options:
`

// ParseTag processes the tagging client's command line.
func ParseTag(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("nerbox-tag", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageString(flagSet, tagHeader))
	}

	configFlag := flagSet.String("config", "", "Path to a nerbox.hcl config file.")
	hostFlag := flagSet.String("host", "localhost", "Host the NER server listens on.")
	portFlag := flagSet.Int("port", 0, "Port the NER server listens on. 0 means the configured server port.")
	waitFlag := flagSet.Duration("wait", 0, "Wait up to this long for the server to accept connections before tagging.")
	entitiesFlag := flagSet.Bool("entities", false, "Print grouped entities instead of one token per line.")
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

	if *portFlag < 0 || *portFlag > 65535 {
		return nil, false, usageError(flagSet, tagHeader, fmt.Sprintf("port %d is out of range", *portFlag))
	}
	if *waitFlag < 0 {
		return nil, false, usageError(flagSet, tagHeader, "wait duration must not be negative")
	}

	return &app.Config{
		LogLevel:   strings.ToLower(*levelFlag),
		LogFormat:  strings.ToLower(*formatFlag),
		ConfigFile: *configFlag,
		Host:       *hostFlag,
		Port:       *portFlag,
		Wait:       *waitFlag,
		Entities:   *entitiesFlag,
		Files:      flagSet.Args(),
	}, false, nil
}
