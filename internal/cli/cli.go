package cli

import (
	"flag"
	"fmt"
	"strings"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// helpRequested reports whether --help appears anywhere in args. Help wins
// over every other argument, including invalid ones.
func helpRequested(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-help" || arg == "-h" {
			return true
		}
	}
	return false
}

// logFlags registers the shared logging flags on a flag set.
func logFlags(flagSet *flag.FlagSet) (level, format *string) {
	level = flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	format = flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	return level, format
}

func validateLogOptions(level, format string) error {
	switch strings.ToLower(format) {
	case "text", "json":
	default:
		return &ExitError{Code: 1, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
	default:
		return &ExitError{Code: 1, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	return nil
}

// usageString renders the header followed by the flag set's defaults, so
// the same text can go to stdout for --help and into an ExitError for
// invalid usage.
func usageString(flagSet *flag.FlagSet, header string) string {
	var b strings.Builder
	b.WriteString(header)
	prev := flagSet.Output()
	flagSet.SetOutput(&b)
	flagSet.PrintDefaults()
	flagSet.SetOutput(prev)
	return b.String()
}

func usageError(flagSet *flag.FlagSet, header, message string) error {
	return &ExitError{
		Code:    1,
		Message: fmt.Sprintf("%s: %s\n\n%s", flagSet.Name(), message, usageString(flagSet, header)),
	}
}
