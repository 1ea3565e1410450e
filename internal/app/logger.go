package app

import (
	"io"
	"log/slog"
)

// newLogger builds the logger the binaries share. It never touches the
// global logger, and it writes to errW so tagged output on stdout stays
// clean.
func newLogger(cfg *Config, errW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(errW, opts))
	}
	return slog.New(slog.NewTextHandler(errW, opts))
}

// logLevel maps the -log-level flag value to a slog level. Unknown values
// fall back to info; the CLI layer has already validated them.
func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
