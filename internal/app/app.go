package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/vk/nerbox/internal/config"
	"github.com/vk/nerbox/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and
// resolved settings.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	settings config.Settings
}

// NewApp is the constructor shared by every binary. It builds an isolated
// logger writing to errW, merges a .env file into the environment, locates
// and loads the optional config file, and layers the environment on top.
// Program output (tagged text, usage) goes to outW; diagnostics go to errW.
func NewApp(outW, errW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	config.LoadDotEnv(ctx)
	env := config.EnvMap(os.Environ())

	path, found, err := config.FindFile(cfg.ConfigFile, env)
	if err != nil {
		return nil, err
	}
	var file *config.File
	if found {
		file, err = config.LoadFile(ctx, path, env)
		if err != nil {
			return nil, err
		}
		logger.Debug("Config file loaded.", "path", path)
	} else {
		logger.Debug("No config file in use.")
	}

	settings := config.Resolve(config.Defaults(), file, env)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Settings resolved.",
		"home", settings.HomeDir,
		"install_name", settings.InstallName,
		"classifier", settings.Classifier,
	)

	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		settings: settings,
	}, nil
}

// Settings returns the resolved settings. This is primarily for testing.
func (a *App) Settings() config.Settings {
	return a.settings
}
