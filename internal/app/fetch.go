package app

import (
	"context"

	"github.com/vk/nerbox/internal/ctxlog"
	"github.com/vk/nerbox/internal/fetch"
)

// Fetch downloads and installs a toolkit distribution. The downloader
// binary runs it with the resolved settings as-is; the installer overrides
// the archive URL and install name from its arguments.
func (a *App) Fetch(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	s := a.settings
	if a.cfg.ArchiveURL != "" {
		s.ArchiveURL = a.cfg.ArchiveURL
	}
	if a.cfg.InstallName != "" {
		s.InstallName = a.cfg.InstallName
	}
	if err := s.Validate(); err != nil {
		return err
	}

	return fetch.New().Fetch(ctx, fetch.Request{
		URL:      s.ArchiveURL,
		DestName: s.InstallName,
		BaseDir:  s.HomeDir,
	})
}
