package app

import (
	"context"
	"fmt"

	"github.com/vk/nerbox/internal/ctxlog"
	"github.com/vk/nerbox/internal/launch"
)

// Launch starts the toolkit in the configured mode and blocks until it
// exits. The returned int is the child's exit code, which the caller is
// expected to adopt as its own.
func (a *App) Launch(ctx context.Context) (int, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if err := launch.EnsureToolkit(a.settings.ToolkitDir()); err != nil {
		return 0, fmt.Errorf("%w (run nerbox-get to install it)", err)
	}

	inv := launch.Invocation{Mode: a.cfg.Mode, TextFile: a.cfg.TextFile}
	a.logger.Debug("Invocation prepared.", "mode", inv.Mode.String(), "text_file", inv.TextFile)

	return launch.Run(ctx, launch.BuildCommand(a.settings, inv))
}
