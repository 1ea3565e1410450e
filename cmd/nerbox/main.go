package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/nerbox/internal/app"
	"github.com/vk/nerbox/internal/cli"
)

// interruptExitCode is 128 + SIGINT, the shell convention for a process
// stopped by Ctrl-C.
const interruptExitCode = 130

// main is the entrypoint for the nerbox launcher.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	code, err := run(os.Stdout, os.Stderr, os.Args[1:])
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(code)
}

// run encapsulates the launcher's logic for easier testing and error
// handling. The returned int becomes the process exit code.
func run(outW, errW io.Writer, args []string) (int, error) {
	cfg, done, err := cli.ParseLauncher(args, outW)
	if err != nil {
		return 0, err
	}
	if done {
		return 0, nil
	}

	nerboxApp, err := app.NewApp(outW, errW, cfg)
	if err != nil {
		return 0, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, err := nerboxApp.Launch(ctx)
	if errors.Is(err, context.Canceled) {
		return interruptExitCode, nil
	}
	return code, err
}
