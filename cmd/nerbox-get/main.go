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

// main is the entrypoint for nerbox-get, the toolkit downloader.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the downloader's logic for easier testing and error
// handling.
func run(outW, errW io.Writer, args []string) error {
	cfg, done, err := cli.ParseGet(args, outW)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	nerboxApp, err := app.NewApp(outW, errW, cfg)
	if err != nil {
		return err
	}

	// An interrupted download stays on disk and resumes on the next run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return nerboxApp.Fetch(ctx)
}
