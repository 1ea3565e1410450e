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

// main is the entrypoint for nerbox-tag, the client for a running NER
// server.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Stdin, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the client's logic for easier testing and error
// handling.
func run(outW, errW io.Writer, stdin io.Reader, args []string) error {
	cfg, done, err := cli.ParseTag(args, outW)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return nerboxApp.Tag(ctx, stdin)
}
