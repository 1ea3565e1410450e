package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/vk/nerbox/internal/ctxlog"
	"github.com/vk/nerbox/internal/nerclient"
)

// Tag sends text to a running NER server and prints the result, one token
// per line or grouped into entities. Input comes from the configured
// files, or from stdin when none are given.
func (a *App) Tag(ctx context.Context, stdin io.Reader) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	port := a.cfg.Port
	if port == 0 {
		port = a.settings.ServerPort
	}
	client := nerclient.New(a.cfg.Host, port)

	if a.cfg.Wait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, a.cfg.Wait)
		defer cancel()
		if err := client.WaitReady(waitCtx); err != nil {
			return err
		}
	}

	if len(a.cfg.Files) == 0 {
		text, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		return a.tagText(ctx, client, string(text))
	}

	for _, path := range a.cfg.Files {
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		a.logger.Debug("Tagging file.", "path", path)
		if err := a.tagText(ctx, client, string(text)); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tagText(ctx context.Context, client *nerclient.Client, text string) error {
	tokens, err := client.Tag(ctx, text)
	if err != nil {
		return err
	}

	if a.cfg.Entities {
		for _, entity := range nerclient.Group(tokens) {
			fmt.Fprintf(a.outW, "%s\t%s\n", paintLabel(entity.Label), entity.Text)
		}
		return nil
	}

	for _, token := range tokens {
		fmt.Fprintf(a.outW, "%s\t%s\n", token.Text, paintLabel(token.Label))
	}
	return nil
}

var labelPainters = map[string]func(a ...any) string{
	"PERSON":       color.New(color.FgGreen).SprintFunc(),
	"ORGANIZATION": color.New(color.FgYellow).SprintFunc(),
	"LOCATION":     color.New(color.FgBlue).SprintFunc(),
}

var paintOther = color.New(color.FgCyan).SprintFunc()

// paintLabel colors entity labels so they stand out in a terminal; the
// outside label stays plain.
func paintLabel(label string) string {
	if label == nerclient.OutsideLabel {
		return label
	}
	if paint, ok := labelPainters[label]; ok {
		return paint(label)
	}
	return paintOther(label)
}
