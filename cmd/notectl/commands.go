package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"notegraph/internal/app"
	"notegraph/internal/config"
	"notegraph/internal/inbox"
)

func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	// Results go to stdout, so logs go to stderr.
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return a, nil
}

func closeApp(a *app.App) {
	done := make(chan error, 1)
	go func() { done <- a.Close() }()
	select {
	case err := <-done:
		if err != nil {
			slog.Error("Failed to close backends", "error", err)
		}
	case <-time.After(closeTimeout):
		slog.Error("Timed out closing backends")
	}
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func ingestAction(ctx context.Context, cmd *cli.Command) error {
	patterns := cmd.Args().Slice()
	if len(patterns) == 0 {
		return errors.New("ingest needs at least one glob")
	}
	enc, err := newEncoder(stdout(cmd), cmd.String("output"))
	if err != nil {
		return err
	}

	files, err := inbox.Scan(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		slog.Warn("No supported files matched", "patterns", patterns)
		return nil
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(a)

	slog.Info("Ingesting files", "count", len(files), "workers", cmd.Int("workers"))
	runner := inbox.NewRunner(a.Notes, cmd.String("owner"), int(cmd.Int("workers")))
	results, err := runner.Run(ctx, files)
	if err != nil {
		return err
	}
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	ok, failed, err := inbox.Summarize(results)
	slog.Info("Ingest finished", "ok", ok, "failed", failed)
	if err != nil {
		return fmt.Errorf("%d of %d files failed: %w", failed, len(results), err)
	}
	return nil
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("watch needs exactly one directory")
	}
	dir := cmd.Args().First()
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	enc, err := newEncoder(stdout(cmd), cmd.String("output"))
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(a)

	runner := inbox.NewRunner(a.Notes, cmd.String("owner"), 1)
	watcher := inbox.NewWatcher(dir, cmd.Duration("debounce"))
	return watcher.Run(ctx, func(ctx context.Context, path string) {
		res := runner.IngestFile(ctx, path)
		if err := enc.Encode(res); err != nil {
			slog.Error("Failed to write result", "path", path, "error", err)
		}
	})
}

func migrateAction(ctx context.Context, cmd *cli.Command) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	closeApp(a)
	slog.Info("Schema is up to date")
	return nil
}

type statsOutput struct {
	Owner         string         `json:"owner" yaml:"owner"`
	Notes         int            `json:"notes" yaml:"notes"`
	Edges         int            `json:"edges" yaml:"edges"`
	LinkingStatus map[string]int `json:"linkingStatus" yaml:"linking_status"`
}

func statsAction(ctx context.Context, cmd *cli.Command) error {
	enc, err := newEncoder(stdout(cmd), cmd.String("output"))
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(a)

	owner := cmd.String("owner")
	stats, err := a.Notes.Stats(ctx, owner)
	if err != nil {
		return err
	}

	out := statsOutput{Owner: owner, Notes: stats.Notes, Edges: stats.Edges, LinkingStatus: map[string]int{}}
	for status, n := range stats.LinkingStatus {
		out.LinkingStatus[string(status)] = n
	}
	return enc.Encode(out)
}
