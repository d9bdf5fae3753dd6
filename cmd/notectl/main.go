package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"notegraph/internal/inbox"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func ownerFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "owner",
		Usage:    "owner the notes are filed under",
		Sources:  cli.EnvVars("NOTEGRAPH_OWNER"),
		Required: true,
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "result format: json or yaml",
		Value:   formatJSON,
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "notectl",
		Usage: "ingest note files into the knowledge graph",
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "ingest files matching one or more globs (** is supported)",
				ArgsUsage: "<glob>...",
				Flags: []cli.Flag{
					ownerFlag(),
					outputFlag(),
					&cli.IntFlag{
						Name:  "workers",
						Usage: "files ingested concurrently",
						Value: 4,
					},
				},
				Action: ingestAction,
			},
			{
				Name:      "watch",
				Usage:     "ingest new files as they appear under a directory",
				ArgsUsage: "<dir>",
				Flags: []cli.Flag{
					ownerFlag(),
					outputFlag(),
					&cli.DurationFlag{
						Name:  "debounce",
						Usage: "quiet period before a new file is ingested",
						Value: inbox.DefaultDebounce,
					},
				},
				Action: watchAction,
			},
			{
				Name:   "migrate",
				Usage:  "create or upgrade the note store schema",
				Action: migrateAction,
			},
			{
				Name:  "stats",
				Usage: "show note and edge counts for an owner",
				Flags: []cli.Flag{
					ownerFlag(),
					outputFlag(),
				},
				Action: statsAction,
			},
		},
	}
}

// closeTimeout bounds how long backends get to close after a command.
const closeTimeout = 10 * time.Second
