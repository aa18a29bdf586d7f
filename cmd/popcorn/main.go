package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	app := &cli.Command{
		Name:    "popcorn",
		Usage:   "Search movies and keep a rated list of what you watched",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Keep the watched list in memory only",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			setupCommand(),
			watchedCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
