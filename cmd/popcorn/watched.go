package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/tui/components"
	"github.com/mmcdole/popcorn/internal/watchlist"
)

func watchedCommand() *cli.Command {
	return &cli.Command{
		Name:    "watched",
		Aliases: []string{"w"},
		Usage:   "Inspect and edit the watched list",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Print the watched list",
				Action: withWatchlist(listWatched),
			},
			{
				Name:   "stats",
				Usage:  "Print watched list averages",
				Action: withWatchlist(printStats),
			},
			{
				Name:  "rm",
				Usage: "Remove a movie by IMDb id or exact title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "movie",
					},
				},
				Action: withWatchlist(removeWatched),
			},
		},
	}
}

// maxSuggestions caps the near matches listed when rm finds nothing
const maxSuggestions = 3

type watchedAction func(cmd *cli.Command, list *watchlist.Service, out io.Writer) error

// withWatchlist opens the configured store around a headless action
func withWatchlist(action watchedAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := adapter.NewServerLogger(os.Stderr, cfg.Logging.Level)

		list, closeStore, err := openWatchlist(cfg, cmd.Bool("ephemeral"), logger)
		if err != nil {
			return err
		}
		defer closeStore()

		return action(cmd, list, os.Stdout)
	}
}

func listWatched(_ *cli.Command, list *watchlist.Service, out io.Writer) error {
	entries := list.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "Your watched list is empty.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "YEAR", "IMDB", "YOURS", "RUNTIME")
	for _, e := range entries {
		t.Row(e.ID, e.Title, e.Year,
			fmt.Sprintf("%.1f", e.ExternalRating),
			fmt.Sprintf("%d", e.UserRating),
			fmt.Sprintf("%d min", e.RuntimeMinutes))
	}
	_, err := fmt.Fprintln(out, t.Render())
	return err
}

func printStats(_ *cli.Command, list *watchlist.Service, out io.Writer) error {
	writeStats(out, list.Summary())
	return nil
}

func writeStats(out io.Writer, s domain.WatchedSummary) {
	external, user, runtime := components.FormatAverages(s)
	fmt.Fprintf(out, "Movies:            %d\n", s.Count)
	fmt.Fprintf(out, "Avg IMDb rating:   %s\n", external)
	fmt.Fprintf(out, "Avg your rating:   %s\n", user)
	fmt.Fprintf(out, "Avg runtime:       %s min\n", runtime)
}

func removeWatched(cmd *cli.Command, list *watchlist.Service, out io.Writer) error {
	return removeEntry(cmd.StringArg("movie"), list, out)
}

// removeEntry deletes the entry ref names exactly, listing near matches otherwise
func removeEntry(ref string, list *watchlist.Service, out io.Writer) error {
	if ref == "" {
		return fmt.Errorf("movie id or title is required")
	}

	entry, err := list.Find(ref)
	if errors.Is(err, domain.ErrNotWatched) {
		if near := list.Suggest(ref, maxSuggestions); len(near) > 0 {
			var names []string
			for _, e := range near {
				names = append(names, fmt.Sprintf("%s (%s)", e.Title, e.ID))
			}
			return fmt.Errorf("%q is not in the watched list, did you mean: %s", ref, strings.Join(names, ", "))
		}
		return fmt.Errorf("%q is not in the watched list", ref)
	}
	if err != nil {
		return fmt.Errorf("%w, remove by id instead", err)
	}

	if _, err := list.Remove(entry.ID); err != nil {
		return fmt.Errorf("failed to remove %s: %w", entry.Title, err)
	}

	fmt.Fprintf(out, "✓ Removed %s (%s)\n", entry.Title, entry.ID)
	return nil
}
