package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/store"
	"github.com/mmcdole/popcorn/internal/watchlist"
)

// loadConfig loads and validates the configuration named by --config
func loadConfig(cmd *cli.Command) (*adapter.Config, error) {
	cfg, err := adapter.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openWatchlist opens the watched list store. ephemeral keeps it in memory.
func openWatchlist(cfg *adapter.Config, ephemeral bool, logger *slog.Logger) (*watchlist.Service, func(), error) {
	path := cfg.Storage.Path
	if ephemeral {
		path = ""
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open watched list at %s: %w", path, err)
	}
	closeStore := func() {
		if err := s.Close(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}

	list := store.NewList[domain.WatchedEntry](s, watchlist.StoreKey, logger)
	return watchlist.NewService(list, logger), closeStore, nil
}
