package main

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/adapter/source"
	"github.com/mmcdole/popcorn/internal/detail"
	"github.com/mmcdole/popcorn/internal/search"
	"github.com/mmcdole/popcorn/internal/tui"
)

// setupFunc completes cfg interactively
type setupFunc func(ctx context.Context, cfg *adapter.Config, logger *slog.Logger) error

// ensureConfigured runs setup on first launch so start-up can continue with
// the saved configuration
func ensureConfigured(ctx context.Context, cfg *adapter.Config, logger *slog.Logger, setup setupFunc) error {
	if cfg.IsConfigured() {
		return nil
	}

	fmt.Println("No API key configured.")
	if err := setup(ctx, cfg, logger); err != nil {
		return err
	}
	if !cfg.IsConfigured() {
		return fmt.Errorf("setup finished without movie database access")
	}
	logger.Info("setup complete, continuing start-up")
	return nil
}

// runTUI starts the interactive application
func runTUI(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting popcorn", "version", Version)

	if err := ensureConfigured(ctx, cfg, logger, runSetup); err != nil {
		return err
	}

	// Create movie source client
	client, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create movie client: %w", err)
	}

	watched, closeStore, err := openWatchlist(cfg, cmd.Bool("ephemeral"), logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Create services
	title := tui.NewWindowTitle(cfg.UI.Title)
	searchSvc := search.NewService(client, cfg.Search.Debounce, cfg.Search.MinQueryLength, logger)
	ctrl := detail.NewController(client, watched, title, cfg.UI.Title, cfg.UI.MaxRating, logger)

	// Create launcher (uses configured browser or auto-detects)
	launcher := adapter.NewLauncher(cfg.UI.Browser, cfg.UI.BrowserArgs, logger)

	// Create TUI model
	model := tui.NewModel(searchSvc, ctrl, watched, title, launcher, logger)
	defer model.Close()

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
