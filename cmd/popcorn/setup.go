package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/adapter/source"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func setupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure movie database access",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "proxy",
				Usage: "Use a credential proxy at this URL instead of a personal API key",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := adapter.NullLogger()
			if proxyURL := cmd.String("proxy"); proxyURL != "" {
				err = runProxySetup(ctx, cfg, proxyURL, logger)
			} else {
				err = runSetup(ctx, cfg, logger)
			}
			if err != nil {
				return err
			}
			fmt.Println("Run popcorn to start the application.")
			return nil
		},
	}
}

// runSetup prompts for an API key, verifies it and saves it
func runSetup(ctx context.Context, cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to popcorn!")
	fmt.Println("Get a free OMDb API key at https://www.omdbapi.com/apikey.aspx")
	fmt.Println()

	for {
		// Prompt for key (hidden input)
		fmt.Print("API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println() // Add newline after hidden input
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}

		key := strings.TrimSpace(string(keyBytes))
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		sc := &source.SourceConfig{BaseURL: cfg.API.BaseURL, Key: key}
		if err := verifyWithSpinner(ctx, sc, logger); err != nil {
			fmt.Printf("✗ Could not verify key: %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}

		cfg.API.Key = key
		cfg.API.ProxyURL = ""
		break
	}

	return saveSetup(cfg)
}

// runProxySetup verifies a credential proxy and saves it
func runProxySetup(ctx context.Context, cfg *adapter.Config, proxyURL string, logger *slog.Logger) error {
	sc := &source.SourceConfig{ProxyURL: proxyURL}
	if err := verifyWithSpinner(ctx, sc, logger); err != nil {
		return fmt.Errorf("could not reach proxy: %w", err)
	}
	cfg.API.ProxyURL = proxyURL
	cfg.API.Key = ""
	return saveSetup(cfg)
}

func saveSetup(cfg *adapter.Config) error {
	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Configuration saved to %s\n", adapter.ConfigFilePath())
	fmt.Println()
	return nil
}

// verifyWithSpinner checks access with a visual spinner
func verifyWithSpinner(ctx context.Context, sc *source.SourceConfig, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)

	// Start verification in background
	go func() {
		resultCh <- source.VerifyAccess(ctx, sc, nil, logger)
	}()

	frames := spinner.Dot.Frames
	frame := 0
	fmt.Printf("\r%s Verifying access...", frames[frame])

	ticker := time.NewTicker(spinner.Dot.FPS)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Access verified")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Verifying access...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}
