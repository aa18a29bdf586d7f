package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/proxy"
	"github.com/mmcdole/popcorn/internal/telemetry"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the credential proxy so clients need no API key",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Address to listen on (overrides proxy.listen)",
			},
			&cli.StringFlag{
				Name:  "otlp-endpoint",
				Usage: "OTLP/gRPC collector host:port (overrides proxy.otlp_endpoint)",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := adapter.NewServerLogger(os.Stderr, cfg.Logging.Level)

	listen := cfg.Proxy.Listen
	if v := cmd.String("listen"); v != "" {
		listen = v
	}
	endpoint := cfg.Proxy.OTLPEndpoint
	if v := cmd.String("otlp-endpoint"); v != "" {
		endpoint = v
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, "popcorn-proxy", endpoint)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	srv, err := proxy.New(proxy.Config{
		Upstream: cfg.API.BaseURL,
		APIKey:   cfg.API.Key,
		Timeout:  cfg.Proxy.UpstreamTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create proxy: %w", err)
	}

	logger.Info("starting proxy", "version", Version, "listen", listen, "upstream", cfg.API.BaseURL, "tracing", endpoint != "")
	return srv.ListenAndServe(ctx, listen)
}
