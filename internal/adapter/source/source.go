package source

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/adapter/source/omdb"
	"github.com/mmcdole/popcorn/internal/domain"
)

// SourceConfig contains the configuration needed to create a MovieRepository
type SourceConfig struct {
	BaseURL  string
	Key      string
	ProxyURL string // When set, requests go through the credential proxy without a key
}

// NewClient creates a MovieRepository for the configured access mode.
// Proxy mode wins over a direct key so the key never leaves the server.
func NewClient(cfg *SourceConfig, httpClient *http.Client, logger *slog.Logger) (domain.MovieRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	switch {
	case cfg.ProxyURL != "":
		logger.Info("using credential proxy", "url", cfg.ProxyURL)
		return omdb.NewClient(cfg.ProxyURL, "", httpClient, logger), nil

	case cfg.Key != "":
		return omdb.NewClient(cfg.BaseURL, cfg.Key, httpClient, logger), nil

	default:
		return nil, fmt.Errorf("no API key or proxy URL configured, run 'popcorn setup'")
	}
}

// NewClientFromConfig creates a MovieRepository from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.MovieRepository, error) {
	return NewClient(&SourceConfig{
		BaseURL:  cfg.API.BaseURL,
		Key:      cfg.API.Key,
		ProxyURL: cfg.API.ProxyURL,
	}, nil, logger)
}
