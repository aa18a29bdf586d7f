package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmcdole/popcorn/internal/domain"
)

// probeID is a title every OMDb deployment knows (The Matrix)
const probeID = "tt0133093"

// VerifyAccess performs a single lookup to confirm the credentials in cfg work.
// Setup uses it before a key is written to disk.
func VerifyAccess(ctx context.Context, cfg *SourceConfig, httpClient *http.Client, logger *slog.Logger) error {
	repo, err := NewClient(cfg, httpClient, logger)
	if err != nil {
		return err
	}

	if _, err := repo.GetMovie(ctx, probeID); err != nil {
		if errors.Is(err, domain.ErrNetwork) {
			return fmt.Errorf("API rejected the request (check the key): %w", err)
		}
		return fmt.Errorf("API check failed: %w", err)
	}
	return nil
}
