package domain

import (
	"context"
)

// MovieRepository provides lookups against the external movie database
type MovieRepository interface {
	// Search returns titles matching a free-text query.
	// Returns ErrNotFound when the API reports no match.
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// GetMovie returns full details for a single identifier
	GetMovie(ctx context.Context, id string) (*MovieDetail, error)
}
