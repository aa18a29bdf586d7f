package watchlist

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/popcorn/internal/domain"
)

// StoreKey is the persistence slot holding the watched list
const StoreKey = "watched"

// MaxRating is the highest user rating
const MaxRating = 10

// Service orchestrates the watched list: uniqueness, removal and statistics.
type Service struct {
	store  domain.WatchedStore
	logger *slog.Logger
}

// NewService creates a new watchlist service.
func NewService(store domain.WatchedStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Entries returns the watched list in insertion order
func (s *Service) Entries() []domain.WatchedEntry {
	return s.store.Items()
}

// Contains reports whether id is in the watched list
func (s *Service) Contains(id string) bool {
	_, ok := s.find(id)
	return ok
}

// Rating returns the stored user rating for id
func (s *Service) Rating(id string) (int, bool) {
	e, ok := s.find(id)
	if !ok {
		return 0, false
	}
	return e.UserRating, true
}

func (s *Service) find(id string) (domain.WatchedEntry, bool) {
	for _, e := range s.store.Items() {
		if e.ID == id {
			return e, true
		}
	}
	return domain.WatchedEntry{}, false
}

// Add appends a rated movie. A movie can only be added once.
func (s *Service) Add(detail domain.MovieDetail, rating int) (domain.WatchedEntry, error) {
	if rating <= 0 {
		return domain.WatchedEntry{}, domain.ErrRatingRequired
	}
	if rating > MaxRating {
		return domain.WatchedEntry{}, fmt.Errorf("rating %d out of range 1-%d", rating, MaxRating)
	}
	if s.Contains(detail.ID) {
		return domain.WatchedEntry{}, fmt.Errorf("%w: %s", domain.ErrAlreadyWatched, detail.Title)
	}

	entry := domain.NewWatchedEntry(detail, rating)
	if err := s.store.Append(entry); err != nil {
		s.logger.Error("failed to save watched entry", "error", err, "id", entry.ID)
		return domain.WatchedEntry{}, fmt.Errorf("failed to save watched list: %w", err)
	}
	s.logger.Info("added to watched", "id", entry.ID, "title", entry.Title, "rating", rating)
	return entry, nil
}

// Remove deletes the entry with id. It reports whether anything was removed.
func (s *Service) Remove(id string) (bool, error) {
	n, err := s.store.RemoveFunc(func(e domain.WatchedEntry) bool { return e.ID == id })
	if err != nil {
		s.logger.Error("failed to remove watched entry", "error", err, "id", id)
		return false, fmt.Errorf("failed to save watched list: %w", err)
	}
	if n > 0 {
		s.logger.Info("removed from watched", "id", id)
	}
	return n > 0, nil
}

// Summary computes the aggregate statistics of the watched list
func (s *Service) Summary() domain.WatchedSummary {
	return domain.Summarize(s.store.Items())
}

// Find resolves a user-typed reference to exactly one watched entry: an id,
// or a title compared case-insensitively. It never guesses; use Suggest for
// near matches.
func (s *Service) Find(ref string) (domain.WatchedEntry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.WatchedEntry{}, domain.ErrNotWatched
	}

	entries := s.store.Items()
	for _, e := range entries {
		if e.ID == ref {
			return e, nil
		}
	}

	var hits []domain.WatchedEntry
	for _, e := range entries {
		if strings.EqualFold(e.Title, ref) {
			hits = append(hits, e)
		}
	}
	switch len(hits) {
	case 0:
		return domain.WatchedEntry{}, fmt.Errorf("%w: %q", domain.ErrNotWatched, ref)
	case 1:
		return hits[0], nil
	default:
		ids := make([]string, len(hits))
		for i, e := range hits {
			ids[i] = e.ID
		}
		return domain.WatchedEntry{}, fmt.Errorf("%w: %q is %s", domain.ErrAmbiguousRef, ref, strings.Join(ids, ", "))
	}
}

// Suggest returns up to limit entries whose titles fuzzily match ref, closest first
func (s *Service) Suggest(ref string, limit int) []domain.WatchedEntry {
	ref = strings.TrimSpace(ref)
	if ref == "" || limit <= 0 {
		return nil
	}

	entries := s.store.Items()
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}

	ranks := fuzzy.RankFindFold(ref, titles)
	sort.Sort(ranks)

	var out []domain.WatchedEntry
	for _, r := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, entries[r.OriginalIndex])
	}
	return out
}
