package watchlist

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/store"
)

func newService(t *testing.T, entries ...domain.WatchedEntry) *Service {
	t.Helper()
	s, err := store.Open("")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	list := store.NewList[domain.WatchedEntry](s, StoreKey, nil)
	for _, e := range entries {
		if err := list.Append(e); err != nil {
			t.Fatalf("failed to seed list: %v", err)
		}
	}
	return NewService(list, nil)
}

func detail(id, title string) domain.MovieDetail {
	return domain.MovieDetail{ID: id, Title: title, Year: "1999", Runtime: 136, ExternalRating: 8.7}
}

func TestAdd(t *testing.T) {
	t.Run("Adds Rated Movie", func(t *testing.T) {
		svc := newService(t)
		entry, err := svc.Add(detail("tt0133093", "The Matrix"), 9)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if entry.UserRating != 9 || entry.RuntimeMinutes != 136 || entry.ExternalRating != 8.7 {
			t.Errorf("unexpected entry: %+v", entry)
		}
		if !svc.Contains("tt0133093") {
			t.Error("expected movie to be watched")
		}
		if rating, ok := svc.Rating("tt0133093"); !ok || rating != 9 {
			t.Errorf("expected rating 9, got %d (%v)", rating, ok)
		}
	})

	t.Run("Without Rating Leaves List Unchanged", func(t *testing.T) {
		svc := newService(t)
		_, err := svc.Add(detail("tt0133093", "The Matrix"), 0)
		if !errors.Is(err, domain.ErrRatingRequired) {
			t.Errorf("expected ErrRatingRequired, got %v", err)
		}
		if len(svc.Entries()) != 0 {
			t.Errorf("expected empty list, got %+v", svc.Entries())
		}
	})

	t.Run("Rejects Out Of Range Rating", func(t *testing.T) {
		svc := newService(t)
		if _, err := svc.Add(detail("tt0133093", "The Matrix"), 11); err == nil {
			t.Error("expected error for rating 11")
		}
	})

	t.Run("Rejects Duplicate", func(t *testing.T) {
		svc := newService(t)
		svc.Add(detail("tt0133093", "The Matrix"), 9)
		_, err := svc.Add(detail("tt0133093", "The Matrix"), 5)
		if !errors.Is(err, domain.ErrAlreadyWatched) {
			t.Errorf("expected ErrAlreadyWatched, got %v", err)
		}
		if n := len(svc.Entries()); n != 1 {
			t.Errorf("expected 1 entry, got %d", n)
		}
		if rating, _ := svc.Rating("tt0133093"); rating != 9 {
			t.Errorf("expected original rating kept, got %d", rating)
		}
	})
}

func TestRemove(t *testing.T) {
	a := domain.WatchedEntry{ID: "tt1", Title: "Alien", UserRating: 8}
	b := domain.WatchedEntry{ID: "tt2", Title: "Blade Runner", UserRating: 9}
	c := domain.WatchedEntry{ID: "tt3", Title: "Chinatown", UserRating: 7}

	t.Run("Removes Only Matching Entry", func(t *testing.T) {
		svc := newService(t, a, b, c)
		removed, err := svc.Remove("tt2")
		if err != nil || !removed {
			t.Fatalf("expected removal, got (%v, %v)", removed, err)
		}
		got := svc.Entries()
		if len(got) != 2 || got[0] != a || got[1] != c {
			t.Errorf("expected [a c], got %+v", got)
		}
	})

	t.Run("Unknown Id", func(t *testing.T) {
		svc := newService(t, a)
		removed, err := svc.Remove("missing")
		if err != nil || removed {
			t.Errorf("expected (false, nil), got (%v, %v)", removed, err)
		}
	})
}

func TestSummary(t *testing.T) {
	t.Run("Averages", func(t *testing.T) {
		svc := newService(t,
			domain.WatchedEntry{ID: "tt1", ExternalRating: 8, UserRating: 9, RuntimeMinutes: 120},
			domain.WatchedEntry{ID: "tt2", ExternalRating: 6, UserRating: 7, RuntimeMinutes: 90},
		)
		sum := svc.Summary()
		if sum.Count != 2 {
			t.Errorf("expected count 2, got %d", sum.Count)
		}
		if got := strconv.FormatFloat(sum.AvgExternalRating, 'f', 1, 64); got != "7.0" {
			t.Errorf("expected avg external 7.0, got %s", got)
		}
		if got := strconv.FormatFloat(sum.AvgUserRating, 'f', 1, 64); got != "8.0" {
			t.Errorf("expected avg user 8.0, got %s", got)
		}
		if sum.AvgRuntime != 105 {
			t.Errorf("expected avg runtime 105, got %v", sum.AvgRuntime)
		}
		if !sum.HasAverages() {
			t.Error("expected averages to be defined")
		}
	})

	t.Run("Empty List Is Not A Number", func(t *testing.T) {
		sum := newService(t).Summary()
		if sum.Count != 0 {
			t.Errorf("expected count 0, got %d", sum.Count)
		}
		if !math.IsNaN(sum.AvgExternalRating) || !math.IsNaN(sum.AvgUserRating) || !math.IsNaN(sum.AvgRuntime) {
			t.Errorf("expected NaN averages, got %+v", sum)
		}
		if sum.HasAverages() {
			t.Error("expected no averages for empty list")
		}
	})
}

func TestFind(t *testing.T) {
	svc := newService(t,
		domain.WatchedEntry{ID: "tt0133093", Title: "The Matrix"},
		domain.WatchedEntry{ID: "tt0234215", Title: "The Matrix Reloaded"},
		domain.WatchedEntry{ID: "tt0083658", Title: "Blade Runner"},
		domain.WatchedEntry{ID: "tt0087182", Title: "Dune"},
		domain.WatchedEntry{ID: "tt1160419", Title: "Dune"},
	)

	t.Run("Exact Id", func(t *testing.T) {
		e, err := svc.Find("tt0083658")
		if err != nil || e.Title != "Blade Runner" {
			t.Errorf("expected Blade Runner, got %+v (%v)", e, err)
		}
	})

	t.Run("Exact Title Ignores Case", func(t *testing.T) {
		e, err := svc.Find("the matrix")
		if err != nil || e.ID != "tt0133093" {
			t.Errorf("expected The Matrix, got %+v (%v)", e, err)
		}
	})

	t.Run("Partial Title Is Not A Match", func(t *testing.T) {
		for _, ref := range []string{"tt", "e", "blrun", "Matrix"} {
			if e, err := svc.Find(ref); !errors.Is(err, domain.ErrNotWatched) {
				t.Errorf("Find(%q): expected ErrNotWatched, got %+v (%v)", ref, e, err)
			}
		}
	})

	t.Run("Duplicate Title Is Ambiguous", func(t *testing.T) {
		_, err := svc.Find("dune")
		if !errors.Is(err, domain.ErrAmbiguousRef) {
			t.Fatalf("expected ErrAmbiguousRef, got %v", err)
		}
		if !strings.Contains(err.Error(), "tt0087182") || !strings.Contains(err.Error(), "tt1160419") {
			t.Errorf("expected both ids in error, got %v", err)
		}
	})

	t.Run("Blank Reference", func(t *testing.T) {
		if _, err := svc.Find("  "); !errors.Is(err, domain.ErrNotWatched) {
			t.Errorf("expected ErrNotWatched, got %v", err)
		}
	})
}

func TestSuggest(t *testing.T) {
	svc := newService(t,
		domain.WatchedEntry{ID: "tt0133093", Title: "The Matrix"},
		domain.WatchedEntry{ID: "tt0234215", Title: "The Matrix Reloaded"},
		domain.WatchedEntry{ID: "tt0083658", Title: "Blade Runner"},
	)

	t.Run("Closest First", func(t *testing.T) {
		got := svc.Suggest("matrix", 5)
		if len(got) != 2 || got[0].ID != "tt0133093" {
			t.Errorf("expected The Matrix first of two, got %+v", got)
		}
	})

	t.Run("Subsequence", func(t *testing.T) {
		got := svc.Suggest("blrun", 5)
		if len(got) != 1 || got[0].ID != "tt0083658" {
			t.Errorf("expected Blade Runner, got %+v", got)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		if got := svc.Suggest("matrix", 1); len(got) != 1 {
			t.Errorf("expected 1 suggestion, got %d", len(got))
		}
	})

	t.Run("No Match", func(t *testing.T) {
		if got := svc.Suggest("zzz", 5); len(got) != 0 {
			t.Errorf("expected no suggestions, got %+v", got)
		}
	})
}
