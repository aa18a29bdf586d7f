package detail

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/store"
	"github.com/mmcdole/popcorn/internal/watchlist"
)

type fakeRepo struct {
	movies map[string]*domain.MovieDetail
	err    error
}

func (f *fakeRepo) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return nil, nil
}

func (f *fakeRepo) GetMovie(ctx context.Context, id string) (*domain.MovieDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.movies[id]
	if !ok {
		return nil, fmt.Errorf("%w: Incorrect IMDb ID.", domain.ErrNotFound)
	}
	return d, nil
}

// recordingTitles keeps every title it was given
type recordingTitles struct {
	titles []string
}

func (r *recordingTitles) SetTitle(title string) {
	r.titles = append(r.titles, title)
}

func (r *recordingTitles) last() string {
	if len(r.titles) == 0 {
		return ""
	}
	return r.titles[len(r.titles)-1]
}

type fixture struct {
	ctrl   *Controller
	list   *watchlist.Service
	titles *recordingTitles
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := &fakeRepo{movies: map[string]*domain.MovieDetail{
		"tt0133093": {ID: "tt0133093", Title: "The Matrix", Year: "1999", Runtime: 136, ExternalRating: 8.7},
		"tt0083658": {ID: "tt0083658", Title: "Blade Runner", Year: "1982", Runtime: 117, ExternalRating: 8.1},
	}}
	s, err := store.Open("")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	list := watchlist.NewService(store.NewList[domain.WatchedEntry](s, watchlist.StoreKey, nil), nil)
	titles := &recordingTitles{}
	return &fixture{
		ctrl:   NewController(repo, list, titles, "popcorn", 10, nil),
		list:   list,
		titles: titles,
	}
}

// load selects id and resolves it synchronously
func (f *fixture) load(t *testing.T, id string) {
	t.Helper()
	ctx, req, ok := f.ctrl.Select(id)
	if !ok {
		t.Fatalf("expected select of %s to start a lookup", id)
	}
	d, err := f.ctrl.Fetch(ctx, req)
	f.ctrl.Resolve(req.Seq, d, err)
}

func TestController(t *testing.T) {
	t.Run("Resolve Releases Lookup Context", func(t *testing.T) {
		f := newFixture(t)
		ctx, req, _ := f.ctrl.Select("tt0133093")
		d, err := f.ctrl.Fetch(ctx, req)
		if !f.ctrl.Resolve(req.Seq, d, err) {
			t.Fatal("expected response to apply")
		}
		if ctx.Err() != context.Canceled {
			t.Errorf("expected lookup context released after resolve, got %v", ctx.Err())
		}
	})

	t.Run("Select Loads Detail", func(t *testing.T) {
		f := newFixture(t)
		ctx, req, ok := f.ctrl.Select("tt0133093")
		if !ok {
			t.Fatal("expected lookup to start")
		}
		if v := f.ctrl.View(); v.State != StateLoading || v.ID != "tt0133093" {
			t.Errorf("expected loading tt0133093, got %+v", v)
		}

		d, err := f.ctrl.Fetch(ctx, req)
		if !f.ctrl.Resolve(req.Seq, d, err) {
			t.Fatal("expected resolve to apply")
		}
		v := f.ctrl.View()
		if v.State != StateLoaded || v.Detail == nil || v.Detail.Title != "The Matrix" {
			t.Errorf("expected loaded detail, got %+v", v)
		}
		if v.Watched || v.PriorRating != 0 {
			t.Errorf("expected unwatched movie, got %+v", v)
		}
	})

	t.Run("Later Selection Wins", func(t *testing.T) {
		f := newFixture(t)
		ctxX, reqX, _ := f.ctrl.Select("tt0133093")
		ctxY, reqY, _ := f.ctrl.Select("tt0083658")

		if ctxX.Err() == nil {
			t.Error("expected first lookup cancelled")
		}

		dY, errY := f.ctrl.Fetch(ctxY, reqY)
		f.ctrl.Resolve(reqY.Seq, dY, errY)

		// X resolves after Y, using a context that was never cancelled
		dX, _ := f.ctrl.Fetch(context.Background(), reqX)
		if f.ctrl.Resolve(reqX.Seq, dX, nil) {
			t.Error("expected stale detail to be discarded")
		}

		v := f.ctrl.View()
		if v.Detail == nil || v.Detail.ID != "tt0083658" {
			t.Errorf("expected only Blade Runner shown, got %+v", v.Detail)
		}
		if f.titles.last() != "Blade Runner" {
			t.Errorf("expected title Blade Runner, got %q", f.titles.last())
		}
	})

	t.Run("Reselect Toggles Off", func(t *testing.T) {
		f := newFixture(t)
		f.load(t, "tt0133093")

		if _, _, ok := f.ctrl.Select("tt0133093"); ok {
			t.Error("expected reselect not to start a lookup")
		}
		if v := f.ctrl.View(); v.State != StateNone || v.ID != "" {
			t.Errorf("expected cleared selection, got %+v", v)
		}
		if f.titles.last() != "popcorn" {
			t.Errorf("expected default title restored, got %q", f.titles.last())
		}
	})

	t.Run("Lookup Errors", func(t *testing.T) {
		f := newFixture(t)
		f.load(t, "tt9999999")
		v := f.ctrl.View()
		if v.State != StateError || v.Message != domain.MessageNotFound {
			t.Errorf("expected not found error, got %+v", v)
		}

		f.ctrl.repo = &fakeRepo{err: fmt.Errorf("%w: status 503", domain.ErrNetwork)}
		f.load(t, "tt0133093")
		if v := f.ctrl.View(); v.Message != domain.MessageFailed {
			t.Errorf("expected network message, got %q", v.Message)
		}
		if len(f.titles.titles) != 0 {
			t.Errorf("expected title untouched on errors, got %v", f.titles.titles)
		}
	})

	t.Run("Cancelled Lookup Is Swallowed", func(t *testing.T) {
		f := newFixture(t)
		_, req, _ := f.ctrl.Select("tt0133093")
		if f.ctrl.Resolve(req.Seq, nil, context.Canceled) {
			t.Error("expected cancellation to be discarded")
		}
		if v := f.ctrl.View(); v.State != StateLoading {
			t.Errorf("expected still loading, got %v", v.State)
		}
	})
}

func TestTitleLifecycle(t *testing.T) {
	f := newFixture(t)

	f.load(t, "tt0133093")
	f.load(t, "tt0083658")
	f.ctrl.Clear()

	want := []string{"The Matrix", "popcorn", "Blade Runner", "popcorn"}
	if len(f.titles.titles) != len(want) {
		t.Fatalf("expected titles %v, got %v", want, f.titles.titles)
	}
	for i := range want {
		if f.titles.titles[i] != want[i] {
			t.Errorf("title %d: expected %q, got %q", i, want[i], f.titles.titles[i])
		}
	}

	// Clearing with nothing shown leaves the title alone
	f.ctrl.Clear()
	if len(f.titles.titles) != len(want) {
		t.Errorf("expected no extra title change, got %v", f.titles.titles)
	}
}

func TestRating(t *testing.T) {
	t.Run("Confirm Without Rating Has No Effect", func(t *testing.T) {
		f := newFixture(t)
		f.load(t, "tt0133093")

		if _, err := f.ctrl.Confirm(); !errors.Is(err, domain.ErrRatingRequired) {
			t.Errorf("expected ErrRatingRequired, got %v", err)
		}
		if len(f.list.Entries()) != 0 {
			t.Errorf("expected list unchanged, got %+v", f.list.Entries())
		}
		if f.ctrl.View().State != StateLoaded {
			t.Error("expected detail still shown")
		}
		if f.ctrl.View().CanConfirm() {
			t.Error("expected confirm disabled without rating")
		}
	})

	t.Run("Confirm Adds And Clears", func(t *testing.T) {
		f := newFixture(t)
		f.load(t, "tt0133093")
		if err := f.ctrl.SetRating(9); err != nil {
			t.Fatalf("set rating failed: %v", err)
		}
		if !f.ctrl.View().CanConfirm() {
			t.Fatal("expected confirm enabled once rated")
		}

		entry, err := f.ctrl.Confirm()
		if err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if entry.ID != "tt0133093" || entry.UserRating != 9 || entry.RuntimeMinutes != 136 {
			t.Errorf("unexpected entry: %+v", entry)
		}
		if f.ctrl.View().State != StateNone {
			t.Error("expected selection cleared after confirm")
		}
		if f.titles.last() != "popcorn" {
			t.Errorf("expected default title after confirm, got %q", f.titles.last())
		}
	})

	t.Run("Watched Movie Shows Prior Rating", func(t *testing.T) {
		f := newFixture(t)
		f.list.Add(domain.MovieDetail{ID: "tt0083658", Title: "Blade Runner"}, 7)
		f.load(t, "tt0083658")

		v := f.ctrl.View()
		if !v.Watched || v.PriorRating != 7 {
			t.Errorf("expected watched with rating 7, got %+v", v)
		}

		f.ctrl.SetRating(3)
		f.ctrl.AdjustRating(1)
		if v := f.ctrl.View(); v.Rating != 0 || v.CanConfirm() {
			t.Errorf("expected rating control disabled for watched movie, got %+v", v)
		}
	})

	t.Run("Adjust Clamps", func(t *testing.T) {
		f := newFixture(t)
		f.load(t, "tt0133093")

		f.ctrl.AdjustRating(-1)
		if got := f.ctrl.View().Rating; got != 1 {
			t.Errorf("expected clamp to 1, got %d", got)
		}
		f.ctrl.AdjustRating(20)
		if got := f.ctrl.View().Rating; got != 10 {
			t.Errorf("expected clamp to 10, got %d", got)
		}
	})

	t.Run("Rejects Out Of Range", func(t *testing.T) {
		f := newFixture(t)
		f.load(t, "tt0133093")
		if err := f.ctrl.SetRating(0); err == nil {
			t.Error("expected error for rating 0")
		}
		if err := f.ctrl.SetRating(11); err == nil {
			t.Error("expected error for rating 11")
		}
	})

	t.Run("Rating Resets On New Selection", func(t *testing.T) {
		f := newFixture(t)
		f.load(t, "tt0133093")
		f.ctrl.SetRating(8)
		f.load(t, "tt0083658")
		if got := f.ctrl.View().Rating; got != 0 {
			t.Errorf("expected rating reset, got %d", got)
		}
	})
}
