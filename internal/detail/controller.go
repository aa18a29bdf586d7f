package detail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/popcorn/internal/domain"
)

// State is the lifecycle of the selected movie
type State int

const (
	StateNone State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// TitleSink owns the display title. The controller sets the movie title when
// a detail loads and restores the default when that detail goes away.
type TitleSink interface {
	SetTitle(title string)
}

// Watchlist is the part of the watched list the controller reads and appends to
type Watchlist interface {
	Contains(id string) bool
	Rating(id string) (int, bool)
	Add(detail domain.MovieDetail, rating int) (domain.WatchedEntry, error)
}

// Request is one detail lookup. Only the newest request may change state.
type Request struct {
	Seq uint64
	ID  string
}

// View is a copy of the controller state for rendering
type View struct {
	State   State
	ID      string
	Detail  *domain.MovieDetail
	Message string

	Watched     bool // already in the watched list
	PriorRating int  // stored user rating when Watched
	Rating      int  // rating being entered, 0 when none
}

// CanConfirm reports whether the add action is enabled
func (v View) CanConfirm() bool {
	return v.State == StateLoaded && !v.Watched && v.Rating > 0
}

// Controller manages the selected movie: lookup, rating and add-to-watched.
type Controller struct {
	repo         domain.MovieRepository
	watched      Watchlist
	titles       TitleSink
	defaultTitle string
	maxRating    int
	logger       *slog.Logger

	mu      sync.Mutex
	seq     uint64
	id      string
	state   State
	detail  *domain.MovieDetail
	message string
	rating  int
	titled  bool // titles holds the movie title
	cancel  context.CancelFunc
}

// NewController creates a detail controller. A nil titles discards title changes.
func NewController(
	repo domain.MovieRepository,
	watched Watchlist,
	titles TitleSink,
	defaultTitle string,
	maxRating int,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if titles == nil {
		titles = discardTitles{}
	}
	if maxRating <= 0 {
		maxRating = 10
	}
	return &Controller{
		repo:         repo,
		watched:      watched,
		titles:       titles,
		defaultTitle: defaultTitle,
		maxRating:    maxRating,
		logger:       logger,
	}
}

// Select starts loading id. Selecting the current movie again clears the
// selection instead and returns ok=false.
func (c *Controller) Select(id string) (ctx context.Context, req Request, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == "" || (id == c.id && c.state != StateNone) {
		c.clearLocked()
		return nil, Request{}, false
	}

	c.cancelLocked()
	c.restoreTitleLocked()

	c.seq++
	c.id = id
	c.state = StateLoading
	c.detail = nil
	c.message = ""
	c.rating = 0

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.logger.Debug("detail requested", "id", id, "seq", c.seq)
	return ctx, Request{Seq: c.seq, ID: id}, true
}

// Fetch performs the lookup for req off the UI goroutine
func (c *Controller) Fetch(ctx context.Context, req Request) (*domain.MovieDetail, error) {
	return c.repo.GetMovie(ctx, req.ID)
}

// Resolve applies the outcome of request seq. Stale and cancelled outcomes
// are discarded and reported as false.
func (c *Controller) Resolve(seq uint64, detail *domain.MovieDetail, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq || c.state != StateLoading {
		c.logger.Debug("discarding stale detail response", "seq", seq, "current", c.seq)
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	c.cancelLocked()

	if err != nil {
		c.logger.Warn("detail lookup failed", "id", c.id, "error", err)
		c.state = StateError
		c.message = domain.DisplayMessage(err)
		return true
	}
	if detail == nil {
		c.state = StateError
		c.message = domain.MessageNotFound
		return true
	}

	c.state = StateLoaded
	c.detail = detail
	c.titles.SetTitle(detail.Title)
	c.titled = true
	return true
}

// Clear dismisses the selection
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Controller) clearLocked() {
	c.cancelLocked()
	c.restoreTitleLocked()
	c.seq++
	c.id = ""
	c.state = StateNone
	c.detail = nil
	c.message = ""
	c.rating = 0
}

func (c *Controller) restoreTitleLocked() {
	if c.titled {
		c.titles.SetTitle(c.defaultTitle)
		c.titled = false
	}
}

func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// SetRating sets the rating being entered. It is ignored unless a movie that
// is not yet watched is loaded.
func (c *Controller) SetRating(n int) error {
	if n < 1 || n > c.maxRating {
		return fmt.Errorf("rating %d out of range 1-%d", n, c.maxRating)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.rateableLocked() {
		return nil
	}
	c.rating = n
	return nil
}

// AdjustRating moves the rating by delta, clamped to 1..max
func (c *Controller) AdjustRating(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.rateableLocked() {
		return
	}
	n := c.rating + delta
	if n < 1 {
		n = 1
	}
	if n > c.maxRating {
		n = c.maxRating
	}
	c.rating = n
}

func (c *Controller) rateableLocked() bool {
	return c.state == StateLoaded && !c.watched.Contains(c.id)
}

// Confirm adds the loaded movie with the entered rating and clears the
// selection. Without a rating nothing changes.
func (c *Controller) Confirm() (domain.WatchedEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLoaded || c.detail == nil {
		return domain.WatchedEntry{}, fmt.Errorf("no movie loaded")
	}
	if c.rating <= 0 {
		return domain.WatchedEntry{}, domain.ErrRatingRequired
	}

	entry, err := c.watched.Add(*c.detail, c.rating)
	if err != nil {
		return domain.WatchedEntry{}, err
	}
	c.clearLocked()
	return entry, nil
}

// View returns a copy of the current state with watched membership derived
// from the watched list
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		State:   c.state,
		ID:      c.id,
		Message: c.message,
		Rating:  c.rating,
	}
	if c.detail != nil {
		d := *c.detail
		v.Detail = &d
	}
	if c.state == StateLoaded {
		v.PriorRating, v.Watched = c.watched.Rating(c.id)
	}
	return v
}

// Selected returns the selected id, "" when nothing is selected
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// MaxRating returns the highest rating accepted by SetRating
func (c *Controller) MaxRating() int {
	return c.maxRating
}

// Close cancels any in-flight lookup
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

type discardTitles struct{}

func (discardTitles) SetTitle(string) {}
