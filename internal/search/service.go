package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/popcorn/internal/domain"
)

// DefaultMinQueryLength is the shortest query that reaches the network
const DefaultMinQueryLength = 3

// State is the lifecycle of the current query
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Request is one debounced search. Seq orders requests; only the newest may
// change state.
type Request struct {
	Seq    uint64
	Query  string
	Ticket Ticket
}

// Snapshot is a copy of the search state for rendering
type Snapshot struct {
	State   State
	Query   string
	Results []domain.SearchResult
	Message string
}

// Service turns a query into results.
//
// The caller drives it in four steps: SetQuery on every keystroke, Begin when
// the request's ticket delay has elapsed, Fetch off the UI goroutine, and
// Resolve with the outcome. Begin and Resolve drop anything superseded by a
// newer SetQuery.
type Service struct {
	repo      domain.MovieRepository
	debouncer *Debouncer
	minLength int
	logger    *slog.Logger

	mu      sync.Mutex
	seq     uint64
	query   string
	state   State
	results []domain.SearchResult
	message string
	cancel  context.CancelFunc // cancels the in-flight request
}

// NewService creates a search service
func NewService(repo domain.MovieRepository, debounce time.Duration, minLength int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if minLength <= 0 {
		minLength = DefaultMinQueryLength
	}
	return &Service{
		repo:      repo,
		debouncer: NewDebouncer(debounce),
		minLength: minLength,
		logger:    logger,
	}
}

// SetQuery records a new query. It cancels any in-flight request. Short
// queries clear the results immediately and return ok=false; otherwise the
// returned request should be started after req.Ticket.Delay.
func (s *Service) SetQuery(query string) (req Request, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.query = query
	s.cancelLocked()

	if query == "" || utf8.RuneCountInString(query) < s.minLength {
		s.debouncer.Cancel()
		s.state = StateIdle
		s.results = nil
		s.message = ""
		return Request{}, false
	}

	return Request{Seq: s.seq, Query: query, Ticket: s.debouncer.Next()}, true
}

// Begin moves to loading if req is still the newest request and its debounce
// has settled. The returned context is cancelled by the next SetQuery.
func (s *Service) Begin(req Request) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Seq != s.seq || !s.debouncer.Ready(req.Ticket) {
		return nil, false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = StateLoading
	s.message = ""
	s.logger.Debug("search started", "query", req.Query, "seq", req.Seq)
	return ctx, true
}

// Fetch performs the network call for req. It holds no lock and is safe to
// call from a command goroutine.
func (s *Service) Fetch(ctx context.Context, req Request) ([]domain.SearchResult, error) {
	return s.repo.Search(ctx, req.Query)
}

// Resolve applies the outcome of request seq. It returns false when the
// outcome was discarded: the request is stale or it was cancelled.
func (s *Service) Resolve(seq uint64, results []domain.SearchResult, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.logger.Debug("discarding stale search response", "seq", seq, "current", s.seq)
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if err != nil {
		s.logger.Warn("search failed", "query", s.query, "error", err)
		s.state = StateError
		s.results = nil
		s.message = domain.DisplayMessage(err)
		return true
	}

	s.state = StateSuccess
	s.results = results
	s.message = ""
	s.logger.Debug("search resolved", "query", s.query, "count", len(results))
	return true
}

// Snapshot returns a copy of the current state
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]domain.SearchResult, len(s.results))
	copy(results, s.results)
	return Snapshot{
		State:   s.state,
		Query:   s.query,
		Results: results,
		Message: s.message,
	}
}

// Close cancels any in-flight request
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.debouncer.Cancel()
}

func (s *Service) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
