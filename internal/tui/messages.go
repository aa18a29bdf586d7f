package tui

import (
	"github.com/mmcdole/popcorn/internal/detail"
	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/search"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchDebouncedMsg signals that a query's debounce delay has elapsed
type SearchDebouncedMsg struct {
	Req search.Request
}

// SearchResultsMsg carries the outcome of search request Seq
type SearchResultsMsg struct {
	Seq     uint64
	Results []domain.SearchResult
	Err     error
}

// DetailLoadedMsg carries the outcome of detail request Seq
type DetailLoadedMsg struct {
	Req    detail.Request
	Detail *domain.MovieDetail
	Err    error
}

// URLOpenedMsg signals that a movie page was handed to the browser
type URLOpenedMsg struct {
	URL string
}

// StatusMsg displays a transient status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}
