package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/popcorn/internal/detail"
	"github.com/mmcdole/popcorn/internal/search"
)

// Command factories for async operations

// URLOpener opens a URL outside the terminal
type URLOpener interface {
	Open(target string) error
}

// DebounceCmd waits out the request's debounce delay
func DebounceCmd(req search.Request) tea.Cmd {
	return tea.Tick(req.Ticket.Delay, func(time.Time) tea.Msg {
		return SearchDebouncedMsg{Req: req}
	})
}

// SearchCmd runs a search that Begin has accepted
func SearchCmd(svc *search.Service, ctx context.Context, req search.Request) tea.Cmd {
	return func() tea.Msg {
		results, err := svc.Fetch(ctx, req)
		return SearchResultsMsg{Seq: req.Seq, Results: results, Err: err}
	}
}

// LoadDetailCmd fetches the details of a selected movie
func LoadDetailCmd(ctrl *detail.Controller, ctx context.Context, req detail.Request) tea.Cmd {
	return func() tea.Msg {
		d, err := ctrl.Fetch(ctx, req)
		return DetailLoadedMsg{Req: req, Detail: d, Err: err}
	}
}

// OpenURLCmd hands a URL to the browser
func OpenURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "opening browser"}
		}
		return URLOpenedMsg{URL: url}
	}
}

// ClearStatusCmd clears the status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
