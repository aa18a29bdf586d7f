package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/popcorn/internal/adapter"
	"github.com/mmcdole/popcorn/internal/detail"
	"github.com/mmcdole/popcorn/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, Keys.Kill) {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmRemove:
		switch {
		case key.Matches(msg, Keys.Confirm):
			return m.removePending()
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
			m.pendingRemove, m.pendingTitle = "", ""
		}
		return m, nil
	}

	// Filter typing owns the keyboard until accepted or cleared
	if m.Focus == FocusWatched && m.showsWatched() && m.Watched.IsFilterTyping() {
		return m, m.Watched.Update(msg)
	}

	if m.Focus == FocusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Detail.Selected() != "" {
			m.closeDetail()
			return m, nil
		}
		if m.Focus == FocusWatched && m.Watched.IsFiltering() {
			m.Watched.ClearFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		// Start over: focus the search bar with an empty query
		focus := m.setFocus(FocusSearch)
		m.SearchBar.Reset()
		return m, tea.Batch(focus, m.queryChanged(""))

	case key.Matches(msg, Keys.Tab):
		return m, m.cycleFocus()

	case key.Matches(msg, Keys.Select):
		id := m.highlightedID()
		if id == "" {
			return m, nil
		}
		return m, m.selectMovie(id)

	case key.Matches(msg, Keys.Add):
		return m.confirmAdd()

	case key.Matches(msg, Keys.RateUp):
		m.Detail.AdjustRating(1)
		return m, nil

	case key.Matches(msg, Keys.RateDown):
		m.Detail.AdjustRating(-1)
		return m, nil

	case key.Matches(msg, Keys.RateDigits):
		if err := m.Detail.SetRating(digitRating(msg.String())); err != nil {
			return m, m.setStatus(err.Error(), true)
		}
		return m, nil

	case key.Matches(msg, Keys.ToggleResults):
		m.ResultsBox.Toggle()
		m.updateLayout()
		if !m.ResultsBox.Expanded && m.Focus == FocusResults {
			return m, m.setFocus(FocusSearch)
		}
		return m, nil

	case key.Matches(msg, Keys.ToggleSide):
		m.SideBox.Toggle()
		m.updateLayout()
		if !m.SideBox.Expanded && m.Focus == FocusWatched {
			return m, m.setFocus(FocusSearch)
		}
		return m, nil

	case key.Matches(msg, Keys.Remove):
		if m.Focus != FocusWatched || !m.showsWatched() {
			return m, nil
		}
		if e, ok := m.Watched.Highlighted(); ok {
			m.pendingRemove, m.pendingTitle = e.ID, e.Title
			m.State = StateConfirmRemove
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if m.Focus == FocusWatched && m.showsWatched() {
			return m, m.Watched.StartFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Open):
		id := m.Detail.Selected()
		if id == "" {
			id = m.highlightedID()
		}
		url := adapter.MovieURL(id)
		if url == "" || m.Opener == nil {
			return m, nil
		}
		return m, OpenURLCmd(m.Opener, url)
	}

	// Route navigation to the focused list
	switch m.Focus {
	case FocusResults:
		return m, m.Results.Update(msg)
	case FocusWatched:
		if m.showsWatched() {
			return m, m.Watched.Update(msg)
		}
	}
	return m, nil
}

// handleSearchKey handles keys while the search bar has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		if m.Detail.Selected() != "" {
			m.closeDetail()
			return m, nil
		}
		return m, m.setFocus(FocusResults)

	case key.Matches(msg, Keys.Enter):
		// Already searching
		return m, nil

	case key.Matches(msg, Keys.Tab):
		return m, m.cycleFocus()

	case msg.Type == tea.KeyDown:
		if m.Results.Len() > 0 && m.ResultsBox.Expanded {
			return m, m.setFocus(FocusResults)
		}
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.SearchBar, cmd, changed = m.SearchBar.Update(msg)
	if changed {
		cmd = tea.Batch(cmd, m.queryChanged(m.SearchBar.Value()))
	}
	return m, cmd
}

// confirmAdd adds the open movie to the watched list
func (m Model) confirmAdd() (Model, tea.Cmd) {
	v := m.Detail.View()
	if v.State != detail.StateLoaded || v.Watched {
		return m, nil
	}

	entry, err := m.Detail.Confirm()
	switch {
	case errors.Is(err, domain.ErrRatingRequired):
		return m, m.setStatus("Rate the movie first", true)
	case err != nil:
		m.logger.Error("failed to add movie", "id", v.ID, "error", err)
		return m, m.setStatus(fmt.Sprintf("Could not add movie: %v", err), true)
	}

	m.Results.SetSelectedID("")
	m.refreshWatched()
	return m, m.setStatus(fmt.Sprintf("Added %s", entry.Title), false)
}

// removePending removes the entry awaiting confirmation
func (m Model) removePending() (Model, tea.Cmd) {
	id, title := m.pendingRemove, m.pendingTitle
	m.State = StateBrowsing
	m.pendingRemove, m.pendingTitle = "", ""

	removed, err := m.Watchlist.Remove(id)
	if err != nil {
		m.logger.Error("failed to remove movie", "id", id, "error", err)
		return m, m.setStatus(fmt.Sprintf("Could not remove movie: %v", err), true)
	}
	m.refreshWatched()
	if !removed {
		return m, nil
	}
	return m, m.setStatus(fmt.Sprintf("Removed %s", title), false)
}

// digitRating maps a digit key to a rating, with 0 meaning 10
func digitRating(s string) int {
	if s == "0" {
		return 10
	}
	return int(s[0] - '0')
}
