package tui

import (
	"log/slog"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/popcorn/internal/detail"
	"github.com/mmcdole/popcorn/internal/search"
	"github.com/mmcdole/popcorn/internal/tui/components"
	"github.com/mmcdole/popcorn/internal/tui/styles"
	"github.com/mmcdole/popcorn/internal/watchlist"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmRemove
)

// Focus is the pane receiving keyboard input
type Focus int

const (
	FocusSearch Focus = iota
	FocusResults
	FocusWatched
)

// statusTimeout is how long a status message stays in the footer
const statusTimeout = 3 * time.Second

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Focus Focus
	Ready bool

	// Services
	SearchSvc *search.Service
	Detail    *detail.Controller
	Watchlist *watchlist.Service
	Opener    URLOpener
	Title     *WindowTitle

	// UI Components
	SearchBar  components.SearchBar
	Results    *components.ResultList
	Watched    *components.WatchedList
	ResultsBox components.Box
	SideBox    components.Box
	Spinner    spinner.Model
	Help       help.Model

	// Last search state applied to the result list
	search search.Snapshot

	// Entry awaiting remove confirmation
	pendingRemove string
	pendingTitle  string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool

	logger *slog.Logger
}

// NewModel creates a new application model. title must be the TitleSink the
// detail controller was built with.
func NewModel(
	searchSvc *search.Service,
	ctrl *detail.Controller,
	watched *watchlist.Service,
	title *WindowTitle,
	opener URLOpener,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if title == nil {
		title = NewWindowTitle("")
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	m := Model{
		State:      StateBrowsing,
		Focus:      FocusSearch,
		SearchSvc:  searchSvc,
		Detail:     ctrl,
		Watchlist:  watched,
		Opener:     opener,
		Title:      title,
		SearchBar:  components.NewSearchBar(),
		Results:    components.NewResultList(),
		Watched:    components.NewWatchedList(),
		ResultsBox: components.NewBox("r", "Results"),
		SideBox:    components.NewBox("w", "Watched"),
		Spinner:    sp,
		Help:       h,
		search:     searchSvc.Snapshot(),
		logger:     logger,
	}
	m.refreshWatched()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if title, changed := m.Title.take(); changed {
		cmds = append(cmds, tea.SetWindowTitle(title))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages. Title changes made by the detail controller
// while handling msg are flushed to the terminal.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if title, changed := next.Title.take(); changed {
		cmd = tea.Batch(cmd, tea.SetWindowTitle(title))
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case SearchDebouncedMsg:
		ctx, ok := m.SearchSvc.Begin(msg.Req)
		if !ok {
			return m, nil
		}
		m.syncSearch()
		return m, tea.Batch(SearchCmd(m.SearchSvc, ctx, msg.Req), m.Spinner.Tick)

	case SearchResultsMsg:
		if m.SearchSvc.Resolve(msg.Seq, msg.Results, msg.Err) {
			m.syncSearch()
		}
		return m, nil

	case DetailLoadedMsg:
		m.Detail.Resolve(msg.Req.Seq, msg.Detail, msg.Err)
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case URLOpenedMsg:
		return m, m.setStatus("Opened "+msg.URL, false)

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input housekeeping
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
	cmds = append(cmds, cmd)
	cmds = append(cmds, m.Watched.Update(msg))
	return m, tea.Batch(cmds...)
}

// queryChanged hands the search bar's text to the search service
func (m *Model) queryChanged(query string) tea.Cmd {
	req, ok := m.SearchSvc.SetQuery(query)
	m.syncSearch()
	if !ok {
		return nil
	}
	return DebounceCmd(req)
}

// syncSearch copies the search state into the result list
func (m *Model) syncSearch() {
	prev := m.search
	m.search = m.SearchSvc.Snapshot()
	if !slices.Equal(prev.Results, m.search.Results) {
		m.Results.SetItems(m.search.Results)
	}
}

// selectMovie opens id in the detail panel, or closes it when id is already open
func (m *Model) selectMovie(id string) tea.Cmd {
	ctx, req, ok := m.Detail.Select(id)
	m.Results.SetSelectedID(m.Detail.Selected())
	if !ok {
		return nil
	}
	return tea.Batch(LoadDetailCmd(m.Detail, ctx, req), m.Spinner.Tick)
}

// closeDetail dismisses the detail panel
func (m *Model) closeDetail() {
	m.Detail.Clear()
	m.Results.SetSelectedID("")
}

// refreshWatched reloads the watched list and the result check marks
func (m *Model) refreshWatched() {
	entries := m.Watchlist.Entries()
	m.Watched.SetItems(entries)

	ids := make(map[string]bool, len(entries))
	for _, e := range entries {
		ids[e.ID] = true
	}
	m.Results.SetWatched(ids)
}

// setFocus moves keyboard focus to f
func (m *Model) setFocus(f Focus) tea.Cmd {
	m.Focus = f
	m.Results.SetFocused(f == FocusResults)
	m.Watched.SetFocused(f == FocusWatched)
	m.ResultsBox.Focused = f == FocusResults
	m.SideBox.Focused = f == FocusWatched

	if f == FocusSearch {
		return m.SearchBar.Focus()
	}
	m.SearchBar.Blur()
	return nil
}

// cycleFocus moves focus to the next pane that can take it
func (m *Model) cycleFocus() tea.Cmd {
	next := m.Focus
	for range 3 {
		next = (next + 1) % 3
		if m.canFocus(next) {
			break
		}
	}
	return m.setFocus(next)
}

func (m Model) canFocus(f Focus) bool {
	switch f {
	case FocusResults:
		return m.ResultsBox.Expanded
	case FocusWatched:
		return m.SideBox.Expanded && m.showsWatched()
	default:
		return true
	}
}

// showsWatched reports whether the side box holds the watched list rather than a movie
func (m Model) showsWatched() bool {
	return m.Detail.Selected() == ""
}

func (m Model) sideTitle() string {
	if m.showsWatched() {
		return "Watched"
	}
	return "Movie"
}

// loading reports whether any request is in flight
func (m Model) loading() bool {
	return m.search.State == search.StateLoading || m.Detail.View().State == detail.StateLoading
}

// highlightedID returns the id under the cursor of the focused list
func (m Model) highlightedID() string {
	switch m.Focus {
	case FocusResults:
		if r, ok := m.Results.Highlighted(); ok {
			return r.ID
		}
	case FocusWatched:
		if e, ok := m.Watched.Highlighted(); ok {
			return e.ID
		}
	}
	return ""
}

// setStatus shows a footer message that clears itself
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTimeout)
}

// Close releases in-flight requests
func (m Model) Close() {
	m.SearchSvc.Close()
	m.Detail.Close()
}
