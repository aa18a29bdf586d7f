package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// WatchedList is the scrollable, filterable watched list
type WatchedList struct {
	entries []domain.WatchedEntry
	listCursor

	width   int
	height  int
	focused bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	matches      fuzzy.Matches // nil when no filter query
}

// NewWatchedList creates an empty watched list
func NewWatchedList() *WatchedList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &WatchedList{filterInput: ti}
}

// SetItems replaces the entries, keeping the filter and cursor where possible
func (l *WatchedList) SetItems(entries []domain.WatchedEntry) {
	l.entries = entries
	l.applyFilter()
	l.clamp(l.Len())
}

// Len returns the number of visible rows
func (l *WatchedList) Len() int {
	if l.matches != nil {
		return len(l.matches)
	}
	return len(l.entries)
}

// Total returns the number of entries before filtering
func (l *WatchedList) Total() int {
	return len(l.entries)
}

// Highlighted returns the entry under the cursor
func (l *WatchedList) Highlighted() (domain.WatchedEntry, bool) {
	if l.cursor < 0 || l.cursor >= l.Len() {
		return domain.WatchedEntry{}, false
	}
	return l.entries[l.mapIndex(l.cursor)], true
}

// SetFocused sets keyboard focus. Losing focus stops filter typing.
func (l *WatchedList) SetFocused(focused bool) {
	l.focused = focused
	if !focused {
		l.filterInput.Blur()
	}
}

// SetSize sets the rendered size in cells
func (l *WatchedList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

func (l *WatchedList) recalcMaxVisible() {
	l.maxVisible = l.height - ScrollIndicatorLines
	if l.filterActive {
		l.maxVisible-- // filter bar
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

// StartFilter opens the filter bar and focuses it
func (l *WatchedList) StartFilter() tea.Cmd {
	l.filterActive = true
	l.recalcMaxVisible()
	return l.filterInput.Focus()
}

// IsFiltering reports whether a filter is applied or being typed
func (l *WatchedList) IsFiltering() bool {
	return l.filterActive
}

// IsFilterTyping reports whether keys go to the filter input
func (l *WatchedList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// ClearFilter removes the filter and shows all entries
func (l *WatchedList) ClearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.matches = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
	l.clamp(l.Len())
}

// Update handles navigation and filter keys while focused
func (l *WatchedList) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}

	// Handle filter input when active AND focused (typing mode)
	if l.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(keyMsg, ListKeys.Escape):
				l.ClearFilter()
				return nil
			case key.Matches(keyMsg, ListKeys.Enter):
				// Accept filter, blur input to allow navigation
				l.filterInput.Blur()
				return nil
			case keyMsg.Type == tea.KeyBackspace && l.filterInput.Value() == "":
				l.ClearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		l.reset()
		return cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	// Filter active but blurred (navigation mode with filter results)
	if l.filterActive {
		switch {
		case key.Matches(keyMsg, ListKeys.Escape):
			l.ClearFilter()
			return nil
		case key.Matches(keyMsg, ListKeys.Filter):
			return l.filterInput.Focus()
		}
	}

	l.move(keyMsg, l.Len())
	return nil
}

func (l *WatchedList) applyFilter() {
	query := l.filterInput.Value()
	l.filterQuery = query

	if query == "" {
		l.matches = nil
		return
	}

	titles := make([]string, len(l.entries))
	for i, e := range l.entries {
		titles[i] = e.Title
	}

	// Matching folds case itself; MatchedIndexes are byte offsets into titles
	l.matches = fuzzy.Find(query, titles)
	if l.matches == nil {
		l.matches = fuzzy.Matches{}
	}
}

func (l *WatchedList) mapIndex(i int) int {
	if l.matches != nil && i < len(l.matches) {
		return l.matches[i].Index
	}
	return i
}

func (l *WatchedList) matchedIndexes(i int) []int {
	if l.matches != nil && i < len(l.matches) {
		return l.matches[i].MatchedIndexes
	}
	return nil
}

// View renders the list body (no border)
func (l *WatchedList) View() string {
	var lines []string

	count := l.Len()
	if count == 0 {
		msg := "Nothing watched yet. Rate a movie to add it."
		if l.filterActive && l.filterQuery != "" {
			msg = "No matches"
		}
		lines = append(lines, styles.DimStyle.Render(msg))
	} else {
		start, end := l.window(count)

		header := " "
		if start > 0 {
			header = styles.DimStyle.Render("↑ more")
		}
		lines = append(lines, header)

		for i := start; i < end; i++ {
			e := l.entries[l.mapIndex(i)]
			lines = append(lines, l.renderEntry(e, l.matchedIndexes(i), i == l.cursor && l.focused))
		}

		footer := " "
		if end < count {
			footer = styles.DimStyle.Render("↓ more")
		}
		lines = append(lines, footer)
	}

	if l.filterActive {
		lines = append(lines, l.renderFilterBar())
	}

	return strings.Join(lines, "\n")
}

func (l *WatchedList) renderEntry(e domain.WatchedEntry, matched []int, selected bool) string {
	stats := fmt.Sprintf("  ⭐ %.1f  🌟 %d  ⏳ %d min", e.ExternalRating, e.UserRating, e.RuntimeMinutes)
	titleWidth := l.width - len([]rune(stats)) - 4
	title := styles.Truncate(e.Title, titleWidth)

	parts := highlightParts(title, matched, selected)
	dim := styles.DimGray
	parts = append(parts, styles.RowPart{Text: stats, Foreground: &dim})
	return styles.RenderListRow(parts, selected, l.width)
}

// highlightParts splits title into row parts, accenting matched byte offsets
func highlightParts(title string, matched []int, selected bool) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: title}}
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	accent := styles.MatchHighlightStyle
	if selected {
		accent = styles.MatchHighlightSelectedStyle
	}

	var parts []styles.RowPart
	var run strings.Builder
	runMatched := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String()}
		if runMatched {
			part.Style = &accent
		}
		parts = append(parts, part)
		run.Reset()
	}

	for i, r := range title {
		if set[i] != runMatched {
			flush()
			runMatched = set[i]
		}
		run.WriteRune(r)
	}
	flush()
	return parts
}

func (l *WatchedList) renderFilterBar() string {
	input := l.filterInput.View()

	// Show match count
	countStr := ""
	if l.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", l.Len(), l.Total()))
	}

	return input + countStr
}
