package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// ResultList is a scrollable list of search results
type ResultList struct {
	items []domain.SearchResult
	listCursor

	width   int
	height  int
	focused bool

	// Ids already in the watched list, marked with a check
	watched map[string]bool
	// Id of the movie shown in the detail panel
	selectedID string
}

// NewResultList creates an empty result list
func NewResultList() *ResultList {
	return &ResultList{watched: make(map[string]bool)}
}

// SetItems replaces the results and moves the cursor to the top
func (l *ResultList) SetItems(items []domain.SearchResult) {
	l.items = items
	l.reset()
}

// Items returns the current results
func (l *ResultList) Items() []domain.SearchResult {
	return l.items
}

// Len returns the number of results
func (l *ResultList) Len() int {
	return len(l.items)
}

// Highlighted returns the result under the cursor
func (l *ResultList) Highlighted() (domain.SearchResult, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return domain.SearchResult{}, false
	}
	return l.items[l.cursor], true
}

// SetWatched marks which ids are in the watched list
func (l *ResultList) SetWatched(ids map[string]bool) {
	l.watched = ids
}

// SetSelectedID marks the row whose detail is open
func (l *ResultList) SetSelectedID(id string) {
	l.selectedID = id
}

// SetFocused sets keyboard focus
func (l *ResultList) SetFocused(focused bool) {
	l.focused = focused
}

// SetSize sets the rendered size in cells
func (l *ResultList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.maxVisible = height - ScrollIndicatorLines
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.ensureVisible()
}

// Update handles navigation keys while focused
func (l *ResultList) Update(msg tea.Msg) tea.Cmd {
	if !l.focused {
		return nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		l.move(keyMsg, len(l.items))
	}
	return nil
}

// View renders the list body (no border)
func (l *ResultList) View() string {
	if len(l.items) == 0 {
		return styles.DimStyle.Render("No results")
	}

	start, end := l.window(len(l.items))
	var lines []string

	// ALWAYS reserve space for header (even if empty) to prevent layout shifts
	header := " "
	if start > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	lines = append(lines, header)

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(l.items[i], i == l.cursor && l.focused))
	}

	footer := " "
	if end < len(l.items) {
		footer = styles.DimStyle.Render("↓ more")
	}
	lines = append(lines, footer)

	return strings.Join(lines, "\n")
}

func (l *ResultList) renderItem(item domain.SearchResult, selected bool) string {
	marker := "  "
	if l.watched[item.ID] {
		marker = styles.WatchedCheck + " "
	}

	year := ""
	if item.Year != "" {
		year = fmt.Sprintf(" (%s)", item.Year)
	}
	title := styles.Truncate(item.Title, l.width-len([]rune(year))-6)

	parts := []styles.RowPart{{Text: title, Bold: item.ID == l.selectedID}}
	if year != "" {
		dim := styles.DimGray
		parts = append(parts, styles.RowPart{Text: year, Foreground: &dim})
	}
	return marker + styles.RenderListRow(parts, selected, l.width-2)
}
