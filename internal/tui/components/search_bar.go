package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// SearchBar is the query input at the top of the screen
type SearchBar struct {
	input textinput.Model
}

// NewSearchBar creates a focused search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = styles.SearchTextStyle
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return SearchBar{input: ti}
}

// Focus gives the input keyboard focus
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current query
func (s SearchBar) Value() string {
	return s.input.Value()
}

// Reset clears the query
func (s *SearchBar) Reset() {
	s.input.Reset()
}

// SetWidth sets the input width in cells
func (s *SearchBar) SetWidth(width int) {
	s.input.Width = width - 4
}

// Update forwards input events. changed reports whether the query text changed.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the input
func (s SearchBar) View() string {
	return s.input.View()
}

// RenderResultCount renders the "Found N results" line
func RenderResultCount(n int) string {
	word := "results"
	if n == 1 {
		word = "result"
	}
	return styles.SubtitleStyle.Render("Found ") +
		styles.AccentStyle.Render(fmt.Sprintf("%d", n)) +
		styles.SubtitleStyle.Render(" "+word)
}
