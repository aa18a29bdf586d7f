package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/popcorn/internal/detail"
	"github.com/mmcdole/popcorn/internal/search"
	"github.com/mmcdole/popcorn/internal/tui/components"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.SearchBar.View(),
		m.renderSearchStatus(),
		m.renderBoxes(),
		m.renderFooter(),
	)

	switch m.State {
	case StateHelp:
		return m.renderOverlay(m.renderHelp())
	case StateConfirmRemove:
		return m.renderOverlay(m.renderConfirmRemove())
	}
	return screen
}

// renderHeader renders the title bar
func (m Model) renderHeader() string {
	title := "🍿 " + m.Title.Current()
	return styles.HeaderStyle.Width(m.Width).Render(styles.Truncate(title, m.Width-2))
}

// renderSearchStatus renders the line under the search bar
func (m Model) renderSearchStatus() string {
	switch m.search.State {
	case search.StateLoading:
		return m.Spinner.View() + " " + styles.DimStyle.Render("Searching...")
	case search.StateError:
		return styles.ErrorStyle.Render("⛔ " + m.search.Message)
	case search.StateSuccess:
		return components.RenderResultCount(len(m.search.Results))
	default:
		return " "
	}
}

// renderBoxes renders the results and side boxes next to each other
func (m Model) renderBoxes() string {
	layout := m.calculateBoxLayout(m.Width)
	height := m.boxHeight()

	results := m.ResultsBox.Render(m.Results.View(), layout.resultsWidth, height)

	side := m.SideBox
	side.Title = m.sideTitle()
	if !m.showsWatched() {
		if v := m.Detail.View(); v.Detail != nil && v.State == detail.StateLoaded {
			side.Title = v.Detail.Title
		}
	}
	sideBody := m.renderSideBody(layout.sideWidth - 2)

	return lipgloss.JoinHorizontal(lipgloss.Top, results, side.Render(sideBody, layout.sideWidth, height))
}

// renderSideBody renders the open movie, or the watched summary and list
func (m Model) renderSideBody(width int) string {
	if !m.showsWatched() {
		return components.RenderDetail(m.Detail.View(), m.Detail.MaxRating(), m.Spinner.View(), width)
	}
	return components.RenderSummary(m.Watchlist.Summary(), width) + "\n\n" + m.Watched.View()
}

// renderFooter renders the status message or the short help
func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		style := styles.SuccessStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		return style.Render(styles.Truncate(m.StatusMsg, m.Width))
	}
	return m.Help.ShortHelpView(Keys.ShortHelp())
}

// renderHelp renders the full key reference
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString(m.Help.FullHelpView(Keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render("esc or ? to close"))
	return styles.ModalStyle.Render(b.String())
}

// renderConfirmRemove renders the remove confirmation dialog
func (m Model) renderConfirmRemove() string {
	body := fmt.Sprintf("Remove %s from your watched list?", styles.AccentStyle.Render(m.pendingTitle))
	hint := styles.HelpKeyStyle.Render("y") + styles.HelpDescStyle.Render(" confirm  ") +
		styles.HelpKeyStyle.Render("n/esc") + styles.HelpDescStyle.Render(" cancel")
	return styles.ModalStyle.Render(
		styles.ModalTitleStyle.Render("Remove movie") + "\n" + body + "\n\n" + hint,
	)
}

// renderOverlay centers a modal on the screen
func (m Model) renderOverlay(modal string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}
