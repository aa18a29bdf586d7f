package tui

import "github.com/mmcdole/popcorn/internal/tui/components"

// Layout proportions
const (
	// Share of the width given to the results box when both boxes are open
	ResultsColumnPercent = 45

	MinColumnWidth = 20

	// Header, search bar, result count and footer
	ChromeHeight = 4

	// Lines the watched summary takes above the list, blank line included
	SummaryHeight = 3
)

// boxLayout holds calculated box widths for the View
type boxLayout struct {
	resultsWidth int
	sideWidth    int
}

// calculateBoxLayout splits the width between the results and side boxes
func (m Model) calculateBoxLayout(availableWidth int) boxLayout {
	switch {
	case m.ResultsBox.Expanded && m.SideBox.Expanded:
		results := max(availableWidth*ResultsColumnPercent/100, MinColumnWidth)
		return boxLayout{resultsWidth: results, sideWidth: availableWidth - results}
	case m.ResultsBox.Expanded:
		side := components.CollapsedBoxWidth
		return boxLayout{resultsWidth: availableWidth - side, sideWidth: side}
	case m.SideBox.Expanded:
		results := components.CollapsedBoxWidth
		return boxLayout{resultsWidth: results, sideWidth: availableWidth - results}
	default:
		return boxLayout{resultsWidth: components.CollapsedBoxWidth, sideWidth: components.CollapsedBoxWidth}
	}
}

// boxHeight is the outer height of both boxes
func (m Model) boxHeight() int {
	return max(m.Height-ChromeHeight, 3)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.SearchBar.SetWidth(m.Width)
	m.Help.Width = m.Width

	layout := m.calculateBoxLayout(m.Width)
	// Border on each side plus the box title line
	innerHeight := m.boxHeight() - 3

	m.Results.SetSize(layout.resultsWidth-2, innerHeight)
	m.Watched.SetSize(layout.sideWidth-2, innerHeight-SummaryHeight)
}
