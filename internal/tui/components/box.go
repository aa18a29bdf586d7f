package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// CollapsedBoxWidth is the width of a box rendered in its collapsed form
const CollapsedBoxWidth = 16

// Box is a bordered, collapsible panel
type Box struct {
	Hotkey   string // key that toggles the box, shown in the title
	Title    string
	Expanded bool
	Focused  bool
}

// NewBox creates an expanded box
func NewBox(hotkey, title string) Box {
	return Box{Hotkey: hotkey, Title: title, Expanded: true}
}

// Toggle flips the collapsed state
func (b *Box) Toggle() {
	b.Expanded = !b.Expanded
}

// Render draws body inside the box at the given outer size.
// A collapsed box ignores body and draws only its title.
func (b Box) Render(body string, width, height int) string {
	style := styles.InactiveBorder
	if b.Focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	innerW := width - frameW
	innerH := height - frameH
	if innerW < 1 || innerH < 1 {
		return ""
	}

	sign := "–"
	if !b.Expanded {
		sign = "+"
	}
	header := styles.AccentStyle.Render(fmt.Sprintf("[%s] ", b.Hotkey)) +
		styles.TitleStyle.Render(styles.Truncate(b.Title, innerW-8)) +
		styles.DimStyle.Render(" "+sign)

	content := header
	if b.Expanded {
		content = lipgloss.JoinVertical(lipgloss.Left, header, body)
	}

	return style.
		Width(innerW).
		Height(innerH).
		MaxHeight(height).
		Render(content)
}
