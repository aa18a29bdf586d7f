package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ScrollIndicatorLines is the space reserved for "↑ more" and "↓ more"
const ScrollIndicatorLines = 2

// listCursor tracks selection and scroll position for a list of count rows
type listCursor struct {
	cursor     int
	offset     int
	maxVisible int
}

// move handles navigation keys. It reports whether msg was a navigation key.
func (c *listCursor) move(msg tea.KeyMsg, count int) bool {
	if count == 0 {
		return false
	}

	switch {
	case key.Matches(msg, ListKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
		}
	case key.Matches(msg, ListKeys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(msg, ListKeys.Home):
		c.cursor = 0
		c.offset = 0
	case key.Matches(msg, ListKeys.End):
		c.cursor = count - 1
	case key.Matches(msg, ListKeys.HalfDown, ListKeys.PageDown):
		c.cursor += max(c.maxVisible/2, 1)
	case key.Matches(msg, ListKeys.HalfUp, ListKeys.PageUp):
		c.cursor -= max(c.maxVisible/2, 1)
	default:
		return false
	}

	c.clamp(count)
	return true
}

// clamp keeps the cursor inside [0, count) and visible
func (c *listCursor) clamp(count int) {
	if c.cursor >= count {
		c.cursor = count - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.ensureVisible()
}

func (c *listCursor) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *listCursor) reset() {
	c.cursor = 0
	c.offset = 0
}

// window returns the visible row range [start, end)
func (c *listCursor) window(count int) (int, int) {
	if c.maxVisible <= 0 {
		return 0, count
	}
	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}
	return c.offset, end
}
