package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PopcornYellow = lipgloss.Color("#F5C518")
	SlateDark     = lipgloss.Color("#1F2937")
	SlateLight    = lipgloss.Color("#374151")
	DimGray       = lipgloss.Color("#6B7280")
	LightGray     = lipgloss.Color("#9CA3AF")
	White         = lipgloss.Color("#F9FAFB")
	Green         = lipgloss.Color("#10B981")
	Red           = lipgloss.Color("#EF4444")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PopcornYellow)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(PopcornYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Header bar
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(PopcornYellow).
			Bold(true).
			Padding(0, 1)
)

// Search input styles
var (
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(PopcornYellow).
				Bold(true)

	SearchTextStyle = lipgloss.NewStyle().
			Foreground(White)
)

// Rating characters
const (
	StarFullChar  = "★"
	StarEmptyChar = "☆"
)

// Rating styles
var (
	StarFullStyle  = lipgloss.NewStyle().Foreground(PopcornYellow)
	StarEmptyStyle = lipgloss.NewStyle().Foreground(DimGray)
)

// Watched indicator shown next to search results already in the list
var WatchedCheck = SuccessStyle.Render("✓")

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PopcornYellow).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(PopcornYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Badge style for inline key hints
var BadgeStyle = lipgloss.NewStyle().
	Foreground(SlateDark).
	Background(PopcornYellow).
	Padding(0, 1)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PopcornYellow)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(PopcornYellow)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(PopcornYellow).
				Bold(true)
)

// Match highlight styles for filtered lists
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(PopcornYellow).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(PopcornYellow).
					Background(SlateLight).
					Bold(true)
)

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad pads a string to the given width
func Pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// RenderStars renders a rating control with filled stars up to rating
func RenderStars(rating, max int) string {
	var b strings.Builder
	for i := 1; i <= max; i++ {
		if i <= rating {
			b.WriteString(StarFullStyle.Render(StarFullChar))
		} else {
			b.WriteString(StarEmptyStyle.Render(StarEmptyChar))
		}
	}
	return b.String()
}

// RenderListRow renders a complete list row with uniform background when selected.
// This function styles each part explicitly to avoid ANSI reset code issues.
// parts is a slice of {text, fgColor} pairs. Use nil for default foreground.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight
	defaultFg := LightGray
	selectedFg := White

	var result string
	visibleLen := 0

	for _, part := range parts {
		if part.Style != nil {
			result += part.Style.Render(part.Text)
			visibleLen += lipgloss.Width(part.Text)
			continue
		}

		style := lipgloss.NewStyle()
		if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if part.Bold {
			style = style.Bold(true)
		}
		if selected {
			style = style.Background(bg)
		}
		result += style.Render(part.Text)
		visibleLen += lipgloss.Width(part.Text)
	}

	// Add padding to fill width (subtract 2 for left/right margin)
	paddingNeeded := width - visibleLen - 2
	if paddingNeeded > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		result += padStyle.Render(strings.Repeat(" ", paddingNeeded))
	}

	// Add margins
	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + result + margin
}

// RowPart represents a part of a row with optional foreground color.
// A non-nil Style is rendered as-is and must carry its own selected background.
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
	Bold       bool
	Style      *lipgloss.Style
}
