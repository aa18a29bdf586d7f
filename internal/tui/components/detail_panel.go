package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/popcorn/internal/detail"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// RenderDetail renders the detail panel body for v.
// spinner is the current loader frame shown while loading.
func RenderDetail(v detail.View, maxRating int, spinner string, width int) string {
	switch v.State {
	case detail.StateLoading:
		return spinner + " " + styles.DimStyle.Render("Loading...")
	case detail.StateError:
		return styles.ErrorStyle.Render("⛔ " + v.Message)
	case detail.StateLoaded:
		if v.Detail == nil {
			return ""
		}
	default:
		return ""
	}

	d := v.Detail
	wrap := lipgloss.NewStyle().Width(width)
	var sections []string

	// Header: title, release and runtime, genre, external rating
	sections = append(sections,
		styles.TitleStyle.Render(d.Title),
		styles.SubtitleStyle.Render(fmt.Sprintf("%s • %s", orNA(d.Released), d.FormattedRuntime())),
		styles.SubtitleStyle.Render(orNA(d.Genre)),
		styles.AccentStyle.Render("⭐ ")+fmt.Sprintf("%.1f IMDb rating", d.ExternalRating),
		"",
	)

	// Rating control or prior rating
	if v.Watched {
		sections = append(sections,
			styles.SuccessStyle.Render(fmt.Sprintf("You already rated this movie with %d 🌟", v.PriorRating)))
	} else {
		control := styles.RenderStars(v.Rating, maxRating)
		if v.Rating > 0 {
			control += styles.AccentStyle.Render(fmt.Sprintf(" %d", v.Rating))
		}
		sections = append(sections, control)
		if v.CanConfirm() {
			sections = append(sections,
				styles.BadgeStyle.Render("a")+styles.DimStyle.Render(" + Add to list"))
		} else {
			sections = append(sections, styles.DimStyle.Render("←/→ or 1-9, 0 to rate"))
		}
	}
	sections = append(sections, "")

	// Body: plot, cast, director
	sections = append(sections,
		wrap.Render(styles.SubtitleStyle.Italic(true).Render(orNA(d.Plot))),
		"",
		wrap.Render(styles.DimStyle.Render("Starring ")+orNA(d.Actors)),
		wrap.Render(styles.DimStyle.Render("Directed by ")+orNA(d.Director)),
	)

	if d.PosterURL != "" {
		sections = append(sections, "", styles.DimStyle.Render(styles.Truncate("Poster: "+d.PosterURL, width)))
	}

	return strings.Join(sections, "\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
