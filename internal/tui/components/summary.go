package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/popcorn/internal/domain"
	"github.com/mmcdole/popcorn/internal/tui/styles"
)

// NotANumber is shown for averages of an empty list
const NotANumber = "–"

// FormatAverages formats the external rating, user rating and runtime
// averages of s. An empty list yields NotANumber for each.
func FormatAverages(s domain.WatchedSummary) (external, user, runtime string) {
	if !s.HasAverages() {
		return NotANumber, NotANumber, NotANumber
	}
	return fmt.Sprintf("%.1f", s.AvgExternalRating),
		fmt.Sprintf("%.1f", s.AvgUserRating),
		fmt.Sprintf("%.0f", s.AvgRuntime)
}

// RenderSummary renders the watched-list statistics block
func RenderSummary(s domain.WatchedSummary, width int) string {
	movies := "movies"
	if s.Count == 1 {
		movies = "movie"
	}

	external, user, runtime := FormatAverages(s)
	stats := []string{
		styles.AccentStyle.Render("🎬 ") + fmt.Sprintf("%d %s", s.Count, movies),
		styles.AccentStyle.Render("⭐ ") + external,
		styles.AccentStyle.Render("🌟 ") + user,
		styles.AccentStyle.Render("⏳ ") + runtime + " min",
	}

	title := styles.TitleStyle.Render(styles.Truncate("MOVIES YOU WATCHED", width))
	return title + "\n" + strings.Join(stats, "   ")
}
