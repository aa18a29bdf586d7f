package components

import (
	"strings"
	"testing"

	"github.com/mmcdole/popcorn/internal/domain"
)

func TestFormatAverages(t *testing.T) {
	t.Run("Empty List", func(t *testing.T) {
		external, user, runtime := FormatAverages(domain.Summarize(nil))
		if external != NotANumber || user != NotANumber || runtime != NotANumber {
			t.Errorf("expected dashes, got %q %q %q", external, user, runtime)
		}
	})

	t.Run("Averages", func(t *testing.T) {
		external, user, runtime := FormatAverages(domain.Summarize([]domain.WatchedEntry{
			{ExternalRating: 8, UserRating: 9, RuntimeMinutes: 100},
			{ExternalRating: 7, UserRating: 6, RuntimeMinutes: 122},
		}))
		if external != "7.5" || user != "7.5" || runtime != "111" {
			t.Errorf("expected 7.5 7.5 111, got %q %q %q", external, user, runtime)
		}
	})

	t.Run("Summary Block", func(t *testing.T) {
		out := RenderSummary(domain.Summarize(nil), 60)
		if !strings.Contains(out, "0 movies") || !strings.Contains(out, NotANumber+" min") {
			t.Errorf("unexpected summary %q", out)
		}
	})
}
