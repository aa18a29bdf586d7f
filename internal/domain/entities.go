package domain

import (
	"fmt"
	"math"
)

// SearchResult is one hit from a title search. Results are ephemeral and
// replaced wholesale by the next query.
type SearchResult struct {
	ID        string // External unique identifier (IMDb id)
	Title     string
	Year      string // Year or year range as reported by the API ("2010", "2008–2013")
	PosterURL string
}

// MovieDetail holds the full attributes of a single title
type MovieDetail struct {
	ID             string
	Title          string
	Year           string
	PosterURL      string
	Runtime        int    // Minutes, 0 if unknown
	RuntimeText    string // As reported, e.g. "148 min"
	ExternalRating float64
	Plot           string
	Released       string
	Actors         string
	Director       string
	Genre          string
}

// FormattedRuntime returns the runtime in a human-readable format
func (d MovieDetail) FormattedRuntime() string {
	if d.Runtime <= 0 {
		if d.RuntimeText != "" {
			return d.RuntimeText
		}
		return "N/A"
	}
	h := d.Runtime / 60
	mins := d.Runtime % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// WatchedEntry is a rated movie in the user's watched list.
// JSON names match the stored shape of the list.
type WatchedEntry struct {
	ID             string  `json:"imdbID"`
	Title          string  `json:"title"`
	Year           string  `json:"year"`
	PosterURL      string  `json:"poster"`
	ExternalRating float64 `json:"imdbRating"`
	RuntimeMinutes int     `json:"runtime"`
	UserRating     int     `json:"userRating"`
}

// NewWatchedEntry builds a watched entry from a loaded detail and the user's rating
func NewWatchedEntry(d MovieDetail, userRating int) WatchedEntry {
	return WatchedEntry{
		ID:             d.ID,
		Title:          d.Title,
		Year:           d.Year,
		PosterURL:      d.PosterURL,
		ExternalRating: d.ExternalRating,
		RuntimeMinutes: d.Runtime,
		UserRating:     userRating,
	}
}

// WatchedSummary aggregates the watched list.
// Averages are sum/count and are NaN for an empty list.
type WatchedSummary struct {
	Count             int
	AvgExternalRating float64
	AvgUserRating     float64
	AvgRuntime        float64
}

// Summarize computes aggregate statistics over entries
func Summarize(entries []WatchedEntry) WatchedSummary {
	var ext, user, runtime float64
	for _, e := range entries {
		ext += e.ExternalRating
		user += float64(e.UserRating)
		runtime += float64(e.RuntimeMinutes)
	}
	n := float64(len(entries))
	return WatchedSummary{
		Count:             len(entries),
		AvgExternalRating: ext / n,
		AvgUserRating:     user / n,
		AvgRuntime:        runtime / n,
	}
}

// HasAverages reports whether the averages are defined (non-empty list)
func (s WatchedSummary) HasAverages() bool {
	return !math.IsNaN(s.AvgUserRating)
}
