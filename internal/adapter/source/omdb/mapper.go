package omdb

import (
	"strconv"
	"strings"

	"github.com/mmcdole/popcorn/internal/domain"
)

// notAvailable is OMDb's placeholder for missing values
const notAvailable = "N/A"

// MapSearchResults converts OMDb search hits to domain results
func MapSearchResults(items []SearchItem) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(items))
	for _, it := range items {
		if it.ImdbID == "" {
			continue
		}
		results = append(results, domain.SearchResult{
			ID:        it.ImdbID,
			Title:     it.Title,
			Year:      it.Year,
			PosterURL: cleanValue(it.Poster),
		})
	}
	return results
}

// MapMovieDetail converts an OMDb title response to a domain detail
func MapMovieDetail(r TitleResponse) *domain.MovieDetail {
	return &domain.MovieDetail{
		ID:             r.ImdbID,
		Title:          r.Title,
		Year:           r.Year,
		PosterURL:      cleanValue(r.Poster),
		Runtime:        parseRuntime(r.Runtime),
		RuntimeText:    cleanValue(r.Runtime),
		ExternalRating: parseRating(r.ImdbRating),
		Plot:           cleanValue(r.Plot),
		Released:       cleanValue(r.Released),
		Actors:         cleanValue(r.Actors),
		Director:       cleanValue(r.Director),
		Genre:          cleanValue(r.Genre),
	}
}

// parseRuntime reads the leading minute count from values like "148 min"
func parseRuntime(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseRating reads values like "8.8"; "N/A" and garbage map to 0
func parseRating(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}
