package omdb

// envelope carries the fields common to every OMDb response
type envelope struct {
	Response string `json:"Response"` // "True" or "False"
	Error    string `json:"Error,omitempty"`
}

// SearchResponse represents the response from a title search (s=)
type SearchResponse struct {
	envelope
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults,omitempty"`
}

// SearchItem represents one search hit
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type,omitempty"` // "movie", "series", "episode"
	Poster string `json:"Poster"`
}

// TitleResponse represents the response from a single title lookup (i=)
type TitleResponse struct {
	envelope
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated,omitempty"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"` // e.g. "148 min" or "N/A"
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Writer     string `json:"Writer,omitempty"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language,omitempty"`
	Country    string `json:"Country,omitempty"`
	Poster     string `json:"Poster"`
	Metascore  string `json:"Metascore,omitempty"`
	ImdbRating string `json:"imdbRating"` // e.g. "8.8" or "N/A"
	ImdbVotes  string `json:"imdbVotes,omitempty"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type,omitempty"`
}
