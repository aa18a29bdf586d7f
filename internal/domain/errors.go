package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNetwork indicates the movie API could not be reached or answered with a non-2xx status
	ErrNetwork = errors.New("something went wrong :(")

	// ErrNotFound indicates the movie API reported no result for the request
	ErrNotFound = errors.New("movie not found")

	// ErrMalformedResponse indicates the movie API returned a payload that could not be decoded
	ErrMalformedResponse = errors.New("malformed response from movie API")

	// ErrAlreadyWatched indicates the movie is already in the watched list
	ErrAlreadyWatched = errors.New("movie already in watched list")

	// ErrNotWatched indicates a reference matched no watched entry
	ErrNotWatched = errors.New("movie not in watched list")

	// ErrAmbiguousRef indicates a title reference matched more than one watched entry
	ErrAmbiguousRef = errors.New("title matches more than one watched movie")

	// ErrRatingRequired indicates an add was attempted without a user rating
	ErrRatingRequired = errors.New("a rating is required before adding")
)

// Messages shown to the user for failed lookups
const (
	MessageNotFound = "Movie not found"
	MessageFailed   = "Something went wrong :("
)

// DisplayMessage maps a lookup error to the text shown to the user.
// Not found and every other failure are both surfaced inline.
func DisplayMessage(err error) string {
	if errors.Is(err, ErrNotFound) {
		return MessageNotFound
	}
	return MessageFailed
}
