package domain

// WatchedStore persists the watched list.
// Implementations write through on every mutation.
type WatchedStore interface {
	Items() []WatchedEntry
	Append(entry WatchedEntry) error
	RemoveFunc(match func(WatchedEntry) bool) (int, error)
}
