package store

import (
	"log/slog"
	"sync"
)

// List is an ordered in-memory sequence mirrored to one Store slot.
// Every mutation writes the whole sequence through before returning.
type List[T any] struct {
	store  *Store
	key    string
	logger *slog.Logger

	mu    sync.RWMutex
	items []T
}

// NewList loads the slot at key. An absent or unreadable slot yields an empty list.
func NewList[T any](s *Store, key string, logger *slog.Logger) *List[T] {
	if logger == nil {
		logger = slog.Default()
	}
	l := &List[T]{store: s, key: key, logger: logger}
	l.items = l.load()
	return l
}

func (l *List[T]) load() []T {
	var items []T
	if !l.store.Load(l.key, &items) {
		if l.store.raw(l.key) != nil {
			l.logger.Warn("discarding unreadable list", "key", l.key)
		}
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Items returns a copy of the current sequence
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Append adds item at the end of the sequence
func (l *List[T]) Append(item T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]T, len(l.items), len(l.items)+1)
	copy(next, l.items)
	next = append(next, item)

	if err := l.store.Save(l.key, next); err != nil {
		return err
	}
	l.items = next
	return nil
}

// RemoveFunc drops every item for which match returns true, preserving the
// order of the rest. It returns the number of items removed.
func (l *List[T]) RemoveFunc(match func(T) bool) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]T, 0, len(l.items))
	for _, item := range l.items {
		if !match(item) {
			next = append(next, item)
		}
	}
	removed := len(l.items) - len(next)
	if removed == 0 {
		return 0, nil
	}

	if err := l.store.Save(l.key, next); err != nil {
		return 0, err
	}
	l.items = next
	return removed, nil
}
