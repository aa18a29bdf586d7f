package tui

import "sync"

// WindowTitle holds the terminal window title. Controllers set it from any
// goroutine; Update flushes pending changes with tea.SetWindowTitle.
type WindowTitle struct {
	mu      sync.Mutex
	current string
	dirty   bool
}

// NewWindowTitle creates a title that will be written on the first flush
func NewWindowTitle(initial string) *WindowTitle {
	return &WindowTitle{current: initial, dirty: true}
}

// SetTitle implements detail.TitleSink
func (w *WindowTitle) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if title != w.current {
		w.current = title
		w.dirty = true
	}
}

// Current returns the title as last set
func (w *WindowTitle) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// take returns the title and whether it changed since the last take
func (w *WindowTitle) take() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	dirty := w.dirty
	w.dirty = false
	return w.current, dirty
}
