package search

import (
	"sync"
	"time"
)

// Ticket identifies one scheduled action. Only the most recent ticket is ready.
type Ticket struct {
	seq   uint64
	Delay time.Duration
}

// Debouncer collapses bursts of calls so only the last one runs.
// Each call to Next supersedes every earlier ticket. The caller waits
// Ticket.Delay (typically via tea.Tick) and then asks Ready.
type Debouncer struct {
	delay time.Duration

	mu  sync.Mutex
	seq uint64
}

// NewDebouncer creates a debouncer with the given quiet period
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay}
}

// Next schedules a new action and invalidates all pending ones
func (d *Debouncer) Next() Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	return Ticket{seq: d.seq, Delay: d.delay}
}

// Ready reports whether t is still the latest ticket.
// A ticket is consumed by the first successful Ready.
func (d *Debouncer) Ready(t Ticket) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t.seq == 0 || t.seq != d.seq {
		return false
	}
	d.seq++ // consume
	return true
}

// Cancel invalidates any pending ticket
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.seq++
	d.mu.Unlock()
}
