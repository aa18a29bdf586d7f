package search

import (
	"testing"
	"time"
)

func TestDebouncer(t *testing.T) {
	t.Run("Only Latest Ticket Is Ready", func(t *testing.T) {
		d := NewDebouncer(time.Second)
		first := d.Next()
		second := d.Next()
		third := d.Next()

		if d.Ready(first) || d.Ready(second) {
			t.Error("expected superseded tickets not to be ready")
		}
		if !d.Ready(third) {
			t.Error("expected latest ticket to be ready")
		}
	})

	t.Run("Ticket Fires Once", func(t *testing.T) {
		d := NewDebouncer(time.Second)
		ticket := d.Next()
		if !d.Ready(ticket) {
			t.Fatal("expected ticket to be ready")
		}
		if d.Ready(ticket) {
			t.Error("expected ticket to be consumed")
		}
	})

	t.Run("Cancel Invalidates Pending", func(t *testing.T) {
		d := NewDebouncer(time.Second)
		ticket := d.Next()
		d.Cancel()
		if d.Ready(ticket) {
			t.Error("expected cancelled ticket not to be ready")
		}
	})

	t.Run("Ticket Carries Delay", func(t *testing.T) {
		d := NewDebouncer(250 * time.Millisecond)
		if got := d.Next().Delay; got != 250*time.Millisecond {
			t.Errorf("expected 250ms, got %v", got)
		}
		if got := NewDebouncer(-time.Second).Next().Delay; got != 0 {
			t.Errorf("expected negative delay clamped to 0, got %v", got)
		}
	})

	t.Run("Zero Ticket Never Ready", func(t *testing.T) {
		d := NewDebouncer(time.Second)
		if d.Ready(Ticket{}) {
			t.Error("expected zero ticket not to be ready")
		}
	})
}
