// Package input abstracts the OS mouse/keyboard hooks down to the single
// fact the ledger needs: the timestamp of the most recent user input.
package input

import (
	"sync/atomic"
	"time"
)

// Source exposes the most recent input timestamp. Implementations may be
// backed by OS-level hooks running on their own threads; the ledger only
// ever polls this one value, so staleness by one tick is harmless.
type Source interface {
	LastInput() time.Time
}

// Recorder is the in-process Source: hook callbacks (or the TUI's own key
// events) call Touch from any goroutine, and the tick loop reads LastInput.
// A single atomic integer is the only shared mutable value.
type Recorder struct {
	lastNano atomic.Int64
}

// NewRecorder starts a recorder with the given initial input time.
func NewRecorder(start time.Time) *Recorder {
	r := &Recorder{}
	r.lastNano.Store(start.UnixNano())
	return r
}

// Touch records an input event at the given instant.
func (r *Recorder) Touch(ts time.Time) {
	// Keep the newest timestamp even if callbacks race.
	for {
		cur := r.lastNano.Load()
		n := ts.UnixNano()
		if n <= cur || r.lastNano.CompareAndSwap(cur, n) {
			return
		}
	}
}

// LastInput reports the most recent recorded input time.
func (r *Recorder) LastInput() time.Time {
	return time.Unix(0, r.lastNano.Load())
}
