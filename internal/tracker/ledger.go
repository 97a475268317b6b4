// Package tracker holds the period-boundary state machine: it partitions a
// session's wall-clock span into gapless active/break/idle periods from a
// polled last-input timestamp and explicit user commands.
package tracker

import (
	"log/slog"
	"time"

	"github.com/acmercer/timekeep/internal/domain"
)

// State is the ledger's current mode. It mirrors the kind of the open
// period.
type State string

const (
	StateActive State = "active"
	StateBreak  State = "on_break"
	StateIdle   State = "idle"
	StateEnded  State = "ended"
)

// Config carries the idle-detection thresholds. Both are configuration
// values, not operational deadlines.
type Config struct {
	// IdleAfter is how long input may be absent before the ledger opens
	// an idle period.
	IdleAfter time.Duration
	// IdleBreakAfter is how long an idle period may run before it is
	// converted into an automatic break.
	IdleBreakAfter time.Duration
}

// Ledger advances one session's period list. It owns the closed periods
// plus at most one open period, and guarantees after every transition that
// the closed list is strictly ordered, gapless, free of zero-duration
// entries, and sums exactly to the elapsed span.
//
// The ledger is not safe for concurrent use; the caller drives it from a
// single goroutine (the UI tick loop).
type Ledger struct {
	cfg    Config
	logger *slog.Logger

	state     State
	openKind  domain.PeriodKind
	openStart time.Time
	openAuto  bool
	closed    []domain.Period
}

// NewLedger starts a ledger at the given instant. The initial state is
// Active: a session begins with the user present.
func NewLedger(start time.Time, cfg Config, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		cfg:       cfg,
		logger:    logger,
		state:     StateActive,
		openKind:  domain.PeriodActive,
		openStart: start,
	}
}

// State reports the ledger's current mode.
func (l *Ledger) State() State { return l.state }

// OpenSince reports when the current open period began. Zero once ended.
func (l *Ledger) OpenSince() time.Time {
	if l.state == StateEnded {
		return time.Time{}
	}
	return l.openStart
}

// Closed returns the committed period list.
func (l *Ledger) Closed() []domain.Period { return l.closed }

// Tick advances the machine on the poll interval. now is the wall clock;
// lastInput is the most recent input timestamp reported by the monitor.
// Returns any periods closed by this tick.
func (l *Ledger) Tick(now, lastInput time.Time) []domain.Period {
	switch l.state {
	case StateActive:
		if now.Sub(lastInput) < l.cfg.IdleAfter {
			return nil
		}
		// Input stopped at lastInput, not at detection time: the active
		// period ends where the idle gap actually began.
		boundary := l.clampToOpen(lastInput)
		return l.transition(boundary, domain.PeriodIdle, StateIdle, false)

	case StateIdle:
		if lastInput.After(l.openStart) {
			// Fresh input ends the idle period and always opens a new
			// active period at that same instant.
			boundary := lastInput
			if boundary.After(now) {
				boundary = now
			}
			return l.transition(boundary, domain.PeriodActive, StateActive, false)
		}
		if now.Sub(l.openStart) >= l.cfg.IdleBreakAfter {
			return l.transition(now, domain.PeriodBreak, StateBreak, true)
		}
		return nil

	default:
		return nil
	}
}

// ToggleBreak flips between break and non-break at the user's command.
func (l *Ledger) ToggleBreak(now time.Time) []domain.Period {
	switch l.state {
	case StateActive, StateIdle:
		return l.transition(l.clampToOpen(now), domain.PeriodBreak, StateBreak, false)
	case StateBreak:
		return l.transition(l.clampToOpen(now), domain.PeriodActive, StateActive, false)
	default:
		return nil
	}
}

// End force-closes the open period and stops the machine. Calling End on
// an already-ended ledger is a no-op.
func (l *Ledger) End(now time.Time) []domain.Period {
	if l.state == StateEnded {
		return nil
	}
	closed := l.closeOpen(l.clampToOpen(now))
	l.state = StateEnded
	return closed
}

// transition closes the open period at boundary and opens a new one of the
// given kind starting at the same instant, preserving gaplessness.
func (l *Ledger) transition(boundary time.Time, kind domain.PeriodKind, next State, auto bool) []domain.Period {
	closed := l.closeOpen(boundary)
	l.openKind = kind
	l.openAuto = auto
	l.state = next
	return closed
}

// closeOpen commits the open period ending at boundary and leaves
// openStart positioned for the successor. A close that would produce a
// zero-duration period is discarded and the prior start is reused, so two
// commands in the same tick never emit an empty period.
func (l *Ledger) closeOpen(boundary time.Time) []domain.Period {
	if !boundary.After(l.openStart) {
		return nil
	}
	p := domain.Period{
		Kind:      l.openKind,
		Start:     l.openStart,
		End:       boundary,
		AutoBreak: l.openAuto,
	}
	l.closed = append(l.closed, p)
	l.openStart = boundary
	return []domain.Period{p}
}

// clampToOpen guards against clock skew: a timestamp earlier than the open
// period's start would produce a negative duration, so it is clamped and
// logged. Recoverable, not fatal.
func (l *Ledger) clampToOpen(ts time.Time) time.Time {
	if ts.Before(l.openStart) {
		l.logger.Warn("input timestamp precedes open period, clamping",
			"timestamp", ts, "open_start", l.openStart)
		return l.openStart
	}
	return ts
}
