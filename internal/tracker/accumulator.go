package tracker

import (
	"time"

	"github.com/acmercer/timekeep/internal/domain"
)

// Accumulator keeps the session-level running sums by period kind. It
// holds no state beyond the three sums and can be rebuilt at any time from
// the period list, which remains the source of truth.
type Accumulator struct {
	Active time.Duration
	Break  time.Duration
	Idle   time.Duration
}

// Add folds one closed period into the totals.
func (a *Accumulator) Add(p domain.Period) {
	switch p.Kind {
	case domain.PeriodActive:
		a.Active += p.Duration()
	case domain.PeriodBreak:
		a.Break += p.Duration()
	case domain.PeriodIdle:
		a.Idle += p.Duration()
	}
}

// Resum rebuilds the totals from scratch.
func (a *Accumulator) Resum(periods []domain.Period) {
	*a = Accumulator{}
	for _, p := range periods {
		a.Add(p)
	}
}

// DisplayBreak reports idle time merged into break time, the shape used
// for top-level session totals.
func (a *Accumulator) DisplayBreak() time.Duration { return a.Break + a.Idle }

// Total is the sum of all three kinds.
func (a *Accumulator) Total() time.Duration { return a.Active + a.Break + a.Idle }
