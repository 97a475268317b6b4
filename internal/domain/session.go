package domain

import (
	"fmt"
	"time"
)

// Session owns the ordered period list for one tracked sitting. It is
// mutated in place by the ledger while live, finalized at end, and later
// annotated (tags, comments, sphere) by the completion flow. The period
// list is the source of truth; the duration totals are derived.
type Session struct {
	ID      string
	Sphere  string // assigned at completion time, empty while live
	Start   time.Time
	End     time.Time // zero while the session is open
	Periods []Period

	ActiveDuration time.Duration
	BreakDuration  time.Duration
	IdleDuration   time.Duration

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Session) Ended() bool { return !s.End.IsZero() }

// TotalDuration is the wall-clock span of the session.
func (s *Session) TotalDuration() time.Duration {
	if !s.Ended() {
		return 0
	}
	return s.End.Sub(s.Start)
}

// RecomputeTotals resums the duration totals from the period list.
func (s *Session) RecomputeTotals() {
	s.ActiveDuration, s.BreakDuration, s.IdleDuration = 0, 0, 0
	for i := range s.Periods {
		d := s.Periods[i].Duration()
		switch s.Periods[i].Kind {
		case PeriodActive:
			s.ActiveDuration += d
		case PeriodBreak:
			s.BreakDuration += d
		case PeriodIdle:
			s.IdleDuration += d
		}
	}
}

// DisplayBreakDuration folds idle time into break time for top-level
// totals; the period list keeps the two distinct.
func (s *Session) DisplayBreakDuration() time.Duration {
	return s.BreakDuration + s.IdleDuration
}

// Validate checks the period-list invariants: each period well formed,
// strictly ordered, gapless, and (for an ended session) summing exactly
// to the session span.
func (s *Session) Validate() error {
	for i := range s.Periods {
		if err := s.Periods[i].Validate(); err != nil {
			return fmt.Errorf("period %d: %w", i, err)
		}
	}
	var sum time.Duration
	for i := range s.Periods {
		sum += s.Periods[i].Duration()
		if i == 0 {
			continue
		}
		prev, cur := &s.Periods[i-1], &s.Periods[i]
		if !cur.Start.After(prev.Start) {
			return fmt.Errorf("period %d start %v not after period %d start %v", i, cur.Start, i-1, prev.Start)
		}
		if !cur.Start.Equal(prev.End) {
			return fmt.Errorf("gap between period %d end %v and period %d start %v", i-1, prev.End, i, cur.Start)
		}
	}
	if s.Ended() && len(s.Periods) > 0 {
		if !s.Periods[0].Start.Equal(s.Start) {
			return fmt.Errorf("first period starts %v, session starts %v", s.Periods[0].Start, s.Start)
		}
		if !s.Periods[len(s.Periods)-1].End.Equal(s.End) {
			return fmt.Errorf("last period ends %v, session ends %v", s.Periods[len(s.Periods)-1].End, s.End)
		}
		if sum != s.End.Sub(s.Start) {
			return fmt.Errorf("periods sum to %v, session spans %v", sum, s.End.Sub(s.Start))
		}
	}
	return nil
}
