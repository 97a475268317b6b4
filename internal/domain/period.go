package domain

import (
	"fmt"
	"time"
)

// SecondaryShare is the minority slice of a period split across two
// concurrent activities. Percentage is the secondary's share; the primary
// implicitly holds the remainder.
type SecondaryShare struct {
	Name       string
	Percentage int
	Comment    string
	Duration   time.Duration
}

// Period is a closed interval of a session. Start/End/Kind are fixed when
// the ledger closes it; Tag, Comment and Secondary are assigned later by
// the completion flow.
type Period struct {
	Kind      PeriodKind
	Start     time.Time
	End       time.Time
	AutoBreak bool // break opened by the idle timeout rather than the user

	Tag       string
	Comment   string
	Secondary *SecondaryShare
}

// Duration is derived from the interval bounds and never stored
// independently.
func (p *Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// PrimaryDuration is the share of the period belonging to its primary tag:
// the full duration unless a secondary share is present.
func (p *Period) PrimaryDuration() time.Duration {
	if p.Secondary == nil {
		return p.Duration()
	}
	return p.Duration() - p.Secondary.Duration
}

// Validate checks the interval bounds and, when a secondary share is
// present, that the split bookkeeping is internally consistent.
func (p *Period) Validate() error {
	if !p.End.After(p.Start) {
		return fmt.Errorf("period end %v not after start %v", p.End, p.Start)
	}
	switch p.Kind {
	case PeriodActive, PeriodBreak, PeriodIdle:
	default:
		return fmt.Errorf("unknown period kind %q", p.Kind)
	}
	if s := p.Secondary; s != nil {
		if s.Percentage < 1 || s.Percentage > 99 {
			return fmt.Errorf("secondary percentage %d outside 1..99", s.Percentage)
		}
		if s.Name == "" {
			return fmt.Errorf("secondary share has no name")
		}
		if p.PrimaryDuration()+s.Duration != p.Duration() {
			return fmt.Errorf("split durations do not sum to period duration")
		}
	}
	return nil
}
