package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPercentageRange is returned when a split percentage falls outside
	// 1..99. 0 and 100 degenerate to the single-activity form and are
	// rejected rather than normalized.
	ErrPercentageRange = errors.New("split percentage must be between 1 and 99")
	// ErrSecondaryMissing is returned when a percentage is supplied
	// without a secondary tag to attach it to.
	ErrSecondaryMissing = errors.New("split percentage given without a secondary tag")
	// ErrPrimaryMissing is returned when an assignment has no primary tag.
	ErrPrimaryMissing = errors.New("primary tag is required")
)

// TagAssignment is the user's retroactive labeling of one period: a
// primary tag, and optionally a secondary tag holding a percentage of the
// period's duration.
type TagAssignment struct {
	Primary             string
	PrimaryComment      string
	Secondary           string
	SecondaryComment    string
	SecondaryPercentage int
}

// SplitDuration divides d between a primary and secondary share. The
// secondary share is floor(d * pct / 100) in integer arithmetic and the
// primary takes the remainder, so the two always sum to d exactly.
func SplitDuration(d time.Duration, secondaryPct int) (primary, secondary time.Duration) {
	secondary = d * time.Duration(secondaryPct) / 100
	return d - secondary, secondary
}

// ApplyTag validates an assignment and writes it onto the period. The
// interval fields (Kind, Start, End) are never touched. Switching between
// the single- and dual-activity forms clears the fields of the form not in
// use, so no stale secondary lingers after the user removes a split.
// On validation failure the period is left unmodified.
func (p *Period) ApplyTag(a TagAssignment) error {
	if a.Primary == "" {
		return ErrPrimaryMissing
	}
	if a.Secondary == "" {
		if a.SecondaryPercentage != 0 {
			return ErrSecondaryMissing
		}
		p.Tag = a.Primary
		p.Comment = a.PrimaryComment
		p.Secondary = nil
		return nil
	}
	if a.SecondaryPercentage < 1 || a.SecondaryPercentage > 99 {
		return fmt.Errorf("%w: got %d", ErrPercentageRange, a.SecondaryPercentage)
	}
	_, secondary := SplitDuration(p.Duration(), a.SecondaryPercentage)
	p.Tag = a.Primary
	p.Comment = a.PrimaryComment
	p.Secondary = &SecondaryShare{
		Name:       a.Secondary,
		Percentage: a.SecondaryPercentage,
		Comment:    a.SecondaryComment,
		Duration:   secondary,
	}
	return nil
}

// ClearTags removes all labeling from the period, returning it to the
// untagged state the ledger produced.
func (p *Period) ClearTags() {
	p.Tag = ""
	p.Comment = ""
	p.Secondary = nil
}
