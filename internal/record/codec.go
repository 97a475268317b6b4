// Package record encodes a session's period list to and from the persisted
// JSON document. The in-memory model keeps tags as a tagged variant
// (single tag or split share); the dual-key legacy shape — `project` vs
// `projects`, `action` vs `actions` — exists only at this boundary, and the
// encoder always emits exactly one of the two forms per period.
package record

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/acmercer/timekeep/internal/domain"
)

const clockLayout = "15:04:05"

type document struct {
	Active      []periodJSON `json:"active"`
	Breaks      []periodJSON `json:"breaks"`
	IdlePeriods []periodJSON `json:"idle_periods"`
}

type periodJSON struct {
	Start          string  `json:"start"`
	StartTimestamp float64 `json:"start_timestamp"`
	End            string  `json:"end"`
	EndTimestamp   float64 `json:"end_timestamp"`
	Duration       float64 `json:"duration"`
	Comment        string  `json:"comment"`
	AutoBreak      bool    `json:"auto_break,omitempty"`

	// Single-tag form.
	Project string `json:"project,omitempty"`
	Action  string `json:"action,omitempty"`

	// Dual-tag form, mutually exclusive with the single keys.
	Projects []shareJSON `json:"projects,omitempty"`
	Actions  []shareJSON `json:"actions,omitempty"`
}

type shareJSON struct {
	Name           string  `json:"name"`
	Percentage     int     `json:"percentage"`
	Comment        string  `json:"comment"`
	Duration       float64 `json:"duration"`
	ProjectPrimary *bool   `json:"project_primary,omitempty"`
	BreakPrimary   *bool   `json:"break_primary,omitempty"`
}

// Encode renders the period list as the persisted JSON document.
func Encode(periods []domain.Period) ([]byte, error) {
	doc := document{
		Active:      []periodJSON{},
		Breaks:      []periodJSON{},
		IdlePeriods: []periodJSON{},
	}
	for i := range periods {
		pj := encodePeriod(&periods[i])
		switch periods[i].Kind {
		case domain.PeriodActive:
			doc.Active = append(doc.Active, pj)
		case domain.PeriodBreak:
			doc.Breaks = append(doc.Breaks, pj)
		case domain.PeriodIdle:
			doc.IdlePeriods = append(doc.IdlePeriods, pj)
		}
	}
	return json.Marshal(doc)
}

// Decode parses a persisted document back into the ordered period list.
// Empty input decodes to an empty list.
func Decode(data []byte) ([]domain.Period, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	var periods []domain.Period
	for i := range doc.Active {
		periods = append(periods, decodePeriod(&doc.Active[i], domain.PeriodActive))
	}
	for i := range doc.Breaks {
		periods = append(periods, decodePeriod(&doc.Breaks[i], domain.PeriodBreak))
	}
	for i := range doc.IdlePeriods {
		periods = append(periods, decodePeriod(&doc.IdlePeriods[i], domain.PeriodIdle))
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Start.Before(periods[j].Start) })
	return periods, nil
}

func encodePeriod(p *domain.Period) periodJSON {
	pj := periodJSON{
		Start:          p.Start.Format(clockLayout),
		StartTimestamp: toUnixSeconds(p.Start),
		End:            p.End.Format(clockLayout),
		EndTimestamp:   toUnixSeconds(p.End),
		Duration:       p.Duration().Seconds(),
		Comment:        p.Comment,
		AutoBreak:      p.AutoBreak,
	}
	if p.Secondary != nil {
		primaryFlag, secondaryFlag := true, false
		shares := []shareJSON{
			{
				Name:       p.Tag,
				Percentage: 100 - p.Secondary.Percentage,
				Comment:    p.Comment,
				Duration:   p.PrimaryDuration().Seconds(),
			},
			{
				Name:       p.Secondary.Name,
				Percentage: p.Secondary.Percentage,
				Comment:    p.Secondary.Comment,
				Duration:   p.Secondary.Duration.Seconds(),
			},
		}
		if p.Kind == domain.PeriodActive {
			shares[0].ProjectPrimary = &primaryFlag
			shares[1].ProjectPrimary = &secondaryFlag
			pj.Projects = shares
		} else {
			shares[0].BreakPrimary = &primaryFlag
			shares[1].BreakPrimary = &secondaryFlag
			pj.Actions = shares
		}
		pj.Comment = ""
		return pj
	}
	if p.Kind == domain.PeriodActive {
		pj.Project = p.Tag
	} else {
		pj.Action = p.Tag
	}
	return pj
}

func decodePeriod(pj *periodJSON, kind domain.PeriodKind) domain.Period {
	p := domain.Period{
		Kind:      kind,
		Start:     fromUnixSeconds(pj.StartTimestamp),
		End:       fromUnixSeconds(pj.EndTimestamp),
		AutoBreak: pj.AutoBreak,
		Comment:   pj.Comment,
	}
	shares := pj.Projects
	if kind != domain.PeriodActive {
		shares = pj.Actions
	}
	if len(shares) > 0 {
		// Older records may lack the primary flag; the first share is
		// primary by convention there.
		primary := 0
		for i := range shares {
			if isPrimary(&shares[i]) {
				primary = i
				break
			}
		}
		for i := range shares {
			s := &shares[i]
			if i == primary {
				p.Tag = s.Name
				p.Comment = s.Comment
				continue
			}
			p.Secondary = &domain.SecondaryShare{
				Name:       s.Name,
				Percentage: s.Percentage,
				Comment:    s.Comment,
				Duration:   time.Duration(s.Duration * float64(time.Second)),
			}
		}
		return p
	}
	if kind == domain.PeriodActive {
		p.Tag = pj.Project
	} else {
		p.Tag = pj.Action
	}
	return p
}

func isPrimary(s *shareJSON) bool {
	if s.ProjectPrimary != nil {
		return *s.ProjectPrimary
	}
	if s.BreakPrimary != nil {
		return *s.BreakPrimary
	}
	return false
}

func toUnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnixSeconds(sec float64) time.Time {
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))).UTC()
}
