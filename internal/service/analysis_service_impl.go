package service

import (
	"context"
	"time"

	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/repository"
)

type analysisService struct {
	sessions repository.SessionRepo
	spheres  repository.SphereRepo
	projects repository.ProjectRepo
	actions  repository.BreakActionRepo
	observer UseCaseObserver
}

// NewAnalysisService creates the aggregation service.
func NewAnalysisService(
	sessions repository.SessionRepo,
	spheres repository.SphereRepo,
	projects repository.ProjectRepo,
	actions repository.BreakActionRepo,
	observers ...UseCaseObserver,
) AnalysisService {
	return &analysisService{
		sessions: sessions,
		spheres:  spheres,
		projects: projects,
		actions:  actions,
		observer: useCaseObserverOrNoop(observers),
	}
}

// statusIndex resolves a period share to the activity status of its sphere
// and owning entity. Names absent from the catalog count as active: they
// were never archived.
type statusIndex struct {
	sphereActive  map[string]bool
	projectActive map[string]bool // keyed sphereName + "/" + projectName
	actionActive  map[string]bool
	sphereNames   map[string]string // sphere id -> name
}

func (s *analysisService) CalculateTotals(ctx context.Context, f TotalsFilter) (*Report, error) {
	started := time.Now()
	report, err := s.calculateTotals(ctx, f)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "analysis.calculate_totals",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"sphere": f.Sphere, "tag": f.Tag, "view": string(f.View)},
		StartedAt: started,
	})
	return report, err
}

func (s *analysisService) calculateTotals(ctx context.Context, f TotalsFilter) (*Report, error) {
	sessions, err := s.loadSessions(ctx, f)
	if err != nil {
		return nil, err
	}
	idx, err := s.loadStatusIndex(ctx)
	if err != nil {
		return nil, err
	}

	view := f.View
	if view == "" {
		view = domain.ViewAll
	}
	report := &Report{
		ByProject: map[string]time.Duration{},
		ByAction:  map[string]time.Duration{},
	}
	for _, sess := range sessions {
		if !sess.Ended() {
			continue
		}
		if f.Sphere != "" && sess.Sphere != f.Sphere {
			continue
		}
		for i := range sess.Periods {
			s.addPeriod(report, sess, &sess.Periods[i], f.Tag, view, idx)
		}
	}
	return report, nil
}

// addPeriod folds one period's shares into the report. A split period
// contributes each share's allocated sub-duration so per-tag sums never
// double-count.
func (s *analysisService) addPeriod(report *Report, sess *domain.Session, p *domain.Period, tagFilter string, view domain.StatusView, idx *statusIndex) {
	shares := []struct {
		name string
		d    time.Duration
	}{
		{p.Tag, p.PrimaryDuration()},
	}
	if p.Secondary != nil {
		shares = append(shares, struct {
			name string
			d    time.Duration
		}{p.Secondary.Name, p.Secondary.Duration})
	}

	for _, share := range shares {
		if tagFilter != "" && share.name != tagFilter {
			continue
		}
		if !idx.matches(view, sess.Sphere, share.name, p.Kind) {
			continue
		}
		switch p.Kind {
		case domain.PeriodActive:
			report.Active += share.d
		case domain.PeriodBreak:
			report.Break += share.d
		case domain.PeriodIdle:
			report.Idle += share.d
		}
		report.Total += share.d
		if share.name == "" {
			report.Untagged += share.d
			continue
		}
		if p.Kind == domain.PeriodActive {
			report.ByProject[share.name] += share.d
		} else {
			report.ByAction[share.name] += share.d
		}
	}
}

func (s *analysisService) loadSessions(ctx context.Context, f TotalsFilter) ([]*domain.Session, error) {
	if f.From.IsZero() && f.To.IsZero() {
		return s.sessions.ListAll(ctx)
	}
	to := f.To
	if to.IsZero() {
		to = time.Now().Add(24 * time.Hour)
	}
	return s.sessions.ListRange(ctx, f.From, to)
}

func (s *analysisService) loadStatusIndex(ctx context.Context) (*statusIndex, error) {
	idx := &statusIndex{
		sphereActive:  map[string]bool{},
		projectActive: map[string]bool{},
		actionActive:  map[string]bool{},
		sphereNames:   map[string]string{},
	}
	spheres, err := s.spheres.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, sp := range spheres {
		idx.sphereActive[sp.Name] = sp.Status == domain.EntityActive
		idx.sphereNames[sp.ID] = sp.Name
	}
	projects, err := s.projects.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		idx.projectActive[idx.sphereNames[p.SphereID]+"/"+p.Name] = p.Status == domain.EntityActive
	}
	actions, err := s.actions.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, a := range actions {
		idx.actionActive[a.Name] = a.Status == domain.EntityActive
	}
	return idx, nil
}

// matches implements the status-view predicate: a share passes the active
// view only when both its sphere and its owning entity are active, the
// archived view when either is archived, and the all view unconditionally.
func (idx *statusIndex) matches(view domain.StatusView, sphere, tag string, kind domain.PeriodKind) bool {
	if view == domain.ViewAll {
		return true
	}
	sphereActive := true
	if v, ok := idx.sphereActive[sphere]; ok {
		sphereActive = v
	}
	ownerActive := true
	if tag != "" {
		var v bool
		var ok bool
		if kind == domain.PeriodActive {
			v, ok = idx.projectActive[sphere+"/"+tag]
		} else {
			v, ok = idx.actionActive[tag]
		}
		if ok {
			ownerActive = v
		}
	}
	if view == domain.ViewActive {
		return sphereActive && ownerActive
	}
	return !sphereActive || !ownerActive
}
