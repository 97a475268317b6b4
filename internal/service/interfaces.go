package service

import (
	"context"
	"errors"
	"time"

	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/tracker"
)

var (
	// ErrSessionActive is returned by Start while a session is already
	// being tracked. Only one session may be live at a time.
	ErrSessionActive = errors.New("a session is already active")
	// ErrNoActiveSession is returned by commands that require a live
	// session when none is being tracked.
	ErrNoActiveSession = errors.New("no session is active")
)

// TrackerStatus is a snapshot of the live session for display.
type TrackerStatus struct {
	SessionID string
	State     tracker.State
	Since     time.Time
	Active    time.Duration
	Break     time.Duration
	Idle      time.Duration
}

// TrackerService drives the live session: explicit commands plus the poll
// tick. Not safe for concurrent use; the UI event loop is the single
// caller.
type TrackerService interface {
	Start(ctx context.Context, now time.Time) (*domain.Session, error)
	Tick(ctx context.Context, now, lastInput time.Time) error
	ToggleBreak(ctx context.Context, now time.Time) error
	End(ctx context.Context, now time.Time) (*domain.Session, error)
	Status() (*TrackerStatus, error)
}

// SkipDefaults are the labels applied when the user skips completion.
type SkipDefaults struct {
	Sphere  string
	Project string
	Action  string
}

// CompletionService retroactively tags recorded sessions.
type CompletionService interface {
	// ListPending returns ended sessions that still need completion:
	// missing sphere or carrying untagged periods.
	ListPending(ctx context.Context) ([]*domain.Session, error)
	AssignSphere(ctx context.Context, sessionID, sphere string) error
	// TagPeriod applies an assignment to the period at the given index of
	// the session's ordered period list. No partial mutation is committed
	// on validation failure.
	TagPeriod(ctx context.Context, sessionID string, periodIndex int, a domain.TagAssignment) error
	// Skip applies the configured defaults to everything still untagged.
	Skip(ctx context.Context, sessionID string, defaults SkipDefaults) error
	Delete(ctx context.Context, sessionID string) error
}

// TotalsFilter selects which period shares an aggregate includes. Zero
// From/To means the full history; empty Sphere and Tag mean no filtering
// on that axis.
type TotalsFilter struct {
	From   time.Time
	To     time.Time
	Sphere string
	Tag    string
	View   domain.StatusView
}

// Report is the aggregate of all period shares passing a filter. Split
// periods contribute each share's allocated sub-duration, so per-tag sums
// never double-count and the all-tags total recovers full durations.
type Report struct {
	Active   time.Duration
	Break    time.Duration
	Idle     time.Duration
	Total    time.Duration
	Untagged time.Duration

	ByProject map[string]time.Duration
	ByAction  map[string]time.Duration
}

// AnalysisService aggregates recorded time across sessions.
type AnalysisService interface {
	CalculateTotals(ctx context.Context, f TotalsFilter) (*Report, error)
}

// CatalogService manages the sphere/project/break-action catalog that
// tags refer to.
type CatalogService interface {
	CreateSphere(ctx context.Context, name string) (*domain.Sphere, error)
	CreateProject(ctx context.Context, sphereName, name string) (*domain.Project, error)
	CreateAction(ctx context.Context, name string) (*domain.BreakAction, error)
	ListSpheres(ctx context.Context, includeArchived bool) ([]*domain.Sphere, error)
	ListProjects(ctx context.Context, sphereName string, includeArchived bool) ([]*domain.Project, error)
	ListActions(ctx context.Context, includeArchived bool) ([]*domain.BreakAction, error)
	ArchiveSphere(ctx context.Context, name string) error
	UnarchiveSphere(ctx context.Context, name string) error
	ArchiveProject(ctx context.Context, sphereName, name string) error
	UnarchiveProject(ctx context.Context, sphereName, name string) error
	ArchiveAction(ctx context.Context, name string) error
	UnarchiveAction(ctx context.Context, name string) error
}
