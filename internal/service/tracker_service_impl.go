package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/repository"
	"github.com/acmercer/timekeep/internal/tracker"
	"github.com/google/uuid"
)

type trackerService struct {
	sessions repository.SessionRepo
	cfg      tracker.Config
	logger   *slog.Logger
	observer UseCaseObserver

	ledger  *tracker.Ledger
	session *domain.Session
	acc     tracker.Accumulator
}

// NewTrackerService creates the live-session driver. The ledger and the
// in-memory session are owned here; the repository row trails them and a
// failed write never discards in-memory periods.
func NewTrackerService(sessions repository.SessionRepo, cfg tracker.Config, logger *slog.Logger, observers ...UseCaseObserver) TrackerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &trackerService{
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *trackerService) Start(ctx context.Context, now time.Time) (*domain.Session, error) {
	if s.session != nil {
		return nil, ErrSessionActive
	}
	session := &domain.Session{
		ID:        uuid.New().String(),
		Start:     now,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("persisting new session: %w", err)
	}
	s.session = session
	s.ledger = tracker.NewLedger(now, s.cfg, s.logger)
	s.acc = tracker.Accumulator{}
	return session, nil
}

func (s *trackerService) Tick(ctx context.Context, now, lastInput time.Time) error {
	if s.session == nil {
		return nil // ticking with no session is harmless
	}
	return s.commit(ctx, s.ledger.Tick(now, lastInput))
}

func (s *trackerService) ToggleBreak(ctx context.Context, now time.Time) error {
	if s.session == nil {
		return ErrNoActiveSession
	}
	return s.commit(ctx, s.ledger.ToggleBreak(now))
}

func (s *trackerService) End(ctx context.Context, now time.Time) (*domain.Session, error) {
	started := time.Now()
	if s.session == nil {
		return nil, ErrNoActiveSession
	}
	closed := s.ledger.End(now)
	session := s.session
	for _, p := range closed {
		session.Periods = append(session.Periods, p)
		s.acc.Add(p)
	}
	if n := len(session.Periods); n > 0 {
		session.End = session.Periods[n-1].End
	} else {
		// Nothing accrued; the session spans a single instant and is
		// recorded empty.
		session.End = session.Start
	}
	session.RecomputeTotals()

	err := s.sessions.Update(ctx, session)
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "tracker.end_session",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"session_id": session.ID, "periods": len(session.Periods)},
		StartedAt: started,
	})
	if err != nil {
		return nil, fmt.Errorf("persisting ended session: %w", err)
	}
	s.session = nil
	s.ledger = nil
	return session, nil
}

func (s *trackerService) Status() (*TrackerStatus, error) {
	if s.session == nil {
		return nil, ErrNoActiveSession
	}
	return &TrackerStatus{
		SessionID: s.session.ID,
		State:     s.ledger.State(),
		Since:     s.ledger.OpenSince(),
		Active:    s.acc.Active,
		Break:     s.acc.Break,
		Idle:      s.acc.Idle,
	}, nil
}

// commit folds newly closed periods into the session and trails the
// repository row. The in-memory list stays authoritative: a failed write
// is reported but nothing is dropped.
func (s *trackerService) commit(ctx context.Context, closed []domain.Period) error {
	if len(closed) == 0 {
		return nil
	}
	for _, p := range closed {
		s.session.Periods = append(s.session.Periods, p)
		s.acc.Add(p)
	}
	s.session.RecomputeTotals()
	if err := s.sessions.Update(ctx, s.session); err != nil {
		return fmt.Errorf("persisting period close: %w", err)
	}
	return nil
}
