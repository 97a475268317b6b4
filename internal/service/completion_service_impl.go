package service

import (
	"context"
	"fmt"

	"github.com/acmercer/timekeep/internal/db"
	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/repository"
)

type completionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
}

// NewCompletionService creates the retroactive-tagging service. All
// mutations run read-modify-write inside a transaction so a failed write
// never corrupts the stored session.
func NewCompletionService(sessions repository.SessionRepo, uow db.UnitOfWork) CompletionService {
	return &completionService{sessions: sessions, uow: uow}
}

func (s *completionService) ListPending(ctx context.Context) ([]*domain.Session, error) {
	all, err := s.sessions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var pending []*domain.Session
	for _, sess := range all {
		if !sess.Ended() {
			continue
		}
		if sess.Sphere == "" || hasUntagged(sess) {
			pending = append(pending, sess)
		}
	}
	return pending, nil
}

func (s *completionService) AssignSphere(ctx context.Context, sessionID, sphere string) error {
	return s.mutate(ctx, sessionID, func(sess *domain.Session) error {
		sess.Sphere = sphere
		return nil
	})
}

func (s *completionService) TagPeriod(ctx context.Context, sessionID string, periodIndex int, a domain.TagAssignment) error {
	return s.mutate(ctx, sessionID, func(sess *domain.Session) error {
		if periodIndex < 0 || periodIndex >= len(sess.Periods) {
			return fmt.Errorf("period index %d out of range (%d periods)", periodIndex, len(sess.Periods))
		}
		return sess.Periods[periodIndex].ApplyTag(a)
	})
}

func (s *completionService) Skip(ctx context.Context, sessionID string, defaults SkipDefaults) error {
	return s.mutate(ctx, sessionID, func(sess *domain.Session) error {
		if sess.Sphere == "" {
			sess.Sphere = defaults.Sphere
		}
		for i := range sess.Periods {
			p := &sess.Periods[i]
			if p.Tag != "" {
				continue
			}
			tag := defaults.Action
			if p.Kind == domain.PeriodActive {
				tag = defaults.Project
			}
			if tag == "" {
				continue
			}
			if err := p.ApplyTag(domain.TagAssignment{Primary: tag}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *completionService) Delete(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// mutate loads the session, applies fn, and writes it back, all within one
// transaction. fn returning an error aborts with no partial mutation.
func (s *completionService) mutate(ctx context.Context, sessionID string, fn func(*domain.Session) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		sess, err := txSessions.GetByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := fn(sess); err != nil {
			return err
		}
		return txSessions.Update(ctx, sess)
	})
}

func hasUntagged(sess *domain.Session) bool {
	for i := range sess.Periods {
		if sess.Periods[i].Tag == "" {
			return true
		}
	}
	return false
}
