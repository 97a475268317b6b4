package repository

import (
	"context"
	"errors"
	"time"

	"github.com/acmercer/timekeep/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// ListRange returns sessions whose start falls in [from, to), ordered
	// by start.
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.Session, error)
	ListAll(ctx context.Context) ([]*domain.Session, error)
	Update(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}

type SphereRepo interface {
	Create(ctx context.Context, s *domain.Sphere) error
	GetByName(ctx context.Context, name string) (*domain.Sphere, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Sphere, error)
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByName(ctx context.Context, sphereID, name string) (*domain.Project, error)
	ListBySphere(ctx context.Context, sphereID string, includeArchived bool) ([]*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type BreakActionRepo interface {
	Create(ctx context.Context, a *domain.BreakAction) error
	GetByName(ctx context.Context, name string) (*domain.BreakAction, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.BreakAction, error)
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
