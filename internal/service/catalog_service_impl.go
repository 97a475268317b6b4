package service

import (
	"context"
	"time"

	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/repository"
	"github.com/google/uuid"
)

type catalogService struct {
	spheres  repository.SphereRepo
	projects repository.ProjectRepo
	actions  repository.BreakActionRepo
}

// NewCatalogService creates the sphere/project/break-action catalog service.
func NewCatalogService(spheres repository.SphereRepo, projects repository.ProjectRepo, actions repository.BreakActionRepo) CatalogService {
	return &catalogService{spheres: spheres, projects: projects, actions: actions}
}

func (s *catalogService) CreateSphere(ctx context.Context, name string) (*domain.Sphere, error) {
	now := time.Now().UTC()
	sphere := &domain.Sphere{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.EntityActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.spheres.Create(ctx, sphere); err != nil {
		return nil, err
	}
	return sphere, nil
}

func (s *catalogService) CreateProject(ctx context.Context, sphereName, name string) (*domain.Project, error) {
	sphere, err := s.spheres.GetByName(ctx, sphereName)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	project := &domain.Project{
		ID:        uuid.New().String(),
		SphereID:  sphere.ID,
		Name:      name,
		Status:    domain.EntityActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *catalogService) CreateAction(ctx context.Context, name string) (*domain.BreakAction, error) {
	now := time.Now().UTC()
	action := &domain.BreakAction{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.EntityActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.actions.Create(ctx, action); err != nil {
		return nil, err
	}
	return action, nil
}

func (s *catalogService) ListSpheres(ctx context.Context, includeArchived bool) ([]*domain.Sphere, error) {
	return s.spheres.List(ctx, includeArchived)
}

func (s *catalogService) ListProjects(ctx context.Context, sphereName string, includeArchived bool) ([]*domain.Project, error) {
	if sphereName == "" {
		return s.projects.List(ctx, includeArchived)
	}
	sphere, err := s.spheres.GetByName(ctx, sphereName)
	if err != nil {
		return nil, err
	}
	return s.projects.ListBySphere(ctx, sphere.ID, includeArchived)
}

func (s *catalogService) ListActions(ctx context.Context, includeArchived bool) ([]*domain.BreakAction, error) {
	return s.actions.List(ctx, includeArchived)
}

func (s *catalogService) ArchiveSphere(ctx context.Context, name string) error {
	sphere, err := s.spheres.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.spheres.Archive(ctx, sphere.ID)
}

func (s *catalogService) UnarchiveSphere(ctx context.Context, name string) error {
	sphere, err := s.spheres.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.spheres.Unarchive(ctx, sphere.ID)
}

func (s *catalogService) ArchiveProject(ctx context.Context, sphereName, name string) error {
	p, err := s.getProject(ctx, sphereName, name)
	if err != nil {
		return err
	}
	return s.projects.Archive(ctx, p.ID)
}

func (s *catalogService) UnarchiveProject(ctx context.Context, sphereName, name string) error {
	p, err := s.getProject(ctx, sphereName, name)
	if err != nil {
		return err
	}
	return s.projects.Unarchive(ctx, p.ID)
}

func (s *catalogService) ArchiveAction(ctx context.Context, name string) error {
	a, err := s.actions.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.actions.Archive(ctx, a.ID)
}

func (s *catalogService) UnarchiveAction(ctx context.Context, name string) error {
	a, err := s.actions.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.actions.Unarchive(ctx, a.ID)
}

func (s *catalogService) getProject(ctx context.Context, sphereName, name string) (*domain.Project, error) {
	sphere, err := s.spheres.GetByName(ctx, sphereName)
	if err != nil {
		return nil, err
	}
	return s.projects.GetByName(ctx, sphere.ID, name)
}
