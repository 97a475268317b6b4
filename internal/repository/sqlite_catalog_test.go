package repository

import (
	"context"
	"testing"
	"time"

	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSphere(name string) *domain.Sphere {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Sphere{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    domain.EntityActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSphereRepo_CreateGetArchive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSphereRepo(database)
	ctx := context.Background()

	s := newSphere("work")
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByName(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, domain.EntityActive, got.Status)
	assert.Nil(t, got.ArchivedAt)

	require.NoError(t, repo.Archive(ctx, s.ID))
	got, err = repo.GetByName(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, domain.EntityArchived, got.Status)
	require.NotNil(t, got.ArchivedAt)

	require.NoError(t, repo.Unarchive(ctx, s.ID))
	got, err = repo.GetByName(ctx, "work")
	require.NoError(t, err)
	assert.Equal(t, domain.EntityActive, got.Status)
	assert.Nil(t, got.ArchivedAt)
}

func TestSphereRepo_ListFiltersArchived(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSphereRepo(database)
	ctx := context.Background()

	active := newSphere("active")
	archived := newSphere("dormant")
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, archived))
	require.NoError(t, repo.Archive(ctx, archived.ID))

	visible, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "active", visible[0].Name)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSphereRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSphereRepo(database)

	_, err := repo.GetByName(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ScopedToSphere(t *testing.T) {
	database := testutil.NewTestDB(t)
	sphereRepo := NewSQLiteSphereRepo(database)
	projectRepo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	work := newSphere("work")
	personal := newSphere("personal")
	require.NoError(t, sphereRepo.Create(ctx, work))
	require.NoError(t, sphereRepo.Create(ctx, personal))

	now := time.Now().UTC().Truncate(time.Second)
	for _, p := range []*domain.Project{
		{ID: uuid.NewString(), SphereID: work.ID, Name: "thesis", Status: domain.EntityActive, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), SphereID: work.ID, Name: "email", Status: domain.EntityActive, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), SphereID: personal.ID, Name: "thesis", Status: domain.EntityActive, CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, projectRepo.Create(ctx, p))
	}

	// Same name may exist under different spheres.
	got, err := projectRepo.GetByName(ctx, work.ID, "thesis")
	require.NoError(t, err)
	assert.Equal(t, work.ID, got.SphereID)

	workProjects, err := projectRepo.ListBySphere(ctx, work.ID, false)
	require.NoError(t, err)
	assert.Len(t, workProjects, 2)

	all, err := projectRepo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProjectRepo_ArchiveCycle(t *testing.T) {
	database := testutil.NewTestDB(t)
	sphereRepo := NewSQLiteSphereRepo(database)
	projectRepo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	work := newSphere("work")
	require.NoError(t, sphereRepo.Create(ctx, work))

	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID: uuid.NewString(), SphereID: work.ID, Name: "thesis",
		Status: domain.EntityActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, projectRepo.Create(ctx, p))
	require.NoError(t, projectRepo.Archive(ctx, p.ID))

	visible, err := projectRepo.ListBySphere(ctx, work.ID, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	require.NoError(t, projectRepo.Unarchive(ctx, p.ID))
	visible, err = projectRepo.ListBySphere(ctx, work.ID, false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestBreakActionRepo_CRUD(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteBreakActionRepo(database)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.BreakAction{
		ID: uuid.NewString(), Name: "lunch",
		Status: domain.EntityActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByName(ctx, "lunch")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	require.NoError(t, repo.Archive(ctx, a.ID))
	visible, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByName(ctx, "lunch")
	assert.ErrorIs(t, err, ErrNotFound)
}
