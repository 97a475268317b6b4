package service

import (
	"context"
	"testing"
	"time"

	"github.com/acmercer/timekeep/internal/domain"
	"github.com/acmercer/timekeep/internal/repository"
	"github.com/acmercer/timekeep/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionFixture(t *testing.T) (CompletionService, repository.SessionRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSessionRepo(database)
	return NewCompletionService(repo, testutil.NewTestUoW(database)), repo
}

// seedEndedSession stores an ended, untagged session with an active, a
// break, and an idle period.
func seedEndedSession(t *testing.T, repo repository.SessionRepo) *domain.Session {
	t.Helper()
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.Session{
		ID:    uuid.NewString(),
		Start: t0,
		End:   t0.Add(40 * time.Minute),
		Periods: []domain.Period{
			{Kind: domain.PeriodActive, Start: t0, End: t0.Add(20 * time.Minute)},
			{Kind: domain.PeriodBreak, Start: t0.Add(20 * time.Minute), End: t0.Add(30 * time.Minute)},
			{Kind: domain.PeriodIdle, Start: t0.Add(30 * time.Minute), End: t0.Add(40 * time.Minute)},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.RecomputeTotals()
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

func TestCompletionService_ListPending(t *testing.T) {
	svc, repo := newCompletionFixture(t)
	ctx := context.Background()

	needsWork := seedEndedSession(t, repo)

	// A fully completed session must not be listed.
	done := seedEndedSession(t, repo)
	done.Start = done.Start.Add(24 * time.Hour)
	done.End = done.End.Add(24 * time.Hour)
	for i := range done.Periods {
		done.Periods[i].Start = done.Periods[i].Start.Add(24 * time.Hour)
		done.Periods[i].End = done.Periods[i].End.Add(24 * time.Hour)
		require.NoError(t, done.Periods[i].ApplyTag(domain.TagAssignment{Primary: "filed"}))
	}
	done.Sphere = "work"
	require.NoError(t, repo.Update(ctx, done))

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, needsWork.ID, pending[0].ID)
}

func TestCompletionService_AssignSphere(t *testing.T) {
	svc, repo := newCompletionFixture(t)
	ctx := context.Background()
	s := seedEndedSession(t, repo)

	require.NoError(t, svc.AssignSphere(ctx, s.ID, "work"))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "work", got.Sphere)
}

func TestCompletionService_TagPeriodPersistsSplit(t *testing.T) {
	svc, repo := newCompletionFixture(t)
	ctx := context.Background()
	s := seedEndedSession(t, repo)

	require.NoError(t, svc.TagPeriod(ctx, s.ID, 0, domain.TagAssignment{
		Primary: "thesis", Secondary: "email", SecondaryPercentage: 40,
	}))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	p := got.Periods[0]
	assert.Equal(t, "thesis", p.Tag)
	require.NotNil(t, p.Secondary)
	assert.Equal(t, "email", p.Secondary.Name)
	assert.Equal(t, 8*time.Minute, p.Secondary.Duration)
	assert.Equal(t, 12*time.Minute, p.PrimaryDuration())
}

func TestCompletionService_TagPeriodRejectionLeavesSessionUnchanged(t *testing.T) {
	svc, repo := newCompletionFixture(t)
	ctx := context.Background()
	s := seedEndedSession(t, repo)

	err := svc.TagPeriod(ctx, s.ID, 0, domain.TagAssignment{
		Primary: "thesis", Secondary: "email", SecondaryPercentage: 100,
	})
	require.ErrorIs(t, err, domain.ErrPercentageRange)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Periods[0].Tag)
	assert.Nil(t, got.Periods[0].Secondary)
}

func TestCompletionService_TagPeriodIndexOutOfRange(t *testing.T) {
	svc, repo := newCompletionFixture(t)
	s := seedEndedSession(t, repo)

	err := svc.TagPeriod(context.Background(), s.ID, 7, domain.TagAssignment{Primary: "thesis"})
	assert.Error(t, err)
}

func TestCompletionService_SkipAppliesDefaults(t *testing.T) {
	svc, repo := newCompletionFixture(t)
	ctx := context.Background()
	s := seedEndedSession(t, repo)

	// One period tagged by hand; skip must leave it alone.
	require.NoError(t, svc.TagPeriod(ctx, s.ID, 1, domain.TagAssignment{Primary: "lunch"}))

	require.NoError(t, svc.Skip(ctx, s.ID, SkipDefaults{
		Sphere: "work", Project: "misc", Action: "rest",
	}))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "work", got.Sphere)
	assert.Equal(t, "misc", got.Periods[0].Tag)
	assert.Equal(t, "lunch", got.Periods[1].Tag)
	assert.Equal(t, "rest", got.Periods[2].Tag)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCompletionService_Delete(t *testing.T) {
	svc, repo := newCompletionFixture(t)
	ctx := context.Background()
	s := seedEndedSession(t, repo)

	require.NoError(t, svc.Delete(ctx, s.ID))
	_, err := repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCompletionService_MutateMissingSession(t *testing.T) {
	svc, _ := newCompletionFixture(t)

	err := svc.AssignSphere(context.Background(), uuid.NewString(), "work")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
