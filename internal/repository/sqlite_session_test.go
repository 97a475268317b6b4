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

func newTestSession(start time.Time) *domain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Session{
		ID:        uuid.NewString(),
		Sphere:    "work",
		Start:     start,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSessionRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := newTestSession(start)
	s.End = start.Add(30 * time.Minute)
	s.Periods = []domain.Period{
		{Kind: domain.PeriodActive, Start: start, End: start.Add(20 * time.Minute)},
		{Kind: domain.PeriodBreak, Start: start.Add(20 * time.Minute), End: start.Add(30 * time.Minute)},
	}
	s.RecomputeTotals()
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "work", got.Sphere)
	assert.True(t, got.Start.Equal(start))
	assert.True(t, got.End.Equal(s.End))
	require.Len(t, got.Periods, 2)
	assert.Equal(t, domain.PeriodActive, got.Periods[0].Kind)
	assert.Equal(t, 20*time.Minute, got.ActiveDuration)
	assert.Equal(t, 10*time.Minute, got.BreakDuration)
}

func TestSessionRepo_RecordRoundTripWithTags(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := newTestSession(start)
	s.End = start.Add(1000 * time.Second)
	p := domain.Period{Kind: domain.PeriodActive, Start: start, End: s.End}
	require.NoError(t, p.ApplyTag(domain.TagAssignment{
		Primary: "thesis", Secondary: "email", SecondaryPercentage: 40,
	}))
	s.Periods = []domain.Period{p}
	s.RecomputeTotals()
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Periods, 1)
	assert.Equal(t, "thesis", got.Periods[0].Tag)
	require.NotNil(t, got.Periods[0].Secondary)
	assert.Equal(t, "email", got.Periods[0].Secondary.Name)
	assert.Equal(t, 40, got.Periods[0].Secondary.Percentage)
	assert.Equal(t, 400*time.Second, got.Periods[0].Secondary.Duration)
	assert.Equal(t, 600*time.Second, got.Periods[0].PrimaryDuration())
}

func TestSessionRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)

	_, err := repo.GetByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := newTestSession(start)
	require.NoError(t, repo.Create(ctx, s))

	s.Sphere = "personal"
	s.End = start.Add(time.Hour)
	s.Periods = []domain.Period{
		{Kind: domain.PeriodActive, Start: start, End: s.End},
	}
	s.RecomputeTotals()
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "personal", got.Sphere)
	assert.Equal(t, time.Hour, got.ActiveDuration)
}

func TestSessionRepo_UpdateMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)

	s := newTestSession(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	err := repo.Update(context.Background(), s)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_ListRange(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	day1 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)
	for _, start := range []time.Time{day2, day1, day3} {
		require.NoError(t, repo.Create(ctx, newTestSession(start)))
	}

	got, err := repo.ListRange(ctx, day1, day3)
	require.NoError(t, err)
	require.Len(t, got, 2, "range end is exclusive")
	assert.True(t, got[0].Start.Equal(day1), "results ordered by start")
	assert.True(t, got[1].Start.Equal(day2))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSessionRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	s := newTestSession(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Delete(ctx, s.ID))

	_, err := repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_MalformedRecordDoesNotFailLoad(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	s := newTestSession(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, s))

	_, err := database.ExecContext(ctx, `UPDATE sessions SET record = '{broken' WHERE id = ?`, s.ID)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Periods)
}
