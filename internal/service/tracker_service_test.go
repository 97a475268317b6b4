package service

import (
	"context"
	"testing"
	"time"

	"github.com/acmercer/timekeep/internal/repository"
	"github.com/acmercer/timekeep/internal/testutil"
	"github.com/acmercer/timekeep/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackerTestCfg = tracker.Config{
	IdleAfter:      5 * time.Minute,
	IdleBreakAfter: 15 * time.Minute,
}

func newTrackerFixture(t *testing.T) (TrackerService, repository.SessionRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSessionRepo(database)
	return NewTrackerService(repo, trackerTestCfg, nil), repo
}

func TestTrackerService_StartRejectsSecondSession(t *testing.T) {
	svc, _ := newTrackerFixture(t)
	ctx := context.Background()
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	_, err := svc.Start(ctx, t0)
	require.NoError(t, err)

	_, err = svc.Start(ctx, t0.Add(time.Minute))
	assert.ErrorIs(t, err, ErrSessionActive)
}

func TestTrackerService_EndPersistsValidSession(t *testing.T) {
	svc, repo := newTrackerFixture(t)
	ctx := context.Background()
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	started, err := svc.Start(ctx, t0)
	require.NoError(t, err)

	require.NoError(t, svc.Tick(ctx, t0.Add(2*time.Minute), t0.Add(2*time.Minute)))
	require.NoError(t, svc.ToggleBreak(ctx, t0.Add(10*time.Minute)))
	require.NoError(t, svc.ToggleBreak(ctx, t0.Add(20*time.Minute)))
	ended, err := svc.End(ctx, t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.True(t, ended.End.Equal(t0.Add(30*time.Minute)))

	got, err := repo.GetByID(ctx, started.ID)
	require.NoError(t, err)
	require.NoError(t, got.Validate())
	assert.Equal(t, 30*time.Minute, got.TotalDuration())
	assert.Equal(t, 20*time.Minute, got.ActiveDuration)
	assert.Equal(t, 10*time.Minute, got.BreakDuration)
	require.Len(t, got.Periods, 3)
}

func TestTrackerService_StatusReflectsLedger(t *testing.T) {
	svc, _ := newTrackerFixture(t)
	ctx := context.Background()
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	_, err := svc.Status()
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, err = svc.Start(ctx, t0)
	require.NoError(t, err)
	require.NoError(t, svc.ToggleBreak(ctx, t0.Add(5*time.Minute)))

	status, err := svc.Status()
	require.NoError(t, err)
	assert.Equal(t, tracker.StateBreak, status.State)
	assert.True(t, status.Since.Equal(t0.Add(5*time.Minute)))
	assert.Equal(t, 5*time.Minute, status.Active)
	assert.Equal(t, time.Duration(0), status.Break)
}

func TestTrackerService_CommandsWithoutSession(t *testing.T) {
	svc, _ := newTrackerFixture(t)
	ctx := context.Background()
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, svc.Tick(ctx, t0, t0), "tick with no session is a no-op")
	assert.ErrorIs(t, svc.ToggleBreak(ctx, t0), ErrNoActiveSession)
	_, err := svc.End(ctx, t0)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestTrackerService_EndAllowsFreshStart(t *testing.T) {
	svc, _ := newTrackerFixture(t)
	ctx := context.Background()
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	first, err := svc.Start(ctx, t0)
	require.NoError(t, err)
	_, err = svc.End(ctx, t0.Add(time.Minute))
	require.NoError(t, err)

	second, err := svc.Start(ctx, t0.Add(2*time.Minute))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestTrackerService_IdleSurvivesPersistence(t *testing.T) {
	svc, repo := newTrackerFixture(t)
	ctx := context.Background()
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	started, err := svc.Start(ctx, t0)
	require.NoError(t, err)

	// Input stops at t0+1m; the gap is noticed at t0+6m and work resumes
	// at t0+8m.
	require.NoError(t, svc.Tick(ctx, t0.Add(time.Minute), t0.Add(time.Minute)))
	require.NoError(t, svc.Tick(ctx, t0.Add(6*time.Minute), t0.Add(time.Minute)))
	require.NoError(t, svc.Tick(ctx, t0.Add(8*time.Minute), t0.Add(8*time.Minute)))
	_, err = svc.End(ctx, t0.Add(10*time.Minute))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, started.ID)
	require.NoError(t, err)
	require.NoError(t, got.Validate())
	require.Len(t, got.Periods, 3)
	assert.Equal(t, time.Minute, got.Periods[0].Duration())
	assert.Equal(t, 7*time.Minute, got.IdleDuration)
	assert.Equal(t, 3*time.Minute, got.ActiveDuration)
}
