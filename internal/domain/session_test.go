package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_RecomputeTotals(t *testing.T) {
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := Session{
		Start: t0,
		End:   t0.Add(30 * time.Minute),
		Periods: []Period{
			{Kind: PeriodActive, Start: t0, End: t0.Add(20 * time.Minute)},
			{Kind: PeriodIdle, Start: t0.Add(20 * time.Minute), End: t0.Add(25 * time.Minute)},
			{Kind: PeriodBreak, Start: t0.Add(25 * time.Minute), End: t0.Add(30 * time.Minute)},
		},
	}
	s.RecomputeTotals()

	assert.Equal(t, 20*time.Minute, s.ActiveDuration)
	assert.Equal(t, 5*time.Minute, s.BreakDuration)
	assert.Equal(t, 5*time.Minute, s.IdleDuration)
	assert.Equal(t, 10*time.Minute, s.DisplayBreakDuration())
	assert.Equal(t, 30*time.Minute, s.TotalDuration())
	require.NoError(t, s.Validate())
}

func TestSession_ValidateDetectsGap(t *testing.T) {
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := Session{
		Start: t0,
		End:   t0.Add(10 * time.Minute),
		Periods: []Period{
			{Kind: PeriodActive, Start: t0, End: t0.Add(4 * time.Minute)},
			{Kind: PeriodBreak, Start: t0.Add(5 * time.Minute), End: t0.Add(10 * time.Minute)},
		},
	}
	assert.Error(t, s.Validate())
}

func TestSession_ValidateDetectsSumMismatch(t *testing.T) {
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := Session{
		Start: t0,
		End:   t0.Add(10 * time.Minute),
		Periods: []Period{
			{Kind: PeriodActive, Start: t0, End: t0.Add(8 * time.Minute)},
		},
	}
	assert.Error(t, s.Validate(), "last period must reach the session end")
}

func TestSession_ValidateDetectsZeroDuration(t *testing.T) {
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := Session{
		Periods: []Period{
			{Kind: PeriodActive, Start: t0, End: t0},
		},
	}
	assert.Error(t, s.Validate())
}
