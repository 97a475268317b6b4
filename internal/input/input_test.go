package input

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_TouchKeepsNewest(t *testing.T) {
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	r := NewRecorder(t0)
	assert.True(t, r.LastInput().Equal(t0))

	r.Touch(t0.Add(time.Second))
	assert.True(t, r.LastInput().Equal(t0.Add(time.Second)))

	// Stale timestamps never move the clock backwards.
	r.Touch(t0.Add(-time.Minute))
	assert.True(t, r.LastInput().Equal(t0.Add(time.Second)))
}

func TestRecorder_ConcurrentTouches(t *testing.T) {
	t0 := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	r := NewRecorder(t0)

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Touch(t0.Add(time.Duration(n) * time.Millisecond))
		}(i)
	}
	wg.Wait()

	assert.True(t, r.LastInput().Equal(t0.Add(100*time.Millisecond)),
		"the newest touch must win regardless of arrival order")
}
