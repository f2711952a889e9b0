package common_test

import (
	"testing"
	"time"

	"github.com/ngicks/fixedtimer/common"
	"github.com/stretchr/testify/require"
)

func TestRealClock(t *testing.T) {
	clock := common.NewRealClock()

	now := clock.Now()
	require.Equal(t, common.TimedOut, clock.WaitUntil(now.Add(-time.Second), nil))

	require.Equal(t, common.TimedOut, clock.WaitUntil(clock.Now().Add(10*time.Millisecond), nil))
	require.GreaterOrEqual(t, clock.Now().Sub(now), 10*time.Millisecond)

	cancel := make(chan struct{})
	close(cancel)
	start := clock.Now()
	require.Equal(t, common.Cancelled, clock.WaitUntil(start.Add(time.Hour), cancel))
	require.Less(t, clock.Now().Sub(start), time.Second)
}

func TestFakeClock(t *testing.T) {
	t.Run("auto advance", func(t *testing.T) {
		now := time.Date(2016, 5, 10, 0, 0, 0, 0, time.UTC)
		clock := common.NewAutoAdvanceClock(now)

		require.Equal(t, common.TimedOut, clock.WaitUntil(now.Add(2*time.Second), nil))
		require.True(t, now.Add(2*time.Second).Equal(clock.Now()))

		// past target does not move the clock backward.
		require.Equal(t, common.TimedOut, clock.WaitUntil(now, nil))
		require.True(t, now.Add(2*time.Second).Equal(clock.Now()))

		cancel := make(chan struct{}, 1)
		cancel <- struct{}{}
		require.Equal(t, common.Cancelled, clock.WaitUntil(now.Add(time.Hour), cancel))
		require.True(t, now.Add(2*time.Second).Equal(clock.Now()))
	})

	t.Run("manual", func(t *testing.T) {
		now := time.Date(2016, 5, 10, 0, 0, 0, 0, time.UTC)
		clock := common.NewFakeClock(now)

		resultCh := make(chan common.WaitResult)
		go func() {
			resultCh <- clock.WaitUntil(now.Add(time.Second), nil)
		}()

		require.True(t, now.Add(time.Second).Equal(<-clock.Waiting()))
		clock.Advance(500 * time.Millisecond)
		select {
		case <-resultCh:
			t.Fatalf("must not return before target")
		case <-time.After(10 * time.Millisecond):
		}
		clock.Advance(500 * time.Millisecond)
		require.Equal(t, common.TimedOut, <-resultCh)

		cancel := make(chan struct{})
		go func() {
			resultCh <- clock.WaitUntil(now.Add(time.Hour), cancel)
		}()
		<-clock.Waiting()
		close(cancel)
		require.Equal(t, common.Cancelled, <-resultCh)
	})
}
