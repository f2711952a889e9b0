package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReschedule(t *testing.T) {
	base := time.Date(2016, 5, 10, 0, 0, 0, 0, time.UTC)
	noop := TaskFunc(func() error { return nil })

	type testCase struct {
		label       string
		entry       *Entry
		completedAt time.Time
		ok          bool
		next        time.Time
		skipped     int64
	}

	for _, tc := range []testCase{
		{
			label:       "one-shot is never rescheduled",
			entry:       NewEntry(noop, base, 0, FixedDelay, 1),
			completedAt: base.Add(time.Second),
			ok:          false,
			next:        base,
		},
		{
			label:       "fixed delay counts from completion",
			entry:       NewEntry(noop, base, time.Second, FixedDelay, 1),
			completedAt: base.Add(300 * time.Millisecond),
			ok:          true,
			next:        base.Add(1300 * time.Millisecond),
		},
		{
			label:       "fixed rate ignores execution time",
			entry:       NewEntry(noop, base, time.Second, FixedRate, 1),
			completedAt: base.Add(300 * time.Millisecond),
			ok:          true,
			next:        base.Add(time.Second),
		},
		{
			label:       "fixed rate skips overrun ticks",
			entry:       NewEntry(noop, base, time.Second, FixedRate, 1),
			completedAt: base.Add(2500 * time.Millisecond),
			ok:          true,
			next:        base.Add(3 * time.Second),
			skipped:     2,
		},
		{
			label:       "fixed rate completion exactly on a tick skips it",
			entry:       NewEntry(noop, base, time.Second, FixedRate, 1),
			completedAt: base.Add(time.Second),
			ok:          true,
			next:        base.Add(2 * time.Second),
			skipped:     1,
		},
		{
			label: "fixed rate keeps owed ticks",
			entry: func() *Entry {
				e := NewEntry(noop, base, time.Second, FixedRate, 1)
				e.catchUp = 2
				return e
			}(),
			completedAt: base.Add(5 * time.Second),
			ok:          true,
			next:        base.Add(time.Second),
		},
	} {
		ok, skipped := tc.entry.reschedule(tc.completedAt)
		assert.Equal(t, tc.ok, ok, tc.label)
		assert.Equal(t, tc.skipped, skipped, tc.label)
		assert.True(t, tc.next.Equal(tc.entry.nextFireTime), "%s: next = %s, expected %s", tc.label, tc.entry.nextFireTime, tc.next)
	}
}

func TestCatchUpTicks(t *testing.T) {
	now := time.Date(2016, 5, 10, 0, 0, 10, 0, time.UTC)

	type testCase struct {
		label   string
		start   time.Time
		period  time.Duration
		max     int
		first   time.Time
		owed    int64
		dropped int64
	}

	for _, tc := range []testCase{
		{"future start", now.Add(time.Second), time.Second, 0, now.Add(time.Second), 0, 0},
		{"start is now", now, time.Second, 0, now, 0, 0},
		{"4s ago with 2s period", now.Add(-4 * time.Second), 2 * time.Second, 0, now.Add(-4 * time.Second), 2, 0},
		{"between ticks", now.Add(-5 * time.Second), 2 * time.Second, 0, now.Add(-5 * time.Second), 2, 0},
		{"capped", now.Add(-10 * time.Second), time.Second, 3, now.Add(-2 * time.Second), 2, 8},
		{"cap larger than backlog", now.Add(-2 * time.Second), time.Second, 10, now.Add(-2 * time.Second), 2, 0},
	} {
		first, owed, dropped := catchUpTicks(tc.start, now, tc.period, tc.max)
		assert.True(t, tc.first.Equal(first), "%s: first = %s, expected %s", tc.label, first, tc.first)
		assert.Equal(t, tc.owed, owed, tc.label)
		assert.Equal(t, tc.dropped, dropped, tc.label)
	}
}
