package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// Mode is the repetition semantics of a repeating entry.
type Mode int

const (
	// FixedDelay schedules the next run period after the previous run completed.
	FixedDelay Mode = iota
	// FixedRate schedules runs on the nominal grid start + k*period.
	FixedRate
)

func (m Mode) String() string {
	switch m {
	case FixedDelay:
		return "fixed_delay"
	case FixedRate:
		return "fixed_rate"
	}
	return "unknown"
}

// Entry pairs a Task with its timing policy.
//
// Entries created by a Scheduler are owned by it and guarded by its mutex;
// use the Handle to inspect them. NewEntry and the read accessors are for
// building on TimerQueue directly, outside of a Scheduler.
type Entry struct {
	id           uuid.UUID
	handle       *Handle
	task         Task
	nextFireTime time.Time
	period       time.Duration
	mode         Mode
	sequence     uint64

	// catchUp is the number of fixed-rate runs still owed for ticks that had
	// elapsed before the entry was submitted.
	catchUp   int64
	index     int
	cancelled bool
	done      bool

	lastStartDelay time.Duration
	lastRunAt      time.Time
	runs           int
	failures       int
}

// NewEntry creates an entry which is not in any queue yet.
// period == 0 makes it one-shot.
func NewEntry(task Task, nextFireTime time.Time, period time.Duration, mode Mode, sequence uint64) *Entry {
	return &Entry{
		id:           uuid.New(),
		task:         task,
		nextFireTime: nextFireTime,
		period:       period,
		mode:         mode,
		sequence:     sequence,
		index:        -1,
	}
}

func (e *Entry) Id() uuid.UUID {
	return e.id
}

func (e *Entry) NextFireTime() time.Time {
	return e.nextFireTime
}

func (e *Entry) Period() time.Duration {
	return e.period
}

func (e *Entry) Mode() Mode {
	return e.mode
}

func (e *Entry) Sequence() uint64 {
	return e.sequence
}

// IsOneShot reports whether the entry is dropped after its first run.
func (e *Entry) IsOneShot() bool {
	return e.period == 0
}

func less(i, j *Entry) bool {
	if !i.nextFireTime.Equal(j.nextFireTime) {
		return i.nextFireTime.Before(j.nextFireTime)
	}
	return i.sequence < j.sequence
}

func setIndex(e *Entry, i int) {
	e.index = i
}

// reschedule moves nextFireTime forward after a run completed at completedAt.
// ok is false for a one-shot entry. skipped is the number of fixed-rate ticks
// dropped because the run overran them.
func (e *Entry) reschedule(completedAt time.Time) (ok bool, skipped int64) {
	if e.IsOneShot() {
		return false, 0
	}

	switch e.mode {
	case FixedDelay:
		e.nextFireTime = completedAt.Add(e.period)
	case FixedRate:
		e.nextFireTime = e.nextFireTime.Add(e.period)
		if e.catchUp > 0 {
			e.catchUp--
			return true, 0
		}
		if !e.nextFireTime.After(completedAt) {
			skipped = int64(completedAt.Sub(e.nextFireTime)/e.period) + 1
			e.nextFireTime = e.nextFireTime.Add(time.Duration(skipped) * e.period)
		}
	}
	return true, skipped
}

// catchUpTicks computes the first fire time of a fixed-rate entry starting at start.
//
// If start is not after now, ticks start, start+period, ... up to now have elapsed.
// owed is the number of those ticks to be replayed after the first run.
// If maxRuns > 0 and more than maxRuns ticks elapsed, the oldest ones are dropped
// and the count is reported as dropped.
func catchUpTicks(start, now time.Time, period time.Duration, maxRuns int) (first time.Time, owed int64, dropped int64) {
	if start.After(now) {
		return start, 0, 0
	}

	elapsed := int64(now.Sub(start)/period) + 1
	if maxRuns > 0 && elapsed > int64(maxRuns) {
		dropped = elapsed - int64(maxRuns)
		start = start.Add(time.Duration(dropped) * period)
		elapsed = int64(maxRuns)
	}
	return start, elapsed - 1, dropped
}
