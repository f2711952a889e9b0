package scheduler

import (
	"github.com/ngicks/fixedtimer/heap"
)

// TimerQueue is a min-heap of *Entry ordered by next fire time, then by sequence.
//
// TimerQueue is not concurrent-safe. Scheduler guards it by its own mutex.
type TimerQueue struct {
	heap *heap.Heap[*Entry]
}

func NewTimerQueue() *TimerQueue {
	return &TimerQueue{heap: heap.NewIndexedHeap(less, setIndex)}
}

// Len returns number of entries in the queue.
func (q *TimerQueue) Len() int {
	return q.heap.Len()
}

// Insert pushes entry into the queue.
// If entry is already in this queue, its position is fixed instead so that
// an entry never appears twice.
// The complexity is O(log n).
func (q *TimerQueue) Insert(entry *Entry) {
	if q.contains(entry) {
		q.heap.Fix(entry.index)
		return
	}
	q.heap.Push(entry)
}

// Peek returns the earliest entry without removing it, or nil if the queue is empty.
func (q *TimerQueue) Peek() *Entry {
	return q.heap.Peek()
}

// RemoveEarliest removes and returns the entry Peek would return.
// ErrEmptyQueue is returned if the queue is empty.
func (q *TimerQueue) RemoveEarliest() (*Entry, error) {
	if q.heap.Len() == 0 {
		return nil, ErrEmptyQueue
	}
	return q.heap.Pop(), nil
}

// Remove removes entry by identity. It is no-op if entry is not in the queue.
// The complexity is O(log n).
func (q *TimerQueue) Remove(entry *Entry) (removed bool) {
	if !q.contains(entry) {
		return false
	}
	_, removed = q.heap.Remove(entry.index)
	return removed
}

func (q *TimerQueue) contains(entry *Entry) bool {
	if entry == nil {
		return false
	}
	at, ok := q.heap.At(entry.index)
	return ok && at == entry
}
