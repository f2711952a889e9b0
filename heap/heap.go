package heap

import (
	"container/heap"
)

// Heap is a generic binary min-heap.
//
// If setIndex is given to NewIndexedHeap, it is called every time an element moves,
// with -1 once the element leaves the heap. Callers can keep the position
// in the element itself and later Remove or Fix it in O(log n).
type Heap[T any] struct {
	hi *heapInterface[T]
}

func NewHeap[T any](less func(i, j T) bool) *Heap[T] {
	return NewIndexedHeap(less, nil)
}

func NewIndexedHeap[T any](less func(i, j T) bool, setIndex func(ele T, i int)) *Heap[T] {
	if less == nil {
		return nil
	}
	h := &Heap[T]{
		hi: NewInterface(less, setIndex),
	}
	heap.Init(h.hi)
	return h
}

func (h *Heap[T]) Len() int {
	return h.hi.Len()
}

func (h *Heap[T]) Push(ele T) {
	heap.Push(h.hi, ele)
}

// Pop removes and returns the min element.
// It panics if the heap is empty; check Len first.
func (h *Heap[T]) Pop() T {
	c, ok := heap.Pop(h.hi).(T)
	if !ok {
		panic("invariant violated")
	}
	return c
}

// Remove removes the element at i.
// ok is false if i is out of range.
func (h *Heap[T]) Remove(i int) (removed T, ok bool) {
	if _, ok := h.hi.At(i); !ok {
		return removed, false
	}
	c, ok := heap.Remove(h.hi, i).(T)
	if !ok {
		panic("invariant violated")
	}
	return c, true
}

// Fix re-establishes ordering after the element at i changed its priority.
func (h *Heap[T]) Fix(i int) {
	if _, ok := h.hi.At(i); !ok {
		return
	}
	heap.Fix(h.hi, i)
}

// At returns the element at i without removing it.
func (h *Heap[T]) At(i int) (T, bool) {
	return h.hi.At(i)
}

// Peek returns the min element, or the zero value if the heap is empty.
func (h *Heap[T]) Peek() (p T) {
	c, ok := h.hi.Peek().(T)
	if !ok {
		return
	}
	return c
}
