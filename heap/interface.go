package heap

func NewInterface[T any](less func(i, j T) bool, setIndex func(ele T, i int)) *heapInterface[T] {
	if less == nil {
		return nil
	}
	if setIndex == nil {
		setIndex = func(T, int) {}
	}
	return &heapInterface[T]{
		s:        make([]T, 0),
		less:     less,
		setIndex: setIndex,
	}
}

type heapInterface[T any] struct {
	s        []T
	less     func(i, j T) bool
	setIndex func(ele T, i int)
}

func (s *heapInterface[T]) Len() int {
	return len(s.s)
}

// Less reports whether s[i] must be popped before s[j].
func (s *heapInterface[T]) Less(i, j int) bool {
	return s.less(s.s[i], s.s[j])
}

// Swap swaps the elements with indexes i and j.
func (s *heapInterface[T]) Swap(i, j int) {
	s.s[i], s.s[j] = s.s[j], s.s[i]
	s.setIndex(s.s[i], i)
	s.setIndex(s.s[j], j)
}

func (s *heapInterface[T]) Push(x any) {
	c, ok := x.(T)
	if !ok {
		panic("invariant violation")
	}
	s.setIndex(c, len(s.s))
	s.s = append(s.s, c)
}

func (s *heapInterface[T]) Pop() (p any) {
	var zero T
	last := len(s.s) - 1
	c := s.s[last]
	// drop reference so that popped element can be collected.
	s.s[last] = zero
	s.s = s.s[:last]
	s.setIndex(c, -1)
	return c
}

func (s *heapInterface[T]) Peek() (p any) {
	if len(s.s) != 0 {
		return s.s[0]
	} else {
		return
	}
}

func (s *heapInterface[T]) At(i int) (p T, ok bool) {
	if i < 0 || i >= len(s.s) {
		return
	}
	return s.s[i], true
}
