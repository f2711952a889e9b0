package heap_test

import (
	"testing"
	"time"

	"github.com/ngicks/fixedtimer/heap"
	"github.com/stretchr/testify/require"
)

func lessInt(i, j int) bool { return i < j }

func TestMinHeap(t *testing.T) {
	t.Run("number heap", func(t *testing.T) {
		h := heap.NewHeap(lessInt)
		ans := []int{3, 4, 4, 5, 6}
		h.Push(5)
		h.Push(4)
		h.Push(6)
		h.Push(3)
		h.Push(4)

		require.Equal(t, 3, h.Peek())
		for _, i := range ans {
			popped := h.Pop()
			if popped != i {
				t.Errorf("pop = %v expected %v", popped, i)
			}
		}
		if h.Len() != 0 {
			t.Errorf("expect empty but size = %v", h.Len())
		}
		require.Equal(t, 0, h.Peek())
	})

	t.Run("struct heap", func(t *testing.T) {
		type testStruct struct {
			t time.Time
		}
		less := func(i, j *testStruct) bool {
			return i.t.Before(j.t)
		}

		h := heap.NewHeap(less)
		ans := []*testStruct{
			{t: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
			{t: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)},
			{t: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)},
			{t: time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)},
			{t: time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)},
		}
		h.Push(ans[2])
		h.Push(ans[1])
		h.Push(ans[3])
		h.Push(ans[0])
		h.Push(ans[4])

		for _, i := range ans {
			popped := h.Pop()
			if popped != i {
				t.Errorf("pop = %v expected %v", popped.t, i.t)
			}
		}
		if h.Len() != 0 {
			t.Errorf("expect empty but size = %v", h.Len())
		}
		require.Nil(t, h.Peek())
	})

	t.Run("indexed Remove and Fix", func(t *testing.T) {
		type item struct {
			v     int
			index int
		}
		h := heap.NewIndexedHeap(
			func(i, j *item) bool { return i.v < j.v },
			func(ele *item, i int) { ele.index = i },
		)

		items := make([]*item, 0)
		for _, v := range []int{7, 4, 1, 6, 5, 3, 2} {
			it := &item{v: v}
			items = append(items, it)
			h.Push(it)
		}

		for i := 0; i < h.Len(); i++ {
			at, ok := h.At(i)
			require.True(t, ok)
			require.Equal(t, i, at.index)
		}

		// remove every even number by its tracked index.
		for _, it := range items {
			if it.v%2 == 0 {
				removed, ok := h.Remove(it.index)
				require.True(t, ok)
				require.Same(t, it, removed)
				require.Equal(t, -1, it.index)
			}
		}
		_, ok := h.Remove(100)
		require.False(t, ok)
		_, ok = h.Remove(-1)
		require.False(t, ok)

		// 7 becomes the min.
		items[0].v = 0
		h.Fix(items[0].index)

		var popped []int
		for h.Len() != 0 {
			p := h.Pop()
			require.Equal(t, -1, p.index)
			popped = append(popped, p.v)
		}
		require.Equal(t, []int{0, 1, 3, 5}, popped)
	})
}
