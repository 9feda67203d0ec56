package window

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func contents(t *testing.T, w *Window[int]) []int {
	t.Helper()
	out := make([]int, 0, w.Len())
	for i := 0; i < w.Len(); i++ {
		v, err := w.At(i)
		require.NoError(t, err)
		out = append(out, *v)
	}
	return out
}

func TestPushPop(t *testing.T) {
	w := New[int](3, Throw)
	require.NoError(t, w.PushBack(1))
	require.NoError(t, w.PushBack(2))
	require.NoError(t, w.PushFront(0))
	require.True(t, w.Full())
	require.Equal(t, []int{0, 1, 2}, contents(t, w))

	v, err := w.PopFront()
	require.NoError(t, err)
	require.Equal(t, 0, v)

	v, err = w.PopBack()
	require.NoError(t, err)
	require.Equal(t, 2, v)
	require.Equal(t, 1, w.Len())
}

func TestWrapAround(t *testing.T) {
	w := New[int](3, Throw)
	for i := 0; i < 10; i++ {
		require.NoError(t, w.PushBack(i))
		if w.Len() == 3 {
			_, err := w.PopFront()
			require.NoError(t, err)
		}
	}
	require.Equal(t, []int{8, 9}, contents(t, w))
}

func TestThrow(t *testing.T) {
	w := New[int](2, Throw)
	require.NoError(t, w.PushBack(1))
	require.NoError(t, w.PushBack(2))
	require.ErrorIs(t, w.PushBack(3), ErrOverflow)
	require.ErrorContains(t, w.PushBack(3), "capacity 2")
	require.ErrorIs(t, w.PushFront(0), ErrOverflow)
	require.Equal(t, []int{1, 2}, contents(t, w))
}

func TestDropOldest(t *testing.T) {
	w := New[int](3, DropOldest)
	for i := 1; i <= 5; i++ {
		require.NoError(t, w.PushBack(i))
	}
	require.Equal(t, []int{3, 4, 5}, contents(t, w))

	// pushing at the front evicts the newest
	require.NoError(t, w.PushFront(2))
	require.Equal(t, []int{2, 3, 4}, contents(t, w))
}

func TestDropNewest(t *testing.T) {
	w := New[int](2, DropNewest)
	for i := 1; i <= 4; i++ {
		require.NoError(t, w.PushBack(i))
	}
	require.Equal(t, []int{1, 2}, contents(t, w))
}

func TestGrow(t *testing.T) {
	w := New[int](2, Grow, WithMaxCapacity(8))
	require.NoError(t, w.PushBack(1))
	require.NoError(t, w.PushBack(2))
	// wrap the ring before growing so resize has to unroll it
	_, err := w.PopFront()
	require.NoError(t, err)
	require.NoError(t, w.PushBack(3))
	require.NoError(t, w.PushFront(1))
	require.Equal(t, 4, w.Cap())
	require.Equal(t, []int{1, 2, 3}, contents(t, w))

	for i := 4; i <= 8; i++ {
		require.NoError(t, w.PushBack(i))
	}
	require.Equal(t, 8, w.Cap())
	require.ErrorIs(t, w.PushBack(9), ErrOverflow)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, contents(t, w))
}

func TestOutOfRange(t *testing.T) {
	w := New[int](4, Throw)
	require.NoError(t, w.PushBack(1))
	_, err := w.At(1)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = w.At(-1)
	require.ErrorIs(t, err, ErrOutOfRange)

	w.Clear()
	require.True(t, w.Empty())
	_, err = w.PopFront()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = w.PopBack()
	require.ErrorIs(t, err, ErrEmpty)
	_, err = w.Front()
	require.ErrorIs(t, err, ErrEmpty)
}

func TestViewIsSlot(t *testing.T) {
	w := New[int](2, Throw)
	require.NoError(t, w.PushBack(1))
	v, err := w.At(0)
	require.NoError(t, err)
	*v = 42
	got, err := w.PopFront()
	require.NoError(t, err)
	require.Equal(t, 42, got)
}

func FuzzWindow(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 0, 0})
	f.Add([]byte{1, 1, 1, 1, 1, 2, 2, 3})

	f.Fuzz(func(t *testing.T, ops []byte) {
		w := New[int](4, Grow, WithMaxCapacity(64))
		var model []int
		for i, op := range ops {
			switch op % 4 {
			case 0:
				if err := w.PushBack(i); err == nil {
					model = append(model, i)
				}
			case 1:
				if err := w.PushFront(i); err == nil {
					model = append([]int{i}, model...)
				}
			case 2:
				v, err := w.PopFront()
				if len(model) == 0 {
					require.ErrorIs(t, err, ErrEmpty)
					continue
				}
				require.Equal(t, model[0], v)
				model = model[1:]
			case 3:
				v, err := w.PopBack()
				if len(model) == 0 {
					require.ErrorIs(t, err, ErrEmpty)
					continue
				}
				require.Equal(t, model[len(model)-1], v)
				model = model[:len(model)-1]
			}
			require.Equal(t, len(model), w.Len())
		}
	})
}
