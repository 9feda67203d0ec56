// Package window provides a ring buffer of values with bounded lookahead
// and lookbehind, used by the analysis filters to keep tokens without a heap
// allocation per token.
//
// Slots are reused: a pointer returned by At is only valid until the next
// push that recycles that slot.
package window

import (
	"fmt"

	"github.com/Laisky/errors/v2"
)

// Policy decides what a push does on a full window.
type Policy int

const (
	// Throw fails the push with ErrOverflow.
	Throw Policy = iota
	// DropOldest evicts the element at the opposite end.
	DropOldest
	// DropNewest ignores the incoming element.
	DropNewest
	// Grow doubles the capacity up to the maximum, then behaves as Throw.
	Grow
)

func (p Policy) String() string {
	switch p {
	case Throw:
		return "throw"
	case DropOldest:
		return "drop-oldest"
	case DropNewest:
		return "drop-newest"
	case Grow:
		return "grow"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// DefaultMaxCapacity bounds a Grow window.
const DefaultMaxCapacity = 1024

var (
	ErrOverflow   = errors.New("window: overflow")
	ErrOutOfRange = errors.New("window: index out of range")
	ErrEmpty      = errors.New("window: empty")
)

// Window is a fixed or growable ring buffer. Index 0 is the oldest element.
// A Window is not safe for concurrent use.
type Window[T any] struct {
	buf    []T
	head   int
	size   int
	policy Policy
	max    int
}

// Option configures a Window.
type Option func(*options)

type options struct {
	max int
}

// WithMaxCapacity sets the hard limit of a Grow window.
func WithMaxCapacity(n int) Option {
	return func(o *options) { o.max = n }
}

// New returns a window holding up to capacity elements.
func New[T any](capacity int, policy Policy, opts ...Option) *Window[T] {
	if capacity < 1 {
		capacity = 1
	}
	o := options{max: DefaultMaxCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.max < capacity {
		o.max = capacity
	}
	return &Window[T]{
		buf:    make([]T, capacity),
		policy: policy,
		max:    o.max,
	}
}

func (w *Window[T]) Len() int       { return w.size }
func (w *Window[T]) Cap() int       { return len(w.buf) }
func (w *Window[T]) Full() bool     { return w.size == len(w.buf) }
func (w *Window[T]) Empty() bool    { return w.size == 0 }
func (w *Window[T]) Policy() Policy { return w.policy }

func (w *Window[T]) slot(i int) int {
	return (w.head + i) % len(w.buf)
}

// makeRoom applies the overflow policy. It reports false when the incoming
// element must be ignored.
func (w *Window[T]) makeRoom(front bool) (bool, error) {
	if !w.Full() {
		return true, nil
	}
	switch w.policy {
	case DropOldest:
		// evict at the end opposite to the push
		if front {
			_, _ = w.PopBack()
		} else {
			_, _ = w.PopFront()
		}
		return true, nil
	case DropNewest:
		return false, nil
	case Grow:
		if len(w.buf) >= w.max {
			return false, errors.Wrapf(ErrOverflow, "capacity %d reached its maximum", len(w.buf))
		}
		w.resize(min(len(w.buf)*2, w.max))
		return true, nil
	default:
		return false, errors.Wrapf(ErrOverflow, "capacity %d", len(w.buf))
	}
}

func (w *Window[T]) resize(n int) {
	buf := make([]T, n)
	for i := 0; i < w.size; i++ {
		buf[i] = w.buf[w.slot(i)]
	}
	w.buf = buf
	w.head = 0
}

// PushBack appends v as the newest element.
func (w *Window[T]) PushBack(v T) error {
	ok, err := w.makeRoom(false)
	if !ok {
		return err
	}
	w.buf[w.slot(w.size)] = v
	w.size++
	return nil
}

// PushFront inserts v as the oldest element.
func (w *Window[T]) PushFront(v T) error {
	ok, err := w.makeRoom(true)
	if !ok {
		return err
	}
	w.head = (w.head - 1 + len(w.buf)) % len(w.buf)
	w.buf[w.head] = v
	w.size++
	return nil
}

// PopFront removes and returns the oldest element.
func (w *Window[T]) PopFront() (T, error) {
	var zero T
	if w.size == 0 {
		return zero, ErrEmpty
	}
	v := w.buf[w.head]
	w.buf[w.head] = zero
	w.head = (w.head + 1) % len(w.buf)
	w.size--
	return v, nil
}

// PopBack removes and returns the newest element.
func (w *Window[T]) PopBack() (T, error) {
	var zero T
	if w.size == 0 {
		return zero, ErrEmpty
	}
	i := w.slot(w.size - 1)
	v := w.buf[i]
	w.buf[i] = zero
	w.size--
	return v, nil
}

// At returns a view of the element at position i, 0 being the oldest.
func (w *Window[T]) At(i int) (*T, error) {
	if i < 0 || i >= w.size {
		return nil, errors.Wrapf(ErrOutOfRange, "%d not in [0,%d)", i, w.size)
	}
	return &w.buf[w.slot(i)], nil
}

// Front returns a view of the oldest element.
func (w *Window[T]) Front() (*T, error) {
	if w.size == 0 {
		return nil, ErrEmpty
	}
	return &w.buf[w.head], nil
}

// Clear drops every element, keeping the capacity.
func (w *Window[T]) Clear() {
	var zero T
	for i := 0; i < w.size; i++ {
		w.buf[w.slot(i)] = zero
	}
	w.head = 0
	w.size = 0
}
