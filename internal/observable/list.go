// Package observable provides an ordered, index-addressable collection that
// reports every mutation to its subscribers as a batch of contiguous edits.
//
// Listeners run synchronously on the goroutine that performed the mutation,
// in subscription order. A List is not safe for concurrent use; all writes
// are expected to happen on one designated goroutine (a UI loop, usually).
package observable

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when an edit addresses a position
	// outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrReentrantEdit is returned when a listener tries to mutate the
	// list that is currently notifying it.
	ErrReentrantEdit = errors.New("list mutated during change notification")
)

// Change describes one contiguous edit starting at Index. Removed holds the
// elements that were at Index before the edit, Added the elements that are
// there after it. A replacement carries both.
type Change[T any] struct {
	Index   int
	Removed []T
	Added   []T
}

// WasAdded reports whether the edit inserted elements.
func (c Change[T]) WasAdded() bool { return len(c.Added) > 0 }

// WasRemoved reports whether the edit removed elements.
func (c Change[T]) WasRemoved() bool { return len(c.Removed) > 0 }

// Listener receives the edits of one mutation, in the order they were applied.
type Listener[T any] func(batch []Change[T])

// List is an observable ordered sequence of comparable values.
type List[T comparable] struct {
	items     []T
	listeners []*Subscription
	nextID    uint64
	notifying bool
}

// NewList creates a list holding the given values. No batch is emitted for
// the initial contents.
func NewList[T comparable](values ...T) *List[T] {
	items := make([]T, len(values))
	copy(items, values)
	return &List[T]{items: items}
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the element at i. It panics if i is out of range, like a slice.
func (l *List[T]) At(i int) T { return l.items[i] }

// Values returns a copy of the current contents.
func (l *List[T]) Values() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// IndexOf returns the position of the first element equal to v, or -1.
func (l *List[T]) IndexOf(v T) int {
	return indexOf(l.items, v)
}

// Append adds values at the end.
func (l *List[T]) Append(values ...T) error {
	return l.Edit(func(e *Editor[T]) error { return e.Append(values...) })
}

// Insert adds values starting at position i. i may equal Len().
func (l *List[T]) Insert(i int, values ...T) error {
	return l.Edit(func(e *Editor[T]) error { return e.Insert(i, values...) })
}

// RemoveAt removes the element at position i.
func (l *List[T]) RemoveAt(i int) error {
	return l.Edit(func(e *Editor[T]) error { return e.RemoveAt(i) })
}

// Remove removes the first element equal to v. It reports whether an
// element was removed.
func (l *List[T]) Remove(v T) (bool, error) {
	var removed bool
	err := l.Edit(func(e *Editor[T]) error {
		removed = e.Remove(v)
		return nil
	})
	return removed, err
}

// Set replaces the element at position i.
func (l *List[T]) Set(i int, v T) error {
	return l.Edit(func(e *Editor[T]) error { return e.Set(i, v) })
}

// Clear removes every element.
func (l *List[T]) Clear() error {
	return l.Edit(func(e *Editor[T]) error {
		e.Clear()
		return nil
	})
}

// Edit runs fn against an editor and emits all of its edits as a single
// batch once fn returns. Edits are applied to the list immediately, so later
// edits in fn observe earlier ones. If fn returns an error, the edits made so
// far stay applied and are still reported; the error is returned.
func (l *List[T]) Edit(fn func(e *Editor[T]) error) error {
	if l.notifying {
		return ErrReentrantEdit
	}
	e := &Editor[T]{list: l}
	err := fn(e)
	l.emit(e.batch)
	return err
}

// Subscribe registers a listener. The returned subscription must be closed
// to stop receiving batches.
func (l *List[T]) Subscribe(fn Listener[T]) *Subscription {
	l.nextID++
	s := &Subscription{id: l.nextID, fn: func(b any) { fn(b.([]Change[T])) }}
	s.cancel = func() { l.unsubscribe(s.id) }
	l.listeners = append(l.listeners, s)
	return s
}

// ListenerCount returns the number of active subscriptions.
func (l *List[T]) ListenerCount() int { return len(l.listeners) }

func (l *List[T]) unsubscribe(id uint64) {
	for i, s := range l.listeners {
		if s.id == id {
			l.listeners = append(l.listeners[:i:i], l.listeners[i+1:]...)
			return
		}
	}
}

func (l *List[T]) emit(batch []Change[T]) {
	if len(batch) == 0 {
		return
	}
	// Listeners added or closed while notifying take effect next batch.
	snapshot := make([]*Subscription, len(l.listeners))
	copy(snapshot, l.listeners)

	l.notifying = true
	defer func() { l.notifying = false }()
	for _, s := range snapshot {
		if s.closed {
			continue
		}
		s.fn(batch)
	}
}

func (l *List[T]) checkIndex(i, max int) error {
	if i < 0 || i > max {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.items))
	}
	return nil
}

func indexOf[T comparable](items []T, v T) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return -1
}

// Subscription is the handle of one registered listener.
type Subscription struct {
	id     uint64
	fn     func(any)
	cancel func()
	closed bool
}

// Close stops delivery to the listener. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	s.cancel()
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool { return s == nil || s.closed }
