package observable

import "fmt"

// Editor applies edits to a List inside List.Edit and records them for the
// batch that is emitted when the edit function returns.
type Editor[T comparable] struct {
	list  *List[T]
	batch []Change[T]
}

// Len returns the current number of elements, including earlier edits.
func (e *Editor[T]) Len() int { return len(e.list.items) }

// At returns the element at position i.
func (e *Editor[T]) At(i int) T { return e.list.items[i] }

// IndexOf returns the position of the first element equal to v, or -1.
func (e *Editor[T]) IndexOf(v T) int { return indexOf(e.list.items, v) }

// Append adds values at the end.
func (e *Editor[T]) Append(values ...T) error {
	return e.Insert(len(e.list.items), values...)
}

// Insert adds values starting at position i.
func (e *Editor[T]) Insert(i int, values ...T) error {
	if len(values) == 0 {
		return nil
	}
	if err := e.list.checkIndex(i, len(e.list.items)); err != nil {
		return err
	}
	items := e.list.items
	grown := make([]T, 0, len(items)+len(values))
	grown = append(grown, items[:i]...)
	grown = append(grown, values...)
	grown = append(grown, items[i:]...)
	e.list.items = grown

	e.record(Change[T]{Index: i, Added: clone(values)})
	return nil
}

// RemoveAt removes the element at position i.
func (e *Editor[T]) RemoveAt(i int) error {
	return e.RemoveRange(i, i+1)
}

// RemoveRange removes the elements in [from, to).
func (e *Editor[T]) RemoveRange(from, to int) error {
	n := len(e.list.items)
	if from < 0 || to > n || from > to {
		return fmt.Errorf("%w: [%d,%d) (len %d)", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	removed := clone(e.list.items[from:to])
	e.list.items = append(e.list.items[:from:from], e.list.items[to:]...)

	e.record(Change[T]{Index: from, Removed: removed})
	return nil
}

// Remove removes the first element equal to v and reports whether one was
// found.
func (e *Editor[T]) Remove(v T) bool {
	i := e.IndexOf(v)
	if i < 0 {
		return false
	}
	_ = e.RemoveAt(i)
	return true
}

// Set replaces the element at position i, recorded as one edit carrying both
// the removed and the added element.
func (e *Editor[T]) Set(i int, v T) error {
	if err := e.list.checkIndex(i, len(e.list.items)-1); err != nil {
		return err
	}
	old := e.list.items[i]
	e.list.items[i] = v
	e.record(Change[T]{Index: i, Removed: []T{old}, Added: []T{v}})
	return nil
}

// Clear removes every element.
func (e *Editor[T]) Clear() {
	if len(e.list.items) == 0 {
		return
	}
	_ = e.RemoveRange(0, len(e.list.items))
}

func (e *Editor[T]) record(c Change[T]) {
	e.batch = append(e.batch, c)
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
