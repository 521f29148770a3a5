package mirror

import (
	"slices"

	"github.com/rileyhilliard/ltree/internal/observable"
)

// onChange applies one batch from the node's source list. It runs on the
// goroutine that mutated the list.
func (n *Node[T, A]) onChange(batch []observable.Change[T]) {
	if n.closed {
		return
	}
	t := n.tree
	if t.err != nil {
		t.log.Debug("ignoring batch for %v: mirror failed earlier", n.value)
		return
	}

	for _, c := range batch {
		if c.WasRemoved() {
			n.removeChildren(c)
		}
		if c.WasAdded() {
			if err := n.addChildren(c); err != nil {
				t.fail(err)
				return
			}
		}
	}
}

// addChildren realizes the added values. An index inside the child list
// inserts there; anything at or past the end appends.
func (n *Node[T, A]) addChildren(c observable.Change[T]) error {
	appending := c.Index >= len(n.children)
	for k, v := range c.Added {
		child, err := n.tree.build(v)
		if err != nil {
			return err
		}
		if appending {
			n.children = append(n.children, child)
		} else {
			n.children = slices.Insert(n.children, c.Index+k, child)
		}
	}
	return nil
}

func (n *Node[T, A]) removeChildren(c observable.Change[T]) {
	if n.tree.opts.Removal == RemoveByIndex {
		n.removeRange(c.Index, c.Index+len(c.Removed))
		return
	}
	for _, r := range c.Removed {
		n.children = slices.DeleteFunc(n.children, func(child *Node[T, A]) bool {
			if child.present && child.value == r {
				child.release()
				return true
			}
			return false
		})
	}
}

// removeRange drops children in [from, to), clamped to the current list.
func (n *Node[T, A]) removeRange(from, to int) {
	if from >= len(n.children) {
		return
	}
	to = min(to, len(n.children))
	for _, child := range n.children[from:to] {
		child.release()
	}
	n.children = slices.Delete(n.children, from, to)
}
