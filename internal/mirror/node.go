package mirror

import (
	"github.com/rileyhilliard/ltree/internal/observable"
)

// Node mirrors one logical value and, through its children, the value's
// whole subtree.
type Node[T comparable, A any] struct {
	tree     *tree[T, A]
	value    T
	present  bool
	artifact A
	children []*Node[T, A]

	source *observable.List[T]
	sub    *observable.Subscription
	closed bool
}

// New builds a mirror rooted at value. The whole subtree reachable through
// expand is realized, and subscribed to, before New returns. On error every
// subscription taken so far is released.
func New[T comparable, A any](value T, expand ExpandFunc[T], opts Options[T, A]) (*Node[T, A], error) {
	return newTree(expand, opts).build(value)
}

// NewDetached builds a root without a value. Nothing is expanded until
// SetValue is called.
func NewDetached[T comparable, A any](expand ExpandFunc[T], opts Options[T, A]) *Node[T, A] {
	return &Node[T, A]{tree: newTree(expand, opts)}
}

// Value returns the wrapped value and whether one is present.
func (n *Node[T, A]) Value() (T, bool) { return n.value, n.present }

// Artifact returns the decoration computed when the value was last set.
func (n *Node[T, A]) Artifact() A { return n.artifact }

// Len returns the number of children.
func (n *Node[T, A]) Len() int { return len(n.children) }

// Child returns the child at position i.
func (n *Node[T, A]) Child(i int) *Node[T, A] { return n.children[i] }

// Children returns a copy of the child list in logical order.
func (n *Node[T, A]) Children() []*Node[T, A] {
	out := make([]*Node[T, A], len(n.children))
	copy(out, n.children)
	return out
}

// Values returns the values of the children in logical order.
func (n *Node[T, A]) Values() []T {
	out := make([]T, len(n.children))
	for i, c := range n.children {
		out[i] = c.value
	}
	return out
}

// Err returns the failure that stopped change application, if any. A failed
// mirror ignores further batches and should be rebuilt.
func (n *Node[T, A]) Err() error { return n.tree.err }

// Closed reports whether the node has been released.
func (n *Node[T, A]) Closed() bool { return n.closed }

// Walk visits the subtree in pre-order. Returning false from fn skips the
// visited node's children.
func (n *Node[T, A]) Walk(fn func(node *Node[T, A], depth int) bool) {
	type frame struct {
		node  *Node[T, A]
		depth int
	}
	stack := []frame{{n, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.node, f.depth) {
			continue
		}
		for i := len(f.node.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{f.node.children[i], f.depth + 1})
		}
	}
}

// FindAll returns every node in the subtree wrapping a value equal to v, in
// pre-order.
func (n *Node[T, A]) FindAll(v T) []*Node[T, A] {
	var found []*Node[T, A]
	n.Walk(func(node *Node[T, A], _ int) bool {
		if node.present && node.value == v {
			found = append(found, node)
		}
		return true
	})
	return found
}

// Size returns the number of nodes in the subtree, n included.
func (n *Node[T, A]) Size() int {
	size := 0
	n.Walk(func(*Node[T, A], int) bool {
		size++
		return true
	})
	return size
}

// SetValue replaces the wrapped value. The artifact is recomputed and the
// node starts tracking expand(v); its previous subscription is released.
// Existing children are kept unless Options.ResetOnReplace is set, in which
// case they are released and rebuilt from the new list. A rebuild that fails
// partway marks the mirror failed (see Err).
func (n *Node[T, A]) SetValue(v T) error {
	if n.closed {
		return ErrClosed
	}
	t := n.tree
	art, err := t.decorate(v)
	if err != nil {
		return err
	}

	list, err := t.resolve(v)
	if err != nil {
		return err
	}

	n.detach()
	n.value, n.present, n.artifact = v, true, art
	n.subscribe(list)
	if !t.opts.ResetOnReplace {
		return nil
	}

	n.releaseChildren()
	for _, cv := range list.Values() {
		child, err := t.build(cv)
		if err != nil {
			// The children no longer match the list.
			t.record(err)
			t.log.Error("rebuilding children of %v stopped: %v", v, err)
			return err
		}
		n.children = append(n.children, child)
	}
	return nil
}

// ClearValue removes the wrapped value and stops tracking its list. Children
// are kept unless Options.ResetOnReplace is set.
func (n *Node[T, A]) ClearValue() {
	if n.closed {
		return
	}
	n.detach()
	var zeroT T
	var zeroA A
	n.value, n.present, n.artifact = zeroT, false, zeroA
	if n.tree.opts.ResetOnReplace {
		n.releaseChildren()
	}
}

// Close releases every subscription in the subtree. A closed node no longer
// follows its list.
func (n *Node[T, A]) Close() {
	n.release()
}

func (n *Node[T, A]) subscribe(list *observable.List[T]) {
	n.source = list
	n.sub = list.Subscribe(n.onChange)
}

// detach drops the node's subscription and its claim on the source list.
func (n *Node[T, A]) detach() {
	if n.sub == nil {
		return
	}
	n.sub.Close()
	n.tree.forget(n.value)
	n.sub = nil
	n.source = nil
}

// release detaches the whole subtree and marks it closed.
func (n *Node[T, A]) release() {
	stack := []*Node[T, A]{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.closed {
			continue
		}
		cur.detach()
		cur.closed = true
		stack = append(stack, cur.children...)
	}
}

func (n *Node[T, A]) releaseChildren() {
	for _, c := range n.children {
		c.release()
	}
	n.children = nil
}
