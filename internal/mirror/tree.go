package mirror

import (
	"fmt"

	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/rileyhilliard/ltree/internal/observable"
)

// tree holds the state shared by every node of one mirror.
type tree[T comparable, A any] struct {
	expand ExpandFunc[T]
	opts   Options[T, A]
	log    logger.Logger

	// sources tracks which list each live, attached value expanded to.
	sources map[T]*source[T]
	err     error
}

type source[T comparable] struct {
	list *observable.List[T]
	refs int
}

func newTree[T comparable, A any](expand ExpandFunc[T], opts Options[T, A]) *tree[T, A] {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	return &tree[T, A]{
		expand:  expand,
		opts:    opts,
		log:     log,
		sources: make(map[T]*source[T]),
	}
}

// newNode creates a detached node for v with its artifact computed.
func (t *tree[T, A]) newNode(v T) (*Node[T, A], error) {
	art, err := t.decorate(v)
	if err != nil {
		return nil, err
	}
	return &Node[T, A]{tree: t, value: v, present: true, artifact: art}, nil
}

func (t *tree[T, A]) decorate(v T) (A, error) {
	var zero A
	if t.opts.Decorate == nil {
		return zero, nil
	}
	art, err := t.opts.Decorate(v)
	if err != nil {
		return zero, fmt.Errorf("%w for %v: %w", ErrDecorate, v, err)
	}
	return art, nil
}

// build creates the node for v and realizes its whole subtree before
// returning. It walks an explicit stack instead of recursing, so depth is
// bounded by memory rather than the goroutine stack.
func (t *tree[T, A]) build(v T) (*Node[T, A], error) {
	root, err := t.newNode(v)
	if err != nil {
		return nil, err
	}

	stack := []*Node[T, A]{root}
	count := 0
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		list, err := t.attach(n)
		if err != nil {
			root.release()
			return nil, err
		}
		values := list.Values()
		n.children = make([]*Node[T, A], 0, len(values))
		for _, cv := range values {
			child, err := t.newNode(cv)
			if err != nil {
				root.release()
				return nil, err
			}
			n.children = append(n.children, child)
			stack = append(stack, child)
		}
	}

	t.log.Debug("built %d nodes under %v", count, v)
	return root, nil
}

// attach expands n's value and subscribes n to the resulting list.
func (t *tree[T, A]) attach(n *Node[T, A]) (*observable.List[T], error) {
	list, err := t.resolve(n.value)
	if err != nil {
		return nil, err
	}
	n.subscribe(list)
	return list, nil
}

// resolve expands v and records the list as v's source. Equal values must
// resolve to the same list while any of them is attached.
func (t *tree[T, A]) resolve(v T) (*observable.List[T], error) {
	list := t.expand(v)
	if list == nil {
		return nil, fmt.Errorf("%w: %v", ErrNilExpansion, v)
	}
	if err := t.retain(v, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (t *tree[T, A]) retain(v T, list *observable.List[T]) error {
	if s, ok := t.sources[v]; ok {
		if s.list != list {
			return fmt.Errorf("%w: %v", ErrUnstableExpansion, v)
		}
		s.refs++
		return nil
	}
	t.sources[v] = &source[T]{list: list, refs: 1}
	return nil
}

func (t *tree[T, A]) forget(v T) {
	s, ok := t.sources[v]
	if !ok {
		return
	}
	s.refs--
	if s.refs <= 0 {
		delete(t.sources, v)
	}
}

// record marks the mirror failed, keeping the first error.
func (t *tree[T, A]) record(err error) {
	if t.err == nil {
		t.err = err
	}
}

// fail records the first failure and hands it to the error handler.
func (t *tree[T, A]) fail(err error) {
	t.record(err)
	t.log.Error("change application stopped: %v", err)
	if t.opts.OnError == nil {
		panic(err)
	}
	t.opts.OnError(err)
}
