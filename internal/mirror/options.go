package mirror

import (
	"errors"

	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/rileyhilliard/ltree/internal/observable"
)

var (
	// ErrNilExpansion is reported when an ExpandFunc returns no list.
	ErrNilExpansion = errors.New("expand returned a nil list")

	// ErrUnstableExpansion is reported when equal values expand to different
	// list instances.
	ErrUnstableExpansion = errors.New("expand returned a different list for an equal value")

	// ErrDecorate wraps an error returned by a DecorateFunc.
	ErrDecorate = errors.New("decorate failed")

	// ErrClosed is returned when a closed node is modified.
	ErrClosed = errors.New("mirror node is closed")
)

// ExpandFunc maps a value to the observable list of its children. It must
// return the same list for equal values every time it is called.
type ExpandFunc[T comparable] func(T) *observable.List[T]

// DecorateFunc derives the cached view artifact of a value. It runs once when
// a node is created and again on SetValue, never on in-place mutation.
type DecorateFunc[T comparable, A any] func(T) (A, error)

// RemovalMode selects how removal edits are matched to mirror children.
type RemovalMode int

const (
	// RemoveByEquality drops every child whose value equals a removed value.
	// With duplicate values in one list this removes more than one child
	// per removed element.
	RemoveByEquality RemovalMode = iota

	// RemoveByIndex drops the children in the edit's index range.
	RemoveByIndex
)

// String returns the config spelling of the mode.
func (m RemovalMode) String() string {
	switch m {
	case RemoveByIndex:
		return "index"
	default:
		return "equality"
	}
}

// ParseRemovalMode converts a config value into a RemovalMode.
func ParseRemovalMode(s string) (RemovalMode, bool) {
	switch s {
	case "", "equality":
		return RemoveByEquality, true
	case "index":
		return RemoveByIndex, true
	default:
		return RemoveByEquality, false
	}
}

// Options configures a mirror. The zero value is usable.
type Options[T comparable, A any] struct {
	// Decorate computes each node's artifact. Nil leaves artifacts zero.
	Decorate DecorateFunc[T, A]

	// Removal selects the removal matching strategy.
	Removal RemovalMode

	// ResetOnReplace makes SetValue discard the node's children and rebuild
	// them from the new source. When false, existing children stay until the
	// new source emits edits that remove them.
	ResetOnReplace bool

	// OnError receives failures raised while applying a change batch. When
	// nil the mirror panics with the error.
	OnError func(error)

	// Logger receives debug and error messages. Defaults to logger.Noop().
	Logger logger.Logger
}
