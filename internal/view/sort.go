package view

import (
	"sort"
	"strings"

	"github.com/rileyhilliard/ltree/internal/config"
)

// SortKey defines how the children of each level are displayed.
type SortKey int

const (
	SortByOrder SortKey = iota
	SortByLabel
	SortByKind
	SortByBalance
	SortByChildren
)

var sortKeyNames = []string{
	SortByOrder:    config.SortOrder,
	SortByLabel:    config.ColumnLabel,
	SortByKind:     config.ColumnKind,
	SortByBalance:  config.ColumnBalance,
	SortByChildren: config.ColumnChildren,
}

// String returns the config spelling of the sort key.
func (s SortKey) String() string {
	if s < 0 || int(s) >= len(sortKeyNames) {
		return config.SortOrder
	}
	return sortKeyNames[s]
}

// Next cycles to the next sort key.
func (s SortKey) Next() SortKey {
	return SortKey((int(s) + 1) % len(sortKeyNames))
}

// ParseSortKey converts a view.sort value. The note column has no sort of
// its own and maps to ledger order.
func ParseSortKey(s string) (SortKey, bool) {
	if s == "" || s == config.ColumnNote {
		return SortByOrder, true
	}
	for i, name := range sortKeyNames {
		if name == s {
			return SortKey(i), true
		}
	}
	return SortByOrder, false
}

// ordered returns n's children in display order. The result is a sorted
// copy; the mirror's own order is never changed. Ties keep ledger order.
func ordered(n *Node, key SortKey, desc bool) []*Node {
	children := n.Children()
	if key == SortByOrder {
		if desc {
			for i, j := 0, len(children)-1; i < j; i, j = i+1, j-1 {
				children[i], children[j] = children[j], children[i]
			}
		}
		return children
	}

	less := lessFunc(key)
	sort.SliceStable(children, func(i, j int) bool {
		if desc {
			return less(children[j], children[i])
		}
		return less(children[i], children[j])
	})
	return children
}

func lessFunc(key SortKey) func(a, b *Node) bool {
	switch key {
	case SortByLabel:
		return func(a, b *Node) bool {
			return strings.ToLower(a.Artifact().Label) < strings.ToLower(b.Artifact().Label)
		}
	case SortByKind:
		return func(a, b *Node) bool { return a.Artifact().Kind < b.Artifact().Kind }
	case SortByBalance:
		return func(a, b *Node) bool { return a.Artifact().Balance < b.Artifact().Balance }
	case SortByChildren:
		return func(a, b *Node) bool { return a.Len() < b.Len() }
	default:
		return func(a, b *Node) bool { return false }
	}
}
