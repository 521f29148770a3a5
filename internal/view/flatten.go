package view

import (
	"strings"

	"github.com/rileyhilliard/ltree/internal/ledger"
	"github.com/rileyhilliard/ltree/internal/ui"
)

// line is one visible row of the tree view.
type line struct {
	node     *Node
	depth    int
	prefix   string // tree guides drawn before the label
	expanded bool
}

func (l line) id() ledger.ID { return l.node.Artifact().ID }

func (l line) hasChildren() bool { return l.node.Len() > 0 }

// flatten lists the visible rows under root in display order. The root
// itself is not shown; its children are the top level. A node's children
// are listed only when its ID is expanded.
func flatten(root *Node, expanded map[ledger.ID]bool, key SortKey, desc bool) []line {
	type frame struct {
		node  *Node
		depth int
		guide string // guides inherited from ancestors
		last  bool
	}

	push := func(stack []frame, parent *Node, depth int, guide string) []frame {
		children := ordered(parent, key, desc)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node:  children[i],
				depth: depth,
				guide: guide,
				last:  i == len(children)-1,
			})
		}
		return stack
	}

	if root == nil {
		return nil
	}
	var lines []line
	stack := push(nil, root, 0, "")
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		branch := ui.TreeBranch
		if f.last {
			branch = ui.TreeLast
		}
		id := f.node.Artifact().ID
		l := line{
			node:     f.node,
			depth:    f.depth,
			prefix:   f.guide + branch,
			expanded: expanded[id] && f.node.Len() > 0,
		}
		lines = append(lines, l)

		if l.expanded {
			guide := f.guide + ui.TreeLine
			if f.last {
				guide = f.guide + ui.TreeBlank
			}
			stack = push(stack, f.node, f.depth+1, guide)
		}
	}
	return lines
}

// expandTo marks every node down to the given depth as expanded. Depth 1
// opens the top-level wallets.
func expandTo(root *Node, depth int, expanded map[ledger.ID]bool) {
	if root == nil {
		return
	}
	root.Walk(func(n *Node, d int) bool {
		if d == 0 {
			return true
		}
		if d > depth {
			return false
		}
		if n.Len() > 0 {
			expanded[n.Artifact().ID] = true
		}
		return true
	})
}

// marker is the expand/collapse glyph shown before a label.
func (l line) marker() string {
	switch {
	case !l.hasChildren():
		return ui.SymbolLeaf
	case l.expanded:
		return ui.SymbolExpanded
	default:
		return ui.SymbolCollapsed
	}
}

// labelCell renders the label column: guides, marker, label.
func (l line) labelCell() string {
	var b strings.Builder
	b.WriteString(l.prefix)
	b.WriteString(l.marker())
	b.WriteString(" ")
	b.WriteString(l.node.Artifact().Label)
	return b.String()
}
