package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/rileyhilliard/ltree/internal/ledger"
	"github.com/rileyhilliard/ltree/internal/ui"
)

// PrintOptions configures static output of a mirror.
type PrintOptions struct {
	Sort       SortKey
	Descending bool
	// Depth limits how many levels below the root are shown. 0 shows all.
	Depth int
}

func (o PrintOptions) within(depth int) bool {
	return o.Depth <= 0 || depth < o.Depth
}

// Render draws the tree under root with lipgloss. Nodes cut off by Depth
// show how many children they hide.
func Render(root *Node, opts PrintOptions) string {
	t := tree.Root(titleStyle.Render(root.Artifact().Label)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(ui.MutedStyle())

	type frame struct {
		node   *Node
		parent *tree.Tree
		depth  int
	}
	push := func(stack []frame, n *Node, parent *tree.Tree, depth int) []frame {
		children := ordered(n, opts.Sort, opts.Descending)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], parent, depth})
		}
		return stack
	}

	stack := push(nil, root, t, 1)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		text := printRow(f.node.Artifact())
		if f.node.Len() == 0 {
			f.parent.Child(text)
			continue
		}
		if !opts.within(f.depth) {
			f.parent.Child(text + ui.MutedStyle().Render(fmt.Sprintf(" (+%d)", f.node.Len())))
			continue
		}
		sub := tree.Root(text)
		f.parent.Child(sub)
		stack = push(stack, f.node, sub, f.depth+1)
	}
	return t.String() + "\n"
}

func printRow(r Row) string {
	var b strings.Builder
	b.WriteString(r.Label)
	b.WriteString("  ")
	b.WriteString(ui.KindStyle(string(r.Kind)).Render(string(r.Kind)))
	if r.Kind != ledger.KindRoot {
		b.WriteString(ui.MutedStyle().Render(" · " + r.BalanceText()))
	}
	if r.Note != "" {
		b.WriteString(ui.MutedStyle().Render(" · " + r.Note))
	}
	return b.String()
}

// ExportEntry is the machine-readable form of a mirrored entry.
type ExportEntry struct {
	ID       ledger.ID      `json:"id"`
	Label    string         `json:"label"`
	Kind     ledger.Kind    `json:"kind"`
	Balance  int64          `json:"balance_sats"`
	Note     string         `json:"note,omitempty"`
	Children []*ExportEntry `json:"children,omitempty"`
	// Hidden counts children left out by the depth limit.
	Hidden int `json:"hidden,omitempty"`
}

// Export converts the tree under root for JSON output, in display order.
func Export(root *Node, opts PrintOptions) *ExportEntry {
	toEntry := func(n *Node) *ExportEntry {
		r := n.Artifact()
		return &ExportEntry{ID: r.ID, Label: r.Label, Kind: r.Kind, Balance: r.Balance, Note: r.Note}
	}

	type frame struct {
		node  *Node
		out   *ExportEntry
		depth int
	}
	top := toEntry(root)
	stack := []frame{{root, top, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.Len() == 0 {
			continue
		}
		if !opts.within(f.depth) {
			f.out.Hidden = f.node.Len()
			continue
		}
		for _, c := range ordered(f.node, opts.Sort, opts.Descending) {
			child := toEntry(c)
			f.out.Children = append(f.out.Children, child)
			stack = append(stack, frame{c, child, f.depth + 1})
		}
	}
	return top
}
