package view

import (
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeySelectPrev  = "up"
	KeySelectPrevK = "k"
	KeySelectNext  = "down"
	KeySelectNextJ = "j"
	KeySelectFirst = "home"
	KeySelectLast  = "end"
	KeyToggle      = "enter"
	KeyToggleSpace = " "
	KeyExpand      = "right"
	KeyExpandL     = "l"
	KeyCollapse    = "left"
	KeyCollapseH   = "h"
	KeyExpandAll   = "e"
	KeyCollapseAll = "c"
	KeyCycleSort   = "s"
	KeyReverse     = "r"
	KeyToggleHelp  = "?"
)

// keyMap implements help.KeyMap for the footer.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	First       key.Binding
	Last        key.Binding
	Toggle      key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Sort        key.Binding
	Reverse     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys(KeySelectPrev, KeySelectPrevK), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys(KeySelectNext, KeySelectNextJ), key.WithHelp("↓/j", "down")),
	First:       key.NewBinding(key.WithKeys(KeySelectFirst), key.WithHelp("home", "first")),
	Last:        key.NewBinding(key.WithKeys(KeySelectLast), key.WithHelp("end", "last")),
	Toggle:      key.NewBinding(key.WithKeys(KeyToggle, KeyToggleSpace), key.WithHelp("enter", "toggle")),
	Expand:      key.NewBinding(key.WithKeys(KeyExpand, KeyExpandL), key.WithHelp("→/l", "expand")),
	Collapse:    key.NewBinding(key.WithKeys(KeyCollapse, KeyCollapseH), key.WithHelp("←/h", "collapse")),
	ExpandAll:   key.NewBinding(key.WithKeys(KeyExpandAll), key.WithHelp("e", "expand all")),
	CollapseAll: key.NewBinding(key.WithKeys(KeyCollapseAll), key.WithHelp("c", "collapse all")),
	Sort:        key.NewBinding(key.WithKeys(KeyCycleSort), key.WithHelp("s", "sort")),
	Reverse:     key.NewBinding(key.WithKeys(KeyReverse), key.WithHelp("r", "reverse")),
	Help:        key.NewBinding(key.WithKeys(KeyToggleHelp), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys(KeyQuit, KeyQuitAlt), key.WithHelp("q", "quit")),
}

// ShortHelp returns the bindings shown in the one-line footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Sort, k.Reverse, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped into columns.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last},
		{k.Toggle, k.Expand, k.Collapse, k.ExpandAll, k.CollapseAll},
		{k.Sort, k.Reverse, k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input and returns the command to run.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return true, nil

	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.First):
		m.moveCursor(-len(m.lines))
	case key.Matches(msg, keys.Last):
		m.moveCursor(len(m.lines))

	case key.Matches(msg, keys.Toggle):
		if l, ok := m.current(); ok && l.hasChildren() {
			m.setExpanded(l.id(), !l.expanded)
		}
	case key.Matches(msg, keys.Expand):
		if l, ok := m.current(); ok && l.hasChildren() {
			m.setExpanded(l.id(), true)
		}
	case key.Matches(msg, keys.Collapse):
		m.collapseOrParent()
	case key.Matches(msg, keys.ExpandAll):
		expandTo(m.tree.root, math.MaxInt, m.expanded)
		m.refresh()
	case key.Matches(msg, keys.CollapseAll):
		clear(m.expanded)
		m.refresh()

	case key.Matches(msg, keys.Sort):
		m.sort = m.sort.Next()
		m.refresh()
	case key.Matches(msg, keys.Reverse):
		m.desc = !m.desc
		m.refresh()

	default:
		return false, nil
	}
	return true, nil
}
