package view

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ltree/internal/config"
	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/ledger"
	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/rileyhilliard/ltree/internal/mirror"
)

// Options configures the tree view.
type Options struct {
	Store       *ledger.Store
	Columns     []config.Column
	Sort        SortKey
	Descending  bool
	ExpandDepth int

	Removal        mirror.RemovalMode
	ResetOnReplace bool

	Logger logger.Logger
}

// treeState is shared by every copy of the Model so the mirror's error
// handler, which runs inside store edits, can record a failure.
type treeState struct {
	root *Node
	err  error
}

// Model is the Bubble Tea model for the ledger tree view.
type Model struct {
	store   *ledger.Store
	columns []config.Column
	opts    Options
	log     logger.Logger

	tree     *treeState
	expanded map[ledger.ID]bool
	lines    []line
	cursor   int
	offset   int

	sort SortKey
	desc bool

	width    int
	height   int
	showHelp bool
	help     help.Model
	quitting bool

	lastReload time.Time
	lastStats  ledger.Stats
	lastErr    error
}

// NewModel builds the mirror over the store and the initial view.
func NewModel(opts Options) (Model, error) {
	if opts.Store == nil {
		return Model{}, errors.New(errors.ErrView, "Tree view needs a ledger store", "")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if len(opts.Columns) == 0 {
		cols, err := config.ParseColumns(config.DefaultColumns)
		if err != nil {
			return Model{}, err
		}
		opts.Columns = cols
	}

	m := Model{
		store:    opts.Store,
		columns:  opts.Columns,
		opts:     opts,
		log:      opts.Logger,
		tree:     &treeState{},
		expanded: make(map[ledger.ID]bool),
		sort:     opts.Sort,
		desc:     opts.Descending,
		help:     help.New(),
	}
	if err := m.build(); err != nil {
		return Model{}, err
	}
	expandTo(m.tree.root, opts.ExpandDepth, m.expanded)
	m.refresh()
	return m, nil
}

// build creates a fresh mirror of the store, replacing any previous one.
func (m *Model) build() error {
	if m.tree.root != nil {
		m.tree.root.Close()
	}
	ts := m.tree
	ts.root, ts.err = nil, nil

	root, err := mirror.New(ledger.RootID, m.store.Children, mirror.Options[ledger.ID, Row]{
		Decorate:       Decorator(m.store),
		Removal:        m.opts.Removal,
		ResetOnReplace: m.opts.ResetOnReplace,
		OnError: func(err error) {
			ts.err = err
		},
		Logger: m.log,
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrMirror,
			"Can't build the ledger tree",
			"Check the ledger file for entries that can't be shown")
	}
	ts.root = root
	return nil
}

// Root returns the mirror the view renders.
func (m Model) Root() *Node { return m.tree.root }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case ReloadMsg:
		m.applyReload(msg)
	}
	return m, nil
}

// applyReload applies a freshly loaded snapshot. It runs on the UI
// goroutine, so the mirror sees every store edit from the thread that owns
// it. Rows of entries that changed in place are refreshed by setting their
// value again; a mirror that failed during the edits is rebuilt.
func (m *Model) applyReload(msg ReloadMsg) {
	if msg.Err != nil {
		m.lastErr = msg.Err
		m.log.Warn("reload of %s failed: %v", msg.Path, msg.Err)
		return
	}

	stats, err := m.store.Apply(msg.Snapshot)
	m.lastErr = err
	if err != nil {
		m.log.Error("applying %s: %v", msg.Path, err)
	}

	if m.failed() == nil {
		if err := m.RefreshEntries(stats.Updated...); err != nil {
			m.lastErr = err
		}
	}
	if ferr := m.failed(); ferr != nil {
		m.log.Warn("mirror failed during reload, rebuilding: %v", ferr)
		if err := m.build(); err != nil {
			m.lastErr = err
			return
		}
	}

	for _, id := range stats.Removed {
		delete(m.expanded, id)
	}
	m.lastStats = stats
	m.lastReload = time.Now()
	m.refresh()
}

// failed returns the error that stopped the mirror, whether it came from a
// store edit or from refreshing an entry.
func (m *Model) failed() error {
	if m.tree.err != nil {
		return m.tree.err
	}
	if m.tree.root != nil {
		return m.tree.root.Err()
	}
	return nil
}

// RefreshEntries recomputes the rows of the given entries wherever they
// appear in the tree.
func (m *Model) RefreshEntries(ids ...ledger.ID) error {
	root := m.tree.root
	if root == nil {
		return nil
	}
	for _, id := range ids {
		for _, n := range root.FindAll(id) {
			if err := n.SetValue(id); err != nil {
				return errors.WrapWithCode(err, errors.ErrView,
					"Can't refresh entry "+string(id), "")
			}
		}
	}
	return nil
}

// current returns the line under the cursor.
func (m *Model) current() (line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return line{}, false
	}
	return m.lines[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor = max(0, min(m.cursor+delta, len(m.lines)-1))
	m.ensureVisible()
}

func (m *Model) setExpanded(id ledger.ID, open bool) {
	if open {
		m.expanded[id] = true
	} else {
		delete(m.expanded, id)
	}
	m.refresh()
}

// collapseOrParent collapses the current row, or moves to its parent when
// it is already collapsed.
func (m *Model) collapseOrParent() {
	l, ok := m.current()
	if !ok {
		return
	}
	if l.expanded {
		m.setExpanded(l.id(), false)
		return
	}
	for i := m.cursor - 1; i >= 0; i-- {
		if m.lines[i].depth == l.depth-1 {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
}

// refresh recomputes the visible lines, keeping the cursor on the same
// entry when it is still visible.
func (m *Model) refresh() {
	var selected ledger.ID
	if l, ok := m.current(); ok {
		selected = l.id()
	}

	m.lines = flatten(m.tree.root, m.expanded, m.sort, m.desc)

	if selected != "" {
		for i, l := range m.lines {
			if l.id() == selected {
				m.cursor = i
				m.ensureVisible()
				return
			}
		}
	}
	m.moveCursor(0)
}

// bodyHeight is the number of tree rows that fit on screen.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return len(m.lines)
	}
	return max(1, m.height-chromeHeight)
}

func (m *Model) ensureVisible() {
	h := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = max(0, min(m.offset, len(m.lines)-h))
}
