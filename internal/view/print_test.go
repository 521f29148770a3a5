package view

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/ledger"
	"github.com/rileyhilliard/ltree/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	m := newModel(t, Options{})

	out := Render(m.Root(), PrintOptions{})
	order := []string{"Test books", "Beta wallet", "Savings", "x1", "x2", "Spending", "Alpha wallet"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		require.GreaterOrEqual(t, i, 0, "missing %q in\n%s", s, out)
		assert.Greater(t, i, last, "%q out of order", s)
		last = i
	}
	assert.Contains(t, out, "300 sat")
	assert.Contains(t, out, "╰──")
}

func TestRender_Depth(t *testing.T) {
	m := newModel(t, Options{})

	out := Render(m.Root(), PrintOptions{Depth: 1})
	assert.Contains(t, out, "Beta wallet")
	assert.Contains(t, out, "(+2)")
	assert.NotContains(t, out, "Savings")
}

func TestExport(t *testing.T) {
	m := newModel(t, Options{})

	top := Export(m.Root(), PrintOptions{})
	assert.Equal(t, ledger.RootID, top.ID)
	require.Len(t, top.Children, 2)

	w1 := top.Children[0]
	assert.Equal(t, ledger.ID("w1"), w1.ID)
	assert.Equal(t, ledger.KindWallet, w1.Kind)
	require.Len(t, w1.Children, 2)

	a1 := w1.Children[0]
	require.Len(t, a1.Children, 2)
	assert.Equal(t, ledger.ID("x1"), a1.Children[0].ID)
	assert.Equal(t, int64(300), a1.Children[0].Balance)
	assert.Equal(t, ledger.KindAddress, a1.Children[1].Kind)
}

func TestExport_SortAndDepth(t *testing.T) {
	m := newModel(t, Options{})

	top := Export(m.Root(), PrintOptions{Sort: SortByBalance, Descending: true, Depth: 2})
	require.Len(t, top.Children, 2)
	assert.Equal(t, ledger.ID("w2"), top.Children[0].ID)

	w1 := top.Children[1]
	require.Len(t, w1.Children, 2)
	assert.Empty(t, w1.Children[0].Children)
	assert.Equal(t, 2, w1.Children[0].Hidden)
	assert.Zero(t, w1.Children[1].Hidden)

	// The mirror keeps ledger order.
	assert.Equal(t, []ledger.ID{"w1", "w2"}, m.Root().Values())
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
		ok   bool
	}{
		{"", SortByOrder, true},
		{"order", SortByOrder, true},
		{"label", SortByLabel, true},
		{"kind", SortByKind, true},
		{"balance", SortByBalance, true},
		{"children", SortByChildren, true},
		{"note", SortByOrder, true},
		{"size", SortByOrder, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSortKey(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortKey_NextCycles(t *testing.T) {
	k := SortByOrder
	seen := map[SortKey]bool{}
	for i := 0; i < 5; i++ {
		seen[k] = true
		k = k.Next()
	}
	assert.Len(t, seen, 5)
	assert.Equal(t, SortByOrder, k)
	assert.Equal(t, "balance", SortByBalance.String())
}

func TestFormatSats(t *testing.T) {
	assert.Equal(t, "0 sat", FormatSats(0))
	assert.Equal(t, "150,000,000 sat", FormatSats(150_000_000))
	assert.Empty(t, Row{Kind: ledger.KindRoot}.BalanceText())
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *recordingSender) Send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *recordingSender) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

func TestStartWatcher(t *testing.T) {
	t.Run("forwards changes", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "ledger.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testLedger), 0o644))

		sender := &recordingSender{}
		w, err := startWatcher(context.Background(), sender, RunOptions{
			LedgerPath: path,
			Debounce:   20 * time.Millisecond,
		})
		require.NoError(t, err)
		defer w.Stop()
		assert.True(t, w.IsWatching())

		require.NoError(t, os.WriteFile(path, []byte(testLedger), 0o644))
		assert.Eventually(t, func() bool { return sender.len() > 0 }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gone", "ledger.yaml")

		w, err := startWatcher(context.Background(), &recordingSender{}, RunOptions{LedgerPath: path})
		require.Error(t, err)
		assert.Nil(t, w)
		assert.True(t, errors.IsCode(err, errors.ErrWatch))
	})
}

func TestBridge_LedgerChanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testLedger), 0o644))

	sender := &recordingSender{}
	b := NewBridge(sender, nil)

	b.LedgerChanged(watch.Event{Path: path})
	b.LedgerChanged(watch.Event{Path: filepath.Join(dir, "missing.yaml")})

	require.Len(t, sender.msgs, 2)

	ok := sender.msgs[0].(ReloadMsg)
	require.NoError(t, ok.Err)
	assert.Equal(t, path, ok.Path)
	assert.Equal(t, "Test books", ok.Snapshot.Name)

	failed := sender.msgs[1].(ReloadMsg)
	assert.Error(t, failed.Err)
	assert.Nil(t, failed.Snapshot)
}
