package ledger

import (
	"testing"

	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/rileyhilliard/ltree/internal/mirror"
	"github.com/rileyhilliard/ltree/internal/observable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, y string) *Snapshot {
	t.Helper()
	snap, err := Parse([]byte(y))
	require.NoError(t, err)
	return snap
}

func loadedStore(t *testing.T, y string) *Store {
	t.Helper()
	s := NewStore(logger.NewBufferLogger())
	_, err := s.Apply(mustParse(t, y))
	require.NoError(t, err)
	return s
}

// assertTracks checks that every mirror node's children equal the store's
// list for that node's ID.
func assertTracks(t *testing.T, s *Store, root *mirror.Node[ID, struct{}]) {
	t.Helper()
	root.Walk(func(n *mirror.Node[ID, struct{}], _ int) bool {
		id, _ := n.Value()
		assert.Equal(t, s.Children(id).Values(), n.Values(), "children of %q", id)
		return true
	})
}

func TestApply_InitialLoad(t *testing.T) {
	s := NewStore(nil)
	stats, err := s.Apply(mustParse(t, sampleLedger))
	require.NoError(t, err)

	assert.Len(t, stats.Added, 7)
	assert.Empty(t, stats.Removed)
	assert.Equal(t, []ID{RootID}, stats.Updated, "root label changes to the ledger name")
	assert.Equal(t, 7, s.Len())

	assert.Equal(t, []ID{"cold", "hot"}, s.Children(RootID).Values())
	assert.Equal(t, []ID{"bc1qsav0", "bc1qsav1"}, s.Children("cold/savings").Values())

	root, ok := s.Entry(RootID)
	require.True(t, ok)
	assert.Equal(t, "Household", root.Label)
}

func TestApply_NoChanges(t *testing.T) {
	s := loadedStore(t, sampleLedger)
	stats, err := s.Apply(mustParse(t, sampleLedger))
	require.NoError(t, err)
	assert.True(t, stats.Empty())
	assert.Equal(t, "+0 -0 ~0", stats.String())
}

func TestApply_ReordersRemovesAndMoves(t *testing.T) {
	s := loadedStore(t, `
entries:
  - id: w1
    children:
      - id: a
      - id: b
      - id: c
  - id: w2
    children:
      - id: d
`)
	stats, err := s.Apply(mustParse(t, `
entries:
  - id: w2
    children:
      - id: d
      - id: b
  - id: w1
    children:
      - id: c
      - id: e
      - id: a
`))
	require.NoError(t, err)

	assert.Equal(t, []ID{"w2", "w1"}, s.Children(RootID).Values())
	assert.Equal(t, []ID{"c", "e", "a"}, s.Children("w1").Values())
	assert.Equal(t, []ID{"d", "b"}, s.Children("w2").Values())
	assert.Equal(t, []ID{"e"}, stats.Added)
	assert.Empty(t, stats.Removed)
}

func TestApply_DeletedEntriesKeepTheirList(t *testing.T) {
	s := loadedStore(t, `
entries:
  - id: w
    children:
      - id: acct
        children:
          - id: addr
`)
	acctList := s.Children("acct")

	stats, err := s.Apply(mustParse(t, "entries:\n  - id: w\n"))
	require.NoError(t, err)
	assert.Equal(t, []ID{"acct", "addr"}, stats.Removed)
	assert.Empty(t, s.Children("w").Values())
	assert.Equal(t, 0, acctList.Len())
	_, ok := s.Entry("acct")
	assert.False(t, ok)

	_, err = s.Apply(mustParse(t, `
entries:
  - id: w
    children:
      - id: acct
        children:
          - id: addr2
`))
	require.NoError(t, err)
	assert.Same(t, acctList, s.Children("acct"))
	assert.Equal(t, []ID{"addr2"}, acctList.Values())
}

func TestApply_UpdatesEntriesInPlace(t *testing.T) {
	s := loadedStore(t, sampleLedger)
	before, ok := s.Entry("bc1qhot0")
	require.True(t, ok)

	stats, err := s.Apply(mustParse(t, `
version: 1
name: Household
entries:
  - id: cold
    label: Cold storage
    children:
      - id: cold/savings
        label: Savings
        children:
          - id: bc1qsav0
            balance: 150000000
          - id: bc1qsav1
            balance: 2500
            note: change
  - id: hot
    kind: wallet
    label: Phone
    children:
      - id: hot/spend
        children:
          - id: bc1qhot0
            balance: 1
`))
	require.NoError(t, err)
	assert.Equal(t, []ID{"bc1qhot0"}, stats.Updated)

	after, _ := s.Entry("bc1qhot0")
	assert.Same(t, before, after)
	assert.Equal(t, int64(1), after.Balance)
}

func TestApply_OneBatchPerParent(t *testing.T) {
	s := loadedStore(t, "entries:\n  - id: a\n  - id: b\n")

	var batches [][]observable.Change[ID]
	sub := s.Children(RootID).Subscribe(func(batch []observable.Change[ID]) {
		batches = append(batches, batch)
	})
	defer sub.Close()

	_, err := s.Apply(mustParse(t, "entries:\n  - id: c\n  - id: b\n  - id: d\n"))
	require.NoError(t, err)

	// One removal batch, one ordering batch.
	require.Len(t, batches, 2)
	assert.Equal(t, []observable.Change[ID]{{Index: 0, Removed: []ID{"a"}}}, batches[0])
	assert.Equal(t, []ID{"c", "b", "d"}, s.Children(RootID).Values())
}

func TestApply_MirrorFollowsStore(t *testing.T) {
	s := loadedStore(t, sampleLedger)
	for _, removal := range []mirror.RemovalMode{mirror.RemoveByEquality, mirror.RemoveByIndex} {
		t.Run(removal.String(), func(t *testing.T) {
			root, err := mirror.New(RootID, s.Children, mirror.Options[ID, struct{}]{Removal: removal})
			require.NoError(t, err)
			defer root.Close()
			assertTracks(t, s, root)

			steps := []string{
				`
entries:
  - id: hot
    children:
      - id: hot/spend
        children:
          - id: bc1qhot0
          - id: bc1qhot1
  - id: cold
    children:
      - id: bc1qsav1
      - id: cold/savings
`,
				"entries:\n  - id: solo\n",
				sampleLedger,
			}
			for _, y := range steps {
				_, err := s.Apply(mustParse(t, y))
				require.NoError(t, err)
				require.NoError(t, root.Err())
				assertTracks(t, s, root)
			}
		})
	}
}

func TestSetBalance(t *testing.T) {
	s := loadedStore(t, sampleLedger)

	require.NoError(t, s.SetBalance("bc1qsav1", 99))
	e, _ := s.Entry("bc1qsav1")
	assert.Equal(t, int64(99), e.Balance)

	err := s.SetBalance("nope", 1)
	assert.True(t, errors.IsCode(err, errors.ErrLedger))
	assert.Error(t, s.SetBalance(RootID, 1))
	assert.Error(t, s.SetBalance("bc1qsav1", -5))
}
