package ledger

import (
	"fmt"
	"sort"

	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/rileyhilliard/ltree/internal/observable"
	"github.com/rileyhilliard/ltree/internal/util"
)

// Store is the live logical model. Every entry owns one child list that is
// created on first use and never replaced, so Children is a stable
// expansion function for a mirror.
//
// A Store is not safe for concurrent use. Apply, SetBalance and any direct
// list edits must all run on the goroutine that owns the mirror.
type Store struct {
	entries  map[ID]*Entry
	children map[ID]*observable.List[ID]
	log      logger.Logger
}

// Stats summarizes what Apply changed.
type Stats struct {
	Added   []ID
	Removed []ID
	Updated []ID
}

// Empty reports whether Apply changed nothing.
func (s Stats) Empty() bool {
	return len(s.Added) == 0 && len(s.Removed) == 0 && len(s.Updated) == 0
}

// String summarizes the counts for logs and status lines.
func (s Stats) String() string {
	return fmt.Sprintf("+%d -%d ~%d", len(s.Added), len(s.Removed), len(s.Updated))
}

// NewStore creates a store holding only the root entry.
func NewStore(log logger.Logger) *Store {
	if log == nil {
		log = logger.Noop()
	}
	s := &Store{
		entries:  make(map[ID]*Entry),
		children: make(map[ID]*observable.List[ID]),
		log:      log,
	}
	s.entries[RootID] = &Entry{ID: RootID, Label: "ledger", Kind: KindRoot}
	return s
}

// Entry returns the live entry for id. Callers may read it; changes made
// through the pointer are not announced to anyone.
func (s *Store) Entry(id ID) (*Entry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// Len returns the number of entries, the root excluded.
func (s *Store) Len() int { return len(s.entries) - 1 }

// Children returns the child list of id, creating an empty one if needed.
func (s *Store) Children(id ID) *observable.List[ID] {
	l, ok := s.children[id]
	if !ok {
		l = observable.NewList[ID]()
		s.children[id] = l
	}
	return l
}

// SetBalance changes an entry's balance in place. Nothing is emitted; views
// holding a cached rendering of the entry keep showing the old value until
// they refresh it.
func (s *Store) SetBalance(id ID, sats int64) error {
	e, ok := s.entries[id]
	if !ok || id == RootID {
		return errors.New(errors.ErrLedger, fmt.Sprintf("Unknown entry %q", id), "")
	}
	if sats < 0 {
		return errors.New(errors.ErrLedger,
			fmt.Sprintf("Negative balance for %q", id),
			"Balances are in satoshis and can't be negative")
	}
	e.Balance = sats
	return nil
}

// Apply reconciles the store with snap. Child lists are edited with one
// batch per parent: first every child that left the parent is removed, then
// parents are visited top-down and their lists brought into snapshot order.
// Entries that survive are updated in place. Lists of deleted entries are
// emptied but kept, so an ID that comes back gets the same list.
func (s *Store) Apply(snap *Snapshot) (Stats, error) {
	var stats Stats

	for _, parent := range sortedIDs(s.children) {
		keep := make(map[ID]bool)
		for _, id := range snap.Children[parent] {
			keep[id] = true
		}
		err := s.children[parent].Edit(func(e *observable.Editor[ID]) error {
			for i := e.Len() - 1; i >= 0; i-- {
				if !keep[e.At(i)] {
					if err := e.RemoveAt(i); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return stats, errors.WrapWithCode(err, errors.ErrLedger, "Failed to remove entries", "")
		}
	}

	root := s.entries[RootID]
	if root.Label != snap.Name {
		root.Label = snap.Name
		stats.Updated = append(stats.Updated, RootID)
	}
	for id, next := range snap.Entries {
		cur, ok := s.entries[id]
		if !ok {
			e := next
			s.entries[id] = &e
			stats.Added = append(stats.Added, id)
			continue
		}
		if *cur != next {
			*cur = next
			stats.Updated = append(stats.Updated, id)
		}
	}
	for id := range s.entries {
		if id == RootID {
			continue
		}
		if _, ok := snap.Entries[id]; !ok {
			delete(s.entries, id)
			stats.Removed = append(stats.Removed, id)
		}
	}

	queue := []ID{RootID}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		want := snap.Children[parent]
		err := s.Children(parent).Edit(func(e *observable.Editor[ID]) error {
			for i, id := range want {
				if i < e.Len() && e.At(i) == id {
					continue
				}
				if j := e.IndexOf(id); j >= 0 {
					if err := e.RemoveAt(j); err != nil {
						return err
					}
				}
				if err := e.Insert(i, id); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return stats, errors.WrapWithCode(err, errors.ErrLedger, "Failed to order entries", "")
		}
		queue = append(queue, want...)
	}

	sortIDs(stats.Added)
	sortIDs(stats.Removed)
	sortIDs(stats.Updated)
	s.log.Debug("applied ledger %q: %s", snap.Name, stats)
	if len(stats.Removed) > 0 {
		s.log.Debug("removed entries: %s", util.JoinOrNone(stats.Removed))
	}
	return stats, nil
}

func sortedIDs[V any](m map[ID]V) []ID {
	ids := make([]ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

func sortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
