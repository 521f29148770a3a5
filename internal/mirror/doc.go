// Package mirror projects a logical tree into a persistent mirror tree and
// keeps the two structurally identical as the logical tree changes.
//
// The logical tree is described by a root value and an ExpandFunc that maps
// any value to the observable list of its children. New builds one Node per
// value reachable from the root, eagerly and in list order, and subscribes
// every node to its own child list. From then on each batch emitted by any
// of those lists is applied to the matching node, however deep it sits, so
// callers never re-drive the projection themselves.
//
// # Change application
//
// Edits of a batch are applied in order, removal before addition within one
// edit. An addition whose index lies beyond the node's current child count
// is appended. A removal drops every child whose value equals a removed
// value (RemoveByEquality, the default) or the removed index range
// (RemoveByIndex). There is no move detection: a value removed and added
// again gets a brand-new subtree.
//
// # Lifetime
//
// Each node owns the subscription on its child list. Removing a node from
// its parent, switching its source through SetValue, or calling Close
// releases the subscriptions of the whole affected subtree.
//
// # Ordering
//
// The mirror keeps the logical order only. Views that present the tree
// sorted by some column sort copies of Children and never reorder the
// mirror itself.
//
// # Threading
//
// Nothing here locks. Construction, SetValue and every list mutation must
// happen on the same goroutine.
package mirror
