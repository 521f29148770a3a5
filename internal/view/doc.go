// Package view renders a mirrored ledger as a navigable tree.
//
// The view never reads the ledger's child lists directly. It builds a
// mirror over the store and walks that, so every structural change to the
// store shows up on the next render. Each mirror node carries a Row, the
// cached rendering of its entry; rows are recomputed only when a node is
// created or its value is set again, which is what RefreshEntries does for
// entries a reload changed in place.
//
// Sorting is a display concern. Each level is sorted into a copy when the
// visible lines are computed, and the mirror keeps the ledger's order.
//
// # Threading
//
// The store and the mirror belong to the Bubble Tea goroutine. File
// changes arrive as ReloadMsg values sent through a Bridge, and the store
// is edited only inside Update.
//
// # Static Output
//
// Render draws the same tree with lipgloss for non-interactive use, and
// Export produces the structure used for JSON output.
package view
