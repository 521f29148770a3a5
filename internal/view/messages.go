package view

import "github.com/rileyhilliard/ltree/internal/ledger"

// ReloadMsg carries a ledger snapshot loaded off the UI goroutine. Err is
// set instead when the file could not be loaded.
type ReloadMsg struct {
	Path     string
	Snapshot *ledger.Snapshot
	Err      error
}
