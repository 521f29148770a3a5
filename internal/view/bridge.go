package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ltree/internal/ledger"
	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/rileyhilliard/ltree/internal/watch"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge loads the ledger when the watcher reports a change and forwards
// the result to the TUI via Send. Parsing happens on the watcher's
// goroutine; the store is only touched when the model handles the message.
type Bridge struct {
	sender Sender
	log    logger.Logger
}

// NewBridge creates a bridge that forwards reloads to sender.
func NewBridge(sender Sender, log logger.Logger) *Bridge {
	if log == nil {
		log = logger.Noop()
	}
	return &Bridge{sender: sender, log: log}
}

// LedgerChanged is a watch.Handler.
func (b *Bridge) LedgerChanged(ev watch.Event) {
	snap, err := ledger.Load(ev.Path)
	if err != nil {
		b.log.Debug("reload of %s failed: %v", ev.Path, err)
	}
	b.sender.Send(ReloadMsg{Path: ev.Path, Snapshot: snap, Err: err})
}
