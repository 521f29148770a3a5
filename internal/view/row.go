package view

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/ltree/internal/ledger"
	"github.com/rileyhilliard/ltree/internal/mirror"
)

// Node is a mirror node of the ledger decorated with its Row.
type Node = mirror.Node[ledger.ID, Row]

// Row is the cached rendering data of one entry. It is computed when the
// mirror node is created or its value is set again, so in-place entry
// changes do not show until the row is refreshed.
type Row struct {
	ID      ledger.ID
	Label   string
	Kind    ledger.Kind
	Balance int64
	Note    string
}

// BalanceText formats the balance for display, e.g. "150,000,000 sat".
func (r Row) BalanceText() string {
	if r.Kind == ledger.KindRoot {
		return ""
	}
	return FormatSats(r.Balance)
}

// FormatSats renders satoshis with thousands separators.
func FormatSats(sats int64) string {
	return humanize.Comma(sats) + " sat"
}

// Decorator builds rows from the store's current entries. An ID with no
// entry is an error.
func Decorator(store *ledger.Store) mirror.DecorateFunc[ledger.ID, Row] {
	return func(id ledger.ID) (Row, error) {
		e, ok := store.Entry(id)
		if !ok {
			return Row{}, fmt.Errorf("no ledger entry %q", id)
		}
		return Row{ID: e.ID, Label: e.Label, Kind: e.Kind, Balance: e.Balance, Note: e.Note}, nil
	}
}
