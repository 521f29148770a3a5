package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/ltree/internal/errors"
)

// Column keys accepted in the column-config string.
const (
	ColumnLabel    = "label"
	ColumnKind     = "kind"
	ColumnBalance  = "balance"
	ColumnChildren = "children"
	ColumnNote     = "note"
)

// SortOrder keeps each level in ledger order.
const SortOrder = "order"

// MaxColumnWidth bounds a single column's width.
const MaxColumnWidth = 200

var defaultWidths = map[string]int{
	ColumnLabel:    32,
	ColumnKind:     8,
	ColumnBalance:  16,
	ColumnChildren: 6,
	ColumnNote:     24,
}

// ColumnKeys lists every column key in display-friendly order.
var ColumnKeys = []string{ColumnLabel, ColumnKind, ColumnBalance, ColumnChildren, ColumnNote}

// Column is one entry of the column-config string.
type Column struct {
	Key   string
	Width int
}

// ParseColumns parses a column-config string such as
// "label:32,kind,balance:16". A key without a width gets its default width.
// Keys must be known and unique, and the label column is required.
func ParseColumns(spec string) ([]Column, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.New(errors.ErrConfig,
			"Column config is empty",
			"Use something like '"+DefaultColumns+"'")
	}

	var cols []Column
	seen := make(map[string]bool)
	for _, part := range strings.Split(spec, ",") {
		key, width, hasWidth := strings.Cut(strings.TrimSpace(part), ":")
		key = strings.ToLower(strings.TrimSpace(key))

		def, ok := defaultWidths[key]
		if !ok {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Unknown column %q", key),
				"Known columns: "+strings.Join(ColumnKeys, ", "))
		}
		if seen[key] {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Column %q is listed twice", key),
				"List each column once")
		}
		seen[key] = true

		col := Column{Key: key, Width: def}
		if hasWidth {
			w, err := strconv.Atoi(strings.TrimSpace(width))
			if err != nil || w < 1 || w > MaxColumnWidth {
				return nil, errors.New(errors.ErrConfig,
					fmt.Sprintf("Bad width %q for column %q", width, key),
					fmt.Sprintf("Widths are whole numbers from 1 to %d", MaxColumnWidth))
			}
			col.Width = w
		}
		cols = append(cols, col)
	}

	if !seen[ColumnLabel] {
		return nil, errors.New(errors.ErrConfig,
			"Column config has no label column",
			"Add 'label' so rows can be told apart")
	}
	return cols, nil
}

// FormatColumns renders columns back into a column-config string. Widths
// are always written out.
func FormatColumns(cols []Column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s:%d", c.Key, c.Width)
	}
	return strings.Join(parts, ",")
}

// IsSortKey reports whether s names a valid sort: a column key or "order".
func IsSortKey(s string) bool {
	if s == SortOrder {
		return true
	}
	_, ok := defaultWidths[s]
	return ok
}
