// Package util provides small string helpers shared by the ledger and view
// packages.
package util

import (
	"fmt"
	"strings"
)

// JoinOrNone joins items with ", " or returns "(none)" for empty slices.
func JoinOrNone[S ~string](items []S) string {
	if len(items) == 0 {
		return "(none)"
	}
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Count formats a count with its noun, e.g. "1 entry" or "3 entries".
func Count(count int, singular, plural string) string {
	return fmt.Sprintf("%d %s", count, Pluralize(count, singular, plural))
}
