// Package cli implements the ltree command-line interface.
//
// Each Cobra command is a thin wrapper: it collects flags and hands them to
// a command function (viewCommand, printCommand, columnsCommand, Init) that
// takes an io.Writer, so the commands can be tested without a terminal.
//
// # Command Structure
//
//	ltree view [ledger]     - Live, collapsible tree view
//	ltree print [ledger]    - Print the tree (or JSON with --json)
//	ltree columns [spec]    - Show or set the view columns
//	ltree init              - Create .ltree.yaml
//	ltree version           - Print version information
//
// # Sessions
//
// Ledger commands start from openSession, which loads and validates the
// config, loads the ledger file, and fills a ledger.Store. The view mirrors
// that store; print mirrors it once and writes the result.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) are defined on the root
// command. --sort and --desc are shared by view and print through
// DisplayFlags; a flag left unset keeps the config value.
package cli
