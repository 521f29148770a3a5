package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/rileyhilliard/ltree/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "ltree",
	Short: "Live tree view of a wallet ledger",
	Long: `ltree shows a wallet ledger (wallets, accounts and addresses) as a
collapsible tree and keeps it in sync while the ledger file changes.

Examples:
  ltree view
  ltree view books.yaml --sort balance --desc
  ltree print --depth 1
  ltree print --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		if noColor {
			ui.DisableColors()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .ltree.yaml in this or a parent directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if MachineMode() {
			_ = WriteJSONFromError(os.Stdout, err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, strings.TrimRight(err.Error(), "\n"))
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); isLedgerFileName(name) {
				fmt.Fprintf(os.Stderr, "\nTo open a ledger file, run: ltree view %s\n", name)
			} else {
				fmt.Fprintf(os.Stderr, "\nRun 'ltree --help' to see the available commands.\n")
			}
		}
		os.Exit(1)
	}
}

// isUnknownCommandError reports whether cobra rejected the command line
// itself rather than a command failing.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand returns the quoted command name from cobra's
// "unknown command" error, or "" when there is none.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func isLedgerFileName(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
