package cli

import (
	"os"

	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	viewDisplay     DisplayFlags
	viewColumnsFlag string
	viewNoWatch     bool
	viewDebounce    string

	printDisplay DisplayFlags
	printDepth   int

	columnsSave bool

	initForce          bool
	initNonInteractive bool
	initLedgerFlag     string
)

// viewCmd opens the interactive tree view
var viewCmd = &cobra.Command{
	Use:   "view [ledger]",
	Short: "Browse the ledger as a live tree",
	Long: `Open the ledger as a collapsible tree. The view follows the ledger file
and applies each change in place, keeping what is expanded and selected.

When stdout isn't a terminal the tree is printed once instead.

Keyboard shortcuts:
  up/k, down/j   Move the selection
  enter/space    Expand or collapse
  right/l        Expand
  left/h         Collapse, or jump to the parent
  e / c          Expand all / collapse all
  s              Cycle sort column
  r              Reverse sort
  ?              Show help
  q / Ctrl+C     Quit

Examples:
  ltree view
  ltree view books.yaml
  ltree view --sort balance --desc
  ltree view --columns label:40,balance:18,note:30`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return viewCommand(cmd.Context(), viewCommandOptions{
			Ledger:   argOrEmpty(args),
			Display:  viewDisplay,
			Columns:  viewColumnsFlag,
			NoWatch:  viewNoWatch,
			Debounce: viewDebounce,
		})
	},
}

// printCmd writes the tree to stdout
var printCmd = &cobra.Command{
	Use:   "print [ledger]",
	Short: "Print the ledger tree",
	Long: `Print the ledger as a tree, or as JSON with --json.

Examples:
  ltree print
  ltree print --depth 1
  ltree print --sort label
  ltree print --json | jq '.data.children[].label'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printCommand(cmd.OutOrStdout(), printCommandOptions{
			Ledger:  argOrEmpty(args),
			Display: printDisplay,
			Depth:   printDepth,
			JSON:    machineMode,
		})
	},
}

// columnsCmd shows or changes the view columns
var columnsCmd = &cobra.Command{
	Use:   "columns [spec]",
	Short: "Show or set the tree view columns",
	Long: `Without arguments, list the configured columns and every column ltree knows.
With a column spec, check it and (with --save) write it to view.columns.

A spec is a comma-separated list of key[:width]. The label column is required.

Examples:
  ltree columns
  ltree columns label:40,balance:18
  ltree columns label:40,kind:8,balance:16,note:30 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return columnsCommand(cmd.OutOrStdout(), argOrEmpty(args), columnsSave)
	},
}

// initCmd creates a new .ltree.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .ltree.yaml configuration",
	Long: `Create a .ltree.yaml file in the current directory.

Asks for the ledger file and view defaults unless --non-interactive is set
or CI is detected.

Examples:
  ltree init
  ltree init --ledger books.yaml --non-interactive
  ltree init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Ledger:         initLedgerFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
		})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ltree.

Examples:
  # Bash
  ltree completion bash > /etc/bash_completion.d/ltree

  # Zsh
  ltree completion zsh > "${fpath[1]}/_ltree"

  # Fish
  ltree completion fish > ~/.config/fish/completions/ltree.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// view command flags
	AddDisplayFlags(viewCmd, &viewDisplay)
	viewCmd.Flags().StringVar(&viewColumnsFlag, "columns", "", "column spec, e.g. label:32,balance:16")
	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "don't reload when the ledger file changes")
	viewCmd.Flags().StringVar(&viewDebounce, "debounce", "", "quiet time before a reload (e.g., 200ms, 1s)")

	// print command flags
	AddDisplayFlags(printCmd, &printDisplay)
	printCmd.Flags().IntVar(&printDepth, "depth", 0, "levels to show below the root (0 shows all)")
	printCmd.Flags().BoolVar(&machineMode, "json", false, "output JSON")

	// columns command flags
	columnsCmd.Flags().BoolVar(&columnsSave, "save", false, "write the spec to the config file")

	// init command flags
	initCmd.Flags().StringVar(&initLedgerFlag, "ledger", "", "ledger file to point the config at")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use defaults")

	// Register all commands
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
