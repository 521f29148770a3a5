package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/ltree/internal/config"
	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Ledger         string // Pre-specified ledger file
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

const configHeader = `# ltree configuration
# Run 'ltree view' to browse the ledger, 'ltree columns' to list columns

`

// initDefaults are init values read from the environment.
type initDefaults struct {
	Ledger         string
	NonInteractive bool
}

// getInitDefaults reads LTREE_LEDGER, LTREE_NON_INTERACTIVE and CI.
func getInitDefaults() initDefaults {
	return initDefaults{
		Ledger:         os.Getenv("LTREE_LEDGER"),
		NonInteractive: isTruthy(os.Getenv("LTREE_NON_INTERACTIVE")) || isTruthy(os.Getenv("CI")),
	}
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// mergeInitOptions fills options left empty by flags from the environment.
func mergeInitOptions(opts InitOptions) InitOptions {
	env := getInitDefaults()
	if opts.Ledger == "" {
		opts.Ledger = env.Ledger
	}
	if env.NonInteractive {
		opts.NonInteractive = true
	}
	return opts
}

// Init creates a new .ltree.yaml in the current directory.
func Init(w io.Writer, opts InitOptions) error {
	opts = mergeInitOptions(opts)
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.Ledger != "" {
		cfg.Ledger = opts.Ledger
	}

	if !opts.NonInteractive {
		if err := runInitForm(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.WriteConfig(configPath, cfg, configHeader); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), configPath)
	if _, err := os.Stat(config.ResolvePath(cfg.Ledger, ".")); err != nil {
		fmt.Fprintf(w, "%s Ledger %s doesn't exist yet\n\n", ui.SymbolPending, cfg.Ledger)
	}
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  ltree view      - Browse the ledger")
	fmt.Fprintln(w, "  ltree print     - Print the tree")
	fmt.Fprintln(w, "  ltree columns   - Pick the view columns")
	return nil
}

// runInitForm asks for the ledger file and view defaults.
func runInitForm(cfg *config.Config) error {
	sortOptions := make([]huh.Option[string], 0, len(config.ColumnKeys)+1)
	sortOptions = append(sortOptions, huh.NewOption("ledger order", config.SortOrder))
	for _, key := range config.ColumnKeys {
		if key == config.ColumnNote {
			continue
		}
		sortOptions = append(sortOptions, huh.NewOption(key, key))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Ledger file").
				Description("Path to the ledger YAML, relative to this directory").
				Placeholder("ledger.yaml").
				Value(&cfg.Ledger).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("ledger file is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sort each level by").
				Options(sortOptions...).
				Value(&cfg.View.Sort),
			huh.NewConfirm().
				Title("Reload when the ledger changes?").
				Value(&cfg.Watch.Enabled),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return nil
}
