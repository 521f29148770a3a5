package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rileyhilliard/ltree/internal/config"
	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/ui"
)

// columnsCommand lists the configured columns, or checks spec and saves it
// to the config file when save is set.
func columnsCommand(w io.Writer, spec string, save bool) error {
	cfg, cfgPath, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}

	if spec == "" {
		if save {
			return errors.New(errors.ErrConfig,
				"--save needs a column spec",
				"Example: ltree columns label:40,balance:18 --save")
		}
		return listColumns(w, cfg.View.Columns, cfgPath)
	}

	cols, err := config.ParseColumns(spec)
	if err != nil {
		return err
	}
	normalized := config.FormatColumns(cols)

	if !save {
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), normalized)
		fmt.Fprintln(w, ui.MutedStyle().Render("Add --save to write it to your config."))
		return nil
	}
	if cfgPath == "" {
		return errors.New(errors.ErrConfig,
			"No config file to save to",
			"Run 'ltree init' first, or pass --config")
	}
	if err := config.SetViewColumns(cfgPath, normalized); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't update "+cfgPath,
			"Check that the file is writable and valid YAML")
	}
	fmt.Fprintf(w, "%s Saved view.columns to %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), cfgPath)
	return nil
}

func listColumns(w io.Writer, spec, cfgPath string) error {
	current, err := config.ParseColumns(spec)
	if err != nil {
		return err
	}
	all, err := config.ParseColumns(strings.Join(config.ColumnKeys, ","))
	if err != nil {
		return err
	}

	width := make(map[string]int, len(current))
	for _, c := range current {
		width[c.Key] = c.Width
	}

	rows := make([][]string, 0, len(all))
	for _, c := range all {
		shown := ""
		if n, ok := width[c.Key]; ok {
			shown = strconv.Itoa(n)
		}
		rows = append(rows, []string{c.Key, strconv.Itoa(c.Width), shown})
	}

	source := cfgPath
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(w, "view.columns: %s %s\n\n", config.FormatColumns(current), ui.MutedStyle().Render("("+source+")"))
	fmt.Fprintln(w, ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "COLUMN", Width: 10},
		{Title: "DEFAULT", Width: 8},
		{Title: "SHOWN", Width: 8},
	}, rows))
	return nil
}
