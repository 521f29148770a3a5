package cli

import (
	"io"

	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/ledger"
	"github.com/rileyhilliard/ltree/internal/mirror"
	"github.com/rileyhilliard/ltree/internal/view"
)

type printCommandOptions struct {
	Ledger  string
	Display DisplayFlags
	Depth   int
	JSON    bool
}

// printCommand mirrors the ledger once and writes it to w.
func printCommand(w io.Writer, opts printCommandOptions) error {
	if opts.Depth < 0 {
		return errors.New(errors.ErrConfig,
			"--depth can't be negative",
			"Use 0 to show every level")
	}

	s, err := openSession(cfgFile, opts.Ledger)
	if err != nil {
		return err
	}
	sortKey, desc, err := opts.Display.Resolve(s.cfg.View)
	if err != nil {
		return err
	}

	root, err := mirror.New(ledger.RootID, s.store.Children, mirror.Options[ledger.ID, view.Row]{
		Decorate: view.Decorator(s.store),
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrMirror,
			"Can't build the ledger tree",
			"Check the ledger file for entries that can't be shown")
	}
	defer root.Close()

	printOpts := view.PrintOptions{Sort: sortKey, Descending: desc, Depth: opts.Depth}
	if opts.JSON {
		return WriteJSONSuccess(w, view.Export(root, printOpts))
	}
	_, err = io.WriteString(w, view.Render(root, printOpts))
	return err
}
