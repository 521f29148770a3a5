package cli

import (
	"path/filepath"

	"github.com/rileyhilliard/ltree/internal/config"
	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/ledger"
	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/rileyhilliard/ltree/internal/mirror"
	"github.com/rileyhilliard/ltree/internal/ui"
	"github.com/rileyhilliard/ltree/internal/view"
)

// session is the state every ledger command starts from: the resolved
// config, the ledger file, and a store loaded from it.
type session struct {
	cfg        *config.Config
	cfgPath    string // empty when running on defaults
	ledgerPath string
	store      *ledger.Store
}

// openSession loads config and the ledger. ledgerArg overrides the
// config's ledger path and is taken relative to the working directory.
func openSession(configFlag, ledgerArg string) (*session, error) {
	cfg, cfgPath, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if !noColor {
		ui.SetColorMode(cfg.Output.Color)
	}

	path := cfg.Ledger
	if ledgerArg != "" {
		path = config.ExpandTilde(ledgerArg)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	snap, err := ledger.Load(path)
	if err != nil {
		return nil, err
	}

	store := ledger.NewStore(logger.NewEnvLogger("[ledger]"))
	if _, err := store.Apply(snap); err != nil {
		return nil, errors.Wrap(err, "Can't load ledger "+path)
	}

	return &session{cfg: cfg, cfgPath: cfgPath, ledgerPath: path, store: store}, nil
}

// viewOptions builds the tree view settings from config and flags.
// columnsFlag replaces view.columns when set.
func (s *session) viewOptions(flags DisplayFlags, columnsFlag string) (view.Options, error) {
	spec := s.cfg.View.Columns
	if columnsFlag != "" {
		spec = columnsFlag
	}
	cols, err := config.ParseColumns(spec)
	if err != nil {
		return view.Options{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid column config",
			"Run 'ltree columns' to see the available columns")
	}

	sortKey, desc, err := flags.Resolve(s.cfg.View)
	if err != nil {
		return view.Options{}, err
	}

	// Validate has already rejected unknown modes.
	removal, _ := mirror.ParseRemovalMode(s.cfg.Mirror.Removal)

	return view.Options{
		Store:          s.store,
		Columns:        cols,
		Sort:           sortKey,
		Descending:     desc,
		ExpandDepth:    s.cfg.View.ExpandDepth,
		Removal:        removal,
		ResetOnReplace: s.cfg.Mirror.ResetOnReplace,
		Logger:         logger.NewEnvLogger("[mirror]"),
	}, nil
}
