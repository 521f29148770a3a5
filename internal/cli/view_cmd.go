package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/logger"
	"github.com/rileyhilliard/ltree/internal/view"
)

// DebugLogFile receives log lines while the full-screen view is running
// with --verbose or LTREE_DEBUG.
const DebugLogFile = "ltree-debug.log"

type viewCommandOptions struct {
	Ledger   string
	Display  DisplayFlags
	Columns  string
	NoWatch  bool
	Debounce string
}

// viewCommand is the implementation called by the cobra command.
func viewCommand(ctx context.Context, opts viewCommandOptions) error {
	s, err := openSession(cfgFile, opts.Ledger)
	if err != nil {
		return err
	}
	viewOpts, err := s.viewOptions(opts.Display, opts.Columns)
	if err != nil {
		return err
	}

	debounce := s.cfg.Watch.Debounce
	if opts.Debounce != "" {
		if debounce, err = ParseDebounce(opts.Debounce); err != nil {
			return err
		}
	}

	// The alternate screen would swallow log lines.
	if logger.DebugEnabled() {
		f, err := os.OpenFile(DebugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrView,
				"Can't open "+DebugLogFile,
				"Run without --verbose, or from a writable directory")
		}
		defer f.Close()
		restore := logger.RedirectTo(f)
		defer restore()
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = view.Run(ctx, view.RunOptions{
		View:       viewOpts,
		LedgerPath: s.ledgerPath,
		Watch:      s.cfg.Watch.Enabled && !opts.NoWatch,
		Debounce:   debounce,
	})
	if err != nil {
		return errors.Wrap(err, "Tree view stopped")
	}
	return nil
}
