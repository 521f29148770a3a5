package view

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/ltree/internal/watch"
	"golang.org/x/term"
)

// RunOptions configures the interactive view.
type RunOptions struct {
	View Options

	// LedgerPath is watched for changes when Watch is set.
	LedgerPath string
	Watch      bool
	Debounce   time.Duration

	// Output receives the static tree when stdout is not a terminal.
	// Defaults to os.Stdout.
	Output io.Writer
}

// Run starts the tree view TUI and blocks until the user quits or ctx is
// done. When stdout is not a terminal the tree is printed once instead.
func Run(ctx context.Context, opts RunOptions) error {
	model, err := NewModel(opts.View)
	if err != nil {
		return err
	}
	defer func() {
		// The model may have rebuilt its mirror while running.
		if root := model.Root(); root != nil {
			root.Close()
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		_, err := io.WriteString(out, Render(model.Root(), PrintOptions{
			Sort:       opts.View.Sort,
			Descending: opts.View.Descending,
		}))
		return err
	}

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if opts.Watch && opts.LedgerPath != "" {
		w, err := startWatcher(ctx, program, opts)
		if err != nil {
			return err
		}
		defer w.Stop()
	}

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// startWatcher watches the ledger file and forwards changes to sender. The
// watcher is stopped again if it can't start.
func startWatcher(ctx context.Context, sender Sender, opts RunOptions) (*watch.Watcher, error) {
	bridge := NewBridge(sender, opts.View.Logger)
	w, err := watch.New(opts.LedgerPath, bridge.LedgerChanged, watch.Options{
		Debounce: opts.Debounce,
		Logger:   opts.View.Logger,
	})
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}
