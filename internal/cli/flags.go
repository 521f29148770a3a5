package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/ltree/internal/config"
	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/view"
	"github.com/spf13/cobra"
)

// DisplayFlags holds the ordering flags shared by view and print.
type DisplayFlags struct {
	Sort string
	Desc bool
}

// AddDisplayFlags registers --sort and --desc on a command.
func AddDisplayFlags(cmd *cobra.Command, flags *DisplayFlags) {
	cmd.Flags().StringVar(&flags.Sort, "sort", "", "order each level by order, label, kind, balance or children")
	cmd.Flags().BoolVar(&flags.Desc, "desc", false, "reverse the sort")
}

// Resolve merges the flags over the config's view settings. A flag left at
// its zero value keeps the config value.
func (f DisplayFlags) Resolve(cfg config.ViewConfig) (view.SortKey, bool, error) {
	name := cfg.Sort
	if f.Sort != "" {
		name = f.Sort
	}
	key, ok := view.ParseSortKey(name)
	if !ok {
		return view.SortByOrder, false, errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a sort key", name),
			"Use order, label, kind, balance or children")
	}
	return key, f.Desc || cfg.Descending, nil
}

// ParseDebounce parses a --debounce value. Returns zero duration if the
// flag is empty.
func ParseDebounce(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid debounce", flag),
			"Try something like 200ms or 1s.")
	}
	if d < 0 || d > config.MaxDebounce {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Debounce %s is out of range", d),
			fmt.Sprintf("Use a value between 0 and %s", config.MaxDebounce))
	}
	return d, nil
}
