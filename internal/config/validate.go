package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/mirror"
)

// MaxDebounce caps watch.debounce; longer waits make the view feel stuck.
const MaxDebounce = 10 * time.Second

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but ltree only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest ltree release.")
	}

	if err := validateView(cfg.View); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Invalid 'view' section", "Check the 'view' section in your .ltree.yaml.")
	}

	if err := validateWatch(cfg.Watch); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'watch' section in your .ltree.yaml.")
	}

	if _, ok := mirror.ParseRemovalMode(cfg.Mirror.Removal); !ok {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("mirror.removal '%s' isn't valid - use 'equality' or 'index'", cfg.Mirror.Removal),
			"Check the 'mirror' section in your .ltree.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .ltree.yaml.")
	}

	return nil
}

// validateView checks the column config, sort key, and expand depth.
func validateView(view ViewConfig) error {
	if _, err := ParseColumns(view.Columns); err != nil {
		return err
	}
	if view.Sort != "" && !IsSortKey(view.Sort) {
		return fmt.Errorf("view.sort '%s' isn't valid - use 'order' or a column name", view.Sort)
	}
	if view.ExpandDepth < 0 {
		return fmt.Errorf("view.expand_depth can't be negative")
	}
	return nil
}

// validateWatch checks watch configuration.
func validateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce can't be negative - that doesn't make sense")
	}
	if w.Debounce > MaxDebounce {
		return fmt.Errorf("watch.debounce of %s is too long - keep it under %s", w.Debounce, MaxDebounce)
	}
	return nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}
