package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .ltree.yaml configuration file.
type Config struct {
	Version int          `yaml:"version" mapstructure:"version"`
	Ledger  string       `yaml:"ledger" mapstructure:"ledger"`
	View    ViewConfig   `yaml:"view" mapstructure:"view"`
	Watch   WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Mirror  MirrorConfig `yaml:"mirror" mapstructure:"mirror"`
	Output  OutputConfig `yaml:"output" mapstructure:"output"`
}

// ViewConfig controls the tree view.
type ViewConfig struct {
	// Columns is the column-config string, e.g. "label:32,kind:8,balance:16".
	Columns string `yaml:"columns" mapstructure:"columns"`

	// Sort is the column each level is ordered by, or "order" for the
	// ledger's own order.
	Sort string `yaml:"sort" mapstructure:"sort"`

	// Descending reverses the sort.
	Descending bool `yaml:"descending" mapstructure:"descending"`

	// ExpandDepth is how many levels start expanded. 0 shows only the
	// top-level wallets collapsed.
	ExpandDepth int `yaml:"expand_depth" mapstructure:"expand_depth"`
}

// WatchConfig controls reloading the ledger when it changes on disk.
type WatchConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Debounce is how long the file must stay quiet before a reload.
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// MirrorConfig selects how the view's mirror applies changes.
type MirrorConfig struct {
	// Removal is "equality" (every equal child goes) or "index" (the
	// removed range goes).
	Removal string `yaml:"removal" mapstructure:"removal"`

	// ResetOnReplace rebuilds a node's children when its value is replaced.
	ResetOnReplace bool `yaml:"reset_on_replace" mapstructure:"reset_on_replace"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultColumns is the column-config string used when none is set.
const DefaultColumns = "label:32,kind:8,balance:16,children:6"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Ledger:  "ledger.yaml",
		View: ViewConfig{
			Columns:     DefaultColumns,
			Sort:        SortOrder,
			ExpandDepth: 2,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
		Mirror: MirrorConfig{
			Removal: "equality",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
