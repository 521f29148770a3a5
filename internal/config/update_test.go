package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetViewColumns(t *testing.T) {
	tests := []struct {
		name         string
		initialYAML  string
		spec         string
		wantContains []string
		wantErr      bool
	}{
		{
			name: "replace existing columns",
			initialYAML: `version: 1
# where the books live
ledger: ledger.yaml
view:
  columns: label:32,kind:8
  sort: balance
`,
			spec: "label:20,balance:12",
			wantContains: []string{
				"# where the books live",
				"columns: label:20,balance:12",
				"sort: balance",
			},
		},
		{
			name: "add columns to existing view",
			initialYAML: `version: 1
view:
  descending: true
`,
			spec:         "label,note",
			wantContains: []string{"descending: true", "columns: label,note"},
		},
		{
			name:         "add view section",
			initialYAML:  "version: 1\n",
			spec:         "label",
			wantContains: []string{"view:", "  columns: label"},
		},
		{
			name:        "reject invalid spec",
			initialYAML: "version: 1\n",
			spec:        "price",
			wantErr:     true,
		},
		{
			name:        "view is not a mapping",
			initialYAML: "version: 1\nview: compact\n",
			spec:        "label",
			wantErr:     true,
		},
		{
			name:        "document is not a mapping",
			initialYAML: "- a\n- b\n",
			spec:        "label",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.initialYAML), 0644))

			err := SetViewColumns(path, tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, string(data), want)
			}

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.spec, cfg.View.Columns)
		})
	}
}

func TestSetViewColumns_MissingFile(t *testing.T) {
	err := SetViewColumns(filepath.Join(t.TempDir(), "nope.yaml"), "label")
	assert.Error(t, err)
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.Ledger = "/books/ledger.yaml"
	cfg.View.Sort = "balance"

	require.NoError(t, WriteConfig(path, cfg, "# ltree\n\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# ltree\n")
	assert.Contains(t, string(data), "debounce: 200ms")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
