package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rileyhilliard/ltree/internal/config"
	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayFlags_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		flags    DisplayFlags
		cfg      config.ViewConfig
		wantKey  view.SortKey
		wantDesc bool
		wantErr  bool
	}{
		{"config defaults", DisplayFlags{}, config.ViewConfig{Sort: "order"}, view.SortByOrder, false, false},
		{"config sort", DisplayFlags{}, config.ViewConfig{Sort: "kind", Descending: true}, view.SortByKind, true, false},
		{"flag overrides config", DisplayFlags{Sort: "label"}, config.ViewConfig{Sort: "kind"}, view.SortByLabel, false, false},
		{"desc flag", DisplayFlags{Desc: true}, config.ViewConfig{}, view.SortByOrder, true, false},
		{"unknown flag", DisplayFlags{Sort: "size"}, config.ViewConfig{}, view.SortByOrder, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, desc, err := tt.flags.Resolve(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantDesc, desc)
		})
	}
}

func TestParseDebounce(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"200ms", 200 * time.Millisecond, false},
		{"1s", time.Second, false},
		{"0s", 0, false},
		{"soon", 0, true},
		{"-1s", 0, true},
		{"1m", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDebounce(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorToJSON(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"config not found", errors.New(errors.ErrConfig, "Config file not found", ""), ErrCodeConfigNotFound},
		{"config invalid", errors.New(errors.ErrConfig, "Invalid 'view' section", ""), ErrCodeConfigInvalid},
		{"ledger not found", errors.New(errors.ErrLedger, "Ledger file not found: x.yaml", ""), ErrCodeLedgerNotFound},
		{"ledger invalid", errors.New(errors.ErrLedger, "Duplicate entry id", ""), ErrCodeLedgerInvalid},
		{"mirror", errors.New(errors.ErrMirror, "Can't build the ledger tree", ""), ErrCodeMirrorFailed},
		{"view", errors.New(errors.ErrView, "Tree view stopped", ""), ErrCodeViewFailed},
		{"watch", errors.New(errors.ErrWatch, "Can't watch", ""), ErrCodeWatchFailed},
		{"wrapped", errors.Wrap(errors.New(errors.ErrMirror, "boom", ""), "outer"), ErrCodeMirrorFailed},
		{"plain", stderrors.New("something else"), ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorToJSON(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.code, got.Code)
		})
	}

	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_KeepsCauseAndSuggestion(t *testing.T) {
	err := errors.WrapWithCode(stderrors.New("permission denied"), errors.ErrLedger,
		"Can't read ledger file: x.yaml", "Check the file permissions")

	got := ErrorToJSON(err)
	assert.Equal(t, "Can't read ledger file: x.yaml: permission denied", got.Message)
	assert.Equal(t, "Check the file permissions", got.Suggestion)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]int{"entries": 3}))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Equal(t, map[string]interface{}{"entries": float64(3)}, env.Data)

	buf.Reset()
	require.NoError(t, WriteJSONFromError(&buf, errors.New(errors.ErrLedger, "Ledger file not found: x", "")))
	env = JSONEnvelope{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeLedgerNotFound, env.Error.Code)
}

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{`unknown command "foo" for "ltree"`, true},
		{`unknown flag: --foo`, true},
		{`unknown shorthand flag: 'x' in -x`, true},
		{"ledger not found", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(stderrors.New(tt.msg)))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	assert.Equal(t, "books.yaml", extractUnknownCommand(stderrors.New(`unknown command "books.yaml" for "ltree"`)))
	assert.Equal(t, "", extractUnknownCommand(stderrors.New("unknown command foo")))
	assert.Equal(t, "", extractUnknownCommand(stderrors.New(`unknown command "foo`)))

	assert.True(t, isLedgerFileName("books.yaml"))
	assert.True(t, isLedgerFileName("books.yml"))
	assert.False(t, isLedgerFileName("view"))
}

func TestPrintVersion(t *testing.T) {
	orig := [3]string{version, commit, date}
	defer SetVersionInfo(orig[0], orig[1], orig[2])

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")

	var buf bytes.Buffer
	printVersion(&buf, false)
	out := buf.String()
	assert.Contains(t, out, "ltree v1.2.3")
	assert.Contains(t, out, "commit: abc123")
	assert.Contains(t, out, "built: 2026-01-01")
	assert.Contains(t, out, runtime.Version())

	buf.Reset()
	printVersion(&buf, true)
	assert.Equal(t, "1.2.3\n", buf.String())
	assert.Equal(t, "1.2.3", GetVersion())
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "", formatVersion(""))
	assert.Equal(t, "v1.0.0", formatVersion("1.0.0"))
	assert.Equal(t, "v1.0.0", formatVersion("v1.0.0"))
}

func TestMergeInitOptions(t *testing.T) {
	t.Run("flags win over env", func(t *testing.T) {
		t.Setenv("LTREE_LEDGER", "env.yaml")
		t.Setenv("LTREE_NON_INTERACTIVE", "")
		t.Setenv("CI", "")

		merged := mergeInitOptions(InitOptions{Ledger: "flag.yaml"})
		assert.Equal(t, "flag.yaml", merged.Ledger)
		assert.False(t, merged.NonInteractive)
	})

	t.Run("env fills empty flags", func(t *testing.T) {
		t.Setenv("LTREE_LEDGER", "env.yaml")
		t.Setenv("LTREE_NON_INTERACTIVE", "yes")
		t.Setenv("CI", "")

		merged := mergeInitOptions(InitOptions{})
		assert.Equal(t, "env.yaml", merged.Ledger)
		assert.True(t, merged.NonInteractive)
	})

	t.Run("CI forces non-interactive", func(t *testing.T) {
		t.Setenv("LTREE_LEDGER", "")
		t.Setenv("LTREE_NON_INTERACTIVE", "")
		t.Setenv("CI", "true")

		assert.True(t, mergeInitOptions(InitOptions{}).NonInteractive)
	})
}

func TestInit_NonInteractive(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("LTREE_LEDGER", "")
	chdir(t, dir)

	var buf bytes.Buffer
	require.NoError(t, Init(&buf, InitOptions{Ledger: "books.yaml", NonInteractive: true}))
	assert.Contains(t, buf.String(), "Created")
	assert.Contains(t, buf.String(), "doesn't exist yet")

	cfgPath := filepath.Join(dir, config.ConfigFileName)
	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# ltree configuration")

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "books.yaml"), cfg.Ledger)
	assert.Equal(t, config.DefaultColumns, cfg.View.Columns)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
	require.NoError(t, config.Validate(cfg))

	err = Init(&bytes.Buffer{}, InitOptions{NonInteractive: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	require.NoError(t, Init(&bytes.Buffer{}, InitOptions{NonInteractive: true, Overwrite: true}))
	cfg, err = config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ledger.yaml"), cfg.Ledger)
}
