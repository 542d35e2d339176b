package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/chksum/color"
	"github.com/byte4ever/chksum/config"
	"github.com/byte4ever/chksum/source"
)

func writeTemp(tb testing.TB, name, content string) string {
	tb.Helper()

	pa := filepath.Join(tb.TempDir(), name)
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func TestLoad_yaml(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, "chksum.yaml", `
color: never
jobs: 3
directory: reject
log_level: debug
format:
  success: "{digest}  {target}"
`)

	cfg, err := config.Load(pa)

	require.NoError(t, err)
	assert.Equal(t, color.ModeNever, cfg.Color)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, source.DirReject, cfg.Directory)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "{digest}  {target}", cfg.Format.Success)
	assert.Empty(t, cfg.Format.Failure)
}

func TestLoad_json(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, "chksum.json", `{"color": "always", "jobs": 8}`)

	cfg, err := config.Load(pa)

	require.NoError(t, err)
	assert.Equal(t, color.ModeAlways, cfg.Color)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, source.DirContent, cfg.Directory)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoad_empty_yaml_keeps_defaults(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, "empty.yml", "")

	cfg, err := config.Load(pa)

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "bad color", file: "c.yaml", content: "color: purple\n"},
		{name: "negative jobs", file: "c.json", content: `{"jobs": -1}`},
		{name: "bad policy", file: "c.yaml", content: "directory: expand\n"},
		{name: "bad level", file: "c.yaml", content: "log_level: loud\n"},
		{name: "bad template", file: "c.yaml", content: "format:\n  failure: \"{target\"\n"},
		{name: "malformed json", file: "c.json", content: `{"color":`},
		{name: "unknown extension", file: "c.toml", content: "color = 'never'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(writeTemp(t, tt.file, tt.content))

			assert.Error(t, err)
		})
	}
}

func TestLoad_unknown_extension_sentinel(t *testing.T) {
	t.Parallel()

	_, err := config.Load(writeTemp(t, "c.ini", "x=1"))

	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	lvl, err := config.ParseLevel("INFO")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = config.ParseLevel("chatty")
	assert.Error(t, err)
}

func TestLevel_pflag_value(t *testing.T) {
	t.Parallel()

	lvl := config.Level(slog.LevelWarn)

	assert.Equal(t, "WARN", lvl.String())
	require.NoError(t, lvl.Set("debug"))
	assert.Equal(t, config.Level(slog.LevelDebug), lvl)
	assert.Equal(t, "level", lvl.Type())
	assert.Error(t, lvl.Set("chatty"))
	assert.Equal(t, config.Level(slog.LevelDebug), lvl)
}

func TestDefault_leaves_formats_to_printer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.Format{}, config.Default().Format)
}
