package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 28, cfg.WindowDays)
	assert.Equal(t, 3, cfg.CellWidth)
	assert.False(t, cfg.StrictColors)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, "gantt.db", filepath.Base(cfg.DBPath))
	assert.NotContains(t, cfg.DBPath, "~", "home should be expanded")
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "window_days: 14\nstrict_colors: true\nlocation: Europe/Berlin\ndb: /tmp/x.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("GANTT_WINDOW_DAYS", "7")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.WindowDays, "env overrides file")
	assert.True(t, cfg.StrictColors)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"bad location", "GANTT_LOCATION", "Mars/Olympus"},
		{"zero window", "GANTT_WINDOW_DAYS", "0"},
		{"zero cell width", "GANTT_CELL_WIDTH", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.env, tc.val)
			_, err := Load(t.TempDir())
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("window_days: [\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
