package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wick.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "mode: full\nlog:\n  level: debug\ntelemetry:\n  enabled: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "full", cfg.Mode)
	assert.Equal(t, "latex", cfg.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "production", cfg.Log.Mode)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "wick", cfg.Telemetry.Service)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown format", "format: html\n", "Config.Format"},
		{"unknown mode", "mode: partial\n", "Config.Mode"},
		{"negative workers", "workers: -1\n", "Config.Workers"},
		{"unknown log level", "log:\n  level: trace\n", "Config.Log.Level"},
		{"unknown log mode", "log:\n  mode: verbose\n", "Config.Log.Mode"},
		{"empty service", "telemetry:\n  service: \"\"\n", "Config.Telemetry.Service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "mode: [\n"))
	assert.Error(t, err)
}
