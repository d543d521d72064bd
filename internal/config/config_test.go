package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, vars map[string]string) (Config, error) {
	t.Helper()
	return load(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadFrom(t, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.Packs)
}

func TestLoad_Overrides(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "economy.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("hint_cost: 20\n"), 0o644))

	cfg, err := loadFrom(t, map[string]string{
		"BRIDGEWISE_DB":           "/tmp/bw.db",
		"BRIDGEWISE_PACKS":        "a.json,b.json",
		"BRIDGEWISE_ECONOMY_FILE": rules,
		"BRIDGEWISE_LOG_LEVEL":    "DEBUG",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/bw.db", cfg.DBPath)
	assert.Equal(t, []string{"a.json", "b.json"}, cfg.Packs)
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	r, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, 20, r.HintCost)
	assert.Equal(t, 50, r.RefillCost)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"bad level", map[string]string{"BRIDGEWISE_LOG_LEVEL": "loud"}},
		{"missing economy file", map[string]string{"BRIDGEWISE_ECONOMY_FILE": "/no/such/economy.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFrom(t, tt.vars)
			assert.Error(t, err)
		})
	}
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	flag := filepath.Join(dir, "flag", "bw.db")
	envPath := filepath.Join(dir, "env", "bw.db")

	cfg := Config{DBPath: envPath}

	got, err := cfg.ResolveDBPath(flag)
	require.NoError(t, err)
	assert.Equal(t, flag, got)
	assert.DirExists(t, filepath.Dir(flag))

	got, err = cfg.ResolveDBPath("")
	require.NoError(t, err)
	assert.Equal(t, envPath, got)

	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("BRIDGEWISE_DB", "")
	got, err = Config{}.ResolveDBPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bridgewise", "bridgewise.db"), got)
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: "warn"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "world", 3)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "world=3")
}

func TestSetupLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bw.log")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger, closer, err := Config{LogLevel: "info", LogFile: path}.SetupLogger()
	require.NoError(t, err)
	logger.Info("started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "started")
}
