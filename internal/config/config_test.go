package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.False(t, Exists())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.True(t, cfg.Leaks.Placeholder)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DataDir = "/srv/gigfin"
	cfg.Leaks.Placeholder = false
	cfg.Defaults.FuelPrice = 96.5
	require.NoError(t, Save(cfg))
	require.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gigfin"), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[daemon]\naddr = \":9000\"\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Daemon.Addr)
	require.Equal(t, 15, cfg.Daemon.IntervalSec)
	require.Equal(t, 800.0, cfg.Defaults.DailyTarget)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gigfin"), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[general\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
}

func TestHelpers(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("GIGFIN_PREDICTOR_URL", "")
	require.Equal(t, "http://127.0.0.1:8000", PredictorURL(cfg))
	t.Setenv("GIGFIN_PREDICTOR_URL", "http://ml:9000")
	require.Equal(t, "http://ml:9000", PredictorURL(cfg))

	require.Equal(t, 10*time.Second, PredictorTimeout(cfg))
	cfg.Predictor.TimeoutSec = 0
	require.Equal(t, time.Duration(0), PredictorTimeout(cfg))

	cfg.Daemon.IntervalSec = 0
	require.Equal(t, time.Second, DaemonInterval(cfg))
}
