// Package config reads and writes the gigfin TOML settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all gigfin configuration.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Leaks     LeaksConfig     `toml:"leaks"`
	Predictor PredictorConfig `toml:"predictor"`
	Daemon    DaemonConfig    `toml:"daemon"`
	Defaults  DefaultsConfig  `toml:"defaults"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir     string `toml:"data_dir,omitempty"`
	DefaultDays int    `toml:"default_days"`
	LogLevel    string `toml:"log_level"`
}

// LeaksConfig tunes the leak detector.
type LeaksConfig struct {
	Placeholder bool `toml:"placeholder"`
}

// PredictorConfig points at the credit prediction service.
type PredictorConfig struct {
	BaseURL    string `toml:"base_url"`
	TimeoutSec int    `toml:"timeout_sec"`
}

// DaemonConfig holds background daemon settings.
type DaemonConfig struct {
	Addr            string `toml:"addr"`
	IntervalSec     int    `toml:"interval_sec"`
	HistorySchedule string `toml:"history_schedule"`
}

// DefaultsConfig seeds the settings of a fresh snapshot.
type DefaultsConfig struct {
	DailyTarget float64 `toml:"daily_target"`
	FuelPrice   float64 `toml:"fuel_price"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultDays: 30,
			LogLevel:    "warn",
		},
		Leaks: LeaksConfig{
			Placeholder: true,
		},
		Predictor: PredictorConfig{
			BaseURL:    "http://127.0.0.1:8000",
			TimeoutSec: 10,
		},
		Daemon: DaemonConfig{
			Addr:            "127.0.0.1:8787",
			IntervalSec:     15,
			HistorySchedule: "5 0 * * *",
		},
		Defaults: DefaultsConfig{
			DailyTarget: 800,
			FuelPrice:   102,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gigfin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gigfin")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// PredictorURL returns the prediction service URL from env var or config, in that order.
func PredictorURL(cfg Config) string {
	if u := os.Getenv("GIGFIN_PREDICTOR_URL"); u != "" {
		return u
	}
	return cfg.Predictor.BaseURL
}

// PredictorTimeout returns the request timeout, zero meaning the client default.
func PredictorTimeout(cfg Config) time.Duration {
	if cfg.Predictor.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(cfg.Predictor.TimeoutSec) * time.Second
}

// DaemonInterval returns the daemon poll interval, at least one second.
func DaemonInterval(cfg Config) time.Duration {
	if cfg.Daemon.IntervalSec < 1 {
		return time.Second
	}
	return time.Duration(cfg.Daemon.IntervalSec) * time.Second
}
