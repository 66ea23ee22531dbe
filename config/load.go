package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"market-sim-go/infrastructure/logger"
	"market-sim-go/sim"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env   string          `yaml:"env"`
	Sim   sim.Parameters  `yaml:"sim"`
	Batch sim.BatchConfig `yaml:"batch"`
	Log   logger.Config   `yaml:"log"`

	MetricsAddr string `yaml:"metricsAddr"` // empty disables the metrics server
	StreamAddr  string `yaml:"streamAddr"`  // empty disables the websocket stream
	APIAddr     string `yaml:"apiAddr"`

	// RunIntervalSec is the daemon's pause between batches.
	RunIntervalSec int `yaml:"runIntervalSec"`
}

// Default returns a complete runnable configuration; Load unmarshals on top
// of it so omitted fields keep their defaults.
func Default() AppConfig {
	return AppConfig{
		Env:            "dev",
		Sim:            sim.DefaultParameters(),
		Batch:          sim.DefaultBatchConfig(),
		Log:            logger.DefaultConfig(),
		MetricsAddr:    ":9100",
		StreamAddr:     "",
		APIAddr:        ":8080",
		RunIntervalSec: 60,
	}
}

// Load reads YAML config from path and applies validation.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides selected fields from env
// vars if present. MMSIM_SEED allows re-seeding a deployed daemon without
// touching the config file.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("MMSIM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("parse MMSIM_SEED: %w", err)
		}
		cfg.Sim.Seed = seed
	}
	if v := os.Getenv("MMSIM_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("MMSIM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, Validate(cfg)
}

// Validate ensures required fields are present and inside their domains.
// Configuration errors always surface here, before any tick runs.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if err := cfg.Sim.Validate(); err != nil {
		return err
	}
	if err := cfg.Batch.Validate(); err != nil {
		return err
	}
	if cfg.RunIntervalSec < 0 {
		return errors.New("runIntervalSec must be >= 0")
	}
	return nil
}
