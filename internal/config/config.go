package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Tracking Tracking `toml:"tracking"`
	Defaults Defaults `toml:"defaults"`
	Export   Export   `toml:"export"`
}

type Tracking struct {
	// IdleThresholdSec is how many seconds without input count as idle.
	IdleThresholdSec int `toml:"idle_threshold_sec"`
	// IdleBreakThresholdSec is how many idle seconds convert to an
	// automatic break.
	IdleBreakThresholdSec int `toml:"idle_break_threshold_sec"`
	PollIntervalMS        int `toml:"poll_interval_ms"`
}

type Defaults struct {
	Sphere  string `toml:"sphere"`
	Project string `toml:"project"`
	Action  string `toml:"action"`
}

type Export struct {
	Directory string `toml:"directory"`
}

func DefaultConfig() Config {
	return Config{
		Tracking: Tracking{
			IdleThresholdSec:      300,
			IdleBreakThresholdSec: 900,
			PollIntervalMS:        100,
		},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".timekeep", "config.toml")
}

func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // use defaults
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func (t Tracking) IdleThreshold() time.Duration {
	return time.Duration(t.IdleThresholdSec) * time.Second
}

func (t Tracking) IdleBreakThreshold() time.Duration {
	return time.Duration(t.IdleBreakThresholdSec) * time.Second
}

func (t Tracking) PollInterval() time.Duration {
	return time.Duration(t.PollIntervalMS) * time.Millisecond
}
