package game

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the process-level server configuration loaded from YAML, with
// flag overrides applied in main.
type Config struct {
	Listen      string   `yaml:"listen"`
	MetricsAddr string   `yaml:"metrics_addr"`
	WorldName   string   `yaml:"world_name"`
	DataDir     string   `yaml:"data_dir"`
	Root        Entrance `yaml:"root"`

	AutosaveSeconds   int `yaml:"autosave_seconds"`
	AutosaveThreshold int `yaml:"autosave_threshold"`
}

// DefaultConfig returns the baked-in defaults.
func DefaultConfig() Config {
	return Config{
		Listen:            ":4000",
		WorldName:         "emberrom",
		DataDir:           "data",
		Root:              DefaultEntrance(),
		AutosaveSeconds:   300,
		AutosaveThreshold: 16,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// yields the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Settings is the runtime-tunable configuration cell. The maintenance loop
// reads it every iteration; only the admin set command writes it. It is the
// sole piece of mutable configuration shared across tasks.
type Settings struct {
	mu                sync.RWMutex
	autosaveInterval  time.Duration
	autosaveThreshold int
}

// NewSettings seeds the cell from the static config.
func NewSettings(cfg Config) *Settings {
	interval := time.Duration(cfg.AutosaveSeconds) * time.Second
	if interval <= 0 {
		interval = 300 * time.Second
	}
	threshold := cfg.AutosaveThreshold
	if threshold <= 0 {
		threshold = 16
	}
	return &Settings{autosaveInterval: interval, autosaveThreshold: threshold}
}

// AutosaveInterval returns the current autosave period.
func (s *Settings) AutosaveInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autosaveInterval
}

// SetAutosaveInterval updates the autosave period; the maintenance loop picks
// the change up on its next poll.
func (s *Settings) SetAutosaveInterval(d time.Duration) error {
	if d < time.Second {
		return fmt.Errorf("autosave interval %s: %w", d, ErrIntervalTooShort)
	}
	s.mu.Lock()
	s.autosaveInterval = d
	s.mu.Unlock()
	return nil
}

// AutosaveThreshold returns the activity count that makes a player due for
// autosave.
func (s *Settings) AutosaveThreshold() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autosaveThreshold
}

// ErrIntervalTooShort rejects sub-second autosave intervals.
var ErrIntervalTooShort = strError("interval too short")
