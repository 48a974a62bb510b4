// Package config loads morphfst settings from a YAML or JSON file and
// MORPHFST_* environment variables. Command-line flags are applied by the
// caller on top of the result.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides, e.g. MORPHFST_STORE_DRIVER.
const EnvPrefix = "MORPHFST_"

// DefaultPath is read when no config file is named explicitly.
const DefaultPath = "morphfst.yaml"

// Store drivers.
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config holds every runtime setting.
type Config struct {
	Rules string `mapstructure:"rules" yaml:"rules" json:"rules"`
	FST   string `mapstructure:"fst" yaml:"fst" json:"fst"`

	StoreDriver string `mapstructure:"store_driver" yaml:"store_driver" json:"store_driver"`
	StoreDir    string `mapstructure:"store_dir" yaml:"store_dir" json:"store_dir"`
	Cache       bool   `mapstructure:"cache" yaml:"cache" json:"cache"`

	RedisAddr     string        `mapstructure:"redis_addr" yaml:"redis_addr" json:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" yaml:"redis_password" json:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" yaml:"redis_db" json:"redis_db"`
	RedisPrefix   string        `mapstructure:"redis_prefix" yaml:"redis_prefix" json:"redis_prefix"`
	RedisTTL      time.Duration `mapstructure:"redis_ttl" yaml:"redis_ttl" json:"redis_ttl"`
	LockTTL       time.Duration `mapstructure:"lock_ttl" yaml:"lock_ttl" json:"lock_ttl"`

	MaxStates int `mapstructure:"max_states" yaml:"max_states" json:"max_states"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogJSON  bool   `mapstructure:"log_json" yaml:"log_json" json:"log_json"`

	HTTPAddr string `mapstructure:"http_addr" yaml:"http_addr" json:"http_addr"`
}

// Default returns the built-in settings: morph.txt compiled to morph.fst in
// the working directory.
func Default() *Config {
	return &Config{
		Rules:       "morph.txt",
		FST:         "morph.fst",
		StoreDriver: DriverFile,
		StoreDir:    ".",
		RedisAddr:   "localhost:6379",
		RedisPrefix: "morphfst:",
		LockTTL:     30 * time.Second,
		LogLevel:    "info",
		HTTPAddr:    ":8080",
	}
}

// Load reads path (or DefaultPath when empty) and then the environment.
// A missing DefaultPath is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if err := cfg.LoadFile(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			err = nil
		}
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.LoadEnv(os.Environ()); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the keys present in a YAML or JSON file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if err := c.decode(raw, true); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	return nil
}

// LoadEnv overlays MORPHFST_* variables from environ ("KEY=value" pairs).
// Unknown names are ignored.
func (c *Config) LoadEnv(environ []string) error {
	raw := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		raw[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}
	if len(raw) == 0 {
		return nil
	}
	if err := c.decode(raw, false); err != nil {
		return fmt.Errorf("invalid %s environment: %w", EnvPrefix, err)
	}
	return nil
}

// Validate checks settings that cannot be fixed later.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverFile, DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.FST == "" {
		return fmt.Errorf("fst key must not be empty")
	}
	if c.MaxStates < 0 {
		return fmt.Errorf("max_states must not be negative")
	}
	return nil
}

// decode overlays raw onto c. Unknown keys are rejected only when strict,
// since the environment may carry unrelated MORPHFST_ variables.
func (c *Config) decode(raw map[string]any, strict bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      strict,
		Result:           c,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
