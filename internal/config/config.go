// Package config loads wasm-pack settings from .wasm-pack.yaml, WASM_PACK_*
// environment variables and CLI flags.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix viper uses to map environment variables to keys.
const EnvPrefix = "WASM_PACK"

// Config holds the runtime configuration of one invocation.
// Values are populated from .wasm-pack.yaml, WASM_PACK_* env vars, and CLI flags.
type Config struct {
	OutDir        string        `mapstructure:"out_dir"`
	OutName       string        `mapstructure:"out_name"`
	Scope         string        `mapstructure:"scope"`
	Target        string        `mapstructure:"target"`
	Profile       string        `mapstructure:"profile"`
	NoTypescript  bool          `mapstructure:"no_typescript"`
	Recurse       bool          `mapstructure:"recurse"`
	Verbose       bool          `mapstructure:"verbose"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("out_dir", "pkg")
	viper.SetDefault("out_name", "")
	viper.SetDefault("scope", "")
	viper.SetDefault("target", "bundler")
	viper.SetDefault("profile", "release")
	viper.SetDefault("no_typescript", false)
	viper.SetDefault("recurse", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("watch_debounce", 100*time.Millisecond)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}
