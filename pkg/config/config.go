// Package config loads the refactoring configuration: a .rubyfactor.toml
// file when present, overridden by RUBYFACTOR_* environment variables.
// The result is an immutable value passed explicitly into operations;
// there is no ambient global configuration.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"rubyfactor/pkg/types"
)

// DefaultFileName is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultFileName = ".rubyfactor.toml"

const (
	defaultTrimPattern   = `[\s()]+`
	defaultAnchorPattern = `^\s*(describe|context)\b`
)

// Config holds the process-wide, read-only refactoring settings.
type Config struct {
	// AddParens wraps method argument lists in parentheses. Consumed by
	// extract-method and add-parameter only.
	AddParens bool
	// TrimPattern is stripped from both ends of the variable-name side
	// of an assignment split.
	TrimPattern *regexp.Regexp
	// AnchorPattern identifies lines new let bindings are placed after.
	AnchorPattern *regexp.Regexp
	// PlacementMode selects the anchor search direction.
	PlacementMode types.PlacementMode
}

// fileConfig is the on-disk TOML shape of Config.
type fileConfig struct {
	AddParens     *bool  `toml:"add_parens"`
	TrimPattern   string `toml:"trim_pattern"`
	AnchorPattern string `toml:"anchor_pattern"`
	PlacementMode string `toml:"placement_mode"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		AddParens:     true,
		TrimPattern:   regexp.MustCompile(defaultTrimPattern),
		AnchorPattern: regexp.MustCompile(defaultAnchorPattern),
		PlacementMode: types.PlacementTop,
	}
}

// Load builds the configuration from path (empty means DefaultFileName,
// which may be absent) plus environment overrides. A .env file in the
// working directory is honored first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	fc := fileConfig{}
	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&fc)
	return fc.build()
}

func applyEnv(fc *fileConfig) {
	if v := os.Getenv("RUBYFACTOR_ADD_PARENS"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			fc.AddParens = &parsed
		}
	}
	if v := os.Getenv("RUBYFACTOR_TRIM_PATTERN"); v != "" {
		fc.TrimPattern = v
	}
	if v := os.Getenv("RUBYFACTOR_ANCHOR_PATTERN"); v != "" {
		fc.AnchorPattern = v
	}
	if v := os.Getenv("RUBYFACTOR_PLACEMENT_MODE"); v != "" {
		fc.PlacementMode = v
	}
}

func (fc fileConfig) build() (*Config, error) {
	cfg := Default()

	if fc.AddParens != nil {
		cfg.AddParens = *fc.AddParens
	}
	if fc.TrimPattern != "" {
		re, err := regexp.Compile(fc.TrimPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid trim_pattern: %w", err)
		}
		cfg.TrimPattern = re
	}
	if fc.AnchorPattern != "" {
		re, err := regexp.Compile(fc.AnchorPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid anchor_pattern: %w", err)
		}
		cfg.AnchorPattern = re
	}
	if fc.PlacementMode != "" {
		mode := types.PlacementMode(fc.PlacementMode)
		if !mode.Valid() {
			return nil, fmt.Errorf("invalid placement_mode %q: want %q or %q",
				fc.PlacementMode, types.PlacementTop, types.PlacementClosest)
		}
		cfg.PlacementMode = mode
	}

	return cfg, nil
}
