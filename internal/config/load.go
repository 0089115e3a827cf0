package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables that override file
// settings.
const EnvPrefix = "SCROLLSTORM_"

// Load builds a configuration from defaults, the optional TOML file at
// path, and SCROLLSTORM_ environment variables, in that order. A missing
// file is not an error; an empty path skips the file layer entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, &ParseError{Path: path, Err: err}
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays SCROLLSTORM_ environment variables onto cfg. Empty
// values are treated as set.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "ACTIVE_CLASS"); ok {
		cfg.ActiveClass = v
	}

	floats := map[string]*float64{
		EnvPrefix + "HEADER_HEIGHT":        &cfg.HeaderHeight,
		EnvPrefix + "TOP_ANCHOR_THRESHOLD": &cfg.TopAnchorThreshold,
		EnvPrefix + "ACTIVE_ZONE_RATIO":    &cfg.ActiveZoneRatio,
		EnvPrefix + "BREAKPOINT":           &cfg.Breakpoint,
	}
	for env, dst := range floats {
		v, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &ParseError{Path: env, Err: err}
		}
		*dst = f
	}

	ints := map[string]*int{
		EnvPrefix + "SCROLL_THROTTLE_MS": &cfg.ScrollThrottleMS,
		EnvPrefix + "RESIZE_DEBOUNCE_MS": &cfg.ResizeDebounceMS,
		EnvPrefix + "TOUCH_DEBOUNCE_MS":  &cfg.TouchDebounceMS,
	}
	for env, dst := range ints {
		v, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ParseError{Path: env, Err: err}
		}
		*dst = n
	}

	return nil
}
