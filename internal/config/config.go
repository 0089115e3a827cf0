package config

import (
	"fmt"
	"time"
)

// Config holds every tunable of the coordinator. Durations are expressed in
// milliseconds in the file format; use the *Duration accessors in code.
type Config struct {
	// Navigation geometry.
	HeaderHeight       float64 `toml:"header_height"`
	TopAnchorThreshold float64 `toml:"top_anchor_threshold"`
	ActiveZoneRatio    float64 `toml:"active_zone_ratio"`
	ActiveClass        string  `toml:"active_class"`

	// Animation engine.
	Breakpoint    float64 `toml:"breakpoint"`
	SweepTickMS   int     `toml:"sweep_tick_ms"`
	SweepWindowMS int     `toml:"sweep_window_ms"`

	// Rate limiting.
	ScrollThrottleMS int `toml:"scroll_throttle_ms"`
	ResizeDebounceMS int `toml:"resize_debounce_ms"`
	TouchDebounceMS  int `toml:"touch_debounce_ms"`

	// Library profiles per device class.
	Desktop AdapterConfig `toml:"desktop"`
	Mobile  AdapterConfig `toml:"mobile"`

	// Logging.
	LogLevel string `toml:"log_level"`
}

// AdapterConfig parameterizes the external animation library for one device
// class.
type AdapterConfig struct {
	DurationMS      int     `toml:"duration_ms"`
	Offset          float64 `toml:"offset"`
	Easing          string  `toml:"easing"`
	Once            bool    `toml:"once"`
	Mirror          bool    `toml:"mirror"`
	AnchorPlacement string  `toml:"anchor_placement"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HeaderHeight:       80,
		TopAnchorThreshold: 50,
		ActiveZoneRatio:    0.6,
		ActiveClass:        "active",
		Breakpoint:         768,
		SweepTickMS:        500,
		SweepWindowMS:      10_000,
		ScrollThrottleMS:   16,
		ResizeDebounceMS:   250,
		TouchDebounceMS:    300,
		Desktop: AdapterConfig{
			DurationMS:      800,
			Offset:          120,
			Easing:          "ease-out",
			Once:            true,
			AnchorPlacement: "top-bottom",
		},
		Mobile: AdapterConfig{
			DurationMS:      600,
			Offset:          60,
			Easing:          "ease-out",
			Once:            true,
			AnchorPlacement: "top-bottom",
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for values the coordinator cannot run
// with.
func (c *Config) Validate() error {
	if c.HeaderHeight < 0 {
		return &ValidationError{Field: "header_height", Message: "must not be negative"}
	}
	if c.TopAnchorThreshold < 0 {
		return &ValidationError{Field: "top_anchor_threshold", Message: "must not be negative"}
	}
	if c.ActiveZoneRatio <= 0 || c.ActiveZoneRatio > 1 {
		return &ValidationError{Field: "active_zone_ratio", Message: "must be in (0, 1]"}
	}
	if c.ActiveClass == "" {
		return &ValidationError{Field: "active_class", Message: "must not be empty"}
	}
	if c.Breakpoint <= 0 {
		return &ValidationError{Field: "breakpoint", Message: "must be positive"}
	}
	if c.SweepTickMS <= 0 {
		return &ValidationError{Field: "sweep_tick_ms", Message: "must be positive"}
	}
	if c.SweepWindowMS < c.SweepTickMS {
		return &ValidationError{Field: "sweep_window_ms", Message: "must cover at least one tick"}
	}
	if c.ScrollThrottleMS <= 0 {
		return &ValidationError{Field: "scroll_throttle_ms", Message: "must be positive"}
	}
	if c.ResizeDebounceMS <= 0 {
		return &ValidationError{Field: "resize_debounce_ms", Message: "must be positive"}
	}
	if c.TouchDebounceMS <= 0 {
		return &ValidationError{Field: "touch_debounce_ms", Message: "must be positive"}
	}
	if err := c.Desktop.validate("desktop"); err != nil {
		return err
	}
	if err := c.Mobile.validate("mobile"); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown level %q", c.LogLevel),
		}
	}
	return nil
}

func (a AdapterConfig) validate(section string) error {
	if a.DurationMS <= 0 {
		return &ValidationError{Field: section + ".duration_ms", Message: "must be positive"}
	}
	if a.Offset < 0 {
		return &ValidationError{Field: section + ".offset", Message: "must not be negative"}
	}
	return nil
}

// ScrollThrottle returns the scroll throttle interval.
func (c *Config) ScrollThrottle() time.Duration {
	return time.Duration(c.ScrollThrottleMS) * time.Millisecond
}

// ResizeDebounce returns the resize debounce wait.
func (c *Config) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMS) * time.Millisecond
}

// TouchDebounce returns the touch and orientation debounce wait.
func (c *Config) TouchDebounce() time.Duration {
	return time.Duration(c.TouchDebounceMS) * time.Millisecond
}

// SweepTick returns the settle sweep cadence.
func (c *Config) SweepTick() time.Duration {
	return time.Duration(c.SweepTickMS) * time.Millisecond
}

// SweepWindow returns how long the settle sweep runs after load.
func (c *Config) SweepWindow() time.Duration {
	return time.Duration(c.SweepWindowMS) * time.Millisecond
}

// Duration returns the adapter's animation duration.
func (a AdapterConfig) Duration() time.Duration {
	return time.Duration(a.DurationMS) * time.Millisecond
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}
