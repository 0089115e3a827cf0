package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration handling.
var (
	// ErrInvalidConfig is matched by every ValidationError.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrWatcherClosed is returned when using a Watcher after Close.
	ErrWatcherClosed = errors.New("config watcher is closed")
)

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config field %s: %s", e.Field, e.Message)
}

// Is reports ErrInvalidConfig identity for errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ParseError wraps a TOML or environment decoding failure with its source.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
