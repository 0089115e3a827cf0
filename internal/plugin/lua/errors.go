package lua

import (
	"errors"
	"fmt"
)

// Sentinel errors for the script host.
var (
	// ErrHostClosed is returned when executing scripts after Close.
	ErrHostClosed = errors.New("script host is closed")
)

// ScriptError wraps a failure inside a script with its source name.
type ScriptError struct {
	Source string
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Source, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
