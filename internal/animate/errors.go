package animate

import (
	"errors"
	"fmt"
)

// Sentinel errors for the animation engine.
var (
	// ErrUnknownAnimation is returned when tracking an element against an
	// animation-type name that is not registered.
	ErrUnknownAnimation = errors.New("unknown animation type")

	// ErrDuplicateDefinition is returned by Registry.Register for an
	// existing name; use Override to replace.
	ErrDuplicateDefinition = errors.New("animation type already registered")

	// ErrUntracked is returned when resetting an element the engine is not
	// tracking.
	ErrUntracked = errors.New("element is not tracked")

	// ErrDetectorUnavailable signals that no visibility detector is wired,
	// so tracked elements reveal immediately instead of on intersection.
	ErrDetectorUnavailable = errors.New("visibility detector unavailable")
)

// UnknownAnimationError carries the unregistered name that was requested.
type UnknownAnimationError struct {
	Name string
}

func (e *UnknownAnimationError) Error() string {
	return fmt.Sprintf("unknown animation type %q", e.Name)
}

// Is reports ErrUnknownAnimation identity for errors.Is.
func (e *UnknownAnimationError) Is(target error) bool {
	return target == ErrUnknownAnimation
}
