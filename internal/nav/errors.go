package nav

import (
	"errors"
	"fmt"
)

// Sentinel errors for navigation state.
var (
	// ErrMissingTarget is the sentinel matched by MissingTargetError.
	ErrMissingTarget = errors.New("navigation target not found")

	// ErrDuplicateTarget is returned when a nav target id is registered twice.
	ErrDuplicateTarget = errors.New("duplicate navigation target")

	// ErrUnknownTarget is returned when a group section references a target
	// that was never registered.
	ErrUnknownTarget = errors.New("unknown navigation target")

	// ErrInvalidHref is returned for hrefs that are not "#id" anchors.
	ErrInvalidHref = errors.New("invalid anchor href")
)

// MissingTargetError reports an anchor whose target id does not exist in the
// document. Navigation is skipped; the condition is surfaced as a warning,
// never as a fatal failure.
type MissingTargetError struct {
	Href string
	ID   string
}

// Error implements the error interface.
func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("anchor %q points at missing element id %q", e.Href, e.ID)
}

// Is allows errors.Is to match MissingTargetError with ErrMissingTarget.
func (e *MissingTargetError) Is(target error) bool { return target == ErrMissingTarget }
