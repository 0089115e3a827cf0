package animate

import "time"

// LibraryOptions are the parameters handed to the external animation
// library's initializer.
type LibraryOptions struct {
	Duration        time.Duration
	Offset          float64
	Easing          string
	Once            bool
	Mirror          bool
	AnchorPlacement string
}

// Library is the adapter capability for the external scroll-animation
// library. Absence of the capability must not be fatal; the engine wraps a
// nil library with NoopLibrary.
type Library interface {
	Init(opts LibraryOptions) error
	Refresh()
}

// NoopLibrary satisfies Library when no external library is present.
type NoopLibrary struct{}

// Init implements Library.
func (NoopLibrary) Init(LibraryOptions) error { return nil }

// Refresh implements Library.
func (NoopLibrary) Refresh() {}

// deviceClass buckets viewport widths at the mobile/desktop breakpoint.
type deviceClass int

const (
	classUnknown deviceClass = iota
	classMobile
	classDesktop
)

func (c deviceClass) String() string {
	switch c {
	case classMobile:
		return "mobile"
	case classDesktop:
		return "desktop"
	default:
		return "unknown"
	}
}

func classify(width, breakpoint float64) deviceClass {
	if width < breakpoint {
		return classMobile
	}
	return classDesktop
}

// DefaultDesktopOptions are the library parameters for desktop-class
// viewports.
func DefaultDesktopOptions() LibraryOptions {
	return LibraryOptions{
		Duration:        800 * time.Millisecond,
		Offset:          120,
		Easing:          "ease-out",
		Once:            true,
		AnchorPlacement: "top-bottom",
	}
}

// DefaultMobileOptions are the library parameters for mobile-class
// viewports: shorter travel, earlier trigger.
func DefaultMobileOptions() LibraryOptions {
	return LibraryOptions{
		Duration:        600 * time.Millisecond,
		Offset:          60,
		Easing:          "ease-out",
		Once:            true,
		AnchorPlacement: "top-bottom",
	}
}
