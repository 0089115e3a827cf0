package dom

// Element is one addressable node in the document.
type Element interface {
	// ID returns the element's id attribute, possibly empty.
	ID() string

	// Rect returns the bounding box relative to the container viewport.
	Rect() Rect

	// AddClass adds a CSS state class. Adding a present class is a no-op.
	AddClass(name string)

	// RemoveClass removes a CSS state class. Removing an absent class is a
	// no-op.
	RemoveClass(name string)

	// HasClass reports whether the class is present.
	HasClass(name string) bool

	// ApplyStyle merges the given properties into the element's inline style.
	ApplyStyle(s Style)

	// Attr returns the named attribute, or "" when absent.
	Attr(name string) string
}

// Container is the custom scrollable viewport that sections live in.
type Container interface {
	// Metrics returns the current scroll position and viewport dimensions.
	Metrics() Metrics

	// ScrollTo scrolls the container so the given document offset is at the
	// top of the viewport, clamped to the scrollable range.
	ScrollTo(top float64)
}

// Metrics is a point-in-time reading of a container.
type Metrics struct {
	ScrollTop  float64
	ScrollLeft float64
	Height     float64
	Width      float64
}

// ScrollSample is one rate-limited reading of the scroll state, produced per
// tick and consumed synchronously.
type ScrollSample struct {
	ScrollTop       float64
	ScrollLeft      float64
	ContainerHeight float64

	// Target names the signal source that originated the sample, such as
	// "scroll" or "resize".
	Target string
}

// ViewportSize is the payload of a resize signal.
type ViewportSize struct {
	Width  float64
	Height float64
}
