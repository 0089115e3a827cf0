package animate

import (
	"sync"

	"github.com/dshills/scrollstorm/internal/dom"
)

// Detector is the primary visibility capability, scoped to the scroll
// container rather than the window viewport. A registered callback fires at
// most once; the engine unobserves on activation regardless.
type Detector interface {
	Observe(el dom.Element, fn func())
	Unobserve(el dom.Element)
}

// RangeDetector is a geometry-backed Detector for containers whose scroll
// state is readable. It has no event source of its own: Pump must be called
// on scroll samples to evaluate observed elements.
//
// Trigger margins are tuned per viewport size: small viewports fire closer
// to the edge so content is not held back on short screens.
type RangeDetector struct {
	mu        sync.Mutex
	container dom.Container
	observed  map[dom.Element]func()

	smallViewport float64
	smallMargin   float64
	largeMargin   float64
}

// RangeDetectorOption configures a RangeDetector.
type RangeDetectorOption func(*RangeDetector)

// WithMargins sets the trigger margins for small and large viewports, and
// the height below which a viewport counts as small.
func WithMargins(smallViewport, smallMargin, largeMargin float64) RangeDetectorOption {
	return func(d *RangeDetector) {
		d.smallViewport = smallViewport
		d.smallMargin = smallMargin
		d.largeMargin = largeMargin
	}
}

// NewRangeDetector creates a detector over the given container.
func NewRangeDetector(container dom.Container, opts ...RangeDetectorOption) *RangeDetector {
	d := &RangeDetector{
		container:     container,
		observed:      make(map[dom.Element]func()),
		smallViewport: 600,
		smallMargin:   40,
		largeMargin:   120,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Observe implements Detector.
func (d *RangeDetector) Observe(el dom.Element, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observed[el] = fn
}

// Unobserve implements Detector.
func (d *RangeDetector) Unobserve(el dom.Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.observed, el)
}

// Observing returns the number of elements under observation.
func (d *RangeDetector) Observing() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.observed)
}

// Pump evaluates every observed element against the container's visible
// range and fires (then drops) the callbacks of those that intersect it.
func (d *RangeDetector) Pump() {
	m := d.container.Metrics()
	margin := d.largeMargin
	if m.Height < d.smallViewport {
		margin = d.smallMargin
	}

	d.mu.Lock()
	var fire []func()
	for el, fn := range d.observed {
		rect := el.Rect()
		if rect.IntersectsRange(0, m.Height-margin) {
			fire = append(fire, fn)
			delete(d.observed, el)
		}
	}
	d.mu.Unlock()

	for _, fn := range fire {
		fn()
	}
}
