package animate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dshills/scrollstorm/internal/dom"
	"github.com/dshills/scrollstorm/internal/event"
)

// State is the lifecycle state of a tracked element.
type State int

const (
	// StatePending means the element holds its initial hidden style and is
	// waiting for a visibility signal.
	StatePending State = iota
	// StateAnimated means the element has been revealed. Animated is
	// terminal until Reset.
	StateAnimated
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAnimated:
		return "animated"
	default:
		return "unknown"
	}
}

// Animated is the payload published on event.TopicElementAnimated.
type Animated struct {
	ID        string
	Animation string
}

// DefaultBreakpoint separates mobile from desktop library profiles.
const DefaultBreakpoint = 768.0

// Settle sweep defaults: after load, late layout shifts can leave visible
// elements unrevealed with no further scroll signal.
const (
	DefaultSweepTick   = 500 * time.Millisecond
	DefaultSweepWindow = 10 * time.Second
)

type tracked struct {
	el    dom.Element
	def   Definition
	name  string
	state State
}

// Engine coordinates entrance animations for elements in a scroll container.
// Three activation paths converge on the same transition: a Detector
// callback, a periodic sweep after Start, and explicit Check calls. All
// three are idempotent per element.
type Engine struct {
	mu        sync.Mutex
	defs      *Registry
	container dom.Container
	detector  Detector
	library   Library
	bus       *event.Bus
	clk       clock.Clock

	tracked map[dom.Element]*tracked
	started bool
	class   deviceClass

	breakpoint  float64
	desktop     LibraryOptions
	mobile      LibraryOptions
	sweepTick   time.Duration
	sweepWindow time.Duration

	sweepTimer *clock.Timer
	sweepUntil time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithDetector supplies the visibility capability. A nil detector is the
// degraded path: elements reveal immediately on Track.
func WithDetector(d Detector) EngineOption {
	return func(e *Engine) { e.detector = d }
}

// WithLibrary supplies the third-party animation adapter.
func WithLibrary(l Library) EngineOption {
	return func(e *Engine) { e.library = l }
}

// WithEngineBus sets the bus on which activation events are published.
func WithEngineBus(bus *event.Bus) EngineOption {
	return func(e *Engine) { e.bus = bus }
}

// WithEngineClock injects the clock used for the settle sweep.
func WithEngineClock(clk clock.Clock) EngineOption {
	return func(e *Engine) { e.clk = clk }
}

// WithBreakpoint overrides the mobile/desktop boundary width.
func WithBreakpoint(w float64) EngineOption {
	return func(e *Engine) { e.breakpoint = w }
}

// WithProfiles overrides the library options applied per device class.
func WithProfiles(desktop, mobile LibraryOptions) EngineOption {
	return func(e *Engine) {
		e.desktop = desktop
		e.mobile = mobile
	}
}

// WithSweep overrides the settle sweep cadence and window.
func WithSweep(tick, window time.Duration) EngineOption {
	return func(e *Engine) {
		e.sweepTick = tick
		e.sweepWindow = window
	}
}

// NewEngine creates an animation engine over the given container and
// definition registry.
func NewEngine(container dom.Container, defs *Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		defs:        defs,
		container:   container,
		tracked:     make(map[dom.Element]*tracked),
		breakpoint:  DefaultBreakpoint,
		desktop:     DefaultDesktopOptions(),
		mobile:      DefaultMobileOptions(),
		sweepTick:   DefaultSweepTick,
		sweepWindow: DefaultSweepWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.library == nil {
		e.library = NoopLibrary{}
	}
	if e.clk == nil {
		e.clk = clock.New()
	}
	return e
}

// Track registers an element under the named animation and applies its
// hidden initial style plus the transition, before any reveal can occur.
// Without a detector the element reveals immediately.
func (e *Engine) Track(el dom.Element, animation string) error {
	def, ok := e.defs.Get(animation)
	if !ok {
		return &UnknownAnimationError{Name: animation}
	}

	e.mu.Lock()
	if _, dup := e.tracked[el]; dup {
		e.mu.Unlock()
		return nil
	}
	t := &tracked{el: el, def: def, name: animation, state: StatePending}
	e.tracked[el] = t

	el.ApplyStyle(def.Initial)
	el.ApplyStyle(dom.Style{"transition": def.Transition})
	e.mu.Unlock()

	if e.detector == nil {
		e.activate(t)
		return nil
	}
	e.detector.Observe(el, func() { e.activate(t) })
	return nil
}

// activate transitions a tracked element from pending to animated. It is
// safe to call from any path any number of times.
func (e *Engine) activate(t *tracked) {
	e.mu.Lock()
	if t.state != StatePending {
		e.mu.Unlock()
		return
	}
	t.state = StateAnimated

	t.el.ApplyStyle(t.def.Final)
	t.el.AddClass("animate-in")
	t.el.AddClass("aos-animate")
	e.mu.Unlock()

	if e.detector != nil {
		e.detector.Unobserve(t.el)
	}
	if e.bus != nil {
		_ = e.bus.Publish(context.Background(), event.TopicElementAnimated, Animated{
			ID:        t.el.ID(),
			Animation: t.name,
		})
	}
}

// Check activates every pending element currently inside the container's
// visible range. It covers elements the detector missed, such as those
// already on screen before observation began.
func (e *Engine) Check() {
	m := e.container.Metrics()

	e.mu.Lock()
	var visible []*tracked
	for _, t := range e.tracked {
		if t.state != StatePending {
			continue
		}
		if t.el.Rect().IntersectsRange(0, m.Height) {
			visible = append(visible, t)
		}
	}
	e.mu.Unlock()

	for _, t := range visible {
		e.activate(t)
	}
}

// Start initializes the animation library for the current device class,
// observes tracked elements (or reveals them all when no detector is
// available), and begins the settle sweep.
func (e *Engine) Start() error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return nil
	}
	e.started = true

	m := e.container.Metrics()
	e.class = classify(m.Width, e.breakpoint)
	opts := e.desktop
	if e.class == classMobile {
		opts = e.mobile
	}
	e.mu.Unlock()

	if err := e.library.Init(opts); err != nil {
		return fmt.Errorf("library init: %w", err)
	}

	if e.detector == nil {
		e.mu.Lock()
		var pending []*tracked
		for _, t := range e.tracked {
			if t.state == StatePending {
				pending = append(pending, t)
			}
		}
		e.mu.Unlock()
		for _, t := range pending {
			e.activate(t)
		}
		return nil
	}

	e.Check()
	e.startSweep()
	return nil
}

// startSweep schedules repeated Check calls for the settle window. The
// timer chain re-arms itself until the deadline passes.
func (e *Engine) startSweep() {
	e.mu.Lock()
	e.sweepUntil = e.clk.Now().Add(e.sweepWindow)
	e.sweepTimer = e.clk.AfterFunc(e.sweepTick, e.sweepStep)
	e.mu.Unlock()
}

func (e *Engine) sweepStep() {
	e.Check()

	e.mu.Lock()
	if e.clk.Now().Before(e.sweepUntil) {
		e.sweepTimer = e.clk.AfterFunc(e.sweepTick, e.sweepStep)
	} else {
		e.sweepTimer = nil
	}
	e.mu.Unlock()
}

// Stop cancels the settle sweep. Tracked elements keep their state.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.sweepTimer != nil {
		e.sweepTimer.Stop()
		e.sweepTimer = nil
	}
	e.started = false
	e.mu.Unlock()
}

// HandleResize re-evaluates the device class. Crossing the breakpoint
// re-initializes the library with the profile for the new class; staying
// on the same side refreshes cached positions. Both paths run a Check so
// newly visible elements reveal without waiting for a scroll.
func (e *Engine) HandleResize(size dom.ViewportSize) error {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return nil
	}
	next := classify(size.Width, e.breakpoint)
	crossed := next != e.class
	e.class = next
	opts := e.desktop
	if next == classMobile {
		opts = e.mobile
	}
	e.mu.Unlock()

	if crossed {
		if err := e.library.Init(opts); err != nil {
			return fmt.Errorf("library init: %w", err)
		}
	} else {
		e.library.Refresh()
	}
	e.Check()
	return nil
}

// Reset returns an element to pending: the initial hidden style is
// reapplied, marker classes removed, and observation resumes.
func (e *Engine) Reset(el dom.Element) error {
	e.mu.Lock()
	t, ok := e.tracked[el]
	if !ok {
		e.mu.Unlock()
		return ErrUntracked
	}
	t.state = StatePending
	el.ApplyStyle(t.def.Initial)
	el.RemoveClass("animate-in")
	el.RemoveClass("aos-animate")
	e.mu.Unlock()

	if e.detector != nil {
		e.detector.Observe(el, func() { e.activate(t) })
	}
	return nil
}

// State reports the lifecycle state of a tracked element.
func (e *Engine) State(el dom.Element) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.tracked[el]
	if !ok {
		return StatePending, ErrUntracked
	}
	return t.state, nil
}

// Tracked returns the number of elements under management.
func (e *Engine) Tracked() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tracked)
}
