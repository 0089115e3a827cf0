package nav

import (
	"context"
	"sync"

	"github.com/dshills/scrollstorm/internal/dom"
	"github.com/dshills/scrollstorm/internal/event"
)

// ActiveClass is the CSS state class toggled on navigation links.
const ActiveClass = "active"

// Target is one navigation entry: the link element that receives the active
// class, keyed by the id of the section it points at.
type Target struct {
	ID   string
	Link dom.Element
}

// ActiveChange is the payload published on event.TopicActiveChanged.
type ActiveChange struct {
	ID       string
	Previous string
}

// candidate is one scorable section bound to its target.
type candidate struct {
	section dom.Element
	target  int // index into targets
}

// Resolver owns the "which section is in focus" state machine. Exactly one
// target is active at a time; transitions happen only on a scroll sample.
type Resolver struct {
	mu        sync.Mutex
	container dom.Container
	bus       *event.Bus

	headerHeight float64
	zoneRatio    float64
	topThreshold float64
	activeClass  string

	targets   []*Target
	primary   []candidate // document order
	grouped   []candidate // appended after all primaries
	groupSize []int       // per target: member count of its NavGroup

	active int // index into targets; -1 before Init
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHeaderHeight sets the top of the active zone.
func WithHeaderHeight(h float64) ResolverOption {
	return func(r *Resolver) { r.headerHeight = h }
}

// WithZoneRatio sets the bottom of the active zone as a fraction of the
// container height.
func WithZoneRatio(ratio float64) ResolverOption {
	return func(r *Resolver) { r.zoneRatio = ratio }
}

// WithTopThreshold sets the scrollTop at or below which the first target is
// forced active.
func WithTopThreshold(t float64) ResolverOption {
	return func(r *Resolver) { r.topThreshold = t }
}

// WithBus makes the resolver publish ActiveChange payloads on
// event.TopicActiveChanged.
func WithBus(bus *event.Bus) ResolverOption {
	return func(r *Resolver) { r.bus = bus }
}

// WithActiveClass overrides the state class toggled on links.
func WithActiveClass(class string) ResolverOption {
	return func(r *Resolver) { r.activeClass = class }
}

// NewResolver creates a resolver for the given container.
func NewResolver(container dom.Container, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		container:    container,
		headerHeight: DefaultHeaderHeight,
		zoneRatio:    DefaultZoneRatio,
		topThreshold: DefaultTopThreshold,
		activeClass:  ActiveClass,
		active:       -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddTarget registers a navigation entry with its primary section. Call in
// document order: the first target registered is the initial active state.
// The primary section starts a new single-member NavGroup for the target.
func (r *Resolver) AddTarget(id string, link, section dom.Element) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.targets {
		if t.ID == id {
			return ErrDuplicateTarget
		}
	}

	r.targets = append(r.targets, &Target{ID: id, Link: link})
	r.groupSize = append(r.groupSize, 1)
	r.primary = append(r.primary, candidate{section: section, target: len(r.targets) - 1})
	return nil
}

// AddGroupSection adds a section without its own nav entry to an existing
// target's NavGroup. Grouped candidates are evaluated after all primary ones.
func (r *Resolver) AddGroupSection(targetID string, section dom.Element) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.targets {
		if t.ID == targetID {
			r.grouped = append(r.grouped, candidate{section: section, target: i})
			r.groupSize[i]++
			return nil
		}
	}
	return ErrUnknownTarget
}

// Init applies the initial state: the first target in document order is
// active. A resolver with no targets is a permanent no-op.
func (r *Resolver) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.targets) == 0 {
		return
	}
	r.setActiveLocked(0)
}

// Resolve consumes one rate-limited scroll sample and switches the active
// target when the geometry says a different section is in focus. Repeated
// resolution with unchanged geometry never mutates the DOM.
func (r *Resolver) Resolve(sample dom.ScrollSample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.targets) == 0 {
		return
	}

	// Anchor the top-of-page case regardless of geometry noise.
	if sample.ScrollTop <= r.topThreshold {
		r.setActiveLocked(0)
		return
	}

	env := Env{
		ContainerHeight: sample.ContainerHeight,
		HeaderHeight:    r.headerHeight,
		ZoneRatio:       r.zoneRatio,
	}

	best := -1
	bestScore := 0.0
	score := func(c candidate) {
		rect := c.section.Rect()
		s := Score(Geometry{
			Top:     rect.Top,
			Bottom:  rect.Bottom,
			Grouped: r.groupSize[c.target] > 1,
		}, env)
		// Strict comparison keeps the earliest candidate on ties.
		if best < 0 || s > bestScore {
			best = c.target
			bestScore = s
		}
	}
	for _, c := range r.primary {
		score(c)
	}
	for _, c := range r.grouped {
		score(c)
	}

	if best >= 0 {
		r.setActiveLocked(best)
	}
}

// setActiveLocked performs the single class-mutation pass. A transition to
// the already-active target is a no-op.
func (r *Resolver) setActiveLocked(idx int) {
	if idx == r.active {
		return
	}

	previous := ""
	if r.active >= 0 {
		previous = r.targets[r.active].ID
	}

	for _, t := range r.targets {
		t.Link.RemoveClass(r.activeClass)
	}
	r.targets[idx].Link.AddClass(r.activeClass)
	r.active = idx

	if r.bus != nil {
		_ = r.bus.Publish(context.Background(), event.TopicActiveChanged, ActiveChange{
			ID:       r.targets[idx].ID,
			Previous: previous,
		})
	}
}

// ActiveID returns the id of the currently active target, or "" before Init.
func (r *Resolver) ActiveID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active < 0 {
		return ""
	}
	return r.targets[r.active].ID
}

// Targets returns the registered target ids in document order.
func (r *Resolver) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.targets))
	for i, t := range r.targets {
		out[i] = t.ID
	}
	return out
}
