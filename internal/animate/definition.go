package animate

import (
	"sort"
	"sync"

	"github.com/dshills/scrollstorm/internal/dom"
)

// Definition describes one entrance animation: the style an element waits
// in, the style it lands on, and the transition that carries it between the
// two.
type Definition struct {
	Initial    dom.Style
	Final      dom.Style
	Transition string
}

// Registry holds animation definitions keyed by type name. The registry is
// append-only: re-registering a name fails, and replacing one takes an
// explicit Override call.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates a registry seeded with the built-in definitions.
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]Definition)}
	for name, def := range builtins() {
		r.defs[name] = def
	}
	return r
}

// Register adds a new definition. Registering an existing name returns
// ErrDuplicateDefinition.
func (r *Registry) Register(name string, def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[name]; ok {
		return ErrDuplicateDefinition
	}
	r.defs[name] = def
	return nil
}

// Override replaces a definition, or adds it when absent.
func (r *Registry) Override(name string, def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[name] = def
}

// Get returns the definition for an animation-type name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered animation-type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.defs))
	for name := range r.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// builtins returns the stock entrance animations.
func builtins() map[string]Definition {
	const ease = "all 0.6s ease-out"
	return map[string]Definition{
		"fade-up": {
			Initial:    dom.Style{"opacity": "0", "transform": "translateY(30px)"},
			Final:      dom.Style{"opacity": "1", "transform": "none"},
			Transition: ease,
		},
		"fade-in": {
			Initial:    dom.Style{"opacity": "0"},
			Final:      dom.Style{"opacity": "1"},
			Transition: ease,
		},
		"fade-left": {
			Initial:    dom.Style{"opacity": "0", "transform": "translateX(-30px)"},
			Final:      dom.Style{"opacity": "1", "transform": "none"},
			Transition: ease,
		},
		"fade-right": {
			Initial:    dom.Style{"opacity": "0", "transform": "translateX(30px)"},
			Final:      dom.Style{"opacity": "1", "transform": "none"},
			Transition: ease,
		},
		"zoom-in": {
			Initial:    dom.Style{"opacity": "0", "transform": "scale(0.9)"},
			Final:      dom.Style{"opacity": "1", "transform": "none"},
			Transition: ease,
		},
	}
}
