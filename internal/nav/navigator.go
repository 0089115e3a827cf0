package nav

import (
	"context"
	"strings"
	"sync"

	"github.com/dshills/scrollstorm/internal/dom"
	"github.com/dshills/scrollstorm/internal/event"
)

// History updates the location hash after a successful anchor navigation.
// Implementations must not trigger a reload or a second scroll.
type History interface {
	SetHash(hash string)
}

// NoopHistory discards hash updates.
type NoopHistory struct{}

// SetHash implements History.
func (NoopHistory) SetHash(string) {}

// MenuCloser is the capability exposed by the external mobile-menu
// component. The navigator only ever closes the menu, never opens it.
type MenuCloser interface {
	Close()
}

// Navigator handles "#id" anchor navigation inside the scroll container and
// coordinates link-click-triggered menu closing with the external menu
// component.
type Navigator struct {
	mu        sync.Mutex
	container dom.Container
	lookup    func(id string) (dom.Element, bool)
	history   History
	closer    MenuCloser

	headerHeight float64
	menuOpen     bool
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithHistory sets the hash updater.
func WithHistory(h History) NavigatorOption {
	return func(n *Navigator) { n.history = h }
}

// WithMenuCloser sets the external menu capability.
func WithMenuCloser(c MenuCloser) NavigatorOption {
	return func(n *Navigator) { n.closer = c }
}

// WithScrollOffset sets the header offset applied when scrolling to a
// section, so the target lands below the fixed header.
func WithScrollOffset(h float64) NavigatorOption {
	return func(n *Navigator) { n.headerHeight = h }
}

// NewNavigator creates a navigator. lookup resolves a section id to its
// element, typically Page.Node.
func NewNavigator(container dom.Container, lookup func(id string) (dom.Element, bool), opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		container:    container,
		lookup:       lookup,
		history:      NoopHistory{},
		headerHeight: DefaultHeaderHeight,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Bind subscribes the navigator to the external menu component's topics so
// it can track open state.
func (n *Navigator) Bind(bus *event.Bus) error {
	if _, err := bus.SubscribeFunc(event.TopicMenuOpened, func(context.Context, any) error {
		n.setMenuOpen(true)
		return nil
	}, event.WithName("navigator.menuOpened")); err != nil {
		return err
	}
	_, err := bus.SubscribeFunc(event.TopicMenuClosed, func(context.Context, any) error {
		n.setMenuOpen(false)
		return nil
	}, event.WithName("navigator.menuClosed"))
	return err
}

func (n *Navigator) setMenuOpen(open bool) {
	n.mu.Lock()
	n.menuOpen = open
	n.mu.Unlock()
}

// MenuOpen reports the tracked state of the external menu.
func (n *Navigator) MenuOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.menuOpen
}

// Navigate scrolls the container to the section addressed by an "#id" href,
// updates the hash, and closes the mobile menu if it is open. A missing
// target skips navigation and returns a *MissingTargetError for the caller
// to surface as a warning.
func (n *Navigator) Navigate(href string) error {
	if !strings.HasPrefix(href, "#") || len(href) < 2 {
		return ErrInvalidHref
	}
	id := strings.TrimPrefix(href, "#")

	el, ok := n.lookup(id)
	if !ok {
		return &MissingTargetError{Href: href, ID: id}
	}

	// Rect is viewport-relative; recover the document offset before scrolling.
	docTop := el.Rect().Top + n.container.Metrics().ScrollTop
	top := docTop - n.headerHeight
	if top < 0 {
		top = 0
	}
	n.container.ScrollTo(top)

	n.history.SetHash(href)

	n.mu.Lock()
	open, closer := n.menuOpen, n.closer
	n.mu.Unlock()
	if open && closer != nil {
		closer.Close()
	}

	return nil
}
