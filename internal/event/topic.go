package event

// Topic identifies a named event stream on the bus.
type Topic string

// Well-known topics published and consumed by the core components.
const (
	// TopicScroll carries dom.ScrollSample payloads from the scroll container.
	TopicScroll Topic = "scroll"

	// TopicResize carries dom.ViewportSize payloads when the container resizes.
	TopicResize Topic = "resize"

	// TopicTouchStart is published when a touch interaction begins.
	TopicTouchStart Topic = "touchstart"

	// TopicTouchEnd is published when a touch interaction ends.
	TopicTouchEnd Topic = "touchend"

	// TopicOrientationChange is published when the device orientation flips.
	TopicOrientationChange Topic = "orientationchange"

	// TopicLoad is published once when the page finishes loading.
	TopicLoad Topic = "load"

	// TopicElementAnimated is published by the animation engine each time an
	// element transitions from pending to animated.
	TopicElementAnimated Topic = "elementAnimated"

	// TopicMenuOpened is consumed from the external mobile-menu component.
	TopicMenuOpened Topic = "menuOpened"

	// TopicMenuClosed is consumed from the external mobile-menu component.
	TopicMenuClosed Topic = "menuClosed"

	// TopicActiveChanged is published by the resolver when the active
	// navigation target changes.
	TopicActiveChanged Topic = "nav.activeChanged"

	// TopicConfigChanged is published when the configuration file is reloaded.
	TopicConfigChanged Topic = "config.changed"
)

// String returns the topic as a plain string.
func (t Topic) String() string { return string(t) }

// Valid reports whether the topic is usable for subscribe/publish.
func (t Topic) Valid() bool { return t != "" }
