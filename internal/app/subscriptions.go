package app

import (
	"context"
	"fmt"

	"github.com/dshills/scrollstorm/internal/config"
	"github.com/dshills/scrollstorm/internal/dom"
	"github.com/dshills/scrollstorm/internal/event"
)

// Limiter cache keys for the page signal handlers.
const (
	limiterScroll      = "app.scroll"
	limiterResize      = "app.resize"
	limiterTouch       = "app.touch"
	limiterOrientation = "app.orientation"
)

// setup registers the signal subscriptions. Handlers run synchronously on
// the publisher; the rate limiters decide which samples reach the
// components.
func (a *App) setup() error {
	throttledScroll := a.limiters.Throttle(limiterScroll, a.cfg.ScrollThrottle(), func(payload any) {
		if sample, ok := payload.(dom.ScrollSample); ok {
			a.pump(sample)
		}
	})

	debouncedResize := a.limiters.Debounce(limiterResize, a.cfg.ResizeDebounce(), func(payload any) {
		size, ok := payload.(dom.ViewportSize)
		if !ok {
			return
		}
		if err := a.engine.HandleResize(size); err != nil {
			a.log.WithComponent("animate").Error("resize: %v", err)
		}
		a.pump(a.page.Sample("resize"))
	})

	// Touch scrolling on overflow containers can end without a final scroll
	// event; settle the state once the gesture is over.
	settle := func(target string) func(any) {
		return func(any) {
			a.pump(a.page.Sample(target))
		}
	}
	debouncedTouch := a.limiters.Debounce(limiterTouch, a.cfg.TouchDebounce(), settle("touchend"))
	debouncedOrientation := a.limiters.Debounce(limiterOrientation, a.cfg.TouchDebounce(), settle("orientationchange"))

	wiring := []struct {
		topic event.Topic
		name  string
		fn    event.HandlerFunc
	}{
		{event.TopicScroll, "scroll", func(_ context.Context, payload any) error {
			throttledScroll(payload)
			return nil
		}},
		{event.TopicResize, "resize", func(_ context.Context, payload any) error {
			debouncedResize(payload)
			return nil
		}},
		{event.TopicTouchEnd, "touchend", func(_ context.Context, payload any) error {
			debouncedTouch(payload)
			return nil
		}},
		{event.TopicOrientationChange, "orientation", func(_ context.Context, payload any) error {
			debouncedOrientation(payload)
			return nil
		}},
		{event.TopicLoad, "load", func(_ context.Context, _ any) error {
			return a.handleLoad()
		}},
		{event.TopicConfigChanged, "config", func(_ context.Context, payload any) error {
			changed, ok := payload.(config.Changed)
			if !ok {
				return fmt.Errorf("unexpected config payload %T", payload)
			}
			a.applyConfig(changed.Config)
			return nil
		}},
		{event.TopicActiveChanged, "active-log", func(_ context.Context, payload any) error {
			a.log.WithComponent("nav").Debug("active section: %+v", payload)
			return nil
		}},
	}

	for _, w := range wiring {
		sub, err := a.bus.SubscribeFunc(w.topic, w.fn, event.WithName("app."+w.name))
		if err != nil {
			return &InitError{Component: w.name, Err: err}
		}
		a.mu.Lock()
		a.subs = append(a.subs, sub)
		a.mu.Unlock()
	}
	return nil
}

// handleLoad runs the startup sequence: resolver picks an initial section,
// the engine initializes its library and begins the settle sweep.
func (a *App) handleLoad() error {
	a.resolver.Init()
	if err := a.engine.Start(); err != nil {
		return err
	}
	a.pump(a.page.Sample("load"))
	return nil
}
