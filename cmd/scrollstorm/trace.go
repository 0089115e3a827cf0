package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dshills/scrollstorm/internal/animate"
	"github.com/dshills/scrollstorm/internal/app"
	"github.com/dshills/scrollstorm/internal/event"
	"github.com/dshills/scrollstorm/internal/nav"
)

// runTrace drives a scripted scroll through the whole document and prints
// every state transition. It is the fallback when no terminal is attached
// and doubles as a smoke test for a manifest.
func runTrace(ctx context.Context, a *app.App, m *Manifest, out io.Writer) error {
	fmt.Fprintf(out, "scrollstorm trace: %s (%d sections, %d elements)\n",
		m.Title, len(m.Sections), len(m.Elements))

	if _, err := a.Bus().SubscribeFunc(event.TopicActiveChanged, func(_ context.Context, payload any) error {
		if ch, ok := payload.(nav.ActiveChange); ok {
			fmt.Fprintf(out, "  active: %s -> %s\n", orNone(ch.Previous), ch.ID)
		}
		return nil
	}, event.WithName("trace.active")); err != nil {
		return err
	}
	if _, err := a.Bus().SubscribeFunc(event.TopicElementAnimated, func(_ context.Context, payload any) error {
		if an, ok := payload.(animate.Animated); ok {
			fmt.Fprintf(out, "  animated: %s (%s)\n", an.ID, an.Animation)
		}
		return nil
	}, event.WithName("trace.animated")); err != nil {
		return err
	}

	if err := a.Start(ctx); err != nil {
		return err
	}

	page := a.Page()
	step := page.Metrics().Height / 2
	// Space the steps a little wider than the throttle window so none of
	// them are coalesced away.
	pace := 2 * a.Config().ScrollThrottle()
	for {
		before := page.Metrics().ScrollTop
		page.ScrollBy(step)
		if page.Metrics().ScrollTop == before {
			break
		}
		time.Sleep(pace)
		fmt.Fprintf(out, "scroll to %.0f\n", page.Metrics().ScrollTop)
		if err := a.Bus().Publish(ctx, event.TopicScroll, page.Sample("scroll")); err != nil {
			fmt.Fprintf(out, "  publish error: %v\n", err)
		}
	}

	fmt.Fprintf(out, "done: active=%s\n", a.Resolver().ActiveID())
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
