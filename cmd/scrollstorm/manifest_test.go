package main

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/benbjohnson/clock"

	"github.com/dshills/scrollstorm/internal/app"
	"github.com/dshills/scrollstorm/internal/dom"
)

func TestLoadManifest(t *testing.T) {
	m, err := LoadManifest(filepath.Join("testdata", "page.json"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	if m.Title != "Studio" {
		t.Errorf("title = %q", m.Title)
	}
	if m.Width != 1024 || m.Height != 768 {
		t.Errorf("viewport = %vx%v", m.Width, m.Height)
	}
	if len(m.Sections) != 3 {
		t.Fatalf("sections = %d, want 3", len(m.Sections))
	}

	work, ok := m.Section("work")
	if !ok {
		t.Fatal("work section missing")
	}
	if work.Top != 700 || work.Height != 900 {
		t.Errorf("work geometry = %+v", work)
	}
	if len(work.Group) != 1 || work.Group[0].Top != 1600 {
		t.Errorf("work group = %+v", work.Group)
	}

	if len(m.Elements) != 4 {
		t.Fatalf("elements = %d, want 4", len(m.Elements))
	}
	if m.Elements[3].Animation != "zoom-in" {
		t.Errorf("signup animation = %q", m.Elements[3].Animation)
	}
}

func TestParseManifestRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{"sections": [`},
		{"no sections", `{"title": "x"}`},
		{"section without id", `{"sections": [{"top": 0, "height": 100}]}`},
		{"zero height section", `{"sections": [{"id": "a", "top": 0}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.data))
			if !errors.Is(err, ErrBadManifest) {
				t.Errorf("err = %v, want ErrBadManifest", err)
			}
		})
	}
}

func TestParseManifestDefaults(t *testing.T) {
	m, err := ParseManifest([]byte(`{"sections": [{"id": "a", "height": 500}], "elements": [{"id": "e", "top": 10, "height": 50}]}`))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if m.Width != 1024 || m.Height != 768 {
		t.Errorf("viewport defaults = %vx%v", m.Width, m.Height)
	}
	if m.Sections[0].Label != "a" {
		t.Errorf("label should default to id, got %q", m.Sections[0].Label)
	}
	if m.Elements[0].Animation != "fade-up" {
		t.Errorf("animation should default to fade-up, got %q", m.Elements[0].Animation)
	}
}

func TestPopulateAndTrace(t *testing.T) {
	m, err := LoadManifest(filepath.Join("testdata", "page.json"))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	a, err := app.New(app.Options{
		Page:   dom.NewPage(m.Width, m.Height),
		Logger: app.NewLogger(app.LoggerConfig{Level: app.LogLevelError, Output: io.Discard}),
		Clock:  clock.New(),
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	defer a.Shutdown()

	if err := m.Populate(a); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	if got := a.Resolver().Targets(); len(got) != 3 {
		t.Errorf("targets = %v", got)
	}
	if a.Engine().Tracked() != 4 {
		t.Errorf("tracked = %d, want 4", a.Engine().Tracked())
	}

	// Element and group registration flow through the node attributes.
	card, ok := a.Page().Node("card-2")
	if !ok {
		t.Fatal("card-2 node missing")
	}
	if got := card.Attr(dom.AttrAnimation); got != "fade-left" {
		t.Errorf("card-2 %s = %q, want fade-left", dom.AttrAnimation, got)
	}
	region, ok := a.Page().Node("work-group-0")
	if !ok {
		t.Fatal("work-group-0 node missing")
	}
	if got := region.Attr(dom.AttrNavGroup); got != "work" {
		t.Errorf("group region %s = %q, want work", dom.AttrNavGroup, got)
	}

	if err := runTrace(context.Background(), a, m, io.Discard); err != nil {
		t.Fatalf("runTrace: %v", err)
	}
	if got := a.Resolver().ActiveID(); got != "contact" {
		t.Errorf("active after full scroll = %q, want contact", got)
	}
}
