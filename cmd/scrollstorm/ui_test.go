package main

import (
	"io"
	"strings"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrollstorm/internal/app"
	"github.com/dshills/scrollstorm/internal/dom"
)

// rowText reads back the first n cells of a simulation screen row.
func rowText(t *testing.T, s tcell.SimulationScreen, row, n int) string {
	t.Helper()
	cells, width, height := s.GetContents()
	if row >= height {
		t.Fatalf("row %d out of range, screen is %d rows", row, height)
	}
	var b strings.Builder
	for x := 0; x < n && x < width; x++ {
		b.WriteString(string(cells[row*width+x].Runes))
	}
	return b.String()
}

func TestDrawRendersMultibyteLabels(t *testing.T) {
	m, err := ParseManifest([]byte(`{
		"viewport": {"width": 1024, "height": 768},
		"sections": [{"id": "cafe", "label": "Café", "top": 0, "height": 800}]
	}`))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}

	a, err := app.New(app.Options{
		Page:   dom.NewPage(m.Width, m.Height),
		Logger: app.NewLogger(app.LoggerConfig{Level: app.LogLevelError, Output: io.Discard}),
		Clock:  clock.NewMock(),
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	defer a.Shutdown()
	if err := m.Populate(a); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 10)

	u := &ui{screen: screen, app: a, manifest: m, scale: pixelsPerRow}
	u.draw()

	if got := rowText(t, screen, 0, 8); got != " 1:Café " {
		t.Errorf("nav bar = %q, want %q", got, " 1:Café ")
	}
	if got := rowText(t, screen, 1, 5); got != " Café" {
		t.Errorf("section band = %q, want %q", got, " Café")
	}
}
