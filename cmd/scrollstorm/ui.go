package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/scrollstorm/internal/animate"
	"github.com/dshills/scrollstorm/internal/app"
	"github.com/dshills/scrollstorm/internal/event"
)

// pixelsPerRow maps document pixels to terminal rows.
const pixelsPerRow = 40.0

// mobileDemoWidth is the width used when toggling below the breakpoint.
const mobileDemoWidth = 600.0

// sectionPalette assigns each section a stable hue.
var sectionPalette = []colorful.Color{
	{R: 0.36, G: 0.55, B: 0.85},
	{R: 0.85, G: 0.55, B: 0.36},
	{R: 0.45, G: 0.75, B: 0.45},
	{R: 0.75, G: 0.45, B: 0.70},
	{R: 0.80, G: 0.75, B: 0.40},
}

// ui renders the page state into a terminal and feeds key input back as
// page signals.
type ui struct {
	screen   tcell.Screen
	app      *app.App
	manifest *Manifest
	scale    float64
}

func newUI(a *app.App, m *Manifest) (*ui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &ui{
		screen:   screen,
		app:      a,
		manifest: m,
		scale:    pixelsPerRow,
	}, nil
}

// run drives the event loop until quit.
func (u *ui) run(ctx context.Context) error {
	defer u.screen.Fini()

	if err := u.app.Start(ctx); err != nil {
		return err
	}
	u.draw()

	for {
		ev := u.screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
			cols, rows := tev.Size()
			u.app.Page().Resize(float64(cols)*8, float64(rows)*u.scale)
			if err := u.app.Bus().Publish(ctx, event.TopicResize, u.app.Page().Size()); err != nil {
				u.app.Logger().Warn("resize publish: %v", err)
			}
		case *tcell.EventKey:
			if done := u.handleKey(ctx, tev); done {
				return nil
			}
		}
		u.draw()
	}
}

func (u *ui) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	page := u.app.Page()
	bus := u.app.Bus()

	scrollBy := func(delta float64) {
		page.ScrollBy(delta)
		if err := bus.Publish(ctx, event.TopicScroll, page.Sample("scroll")); err != nil {
			u.app.Logger().Warn("scroll publish: %v", err)
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		scrollBy(-u.scale)
	case tcell.KeyDown:
		scrollBy(u.scale)
	case tcell.KeyPgUp:
		scrollBy(-page.Metrics().Height)
	case tcell.KeyPgDn:
		scrollBy(page.Metrics().Height)
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return true
		case r == 'm':
			topic := event.TopicMenuOpened
			if u.app.Navigator().MenuOpen() {
				topic = event.TopicMenuClosed
			}
			if err := bus.Publish(ctx, topic, nil); err != nil {
				u.app.Logger().Warn("menu publish: %v", err)
			}
		case r == 'r':
			// Toggle the simulated width across the mobile breakpoint.
			width := mobileDemoWidth
			if page.Metrics().Width <= u.app.Config().Breakpoint {
				width = u.manifest.Width
			}
			page.Resize(width, page.Metrics().Height)
			if err := bus.Publish(ctx, event.TopicResize, page.Size()); err != nil {
				u.app.Logger().Warn("resize publish: %v", err)
			}
		case r >= '1' && r <= '9':
			idx := int(r - '1')
			if idx < len(u.manifest.Sections) {
				href := "#" + u.manifest.Sections[idx].ID
				if err := u.app.Navigator().Navigate(href); err != nil {
					u.app.Logger().Warn("navigate %s: %v", href, err)
				} else {
					scrollBy(0)
				}
			}
		}
	}
	return false
}

// draw paints the nav bar and the visible slice of the document.
func (u *ui) draw() {
	u.screen.Clear()
	cols, rows := u.screen.Size()
	metrics := u.app.Page().Metrics()
	active := u.app.Resolver().ActiveID()

	// Nav bar across the top row.
	x := 0
	for i, sec := range u.manifest.Sections {
		style := tcell.StyleDefault
		label := fmt.Sprintf(" %d:%s ", i+1, sec.Label)
		if sec.ID == active {
			style = style.Bold(true).Underline(true).Foreground(toTcell(paletteColor(i)))
		}
		x = drawText(u.screen, x, 0, cols, label, style)
	}
	status := fmt.Sprintf(" top=%.0f active=%s ", metrics.ScrollTop, active)
	if sx := cols - len(status); sx > x {
		drawText(u.screen, sx, 0, cols, status, tcell.StyleDefault.Dim(true))
	}

	// Document rows below.
	for row := 1; row < rows; row++ {
		docY := metrics.ScrollTop + float64(row-1)*u.scale
		idx, sec, inside := u.sectionAt(docY)
		if !inside {
			continue
		}
		base := paletteColor(idx)
		// Fade the band toward white as its animated elements settle.
		blend := base.BlendHcl(colorful.Color{R: 1, G: 1, B: 1}, 0.6*u.animatedFraction(sec))
		style := tcell.StyleDefault.Background(toTcell(blend)).Foreground(tcell.ColorBlack)

		for x := 0; x < cols; x++ {
			u.screen.SetContent(x, row, ' ', nil, style)
		}
		drawText(u.screen, 0, row, cols, fmt.Sprintf(" %s", sec.Label), style)
	}

	u.screen.Show()
}

// sectionAt finds the manifest section covering a document offset.
func (u *ui) sectionAt(docY float64) (int, ManifestSection, bool) {
	for i, sec := range u.manifest.Sections {
		if docY >= sec.Top && docY < sec.Top+sec.Height {
			return i, sec, true
		}
	}
	return 0, ManifestSection{}, false
}

// animatedFraction reports how many of a section's elements have settled.
func (u *ui) animatedFraction(sec ManifestSection) float64 {
	total, done := 0, 0
	for _, el := range u.manifest.Elements {
		if el.Top < sec.Top || el.Top >= sec.Top+sec.Height {
			continue
		}
		node, ok := u.app.Page().Node(el.ID)
		if !ok {
			continue
		}
		total++
		if st, err := u.app.Engine().State(node); err == nil && st == animate.StateAnimated {
			done++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(done) / float64(total)
}

func paletteColor(i int) colorful.Color {
	return sectionPalette[i%len(sectionPalette)]
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, r := range text {
		if x >= maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
