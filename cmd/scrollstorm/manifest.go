package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/dshills/scrollstorm/internal/app"
	"github.com/dshills/scrollstorm/internal/dom"
)

// Manifest describes a page: its sections, navigation targets, and the
// elements that animate on entry.
type Manifest struct {
	Title        string
	Width        float64
	Height       float64
	HeaderHeight float64
	Sections     []ManifestSection
	Elements     []ManifestElement
	Scripts      []string
}

// ManifestSection is one navigable section of the page.
type ManifestSection struct {
	ID     string
	Label  string
	Top    float64
	Height float64
	// Group lists extra regions that keep this section's link active.
	Group []manifestRegion
}

type manifestRegion struct {
	Top    float64
	Height float64
}

// ManifestElement is one animated element.
type ManifestElement struct {
	ID        string
	Top       float64
	Height    float64
	Animation string
}

// ErrBadManifest is matched by every manifest parsing failure.
var ErrBadManifest = errors.New("invalid page manifest")

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes the JSON page description.
func ParseManifest(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrBadManifest)
	}
	root := gjson.ParseBytes(data)

	m := &Manifest{
		Title:        root.Get("title").String(),
		Width:        root.Get("viewport.width").Float(),
		Height:       root.Get("viewport.height").Float(),
		HeaderHeight: root.Get("header_height").Float(),
	}
	if m.Width <= 0 {
		m.Width = 1024
	}
	if m.Height <= 0 {
		m.Height = 768
	}

	var parseErr error
	root.Get("sections").ForEach(func(_, s gjson.Result) bool {
		sec := ManifestSection{
			ID:     s.Get("id").String(),
			Label:  s.Get("label").String(),
			Top:    s.Get("top").Float(),
			Height: s.Get("height").Float(),
		}
		if sec.ID == "" {
			parseErr = fmt.Errorf("%w: section without id", ErrBadManifest)
			return false
		}
		if sec.Height <= 0 {
			parseErr = fmt.Errorf("%w: section %q needs a positive height", ErrBadManifest, sec.ID)
			return false
		}
		if sec.Label == "" {
			sec.Label = sec.ID
		}
		s.Get("group").ForEach(func(_, g gjson.Result) bool {
			sec.Group = append(sec.Group, manifestRegion{
				Top:    g.Get("top").Float(),
				Height: g.Get("height").Float(),
			})
			return true
		})
		m.Sections = append(m.Sections, sec)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	root.Get("elements").ForEach(func(_, e gjson.Result) bool {
		el := ManifestElement{
			ID:        e.Get("id").String(),
			Top:       e.Get("top").Float(),
			Height:    e.Get("height").Float(),
			Animation: e.Get("animation").String(),
		}
		if el.ID == "" {
			parseErr = fmt.Errorf("%w: element without id", ErrBadManifest)
			return false
		}
		if el.Animation == "" {
			el.Animation = "fade-up"
		}
		m.Elements = append(m.Elements, el)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	root.Get("scripts").ForEach(func(_, s gjson.Result) bool {
		m.Scripts = append(m.Scripts, s.String())
		return true
	})

	if len(m.Sections) == 0 {
		return nil, fmt.Errorf("%w: no sections", ErrBadManifest)
	}
	return m, nil
}

// Populate builds the page nodes and registers them with the app. Scripts
// run first so they can define animations the elements reference. Group
// regions and animated elements are marked with the data-nav-group and
// data-animation attributes and picked up by a single scan pass.
func (m *Manifest) Populate(a *app.App) error {
	for _, path := range m.Scripts {
		if err := a.LoadScript(path); err != nil {
			return err
		}
	}

	page := a.Page()
	for _, sec := range m.Sections {
		link := page.AddNode("nav-"+sec.ID, 0, 0, nil)
		section := page.AddNode(sec.ID, sec.Top, sec.Height, nil)
		if err := a.Resolver().AddTarget(sec.ID, link, section); err != nil {
			return fmt.Errorf("section %q: %w", sec.ID, err)
		}
		for i, g := range sec.Group {
			page.AddNode(fmt.Sprintf("%s-group-%d", sec.ID, i), g.Top, g.Height,
				map[string]string{dom.AttrNavGroup: sec.ID})
		}
	}

	for _, el := range m.Elements {
		page.AddNode(el.ID, el.Top, el.Height,
			map[string]string{dom.AttrAnimation: el.Animation})
	}

	return a.TrackMarked()
}

// Section returns the manifest section with the given id.
func (m *Manifest) Section(id string) (ManifestSection, bool) {
	for _, sec := range m.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return ManifestSection{}, false
}
