package dom

import "testing"

func TestNode_RectTracksScroll(t *testing.T) {
	p := NewPage(1024, 800)
	n := p.AddNode("about", 1000, 400, nil)

	r := n.Rect()
	if r.Top != 1000 || r.Bottom != 1400 {
		t.Fatalf("rect at scrollTop 0 = %+v, want top 1000 bottom 1400", r)
	}

	p.ScrollTo(900)
	r = n.Rect()
	if r.Top != 100 || r.Bottom != 500 {
		t.Errorf("rect at scrollTop 900 = %+v, want top 100 bottom 500", r)
	}
	if r.Height() != 400 {
		t.Errorf("Height() = %v, want 400", r.Height())
	}
}

func TestPage_ScrollClamping(t *testing.T) {
	p := NewPage(1024, 800)
	p.AddNode("a", 0, 1000, nil)
	p.AddNode("b", 1000, 1000, nil)

	p.ScrollTo(-50)
	if got := p.Metrics().ScrollTop; got != 0 {
		t.Errorf("ScrollTop = %v after negative scroll, want 0", got)
	}

	p.ScrollTo(99999)
	if got := p.Metrics().ScrollTop; got != 1200 {
		t.Errorf("ScrollTop = %v past the end, want clamp to 1200", got)
	}

	p.ScrollBy(-200)
	if got := p.Metrics().ScrollTop; got != 1000 {
		t.Errorf("ScrollTop = %v after ScrollBy(-200), want 1000", got)
	}
}

func TestNode_ClassOps(t *testing.T) {
	p := NewPage(100, 100)
	n := p.AddNode("x", 0, 10, nil)

	n.AddClass("active")
	if !n.HasClass("active") {
		t.Fatal("HasClass = false after AddClass")
	}
	before := n.Mutations()
	n.AddClass("active") // no-op
	if n.Mutations() != before {
		t.Error("adding a present class counted as a mutation")
	}

	n.RemoveClass("active")
	if n.HasClass("active") {
		t.Fatal("HasClass = true after RemoveClass")
	}
	before = n.Mutations()
	n.RemoveClass("active") // no-op
	if n.Mutations() != before {
		t.Error("removing an absent class counted as a mutation")
	}
}

func TestNode_StyleAndAttrs(t *testing.T) {
	p := NewPage(100, 100)
	n := p.AddNode("x", 0, 10, map[string]string{"data-animation": "fade-up"})

	if got := n.Attr("data-animation"); got != "fade-up" {
		t.Errorf("Attr = %q, want fade-up", got)
	}
	if got := n.Attr("missing"); got != "" {
		t.Errorf("missing Attr = %q, want empty", got)
	}

	n.ApplyStyle(Style{"opacity": "0", "transform": "translateY(30px)"})
	n.ApplyStyle(Style{"opacity": "1"})
	if got := n.StyleValue("opacity"); got != "1" {
		t.Errorf("opacity = %q after merge, want 1", got)
	}
	if got := n.StyleValue("transform"); got != "translateY(30px)" {
		t.Errorf("transform = %q, want preserved value", got)
	}
}

func TestPage_SampleAndResize(t *testing.T) {
	p := NewPage(1024, 800)
	p.AddNode("a", 0, 3000, nil)
	p.ScrollTo(500)

	s := p.Sample("scroll")
	if s.ScrollTop != 500 || s.ContainerHeight != 800 || s.Target != "scroll" {
		t.Errorf("Sample = %+v", s)
	}

	p.Resize(375, 667)
	if size := p.Size(); size.Width != 375 || size.Height != 667 {
		t.Errorf("Size = %+v after resize", size)
	}

	// Shrinking the document re-clamps the offset.
	p2 := NewPage(100, 100)
	p2.AddNode("only", 0, 150, nil)
	p2.ScrollTo(50)
	p2.Resize(100, 200)
	if got := p2.Metrics().ScrollTop; got != 0 {
		t.Errorf("ScrollTop = %v after viewport grew past content, want 0", got)
	}
}

func TestStyle_CloneMerge(t *testing.T) {
	base := Style{"opacity": "0"}
	merged := base.Merge(Style{"opacity": "1", "transform": "none"})

	if base["opacity"] != "0" {
		t.Error("Merge mutated the receiver")
	}
	if merged["opacity"] != "1" || merged["transform"] != "none" {
		t.Errorf("merged = %v", merged)
	}

	if Style(nil).Clone() != nil {
		t.Error("Clone of nil style should be nil")
	}
}
