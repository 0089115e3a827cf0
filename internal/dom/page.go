package dom

import "sync"

// Page is the in-memory Container implementation: a vertically scrollable
// document holding nodes at absolute offsets, viewed through a viewport.
type Page struct {
	mu         sync.Mutex
	scrollTop  float64
	scrollLeft float64
	width      float64
	height     float64
	nodes      []*Node
	byID       map[string]*Node
}

// NewPage creates a page with the given viewport dimensions.
func NewPage(width, height float64) *Page {
	return &Page{
		width:  width,
		height: height,
		byID:   make(map[string]*Node),
	}
}

// AddNode creates a node at an absolute document offset. Nodes are kept in
// insertion order, which callers treat as document order. An empty id is
// allowed; such nodes are not addressable through Node().
func (p *Page) AddNode(id string, docTop, docHeight float64, attrs map[string]string) *Node {
	n := &Node{
		id:        id,
		page:      p,
		docTop:    docTop,
		docHeight: docHeight,
		classes:   make(map[string]struct{}),
	}
	for k, v := range attrs {
		n.SetAttr(k, v)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.nodes = append(p.nodes, n)
	if id != "" {
		p.byID[id] = n
	}
	return n
}

// Node returns the node with the given id.
func (p *Page) Node(id string) (*Node, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n, ok := p.byID[id]
	return n, ok
}

// Nodes returns the nodes in document order.
func (p *Page) Nodes() []*Node {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// Metrics implements Container.
func (p *Page) Metrics() Metrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Metrics{
		ScrollTop:  p.scrollTop,
		ScrollLeft: p.scrollLeft,
		Height:     p.height,
		Width:      p.width,
	}
}

// ContentHeight returns the document extent: the bottom edge of the lowest
// node, or the viewport height when that is larger.
func (p *Page) ContentHeight() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contentHeightLocked()
}

func (p *Page) contentHeightLocked() float64 {
	max := p.height
	for _, n := range p.nodes {
		if bottom := n.docTop + n.docHeight; bottom > max {
			max = bottom
		}
	}
	return max
}

// ScrollTo implements Container, clamping to the scrollable range.
func (p *Page) ScrollTo(top float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	limit := p.contentHeightLocked() - p.height
	if limit < 0 {
		limit = 0
	}
	if top < 0 {
		top = 0
	}
	if top > limit {
		top = limit
	}
	p.scrollTop = top
}

// ScrollBy adjusts the scroll position by delta, clamped like ScrollTo.
func (p *Page) ScrollBy(delta float64) {
	p.ScrollTo(p.Metrics().ScrollTop + delta)
}

// Resize changes the viewport dimensions.
func (p *Page) Resize(width, height float64) {
	p.mu.Lock()
	p.width = width
	p.height = height
	p.mu.Unlock()

	// Re-clamp: shrinking content or growing the viewport can leave the
	// scroll offset past the end.
	p.ScrollBy(0)
}

// Sample produces a ScrollSample for the current state, attributed to the
// given signal source.
func (p *Page) Sample(target string) ScrollSample {
	m := p.Metrics()
	return ScrollSample{
		ScrollTop:       m.ScrollTop,
		ScrollLeft:      m.ScrollLeft,
		ContainerHeight: m.Height,
		Target:          target,
	}
}

// Size returns the current viewport dimensions as a resize payload.
func (p *Page) Size() ViewportSize {
	m := p.Metrics()
	return ViewportSize{Width: m.Width, Height: m.Height}
}
