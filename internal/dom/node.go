package dom

import (
	"sort"
	"sync"
)

// Attribute names with engine-level meaning. Page builders mark nodes
// with these and a scan pass picks them up.
const (
	// AttrAnimation names the animation type a node should animate with.
	AttrAnimation = "data-animation"

	// AttrNavGroup names the nav target whose group a section node joins.
	AttrNavGroup = "data-nav-group"
)

// Node is the in-memory Element implementation. Nodes are created through
// their owning Page, which supplies the scroll state for viewport-relative
// geometry.
type Node struct {
	mu        sync.Mutex
	id        string
	page      *Page
	docTop    float64
	docHeight float64
	classes   map[string]struct{}
	style     Style
	attrs     map[string]string
	mutations uint64
}

// ID returns the node's id attribute.
func (n *Node) ID() string { return n.id }

// Rect returns the bounding box relative to the owning page's viewport.
func (n *Node) Rect() Rect {
	m := n.page.Metrics()
	n.mu.Lock()
	defer n.mu.Unlock()
	return Rect{
		Top:    n.docTop - m.ScrollTop,
		Bottom: n.docTop + n.docHeight - m.ScrollTop,
		Left:   -m.ScrollLeft,
		Right:  m.Width - m.ScrollLeft,
	}
}

// DocTop returns the node's absolute document offset.
func (n *Node) DocTop() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.docTop
}

// AddClass adds a CSS class; a present class is left alone.
func (n *Node) AddClass(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.classes[name]; ok {
		return
	}
	n.classes[name] = struct{}{}
	n.mutations++
}

// RemoveClass removes a CSS class; an absent class is left alone.
func (n *Node) RemoveClass(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.classes[name]; !ok {
		return
	}
	delete(n.classes, name)
	n.mutations++
}

// HasClass reports whether the class is present.
func (n *Node) HasClass(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.classes[name]
	return ok
}

// Classes returns the node's classes in sorted order.
func (n *Node) Classes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.classes))
	for c := range n.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ApplyStyle merges properties into the node's inline style.
func (n *Node) ApplyStyle(s Style) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.style == nil {
		n.style = make(Style, len(s))
	}
	for k, v := range s {
		n.style[k] = v
	}
	n.mutations++
}

// StyleValue returns one inline style property, or "" when unset.
func (n *Node) StyleValue(prop string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style[prop]
}

// InlineStyle returns a copy of the node's inline style.
func (n *Node) InlineStyle() Style {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.Clone()
}

// Attr returns the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.attrs[name]
}

// SetAttr sets an attribute value.
func (n *Node) SetAttr(name, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// Mutations returns how many class or style writes the node has absorbed.
// Useful for asserting that idempotent paths leave the node untouched.
func (n *Node) Mutations() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.mutations
}
