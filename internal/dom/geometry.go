package dom

// Rect is an element's bounding box in the container's viewport coordinate
// frame: Top 0 is the top edge of the visible area, values grow downward.
type Rect struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Height returns the vertical extent of the rect.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Width returns the horizontal extent of the rect.
func (r Rect) Width() float64 { return r.Right - r.Left }

// IntersectsRange reports whether the rect vertically overlaps [top, bottom).
func (r Rect) IntersectsRange(top, bottom float64) bool {
	return r.Bottom > top && r.Top < bottom
}

// Style is a set of inline style properties.
type Style map[string]string

// Clone returns an independent copy of the style.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a copy of s with the properties of other applied on top.
func (s Style) Merge(other Style) Style {
	out := make(Style, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
