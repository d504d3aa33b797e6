package layout

// Measurer reports the height of a node's content once its width is known.
//
// The solver calls Measure exactly once per node per ComputeLayout, in
// construction order, after widths are final and before heights are fitted.
// Returning false leaves the node's height policy untouched.
type Measurer interface {
	Measure(id NodeID, availableWidth float32) (height float32, ok bool)
}

// MeasureFunc adapts an ordinary function to the Measurer interface.
type MeasureFunc func(id NodeID, availableWidth float32) (float32, bool)

// Measure calls f(id, availableWidth).
func (f MeasureFunc) Measure(id NodeID, availableWidth float32) (float32, bool) {
	return f(id, availableWidth)
}

// MeasureTable is a Measurer with a fixed height per node, ignoring width.
// It is mostly useful in tests and for documents with pre-measured content.
type MeasureTable map[NodeID]float32

// Measure returns the recorded height for id.
func (m MeasureTable) Measure(id NodeID, _ float32) (float32, bool) {
	h, ok := m[id]
	return h, ok
}

// measured rewrites a height policy after content reported height v.
// Fit collapses to the clamped value, Flex raises its floor to it, and Fixed
// and Grow ignore content entirely.
func measured(s Size, v float32) Size {
	switch s.Kind() {
	case KindFit:
		return Fixed(clamp(v, s.Min(), s.Max()))
	case KindFlex:
		return Flex(clamp(v, s.Min(), s.Max()), s.Max())
	default:
		return s
	}
}
