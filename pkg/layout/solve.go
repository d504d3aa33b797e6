package layout

import (
	"math"

	"github.com/matzehuels/plinth/pkg/errors"
)

// growTolerance is the amount of unallocated space the grow pass accepts
// before it stops redistributing.
const growTolerance = 0.5

// ComputeLayout solves the tree in place. m may be nil when no node has
// measurable content.
//
// Passes, in order:
//  1. major fit: widths from content, bottom up
//  2. major grow: distribute leftover width to Grow and Flex children
//  3. content: ask m for the height of every node at its final width
//  4. minor fit: heights from content, bottom up
//  5. minor grow: stretch Grow children to their parent's inner height
//  6. major offsets: x positions
//  7. minor offsets: y positions
//
// "Major" and "minor" are relative to the root, which must stack its children
// horizontally; nested nodes of the other direction swap axes transparently.
// Running ComputeLayout twice on an unchanged tree gives identical results.
func (t *Tree) ComputeLayout(m Measurer) error {
	if len(t.nodes) == 0 {
		return nil
	}
	if dir := t.nodes[0].Direction; dir != Horizontal {
		return errors.New(errors.ErrCodeInvalidRoot, "root node must stack its children horizontally, got %s", dir)
	}

	var h axis = horizontalAxis{}
	t.majorFit(h, 0)
	t.majorGrow(h, 0)
	if m != nil {
		t.measureContent(m)
	}
	t.minorFit(h, 0)
	t.minorGrow(h, 0)
	t.majorOffsets(h, 0, 0)
	t.minorOffsets(h, 0, 0)
	return nil
}

// MustComputeLayout is like ComputeLayout but panics on an invalid root.
func (t *Tree) MustComputeLayout(m Measurer) {
	if err := t.ComputeLayout(m); err != nil {
		panic(err)
	}
}

// majorReserved is the space along the major axis that no child occupies:
// both paddings plus spacing between each pair of children.
func (t *Tree) majorReserved(a axis, i int) float32 {
	n := &t.nodes[i]
	start, end := a.majorPadding(n)
	reserved := start + end
	if k := len(t.children[i]); k > 1 {
		reserved += n.Spacing * float32(k-1)
	}
	return reserved
}

func (t *Tree) majorFit(a axis, i int) float32 {
	if t.nodes[i].Direction != a.direction() {
		return t.minorFit(a.other(), i)
	}

	content := t.majorReserved(a, i)
	for _, c := range t.children[i] {
		content += t.majorFit(a, c.Index())
	}

	n := &t.nodes[i]
	var size float32
	switch s := a.majorSpec(n); s.Kind() {
	case KindFixed:
		size = s.Value()
	case KindFit:
		size = clamp(content, s.Min(), s.Max())
	case KindFlex:
		size = s.Max()
	case KindGrow:
		size = 0
	}
	a.setMajorSize(n, size)
	return size
}

func (t *Tree) minorFit(a axis, i int) float32 {
	if t.nodes[i].Direction != a.direction() {
		return t.majorFit(a.other(), i)
	}

	var content float32
	for _, c := range t.children[i] {
		content = max(content, t.minorFit(a, c.Index()))
	}

	n := &t.nodes[i]
	start, end := a.minorPadding(n)
	content += start + end

	var size float32
	switch s := a.minorSpec(n); s.Kind() {
	case KindFixed:
		size = s.Value()
	case KindFit, KindFlex:
		size = clamp(content, s.Min(), s.Max())
	case KindGrow:
		size = 0
	}
	a.setMinorSize(n, size)
	return size
}

// majorGrow hands the space left over in each container to its Grow and Flex
// children in even shares. Flex children stop at their maximum; when the
// children overflow the container, Flex children give space back down to
// their minimum and nothing else shrinks.
func (t *Tree) majorGrow(a axis, i int) {
	if t.nodes[i].Direction != a.direction() {
		t.minorGrow(a.other(), i)
		return
	}

	kids := t.children[i]
	remaining := a.majorSize(&t.nodes[i]) - t.majorReserved(a, i)
	grow := t.growable[:0]
	for _, c := range kids {
		child := &t.nodes[c.Index()]
		remaining -= a.majorSize(child)
		if k := a.majorSpec(child).Kind(); k == KindGrow || k == KindFlex {
			grow = append(grow, c.Index())
		}
	}

	for abs(remaining) > growTolerance && len(grow) > 0 {
		share := remaining / float32(len(grow))
		keep := grow[:0]
		for _, c := range grow {
			child := &t.nodes[c]
			size := a.majorSize(child)
			spec := a.majorSpec(child)

			if spec.Kind() == KindGrow {
				if remaining <= 0 {
					continue
				}
				a.setMajorSize(child, size+share)
				remaining -= share
				keep = append(keep, c)
				continue
			}

			next, capped := size+share, false
			if next >= spec.Max() {
				next, capped = spec.Max(), true
			} else if next <= spec.Min() {
				next, capped = spec.Min(), true
			}
			a.setMajorSize(child, next)
			remaining -= next - size
			if !capped {
				keep = append(keep, c)
			}
		}
		grow = keep
	}
	t.growable = grow[:0]

	for _, c := range kids {
		t.majorGrow(a, c.Index())
	}
}

func (t *Tree) minorGrow(a axis, i int) {
	if t.nodes[i].Direction != a.direction() {
		t.majorGrow(a.other(), i)
		return
	}

	n := &t.nodes[i]
	start, end := a.minorPadding(n)
	inner := max(0, a.minorSize(n)-start-end)
	for _, c := range t.children[i] {
		child := &t.nodes[c.Index()]
		if a.minorSpec(child).Kind() == KindGrow {
			a.setMinorSize(child, inner)
		}
		t.minorGrow(a, c.Index())
	}
}

// measureContent visits nodes in construction order, which is a pre-order
// walk of the tree, so a parent's height policy is settled before its
// children are asked.
func (t *Tree) measureContent(m Measurer) {
	for i := range t.nodes {
		n := &t.nodes[i]
		if v, ok := m.Measure(t.id(i), n.Result.Width); ok {
			n.Height = measured(n.Height, v)
		}
	}
}

func (t *Tree) majorOffsets(a axis, i int, offset float32) float32 {
	if t.nodes[i].Direction != a.direction() {
		return t.minorOffsets(a.other(), i, offset)
	}

	n := &t.nodes[i]
	a.setMajorOffset(n, offset)
	size := a.majorSize(n)
	start, end := a.majorPadding(n)
	kids := t.children[i]

	var used float32
	for _, c := range kids {
		used += a.majorSize(&t.nodes[c.Index()])
	}

	gap := n.Spacing
	cursor := offset + start
	switch n.MajorAlign {
	case Center:
		cursor = offset + start + round((size-t.majorReserved(a, i)-used)/2)
	case End:
		cursor = offset + size - end - used
		if len(kids) > 1 {
			cursor -= gap * float32(len(kids)-1)
		}
	case Justify:
		if len(kids) > 1 {
			gap = max(gap, (size-start-end-used)/float32(len(kids)-1))
		}
	}

	for _, c := range kids {
		cursor = t.majorOffsets(a, c.Index(), cursor) + gap
	}
	return offset + size
}

func (t *Tree) minorOffsets(a axis, i int, offset float32) float32 {
	if t.nodes[i].Direction != a.direction() {
		return t.majorOffsets(a.other(), i, offset)
	}

	n := &t.nodes[i]
	a.setMinorOffset(n, offset)
	size := a.minorSize(n)
	start, end := a.minorPadding(n)
	align := n.MinorAlign

	for _, c := range t.children[i] {
		child := a.minorSize(&t.nodes[c.Index()])
		pos := offset + start
		switch align {
		case Center:
			pos = offset + round(max(0, size-child)/2)
		case End:
			pos = offset + max(0, size-child-end)
		}
		t.minorOffsets(a, c.Index(), pos)
	}
	return offset + size
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func round(v float32) float32 {
	return float32(math.Round(float64(v)))
}
