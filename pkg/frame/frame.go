// Package frame builds a layout tree for one frame and turns the solved
// layout into a flat list of drawing commands.
//
// A Frame is reused across frames: Begin clears the previous tree, the
// builder adds rectangles, text and nested containers, and Finish runs the
// layout and returns a DrawList.
//
//	f := frame.New(measurer)
//	root := f.Begin(800, 600)
//	root.WithPadding(layout.PadAll(8)).WithSpacing(4)
//	root.AddRect(frame.Black, layout.Fixed(100), layout.Grow())
//	root.AddText("hello", frame.TextStyle{}, layout.FitContent(), frame.Transparent)
//	list, err := f.Finish()
package frame

import (
	"image/color"

	"github.com/matzehuels/plinth/pkg/layout"
	"github.com/matzehuels/plinth/pkg/text"
)

// TextStyle controls how text content is drawn.
type TextStyle struct {
	// Color of the glyphs. The zero value picks black or white against the
	// node's background.
	Color color.NRGBA
	Align layout.Alignment
}

// block is a text run owned by a node for the current frame.
type block struct {
	str    string
	style  TextStyle
	layout *text.Layout
}

type content struct {
	name  string
	color color.NRGBA
	text  text.Handle
	// hasText is false for plain boxes.
	hasText bool
	// autoWidth marks text nodes whose width still derives from their words.
	autoWidth bool
}

// Frame owns the layout tree and the content attached to its nodes.
type Frame struct {
	tree     *layout.Tree
	measurer *text.Measurer
	content  []content
	texts    text.Pool[*block]
	err      error
}

// New returns a frame that measures text with m.
func New(m *text.Measurer) *Frame {
	return &Frame{tree: layout.NewTree(), measurer: m}
}

// Tree returns the frame's layout tree.
func (f *Frame) Tree() *layout.Tree { return f.tree }

// Begin discards the previous frame and returns the root container, sized
// to the viewport and stacking horizontally.
func (f *Frame) Begin(width, height float32) *Container {
	f.tree.Clear()
	f.content = f.content[:0]
	f.texts.Clear()
	f.err = nil

	root := f.add(layout.NoParent)
	c := &Container{f: f, id: root}
	c.update(func(id layout.NodeID) error {
		return f.tree.SetSize(id, layout.Fixed(width), layout.Fixed(height))
	})
	f.content[root.Index()].color = White
	return c
}

func (f *Frame) add(parent layout.NodeID) layout.NodeID {
	id, err := f.tree.Add(parent, layout.Spec{})
	if err != nil {
		f.fail(err)
		return layout.NoParent
	}
	f.content = append(f.content, content{})
	return id
}

func (f *Frame) fail(err error) {
	if err != nil && f.err == nil {
		f.err = err
	}
}

// Name returns the name given to a node with WithName.
func (f *Frame) Name(id layout.NodeID) string {
	if i := id.Index(); f.tree.Valid(id) && i < len(f.content) {
		return f.content[i].name
	}
	return ""
}

// Text returns the text attached to a node.
func (f *Frame) Text(id layout.NodeID) (string, bool) {
	b, ok := f.block(id)
	if !ok {
		return "", false
	}
	return b.str, true
}

// Color returns the background color of a node.
func (f *Frame) Color(id layout.NodeID) color.NRGBA {
	if i := id.Index(); f.tree.Valid(id) && i < len(f.content) {
		return f.content[i].color
	}
	return Transparent
}

func (f *Frame) block(id layout.NodeID) (*block, bool) {
	if !f.tree.Valid(id) || id.Index() >= len(f.content) {
		return nil, false
	}
	c := f.content[id.Index()]
	if !c.hasText {
		return nil, false
	}
	return f.texts.Get(c.text)
}

// Measure implements layout.Measurer: it wraps a text node's content to the
// width left after padding and reports the wrapped height plus padding.
func (f *Frame) Measure(id layout.NodeID, width float32) (float32, bool) {
	b, ok := f.block(id)
	if !ok {
		return 0, false
	}
	pad := f.tree.Spec(id).Padding
	b.layout = f.measurer.Layout(b.str, max(0, width-pad.Horizontal()), b.style.Align)
	return b.layout.Height() + pad.Vertical(), true
}

// Finish solves the layout and returns the draw list. It reports the first
// error encountered while building the frame.
func (f *Frame) Finish() (*DrawList, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.resolveTextWidths()
	if err := f.tree.ComputeLayout(f); err != nil {
		return nil, err
	}

	list := &DrawList{}
	if root, ok := f.tree.Root(); ok {
		r := f.tree.Result(root)
		list.Width, list.Height = r.Width, r.Height
	}
	for id, n := range f.tree.Nodes() {
		r := n.Result
		if r.Empty() {
			continue
		}
		c := f.content[id.Index()]
		if c.color.A != 0 {
			list.Commands = append(list.Commands, Command{
				Kind: KindRect, Node: id, Name: c.name, Rect: r, Color: c.color,
			})
		}
		if b, ok := f.block(id); ok && b.layout != nil {
			fg := b.style.Color
			if fg.A == 0 {
				fg = ContrastText(f.background(id))
			}
			list.Commands = append(list.Commands, Command{
				Kind: KindText, Node: id, Name: c.name, Rect: r, Color: fg,
				Text:   b.layout,
				Origin: Point{X: r.X + n.Padding.Left, Y: r.Y + n.Padding.Top},
			})
		}
	}
	return list, nil
}

// resolveTextWidths sizes text nodes that kept their automatic width to
// Flex(min-content, max-content), padding included.
func (f *Frame) resolveTextWidths() {
	for id, n := range f.tree.Nodes() {
		c := f.content[id.Index()]
		if !c.autoWidth {
			continue
		}
		b, ok := f.block(id)
		if !ok {
			continue
		}
		lo, hi := f.measurer.Widths(b.str)
		pad := n.Padding.Horizontal()
		f.fail(f.tree.SetWidth(id, layout.Flex(lo+pad, hi+pad)))
	}
}

// background returns the nearest opaque background behind id.
func (f *Frame) background(id layout.NodeID) color.NRGBA {
	for {
		if c := f.content[id.Index()].color; c.A != 0 {
			return c
		}
		p, ok := f.tree.Parent(id)
		if !ok {
			return White
		}
		id = p
	}
}
