package frame

import (
	"image/color"

	"github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/layout"
)

// Container adds children to one node of a frame. Methods return the
// receiver so calls can be chained; errors are kept by the frame and
// reported from Finish.
type Container struct {
	f  *Frame
	id layout.NodeID
}

// ID returns the container's node.
func (c *Container) ID() layout.NodeID { return c.id }

func (c *Container) update(fn func(layout.NodeID) error) *Container {
	c.f.fail(fn(c.id))
	return c
}

func (c *Container) WithWidth(s layout.Size) *Container {
	c.setContent(func(ct *content) { ct.autoWidth = false })
	return c.update(func(id layout.NodeID) error { return c.f.tree.SetWidth(id, s) })
}

func (c *Container) WithHeight(s layout.Size) *Container {
	return c.update(func(id layout.NodeID) error { return c.f.tree.SetHeight(id, s) })
}

func (c *Container) WithDirection(d layout.Direction) *Container {
	return c.update(func(id layout.NodeID) error { return c.f.tree.SetDirection(id, d) })
}

func (c *Container) WithMajorAlign(a layout.Alignment) *Container {
	return c.update(func(id layout.NodeID) error { return c.f.tree.SetMajorAlign(id, a) })
}

func (c *Container) WithMinorAlign(a layout.Alignment) *Container {
	return c.update(func(id layout.NodeID) error { return c.f.tree.SetMinorAlign(id, a) })
}

func (c *Container) WithSpacing(v float32) *Container {
	return c.update(func(id layout.NodeID) error { return c.f.tree.SetSpacing(id, v) })
}

func (c *Container) WithPadding(p layout.Padding) *Container {
	return c.update(func(id layout.NodeID) error { return c.f.tree.SetPadding(id, p) })
}

// WithColor sets the background color. Transparent nodes draw nothing.
func (c *Container) WithColor(col color.NRGBA) *Container {
	c.setContent(func(ct *content) { ct.color = col })
	return c
}

// WithName labels the node in draw commands and exported layouts.
func (c *Container) WithName(name string) *Container {
	c.setContent(func(ct *content) { ct.name = name })
	return c
}

// WithText attaches text to this node. Unless a width is set afterwards, the
// node is as wide as the unwrapped text and no narrower than its widest word.
func (c *Container) WithText(s string, style TextStyle) *Container {
	c.setContent(func(ct *content) {
		b := &block{str: s, style: style}
		if ct.hasText && c.f.texts.Set(ct.text, b) {
			ct.autoWidth = true
			return
		}
		ct.text = c.f.texts.Allocate(b)
		ct.hasText = true
		ct.autoWidth = true
	})
	return c
}

// AddRect adds a filled box.
func (c *Container) AddRect(col color.NRGBA, width, height layout.Size) *Container {
	c.AddContainer().WithColor(col).WithWidth(width).WithHeight(height)
	return c
}

// AddText adds a text node on top of a background color.
func (c *Container) AddText(s string, style TextStyle, height layout.Size, background color.NRGBA) *Container {
	c.AddContainer().WithText(s, style).WithHeight(height).WithColor(background)
	return c
}

// AddContainer adds an empty child and returns it.
func (c *Container) AddContainer() *Container {
	return &Container{f: c.f, id: c.f.add(c.id)}
}

// WithContainer adds a child and passes it to fn.
func (c *Container) WithContainer(fn func(*Container)) *Container {
	fn(c.AddContainer())
	return c
}

func (c *Container) setContent(fn func(*content)) {
	if !c.f.tree.Valid(c.id) || c.id.Index() >= len(c.f.content) {
		c.f.fail(errors.New(errors.ErrCodeInvalidNode, "container %s is not part of the current frame", c.id))
		return
	}
	fn(&c.f.content[c.id.Index()])
}
