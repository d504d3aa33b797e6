package io

import (
	"github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/frame"
	"github.com/matzehuels/plinth/pkg/layout"
)

// MaxViewport bounds each viewport dimension, whether it comes from the
// document or from the caller.
const MaxViewport = 16384

// DefaultViewport is used when neither the document nor the caller gives one.
var DefaultViewport = Viewport{Width: 800, Height: 600}

// Build validates the document and adds its tree to f under a fresh window
// root of the given viewport size. A nil viewport falls back to the
// document's, then to DefaultViewport. The document root becomes the only
// child of the window, so it may stack in either direction.
func (d *Document) Build(f *frame.Frame, viewport *Viewport) error {
	if err := d.Validate(); err != nil {
		return err
	}
	vp := d.ViewportOr(viewport)
	if err := vp.Validate(); err != nil {
		return err
	}

	window := f.Begin(vp.Width, vp.Height).WithName("viewport")
	return d.Root.build(window.AddContainer())
}

// Validate checks that both dimensions are finite, non-negative and at most
// MaxViewport.
func (vp Viewport) Validate() error {
	for _, d := range []struct {
		name string
		v    float32
	}{{"viewport.width", vp.Width}, {"viewport.height", vp.Height}} {
		if err := errors.ValidateDimension(d.name, float64(d.v)); err != nil {
			return err
		}
		if d.v > MaxViewport {
			return errors.New(errors.ErrCodeInvalidSize, "%s %v exceeds %v", d.name, d.v, MaxViewport)
		}
	}
	return nil
}

// ViewportOr resolves the effective viewport.
func (d *Document) ViewportOr(override *Viewport) Viewport {
	switch {
	case override != nil:
		return *override
	case d.Viewport != nil:
		return *d.Viewport
	default:
		return DefaultViewport
	}
}

func (n *Node) build(c *frame.Container) error {
	spec, err := n.spec()
	if err != nil {
		return err
	}
	bg, err := frame.ParseColor(n.Color)
	if err != nil {
		return err
	}

	c.WithName(n.Name).
		WithDirection(spec.Direction).
		WithMajorAlign(spec.MajorAlign).
		WithMinorAlign(spec.MinorAlign).
		WithPadding(spec.Padding).
		WithSpacing(spec.Spacing).
		WithHeight(spec.Height).
		WithColor(bg)

	if n.Text != "" {
		style, err := n.textStyle()
		if err != nil {
			return err
		}
		c.WithText(n.Text, style)
	}
	// an explicit width wins over the text's natural width
	if n.Text == "" || n.Width.IsSet() {
		c.WithWidth(spec.Width)
	}

	for i := range n.Children {
		if err := n.Children[i].build(c.AddContainer()); err != nil {
			return err
		}
	}
	return nil
}

// FromTree converts a layout tree back into a document, without content.
// Useful for dumping programmatically built trees.
//
// Call it before ComputeLayout: solving with a Measurer rewrites measured
// Fit heights to Fixed, and the exported document then carries the
// measured value instead of the authored policy.
func FromTree(t *layout.Tree) *Document {
	root, ok := t.Root()
	if !ok {
		return &Document{}
	}
	var convert func(id layout.NodeID) Node
	convert = func(id layout.NodeID) Node {
		s := t.Spec(id)
		n := Node{
			Width:   Sized(s.Width),
			Height:  Sized(s.Height),
			Padding: PaddingValue{s.Padding},
			Spacing: s.Spacing,
		}
		if s.Direction != layout.Horizontal {
			n.Direction = s.Direction.String()
		}
		if s.MajorAlign != layout.Start {
			n.Align.Major = s.MajorAlign.String()
		}
		if s.MinorAlign != layout.Start {
			n.Align.Minor = s.MinorAlign.String()
		}
		for _, c := range t.Children(id) {
			n.Children = append(n.Children, convert(c))
		}
		return n
	}
	return &Document{Root: convert(root)}
}
