package frame

import (
	"image/color"

	"github.com/matzehuels/plinth/pkg/layout"
	"github.com/matzehuels/plinth/pkg/text"
)

// CommandKind distinguishes draw commands.
type CommandKind uint8

const (
	KindRect CommandKind = iota
	KindText
)

func (k CommandKind) String() string {
	if k == KindText {
		return "text"
	}
	return "rect"
}

// Point is a position in frame coordinates.
type Point struct {
	X, Y float32
}

// Command is one drawing operation. Rect commands fill Rect with Color;
// text commands draw Text with its top-left corner at Origin.
type Command struct {
	Kind   CommandKind
	Node   layout.NodeID
	Name   string
	Rect   layout.Result
	Color  color.NRGBA
	Text   *text.Layout
	Origin Point
}

// DrawList is the output of a frame, in back-to-front order.
type DrawList struct {
	Width, Height float32
	Commands      []Command
}

// Len returns the number of commands.
func (d *DrawList) Len() int { return len(d.Commands) }

// Rects returns only the rectangle commands.
func (d *DrawList) Rects() []Command {
	var out []Command
	for _, c := range d.Commands {
		if c.Kind == KindRect {
			out = append(out, c)
		}
	}
	return out
}
