package layout

import (
	"fmt"
	"math"
)

// NodeID is a handle to a node in a Tree. Handles are dense indices assigned
// in construction order and tagged with the frame they were issued in, so a
// handle kept across Clear is rejected instead of silently aliasing a new node.
type NodeID struct {
	index      uint32
	generation uint32
}

// NoParent is passed to Tree.Add to create the root node.
var NoParent = NodeID{index: math.MaxUint32, generation: math.MaxUint32}

// Index returns the dense position of the node in construction order.
// The root has index 0.
func (id NodeID) Index() int { return int(id.index) }

func (id NodeID) String() string {
	if id == NoParent {
		return "#none"
	}
	return fmt.Sprintf("#%d", id.index)
}

// Spec is the user-set part of a node.
type Spec struct {
	Width, Height Size
	// Direction is the axis children are stacked along.
	Direction  Direction
	MajorAlign Alignment
	MinorAlign Alignment
	Padding    Padding
	// Spacing is the gap inserted between adjacent children.
	Spacing float32
}

// Result is the rectangle the solver assigns to a node.
// Coordinates are absolute, with the origin at the root's top-left corner.
type Result struct {
	X, Y          float32
	Width, Height float32
}

// Right returns the x coordinate of the right edge.
func (r Result) Right() float32 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Result) Bottom() float32 { return r.Y + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Result) CenterX() float32 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Result) CenterY() float32 { return r.Y + r.Height/2 }

// Empty reports whether the rectangle has no area.
func (r Result) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether the point lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Result) Contains(x, y float32) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

func (r Result) String() string {
	return fmt.Sprintf("(%s,%s %sx%s)", formatFloat(r.X), formatFloat(r.Y), formatFloat(r.Width), formatFloat(r.Height))
}

// Node is a Spec together with its solved Result.
type Node struct {
	Spec
	Result Result
}
