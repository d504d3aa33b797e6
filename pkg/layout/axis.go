package layout

// axis maps "major" and "minor" onto concrete node fields. The solver is
// written once against this interface and run in both orientations; a node
// whose Direction differs from the axis is handed to the other orientation.
type axis interface {
	direction() Direction
	other() axis

	majorSpec(n *Node) Size
	minorSpec(n *Node) Size
	majorSize(n *Node) float32
	minorSize(n *Node) float32
	setMajorSize(n *Node, v float32)
	setMinorSize(n *Node, v float32)
	setMajorOffset(n *Node, v float32)
	setMinorOffset(n *Node, v float32)
	// majorPadding and minorPadding return the leading and trailing padding.
	majorPadding(n *Node) (start, end float32)
	minorPadding(n *Node) (start, end float32)
}

type horizontalAxis struct{}

func (horizontalAxis) direction() Direction { return Horizontal }
func (horizontalAxis) other() axis          { return verticalAxis{} }

func (horizontalAxis) majorSpec(n *Node) Size            { return n.Width }
func (horizontalAxis) minorSpec(n *Node) Size            { return n.Height }
func (horizontalAxis) majorSize(n *Node) float32         { return n.Result.Width }
func (horizontalAxis) minorSize(n *Node) float32         { return n.Result.Height }
func (horizontalAxis) setMajorSize(n *Node, v float32)   { n.Result.Width = v }
func (horizontalAxis) setMinorSize(n *Node, v float32)   { n.Result.Height = v }
func (horizontalAxis) setMajorOffset(n *Node, v float32) { n.Result.X = v }
func (horizontalAxis) setMinorOffset(n *Node, v float32) { n.Result.Y = v }

func (horizontalAxis) majorPadding(n *Node) (float32, float32) {
	return n.Padding.Left, n.Padding.Right
}

func (horizontalAxis) minorPadding(n *Node) (float32, float32) {
	return n.Padding.Top, n.Padding.Bottom
}

type verticalAxis struct{}

func (verticalAxis) direction() Direction { return Vertical }
func (verticalAxis) other() axis          { return horizontalAxis{} }

func (verticalAxis) majorSpec(n *Node) Size            { return n.Height }
func (verticalAxis) minorSpec(n *Node) Size            { return n.Width }
func (verticalAxis) majorSize(n *Node) float32         { return n.Result.Height }
func (verticalAxis) minorSize(n *Node) float32         { return n.Result.Width }
func (verticalAxis) setMajorSize(n *Node, v float32)   { n.Result.Height = v }
func (verticalAxis) setMinorSize(n *Node, v float32)   { n.Result.Width = v }
func (verticalAxis) setMajorOffset(n *Node, v float32) { n.Result.Y = v }
func (verticalAxis) setMinorOffset(n *Node, v float32) { n.Result.X = v }

func (verticalAxis) majorPadding(n *Node) (float32, float32) {
	return n.Padding.Top, n.Padding.Bottom
}

func (verticalAxis) minorPadding(n *Node) (float32, float32) {
	return n.Padding.Left, n.Padding.Right
}
