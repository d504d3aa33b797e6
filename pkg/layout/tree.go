package layout

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/matzehuels/plinth/pkg/errors"
)

// Tree is an arena of layout nodes rebuilt every frame.
//
// Nodes are appended with Add and never removed individually; Clear empties
// the tree while keeping its memory. Because a parent must exist before its
// children, every handle is numerically smaller than the handles in its
// subtree and the first node added is the root.
type Tree struct {
	nodes      []Node
	children   [][]NodeID
	parents    []NodeID
	generation uint32

	// scratch for the grow pass
	growable []int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes in the current frame.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root handle, or false if the tree is empty.
func (t *Tree) Root() (NodeID, bool) {
	if len(t.nodes) == 0 {
		return NodeID{}, false
	}
	return t.id(0), true
}

// Clear removes every node. Handles issued before Clear become invalid.
func (t *Tree) Clear() {
	t.nodes = t.nodes[:0]
	t.children = t.children[:0]
	t.parents = t.parents[:0]
	t.generation++
}

// Add appends a node under parent and returns its handle. Pass NoParent to
// create the root; a tree has exactly one root.
func (t *Tree) Add(parent NodeID, spec Spec) (NodeID, error) {
	if parent == NoParent {
		if len(t.nodes) > 0 {
			return NodeID{}, errors.New(errors.ErrCodeInvalidNode, "tree already has a root")
		}
	} else if err := t.check(parent); err != nil {
		return NodeID{}, err
	}
	n := len(t.nodes)
	id := t.id(n)
	t.nodes = append(t.nodes, Node{Spec: spec})
	t.parents = append(t.parents, parent)
	if n < cap(t.children) {
		// reuse the child list left over from a previous frame
		t.children = t.children[:n+1]
		t.children[n] = t.children[n][:0]
	} else {
		t.children = append(t.children, nil)
	}
	if parent != NoParent {
		p := parent.Index()
		t.children[p] = append(t.children[p], id)
	}
	return id, nil
}

// MustAdd is like Add but panics on an invalid parent.
func (t *Tree) MustAdd(parent NodeID, spec Spec) NodeID {
	id, err := t.Add(parent, spec)
	if err != nil {
		panic(err)
	}
	return id
}

// Valid reports whether id refers to a node of the current frame.
func (t *Tree) Valid(id NodeID) bool {
	return t.check(id) == nil
}

func (t *Tree) check(id NodeID) error {
	if id == NoParent {
		return errors.New(errors.ErrCodeInvalidNode, "node %s is not a node handle", id)
	}
	if int(id.index) >= len(t.nodes) {
		return errors.New(errors.ErrCodeInvalidNode, "node %s out of range (tree has %d nodes)", id, len(t.nodes))
	}
	if id.generation != t.generation {
		return errors.New(errors.ErrCodeInvalidNode, "node %s is from a cleared frame", id)
	}
	return nil
}

func (t *Tree) id(i int) NodeID {
	return NodeID{index: uint32(i), generation: t.generation}
}

// Lookup returns the node for id.
func (t *Tree) Lookup(id NodeID) (Node, bool) {
	if !t.Valid(id) {
		return Node{}, false
	}
	return t.nodes[id.index], true
}

// Spec returns the node's spec, or the zero Spec for an invalid handle.
func (t *Tree) Spec(id NodeID) Spec {
	n, _ := t.Lookup(id)
	return n.Spec
}

// Result returns the node's solved rectangle, or the zero Result for an
// invalid handle. Results are only meaningful after ComputeLayout.
func (t *Tree) Result(id NodeID) Result {
	n, _ := t.Lookup(id)
	return n.Result
}

// Children returns a copy of the node's children in insertion order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.Valid(id) {
		return nil
	}
	return slices.Clone(t.children[id.index])
}

// Parent returns the node's parent, or false for the root and invalid handles.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if !t.Valid(id) {
		return NodeID{}, false
	}
	p := t.parents[id.index]
	return p, p != NoParent
}

// Nodes iterates over every node in construction order.
func (t *Tree) Nodes() iter.Seq2[NodeID, Node] {
	return func(yield func(NodeID, Node) bool) {
		for i := range t.nodes {
			if !yield(t.id(i), t.nodes[i]) {
				return
			}
		}
	}
}

// Depth returns the number of ancestors of id.
func (t *Tree) Depth(id NodeID) int {
	if !t.Valid(id) {
		return 0
	}
	depth := 0
	for p := t.parents[id.index]; p != NoParent; p = t.parents[p.index] {
		depth++
	}
	return depth
}

// SetSpec replaces the whole spec of a node.
func (t *Tree) SetSpec(id NodeID, spec Spec) error {
	return t.update(id, func(n *Node) { n.Spec = spec })
}

// SetWidth sets the horizontal size policy.
func (t *Tree) SetWidth(id NodeID, s Size) error {
	return t.update(id, func(n *Node) { n.Width = s })
}

// SetHeight sets the vertical size policy.
func (t *Tree) SetHeight(id NodeID, s Size) error {
	return t.update(id, func(n *Node) { n.Height = s })
}

// SetSize sets both size policies.
func (t *Tree) SetSize(id NodeID, width, height Size) error {
	return t.update(id, func(n *Node) { n.Width, n.Height = width, height })
}

func (t *Tree) SetDirection(id NodeID, d Direction) error {
	return t.update(id, func(n *Node) { n.Direction = d })
}

func (t *Tree) SetMajorAlign(id NodeID, a Alignment) error {
	return t.update(id, func(n *Node) { n.MajorAlign = a })
}

func (t *Tree) SetMinorAlign(id NodeID, a Alignment) error {
	return t.update(id, func(n *Node) { n.MinorAlign = a })
}

func (t *Tree) SetPadding(id NodeID, p Padding) error {
	return t.update(id, func(n *Node) { n.Padding = p })
}

func (t *Tree) SetSpacing(id NodeID, v float32) error {
	return t.update(id, func(n *Node) { n.Spacing = v })
}

func (t *Tree) update(id NodeID, fn func(*Node)) error {
	if err := t.check(id); err != nil {
		return err
	}
	fn(&t.nodes[id.index])
	return nil
}

// Dump formats the node table, one node per line, indented by depth.
func (t *Tree) Dump() string {
	var b strings.Builder
	for id, n := range t.Nodes() {
		fmt.Fprintf(&b, "%s%s %s w=%s h=%s -> %s\n",
			strings.Repeat("  ", t.Depth(id)), id, n.Direction, n.Width, n.Height, n.Result)
	}
	return b.String()
}
