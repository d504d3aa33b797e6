package layout

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/plinth/pkg/errors"
)

func TestTreeAdd(t *testing.T) {
	tree := NewTree()
	if _, ok := tree.Root(); ok {
		t.Fatal("empty tree should have no root")
	}

	root := tree.MustAdd(NoParent, Spec{})
	a := tree.MustAdd(root, Spec{Width: Fixed(10)})
	b := tree.MustAdd(root, Spec{Width: Fixed(20)})
	c := tree.MustAdd(a, Spec{})

	if tree.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", tree.Len())
	}
	if got, _ := tree.Root(); got != root {
		t.Errorf("Root() = %v, want %v", got, root)
	}
	for i, id := range []NodeID{root, a, b, c} {
		if id.Index() != i {
			t.Errorf("node %d has index %d", i, id.Index())
		}
	}
	if got := tree.Children(root); !slices.Equal(got, []NodeID{a, b}) {
		t.Errorf("Children(root) = %v, want [%v %v]", got, a, b)
	}
	if p, ok := tree.Parent(c); !ok || p != a {
		t.Errorf("Parent(c) = %v, %v; want %v", p, ok, a)
	}
	if _, ok := tree.Parent(root); ok {
		t.Error("root should have no parent")
	}
	if tree.Depth(c) != 2 {
		t.Errorf("Depth(c) = %d, want 2", tree.Depth(c))
	}
	if tree.Spec(b).Width != Fixed(20) {
		t.Errorf("Spec(b).Width = %v", tree.Spec(b).Width)
	}
}

func TestTreeChildrenIsCopy(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoParent, Spec{})
	tree.MustAdd(root, Spec{})

	kids := tree.Children(root)
	kids[0] = NoParent
	if tree.Children(root)[0] == NoParent {
		t.Error("Children should not expose internal storage")
	}
}

func TestTreeAddErrors(t *testing.T) {
	t.Run("parent in empty tree", func(t *testing.T) {
		other := NewTree()
		id := other.MustAdd(NoParent, Spec{})

		tree := NewTree()
		if _, err := tree.Add(id, Spec{}); !errors.Is(err, errors.ErrCodeInvalidNode) {
			t.Errorf("Add with out-of-range parent error = %v", err)
		}
	})

	t.Run("second root", func(t *testing.T) {
		tree := NewTree()
		tree.MustAdd(NoParent, Spec{})
		if _, err := tree.Add(NoParent, Spec{}); !errors.Is(err, errors.ErrCodeInvalidNode) {
			t.Errorf("second root error = %v", err)
		}
	})

	t.Run("stale handle after clear", func(t *testing.T) {
		tree := NewTree()
		root := tree.MustAdd(NoParent, Spec{})
		child := tree.MustAdd(root, Spec{})

		tree.Clear()
		newRoot := tree.MustAdd(NoParent, Spec{})
		tree.MustAdd(newRoot, Spec{})

		// child has index 1, which is in range again, but belongs to the old frame
		if _, err := tree.Add(child, Spec{}); !errors.Is(err, errors.ErrCodeInvalidNode) {
			t.Errorf("Add with stale parent error = %v", err)
		}
		if tree.Valid(root) {
			t.Error("old root should be invalid after Clear")
		}
		if !tree.Valid(newRoot) {
			t.Error("new root should be valid")
		}
	})

	t.Run("must add panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("MustAdd should panic on a second root")
			}
		}()
		tree := NewTree()
		tree.MustAdd(NoParent, Spec{})
		tree.MustAdd(NoParent, Spec{})
	})
}

func TestTreeClearReusesChildLists(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoParent, Spec{})
	for range 4 {
		tree.MustAdd(root, Spec{})
	}

	tree.Clear()
	if tree.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", tree.Len())
	}

	root = tree.MustAdd(NoParent, Spec{})
	if got := tree.Children(root); len(got) != 0 {
		t.Errorf("new root inherited children %v", got)
	}
	child := tree.MustAdd(root, Spec{})
	if got := tree.Children(root); !slices.Equal(got, []NodeID{child}) {
		t.Errorf("Children(root) = %v", got)
	}
}

func TestTreeSetters(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoParent, Spec{})

	steps := []struct {
		name string
		fn   func(NodeID) error
	}{
		{"SetWidth", func(id NodeID) error { return tree.SetWidth(id, Fixed(5)) }},
		{"SetHeight", func(id NodeID) error { return tree.SetHeight(id, Grow()) }},
		{"SetDirection", func(id NodeID) error { return tree.SetDirection(id, Vertical) }},
		{"SetMajorAlign", func(id NodeID) error { return tree.SetMajorAlign(id, End) }},
		{"SetMinorAlign", func(id NodeID) error { return tree.SetMinorAlign(id, Center) }},
		{"SetPadding", func(id NodeID) error { return tree.SetPadding(id, PadAll(2)) }},
		{"SetSpacing", func(id NodeID) error { return tree.SetSpacing(id, 3) }},
	}
	for _, s := range steps {
		if err := s.fn(root); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
	}

	want := Spec{
		Width:      Fixed(5),
		Height:     Grow(),
		Direction:  Vertical,
		MajorAlign: End,
		MinorAlign: Center,
		Padding:    PadAll(2),
		Spacing:    3,
	}
	if got := tree.Spec(root); got != want {
		t.Errorf("Spec = %+v, want %+v", got, want)
	}

	if err := tree.SetSize(root, Fixed(1), Fixed(2)); err != nil {
		t.Fatal(err)
	}
	if s := tree.Spec(root); s.Width != Fixed(1) || s.Height != Fixed(2) {
		t.Errorf("SetSize gave %v x %v", s.Width, s.Height)
	}

	tree.Clear()
	for _, s := range steps {
		if err := s.fn(root); !errors.Is(err, errors.ErrCodeInvalidNode) {
			t.Errorf("%s on stale handle: error = %v", s.name, err)
		}
	}
	if err := tree.SetSpec(root, Spec{}); err == nil {
		t.Error("SetSpec on stale handle should fail")
	}
}

func TestTreeNodesOrder(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoParent, Spec{})
	a := tree.MustAdd(root, Spec{})
	tree.MustAdd(a, Spec{})
	tree.MustAdd(root, Spec{})

	var got []int
	for id := range tree.Nodes() {
		got = append(got, id.Index())
		if id.Index() == 2 {
			break
		}
	}
	if !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("Nodes() order = %v, want [0 1 2]", got)
	}
}

func TestTreeDump(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoParent, Spec{Width: Fixed(30)})
	tree.MustAdd(root, Spec{Width: Grow(), Direction: Vertical})
	tree.MustComputeLayout(nil)

	dump := tree.Dump()
	lines := strings.Split(strings.TrimSpace(dump), "\n")
	if len(lines) != 2 {
		t.Fatalf("Dump() has %d lines, want 2:\n%s", len(lines), dump)
	}
	if !strings.HasPrefix(lines[0], "#0 horizontal w=30") {
		t.Errorf("root line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  #1 vertical w=grow") {
		t.Errorf("child line = %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], "(0,0 30x0)") {
		t.Errorf("child line = %q, want result (0,0 30x0)", lines[1])
	}
}

func TestResultGeometry(t *testing.T) {
	r := Result{X: 10, Y: 20, Width: 30, Height: 40}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("edges = %v, %v", r.Right(), r.Bottom())
	}
	if r.CenterX() != 25 || r.CenterY() != 40 {
		t.Errorf("center = %v, %v", r.CenterX(), r.CenterY())
	}
	if !r.Contains(10, 20) || r.Contains(40, 30) {
		t.Error("Contains edge handling is wrong")
	}
	if r.Empty() || !(Result{Width: 5}).Empty() {
		t.Error("Empty is wrong")
	}
}
