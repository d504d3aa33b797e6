// Package layout computes box-model layouts for retained UI trees.
//
// # Overview
//
// A [Tree] holds nodes in a flat arena. Each node carries a [Spec] (how big
// it wants to be, which way it stacks its children, how it aligns them) and,
// after [Tree.ComputeLayout], a [Result] rectangle. The tree is rebuilt from
// scratch every frame: [Tree.Clear] empties it while keeping its memory, and
// nodes are appended with [Tree.Add]. There is no incremental layout and no
// removal of single nodes.
//
//	tree := layout.NewTree()
//	root := tree.MustAdd(layout.NoParent, layout.Spec{Width: layout.Fixed(800), Height: layout.Fixed(600)})
//	tree.MustAdd(root, layout.Spec{Width: layout.Fixed(200), Height: layout.Grow()})
//	tree.MustAdd(root, layout.Spec{Width: layout.Grow(), Height: layout.Grow()})
//	if err := tree.ComputeLayout(nil); err != nil {
//	    return err
//	}
//
// # Sizes
//
// Each axis of a node has one of four policies:
//
//   - [Fixed]: exactly the given size.
//   - [Fit]: the size of the content (children plus padding and spacing),
//     clamped to a range. The zero [Size] is an unbounded Fit.
//   - [Grow]: whatever its parent has left over, shared evenly with other
//     Grow siblings.
//   - [Flex]: starts at its maximum along the stacking axis and gives space
//     back, down to its minimum, when the parent is too small. Along the
//     cross axis it fits its content within the range. Text uses Flex with
//     its min-content and max-content widths.
//
// # Axes
//
// The solver works in terms of a major axis (the one children stack along)
// and a minor axis. The root must stack horizontally; nested containers may
// stack either way and the solver swaps axes as it descends into them.
//
// # Content
//
// Nodes with intrinsic content, typically wrapped text, report their height
// through a [Measurer]. The solver calls it once per node after all widths
// are final, then fits heights with the reported values. [MeasureFunc] and
// [MeasureTable] cover the common cases.
//
// # Errors
//
// [Tree.Add] and the setters reject handles from a cleared frame or another
// tree with an INVALID_NODE error; [Tree.ComputeLayout] rejects a vertical
// root with INVALID_ROOT. Numeric edge cases (overflowing children, padding
// larger than the node) are never errors and produce clamped or zero sizes.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. The Measurer is called synchronously
// from the goroutine running ComputeLayout.
package layout
