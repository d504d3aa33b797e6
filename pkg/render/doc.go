// Package render turns a finished frame into output artifacts.
//
// # Overview
//
// Every sink reads the [frame.DrawList] produced by [frame.Frame.Finish]:
//
//   - [RenderSVG]: rectangles and text lines as SVG
//   - [RenderPNG]: software rasterization with image/draw and x/image/font
//   - [ToPDF]: SVG converted by the external rsvg-convert tool
//   - [RenderJSON]: every node with its solved rectangle
//   - [ToDOT] and [RenderDOTSVG]: the node hierarchy as a Graphviz graph,
//     rendered through go-graphviz
//
// [Render] dispatches on a [Format] and is what the pipeline and the CLI
// call:
//
//	list, err := f.Finish()
//	svg, err := render.Render(ctx, f, list, render.FormatSVG, render.Options{})
//
// # Text
//
// Text commands carry a wrapped [text.Layout]. SVG output writes one <text>
// element per line at its baseline; justified lines set word-spacing. PNG
// output draws the same lines with the face that measured them, so line
// breaks match the layout exactly. SVG viewers substitute their own font and
// may not.
//
// # Debugging
//
// [Options.Outlines] strokes the bounds of every node with area, including
// transparent containers, which makes padding and spacing visible.
package render
