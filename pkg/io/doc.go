// Package io reads layout documents and writes solved layouts.
//
// # Documents
//
// A document describes a tree of boxes in JSON, TOML or YAML. Every format
// carries the same fields:
//
//	{
//	  "viewport": {"width": 800, "height": 600},
//	  "root": {
//	    "direction": "vertical",
//	    "padding": 8,
//	    "spacing": 4,
//	    "children": [
//	      {"name": "header", "height": 40, "width": "grow", "color": "#336699"},
//	      {"text": "Hello, world", "text_align": "center"}
//	    ]
//	  }
//	}
//
// Node fields:
//
//   - name: label used in exports and draw commands
//   - direction: "horizontal" (default) or "vertical"
//   - width, height: a number for a fixed size, or "fit", "fit(min,max)",
//     "grow", "flex(min,max)"; omitted sizes fit their content
//   - padding: a number, or an object with left/right/top/bottom or x/y
//   - spacing: gap between children
//   - align.major, align.minor: "start", "center", "end" or "justify"
//   - color: background, as a name, #rgb, #rrggbb, #rrggbbaa or hsl(h,s,l)
//   - text, text_align, text_color: wrapped text content
//
// Unknown fields are errors in every format.
//
// # Building
//
// [Document.Build] adds the tree to a [frame.Frame] under a window root of
// the viewport size. The document root is the window's only child, so it may
// stack vertically even though the window stacks horizontally.
//
//	doc, err := io.Load("ui.toml", "")
//	f := frame.New(measurer)
//	if err := doc.Build(f, nil); err != nil { ... }
//	list, err := f.Finish()
//
// # Layout Export
//
// [WriteLayoutJSON] writes every node of a finished frame with its absolute
// rectangle, parent index, color and wrapped text lines. Nodes appear in
// construction order, which is a pre-order walk of the tree.
package io
