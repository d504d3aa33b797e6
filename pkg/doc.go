// Package pkg provides the core libraries for plinth box-model layout.
//
// # Overview
//
// Plinth computes the rectangles of a tree of nested boxes and text, in the
// manner of a flexbox-lite: every node stacks its children horizontally or
// vertically and sizes itself as Fixed, Fit (content), Grow (fill) or Flex
// (fill within bounds). The pkg directory is organized into four areas:
//
//  1. [layout] - The solver: tree arena, size policies, the seven passes
//  2. [text], [frame] - Content: text measurement and the per-frame builder
//  3. [io], [render] - Documents in, artifacts out
//  4. [pipeline], [cache], [observability] - Orchestration shared by CLI and server
//
// # Architecture
//
// The typical data flow through plinth:
//
//	JSON / TOML / YAML document
//	         ↓
//	    [io] package (parse, validate, build)
//	         ↓
//	    [frame] package (builder + text side table)
//	         ↓
//	    [layout] package (solve the tree)
//	         ↓
//	    [render] package (SVG/PNG/PDF/JSON/DOT)
//
// # Quick Start
//
// Build a frame by hand and render it:
//
//	face, _ := text.DefaultFace(text.DefaultSize)
//	f := frame.New(text.NewMeasurer(face, 1))
//
//	root := f.Begin(800, 600)
//	col := root.AddContainer().
//	    WithDirection(layout.Vertical).
//	    WithSize(layout.Grow(), layout.Grow()).
//	    WithPadding(layout.PadAll(16))
//	col.AddRect(color.NRGBA{B: 255, A: 255}, layout.Grow(), layout.Fixed(48))
//	col.AddText("Hello, plinth", frame.TextStyle{}, layout.FitContent(), frame.Transparent)
//
//	list, _ := f.Finish()
//	svg := render.RenderSVG(list)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Source{Path: "page.toml"}, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//
// # Main Packages
//
// [layout] - Arena of nodes addressed by generational [layout.NodeID]s.
// ComputeLayout runs major fit, major grow, content measurement, minor fit,
// minor grow and both offset passes. No allocation after warm-up.
//
// [text] - Font faces, greedy word wrap with per-line alignment, an LRU of
// wrapped layouts and a generational pool for per-frame text.
//
// [frame] - Builder API over the layout tree. Records fill colours and text
// for each node and turns a solved tree into a [frame.DrawList].
//
// [io] - Document format (JSON, TOML, YAML) and the layout JSON export.
//
// [render] - SVG, PNG, PDF (via rsvg-convert), layout JSON, Graphviz DOT and
// DOT rendered through go-graphviz.
//
// [pipeline] - Load → layout → render used by the CLI and HTTP server.
// Ensures consistent behavior across all entry points.
//
// [cache] - File, Redis and no-op caches plus the key scheme.
//
// [observability] - Hooks for load, layout, render, cache and HTTP events.
//
// [errors] - Error codes, wrapping and input validation.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/layout    # Examples only
//	go test -bench . ./pkg/layout        # Solver benchmarks
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/plinth/pkg/layout
// [text]: https://pkg.go.dev/github.com/matzehuels/plinth/pkg/text
// [frame]: https://pkg.go.dev/github.com/matzehuels/plinth/pkg/frame
// [io]: https://pkg.go.dev/github.com/matzehuels/plinth/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/plinth/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/plinth/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/plinth/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/plinth/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/plinth/pkg/errors
package pkg
