package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/plinth/pkg/frame"
	"github.com/matzehuels/plinth/pkg/layout"
)

// ToDOT describes the node hierarchy of a frame as a Graphviz digraph, one
// box per node labelled with its name, direction and solved rectangle.
// Nodes with a background are filled with it.
func ToDOT(f *frame.Frame) string {
	t := f.Tree()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for id, n := range t.Nodes() {
		fmt.Fprintf(&buf, "  n%d [%s];\n", id.Index(), strings.Join(dotAttrs(f, id, n), ", "))
	}

	buf.WriteString("\n")
	for id := range t.Nodes() {
		for _, c := range t.Children(id) {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", id.Index(), c.Index())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotAttrs(f *frame.Frame, id layout.NodeID, n layout.Node) []string {
	name := f.Name(id)
	if name == "" {
		name = id.String()
	}
	label := fmt.Sprintf("%s\n%s %s", name, n.Direction, n.Result)
	if s, ok := f.Text(id); ok {
		label += "\n" + strconv.Quote(truncate(s, 24))
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c := f.Color(id); c.A != 0 {
		attrs = append(attrs,
			fmt.Sprintf("fillcolor=%q", svgColor(c)),
			fmt.Sprintf("fontcolor=%q", svgColor(frame.ContrastText(c))))
	}
	if n.Result.Empty() {
		attrs = append(attrs, `style="rounded,dashed"`)
	}
	return attrs
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-2]) + ".."
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
