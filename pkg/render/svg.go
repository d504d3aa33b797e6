package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/plinth/pkg/frame"
	"github.com/matzehuels/plinth/pkg/layout"
)

const nodeCSS = `
    .node:hover { stroke: #000; stroke-width: 2; }`

// outlineColor strokes node bounds in debug output.
var outlineColor = color.NRGBA{R: 0xff, A: 0xff}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	outlines   []layout.Result
	fontSize   float32
	fontFamily string
}

// WithOutlines strokes the bounds of every non-empty node of t, including
// transparent ones.
func WithOutlines(t *layout.Tree) SVGOption {
	return func(r *svgRenderer) { r.outlines = outlines(t) }
}

// WithFontSize sets the font-size attribute of text lines.
func WithFontSize(px float32) SVGOption { return func(r *svgRenderer) { r.fontSize = px } }

// WithFontFamily sets the font-family of text lines. It should name the face
// text was measured with, or wrapped lines may overflow their boxes.
func WithFontFamily(name string) SVGOption {
	return func(r *svgRenderer) {
		if name == "" {
			return
		}
		if strings.ContainsAny(name, " ,") {
			name = "'" + name + "'"
		}
		r.fontFamily = name + ", sans-serif"
	}
}

// RenderSVG draws the commands of a draw list as SVG rectangles and text
// lines, in list order.
func RenderSVG(list *frame.DrawList, opts ...SVGOption) []byte {
	r := svgRenderer{fontSize: 16, fontFamily: "Go, sans-serif"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		list.Width, list.Height, list.Width, list.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nodeCSS)

	for _, c := range list.Commands {
		switch c.Kind {
		case frame.KindRect:
			r.rect(&buf, c)
		case frame.KindText:
			r.text(&buf, c)
		}
	}
	if len(r.outlines) > 0 {
		r.outlineAll(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) rect(buf *bytes.Buffer, c frame.Command) {
	fmt.Fprintf(buf, `  <rect class="node" data-node="%d"`, c.Node.Index())
	if c.Name != "" {
		fmt.Fprintf(buf, ` id="%s"`, escapeXML(c.Name))
	}
	fmt.Fprintf(buf, ` x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n",
		c.Rect.X, c.Rect.Y, c.Rect.Width, c.Rect.Height, svgColor(c.Color), opacity("fill-opacity", c.Color))
}

func (r *svgRenderer) text(buf *bytes.Buffer, c frame.Command) {
	if c.Text == nil || len(c.Text.Lines) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g class="text" data-node="%d" font-family="%s" font-size="%.2f" fill="%s"%s>`+"\n",
		c.Node.Index(), escapeXML(r.fontFamily), r.fontSize, svgColor(c.Color), opacity("fill-opacity", c.Color))
	for i, line := range c.Text.Lines {
		x := c.Origin.X + line.X
		y := c.Origin.Y + c.Text.Baseline(i)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f"`, x, y)
		if line.WordSpacing > 0 {
			fmt.Fprintf(buf, ` word-spacing="%.2f"`, line.WordSpacing)
		}
		fmt.Fprintf(buf, ` xml:space="preserve">%s</text>`+"\n", escapeXML(line.Text))
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) outlineAll(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <g class="outlines" fill="none" stroke="%s" stroke-width="1">`+"\n", svgColor(outlineColor))
	for _, o := range r.outlines {
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
			o.X+0.5, o.Y+0.5, max(0, o.Width-1), max(0, o.Height-1))
	}
	buf.WriteString("  </g>\n")
}

func outlines(t *layout.Tree) []layout.Result {
	if t == nil {
		return nil
	}
	var out []layout.Result
	for _, n := range t.Nodes() {
		if !n.Result.Empty() {
			out = append(out, n.Result)
		}
	}
	return out
}

func svgColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(attr string, c color.NRGBA) string {
	if c.A == 0xff {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, attr, float64(c.A)/255)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
