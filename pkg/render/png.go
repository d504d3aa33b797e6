package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/frame"
	"github.com/matzehuels/plinth/pkg/layout"
	"github.com/matzehuels/plinth/pkg/text"
)

// MaxPixels bounds the size of a rendered PNG after scaling, 64 megapixels
// or 256 MiB of NRGBA.
const MaxPixels = 1 << 26

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale    float64
	outlines []layout.Result
}

// WithScale sets the PNG scale factor (default 1). A scale of 2 produces an
// image suitable for high-DPI displays.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGOutlines strokes the bounds of every non-empty node of t.
func WithPNGOutlines(t *layout.Tree) PNGOption {
	return func(r *pngRenderer) { r.outlines = outlines(t) }
}

// RenderPNG rasterizes a draw list in software. Text is drawn with face at
// the same scale as the boxes.
func RenderPNG(list *frame.DrawList, face *text.Face, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsInf(r.scale, 0) || math.IsNaN(r.scale) {
		return nil, fmt.Errorf("invalid scale %v", r.scale)
	}

	w, h := r.px(list.Width), r.px(list.Height)
	if w < 0 || h < 0 || int64(w)*int64(h) > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidSize,
			"png of %dx%d pixels exceeds %d pixels; lower the scale or the viewport", w, h, MaxPixels)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	drawer, err := face.Drawer(r.scale)
	if err != nil {
		return nil, err
	}
	defer drawer.Close()

	for _, c := range list.Commands {
		switch c.Kind {
		case frame.KindRect:
			draw.Draw(img, r.rect(c.Rect), image.NewUniform(c.Color), image.Point{}, draw.Over)
		case frame.KindText:
			r.text(img, drawer, c)
		}
	}
	for _, o := range r.outlines {
		r.stroke(img, o)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) px(v float32) int {
	return int(math.Round(float64(v) * r.scale))
}

func (r *pngRenderer) rect(res layout.Result) image.Rectangle {
	return image.Rect(r.px(res.X), r.px(res.Y), r.px(res.Right()), r.px(res.Bottom()))
}

func (r *pngRenderer) text(img draw.Image, face font.Face, c frame.Command) {
	if c.Text == nil {
		return
	}
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c.Color), Face: face}
	for i, line := range c.Text.Lines {
		x := float64(c.Origin.X+line.X) * r.scale
		y := float64(c.Origin.Y+c.Text.Baseline(i)) * r.scale
		d.Dot = fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
		if line.WordSpacing <= 0 {
			d.DrawString(line.Text)
			continue
		}
		extra := toFixed(float64(line.WordSpacing) * r.scale)
		for j, word := range strings.Split(line.Text, " ") {
			if j > 0 {
				d.DrawString(" ")
				d.Dot.X += extra
			}
			d.DrawString(word)
		}
	}
}

func (r *pngRenderer) stroke(img *image.NRGBA, res layout.Result) {
	b := r.rect(res)
	if b.Empty() {
		return
	}
	src := image.NewUniform(outlineColor)
	edges := []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+1),
		image.Rect(b.Min.X, b.Max.Y-1, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, b.Min.Y, b.Min.X+1, b.Max.Y),
		image.Rect(b.Max.X-1, b.Min.Y, b.Max.X, b.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Src)
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
