// Package pipeline runs the load → layout → render pipeline for plinth.
//
// The CLI and the HTTP server share this package so both apply the same
// defaults, validation and caching.
//
// # Architecture
//
//  1. Load: read a JSON, TOML or YAML document and validate it
//  2. Layout: build a frame from the document and solve it
//  3. Render: produce artifacts (SVG, PNG, PDF, JSON, DOT)
//
// Layout JSON and rendered artifacts are cached under keys derived from the
// document's content hash and the options that affect the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Source{Path: "ui.toml"}, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plinth/pkg/cache"
	"github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/frame"
	pio "github.com/matzehuels/plinth/pkg/io"
	"github.com/matzehuels/plinth/pkg/render"
	"github.com/matzehuels/plinth/pkg/text"
)

const (
	// DefaultFontSize is the text size in pixels.
	DefaultFontSize = text.DefaultSize

	// DefaultLineHeight is the line height as a multiple of the font's.
	DefaultLineHeight = 1.0

	// DefaultScale is the raster scale for PNG output.
	DefaultScale = 1.0

	// MaxViewport bounds each viewport dimension.
	MaxViewport = pio.MaxViewport

	// MaxScale bounds the raster scale.
	MaxScale = 8.0
)

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{string(render.FormatSVG)}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. A zero viewport dimension falls back to the document's
	// viewport, then to io.DefaultViewport.
	Width      float32 `json:"width,omitempty"`
	Height     float32 `json:"height,omitempty"`
	Font       string  `json:"-"`
	FontSize   float32 `json:"font_size,omitempty"`
	LineHeight float32 `json:"line_height,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Outlines bool     `json:"outlines,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Document *pio.Document
	// DocHash is the content hash of the normalized document.
	DocHash string

	// Frame and DrawList are nil when every output came from the cache.
	Frame    *frame.Frame
	DrawList *frame.DrawList

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout JSON came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid. Names are case-sensitive.
func ValidateFormat(format string) error {
	for _, f := range render.Formats {
		if string(f) == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, formatList())
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatList() string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ValidateAndSetDefaults checks every option and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.LineHeight == 0 {
		o.LineHeight = DefaultLineHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	for _, d := range []struct {
		name string
		v    float32
	}{{"width", o.Width}, {"height", o.Height}} {
		if err := errors.ValidateDimension(d.name, float64(d.v)); err != nil {
			return err
		}
		if d.v > MaxViewport {
			return errors.New(errors.ErrCodeInvalidSize, "%s %v exceeds %v", d.name, d.v, MaxViewport)
		}
	}
	if o.FontSize <= 0 || math.IsInf(float64(o.FontSize), 0) || math.IsNaN(float64(o.FontSize)) {
		return errors.New(errors.ErrCodeInvalidInput, "font_size must be positive, got %v", o.FontSize)
	}
	if o.LineHeight <= 0 || math.IsInf(float64(o.LineHeight), 0) || math.IsNaN(float64(o.LineHeight)) {
		return errors.New(errors.ErrCodeInvalidInput, "line_height must be positive, got %v", o.LineHeight)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 || o.Scale > MaxScale || math.IsNaN(o.Scale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %v], got %v", MaxScale, o.Scale)
	}
	return nil
}

// Viewport resolves the viewport for doc: explicit options first, then the
// document, then io.DefaultViewport. Each dimension falls back separately.
func (o *Options) Viewport(doc *pio.Document) pio.Viewport {
	vp := doc.ViewportOr(nil)
	if o.Width > 0 {
		vp.Width = o.Width
	}
	if o.Height > 0 {
		vp.Height = o.Height
	}
	return vp
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(vp pio.Viewport) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:      vp.Width,
		Height:     vp.Height,
		Font:       o.Font,
		FontSize:   o.FontSize,
		LineHeight: o.LineHeight,
	}
}

// RenderKeyOpts returns cache key options for one artifact.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	opts := cache.RenderKeyOpts{Format: format, Outlines: o.Outlines}
	if format == string(render.FormatPNG) {
		opts.Scale = o.Scale
	}
	return opts
}

func (o *Options) renderOptions(face *text.Face) render.Options {
	return render.Options{Face: face, Scale: o.Scale, Outlines: o.Outlines}
}
