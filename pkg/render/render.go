package render

import (
	"context"
	"strings"

	"github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/frame"
	"github.com/matzehuels/plinth/pkg/text"
)

// Format is an output format.
type Format string

const (
	FormatSVG    Format = "svg"
	FormatPNG    Format = "png"
	FormatPDF    Format = "pdf"
	FormatJSON   Format = "json"
	FormatDOT    Format = "dot"
	FormatDOTSVG Format = "dot-svg"
)

// Formats lists every supported output format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatDOTSVG}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", s)
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string {
	if f == FormatDOTSVG {
		return "svg"
	}
	return string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG, FormatDOTSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// Options are shared by all formats. Fields a format does not use are
// ignored.
type Options struct {
	// Face draws text in raster output. Defaults to the measurer's face.
	Face *text.Face
	// Scale magnifies raster output.
	Scale float64
	// Outlines strokes every node's rectangle, filled or not.
	Outlines bool
}

// Render produces one artifact from a finished frame.
func Render(ctx context.Context, f *frame.Frame, list *frame.DrawList, format Format, opts Options) ([]byte, error) {
	if f == nil || list == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render: frame not finished")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var svgOpts []SVGOption
	if opts.Outlines {
		svgOpts = append(svgOpts, WithOutlines(f.Tree()))
	}
	if opts.Face != nil {
		svgOpts = append(svgOpts, WithFontSize(opts.Face.Size()), WithFontFamily(opts.Face.Family()))
	}

	switch format {
	case FormatSVG:
		return RenderSVG(list, svgOpts...), nil
	case FormatPDF:
		return ToPDF(ctx, RenderSVG(list, svgOpts...))
	case FormatPNG:
		if opts.Face == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "png output needs a font face")
		}
		var pngOpts []PNGOption
		if opts.Scale > 0 {
			pngOpts = append(pngOpts, WithScale(opts.Scale))
		}
		if opts.Outlines {
			pngOpts = append(pngOpts, WithPNGOutlines(f.Tree()))
		}
		return RenderPNG(list, opts.Face, pngOpts...)
	case FormatJSON:
		return RenderJSON(f, list)
	case FormatDOT:
		return []byte(ToDOT(f)), nil
	case FormatDOTSVG:
		return RenderDOTSVG(ctx, ToDOT(f))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "format %q", format)
}
