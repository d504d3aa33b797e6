package text

import (
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/plinth/pkg/errors"
)

// DefaultSize is the font size in pixels used when none is configured.
const DefaultSize = 16

// Face is a parsed OpenType font at a fixed pixel size.
//
// A Face is safe for concurrent use; glyph lookups share one sfnt.Buffer
// behind a mutex.
type Face struct {
	font    *sfnt.Font
	family  string
	size    float32
	ppem    fixed.Int26_6
	metrics font.Metrics

	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewFace returns a face for f at size pixels per em.
func NewFace(f *sfnt.Font, size float32) (*Face, error) {
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "font size must be positive, got %v", size)
	}
	face := &Face{font: f, size: size, ppem: fixed.Int26_6(size * 64)}
	m, err := f.Metrics(&face.buf, face.ppem, font.HintingNone)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read font metrics")
	}
	face.metrics = m
	if name, err := f.Name(&face.buf, sfnt.NameIDFamily); err == nil {
		face.family = name
	}
	return face, nil
}

// DefaultFace returns Go Regular at the given size.
func DefaultFace(size float32) (*Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded font")
	}
	return NewFace(f, size)
}

// LoadFace reads a TTF or OTF file. An empty path loads the default font.
func LoadFace(path string, size float32) (*Face, error) {
	if path == "" {
		return DefaultFace(size)
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read font %s", path)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse font %s", path)
	}
	return NewFace(f, size)
}

// Size returns the font size in pixels.
func (f *Face) Size() float32 { return f.size }

// Family returns the font's family name, or "" when the font has no name
// table entry for it.
func (f *Face) Family() string { return f.family }

// Ascent returns the distance from the top of a line to the baseline.
func (f *Face) Ascent() float32 { return toFloat(f.metrics.Ascent) }

// Descent returns the distance from the baseline to the bottom of a line.
func (f *Face) Descent() float32 { return toFloat(f.metrics.Descent) }

// Height returns the recommended line height of the font.
func (f *Face) Height() float32 { return toFloat(f.metrics.Height) }

// Width returns the advance width of s on a single line, including kerning.
func (f *Face) Width(s string) float32 {
	f.mu.Lock()
	defer f.mu.Unlock()

	var (
		total fixed.Int26_6
		prev  sfnt.GlyphIndex
		first = true
	)
	for _, r := range s {
		g, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		if !first {
			if k, err := f.font.Kern(&f.buf, prev, g, f.ppem, font.HintingNone); err == nil {
				total += k
			}
		}
		adv, err := f.font.GlyphAdvance(&f.buf, g, f.ppem, font.HintingNone)
		if err == nil {
			total += adv
		}
		prev, first = g, false
	}
	return toFloat(total)
}

// Drawer returns an x/image font.Face for rasterizing text with this font,
// magnified by scale.
func (f *Face) Drawer(scale float64) (font.Face, error) {
	if scale <= 0 {
		scale = 1
	}
	d, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(f.size) * scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create font face")
	}
	return d, nil
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
