package frame

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/plinth/pkg/errors"
)

// Common colors.
var (
	Transparent = color.NRGBA{}
	White       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black       = color.NRGBA{A: 0xff}
)

var namedColors = map[string]color.NRGBA{
	"transparent": Transparent,
	"none":        Transparent,
	"white":       White,
	"black":       Black,
	"red":         {R: 0xff, A: 0xff},
	"green":       {G: 0x80, A: 0xff},
	"blue":        {B: 0xff, A: 0xff},
	"gray":        {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":        {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
}

// ParseColor parses a color in one of these forms:
//
//	"#f0c", "#ff00cc"       opaque hex
//	"#ff00cc80"             hex with alpha
//	"hsl(200, 50%, 40%)"    hue in degrees, saturation and lightness in percent
//	"white", "transparent"  a small set of names
//
// The empty string is Transparent.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Transparent, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "hsl(") && strings.HasSuffix(s, ")") {
		return parseHSL(s[4 : len(s)-1])
	}
	if !strings.HasPrefix(s, "#") {
		return Transparent, errors.New(errors.ErrCodeInvalidDocument, "unknown color %q", s)
	}

	alpha := uint8(0xff)
	switch len(s) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Transparent, errors.Wrap(errors.ErrCodeInvalidDocument, err, "color %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	default:
		return Transparent, errors.New(errors.ErrCodeInvalidDocument, "color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Transparent, errors.Wrap(errors.ErrCodeInvalidDocument, err, "color %q", s)
	}
	return toNRGBA(c, alpha), nil
}

func parseHSL(args string) (color.NRGBA, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return Transparent, errors.New(errors.ErrCodeInvalidDocument, "hsl(%s): want 3 components", args)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(p), "%"), 64)
		if err != nil {
			return Transparent, errors.Wrap(errors.ErrCodeInvalidDocument, err, "hsl(%s)", args)
		}
		v[i] = f
	}
	return toNRGBA(colorful.Hsl(v[0], v[1]/100, v[2]/100).Clamped(), 0xff), nil
}

// FormatColor formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func FormatColor(c color.NRGBA) string {
	hex := fromNRGBA(c).Hex()
	if c.A == 0xff {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, c.A)
}

// ContrastText returns black or white, whichever reads better on bg.
func ContrastText(bg color.NRGBA) color.NRGBA {
	if bg.A == 0 {
		return Black
	}
	l, _, _ := fromNRGBA(bg).Lab()
	if l > 0.6 {
		return Black
	}
	return White
}

// Blend mixes a and b in Lab space; t=0 is a, t=1 is b.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	alpha := float64(a.A)*(1-t) + float64(b.A)*t
	return toNRGBA(fromNRGBA(a).BlendLab(fromNRGBA(b), t).Clamped(), uint8(alpha+0.5))
}

func toNRGBA(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

func fromNRGBA(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
