package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/plinth/pkg/errors"
)

// Unbounded is the largest representable size. Fit and Flex sizes use it
// as their maximum when no upper bound is wanted.
const Unbounded float32 = math.MaxFloat32

// SizeKind selects how a node is sized along one axis.
type SizeKind uint8

const (
	// KindFit sizes a node to its content, clamped to [Min, Max].
	KindFit SizeKind = iota
	// KindFixed sizes a node to exactly Value.
	KindFixed
	// KindGrow claims an even share of the space left by its siblings.
	KindGrow
	// KindFlex starts at Max and gives space back down to Min when its
	// parent is too small. Text uses it with its max-content width as Max.
	KindFlex
)

func (k SizeKind) String() string {
	switch k {
	case KindFit:
		return "fit"
	case KindFixed:
		return "fixed"
	case KindGrow:
		return "grow"
	case KindFlex:
		return "flex"
	default:
		return fmt.Sprintf("SizeKind(%d)", uint8(k))
	}
}

// Size is a single-axis size policy.
//
// The zero Size is Fit with no bounds, so a zero Spec shrinks to its content
// on both axes.
type Size struct {
	kind    SizeKind
	min     float32 // Fixed stores its value here
	max     float32
	bounded bool // max is meaningful; unbounded Fit reports Unbounded
}

// Fixed returns a size of exactly v.
func Fixed(v float32) Size {
	return Size{kind: KindFixed, min: v}
}

// Fit returns a content-sized size clamped to [lo, hi].
func Fit(lo, hi float32) Size {
	if hi >= Unbounded {
		return Size{kind: KindFit, min: lo}
	}
	return Size{kind: KindFit, min: lo, max: hi, bounded: true}
}

// FitContent returns an unclamped content size. It equals the zero Size.
func FitContent() Size {
	return Size{}
}

// Grow returns a size that absorbs all unclaimed space.
func Grow() Size {
	return Size{kind: KindGrow}
}

// Flex returns a size that prefers hi and shrinks no further than lo.
func Flex(lo, hi float32) Size {
	return Size{kind: KindFlex, min: lo, max: hi, bounded: true}
}

// Kind reports the sizing policy.
func (s Size) Kind() SizeKind { return s.kind }

// Value returns the exact size of a Fixed size and 0 otherwise.
func (s Size) Value() float32 {
	if s.kind != KindFixed {
		return 0
	}
	return s.min
}

// Min returns the lower bound of a Fit or Flex size.
func (s Size) Min() float32 {
	switch s.kind {
	case KindFit, KindFlex:
		return s.min
	case KindFixed:
		return s.min
	default:
		return 0
	}
}

// Max returns the upper bound of a Fit or Flex size.
func (s Size) Max() float32 {
	switch s.kind {
	case KindFit, KindFlex:
		if !s.bounded {
			return Unbounded
		}
		return s.max
	case KindFixed:
		return s.min
	default:
		return Unbounded
	}
}

// String formats the size in the same syntax ParseSize accepts.
func (s Size) String() string {
	switch s.kind {
	case KindFixed:
		return formatFloat(s.min)
	case KindGrow:
		return "grow"
	case KindFlex:
		return fmt.Sprintf("flex(%s,%s)", formatFloat(s.min), formatBound(s.Max()))
	default:
		if s.min == 0 && !s.bounded {
			return "fit"
		}
		return fmt.Sprintf("fit(%s,%s)", formatFloat(s.min), formatBound(s.Max()))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(b []byte) error {
	v, err := ParseSize(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSize parses a size expression:
//
//	"120"            Fixed(120)
//	"fit"            Fit with no bounds
//	"fit(10,200)"    Fit clamped to [10, 200]
//	"grow"           Grow
//	"flex(40,300)"   Flex between 40 and 300
//
// "inf" may be used as a bound.
func ParseSize(s string) (Size, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "fit", "auto":
		return FitContent(), nil
	case "grow":
		return Grow(), nil
	}

	if name, args, ok := splitCall(s); ok {
		lo, hi, err := parseBounds(args)
		if err != nil {
			return Size{}, errors.Wrap(errors.ErrCodeInvalidSize, err, "parse %q", s)
		}
		if lo > hi {
			return Size{}, errors.New(errors.ErrCodeInvalidSize, "%q: min exceeds max", s)
		}
		switch name {
		case "fit":
			return Fit(lo, hi), nil
		case "flex":
			return Flex(lo, hi), nil
		case "fixed":
			if lo != hi {
				return Size{}, errors.New(errors.ErrCodeInvalidSize, "%q: fixed takes one value", s)
			}
			return Fixed(lo), nil
		}
		return Size{}, errors.New(errors.ErrCodeInvalidSize, "unknown size function %q", name)
	}

	v, err := parseFloat(s)
	if err != nil {
		return Size{}, errors.Wrap(errors.ErrCodeInvalidSize, err, "parse %q", s)
	}
	if v < 0 {
		return Size{}, errors.New(errors.ErrCodeInvalidSize, "%q: size must be non-negative", s)
	}
	return Fixed(v), nil
}

func splitCall(s string) (name, args string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	return strings.TrimSpace(s[:open]), s[open+1 : len(s)-1], true
}

func parseBounds(args string) (float32, float32, error) {
	parts := strings.Split(args, ",")
	if len(parts) == 1 {
		v, err := parseFloat(parts[0])
		return v, v, err
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want 1 or 2 arguments, got %d", len(parts))
	}
	lo, err := parseFloat(parts[0])
	if err != nil {
		return 0, 0, err
	}
	hi, err := parseFloat(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if lo < 0 || hi < 0 {
		return 0, 0, fmt.Errorf("bounds must be non-negative")
	}
	return lo, hi, nil
}

func parseFloat(s string) (float32, error) {
	s = strings.TrimSpace(s)
	if s == "inf" || s == "max" {
		return Unbounded, nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("size must be finite")
	}
	return float32(v), nil
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

func formatBound(v float32) string {
	if v >= Unbounded {
		return "inf"
	}
	return formatFloat(v)
}

// Direction is the axis along which a node stacks its children.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseDirection parses "horizontal"/"row" or "vertical"/"column".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "row", "h":
		return Horizontal, nil
	case "vertical", "column", "v":
		return Vertical, nil
	}
	return Horizontal, errors.New(errors.ErrCodeInvalidDocument, "unknown direction %q", s)
}

// Alignment positions children within their parent.
type Alignment uint8

const (
	Start Alignment = iota
	Center
	End
	// Justify spreads children along the major axis, never closer than the
	// configured spacing. On the minor axis it behaves like Start.
	Justify
)

func (a Alignment) String() string {
	switch a {
	case Center:
		return "center"
	case End:
		return "end"
	case Justify:
		return "justify"
	default:
		return "start"
	}
}

// ParseAlignment parses an alignment name.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start":
		return Start, nil
	case "center", "middle":
		return Center, nil
	case "end":
		return End, nil
	case "justify", "space-between":
		return Justify, nil
	}
	return Start, errors.New(errors.ErrCodeInvalidDocument, "unknown alignment %q", s)
}

// Padding is the inner spacing between a node's edges and its children.
type Padding struct {
	Left, Right, Top, Bottom float32
}

// PadAll returns the same padding on all four sides.
func PadAll(v float32) Padding {
	return Padding{Left: v, Right: v, Top: v, Bottom: v}
}

// PadSymmetric returns vertical (top/bottom) and horizontal (left/right) padding.
func PadSymmetric(v, h float32) Padding {
	return Padding{Left: h, Right: h, Top: v, Bottom: v}
}

// Horizontal returns the sum of Left and Right.
func (p Padding) Horizontal() float32 { return p.Left + p.Right }

// Vertical returns the sum of Top and Bottom.
func (p Padding) Vertical() float32 { return p.Top + p.Bottom }

// clamp restricts v to [lo, hi]. If lo > hi, lo wins.
func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if hi >= lo && v > hi {
		return hi
	}
	return v
}
