package layout

import (
	"testing"

	"github.com/matzehuels/plinth/pkg/errors"
)

func TestSizeZeroValueIsFitContent(t *testing.T) {
	var s Size
	if s.Kind() != KindFit {
		t.Fatalf("zero Size kind = %v, want fit", s.Kind())
	}
	if s.Min() != 0 || s.Max() != Unbounded {
		t.Errorf("zero Size bounds = [%v, %v], want [0, Unbounded]", s.Min(), s.Max())
	}
	if s != FitContent() {
		t.Error("zero Size should equal FitContent()")
	}
	if Fit(0, Unbounded) != FitContent() {
		t.Error("Fit(0, Unbounded) should equal FitContent()")
	}
}

func TestSizeAccessors(t *testing.T) {
	tests := []struct {
		name     string
		size     Size
		kind     SizeKind
		value    float32
		min, max float32
	}{
		{"fixed", Fixed(12), KindFixed, 12, 12, 12},
		{"fit", Fit(5, 50), KindFit, 0, 5, 50},
		{"grow", Grow(), KindGrow, 0, 0, Unbounded},
		{"flex", Flex(10, 80), KindFlex, 0, 10, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.size.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.size.Kind(), tt.kind)
			}
			if tt.size.Value() != tt.value {
				t.Errorf("Value() = %v, want %v", tt.size.Value(), tt.value)
			}
			if tt.size.Min() != tt.min || tt.size.Max() != tt.max {
				t.Errorf("bounds = [%v, %v], want [%v, %v]", tt.size.Min(), tt.size.Max(), tt.min, tt.max)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want Size
	}{
		{"", FitContent()},
		{"fit", FitContent()},
		{"auto", FitContent()},
		{" Fit(10, 200) ", Fit(10, 200)},
		{"fit(10,inf)", Fit(10, Unbounded)},
		{"grow", Grow()},
		{"flex(40,300)", Flex(40, 300)},
		{"120", Fixed(120)},
		{"12.5", Fixed(12.5)},
		{"fixed(8)", Fixed(8)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if err != nil {
				t.Fatalf("ParseSize(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSizeErrors(t *testing.T) {
	for _, in := range []string{"-5", "wide", "fit(1,2,3)", "flex(50,10)", "fit(a,b)", "shrink(1,2)", "fixed(1,2)", "NaN"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseSize(in)
			if err == nil {
				t.Fatalf("ParseSize(%q) expected error", in)
			}
			if !errors.Is(err, errors.ErrCodeInvalidSize) {
				t.Errorf("ParseSize(%q) code = %v, want %v", in, errors.GetCode(err), errors.ErrCodeInvalidSize)
			}
		})
	}
}

func TestSizeStringRoundTrip(t *testing.T) {
	for _, s := range []Size{Fixed(3), FitContent(), Fit(2, 9), Fit(4, Unbounded), Grow(), Flex(1, 7)} {
		got, err := ParseSize(s.String())
		if err != nil {
			t.Fatalf("ParseSize(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("round trip of %v gave %v", s, got)
		}
	}
}

func TestSizeUnmarshalText(t *testing.T) {
	var s Size
	if err := s.UnmarshalText([]byte("flex(2,4)")); err != nil {
		t.Fatal(err)
	}
	if s != Flex(2, 4) {
		t.Errorf("UnmarshalText = %v, want flex(2,4)", s)
	}
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for bogus size")
	}
}

func TestParseDirectionAndAlignment(t *testing.T) {
	if d, err := ParseDirection("column"); err != nil || d != Vertical {
		t.Errorf("ParseDirection(column) = %v, %v", d, err)
	}
	if d, err := ParseDirection(""); err != nil || d != Horizontal {
		t.Errorf("ParseDirection(\"\") = %v, %v", d, err)
	}
	if _, err := ParseDirection("diagonal"); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("ParseDirection(diagonal) error = %v", err)
	}

	for _, a := range []Alignment{Start, Center, End, Justify} {
		got, err := ParseAlignment(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAlignment(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAlignment("sideways"); err == nil {
		t.Error("expected error for unknown alignment")
	}
}

func TestPadding(t *testing.T) {
	p := PadSymmetric(2, 5)
	if p.Horizontal() != 10 || p.Vertical() != 4 {
		t.Errorf("PadSymmetric(2, 5) = %+v", p)
	}
	if PadAll(3) != (Padding{3, 3, 3, 3}) {
		t.Errorf("PadAll(3) = %+v", PadAll(3))
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float32
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{5, 8, 2, 8}, // inverted bounds: min wins
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
