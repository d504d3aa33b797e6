package frame

import (
	"image/color"
	"testing"

	"github.com/matzehuels/plinth/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"", Transparent},
		{"white", White},
		{" Black ", Black},
		{"#fff", White},
		{"#ff0080", color.NRGBA{R: 0xff, B: 0x80, A: 0xff}},
		{"#FF008040", color.NRGBA{R: 0xff, B: 0x80, A: 0x40}},
		{"hsl(0, 100%, 50%)", color.NRGBA{R: 0xff, A: 0xff}},
		{"hsl(0, 0%, 100%)", White},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"chartreuse-ish", "#12", "#12345", "#zzzzzz", "#ff0000zz", "hsl(1,2)", "hsl(a,b,c)"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseColor(in)
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("ParseColor(%q) error = %v, want %s", in, err, errors.ErrCodeInvalidDocument)
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}); got != "#123456" {
		t.Errorf("FormatColor(opaque) = %q", got)
	}
	if got := FormatColor(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x80}); got != "#12345680" {
		t.Errorf("FormatColor(translucent) = %q", got)
	}
}

func TestContrastText(t *testing.T) {
	if ContrastText(White) != Black {
		t.Error("text on white should be black")
	}
	if ContrastText(Black) != White {
		t.Error("text on black should be white")
	}
	if ContrastText(Transparent) != Black {
		t.Error("text on transparent should be black")
	}
}

func TestBlend(t *testing.T) {
	if got := Blend(Black, White, 0); got != Black {
		t.Errorf("Blend(t=0) = %v", got)
	}
	if got := Blend(Black, White, 1); got != White {
		t.Errorf("Blend(t=1) = %v", got)
	}
	mid := Blend(Black, White, 0.5)
	if mid.R == 0 || mid.R == 0xff || absDiff(mid.R, mid.G) > 1 || absDiff(mid.G, mid.B) > 1 {
		t.Errorf("Blend(t=0.5) = %v, want a neutral gray", mid)
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
