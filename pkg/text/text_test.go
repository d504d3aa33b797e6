package text

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/plinth/pkg/errors"
	"github.com/matzehuels/plinth/pkg/layout"
)

func testFace(t *testing.T) *Face {
	t.Helper()
	f, err := DefaultFace(DefaultSize)
	if err != nil {
		t.Fatalf("DefaultFace: %v", err)
	}
	return f
}

func TestFaceMetrics(t *testing.T) {
	f := testFace(t)
	if f.Size() != DefaultSize {
		t.Errorf("Size() = %v", f.Size())
	}
	if f.Ascent() <= 0 || f.Height() <= 0 {
		t.Errorf("metrics ascent=%v height=%v, want positive", f.Ascent(), f.Height())
	}
	if f.Family() == "" {
		t.Error("Family() is empty for Go Regular")
	}
	if f.Width("") != 0 {
		t.Errorf("Width(\"\") = %v", f.Width(""))
	}
	if a, ab := f.Width("a"), f.Width("ab"); !(ab > a && a > 0) {
		t.Errorf("Width(a)=%v Width(ab)=%v", a, ab)
	}
}

func TestNewFaceRejectsBadSize(t *testing.T) {
	if _, err := DefaultFace(0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("DefaultFace(0) error = %v", err)
	}
}

func TestLoadFace(t *testing.T) {
	t.Run("empty path is default", func(t *testing.T) {
		f, err := LoadFace("", 12)
		if err != nil {
			t.Fatal(err)
		}
		if f.Size() != 12 {
			t.Errorf("Size() = %v", f.Size())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFace(filepath.Join(t.TempDir(), "nope.ttf"), 12)
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
		}
	})

	t.Run("not a font", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.ttf")
		if err := os.WriteFile(path, []byte("definitely not a font"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFace(path, 12)
		if !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
		}
	})
}

func TestWidths(t *testing.T) {
	f := testFace(t)
	m := NewMeasurer(f, 0)

	lo, hi := m.Widths("hello wonderful\nworld")
	if want := f.Width("wonderful"); lo != want {
		t.Errorf("min-content = %v, want %v", lo, want)
	}
	if want := f.Width("hello") + f.Width(" ") + f.Width("wonderful"); hi != want {
		t.Errorf("max-content = %v, want %v", hi, want)
	}

	if lo, hi := m.Widths(""); lo != 0 || hi != 0 {
		t.Errorf("Widths(\"\") = %v, %v", lo, hi)
	}
}

func TestLayoutWrapping(t *testing.T) {
	f := testFace(t)
	m := NewMeasurer(f, 0)
	word := f.Width("hello")

	tests := []struct {
		name  string
		text  string
		width float32
		want  []string
	}{
		{"max-content keeps one line", "hello hello hello", 0, []string{"hello hello hello"}},
		{"min-content breaks every word", "hello hello hello", word, []string{"hello", "hello", "hello"}},
		{"two words per line", "hello hello hello", 2*word + f.Width(" "), []string{"hello hello", "hello"}},
		{"newline forces break", "hello\nhello", 0, []string{"hello", "hello"}},
		{"blank line is kept", "hello\n\nhello", 0, []string{"hello", "", "hello"}},
		{"whitespace collapses", "  hello \t  hello ", 0, []string{"hello hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width := tt.width
			if width == 0 {
				_, width = m.Widths(tt.text)
			}
			l := m.Layout(tt.text, width, layout.Start)

			var got []string
			for _, line := range l.Lines {
				got = append(got, line.Text)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
			if l.Height() != float32(len(tt.want))*m.LineHeight() {
				t.Errorf("Height() = %v, want %d lines of %v", l.Height(), len(tt.want), m.LineHeight())
			}
		})
	}
}

func TestLayoutSplitsLongWords(t *testing.T) {
	f := testFace(t)
	m := NewMeasurer(f, 0)
	limit := f.Width("abc") + 0.01

	l := m.Layout("abcdefghij", limit, layout.Start)
	if len(l.Lines) < 3 {
		t.Fatalf("got %d lines, want at least 3", len(l.Lines))
	}
	var joined strings.Builder
	for _, line := range l.Lines {
		if line.Width > limit {
			t.Errorf("line %q is %v wide, limit %v", line.Text, line.Width, limit)
		}
		joined.WriteString(line.Text)
	}
	if joined.String() != "abcdefghij" {
		t.Errorf("split lines join to %q", joined.String())
	}
}

func TestLayoutUnboundedDoesNotWrap(t *testing.T) {
	m := NewMeasurer(testFace(t), 0)
	for _, w := range []float32{0, -1, layout.Unbounded} {
		if n := len(m.Layout("a b c d e f", w, layout.Start).Lines); n != 1 {
			t.Errorf("width %v: %d lines, want 1", w, n)
		}
	}
}

func TestLayoutAlignment(t *testing.T) {
	f := testFace(t)
	m := NewMeasurer(f, 0)
	const box = 400
	short := f.Width("hi")

	center := m.Layout("hi", box, layout.Center).Lines[0]
	if center.X != (box-short)/2 {
		t.Errorf("center X = %v, want %v", center.X, (box-short)/2)
	}
	end := m.Layout("hi", box, layout.End).Lines[0]
	if end.X != box-short {
		t.Errorf("end X = %v, want %v", end.X, box-short)
	}

	word := f.Width("hello")
	limit := 2*word + f.Width(" ") + 1
	j := m.Layout("hello hello hello", limit, layout.Justify)
	if len(j.Lines) != 2 {
		t.Fatalf("justified lines = %d, want 2", len(j.Lines))
	}
	if j.Lines[0].WordSpacing <= 0 {
		t.Errorf("first line word spacing = %v, want > 0", j.Lines[0].WordSpacing)
	}
	if j.Lines[1].WordSpacing != 0 {
		t.Errorf("last line word spacing = %v, want 0", j.Lines[1].WordSpacing)
	}
}

func TestMeasurerCache(t *testing.T) {
	m := NewMeasurer(testFace(t), 1.5)
	a := m.Layout("cache me", 100, layout.Start)
	b := m.Layout("cache me", 100, layout.Start)
	if a != b {
		t.Error("second Layout should return the cached layout")
	}
	m.Layout("cache me", 50, layout.Start)
	m.Widths("cache me")
	m.Widths("cache me")

	if s := m.Stats(); s.Hits != 2 || s.Misses != 3 {
		t.Errorf("Stats() = %+v, want 2 hits 3 misses", s)
	}
	if m.LineHeight() != m.Face().Height()*1.5 {
		t.Errorf("LineHeight() = %v", m.LineHeight())
	}
	if h := m.Height("cache me", 100); h != m.LineHeight() {
		t.Errorf("Height() = %v, want one line", h)
	}
}

func TestLRUEviction(t *testing.T) {
	c := newLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // a is now most recent
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	c.Put("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("updated a = %v", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d", c.Len())
	}
}

func TestPool(t *testing.T) {
	var p Pool[string]

	a := p.Allocate("a")
	b := p.Allocate("b")
	if v, ok := p.Get(a); !ok || v != "a" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d", p.Len())
	}

	p.Free(a)
	if _, ok := p.Get(a); ok {
		t.Error("freed handle should miss")
	}
	c := p.Allocate("c")
	if c.index != a.index {
		t.Errorf("freed slot not reused: got index %d, want %d", c.index, a.index)
	}
	if _, ok := p.Get(a); ok {
		t.Error("stale handle should miss after slot reuse")
	}
	if !p.Set(c, "c2") {
		t.Error("Set on live handle failed")
	}
	if v, _ := p.Get(c); v != "c2" {
		t.Errorf("Get(c) = %q", v)
	}

	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Len() after Clear = %d", p.Len())
	}
	for _, h := range []Handle{b, c} {
		if _, ok := p.Get(h); ok {
			t.Errorf("handle %v survived Clear", h)
		}
	}
	p.Free(b) // stale, no-op
	if p.Len() != 0 {
		t.Errorf("freeing a stale handle changed Len to %d", p.Len())
	}

	d := p.Allocate("d")
	if int(d.index) >= 2 {
		t.Errorf("Allocate after Clear grew the pool (index %d)", d.index)
	}
	if _, ok := p.Get(Handle{}); ok {
		t.Error("zero handle should never resolve")
	}
}
