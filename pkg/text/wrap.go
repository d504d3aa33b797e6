package text

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/plinth/pkg/layout"
)

// Line is one line of wrapped text.
type Line struct {
	Text string
	// X is the line's offset from the left edge of its box.
	X     float32
	Width float32
	// WordSpacing is extra space to add after each space when the line is
	// justified.
	WordSpacing float32
}

// Layout is text broken into lines at a given width.
type Layout struct {
	Lines      []Line
	LineHeight float32
	// Ascent is the baseline offset of the first line.
	Ascent float32
	// Width is the width of the widest line.
	Width float32
}

// Height returns the total height of all lines.
func (l *Layout) Height() float32 {
	if l == nil {
		return 0
	}
	return float32(len(l.Lines)) * l.LineHeight
}

// Baseline returns the y offset of line i's baseline from the top of the box.
func (l *Layout) Baseline(i int) float32 {
	return l.Ascent + float32(i)*l.LineHeight
}

// breaker wraps text greedily at word boundaries. Runs of whitespace collapse
// to a single space, newlines always break, and a word wider than the limit is
// split between runes.
type breaker struct {
	face     *Face
	maxWidth float32
	space    float32

	lines []Line
	cur   []string
	curW  float32
}

func (b *breaker) paragraph(p string) {
	words := strings.Fields(p)
	if len(words) == 0 {
		b.lines = append(b.lines, Line{})
		return
	}
	for _, w := range words {
		ww := b.face.Width(w)
		if len(b.cur) > 0 && b.curW+b.space+ww <= b.maxWidth {
			b.cur = append(b.cur, w)
			b.curW = b.curW + b.space + ww
			continue
		}
		b.flush()
		if ww > b.maxWidth {
			b.split(w)
			continue
		}
		b.cur = append(b.cur, w)
		b.curW = ww
	}
	b.flush()
}

// split breaks an over-long word into chunks that each fit, leaving the last
// chunk open so following words can join it.
func (b *breaker) split(w string) {
	start := 0
	for i := 0; i < len(w); {
		_, n := utf8.DecodeRuneInString(w[i:])
		if i > start && b.face.Width(w[start:i+n]) > b.maxWidth {
			chunk := w[start:i]
			b.lines = append(b.lines, Line{Text: chunk, Width: b.face.Width(chunk)})
			start = i
		}
		i += n
	}
	rest := w[start:]
	b.cur = append(b.cur, rest)
	b.curW = b.face.Width(rest)
}

func (b *breaker) flush() {
	if len(b.cur) == 0 {
		return
	}
	b.lines = append(b.lines, Line{Text: strings.Join(b.cur, " "), Width: b.curW})
	b.cur = b.cur[:0]
	b.curW = 0
}

// wrap lays s out within maxWidth. A non-positive or unbounded maxWidth
// disables wrapping.
func wrap(face *Face, s string, maxWidth, lineHeight float32, align layout.Alignment) *Layout {
	limit := maxWidth
	if limit <= 0 || limit >= layout.Unbounded {
		limit = layout.Unbounded
	}
	b := &breaker{face: face, maxWidth: limit, space: face.Width(" ")}

	paragraphs := strings.Split(s, "\n")
	ends := make(map[int]bool, len(paragraphs))
	for _, p := range paragraphs {
		b.paragraph(p)
		ends[len(b.lines)-1] = true
	}

	l := &Layout{Lines: b.lines, LineHeight: lineHeight, Ascent: face.Ascent()}
	for _, line := range l.Lines {
		l.Width = max(l.Width, line.Width)
	}

	box := l.Width
	if limit < layout.Unbounded {
		box = max(limit, l.Width)
	}
	for i := range l.Lines {
		line := &l.Lines[i]
		free := box - line.Width
		switch align {
		case layout.Center:
			line.X = free / 2
		case layout.End:
			line.X = free
		case layout.Justify:
			// the last line of a paragraph stays ragged
			if gaps := strings.Count(line.Text, " "); gaps > 0 && !ends[i] {
				line.WordSpacing = free / float32(gaps)
			}
		}
	}
	return l
}

// widths returns the min-content and max-content widths of s. The text
// never wraps at its max-content width and never splits a word at its
// min-content width.
func widths(face *Face, s string) (lo, hi float32) {
	space := face.Width(" ")
	for _, p := range strings.Split(s, "\n") {
		var line float32
		for i, w := range strings.Fields(p) {
			ww := face.Width(w)
			lo = max(lo, ww)
			if i > 0 {
				line += space
			}
			line += ww
		}
		hi = max(hi, line)
	}
	return lo, hi
}
