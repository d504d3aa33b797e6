package text

import (
	"sync"

	"github.com/matzehuels/plinth/pkg/layout"
)

const (
	// DefaultLineHeight is the line height as a multiple of the font's own
	// recommended line spacing.
	DefaultLineHeight = 1.0

	cacheSize = 1000
)

type layoutKey struct {
	str      string
	maxWidth float32
	align    layout.Alignment
}

type widthsVal struct {
	lo, hi float32
}

// Measurer wraps and measures text with one face. Results are cached, so
// the same string measured every frame is only shaped once. A Measurer is
// safe for concurrent use; returned layouts are shared and must not be
// modified.
type Measurer struct {
	face       *Face
	lineHeight float32

	mu      sync.Mutex
	layouts *lru[layoutKey, *Layout]
	widths  *lru[string, widthsVal]
	stats   Stats
}

// Stats counts cache hits and misses across both caches.
type Stats struct {
	Hits, Misses int
}

// NewMeasurer returns a measurer for face. lineHeight scales the font's line
// spacing; values <= 0 select DefaultLineHeight.
func NewMeasurer(face *Face, lineHeight float32) *Measurer {
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	return &Measurer{
		face:       face,
		lineHeight: lineHeight,
		layouts:    newLRU[layoutKey, *Layout](cacheSize),
		widths:     newLRU[string, widthsVal](cacheSize),
	}
}

// Face returns the measurer's font face.
func (m *Measurer) Face() *Face { return m.face }

// LineHeight returns the height of one line in pixels.
func (m *Measurer) LineHeight() float32 {
	return m.face.Height() * m.lineHeight
}

// Widths returns the min-content width (the widest word) and the
// max-content width (the widest line with no wrapping) of s.
func (m *Measurer) Widths(s string) (lo, hi float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.widths.Get(s); ok {
		m.stats.Hits++
		return v.lo, v.hi
	}
	m.stats.Misses++
	lo, hi = widths(m.face, s)
	m.widths.Put(s, widthsVal{lo, hi})
	return lo, hi
}

// Layout wraps s to maxWidth and positions each line for align.
func (m *Measurer) Layout(s string, maxWidth float32, align layout.Alignment) *Layout {
	key := layoutKey{str: s, maxWidth: maxWidth, align: align}

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.layouts.Get(key); ok {
		m.stats.Hits++
		return l
	}
	m.stats.Misses++
	l := wrap(m.face, s, maxWidth, m.LineHeight(), align)
	m.layouts.Put(key, l)
	return l
}

// Height returns the height of s wrapped at width.
func (m *Measurer) Height(s string, width float32) float32 {
	return m.Layout(s, width, layout.Start).Height()
}

// Stats returns a snapshot of the cache counters.
func (m *Measurer) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
