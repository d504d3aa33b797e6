package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plinth/pkg/cache"
	"github.com/matzehuels/plinth/pkg/frame"
	pio "github.com/matzehuels/plinth/pkg/io"
	"github.com/matzehuels/plinth/pkg/observability"
	"github.com/matzehuels/plinth/pkg/render"
	"github.com/matzehuels/plinth/pkg/text"
)

// Solved is a document laid out in a frame, ready to render.
type Solved struct {
	Frame    *frame.Frame
	List     *frame.DrawList
	Face     *text.Face
	Viewport pio.Viewport
}

// Solve builds a fresh frame from doc and computes its layout. It never
// touches the cache.
func (r *Runner) Solve(ctx context.Context, doc *pio.Document, opts Options) (s *Solved, err error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := r.Measurer(opts)
	if err != nil {
		return nil, err
	}

	// the window root adds one node
	nodes := doc.Count() + 1
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, nodes)
	defer func() { hooks.OnLayoutComplete(ctx, nodes, time.Since(start), err) }()

	vp := opts.Viewport(doc)
	f := frame.New(m)
	if err := doc.Build(f, &vp); err != nil {
		return nil, err
	}
	list, err := f.Finish()
	if err != nil {
		return nil, err
	}
	if opts.Logger.GetLevel() <= log.DebugLevel {
		opts.Logger.Debug("solved layout\n" + f.Tree().Dump())
	}
	return &Solved{Frame: f, List: list, Face: m.Face(), Viewport: vp}, nil
}

// LayoutWithCacheInfo returns the layout JSON of a document, from the cache
// when possible. The Solved result is nil on a cache hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc *pio.Document, docHash string, opts Options) ([]byte, *Solved, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	key := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts(opts.Viewport(doc)))
	if data, ok := r.cached(ctx, key, "layout", opts.Refresh); ok {
		return data, nil, true, nil
	}

	solved, err := r.Solve(ctx, doc, opts)
	if err != nil {
		return nil, nil, false, err
	}
	data, err := render.RenderJSON(solved.Frame, solved.List)
	if err != nil {
		return nil, nil, false, err
	}
	r.store(ctx, key, "layout", data, cache.TTLLayout, opts)
	return data, solved, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Layout(ctx context.Context, doc *pio.Document, docHash string, opts Options) ([]byte, error) {
	data, _, _, err := r.LayoutWithCacheInfo(ctx, doc, docHash, opts)
	return data, err
}

// cached reads key unless refresh is set. Read errors count as misses.
func (r *Runner) cached(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// store writes an entry. A failed write is logged, never fatal.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration, opts Options) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
