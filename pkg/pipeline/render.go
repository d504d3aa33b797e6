package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/plinth/pkg/cache"
	pio "github.com/matzehuels/plinth/pkg/io"
	"github.com/matzehuels/plinth/pkg/observability"
	"github.com/matzehuels/plinth/pkg/render"
)

// RenderWithCacheInfo produces every requested format. If all of them are
// cached nothing is solved; otherwise the document is solved once (unless
// solved is already given) and every format is rendered and cached again.
// The returned Solved is nil on a full cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *pio.Document, docHash string, solved *Solved, opts Options) (map[string][]byte, *Solved, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, false, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	layoutKey := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts(opts.Viewport(doc)))
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := r.cached(ctx, r.Keyer.RenderKey(layoutKey, opts.RenderKeyOpts(format)), "render", opts.Refresh)
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, solved, true, nil
	}

	if solved == nil {
		var err error
		if solved, err = r.Solve(ctx, doc, opts); err != nil {
			return nil, nil, false, err
		}
	}

	for _, format := range opts.Formats {
		data, err := r.renderOne(ctx, solved, format, opts)
		if err != nil {
			return nil, nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		r.store(ctx, r.Keyer.RenderKey(layoutKey, opts.RenderKeyOpts(format)), "render", data, cache.TTLRender, opts)
	}
	return artifacts, solved, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards everything but the artifacts.
func (r *Runner) Render(ctx context.Context, doc *pio.Document, docHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, doc, docHash, nil, opts)
	return artifacts, err
}

func (r *Runner) renderOne(ctx context.Context, s *Solved, format string, opts Options) (data []byte, err error) {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	defer func() { hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err) }()

	f, err := render.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return render.Render(ctx, s.Frame, s.List, f, opts.renderOptions(s.Face))
}
