package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plinth/pkg/cache"
	"github.com/matzehuels/plinth/pkg/text"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner keeps no pipeline results. It does keep one text measurer per
// font configuration, so repeated runs reuse wrapped text. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	mu        sync.Mutex
	measurers map[measurerKey]*text.Measurer
}

type measurerKey struct {
	font       string
	size       float32
	lineHeight float32
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, src Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, hash, err := Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.DocHash = hash
	result.Stats.NodeCount = doc.Count()
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded document",
		"source", src,
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	_, solved, layoutHit, err := r.LayoutWithCacheInfo(ctx, doc, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, solved, renderHit, err := r.RenderWithCacheInfo(ctx, doc, hash, solved, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	if solved != nil {
		result.Frame = solved.Frame
		result.DrawList = solved.List
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Measurer returns the shared text measurer for the options' font
// configuration, loading the font on first use.
func (r *Runner) Measurer(opts Options) (*text.Measurer, error) {
	opts.SetLayoutDefaults()
	key := measurerKey{font: opts.Font, size: opts.FontSize, lineHeight: opts.LineHeight}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.measurers[key]; ok {
		return m, nil
	}
	face, err := text.LoadFace(opts.Font, opts.FontSize)
	if err != nil {
		return nil, err
	}
	m := text.NewMeasurer(face, opts.LineHeight)
	if r.measurers == nil {
		r.measurers = make(map[measurerKey]*text.Measurer)
	}
	r.measurers[key] = m
	return m, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
