package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spacelayout/pkg/backend"
	"github.com/matzehuels/spacelayout/pkg/cache"
	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/errors"
	"github.com/matzehuels/spacelayout/pkg/layout"
	"github.com/matzehuels/spacelayout/pkg/observability"
)

// Analyzer asks a remote service for its verdict on a request.
// [*backend.Client] implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req layout.Request) (*backend.Analysis, error)
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, catalog and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Catalog is the item catalog layouts are computed against.
	Catalog *catalog.Catalog
	// CatalogHash distinguishes cached layouts of different catalogs.
	CatalogHash string

	// Backend is optional. Without it Analyze works offline.
	Backend Analyzer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The runner starts with the embedded default catalog.
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
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		Catalog:     catalog.Default(),
		CatalogHash: cache.Hash(catalog.DefaultTOML()),
	}
}

// SetCatalog replaces the catalog. source is the catalog file content and
// only feeds the cache key.
func (r *Runner) SetCatalog(cat *catalog.Catalog, source []byte) {
	r.Catalog = cat
	r.CatalogHash = cache.Hash(source)
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, req layout.Request, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyDefaults(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, req, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = res
	result.LayoutHash = hashResult(res)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Placed = len(res.Placed)
	result.Stats.Unplaced = countUnplaced(res)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"space", res.SpaceType,
		"placed", result.Stats.Placed,
		"unplaced", result.Stats.Unplaced,
		"viable", res.IsViable,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
// Contract violations (bad dimensions, unknown items) are returned as errors
// and never cached.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, req layout.Request, opts Options) (layout.Result, bool, error) {
	r.applyDefaults(&opts)
	hooks := observability.Pipeline()

	cacheKey := r.Keyer.LayoutKey(HashRequest(req), cache.LayoutKeyOpts{CatalogHash: r.CatalogHash})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, observability.KindLayout)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, observability.KindLayout)
	}

	hooks.OnLayoutStart(ctx, req.SpaceType, totalQuantity(req))
	start := time.Now()
	res, err := layout.Compute(req, opts.Catalog)
	hooks.OnLayoutComplete(ctx, req.SpaceType, len(res.Placed), time.Since(start), err)
	if err != nil {
		return layout.Result{}, false, err
	}

	r.store(ctx, observability.KindLayout, cacheKey, res, cache.TTLLayout)
	return res, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, req layout.Request, opts Options) (layout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, req, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyDefaults(&opts)

	layoutHash := hashResult(res)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, observability.KindArtifact)
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, observability.KindArtifact)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, observability.KindArtifact, len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// Analyze computes the local layout and, when a backend is configured, asks
// it for its verdict. The local computation decides the placements; the
// backend only contributes its area analysis. A failing or missing backend
// never fails the call: the result is marked Offline and carries a warning.
func (r *Runner) Analyze(ctx context.Context, req layout.Request, opts Options) (*Analysis, error) {
	r.applyDefaults(&opts)

	local, _, err := r.ComputeLayoutWithCacheInfo(ctx, req, opts)
	if err != nil {
		return nil, err
	}
	out := &Analysis{Local: local, Display: local}

	if r.Backend == nil {
		out.Offline = true
		return out, nil
	}

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, req.SpaceType)
	start := time.Now()
	raw, err := r.remoteAnalysis(ctx, req, opts)
	hooks.OnAnalyzeComplete(ctx, req.SpaceType, time.Since(start), err)
	if err != nil {
		r.Logger.Warn("analysis backend unavailable", "error", err)
		out.Offline = true
		out.Display = withWarning(local,
			fmt.Sprintf("analysis backend unavailable (%s); showing the local result", errors.UserMessage(err)))
		return out, nil
	}

	remote := raw.ToResult()
	out.Raw = raw
	out.Remote = &remote
	if opts.PreferRemote {
		out.Display = mergeRemote(remote, local)
	}

	r.Logger.Info("analyzed layout",
		"space", local.SpaceType,
		"local_viable", local.IsViable,
		"remote_viable", remote.IsViable,
		"duration", time.Since(start))
	return out, nil
}

// remoteAnalysis returns the backend's answer for req, cached by request.
func (r *Runner) remoteAnalysis(ctx context.Context, req layout.Request, opts Options) (*backend.Analysis, error) {
	cacheKey := r.Keyer.AnalysisKey(HashRequest(req))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached backend.Analysis
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, observability.KindAnalysis)
				return &cached, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, observability.KindAnalysis)
	}

	raw, err := r.Backend.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	r.store(ctx, observability.KindAnalysis, cacheKey, raw, cache.TTLAnalysis)
	return raw, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// store marshals v and writes it to the cache. Cache failures are logged,
// never returned.
func (r *Runner) store(ctx context.Context, kind observability.CacheKind, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "kind", kind, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// applyDefaults fills options from the runner when not already set.
func (r *Runner) applyDefaults(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if opts.Catalog == nil {
		opts.Catalog = r.Catalog
	}
	opts.SetLayoutDefaults()
}

// mergeRemote returns the backend's verdict with the local placements, so
// the remote view still has something to draw.
func mergeRemote(remote, local layout.Result) layout.Result {
	out := remote
	out.Room = local.Room
	out.SpaceLabel = local.SpaceLabel
	out.Placed = local.Placed
	out.Zones = local.Zones
	out.Unplaced = local.Unplaced
	out.AllPlaced = local.AllPlaced
	out.PlacedArea = local.PlacedArea
	out.AisleWidth = local.AisleWidth
	return out
}

func withWarning(res layout.Result, msg string) layout.Result {
	warnings := make([]string, 0, len(res.Warnings)+1)
	warnings = append(warnings, res.Warnings...)
	res.Warnings = append(warnings, msg)
	return res
}

func hashResult(res layout.Result) string {
	data, _ := json.Marshal(res)
	return cache.Hash(data)
}

func totalQuantity(req layout.Request) int {
	n := 0
	for _, it := range req.Items {
		n += it.Quantity
	}
	return n
}

func countUnplaced(res layout.Result) int {
	n := 0
	for _, v := range res.Unplaced {
		n += v
	}
	return n
}
