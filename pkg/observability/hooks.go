// Package observability lets the CLI and API server watch the layout
// pipeline without the pipeline knowing who is listening.
//
// Hooks default to no-ops. Register implementations once at startup:
//
//	counters := observability.NewCounters()
//	observability.Register(observability.LogHooks(logger), counters.Hooks())
//
// The pipeline runner and the backend client emit events:
//
//	observability.Pipeline().OnLayoutStart(ctx, spaceType, instances)
//	// ... compute ...
//	observability.Pipeline().OnLayoutComplete(ctx, spaceType, placed, duration, err)
//
// [LogHooks] writes events to a charmbracelet logger at debug level, and
// [Counters] keeps running totals for the server's health endpoint.
package observability

import (
	"context"
	"sync"
	"time"
)

// CacheKind names what a cache entry holds.
type CacheKind string

const (
	KindLayout   CacheKind = "layout"
	KindArtifact CacheKind = "artifact"
	KindAnalysis CacheKind = "analysis"
)

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// instances is the total requested, placed the number the strategy
	// could fit.
	OnLayoutStart(ctx context.Context, spaceType string, instances int)
	OnLayoutComplete(ctx context.Context, spaceType string, placed int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)

	OnAnalyzeStart(ctx context.Context, spaceType string)
	OnAnalyzeComplete(ctx context.Context, spaceType string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups and writes.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind CacheKind)
	OnCacheMiss(ctx context.Context, kind CacheKind)
	OnCacheSet(ctx context.Context, kind CacheKind, size int)
}

// HTTPHooks receives events from calls to the analysis backend.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError records a transport failure; HTTP error statuses go to OnResponse.
	OnError(ctx context.Context, method, host, path string, err error)
}

// Hooks bundles one implementation per event category. Nil fields are
// left unregistered.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}
func (NoopPipelineHooks) OnAnalyzeStart(context.Context, string)                              {}
func (NoopPipelineHooks) OnAnalyzeComplete(context.Context, string, time.Duration, error)     {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, CacheKind)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, CacheKind)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, CacheKind, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
)

// Register installs hs, replacing what was registered before. When several
// bundles set the same category, every one of them receives its events in
// argument order. Call it at startup, before the pipeline runs.
func Register(hs ...Hooks) {
	var (
		ps []PipelineHooks
		cs []CacheHooks
		ts []HTTPHooks
	)
	for _, h := range hs {
		if h.Pipeline != nil {
			ps = append(ps, h.Pipeline)
		}
		if h.Cache != nil {
			cs = append(cs, h.Cache)
		}
		if h.HTTP != nil {
			ts = append(ts, h.HTTP)
		}
	}

	hooksMu.Lock()
	defer hooksMu.Unlock()
	switch len(ps) {
	case 0:
	case 1:
		pipelineHooks = ps[0]
	default:
		pipelineHooks = multiPipeline(ps)
	}
	switch len(cs) {
	case 0:
	case 1:
		cacheHooks = cs[0]
	default:
		cacheHooks = multiCache(cs)
	}
	switch len(ts) {
	case 0:
	case 1:
		httpHooks = ts[0]
	default:
		httpHooks = multiHTTP(ts)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks. Used by tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}

type multiPipeline []PipelineHooks

func (m multiPipeline) OnLayoutStart(ctx context.Context, space string, n int) {
	for _, h := range m {
		h.OnLayoutStart(ctx, space, n)
	}
}

func (m multiPipeline) OnLayoutComplete(ctx context.Context, space string, placed int, d time.Duration, err error) {
	for _, h := range m {
		h.OnLayoutComplete(ctx, space, placed, d, err)
	}
}

func (m multiPipeline) OnRenderStart(ctx context.Context, formats []string) {
	for _, h := range m {
		h.OnRenderStart(ctx, formats)
	}
}

func (m multiPipeline) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	for _, h := range m {
		h.OnRenderComplete(ctx, formats, d, err)
	}
}

func (m multiPipeline) OnAnalyzeStart(ctx context.Context, space string) {
	for _, h := range m {
		h.OnAnalyzeStart(ctx, space)
	}
}

func (m multiPipeline) OnAnalyzeComplete(ctx context.Context, space string, d time.Duration, err error) {
	for _, h := range m {
		h.OnAnalyzeComplete(ctx, space, d, err)
	}
}

type multiCache []CacheHooks

func (m multiCache) OnCacheHit(ctx context.Context, kind CacheKind) {
	for _, h := range m {
		h.OnCacheHit(ctx, kind)
	}
}

func (m multiCache) OnCacheMiss(ctx context.Context, kind CacheKind) {
	for _, h := range m {
		h.OnCacheMiss(ctx, kind)
	}
}

func (m multiCache) OnCacheSet(ctx context.Context, kind CacheKind, size int) {
	for _, h := range m {
		h.OnCacheSet(ctx, kind, size)
	}
}

type multiHTTP []HTTPHooks

func (m multiHTTP) OnRequest(ctx context.Context, method, host, path string) {
	for _, h := range m {
		h.OnRequest(ctx, method, host, path)
	}
}

func (m multiHTTP) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	for _, h := range m {
		h.OnResponse(ctx, method, host, path, status, d)
	}
}

func (m multiHTTP) OnError(ctx context.Context, method, host, path string, err error) {
	for _, h := range m {
		h.OnError(ctx, method, host, path, err)
	}
}
