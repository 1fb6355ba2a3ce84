package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters keeps running totals of pipeline events. The zero value is
// ready to use; register it with [Register] via [Counters.Hooks].
type Counters struct {
	layouts        atomic.Int64
	layoutErrors   atomic.Int64
	placed         atomic.Int64
	renders        atomic.Int64
	analyses       atomic.Int64
	analysisErrors atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	backendCalls   atomic.Int64
	backendErrors  atomic.Int64
}

// Stats is a point-in-time copy of [Counters].
type Stats struct {
	Layouts        int64 `json:"layouts"`
	LayoutErrors   int64 `json:"layoutErrors"`
	PlacedItems    int64 `json:"placedItems"`
	Renders        int64 `json:"renders"`
	Analyses       int64 `json:"analyses"`
	AnalysisErrors int64 `json:"analysisErrors"`
	CacheHits      int64 `json:"cacheHits"`
	CacheMisses    int64 `json:"cacheMisses"`
	BackendCalls   int64 `json:"backendCalls"`
	BackendErrors  int64 `json:"backendErrors"`
}

func NewCounters() *Counters { return &Counters{} }

// Hooks returns c as a hook bundle.
func (c *Counters) Hooks() Hooks {
	h := counterHooks{c}
	return Hooks{Pipeline: h, Cache: h, HTTP: h}
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Stats {
	return Stats{
		Layouts:        c.layouts.Load(),
		LayoutErrors:   c.layoutErrors.Load(),
		PlacedItems:    c.placed.Load(),
		Renders:        c.renders.Load(),
		Analyses:       c.analyses.Load(),
		AnalysisErrors: c.analysisErrors.Load(),
		CacheHits:      c.cacheHits.Load(),
		CacheMisses:    c.cacheMisses.Load(),
		BackendCalls:   c.backendCalls.Load(),
		BackendErrors:  c.backendErrors.Load(),
	}
}

type counterHooks struct{ c *Counters }

func (counterHooks) OnLayoutStart(context.Context, string, int) {}

func (h counterHooks) OnLayoutComplete(_ context.Context, _ string, placed int, _ time.Duration, err error) {
	if err != nil {
		h.c.layoutErrors.Add(1)
		return
	}
	h.c.layouts.Add(1)
	h.c.placed.Add(int64(placed))
}

func (counterHooks) OnRenderStart(context.Context, []string) {}

func (h counterHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	if err == nil {
		h.c.renders.Add(1)
	}
}

func (counterHooks) OnAnalyzeStart(context.Context, string) {}

func (h counterHooks) OnAnalyzeComplete(_ context.Context, _ string, _ time.Duration, err error) {
	if err != nil {
		h.c.analysisErrors.Add(1)
		return
	}
	h.c.analyses.Add(1)
}

func (h counterHooks) OnCacheHit(context.Context, CacheKind)             { h.c.cacheHits.Add(1) }
func (h counterHooks) OnCacheMiss(context.Context, CacheKind)            { h.c.cacheMisses.Add(1) }
func (counterHooks) OnCacheSet(context.Context, CacheKind, int)          {}
func (h counterHooks) OnRequest(context.Context, string, string, string) { h.c.backendCalls.Add(1) }

func (counterHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}

func (h counterHooks) OnError(context.Context, string, string, string, error) {
	h.c.backendErrors.Add(1)
}
