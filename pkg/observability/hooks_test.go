package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLayoutStart(ctx, "classroom", 20)
	p.OnLayoutComplete(ctx, "classroom", 20, time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
	p.OnAnalyzeStart(ctx, "parking")
	p.OnAnalyzeComplete(ctx, "parking", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, KindAnalysis)
	c.OnCacheMiss(ctx, KindLayout)
	c.OnCacheSet(ctx, KindArtifact, 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "backend.local", "/api/v1/chatbot/analyze-space-layout")
	h.OnResponse(ctx, "POST", "backend.local", "/api/v1/chatbot/analyze-space-layout", 200, time.Second)
	h.OnError(ctx, "POST", "backend.local", "/api/v1/chatbot/analyze-space-layout", nil)
}

func TestRegister(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}

	counters := NewCounters()
	Register(Hooks{Cache: counters.Hooks().Cache})
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("nil categories should leave the registered hooks alone")
	}
	if _, ok := Cache().(counterHooks); !ok {
		t.Errorf("Cache() = %T, want counterHooks", Cache())
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestRegisterFansOut(t *testing.T) {
	Reset()
	defer Reset()

	a, b := NewCounters(), NewCounters()
	Register(a.Hooks(), b.Hooks())

	ctx := context.Background()
	Pipeline().OnLayoutComplete(ctx, "classroom", 20, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, KindLayout)
	HTTP().OnRequest(ctx, "POST", "backend.local", "/")

	for name, c := range map[string]*Counters{"first": a, "second": b} {
		s := c.Snapshot()
		if s.Layouts != 1 || s.PlacedItems != 20 || s.CacheHits != 1 || s.BackendCalls != 1 {
			t.Errorf("%s counters = %+v", name, s)
		}
	}
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()
	h := c.Hooks()

	h.Pipeline.OnLayoutComplete(ctx, "classroom", 12, time.Millisecond, nil)
	h.Pipeline.OnLayoutComplete(ctx, "classroom", 0, 0, errors.New("bad room"))
	h.Pipeline.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	h.Pipeline.OnAnalyzeComplete(ctx, "parking", time.Millisecond, errors.New("timeout"))
	h.Cache.OnCacheMiss(ctx, KindArtifact)
	h.HTTP.OnError(ctx, "POST", "backend.local", "/", errors.New("refused"))

	want := Stats{
		Layouts:        1,
		LayoutErrors:   1,
		PlacedItems:    12,
		Renders:        1,
		AnalysisErrors: 1,
		CacheMisses:    1,
		BackendErrors:  1,
	}
	if got := c.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := LogHooks(logger)

	ctx := context.Background()
	h.Pipeline.OnLayoutComplete(ctx, "classroom", 20, time.Millisecond, nil)
	h.Cache.OnCacheHit(ctx, KindLayout)
	h.HTTP.OnError(ctx, "POST", "backend.local", "/analyze", errors.New("connection refused"))

	out := buf.String()
	for _, want := range []string{"layout done", "placed=20", "cache hit", "kind=layout", "backend unreachable", "connection refused"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
