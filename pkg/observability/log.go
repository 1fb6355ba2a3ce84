package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks returns hooks that write every event to l. Successful events
// are logged at debug level, failures at warn.
func LogHooks(l *log.Logger) Hooks {
	h := logHooks{l: l.WithPrefix("hooks")}
	return Hooks{Pipeline: h, Cache: h, HTTP: h}
}

type logHooks struct{ l *log.Logger }

func (h logHooks) OnLayoutStart(_ context.Context, space string, instances int) {
	h.l.Debug("layout start", "space", space, "instances", instances)
}

func (h logHooks) OnLayoutComplete(_ context.Context, space string, placed int, d time.Duration, err error) {
	if err != nil {
		h.l.Warn("layout failed", "space", space, "error", err)
		return
	}
	h.l.Debug("layout done", "space", space, "placed", placed, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.l.Debug("render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.l.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.l.Debug("render done", "formats", formats, "duration", d)
}

func (h logHooks) OnAnalyzeStart(_ context.Context, space string) {
	h.l.Debug("analysis start", "space", space)
}

func (h logHooks) OnAnalyzeComplete(_ context.Context, space string, d time.Duration, err error) {
	if err != nil {
		h.l.Warn("analysis failed", "space", space, "error", err)
		return
	}
	h.l.Debug("analysis done", "space", space, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, kind CacheKind) {
	h.l.Debug("cache hit", "kind", kind)
}

func (h logHooks) OnCacheMiss(_ context.Context, kind CacheKind) {
	h.l.Debug("cache miss", "kind", kind)
}

func (h logHooks) OnCacheSet(_ context.Context, kind CacheKind, size int) {
	h.l.Debug("cache set", "kind", kind, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.l.Debug("backend request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.l.Debug("backend response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.l.Warn("backend unreachable", "method", method, "host", host, "path", path, "error", err)
}
