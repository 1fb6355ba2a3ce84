// Package cli implements the spacelayout command-line interface.
//
// # Commands
//
//   - layout: compute a layout from a JSON or TOML request file
//   - render: draw a request as SVG, PNG, PDF or JSON
//   - analyze: compare the local result with the remote analysis backend
//   - catalog: list space types and their item footprints
//   - view: explore a layout interactively in the terminal
//   - serve: run the HTTP API
//   - cache: manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// lives on [CLI] and is handed to the pipeline runner and the API server.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Placed 30 items (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
