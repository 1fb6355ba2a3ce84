// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP API.
//
// The pipeline has three stages:
//
//  1. Layout: validate the request, assess feasibility and place items
//  2. Render: draw the result (SVG, PNG, PDF, JSON)
//  3. Analyze (optional): ask the remote analysis backend for its verdict
//
// Each stage can run on its own. Layouts and artifacts are cached by
// content hash, so re-rendering at another zoom level never recomputes the
// placement.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, req, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Zoom:    1.5,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	res, err := runner.ComputeLayout(ctx, req, opts)
//	artifacts, err := runner.Render(ctx, res, opts)
//	analysis, err := runner.Analyze(ctx, req, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spacelayout/pkg/backend"
	"github.com/matzehuels/spacelayout/pkg/cache"
	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/layout"
	"github.com/matzehuels/spacelayout/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultZoom is the default render zoom factor.
	DefaultZoom = render.DefaultZoom

	// MaxZoom bounds the zoom factor so canvases stay a sane size.
	MaxZoom = 10.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Refresh bool `json:"refresh,omitempty"` // Bypass cached layouts and analyses

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Zoom       float64  `json:"zoom,omitempty"`
	HideLabels bool     `json:"hide_labels,omitempty"`
	HideLegend bool     `json:"hide_legend,omitempty"`
	HideGrid   bool     `json:"hide_grid,omitempty"`

	// Analyze options
	PreferRemote bool `json:"prefer_remote,omitempty"` // Show the backend's verdict instead of the local one

	// Runtime options (not serialized)
	Logger  *log.Logger      `json:"-"`
	Catalog *catalog.Catalog `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the locally computed layout.
	Layout layout.Result

	// LayoutHash is the content hash of the layout, used for artifact keys.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Placed      int
	Unplaced    int
	LayoutTime  time.Duration
	RenderTime  time.Duration
	AnalyzeTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit   bool // Whether the layout came from cache
	RenderHit   bool // Whether all artifacts came from cache
	AnalysisHit bool // Whether the backend analysis came from cache
}

// Analysis is the outcome of [Runner.Analyze]: the local layout, the
// backend's answer when it could be reached, and the result to display.
type Analysis struct {
	Local  layout.Result     `json:"local"`
	Remote *layout.Result    `json:"remote,omitempty"`
	Raw    *backend.Analysis `json:"raw,omitempty"`

	// Display is Remote with Local's placements when PreferRemote was set
	// and the backend answered, otherwise Local.
	Display layout.Result `json:"display"`

	// Offline is set when the backend was not configured or failed.
	Offline bool `json:"offline"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateZoom checks that a zoom factor is usable.
func ValidateZoom(zoom float64) error {
	if zoom <= 0 || zoom > MaxZoom {
		return fmt.Errorf("invalid zoom: %g (must be in (0, %g])", zoom, MaxZoom)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	o.SetLayoutDefaults()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateZoom(o.Zoom)
}

// Display returns the render display options.
func (o *Options) Display() render.DisplayOptions {
	zoom := o.Zoom
	if zoom == 0 {
		zoom = DefaultZoom
	}
	return render.DisplayOptions{
		Zoom:       zoom,
		ShowLabels: !o.HideLabels,
		ShowLegend: !o.HideLegend,
		ShowGrid:   !o.HideGrid,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	d := o.Display()
	return cache.ArtifactKeyOpts{
		Format: format,
		Zoom:   d.Zoom,
		Labels: d.ShowLabels,
		Legend: d.ShowLegend,
		Grid:   d.ShowGrid,
	}
}
