package render

import (
	"github.com/matzehuels/spacelayout/pkg/catalog"
)

const (
	// BaseScale is the drawing scale at zoom 1, in pixels per metre.
	BaseScale = 40.0

	// Padding surrounds the room outline, in pixels.
	Padding = 50.0

	// LabelZoomThreshold is the smallest zoom at which labels are legible.
	LabelZoomThreshold = 0.8

	// DefaultZoom is used when no zoom or a non-positive zoom is given.
	DefaultZoom = 1.0

	// DefaultPNGScale is the rsvg-convert scale factor for [ToPNG].
	DefaultPNGScale = 2.0
)

// DisplayOptions control how a layout result is drawn.
type DisplayOptions struct {
	Zoom       float64 `json:"zoom"`
	ShowLabels bool    `json:"showLabels"`
	ShowLegend bool    `json:"showLegend"`
	ShowGrid   bool    `json:"showGrid"`
}

// DefaultDisplayOptions returns zoom 1 with labels, legend and grid.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{Zoom: DefaultZoom, ShowLabels: true, ShowLegend: true, ShowGrid: true}
}

// LabelsVisible reports whether instance labels are drawn.
func (o DisplayOptions) LabelsVisible() bool {
	return o.ShowLabels && o.Zoom >= LabelZoomThreshold
}

// Scale returns pixels per metre.
func (o DisplayOptions) Scale() float64 { return BaseScale * o.Zoom }

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	display DisplayOptions
	catalog *catalog.Catalog
}

func newRenderer(opts ...Option) renderer {
	r := renderer{display: DefaultDisplayOptions()}
	for _, opt := range opts {
		opt(&r)
	}
	if r.display.Zoom <= 0 {
		r.display.Zoom = DefaultZoom
	}
	if r.catalog == nil {
		r.catalog = catalog.Default()
	}
	return r
}

// WithDisplay replaces all display options at once.
func WithDisplay(d DisplayOptions) Option { return func(r *renderer) { r.display = d } }

// WithZoom sets the zoom factor. Non-positive values fall back to [DefaultZoom].
func WithZoom(z float64) Option { return func(r *renderer) { r.display.Zoom = z } }

// WithLabels toggles instance labels.
func WithLabels(show bool) Option { return func(r *renderer) { r.display.ShowLabels = show } }

// WithLegend toggles the legend below the room.
func WithLegend(show bool) Option { return func(r *renderer) { r.display.ShowLegend = show } }

// WithGrid toggles the one-metre grid.
func WithGrid(show bool) Option { return func(r *renderer) { r.display.ShowGrid = show } }

// WithCatalog sets the catalog used for item colours, roles and names.
func WithCatalog(c *catalog.Catalog) Option { return func(r *renderer) { r.catalog = c } }
