// Package render draws layout results as floor plans.
//
// # Formats
//
// [RenderSVG] writes a standalone SVG document. [RenderPNG] rasterizes the
// same drawing with fogleman/gg. [RenderPDF] converts the SVG with the
// external rsvg-convert tool (librsvg), and [ToPNG] offers the same
// conversion to PNG. [RenderJSON] exports the result together with the
// canvas geometry.
//
//	svg := render.RenderSVG(res, render.WithZoom(1.5))
//	png, err := render.RenderPNG(res, render.WithLabels(false))
//	pdf, err := render.RenderPDF(res)
//
// # Drawing
//
// The room is drawn at [BaseScale] pixels per metre times the zoom, inside
// [Padding] pixels of margin. The outline is green when the result is
// viable and red otherwise. Reserved zones are translucent, circulation
// zones dashed. Vehicles are rounded rectangles, motorcycles ellipses,
// seats circles and everything else plain rectangles, coloured from the
// catalog. Each instance is labelled with its instance index when labels
// are enabled and the zoom is at least [LabelZoomThreshold]. A legend
// below the room lists each placed item type with its count.
//
// Rendering only reads the result; the same result always produces the
// same bytes.
package render
