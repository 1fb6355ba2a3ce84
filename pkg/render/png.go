package render

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/spacelayout/pkg/errors"
	"github.com/matzehuels/spacelayout/pkg/layout"
)

// MaxCanvasPixels bounds the raster RenderPNG allocates, legend included.
const MaxCanvasPixels = 32 << 20

// RenderPNG rasterizes res with a native 2D canvas; no external tools are
// needed. Text uses a fixed 7x13 bitmap face regardless of label size.
func RenderPNG(res layout.Result, opts ...Option) ([]byte, error) {
	s := buildScene(res, newRenderer(opts...))

	w, h := math.Ceil(s.width), math.Ceil(s.height)
	if !(w*h <= MaxCanvasPixels) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"PNG canvas of %.0fx%.0f px exceeds the %d pixel limit; lower the zoom", w, h, MaxCanvasPixels)
	}

	dc := gg.NewContext(int(w), int(h))
	dc.SetFontFace(basicfont.Face7x13)
	setColor(dc, backgroundColor, 1)
	dc.Clear()

	drawLabel(dc, s.title)
	drawShape(dc, s.floor)

	if len(s.grid) > 0 {
		setColor(dc, gridColor, 1)
		dc.SetLineWidth(0.5)
		for i, v := range s.grid {
			if i < s.gridCols {
				dc.DrawLine(v, s.floor.y, v, s.floor.y+s.floor.h)
			} else {
				dc.DrawLine(s.floor.x, v, s.floor.x+s.floor.w, v)
			}
		}
		dc.Stroke()
	}

	for _, z := range s.zones {
		drawShape(dc, z)
	}
	for _, it := range s.items {
		drawShape(dc, it)
	}
	for _, l := range s.labels {
		drawLabel(dc, l)
	}
	for i, e := range s.legend {
		y := s.legendTop + float64(i)*legendRow
		dc.DrawRectangle(Padding, y, legendSwatch, legendSwatch)
		setColor(dc, e.fill, 1)
		dc.FillPreserve()
		setColor(dc, e.stroke, 1)
		dc.SetLineWidth(1)
		dc.Stroke()
		drawLabel(dc, label{x: Padding + legendSwatch + 8, y: y + legendSwatch - 3, text: e.text, color: textColor, anchor: "start"})
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawShape(dc *gg.Context, sh shape) {
	switch sh.kind {
	case shapeRounded:
		dc.DrawRoundedRectangle(sh.x, sh.y, sh.w, sh.h, sh.radius)
	case shapeEllipse:
		dc.DrawEllipse(sh.x+sh.w/2, sh.y+sh.h/2, sh.w/2, sh.h/2)
	case shapeCircle:
		dc.DrawCircle(sh.x+sh.w/2, sh.y+sh.h/2, sh.radius)
	default:
		dc.DrawRectangle(sh.x, sh.y, sh.w, sh.h)
	}
	setColor(dc, sh.fill, sh.opacity)
	dc.FillPreserve()

	setColor(dc, sh.stroke, 1)
	dc.SetLineWidth(sh.strokeWidth)
	if sh.dashed {
		dc.SetDash(6, 4)
	}
	dc.Stroke()
	dc.SetDash()
}

func drawLabel(dc *gg.Context, l label) {
	setColor(dc, l.color, 1)
	ax := 0.0
	if l.anchor == "middle" {
		ax = 0.5
	}
	dc.DrawStringAnchored(l.text, l.x, l.y, ax, 0)
}

func setColor(dc *gg.Context, hex string, alpha float64) {
	r, g, b := parseHex(hex)
	dc.SetRGBA(r, g, b, alpha)
}
