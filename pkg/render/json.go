package render

import (
	"encoding/json"

	"github.com/matzehuels/spacelayout/pkg/layout"
)

type jsonOutput struct {
	layout.Result
	Display jsonDisplay `json:"display"`
}

type jsonDisplay struct {
	DisplayOptions
	Scale         float64 `json:"pixelsPerMeter"`
	Width         float64 `json:"canvasWidth"`
	Height        float64 `json:"canvasHeight"`
	LabelsVisible bool    `json:"labelsVisible"`
}

// RenderJSON exports res with the canvas geometry a client needs to draw it
// at the requested zoom.
func RenderJSON(res layout.Result, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s := buildScene(res, r)
	out := jsonOutput{
		Result: res,
		Display: jsonDisplay{
			DisplayOptions: r.display,
			Scale:          s.scale,
			Width:          s.width,
			Height:         s.height,
			LabelsVisible:  r.display.LabelsVisible(),
		},
	}
	return json.MarshalIndent(out, "", "  ")
}
