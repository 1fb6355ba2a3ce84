package render

import (
	"bytes"
	"encoding/json"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/spacelayout/pkg/errors"
	"github.com/matzehuels/spacelayout/pkg/layout"
)

func classroomResult(t *testing.T) layout.Result {
	t.Helper()
	res, err := layout.ComputeLayout(layout.Request{
		Room:      layout.RoomSpec{Length: 10, Width: 8},
		SpaceType: "aula",
		Items:     []layout.ItemRequest{{ItemType: "pupitre", Quantity: 20}, {ItemType: "pizarra", Quantity: 1}},
		Options:   layout.Options{IncludeInstructorZone: true},
	})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	return res
}

func parkingResult(t *testing.T) layout.Result {
	t.Helper()
	res, err := layout.ComputeLayout(layout.Request{
		Room:      layout.RoomSpec{Length: 15, Width: 10},
		SpaceType: "parking",
		Items: []layout.ItemRequest{
			{ItemType: "vehiculo", Quantity: 3},
			{ItemType: "vehiculo_discapacitado", Quantity: 1},
			{ItemType: "motocicleta", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("ComputeLayout: %v", err)
	}
	return res
}

func TestRenderSVGStructure(t *testing.T) {
	res := classroomResult(t)
	svg := string(RenderSVG(res))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("not a complete svg document")
	}
	// 8 m x 40 px + 2 x 50 px padding
	if !strings.Contains(svg, `width="420"`) {
		t.Error("canvas width should be 420 at zoom 1")
	}
	if !strings.Contains(svg, `stroke="`+viableOutline+`"`) {
		t.Error("viable result should have green outline")
	}
	if got := strings.Count(svg, `class="item seat"`); got != 20 {
		t.Errorf("seat shapes = %d, want 20", got)
	}
	if !strings.Contains(svg, `id="zone-instructor"`) {
		t.Error("instructor zone missing")
	}
	if !strings.Contains(svg, `id="pupitre-20"`) {
		t.Error("instance ids missing")
	}
	if !strings.Contains(svg, `class="legend"`) || !strings.Contains(svg, "Pupitre (20)") {
		t.Error("legend missing")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	res := classroomResult(t)
	tests := []struct {
		name string
		opts []Option
		want bool
	}{
		{"default", nil, true},
		{"labels off", []Option{WithLabels(false)}, false},
		{"at threshold", []Option{WithZoom(LabelZoomThreshold)}, true},
		{"below threshold", []Option{WithZoom(0.5)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(res, tt.opts...))
			got := strings.Contains(svg, `class="item-label"`)
			if got != tt.want {
				t.Errorf("labels drawn = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderSVGUnviable(t *testing.T) {
	res, err := layout.ComputeLayout(layout.Request{
		Room:      layout.RoomSpec{Length: 6, Width: 5},
		SpaceType: "classroom",
		Items:     []layout.ItemRequest{{ItemType: "pupitre", Quantity: 30}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(RenderSVG(res)), `stroke="`+unviableOutline+`"`) {
		t.Error("unviable result should have red outline")
	}
}

func TestRenderSVGParkingShapes(t *testing.T) {
	svg := string(RenderSVG(parkingResult(t)))
	if got := strings.Count(svg, "<ellipse "); got != 2 {
		t.Errorf("motorcycle ellipses = %d, want 2", got)
	}
	stalls := strings.Count(svg, `<rect class="item vehicle"`) + strings.Count(svg, `<rect class="item accessible_vehicle"`)
	if stalls != 4 {
		t.Errorf("rounded stalls = %d, want 4", stalls)
	}
	if !strings.Contains(svg, `stroke-dasharray`) {
		t.Error("lane zones should be dashed")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	res := parkingResult(t)
	if !bytes.Equal(RenderSVG(res), RenderSVG(res)) {
		t.Error("RenderSVG is not deterministic")
	}
}

func TestRenderSVGZoom(t *testing.T) {
	res := classroomResult(t)
	svg := string(RenderSVG(res, WithZoom(2), WithLegend(false)))
	// 8 m x 80 px + 100 px padding
	if !strings.Contains(svg, `width="740"`) {
		t.Error("zoom 2 should double the room size")
	}
	if strings.Contains(svg, `class="legend"`) {
		t.Error("legend should be hidden")
	}

	fallback := string(RenderSVG(res, WithZoom(-1)))
	if !strings.Contains(fallback, `width="420"`) {
		t.Error("non-positive zoom should fall back to 1")
	}
}

func TestRenderSVGEscapesText(t *testing.T) {
	res := classroomResult(t)
	res.SpaceLabel = `Aula <A&B>`
	svg := string(RenderSVG(res))
	if !strings.Contains(svg, "Aula &lt;A&amp;B&gt;") {
		t.Error("title not escaped")
	}
}

func TestRenderSVGRemoteResult(t *testing.T) {
	res := layout.Result{
		Room:     layout.RoomSpec{Length: 10, Width: 10},
		IsViable: true,
		Placed:   []layout.PlacedItem{},
		Source:   layout.SourceRemote,
	}
	svg := string(RenderSVG(res))
	if strings.Contains(svg, `class="item`) || strings.Contains(svg, `class="legend"`) {
		t.Error("result without placements should draw only the room")
	}
}

func TestRenderPNG(t *testing.T) {
	res := parkingResult(t)
	data, err := RenderPNG(res)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	s := buildScene(res, newRenderer())
	b := img.Bounds()
	if b.Dx() != int(s.width) || b.Dy() != int(s.height) {
		t.Errorf("size = %dx%d, want %.0fx%.0f", b.Dx(), b.Dy(), s.width, s.height)
	}
}

func TestRenderPNGCanvasLimit(t *testing.T) {
	tests := []struct {
		name string
		room layout.RoomSpec
		zoom float64
		ok   bool
	}{
		{"small room at max zoom", layout.RoomSpec{Length: 10, Width: 8}, 10, true},
		{"large room at max zoom", layout.RoomSpec{Length: 150, Width: 150}, 10, false},
		{"largest room at zoom 1", layout.RoomSpec{Length: 1000, Width: 1000}, 1, false},
		{"infinite room", layout.RoomSpec{Length: math.Inf(1), Width: 5}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := layout.Result{Room: tt.room, IsViable: true}
			_, err := RenderPNG(res, WithZoom(tt.zoom), WithLabels(false))
			if tt.ok && err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestSceneGridBounded(t *testing.T) {
	tests := []struct {
		name  string
		room  layout.RoomSpec
		lines int
	}{
		{"one metre grid", layout.RoomSpec{Length: 10, Width: 8}, 9 + 7},
		{"coarse grid", layout.RoomSpec{Length: 1000, Width: 1000}, 2 * 199},
		{"huge room", layout.RoomSpec{Length: 3e7, Width: 1e6}, 199 + 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := buildScene(layout.Result{Room: tt.room}, newRenderer())
			if len(s.grid) != tt.lines {
				t.Errorf("grid lines = %d, want %d", len(s.grid), tt.lines)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	res := classroomResult(t)
	data, err := RenderJSON(res, WithZoom(0.5))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var out struct {
		SpaceType string              `json:"spaceTypeId"`
		Placed    []layout.PlacedItem `json:"placedItems"`
		Display   struct {
			Zoom          float64 `json:"zoom"`
			Scale         float64 `json:"pixelsPerMeter"`
			LabelsVisible bool    `json:"labelsVisible"`
		} `json:"display"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.SpaceType != "classroom" || len(out.Placed) != len(res.Placed) {
		t.Errorf("result fields lost: %s %d", out.SpaceType, len(out.Placed))
	}
	if out.Display.Zoom != 0.5 || out.Display.Scale != 20 || out.Display.LabelsVisible {
		t.Errorf("display = %+v", out.Display)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b float64
	}{
		{"#FF0000", 1, 0, 0},
		{"#0f0", 0, 1, 0},
		{"0000FF", 0, 0, 1},
		{"bogus", 0.5, 0.5, 0.5},
	}
	for _, tt := range tests {
		r, g, b := parseHex(tt.in)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("parseHex(%q) = %v %v %v", tt.in, r, g, b)
		}
	}
}
