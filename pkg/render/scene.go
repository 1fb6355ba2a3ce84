package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/layout"
)

type shapeKind int

const (
	shapeRect shapeKind = iota
	shapeRounded
	shapeEllipse
	shapeCircle
)

// shape is a filled, stroked primitive in canvas pixels.
type shape struct {
	kind         shapeKind
	id, class    string
	x, y, w, h   float64
	radius       float64
	fill, stroke string
	opacity      float64
	strokeWidth  float64
	dashed       bool
}

type label struct {
	x, y   float64
	size   float64
	text   string
	color  string
	anchor string // "start" or "middle"
	class  string
}

type legendEntry struct {
	fill, stroke string
	text         string
}

// scene is a format-neutral drawing of a result. Both sinks walk it in the
// same order: floor, grid, zones, items, labels, legend.
type scene struct {
	width, height float64
	scale         float64
	floor         shape
	grid          []float64 // vertical line x positions followed by horizontal y positions
	gridCols      int
	zones         []shape
	items         []shape
	labels        []label
	title         label
	legend        []legendEntry
	legendTop     float64
}

const (
	maxGridLines   = 200.0
	legendGap      = 30.0
	legendRow      = 20.0
	legendSwatch   = 14.0
	titleSize      = 14.0
	minLabelSize   = 8.0
	maxLabelSize   = 14.0
	outlineWidth   = 3.0
	itemStroke     = 1.0
	vehicleRadiusM = 0.3
)

func buildScene(res layout.Result, r renderer) scene {
	d := r.display
	s := scene{scale: d.Scale()}
	roomW := res.Room.Width * s.scale
	roomH := res.Room.Length * s.scale

	s.width = roomW + 2*Padding
	s.height = roomH + 2*Padding

	outline := viableOutline
	if !res.IsViable {
		outline = unviableOutline
	}
	s.floor = shape{
		kind: shapeRect, class: "room",
		x: Padding, y: Padding, w: roomW, h: roomH,
		fill: floorColor, stroke: outline, opacity: 1, strokeWidth: outlineWidth,
	}

	s.title = label{
		x: Padding, y: Padding / 2, size: titleSize, anchor: "start", color: textColor, class: "title",
		text: fmt.Sprintf("%s  %.1f m²  %.1f%%", spaceName(res), res.Room.Area(), res.OccupancyPercent),
	}

	if d.ShowGrid && s.scale >= 10 {
		step := gridStep(res.Room.Width, res.Room.Length)
		for x := step; x < res.Room.Width; x += step {
			s.grid = append(s.grid, Padding+x*s.scale)
		}
		s.gridCols = len(s.grid)
		for y := step; y < res.Room.Length; y += step {
			s.grid = append(s.grid, Padding+y*s.scale)
		}
	}

	labels := d.LabelsVisible()
	for _, z := range res.Zones {
		st := styleForZone(z.Kind)
		sh := shape{
			kind: shapeRect, class: "zone", id: "zone-" + string(z.Kind),
			x: Padding + z.X*s.scale, y: Padding + z.Y*s.scale, w: z.W * s.scale, h: z.H * s.scale,
			fill: st.fill, stroke: st.stroke, opacity: st.opacity, strokeWidth: itemStroke, dashed: st.dashed,
		}
		s.zones = append(s.zones, sh)
		if labels {
			s.labels = append(s.labels, centeredLabel(sh, string(z.Kind), mutedTextColor, "zone-label"))
		}
	}

	counts := map[string]int{}
	var order []catalog.ItemType
	for _, p := range res.Placed {
		it := r.lookup(res.SpaceType, p.ItemType)
		if counts[p.ItemType] == 0 {
			order = append(order, it)
		}
		counts[p.ItemType]++

		sh := itemShape(p, it, s.scale)
		s.items = append(s.items, sh)
		if labels {
			s.labels = append(s.labels, centeredLabel(sh, strconv.Itoa(p.Instance), textColor, "item-label"))
		}
	}

	if d.ShowLegend && len(order) > 0 {
		s.legendTop = s.height - Padding + legendGap
		for _, it := range order {
			s.legend = append(s.legend, legendEntry{
				fill: it.Fill, stroke: it.Stroke,
				text: fmt.Sprintf("%s (%d)", it.Name, counts[it.ID]),
			})
		}
		s.height += legendGap + float64(len(order))*legendRow
	}
	return s
}

// gridStep returns the grid spacing in whole metres: one metre unless the
// room is so large that a side would need more than maxGridLines lines.
func gridStep(w, l float64) float64 {
	return max(1, math.Ceil(max(w, l)/maxGridLines))
}

func (r renderer) lookup(space catalog.SpaceType, id string) catalog.ItemType {
	it, err := r.catalog.Lookup(space, id)
	if err != nil {
		it = catalog.ItemType{ID: id, Name: id, Role: catalog.RoleGeneric}
	}
	if it.Fill == "" {
		it.Fill = defaultFill
	}
	if it.Stroke == "" {
		it.Stroke = defaultStroke
	}
	if it.Name == "" {
		it.Name = it.ID
	}
	return it
}

func itemShape(p layout.PlacedItem, it catalog.ItemType, scale float64) shape {
	sh := shape{
		kind: shapeRect, class: "item " + string(it.Role), id: fmt.Sprintf("%s-%d", p.ItemType, p.Instance),
		x: Padding + p.X*scale, y: Padding + p.Y*scale, w: p.Width * scale, h: p.Height * scale,
		fill: it.Fill, stroke: it.Stroke, opacity: 0.85, strokeWidth: itemStroke,
	}
	switch it.Role {
	case catalog.RoleVehicle, catalog.RoleAccessibleVehicle:
		sh.kind = shapeRounded
		sh.radius = math.Min(vehicleRadiusM*scale, math.Min(sh.w, sh.h)/2)
	case catalog.RoleMotorcycle:
		sh.kind = shapeEllipse
	case catalog.RoleSeat:
		sh.kind = shapeCircle
		sh.radius = math.Min(sh.w, sh.h) / 2
	}
	return sh
}

func centeredLabel(sh shape, text, color, class string) label {
	size := math.Max(minLabelSize, math.Min(maxLabelSize, math.Min(sh.w, sh.h)*0.45))
	return label{
		x: sh.x + sh.w/2, y: sh.y + sh.h/2 + size/3,
		size: size, text: text, color: color, anchor: "middle", class: class,
	}
}

func spaceName(res layout.Result) string {
	if res.SpaceLabel != "" {
		return res.SpaceLabel
	}
	return res.SpaceType.String()
}
