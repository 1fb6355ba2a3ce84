package layout

import (
	"math"

	"github.com/matzehuels/spacelayout/pkg/catalog"
)

// Parking geometry, in metres. A block is a row of stalls, a circulation
// lane and a second row facing it.
const (
	StallDepth           = 4.5
	LaneWidth            = 4.5
	MinLaneWidth         = 2.0
	MinStallDepth        = 1.5
	MotorcycleSeparation = 1.0
)

type stall struct {
	demand Demand
	index  int
	width  float64
}

// placeParking fills a shared stall grid with accessible stalls first, then
// the remaining vehicles in request order. Motorcycles get their own strip
// along the bottom of the lot, sized for all of them.
func placeParking(room Rect, placed []PlacedItem, demands []Demand, opts PlaceOptions) Plan {
	var p Plan
	obstacles := rects(placed)

	var accessible, vehicles, motos []Demand
	for _, d := range demands {
		switch d.Item.Role {
		case catalog.RoleAccessibleVehicle:
			accessible = append(accessible, d)
		case catalog.RoleMotorcycle:
			motos = append(motos, d)
		default:
			vehicles = append(vehicles, d)
		}
	}

	avail := room.H
	if zone, ok := placeMotorcycles(&p, room, motos, obstacles); ok {
		avail = max(0, zone.Y-MotorcycleSeparation-room.Y)
	}

	rows := stallRows(room.W, append(accessible, vehicles...))
	if len(rows) == 0 {
		return p.finish(demands)
	}

	blocks := (len(rows) + 1) / 2
	depth, lane, usable := parkingGeometry(avail, blocks)
	if depth < StallDepth-eps {
		p.warn("parking rows compressed to fit the lot: stall depth %.2f m, lane width %.2f m", depth, lane)
	}

	blockH := 2*depth + lane
	var stalls []PlacedItem
	for r, row := range rows {
		b := r / 2
		if b >= usable {
			break
		}
		y := room.Y + float64(b)*blockH
		if r%2 == 1 {
			y += depth + lane
		}
		if !fits(y+depth-room.Y, avail) {
			break
		}
		if r%2 == 0 && fits(y+depth+lane-room.Y, avail) {
			p.zone(ZoneLane, Rect{X: room.X, Y: y + depth, W: room.W, H: lane})
		}

		x := room.X
		for c, s := range row {
			cell := Rect{X: x, Y: y, W: s.width, H: depth}
			x += s.width
			if anyIntersects(cell, obstacles) {
				continue
			}
			stalls = append(stalls, PlacedItem{
				ItemType:     s.demand.Item.ID,
				Instance:     s.demand.First + s.index,
				X:            cell.X,
				Y:            cell.Y,
				Width:        cell.W,
				Height:       cell.H,
				GridPosition: &GridPosition{Row: r, Column: c},
			})
		}
	}

	// Stalls come first in the output so stall numbering starts at the
	// accessible positions.
	p.Items = append(stalls, p.Items...)
	return p.finish(demands)
}

// stallRows breaks the stall sequence into rows that fit the lot width.
func stallRows(width float64, demands []Demand) [][]stall {
	var rows [][]stall
	var cur []stall
	x := 0.0
	for _, d := range demands {
		for i := 0; i < d.Quantity; i++ {
			w := d.Item.Width
			if !fits(w, width) {
				continue
			}
			if !fits(x+w, width) {
				rows = append(rows, cur)
				cur, x = nil, 0
			}
			cur = append(cur, stall{demand: d, index: i, width: w})
			x += w
		}
	}
	if len(cur) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

// parkingGeometry returns the stall depth and lane width for blocks of rows
// in avail metres, and how many blocks can be laid out. When the nominal
// blocks overflow, depth and lane shrink by the same factor with the lane
// floored at MinLaneWidth. Blocks that would push stalls below MinStallDepth
// are dropped instead.
func parkingGeometry(avail float64, blocks int) (depth, lane float64, usable int) {
	nominal := 2*StallDepth + LaneWidth
	if float64(blocks)*nominal <= avail+eps {
		return StallDepth, LaneWidth, blocks
	}
	for b := blocks; b >= 1; b-- {
		scale := avail / (float64(b) * nominal)
		depth, lane = StallDepth*scale, LaneWidth*scale
		if lane < MinLaneWidth {
			lane = MinLaneWidth
			depth = (avail/float64(b) - lane) / 2
		}
		if depth >= MinStallDepth-eps {
			return min(depth, StallDepth), min(lane, LaneWidth), b
		}
	}
	return StallDepth, LaneWidth, blocks
}

// placeMotorcycles sizes the motorcycle strip for every requested motorcycle
// and fills it row by row. The orientation giving the shorter strip wins,
// upright on ties.
func placeMotorcycles(p *Plan, room Rect, motos []Demand, obstacles []Rect) (Rect, bool) {
	count := 0
	var w, h float64
	for _, d := range motos {
		count += d.Quantity
		w, h = max(w, d.Item.Width), max(h, d.Item.Depth)
	}
	if count == 0 {
		return Rect{}, false
	}

	type orientation struct {
		cw, ch  float64
		rotated bool
		perRow  int
		height  float64
	}
	var best *orientation
	for _, o := range []orientation{{cw: w, ch: h}, {cw: h, ch: w, rotated: true}} {
		o.perRow = countFit(room.W, o.cw, 0)
		if o.perRow == 0 {
			continue
		}
		o.height = math.Ceil(float64(count)/float64(o.perRow)) * o.ch
		if best == nil || o.height < best.height-eps {
			best = &o
		}
	}
	if best == nil {
		return Rect{}, false
	}

	zone := p.zone(ZoneMotorcycle, Rect{
		X: room.X,
		Y: room.Bottom() - min(best.height, room.H),
		W: room.W,
		H: min(best.height, room.H),
	})

	k := 0
	for _, d := range motos {
		iw, ih := d.Item.Width, d.Item.Depth
		if best.rotated {
			iw, ih = ih, iw
		}
		for i := 0; i < d.Quantity; i, k = i+1, k+1 {
			row, col := k/best.perRow, k%best.perRow
			cell := Rect{
				X: zone.X + float64(col)*best.cw,
				Y: zone.Y + float64(row)*best.ch,
				W: iw,
				H: ih,
			}
			if !zone.Contains(cell) || anyIntersects(cell, obstacles) {
				continue
			}
			p.add(PlacedItem{
				ItemType:     d.Item.ID,
				Instance:     d.First + i,
				X:            cell.X,
				Y:            cell.Y,
				Width:        cell.W,
				Height:       cell.H,
				Rotated:      best.rotated,
				GridPosition: &GridPosition{Row: row, Column: col},
			})
		}
	}
	return zone, true
}
