package layout

import "github.com/matzehuels/spacelayout/pkg/catalog"

// Office geometry, in metres.
const (
	ReceptionWidth = 3.0
	ReceptionDepth = 2.5
	cabinetGap     = 0.05
)

// placeOffice keeps a reception area free at the entrance corner, lines
// cabinets along the back wall and groups desks in clusters of two by two
// with aisle-wide corridors between clusters.
func placeOffice(room Rect, placed []PlacedItem, demands []Demand, opts PlaceOptions) Plan {
	var p Plan
	reception := p.zone(ZoneReception, Rect{
		X: room.X,
		Y: room.Y,
		W: min(ReceptionWidth, room.W),
		H: min(ReceptionDepth, room.H),
	})
	reserved := append([]Rect{reception}, rects(placed)...)

	wall, floor := splitWall(demands)
	if len(wall) > 0 {
		x0 := reception.Right() + WallClearance
		strip := Rect{X: x0, Y: room.Y, W: room.Right() - WallClearance - x0, H: min(FrontZoneDepth, room.H)}
		if !strip.Empty() {
			items := placeWall(strip, wall, wallItemGap)
			p.add(items...)
			reserved = append(reserved, rects(items)...)
		}
	}

	var cabinets, rest []Demand
	for _, d := range floor {
		if d.Item.Role == catalog.RoleCabinet {
			cabinets = append(cabinets, d)
		} else {
			rest = append(rest, d)
		}
	}

	limit := room.Bottom()
	if row, ok := placeCabinets(&p, room, cabinets, reserved); ok {
		limit = row.Y - SeatClearance
	}

	clusters := rowPattern{
		GroupCols:   2,
		GroupColGap: opts.Aisle,
		GroupRows:   2,
		GroupRowGap: opts.Aisle,
		Lead:        opts.Aisle,
	}
	other := rowPattern{ColGap: SeatClearance, RowGap: SeatClearance, Lead: SeatClearance}

	bands := []band{{X0: room.X + WallClearance, X1: room.Right() - WallClearance}}
	s := newShelf(bands, room.Y+WallClearance, limit, reserved, opts.Aisle/2)
	for _, d := range rest {
		pattern := other
		if d.Item.Role == catalog.RoleDesk {
			pattern = clusters
		}
		p.add(s.fill(d, d.Item.Width, d.Item.Depth, pattern)...)
	}
	return p.finish(demands)
}

// placeCabinets lines cabinets up along the back wall. It returns the strip
// they occupy.
func placeCabinets(p *Plan, room Rect, cabinets []Demand, reserved []Rect) (Rect, bool) {
	depth := 0.0
	for _, d := range cabinets {
		if d.Quantity > 0 {
			depth = max(depth, d.Item.Depth)
		}
	}
	if depth <= eps || !fits(depth, room.H) {
		return Rect{}, false
	}

	row := p.zone(ZoneCabinets, Rect{X: room.X, Y: room.Bottom() - depth, W: room.W, H: depth})
	x, col := room.X+WallClearance, 0
	for _, d := range cabinets {
		for i := 0; i < d.Quantity; i++ {
			cell := Rect{X: x, Y: room.Bottom() - d.Item.Depth, W: d.Item.Width, H: d.Item.Depth}
			if !fits(cell.Right(), room.Right()-WallClearance) {
				return row, true
			}
			x += cell.W + cabinetGap
			if anyIntersects(cell, reserved) {
				continue
			}
			p.add(PlacedItem{
				ItemType:     d.Item.ID,
				Instance:     d.First + i,
				X:            cell.X,
				Y:            cell.Y,
				Width:        cell.W,
				Height:       cell.H,
				GridPosition: &GridPosition{Row: 0, Column: col},
			})
			col++
		}
	}
	return row, true
}
