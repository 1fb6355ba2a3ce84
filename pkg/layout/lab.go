package layout

import "github.com/matzehuels/spacelayout/pkg/catalog"

// Computer lab workstations occupy a fixed bench cell regardless of the
// catalog footprint, which also accounts for the chair.
const (
	WorkstationWidth = 1.2
	WorkstationDepth = 0.8
	benchColGap      = 0.05
)

// placeComputerLab lays workstations out as back-to-back bench pairs in two
// banks mirrored across a central aisle. Other floor items follow below in
// ordinary rows.
func placeComputerLab(room Rect, placed []PlacedItem, demands []Demand, opts PlaceOptions) Plan {
	var p Plan
	top, reserved := frontZones(&p, room, opts)
	reserved = append(reserved, rects(placed)...)

	wall, floor := splitWall(demands)
	p.add(placeWall(p.Zones[0].Rect, wall, wallItemGap)...)

	if top < room.Bottom() {
		mid := room.X + room.W/2
		p.zone(ZoneAisle, Rect{X: mid - opts.Aisle/2, Y: top, W: opts.Aisle, H: room.Bottom() - top})
	}

	benches := rowPattern{
		ColGap:      benchColGap,
		RowGap:      0,
		GroupRows:   2,
		GroupRowGap: opts.Aisle,
		Lead:        opts.Aisle,
	}
	other := rowPattern{ColGap: classroomColGap, RowGap: classroomRowGap, Lead: opts.Aisle}

	s := newShelf(aisleBands(room, opts.Aisle, alignEnd), top, room.Bottom(), reserved, 0)
	for _, d := range floor {
		if d.Item.Role == catalog.RoleWorkstation {
			p.add(s.fill(d, WorkstationWidth, WorkstationDepth, benches)...)
			continue
		}
		p.add(s.fill(d, d.Item.Width, d.Item.Depth, other)...)
	}
	return p.finish(demands)
}
