package layout

// Classroom seating: column and row spacing between desks.
const (
	classroomColGap = 0.1
	classroomRowGap = 0.5
)

// placeClassroom lays desks out in two banks separated by a central aisle,
// below the front wall and the optional instructor area.
func placeClassroom(room Rect, placed []PlacedItem, demands []Demand, opts PlaceOptions) Plan {
	var p Plan
	top, reserved := frontZones(&p, room, opts)
	reserved = append(reserved, rects(placed)...)

	wall, floor := splitWall(demands)
	p.add(placeWall(p.Zones[0].Rect, wall, wallItemGap)...)

	if top < room.Bottom() {
		mid := room.X + room.W/2
		p.zone(ZoneAisle, Rect{X: mid - opts.Aisle/2, Y: top, W: opts.Aisle, H: room.Bottom() - top})
	}

	pattern := rowPattern{ColGap: classroomColGap, RowGap: classroomRowGap, Lead: classroomRowGap}
	s := newShelf(aisleBands(room, opts.Aisle, alignStart), top, room.Bottom(), reserved, 0)
	for _, d := range floor {
		p.add(s.fill(d, d.Item.Width, d.Item.Depth, pattern)...)
	}
	return p.finish(demands)
}
