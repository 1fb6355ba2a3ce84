package layout

// Auditorium geometry, in metres.
const (
	StageMaxDepth      = 3.0
	StageClearance     = 1.0
	AuditoriumAisle    = 1.5
	auditoriumSections = 3
	auditoriumColGap   = 0.05
	auditoriumRowGap   = 0.5
)

// placeAuditorium reserves a stage across the front and fills three seating
// sections separated by two aisles, each row running left, centre, right.
func placeAuditorium(room Rect, placed []PlacedItem, demands []Demand, opts PlaceOptions) Plan {
	var p Plan
	stage := p.zone(ZoneStage, Rect{X: room.X, Y: room.Y, W: room.W, H: min(StageMaxDepth, room.H/3)})
	reserved := append([]Rect{stage}, rects(placed)...)

	wall, floor := splitWall(demands)
	p.add(placeWall(stage, wall, wallItemGap)...)

	top := stage.Bottom() + StageClearance
	inner := room.W - 2*WallClearance - (auditoriumSections-1)*AuditoriumAisle
	if inner <= eps || top >= room.Bottom() {
		return p.finish(demands)
	}

	section := inner / auditoriumSections
	x := room.X + WallClearance
	bands := make([]band, 0, auditoriumSections)
	for i := 0; i < auditoriumSections; i++ {
		bands = append(bands, band{X0: x, X1: x + section, Align: alignCenter})
		x += section
		if i < auditoriumSections-1 {
			p.zone(ZoneAisle, Rect{X: x, Y: top, W: AuditoriumAisle, H: room.Bottom() - top})
			x += AuditoriumAisle
		}
	}

	pattern := rowPattern{ColGap: auditoriumColGap, RowGap: auditoriumRowGap, Lead: auditoriumRowGap}
	s := newShelf(bands, top, room.Bottom(), reserved, 0)
	for _, d := range floor {
		p.add(s.fill(d, d.Item.Width, d.Item.Depth, pattern)...)
	}
	return p.finish(demands)
}
