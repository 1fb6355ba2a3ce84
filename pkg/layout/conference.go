package layout

import (
	"math"

	"github.com/matzehuels/spacelayout/pkg/catalog"
)

// Conference table geometry, in metres.
const (
	TableDepth     = 1.25
	MinTableLength = 2.0
	chairGap       = 0.1
)

// placeConferenceRoom joins table modules end to end into one central table
// and seats chairs along both long edges, then at the heads, then along the
// side walls. Without table modules a table area sized for the chairs is
// reserved instead.
func placeConferenceRoom(room Rect, placed []PlacedItem, demands []Demand, opts PlaceOptions) Plan {
	var p Plan
	top, reserved := frontZones(&p, room, opts)
	reserved = append(reserved, rects(placed)...)

	wall, floor := splitWall(demands)
	p.add(placeWall(p.Zones[0].Rect, wall, wallItemGap)...)

	var tables, chairs, others []Demand
	for _, d := range floor {
		switch d.Item.Role {
		case catalog.RoleTable:
			tables = append(tables, d)
		case catalog.RoleSeat:
			chairs = append(chairs, d)
		default:
			others = append(others, d)
		}
	}

	n, cw, cd := 0, 0.0, 0.0
	for _, d := range chairs {
		if d.Quantity > 0 {
			n += d.Quantity
			cw, cd = max(cw, d.Item.Width), max(cd, d.Item.Depth)
		}
	}

	var obstacles []Rect
	table, ok := placeTable(&p, room, top, tables, n, cw, cd)
	if ok {
		obstacles = append(obstacles, table)
	}
	obstacles = append(obstacles, reserved...)
	bottom := top
	for _, it := range p.Items {
		bottom = max(bottom, it.Rect().Bottom())
	}

	if n > 0 {
		slots := chairSlots(room, top, table, ok, cw, cd)
		k := 0
		for _, d := range chairs {
			for i := 0; i < d.Quantity; i++ {
				for k < slots.len() && (!room.Contains(slots.at(k).r) || anyIntersects(slots.at(k).r, obstacles)) {
					k++
				}
				if k == slots.len() {
					break
				}
				s := slots.at(k)
				k++
				r := Rect{X: s.r.X, Y: s.r.Y, W: d.Item.Width, H: d.Item.Depth}
				obstacles = append(obstacles, r)
				bottom = max(bottom, r.Bottom())
				p.add(PlacedItem{
					ItemType:     d.Item.ID,
					Instance:     d.First + i,
					X:            r.X,
					Y:            r.Y,
					Width:        r.W,
					Height:       r.H,
					GridPosition: &GridPosition{Row: s.row, Column: s.col},
				})
			}
		}
	}

	if len(others) > 0 {
		start := top
		if bottom > top {
			start = bottom + opts.Aisle
		}
		bands := []band{{X0: room.X + WallClearance, X1: room.Right() - WallClearance}}
		s := newShelf(bands, start, room.Bottom(), obstacles, 0)
		pattern := rowPattern{ColGap: classroomColGap, RowGap: classroomRowGap, Lead: classroomRowGap}
		for _, d := range others {
			p.add(s.fill(d, d.Item.Width, d.Item.Depth, pattern)...)
		}
	}
	return p.finish(demands)
}

// placeTable lays the table modules out centred in the room, leaving space
// for a chair row above and below and a chair at each head. Modules that do
// not fit are left out. With chairs but no modules it reserves a table zone.
func placeTable(p *Plan, room Rect, top float64, tables []Demand, chairs int, cw, cd float64) (Rect, bool) {
	length, depth := 0.0, 0.0
	for _, d := range tables {
		if d.Quantity > 0 {
			length += d.Item.Width * float64(d.Quantity)
			depth = max(depth, d.Item.Depth)
		}
	}
	synthetic := length == 0
	if synthetic {
		if chairs == 0 {
			return Rect{}, false
		}
		perSide := max(1, int(math.Ceil(float64(chairs-2)/2)))
		length = max(MinTableLength, float64(perSide)*(cw+chairGap))
		depth = TableDepth
	}

	maxLen := room.W - 2*WallClearance
	if chairs > 0 {
		maxLen -= 2 * (cw + chairGap)
	}
	y := top
	if chairs > 0 {
		y += cd + chairGap
	}
	if maxLen <= eps || !fits(y+depth, room.Bottom()) {
		return Rect{}, false
	}

	if synthetic {
		length = min(length, maxLen)
		x := room.X + (room.W-length)/2
		return p.zone(ZoneTable, Rect{X: x, Y: y, W: length, H: depth}), true
	}

	// Count the modules that fit to centre the assembled table.
	used := 0.0
	for _, d := range tables {
		for i := 0; i < d.Quantity && fits(used+d.Item.Width, maxLen); i++ {
			used += d.Item.Width
		}
	}
	if used <= eps {
		return Rect{}, false
	}

	x := room.X + (room.W-used)/2
	x0, col := x, 0
	for _, d := range tables {
		for i := 0; i < d.Quantity; i++ {
			if !fits(x+d.Item.Width-x0, used) {
				break
			}
			p.add(PlacedItem{
				ItemType:     d.Item.ID,
				Instance:     d.First + i,
				X:            x,
				Y:            y,
				Width:        d.Item.Width,
				Height:       d.Item.Depth,
				GridPosition: &GridPosition{Row: 0, Column: col},
			})
			x += d.Item.Width
			col++
		}
	}
	return Rect{X: x0, Y: y, W: used, H: depth}, true
}

type chairSlot struct {
	r        Rect
	row, col int
}

// seating lists candidate chair positions in seating order: the edge facing
// the front, the opposite edge, both heads, then the side walls. Wall slots
// are computed on demand.
type seating struct {
	table       []chairSlot
	left, right float64
	top         float64
	cw, cd      float64
	rows        int
}

func (s seating) len() int { return len(s.table) + 2*s.rows }

func (s seating) at(k int) chairSlot {
	if k < len(s.table) {
		return s.table[k]
	}
	k -= len(s.table)
	row, x := 3, s.left
	if k%2 == 1 {
		row, x = 4, s.right
	}
	col := k / 2
	y := s.top + float64(col)*(s.cd+chairGap)
	return chairSlot{r: Rect{X: x, Y: y, W: s.cw, H: s.cd}, row: row, col: col}
}

func chairSlots(room Rect, top float64, table Rect, hasTable bool, cw, cd float64) seating {
	s := seating{
		left:  room.X + WallClearance,
		right: room.Right() - WallClearance - cw,
		top:   top,
		cw:    cw,
		cd:    cd,
		rows:  countFit(room.Bottom()-top, cd, chairGap),
	}
	if hasTable {
		per := countFit(table.W, cw, chairGap)
		used := float64(per)*cw + float64(max(per-1, 0))*chairGap
		x0 := table.X + (table.W-used)/2
		for c := 0; c < per; c++ {
			x := x0 + float64(c)*(cw+chairGap)
			s.table = append(s.table, chairSlot{r: Rect{X: x, Y: table.Y - chairGap - cd, W: cw, H: cd}, row: 0, col: c})
		}
		for c := 0; c < per; c++ {
			x := x0 + float64(c)*(cw+chairGap)
			s.table = append(s.table, chairSlot{r: Rect{X: x, Y: table.Bottom() + chairGap, W: cw, H: cd}, row: 1, col: c})
		}
		y := table.Y + (table.H-cd)/2
		s.table = append(s.table,
			chairSlot{r: Rect{X: table.X - chairGap - cw, Y: y, W: cw, H: cd}, row: 2, col: 0},
			chairSlot{r: Rect{X: table.Right() + chairGap, Y: y, W: cw, H: cd}, row: 2, col: 1},
		)
	}
	return s
}
