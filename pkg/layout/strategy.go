package layout

import (
	"fmt"

	"github.com/matzehuels/spacelayout/pkg/catalog"
)

// Layout constants shared by the strategies, in metres.
const (
	FrontZoneDepth      = 1.0
	InstructorZoneWidth = 4.0
	WallClearance       = 0.2
	SeatClearance       = 0.3
	wallItemGap         = 0.2
)

// PlaceOptions carries the resolved per-request settings into a strategy.
type PlaceOptions struct {
	Aisle          float64
	InstructorZone bool
	InstructorArea float64
}

// Plan is what a strategy produces.
type Plan struct {
	Items    []PlacedItem
	Zones    []Zone
	Warnings []string
	Unplaced map[string]int
}

// Strategy computes placements for one space type. Implementations are pure:
// the same inputs always yield the same plan. placed lists instances that
// already occupy the room; new instances never overlap them.
type Strategy interface {
	Place(room Rect, placed []PlacedItem, demands []Demand, opts PlaceOptions) Plan
}

// StrategyFunc adapts a function to [Strategy].
type StrategyFunc func(room Rect, placed []PlacedItem, demands []Demand, opts PlaceOptions) Plan

// Place calls f.
func (f StrategyFunc) Place(room Rect, placed []PlacedItem, demands []Demand, opts PlaceOptions) Plan {
	return f(room, placed, demands, opts)
}

// StrategyFor returns the placement strategy of a space type. Out of range
// values get the classroom strategy.
func StrategyFor(space catalog.SpaceType) Strategy {
	switch space {
	case catalog.ComputerLab:
		return StrategyFunc(placeComputerLab)
	case catalog.Parking:
		return StrategyFunc(placeParking)
	case catalog.Auditorium:
		return StrategyFunc(placeAuditorium)
	case catalog.Office:
		return StrategyFunc(placeOffice)
	case catalog.ConferenceRoom:
		return StrategyFunc(placeConferenceRoom)
	default:
		return StrategyFunc(placeClassroom)
	}
}

func (p *Plan) add(items ...PlacedItem) {
	p.Items = append(p.Items, items...)
}

func (p *Plan) zone(kind ZoneKind, r Rect) Rect {
	p.Zones = append(p.Zones, Zone{Kind: kind, Rect: r})
	return r
}

func (p *Plan) warn(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

// finish records one shortfall warning per item type that did not get all of
// its requested instances, in request order.
func (p *Plan) finish(demands []Demand) Plan {
	requested := make(map[string]int)
	var order []string
	for _, d := range demands {
		if _, seen := requested[d.Item.ID]; !seen {
			order = append(order, d.Item.ID)
		}
		requested[d.Item.ID] += d.Quantity
	}
	got := make(map[string]int)
	for _, it := range p.Items {
		got[it.ItemType]++
	}
	for _, id := range order {
		if missing := requested[id] - got[id]; missing > 0 {
			if p.Unplaced == nil {
				p.Unplaced = make(map[string]int)
			}
			p.Unplaced[id] = missing
			p.warn("%s: %d of %d requested instances could not be placed", id, missing, requested[id])
		}
	}
	return *p
}

// splitWall separates front-wall items from floor items, keeping order.
func splitWall(demands []Demand) (wall, floor []Demand) {
	for _, d := range demands {
		if d.Item.IsWall() {
			wall = append(wall, d)
		} else {
			floor = append(floor, d)
		}
	}
	return wall, floor
}

func rects(items []PlacedItem) []Rect {
	out := make([]Rect, len(items))
	for i, it := range items {
		out[i] = it.Rect()
	}
	return out
}

// frontZones reserves the front strip and, when requested, the instructor
// area centred beneath it. It returns the y coordinate where seating may
// start and the reserved rectangles.
func frontZones(p *Plan, room Rect, opts PlaceOptions) (float64, []Rect) {
	front := p.zone(ZoneFront, Rect{X: room.X, Y: room.Y, W: room.W, H: min(FrontZoneDepth, room.H)})
	reserved := []Rect{front}
	top := front.Bottom()

	if opts.InstructorZone && opts.InstructorArea > 0 {
		w := min(InstructorZoneWidth, room.W)
		h := min(opts.InstructorArea/w, room.Bottom()-top)
		if h > eps {
			iz := p.zone(ZoneInstructor, Rect{X: room.X + (room.W-w)/2, Y: top, W: w, H: h})
			reserved = append(reserved, iz)
			top = iz.Bottom()
		}
	}
	return top + SeatClearance, reserved
}

// aisleBands splits the room width into two bands around a central aisle.
func aisleBands(room Rect, aisle float64, right align) []band {
	mid := room.X + room.W/2
	var bands []band
	if l := (band{X0: room.X + WallClearance, X1: mid - aisle/2}); l.width() > eps {
		bands = append(bands, l)
	}
	if r := (band{X0: mid + aisle/2, X1: room.Right() - WallClearance, Align: right}); r.width() > eps {
		bands = append(bands, r)
	}
	return bands
}
