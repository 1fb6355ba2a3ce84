package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/errors"
)

// ComputeLayout runs [Compute] against the embedded default catalog.
func ComputeLayout(req Request) (Result, error) {
	return Compute(req, catalog.Default())
}

// Compute validates req, assesses its area feasibility and places every
// requested instance with the strategy of its space type.
//
// Invalid or oversized room dimensions, negative quantities, oversized requests and item
// types missing from the catalog are errors and yield no result. Everything
// else, including requests that do not fit, produces a result: shortfalls
// are reported through IsViable, AllPlaced, Unplaced and Warnings.
//
// Compute does no I/O and keeps no state; it is safe for concurrent use.
func Compute(req Request, cat *catalog.Catalog) (Result, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	params := cat.Params()

	room := req.Room
	if err := errors.ValidateDimension("room length", room.Length); err != nil {
		return Result{}, err
	}
	if err := errors.ValidateDimension("room width", room.Width); err != nil {
		return Result{}, err
	}
	if room.Length > MaxRoomDimension || room.Width > MaxRoomDimension {
		return Result{}, errors.New(errors.ErrCodeInvalidRoomSpec,
			"room dimensions must not exceed %g m, got %g x %g", MaxRoomDimension, room.Length, room.Width)
	}
	shape, err := catalog.ParseShape(room.Shape)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidRoomSpec, err, "invalid room shape")
	}

	aisle, err := resolveAisle(req, params)
	if err != nil {
		return Result{}, err
	}
	room.AisleMinWidth = aisle

	var warnings []string
	space, known := catalog.ParseSpaceType(req.SpaceType)
	if !known {
		warnings = append(warnings,
			fmt.Sprintf("space type %q is not recognised; using the %s layout", req.SpaceType, space))
	}

	demands, err := resolveDemands(cat, space, req.Items)
	if err != nil {
		return Result{}, err
	}

	includeInstructor := req.Options.IncludeInstructorZone
	overhead := cat.FixedOverhead(space, includeInstructor)
	a, err := Feasibility(room, demands, overhead, params)
	if err != nil {
		return Result{}, err
	}

	if shape.IsApproximated() {
		warnings = append(warnings,
			fmt.Sprintf("%s rooms are laid out on their bounding rectangle; placements are approximate", shape))
	}

	plan := StrategyFor(space).Place(room.Bounds(), nil, demands, PlaceOptions{
		Aisle:          aisle,
		InstructorZone: overhead > 0,
		InstructorArea: overhead,
	})

	recommendations, advice := Advise(a)
	warnings = append(warnings, plan.Warnings...)
	warnings = append(warnings, advice...)

	res := Result{
		SpaceType:        space,
		Room:             room,
		IsViable:         a.IsViable,
		AllPlaced:        len(plan.Unplaced) == 0,
		OccupancyPercent: a.OccupancyPercent,
		RoomArea:         a.RoomArea,
		UsableArea:       a.UsableArea,
		RequiredArea:     a.RequiredArea,
		PlacedArea:       placedArea(demands, plan.Items),
		AisleWidth:       aisle,
		Breakdown:        a.Breakdown,
		Placed:           plan.Items,
		Zones:            plan.Zones,
		Unplaced:         plan.Unplaced,
		Warnings:         warnings,
		Recommendations:  recommendations,
		Source:           SourceLocal,
	}
	if s, ok := cat.Space(space); ok {
		res.SpaceLabel = s.Name
	}
	if res.Placed == nil {
		res.Placed = []PlacedItem{}
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	return res, nil
}

// resolveAisle applies the aisle width precedence: request options, then
// the room, then the catalog default.
func resolveAisle(req Request, params catalog.Params) (float64, error) {
	for _, v := range []float64{req.Options.AisleMinWidth, req.Room.AisleMinWidth} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0, errors.New(errors.ErrCodeInvalidRoomSpec, "aisle width must be a positive number, got %v", v)
		}
		if v > 0 {
			return v, nil
		}
	}
	if params.DefaultAisleWidth > 0 {
		return params.DefaultAisleWidth, nil
	}
	return catalog.DefaultAisleWidth, nil
}

// resolveDemands looks every request line up in the catalog and assigns
// instance indices. Repeated item types continue their numbering.
func resolveDemands(cat *catalog.Catalog, space catalog.SpaceType, items []ItemRequest) ([]Demand, error) {
	demands := make([]Demand, 0, len(items))
	next := make(map[string]int)
	total := 0
	for _, it := range items {
		if it.Quantity < 0 {
			return nil, errors.New(errors.ErrCodeInvalidRoomSpec,
				"quantity for %q must not be negative, got %d", it.ItemType, it.Quantity)
		}
		item, err := cat.Lookup(space, it.ItemType)
		if err != nil {
			return nil, err
		}
		total += it.Quantity
		if total > MaxInstances {
			return nil, errors.New(errors.ErrCodeInvalidRoomSpec,
				"request asks for more than %d instances", MaxInstances)
		}
		demands = append(demands, Demand{Item: item, Quantity: it.Quantity, First: next[item.ID] + 1})
		next[item.ID] += it.Quantity
	}
	return demands, nil
}

func placedArea(demands []Demand, placed []PlacedItem) float64 {
	unit := make(map[string]float64, len(demands))
	for _, d := range demands {
		unit[d.Item.ID] = d.Item.Area()
	}
	total := 0.0
	for _, p := range placed {
		total += unit[p.ItemType]
	}
	return total
}
