package layout

import (
	"fmt"

	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/errors"
)

// Assessment is the area-based feasibility verdict for a request.
type Assessment struct {
	RoomArea         float64
	UsableArea       float64
	RequiredArea     float64
	Overhead         float64
	OccupancyPercent float64
	IsViable         bool
	Breakdown        []AreaLine
	// Shortfall is RequiredArea-UsableArea when not viable, else 0.
	Shortfall float64
	// SuggestedMinArea is the smallest room area that would make the request viable.
	SuggestedMinArea float64
}

// Feasibility compares the area required by demands plus a fixed overhead
// against the usable share of the room.
//
// The occupancy percentage is not capped; values above 100 measure how far
// the request exceeds the room.
func Feasibility(room RoomSpec, demands []Demand, overhead float64, params catalog.Params) (Assessment, error) {
	if err := errors.ValidateDimension("room length", room.Length); err != nil {
		return Assessment{}, err
	}
	if err := errors.ValidateDimension("room width", room.Width); err != nil {
		return Assessment{}, err
	}
	factor := params.UtilizationFactor
	if factor <= 0 || factor > 1 {
		factor = catalog.DefaultUtilizationFactor
	}

	a := Assessment{
		RoomArea: room.Area(),
		Overhead: overhead,
	}
	a.UsableArea = a.RoomArea * factor

	for _, d := range demands {
		line := AreaLine{
			ItemType:  d.Item.ID,
			Name:      d.Item.Name,
			Quantity:  d.Quantity,
			UnitArea:  d.Item.Area(),
			TotalArea: d.Item.Area() * float64(d.Quantity),
		}
		a.Breakdown = append(a.Breakdown, line)
		a.RequiredArea += line.TotalArea
	}
	if overhead > 0 {
		a.Breakdown = append(a.Breakdown, AreaLine{
			ItemType:  catalog.InstructorZoneID,
			Name:      "Instructor zone",
			Quantity:  1,
			UnitArea:  overhead,
			TotalArea: overhead,
		})
		a.RequiredArea += overhead
	}

	a.IsViable = a.RequiredArea <= a.UsableArea+eps
	if a.RequiredArea > 0 {
		a.OccupancyPercent = a.RequiredArea / a.UsableArea * 100
	}
	if !a.IsViable {
		a.Shortfall = a.RequiredArea - a.UsableArea
	}
	a.SuggestedMinArea = a.RequiredArea / factor
	return a, nil
}

// Advise turns an assessment into user-facing recommendations and warnings.
func Advise(a Assessment) (recommendations, warnings []string) {
	if a.RequiredArea <= 0 {
		return nil, nil
	}
	if a.IsViable {
		recommendations = append(recommendations,
			fmt.Sprintf("Occupancy is %.1f%% of the usable area", a.OccupancyPercent))
		if a.OccupancyPercent > 85 {
			recommendations = append(recommendations,
				"Occupancy above 85% leaves little room for circulation; consider fewer items")
		} else {
			recommendations = append(recommendations,
				"Keep occupancy below 85% to preserve comfortable circulation")
		}
		return recommendations, nil
	}

	reduce := a.Shortfall / a.RequiredArea * 100
	recommendations = append(recommendations,
		fmt.Sprintf("Reduce the number of items by about %.0f%%", reduce),
		fmt.Sprintf("Increase the area to at least %.1f m²", a.SuggestedMinArea))
	warnings = append(warnings,
		fmt.Sprintf("Missing %.1f m² of usable area", a.Shortfall))
	return recommendations, warnings
}
