package layout_test

import (
	"fmt"

	"github.com/matzehuels/spacelayout/pkg/catalog"
	"github.com/matzehuels/spacelayout/pkg/layout"
)

func ExampleComputeLayout() {
	res, err := layout.ComputeLayout(layout.Request{
		Room:      layout.RoomSpec{Length: 10, Width: 8},
		SpaceType: "aula",
		Items:     []layout.ItemRequest{{ItemType: "pupitre", Quantity: 20}},
		Options:   layout.Options{IncludeInstructorZone: true},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Space:", res.SpaceType)
	fmt.Println("Viable:", res.IsViable)
	fmt.Printf("Occupancy: %.1f%%\n", res.OccupancyPercent)
	fmt.Println("Placed:", len(res.Placed))
	// Output:
	// Space: classroom
	// Viable: true
	// Occupancy: 57.1%
	// Placed: 20
}

func ExampleComputeLayout_shortfall() {
	res, _ := layout.ComputeLayout(layout.Request{
		Room:      layout.RoomSpec{Length: 6, Width: 5},
		SpaceType: "classroom",
		Items:     []layout.ItemRequest{{ItemType: "pupitre", Quantity: 30}},
	})

	fmt.Println("Viable:", res.IsViable)
	fmt.Println("Placed:", len(res.Placed))
	fmt.Println("Unplaced:", res.Unplaced["pupitre"])
	// Output:
	// Viable: false
	// Placed: 6
	// Unplaced: 24
}

func ExampleFeasibility() {
	a, _ := layout.Feasibility(layout.RoomSpec{Length: 15, Width: 10}, nil, 0, catalog.DefaultParams())
	fmt.Printf("usable %.0f m², occupancy %.0f%%, viable %v\n", a.UsableArea, a.OccupancyPercent, a.IsViable)
	// Output:
	// usable 105 m², occupancy 0%, viable true
}
