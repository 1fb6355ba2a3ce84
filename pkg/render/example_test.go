package render_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/spacelayout/pkg/layout"
	"github.com/matzehuels/spacelayout/pkg/render"
)

func ExampleRenderSVG() {
	res, err := layout.ComputeLayout(layout.Request{
		Room:      layout.RoomSpec{Length: 10, Width: 8},
		SpaceType: "aula",
		Items:     []layout.ItemRequest{{ItemType: "pupitre", Quantity: 20}},
		Options:   layout.Options{IncludeInstructorZone: true},
	})
	if err != nil {
		panic(err)
	}

	svg := string(render.RenderSVG(res, render.WithZoom(0.5)))
	fmt.Println("seats:", strings.Count(svg, `class="item seat"`))
	fmt.Println("labels:", strings.Contains(svg, `class="item-label"`))
	// Output:
	// seats: 20
	// labels: false
}
