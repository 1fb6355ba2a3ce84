// Package pkg holds the libraries behind spacelayout, a floor-plan engine
// that decides whether a set of furniture fits a rectangular room and, if
// so, where each piece goes.
//
// # Overview
//
//  1. [catalog] - Space types, item types and tuning parameters (TOML)
//  2. [layout] - Feasibility check and placement per space type
//  3. [render] - SVG, PNG, PDF and JSON floor plans
//  4. [backend] - Client for the remote analysis service
//  5. [pipeline] - Orchestration (request → layout → render → analyze)
//  6. [cache] - File, Redis and MongoDB caches for layouts and artifacts
//
// Supporting packages: [errors] (coded errors), [observability] (hooks),
// [httputil] (retries) and [buildinfo] (version stamping).
//
// # Data Flow
//
//	Request (JSON or TOML)
//	         ↓
//	    [catalog] lookup (item sizes, space parameters)
//	         ↓
//	    [layout] feasibility + placement
//	         ↓
//	    [render] floor plan
//
// # Quick Start
//
//	res, err := layout.ComputeLayout(layout.Request{
//	    Room:      layout.RoomSpec{Length: 10, Width: 8},
//	    SpaceType: "aula",
//	    Items:     []layout.ItemRequest{{ItemType: "pupitre", Quantity: 20}},
//	    Options:   layout.Options{IncludeInstructorZone: true},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := render.RenderSVG(res, render.WithZoom(1.5))
//
// The spacelayout command and the HTTP API in internal/ are thin layers
// over [pipeline].
//
// [catalog]: github.com/matzehuels/spacelayout/pkg/catalog
// [layout]: github.com/matzehuels/spacelayout/pkg/layout
// [render]: github.com/matzehuels/spacelayout/pkg/render
// [backend]: github.com/matzehuels/spacelayout/pkg/backend
// [pipeline]: github.com/matzehuels/spacelayout/pkg/pipeline
// [cache]: github.com/matzehuels/spacelayout/pkg/cache
// [errors]: github.com/matzehuels/spacelayout/pkg/errors
// [observability]: github.com/matzehuels/spacelayout/pkg/observability
// [httputil]: github.com/matzehuels/spacelayout/pkg/httputil
// [buildinfo]: github.com/matzehuels/spacelayout/pkg/buildinfo
package pkg
