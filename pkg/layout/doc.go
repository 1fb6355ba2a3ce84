// Package layout computes floor plans for institutional spaces.
//
// # Overview
//
// Given a room and a list of (item type, quantity) requests, [Compute]
// decides whether the items fit by area and places every instance inside the
// room. The computation is pure: no I/O, no logging, no shared mutable state.
//
// # Feasibility
//
// [Feasibility] sums catalog footprint areas plus a fixed overhead (the
// instructor zone for classroom-like spaces) and compares the total with the
// usable area, which is the room area times the catalog utilization factor
// (0.70 by default). The occupancy percentage is not capped: 171% means the
// request needs 1.71 times the usable area.
//
// # Placement
//
// [StrategyFor] maps each [catalog.SpaceType] to one of six strategies:
//
//   - classroom: two seat banks around a central aisle below the front wall
//   - computer lab: back-to-back workstation benches mirrored across the aisle
//   - parking: stall rows paired around circulation lanes, accessible stalls
//     first, motorcycles in their own strip at the back of the lot
//   - auditorium: stage, then three seating sections split by two aisles
//   - office: reception corner, 2x2 desk clusters, cabinets on the back wall
//   - conference room: one central table with chairs around it
//
// Strategies are deterministic. Item types are processed in request order and
// each type is filled row by row, left to right. Instances that do not fit
// are reported in [Result].Unplaced and as warnings, never dropped silently.
//
// Coordinates are metres from the room's top-left interior corner; y grows
// away from the front wall.
package layout
