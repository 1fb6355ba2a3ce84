package layout

import (
	"github.com/matzehuels/spacelayout/pkg/catalog"
)

// MaxInstances bounds the total number of requested instances per request.
const MaxInstances = 10000

// MaxRoomDimension bounds room length and width, in metres.
const MaxRoomDimension = 1000.0

// RoomSpec describes the room being laid out. Length runs away from the front
// wall (y), Width along it (x).
type RoomSpec struct {
	Length        float64 `json:"lengthMeters" toml:"length"`
	Width         float64 `json:"widthMeters" toml:"width"`
	Shape         string  `json:"shape,omitempty" toml:"shape"`
	AisleMinWidth float64 `json:"aisleMinWidthMeters,omitempty" toml:"aisle_min_width"`
}

// Area returns Length*Width.
func (r RoomSpec) Area() float64 { return r.Length * r.Width }

// Bounds returns the room interior as a rectangle anchored at the origin.
func (r RoomSpec) Bounds() Rect { return Rect{W: r.Width, H: r.Length} }

// ItemRequest asks for Quantity instances of one catalog item.
type ItemRequest struct {
	ItemType string `json:"itemTypeId" toml:"item"`
	Quantity int    `json:"quantityRequested" toml:"quantity"`
}

// Options tunes a layout request.
type Options struct {
	IncludeInstructorZone bool    `json:"includeInstructorZone" toml:"include_instructor_zone"`
	AisleMinWidth         float64 `json:"aisleMinWidthMeters,omitempty" toml:"aisle_min_width"`
}

// Request is the input of [Compute].
type Request struct {
	Room      RoomSpec      `json:"room" toml:"room"`
	SpaceType string        `json:"spaceTypeId" toml:"space_type"`
	Items     []ItemRequest `json:"items" toml:"items"`
	Options   Options       `json:"options" toml:"options"`
}

// GridPosition locates an instance in a strategy's grid. Both indices are
// zero based.
type GridPosition struct {
	Row    int `json:"rowIndex"`
	Column int `json:"columnIndex"`
}

// PlacedItem is one placed instance. X and Y are the top-left corner relative
// to the room's top-left interior corner; Width and Height are the as-drawn
// footprint. Grid indices, when the strategy assigns them, are flattened into
// the item's JSON object.
type PlacedItem struct {
	ItemType string  `json:"itemTypeId"`
	Instance int     `json:"instanceIndex"`
	X        float64 `json:"xMeters"`
	Y        float64 `json:"yMeters"`
	Width    float64 `json:"widthMeters"`
	Height   float64 `json:"heightMeters"`
	Rotated  bool    `json:"rotated,omitempty"`
	*GridPosition
}

// Rect returns the footprint of the item.
func (p PlacedItem) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// ZoneKind names a reserved area.
type ZoneKind string

const (
	ZoneFront      ZoneKind = "front"
	ZoneInstructor ZoneKind = "instructor"
	ZoneStage      ZoneKind = "stage"
	ZoneReception  ZoneKind = "reception"
	ZoneTable      ZoneKind = "table"
	ZoneAisle      ZoneKind = "aisle"
	ZoneLane       ZoneKind = "lane"
	ZoneMotorcycle ZoneKind = "motorcycle_zone"
	ZoneCabinets   ZoneKind = "cabinet_row"
)

// Zone is an axis-aligned area excluded from floor placement. Aisles, lanes
// and the motorcycle zone are circulation or sub-areas and do not block the
// items assigned to them.
type Zone struct {
	Kind ZoneKind `json:"kind"`
	Rect
}

// AreaLine is one row of the required-area breakdown.
type AreaLine struct {
	ItemType  string  `json:"itemTypeId"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitArea  float64 `json:"unitAreaSquareMeters"`
	TotalArea float64 `json:"totalAreaSquareMeters"`
}

// Result is the outcome of a layout computation.
type Result struct {
	SpaceType  catalog.SpaceType `json:"spaceTypeId"`
	SpaceLabel string            `json:"spaceLabel,omitempty"`
	Room       RoomSpec          `json:"room"`

	IsViable         bool    `json:"isViable"`
	AllPlaced        bool    `json:"allPlaced"`
	OccupancyPercent float64 `json:"occupancyPercent"`
	RoomArea         float64 `json:"roomAreaSquareMeters"`
	UsableArea       float64 `json:"usableAreaSquareMeters"`
	RequiredArea     float64 `json:"requiredAreaSquareMeters"`
	PlacedArea       float64 `json:"placedAreaSquareMeters"`
	AisleWidth       float64 `json:"aisleWidthMeters"`

	Breakdown []AreaLine     `json:"breakdown"`
	Placed    []PlacedItem   `json:"placedItems"`
	Zones     []Zone         `json:"zones,omitempty"`
	Unplaced  map[string]int `json:"unplaced,omitempty"`

	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations,omitempty"`

	// Source is SourceLocal for computed results and SourceRemote for
	// results mapped from the analysis backend.
	Source string `json:"source"`
}

// Result sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Demand is a request line resolved against the catalog.
type Demand struct {
	Item     catalog.ItemType
	Quantity int
	// First is the instance index of the first instance in this line.
	First int
}
