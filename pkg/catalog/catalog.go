package catalog

import (
	"slices"

	"github.com/matzehuels/spacelayout/pkg/errors"
)

// Mount tells strategies whether an item stands on the floor or hangs on the
// front wall (boards, screens, projectors).
type Mount string

const (
	MountFloor Mount = "floor"
	MountWall  Mount = "wall"
)

// Role classifies an item for placement. Strategies dispatch on roles, never
// on item ids.
type Role string

const (
	RoleGeneric           Role = "generic"
	RoleSeat              Role = "seat"
	RoleTable             Role = "table"
	RoleDesk              Role = "desk"
	RoleWorkstation       Role = "workstation"
	RoleCabinet           Role = "cabinet"
	RoleVehicle           Role = "vehicle"
	RoleAccessibleVehicle Role = "accessible_vehicle"
	RoleMotorcycle        Role = "motorcycle"
)

var validRoles = map[Role]bool{
	RoleGeneric: true, RoleSeat: true, RoleTable: true, RoleDesk: true,
	RoleWorkstation: true, RoleCabinet: true, RoleVehicle: true,
	RoleAccessibleVehicle: true, RoleMotorcycle: true,
}

// InstructorZoneID is the item id used for the instructor overhead in area
// breakdowns and drawings.
const InstructorZoneID = "espacio_instructor"

// ItemType is one catalog entry: the physical footprint of a kind of item in
// a given space type. Width runs along the room's x axis, Depth along y.
type ItemType struct {
	ID        string    `json:"id"`
	SpaceType SpaceType `json:"spaceType"`
	Name      string    `json:"name"`
	Width     float64   `json:"width"`
	Depth     float64   `json:"depth"`
	FixedArea float64   `json:"fixedArea,omitempty"`
	Mount     Mount     `json:"mount"`
	Role      Role      `json:"role"`
	Label     string    `json:"label,omitempty"`
	Fill      string    `json:"fill,omitempty"`
	Stroke    string    `json:"stroke,omitempty"`
}

// Area returns the footprint area in square metres.
func (it ItemType) Area() float64 {
	if it.FixedArea > 0 {
		return it.FixedArea
	}
	return it.Width * it.Depth
}

// IsWall reports whether the item is mounted on the front wall.
func (it ItemType) IsWall() bool { return it.Mount == MountWall }

// Params holds the tunable constants of the area model.
type Params struct {
	InstructorArea    float64 `toml:"instructor_area" json:"instructorArea"`
	DefaultAisleWidth float64 `toml:"default_aisle_width" json:"defaultAisleWidth"`
	UtilizationFactor float64 `toml:"utilization_factor" json:"utilizationFactor"`
}

// Default parameter values.
const (
	DefaultInstructorArea    = 8.0
	DefaultAisleWidth        = 1.2
	DefaultUtilizationFactor = 0.70
)

// DefaultParams returns the stock area model constants.
func DefaultParams() Params {
	return Params{
		InstructorArea:    DefaultInstructorArea,
		DefaultAisleWidth: DefaultAisleWidth,
		UtilizationFactor: DefaultUtilizationFactor,
	}
}

// Space describes one space type in the catalog.
type Space struct {
	Type  SpaceType  `json:"type"`
	Name  string     `json:"name"`
	Items []ItemType `json:"items"`
}

// Catalog is an immutable lookup table of item footprints per space type.
// It is safe for concurrent use.
type Catalog struct {
	params Params
	spaces map[SpaceType]*Space
	index  map[SpaceType]map[string]int
}

// Params returns the area model constants.
func (c *Catalog) Params() Params { return c.params }

// Lookup returns the item type id defined for space, or an
// [*errors.UnknownItemTypeError].
func (c *Catalog) Lookup(space SpaceType, id string) (ItemType, error) {
	if idx, ok := c.index[space][id]; ok {
		return c.spaces[space].Items[idx], nil
	}
	return ItemType{}, &errors.UnknownItemTypeError{SpaceType: space.String(), ItemType: id}
}

// Items returns the item types of space in catalog order.
func (c *Catalog) Items(space SpaceType) []ItemType {
	s, ok := c.spaces[space]
	if !ok {
		return nil
	}
	return slices.Clone(s.Items)
}

// Space returns the catalog entry for a space type.
func (c *Catalog) Space(space SpaceType) (Space, bool) {
	s, ok := c.spaces[space]
	if !ok {
		return Space{}, false
	}
	out := *s
	out.Items = slices.Clone(s.Items)
	return out, true
}

// Spaces returns every space type present in the catalog, in declaration order.
func (c *Catalog) Spaces() []SpaceType {
	var out []SpaceType
	for _, s := range AllSpaceTypes() {
		if _, ok := c.spaces[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// FixedOverhead returns the area reserved regardless of items: the
// instructor zone for classroom-like spaces when requested, otherwise zero.
func (c *Catalog) FixedOverhead(space SpaceType, includeInstructor bool) float64 {
	if includeInstructor && space.HasInstructorZone() {
		return c.params.InstructorArea
	}
	return 0
}
