package catalog

import (
	"fmt"
	"strings"
)

// SpaceType is the closed set of space kinds the engine knows how to lay out.
type SpaceType int

const (
	Classroom SpaceType = iota
	ComputerLab
	Parking
	Auditorium
	Office
	ConferenceRoom
)

var spaceTypeIDs = [...]string{
	Classroom:      "classroom",
	ComputerLab:    "computer_lab",
	Parking:        "parking",
	Auditorium:     "auditorium",
	Office:         "office",
	ConferenceRoom: "conference_room",
}

// AllSpaceTypes returns every space type in declaration order.
func AllSpaceTypes() []SpaceType {
	return []SpaceType{Classroom, ComputerLab, Parking, Auditorium, Office, ConferenceRoom}
}

// String returns the canonical id of the space type.
func (s SpaceType) String() string {
	if s < 0 || int(s) >= len(spaceTypeIDs) {
		return fmt.Sprintf("space_type(%d)", int(s))
	}
	return spaceTypeIDs[s]
}

// Valid reports whether s is one of the declared constants.
func (s SpaceType) Valid() bool {
	return s >= 0 && int(s) < len(spaceTypeIDs)
}

// HasInstructorZone reports whether the instructor overhead applies to s.
func (s SpaceType) HasInstructorZone() bool {
	switch s {
	case Classroom, ComputerLab, ConferenceRoom:
		return true
	}
	return false
}

// MarshalText encodes the space type as its canonical id.
func (s SpaceType) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid space type %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts any label known to [ParseSpaceType].
func (s *SpaceType) UnmarshalText(text []byte) error {
	v, ok := ParseSpaceType(string(text))
	if !ok {
		return fmt.Errorf("unknown space type %q", string(text))
	}
	*s = v
	return nil
}

// spaceLabels maps normalized free-text labels to space types. Canonical ids,
// the UI's Spanish option values and a few common English spellings resolve
// here; anything else is unknown.
var spaceLabels = map[string]SpaceType{
	"classroom":    Classroom,
	"aula":         Classroom,
	"aula_clases":  Classroom,
	"salon":        Classroom,
	"salon_clases": Classroom,

	"computer_lab":           ComputerLab,
	"lab":                    ComputerLab,
	"laboratory":             ComputerLab,
	"laboratorio":            ComputerLab,
	"laboratorio_computo":    ComputerLab,
	"laboratorio_de_computo": ComputerLab,
	"sala_computo":           ComputerLab,
	"sala_de_computo":        ComputerLab,

	"parking":         Parking,
	"parking_lot":     Parking,
	"parqueadero":     Parking,
	"estacionamiento": Parking,

	"auditorium": Auditorium,
	"auditorio":  Auditorium,

	"office":  Office,
	"oficina": Office,

	"conference_room":      ConferenceRoom,
	"meeting_room":         ConferenceRoom,
	"sala":                 ConferenceRoom,
	"sala_conferencias":    ConferenceRoom,
	"sala_de_conferencias": ConferenceRoom,
	"sala_reuniones":       ConferenceRoom,
	"sala_de_reuniones":    ConferenceRoom,
}

// ParseSpaceType resolves a free-text label to a space type. Matching is exact
// after normalization (case folding, trimming, spaces and dashes folded to
// underscores). Unknown labels resolve to Classroom with ok == false.
func ParseSpaceType(label string) (SpaceType, bool) {
	if s, ok := spaceLabels[normalizeLabel(label)]; ok {
		return s, true
	}
	return Classroom, false
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.NewReplacer(" ", "_", "-", "_").Replace(label)
	return strings.Trim(label, "_")
}

// Shape describes the outline of a room.
type Shape string

const (
	ShapeRectangular Shape = "rectangular"
	ShapeSquare      Shape = "square"
	ShapeLShaped     Shape = "l_shaped"
	ShapeIrregular   Shape = "irregular"
)

var shapeLabels = map[string]Shape{
	"":            ShapeRectangular,
	"rectangular": ShapeRectangular,
	"rectangle":   ShapeRectangular,
	"square":      ShapeSquare,
	"cuadrado":    ShapeSquare,
	"cuadrada":    ShapeSquare,
	"l":           ShapeLShaped,
	"l_shaped":    ShapeLShaped,
	"l_shape":     ShapeLShaped,
	"irregular":   ShapeIrregular,
}

// ParseShape resolves a shape label. The empty label means rectangular.
func ParseShape(label string) (Shape, error) {
	if s, ok := shapeLabels[normalizeLabel(label)]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown room shape %q", label)
}

// IsApproximated reports whether layouts for this shape use the bounding
// rectangle instead of the true outline.
func (s Shape) IsApproximated() bool {
	return s == ShapeLShaped || s == ShapeIrregular
}
