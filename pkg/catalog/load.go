package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spacelayout/pkg/errors"
)

//go:embed default.toml
var defaultTOML []byte

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(bytes.NewReader(defaultTOML))
})

// Default returns the built-in catalog. It is parsed once per process.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	return c
}

// DefaultTOML returns the source of the built-in catalog, for users who want
// a starting point for their own file.
func DefaultTOML() []byte {
	return bytes.Clone(defaultTOML)
}

type catalogFile struct {
	Params Params      `toml:"params"`
	Spaces []spaceFile `toml:"space"`
}

type spaceFile struct {
	ID    string     `toml:"id"`
	Name  string     `toml:"name"`
	Items []itemFile `toml:"item"`
}

type itemFile struct {
	ID     string  `toml:"id"`
	Name   string  `toml:"name"`
	Width  float64 `toml:"width"`
	Depth  float64 `toml:"depth"`
	Area   float64 `toml:"area"`
	Mount  string  `toml:"mount"`
	Role   string  `toml:"role"`
	Label  string  `toml:"label"`
	Fill   string  `toml:"fill"`
	Stroke string  `toml:"stroke"`
}

// LoadFile reads a catalog from a TOML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog file %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a TOML catalog. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "unknown catalog keys: %s", strings.Join(keys, ", "))
	}
	return build(file)
}

func build(file catalogFile) (*Catalog, error) {
	params, err := resolveParams(file.Params)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		params: params,
		spaces: make(map[SpaceType]*Space),
		index:  make(map[SpaceType]map[string]int),
	}

	for _, sf := range file.Spaces {
		st, ok := ParseSpaceType(sf.ID)
		if !ok || st.String() != sf.ID {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "unknown space id %q (want one of the canonical ids)", sf.ID)
		}
		if _, dup := c.spaces[st]; dup {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "space %q declared twice", sf.ID)
		}

		space := &Space{Type: st, Name: sf.Name}
		idx := make(map[string]int, len(sf.Items))
		for _, f := range sf.Items {
			it, err := buildItem(st, f)
			if err != nil {
				return nil, err
			}
			if _, dup := idx[it.ID]; dup {
				return nil, errors.New(errors.ErrCodeInvalidCatalog, "item %q declared twice in space %q", it.ID, sf.ID)
			}
			idx[it.ID] = len(space.Items)
			space.Items = append(space.Items, it)
		}
		c.spaces[st] = space
		c.index[st] = idx
	}
	return c, nil
}

func resolveParams(p Params) (Params, error) {
	d := DefaultParams()
	if p.InstructorArea == 0 {
		p.InstructorArea = d.InstructorArea
	}
	if p.DefaultAisleWidth == 0 {
		p.DefaultAisleWidth = d.DefaultAisleWidth
	}
	if p.UtilizationFactor == 0 {
		p.UtilizationFactor = d.UtilizationFactor
	}

	switch {
	case p.InstructorArea < 0:
		return p, errors.New(errors.ErrCodeInvalidCatalog, "instructor_area must not be negative")
	case p.DefaultAisleWidth < 0:
		return p, errors.New(errors.ErrCodeInvalidCatalog, "default_aisle_width must be positive")
	case p.UtilizationFactor < 0 || p.UtilizationFactor > 1:
		return p, errors.New(errors.ErrCodeInvalidCatalog, "utilization_factor must be in (0, 1]")
	}
	return p, nil
}

func buildItem(st SpaceType, f itemFile) (ItemType, error) {
	if err := errors.ValidateIdentifier("item", f.ID); err != nil {
		return ItemType{}, err
	}
	if f.Width <= 0 || f.Depth <= 0 {
		return ItemType{}, errors.New(errors.ErrCodeInvalidCatalog, "item %q in %s: width and depth must be positive", f.ID, st)
	}
	if f.Area < 0 {
		return ItemType{}, errors.New(errors.ErrCodeInvalidCatalog, "item %q in %s: area must not be negative", f.ID, st)
	}

	mount := Mount(f.Mount)
	switch mount {
	case "":
		mount = MountFloor
	case MountFloor, MountWall:
	default:
		return ItemType{}, errors.New(errors.ErrCodeInvalidCatalog, "item %q in %s: unknown mount %q", f.ID, st, f.Mount)
	}

	role := Role(f.Role)
	if role == "" {
		role = RoleGeneric
	}
	if !validRoles[role] {
		return ItemType{}, errors.New(errors.ErrCodeInvalidCatalog, "item %q in %s: unknown role %q", f.ID, st, f.Role)
	}

	name := f.Name
	if name == "" {
		name = f.ID
	}
	return ItemType{
		ID:        f.ID,
		SpaceType: st,
		Name:      name,
		Width:     f.Width,
		Depth:     f.Depth,
		FixedArea: f.Area,
		Mount:     mount,
		Role:      role,
		Label:     f.Label,
		Fill:      f.Fill,
		Stroke:    f.Stroke,
	}, nil
}
