// Package catalog defines the space types and item footprints the layout
// engine works with.
//
// A [Catalog] maps (space type, item id) pairs to an [ItemType]: the item's
// floor footprint in metres, whether it hangs on the front wall, and the
// placement role strategies use to group it. The built-in catalog is embedded
// as TOML and parsed once with [Default]; alternative catalogs are loaded with
// [Load] or [LoadFile] and validated on the way in. Catalogs never change
// after construction.
//
// Free-text space labels from user interfaces are resolved to the closed
// [SpaceType] enum with [ParseSpaceType], so no code below this package
// matches on label substrings:
//
//	st, ok := catalog.ParseSpaceType("Sala de conferencias")
//	// st == catalog.ConferenceRoom, ok == true
//
//	it, err := catalog.Default().Lookup(catalog.Parking, "vehiculo")
//	// it.Area() == 11.25
package catalog
