// Package models defines the core data structures used throughout Econ-Mood.
package models

// Region identifies one of the tracked geographic regions.
type Region string

// The fixed set of tracked regions. Region identifiers outside this set are
// rejected at the API boundary.
const (
	RegionGlobal     Region = "global"
	RegionUS         Region = "us"
	RegionEU         Region = "eu"
	RegionAfrica     Region = "africa"
	RegionEgypt      Region = "egypt"
	RegionSaudi      Region = "saudi"
	RegionMiddleEast Region = "middleeast"
)

// RegionNames maps region identifiers to display names.
var RegionNames = map[Region]string{
	RegionGlobal:     "Global",
	RegionUS:         "United States",
	RegionEU:         "European Union",
	RegionAfrica:     "Africa",
	RegionEgypt:      "Egypt",
	RegionSaudi:      "Saudi Arabia",
	RegionMiddleEast: "Middle East",
}

// Regions returns all tracked regions in a stable display order.
func Regions() []Region {
	return []Region{
		RegionGlobal,
		RegionUS,
		RegionEU,
		RegionAfrica,
		RegionEgypt,
		RegionSaudi,
		RegionMiddleEast,
	}
}

// ValidRegion reports whether id names a tracked region.
func ValidRegion(id string) bool {
	_, ok := RegionNames[Region(id)]
	return ok
}

// Name returns the display name for the region, falling back to the raw
// identifier for unknown values.
func (r Region) Name() string {
	if name, ok := RegionNames[r]; ok {
		return name
	}
	return string(r)
}
