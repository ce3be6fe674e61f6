// Package feature models the planar features a subdivision run consumes
// and produces, with their GeoJSON encoding. Survey input arrives as
// boundary, obstacle, road, and entry point features; a run emits parcel,
// road, and green features plus the buildable footprint.
package feature

import (
	"math"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
)

// SquareMetersPerRai converts areas to rai, the Thai land unit used in
// reports.
const SquareMetersPerRai = 1600.0

// Type classifies a feature.
type Type string

const (
	// Survey input types.
	TypeBoundary   Type = "boundary"
	TypeObstacle   Type = "obstacle"
	TypeRoad       Type = "road"
	TypeEntryPoint Type = "entry_point"

	// Run output types. TypeRoad appears on both sides.
	TypeBuildable Type = "buildable_area"
	TypeParcel    Type = "parcel"
	TypeGreen     Type = "green"
)

// RoadClass distinguishes circulation features by role.
type RoadClass string

const (
	RoadMain     RoadClass = "main"
	RoadLocal    RoadClass = "local"
	RoadJunction RoadClass = "junction"
)

// Green subtypes reported in the land-use budget.
const (
	GreenCorridor = "corridor"
	GreenPocket   = "pocket"
)

// Style carries display hints for map clients.
type Style struct {
	Fill    string  `json:"fill"`
	Opacity float64 `json:"opacity"`
}

// Properties is the attribute set attached to a feature.
type Properties struct {
	Type      Type      `json:"type"`
	Label     string    `json:"label,omitempty"`
	SizeGroup string    `json:"size_group,omitempty"`
	AreaSQM   float64   `json:"area_sqm,omitempty"`
	RoadType  RoadClass `json:"road_type,omitempty"`
	Subtype   string    `json:"subtype,omitempty"`
	Style     *Style    `json:"style,omitempty"`
}

// Feature pairs a planar region with its properties.
type Feature struct {
	Geometry   geo.Region
	Properties Properties
}

// NewParcel builds a saleable parcel feature.
func NewParcel(region geo.Region, sizeGroup string) Feature {
	return Feature{
		Geometry: region,
		Properties: Properties{
			Type:      TypeParcel,
			SizeGroup: sizeGroup,
			AreaSQM:   round2(region.Area()),
		},
	}
}

// NewRoad builds a circulation feature for one road component.
func NewRoad(region geo.Region, class RoadClass) Feature {
	return Feature{
		Geometry: region,
		Properties: Properties{
			Type:     TypeRoad,
			RoadType: class,
			AreaSQM:  round2(region.Area()),
		},
	}
}

// NewAccessRoad builds the labeled principal access road feature.
func NewAccessRoad(region geo.Region) Feature {
	f := NewRoad(region, RoadMain)
	f.Properties.Label = "Main Access Road"
	f.Properties.Style = &Style{Fill: "#333333", Opacity: 1.0}
	return f
}

// NewGreen builds a green area feature. Subtype may be empty when the
// residual has not been classified.
func NewGreen(region geo.Region, subtype string) Feature {
	return Feature{
		Geometry: region,
		Properties: Properties{
			Type:    TypeGreen,
			Subtype: subtype,
			AreaSQM: round2(region.Area()),
		},
	}
}

// NewBuildable builds the buildable footprint feature shown under a layout.
func NewBuildable(region geo.Region) Feature {
	return Feature{
		Geometry: region,
		Properties: Properties{
			Type:  TypeBuildable,
			Label: "Buildable Footprint",
			Style: &Style{Fill: "#00ff00", Opacity: 0.3},
		},
	}
}

// Area returns the feature's geometric area. The rounded AreaSQM property
// is for payloads; computations should use this.
func (f Feature) Area() float64 {
	return f.Geometry.Area()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
