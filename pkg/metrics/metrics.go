// Package metrics aggregates generated layout features into the land-use
// report: site analysis, saleable/road/green budget with percentages
// against the usable area, and the parcel inventory.
package metrics

import (
	"math"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/layout"
)

// corridorAspect is the bounding-box elongation at which an unclassified
// green component counts as a corridor rather than a pocket.
const corridorAspect = 3.0

// Metrics is the aggregate land-use report for one generated layout.
type Metrics struct {
	SiteAnalysis    SiteAnalysis    `json:"site_analysis"`
	LandUseBudget   LandUseBudget   `json:"land_use_budget"`
	ParcelInventory ParcelInventory `json:"parcel_inventory"`
}

// SiteAnalysis reports the gross and usable site areas.
type SiteAnalysis struct {
	TotalSiteSQM   float64 `json:"total_site_sqm"`
	TotalSiteRai   float64 `json:"total_site_rai"`
	TotalUsableSQM float64 `json:"total_usable_sqm"`
	TotalUsableRai float64 `json:"total_usable_rai"`
}

// LandUseBudget splits the usable area into the three land uses.
type LandUseBudget struct {
	Saleable BudgetArea `json:"saleable_area"`
	Road     BudgetArea `json:"road_area"`
	Green    GreenArea  `json:"green_area"`
}

// BudgetArea is one land use bucket. Percent is relative to the usable
// area.
type BudgetArea struct {
	SQM     float64 `json:"sqm"`
	Rai     float64 `json:"rai"`
	Percent float64 `json:"percent"`
}

// GreenArea is the green bucket with its corridor and pocket split.
type GreenArea struct {
	BudgetArea
	CorridorsSQM float64 `json:"corridors_sqm"`
	PocketsSQM   float64 `json:"pockets_sqm"`
}

// ParcelInventory counts the allocated parcels per size group.
type ParcelInventory struct {
	TotalPlots int            `json:"total_plots"`
	Breakdown  map[string]int `json:"breakdown"`
}

// Aggregate sums the generated features into a Metrics report. Every
// feature's reported area_sqm is counted exactly once, so the budget
// totals match the geometric partition of the usable area. A zero usable
// area reports 0% throughout instead of failing.
func Aggregate(b layout.Buildable, features []feature.Feature) Metrics {
	var saleable, road, green, corridors, pockets float64
	plots := 0
	breakdown := make(map[string]int)

	for _, f := range features {
		area := f.Properties.AreaSQM
		switch f.Properties.Type {
		case feature.TypeParcel:
			saleable += area
			plots++
			group := f.Properties.SizeGroup
			if group == "" {
				group = "Unknown"
			}
			breakdown[group]++
		case feature.TypeRoad:
			road += area
		case feature.TypeGreen:
			green += area
			c, p := greenBuckets(f)
			corridors += c
			pockets += p
		}
	}

	pct := func(v float64) float64 {
		if b.UsableSQM <= 0 {
			return 0
		}
		return round2(v / b.UsableSQM * 100)
	}

	return Metrics{
		SiteAnalysis: SiteAnalysis{
			TotalSiteSQM:   round2(b.GrossSQM),
			TotalSiteRai:   round2(b.GrossSQM / feature.SquareMetersPerRai),
			TotalUsableSQM: round2(b.UsableSQM),
			TotalUsableRai: round2(b.UsableSQM / feature.SquareMetersPerRai),
		},
		LandUseBudget: LandUseBudget{
			Saleable: budgetArea(saleable, pct(saleable)),
			Road:     budgetArea(road, pct(road)),
			Green: GreenArea{
				BudgetArea:   budgetArea(green, pct(green)),
				CorridorsSQM: round2(corridors),
				PocketsSQM:   round2(pockets),
			},
		},
		ParcelInventory: ParcelInventory{
			TotalPlots: plots,
			Breakdown:  breakdown,
		},
	}
}

func budgetArea(sqm, percent float64) BudgetArea {
	return BudgetArea{
		SQM:     round2(sqm),
		Rai:     round2(sqm / feature.SquareMetersPerRai),
		Percent: percent,
	}
}

// greenBuckets splits a green feature between corridors and pockets. An
// explicit subtype wins; otherwise each geometry component is judged by
// its bounding-box elongation.
func greenBuckets(f feature.Feature) (corridors, pockets float64) {
	switch f.Properties.Subtype {
	case feature.GreenCorridor:
		return f.Properties.AreaSQM, 0
	case feature.GreenPocket:
		return 0, f.Properties.AreaSQM
	}
	for _, comp := range f.Geometry.Components() {
		lo, hi := comp.BoundingBox()
		long := math.Max(hi.X-lo.X, hi.Y-lo.Y)
		short := math.Min(hi.X-lo.X, hi.Y-lo.Y)
		if short > 0 && long/short >= corridorAspect {
			corridors += comp.Area()
		} else {
			pockets += comp.Area()
		}
	}
	return corridors, pockets
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
