package roads

import (
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
)

// rotatedSynthesis builds the grid as buffered centerlines in a local frame
// aligned with the longest surveyed road edge, drops a round junction pad
// on every crossing, then rotates and translates the assembly onto the
// buildable centroid. The frame spans 1.2 times the site diagonal so the
// grid still covers the site after rotation.
func rotatedSynthesis(buildable geo.Region, surveyed []feature.ExistingRoad, cfg plan.RoadConfig) synthesis {
	lo, hi := buildable.BoundingBox()
	half := 0.6 * hi.Sub(lo).Length()
	center := buildable.Centroid()
	angle := dominantRoadAngle(surveyed)

	var xs, ys []float64
	for x := -half; x <= half; x += cfg.VerticalSpacing + cfg.MainRoadWidth {
		xs = append(xs, x)
	}
	for y := -half; y <= half; y += cfg.HorizontalSpacing + cfg.LocalRoadWidth {
		ys = append(ys, y)
	}

	var region geo.Region
	for _, x := range xs {
		line := geo.Polyline{{X: x, Y: -half}, {X: x, Y: half}}
		region = region.Union(geo.BufferLine(line, cfg.MainRoadWidth, geo.CapRound))
	}
	for _, y := range ys {
		line := geo.Polyline{{X: -half, Y: y}, {X: half, Y: y}}
		region = region.Union(geo.BufferLine(line, cfg.LocalRoadWidth, geo.CapRound))
	}
	for _, x := range xs {
		for _, y := range ys {
			pad := geo.Circle(geo.Point{X: x, Y: y}, cfg.MainRoadWidth, padSegments)
			region = region.Union(geo.RegionOf(pad))
		}
	}
	region = region.RotateAround(geo.Origin, angle).Translate(center)

	// Near-circular leftovers are the junction pads; the rest split on
	// whether they carry at least half a main road's footprint between
	// crossings.
	mainFootprint := cfg.MainRoadWidth * cfg.VerticalSpacing
	classify := func(comp geo.Region) feature.RoadClass {
		if circularity(comp) > 0.6 {
			return feature.RoadJunction
		}
		if comp.Area() >= 0.5*mainFootprint {
			return feature.RoadMain
		}
		return feature.RoadLocal
	}

	return synthesis{region: region, classify: classify, noiseSQM: rotatedNoiseSQM}
}

// dominantRoadAngle returns the direction of the longest edge across all
// surveyed roads, or 0 when no roads were surveyed.
func dominantRoadAngle(surveyed []feature.ExistingRoad) float64 {
	var best, angle float64
	consider := func(a, b geo.Point) {
		if l := a.Distance(b); l > best {
			best = l
			angle = b.Sub(a).Angle()
		}
	}
	for _, road := range surveyed {
		for i := 0; i+1 < len(road.Line); i++ {
			consider(road.Line[i], road.Line[i+1])
		}
		for _, ring := range road.Area {
			for i := range ring {
				consider(ring.Edge(i))
			}
		}
	}
	return angle
}
