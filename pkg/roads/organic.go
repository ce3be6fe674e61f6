package roads

import (
	"math"
	"math/rand"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
)

const (
	// nodeJitter is the maximum node displacement as a fraction of the
	// nominal spacing on each axis.
	nodeJitter = 0.4
	// bendFraction bounds the perpendicular midpoint offset of a connector
	// relative to its length.
	bendFraction = 0.25
	// mainWidthShare is the probability that a connector is drawn at the
	// main road width instead of the local width.
	mainWidthShare = 0.2
	// roundaboutShare is the fraction of in-bounds nodes that receive a
	// roundabout disc.
	roundaboutShare = 0.15
	// smoothingPasses is the number of corner-cutting iterations applied to
	// each bent connector.
	smoothingPasses = 4
)

// organicSynthesis grows a perturbed street network: grid nodes jittered by
// up to 40% of the spacing, connected to their right and upper neighbors by
// bent, corner-cut curves of randomly drawn width, with roundabout discs
// sprinkled over a share of the in-bounds nodes.
func organicSynthesis(buildable geo.Region, cfg plan.RoadConfig, rng *rand.Rand) synthesis {
	lo, hi := buildable.BoundingBox()
	vs, hs := cfg.VerticalSpacing, cfg.HorizontalSpacing

	nx := int((hi.X-lo.X)/vs) + 1
	ny := int((hi.Y-lo.Y)/hs) + 1

	nodes := make([][]geo.Point, nx)
	for i := range nodes {
		nodes[i] = make([]geo.Point, ny)
		for j := range nodes[i] {
			nodes[i][j] = geo.Point{
				X: lo.X + float64(i)*vs + (rng.Float64()*2-1)*nodeJitter*vs,
				Y: lo.Y + float64(j)*hs + (rng.Float64()*2-1)*nodeJitter*hs,
			}
		}
	}

	var region geo.Region
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if i+1 < nx {
				region = region.Union(connector(nodes[i][j], nodes[i+1][j], cfg, rng))
			}
			if j+1 < ny {
				region = region.Union(connector(nodes[i][j], nodes[i][j+1], cfg, rng))
			}
		}
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if !buildable.Contains(nodes[i][j]) {
				continue
			}
			if rng.Float64() < roundaboutShare {
				disc := geo.Circle(nodes[i][j], cfg.MainRoadWidth, padSegments)
				region = region.Union(geo.RegionOf(disc))
			}
		}
	}

	spacing := math.Min(vs, hs)
	classify := func(comp geo.Region) feature.RoadClass {
		if circularity(comp) > 0.6 {
			return feature.RoadJunction
		}
		clo, chi := comp.BoundingBox()
		if math.Max(chi.X-clo.X, chi.Y-clo.Y) > 1.5*spacing {
			return feature.RoadMain
		}
		return feature.RoadLocal
	}

	return synthesis{region: region, classify: classify, noiseSQM: organicNoiseSQM}
}

// connector buffers a curved link between two nodes: the straight segment
// is bent by a random perpendicular offset at its midpoint and smoothed by
// corner cutting before buffering.
func connector(a, b geo.Point, cfg plan.RoadConfig, rng *rand.Rand) geo.Region {
	span := b.Sub(a)
	length := span.Length()
	if length < 1e-9 {
		return nil
	}
	offset := span.Perp().Normalize().Scale((rng.Float64()*2 - 1) * bendFraction * length)
	path := geo.Polyline{a, geo.MidPoint(a, b).Add(offset), b}.Chaikin(smoothingPasses)

	width := cfg.LocalRoadWidth
	if rng.Float64() < mainWidthShare {
		width = cfg.MainRoadWidth
	}
	return geo.BufferLine(path, width, geo.CapRound)
}
