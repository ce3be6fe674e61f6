// Package roads synthesizes the circulation network for a buildable area:
// a principal access spine anchored on the first survey entry point plus a
// style-selected secondary network (axis-aligned grid, rotated grid with
// junction pads, or organically perturbed curves), unioned with any
// surveyed road and clipped to the buildable footprint.
package roads

import (
	"errors"
	"math"
	"math/rand"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
)

// ErrMissingEntryPoint reports a survey without the entry point the access
// spine anchors on.
var ErrMissingEntryPoint = errors.New("no entry points found in survey")

// spineReachM is how far the access spine is extended past the entry point
// so it crosses the whole site before clipping.
const spineReachM = 3000.0

// padSegments is the vertex count for junction and roundabout discs.
const padSegments = 24

// Fragments below these areas are discarded as numerical noise. The curved
// strategies produce finer shards than the rectangular grid, so their
// thresholds sit lower.
const (
	gridNoiseSQM    = 50.0
	rotatedNoiseSQM = 25.0
	organicNoiseSQM = 10.0
)

// Network is a synthesized road system. Features holds the access spine
// followed by the classified secondary components; together they tile
// Region exactly, so summing feature areas counts every paved square meter
// once.
type Network struct {
	Region   geo.Region
	Spine    geo.Region
	Features []feature.Feature
}

// Area returns the total paved area in square meters.
func (n Network) Area() float64 {
	return n.Region.Area()
}

// synthesis is one strategy's raw output: the unclipped secondary surface,
// the classifier applied to each clipped component, and the strategy's
// noise floor.
type synthesis struct {
	region   geo.Region
	classify func(comp geo.Region) feature.RoadClass
	noiseSQM float64
}

// Synthesize builds the road network for a buildable area. The spine runs
// from the first entry point through the area centroid; the secondary
// network is selected by cfg.Style. Surveyed roads are folded in, line
// roads at the local width. Zero config fields fall back to the standard
// defaults. Only the organic style draws from rng.
func Synthesize(buildable geo.Region, survey *feature.Survey, cfg plan.RoadConfig, rng *rand.Rand) (Network, error) {
	if len(survey.EntryPoints) == 0 {
		return Network{}, ErrMissingEntryPoint
	}
	if buildable.IsEmpty() {
		return Network{}, nil
	}
	cfg.ApplyDefaults(plan.Defaults())

	spine := spineRegion(buildable, survey.EntryPoints[0], cfg.MainRoadWidth)

	var syn synthesis
	switch cfg.Style {
	case plan.StyleRotated:
		syn = rotatedSynthesis(buildable, survey.Roads, cfg)
	case plan.StyleOrganic:
		syn = organicSynthesis(buildable, cfg, rng)
	default:
		syn = gridSynthesis(buildable, cfg)
	}

	full := syn.region.Union(spine)
	for _, r := range survey.Roads {
		full = full.Union(r.Corridor(cfg.LocalRoadWidth))
	}
	full = full.Intersect(buildable).Clean(syn.noiseSQM)

	spineIn := spine.Intersect(full)
	secondary := full.Subtract(spineIn)

	features := make([]feature.Feature, 0, 8)
	if !spineIn.IsEmpty() {
		features = append(features, feature.NewAccessRoad(spineIn))
	}
	for _, comp := range secondary.Components() {
		features = append(features, feature.NewRoad(comp, syn.classify(comp)))
	}

	return Network{Region: full, Spine: spineIn, Features: features}, nil
}

// spineRegion builds the principal access road: a ray from the entry point
// through the buildable centroid, extended far enough to cross the site,
// buffered to the main road width with square ends and clipped to the
// buildable area. An entry point sitting on the centroid yields an empty
// spine.
func spineRegion(buildable geo.Region, entry geo.Point, width float64) geo.Region {
	heading := buildable.Centroid().Sub(entry)
	dist := heading.Length()
	if dist < 1e-9 {
		return nil
	}
	end := entry.Add(heading.Scale(spineReachM / dist))
	return geo.BufferLine(geo.Polyline{entry, end}, width, geo.CapFlat).Intersect(buildable)
}

// circularity measures how disc-like a region is: 4πA/P² is 1 for a circle
// and falls toward 0 for elongated shapes.
func circularity(r geo.Region) float64 {
	p := r.Perimeter()
	if p < 1e-9 {
		return 0
	}
	return 4 * math.Pi * r.Area() / (p * p)
}
