package layout

import (
	"math"
	"math/rand"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
)

// FrontageBufferM is the reach within which a parcel counts as fronting
// the road network.
const FrontageBufferM = 25.0

// Depth-to-width range for sampled parcel footprints.
const (
	aspectMin = 1.2
	aspectMax = 2.8
)

// Allocate greedily fills the remaining land with rectangular parcels
// following the size program. Per-group counts are fixed up front from the
// land available after roads; each group then scans the land components
// bottom-up, left-to-right, subtracting every placed parcel. Returns the
// parcel features and the unallocated residual.
func Allocate(remaining geo.Region, program []plan.SizeTarget, network geo.Region, rng *rand.Rand) ([]feature.Feature, geo.Region) {
	if remaining.IsEmpty() {
		return nil, remaining
	}

	type groupState struct {
		plan.SizeTarget
		target    int
		allocated int
	}

	total := remaining.Area()
	groups := make([]groupState, 0, len(program))
	needFrontage := false
	for _, tgt := range program {
		count := int(total * tgt.TargetPercent / tgt.AverageArea())
		if count < 1 {
			count = 1
		}
		groups = append(groups, groupState{SizeTarget: tgt, target: count})
		needFrontage = needFrontage || tgt.RequiresFrontage
	}

	var frontage geo.Region
	if needFrontage {
		frontage = network.Grow(FrontageBufferM)
	}

	var parcels []feature.Feature
	for gi := range groups {
		g := &groups[gi]

		for _, block := range remaining.Components() {
			if g.allocated >= g.target {
				break
			}
			lo, hi := block.BoundingBox()
			if hi.X-lo.X <= 0 || hi.Y-lo.Y <= 0 {
				continue
			}

			var w, d float64
			for px := lo.X; px < hi.X; px += w {
				for py := lo.Y; py < hi.Y; {
					if g.allocated >= g.target {
						break
					}
					w, d = sampleDimensions(rng, g.MinArea, g.MaxArea)
					rectLo := geo.Pt(px, py)
					rectHi := geo.Pt(px+w, py+d)

					if !block.CoversRect(rectLo, rectHi) {
						py += d * 0.7
						continue
					}
					if g.RequiresFrontage && !frontage.IntersectsRect(rectLo, rectHi) {
						py += d
						continue
					}
					area := w * d
					if area < g.MinArea || area > g.MaxArea {
						py += d
						continue
					}

					rect := geo.RegionOf(geo.Rect(rectLo, rectHi))
					parcels = append(parcels, feature.NewParcel(rect, g.SizeGroup))
					remaining = remaining.Subtract(rect)
					block = block.Subtract(rect)
					g.allocated++
					py += d
				}
			}
		}
	}

	return parcels, remaining
}

// sampleDimensions draws a parcel footprint whose area falls inside the
// group's range, skewed toward the midpoint, with a frontage-friendly
// depth-to-width ratio.
func sampleDimensions(rng *rand.Rand, minArea, maxArea float64) (width, depth float64) {
	area := triangular(rng, minArea, maxArea, (minArea+maxArea)/2)
	ratio := aspectMin + rng.Float64()*(aspectMax-aspectMin)
	width = math.Sqrt(area / ratio)
	depth = width * ratio
	return width, depth
}

// triangular samples the triangular distribution on [low, high] with the
// given mode by inverse transform.
func triangular(rng *rand.Rand, low, high, mode float64) float64 {
	u := rng.Float64()
	c := (mode - low) / (high - low)
	if u < c {
		return low + math.Sqrt(u*(high-low)*(mode-low))
	}
	return high - math.Sqrt((1-u)*(high-low)*(high-mode))
}
