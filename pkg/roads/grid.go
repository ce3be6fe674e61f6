package roads

import (
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
)

// strip is one axis-aligned road band.
type strip struct {
	lo, hi geo.Point
}

// gridSynthesis lays vertical main strips and horizontal local strips
// across the buildable bounding box. Vertical strips repeat every
// vertical_spacing plus the main width, horizontal strips every
// horizontal_spacing plus the local width.
func gridSynthesis(buildable geo.Region, cfg plan.RoadConfig) synthesis {
	lo, hi := buildable.BoundingBox()

	var vertical, horizontal []strip
	for x := lo.X + cfg.VerticalSpacing; x < hi.X; x += cfg.VerticalSpacing + cfg.MainRoadWidth {
		vertical = append(vertical, strip{
			lo: geo.Point{X: x, Y: lo.Y},
			hi: geo.Point{X: x + cfg.MainRoadWidth, Y: hi.Y},
		})
	}
	for y := lo.Y + cfg.HorizontalSpacing; y < hi.Y; y += cfg.HorizontalSpacing + cfg.LocalRoadWidth {
		horizontal = append(horizontal, strip{
			lo: geo.Point{X: lo.X, Y: y},
			hi: geo.Point{X: hi.X, Y: y + cfg.LocalRoadWidth},
		})
	}

	var region geo.Region
	for _, s := range vertical {
		region = region.Union(geo.RegionOf(geo.Rect(s.lo, s.hi)))
	}
	for _, s := range horizontal {
		region = region.Union(geo.RegionOf(geo.Rect(s.lo, s.hi)))
	}

	// A component touching only vertical strips carries through traffic, one
	// touching only horizontal strips is local access. A crossing piece is
	// judged by its dominant bounding-box dimension.
	classify := func(comp geo.Region) feature.RoadClass {
		touchesMain := intersectsAnyStrip(comp, vertical)
		touchesLocal := intersectsAnyStrip(comp, horizontal)
		switch {
		case touchesMain && !touchesLocal:
			return feature.RoadMain
		case touchesLocal && !touchesMain:
			return feature.RoadLocal
		}
		clo, chi := comp.BoundingBox()
		if chi.X-clo.X > chi.Y-clo.Y {
			return feature.RoadLocal
		}
		return feature.RoadMain
	}

	return synthesis{region: region, classify: classify, noiseSQM: gridNoiseSQM}
}

func intersectsAnyStrip(comp geo.Region, strips []strip) bool {
	for _, s := range strips {
		if comp.IntersectsRect(s.lo, s.hi) {
			return true
		}
	}
	return false
}
