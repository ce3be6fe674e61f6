// Package layout derives the net buildable footprint of a surveyed site
// and fills the land left after roads with saleable parcels.
package layout

import (
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
)

// footprintSliverSQM is the area below which footprint fragments left by
// the buffer subtractions are discarded as noise.
const footprintSliverSQM = 1.0

// Buildable is the derived net footprint with its area accounting.
type Buildable struct {
	Region    geo.Region
	GrossSQM  float64
	UsableSQM float64
}

// GrossRai returns the gross site area in rai.
func (b Buildable) GrossRai() float64 {
	return b.GrossSQM / feature.SquareMetersPerRai
}

// UsableRai returns the net buildable area in rai.
func (b Buildable) UsableRai() float64 {
	return b.UsableSQM / feature.SquareMetersPerRai
}

// Derive computes the net buildable footprint: the site shrunk by the
// boundary setback, minus buffered obstacles and buffered existing road
// corridors. An empty result is a valid outcome when the constraints
// exhaust the site.
func Derive(survey *feature.Survey, c plan.Constraints) (Buildable, error) {
	if err := survey.Validate(); err != nil {
		return Buildable{}, err
	}
	gross := survey.Site.Area()

	region := survey.Site.Shrink(c.SetbackBoundaryM)

	if len(survey.Obstacles) > 0 {
		var blocked geo.Region
		for _, obs := range survey.Obstacles {
			blocked = blocked.Union(obs.Grow(c.BufferObstacleM))
		}
		region = region.Subtract(blocked)
	}

	for _, road := range survey.Roads {
		corridor := road.Corridor(c.MainRoadWidthM)
		if corridor.IsEmpty() {
			continue
		}
		region = region.Subtract(corridor.Grow(c.BufferObstacleM))
	}

	region = region.Clean(footprintSliverSQM)

	return Buildable{
		Region:    region,
		GrossSQM:  gross,
		UsableSQM: region.Area(),
	}, nil
}
