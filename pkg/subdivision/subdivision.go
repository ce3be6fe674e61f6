// Package subdivision runs the full land subdivision pipeline: derive the
// buildable area, synthesize the road network, allocate parcels, fold the
// residual into green space, and aggregate the metrics.
package subdivision

import (
	"math/rand"
	"time"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/layout"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/metrics"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/roads"
)

// Layout is one complete subdivision run: the derived buildable area, the
// road network, the output features in presentation order (buildable
// footprint, roads, parcels, green) and the aggregated reports. Seed is
// the random seed the run actually used, so any layout can be replayed.
type Layout struct {
	Buildable layout.Buildable
	Network   roads.Network
	Features  []feature.Feature
	Metrics   metrics.Metrics
	Net       metrics.NetBuildable
	Seed      int64
}

// Run executes the pipeline on a survey. A consumed site (empty buildable
// area) yields an empty layout with zeroed budgets, not an error; a survey
// without a boundary or entry point fails with the respective sentinel.
// rc.Seed of zero draws a time-derived seed, recorded in the result.
func Run(survey *feature.Survey, c plan.Constraints, rc plan.RoadConfig) (*Layout, error) {
	buildable, err := layout.Derive(survey, c)
	if err != nil {
		return nil, err
	}

	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	out := &Layout{Buildable: buildable, Seed: seed}

	if buildable.Region.IsEmpty() {
		out.Metrics = metrics.Aggregate(buildable, nil)
		out.Net = metrics.NetBuildableBySize(nil)
		return out, nil
	}

	rng := rand.New(rand.NewSource(seed))

	network, err := roads.Synthesize(buildable.Region, survey, rc, rng)
	if err != nil {
		return nil, err
	}

	remaining := buildable.Region.Subtract(network.Region)
	parcels, residual := layout.Allocate(remaining, c.ParcelProgram, network.Region, rng)

	features := make([]feature.Feature, 0, len(network.Features)+len(parcels)+2)
	features = append(features, feature.NewBuildable(buildable.Region))
	features = append(features, network.Features...)
	features = append(features, parcels...)
	if green, ok := layout.GreenFeature(residual); ok {
		features = append(features, green)
	}

	out.Network = network
	out.Features = features
	out.Metrics = metrics.Aggregate(buildable, features)
	out.Net = metrics.NetBuildableBySize(features)
	return out, nil
}

// Collection assembles the layout's output document: all features plus the
// metrics report in the collection properties.
func (l *Layout) Collection(projectID string) feature.Collection {
	props := map[string]any{"metrics": l.Metrics}
	if projectID != "" {
		props["project_id"] = projectID
	}
	return feature.Collection{Features: l.Features, Properties: props}
}
