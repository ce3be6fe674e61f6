package subdivision

import (
	"errors"
	"math"
	"testing"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/roads"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func rectRegion(x0, y0, x1, y1 float64) geo.Region {
	return geo.RegionOf(geo.Rect(geo.Point{X: x0, Y: y0}, geo.Point{X: x1, Y: y1}))
}

// benchSurvey is a 200x150 site with the entry at the left edge midpoint.
// With the default 5 m setback the buildable area is 190x140 = 26600 sqm.
func benchSurvey() *feature.Survey {
	return &feature.Survey{
		Site:        rectRegion(0, 0, 200, 150),
		EntryPoints: []geo.Point{{X: 0, Y: 75}},
	}
}

func mediumConstraints(percent float64) plan.Constraints {
	c := plan.Defaults()
	c.ParcelProgram = []plan.SizeTarget{plan.Target("medium", percent)}
	return c
}

func seededConfig(c plan.Constraints, seed int64) plan.RoadConfig {
	rc := plan.RoadDefaults(c)
	rc.Seed = seed
	return rc
}

func sumByType(features []feature.Feature) map[feature.Type]float64 {
	sums := make(map[feature.Type]float64)
	for _, f := range features {
		sums[f.Properties.Type] += f.Area()
	}
	return sums
}

func TestRunBenchmarkSite(t *testing.T) {
	c := mediumConstraints(0.5)
	l, err := Run(benchSurvey(), c, seededConfig(c, 5))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := l.Buildable.UsableSQM; !approxEqual(got, 26600, 1.0) {
		t.Fatalf("usable area = %.2f, want 26600", got)
	}
	if l.Features[0].Properties.Type != feature.TypeBuildable {
		t.Errorf("features[0] type = %q, want %q", l.Features[0].Properties.Type, feature.TypeBuildable)
	}
	if got := l.Features[1].Properties.Label; got != "Main Access Road" {
		t.Errorf("features[1] label = %q, want %q", got, "Main Access Road")
	}
	if l.Features[1].Properties.RoadType != feature.RoadMain {
		t.Errorf("spine road_type = %q, want %q", l.Features[1].Properties.RoadType, feature.RoadMain)
	}

	parcelCount := 0
	for _, f := range l.Features {
		if f.Properties.Type != feature.TypeParcel {
			continue
		}
		parcelCount++
		if f.Properties.AreaSQM < 100 || f.Properties.AreaSQM > 150 {
			t.Errorf("parcel area %.2f outside [100, 150]", f.Properties.AreaSQM)
		}
		if overlap := f.Geometry.Intersect(l.Network.Region).Area(); overlap > 0.01 {
			t.Errorf("parcel overlaps road network by %.4f sqm", overlap)
		}
	}
	if parcelCount == 0 {
		t.Fatal("expected at least one parcel")
	}

	sums := sumByType(l.Features)
	if sums[feature.TypeGreen] <= 0 {
		t.Error("expected a positive green residual")
	}
	partition := sums[feature.TypeParcel] + sums[feature.TypeRoad] + sums[feature.TypeGreen]
	if !approxEqual(partition, 26600, 26600*1e-3) {
		t.Errorf("partition sums to %.2f, want 26600", partition)
	}

	pctTotal := l.Metrics.LandUseBudget.Saleable.Percent +
		l.Metrics.LandUseBudget.Road.Percent +
		l.Metrics.LandUseBudget.Green.Percent
	if !approxEqual(pctTotal, 100, 0.5) {
		t.Errorf("budget percentages sum to %.2f, want 100", pctTotal)
	}
	if got, want := l.Net.TotalSaleableSQM, l.Metrics.LandUseBudget.Saleable.SQM; !approxEqual(got, want, 0.02) {
		t.Errorf("net saleable %.2f disagrees with budget saleable %.2f", got, want)
	}
}

func TestRunLowTargetLeavesGreen(t *testing.T) {
	// Targets summing to 0.3 must leave well over half the buildable area
	// as green after the road deduction.
	c := mediumConstraints(0.3)
	l, err := Run(benchSurvey(), c, seededConfig(c, 11))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	sums := sumByType(l.Features)
	if min := 0.6 * 26600; sums[feature.TypeGreen] < min {
		t.Errorf("green area = %.2f, want at least %.2f", sums[feature.TypeGreen], min)
	}
}

func TestRunConsumedSite(t *testing.T) {
	survey := &feature.Survey{
		Site:        rectRegion(0, 0, 40, 40),
		EntryPoints: []geo.Point{{X: 0, Y: 20}},
	}
	c := mediumConstraints(0.5)
	c.SetbackBoundaryM = 25

	l, err := Run(survey, c, seededConfig(c, 3))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(l.Features) != 0 {
		t.Errorf("got %d features for a consumed site, want 0", len(l.Features))
	}
	if got := l.Metrics.SiteAnalysis.TotalSiteSQM; got != 1600 {
		t.Errorf("total_site_sqm = %v, want 1600", got)
	}
	if got := l.Metrics.SiteAnalysis.TotalUsableSQM; got != 0 {
		t.Errorf("total_usable_sqm = %v, want 0", got)
	}
	if got := l.Metrics.LandUseBudget.Saleable.Percent; got != 0 {
		t.Errorf("saleable percent = %v, want 0", got)
	}
	if l.Net.TotalSaleableSQM != 0 {
		t.Errorf("net saleable = %v, want 0", l.Net.TotalSaleableSQM)
	}
}

func TestRunMissingBoundary(t *testing.T) {
	survey := &feature.Survey{EntryPoints: []geo.Point{{X: 0, Y: 0}}}
	c := mediumConstraints(0.5)

	_, err := Run(survey, c, seededConfig(c, 1))
	if !errors.Is(err, feature.ErrMissingBoundary) {
		t.Fatalf("Run() error = %v, want ErrMissingBoundary", err)
	}
}

func TestRunMissingEntryPoint(t *testing.T) {
	survey := &feature.Survey{Site: rectRegion(0, 0, 200, 150)}
	c := mediumConstraints(0.5)

	_, err := Run(survey, c, seededConfig(c, 1))
	if !errors.Is(err, roads.ErrMissingEntryPoint) {
		t.Fatalf("Run() error = %v, want ErrMissingEntryPoint", err)
	}
}

func TestRunRecordsSeed(t *testing.T) {
	c := mediumConstraints(0.5)

	l, err := Run(benchSurvey(), c, seededConfig(c, 42))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if l.Seed != 42 {
		t.Errorf("seed = %d, want 42", l.Seed)
	}

	l, err = Run(benchSurvey(), c, seededConfig(c, 0))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if l.Seed == 0 {
		t.Error("zero seed should be replaced by a drawn one")
	}
}

func TestRunDeterministic(t *testing.T) {
	c := mediumConstraints(0.5)

	first, err := Run(benchSurvey(), c, seededConfig(c, 21))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := Run(benchSurvey(), c, seededConfig(c, 21))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(first.Features) != len(second.Features) {
		t.Fatalf("same seed produced %d and %d features", len(first.Features), len(second.Features))
	}
	if first.Metrics.LandUseBudget.Saleable.SQM != second.Metrics.LandUseBudget.Saleable.SQM {
		t.Errorf("same seed produced saleable %.2f and %.2f",
			first.Metrics.LandUseBudget.Saleable.SQM, second.Metrics.LandUseBudget.Saleable.SQM)
	}
}

func TestLayoutCollection(t *testing.T) {
	c := mediumConstraints(0.5)
	l, err := Run(benchSurvey(), c, seededConfig(c, 7))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	col := l.Collection("abc12345")
	if got := col.Properties["project_id"]; got != "abc12345" {
		t.Errorf("project_id = %v, want abc12345", got)
	}
	if col.Properties["metrics"] == nil {
		t.Error("collection properties missing metrics")
	}
	if len(col.Features) != len(l.Features) {
		t.Errorf("collection has %d features, layout has %d", len(col.Features), len(l.Features))
	}
}
