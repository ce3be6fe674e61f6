package layout

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/plan"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func rectRegion(x0, y0, x1, y1 float64) geo.Region {
	return geo.RegionOf(geo.Rect(geo.Pt(x0, y0), geo.Pt(x1, y1)))
}

// --- deriver tests ---

func TestDeriveSetbackOnly(t *testing.T) {
	survey := &feature.Survey{Site: rectRegion(0, 0, 400, 300)}
	b, err := Derive(survey, plan.Defaults())
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if b.GrossSQM != 120000 {
		t.Errorf("gross = %f, want 120000", b.GrossSQM)
	}
	// 5 m setback leaves a 390 x 290 footprint.
	if !approxEqual(b.UsableSQM, 113100, 1.0) {
		t.Errorf("usable = %f, want ~113100", b.UsableSQM)
	}
	if b.UsableSQM > b.GrossSQM {
		t.Error("usable area should not exceed gross area")
	}
	if !approxEqual(b.GrossRai(), 75, tolerance) {
		t.Errorf("gross rai = %f, want 75", b.GrossRai())
	}
}

func TestDeriveObstacle(t *testing.T) {
	survey := &feature.Survey{
		Site:      rectRegion(0, 0, 400, 300),
		Obstacles: []geo.Region{rectRegion(100, 100, 140, 140)},
	}
	b, err := Derive(survey, plan.Defaults())
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	// Obstacle grown by 3 m: 40x40 rect dilated with rounded corners.
	grown := 46.0*46.0 - 4*(9.0-math.Pi*9.0/4.0)
	want := 113100 - grown
	if !approxEqual(b.UsableSQM, want, 5.0) {
		t.Errorf("usable = %f, want ~%f", b.UsableSQM, want)
	}
	// Clearance: the obstacle itself must be outside the footprint.
	if b.Region.Contains(geo.Pt(120, 120)) {
		t.Error("footprint should exclude the obstacle interior")
	}
	if b.Region.Contains(geo.Pt(141, 120)) {
		t.Error("footprint should exclude the obstacle buffer zone")
	}
	if !b.Region.Contains(geo.Pt(300, 200)) {
		t.Error("footprint should keep land away from the obstacle")
	}
}

func TestDeriveExistingRoad(t *testing.T) {
	survey := &feature.Survey{
		Site: rectRegion(0, 0, 400, 300),
		Roads: []feature.ExistingRoad{
			{Line: geo.Polyline{geo.Pt(0, 150), geo.Pt(400, 150)}},
		},
	}
	b, err := Derive(survey, plan.Defaults())
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	// 12 m corridor grown 3 m each side cuts an 18 m band across the
	// 390 m wide footprint.
	want := 113100 - 390.0*18.0
	if !approxEqual(b.UsableSQM, want, 5.0) {
		t.Errorf("usable = %f, want ~%f", b.UsableSQM, want)
	}
	if b.Region.Contains(geo.Pt(200, 150)) {
		t.Error("footprint should exclude the road corridor")
	}
	if len(b.Region.Components()) != 2 {
		t.Errorf("component count = %d, want 2 (road splits the site)", len(b.Region.Components()))
	}
}

func TestDeriveMissingBoundary(t *testing.T) {
	_, err := Derive(&feature.Survey{}, plan.Defaults())
	if !errors.Is(err, feature.ErrMissingBoundary) {
		t.Errorf("error = %v, want ErrMissingBoundary", err)
	}
}

func TestDeriveExhaustedSite(t *testing.T) {
	survey := &feature.Survey{
		Site:      rectRegion(0, 0, 100, 100),
		Obstacles: []geo.Region{rectRegion(-10, -10, 110, 110)},
	}
	b, err := Derive(survey, plan.Defaults())
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if !b.Region.IsEmpty() {
		t.Error("fully blocked site should derive an empty footprint")
	}
	if b.UsableSQM != 0 {
		t.Errorf("usable = %f, want 0", b.UsableSQM)
	}
}

// --- allocator tests ---

func TestAllocateFillsLand(t *testing.T) {
	remaining := rectRegion(0, 0, 200, 200)
	program := []plan.SizeTarget{plan.Target("small", 0.5)}
	rng := rand.New(rand.NewSource(7))

	parcels, residual := Allocate(remaining, program, nil, rng)
	if len(parcels) == 0 {
		t.Fatal("expected parcels on open land")
	}

	placed := 0.0
	for i, p := range parcels {
		area := p.Area()
		if area < 60-tolerance || area > 100+tolerance {
			t.Errorf("parcel %d area = %f, outside [60, 100]", i, area)
		}
		lo, hi := p.Geometry.BoundingBox()
		if !remaining.CoversRect(lo, hi) {
			t.Errorf("parcel %d extends outside the allocated land", i)
		}
		placed += area
	}

	// Placed plus residual partitions the input area.
	if !approxEqual(placed+residual.Area(), 40000, 40) {
		t.Errorf("placed %f + residual %f != 40000", placed, residual.Area())
	}

	// Axis-aligned parcels must not overlap pairwise.
	for i := 0; i < len(parcels); i++ {
		loI, hiI := parcels[i].Geometry.BoundingBox()
		for j := i + 1; j < len(parcels); j++ {
			loJ, hiJ := parcels[j].Geometry.BoundingBox()
			if loI.X < hiJ.X-tolerance && loJ.X < hiI.X-tolerance &&
				loI.Y < hiJ.Y-tolerance && loJ.Y < hiI.Y-tolerance {
				t.Fatalf("parcels %d and %d overlap", i, j)
			}
		}
	}
}

func TestAllocateTargetCount(t *testing.T) {
	remaining := rectRegion(0, 0, 200, 200)
	// 0.002 of 40000 sqm at ~80 sqm average yields a single-parcel target.
	program := []plan.SizeTarget{plan.Target("small", 0.002)}
	rng := rand.New(rand.NewSource(3))

	parcels, _ := Allocate(remaining, program, nil, rng)
	if len(parcels) != 1 {
		t.Errorf("parcel count = %d, want 1", len(parcels))
	}
}

func TestAllocateFrontage(t *testing.T) {
	// Two blocks: one beside the road corridor, one 300 m away.
	near := rectRegion(0, 0, 100, 100)
	far := rectRegion(400, 0, 500, 100)
	remaining := near.Union(far)
	network := rectRegion(-10, 0, 0, 100)

	program := []plan.SizeTarget{plan.Target("xlarge", 0.9)}
	rng := rand.New(rand.NewSource(11))

	parcels, _ := Allocate(remaining, program, network, rng)
	if len(parcels) == 0 {
		t.Fatal("expected parcels beside the road")
	}
	for i, p := range parcels {
		lo, _ := p.Geometry.BoundingBox()
		if lo.X >= 400 {
			t.Errorf("parcel %d placed in the block beyond frontage reach", i)
		}
		if lo.X > FrontageBufferM {
			t.Errorf("parcel %d starts %f from the road, beyond the frontage buffer", i, lo.X)
		}
	}
}

func TestAllocateEmptyRemaining(t *testing.T) {
	parcels, residual := Allocate(nil, []plan.SizeTarget{plan.Target("small", 0.5)}, nil, rand.New(rand.NewSource(1)))
	if len(parcels) != 0 {
		t.Errorf("parcel count = %d, want 0", len(parcels))
	}
	if !residual.IsEmpty() {
		t.Error("residual of empty input should be empty")
	}
}

func TestAllocateDeterministic(t *testing.T) {
	remaining := rectRegion(0, 0, 150, 150)
	program := []plan.SizeTarget{plan.Target("medium", 0.4)}

	first, _ := Allocate(remaining, program, nil, rand.New(rand.NewSource(99)))
	second, _ := Allocate(remaining, program, nil, rand.New(rand.NewSource(99)))

	if len(first) != len(second) {
		t.Fatalf("parcel counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Properties.AreaSQM != second[i].Properties.AreaSQM {
			t.Errorf("parcel %d areas differ: %f vs %f",
				i, first[i].Properties.AreaSQM, second[i].Properties.AreaSQM)
		}
	}
}

// --- dimension sampler tests ---

func TestSampleDimensions(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		w, d := sampleDimensions(rng, 100, 150)
		area := w * d
		if area < 100-tolerance || area > 150+tolerance {
			t.Fatalf("sample %d area = %f, outside [100, 150]", i, area)
		}
		ratio := d / w
		if ratio < aspectMin-tolerance || ratio > aspectMax+tolerance {
			t.Fatalf("sample %d aspect = %f, outside [%v, %v]", i, ratio, aspectMin, aspectMax)
		}
	}
}

func TestTriangularBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	sum := 0.0
	const n = 2000
	for i := 0; i < n; i++ {
		v := triangular(rng, 40, 60, 50)
		if v < 40 || v > 60 {
			t.Fatalf("sample %d = %f, outside [40, 60]", i, v)
		}
		sum += v
	}
	if mean := sum / n; !approxEqual(mean, 50, 0.5) {
		t.Errorf("mean = %f, want ~50", mean)
	}
}

// --- green residual tests ---

func TestGreenFeature(t *testing.T) {
	f, ok := GreenFeature(rectRegion(0, 0, 30, 10))
	if !ok {
		t.Fatal("expected a green feature for a non-empty residual")
	}
	if f.Properties.Type != feature.TypeGreen {
		t.Errorf("type = %q, want %q", f.Properties.Type, feature.TypeGreen)
	}
	if f.Properties.AreaSQM != 300 {
		t.Errorf("area_sqm = %v, want 300", f.Properties.AreaSQM)
	}

	if _, ok := GreenFeature(nil); ok {
		t.Error("empty residual should not produce a feature")
	}
}
