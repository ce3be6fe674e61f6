package feature

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
)

const surveyDoc = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"type": "boundary", "label": "Total Site Extent"},
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[400,0],[400,300],[0,300],[0,0]]]}
    },
    {
      "type": "Feature",
      "properties": {"type": "obstacle", "label": "Potential Obstacle/Structure"},
      "geometry": {"type": "Polygon", "coordinates": [[[100,100],[140,100],[140,140],[100,140],[100,100]]]}
    },
    {
      "type": "Feature",
      "properties": {"type": "road", "label": "Existing Road"},
      "geometry": {"type": "LineString", "coordinates": [[0,150],[400,150]]}
    },
    {
      "type": "Feature",
      "properties": {"type": "entry_point", "label": "Main Station/Access"},
      "geometry": {"type": "Point", "coordinates": [0, 150]}
    }
  ]
}`

func TestParseSurvey(t *testing.T) {
	s, err := ParseSurvey([]byte(surveyDoc))
	if err != nil {
		t.Fatalf("ParseSurvey failed: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if !approxEqual(s.Site.Area(), 120000, tolerance) {
		t.Errorf("site area = %f, want 120000", s.Site.Area())
	}
	if len(s.Obstacles) != 1 {
		t.Fatalf("obstacle count = %d, want 1", len(s.Obstacles))
	}
	if !approxEqual(s.Obstacles[0].Area(), 1600, tolerance) {
		t.Errorf("obstacle area = %f, want 1600", s.Obstacles[0].Area())
	}
	if len(s.Roads) != 1 {
		t.Fatalf("road count = %d, want 1", len(s.Roads))
	}
	if len(s.Roads[0].Line) != 2 {
		t.Errorf("road line vertex count = %d, want 2", len(s.Roads[0].Line))
	}
	if len(s.EntryPoints) != 1 {
		t.Fatalf("entry point count = %d, want 1", len(s.EntryPoints))
	}
	if s.EntryPoints[0] != geo.Pt(0, 150) {
		t.Errorf("entry point = %v, want (0, 150)", s.EntryPoints[0])
	}
}

func TestSurveySummary(t *testing.T) {
	s, err := ParseSurvey([]byte(surveyDoc))
	if err != nil {
		t.Fatalf("ParseSurvey failed: %v", err)
	}
	sum := s.Summary()
	if !sum.GeometryValid {
		t.Error("survey with boundary and entry point should be valid")
	}
	if sum.AreaSQM != 120000 {
		t.Errorf("area_sqm = %v, want 120000", sum.AreaSQM)
	}
	if sum.AreaRai != 75 {
		t.Errorf("area_rai = %v, want 75", sum.AreaRai)
	}
	if sum.EntryPointCount != 1 || sum.ObstacleCount != 1 || sum.RoadSegmentCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1",
			sum.EntryPointCount, sum.ObstacleCount, sum.RoadSegmentCount)
	}
}

func TestParseSurveyMissingBoundary(t *testing.T) {
	doc := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"type": "entry_point"},
		 "geometry": {"type": "Point", "coordinates": [0, 0]}}
	]}`
	s, err := ParseSurvey([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSurvey failed: %v", err)
	}
	if err := s.Validate(); !errors.Is(err, ErrMissingBoundary) {
		t.Errorf("Validate error = %v, want ErrMissingBoundary", err)
	}
	if s.Summary().GeometryValid {
		t.Error("survey without boundary should not be geometry_valid")
	}
}

func TestParseSurveyUnionsBoundaries(t *testing.T) {
	doc := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"type": "boundary"},
		 "geometry": {"type": "Polygon", "coordinates": [[[0,0],[100,0],[100,100],[0,100],[0,0]]]}},
		{"type": "Feature", "properties": {"type": "boundary"},
		 "geometry": {"type": "Polygon", "coordinates": [[[100,0],[250,0],[250,100],[100,100],[100,0]]]}}
	]}`
	s, err := ParseSurvey([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSurvey failed: %v", err)
	}
	if !approxEqual(s.Site.Area(), 25000, tolerance) {
		t.Errorf("unioned site area = %f, want 25000", s.Site.Area())
	}
}

func TestParseSurveyRoadPolygon(t *testing.T) {
	doc := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"type": "road"},
		 "geometry": {"type": "Polygon", "coordinates": [[[0,0],[200,0],[200,10],[0,10],[0,0]]]}}
	]}`
	s, err := ParseSurvey([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSurvey failed: %v", err)
	}
	if len(s.Roads) != 1 {
		t.Fatalf("road count = %d, want 1", len(s.Roads))
	}
	corridor := s.Roads[0].Corridor(8)
	if !approxEqual(corridor.Area(), 2000, tolerance) {
		t.Errorf("polygon road corridor area = %f, want surveyed 2000", corridor.Area())
	}
}

func TestExistingRoadCorridorFromLine(t *testing.T) {
	road := ExistingRoad{Line: geo.Polyline{geo.Pt(0, 0), geo.Pt(100, 0)}}
	corridor := road.Corridor(8)
	if !approxEqual(corridor.Area(), 800, 1.0) {
		t.Errorf("line corridor area = %f, want ~800", corridor.Area())
	}
}

func TestLoadSurvey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.geojson")
	if err := os.WriteFile(path, []byte(surveyDoc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	s, err := LoadSurvey(path)
	if err != nil {
		t.Fatalf("LoadSurvey failed: %v", err)
	}
	if s.Site.IsEmpty() {
		t.Error("loaded survey should have a site boundary")
	}
}

func TestLoadSurveyMissing(t *testing.T) {
	_, err := LoadSurvey("/nonexistent/map.geojson")
	if err == nil {
		t.Error("expected error for missing survey file")
	}
}
