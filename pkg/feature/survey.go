package feature

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
)

// ErrMissingBoundary reports a survey with no usable site boundary.
var ErrMissingBoundary = errors.New("site boundary not found in survey")

// ExistingRoad is a surveyed road: an open centerline, an already-paved
// area, or both.
type ExistingRoad struct {
	Line geo.Polyline
	Area geo.Region
}

// Corridor returns the paved region for the road: the surveyed area when
// present, otherwise the centerline buffered to the given width.
func (r ExistingRoad) Corridor(width float64) geo.Region {
	if !r.Area.IsEmpty() {
		return r.Area
	}
	if len(r.Line) < 2 {
		return nil
	}
	return geo.BufferLine(r.Line, width, geo.CapFlat)
}

// Survey is the normalized site input set: one site region (all boundary
// fragments unioned), obstacles, existing roads, and entry points.
type Survey struct {
	Site        geo.Region
	Obstacles   []geo.Region
	Roads       []ExistingRoad
	EntryPoints []geo.Point
}

// Validate reports whether the survey can anchor a subdivision run.
func (s Survey) Validate() error {
	if s.Site.IsEmpty() {
		return ErrMissingBoundary
	}
	return nil
}

// Summary describes what a survey contains, in the shape the upload API
// reports back.
type Summary struct {
	GeometryValid    bool    `json:"geometry_valid"`
	AreaSQM          float64 `json:"area_sqm"`
	AreaRai          float64 `json:"area_rai"`
	EntryPointCount  int     `json:"entry_point_count"`
	ObstacleCount    int     `json:"obstacle_count"`
	RoadSegmentCount int     `json:"road_segment_count"`
}

// Summary computes the survey's summary. A survey is geometrically valid
// when it has a site boundary and at least one entry point.
func (s Survey) Summary() Summary {
	area := s.Site.Area()
	return Summary{
		GeometryValid:    !s.Site.IsEmpty() && len(s.EntryPoints) > 0,
		AreaSQM:          round2(area),
		AreaRai:          round2(area / SquareMetersPerRai),
		EntryPointCount:  len(s.EntryPoints),
		ObstacleCount:    len(s.Obstacles),
		RoadSegmentCount: len(s.Roads),
	}
}

// LoadSurvey reads a survey from a GeoJSON file.
func LoadSurvey(path string) (*Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading survey file: %w", err)
	}
	s, err := ParseSurvey(data)
	if err != nil {
		return nil, fmt.Errorf("parsing survey file: %w", err)
	}
	return s, nil
}

// ParseSurvey decodes a survey from a GeoJSON FeatureCollection. Features
// are routed by their properties.type; unknown types are skipped. A missing
// boundary does not fail the parse; Validate reports it.
func ParseSurvey(data []byte) (*Survey, error) {
	var raw struct {
		Features []struct {
			Geometry   *rawGeometry `json:"geometry"`
			Properties Properties   `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	s := &Survey{}
	for i, rf := range raw.Features {
		if rf.Geometry == nil {
			continue
		}
		var err error
		switch rf.Properties.Type {
		case TypeBoundary:
			err = s.addBoundary(*rf.Geometry)
		case TypeObstacle:
			err = s.addObstacle(*rf.Geometry)
		case TypeRoad:
			err = s.addRoad(*rf.Geometry)
		case TypeEntryPoint:
			err = s.addEntryPoint(*rf.Geometry)
		}
		if err != nil {
			return nil, fmt.Errorf("feature %d (%s): %w", i, rf.Properties.Type, err)
		}
	}
	return s, nil
}

func (s *Survey) addBoundary(g rawGeometry) error {
	region, err := g.region()
	if err != nil {
		return err
	}
	s.Site = s.Site.Union(region)
	return nil
}

func (s *Survey) addObstacle(g rawGeometry) error {
	region, err := g.region()
	if err != nil {
		return err
	}
	if !region.IsEmpty() {
		s.Obstacles = append(s.Obstacles, region)
	}
	return nil
}

func (s *Survey) addRoad(g rawGeometry) error {
	switch g.Type {
	case "LineString":
		line, err := g.line()
		if err != nil {
			return err
		}
		if len(line) >= 2 {
			s.Roads = append(s.Roads, ExistingRoad{Line: line})
		}
	case "MultiLineString":
		lines, err := g.lines()
		if err != nil {
			return err
		}
		for _, line := range lines {
			if len(line) >= 2 {
				s.Roads = append(s.Roads, ExistingRoad{Line: line})
			}
		}
	default:
		region, err := g.region()
		if err != nil {
			return err
		}
		if !region.IsEmpty() {
			s.Roads = append(s.Roads, ExistingRoad{Area: region})
		}
	}
	return nil
}

func (s *Survey) addEntryPoint(g rawGeometry) error {
	switch g.Type {
	case "Point":
		pt, err := g.point()
		if err != nil {
			return err
		}
		s.EntryPoints = append(s.EntryPoints, pt)
	case "MultiPoint":
		var coords [][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return fmt.Errorf("decoding multipoint coordinates: %w", err)
		}
		for _, c := range coords {
			if len(c) >= 2 {
				s.EntryPoints = append(s.EntryPoints, geo.Pt(c[0], c[1]))
			}
		}
	default:
		// Entry markers drawn as small shapes collapse to their centroid.
		region, err := g.region()
		if err != nil {
			return err
		}
		if !region.IsEmpty() {
			s.EntryPoints = append(s.EntryPoints, region.Centroid())
		}
	}
	return nil
}
