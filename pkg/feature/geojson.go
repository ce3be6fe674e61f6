package feature

import (
	"encoding/json"
	"fmt"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
)

// Collection is a GeoJSON feature collection with optional run-level
// properties.
type Collection struct {
	Features   []Feature
	Properties map[string]any
}

// MarshalJSON encodes the collection as a GeoJSON FeatureCollection.
func (c Collection) MarshalJSON() ([]byte, error) {
	features := c.Features
	if features == nil {
		features = []Feature{}
	}
	out := struct {
		Type       string         `json:"type"`
		Features   []Feature      `json:"features"`
		Properties map[string]any `json:"properties,omitempty"`
	}{
		Type:       "FeatureCollection",
		Features:   features,
		Properties: c.Properties,
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a GeoJSON FeatureCollection of polygonal features.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       string         `json:"type"`
		Features   []Feature      `json:"features"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != "" && raw.Type != "FeatureCollection" {
		return fmt.Errorf("unexpected collection type %q", raw.Type)
	}
	c.Features = raw.Features
	c.Properties = raw.Properties
	return nil
}

// MarshalJSON encodes the feature with Polygon or MultiPolygon geometry.
// Empty geometry encodes as null, matching how empty shapes are dropped
// from map payloads.
func (f Feature) MarshalJSON() ([]byte, error) {
	out := struct {
		Type       string     `json:"type"`
		Geometry   any        `json:"geometry"`
		Properties Properties `json:"properties"`
	}{
		Type:       "Feature",
		Properties: f.Properties,
	}
	if !f.Geometry.IsEmpty() {
		out.Geometry = encodeRegion(f.Geometry)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a GeoJSON feature. Only Polygon and MultiPolygon
// geometries are accepted; null geometry yields an empty region.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var raw struct {
		Geometry   *rawGeometry `json:"geometry"`
		Properties Properties   `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Properties = raw.Properties
	f.Geometry = nil
	if raw.Geometry == nil {
		return nil
	}
	region, err := raw.Geometry.region()
	if err != nil {
		return err
	}
	f.Geometry = region
	return nil
}

type encodedGeometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// encodeRegion maps a region to Polygon or MultiPolygon coordinates with
// closed rings, exterior counter-clockwise and holes clockwise.
func encodeRegion(r geo.Region) encodedGeometry {
	polys := r.Polygons()
	coords := make([][][][]float64, 0, len(polys))
	for _, poly := range polys {
		rings := make([][][]float64, 0, len(poly))
		for i, ring := range poly {
			if i == 0 {
				ring = ring.EnsureCCW()
			} else {
				ring = ring.EnsureCW()
			}
			rings = append(rings, closedCoords(ring))
		}
		coords = append(coords, rings)
	}
	if len(coords) == 1 {
		return encodedGeometry{Type: "Polygon", Coordinates: coords[0]}
	}
	return encodedGeometry{Type: "MultiPolygon", Coordinates: coords}
}

func closedCoords(ring geo.Ring) [][]float64 {
	coords := make([][]float64, 0, len(ring)+1)
	for _, p := range ring {
		coords = append(coords, []float64{p.X, p.Y})
	}
	if len(ring) > 0 {
		coords = append(coords, []float64{ring[0].X, ring[0].Y})
	}
	return coords
}

// rawGeometry is the decode-side GeoJSON geometry wire form.
type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func (g rawGeometry) region() (geo.Region, error) {
	switch g.Type {
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("decoding polygon coordinates: %w", err)
		}
		return polygonRings(coords), nil
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("decoding multipolygon coordinates: %w", err)
		}
		var region geo.Region
		for _, poly := range coords {
			region = append(region, polygonRings(poly)...)
		}
		return region, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func (g rawGeometry) point() (geo.Point, error) {
	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return geo.Point{}, fmt.Errorf("decoding point coordinates: %w", err)
	}
	if len(coords) < 2 {
		return geo.Point{}, fmt.Errorf("point has %d coordinates", len(coords))
	}
	return geo.Pt(coords[0], coords[1]), nil
}

func (g rawGeometry) line() (geo.Polyline, error) {
	var coords [][]float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return nil, fmt.Errorf("decoding line coordinates: %w", err)
	}
	return lineFromCoords(coords), nil
}

func (g rawGeometry) lines() ([]geo.Polyline, error) {
	var coords [][][]float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return nil, fmt.Errorf("decoding multiline coordinates: %w", err)
	}
	lines := make([]geo.Polyline, 0, len(coords))
	for _, lc := range coords {
		lines = append(lines, lineFromCoords(lc))
	}
	return lines, nil
}

func polygonRings(coords [][][]float64) geo.Region {
	region := make(geo.Region, 0, len(coords))
	for _, rc := range coords {
		ring := ringFromCoords(rc)
		if len(ring) >= 3 {
			region = append(region, ring)
		}
	}
	return region
}

// ringFromCoords drops the GeoJSON closing vertex; rings are stored open.
func ringFromCoords(coords [][]float64) geo.Ring {
	ring := make(geo.Ring, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		ring = append(ring, geo.Pt(c[0], c[1]))
	}
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	return ring
}

func lineFromCoords(coords [][]float64) geo.Polyline {
	line := make(geo.Polyline, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		line = append(line, geo.Pt(c[0], c[1]))
	}
	return line
}
