package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/twpayne/go-kml/v2"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
)

// kmlPalette maps feature types to their KML style identifiers and fill
// colors. Road features pick their style by road class instead.
var kmlPalette = map[feature.Type]struct {
	styleID string
	fill    color.RGBA
}{
	feature.TypeBuildable: {"buildable", color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0x40}},
	feature.TypeParcel:    {"parcel", color.RGBA{R: 0xd2, G: 0xb4, B: 0x8c, A: 0xb0}},
	feature.TypeGreen:     {"green", color.RGBA{R: 0x22, G: 0x8b, B: 0x22, A: 0x90}},
}

var roadFill = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

// WriteKML renders the layout collection as a KML document. Geometry is
// reprojected through the projector, one placemark per feature, with one
// shared style per land use.
func WriteKML(w io.Writer, c feature.Collection, proj Projector, name string) error {
	children := []kml.Element{kml.Name(name)}
	for _, t := range []feature.Type{feature.TypeBuildable, feature.TypeParcel, feature.TypeGreen} {
		pal := kmlPalette[t]
		children = append(children, kml.SharedStyle(pal.styleID,
			kml.LineStyle(kml.Color(color.RGBA{A: 0xff}), kml.Width(1)),
			kml.PolyStyle(kml.Color(pal.fill), kml.Fill(true), kml.Outline(true)),
		))
	}
	children = append(children, kml.SharedStyle("road",
		kml.LineStyle(kml.Color(roadFill), kml.Width(1)),
		kml.PolyStyle(kml.Color(roadFill), kml.Fill(true), kml.Outline(true)),
	))

	for i, f := range c.Features {
		if f.Geometry.IsEmpty() {
			continue
		}
		children = append(children, placemark(i, f, proj))
	}

	doc := kml.KML(kml.Document(children...))
	return doc.WriteIndent(w, "", "  ")
}

func placemark(index int, f feature.Feature, proj Projector) kml.Element {
	children := []kml.Element{
		kml.Name(placemarkName(index, f)),
		kml.StyleURL("#" + styleID(f)),
	}
	for _, poly := range proj.Region(f.Geometry).Polygons() {
		children = append(children, kmlPolygon(poly))
	}
	if f.Properties.AreaSQM > 0 {
		children = append(children, kml.Description(fmt.Sprintf("%.2f sqm", f.Properties.AreaSQM)))
	}
	return kml.Placemark(children...)
}

func placemarkName(index int, f feature.Feature) string {
	if f.Properties.Label != "" {
		return f.Properties.Label
	}
	switch f.Properties.Type {
	case feature.TypeParcel:
		return fmt.Sprintf("Parcel %d (%s)", index, f.Properties.SizeGroup)
	case feature.TypeRoad:
		return fmt.Sprintf("%s road %d", f.Properties.RoadType, index)
	case feature.TypeGreen:
		return "Green Area"
	default:
		return string(f.Properties.Type)
	}
}

func styleID(f feature.Feature) string {
	if f.Properties.Type == feature.TypeRoad {
		return "road"
	}
	if pal, ok := kmlPalette[f.Properties.Type]; ok {
		return pal.styleID
	}
	return "buildable"
}

// kmlPolygon builds a Polygon element from one outer-first ring group of
// already-reprojected lon/lat coordinates.
func kmlPolygon(poly geo.Region) kml.Element {
	children := make([]kml.Element, 0, len(poly))
	for i, ring := range poly {
		lr := kml.LinearRing(kml.Coordinates(ringCoords(ring)...))
		if i == 0 {
			children = append(children, kml.OuterBoundaryIs(lr))
		} else {
			children = append(children, kml.InnerBoundaryIs(lr))
		}
	}
	return kml.Polygon(children...)
}

func ringCoords(ring geo.Ring) []kml.Coordinate {
	coords := make([]kml.Coordinate, 0, len(ring)+1)
	for _, p := range ring {
		coords = append(coords, kml.Coordinate{Lon: p.X, Lat: p.Y})
	}
	if len(ring) > 0 {
		coords = append(coords, kml.Coordinate{Lon: ring[0].X, Lat: ring[0].Y})
	}
	return coords
}
