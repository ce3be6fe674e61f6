// Package export turns a generated layout into display artifacts: the
// WGS84 preview collection map clients consume and a KML document for
// external viewers. The core pipeline stays planar; everything geodesic
// lives here.
package export

import (
	"math"

	"github.com/Abhinav2146/Estate-Layout-Design/pkg/feature"
	"github.com/Abhinav2146/Estate-Layout-Design/pkg/geo"
)

// Survey drawings are calibrated against the site datum by a fixed shift
// applied before reprojection.
const (
	CalibrationOffsetX = -280.0
	CalibrationOffsetY = 350.0
)

// DefaultZone is the UTM zone the site surveys are projected in (47N).
const DefaultZone = 47

// Projector converts planar UTM coordinates to WGS84 longitude/latitude,
// applying the calibration shift first.
type Projector struct {
	Zone    int
	OffsetX float64
	OffsetY float64
}

// NewProjector builds the projector for a northern-hemisphere UTM zone
// with the standard calibration offsets.
func NewProjector(zone int) Projector {
	return Projector{Zone: zone, OffsetX: CalibrationOffsetX, OffsetY: CalibrationOffsetY}
}

// WGS84 ellipsoid and transverse Mercator constants.
const (
	wgs84A       = 6378137.0
	wgs84F       = 1 / 298.257223563
	utmScale     = 0.9996
	falseEasting = 500000.0
)

// ToLonLat converts one planar point to (longitude, latitude) in degrees,
// returned as a Point with X=lon, Y=lat. The inverse transverse Mercator
// series is the standard USGS formulation, accurate to well under a meter
// inside the zone.
func (p Projector) ToLonLat(pt geo.Point) geo.Point {
	e2 := wgs84F * (2 - wgs84F)
	ep2 := e2 / (1 - e2)

	x := pt.X + p.OffsetX - falseEasting
	y := pt.Y + p.OffsetY

	m := y / utmScale
	mu := m / (wgs84A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	phi1 := mu +
		(3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinPhi, cosPhi := math.Sin(phi1), math.Cos(phi1)
	tanPhi := sinPhi / cosPhi

	c1 := ep2 * cosPhi * cosPhi
	t1 := tanPhi * tanPhi
	n1 := wgs84A / math.Sqrt(1-e2*sinPhi*sinPhi)
	r1 := wgs84A * (1 - e2) / math.Pow(1-e2*sinPhi*sinPhi, 1.5)
	d := x / (n1 * utmScale)

	lat := phi1 - (n1*tanPhi/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*d*d*d*d*d*d/720)
	lon := (d -
		(1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*d*d*d*d*d/120) / cosPhi

	lon0 := float64((p.Zone-1)*6-180+3) * math.Pi / 180
	return geo.Pt((lon0+lon)*180/math.Pi, lat*180/math.Pi)
}

// Region reprojects every vertex of a region.
func (p Projector) Region(r geo.Region) geo.Region {
	out := make(geo.Region, len(r))
	for i, ring := range r {
		pr := make(geo.Ring, len(ring))
		for j, pt := range ring {
			pr[j] = p.ToLonLat(pt)
		}
		out[i] = pr
	}
	return out
}

// Collection reprojects every feature geometry in a collection, leaving
// the properties untouched. The result is the lat/long preview payload.
func (p Projector) Collection(c feature.Collection) feature.Collection {
	features := make([]feature.Feature, len(c.Features))
	for i, f := range c.Features {
		features[i] = feature.Feature{
			Geometry:   p.Region(f.Geometry),
			Properties: f.Properties,
		}
	}
	return feature.Collection{Features: features, Properties: c.Properties}
}
