package geo

import "math"

// bufferSegments is the number of segments used for the discs that round
// buffer joints and caps.
const bufferSegments = 24

// Circle approximates a circle as a counterclockwise ring. Vertices sit at
// half-step offsets so disc edges stay off the segment axes during boolean
// ops.
func Circle(center Point, radius float64, segments int) Ring {
	if segments < 3 {
		segments = 3
	}
	pts := make(Ring, segments)
	for i := 0; i < segments; i++ {
		angle := (float64(i) + 0.5) / float64(segments) * 2 * math.Pi
		pts[i] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return pts
}

// LineCap selects the end treatment for buffered paths.
type LineCap int

const (
	// CapRound closes path ends with half-discs.
	CapRound LineCap = iota
	// CapFlat cuts path ends square at the end points.
	CapFlat
)

// BufferLine thickens an open path into a region of the given total width.
// Joints between segments are always rounded; the cap style only affects the
// two path ends.
func BufferLine(path Polyline, width float64, ends LineCap) Region {
	if len(path) < 2 || width <= 0 {
		return nil
	}
	half := width / 2
	var out Region
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		if a.Distance(b) < 1e-9 {
			continue
		}
		n := b.Sub(a).Normalize().Perp().Scale(half)
		quad := Ring{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
		out = out.Union(Region{quad.EnsureCCW()})
	}
	for i, p := range path {
		if ends == CapFlat && (i == 0 || i == len(path)-1) {
			continue
		}
		out = out.Union(Region{Circle(p, half, bufferSegments)})
	}
	return out
}

// Grow returns the region dilated outward by d: the region unioned with a
// d-wide band around every boundary ring.
func (r Region) Grow(d float64) Region {
	if r.IsEmpty() || d < 1e-9 {
		return r
	}
	out := r
	for _, ring := range r {
		if len(ring) < 3 {
			continue
		}
		out = out.Union(BufferLine(ring.Closed(), 2*d, CapRound))
	}
	return out
}

// Shrink returns the region eroded inward by d: the d-wide boundary band is
// subtracted, so holes widen and the outer boundary retreats. Shrinking past
// the region's width yields an empty region.
func (r Region) Shrink(d float64) Region {
	if r.IsEmpty() || d < 1e-9 {
		return r
	}
	out := r
	for _, ring := range r {
		if len(ring) < 3 {
			continue
		}
		out = out.Subtract(BufferLine(ring.Closed(), 2*d, CapRound))
	}
	return out
}
