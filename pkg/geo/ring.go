package geo

import "math"

// Ring is one closed polygon loop defined by its vertices in order.
// The closing edge from the last vertex back to the first is implicit.
type Ring []Point

// Rect returns the axis-aligned rectangle (lo, hi) as a counterclockwise ring.
func Rect(lo, hi Point) Ring {
	return Ring{
		{lo.X, lo.Y},
		{hi.X, lo.Y},
		{hi.X, hi.Y},
		{lo.X, hi.Y},
	}
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (r Ring) Edge(i int) (Point, Point) {
	n := len(r)
	return r[i%n], r[(i+1)%n]
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (r Ring) SignedArea() float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += r[i].X * r[j].Y
		area -= r[j].X * r[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the ring.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// IsCounterClockwise returns true if vertices are in CCW order.
func (r Ring) IsCounterClockwise() bool {
	return r.SignedArea() > 0
}

// EnsureCCW returns the ring with vertices in counterclockwise order.
func (r Ring) EnsureCCW() Ring {
	if r.SignedArea() < 0 {
		return r.Reverse()
	}
	return r
}

// EnsureCW returns the ring with vertices in clockwise order.
func (r Ring) EnsureCW() Ring {
	if r.SignedArea() > 0 {
		return r.Reverse()
	}
	return r
}

// Reverse returns the ring with reversed vertex order.
func (r Ring) Reverse() Ring {
	n := len(r)
	rev := make(Ring, n)
	for i, v := range r {
		rev[n-1-i] = v
	}
	return rev
}

// Centroid returns the centroid of the ring.
func (r Ring) Centroid() Point {
	n := len(r)
	if n == 0 {
		return Point{}
	}
	a := r.SignedArea()
	if n < 3 || math.Abs(a) < 1e-12 {
		// Degenerate: return the vertex average.
		sum := Point{}
		for _, v := range r {
			sum = sum.Add(v)
		}
		return sum.Scale(1.0 / float64(n))
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := r[i].X*r[j].Y - r[j].X*r[i].Y
		cx += (r[i].X + r[j].X) * cross
		cy += (r[i].Y + r[j].Y) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point{cx * f, cy * f}
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (r Ring) BoundingBox() (Point, Point) {
	if len(r) == 0 {
		return Point{}, Point{}
	}
	minP := r[0]
	maxP := r[0]
	for _, v := range r[1:] {
		if v.X < minP.X {
			minP.X = v.X
		}
		if v.Y < minP.Y {
			minP.Y = v.Y
		}
		if v.X > maxP.X {
			maxP.X = v.X
		}
		if v.Y > maxP.Y {
			maxP.Y = v.Y
		}
	}
	return minP, maxP
}

// Contains returns true if the point is inside the ring using ray casting.
func (r Ring) Contains(pt Point) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := r[i]
		vj := r[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Perimeter returns the total perimeter length, including the closing edge.
func (r Ring) Perimeter() float64 {
	n := len(r)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += r[i].Distance(r[j])
	}
	return total
}

// Translate returns the ring shifted by d.
func (r Ring) Translate(d Point) Ring {
	out := make(Ring, len(r))
	for i, v := range r {
		out[i] = v.Add(d)
	}
	return out
}

// RotateAround returns the ring rotated by angle radians around center.
func (r Ring) RotateAround(center Point, angle float64) Ring {
	out := make(Ring, len(r))
	for i, v := range r {
		out[i] = v.RotateAround(center, angle)
	}
	return out
}

// Closed returns the ring as an open path with the first vertex appended,
// making the closing edge explicit.
func (r Ring) Closed() Polyline {
	if len(r) == 0 {
		return nil
	}
	out := make(Polyline, len(r)+1)
	copy(out, r)
	out[len(r)] = r[0]
	return out
}

// dedup drops consecutive vertices closer than eps, including the
// wrap-around pair.
func (r Ring) dedup(eps float64) Ring {
	if len(r) == 0 {
		return nil
	}
	out := make(Ring, 0, len(r))
	for _, v := range r {
		if len(out) > 0 && out[len(out)-1].Distance(v) < eps {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) < eps {
		out = out[:len(out)-1]
	}
	return out
}
