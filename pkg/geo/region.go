package geo

import (
	"math"

	polyclip "github.com/ctessum/polyclip-go"
)

// Region is a set of rings interpreted under the even-odd rule: a point is
// inside the region if it is inside an odd number of rings. Holes and
// disjoint parts need no special bookkeeping; they fall out of ring nesting
// depth. Regions are treated as immutable values — every operation returns
// a new Region.
type Region []Ring

// RegionOf builds a region from rings.
func RegionOf(rings ...Ring) Region {
	return Region(rings)
}

// IsEmpty returns true if the region has no rings.
func (r Region) IsEmpty() bool {
	return len(r) == 0
}

func (r Region) toClip() polyclip.Polygon {
	out := make(polyclip.Polygon, 0, len(r))
	for _, ring := range r {
		if len(ring) < 3 {
			continue
		}
		c := make(polyclip.Contour, len(ring))
		for i, p := range ring {
			c[i] = polyclip.Point{X: p.X, Y: p.Y}
		}
		out = append(out, c)
	}
	return out
}

func fromClip(p polyclip.Polygon) Region {
	out := make(Region, 0, len(p))
	for _, c := range p {
		if len(c) < 3 {
			continue
		}
		ring := make(Ring, len(c))
		for i, pt := range c {
			ring[i] = Point{pt.X, pt.Y}
		}
		if ring.Area() < 1e-12 {
			continue
		}
		out = append(out, ring)
	}
	return out
}

func boolean(a, b Region, op polyclip.Op) Region {
	return fromClip(a.toClip().Construct(op, b.toClip()))
}

// Union returns the region covered by r or o.
func (r Region) Union(o Region) Region {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return boolean(r, o, polyclip.UNION)
}

// Subtract returns the region covered by r but not o.
func (r Region) Subtract(o Region) Region {
	if r.IsEmpty() || o.IsEmpty() {
		return r
	}
	return boolean(r, o, polyclip.DIFFERENCE)
}

// Intersect returns the region covered by both r and o.
func (r Region) Intersect(o Region) Region {
	if r.IsEmpty() || o.IsEmpty() {
		return nil
	}
	return boolean(r, o, polyclip.INTERSECTION)
}

// ringDepths returns, for each ring, how many other rings contain it.
// Even depth means an outer boundary, odd depth a hole.
func (r Region) ringDepths() []int {
	depths := make([]int, len(r))
	for i, ring := range r {
		if len(ring) == 0 {
			continue
		}
		rep := ring[0]
		for j, other := range r {
			if j == i {
				continue
			}
			if other.Contains(rep) {
				depths[i]++
			}
		}
	}
	return depths
}

// Area returns the total enclosed area, with holes subtracted.
func (r Region) Area() float64 {
	if len(r) == 0 {
		return 0
	}
	depths := r.ringDepths()
	total := 0.0
	for i, ring := range r {
		if depths[i]%2 == 0 {
			total += ring.Area()
		} else {
			total -= ring.Area()
		}
	}
	if total < 0 {
		return 0
	}
	return total
}

// Perimeter returns the total boundary length, interior rings included.
func (r Region) Perimeter() float64 {
	total := 0.0
	for _, ring := range r {
		total += ring.Perimeter()
	}
	return total
}

// Contains returns true if the point is inside the region (even-odd rule).
func (r Region) Contains(pt Point) bool {
	count := 0
	for _, ring := range r {
		if ring.Contains(pt) {
			count++
		}
	}
	return count%2 == 1
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (r Region) BoundingBox() (Point, Point) {
	if len(r) == 0 {
		return Point{}, Point{}
	}
	minP, maxP := r[0].BoundingBox()
	for _, ring := range r[1:] {
		lo, hi := ring.BoundingBox()
		if lo.X < minP.X {
			minP.X = lo.X
		}
		if lo.Y < minP.Y {
			minP.Y = lo.Y
		}
		if hi.X > maxP.X {
			maxP.X = hi.X
		}
		if hi.Y > maxP.Y {
			maxP.Y = hi.Y
		}
	}
	return minP, maxP
}

// Centroid returns the area-weighted centroid, holes subtracted.
func (r Region) Centroid() Point {
	if len(r) == 0 {
		return Point{}
	}
	depths := r.ringDepths()
	var sum Point
	weight := 0.0
	for i, ring := range r {
		a := ring.Area()
		if depths[i]%2 == 1 {
			a = -a
		}
		sum = sum.Add(ring.Centroid().Scale(a))
		weight += a
	}
	if math.Abs(weight) < 1e-12 {
		lo, hi := r.BoundingBox()
		return MidPoint(lo, hi)
	}
	return sum.Scale(1 / weight)
}

// Translate returns the region shifted by d.
func (r Region) Translate(d Point) Region {
	out := make(Region, len(r))
	for i, ring := range r {
		out[i] = ring.Translate(d)
	}
	return out
}

// RotateAround returns the region rotated by angle radians around center.
func (r Region) RotateAround(center Point, angle float64) Region {
	out := make(Region, len(r))
	for i, ring := range r {
		out[i] = ring.RotateAround(center, angle)
	}
	return out
}

// Components groups rings by their outermost enclosing ring and returns one
// region per group, outer ring first. Disjoint parts of a multi-part region
// come back as separate components.
func (r Region) Components() []Region {
	if len(r) == 0 {
		return nil
	}
	depths := r.ringDepths()
	var comps []Region
	rootComp := make(map[int]int)
	for i, d := range depths {
		if d == 0 {
			rootComp[i] = len(comps)
			comps = append(comps, Region{r[i]})
		}
	}
	for i, d := range depths {
		if d == 0 || len(r[i]) == 0 {
			continue
		}
		for j, dj := range depths {
			if dj != 0 {
				continue
			}
			if r[j].Contains(r[i][0]) {
				comps[rootComp[j]] = append(comps[rootComp[j]], r[i])
				break
			}
		}
	}
	return comps
}

// Polygons splits the region into simple polygons: each even-depth ring
// grouped with the odd-depth rings directly inside it. Outer ring first,
// holes after — the ordering GeoJSON expects.
func (r Region) Polygons() []Region {
	if len(r) == 0 {
		return nil
	}
	depths := r.ringDepths()
	var polys []Region
	ringPoly := make(map[int]int)
	for i, d := range depths {
		if d%2 == 0 {
			ringPoly[i] = len(polys)
			polys = append(polys, Region{r[i]})
		}
	}
	for i, d := range depths {
		if d%2 == 0 || len(r[i]) == 0 {
			continue
		}
		for j, dj := range depths {
			if dj != d-1 {
				continue
			}
			if r[j].Contains(r[i][0]) {
				polys[ringPoly[j]] = append(polys[ringPoly[j]], r[i])
				break
			}
		}
	}
	return polys
}

// Clean normalizes the region: duplicate vertices are collapsed, degenerate
// rings dropped, and whole components with net area below minArea discarded.
// Applying Clean twice gives the same result as applying it once.
func (r Region) Clean(minArea float64) Region {
	pruned := make(Region, 0, len(r))
	for _, ring := range r {
		rr := ring.dedup(1e-9)
		if len(rr) < 3 || rr.Area() < 1e-9 {
			continue
		}
		pruned = append(pruned, rr)
	}
	if len(pruned) == 0 {
		return nil
	}
	out := make(Region, 0, len(pruned))
	for _, comp := range pruned.Components() {
		if comp.Area() < minArea {
			continue
		}
		out = append(out, comp...)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// properCross reports whether segments (a1,a2) and (b1,b2) cross at a single
// interior point. Touching endpoints and collinear overlap do not count.
func properCross(a1, a2, b1, b2 Point) bool {
	d1 := b2.Sub(b1).Cross(a1.Sub(b1))
	d2 := b2.Sub(b1).Cross(a2.Sub(b1))
	d3 := a2.Sub(a1).Cross(b1.Sub(a1))
	d4 := a2.Sub(a1).Cross(b2.Sub(a1))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func (r Region) anyEdge(fn func(a, b Point) bool) bool {
	for _, ring := range r {
		n := len(ring)
		for i := 0; i < n; i++ {
			if fn(ring[i], ring[(i+1)%n]) {
				return true
			}
		}
	}
	return false
}

// rectInset keeps containment tests off exact boundaries; rectangles placed
// flush against a previously carved edge still count as covered.
const rectInset = 1e-6

// CoversRect reports whether the axis-aligned rectangle (lo, hi) lies fully
// inside the region. Sharing a boundary with the region is allowed.
func (r Region) CoversRect(lo, hi Point) bool {
	if len(r) == 0 || lo.X >= hi.X || lo.Y >= hi.Y {
		return false
	}
	rlo, rhi := r.BoundingBox()
	if lo.X < rlo.X-rectInset || lo.Y < rlo.Y-rectInset ||
		hi.X > rhi.X+rectInset || hi.Y > rhi.Y+rectInset {
		return false
	}
	corners := [4]Point{
		{lo.X + rectInset, lo.Y + rectInset},
		{hi.X - rectInset, lo.Y + rectInset},
		{hi.X - rectInset, hi.Y - rectInset},
		{lo.X + rectInset, hi.Y - rectInset},
	}
	for _, c := range corners {
		if !r.Contains(c) {
			return false
		}
	}
	for _, ring := range r {
		for _, v := range ring {
			if v.X > lo.X+rectInset && v.X < hi.X-rectInset &&
				v.Y > lo.Y+rectInset && v.Y < hi.Y-rectInset {
				return false
			}
		}
	}
	rect := Rect(lo, hi)
	return !r.anyEdge(func(a, b Point) bool {
		for i := 0; i < 4; i++ {
			c, d := rect.Edge(i)
			if properCross(a, b, c, d) {
				return true
			}
		}
		return false
	})
}

// IntersectsRect reports whether the axis-aligned rectangle (lo, hi) shares
// any area or boundary with the region.
func (r Region) IntersectsRect(lo, hi Point) bool {
	if len(r) == 0 || lo.X >= hi.X || lo.Y >= hi.Y {
		return false
	}
	rlo, rhi := r.BoundingBox()
	if hi.X < rlo.X || hi.Y < rlo.Y || lo.X > rhi.X || lo.Y > rhi.Y {
		return false
	}
	probes := [5]Point{
		{lo.X, lo.Y},
		{hi.X, lo.Y},
		{hi.X, hi.Y},
		{lo.X, hi.Y},
		MidPoint(lo, hi),
	}
	for _, c := range probes {
		if r.Contains(c) {
			return true
		}
	}
	for _, ring := range r {
		for _, v := range ring {
			if v.X >= lo.X && v.X <= hi.X && v.Y >= lo.Y && v.Y <= hi.Y {
				return true
			}
		}
	}
	rect := Rect(lo, hi)
	return r.anyEdge(func(a, b Point) bool {
		for i := 0; i < 4; i++ {
			c, d := rect.Edge(i)
			if properCross(a, b, c, d) {
				return true
			}
		}
		return false
	})
}
