package geo

// Polyline is an open path of points.
type Polyline []Point

// Length returns the total path length.
func (l Polyline) Length() float64 {
	total := 0.0
	for i := 0; i < len(l)-1; i++ {
		total += l[i].Distance(l[i+1])
	}
	return total
}

// PointAt returns the point at fraction t in [0,1] along the path.
func (l Polyline) PointAt(t float64) Point {
	if len(l) == 0 {
		return Point{}
	}
	if len(l) == 1 || t <= 0 {
		return l[0]
	}
	if t >= 1 {
		return l[len(l)-1]
	}
	target := t * l.Length()
	walked := 0.0
	for i := 0; i < len(l)-1; i++ {
		seg := l[i].Distance(l[i+1])
		if walked+seg >= target && seg > 0 {
			return l[i].Lerp(l[i+1], (target-walked)/seg)
		}
		walked += seg
	}
	return l[len(l)-1]
}

// Chaikin applies corner-cutting subdivision, keeping both end points. Each
// pass replaces every interior corner with points at the 1/4 and 3/4 marks
// of the adjoining edges, converging toward a smooth curve.
func (l Polyline) Chaikin(iterations int) Polyline {
	out := l
	for it := 0; it < iterations; it++ {
		if len(out) < 3 {
			return out
		}
		next := make(Polyline, 0, 2*len(out))
		next = append(next, out[0])
		for i := 0; i < len(out)-1; i++ {
			a, b := out[i], out[i+1]
			next = append(next, a.Lerp(b, 0.25), a.Lerp(b, 0.75))
		}
		next = append(next, out[len(out)-1])
		out = next
	}
	return out
}
