package vision

import (
	"math"
	"sort"
)

// sweepEpsilon offsets the two extra rays cast past each wall endpoint,
// in radians, so the sweep sees both the wall face and whatever lies
// beyond its corner.
const sweepEpsilon = 1e-4

// LOSPolygon computes the unlimited line-of-sight polygon for an
// observer at origin: the region of the scene visible before any radius
// limit applies, bounded by walls and the scene rectangle.
//
// The sweep casts three rays per wall endpoint and scene corner (at the
// endpoint's angle and ±epsilon around it), keeps the nearest hit per
// ray, and orders the hit points by angle. Walls and the scene boundary
// are both treated as opaque segments, so the result is always closed.
func LOSPolygon(origin Point, bounds Rect, walls []Wall) Polygon {
	segs := make([]Wall, 0, len(walls)+4)
	segs = append(segs, walls...)
	edges := bounds.Edges()
	segs = append(segs, edges[:]...)

	angles := make([]float64, 0, len(segs)*6)
	for _, s := range segs {
		for _, p := range [2]Point{{s.X1, s.Y1}, {s.X2, s.Y2}} {
			a := math.Atan2(p.Y-origin.Y, p.X-origin.X)
			angles = append(angles, a-sweepEpsilon, a, a+sweepEpsilon)
		}
	}

	type hit struct {
		angle float64
		pt    Point
	}
	hits := make([]hit, 0, len(angles))
	for _, a := range angles {
		dx, dy := math.Cos(a), math.Sin(a)
		if pt, ok := castRay(origin, dx, dy, segs); ok {
			hits = append(hits, hit{angle: a, pt: pt})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].angle < hits[j].angle })

	poly := make(Polygon, 0, len(hits))
	for _, h := range hits {
		poly = append(poly, h.pt)
	}
	return poly
}

// castRay finds the nearest intersection of the ray from origin along
// (dx,dy) with any segment. Reports false only if the ray escapes every
// segment, which cannot happen while the scene boundary is included.
func castRay(origin Point, dx, dy float64, segs []Wall) (Point, bool) {
	best := math.Inf(1)
	found := false
	for _, s := range segs {
		if t, ok := raySegment(origin.X, origin.Y, dx, dy, s); ok && t < best {
			best = t
			found = true
		}
	}
	if !found {
		return Point{}, false
	}
	return Point{X: origin.X + dx*best, Y: origin.Y + dy*best}, true
}

// raySegment returns the ray parameter t ≥ 0 at which the ray from
// (ox,oy) along (dx,dy) crosses the segment, if it does.
func raySegment(ox, oy, dx, dy float64, s Wall) (float64, bool) {
	sx := s.X2 - s.X1
	sy := s.Y2 - s.Y1

	denom := dx*sy - dy*sx
	if math.Abs(denom) < 1e-12 {
		return 0, false // parallel
	}

	// Solve origin + t*d == segStart + u*segDir.
	qx := s.X1 - ox
	qy := s.Y1 - oy
	t := (qx*sy - qy*sx) / denom
	u := (qx*dy - qy*dx) / denom

	if t < 0 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
