package vision

import "math"

// Point is a position in scene pixel coordinates.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance to q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Rect is an axis-aligned rectangle in scene pixel coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Corners returns the rectangle's four corner points.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
}

// Edges returns the rectangle's four boundary segments.
func (r Rect) Edges() [4]Wall {
	c := r.Corners()
	return [4]Wall{
		{c[0].X, c[0].Y, c[1].X, c[1].Y},
		{c[1].X, c[1].Y, c[2].X, c[2].Y},
		{c[2].X, c[2].Y, c[3].X, c[3].Y},
		{c[3].X, c[3].Y, c[0].X, c[0].Y},
	}
}

// Diagonal returns the length of the rectangle's diagonal.
func (r Rect) Diagonal() float64 {
	return math.Hypot(r.W, r.H)
}

// Wall is a sight-blocking line segment.
type Wall struct {
	X1, Y1, X2, Y2 float64
}

// Polygon is a closed list of vertices in scene pixel coordinates.
// An empty polygon covers no area.
type Polygon []Point

// Empty reports whether the polygon has no vertices.
func (p Polygon) Empty() bool { return len(p) == 0 }

// Contains reports whether pt lies inside the polygon, using the
// even-odd ray casting rule. Points exactly on an edge may land on
// either side; callers that care about boundaries should not.
func (p Polygon) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// MaxDistFrom returns the distance from origin to the farthest vertex.
func (p Polygon) MaxDistFrom(origin Point) float64 {
	far := 0.0
	for _, v := range p {
		if d := origin.Dist(v); d > far {
			far = d
		}
	}
	return far
}

// clamp limits v to the range [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
