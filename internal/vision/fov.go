package vision

import "math"

// FOVCache derives radially clipped visibility polygons for one source
// during one refresh pass. A cache belongs exclusively to the pass that
// created it: results are memoized per distinct radius value, and the
// whole cache is discarded when the pass ends. Correctness never depends
// on cross-frame caching.
type FOVCache struct {
	origin       Point
	sceneRect    Rect
	sourceRadius float64 // the source's own configured reach, pixels

	farDist     float64 // memoized reach used as the clip denominator
	haveFarDist bool

	polys map[float64]Polygon
}

// NewFOVCache creates a cache for a source at origin within the given
// scene bounds. sourceRadius is the source's own configured radius; the
// clip denominator never falls below it.
func NewFOVCache(origin Point, sceneRect Rect, sourceRadius float64) *FOVCache {
	return &FOVCache{
		origin:       origin,
		sceneRect:    sceneRect,
		sourceRadius: math.Abs(sourceRadius),
		polys:        make(map[float64]Polygon),
	}
}

// Distance returns the clip denominator: the larger of the source's own
// radius and the distance from the origin to the farthest scene corner.
// It depends only on origin and scene bounds, so it is computed once per
// cache instance.
func (c *FOVCache) Distance() float64 {
	if c.haveFarDist {
		return c.farDist
	}
	corners := c.sceneRect.Corners()
	far := math.Max(c.sourceRadius, Polygon(corners[:]).MaxDistFrom(c.origin))
	c.farDist = far
	c.haveFarDist = true
	return far
}

// ComputeFOV clips the source's unlimited line-of-sight polygon to the
// given radius. Vertices within the radius fraction are kept unchanged;
// vertices beyond it are pulled inward along their ray from the origin
// so they land exactly on the radius. Concavities from walls are
// preserved while extent is capped, so the result is always pointwise no
// farther from the origin than los itself.
//
// Radius 0 (or less) yields the empty polygon. Results are memoized per
// radius value: a repeated call returns the identical polygon without
// recomputation. A cache serves exactly one los polygon per pass, so the
// radius alone keys the memo.
func (c *FOVCache) ComputeFOV(radius float64, los Polygon) Polygon {
	if poly, ok := c.polys[radius]; ok {
		return poly
	}

	if radius <= 0 {
		empty := Polygon{}
		c.polys[radius] = empty
		return empty
	}

	dist := c.Distance()
	if dist <= 0 {
		empty := Polygon{}
		c.polys[radius] = empty
		return empty
	}
	limit := clamp(radius/dist, 0, 1)

	out := make(Polygon, len(los))
	for i, v := range los {
		dx := v.X - c.origin.X
		dy := v.Y - c.origin.Y
		vdist := math.Hypot(dx, dy)
		if vdist <= limit*dist {
			out[i] = v
			continue
		}
		scale := limit * dist / vdist
		out[i] = Point{
			X: c.origin.X + dx*scale,
			Y: c.origin.Y + dy*scale,
		}
	}
	c.polys[radius] = out
	return out
}
