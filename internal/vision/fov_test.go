package vision

import (
	"math"
	"testing"
)

func squareLOS(origin Point, half float64) Polygon {
	return Polygon{
		{origin.X - half, origin.Y - half},
		{origin.X + half, origin.Y - half},
		{origin.X + half, origin.Y + half},
		{origin.X - half, origin.Y + half},
	}
}

func TestComputeFOV_ZeroRadius_EmptyPolygon(t *testing.T) {
	origin := Point{500, 500}
	cache := NewFOVCache(origin, Rect{W: 1000, H: 1000}, 300)

	fov := cache.ComputeFOV(0, squareLOS(origin, 400))
	if !fov.Empty() {
		t.Fatalf("radius 0 should yield empty polygon, got %d vertices", len(fov))
	}
}

func TestComputeFOV_RadiusBeyondReach_ReturnsLOSUnchanged(t *testing.T) {
	origin := Point{500, 500}
	cache := NewFOVCache(origin, Rect{W: 1000, H: 1000}, 300)
	los := squareLOS(origin, 400)

	// Distance is at least the farthest scene corner; a radius past it
	// clamps the limit to 1 so no vertex moves.
	fov := cache.ComputeFOV(cache.Distance()*2, los)
	if len(fov) != len(los) {
		t.Fatalf("expected %d vertices, got %d", len(los), len(fov))
	}
	for i := range los {
		if fov[i] != los[i] {
			t.Fatalf("vertex %d moved: %+v != %+v", i, fov[i], los[i])
		}
	}
}

func TestComputeFOV_ClipsFarVertices_KeepsNearOnes(t *testing.T) {
	origin := Point{500, 500}
	cache := NewFOVCache(origin, Rect{W: 1000, H: 1000}, 300)

	near := Point{520, 500} // 20 px out
	far := Point{1500, 500} // 1000 px out, past any radius below
	los := Polygon{near, far, {500, 520}}

	radius := 100.0
	fov := cache.ComputeFOV(radius, los)

	if fov[0] != near {
		t.Fatalf("near vertex should be unchanged, got %+v", fov[0])
	}
	dist := cache.Distance()
	limit := radius / dist
	wantFar := limit * dist // clipped vertex lands exactly at the limit fraction
	if got := origin.Dist(fov[1]); math.Abs(got-wantFar) > 1e-9 {
		t.Fatalf("far vertex should land at %.4f from origin, got %.4f", wantFar, got)
	}
	// Direction preserved: still along +X.
	if fov[1].Y != 500 || fov[1].X <= 500 {
		t.Fatalf("clipped vertex left its ray: %+v", fov[1])
	}
}

func TestComputeFOV_SubsetOfLOS(t *testing.T) {
	origin := Point{200, 300}
	cache := NewFOVCache(origin, Rect{W: 1000, H: 1000}, 500)
	los := Polygon{
		{250, 300}, {400, 100}, {900, 300}, {400, 700}, {230, 350},
	}

	for _, radius := range []float64{10, 50, 150, 400, 2000} {
		fov := cache.ComputeFOV(radius, los)
		for i := range los {
			if origin.Dist(fov[i]) > origin.Dist(los[i])+1e-9 {
				t.Fatalf("radius %.0f vertex %d farther than LOS: %.4f > %.4f",
					radius, i, origin.Dist(fov[i]), origin.Dist(los[i]))
			}
		}
		if far := fov.MaxDistFrom(origin); far > los.MaxDistFrom(origin)+1e-9 {
			t.Fatalf("radius %.0f FOV extent %.4f exceeds LOS extent", radius, far)
		}
	}
}

func TestComputeFOV_MemoizedPerRadius(t *testing.T) {
	origin := Point{500, 500}
	cache := NewFOVCache(origin, Rect{W: 1000, H: 1000}, 300)
	los := squareLOS(origin, 400)

	a := cache.ComputeFOV(120, los)
	b := cache.ComputeFOV(120, los)

	if len(a) == 0 || len(b) == 0 {
		t.Fatal("expected non-empty polygons")
	}
	if &a[0] != &b[0] {
		t.Fatal("repeated call should return the identical memoized polygon")
	}

	c := cache.ComputeFOV(240, los)
	if len(c) > 0 && &c[0] == &a[0] {
		t.Fatal("distinct radii must not share a memo entry")
	}
}

func TestFOVCache_Distance_UsesSourceRadiusWhenLarger(t *testing.T) {
	origin := Point{500, 500}
	// Farthest corner is ~707 away; source radius is larger.
	cache := NewFOVCache(origin, Rect{W: 1000, H: 1000}, 5000)

	if got := cache.Distance(); got != 5000 {
		t.Fatalf("expected source radius 5000 as distance, got %.2f", got)
	}
}

func TestFOVCache_Distance_UsesFarthestCornerWhenLarger(t *testing.T) {
	origin := Point{100, 100}
	cache := NewFOVCache(origin, Rect{W: 1000, H: 1000}, 50)

	want := origin.Dist(Point{1000, 1000})
	if got := cache.Distance(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected farthest corner distance %.4f, got %.4f", want, got)
	}
}
