package geometry

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// degenerateArea is the polygon area below which containment tests treat the
// polygon as empty. Keeps near-collinear floor outlines from producing
// unstable inside/outside answers.
const degenerateArea = 1e-6

// Footprint is the horizontal (XZ-plane) projection of a world bounding box:
// four corners in counter-clockwise order, vertical extent ignored.
type Footprint [4]rl.Vector2

// FootprintFromBounds projects a world AABB onto the XZ plane.
// rl.Vector2.Y carries the world Z coordinate.
func FootprintFromBounds(box rl.BoundingBox) Footprint {
	return Footprint{
		rl.NewVector2(box.Min.X, box.Min.Z),
		rl.NewVector2(box.Max.X, box.Min.Z),
		rl.NewVector2(box.Max.X, box.Max.Z),
		rl.NewVector2(box.Min.X, box.Max.Z),
	}
}

// PolygonArea returns the absolute area of a polygon via the shoelace formula.
// Polygons with fewer than 3 vertices have zero area.
func PolygonArea(poly []rl.Vector2) float32 {
	if len(poly) < 3 {
		return 0
	}
	var sum float32
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return math32.Abs(sum) * 0.5
}

// PointInPolygon reports whether p lies inside poly using the standard
// ray-casting (crossing number) test. The polygon is implicitly closed.
// Points exactly on an edge may be classified either way; callers accept
// that ambiguity. Degenerate polygons contain nothing.
func PointInPolygon(p rl.Vector2, poly []rl.Vector2) bool {
	if len(poly) < 3 || PolygonArea(poly) < degenerateArea {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		vi, vj := poly[i], poly[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			crossX := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// orientation returns the turn direction of the triplet (a, b, c):
// 0 collinear, 1 clockwise, 2 counter-clockwise.
func orientation(a, b, c rl.Vector2) int {
	val := (b.Y-a.Y)*(c.X-b.X) - (b.X-a.X)*(c.Y-b.Y)
	switch {
	case math32.Abs(val) < 1e-9:
		return 0
	case val > 0:
		return 1
	default:
		return 2
	}
}

// onSegment reports whether point c, known to be collinear with segment ab,
// lies within ab's bounding range.
func onSegment(a, b, c rl.Vector2) bool {
	return c.X <= math32.Max(a.X, b.X) && c.X >= math32.Min(a.X, b.X) &&
		c.Y <= math32.Max(a.Y, b.Y) && c.Y >= math32.Min(a.Y, b.Y)
}

// SegmentsIntersect reports whether segments p1p2 and q1q2 intersect,
// including collinear overlap and shared endpoints.
func SegmentsIntersect(p1, p2, q1, q2 rl.Vector2) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear fallbacks.
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	if o3 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if o4 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	return false
}

// FootprintIntersectsPolygon reports whether any edge of the footprint
// crosses any edge of the polygon outline. A footprint fully inside (or
// fully outside) the outline does not intersect it.
func FootprintIntersectsPolygon(fp Footprint, poly []rl.Vector2) bool {
	if len(poly) < 2 {
		return false
	}
	for i := 0; i < len(fp); i++ {
		a := fp[i]
		b := fp[(i+1)%len(fp)]
		for j := 0; j < len(poly); j++ {
			c := poly[j]
			d := poly[(j+1)%len(poly)]
			if SegmentsIntersect(a, b, c, d) {
				return true
			}
		}
	}
	return false
}

// BoxesOverlap reports whether two world AABBs overlap on all three axes.
// margin expands box b slightly so shallow numerical penetrations still
// register as contact.
func BoxesOverlap(a, b rl.BoundingBox, margin float32) bool {
	return a.Min.X <= b.Max.X+margin && a.Max.X >= b.Min.X-margin &&
		a.Min.Y <= b.Max.Y+margin && a.Max.Y >= b.Min.Y-margin &&
		a.Min.Z <= b.Max.Z+margin && a.Max.Z >= b.Min.Z-margin
}
