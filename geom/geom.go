// Package geom implements the plane/point primitives shared by polygon
// splitting, face construction, and BSP partitioning: side classification,
// 3-plane intersection, and ray/plane intersection.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fixed tolerances, named rather than scattered as literals.
const (
	// SideEpsilon is used by Polygon/Face classification against a plane.
	SideEpsilon = 1e-3
	// SplitEpsilon is used by Polygon.Split's per-vertex side test.
	SplitEpsilon = 1e-6
	// Intersect3Epsilon bounds the determinant of a 3-plane system below
	// which the planes are considered degenerate (no unique intersection).
	Intersect3Epsilon = 1e-7
	// RayPlaneEpsilon bounds the ray/plane denominator below which the ray
	// is considered parallel to the plane.
	RayPlaneEpsilon = 1e-6
)

// Plane is an oriented half-space: n·x + d = 0, front is n·x+d > 0.
type Plane struct {
	Normal mgl64.Vec3
	D      float64
}

// Side evaluates the signed distance of p from the plane.
func (p Plane) Side(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// PlaneSide is the outcome of classifying a point or a set of points
// against a plane.
type PlaneSide int

const (
	Coplanar PlaneSide = iota
	Front
	Back
	Spanning
	CoplanarFront
	CoplanarBack
)

func (s PlaneSide) String() string {
	switch s {
	case Coplanar:
		return "Coplanar"
	case Front:
		return "Front"
	case Back:
		return "Back"
	case Spanning:
		return "Spanning"
	case CoplanarFront:
		return "CoplanarFront"
	case CoplanarBack:
		return "CoplanarBack"
	default:
		return "Unknown"
	}
}

// PointSide classifies a single point against plane using epsilon as the
// tolerance band around the plane. Callers pick epsilon by context:
// SideEpsilon for polygon/face classification, SplitEpsilon for the
// per-vertex test inside Polygon.Split.
func PointSide(p mgl64.Vec3, plane Plane, epsilon float64) PlaneSide {
	s := plane.Side(p)
	switch {
	case s < -epsilon:
		return Back
	case s > epsilon:
		return Front
	default:
		return Coplanar
	}
}

// Classify tallies the side of every point against plane and returns the
// combined classification. Mixed coplanar plus one strict side does not
// suppress Spanning when both strict sides are present.
func Classify(points []mgl64.Vec3, plane Plane, epsilon float64) PlaneSide {
	var front, back, flat int
	for _, p := range points {
		switch PointSide(p, plane, epsilon) {
		case Front:
			front++
		case Back:
			back++
		default:
			flat++
		}
	}

	switch {
	case front > 0 && back > 0:
		return Spanning
	case front > 0 && flat == 0:
		return Front
	case front > 0:
		return CoplanarFront
	case back > 0 && flat == 0:
		return Back
	case back > 0:
		return CoplanarBack
	default:
		return Coplanar
	}
}

// Intersect3 solves the unique point satisfying all three plane equations
// via Cramer's rule. ok is false if the planes are degenerate (|det| below
// Intersect3Epsilon), e.g. two of the planes are parallel.
func Intersect3(p0, p1, p2 Plane) (point mgl64.Vec3, ok bool) {
	n0, n1, n2 := p0.Normal, p1.Normal, p2.Normal
	det := n0.Cross(n1).Dot(n2)
	if math.Abs(det) < Intersect3Epsilon {
		return mgl64.Vec3{}, false
	}

	t1 := n1.Cross(n2).Mul(-p0.D)
	t2 := n2.Cross(n0).Mul(-p1.D)
	t3 := n0.Cross(n1).Mul(-p2.D)
	sum := t1.Add(t2).Add(t3)
	return sum.Mul(1.0 / det), true
}

// RayPlane intersects the line through origin in direction dir (need not
// be unit length) with plane. ok is false if the ray is parallel to the
// plane (|n·dir| below RayPlaneEpsilon).
func RayPlane(origin, dir mgl64.Vec3, plane Plane) (point mgl64.Vec3, ok bool) {
	denom := plane.Normal.Dot(dir)
	if math.Abs(denom) < RayPlaneEpsilon {
		return mgl64.Vec3{}, false
	}

	planePoint := plane.Normal.Mul(-plane.D)
	t := plane.Normal.Dot(planePoint.Sub(origin)) / denom
	return origin.Add(dir.Mul(t)), true
}

// PlaneFromPoints builds the plane through v1, v2, v3 with normal
// (v2-v1)×(v3-v1), matching the map file's plane-from-three-points
// convention.
func PlaneFromPoints(v1, v2, v3 mgl64.Vec3) Plane {
	n := v2.Sub(v1).Cross(v3.Sub(v1)).Normalize()
	return Plane{Normal: n, D: -n.Dot(v1)}
}
