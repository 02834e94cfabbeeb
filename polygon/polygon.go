// Package polygon implements the weaker, identity-free convex polygon
// representation used downstream of Face/FaceVertex identity: an ordered
// cycle of 3D points on a supporting plane, classified and split against
// other planes during BSP construction and cell enumeration.
package polygon

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/geom"
)

// centroidBias disambiguates colinear ordering for points that land near
// the centroid when angle-sorting.
const centroidBias = 1e-4

// Polygon is an ordered, convex cycle of points lying on Plane.
//
// Texture carries the originating MapPlane's texture name opaquely, so a
// downstream colorizer can key off it without the polygon needing to know
// anything about rendering (see package texture).
type Polygon struct {
	Plane   geom.Plane
	Points  []mgl64.Vec3
	Texture string
}

// FromOrderedPoints wraps an already CCW-ordered point cycle (e.g. a
// Face's vertex cycle, or the output of Split, which preserves order) into
// a Polygon. No resorting is performed.
func FromOrderedPoints(plane geom.Plane, points []mgl64.Vec3, texture string) *Polygon {
	return &Polygon{Plane: plane, Points: append([]mgl64.Vec3(nil), points...), Texture: texture}
}

// tangentFrame picks a world axis not parallel to plane.Normal (trying
// UnitY, then UnitX, then UnitZ — a non-parallel axis always exists for a
// unit normal) and derives a right/left in-plane basis from it, used for
// bounding-cube faces and quad construction.
func tangentFrame(plane geom.Plane) (right, left mgl64.Vec3) {
	candidates := []mgl64.Vec3{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}}
	n := plane.Normal
	for _, axis := range candidates {
		cross := n.Cross(axis)
		if cross.Len() > 1e-6 {
			right = cross.Normalize()
			left = right.Cross(n).Normalize()
			return right, left
		}
	}
	// Unreachable for a unit normal, but fall back to an arbitrary frame
	// rather than returning a degenerate zero vector.
	right = mgl64.Vec3{1, 0, 0}
	left = mgl64.Vec3{0, 1, 0}
	return right, left
}

// FromUnorderedPoints projects points into the plane's 2D tangent frame
// and angle-sorts them around their biased centroid.
// tangent/bitangent are the MapPlane's carried tangent frame; pass a zero
// value pair to derive a generic frame via tangentFrame instead.
func FromUnorderedPoints(plane geom.Plane, tangent, bitangent mgl64.Vec3, points []mgl64.Vec3, texture string) *Polygon {
	if tangent.Len() < 1e-9 || bitangent.Len() < 1e-9 {
		tangent, bitangent = tangentFrame(plane)
	}

	type projected struct {
		p    mgl64.Vec3
		u, v float64
	}
	proj := make([]projected, len(points))
	var cu, cv float64
	for i, p := range points {
		u := tangent.Dot(p)
		v := bitangent.Dot(p)
		proj[i] = projected{p: p, u: u, v: v}
		cu += u
		cv += v
	}
	n := float64(len(points))
	cu = cu/n + centroidBias
	cv = cv/n + centroidBias

	sort.Slice(proj, func(i, j int) bool {
		ai := math.Atan2(proj[i].v-cv, proj[i].u-cu)
		aj := math.Atan2(proj[j].v-cv, proj[j].u-cu)
		return ai < aj
	})

	ordered := make([]mgl64.Vec3, len(proj))
	for i, pr := range proj {
		ordered[i] = pr.p
	}
	return &Polygon{Plane: plane, Points: ordered, Texture: texture}
}

// Quad builds a finite quad polygon for plane, centered at its basepoint
// (-d·n) with half-size size, used for BSP bounding-cube faces and for
// capping a split-open convex cell.
func Quad(plane geom.Plane, size float64) *Polygon {
	right, left := tangentFrame(plane)
	base := plane.Normal.Mul(-plane.D)

	rs := right.Mul(size)
	ls := left.Mul(size)
	corners := []mgl64.Vec3{
		base.Add(rs).Add(ls),
		base.Add(rs).Sub(ls),
		base.Sub(rs).Sub(ls),
		base.Sub(rs).Add(ls),
	}
	return FromUnorderedPoints(plane, right, left, corners, "")
}

// Classify tallies the polygon's vertices against plane.
func (poly *Polygon) Classify(plane geom.Plane) geom.PlaneSide {
	return geom.Classify(poly.Points, plane, geom.SideEpsilon)
}

// Split partitions the polygon by plane, walking vertices cyclically and
// emitting each to back/front/both per side, inserting ray/plane
// intersections at sign changes. The walk preserves CCW order in both
// outputs, so no resorting is needed.
func (poly *Polygon) Split(plane geom.Plane) (back, front *Polygon) {
	n := len(poly.Points)
	var backPts, frontPts []mgl64.Vec3

	for i := 0; i < n; i++ {
		vi := poly.Points[i]
		vNext := poly.Points[(i+1)%n]
		sideI := geom.PointSide(vi, plane, geom.SplitEpsilon)
		sideNext := geom.PointSide(vNext, plane, geom.SplitEpsilon)

		switch sideI {
		case geom.Back:
			backPts = append(backPts, vi)
		case geom.Front:
			frontPts = append(frontPts, vi)
		default: // Coplanar
			backPts = append(backPts, vi)
			frontPts = append(frontPts, vi)
		}

		crosses := (sideI == geom.Front && sideNext == geom.Back) ||
			(sideI == geom.Back && sideNext == geom.Front)
		if !crosses {
			continue
		}

		dir := vNext.Sub(vi)
		if dir.Len() < 1e-12 {
			continue
		}
		if hit, ok := geom.RayPlane(vi, dir.Normalize(), plane); ok {
			backPts = append(backPts, hit)
			frontPts = append(frontPts, hit)
		}
	}

	if len(backPts) < 3 || len(frontPts) < 3 {
		return nil, nil
	}

	return &Polygon{Plane: poly.Plane, Points: backPts, Texture: poly.Texture},
		&Polygon{Plane: poly.Plane, Points: frontPts, Texture: poly.Texture}
}

// Triangle is a fan triangle referencing three of the polygon's points.
type Triangle [3]mgl64.Vec3

// Triangulate fans the polygon from Points[0].
func (poly *Polygon) Triangulate() []Triangle {
	if len(poly.Points) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(poly.Points)-2)
	for i := 1; i < len(poly.Points)-1; i++ {
		tris = append(tris, Triangle{poly.Points[0], poly.Points[i], poly.Points[i+1]})
	}
	return tris
}
