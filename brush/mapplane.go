// Package brush implements polyhedron construction from half-space planes
// (MapPlane/FaceVertex/FaceEdge/Face identity) and the boolean union of
// overlapping brushes via face-clipping.
package brush

import (
	"sort"
	"unsafe"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/geom"
)

// MapPlane augments a Plane with the tangent/bitangent 3-vectors carried
// from the map file for downstream texture mapping. Two
// MapPlanes with an identical underlying Plane but different tangent
// frames are distinct identities for face/vertex tracking — identity here
// is by pointer, not by value, so every MapPlane must be constructed once
// and referenced thereafter (brush.Build takes ownership of a []*MapPlane
// slice and never copies its elements).
type MapPlane struct {
	geom.Plane
	Tangent   mgl64.Vec3
	Bitangent mgl64.Vec3
	TexName   string
}

// FaceVertex is the identity of a polyhedron vertex as an unordered triple
// of MapPlanes whose intersection point is that vertex. The
// point itself is derived lazily by solving the 3-plane system rather than
// stored, so FaceVertex stays a plain comparable value usable as a map key.
type FaceVertex struct {
	Planes [3]*MapPlane
}

// NewFaceVertex canonicalizes three MapPlanes into a FaceVertex whose
// identity doesn't depend on argument order, so the same triple always
// compares equal regardless of which permutation constructed it.
func NewFaceVertex(a, b, c *MapPlane) FaceVertex {
	planes := [3]*MapPlane{a, b, c}
	sort.Slice(planes[:], func(i, j int) bool {
		return uintptr(unsafe.Pointer(planes[i])) < uintptr(unsafe.Pointer(planes[j]))
	})
	return FaceVertex{Planes: planes}
}

// Point solves the 3-plane system for this vertex's position. ok is false
// if the three planes are degenerate.
func (v FaceVertex) Point() (mgl64.Vec3, bool) {
	return geom.Intersect3(v.Planes[0].Plane, v.Planes[1].Plane, v.Planes[2].Plane)
}

// hasPlane reports whether p is one of v's three identity planes.
func (v FaceVertex) hasPlane(p *MapPlane) bool {
	return v.Planes[0] == p || v.Planes[1] == p || v.Planes[2] == p
}

// sharedPlanes returns the MapPlanes common to both a and b's identity
// triples, used to test FaceEdge adjacency.
func sharedPlanes(a, b FaceVertex) []*MapPlane {
	var shared []*MapPlane
	for _, p := range a.Planes {
		if b.hasPlane(p) {
			shared = append(shared, p)
		}
	}
	return shared
}
