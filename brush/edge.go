package brush

// FaceEdge is an ordered pair of FaceVertex plus the set of MapPlanes
// common to both endpoints. The common set has exactly two
// planes in a well-formed polyhedron: the face's own supporting plane and
// the adjacent face sharing this edge.
type FaceEdge struct {
	A, B   FaceVertex
	Common [2]*MapPlane
}
