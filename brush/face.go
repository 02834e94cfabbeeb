package brush

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/geom"
)

// DegenerateGeometryError reports a face that cannot be built or split
// cleanly: too few candidate vertices, an adjacency walk that does not
// close, edge carrier planes that do not meet the splitter at a point, or
// a split leaving fewer than 3 vertices on one side. Build reports it as a
// diagnostic and skips the face; Clip keeps the face unsplit.
type DegenerateGeometryError struct {
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry: %s", e.Reason)
}

// Face is a planar convex polygon on a MapPlane, an ordered cycle of
// FaceVertex with a parallel cycle of FaceEdge. Edge i joins
// Vertices[i] to Vertices[(i+1)%k].
type Face struct {
	Surface  *MapPlane
	Vertices []FaceVertex
	Edges    []FaceEdge
}

// Points resolves every vertex of f to its 3D position, for classification
// against another plane.
func (f *Face) Points() []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, len(f.Vertices))
	for i, v := range f.Vertices {
		p, ok := v.Point()
		if !ok {
			// Construction guarantees every retained FaceVertex resolves;
			// a failure here means the vertex should never have survived
			// buildFace, which is a programming error, not user input.
			panic("brush: unresolved FaceVertex in Face.Points")
		}
		pts[i] = p
	}
	return pts
}

// buildFace orders candidates (all sharing surface in their identity
// triple) around surface's boundary by adjacency walk, then enforces
// CCW-from-front winding.
func buildFace(surface *MapPlane, candidates []FaceVertex) (*Face, error) {
	if len(candidates) < 3 {
		return nil, &DegenerateGeometryError{Reason: fmt.Sprintf("plane has only %d candidate vertices", len(candidates))}
	}

	used := make([]bool, len(candidates))
	ordered := make([]FaceVertex, 0, len(candidates))
	ordered = append(ordered, candidates[0])
	used[0] = true

	for len(ordered) < len(candidates) {
		cur := ordered[len(ordered)-1]
		found := -1
		for i, cand := range candidates {
			if used[i] {
				continue
			}
			if len(sharedPlanes(cur, cand)) == 2 {
				found = i
				break
			}
		}
		if found < 0 {
			break // cycle closed (or can't be extended further)
		}
		ordered = append(ordered, candidates[found])
		used[found] = true
	}

	if len(ordered) < 3 {
		return nil, &DegenerateGeometryError{Reason: "adjacency walk failed to close a face cycle"}
	}

	if orientationNeedsFlip(ordered, surface) {
		reverse(ordered)
	}

	return &Face{Surface: surface, Vertices: ordered, Edges: buildEdges(ordered)}, nil
}

func orientationNeedsFlip(ordered []FaceVertex, surface *MapPlane) bool {
	v0, ok0 := ordered[0].Point()
	v1, ok1 := ordered[1].Point()
	v2, ok2 := ordered[2].Point()
	if !ok0 || !ok1 || !ok2 {
		return false
	}
	// (v0-v1)×(v2-v1) points against the normal for a counter-clockwise
	// cycle, so a positive value means the cycle runs clockwise.
	signed := v0.Sub(v1).Cross(v2.Sub(v1)).Dot(surface.Normal)
	return signed > 0
}

func reverse(vs []FaceVertex) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

func buildEdges(ordered []FaceVertex) []FaceEdge {
	n := len(ordered)
	edges := make([]FaceEdge, n)
	for i := 0; i < n; i++ {
		a, b := ordered[i], ordered[(i+1)%n]
		common := sharedPlanes(a, b)
		var pair [2]*MapPlane
		copy(pair[:], common)
		edges[i] = FaceEdge{A: a, B: b, Common: pair}
	}
	return edges
}

// Split is edge-based, unlike Polygon.Split: for each edge (a,b) with
// common carrier planes {Q,R}, a side change synthesizes a new FaceVertex
// {Q,R,splitter}. Coplanar endpoints go to both halves, matching
// Polygon.Split (see DESIGN.md).
func (f *Face) Split(splitter *MapPlane) (back, front *Face, err error) {
	n := len(f.Vertices)
	var backVerts, frontVerts []FaceVertex

	for i := 0; i < n; i++ {
		a := f.Vertices[i]
		edge := f.Edges[i]
		b := edge.B

		pa, _ := a.Point()
		pb, _ := b.Point()
		sideA := geom.PointSide(pa, splitter.Plane, geom.SplitEpsilon)
		sideB := geom.PointSide(pb, splitter.Plane, geom.SplitEpsilon)

		switch sideA {
		case geom.Back:
			backVerts = append(backVerts, a)
		case geom.Front:
			frontVerts = append(frontVerts, a)
		default:
			backVerts = append(backVerts, a)
			frontVerts = append(frontVerts, a)
		}

		crosses := (sideA == geom.Front && sideB == geom.Back) ||
			(sideA == geom.Back && sideB == geom.Front)
		if !crosses {
			continue
		}

		newVertex := NewFaceVertex(edge.Common[0], edge.Common[1], splitter)
		if _, ok := newVertex.Point(); !ok {
			return nil, nil, &DegenerateGeometryError{Reason: "edge carrier planes colinear with splitter"}
		}
		backVerts = append(backVerts, newVertex)
		frontVerts = append(frontVerts, newVertex)
	}

	if len(backVerts) < 3 || len(frontVerts) < 3 {
		return nil, nil, &DegenerateGeometryError{Reason: "face split produced fewer than 3 vertices on one side"}
	}

	backFace, err := buildFace(f.Surface, backVerts)
	if err != nil {
		return nil, nil, err
	}
	frontFace, err := buildFace(f.Surface, frontVerts)
	if err != nil {
		return nil, nil, err
	}
	return backFace, frontFace, nil
}
