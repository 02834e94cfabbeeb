package brush

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Diagnostics is the minimal sink brush construction reports non-fatal
// degenerate-geometry events to: a degenerate 3-plane intersection during
// candidate-vertex generation is logged and the offending vertex is
// simply omitted, rather than aborting the whole pipeline. The
// diagnostics package implements this interface; it is kept
// as an interface here so brush doesn't import diagnostics directly and
// can be exercised with a nil sink in tests.
type Diagnostics interface {
	Degenerate(format string, args ...any)
}

type nopDiagnostics struct{}

func (nopDiagnostics) Degenerate(string, ...any) {}

// Brush is a convex polyhedron defined by its supporting MapPlanes, the
// Faces extracted from them, and an axis-aligned bounding box.
type Brush struct {
	Planes  []*MapPlane
	Faces   []*Face
	BBoxMin mgl64.Vec3
	BBoxMax mgl64.Vec3
}

// Build constructs a Brush from its supporting planes: for every ordered
// triple of planes, intersect them into a candidate FaceVertex; order the
// candidates touching each plane into a Face by adjacency walk. diag may
// be nil.
func Build(planes []*MapPlane, diag Diagnostics) (*Brush, error) {
	if diag == nil {
		diag = nopDiagnostics{}
	}
	if len(planes) < 4 {
		return nil, fmt.Errorf("brush: need at least 4 planes to bound a solid, got %d", len(planes))
	}

	var allVerts []FaceVertex
	bboxMin := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	bboxMax := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}

	n := len(planes)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				pt, ok := intersect3Planes(planes[i], planes[j], planes[k])
				if !ok {
					diag.Degenerate("brush: planes %d,%d,%d do not intersect at a point", i, j, k)
					continue
				}
				allVerts = append(allVerts, NewFaceVertex(planes[i], planes[j], planes[k]))
				bboxMin = minVec(bboxMin, pt)
				bboxMax = maxVec(bboxMax, pt)
			}
		}
	}

	if len(allVerts) == 0 {
		return nil, fmt.Errorf("brush: no plane triple produced a valid vertex")
	}

	faces := make([]*Face, 0, n)
	for _, p := range planes {
		var candidates []FaceVertex
		for _, v := range allVerts {
			if v.hasPlane(p) {
				candidates = append(candidates, v)
			}
		}
		if len(candidates) < 3 {
			diag.Degenerate("brush: plane %s has only %d candidate vertices, skipping face", p.TexName, len(candidates))
			continue
		}
		face, err := buildFace(p, candidates)
		if err != nil {
			diag.Degenerate("brush: %v", err)
			continue
		}
		faces = append(faces, face)
	}

	if len(faces) == 0 {
		return nil, fmt.Errorf("brush: no face could be constructed from %d planes", n)
	}

	return &Brush{Planes: planes, Faces: faces, BBoxMin: bboxMin, BBoxMax: bboxMax}, nil
}

func intersect3Planes(a, b, c *MapPlane) (mgl64.Vec3, bool) {
	fv := NewFaceVertex(a, b, c)
	return fv.Point()
}

func minVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()), math.Min(a.Z(), b.Z())}
}

func maxVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()), math.Max(a.Z(), b.Z())}
}
