package brush

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/geom"
)

// unitCubePlanes returns the 6 half-space planes bounding [-0.5,0.5]^3,
// each carrying a trivial tangent frame and a distinct texture name.
func unitCubePlanes() []*MapPlane {
	mk := func(n mgl64.Vec3, d float64, name string) *MapPlane {
		return &MapPlane{Plane: geom.Plane{Normal: n, D: d}, TexName: name}
	}
	// Plane convention (geom.Plane): front (outside) is n·x+d > 0, so a
	// face at distance half from the origin along its outward normal has
	// d = -half regardless of which axis/sign the normal points along.
	return []*MapPlane{
		mk(mgl64.Vec3{1, 0, 0}, -0.5, "+x"),
		mk(mgl64.Vec3{-1, 0, 0}, -0.5, "-x"),
		mk(mgl64.Vec3{0, 1, 0}, -0.5, "+y"),
		mk(mgl64.Vec3{0, -1, 0}, -0.5, "-y"),
		mk(mgl64.Vec3{0, 0, 1}, -0.5, "+z"),
		mk(mgl64.Vec3{0, 0, -1}, -0.5, "-z"),
	}
}

func TestBuildUnitCube(t *testing.T) {
	b, err := Build(unitCubePlanes(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(b.Faces) != 6 {
		t.Fatalf("got %d faces, want 6", len(b.Faces))
	}

	seen := make(map[[3]float64]bool)
	for _, f := range b.Faces {
		if len(f.Vertices) != 4 {
			t.Errorf("face %s has %d vertices, want 4", f.Surface.TexName, len(f.Vertices))
		}
		for _, p := range f.Points() {
			seen[[3]float64{p.X(), p.Y(), p.Z()}] = true
		}
	}
	if len(seen) != 8 {
		t.Errorf("got %d unique vertices, want 8", len(seen))
	}

	for _, f := range b.Faces {
		for i, e := range f.Edges {
			if e.Common[0] == nil || e.Common[1] == nil || e.Common[0] == e.Common[1] {
				t.Errorf("face %s edge %d does not carry two distinct planes", f.Surface.TexName, i)
			}
		}
	}

	want := mgl64.Vec3{0.5, 0.5, 0.5}
	if b.BBoxMax.Sub(want).Len() > 1e-9 {
		t.Errorf("BBoxMax = %v, want %v", b.BBoxMax, want)
	}
	if b.BBoxMin.Sub(want.Mul(-1)).Len() > 1e-9 {
		t.Errorf("BBoxMin = %v, want %v", b.BBoxMin, want.Mul(-1))
	}
}

func TestBuildSkipsDegenerateTriple(t *testing.T) {
	planes := unitCubePlanes()
	// Add a plane parallel to +x so every triple involving both is degenerate
	// (no unique 3-plane intersection), but the cube's own 6 faces still
	// resolve fine — Build must not error out overall.
	planes = append(planes, &MapPlane{Plane: geom.Plane{Normal: mgl64.Vec3{1, 0, 0}, D: 10}, TexName: "parallel"})

	var degenerateCount int
	diag := diagFunc(func(format string, args ...any) { degenerateCount++ })

	b, err := Build(planes, diag)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if degenerateCount == 0 {
		t.Error("expected at least one degenerate-triple diagnostic")
	}
	if len(b.Faces) < 6 {
		t.Errorf("got %d faces, want at least 6", len(b.Faces))
	}
}

func TestBuildRequiresFourPlanes(t *testing.T) {
	_, err := Build(unitCubePlanes()[:3], nil)
	if err == nil {
		t.Fatal("expected error for fewer than 4 planes")
	}
}

type diagFunc func(format string, args ...any)

func (f diagFunc) Degenerate(format string, args ...any) { f(format, args...) }
