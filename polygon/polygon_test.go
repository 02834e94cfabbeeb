package polygon

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/geom"
)

func unitSquareZ0() *Polygon {
	plane := geom.Plane{Normal: mgl64.Vec3{0, 0, 1}, D: 0}
	points := []mgl64.Vec3{
		{0.5, 0.5, 0},
		{-0.5, 0.5, 0},
		{-0.5, -0.5, 0},
		{0.5, -0.5, 0},
	}
	return FromOrderedPoints(plane, points, "")
}

func TestPolygonOnPlaneInvariant(t *testing.T) {
	poly := unitSquareZ0()
	for _, p := range poly.Points {
		d := math.Abs(poly.Plane.Side(p))
		if d >= geom.SideEpsilon {
			t.Errorf("point %v off plane by %v", p, d)
		}
	}
}

func TestPolygonClassifySelf(t *testing.T) {
	poly := unitSquareZ0()
	if got := poly.Classify(poly.Plane); got != geom.Coplanar {
		t.Errorf("Classify(self) = %v, want Coplanar", got)
	}
}

func TestSplitThroughCenter(t *testing.T) {
	poly := unitSquareZ0()
	splitPlane := geom.Plane{Normal: mgl64.Vec3{1, 0, 0}, D: 0} // x = 0

	back, front := poly.Split(splitPlane)
	if back == nil || front == nil {
		t.Fatal("expected both halves")
	}
	if len(back.Points) != 4 || len(front.Points) != 4 {
		t.Fatalf("back=%d front=%d points, want 4/4", len(back.Points), len(front.Points))
	}

	for _, p := range back.Points {
		if math.Abs(p.Z()) > 1e-9 {
			t.Errorf("back point %v not on z=0", p)
		}
	}
	for _, p := range front.Points {
		if math.Abs(p.Z()) > 1e-9 {
			t.Errorf("front point %v not on z=0", p)
		}
	}

	if s := geom.Classify(back.Points, splitPlane, geom.SplitEpsilon); s != geom.Back && s != geom.CoplanarBack {
		t.Errorf("back classification = %v", s)
	}
	if s := geom.Classify(front.Points, splitPlane, geom.SplitEpsilon); s != geom.Front && s != geom.CoplanarFront {
		t.Errorf("front classification = %v", s)
	}
}

func TestSplitNoCrossingReturnsNil(t *testing.T) {
	poly := unitSquareZ0()
	// Polygon entirely behind the plane: x = 10 puts everything on the back side.
	splitPlane := geom.Plane{Normal: mgl64.Vec3{1, 0, 0}, D: -10}

	back, front := poly.Split(splitPlane)
	if back != nil || front != nil {
		t.Fatalf("expected no split, got back=%v front=%v", back, front)
	}
}

func TestTriangulate(t *testing.T) {
	poly := unitSquareZ0()
	tris := poly.Triangulate()
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	for _, tri := range tris {
		if tri[0] != poly.Points[0] {
			t.Errorf("triangle fan should originate at Points[0]")
		}
	}
}

func TestFromUnorderedPointsSortsConvex(t *testing.T) {
	plane := geom.Plane{Normal: mgl64.Vec3{0, 0, 1}, D: 0}
	scrambled := []mgl64.Vec3{
		{0.5, -0.5, 0},
		{-0.5, 0.5, 0},
		{0.5, 0.5, 0},
		{-0.5, -0.5, 0},
	}
	poly := FromUnorderedPoints(plane, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}, scrambled, "")

	if len(poly.Points) != 4 {
		t.Fatalf("got %d points, want 4", len(poly.Points))
	}
	// Angle sort must produce a consistent winding: every consecutive
	// edge pair turns the same way around the normal.
	n := len(poly.Points)
	for i := 0; i < n; i++ {
		a := poly.Points[i]
		b := poly.Points[(i+1)%n]
		c := poly.Points[(i+2)%n]
		turn := b.Sub(a).Cross(c.Sub(b)).Dot(poly.Plane.Normal)
		if turn <= 0 {
			t.Errorf("points %d..%d do not turn counter-clockwise (turn=%v)", i, i+2, turn)
		}
	}
}

func TestQuadLiesOnPlane(t *testing.T) {
	plane := geom.Plane{Normal: mgl64.Vec3{0, 0, 1}, D: -5} // z = 5
	quad := Quad(plane, 10)
	if len(quad.Points) != 4 {
		t.Fatalf("got %d points, want 4", len(quad.Points))
	}
	for _, p := range quad.Points {
		if math.Abs(p.Z()-5) > 1e-9 {
			t.Errorf("quad point %v not on z=5", p)
		}
	}
}
