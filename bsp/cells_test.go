package bsp

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/geom"
)

func TestGenerateCellsSingleCube(t *testing.T) {
	polys := cubePolygons(0.5)
	root := mustBuildTree(t, polys)

	cells, err := GenerateCells(polys, root)
	if err != nil {
		t.Fatalf("GenerateCells: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("got %d cells, want 1", len(cells))
	}

	cell := cells[0]
	if len(cell) != 6 {
		t.Errorf("cell has %d faces, want 6", len(cell))
	}

	// The cell must bound exactly the input cube.
	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, f := range cell {
		for _, p := range f.Points {
			for i := 0; i < 3; i++ {
				lo[i] = math.Min(lo[i], p[i])
				hi[i] = math.Max(hi[i], p[i])
			}
		}
	}
	for i := 0; i < 3; i++ {
		if math.Abs(lo[i]+0.5) > geom.SideEpsilon || math.Abs(hi[i]-0.5) > geom.SideEpsilon {
			t.Errorf("cell bounds axis %d = [%v, %v], want [-0.5, 0.5]", i, lo[i], hi[i])
		}
	}
}

func TestGenerateCellsWritesLeafFiller(t *testing.T) {
	polys := cubePolygons(0.5)
	root := mustBuildTree(t, polys)

	cells, err := GenerateCells(polys, root)
	if err != nil {
		t.Fatalf("GenerateCells: %v", err)
	}

	// Walk to the solid leaf and check its filler is the recorded cell.
	node := root
	for !node.IsLeaf() {
		node = node.Front
	}
	if !node.Leaf.Solid() {
		t.Fatal("expected front chain to end in the solid leaf")
	}
	if len(node.Leaf.Filler) != len(cells[0]) {
		t.Errorf("leaf filler has %d faces, cell has %d", len(node.Leaf.Filler), len(cells[0]))
	}
}

func TestInitialBoundsFaceInward(t *testing.T) {
	for _, f := range InitialBounds() {
		if len(f.Points) != 4 {
			t.Fatalf("bound face has %d points, want 4", len(f.Points))
		}
		// The origin must be on the front side of every bound face.
		if f.Plane.Side(mgl64.Vec3{}) <= 0 {
			t.Errorf("bound face plane %v does not face the origin", f.Plane)
		}
		// Every point lies on its plane.
		for _, p := range f.Points {
			if math.Abs(f.Plane.Side(p)) > geom.SideEpsilon {
				t.Errorf("bound face point %v off its plane", p)
			}
		}
	}
}
