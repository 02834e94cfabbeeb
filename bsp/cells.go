package bsp

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/geom"
	"github.com/korrigangames/bspforge/polygon"
)

// BoundsMax is the half-size of the world bounding cube cell enumeration
// starts from, and the half-size of the cap quads that close a cell open
// side after a split.
const BoundsMax = 1024

// InitialBounds returns the six faces of the axis-aligned world cube,
// each facing inward so a cell face's front side is always the cell
// interior.
func InitialBounds() []*polygon.Polygon {
	axes := []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	bounds := make([]*polygon.Polygon, len(axes))
	for i, n := range axes {
		bounds[i] = polygon.Quad(geom.Plane{Normal: n, D: BoundsMax}, BoundsMax)
	}
	return bounds
}

// GenerateCells visits every solid leaf of the tree and computes its
// convex cell volume: the world cube intersected with the half-spaces
// chosen along the root-to-leaf path. Each input polygon is used as a
// probe to descend to the solid leaf that consumed it; all boundary
// polygons of a discovered leaf are then retired from the worklist so
// every leaf is visited exactly once. Writes each leaf's Filler and
// returns one face list per cell.
func GenerateCells(polygons []*polygon.Polygon, root *Node) ([][]*polygon.Polygon, error) {
	worklist := append([]*polygon.Polygon(nil), polygons...)
	var cells [][]*polygon.Polygon

	for len(worklist) > 0 {
		target := worklist[0]
		deleted := make(map[*polygon.Polygon]bool)
		if err := splitCellUntil(target, InitialBounds(), &cells, deleted, root); err != nil {
			return nil, err
		}

		kept := worklist[:0]
		for _, p := range worklist {
			if !deleted[p] {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(worklist) {
			return nil, &InvariantViolationError{Reason: "cell enumeration probe polygon reached no solid leaf"}
		}
		worklist = kept
	}

	if err := checkAllLeavesFilled(root); err != nil {
		return nil, err
	}
	return cells, nil
}

// checkAllLeavesFilled verifies that the probe descents reached every
// solid leaf, which the single-child descent does not guarantee by
// construction.
func checkAllLeavesFilled(node *Node) error {
	if node.IsLeaf() {
		if node.Leaf.Solid() && node.Leaf.Filler == nil {
			return &InvariantViolationError{Reason: "solid leaf missed by cell enumeration"}
		}
		return nil
	}
	if err := checkAllLeavesFilled(node.Back); err != nil {
		return err
	}
	return checkAllLeavesFilled(node.Front)
}

// splitCellUntil descends toward the leaf that consumed target, carrying
// bounds, the current convex cell as a face list, and splitting it at
// every internal node passed through. At a solid leaf the cell is
// recorded; an empty leaf discards it.
func splitCellUntil(target *polygon.Polygon, bounds []*polygon.Polygon, cells *[][]*polygon.Polygon, deleted map[*polygon.Polygon]bool, node *Node) error {
	if node.IsLeaf() {
		if !node.Leaf.Solid() {
			return nil
		}
		if node.Leaf.Filler != nil {
			return &InvariantViolationError{Reason: "solid leaf visited twice by cell enumeration"}
		}
		node.Leaf.Filler = bounds
		*cells = append(*cells, bounds)
		for _, s := range node.Leaf.sources {
			deleted[s] = true
		}
		return nil
	}

	var frontCell, backCell []*polygon.Polygon
	anySplit := false
	for _, b := range bounds {
		switch b.Classify(node.Plane) {
		case geom.Front, geom.CoplanarFront:
			frontCell = append(frontCell, b)
		case geom.Back, geom.CoplanarBack:
			backCell = append(backCell, b)
		case geom.Coplanar:
			frontCell = append(frontCell, b)
			backCell = append(backCell, b)
		default: // Spanning
			bk, fr := b.Split(node.Plane)
			if bk == nil || fr == nil {
				// The face only grazes the plane; keep it whole on both
				// sides rather than dropping a cell wall.
				frontCell = append(frontCell, b)
				backCell = append(backCell, b)
				continue
			}
			backCell = append(backCell, bk)
			frontCell = append(frontCell, fr)
			anySplit = true
		}
	}
	if anySplit {
		frontCell = fixConvexCell(frontCell, node.Plane)
		backCell = fixConvexCell(backCell, geom.Plane{Normal: node.Plane.Normal.Mul(-1), D: -node.Plane.D})
	}

	switch target.Classify(node.Plane) {
	case geom.Front, geom.CoplanarFront:
		return splitCellUntil(target, frontCell, cells, deleted, node.Front)
	case geom.Back, geom.CoplanarBack:
		return splitCellUntil(target, backCell, cells, deleted, node.Back)
	case geom.Coplanar:
		// Route by normal agreement, mirroring the build's partition so
		// the probe follows its own fragment.
		if target.Plane.Normal.Dot(node.Plane.Normal) > 0 {
			return splitCellUntil(target, frontCell, cells, deleted, node.Front)
		}
		return splitCellUntil(target, backCell, cells, deleted, node.Back)
	default: // Spanning
		bk, fr := target.Split(node.Plane)
		if bk == nil || fr == nil {
			return &InvariantViolationError{Reason: "cell enumeration probe polygon failed to split cleanly"}
		}
		if err := splitCellUntil(bk, backCell, cells, deleted, node.Back); err != nil {
			return err
		}
		return splitCellUntil(fr, frontCell, cells, deleted, node.Front)
	}
}

// fixConvexCell closes the open side a split left in a cell: a fresh
// plane-sized quad on capPlane is clipped against every existing cell
// face's supporting plane (front piece kept when spanning) and appended.
func fixConvexCell(cell []*polygon.Polygon, capPlane geom.Plane) []*polygon.Polygon {
	capPoly := polygon.Quad(capPlane, BoundsMax)
	for _, f := range cell {
		if capPoly.Classify(f.Plane) != geom.Spanning {
			continue
		}
		_, front := capPoly.Split(f.Plane)
		if front == nil {
			return cell
		}
		capPoly = front
	}
	return append(cell, capPoly)
}
