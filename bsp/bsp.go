// Package bsp builds a binary space partitioning tree from the polygon
// boundary of a unioned solid, labels its leaves solid or empty, and
// answers point-location and segment-trace queries against it. Polygons
// handed to BuildTree must face the solid interior (front side of each
// polygon's plane is inside the material); pipeline.Build flips the
// brush faces' outward planes accordingly before calling in.
package bsp

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/geom"
	"github.com/korrigangames/bspforge/polygon"
)

// InvariantViolationError reports a state the BSP construction argument
// says is unreachable, e.g. a recursion step that finds no unused pivot
// or a solid leaf never visited by cell enumeration.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("bsp invariant violated: %s", e.Reason)
}

// Leaf is the terminal variant of a Node. Polygons is the immutable set
// of boundary polygons consumed on this side; an empty set labels the
// leaf open/empty, a non-empty set labels it solid. Filler is the only
// mutable field in the whole tree: GenerateCells writes the convex cell
// volume bounding this leaf into it exactly once.
type Leaf struct {
	Polygons []*polygon.Polygon
	Filler   []*polygon.Polygon

	// sources are the original input polygons the fragments in Polygons
	// descend from, so GenerateCells can retire consumed worklist
	// entries by identity even after splitting.
	sources []*polygon.Polygon
}

// Solid reports whether this leaf is interior material.
func (l *Leaf) Solid() bool {
	return len(l.Polygons) > 0
}

// Node is one tree node, a tagged variant: Leaf != nil makes it a leaf
// and Plane/Back/Front are meaningless; otherwise it is an internal node
// splitting space by Plane with a child on each side.
type Node struct {
	Plane geom.Plane
	Back  *Node
	Front *Node
	Leaf  *Leaf
}

// IsLeaf reports which variant this node is.
func (n *Node) IsLeaf() bool {
	return n.Leaf != nil
}

// record is a worklist entry during the build: the polygon, whether it
// has already served as a pivot, and the original input polygon it is a
// fragment of.
type record struct {
	poly   *polygon.Polygon
	source *polygon.Polygon
	used   bool
}

// BuildTree recursively partitions polygons along their own supporting
// planes. The pivot is always the first unused polygon in list order, so
// the same input list always produces the same tree.
func BuildTree(polygons []*polygon.Polygon) (*Node, error) {
	if len(polygons) == 0 {
		return nil, fmt.Errorf("bsp: no polygons to partition")
	}
	records := make([]*record, len(polygons))
	for i, p := range polygons {
		records[i] = &record{poly: p, source: p}
	}
	return build(records)
}

func build(items []*record) (*Node, error) {
	var pivot *record
	for _, r := range items {
		if !r.used {
			pivot = r
			break
		}
	}
	if pivot == nil {
		return nil, &InvariantViolationError{Reason: "recursion reached a polygon list with no unused pivot"}
	}
	pivot.used = true
	plane := pivot.poly.Plane

	var front, back []*record
	for _, r := range items {
		switch r.poly.Classify(plane) {
		case geom.Front, geom.CoplanarFront:
			front = append(front, r)
		case geom.Back, geom.CoplanarBack:
			back = append(back, r)
		case geom.Coplanar:
			if r.poly.Plane.Normal.Dot(plane.Normal) > 0 {
				front = append(front, r)
			} else {
				back = append(back, r)
			}
		default: // Spanning
			b, f := r.poly.Split(plane)
			if b == nil || f == nil {
				return nil, fmt.Errorf("bsp: degenerate split of polygon against pivot plane %v", plane)
			}
			back = append(back, &record{poly: b, source: r.source, used: r.used})
			front = append(front, &record{poly: f, source: r.source, used: r.used})
		}
	}

	node := &Node{Plane: plane}

	if allUsed(back) {
		node.Back = &Node{Leaf: &Leaf{}}
	} else {
		child, err := build(back)
		if err != nil {
			return nil, err
		}
		node.Back = child
	}

	if allUsed(front) {
		// Every polygon on the front side has served as a pivot: this is
		// the terminal face set bounding a solid region.
		leaf := &Leaf{
			Polygons: make([]*polygon.Polygon, len(front)),
			sources:  make([]*polygon.Polygon, len(front)),
		}
		for i, r := range front {
			leaf.Polygons[i] = r.poly
			leaf.sources[i] = r.source
		}
		node.Front = &Node{Leaf: leaf}
	} else {
		child, err := build(front)
		if err != nil {
			return nil, err
		}
		node.Front = child
	}

	return node, nil
}

func allUsed(items []*record) bool {
	for _, r := range items {
		if !r.used {
			return false
		}
	}
	return true
}

// Locate walks the tree by plane side and reports whether p lands in a
// solid leaf. A point exactly on a splitting plane routes to the front
// child, so the boundary surface itself counts as solid.
func Locate(root *Node, p mgl64.Vec3) bool {
	node := root
	for !node.IsLeaf() {
		if node.Plane.Side(p) < 0 {
			node = node.Back
		} else {
			node = node.Front
		}
	}
	return node.Leaf.Solid()
}

const traceEpsilon = 1e-6

// Trace walks the segment from->to through the tree near side first and
// returns the entry point of the first solid leaf it reaches.
func Trace(root *Node, from, to mgl64.Vec3) (hit bool, point mgl64.Vec3) {
	return traceNode(root, from, to, 0, 1)
}

func traceNode(node *Node, from, to mgl64.Vec3, t0, t1 float64) (bool, mgl64.Vec3) {
	p0 := from.Add(to.Sub(from).Mul(t0))
	p1 := from.Add(to.Sub(from).Mul(t1))

	if node.IsLeaf() {
		if node.Leaf.Solid() {
			return true, p0
		}
		return false, mgl64.Vec3{}
	}

	d0 := node.Plane.Side(p0)
	d1 := node.Plane.Side(p1)

	switch {
	case d0 > traceEpsilon && d1 > traceEpsilon:
		return traceNode(node.Front, from, to, t0, t1)
	case d0 <= traceEpsilon && d1 <= traceEpsilon:
		return traceNode(node.Back, from, to, t0, t1)
	}

	// Segment spans the plane: visit the side containing the start
	// first, then the far side from the crossing onward.
	t := -d0 / (d1 - d0)
	tMid := t0 + t*(t1-t0)

	near, far := node.Back, node.Front
	if d0 > 0 {
		near, far = node.Front, node.Back
	}

	if hit, p := traceNode(near, from, to, t0, tMid); hit {
		return true, p
	}
	return traceNode(far, from, to, tMid, t1)
}
