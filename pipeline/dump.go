package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/korrigangames/bspforge/bsp"
)

// jsonPlane is the wire form of a splitting plane.
type jsonPlane struct {
	N [3]float64 `json:"n"`
	D float64    `json:"d"`
}

// jsonNode serializes one tree node: internal nodes carry plane/back/
// front, leaves carry solid/faces.
type jsonNode struct {
	Plane *jsonPlane `json:"plane,omitempty"`
	Back  *jsonNode  `json:"back,omitempty"`
	Front *jsonNode  `json:"front,omitempty"`

	Solid *bool          `json:"solid,omitempty"`
	Faces [][][3]float64 `json:"faces,omitempty"`
}

func toJSONNode(n *bsp.Node) *jsonNode {
	if n.IsLeaf() {
		solid := n.Leaf.Solid()
		out := &jsonNode{Solid: &solid}
		for _, p := range n.Leaf.Polygons {
			face := make([][3]float64, len(p.Points))
			for i, pt := range p.Points {
				face[i] = [3]float64{pt.X(), pt.Y(), pt.Z()}
			}
			out.Faces = append(out.Faces, face)
		}
		return out
	}
	return &jsonNode{
		Plane: &jsonPlane{
			N: [3]float64{n.Plane.Normal.X(), n.Plane.Normal.Y(), n.Plane.Normal.Z()},
			D: n.Plane.D,
		},
		Back:  toJSONNode(n.Back),
		Front: toJSONNode(n.Front),
	}
}

// DumpJSON writes the tree structure to w for debugging.
func DumpJSON(root *bsp.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSONNode(root)); err != nil {
		return fmt.Errorf("encoding bsp tree: %w", err)
	}
	return nil
}

// WriteDebugTree dumps the tree to path, typically ./bsptree.json.
func WriteDebugTree(root *bsp.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := DumpJSON(root, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
