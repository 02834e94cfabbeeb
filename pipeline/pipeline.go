// Package pipeline runs the whole compilation: map text to brushes,
// brushes to a unioned boundary, boundary to a BSP tree with enumerated
// convex cells, and the triangulated colored vertex buffer a renderer
// uploads.
package pipeline

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/korrigangames/bspforge/brush"
	"github.com/korrigangames/bspforge/bsp"
	"github.com/korrigangames/bspforge/diagnostics"
	"github.com/korrigangames/bspforge/geom"
	"github.com/korrigangames/bspforge/mapfile"
	"github.com/korrigangames/bspforge/polygon"
	"github.com/korrigangames/bspforge/scene"
	"github.com/korrigangames/bspforge/texture"
)

// Vertex is one triangle-buffer entry: a position and its polygon color.
type Vertex struct {
	Position mgl64.Vec3
	Color    color.RGBA
}

// Options tunes a Build run. Zero value is usable: seed 0, a fresh
// palette, and a fresh diagnostics collector.
type Options struct {
	Seed    uint64
	Palette *texture.Palette
	Diag    *diagnostics.Collector
}

// Result is everything the collaborating front ends consume.
type Result struct {
	Vertices []Vertex
	Root     *bsp.Node
	Cells    [][]*polygon.Polygon
	Polygons []*polygon.Polygon
	Diag     *diagnostics.Collector
}

// Build compiles mapText end to end. The first entity's brushes are the
// world geometry; any failure aborts the whole run.
func Build(mapText string, opts Options) (*Result, error) {
	if opts.Palette == nil {
		opts.Palette = texture.NewPalette(opts.Seed)
	}
	if opts.Diag == nil {
		opts.Diag = &diagnostics.Collector{}
	}

	sc, err := mapfile.Parse(strings.NewReader(mapText))
	if err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}
	world, ok := sc.Worldspawn()
	if !ok {
		return nil, fmt.Errorf("map has no entities")
	}
	if len(world.Brushes) == 0 {
		return nil, fmt.Errorf("worldspawn has no brushes")
	}

	brushes, err := buildBrushes(world, opts.Diag)
	if err != nil {
		return nil, err
	}

	faces, err := brush.Union(brushes)
	if err != nil {
		return nil, fmt.Errorf("unioning brushes: %w", err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("union produced no boundary faces")
	}

	polys := flattenFaces(faces)

	root, err := bsp.BuildTree(polys)
	if err != nil {
		return nil, fmt.Errorf("building bsp tree: %w", err)
	}

	cells, err := bsp.GenerateCells(polys, root)
	if err != nil {
		return nil, fmt.Errorf("enumerating cells: %w", err)
	}

	return &Result{
		Vertices: triangulate(polys, opts.Palette),
		Root:     root,
		Cells:    cells,
		Polygons: polys,
		Diag:     opts.Diag,
	}, nil
}

// buildBrushes derives the supporting planes of every raw brush and
// constructs its polyhedron, preserving map order.
func buildBrushes(world *scene.Entity, diag *diagnostics.Collector) ([]*brush.Brush, error) {
	brushes := make([]*brush.Brush, 0, len(world.Brushes))
	for i, raw := range world.Brushes {
		planes := make([]*brush.MapPlane, len(raw.Planes))
		for j, def := range raw.Planes {
			planes[j] = &brush.MapPlane{
				Plane:     geom.PlaneFromPoints(def.V1, def.V2, def.V3),
				Tangent:   def.Tangent,
				Bitangent: def.Bitangent,
				TexName:   def.TexName,
			}
		}
		b, err := brush.Build(planes, diag)
		if err != nil {
			return nil, fmt.Errorf("building brush %d: %w", i, err)
		}
		brushes = append(brushes, b)
	}
	return brushes, nil
}

// flattenFaces drops the unioned faces' vertex identity, producing the
// plain polygons the BSP works on. A brush face's plane has its normal
// pointing out of the solid; the BSP wants the opposite (solid on the
// front side of every polygon), so the plane is reversed and the vertex
// cycle flipped with it to keep the winding consistent with the plane.
func flattenFaces(faces []*brush.Face) []*polygon.Polygon {
	polys := make([]*polygon.Polygon, len(faces))
	for i, f := range faces {
		pts := f.Points()
		for a, b := 0, len(pts)-1; a < b; a, b = a+1, b-1 {
			pts[a], pts[b] = pts[b], pts[a]
		}
		reversed := geom.Plane{Normal: f.Surface.Normal.Mul(-1), D: -f.Surface.D}
		polys[i] = polygon.FromOrderedPoints(reversed, pts, f.Surface.TexName)
	}
	return polys
}

// triangulate fans every polygon and assigns its resolved color to each
// emitted vertex.
func triangulate(polys []*polygon.Polygon, palette *texture.Palette) []Vertex {
	var vertices []Vertex
	for i, p := range polys {
		c := palette.Colorize(p.Texture, i)
		for _, tri := range p.Triangulate() {
			for _, pos := range tri {
				vertices = append(vertices, Vertex{Position: pos, Color: c})
			}
		}
	}
	return vertices
}
