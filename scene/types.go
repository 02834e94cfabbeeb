// Package scene holds the in-memory form of a parsed map: entities with
// their key/value pairs and raw brushes, before any geometry is derived.
package scene

import "github.com/go-gl/mathgl/mgl64"

// PlaneDef is one plane line of a brush: three points defining the plane,
// the texture name, and the tangent frame carried for texture mapping.
type PlaneDef struct {
	V1, V2, V3 mgl64.Vec3
	TexName    string
	Tangent    mgl64.Vec3
	Bitangent  mgl64.Vec3
}

// RawBrush is an unprocessed brush: its plane definitions in file order.
type RawBrush struct {
	Planes []PlaneDef
}

// Entity is one map entity: its key/value properties and nested brushes.
type Entity struct {
	Keys    map[string]string
	Brushes []RawBrush
}

// Scene is a whole parsed map in file order.
type Scene struct {
	Entities []Entity
}

// Worldspawn returns the first entity, which by map convention carries
// the world geometry. ok is false for an empty map.
func (s *Scene) Worldspawn() (*Entity, bool) {
	if len(s.Entities) == 0 {
		return nil, false
	}
	return &s.Entities[0], true
}
