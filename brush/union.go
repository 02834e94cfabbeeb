package brush

import "github.com/korrigangames/bspforge/geom"

// Union merges the Faces of every brush into the boundary of their
// combined solid: each brush's faces are clipped against every other
// brush's plane set, dropping the portion that falls strictly inside
// another brush. Input order matters for the coplanar tie-break (see
// Clip), so callers should not reorder brushes between calls.
func Union(brushes []*Brush) ([]*Face, error) {
	var result []*Face
	for i, b := range brushes {
		for _, f := range b.Faces {
			clipped, err := clipAgainstOthers(f, brushes, i)
			if err != nil {
				return nil, err
			}
			result = append(result, clipped...)
		}
	}
	return result, nil
}

// clipAgainstOthers clips face, which belongs to brushes[owner], against
// every other brush in turn, keeping only the portion of face outside all
// of them. keepShared is true once the walk has passed the owning
// brush's own position in the list, matching the CSG tie-break: of two
// coincident, equally oriented faces, the later brush's copy is kept and
// the earlier brush's copy is dropped.
func clipAgainstOthers(face *Face, brushes []*Brush, owner int) ([]*Face, error) {
	current := []*Face{face}
	for j, b := range brushes {
		if j == owner {
			continue
		}
		var next []*Face
		for _, f := range current {
			clipped, err := Clip(f, owner < j, b.Planes, 0)
			if err != nil {
				return nil, err
			}
			next = append(next, clipped...)
		}
		current = next
		if len(current) == 0 {
			break
		}
	}
	return current, nil
}

// Clip recursively clips face against the convex volume bounded by
// volume[idx:], keeping only the part of face outside the volume (i.e.
// the part that survives the whole-brush union). keepShared breaks ties
// when face lies exactly on one of the volume's planes with the same
// orientation: false (the volume's brush comes before face's own brush in
// iteration order) keeps the coplanar face, true (the volume's brush comes
// after it) drops it, deferring to the later brush's copy.
func Clip(face *Face, keepShared bool, volume []*MapPlane, idx int) ([]*Face, error) {
	if idx >= len(volume) {
		// face classified Back/CoplanarBack (inside) against every plane
		// of the volume in turn: it's fully contained in the other
		// brush's solid and contributes nothing to the union's boundary.
		return nil, nil
	}
	plane := volume[idx]

	switch geom.Classify(face.Points(), plane.Plane, geom.SideEpsilon) {
	case geom.Back, geom.CoplanarBack:
		return Clip(face, keepShared, volume, idx+1)
	case geom.Front, geom.CoplanarFront:
		return []*Face{face}, nil
	case geom.Coplanar:
		// Face lies exactly on this plane. If its own surface agrees in
		// orientation and the volume's brush precedes face's own brush
		// (keepShared==false), it is the one copy of the coincident face
		// that survives.
		if faceNormalAligned(face, plane) && !keepShared {
			return []*Face{face}, nil
		}
		return Clip(face, keepShared, volume, idx+1)
	default: // Spanning
		back, front, err := face.Split(plane)
		if err != nil {
			if _, ok := err.(*DegenerateGeometryError); ok {
				// A spanning classification that can't actually be split
				// cleanly is treated as already outside: keep the whole
				// face rather than losing it.
				return []*Face{face}, nil
			}
			return nil, err
		}
		if idx+1 >= len(volume) {
			// back is checked against no further planes: it's inside
			// every remaining half-space, i.e. fully contained.
			return []*Face{front}, nil
		}
		kept, err := Clip(back, keepShared, volume, idx+1)
		if err != nil {
			return nil, err
		}
		switch {
		case len(kept) == 0:
			return []*Face{front}, nil
		case len(kept) == 1 && kept[0] == back:
			// back survived an inner plane unchanged (a coplanar hit
			// elsewhere in the volume): the split doesn't actually
			// remove anything, so keep the original face whole.
			return []*Face{face}, nil
		default:
			return append([]*Face{front}, kept...), nil
		}
	}
}

func faceNormalAligned(face *Face, plane *MapPlane) bool {
	return face.Surface.Normal.Dot(plane.Normal) > 0
}
