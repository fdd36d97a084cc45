package brep

// Solid is a closed polygonal volume composed of planar faces.
type Solid struct {
	Faces []Face
}

// EdgeCount returns the total number of boundary edges across all faces.
func (s Solid) EdgeCount() int {
	n := 0
	for _, f := range s.Faces {
		n += f.EdgeCount()
	}
	return n
}

// Valid reports whether the solid carries usable geometry. A solid with zero
// faces or zero edges must be skipped by extraction.
func (s Solid) Valid() bool {
	return len(s.Faces) > 0 && s.EdgeCount() > 0
}

// Bounds returns the axis-aligned bounding box over all faces.
func (s Solid) Bounds() AABB {
	bb := emptyAABB()
	for _, f := range s.Faces {
		bb = bb.Union(f.Bounds())
	}
	return bb
}
