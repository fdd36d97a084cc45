package brep

import "math"

// Transform is a rigid placement: rotation about the vertical axis followed
// by a translation. Placed instances in building models rotate in plan only,
// which keeps the top-face heuristic exact.
type Transform struct {
	RotationZ   float64 // degrees, counter-clockwise in plan
	Translation Vec
}

// Identity is the no-op transform.
var Identity = Transform{}

// IsIdentity reports whether the transform moves nothing.
func (t Transform) IsIdentity() bool {
	return t.RotationZ == 0 && t.Translation == (Vec{})
}

// Apply maps a point from definition space to instance space.
func (t Transform) Apply(p Vec) Vec {
	return t.ApplyDir(p).Add(t.Translation)
}

// ApplyDir maps a direction (rotation only, no translation).
func (t Transform) ApplyDir(d Vec) Vec {
	if t.RotationZ == 0 {
		return d
	}
	rad := t.RotationZ * math.Pi / 180.0
	sin, cos := math.Sincos(rad)
	return Vec{
		X: d.X*cos - d.Y*sin,
		Y: d.X*sin + d.Y*cos,
		Z: d.Z,
	}
}

// Compose returns the transform equivalent to applying t after inner, as
// when a placed instance lives inside a placed link.
func (t Transform) Compose(inner Transform) Transform {
	return Transform{
		RotationZ:   t.RotationZ + inner.RotationZ,
		Translation: t.Apply(inner.Translation),
	}
}

// ApplyEdge maps an edge into instance space.
func (t Transform) ApplyEdge(e Edge) Edge {
	return Edge{Start: t.Apply(e.Start), End: t.Apply(e.End), Kind: e.Kind}
}

// ApplyFace maps a face into instance space.
func (t Transform) ApplyFace(f Face) Face {
	out := Face{
		Origin:   t.Apply(f.Origin),
		Normal:   t.ApplyDir(f.Normal),
		Material: f.Material,
		Loops:    make([]Loop, len(f.Loops)),
	}
	for i, loop := range f.Loops {
		mapped := make(Loop, len(loop))
		for j, e := range loop {
			mapped[j] = t.ApplyEdge(e)
		}
		out.Loops[i] = mapped
	}
	return out
}

// ApplySolid maps a whole solid into instance space.
func (t Transform) ApplySolid(s Solid) Solid {
	out := Solid{Faces: make([]Face, len(s.Faces))}
	for i, f := range s.Faces {
		out.Faces[i] = t.ApplyFace(f)
	}
	return out
}
