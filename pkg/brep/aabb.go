package brep

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec
	Max Vec
}

func emptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec{X: inf, Y: inf, Z: inf},
		Max: Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExtendPoint grows the box to include p.
func (b AABB) ExtendPoint(p Vec) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Inflate pads the box by d on every side.
func (b AABB) Inflate(d float64) AABB {
	pad := Vec{X: d, Y: d, Z: d}
	return AABB{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}
