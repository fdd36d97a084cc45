package brep

// Face indices within a solid produced by Box, for tagging materials.
const (
	BoxBottom = iota
	BoxTop
	BoxFront
	BoxBack
	BoxLeft
	BoxRight
)

// Box builds a closed rectangular solid with its minimum corner at min and
// the given dimensions. Faces carry outward normals and a single
// counter-clockwise boundary loop of straight edges; materials are left
// empty for the caller to tag.
func Box(min Vec, dims Vec) Solid {
	max := min.Add(dims)

	// Corner naming: lower/upper Z, then plan position.
	l000 := Vec{X: min.X, Y: min.Y, Z: min.Z}
	l100 := Vec{X: max.X, Y: min.Y, Z: min.Z}
	l110 := Vec{X: max.X, Y: max.Y, Z: min.Z}
	l010 := Vec{X: min.X, Y: max.Y, Z: min.Z}
	u001 := Vec{X: min.X, Y: min.Y, Z: max.Z}
	u101 := Vec{X: max.X, Y: min.Y, Z: max.Z}
	u111 := Vec{X: max.X, Y: max.Y, Z: max.Z}
	u011 := Vec{X: min.X, Y: max.Y, Z: max.Z}

	faces := make([]Face, 6)
	faces[BoxBottom] = quad(Vec{Z: -1}, l000, l010, l110, l100)
	faces[BoxTop] = quad(Vec{Z: 1}, u001, u101, u111, u011)
	faces[BoxFront] = quad(Vec{Y: -1}, l000, l100, u101, u001)
	faces[BoxBack] = quad(Vec{Y: 1}, l110, l010, u011, u111)
	faces[BoxLeft] = quad(Vec{X: -1}, l010, l000, u001, u011)
	faces[BoxRight] = quad(Vec{X: 1}, l100, l110, u111, u101)
	return Solid{Faces: faces}
}

// quad builds a single rectangular face from four corners in loop order.
func quad(normal Vec, a, b, c, d Vec) Face {
	return Face{
		Origin: a,
		Normal: normal,
		Loops: []Loop{{
			{Start: a, End: b, Kind: EdgeLine},
			{Start: b, End: c, Kind: EdgeLine},
			{Start: c, End: d, Kind: EdgeLine},
			{Start: d, End: a, Kind: EdgeLine},
		}},
	}
}
