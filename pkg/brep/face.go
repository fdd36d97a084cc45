package brep

import "math"

// Face is a bounded planar surface. Origin is any point on the plane and
// Normal its (unit) plane normal. Loops[0] is the outer boundary; any
// further loops are holes. Material carries the owning material/style tag of
// the surface, used to filter out non-physical faces.
type Face struct {
	Origin   Vec
	Normal   Vec
	Material string
	Loops    []Loop
}

// ProjectPoint projects p onto the face plane along the plane normal.
func (f Face) ProjectPoint(p Vec) Vec {
	d := p.Sub(f.Origin).Dot(f.Normal)
	return p.Sub(f.Normal.MulScalar(d))
}

// RayIntersect intersects the ray origin+t*dir (t > 0) with the face. It
// returns the hit point and the distance t along the ray. Rays parallel to
// the plane, hits behind the origin, and hits outside the boundary loops all
// report ok=false. Arc edges contribute their chords to the containment
// test.
func (f Face) RayIntersect(origin, dir Vec) (Vec, float64, bool) {
	denom := dir.Dot(f.Normal)
	if math.Abs(denom) < geomEps {
		return Vec{}, 0, false
	}
	t := f.Origin.Sub(origin).Dot(f.Normal) / denom
	if t <= geomEps {
		return Vec{}, 0, false
	}
	hit := origin.Add(dir.MulScalar(t))
	if !f.contains(hit) {
		return Vec{}, 0, false
	}
	return hit, t, true
}

// contains tests whether a point on the face plane lies inside the boundary,
// holes excluded, using even-odd ray crossing in the dominant-axis 2D
// projection.
func (f Face) contains(p Vec) bool {
	u, v := dominantAxes(f.Normal)
	px, py := axis(p, u), axis(p, v)

	crossings := 0
	for _, loop := range f.Loops {
		for _, e := range loop {
			ax, ay := axis(e.Start, u), axis(e.Start, v)
			bx, by := axis(e.End, u), axis(e.End, v)
			if (ay > py) == (by > py) {
				continue
			}
			x := ax + (py-ay)/(by-ay)*(bx-ax)
			if x > px {
				crossings++
			}
		}
	}
	return crossings%2 == 1
}

// Bounds returns the axis-aligned bounding box of the face boundary.
func (f Face) Bounds() AABB {
	bb := emptyAABB()
	for _, loop := range f.Loops {
		for _, e := range loop {
			bb = bb.ExtendPoint(e.Start)
			bb = bb.ExtendPoint(e.End)
		}
	}
	return bb
}

// EdgeCount returns the total number of boundary edges across all loops.
func (f Face) EdgeCount() int {
	n := 0
	for _, loop := range f.Loops {
		n += len(loop)
	}
	return n
}

// dominantAxes picks the two coordinate axes spanning the plane most
// orthogonal to the normal, so the 2D projection never degenerates.
func dominantAxes(n Vec) (int, int) {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case az >= ax && az >= ay:
		return 0, 1 // drop Z
	case ay >= ax:
		return 0, 2 // drop Y
	default:
		return 1, 2 // drop X
	}
}

func axis(p Vec, i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}
