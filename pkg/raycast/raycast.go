// Package raycast answers "what does this ray hit" against a category-
// filtered scene, including geometry inside linked sub-models. Candidate
// elements come from an R-tree over world-space bounding boxes; exact hits
// come from ray/planar-polygon tests against each candidate's faces.
package raycast

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/JPTomorrow/headroom/pkg/brep"
	"github.com/JPTomorrow/headroom/pkg/geomquery"
	"github.com/JPTomorrow/headroom/pkg/model"
)

// rectPad keeps R-tree rectangles strictly positive in every dimension so
// flat geometry (a ceiling plane) still indexes.
const rectPad = 1e-6

// Filter restricts which categories a ray may collide with. An empty filter
// matches nothing; casting with it is valid and yields no collisions.
type Filter struct {
	cats map[model.Category]bool
}

// NewFilter builds a filter matching the given categories.
func NewFilter(cats ...model.Category) Filter {
	f := Filter{cats: make(map[model.Category]bool, len(cats))}
	for _, c := range cats {
		f.cats[c] = true
	}
	return f
}

// Matches reports whether the category passes the filter.
func (f Filter) Matches(c model.Category) bool {
	return f.cats[c]
}

// Collision is a single ray hit: where, how far from the origin, and what
// was struck.
type Collision struct {
	Point    brep.Vec
	Distance float64
	Ref      model.Ref
}

// Options tune a single cast. MaxDistance < 0 means unbounded; collisions
// farther than a non-negative MaxDistance are excluded entirely. Ignore
// drops collisions against the listed root-model elements, which is how a
// fixture excludes its own geometry.
type Options struct {
	MaxDistance float64
	Ignore      map[model.ElementID]bool
}

// Unbounded is the default cast: no distance cap, nothing ignored.
var Unbounded = Options{MaxDistance: -1}

// entry is one indexed element instance.
type entry struct {
	ref   model.Ref
	faces []brep.Face
	rect  rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// Intersector is an immutable spatial query structure built once per run
// from a model, a view, and a category filter.
type Intersector struct {
	model   *model.Model
	tree    *rtreego.Rtree
	bounds  brep.AABB
	entries int
}

// NewIntersector indexes every visible, filter-matching element instance.
func NewIntersector(m *model.Model, v *model.View, f Filter) *Intersector {
	ix := &Intersector{model: m, tree: rtreego.NewTree(3, 4, 8)}
	bounds := brep.AABB{}
	first := true

	for _, in := range geomquery.VisibleInstances(m, v) {
		if !f.Matches(in.Element.Category) {
			continue
		}
		var faces []brep.Face
		bb := brep.AABB{}
		bbSet := false
		for _, s := range in.WorldSolids() {
			faces = append(faces, s.Faces...)
			if bbSet {
				bb = bb.Union(s.Bounds())
			} else {
				bb = s.Bounds()
				bbSet = true
			}
		}
		if len(faces) == 0 {
			continue
		}
		rect := toRect(bb)
		ix.tree.Insert(&entry{ref: in.Ref, faces: faces, rect: rect})
		ix.entries++
		if first {
			bounds = bb
			first = false
		} else {
			bounds = bounds.Union(bb)
		}
	}

	if !first {
		ix.bounds = bounds
	}
	return ix
}

// reachFrom returns the distance from p to the farthest corner of the
// indexed bounds. No indexed geometry can lie beyond it, so it bounds the
// candidate query for an unbounded cast regardless of where the origin sits.
func (ix *Intersector) reachFrom(p brep.Vec) float64 {
	d := brep.Vec{
		X: math.Max(math.Abs(p.X-ix.bounds.Min.X), math.Abs(p.X-ix.bounds.Max.X)),
		Y: math.Max(math.Abs(p.Y-ix.bounds.Min.Y), math.Abs(p.Y-ix.bounds.Max.Y)),
		Z: math.Max(math.Abs(p.Z-ix.bounds.Min.Z), math.Abs(p.Z-ix.bounds.Max.Z)),
	}
	return d.Length()
}

// Size returns the number of indexed element instances.
func (ix *Intersector) Size() int {
	return ix.entries
}

// Cast intersects the ray origin+t*dir with the indexed scene and returns
// every qualifying collision. The result carries no ordering guarantee;
// callers sort by distance when they need nearest or farthest.
func (ix *Intersector) Cast(origin, dir brep.Vec, opts Options) []Collision {
	if ix.entries == 0 {
		return nil
	}
	dir = dir.Normalize()

	// Bound the candidate query even for unbounded casts. The reach is
	// measured from the origin, not from the indexed geometry alone, so a
	// probe far outside the obstruction set still reaches everything.
	reach := opts.MaxDistance
	if reach < 0 {
		reach = ix.reachFrom(origin)
	}
	end := origin.Add(dir.MulScalar(reach))
	qbb := brep.AABB{Min: origin.Min(end), Max: origin.Max(end)}.Inflate(rectPad)

	var out []Collision
	for _, sp := range ix.tree.SearchIntersect(toRect(qbb)) {
		en := sp.(*entry)
		if en.ref.InRoot() && opts.Ignore[en.ref.Elem] {
			continue
		}
		if ix.model.Resolve(en.ref) == nil {
			// Struck object no longer resolvable; drop the hit.
			continue
		}
		for _, face := range en.faces {
			hit, t, ok := face.RayIntersect(origin, dir)
			if !ok {
				continue
			}
			if opts.MaxDistance >= 0 && t > opts.MaxDistance {
				continue
			}
			out = append(out, Collision{Point: hit, Distance: t, Ref: en.ref})
		}
	}
	return out
}

// Nearest returns the collision with the smallest distance. Ties keep the
// first element in iteration order; found is false for an empty set.
func Nearest(cols []Collision) (Collision, bool) {
	if len(cols) == 0 {
		return Collision{}, false
	}
	best := cols[0]
	for _, c := range cols[1:] {
		if c.Distance < best.Distance {
			best = c
		}
	}
	return best, true
}

// Farthest returns the collision with the largest distance. Ties keep the
// first element in iteration order; found is false for an empty set.
func Farthest(cols []Collision) (Collision, bool) {
	if len(cols) == 0 {
		return Collision{}, false
	}
	best := cols[0]
	for _, c := range cols[1:] {
		if c.Distance > best.Distance {
			best = c
		}
	}
	return best, true
}

// toRect converts a brep box to an R-tree rectangle with strictly positive
// side lengths.
func toRect(bb brep.AABB) rtreego.Rect {
	p := rtreego.Point{bb.Min.X, bb.Min.Y, bb.Min.Z}
	lengths := []float64{
		sideLen(bb.Max.X - bb.Min.X),
		sideLen(bb.Max.Y - bb.Min.Y),
		sideLen(bb.Max.Z - bb.Min.Z),
	}
	rect, err := rtreego.NewRect(p, lengths)
	if err != nil {
		// Lengths are clamped positive above; NewRect cannot reject them.
		panic(err)
	}
	return rect
}

func sideLen(d float64) float64 {
	if d < rectPad {
		return rectPad
	}
	return d
}
