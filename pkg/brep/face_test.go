package brep

import (
	"math"
	"testing"
)

func almostEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecAlmostEq(a, b Vec) bool {
	return almostEq(a.X, b.X) && almostEq(a.Y, b.Y) && almostEq(a.Z, b.Z)
}

// horizontalQuad builds a rectangular face in the z=elev plane spanning
// (x0,y0) to (x1,y1) with an upward normal.
func horizontalQuad(x0, y0, x1, y1, elev float64) Face {
	a := Vec{X: x0, Y: y0, Z: elev}
	b := Vec{X: x1, Y: y0, Z: elev}
	c := Vec{X: x1, Y: y1, Z: elev}
	d := Vec{X: x0, Y: y1, Z: elev}
	return Face{
		Origin: a,
		Normal: Vec{Z: 1},
		Loops: []Loop{{
			{Start: a, End: b, Kind: EdgeLine},
			{Start: b, End: c, Kind: EdgeLine},
			{Start: c, End: d, Kind: EdgeLine},
			{Start: d, End: a, Kind: EdgeLine},
		}},
	}
}

func TestProjectPoint(t *testing.T) {
	f := horizontalQuad(0, 0, 10, 10, 5)

	got := f.ProjectPoint(Vec{X: 3, Y: 4, Z: 9})
	want := Vec{X: 3, Y: 4, Z: 5}
	if !vecAlmostEq(got, want) {
		t.Errorf("ProjectPoint = %v, want %v", got, want)
	}

	// A point already on the plane stays put.
	onPlane := Vec{X: 1, Y: 1, Z: 5}
	if got := f.ProjectPoint(onPlane); !vecAlmostEq(got, onPlane) {
		t.Errorf("ProjectPoint of on-plane point = %v, want %v", got, onPlane)
	}
}

func TestRayIntersect(t *testing.T) {
	f := horizontalQuad(0, 0, 10, 10, 5)

	tests := []struct {
		name     string
		origin   Vec
		dir      Vec
		wantOK   bool
		wantDist float64
	}{
		{"hit from below", Vec{X: 5, Y: 5, Z: 0}, Vec{Z: 1}, true, 5},
		{"hit from above", Vec{X: 5, Y: 5, Z: 8}, Vec{Z: -1}, true, 3},
		{"miss outside boundary", Vec{X: 15, Y: 5, Z: 0}, Vec{Z: 1}, false, 0},
		{"behind origin", Vec{X: 5, Y: 5, Z: 8}, Vec{Z: 1}, false, 0},
		{"parallel to plane", Vec{X: 5, Y: 5, Z: 0}, Vec{X: 1}, false, 0},
		{"origin on plane", Vec{X: 5, Y: 5, Z: 5}, Vec{Z: 1}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, d, ok := f.RayIntersect(tt.origin, tt.dir)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !almostEq(d, tt.wantDist) {
				t.Errorf("distance = %v, want %v", d, tt.wantDist)
			}
			if !almostEq(hit.Z, 5) {
				t.Errorf("hit.Z = %v, want 5", hit.Z)
			}
		})
	}
}

func TestRayIntersectHole(t *testing.T) {
	f := horizontalQuad(0, 0, 10, 10, 5)

	// Punch a hole from (4,4) to (6,6).
	ha := Vec{X: 4, Y: 4, Z: 5}
	hb := Vec{X: 6, Y: 4, Z: 5}
	hc := Vec{X: 6, Y: 6, Z: 5}
	hd := Vec{X: 4, Y: 6, Z: 5}
	f.Loops = append(f.Loops, Loop{
		{Start: ha, End: hd, Kind: EdgeLine},
		{Start: hd, End: hc, Kind: EdgeLine},
		{Start: hc, End: hb, Kind: EdgeLine},
		{Start: hb, End: ha, Kind: EdgeLine},
	})

	if _, _, ok := f.RayIntersect(Vec{X: 5, Y: 5, Z: 0}, Vec{Z: 1}); ok {
		t.Error("ray through the hole should miss")
	}
	if _, _, ok := f.RayIntersect(Vec{X: 2, Y: 2, Z: 0}, Vec{Z: 1}); !ok {
		t.Error("ray through solid part of the face should hit")
	}
}

func TestRayIntersectArcChord(t *testing.T) {
	// A face bounded by three straight edges and one arc; the arc's chord
	// stands in during containment.
	a := Vec{X: 0, Y: 0, Z: 2}
	b := Vec{X: 4, Y: 0, Z: 2}
	c := Vec{X: 4, Y: 4, Z: 2}
	d := Vec{X: 0, Y: 4, Z: 2}
	f := Face{
		Origin: a,
		Normal: Vec{Z: 1},
		Loops: []Loop{{
			{Start: a, End: b, Kind: EdgeLine},
			{Start: b, End: c, Kind: EdgeLine},
			{Start: c, End: d, Kind: EdgeArc},
			{Start: d, End: a, Kind: EdgeLine},
		}},
	}

	if _, _, ok := f.RayIntersect(Vec{X: 2, Y: 2, Z: 0}, Vec{Z: 1}); !ok {
		t.Error("ray inside the chord polygon should hit")
	}
	if _, _, ok := f.RayIntersect(Vec{X: 5, Y: 2, Z: 0}, Vec{Z: 1}); ok {
		t.Error("ray outside the chord polygon should miss")
	}
}

func TestFaceBounds(t *testing.T) {
	f := horizontalQuad(1, 2, 7, 9, 3)
	bb := f.Bounds()
	if !vecAlmostEq(bb.Min, Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Bounds.Min = %v", bb.Min)
	}
	if !vecAlmostEq(bb.Max, Vec{X: 7, Y: 9, Z: 3}) {
		t.Errorf("Bounds.Max = %v", bb.Max)
	}
}

func TestEdgeMidpoint(t *testing.T) {
	e := Edge{Start: Vec{X: 0, Y: 0, Z: 0}, End: Vec{X: 4, Y: 2, Z: 6}, Kind: EdgeLine}
	if got := e.Midpoint(); !vecAlmostEq(got, Vec{X: 2, Y: 1, Z: 3}) {
		t.Errorf("Midpoint = %v, want (2,1,3)", got)
	}
}

func TestVerticalFaceParallelRay(t *testing.T) {
	// A vertical wall face; an upward ray is parallel and must miss.
	a := Vec{X: 0, Y: 0, Z: 0}
	b := Vec{X: 4, Y: 0, Z: 0}
	c := Vec{X: 4, Y: 0, Z: 4}
	d := Vec{X: 0, Y: 0, Z: 4}
	f := Face{
		Origin: a,
		Normal: Vec{Y: 1},
		Loops: []Loop{{
			{Start: a, End: b, Kind: EdgeLine},
			{Start: b, End: c, Kind: EdgeLine},
			{Start: c, End: d, Kind: EdgeLine},
			{Start: d, End: a, Kind: EdgeLine},
		}},
	}
	if _, _, ok := f.RayIntersect(Vec{X: 2, Y: 0, Z: -1}, Vec{Z: 1}); ok {
		t.Error("upward ray parallel to a vertical face should miss")
	}
	// A horizontal ray across the wall hits it.
	if _, d, ok := f.RayIntersect(Vec{X: 2, Y: -3, Z: 2}, Vec{Y: 1}); !ok || !almostEq(d, 3) {
		t.Errorf("horizontal ray: ok=%v d=%v, want hit at 3", ok, d)
	}
}
