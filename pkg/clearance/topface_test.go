package clearance

import (
	"math"
	"testing"

	"github.com/JPTomorrow/headroom/pkg/brep"
)

func TestTopFacePicksHighest(t *testing.T) {
	s := brep.Box(brep.Vec{}, brep.Vec{X: 2, Y: 2, Z: 3})

	face, ok := TopFace([]brep.Solid{s})
	if !ok {
		t.Fatal("no top face found")
	}
	for _, e := range face.Loops[0] {
		if math.Abs(e.Start.Z-3) > 1e-9 {
			t.Fatalf("top face edge not at z=3: %v", e.Start)
		}
	}
}

func TestTopFaceAcrossSolids(t *testing.T) {
	low := brep.Box(brep.Vec{}, brep.Vec{X: 1, Y: 1, Z: 1})
	high := brep.Box(brep.Vec{X: 5, Y: 0, Z: 0}, brep.Vec{X: 1, Y: 1, Z: 4})

	face, ok := TopFace([]brep.Solid{low, high})
	if !ok {
		t.Fatal("no top face found")
	}
	if math.Abs(face.Loops[0][0].Start.Z-4) > 1e-9 {
		t.Errorf("expected the taller solid's top at z=4, got %v", face.Loops[0][0].Start)
	}
}

func TestTopFaceSkipsLightSource(t *testing.T) {
	s := brep.Box(brep.Vec{}, brep.Vec{X: 2, Y: 2, Z: 1})
	s.Faces[brep.BoxTop].Material = "Light Source Panel"

	face, ok := TopFace([]brep.Solid{s})
	if !ok {
		t.Fatal("no face found; side faces should still qualify")
	}
	if face.Material != "" {
		t.Errorf("selected a light-source face: %q", face.Material)
	}
	// The highest remaining candidates are the side faces, whose straight
	// edge midpoints average z=0.5.
	if math.Abs(faceScore(face)-0.5) > 1e-9 {
		t.Errorf("faceScore = %v, want 0.5", faceScore(face))
	}
}

func TestTopFaceNothingEligible(t *testing.T) {
	if _, ok := TopFace(nil); ok {
		t.Error("TopFace(nil) reported a face")
	}

	s := brep.Box(brep.Vec{}, brep.Vec{X: 1, Y: 1, Z: 1})
	for i := range s.Faces {
		s.Faces[i].Material = "Light Source Strip"
	}
	if _, ok := TopFace([]brep.Solid{s}); ok {
		t.Error("all-light-source solid reported a face")
	}
}

func TestFaceScoreCurvedOnly(t *testing.T) {
	f := brep.Face{
		Normal: brep.Up,
		Loops: []brep.Loop{{
			{Start: brep.Vec{Z: 100}, End: brep.Vec{X: 1, Z: 100}, Kind: brep.EdgeArc},
			{Start: brep.Vec{X: 1, Z: 100}, End: brep.Vec{Z: 100}, Kind: brep.EdgeArc},
		}},
	}
	if got := faceScore(f); got != noEdgeScore {
		t.Errorf("faceScore of curved-only face = %v, want sentinel %v", got, noEdgeScore)
	}
}

func TestTopFaceCurvedLosesToStraight(t *testing.T) {
	// A curved-only face sits geometrically higher, but scores the sentinel
	// and loses to any face with straight edges.
	curved := brep.Solid{Faces: []brep.Face{{
		Normal: brep.Up,
		Loops: []brep.Loop{{
			{Start: brep.Vec{Z: 50}, End: brep.Vec{X: 1, Z: 50}, Kind: brep.EdgeArc},
			{Start: brep.Vec{X: 1, Z: 50}, End: brep.Vec{Z: 50}, Kind: brep.EdgeArc},
		}},
	}}}
	box := brep.Box(brep.Vec{}, brep.Vec{X: 1, Y: 1, Z: 1})

	face, ok := TopFace([]brep.Solid{curved, box})
	if !ok {
		t.Fatal("no face found")
	}
	if faceScore(face) == noEdgeScore {
		t.Error("curved-only face won over a straight-edged one")
	}
}

func TestTopFaceTieKeepsFirst(t *testing.T) {
	// Two boxes with tops at the same height; the first solid's top wins.
	a := brep.Box(brep.Vec{}, brep.Vec{X: 1, Y: 1, Z: 2})
	b := brep.Box(brep.Vec{X: 10}, brep.Vec{X: 1, Y: 1, Z: 2})

	face, ok := TopFace([]brep.Solid{a, b})
	if !ok {
		t.Fatal("no face found")
	}
	if face.Bounds().Min.X > 5 {
		t.Error("tie resolved to the later solid")
	}
}
