package clearance

import (
	"strings"

	"github.com/JPTomorrow/headroom/pkg/brep"
)

// lightSourceMarker tags non-physical light-emitting surfaces. Faces whose
// material contains it never qualify as a reference face, even when they sit
// geometrically highest.
const lightSourceMarker = "Light Source"

// noEdgeScore is the sentinel for faces without a single straight boundary
// edge; it sorts below any real height coordinate.
const noEdgeScore = -9999.0

// faceScore rates a face as a candidate top surface: the mean Z of the
// midpoints of its straight boundary edges across all loops. Faces with only
// curved edges get the sentinel.
func faceScore(f brep.Face) float64 {
	sum := 0.0
	n := 0
	for _, loop := range f.Loops {
		for _, e := range loop {
			if !e.IsLine() {
				continue
			}
			sum += e.Midpoint().Z
			n++
		}
	}
	if n == 0 {
		return noEdgeScore
	}
	return sum / float64(n)
}

// TopFace selects the face best representing a fixture's usable top surface
// from its instance-space solids: the highest-scoring eligible face, with
// ties resolved to the earliest face in enumeration order. Light-emitting
// faces are discarded first. The second return is false when no eligible
// face exists, a routine outcome rather than an error.
func TopFace(solids []brep.Solid) (brep.Face, bool) {
	var best brep.Face
	bestScore := 0.0
	found := false

	for _, s := range solids {
		if !s.Valid() {
			continue
		}
		for _, f := range s.Faces {
			if strings.Contains(f.Material, lightSourceMarker) {
				continue
			}
			score := faceScore(f)
			// Strictly-greater keeps the first face on ties.
			if !found || score > bestScore {
				best = f
				bestScore = score
				found = true
			}
		}
	}
	return best, found
}
