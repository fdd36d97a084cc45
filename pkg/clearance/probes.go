package clearance

import "github.com/JPTomorrow/headroom/pkg/brep"

// ProbeLines returns the straight boundary edges of a face across all loops.
// Curved edges carry no usable probe and are skipped.
func ProbeLines(f brep.Face) []brep.Edge {
	var out []brep.Edge
	for _, loop := range f.Loops {
		for _, e := range loop {
			if e.IsLine() {
				out = append(out, e)
			}
		}
	}
	return out
}

// ProbePoints reduces a face's straight edges to ray origins: each edge's
// midpoint projected onto the owning face plane.
func ProbePoints(f brep.Face) []brep.Vec {
	lines := ProbeLines(f)
	out := make([]brep.Vec, 0, len(lines))
	for _, e := range lines {
		out = append(out, f.ProjectPoint(e.Midpoint()))
	}
	return out
}
