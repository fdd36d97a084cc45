package brep

// EdgeKind distinguishes straight edges from curved ones. Only straight
// edges are usable as probe sources; curved edges are carried for
// completeness but skipped by the probe extractor.
type EdgeKind int

const (
	EdgeLine EdgeKind = iota // straight segment
	EdgeArc                  // circular arc (endpoints only, chord stored)
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeLine:
		return "line"
	case EdgeArc:
		return "arc"
	default:
		return "unknown"
	}
}

// Edge is a single boundary edge of a face loop. For EdgeArc the Start/End
// points are the arc endpoints; the curve itself is not represented.
type Edge struct {
	Start Vec
	End   Vec
	Kind  EdgeKind
}

// IsLine reports whether the edge is a straight segment.
func (e Edge) IsLine() bool {
	return e.Kind == EdgeLine
}

// Midpoint returns the midpoint of the edge's chord.
func (e Edge) Midpoint() Vec {
	return e.Start.Add(e.End).MulScalar(0.5)
}

// Loop is an ordered sequence of edges bounding a face. The first loop of a
// face is its outer boundary; additional loops are holes.
type Loop []Edge
