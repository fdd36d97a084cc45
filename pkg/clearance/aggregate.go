package clearance

import (
	"sort"

	"github.com/JPTomorrow/headroom/pkg/raycast"
)

// State is the terminal state of one fixture after aggregation. The three
// states are mutually exclusive and exhaustive.
type State int

const (
	StateFailed State = iota // no probe contributed a usable distance
	StateSingle              // one consistent clearance reading
	StateMinMax              // two distinct readings beyond tolerance
)

func (s State) String() string {
	switch s {
	case StateFailed:
		return "failed"
	case StateSingle:
		return "single"
	case StateMinMax:
		return "min-max"
	default:
		return "unknown"
	}
}

// Outcome is the aggregation result for one fixture.
type Outcome struct {
	State  State
	Single float64 // set for StateSingle
	Min    float64 // set for StateMinMax
	Max    float64 // set for StateMinMax
}

// acceptDistance picks the probe's contribution from its raw collisions:
// the smallest distance strictly greater than threshold. Collisions at or
// below threshold are noise from the fixture's own geometry and are skipped
// entirely. ok is false when nothing qualifies.
func acceptDistance(cols []raycast.Collision, threshold float64) (float64, bool) {
	if len(cols) == 0 {
		return 0, false
	}
	ds := make([]float64, len(cols))
	for i, c := range cols {
		ds[i] = c.Distance
	}
	sort.Float64s(ds)
	for _, d := range ds {
		if d > threshold {
			return d, true
		}
	}
	return 0, false
}

// Reduce folds a fixture's accepted distances into its outcome. With two or
// more readings whose spread stays within tolerance, the readings are one
// consistent measurement and only the larger survives, in the single slot.
func Reduce(accepted []float64, tolerance float64) Outcome {
	switch len(accepted) {
	case 0:
		return Outcome{State: StateFailed}
	case 1:
		return Outcome{State: StateSingle, Single: accepted[0]}
	}

	min, max := accepted[0], accepted[0]
	for _, d := range accepted[1:] {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	if max > min+tolerance {
		return Outcome{State: StateMinMax, Min: min, Max: max}
	}
	return Outcome{State: StateSingle, Single: max}
}
