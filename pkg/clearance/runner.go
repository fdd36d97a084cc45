package clearance

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/JPTomorrow/headroom/pkg/brep"
	"github.com/JPTomorrow/headroom/pkg/geomquery"
	"github.com/JPTomorrow/headroom/pkg/model"
	"github.com/JPTomorrow/headroom/pkg/raycast"
)

// Selection sink reasons for the two failure categories a run reports.
const (
	ReasonWrongType = "wrong family type"
	ReasonFailed    = "clearance computation failed"
)

// Config drives one analysis batch. MinClearance and Tolerance are decimal
// feet, normally parsed once at startup from "2'" and "1\"".
type Config struct {
	View             *model.View
	Obstructions     raycast.Filter
	FixtureCategory  model.Category
	FamilyTypeMarker string // fixtures whose FamilyType lacks it never enter the pipeline
	MinClearance     float64
	Tolerance        float64
}

// FixtureResult is the terminal record for one processed fixture.
type FixtureResult struct {
	ID       model.ElementID
	Outcome  Outcome
	Probes   int       // probe points cast
	Accepted []float64 // distances that survived the threshold
}

// Report is the output of one batch run.
type Report struct {
	RunID     string
	Results   []FixtureResult
	WrongType []model.ElementID // never entered the geometry pipeline
	Skipped   []model.ElementID // no visible geometry or no top face
	Failed    []model.ElementID // entered but yielded no usable result
}

// Runner executes clearance batches against a model.
type Runner struct {
	cfg  Config
	sink model.SelectionSink
}

// NewRunner creates a runner. A nil sink disables highlighting.
func NewRunner(cfg Config, sink model.SelectionSink) *Runner {
	return &Runner{cfg: cfg, sink: sink}
}

// plannedWrite pairs a fixture with its computed outcome; the write executor
// consumes the plan inside the exclusive write session.
type plannedWrite struct {
	id      model.ElementID
	outcome Outcome
}

// Run processes every qualifying fixture and commits all attribute writes in
// one all-or-nothing group. Per-fixture problems never abort the batch; only
// a transaction-boundary failure does.
func (r *Runner) Run(m *model.Model) (*Report, error) {
	rep := &Report{RunID: uuid.NewString()}
	ix := raycast.NewIntersector(m, r.cfg.View, r.cfg.Obstructions)

	var plan []plannedWrite
	for _, e := range m.Elements() {
		if e.Category != r.cfg.FixtureCategory {
			continue
		}
		if r.cfg.FamilyTypeMarker != "" && !strings.Contains(e.FamilyType, r.cfg.FamilyTypeMarker) {
			rep.WrongType = append(rep.WrongType, e.ID)
			continue
		}

		res, ok := r.measure(ix, e)
		if !ok {
			rep.Skipped = append(rep.Skipped, e.ID)
			continue
		}
		plan = append(plan, plannedWrite{id: e.ID, outcome: res.Outcome})
		rep.Results = append(rep.Results, res)
	}

	if err := r.applyWrites(m, plan, rep); err != nil {
		return nil, err
	}

	if r.sink != nil {
		if len(rep.WrongType) > 0 {
			r.sink.Highlight(ReasonWrongType, rep.WrongType)
		}
		if len(rep.Failed) > 0 {
			r.sink.Highlight(ReasonFailed, rep.Failed)
		}
	}
	return rep, nil
}

// measure runs the geometry pipeline for one fixture. ok is false when the
// fixture has no visible geometry or no usable top face; such fixtures are
// skipped upstream of the aggregator.
func (r *Runner) measure(ix *raycast.Intersector, e *model.Element) (FixtureResult, bool) {
	solids := geomquery.SolidsOf(r.cfg.View, e)
	if len(solids) == 0 {
		return FixtureResult{}, false
	}
	face, ok := TopFace(solids)
	if !ok {
		return FixtureResult{}, false
	}

	points := ProbePoints(face)
	opts := raycast.Options{
		MaxDistance: -1,
		Ignore:      map[model.ElementID]bool{e.ID: true},
	}

	var accepted []float64
	for _, p := range points {
		cols := ix.Cast(p, brep.Up, opts)
		if d, ok := acceptDistance(cols, r.cfg.MinClearance); ok {
			accepted = append(accepted, d)
		}
	}

	return FixtureResult{
		ID:       e.ID,
		Outcome:  Reduce(accepted, r.cfg.Tolerance),
		Probes:   len(points),
		Accepted: accepted,
	}, true
}

// applyWrites executes the plan inside one group/write pair. A rejected
// per-fixture write demotes that fixture to failed; a boundary failure rolls
// everything back and is fatal to the run.
func (r *Runner) applyWrites(m *model.Model, plan []plannedWrite, rep *Report) error {
	s := m.Attributes().NewSession()
	if err := s.BeginGroup(); err != nil {
		return fmt.Errorf("clearance: %w", err)
	}
	if err := s.BeginWrite(); err != nil {
		s.RollbackGroup()
		return fmt.Errorf("clearance: %w", err)
	}

	failed := make(map[model.ElementID]bool)
	for _, pw := range plan {
		var err error
		switch pw.outcome.State {
		case StateSingle:
			err = s.SetSingle(pw.id, pw.outcome.Single)
		case StateMinMax:
			if err = s.SetMin(pw.id, pw.outcome.Min); err == nil {
				err = s.SetMax(pw.id, pw.outcome.Max)
			}
		case StateFailed:
			failed[pw.id] = true
		}
		if err != nil {
			failed[pw.id] = true
		}
	}

	// Corrective pass: every failed fixture ends with the failure marker set
	// and all value slots cleared. Elements that reject even this write stay
	// on the failure list regardless.
	for _, pw := range plan {
		if !failed[pw.id] {
			continue
		}
		_ = s.MarkFailed(pw.id)
		rep.Failed = append(rep.Failed, pw.id)
		for i := range rep.Results {
			if rep.Results[i].ID == pw.id {
				rep.Results[i].Outcome = Outcome{State: StateFailed}
			}
		}
	}

	if err := s.CommitWrite(); err != nil {
		s.RollbackGroup()
		return fmt.Errorf("clearance: %w", err)
	}
	if err := s.CommitGroup(); err != nil {
		s.RollbackGroup()
		return fmt.Errorf("clearance: %w", err)
	}
	return nil
}
