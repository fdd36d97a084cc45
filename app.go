package main

import (
	"fmt"
	"log"

	"github.com/JPTomorrow/headroom/pkg/clearance"
	"github.com/JPTomorrow/headroom/pkg/engine"
	"github.com/JPTomorrow/headroom/pkg/kernel"
	"github.com/JPTomorrow/headroom/pkg/kernel/sdfx"
	"github.com/JPTomorrow/headroom/pkg/meshout"
	"github.com/JPTomorrow/headroom/pkg/model"
	"github.com/JPTomorrow/headroom/pkg/raycast"
	"github.com/JPTomorrow/headroom/pkg/units"
)

// App wires the scene engine, the clearance runner and the mesh exporter
// together. It is the single entry point the CLI talks to.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// EvalErrorData is a serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// FixtureData is the serializable per-fixture outcome.
type FixtureData struct {
	ID       string  `json:"id"`
	State    string  `json:"state"`
	Single   string  `json:"single,omitempty"`
	Min      string  `json:"min,omitempty"`
	Max      string  `json:"max,omitempty"`
	Probes   int     `json:"probes"`
	Accepted int     `json:"accepted"`
	RawValue float64 `json:"-"`
}

// RunResult is the full result of evaluating and analyzing a scene.
type RunResult struct {
	RunID     string          `json:"runId"`
	Fixtures  []FixtureData   `json:"fixtures"`
	WrongType []string        `json:"wrongType"`
	Skipped   []string        `json:"skipped"`
	Failed    []string        `json:"failed"`
	Errors    []EvalErrorData `json:"errors"`
}

// MeshData is the serializable mesh format written by the export path.
type MeshData struct {
	Vertices    []float32 `json:"vertices"`
	Normals     []float32 `json:"normals"`
	Indices     []uint32  `json:"indices"`
	ElementName string    `json:"elementName"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// Run evaluates Lisp source into a scene and runs the clearance batch
// against it. Eval errors and per-fixture failures land in the result;
// only transaction-boundary failures and unparsable settings are fatal.
func (a *App) Run(source string) (RunResult, error) {
	result := RunResult{
		Fixtures:  []FixtureData{},
		WrongType: []string{},
		Skipped:   []string{},
		Failed:    []string{},
		Errors:    []EvalErrorData{},
	}

	scene, evalErrs, err := a.evaluate(source, &result)
	if err != nil || scene == nil || len(evalErrs) > 0 {
		return result, err
	}

	cfg, err := configFromSettings(scene.Settings, scene.View)
	if err != nil {
		return result, err
	}

	sink := model.NewCollector()
	runner := clearance.NewRunner(cfg, sink)
	rep, err := runner.Run(scene.Model)
	if err != nil {
		return result, err
	}

	result.RunID = rep.RunID
	for _, fr := range rep.Results {
		result.Fixtures = append(result.Fixtures, fixtureData(fr))
	}
	result.WrongType = idStrings(rep.WrongType)
	result.Skipped = idStrings(rep.Skipped)
	result.Failed = idStrings(rep.Failed)
	return result, nil
}

// ExportMeshes evaluates Lisp source and renders every visible element's
// display primitives to triangle meshes.
func (a *App) ExportMeshes(source string) ([]MeshData, []EvalErrorData, error) {
	var result RunResult
	scene, evalErrs, err := a.evaluate(source, &result)
	if err != nil {
		return nil, result.Errors, err
	}
	if scene == nil || len(evalErrs) > 0 {
		return nil, result.Errors, nil
	}

	meshes, err := meshout.Export(scene.Model, scene.View, a.kernel)
	if err != nil {
		return nil, nil, fmt.Errorf("mesh export: %w", err)
	}

	out := make([]MeshData, 0, len(meshes))
	for _, m := range meshes {
		out = append(out, MeshData{
			Vertices:    m.Vertices,
			Normals:     m.Normals,
			Indices:     m.Indices,
			ElementName: m.ElementName,
		})
	}
	return out, nil, nil
}

// evaluate runs the engine and folds eval errors into the result. A nil
// scene with a nil error means the source had eval errors.
func (a *App) evaluate(source string, result *RunResult) (*engine.Scene, []engine.EvalError, error) {
	scene, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal: timeout or panic inside the interpreter.
		log.Printf("evaluate fatal error: %v", err)
		return nil, nil, err
	}
	for _, e := range evalErrs {
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    e.Line,
			Col:     e.Col,
			Message: e.Message,
		})
	}
	return scene, evalErrs, nil
}

// configFromSettings parses the scene's raw length literals and assembles
// the runner configuration. Fixtures are junction boxes throughout.
func configFromSettings(s engine.Settings, v *model.View) (clearance.Config, error) {
	minClear, err := units.ParseLength(s.MinClearance)
	if err != nil {
		return clearance.Config{}, fmt.Errorf("min-clearance: %w", err)
	}
	tol, err := units.ParseLength(s.Tolerance)
	if err != nil {
		return clearance.Config{}, fmt.Errorf("tolerance: %w", err)
	}
	return clearance.Config{
		View:             v,
		Obstructions:     raycast.NewFilter(s.Obstructions...),
		FixtureCategory:  model.CategoryJunctionBox,
		FamilyTypeMarker: s.FamilyMarker,
		MinClearance:     minClear,
		Tolerance:        tol,
	}, nil
}

// fixtureData flattens one fixture result for output, formatting lengths
// back to feet literals.
func fixtureData(fr clearance.FixtureResult) FixtureData {
	fd := FixtureData{
		ID:       string(fr.ID),
		State:    fr.Outcome.State.String(),
		Probes:   fr.Probes,
		Accepted: len(fr.Accepted),
	}
	switch fr.Outcome.State {
	case clearance.StateSingle:
		fd.Single = units.FormatFeet(fr.Outcome.Single)
		fd.RawValue = fr.Outcome.Single
	case clearance.StateMinMax:
		fd.Min = units.FormatFeet(fr.Outcome.Min)
		fd.Max = units.FormatFeet(fr.Outcome.Max)
		fd.RawValue = fr.Outcome.Min
	}
	return fd
}

func idStrings(ids []model.ElementID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}
