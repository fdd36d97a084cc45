// Package geomquery extracts instance-space geometry from a model under a
// view context. It is the only place placement transforms are applied; the
// rest of the engine works on the solids it hands out. Extraction never
// fails: an element with nothing visible yields an empty slice, which
// callers treat as "no top face found".
package geomquery

import (
	"github.com/JPTomorrow/headroom/pkg/brep"
	"github.com/JPTomorrow/headroom/pkg/model"
)

// SolidsOf returns the instance-space solids representing an element in the
// given view. Hidden categories contribute nothing; solids without faces or
// edges are skipped silently.
func SolidsOf(v *model.View, e *model.Element) []brep.Solid {
	if e == nil || !v.Visible(e.Category) {
		return nil
	}
	var out []brep.Solid
	for _, s := range e.Solids {
		if !s.Valid() {
			continue
		}
		out = append(out, e.Placement.ApplySolid(s))
	}
	return out
}

// Instance is one visible element together with its world transform and the
// reference identifying it, including elements inside linked sub-models.
type Instance struct {
	Ref     model.Ref
	Element *model.Element
	World   brep.Transform
}

// VisibleInstances enumerates every element visible in the view, root model
// first and then each link in insertion order, with link placements composed
// onto element placements.
func VisibleInstances(m *model.Model, v *model.View) []Instance {
	var out []Instance
	for _, e := range m.Elements() {
		if !v.Visible(e.Category) {
			continue
		}
		out = append(out, Instance{
			Ref:     model.Ref{Elem: e.ID},
			Element: e,
			World:   e.Placement,
		})
	}
	for _, l := range m.Links() {
		if l.Sub == nil {
			continue
		}
		for _, e := range l.Sub.Elements() {
			if !v.Visible(e.Category) {
				continue
			}
			out = append(out, Instance{
				Ref:     model.Ref{Link: l.ID, Elem: e.ID},
				Element: e,
				World:   l.Placement.Compose(e.Placement),
			})
		}
	}
	return out
}

// WorldSolids returns the instance's valid solids mapped to world space.
func (in Instance) WorldSolids() []brep.Solid {
	var out []brep.Solid
	for _, s := range in.Element.Solids {
		if !s.Valid() {
			continue
		}
		out = append(out, in.World.ApplySolid(s))
	}
	return out
}
