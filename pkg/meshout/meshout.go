// Package meshout renders the display primitives of a model into triangle
// meshes using a geometry kernel. One mesh is produced per primitive. The
// output feeds viewers and file export; clearance analysis never consumes it.
package meshout

import (
	"fmt"

	"github.com/JPTomorrow/headroom/pkg/geomquery"
	"github.com/JPTomorrow/headroom/pkg/kernel"
	"github.com/JPTomorrow/headroom/pkg/model"
)

// Export walks every visible instance of the model, links included, and
// produces meshes from each element's display primitives. The exporter is
// read-only and never mutates the model. Elements with no primitives are
// skipped silently.
func Export(m *model.Model, v *model.View, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if m == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, inst := range geomquery.VisibleInstances(m, v) {
		collected, err := renderInstance(k, inst)
		if err != nil {
			return nil, fmt.Errorf("meshout: element %s: %w", inst.Element.ID.Short(), err)
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}

// renderInstance builds one mesh per primitive of the instance, placed by
// the instance's world transform.
func renderInstance(k kernel.Kernel, inst geomquery.Instance) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for i, prim := range inst.Element.Prims {
		solid, err := buildPrim(k, prim)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}

		// Match the placement math of the analysis geometry: definition
		// space offset first, then rotation about the origin, then the
		// world translation.
		if off := prim.Offset; off.X != 0 || off.Y != 0 || off.Z != 0 {
			solid = k.Translate(solid, off.X, off.Y, off.Z)
		}
		w := inst.World
		if w.RotationZ != 0 {
			solid = k.Rotate(solid, 0, 0, w.RotationZ)
		}
		if tr := w.Translation; tr.X != 0 || tr.Y != 0 || tr.Z != 0 {
			solid = k.Translate(solid, tr.X, tr.Y, tr.Z)
		}

		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("ToMesh failed for primitive %d: %w", i, err)
		}

		if inst.Element.Name != "" {
			mesh.ElementName = inst.Element.Name
		} else {
			mesh.ElementName = inst.Element.ID.Short()
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// buildPrim creates the kernel solid for one display primitive.
func buildPrim(k kernel.Kernel, p model.PrimSpec) (kernel.Solid, error) {
	switch p.Kind {
	case model.PrimBox:
		return k.Box(p.Dims.X, p.Dims.Y, p.Dims.Z), nil
	case model.PrimCylinder:
		return k.Cylinder(p.Height, p.Diameter/2, 32), nil
	default:
		return nil, fmt.Errorf("unsupported primitive kind %d", p.Kind)
	}
}
