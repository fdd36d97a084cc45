package model

import "github.com/JPTomorrow/headroom/pkg/brep"

// Category classifies placed elements for view visibility and ray filters.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryJunctionBox
	CategoryLightingFixture
	CategoryCeiling
	CategoryStructuralFraming
	CategoryDuct
	CategoryConduit
)

func (c Category) String() string {
	switch c {
	case CategoryGeneric:
		return "generic"
	case CategoryJunctionBox:
		return "junction-box"
	case CategoryLightingFixture:
		return "lighting-fixture"
	case CategoryCeiling:
		return "ceiling"
	case CategoryStructuralFraming:
		return "structural-framing"
	case CategoryDuct:
		return "duct"
	case CategoryConduit:
		return "conduit"
	default:
		return "unknown"
	}
}

// PrimKind distinguishes display primitives carried for mesh export.
type PrimKind int

const (
	PrimBox PrimKind = iota
	PrimCylinder
)

// PrimSpec is the display primitive an element was built from, if any. The
// analysis never reads it; the mesh exporter renders from it.
type PrimSpec struct {
	Kind     PrimKind
	Dims     brep.Vec // box: x/y/z extents
	Diameter float64  // cylinder
	Height   float64  // cylinder
	Offset   brep.Vec // definition-space offset of the min corner / base
}

// Element is a placed instance in the model. Solids are stored in
// definition space; Placement maps them to instance space. FamilyType
// carries the host's family/type designation used to screen out elements of
// the wrong type before analysis.
type Element struct {
	ID         ElementID
	Name       string
	Category   Category
	FamilyType string
	Solids     []brep.Solid
	Prims      []PrimSpec
	Placement  brep.Transform
}
