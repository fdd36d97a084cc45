package brep

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec is the 3D vector type used throughout the engine. It aliases the sdfx
// vector so geometry can flow into the sdfx-backed mesh kernel without
// conversion.
type Vec = v3.Vec

// Up is the ray direction used for clearance probes.
var Up = Vec{X: 0, Y: 0, Z: 1}

// epsilon for plane-side and denominator tests.
const geomEps = 1e-9
