// Package brep holds the boundary-representation geometry types used by the
// clearance engine: planar faces with edge loops, solids, placement
// transforms, and the exact ray/face intersection math. All coordinates are
// decimal feet. The vertical axis is Z.
package brep
