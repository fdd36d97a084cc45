// Package clearance measures how much open space sits above each fixture in
// a model. For every qualifying fixture it picks the topmost bounding face,
// turns the face's straight boundary edges into probe points, casts upward
// rays against an obstruction-filtered scene, discards sub-threshold hits as
// self-geometry noise, and reduces the surviving distances into one or two
// clearance attributes, or marks the fixture failed. All attribute writes
// for a run happen inside a single transactional group.
package clearance
