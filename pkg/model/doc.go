// Package model is the in-memory building model the clearance engine runs
// against: placed elements with boundary-representation geometry, linked
// sub-models, views with category visibility, a typed clearance attribute
// store behind a transactional write session, and a selection sink for
// surfacing element id lists to human review.
//
// The analysis packages treat everything here as opaque, read-only handles;
// the only mutation path is the attribute store inside an open write session.
package model
