package model

import "fmt"

// ClearanceRecord is the typed attribute schema written per fixture. At the
// end of a run exactly one of the three shapes holds: Single set, Min+Max
// set, or Failed true with every value cleared.
type ClearanceRecord struct {
	Single *float64
	Min    *float64
	Max    *float64
	Failed bool
}

// IsEmpty reports whether the record carries no values and no failure mark.
func (r ClearanceRecord) IsEmpty() bool {
	return r.Single == nil && r.Min == nil && r.Max == nil && !r.Failed
}

// AttributeStore holds committed clearance records. All mutation goes
// through a Session; reads outside a session observe only committed state.
type AttributeStore struct {
	committed map[ElementID]ClearanceRecord
	locked    map[ElementID]bool
}

func newAttributeStore() *AttributeStore {
	return &AttributeStore{
		committed: make(map[ElementID]ClearanceRecord),
		locked:    make(map[ElementID]bool),
	}
}

// Record returns the committed record for an element.
func (s *AttributeStore) Record(id ElementID) ClearanceRecord {
	return s.committed[id]
}

// LockElement makes every subsequent write to the element fail, standing in
// for a host element with missing or malformed parameter fields.
func (s *AttributeStore) LockElement(id ElementID) {
	s.locked[id] = true
}

// errWriteRejected is the per-element write failure callers catch at fixture
// granularity.
func errWriteRejected(id ElementID) error {
	return fmt.Errorf("attribute store: element %s rejects clearance writes", id.Short())
}
