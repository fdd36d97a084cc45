package model

import "fmt"

// Session is the single exclusive writer over an AttributeStore. Writes are
// staged while a write is open, sealed by CommitWrite, and become observable
// only when the enclosing group commits: a failed run leaves the store
// exactly as it was.
//
// The expected shape of a batch is one write pair nested in one group pair:
//
//	s := store.NewSession()
//	s.BeginGroup(); s.BeginWrite()
//	... Set / MarkFailed per fixture ...
//	s.CommitWrite(); s.CommitGroup()
type Session struct {
	store     *AttributeStore
	groupOpen bool
	writeOpen bool
	staged    map[ElementID]ClearanceRecord
	sealed    map[ElementID]ClearanceRecord
}

// NewSession creates a writer session over the store.
func (s *AttributeStore) NewSession() *Session {
	return &Session{store: s}
}

// BeginGroup opens the outer all-or-nothing grouping.
func (s *Session) BeginGroup() error {
	if s.groupOpen {
		return fmt.Errorf("session: group already open")
	}
	s.groupOpen = true
	s.sealed = nil
	return nil
}

// BeginWrite opens the inner write scope. Requires an open group.
func (s *Session) BeginWrite() error {
	if !s.groupOpen {
		return fmt.Errorf("session: begin write outside group")
	}
	if s.writeOpen {
		return fmt.Errorf("session: write already open")
	}
	s.writeOpen = true
	s.staged = make(map[ElementID]ClearanceRecord)
	return nil
}

// CommitWrite seals the staged writes into the group.
func (s *Session) CommitWrite() error {
	if !s.writeOpen {
		return fmt.Errorf("session: commit write without open write")
	}
	s.writeOpen = false
	s.sealed = s.staged
	s.staged = nil
	return nil
}

// CommitGroup publishes the sealed writes into the store.
func (s *Session) CommitGroup() error {
	if !s.groupOpen {
		return fmt.Errorf("session: commit group without open group")
	}
	if s.writeOpen {
		return fmt.Errorf("session: commit group with write still open")
	}
	for id, rec := range s.sealed {
		s.store.committed[id] = rec
	}
	s.groupOpen = false
	s.sealed = nil
	return nil
}

// RollbackGroup abandons the group; nothing reaches the store.
func (s *Session) RollbackGroup() {
	s.groupOpen = false
	s.writeOpen = false
	s.staged = nil
	s.sealed = nil
}

// working returns the record the session currently sees for an element:
// staged if present, committed otherwise.
func (s *Session) working(id ElementID) ClearanceRecord {
	if rec, ok := s.staged[id]; ok {
		return rec
	}
	return s.store.committed[id]
}

// set stages a mutation after checking write discipline and element locks.
func (s *Session) set(id ElementID, mutate func(*ClearanceRecord)) error {
	if !s.groupOpen || !s.writeOpen {
		return fmt.Errorf("session: write to %s outside open write", id.Short())
	}
	if s.store.locked[id] {
		return errWriteRejected(id)
	}
	rec := s.working(id)
	mutate(&rec)
	s.staged[id] = rec
	return nil
}

// SetSingle stores the single clearance value slot.
func (s *Session) SetSingle(id ElementID, v float64) error {
	return s.set(id, func(r *ClearanceRecord) {
		r.Single = &v
		r.Failed = false
	})
}

// SetMin stores the minimum clearance slot.
func (s *Session) SetMin(id ElementID, v float64) error {
	return s.set(id, func(r *ClearanceRecord) {
		r.Min = &v
		r.Failed = false
	})
}

// SetMax stores the maximum clearance slot.
func (s *Session) SetMax(id ElementID, v float64) error {
	return s.set(id, func(r *ClearanceRecord) {
		r.Max = &v
		r.Failed = false
	})
}

// MarkFailed records the failure marker and clears every value slot, so a
// failed fixture never retains stale readings.
func (s *Session) MarkFailed(id ElementID) error {
	return s.set(id, func(r *ClearanceRecord) {
		*r = ClearanceRecord{Failed: true}
	})
}
