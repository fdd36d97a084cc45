package model

import "testing"

func TestSessionCommitPublishes(t *testing.T) {
	store := newAttributeStore()
	s := store.NewSession()

	if err := s.BeginGroup(); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginWrite(); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSingle("jbox/a", 6.5); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMin("jbox/b", 3.0); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMax("jbox/b", 7.0); err != nil {
		t.Fatal(err)
	}

	// Nothing is observable before the group commits.
	if !store.Record("jbox/a").IsEmpty() {
		t.Error("staged write visible before commit")
	}

	if err := s.CommitWrite(); err != nil {
		t.Fatal(err)
	}
	if !store.Record("jbox/a").IsEmpty() {
		t.Error("sealed write visible before group commit")
	}
	if err := s.CommitGroup(); err != nil {
		t.Fatal(err)
	}

	a := store.Record("jbox/a")
	if a.Single == nil || *a.Single != 6.5 {
		t.Errorf("jbox/a record = %+v, want Single 6.5", a)
	}
	b := store.Record("jbox/b")
	if b.Min == nil || *b.Min != 3.0 || b.Max == nil || *b.Max != 7.0 {
		t.Errorf("jbox/b record = %+v, want Min 3 Max 7", b)
	}
}

func TestSessionRollbackDiscardsEverything(t *testing.T) {
	store := newAttributeStore()
	s := store.NewSession()

	if err := s.BeginGroup(); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginWrite(); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSingle("jbox/a", 6.5); err != nil {
		t.Fatal(err)
	}
	if err := s.CommitWrite(); err != nil {
		t.Fatal(err)
	}
	s.RollbackGroup()

	if !store.Record("jbox/a").IsEmpty() {
		t.Error("rolled-back write reached the store")
	}

	// The session is reusable after a rollback.
	if err := s.BeginGroup(); err != nil {
		t.Errorf("BeginGroup after rollback failed: %v", err)
	}
}

func TestSessionDiscipline(t *testing.T) {
	store := newAttributeStore()
	s := store.NewSession()

	if err := s.SetSingle("jbox/a", 1); err == nil {
		t.Error("write outside any group should fail")
	}
	if err := s.BeginWrite(); err == nil {
		t.Error("BeginWrite outside group should fail")
	}
	if err := s.CommitWrite(); err == nil {
		t.Error("CommitWrite without open write should fail")
	}
	if err := s.CommitGroup(); err == nil {
		t.Error("CommitGroup without open group should fail")
	}

	if err := s.BeginGroup(); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginGroup(); err == nil {
		t.Error("nested BeginGroup should fail")
	}
	if err := s.SetSingle("jbox/a", 1); err == nil {
		t.Error("write outside open write should fail")
	}
	if err := s.BeginWrite(); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginWrite(); err == nil {
		t.Error("nested BeginWrite should fail")
	}
	if err := s.CommitGroup(); err == nil {
		t.Error("CommitGroup with write still open should fail")
	}
}

func TestLockedElementRejectsWrites(t *testing.T) {
	store := newAttributeStore()
	store.LockElement("jbox/broken")

	s := store.NewSession()
	if err := s.BeginGroup(); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginWrite(); err != nil {
		t.Fatal(err)
	}

	if err := s.SetSingle("jbox/broken", 5); err == nil {
		t.Error("locked element accepted a write")
	}
	if err := s.MarkFailed("jbox/broken"); err == nil {
		t.Error("locked element accepted MarkFailed")
	}

	// The rejection is per element; others still write.
	if err := s.SetSingle("jbox/ok", 5); err != nil {
		t.Errorf("healthy element rejected: %v", err)
	}

	if err := s.CommitWrite(); err != nil {
		t.Fatal(err)
	}
	if err := s.CommitGroup(); err != nil {
		t.Fatal(err)
	}
	if !store.Record("jbox/broken").IsEmpty() {
		t.Error("locked element got a record")
	}
}

func TestMarkFailedClearsValues(t *testing.T) {
	store := newAttributeStore()
	s := store.NewSession()

	if err := s.BeginGroup(); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginWrite(); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMin("jbox/a", 2); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMax("jbox/a", 4); err != nil {
		t.Fatal(err)
	}
	if err := s.MarkFailed("jbox/a"); err != nil {
		t.Fatal(err)
	}
	if err := s.CommitWrite(); err != nil {
		t.Fatal(err)
	}
	if err := s.CommitGroup(); err != nil {
		t.Fatal(err)
	}

	rec := store.Record("jbox/a")
	if !rec.Failed {
		t.Error("record not marked failed")
	}
	if rec.Single != nil || rec.Min != nil || rec.Max != nil {
		t.Errorf("failed record retains values: %+v", rec)
	}
}

func TestMarkFailedOverridesEarlierCommit(t *testing.T) {
	store := newAttributeStore()

	// First run writes a value.
	s := store.NewSession()
	s.BeginGroup()
	s.BeginWrite()
	if err := s.SetSingle("jbox/a", 6.5); err != nil {
		t.Fatal(err)
	}
	s.CommitWrite()
	s.CommitGroup()

	// A later failing run must clear it.
	s2 := store.NewSession()
	s2.BeginGroup()
	s2.BeginWrite()
	if err := s2.MarkFailed("jbox/a"); err != nil {
		t.Fatal(err)
	}
	s2.CommitWrite()
	s2.CommitGroup()

	rec := store.Record("jbox/a")
	if !rec.Failed || rec.Single != nil {
		t.Errorf("record = %+v, want failed with no values", rec)
	}
}
