package model

import "strings"

// ElementID identifies a placed element within one model. IDs are stable
// path-like strings assigned at creation so runs are reproducible.
type ElementID string

// ZeroID is the zero value of ElementID.
const ZeroID ElementID = ""

// NewElementID builds an id from a path-like seed, e.g. "jbox/kitchen-1".
func NewElementID(seed string) ElementID {
	return ElementID(seed)
}

// IsZero reports whether the id is unset.
func (id ElementID) IsZero() bool {
	return id == ZeroID
}

// Short returns a compact form for messages: the final path segment.
func (id ElementID) Short() string {
	s := string(id)
	if i := strings.LastIndexByte(s, '/'); i >= 0 && i+1 < len(s) {
		return s[i+1:]
	}
	return s
}

func (id ElementID) String() string {
	return string(id)
}

// LinkID identifies a linked sub-model. The zero value means the root model.
type LinkID string

// Ref is the identity of a struck object: which model it lives in (root when
// Link is empty) and which element it is.
type Ref struct {
	Link LinkID
	Elem ElementID
}

// InRoot reports whether the ref points into the root model.
func (r Ref) InRoot() bool {
	return r.Link == ""
}

func (r Ref) String() string {
	if r.InRoot() {
		return string(r.Elem)
	}
	return string(r.Link) + "::" + string(r.Elem)
}
