package model

import (
	"fmt"

	"github.com/JPTomorrow/headroom/pkg/brep"
)

// Link is a referenced sub-model placed into the host model with its own
// transform. Rays see through links; attribute writes never target them.
type Link struct {
	ID        LinkID
	Name      string
	Sub       *Model
	Placement brep.Transform
}

// Model is the root container. Element and link iteration follows insertion
// order so every traversal in the engine is deterministic.
type Model struct {
	elements  map[ElementID]*Element
	elemOrder []ElementID
	links     map[LinkID]*Link
	linkOrder []LinkID

	attrs *AttributeStore
}

// New creates an empty model with a fresh attribute store.
func New() *Model {
	return &Model{
		elements: make(map[ElementID]*Element),
		links:    make(map[LinkID]*Link),
		attrs:    newAttributeStore(),
	}
}

// AddElement registers an element. Duplicate ids are an error.
func (m *Model) AddElement(e *Element) error {
	if e.ID.IsZero() {
		return fmt.Errorf("model: element %q has no id", e.Name)
	}
	if _, exists := m.elements[e.ID]; exists {
		return fmt.Errorf("model: duplicate element id %s", e.ID)
	}
	m.elements[e.ID] = e
	m.elemOrder = append(m.elemOrder, e.ID)
	return nil
}

// AddLink registers a linked sub-model.
func (m *Model) AddLink(l *Link) error {
	if l.ID == "" {
		return fmt.Errorf("model: link %q has no id", l.Name)
	}
	if _, exists := m.links[l.ID]; exists {
		return fmt.Errorf("model: duplicate link id %s", l.ID)
	}
	m.links[l.ID] = l
	m.linkOrder = append(m.linkOrder, l.ID)
	return nil
}

// Get returns the element with the given id, or nil.
func (m *Model) Get(id ElementID) *Element {
	return m.elements[id]
}

// Elements returns all elements in insertion order.
func (m *Model) Elements() []*Element {
	out := make([]*Element, 0, len(m.elemOrder))
	for _, id := range m.elemOrder {
		out = append(out, m.elements[id])
	}
	return out
}

// Links returns all links in insertion order.
func (m *Model) Links() []*Link {
	out := make([]*Link, 0, len(m.linkOrder))
	for _, id := range m.linkOrder {
		out = append(out, m.links[id])
	}
	return out
}

// Resolve maps a struck-object reference back to its element, or nil when
// the reference is dangling. Callers drop collisions that fail to resolve.
func (m *Model) Resolve(r Ref) *Element {
	if r.InRoot() {
		return m.elements[r.Elem]
	}
	l := m.links[r.Link]
	if l == nil || l.Sub == nil {
		return nil
	}
	return l.Sub.elements[r.Elem]
}

// Attributes returns the model's clearance attribute store.
func (m *Model) Attributes() *AttributeStore {
	return m.attrs
}
