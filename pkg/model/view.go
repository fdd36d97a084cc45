package model

// View is the visibility context an analysis runs under. Elements whose
// category is hidden in the view render no geometry, which upstream code
// treats as "no top face found" rather than an error.
type View struct {
	Name   string
	hidden map[Category]bool
}

// NewView creates a view with everything visible.
func NewView(name string) *View {
	return &View{Name: name, hidden: make(map[Category]bool)}
}

// Hide removes a category from the view.
func (v *View) Hide(c Category) *View {
	v.hidden[c] = true
	return v
}

// Visible reports whether a category renders in this view. A nil view shows
// everything.
func (v *View) Visible(c Category) bool {
	if v == nil {
		return true
	}
	return !v.hidden[c]
}
