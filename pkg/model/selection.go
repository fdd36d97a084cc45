package model

// SelectionSink receives element id lists for human review, e.g. fixtures of
// the wrong family type or fixtures whose clearance could not be computed.
// Implementations highlight them in whatever surface the host provides.
type SelectionSink interface {
	Highlight(reason string, ids []ElementID)
}

// Collector is a SelectionSink that records what was highlighted, keyed by
// reason. Useful as the default sink and in tests.
type Collector struct {
	byReason map[string][]ElementID
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{byReason: make(map[string][]ElementID)}
}

// Highlight records the ids under the given reason.
func (c *Collector) Highlight(reason string, ids []ElementID) {
	c.byReason[reason] = append(c.byReason[reason], ids...)
}

// Highlighted returns the ids recorded under a reason.
func (c *Collector) Highlighted(reason string) []ElementID {
	return c.byReason[reason]
}
