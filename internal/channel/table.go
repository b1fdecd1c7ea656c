package channel

import "sort"

// Table maps channel identifiers to overrides. It is read-only after
// construction; every accessor hands out copies.
type Table struct {
	overrides map[string]ChannelOverride
}

// NewTable builds a table from the given overrides. The map is copied, so later
// changes to it do not leak into the table.
func NewTable(overrides map[string]ChannelOverride) *Table {
	t := &Table{overrides: make(map[string]ChannelOverride, len(overrides))}
	for id, o := range overrides {
		t.overrides[id] = o.Clone()
	}
	return t
}

// Lookup returns the override for a channel identifier. Identifiers are matched
// case-sensitively.
func (t *Table) Lookup(id string) (ChannelOverride, bool) {
	if t == nil {
		return ChannelOverride{}, false
	}
	o, ok := t.overrides[id]
	if !ok {
		return ChannelOverride{}, false
	}
	return o.Clone(), true
}

// Has reports whether the table holds an override for id.
func (t *Table) Has(id string) bool {
	if t == nil {
		return false
	}
	_, ok := t.overrides[id]
	return ok
}

// Len returns the number of channels in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.overrides)
}

// IDs returns the channel identifiers in sorted order.
func (t *Table) IDs() []string {
	if t == nil {
		return nil
	}
	ids := make([]string, 0, len(t.overrides))
	for id := range t.overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Map returns a deep copy of the table contents.
func (t *Table) Map() map[string]ChannelOverride {
	out := make(map[string]ChannelOverride, t.Len())
	if t == nil {
		return out
	}
	for id, o := range t.overrides {
		out[id] = o.Clone()
	}
	return out
}
