// Package metadata provides the tag record that processors read and
// mutate. A record maps tag names to one or more string values, the way
// tagging pipelines expose track and release metadata.
package metadata

import "strings"

// Record is an ordered mapping from tag name to values. Tag names are
// case-insensitive; lookups and writes normalize to lower case. Values
// are never interpreted by the record itself.
type Record struct {
	values map[string][]string
	order  []string
}

// New returns an empty record.
func New() *Record {
	return &Record{values: make(map[string][]string)}
}

func normalizeName(name string) string {
	return strings.ToLower(name)
}

// Get returns the first value of the tag, or "" when the tag is absent.
func (r *Record) Get(name string) string {
	vs := r.values[normalizeName(name)]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// GetAll returns a copy of all values of the tag. Absent tags yield an
// empty slice.
func (r *Record) GetAll(name string) []string {
	vs := r.values[normalizeName(name)]
	if len(vs) == 0 {
		return nil
	}
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// Set replaces the tag with a single value.
func (r *Record) Set(name, value string) {
	r.SetAll(name, []string{value})
}

// SetAll replaces the tag with the given values. An empty slice removes
// nothing; it stores an empty multi-value so Contains still reports the
// tag as present.
func (r *Record) SetAll(name string, values []string) {
	key := normalizeName(name)
	if _, ok := r.values[key]; !ok {
		r.order = append(r.order, key)
	}
	vs := make([]string, len(values))
	copy(vs, values)
	r.values[key] = vs
}

// Contains reports whether the tag is present.
func (r *Record) Contains(name string) bool {
	_, ok := r.values[normalizeName(name)]
	return ok
}

// Delete removes the tag. Deleting an absent tag is a no-op.
func (r *Record) Delete(name string) {
	key := normalizeName(name)
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Keys returns tag names in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := New()
	for _, k := range r.order {
		c.SetAll(k, r.values[k])
	}
	return c
}
