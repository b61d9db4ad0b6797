package document

import "encoding/json"

// Field is one extracted value: either a scalar string or an ordered list.
type Field struct {
	Value  string
	Items  []string
	IsList bool
}

// MarshalJSON emits a plain string for scalar fields and an array for lists.
func (f Field) MarshalJSON() ([]byte, error) {
	if f.IsList {
		items := f.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(f.Value)
}

// Result is the output of one extraction: a mapping from field key to value
// plus the keys in the order they were first written. The order slice exists
// because a JSON object carries no order guarantee for consumers; a renderer
// or annotation UI replays it to reproduce the document's top-to-bottom
// section order.
type Result struct {
	fields map[string]Field
	order  []string
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{fields: make(map[string]Field)}
}

// Set writes a scalar field. A key is recorded in the order slice only on its
// first write; later writes replace the value in place.
func (r *Result) Set(key, value string) {
	if _, exists := r.fields[key]; !exists {
		r.order = append(r.order, key)
	}
	r.fields[key] = Field{Value: value}
}

// SetList writes a list field, with the same first-write order rule as Set.
func (r *Result) SetList(key string, items []string) {
	if _, exists := r.fields[key]; !exists {
		r.order = append(r.order, key)
	}
	r.fields[key] = Field{Items: items, IsList: true}
}

// Get returns the field for key and whether it is present.
func (r *Result) Get(key string) (Field, bool) {
	f, ok := r.fields[key]
	return f, ok
}

// Has reports whether key is present.
func (r *Result) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Len returns the number of populated fields.
func (r *Result) Len() int {
	return len(r.fields)
}

// Order returns the keys in first-write order.
func (r *Result) Order() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Fields returns a copy of the key→field mapping.
func (r *Result) Fields() map[string]Field {
	out := make(map[string]Field, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// MarshalJSON emits the transport envelope used by every consumer:
// the field mapping plus the companion order array.
func (r *Result) MarshalJSON() ([]byte, error) {
	order := r.order
	if order == nil {
		order = []string{}
	}
	return json.Marshal(struct {
		ParsedData map[string]Field `json:"parsed_data"`
		Order      []string         `json:"parsed_data_order"`
	}{
		ParsedData: r.fields,
		Order:      order,
	})
}
