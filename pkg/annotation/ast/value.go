package ast

import (
	"bytes"
	"encoding/json"
)

// Kind identifies the shape of a parsed cell.
type Kind int

const (
	// KindEmpty marks a cell with no usable annotation data.
	KindEmpty Kind = iota
	// KindMapping marks a cell made of key: value blocks.
	KindMapping
	// KindList marks a cell made of bare blocks.
	KindList
	// KindMixed marks a cell carrying both keyed and bare blocks.
	KindMixed
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindList:
		return "list"
	case KindMixed:
		return "mixed"
	default:
		return "empty"
	}
}

// ParseKind is the inverse of Kind.String. Unknown names map to KindEmpty.
func ParseKind(s string) Kind {
	switch s {
	case "mapping":
		return KindMapping
	case "list":
		return KindList
	case "mixed":
		return KindMixed
	default:
		return KindEmpty
	}
}

// Entry is a single key and its accumulated values.
type Entry struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// Value is the parsed form of one annotation cell.
//
// Entries keep the order in which keys first appeared in the cell; a key
// repeated across blocks accumulates into a single entry. Tags hold bare
// tokens in appearance order.
type Value struct {
	Kind    Kind
	Entries []Entry
	Tags    []string
}

// Empty returns the canonical empty value.
func Empty() Value {
	return Value{Kind: KindEmpty}
}

// NewList returns a list value, or the empty value when tags is empty.
func NewList(tags ...string) Value {
	if len(tags) == 0 {
		return Empty()
	}
	return Value{Kind: KindList, Tags: tags}
}

// IsEmpty reports whether the value carries no data.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// HasMapping reports whether the value carries keyed entries.
func (v Value) HasMapping() bool {
	return v.Kind == KindMapping || v.Kind == KindMixed
}

// HasList reports whether the value carries bare tokens.
func (v Value) HasList() bool {
	return v.Kind == KindList || v.Kind == KindMixed
}

// Get returns the values recorded under key.
func (v Value) Get(key string) ([]string, bool) {
	for _, e := range v.Entries {
		if e.Key == key {
			return e.Values, true
		}
	}
	return nil, false
}

// Keys returns the keys in order of first appearance.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.Entries))
	for _, e := range v.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Map returns the entries as a plain map. Ordering is lost.
func (v Value) Map() map[string][]string {
	m := make(map[string][]string, len(v.Entries))
	for _, e := range v.Entries {
		m[e.Key] = e.Values
	}
	return m
}

// Add appends values under key, creating the entry on first use.
func (v *Value) Add(key string, values ...string) {
	for i := range v.Entries {
		if v.Entries[i].Key == key {
			v.Entries[i].Values = append(v.Entries[i].Values, values...)
			return
		}
	}
	v.Entries = append(v.Entries, Entry{Key: key, Values: append([]string{}, values...)})
}

// Equal reports whether two values have the same kind, entries and tags.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind || len(v.Entries) != len(other.Entries) || len(v.Tags) != len(other.Tags) {
		return false
	}
	for i, e := range v.Entries {
		o := other.Entries[i]
		if e.Key != o.Key || !equalStrings(e.Values, o.Values) {
			return false
		}
	}
	return equalStrings(v.Tags, other.Tags)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes mappings as ordered objects, lists as arrays and the
// empty value as {}. Mixed values encode as {"mapping": {...}, "list": [...]}.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindMapping:
		return marshalEntries(v.Entries)
	case KindList:
		return json.Marshal(v.Tags)
	case KindMixed:
		mapping, err := marshalEntries(v.Entries)
		if err != nil {
			return nil, err
		}
		list, err := json.Marshal(v.Tags)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString(`{"mapping":`)
		buf.Write(mapping)
		buf.WriteString(`,"list":`)
		buf.Write(list)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("{}"), nil
	}
}

func marshalEntries(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		values := e.Values
		if values == nil {
			values = []string{}
		}
		vals, err := json.Marshal(values)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(vals)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
