// Package tree implements phenolint's canonical document representation:
// a small closed value type that JSON, YAML, and Protobuf all normalize
// into, plus the span map and traversal that operate over it.
package tree

import "fmt"

// Kind discriminates the variants of Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSeq
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is the canonical tree node: exactly one of Null, Boolean, Number,
// String, an ordered sequence, or an insertion-ordered mapping.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	Seq    []Value
	Map    *Map
}

// Null returns the Null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number wraps a float64.
func Number(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// String wraps a string.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Seq wraps an ordered sequence of values.
func Seq(items ...Value) Value { return Value{Kind: KindSeq, Seq: items} }

// MapValue wraps an insertion-ordered mapping.
func MapValue(m *Map) Value { return Value{Kind: KindMap, Map: m} }

// IsNull reports whether v is the Null variant.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Get resolves a single decoded segment against v: the field named seg if
// v is a Map, the seg'th element if v is a Seq and seg is a valid index,
// or the zero Value with ok=false otherwise.
func (v Value) Get(seg string) (Value, bool) {
	switch v.Kind {
	case KindMap:
		if v.Map == nil {
			return Value{}, false
		}
		return v.Map.Get(seg)
	case KindSeq:
		idx, err := parseIndex(seg)
		if err != nil || idx < 0 || idx >= len(v.Seq) {
			return Value{}, false
		}
		return v.Seq[idx], true
	default:
		return Value{}, false
	}
}

func parseIndex(seg string) (int, error) {
	n := 0
	if seg == "" {
		return 0, fmt.Errorf("empty index")
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not an index: %q", seg)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// Map is an insertion-order preserving string-keyed mapping.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set inserts or overwrites key, preserving first-insertion order.
func (m *Map) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get looks up key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns keys in insertion order.
func (m *Map) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}
