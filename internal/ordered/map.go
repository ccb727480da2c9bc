// Package ordered provides a minimal insertion-ordered string-keyed map.
// The document model (spec.md §3) requires several fields to behave like
// ordered mappings (abstract, body, body_nested, journal_id, article_id,
// ...) with deterministic iteration and JSON emission in first-seen key
// order, something Go's built-in map type cannot give us on its own;
// encoding/json sorts map keys alphabetically, which would violate the
// serializer's insertion-order contract (spec.md §4.7, §8).
package ordered

import (
	"bytes"
	"encoding/json"
)

// Map is an insertion-ordered string-keyed map of V.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// NewMap returns an empty ordered map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{values: map[string]V{}}
}

// StringMap is the common case of a Map with string values.
type StringMap = Map[string]

// NewStringMap returns an empty ordered string->string map.
func NewStringMap() *StringMap {
	return NewMap[string]()
}

// Set inserts or updates key, preserving first-insertion position.
func (m *Map[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = map[string]V{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.keys)
}

// Values returns the values in key-insertion order.
func (m *Map[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// MarshalJSON emits the map as a JSON object with keys in insertion
// order, which encoding/json does not otherwise guarantee for map[string]V.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the map, preserving the order
// keys appear in the source text via json.Decoder's token stream.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return &json.UnmarshalTypeError{Value: "non-object"}
	}
	m.keys = nil
	m.values = map[string]V{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var val V
		if err := dec.Decode(&val); err != nil {
			return err
		}
		m.Set(key, val)
	}
	return nil
}
