package confmap

import (
	"math"

	"gopkg.in/yaml.v3"
)

// Map is an insertion-ordered mapping from dotted key to Value. Setting an
// existing key replaces its value but keeps its position.
type Map struct {
	keys   []string
	values map[string]Value
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores v under key.
func (m *Map) Set(key string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key. Deleting a missing key is a no-op.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	out := New()
	m.Range(func(k string, v Value) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Merge copies every entry of other into m. Keys already in m are
// overwritten in place; new keys are appended in other's order.
func (m *Map) Merge(other *Map) {
	other.Range(func(k string, v Value) bool {
		m.Set(k, v)
		return true
	})
}

// Equal reports whether m and other hold the same keys with equal values,
// regardless of order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Range(func(k string, v Value) bool {
		ov, ok := other.Get(k)
		if !ok || !v.Equal(ov) {
			equal = false
		}
		return equal
	})
	return equal
}

// MarshalYAML encodes the map as an ordered YAML mapping of scalars.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	m.Range(func(k string, v Value) bool {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			scalarNode(v),
		)
		return true
	})
	return node, nil
}

// MarshalYAML encodes the value as a tagged YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	return scalarNode(v), nil
}

func scalarNode(v Value) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: v.Text()}
	switch v.Kind() {
	case KindBool:
		node.Tag = "!!bool"
	case KindNumber:
		node.Tag = "!!float"
		if n, _ := v.AsNumber(); n == math.Trunc(n) && math.Abs(n) < 1e15 {
			node.Tag = "!!int"
		}
	default:
		node.Tag = "!!str"
	}
	return node
}
