package actions

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value interface{}
}

// Map is an insertion-ordered mapping. It marshals to a YAML mapping whose
// keys appear in the order they were added so regenerated files diff cleanly.
type Map []Entry

// M builds a Map from alternating key/value arguments.
func M(kv ...interface{}) Map {
	if len(kv)%2 != 0 {
		panic("actions.M: odd number of arguments")
	}
	out := make(Map, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("actions.M: key %v is not a string", kv[i]))
		}
		out = out.Set(key, kv[i+1])
	}
	return out
}

// Get returns the value stored under key.
func (m Map) Get(key string) (interface{}, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, e := range m {
		keys = append(keys, e.Key)
	}
	return keys
}

// Set returns a copy of m with key set to value. An existing key keeps its
// position; a new key is appended.
func (m Map) Set(key string, value interface{}) Map {
	out := m.Clone()
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Entry{Key: key, Value: value})
}

// Merge overlays other onto m using Set semantics.
func (m Map) Merge(other Map) Map {
	out := m.Clone()
	for _, e := range other {
		out = out.Set(e.Key, e.Value)
	}
	return out
}

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	copy(out, m)
	return out
}

// MarshalYAML renders the entries as a mapping node in insertion order.
func (m Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key}
		value := &yaml.Node{}
		if err := value.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("encode %q: %w", e.Key, err)
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping node keeping document order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	out := make(Map, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("decode %q: %w", node.Content[i].Value, err)
		}
		out = out.Set(node.Content[i].Value, value)
	}
	*m = out
	return nil
}
