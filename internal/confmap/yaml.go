package confmap

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FromYAMLScalar converts a YAML scalar node into a Value using the node's
// resolved tag. It reports false for non-scalar and null nodes.
func FromYAMLScalar(node *yaml.Node) (Value, bool) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return Value{}, false
	}
	switch node.ShortTag() {
	case "!!null":
		return Value{}, false
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return String(node.Value), true
		}
		return Bool(b), true
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			if n, perr := strconv.ParseFloat(node.Value, 64); perr == nil {
				return Number(n), true
			}
			return String(node.Value), true
		}
		return Number(f), true
	default:
		return String(node.Value), true
	}
}

// DecodeYAML reads a YAML mapping of dotted keys to scalars, preserving
// document order. Nested mappings, sequences and nulls are dropped and
// reported as warnings.
func DecodeYAML(node *yaml.Node) (*Map, []string) {
	out := New()
	if node == nil {
		return out, nil
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return out, []string{fmt.Sprintf("line %d: expected a mapping of keys to values", node.Line)}
	}

	var warnings []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		v, ok := FromYAMLScalar(valueNode)
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"line %d: %s skipped: only boolean, number and string values are supported",
				keyNode.Line, keyNode.Value))
			continue
		}
		out.Set(keyNode.Value, v)
	}
	return out, warnings
}
