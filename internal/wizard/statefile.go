package wizard

import (
	"fmt"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/fukuiiconf/internal/catalog"
	"github.com/donaldgifford/fukuiiconf/internal/confmap"
)

// StateFile is the YAML description of a session.
//
//	profile: miner
//	chain: etc
//	custom:
//	  fukuii.mining.num-threads: 8
//	unset:
//	  - fukuii.mining.header-extra-data
//	chain_overrides:
//	  mystique-block-number: "14525000"
//
// When profile is set its preset is applied first. Keys listed under
// unset are then removed and custom is merged on top, so a key listed in
// both moves behind the remaining preset keys.
type StateFile struct {
	Profile        string       `yaml:"profile,omitempty"`
	Chain          string       `yaml:"chain,omitempty"`
	Custom         *confmap.Map `yaml:"custom,omitempty"`
	Unset          []string     `yaml:"unset,omitempty"`
	ChainOverrides *confmap.Map `yaml:"chain_overrides,omitempty"`
}

// DecodeStateFile reads a state file document. Values that are not
// scalars are dropped and reported as warnings, as are unknown top-level
// keys.
func DecodeStateFile(data []byte) (*StateFile, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, oops.In("wizard").Wrapf(err, "decoding state file")
	}

	sf := &StateFile{}
	if doc.Kind == 0 {
		return sf, nil, nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return sf, nil, nil
		}
		root = root.Content[0]
	}
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return sf, nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, oops.In("wizard").Errorf("state file: line %d: expected a mapping", root.Line)
	}

	var warnings []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "profile":
			sf.Profile = scalarText(value)
		case "chain":
			sf.Chain = scalarText(value)
		case "custom":
			m, w := confmap.DecodeYAML(value)
			sf.Custom = m
			warnings = append(warnings, w...)
		case "unset":
			if err := value.Decode(&sf.Unset); err != nil {
				warnings = append(warnings, fmt.Sprintf("line %d: unset must be a list of keys", value.Line))
			}
		case "chain_overrides":
			m, w := decodeLiteral(value)
			sf.ChainOverrides = m
			warnings = append(warnings, w...)
		default:
			warnings = append(warnings, fmt.Sprintf("line %d: unknown key %q ignored", key.Line, key.Value))
		}
	}
	return sf, warnings, nil
}

func scalarText(n *yaml.Node) string {
	if n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return ""
	}
	return n.Value
}

// decodeLiteral reads a mapping of scalars keeping each value as its
// literal text.
func decodeLiteral(node *yaml.Node) (*confmap.Map, []string) {
	out := confmap.New()
	if node.Kind != yaml.MappingNode {
		return out, []string{fmt.Sprintf("line %d: expected a mapping of keys to values", node.Line)}
	}
	var warnings []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode || v.ShortTag() == "!!null" {
			warnings = append(warnings, fmt.Sprintf("line %d: %s skipped: only scalar values are supported", k.Line, k.Value))
			continue
		}
		out.Set(k.Value, confmap.String(v.Value))
	}
	return out, warnings
}

// Apply builds a session from the state file. defaultChain is used when
// the file names no chain.
func (sf *StateFile) Apply(cat *catalog.Catalog, defaultChain string) (*State, error) {
	chain := sf.Chain
	if chain == "" {
		chain = defaultChain
	}
	s := New("")
	if err := s.SelectChain(cat, chain); err != nil {
		return nil, err
	}
	if sf.Profile != "" {
		if err := s.SelectProfile(cat, sf.Profile); err != nil {
			return nil, err
		}
	}
	for _, k := range sf.Unset {
		s.Unset(k)
	}
	s.Custom.Merge(sf.Custom)
	s.ChainOverrides.Merge(sf.ChainOverrides)
	return s, nil
}

// LoadState decodes data and applies it.
func LoadState(cat *catalog.Catalog, data []byte, defaultChain string) (*State, []string, error) {
	sf, warnings, err := DecodeStateFile(data)
	if err != nil {
		return nil, nil, err
	}
	s, err := sf.Apply(cat, defaultChain)
	if err != nil {
		return nil, warnings, err
	}
	return s, warnings, nil
}

// Snapshot describes the session as a state file. Preset keys of the
// selected profile that were removed or moved are listed under unset so
// that applying the snapshot reproduces the same values in the same
// order.
func (s *State) Snapshot(cat *catalog.Catalog) *StateFile {
	sf := &StateFile{
		Profile: s.Profile,
		Chain:   s.Chain,
		Custom:  s.Custom.Clone(),
	}
	if s.ChainOverrides.Len() > 0 {
		sf.ChainOverrides = s.ChainOverrides.Clone()
	}
	if s.Profile != "" {
		if p, err := cat.Profile(s.Profile); err == nil {
			sf.Unset = presetRemovals(p.Config.Keys(), s.Custom.Keys())
		}
	}
	return sf
}

// presetRemovals returns the preset keys to unset so that preset, minus
// those keys, merged with keys yields keys in order. Only the leading run
// of keys that follows preset order can stay in place.
func presetRemovals(preset, keys []string) []string {
	pos := make(map[string]int, len(preset))
	for i, k := range preset {
		pos[k] = i
	}
	kept := make(map[string]bool)
	last := -1
	for _, k := range keys {
		i, ok := pos[k]
		if !ok || i <= last {
			break
		}
		kept[k] = true
		last = i
	}

	var out []string
	for _, k := range preset {
		if !kept[k] {
			out = append(out, k)
		}
	}
	return out
}

// Encode writes the state file as YAML.
func (sf *StateFile) Encode() ([]byte, error) {
	out, err := yaml.Marshal(sf)
	if err != nil {
		return nil, oops.In("wizard").Wrapf(err, "encoding state file")
	}
	return out, nil
}
