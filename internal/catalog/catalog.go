// Package catalog holds the static settings tables: profile presets, chain
// fork tables and advanced field metadata.
package catalog

import (
	"errors"

	"github.com/agnivade/levenshtein"
	"github.com/samber/oops"

	"github.com/donaldgifford/fukuiiconf/internal/confmap"
)

// ErrNotFound is returned when a profile or chain id is unknown.
var ErrNotFound = errors.New("not found")

// FieldType is the declared type of an advanced field.
type FieldType string

// Declared field types.
const (
	TypeBoolean FieldType = "boolean"
	TypeNumber  FieldType = "number"
	TypeText    FieldType = "text"
	TypeSelect  FieldType = "select"
)

// Spec is a display-only label/value pair describing a profile.
type Spec struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Profile is an immutable preset of configuration values.
type Profile struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Specs       []Spec       `yaml:"specs"`
	Config      *confmap.Map `yaml:"config"`
}

// Fork is one hard-fork activation entry of a chain. Value is kept as a
// string because users edit it as free text.
type Fork struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Chain is an immutable chain preset.
type Chain struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	NetworkID   int    `yaml:"network_id"`
	ChainID     string `yaml:"chain_id"`
	Description string `yaml:"description"`
	Forks       []Fork `yaml:"forks"`
}

// Field describes one settable key of the advanced editor.
type Field struct {
	Key         string        `yaml:"key"`
	Label       string        `yaml:"label"`
	Type        FieldType     `yaml:"type"`
	Default     confmap.Value `yaml:"default"`
	Options     []string      `yaml:"options,omitempty"`
	Description string        `yaml:"description"`
}

// Section groups related fields.
type Section struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Fields      []Field `yaml:"fields"`
}

// Catalog is a read-only view over the static tables.
type Catalog struct {
	profiles []Profile
	chains   []Chain
	sections []Section
	fields   map[string]Field
}

// New builds a Catalog from the given tables. Order is preserved.
func New(profiles []Profile, chains []Chain, sections []Section) *Catalog {
	c := &Catalog{
		profiles: profiles,
		chains:   chains,
		sections: sections,
		fields:   make(map[string]Field),
	}
	for _, s := range sections {
		for _, f := range s.Fields {
			if _, dup := c.fields[f.Key]; !dup {
				c.fields[f.Key] = f
			}
		}
	}
	return c
}

// Default returns the catalog shipped with the wizard.
func Default() *Catalog {
	return New(defaultProfiles(), defaultChains(), defaultSections())
}

// ProfileIDs returns all profile ids in enumeration order.
func (c *Catalog) ProfileIDs() []string {
	ids := make([]string, len(c.profiles))
	for i, p := range c.profiles {
		ids[i] = p.ID
	}
	return ids
}

// Profile returns the profile with the given id. The returned preset map
// is a copy.
func (c *Catalog) Profile(id string) (Profile, error) {
	for _, p := range c.profiles {
		if p.ID == id {
			p.Config = p.Config.Clone()
			p.Specs = append([]Spec(nil), p.Specs...)
			return p, nil
		}
	}
	return Profile{}, c.notFound("profile", id, c.ProfileIDs())
}

// Profiles returns copies of all profiles in enumeration order.
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, 0, len(c.profiles))
	for _, id := range c.ProfileIDs() {
		p, _ := c.Profile(id)
		out = append(out, p)
	}
	return out
}

// ChainIDs returns all chain ids in enumeration order.
func (c *Catalog) ChainIDs() []string {
	ids := make([]string, len(c.chains))
	for i, ch := range c.chains {
		ids[i] = ch.ID
	}
	return ids
}

// Chain returns the chain with the given id.
func (c *Catalog) Chain(id string) (Chain, error) {
	for _, ch := range c.chains {
		if ch.ID == id {
			ch.Forks = append([]Fork(nil), ch.Forks...)
			return ch, nil
		}
	}
	return Chain{}, c.notFound("chain", id, c.ChainIDs())
}

// Chains returns copies of all chains in enumeration order.
func (c *Catalog) Chains() []Chain {
	out := make([]Chain, 0, len(c.chains))
	for _, id := range c.ChainIDs() {
		ch, _ := c.Chain(id)
		out = append(out, ch)
	}
	return out
}

// Sections returns the advanced field sections in display order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		s.Fields = append([]Field(nil), s.Fields...)
		out[i] = s
	}
	return out
}

// Field returns the field declared for key.
func (c *Catalog) Field(key string) (Field, bool) {
	f, ok := c.fields[key]
	return f, ok
}

// ResolveField returns the field declared for key, or a text field with no
// default when the key is unknown to the catalog.
func (c *Catalog) ResolveField(key string) Field {
	if f, ok := c.fields[key]; ok {
		return f
	}
	return Field{Key: key, Label: key, Type: TypeText}
}

// maxSuggestDistance bounds how far a typo may be from a known id.
const maxSuggestDistance = 3

// Suggest returns the candidate closest to id by edit distance, or "" when
// none is close enough.
func Suggest(id string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, cand := range candidates {
		if d := levenshtein.ComputeDistance(id, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

func (c *Catalog) notFound(kind, id string, known []string) error {
	b := oops.In("catalog").Code("not_found").With("kind", kind).With("id", id)
	if s := Suggest(id, known); s != "" {
		return b.Wrapf(ErrNotFound, "unknown %s %q (did you mean %q?)", kind, id, s)
	}
	return b.Wrapf(ErrNotFound, "unknown %s %q", kind, id)
}
