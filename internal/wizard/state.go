// Package wizard holds the mutable session state of the configuration
// wizard and the operations a user performs on it.
package wizard

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/donaldgifford/fukuiiconf/internal/catalog"
	"github.com/donaldgifford/fukuiiconf/internal/confmap"
	"github.com/donaldgifford/fukuiiconf/internal/logging"
	"github.com/donaldgifford/fukuiiconf/internal/parser"
)

// DefaultChain is the chain a new session starts on.
const DefaultChain = "etc"

// Chain parameter keys that are not fork names.
const (
	ParamNetworkID = "network-id"
	ParamChainID   = "chain-id"
)

// State is one wizard session. It is owned by a single orchestrator and
// is not safe for concurrent use.
type State struct {
	SessionID uuid.UUID

	// Profile is the selected profile id, or "" for a custom configuration.
	Profile string
	// Chain is the selected chain id.
	Chain string

	// Custom holds the configuration values that will be rendered.
	Custom *confmap.Map
	// ChainOverrides holds edited chain parameters as literal text, keyed
	// by fork name, network-id or chain-id.
	ChainOverrides *confmap.Map
}

// New returns a fresh session on chain. An empty chain selects
// DefaultChain.
func New(chain string) *State {
	if chain == "" {
		chain = DefaultChain
	}
	return &State{
		SessionID:      uuid.New(),
		Chain:          chain,
		Custom:         confmap.New(),
		ChainOverrides: confmap.New(),
	}
}

// SelectProfile makes id the active profile and replaces Custom with a copy
// of its preset values. Earlier edits are discarded.
func (s *State) SelectProfile(cat *catalog.Catalog, id string) error {
	p, err := cat.Profile(id)
	if err != nil {
		return err
	}
	s.Profile = p.ID
	s.Custom = p.Config
	logging.For("wizard").Debug().
		Str("session", s.SessionID.String()).
		Str("profile", id).
		Int("keys", s.Custom.Len()).
		Msg("profile_selected")
	return nil
}

// SelectChain switches the active chain. Chain overrides are kept so that
// edits to shared fork names carry over.
func (s *State) SelectChain(cat *catalog.Catalog, id string) error {
	if _, err := cat.Chain(id); err != nil {
		return err
	}
	s.Chain = id
	logging.For("wizard").Debug().
		Str("session", s.SessionID.String()).
		Str("chain", id).
		Msg("chain_selected")
	return nil
}

// Set stores v under key in Custom.
func (s *State) Set(key string, v confmap.Value) {
	s.Custom.Set(key, v)
}

// Unset removes key from Custom.
func (s *State) Unset(key string) {
	s.Custom.Delete(key)
}

// SetField stores a user edit, coerced by the declared type of the
// field. Keys the catalog does not know are inferred the way imported
// values are.
func (s *State) SetField(cat *catalog.Catalog, key, raw string) confmap.Value {
	v := Coerce(cat, key, raw)
	s.Custom.Set(key, v)
	return v
}

// Coerce converts raw edit text into a value for key.
func Coerce(cat *catalog.Catalog, key, raw string) confmap.Value {
	f, ok := cat.Field(key)
	if !ok {
		return confmap.Infer(raw)
	}

	switch f.Type {
	case catalog.TypeBoolean:
		if raw == "true" || raw == "false" {
			return confmap.Bool(raw == "true")
		}
	case catalog.TypeNumber:
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && isFinite(n) {
			return confmap.Number(n)
		}
	}
	return confmap.String(raw)
}

func isFinite(n float64) bool {
	return !math.IsInf(n, 0) && !math.IsNaN(n)
}

// SetChainParam records a chain parameter edit. An empty value falls back
// to the chain preset when rendering.
func (s *State) SetChainParam(key, raw string) {
	s.ChainOverrides.Set(key, confmap.String(raw))
}

// ChainParam returns the override for key, if a non-empty one is set.
func (s *State) ChainParam(key string) (string, bool) {
	v, ok := s.ChainOverrides.Get(key)
	if !ok || v.Text() == "" {
		return "", false
	}
	return v.Text(), true
}

// ImportResult describes what an import changed.
type ImportResult struct {
	Parsed   *confmap.Map
	Profile  string
	Detected bool
	Warnings []string
}

// Import parses HOCON text, merges the parsed values into Custom and
// selects the profile that best matches the parsed values alone.
func (s *State) Import(cat *catalog.Catalog, text string) ImportResult {
	parsed, warnings := parser.Parse(text)
	s.Custom.Merge(parsed)

	res := ImportResult{Parsed: parsed, Warnings: warnings}
	if id, ok := parser.DetectProfile(parsed, cat); ok {
		s.Profile = id
		res.Profile, res.Detected = id, true
	}

	logging.For("wizard").Info().
		Str("session", s.SessionID.String()).
		Int("keys", parsed.Len()).
		Str("detected_profile", res.Profile).
		Int("warnings", len(warnings)).
		Msg("configuration_imported")

	return res
}

// ImportReader reads r fully and imports it. Only read failures are
// reported as errors.
func (s *State) ImportReader(cat *catalog.Catalog, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, oops.
			In("wizard").
			With("session", s.SessionID.String()).
			Wrapf(err, "failed to parse configuration")
	}
	return s.Import(cat, string(data)), nil
}
