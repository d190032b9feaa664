package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/fukuiiconf/internal/catalog"
	"github.com/donaldgifford/fukuiiconf/internal/confmap"
	"github.com/donaldgifford/fukuiiconf/internal/logging"
	"github.com/donaldgifford/fukuiiconf/internal/wizard"
)

// Defaults for Options fields left empty.
const (
	DefaultNamespace = "fukuii"
	DefaultProduct   = "Fukuii"
	DefaultVersion   = "0.1.121"
	DefaultInclude   = "app.conf"
)

// GeneralSection receives keys that have no section segment.
const GeneralSection = "general"

// GeneratedPrefix starts the header line that carries the render time.
const GeneratedPrefix = "# Generated by Configuration Wizard on "

// timestampLayout is ISO-8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Options controls document rendering.
type Options struct {
	// Namespace is the top-level block name and the key prefix stripped
	// when grouping keys into sections.
	Namespace string
	// Product is the display name used in header comments.
	Product string
	// Version is the target node version printed in the header.
	Version string
	// Include is the base file pulled in by the include directive.
	Include string
	// Now returns the render time. Defaults to time.Now.
	Now func() time.Time
	// Rules decide which strings are written unquoted. Defaults to the
	// registered rules.
	Rules []QuoteRule
}

func (o *Options) withDefaults() Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.Namespace == "" {
		out.Namespace = DefaultNamespace
	}
	if out.Product == "" {
		out.Product = DefaultProduct
	}
	if out.Version == "" {
		out.Version = DefaultVersion
	}
	if out.Include == "" {
		out.Include = DefaultInclude
	}
	if out.Now == nil {
		out.Now = time.Now
	}
	if out.Rules == nil {
		out.Rules = quoteRules
	}
	return out
}

func (o Options) timestamp() string {
	return o.Now().UTC().Format(timestampLayout)
}

// FormatValue renders v as a HOCON literal. Booleans and numbers are
// written as-is; strings are written bare when any rule accepts them and
// wrapped in double quotes otherwise. Quoted content is not escaped.
// A nil rules slice means the registered rules.
func FormatValue(v confmap.Value, rules []QuoteRule) string {
	s, ok := v.AsString()
	if !ok {
		return v.Text()
	}
	if rules == nil {
		rules = quoteRules
	}
	for _, r := range rules {
		if r.Unquoted(s) {
			return s
		}
	}
	return `"` + s + `"`
}

// Section is a group of keys sharing a first path segment.
type Section struct {
	Name   string
	Values *confmap.Map // Subkey to value.
}

// GroupSections splits dotted keys into sections. A leading namespace
// segment is dropped; the next segment names the section and the rest
// is the subkey. Keys left with a single segment go to the general
// section. Sections appear in the order first seen.
func GroupSections(m *confmap.Map, namespace string) []Section {
	var out []Section
	index := make(map[string]int)

	m.Range(func(key string, v confmap.Value) bool {
		section, subkey := splitKey(key, namespace)
		i, ok := index[section]
		if !ok {
			i = len(out)
			index[section] = i
			out = append(out, Section{Name: section, Values: confmap.New()})
		}
		out[i].Values.Set(subkey, v)
		return true
	})
	return out
}

func splitKey(key, namespace string) (section, subkey string) {
	parts := strings.Split(key, ".")
	if parts[0] == namespace {
		parts = parts[1:]
	}
	switch {
	case len(parts) >= 2:
		return parts[0], strings.Join(parts[1:], ".")
	case len(parts) == 1:
		return GeneralSection, parts[0]
	default:
		return GeneralSection, key
	}
}

// RenderConfiguration renders the main configuration document for st.
func RenderConfiguration(st *wizard.State, opts *Options) string {
	o := opts.withDefaults()
	profile := st.Profile
	if profile == "" {
		profile = "custom"
	}

	var w Writer
	w.Comment(o.Product + " Configuration")
	w.Line(GeneratedPrefix + o.timestamp())
	w.Comment(o.Product + " Version: " + o.Version)
	w.Comment("Profile: " + profile)
	w.Comment("Chain: " + st.Chain)
	w.Blank()

	w.Line(`include "` + o.Include + `"`)
	w.Blank()

	w.Open(o.Namespace)
	w.Open("blockchains")
	w.Assign("network", `"`+st.Chain+`"`)
	w.Close()
	w.Blank()

	sections := GroupSections(st.Custom, o.Namespace)
	for _, sec := range sections {
		if sec.Values.Len() == 0 {
			continue
		}
		w.Open(sec.Name)
		sec.Values.Range(func(k string, v confmap.Value) bool {
			w.Assign(k, FormatValue(v, o.Rules))
			return true
		})
		w.Close()
		w.Blank()
	}
	w.Close()

	logging.For("formatter").Debug().
		Str("session", st.SessionID.String()).
		Str("profile", profile).
		Str("chain", st.Chain).
		Int("sections", len(sections)).
		Msg("configuration_rendered")

	return w.String()
}

// RenderChainConfiguration renders the standalone chain parameter
// document for the selected chain. Overrides replace preset values; fork
// values are always quoted.
func RenderChainConfiguration(st *wizard.State, cat *catalog.Catalog, opts *Options) (string, error) {
	o := opts.withDefaults()
	chain, err := cat.Chain(st.Chain)
	if err != nil {
		return "", err
	}

	networkID := strconv.Itoa(chain.NetworkID)
	if v, ok := st.ChainParam(wizard.ParamNetworkID); ok {
		networkID = v
	}
	chainID := chain.ChainID
	if v, ok := st.ChainParam(wizard.ParamChainID); ok {
		chainID = v
	}

	var w Writer
	w.Comment(o.Product + " Chain Configuration")
	w.Line(GeneratedPrefix + o.timestamp())
	w.Comment(o.Product + " Version: " + o.Version)
	w.Comment("Chain: " + chain.Name)
	w.Blank()

	w.Open("")
	w.Assign(wizard.ParamNetworkID, networkID)
	w.Assign(wizard.ParamChainID, `"`+chainID+`"`)
	w.Blank()

	for _, f := range chain.Forks {
		value := f.Value
		if v, ok := st.ChainParam(f.Name); ok {
			value = v
		}
		w.Comment(f.Label + ": " + f.URL)
		w.Assign(f.Name, `"`+value+`"`)
		w.Blank()
	}
	w.Close()

	return w.String(), nil
}

// ConfigFileName returns the download name for a main configuration:
// <namespace>-<chain or "custom">-<unix millis>.conf.
func ConfigFileName(namespace, chain string, t time.Time) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if chain == "" {
		chain = "custom"
	}
	return fmt.Sprintf("%s-%s-%d.conf", namespace, chain, t.UnixMilli())
}

// ChainFileName returns the download name for a chain document:
// <chain>-chain-<unix millis>.conf.
func ChainFileName(chain string, t time.Time) string {
	return fmt.Sprintf("%s-chain-%d.conf", chain, t.UnixMilli())
}
