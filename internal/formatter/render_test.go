package formatter_test

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/fukuiiconf/internal/catalog"
	"github.com/donaldgifford/fukuiiconf/internal/confmap"
	"github.com/donaldgifford/fukuiiconf/internal/formatter"
	"github.com/donaldgifford/fukuiiconf/internal/parser"
	_ "github.com/donaldgifford/fukuiiconf/internal/rules"
	"github.com/donaldgifford/fukuiiconf/internal/testutil"
	"github.com/donaldgifford/fukuiiconf/internal/wizard"
)

func testOptions() *formatter.Options {
	return &formatter.Options{
		Version: "0.1.121",
		Now:     testutil.Clock,
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   confmap.Value
		want string
	}{
		{"true", confmap.Bool(true), "true"},
		{"false", confmap.Bool(false), "false"},
		{"integer", confmap.Int(33554432), "33554432"},
		{"fraction", confmap.Number(0.5), "0.5"},
		{"negative", confmap.Int(-1), "-1"},
		{"bare token", confmap.String("localhost"), "localhost"},
		{"numeric string", confmap.String("8"), "8"},
		{"duration", confmap.String("10.seconds"), "10.seconds"},
		{"spaced duration", confmap.String("1 minutes"), "1 minutes"},
		{"interpolation", confmap.String("${fukuii.datadir}/keystore"), "${fukuii.datadir}/keystore"},
		{"comma list", confmap.String("eth,web3,net"), `"eth,web3,net"`},
		{"spaces", confmap.String("two words"), `"two words"`},
		{"empty", confmap.String(""), `""`},
		{"embedded quote", confmap.String(`say "hi"`), `"say "hi""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatter.FormatValue(tt.in, nil))
		})
	}
}

func TestFormatValueExplicitRules(t *testing.T) {
	none := []formatter.QuoteRule{}
	assert.Equal(t, `"localhost"`, formatter.FormatValue(confmap.String("localhost"), none))
	assert.Equal(t, "7", formatter.FormatValue(confmap.Int(7), none))

	names := make([]string, 0, len(formatter.QuoteRules()))
	for _, r := range formatter.QuoteRules() {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{"duration_literal", "interpolation", "bare_token"}, names)
}

func TestRenderNilOptionsUsesRegisteredRules(t *testing.T) {
	cat := catalog.Default()
	st := wizard.New("etc")
	require.NoError(t, st.SelectProfile(cat, "miner"))
	st.Set("fukuii.network.rpc.http.interface", confmap.String("${HOST}"))
	st.Set("fukuii.sync.timeout", confmap.String("30.seconds"))

	out := formatter.RenderConfiguration(st, nil)

	assert.Contains(t, out, "    header-extra-data = fukuii-miner\n")
	assert.Contains(t, out, "    rpc.http.interface = ${HOST}\n")
	assert.Contains(t, out, "    timeout = 30.seconds\n")
}

func TestGroupSections(t *testing.T) {
	m := confmap.New()
	m.Set("fukuii.network.peer.max-outgoing-peers", confmap.Int(50))
	m.Set("foo", confmap.String("x"))
	m.Set("fukuii.mining.num-threads", confmap.Int(2))
	m.Set("fukuii.network.discovery.port", confmap.Int(30303))
	m.Set("fukuii.standalone", confmap.Bool(true))
	m.Set("fukuii", confmap.Int(1))
	m.Set("other.ns.key", confmap.Int(3))

	sections := formatter.GroupSections(m, "fukuii")

	var names []string
	for _, s := range sections {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"network", "general", "mining", "other"}, names)

	assert.Equal(t, []string{"peer.max-outgoing-peers", "discovery.port"}, sections[0].Values.Keys())
	assert.Equal(t, []string{"foo", "standalone", "fukuii"}, sections[1].Values.Keys())
	assert.Equal(t, []string{"ns.key"}, sections[3].Values.Keys())
}

func TestRenderSectionGrouping(t *testing.T) {
	st := wizard.New("etc")
	st.Set("fukuii.network.peer.max-outgoing-peers", confmap.Int(50))
	st.Set("foo", confmap.String("bar"))

	out := formatter.RenderConfiguration(st, testOptions())

	assert.Contains(t, out, "  network {\n    peer.max-outgoing-peers = 50\n  }\n")
	assert.Contains(t, out, "  general {\n    foo = bar\n  }\n")
}

func TestRenderMinerScenario(t *testing.T) {
	cat := catalog.Default()
	st := wizard.New("")
	require.NoError(t, st.SelectProfile(cat, "miner"))
	st.SetField(cat, "fukuii.mining.num-threads", "8")

	out := formatter.RenderConfiguration(st, testOptions())

	assert.Contains(t, out, "# Profile: miner\n")
	start := strings.Index(out, "  mining {\n")
	require.GreaterOrEqual(t, start, 0, out)
	end := strings.Index(out[start:], "  }\n")
	mining := out[start : start+end]
	assert.Contains(t, mining, "    num-threads = 8\n")
	assert.Contains(t, mining, "    mining-enabled = true\n")
}

func TestRenderHeader(t *testing.T) {
	st := wizard.New("mordor")
	opts := testOptions()
	opts.Version = "1.2.3"
	opts.Now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("X", 3600)) }

	out := formatter.RenderConfiguration(st, opts)
	lines := strings.Split(out, "\n")

	require.GreaterOrEqual(t, len(lines), 9)
	assert.Equal(t, []string{
		"# Fukuii Configuration",
		"# Generated by Configuration Wizard on 2024-05-06T06:08:09.000Z",
		"# Fukuii Version: 1.2.3",
		"# Profile: custom",
		"# Chain: mordor",
		"",
		`include "app.conf"`,
		"",
		"fukuii {",
	}, lines[:9])
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestRenderCustomNamespace(t *testing.T) {
	st := wizard.New("etc")
	st.Set("acme.rpc.port", confmap.Int(1))

	opts := testOptions()
	opts.Namespace = "acme"
	opts.Product = "Acme"
	opts.Include = "base.conf"
	out := formatter.RenderConfiguration(st, opts)

	assert.Contains(t, out, "# Acme Configuration\n")
	assert.Contains(t, out, `include "base.conf"`)
	assert.Contains(t, out, "acme {\n")
	assert.Contains(t, out, "  rpc {\n    port = 1\n  }\n")
}

func TestRenderIsDeterministic(t *testing.T) {
	cat := catalog.Default()
	st := wizard.New("")
	require.NoError(t, st.SelectProfile(cat, "archive"))

	first := formatter.RenderConfiguration(st, testOptions())
	second := formatter.RenderConfiguration(st, testOptions())
	assert.Equal(t, first, second)
}

// Presets render to lines that the importer reads back with equal values.
func TestRenderParseRoundTrip(t *testing.T) {
	cat := catalog.Default()

	for _, id := range cat.ProfileIDs() {
		t.Run(id, func(t *testing.T) {
			st := wizard.New("")
			require.NoError(t, st.SelectProfile(cat, id))
			out := formatter.RenderConfiguration(st, testOptions())

			parsed, _ := parser.Parse(out)
			restored := confmap.New()
			st.Custom.Range(func(key string, want confmap.Value) bool {
				subkey := strings.SplitN(strings.TrimPrefix(key, "fukuii."), ".", 2)[1]
				got, ok := parsed.Get(subkey)
				if assert.True(t, ok, "missing %s", subkey) {
					assert.True(t, want.Equal(got), "%s: want %v (%s), got %v (%s)",
						subkey, want, want.Kind(), got, got.Kind())
				}
				restored.Set(key, got)
				return true
			})

			detected, ok := parser.DetectProfile(restored, cat)
			assert.True(t, ok)
			assert.Equal(t, id, detected)
		})
	}
}

func TestRenderChainConfiguration(t *testing.T) {
	cat := catalog.Default()
	st := wizard.New("eth")
	st.SetChainParam("istanbul-block-number", "9069001")
	st.SetChainParam(wizard.ParamChainID, "0x1")

	out, err := formatter.RenderChainConfiguration(st, cat, testOptions())
	require.NoError(t, err)

	assert.Contains(t, out, "# Chain: Ethereum Mainnet\n")
	assert.Contains(t, out, "{\n  network-id = 1\n  chain-id = \"0x1\"\n\n")
	assert.Contains(t, out, "  # EIP-1679: https://eips.ethereum.org/EIPS/eip-1679\n  istanbul-block-number = \"9069001\"\n\n}\n")
	assert.Equal(t, 8, strings.Count(out, "-block-number = \""))
}

func TestRenderChainUnknown(t *testing.T) {
	st := wizard.New("ropsten")
	_, err := formatter.RenderChainConfiguration(st, catalog.Default(), testOptions())
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestFileNames(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "fukuii-etc-1700000000123.conf", formatter.ConfigFileName("fukuii", "etc", ts))
	assert.Equal(t, "fukuii-custom-1700000000123.conf", formatter.ConfigFileName("", "", ts))
	assert.Equal(t, "mordor-chain-1700000000123.conf", formatter.ChainFileName("mordor", ts))
}

func TestGoldenRender(t *testing.T) {
	cat := catalog.Default()
	renderFn := func(t *testing.T, input []byte) string {
		st, _, err := wizard.LoadState(cat, input, wizard.DefaultChain)
		require.NoError(t, err)
		return formatter.RenderConfiguration(st, testOptions())
	}
	testutil.RunGoldenDir(t, testdataDir("render"), renderFn)
}

func TestGoldenChain(t *testing.T) {
	cat := catalog.Default()
	renderFn := func(t *testing.T, input []byte) string {
		st, _, err := wizard.LoadState(cat, input, wizard.DefaultChain)
		require.NoError(t, err)
		out, err := formatter.RenderChainConfiguration(st, cat, testOptions())
		require.NoError(t, err)
		return out
	}
	testutil.RunGoldenDir(t, testdataDir("chain"), renderFn)
}

func testdataDir(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", name)
}
