package wizard

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/fukuiiconf/internal/catalog"
	"github.com/donaldgifford/fukuiiconf/internal/confmap"
	"github.com/donaldgifford/fukuiiconf/internal/parser"
)

func TestNewDefaults(t *testing.T) {
	s := New("")
	assert.Equal(t, DefaultChain, s.Chain)
	assert.Empty(t, s.Profile)
	assert.Equal(t, 0, s.Custom.Len())
	assert.NotEqual(t, s.SessionID, New("").SessionID)
}

func TestSelectProfileCopiesPreset(t *testing.T) {
	cat := catalog.Default()
	s := New("")
	s.Set("stale.key", confmap.Int(1))

	require.NoError(t, s.SelectProfile(cat, "miner"))
	assert.Equal(t, "miner", s.Profile)
	assert.False(t, s.Custom.Has("stale.key"))

	s.Set("fukuii.mining.num-threads", confmap.Int(8))
	p, err := cat.Profile("miner")
	require.NoError(t, err)
	v, _ := p.Config.Get("fukuii.mining.num-threads")
	assert.True(t, confmap.Int(4).Equal(v), "preset must not change")
}

func TestSelectUnknownProfile(t *testing.T) {
	s := New("")
	err := s.SelectProfile(catalog.Default(), "minner")
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
	assert.Contains(t, err.Error(), `"miner"`)
	assert.Empty(t, s.Profile)
}

func TestSelectChainKeepsOverrides(t *testing.T) {
	cat := catalog.Default()
	s := New("")
	s.SetChainParam("homestead-block-number", "42")

	require.NoError(t, s.SelectChain(cat, "mordor"))
	assert.Equal(t, "mordor", s.Chain)
	v, ok := s.ChainParam("homestead-block-number")
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	assert.ErrorIs(t, s.SelectChain(cat, "ropsten"), catalog.ErrNotFound)
	assert.Equal(t, "mordor", s.Chain)
}

func TestChainParamEmptyIsUnset(t *testing.T) {
	s := New("")
	s.SetChainParam(ParamChainID, "")
	_, ok := s.ChainParam(ParamChainID)
	assert.False(t, ok)
}

func TestCoerceByDeclaredType(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		name string
		key  string
		raw  string
		want confmap.Value
	}{
		{"boolean true", "fukuii.mining.mining-enabled", "true", confmap.Bool(true)},
		{"boolean garbage stays text", "fukuii.mining.mining-enabled", "yes", confmap.String("yes")},
		{"number", "fukuii.mining.num-threads", "8", confmap.Int(8)},
		{"number exponent", "fukuii.db.rocksdb.block-cache-size", "3.2e7", confmap.Number(3.2e7)},
		{"number garbage stays text", "fukuii.mining.num-threads", "many", confmap.String("many")},
		{"number infinity stays text", "fukuii.mining.num-threads", "Inf", confmap.String("Inf")},
		{"text keeps digits", "fukuii.mining.coinbase", "0011223344", confmap.String("0011223344")},
		{"text keeps true", "fukuii.mining.header-extra-data", "true", confmap.String("true")},
		{"select", "fukuii.network.rpc.http.mode", "https", confmap.String("https")},
		{"unknown key infers number", "custom.threshold", "007", confmap.Int(7)},
		{"unknown key infers bool", "custom.flag", "false", confmap.Bool(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coerce(cat, tt.key, tt.raw)
			assert.True(t, tt.want.Equal(got), "got %v (%s), want %v (%s)", got, got.Kind(), tt.want, tt.want.Kind())
		})
	}
}

func TestSetFieldAndUnset(t *testing.T) {
	cat := catalog.Default()
	s := New("")
	v := s.SetField(cat, "fukuii.network.server-address.port", "9077")
	assert.True(t, confmap.Int(9077).Equal(v))
	assert.True(t, s.Custom.Has("fukuii.network.server-address.port"))

	s.Unset("fukuii.network.server-address.port")
	assert.False(t, s.Custom.Has("fukuii.network.server-address.port"))
}

func TestImportMergesAndDetects(t *testing.T) {
	cat := catalog.Default()
	s := New("")
	s.Set("fukuii.sync.do-fast-sync", confmap.Bool(false))
	s.Set("fukuii.network.peer.min-outgoing-peers", confmap.Int(99))

	src := `
fukuii.network.peer.min-outgoing-peers = 5
fukuii.network.peer.max-outgoing-peers = 15
fukuii.sync.block-headers-per-request = 64
not a valid line!!
`
	res := s.Import(cat, src)

	assert.True(t, res.Detected)
	assert.Equal(t, "raspberrypi", res.Profile)
	assert.Equal(t, "raspberrypi", s.Profile)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 3, res.Parsed.Len())

	assert.Equal(t, []string{
		"fukuii.sync.do-fast-sync",
		"fukuii.network.peer.min-outgoing-peers",
		"fukuii.network.peer.max-outgoing-peers",
		"fukuii.sync.block-headers-per-request",
	}, s.Custom.Keys())
	v, _ := s.Custom.Get("fukuii.network.peer.min-outgoing-peers")
	assert.True(t, confmap.Int(5).Equal(v))
}

func TestImportDetectsOnParsedMapOnly(t *testing.T) {
	cat := catalog.Default()
	s := New("")
	require.NoError(t, s.SelectProfile(cat, "archive"))

	res := s.Import(cat, "unrelated.key = 1\n")
	assert.False(t, res.Detected)
	assert.Equal(t, "archive", s.Profile, "no match keeps the current profile")
}

func TestImportReaderFailure(t *testing.T) {
	s := New("")
	_, err := s.ImportReader(catalog.Default(), iotest.ErrReader(errors.New("disk on fire")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse configuration")
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Equal(t, 0, s.Custom.Len())
}

func TestImportReaderWarnsOnNested(t *testing.T) {
	s := New("")
	res, err := s.ImportReader(catalog.Default(), strings.NewReader("fukuii {\n a = 1\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{parser.ComplexWarning}, res.Warnings)
	assert.True(t, s.Custom.Has("a"))
}

func TestLoadStateLayersCustomOverProfile(t *testing.T) {
	src := `
profile: miner
chain: mordor
custom:
  fukuii.mining.num-threads: 8
  fukuii.network.rpc.apis: eth,net
unset:
  - fukuii.mining.header-extra-data
chain_overrides:
  network-id: 7
  mystique-block-number: 301244
`
	s, warnings, err := LoadState(catalog.Default(), []byte(src), "etc")
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "miner", s.Profile)
	assert.Equal(t, "mordor", s.Chain)

	v, _ := s.Custom.Get("fukuii.mining.num-threads")
	assert.True(t, confmap.Int(8).Equal(v))
	v, _ = s.Custom.Get("fukuii.mining.mining-enabled")
	assert.True(t, confmap.Bool(true).Equal(v))
	assert.False(t, s.Custom.Has("fukuii.mining.header-extra-data"))
	assert.Equal(t, "fukuii.network.rpc.apis", s.Custom.Keys()[s.Custom.Len()-1])

	p, ok := s.ChainParam("mystique-block-number")
	assert.True(t, ok)
	assert.Equal(t, "301244", p)
}

func TestLoadStateDefaults(t *testing.T) {
	s, warnings, err := LoadState(catalog.Default(), nil, "eth")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "eth", s.Chain)
	assert.Empty(t, s.Profile)
}

func TestLoadStateWarnings(t *testing.T) {
	src := `
custom:
  fukuii.network:
    nested: 1
  ok.key: yes
extra: 1
chain_overrides:
  forks: [1, 2]
`
	s, warnings, err := LoadState(catalog.Default(), []byte(src), "etc")
	require.NoError(t, err)
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "fukuii.network skipped")
	assert.Contains(t, warnings[1], `unknown key "extra"`)
	assert.Contains(t, warnings[2], "forks skipped")
	assert.Equal(t, []string{"ok.key"}, s.Custom.Keys())
}

func TestLoadStateErrors(t *testing.T) {
	cat := catalog.Default()

	_, _, err := LoadState(cat, []byte("- a\n- b\n"), "etc")
	assert.Error(t, err)

	_, _, err = LoadState(cat, []byte("profile: nope\n"), "etc")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, _, err = LoadState(cat, []byte("chain: [\n"), "etc")
	assert.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	cat := catalog.Default()
	s := New("mordor")
	require.NoError(t, s.SelectProfile(cat, "security"))
	s.SetField(cat, "fukuii.keyStore.minimal-passphrase-length", "16")
	s.Unset("fukuii.network.automatic-port-forwarding")
	s.Set("fukuii.custom.label", confmap.String("a b"))
	s.SetChainParam(ParamNetworkID, "7")

	out, err := s.Snapshot(cat).Encode()
	require.NoError(t, err)

	back, warnings, err := LoadState(cat, out, "etc")
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, s.Profile, back.Profile)
	assert.Equal(t, s.Chain, back.Chain)
	assert.True(t, s.Custom.Equal(back.Custom), "custom changed:\n%s", out)
	assert.Equal(t, s.Custom.Keys(), back.Custom.Keys())
	assert.True(t, s.ChainOverrides.Equal(back.ChainOverrides), "overrides changed:\n%s", out)
}

func TestSnapshotKeepsOrderOfReaddedPresetKey(t *testing.T) {
	cat := catalog.Default()
	s := New("etc")
	require.NoError(t, s.SelectProfile(cat, "miner"))
	s.Unset("fukuii.mining.num-threads")
	s.SetField(cat, "fukuii.mining.num-threads", "8")
	keys := s.Custom.Keys()
	require.Equal(t, "fukuii.mining.num-threads", keys[len(keys)-1])

	sf := s.Snapshot(cat)
	assert.Equal(t, []string{"fukuii.mining.num-threads"}, sf.Unset)

	out, err := sf.Encode()
	require.NoError(t, err)
	back, _, err := LoadState(cat, out, "etc")
	require.NoError(t, err)
	assert.Equal(t, keys, back.Custom.Keys())
	v, _ := back.Custom.Get("fukuii.mining.num-threads")
	assert.True(t, confmap.Int(8).Equal(v))
}

func TestStateFileOverrideKeepsPresetPosition(t *testing.T) {
	cat := catalog.Default()
	preset, err := cat.Profile("miner")
	require.NoError(t, err)

	s, _, err := LoadState(cat, []byte("profile: miner\ncustom:\n  fukuii.mining.num-threads: 8\n  extra.key: 1\n"), "etc")
	require.NoError(t, err)
	assert.Equal(t, append(preset.Config.Keys(), "extra.key"), s.Custom.Keys())
}

func TestPresetRemovals(t *testing.T) {
	preset := []string{"a", "b", "c"}
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"untouched", []string{"a", "b", "c", "x"}, nil},
		{"removed", []string{"a", "c"}, []string{"b"}},
		{"moved to end", []string{"a", "c", "b"}, []string{"b"}},
		{"custom first", []string{"x", "a", "b"}, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, presetRemovals(preset, tt.keys))
		})
	}
}
