package catalog

import (
	"github.com/donaldgifford/fukuiiconf/internal/confmap"
)

type entry struct {
	key   string
	value confmap.Value
}

func preset(entries ...entry) *confmap.Map {
	m := confmap.New()
	for _, e := range entries {
		m.Set(e.key, e.value)
	}
	return m
}

func num(key string, n int) entry       { return entry{key, confmap.Int(n)} }
func flag(key string, b bool) entry     { return entry{key, confmap.Bool(b)} }
func text(key string, s string) entry   { return entry{key, confmap.String(s)} }
func fork(name, value, label, url string) Fork {
	return Fork{Name: name, Value: value, Label: label, URL: url}
}

func defaultProfiles() []Profile {
	return []Profile{
		{
			ID:          "default",
			Name:        "Default Configuration",
			Description: "Balanced configuration suitable for most users",
			Specs: []Spec{
				{"Memory Usage", "Moderate (2-4 GB)"},
				{"Peer Connections", "Standard (20-50 peers)"},
				{"Sync Speed", "Balanced"},
				{"Use Case", "General purpose node"},
			},
			Config: preset(
				num("fukuii.network.peer.min-outgoing-peers", 20),
				num("fukuii.network.peer.max-outgoing-peers", 50),
				num("fukuii.network.peer.max-incoming-peers", 30),
				num("fukuii.db.rocksdb.block-cache-size", 33554432),
				num("fukuii.sync.max-concurrent-requests", 10),
				text("fukuii.network.rpc.http.interface", "localhost"),
				flag("fukuii.network.rpc.http.enabled", true),
				flag("fukuii.mining.mining-enabled", false),
			),
		},
		{
			ID:          "raspberrypi",
			Name:        "Raspberry Pi / Small System",
			Description: "Optimized for low-resource environments",
			Specs: []Spec{
				{"Memory Usage", "Low (1-2 GB)"},
				{"Peer Connections", "Minimal (5-15 peers)"},
				{"Sync Speed", "Slower but stable"},
				{"Use Case", "Raspberry Pi, VPS, light clients"},
			},
			Config: preset(
				num("fukuii.network.peer.min-outgoing-peers", 5),
				num("fukuii.network.peer.max-outgoing-peers", 15),
				num("fukuii.network.peer.max-incoming-peers", 10),
				num("fukuii.db.rocksdb.block-cache-size", 16777216),
				num("fukuii.sync.max-concurrent-requests", 5),
				num("fukuii.sync.block-headers-per-request", 64),
				num("fukuii.sync.block-bodies-per-request", 64),
				text("fukuii.network.rpc.http.interface", "localhost"),
				flag("fukuii.network.rpc.http.enabled", true),
				flag("fukuii.mining.mining-enabled", false),
			),
		},
		{
			ID:          "security",
			Name:        "Security Optimized",
			Description: "Maximum security configuration for sensitive operations",
			Specs: []Spec{
				{"Memory Usage", "Moderate (2-4 GB)"},
				{"Peer Connections", "Controlled (10-25 peers)"},
				{"Security Level", "Maximum"},
				{"Use Case", "Custody, financial operations"},
			},
			Config: preset(
				num("fukuii.network.peer.min-outgoing-peers", 10),
				num("fukuii.network.peer.max-outgoing-peers", 25),
				num("fukuii.network.peer.max-incoming-peers", 15),
				text("fukuii.network.rpc.http.interface", "localhost"),
				flag("fukuii.network.rpc.http.enabled", true),
				text("fukuii.network.rpc.http.mode", "https"),
				flag("fukuii.network.rpc.http.rate-limit.enabled", true),
				text("fukuii.network.rpc.http.rate-limit.min-request-interval", "10.seconds"),
				num("fukuii.keyStore.minimal-passphrase-length", 12),
				flag("fukuii.keyStore.allow-no-passphrase", false),
				flag("fukuii.mining.mining-enabled", false),
				flag("fukuii.network.automatic-port-forwarding", false),
			),
		},
		{
			ID:          "miner",
			Name:        "Mining Configuration",
			Description: "Optimized for mining operations",
			Specs: []Spec{
				{"Memory Usage", "High (4-8 GB)"},
				{"Peer Connections", "Optimized (30-75 peers)"},
				{"Mining", "Enabled"},
				{"Use Case", "Mining pools, solo mining"},
			},
			Config: preset(
				num("fukuii.network.peer.min-outgoing-peers", 30),
				num("fukuii.network.peer.max-outgoing-peers", 75),
				num("fukuii.network.peer.max-incoming-peers", 40),
				num("fukuii.db.rocksdb.block-cache-size", 67108864),
				num("fukuii.sync.max-concurrent-requests", 15),
				flag("fukuii.mining.mining-enabled", true),
				num("fukuii.mining.num-threads", 4),
				text("fukuii.mining.header-extra-data", "fukuii-miner"),
				text("fukuii.network.rpc.http.interface", "localhost"),
				flag("fukuii.network.rpc.http.enabled", true),
			),
		},
		{
			ID:          "archive",
			Name:        "Archive Node",
			Description: "Full archive node with maximum retention",
			Specs: []Spec{
				{"Memory Usage", "Very High (8-16 GB)"},
				{"Peer Connections", "Maximum (50-100 peers)"},
				{"Disk Usage", "Full chain history"},
				{"Use Case", "Block explorers, analytics"},
			},
			Config: preset(
				num("fukuii.network.peer.min-outgoing-peers", 50),
				num("fukuii.network.peer.max-outgoing-peers", 100),
				num("fukuii.network.peer.max-incoming-peers", 50),
				num("fukuii.db.rocksdb.block-cache-size", 134217728),
				num("fukuii.sync.max-concurrent-requests", 20),
				num("fukuii.sync.block-headers-per-request", 256),
				num("fukuii.sync.block-bodies-per-request", 256),
				text("fukuii.network.rpc.http.interface", "localhost"),
				flag("fukuii.network.rpc.http.enabled", true),
				flag("fukuii.mining.mining-enabled", false),
			),
		},
	}
}

const (
	eip2URL   = "https://github.com/ethereum/EIPs/blob/master/EIPS/eip-2.md"
	eip150URL = "https://github.com/ethereum/EIPs/issues/150"
	eip155URL = "https://github.com/ethereum/eips/issues/155"
	eip160URL = "https://github.com/ethereum/EIPs/issues/160"
	ecipURL   = "https://ecips.ethereumclassic.org/ECIPs/ecip-"
)

// classicForks returns the ETC fork schedule shared by mainnet and Mordor.
func classicForks(homestead, eip150, eip155, eip160, atlantis, agharta, phoenix, magneto, mystique, spiral string) []Fork {
	return []Fork{
		fork("homestead-block-number", homestead, "EIP-2", eip2URL),
		fork("eip150-block-number", eip150, "EIP-150", eip150URL),
		fork("eip155-block-number", eip155, "EIP-155", eip155URL),
		fork("eip160-block-number", eip160, "EIP-160", eip160URL),
		fork("atlantis-block-number", atlantis, "ECIP-1054", ecipURL+"1054"),
		fork("agharta-block-number", agharta, "ECIP-1056", ecipURL+"1056"),
		fork("phoenix-block-number", phoenix, "ECIP-1088", ecipURL+"1088"),
		fork("magneto-block-number", magneto, "ECIP-1103", ecipURL+"1103"),
		fork("mystique-block-number", mystique, "ECIP-1104", ecipURL+"1104"),
		fork("spiral-block-number", spiral, "ECIP-1109", ecipURL+"1109"),
	}
}

func defaultChains() []Chain {
	return []Chain{
		{
			ID:          "etc",
			Name:        "Ethereum Classic Mainnet",
			NetworkID:   1,
			ChainID:     "0x3d",
			Description: "Ethereum Classic mainnet with ECIP support",
			Forks: classicForks("1150000", "2500000", "3000000", "3000000",
				"8772000", "9573000", "10500839", "13189133", "14525000", "19250000"),
		},
		{
			ID:          "mordor",
			Name:        "Mordor Testnet",
			NetworkID:   7,
			ChainID:     "0x3f",
			Description: "Ethereum Classic testnet for development and testing",
			Forks: classicForks("0", "0", "0", "0",
				"0", "0", "0", "0", "301243", "778507"),
		},
		{
			ID:          "eth",
			Name:        "Ethereum Mainnet",
			NetworkID:   1,
			ChainID:     "0x01",
			Description: "Ethereum mainnet (historical support)",
			Forks: []Fork{
				fork("homestead-block-number", "1150000", "EIP-2", eip2URL),
				fork("eip150-block-number", "2463000", "EIP-150", eip150URL),
				fork("eip155-block-number", "2675000", "EIP-155", eip155URL),
				fork("eip160-block-number", "2675000", "EIP-160", eip160URL),
				fork("byzantium-block-number", "4370000", "EIP-609", "https://github.com/ethereum/EIPs/blob/master/EIPS/eip-609.md"),
				fork("constantinople-block-number", "7280000", "EIP-1013", "https://github.com/ethereum/pm/issues/53"),
				fork("petersburg-block-number", "7280000", "EIP-1716", "https://github.com/ethereum/EIPs/blob/master/EIPS/eip-1716.md"),
				fork("istanbul-block-number", "9069000", "EIP-1679", "https://eips.ethereum.org/EIPS/eip-1679"),
			},
		},
	}
}

func field(key, label string, typ FieldType, def confmap.Value, description string, options ...string) Field {
	return Field{
		Key:         key,
		Label:       label,
		Type:        typ,
		Default:     def,
		Options:     options,
		Description: description,
	}
}

func defaultSections() []Section {
	return []Section{
		{
			ID:          "network",
			Title:       "Network Configuration",
			Description: "P2P networking, peer management, and discovery settings",
			Fields: []Field{
				field("fukuii.network.server-address.interface", "P2P Interface", TypeText, confmap.String("0.0.0.0"), "Network interface for P2P connections"),
				field("fukuii.network.server-address.port", "P2P Port", TypeNumber, confmap.Int(9076), "Port for Ethereum P2P protocol"),
				field("fukuii.network.discovery.discovery-enabled", "Enable Discovery", TypeBoolean, confmap.Bool(true), "Enable peer discovery protocol"),
				field("fukuii.network.discovery.port", "Discovery Port", TypeNumber, confmap.Int(30303), "UDP port for peer discovery"),
				field("fukuii.network.automatic-port-forwarding", "UPnP Port Forwarding", TypeBoolean, confmap.Bool(true), "Automatically configure router port forwarding"),
			},
		},
		{
			ID:          "peers",
			Title:       "Peer Management",
			Description: "Configure peer connection limits and behavior",
			Fields: []Field{
				field("fukuii.network.peer.min-outgoing-peers", "Min Outgoing Peers", TypeNumber, confmap.Int(20), "Minimum outbound peer connections to maintain"),
				field("fukuii.network.peer.max-outgoing-peers", "Max Outgoing Peers", TypeNumber, confmap.Int(50), "Maximum outbound peer connections"),
				field("fukuii.network.peer.max-incoming-peers", "Max Incoming Peers", TypeNumber, confmap.Int(30), "Maximum inbound peer connections"),
				field("fukuii.network.peer.connect-retry-delay", "Retry Delay", TypeText, confmap.String("5.seconds"), "Delay between connection retry attempts"),
				field("fukuii.network.peer.wait-for-hello-timeout", "Hello Timeout", TypeText, confmap.String("3.seconds"), "Timeout waiting for peer hello message"),
			},
		},
		{
			ID:          "rpc",
			Title:       "JSON-RPC Configuration",
			Description: "HTTP and IPC RPC endpoint settings",
			Fields: []Field{
				field("fukuii.network.rpc.http.enabled", "Enable HTTP RPC", TypeBoolean, confmap.Bool(true), "Enable JSON-RPC over HTTP"),
				field("fukuii.network.rpc.http.interface", "RPC Interface", TypeText, confmap.String("localhost"), "Interface to bind RPC server (localhost for security)"),
				field("fukuii.network.rpc.http.port", "RPC Port", TypeNumber, confmap.Int(8546), "HTTP JSON-RPC port"),
				field("fukuii.network.rpc.http.mode", "RPC Mode", TypeSelect, confmap.String("http"), "HTTP or HTTPS mode", "http", "https"),
				field("fukuii.network.rpc.apis", "Enabled APIs", TypeText, confmap.String("eth,web3,net,personal,fukuii,debug,qa,checkpointing"), "Comma-separated list of enabled RPC APIs"),
			},
		},
		{
			ID:          "sync",
			Title:       "Blockchain Sync",
			Description: "Synchronization and fast sync settings",
			Fields: []Field{
				field("fukuii.sync.do-fast-sync", "Enable Fast Sync", TypeBoolean, confmap.Bool(true), "Use fast sync for initial blockchain download"),
				field("fukuii.sync.max-concurrent-requests", "Concurrent Requests", TypeNumber, confmap.Int(10), "Maximum parallel block requests"),
				field("fukuii.sync.block-headers-per-request", "Headers Per Request", TypeNumber, confmap.Int(128), "Block headers to request at once"),
				field("fukuii.sync.block-bodies-per-request", "Bodies Per Request", TypeNumber, confmap.Int(128), "Block bodies to request at once"),
				field("fukuii.sync.pivot-block-offset", "Pivot Block Offset", TypeNumber, confmap.Int(500), "Offset from chain head for fast sync pivot"),
			},
		},
		{
			ID:          "database",
			Title:       "Database Configuration",
			Description: "RocksDB storage settings",
			Fields: []Field{
				field("fukuii.db.data-source", "Data Source", TypeSelect, confmap.String("rocksdb"), "Database backend", "rocksdb"),
				field("fukuii.db.rocksdb.block-cache-size", "Block Cache Size", TypeNumber, confmap.Int(33554432), "RocksDB block cache size in bytes (32 MB default)"),
				field("fukuii.db.rocksdb.create-if-missing", "Create If Missing", TypeBoolean, confmap.Bool(true), "Create database if it doesn't exist"),
				field("fukuii.db.rocksdb.paranoid-checks", "Paranoid Checks", TypeBoolean, confmap.Bool(true), "Enable extra database validation"),
			},
		},
		{
			ID:          "mining",
			Title:       "Mining Configuration",
			Description: "Mining and block production settings",
			Fields: []Field{
				field("fukuii.mining.mining-enabled", "Enable Mining", TypeBoolean, confmap.Bool(false), "Enable mining on this node"),
				field("fukuii.mining.coinbase", "Coinbase Address", TypeText, confmap.String("0011223344556677889900112233445566778899"), "Address to receive mining rewards (40 hex chars)"),
				field("fukuii.mining.num-threads", "Mining Threads", TypeNumber, confmap.Int(1), "Number of parallel mining threads"),
				field("fukuii.mining.header-extra-data", "Extra Data", TypeText, confmap.String("fukuii"), "Extra data to include in mined blocks"),
				field("fukuii.mining.protocol", "Mining Protocol", TypeSelect, confmap.String("pow"), "Proof of Work protocol variant", "pow", "mocked", "restricted-pow"),
			},
		},
		{
			ID:          "keystore",
			Title:       "Keystore & Security",
			Description: "Key management and security settings",
			Fields: []Field{
				field("fukuii.keyStore.keystore-dir", "Keystore Directory", TypeText, confmap.String("${fukuii.datadir}/keystore"), "Directory for encrypted private keys"),
				field("fukuii.keyStore.minimal-passphrase-length", "Min Passphrase Length", TypeNumber, confmap.Int(7), "Minimum passphrase length for key encryption"),
				field("fukuii.keyStore.allow-no-passphrase", "Allow No Passphrase", TypeBoolean, confmap.Bool(true), "Allow unencrypted keystores (not recommended)"),
			},
		},
	}
}
