package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// FUKUIICONF_WIZARD_DEFAULT_CHAIN=mordor.
const EnvPrefix = "FUKUIICONF"

// configFileNames is the ordered list of config file names to search for.
var configFileNames = []string{
	"fukuiiconf.yml",
	"fukuiiconf.yaml",
	".fukuiiconf.yml",
	".fukuiiconf.yaml",
}

// Discover returns the path of the first config file found in dir,
// following the standard search order. It returns an empty string if
// no config file is found.
func Discover(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func newViper() *viper.Viper {
	d := DefaultConfig()
	v := viper.New()

	v.SetDefault("product.namespace", d.Product.Namespace)
	v.SetDefault("product.name", d.Product.Name)
	v.SetDefault("product.version", d.Product.Version)
	v.SetDefault("product.version_file", d.Product.VersionFile)
	v.SetDefault("wizard.default_chain", d.Wizard.DefaultChain)
	v.SetDefault("wizard.include", d.Wizard.Include)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the tool configuration. If configPath is non-empty, that file
// is loaded directly. Otherwise, Load searches the current working
// directory using Discover. Values missing from the file keep their
// defaults, and FUKUIICONF_* environment variables override both.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, oops.In("config").Wrapf(err, "getting working directory")
		}
		configPath = Discover(wd)
	}

	v := newViper()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, oops.In("config").With("path", configPath).Errorf("config file not found: %s", configPath)
			}
			return nil, oops.In("config").With("path", configPath).Wrapf(err, "reading config file %s", configPath)
		}

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, oops.In("config").With("path", configPath).Wrapf(err, "parsing config file %s", configPath)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, oops.In("config").Wrapf(err, "decoding config")
	}
	return cfg, nil
}

// Used returns the file Load would read for configPath, or "" when only
// defaults and the environment apply.
func Used(configPath string) string {
	if configPath != "" {
		return configPath
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return Discover(wd)
}
