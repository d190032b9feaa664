// Package config defines the tool configuration types and defaults for
// fukuiiconf.
package config

// Config is the top-level configuration.
type Config struct {
	Product ProductConfig `mapstructure:"product" yaml:"product"`
	Wizard  WizardConfig  `mapstructure:"wizard" yaml:"wizard"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// ProductConfig describes the node the generated files are for.
type ProductConfig struct {
	// Namespace is the top-level HOCON block and key prefix.
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
	// Name is the display name used in header comments.
	Name string `mapstructure:"name" yaml:"name"`
	// Version pins the target node version. When empty it is read from
	// VersionFile, falling back to the built-in version.
	Version     string `mapstructure:"version" yaml:"version"`
	VersionFile string `mapstructure:"version_file" yaml:"version_file"`
}

// WizardConfig holds session defaults.
type WizardConfig struct {
	DefaultChain string `mapstructure:"default_chain" yaml:"default_chain"`
	Include      string `mapstructure:"include" yaml:"include"`
}

// OutputConfig controls where rendered files are written.
type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Product: ProductConfig{
			Namespace:   "fukuii",
			Name:        "Fukuii",
			VersionFile: "version.sbt",
		},
		Wizard: WizardConfig{
			DefaultChain: "etc",
			Include:      "app.conf",
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Log: LogConfig{
			Level:  "disabled",
			Format: "console",
		},
	}
}
