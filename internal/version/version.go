// Package version resolves the node version written into generated
// headers.
package version

import (
	"errors"
	"io/fs"
	"os"
	"regexp"

	"github.com/samber/oops"

	"github.com/donaldgifford/fukuiiconf/internal/config"
	"github.com/donaldgifford/fukuiiconf/internal/logging"
)

// Default is the version used when nothing else is configured.
const Default = "0.1.121"

// sbtVersionRe matches a numeric x.y.z version assignment such as
// `ThisBuild / version := "0.1.121"`. Qualified versions are ignored.
var sbtVersionRe = regexp.MustCompile(`version.*:=\s*"([0-9]+\.[0-9]+\.[0-9]+)"`)

// Extract returns the version declared in sbt build source.
func Extract(src string) (string, bool) {
	m := sbtVersionRe.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ReadFile extracts the version from an sbt file. A missing file is not
// an error; the second result reports whether a version was found.
func ReadFile(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, oops.In("version").With("path", path).Wrapf(err, "reading version file")
	}
	v, ok := Extract(string(data))
	return v, ok, nil
}

// Resolve picks the version: the configured value, then the version
// file, then Default.
func Resolve(cfg *config.Config) string {
	if cfg == nil {
		return Default
	}
	if cfg.Product.Version != "" {
		return cfg.Product.Version
	}
	if cfg.Product.VersionFile != "" {
		v, ok, err := ReadFile(cfg.Product.VersionFile)
		if err != nil {
			logging.For("version").Warn().Err(err).Str("path", cfg.Product.VersionFile).Msg("version_file_unreadable")
		}
		if ok {
			return v
		}
	}
	return Default
}
