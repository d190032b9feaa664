package version

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/donaldgifford/fukuiiconf/internal/config"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   string
		wantOK bool
	}{
		{"plain", `version := "0.1.121"`, "0.1.121", true},
		{"this build", `ThisBuild / version := "1.0.0"`, "1.0.0", true},
		{"snapshot", `ThisBuild / version := "1.0.0-SNAPSHOT"`, "", false},
		{"parenthesised", `(ThisBuild / version) := "2.3.4"`, "2.3.4", true},
		{"after other settings", "name := \"fukuii\"\nversion := \"0.9.0\"\n", "0.9.0", true},
		{"missing", `name := "fukuii"`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.src)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Extract(%q) = %q, %v; want %q, %v", tt.src, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	sbt := filepath.Join(dir, "version.sbt")
	if err := os.WriteFile(sbt, []byte(`ThisBuild / version := "0.2.0"`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	pinned := config.DefaultConfig()
	pinned.Product.Version = "5.0.0"
	pinned.Product.VersionFile = sbt

	fromFile := config.DefaultConfig()
	fromFile.Product.VersionFile = sbt

	missing := config.DefaultConfig()
	missing.Product.VersionFile = filepath.Join(dir, "nope.sbt")

	noFile := config.DefaultConfig()
	noFile.Product.VersionFile = ""

	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{"configured wins", pinned, "5.0.0"},
		{"version file", fromFile, "0.2.0"},
		{"missing file", missing, Default},
		{"no file", noFile, Default},
		{"nil config", nil, Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.cfg); got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadFileDirectory(t *testing.T) {
	if _, _, err := ReadFile(t.TempDir()); err == nil {
		t.Error("expected error reading a directory")
	}
}
