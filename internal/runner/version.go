package runner

import (
	"fmt"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Version prints tool build info and the resolved node version.
func Version(opts *Options, build BuildInfo) int {
	env, err := Load(opts)
	if err != nil {
		writeErr(stderrOf(opts), "fukuiiconf: %v\n", err)
		return ExitError
	}
	writeOut(env.stdout, fmt.Sprintf("fukuiiconf %s (%s) %s\n", build.Version, build.Commit, build.Date))
	writeOut(env.stdout, fmt.Sprintf("%s version: %s\n", env.Config.Product.Name, env.Version))
	return ExitOK
}
