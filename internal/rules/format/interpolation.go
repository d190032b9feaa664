package format

import "strings"

// Interpolation leaves substitutions such as "${fukuii.datadir}/keystore"
// unquoted. HOCON does not expand substitutions inside quoted strings.
type Interpolation struct{}

// Name returns the rule identifier.
func (r *Interpolation) Name() string {
	return "interpolation"
}

// Unquoted reports whether s starts with a substitution marker.
func (r *Interpolation) Unquoted(s string) bool {
	return strings.HasPrefix(s, "${")
}
