// Package rules registers the built-in value quoting rules with the
// formatter. Import it for its side effects.
package rules

import (
	"github.com/donaldgifford/fukuiiconf/internal/formatter"
	"github.com/donaldgifford/fukuiiconf/internal/rules/format"
)

func init() {
	formatter.RegisterQuoteRule(&format.DurationLiteral{})
	formatter.RegisterQuoteRule(&format.Interpolation{})
	formatter.RegisterQuoteRule(&format.BareToken{})
}
