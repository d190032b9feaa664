package formatter

// QuoteRule decides whether a string value may be written without quotes.
// Rules are consulted in registered order; the first that accepts a value
// wins.
type QuoteRule interface {
	// Name returns a short identifier for the rule (e.g., "bare_token").
	Name() string

	// Unquoted reports whether s can be emitted verbatim.
	Unquoted(s string) bool
}

var quoteRules []QuoteRule

// RegisterQuoteRule adds a quoting rule to the default set used when
// Options.Rules is nil. Rules are consulted in the order they are
// registered.
func RegisterQuoteRule(r QuoteRule) {
	quoteRules = append(quoteRules, r)
}

// QuoteRules returns the registered quoting rules in evaluation order.
func QuoteRules() []QuoteRule {
	return quoteRules
}
