// Package format contains the individual value quoting rules.
package format

import "regexp"

// durationRe matches HOCON duration shorthands such as "10.seconds" or
// "1.5 minutes".
var durationRe = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?(\.|\s+)(seconds|minutes)$`)

// DurationLiteral leaves duration shorthands unquoted so HOCON parses them
// as durations.
type DurationLiteral struct{}

// Name returns the rule identifier.
func (r *DurationLiteral) Name() string {
	return "duration_literal"
}

// Unquoted reports whether s is a duration shorthand.
func (r *DurationLiteral) Unquoted(s string) bool {
	return durationRe.MatchString(s)
}
