package format

// BareToken leaves strings made only of letters, digits, '.', '_' and '-'
// unquoted.
type BareToken struct{}

// Name returns the rule identifier.
func (r *BareToken) Name() string {
	return "bare_token"
}

// Unquoted reports whether s is a non-empty bare token.
func (r *BareToken) Unquoted(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isTokenByte(s[i]) {
			return false
		}
	}
	return true
}

func isTokenByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c == '.' || c == '_' || c == '-':
		return true
	}
	return false
}
