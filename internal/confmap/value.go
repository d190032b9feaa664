// Package confmap provides the flat, ordered key/value model shared by the
// renderer, the importer and the wizard session.
package confmap

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which member of the Value union is set.
type Kind int

const (
	// KindString is a free-form string value.
	KindString Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindNumber is a numeric value, stored as float64.
	KindNumber
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	default:
		return "string"
	}
}

// Value is a single configuration value: a boolean, a number or a string.
// The zero Value is the empty string.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int is shorthand for Number(float64(n)).
func Int(n int) Value { return Number(float64(n)) }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind reports which member is set.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean member and whether v is a boolean.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the numeric member and whether v is a number.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string member and whether v is a string.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Equal reports whether v and o have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	default:
		return v.s == o.s
	}
}

// Text returns the literal text of the value: true/false, the decimal
// numeral, or the raw string without quoting.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return FormatNumber(v.n)
	default:
		return v.s
	}
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }

// FormatNumber renders n as a plain decimal literal. Integral values carry
// no fraction; very large or very small magnitudes fall back to exponent
// notation with an unpadded exponent (1e-7, 1.5e+21).
func FormatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Infer coerces raw text into a Value: "true" and "false" become booleans,
// text with no ASCII letters that parses as a number as a whole becomes a
// number, and anything else stays a string.
//
// Leading zeros are not preserved: "007" becomes 7.
func Infer(raw string) Value {
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if raw == "" || hasLetter(raw) {
		return String(raw)
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return String(raw)
	}
	return Number(n)
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) >= 0
}
