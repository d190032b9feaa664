// Package parser provides a best-effort, line-by-line reader for Fukuii
// HOCON files. It only understands single-line key = value assignments;
// everything else is classified and skipped.
package parser

import "github.com/donaldgifford/fukuiiconf/internal/confmap"

// NodeType classifies a single source line.
type NodeType int

const (
	// NodeBlankLine is an empty or whitespace-only line.
	NodeBlankLine NodeType = iota
	// NodeComment is a line starting with # or //.
	NodeComment
	// NodeAssignment is a key = value line.
	NodeAssignment
	// NodeSkipped is any other line: block braces, includes, arrays,
	// continuation text or plain garbage.
	NodeSkipped
)

// String returns the lowercase name of the node type.
func (t NodeType) String() string {
	switch t {
	case NodeBlankLine:
		return "blank"
	case NodeComment:
		return "comment"
	case NodeAssignment:
		return "assignment"
	default:
		return "skipped"
	}
}

// Node is one classified source line.
type Node struct {
	Type NodeType
	Line int    // 1-indexed source line number.
	Raw  string // Original text, without the line terminator.

	// Assignment fields.
	Key      string
	RawValue string        // Value text after trimming, comma and quote removal.
	Quoted   bool          // The value was wrapped in a matching quote pair.
	Value    confmap.Value // RawValue after type coercion.
}
