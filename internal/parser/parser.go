package parser

import (
	"regexp"
	"strings"

	"github.com/donaldgifford/fukuiiconf/internal/catalog"
	"github.com/donaldgifford/fukuiiconf/internal/confmap"
	"github.com/donaldgifford/fukuiiconf/internal/logging"
)

// ComplexWarning is reported when the source contains block or array
// syntax the line reader cannot capture.
const ComplexWarning = "Complex HOCON structures detected. Some nested configurations " +
	"may not be fully parsed. Please review the imported settings."

// assignRe matches a single-line assignment. The value is everything after
// the first '=' and must be non-empty.
var assignRe = regexp.MustCompile(`^\s*([a-zA-Z0-9._-]+)\s*=\s*(.+)$`)

// Parse reads HOCON text into a flat configuration map. Lines that are not
// simple assignments are dropped; a repeated key keeps its first position
// and takes the last value. The returned warnings are advisory.
func Parse(src string) (*confmap.Map, []string) {
	out := confmap.New()
	for _, n := range ParseLines(src) {
		if n.Type == NodeAssignment {
			out.Set(n.Key, n.Value)
		}
	}

	var warnings []string
	if strings.ContainsAny(src, "{[") {
		warnings = append(warnings, ComplexWarning)
	}

	logging.For("parser").Debug().
		Str("at", "parser.Parse").
		Int("keys", out.Len()).
		Int("warnings", len(warnings)).
		Msg("parsed_configuration")

	return out, warnings
}

// ParseLines classifies every line of src. Lines are processed
// independently; there is no block or continuation state.
func ParseLines(src string) []*Node {
	lines := splitLines(src)
	nodes := make([]*Node, 0, len(lines))
	for i, line := range lines {
		n := classifyLine(line)
		n.Line = i + 1
		nodes = append(nodes, n)
	}
	return nodes
}

func classifyLine(raw string) *Node {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		return &Node{Type: NodeBlankLine, Raw: raw}
	}
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
		return &Node{Type: NodeComment, Raw: raw}
	}

	m := assignRe.FindStringSubmatch(trimmed)
	if m == nil {
		return &Node{Type: NodeSkipped, Raw: raw}
	}

	value := strings.TrimSpace(m[2])
	value = strings.TrimSuffix(value, ",")
	value, quoted := unquote(value)

	return &Node{
		Type:     NodeAssignment,
		Raw:      raw,
		Key:      m[1],
		RawValue: value,
		Quoted:   quoted,
		Value:    confmap.Infer(value),
	}
}

// unquote strips one layer of matching double or single quotes.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return s, false
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' || first == '\'') && first == last {
		return s[1 : len(s)-1], true
	}
	return s, false
}

// splitLines splits source into lines, dropping the empty element a
// trailing newline produces.
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// DetectProfile returns the profile whose preset values best match parsed.
// Each preset pair present in parsed with an equal kind and value scores a
// point; the strictly highest score wins, so ties go to the profile listed
// first. It reports false when no profile scores.
func DetectProfile(parsed *confmap.Map, cat *catalog.Catalog) (string, bool) {
	best, bestScore := "", 0
	for _, p := range cat.Profiles() {
		score := 0
		p.Config.Range(func(key string, want confmap.Value) bool {
			if got, ok := parsed.Get(key); ok && got.Equal(want) {
				score++
			}
			return true
		})
		if score > bestScore {
			best, bestScore = p.ID, score
		}
	}
	return best, bestScore > 0
}
