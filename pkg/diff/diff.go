// Package diff compares two generated configuration documents and prints
// the result as a unified diff.
package diff

import (
	"fmt"
	"strings"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Options controls a comparison.
type Options struct {
	// OldLabel and NewLabel name the two sides in the --- and +++ lines.
	OldLabel string
	NewLabel string
	// Context is the number of unchanged lines around each hunk. Zero
	// means DefaultContext; use a negative value for none.
	Context int
	// Normalize maps a line to the form used for comparison. Lines that
	// normalize to the same string count as equal and are printed from
	// the old side.
	Normalize func(line string) string
}

func (o Options) context() int {
	switch {
	case o.Context < 0:
		return 0
	case o.Context == 0:
		return DefaultContext
	}
	return o.Context
}

// Equal reports whether the documents are the same once normalized.
func Equal(oldText, newText string, opts Options) bool {
	a, b := splitLines(oldText), splitLines(newText)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if opts.key(a[i]) != opts.key(b[i]) {
			return false
		}
	}
	return true
}

// Unified returns a unified diff of oldText against newText, or an empty
// string when they are equal.
func Unified(oldText, newText string, opts Options) string {
	a, b := splitLines(oldText), splitLines(newText)
	script := compare(a, b, opts)
	hunks := group(script, opts.context())
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", label(opts.OldLabel, "a"), label(opts.NewLabel, "b"))
	for _, h := range hunks {
		h.write(&sb, a, b)
	}
	return sb.String()
}

func label(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func (o Options) key(line string) string {
	line = strings.TrimSuffix(line, "\n")
	if o.Normalize == nil {
		return line
	}
	return o.Normalize(line)
}

// splitLines splits text after each newline. A final line without a
// newline is kept; an empty string has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type opKind byte

const (
	opKeep   opKind = ' '
	opRemove opKind = '-'
	opAdd    opKind = '+'
)

// op is one step of the edit script. oldPos and newPos are the cursors
// into each side before the step is applied.
type op struct {
	kind   opKind
	oldPos int
	newPos int
}

// compare builds a shortest edit script from a longest common
// subsequence table. Removals are emitted before additions within a
// change so hunks read old-then-new.
func compare(a, b []string, opts Options) []op {
	ka := make([]string, len(a))
	for i, l := range a {
		ka[i] = opts.key(l)
	}
	kb := make([]string, len(b))
	for i, l := range b {
		kb[i] = opts.key(l)
	}

	// lcs[i][j] is the common subsequence length of ka[i:] and kb[j:].
	lcs := make([][]int, len(ka)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(kb)+1)
	}
	for i := len(ka) - 1; i >= 0; i-- {
		for j := len(kb) - 1; j >= 0; j-- {
			if ka[i] == kb[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	script := make([]op, 0, len(ka)+len(kb))
	i, j := 0, 0
	for i < len(ka) || j < len(kb) {
		switch {
		case i < len(ka) && j < len(kb) && ka[i] == kb[j]:
			script = append(script, op{opKeep, i, j})
			i++
			j++
		case j == len(kb) || (i < len(ka) && lcs[i+1][j] >= lcs[i][j+1]):
			script = append(script, op{opRemove, i, j})
			i++
		default:
			script = append(script, op{opAdd, i, j})
			j++
		}
	}
	return script
}

// hunk is a window of the edit script.
type hunk struct {
	ops []op
}

// group cuts the script into hunks, merging changes whose context
// windows touch.
func group(script []op, ctx int) []hunk {
	var hunks []hunk
	lo, hi := -1, -1
	flush := func() {
		if lo < 0 {
			return
		}
		start := max(lo-ctx, 0)
		end := min(hi+ctx, len(script)-1)
		hunks = append(hunks, hunk{ops: script[start : end+1]})
		lo, hi = -1, -1
	}
	for i, o := range script {
		if o.kind == opKeep {
			continue
		}
		if lo >= 0 && i-hi > 2*ctx {
			flush()
		}
		if lo < 0 {
			lo = i
		}
		hi = i
	}
	flush()
	return hunks
}

func (h hunk) write(sb *strings.Builder, a, b []string) {
	var oldCount, newCount int
	for _, o := range h.ops {
		if o.kind != opAdd {
			oldCount++
		}
		if o.kind != opRemove {
			newCount++
		}
	}
	first := h.ops[0]
	fmt.Fprintf(sb, "@@ -%s +%s @@\n",
		span(first.oldPos, oldCount), span(first.newPos, newCount))

	for _, o := range h.ops {
		var line string
		if o.kind == opAdd {
			line = b[o.newPos]
		} else {
			line = a[o.oldPos]
		}
		sb.WriteByte(byte(o.kind))
		sb.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			sb.WriteString("\n\\ No newline at end of file\n")
		}
	}
}

// span formats a hunk range. An empty range points at the line before
// it, as diff(1) does.
func span(pos, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", pos)
	}
	return fmt.Sprintf("%d,%d", pos+1, count)
}
