// Package formatter renders wizard sessions into Fukuii HOCON documents.
package formatter

import (
	"strings"
)

// indentUnit is the per-level block indentation.
const indentUnit = "  "

// Writer builds a line-oriented HOCON document with nested blocks.
// Blank lines never carry indentation.
type Writer struct {
	lines []string
	depth int
}

// Line writes one indented line.
func (w *Writer) Line(s string) {
	w.lines = append(w.lines, strings.Repeat(indentUnit, w.depth)+s)
}

// Comment writes a "# text" line at the current depth.
func (w *Writer) Comment(text string) {
	w.Line("# " + text)
}

// Assign writes a "key = value" line. value must already be formatted.
func (w *Writer) Assign(key, value string) {
	w.Line(key + " = " + value)
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.lines = append(w.lines, "")
}

// Open writes "name {" (or a bare "{" when name is empty) and indents
// the following lines.
func (w *Writer) Open(name string) {
	if name == "" {
		w.Line("{")
	} else {
		w.Line(name + " {")
	}
	w.depth++
}

// Close ends the innermost open block.
func (w *Writer) Close() {
	if w.depth > 0 {
		w.depth--
	}
	w.Line("}")
}

// Depth returns the number of open blocks.
func (w *Writer) Depth() int {
	return w.depth
}

// String returns the document. Unclosed blocks are closed and the result
// always ends with a single newline.
func (w *Writer) String() string {
	for w.depth > 0 {
		w.Close()
	}
	if len(w.lines) == 0 {
		return ""
	}
	return strings.Join(w.lines, "\n") + "\n"
}
