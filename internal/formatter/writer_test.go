package formatter

import (
	"testing"
)

func TestWriterBlocks(t *testing.T) {
	var w Writer
	w.Comment("header")
	w.Blank()
	w.Open("outer")
	w.Open("inner")
	w.Assign("key", "value")
	w.Close()
	w.Blank()
	w.Close()

	want := "# header\n" +
		"\n" +
		"outer {\n" +
		"  inner {\n" +
		"    key = value\n" +
		"  }\n" +
		"\n" +
		"}\n"
	if got := w.String(); got != want {
		t.Errorf("want:\n%q\ngot:\n%q", want, got)
	}
}

func TestWriterAnonymousBlock(t *testing.T) {
	var w Writer
	w.Open("")
	w.Assign("a", "1")
	w.Close()

	if got, want := w.String(), "{\n  a = 1\n}\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestWriterClosesOpenBlocks(t *testing.T) {
	var w Writer
	w.Open("a")
	w.Open("b")
	if w.Depth() != 2 {
		t.Fatalf("depth: want 2, got %d", w.Depth())
	}

	if got, want := w.String(), "a {\n  b {\n  }\n}\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestWriterEmpty(t *testing.T) {
	var w Writer
	if got := w.String(); got != "" {
		t.Errorf("want empty document, got %q", got)
	}
}

func TestWriterCloseAtTopLevel(t *testing.T) {
	var w Writer
	w.Close()
	if got, want := w.String(), "}\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if w.Depth() != 0 {
		t.Errorf("depth went negative: %d", w.Depth())
	}
}
