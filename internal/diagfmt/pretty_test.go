package diagfmt

import (
	"strings"
	"testing"

	"vetch/internal/diag"
	"vetch/internal/source"
)

func renderOne(t *testing.T, src string, start, end uint32, opts PrettyOpts) string {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Add("demo.vt", []byte(src))

	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.LintTrailingReturn,
		source.Span{File: file, Start: start, End: end},
		"remove trailing `return`"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, opts)
	return sb.String()
}

func TestPrettyHeaderLine(t *testing.T) {
	got := renderOne(t, "fn f() { return 1 }\n", 9, 17, PrettyOpts{})
	want := "demo.vt:1:10: WARNING VET5004: remove trailing `return`\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrettyContext(t *testing.T) {
	got := renderOne(t, "fn f() { return 1 }\n", 9, 17, PrettyOpts{Context: true})
	lines := strings.Split(got, "\n")
	if len(lines) < 3 {
		t.Fatalf("output = %q", got)
	}
	if lines[1] != "  fn f() { return 1 }" {
		t.Errorf("context line = %q", lines[1])
	}
	if lines[2] != "           ^~~~~~~~" {
		t.Errorf("underline = %q", lines[2])
	}
}

func TestPrettySecondLineSpan(t *testing.T) {
	src := "fn f() {\n    return 1\n}\n"
	got := renderOne(t, src, 13, 21, PrettyOpts{Context: true})
	if !strings.HasPrefix(got, "demo.vt:2:5: WARNING VET5004:") {
		t.Errorf("header = %q", got)
	}
	lines := strings.Split(got, "\n")
	if lines[1] != "      return 1" {
		t.Errorf("context line = %q", lines[1])
	}
	if lines[2] != "      ^~~~~~~~" {
		t.Errorf("underline = %q", lines[2])
	}
}

func TestPrettyUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(1)
	bag.Add(diag.NewWarning(diag.LintInfo, source.Span{}, "dangling"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Context: true})
	if !strings.HasPrefix(sb.String(), "<unknown>:1:1:") {
		t.Errorf("output = %q", sb.String())
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("demo.vt", []byte("Point { x: 1 }\n"))

	d := diag.New(diag.SevError, diag.LintMissingFields,
		source.Span{File: file, Start: 0, End: 14},
		"missing structure fields of `Point`: y").
		WithNote(source.Span{File: file, Start: 0, End: 5}, "declared here")
	bag := diag.NewBag(1)
	bag.Add(d)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	if !strings.Contains(sb.String(), "  note: demo.vt:1:1: declared here\n") {
		t.Errorf("output = %q", sb.String())
	}
}
