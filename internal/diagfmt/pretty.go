// Package diagfmt renders diagnostics for terminal output.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vetch/internal/diag"
	"vetch/internal/source"
)

// PrettyOpts configure the human-readable formatter.
type PrettyOpts struct {
	Color   bool
	Context bool // print the source line with an underline
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	posColor  = color.New(color.Bold)
)

// Pretty formats diagnostics in a human-readable way, one entry per
// diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed (with Context) by the source line and a ^~~~ underline covering
// the primary span. Call bag.Sort() beforehand for deterministic output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	pos := source.LineCol{Line: 1, Col: 1}
	path := "<unknown>"
	if file != nil {
		pos = file.Position(d.Primary.Start)
		path = file.Path
	}

	location := fmt.Sprintf("%s:%d:%d:", path, pos.Line, pos.Col)
	sev := d.Severity.String()
	if opts.Color {
		location = posColor.Sprint(location)
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s %s %s: %s\n", location, sev, d.Code.String(), d.Message)

	if opts.Context && file != nil {
		writeContext(w, file, d.Primary, pos, opts)
	}
	for _, note := range d.Notes {
		noteFile := fs.Get(note.Span.File)
		if noteFile == nil {
			continue
		}
		notePos := noteFile.Position(note.Span.Start)
		fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", noteFile.Path, notePos.Line, notePos.Col, note.Msg)
	}
}

// writeContext prints the offending line and an underline. Caret alignment
// accounts for wide runes in the prefix.
func writeContext(w io.Writer, file *source.File, span source.Span, pos source.LineCol, opts PrettyOpts) {
	line := file.Line(pos.Line)
	if line == nil {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	prefix := line
	if int(pos.Col-1) <= len(line) {
		prefix = line[:pos.Col-1]
	}
	pad := runewidth.StringWidth(string(prefix))

	spanLen := int(span.Len())
	end := int(pos.Col-1) + spanLen
	if end > len(line) {
		end = len(line)
	}
	width := runewidth.StringWidth(string(line[min(int(pos.Col-1), len(line)):end]))
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		underline = warnColor.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), underline)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
