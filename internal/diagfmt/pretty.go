// Package diagfmt renders diag.Bag contents for human consumption: a
// Clang-style positional text printer and a lipgloss-styled AST dump tree.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"yuanc/internal/diag"
	"yuanc/internal/source"
)

// PrettyOpts configures the text diagnostic printer.
type PrettyOpts struct {
	Color        bool
	ContextLines int // lines of source shown above the offending line; 0 means just the line itself
	TabWidth     int // column stop width for '\t' expansion; 0 defaults to 4
}

// Pretty writes bag's diagnostics to w in Clang-style positional form:
//
//	file.yu:12:7: error E3003: type mismatch: expected 'i32', found 'bool'
//	   12 | let x: i32 = cond;
//	      |              ^~~~
//	fix: replace with 'cond as i32'
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	prevNoColor := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = prevNoColor }()

	tabWidth := opts.TabWidth
	if tabWidth == 0 {
		tabWidth = 4
	}

	sevColor := func(s diag.Severity) *color.Color {
		switch s {
		case diag.SevError, diag.SevFatal:
			return color.New(color.FgRed, color.Bold)
		case diag.SevWarning:
			return color.New(color.FgYellow, color.Bold)
		default:
			return color.New(color.FgCyan, color.Bold)
		}
	}
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	gutterColor := color.New(color.FgBlue)

	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeOne(w, d, fs, tabWidth, opts.ContextLines, sevColor, pathColor, codeColor, gutterColor)
	}
}

func writeOne(
	w io.Writer, d diag.Diagnostic, fs *source.FileSet, tabWidth, context int,
	sevColor func(diag.Severity) *color.Color, pathColor, codeColor, gutterColor *color.Color,
) {
	start, end := fs.Resolve(d.Primary)
	f := fs.Get(d.Primary.File)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		pathColor.Sprint(f.Path),
		start.Line, start.Col,
		sevColor(d.Severity()).Sprint(d.Severity().String()),
		codeColor.Sprint(d.Code.String()),
		d.Message,
	)

	firstLine := start.Line
	if context > 0 {
		if firstLine > uint32(context) {
			firstLine -= uint32(context)
		} else {
			firstLine = 1
		}
	}
	for ln := firstLine; ln <= start.Line; ln++ {
		printGutterLine(w, f, ln, gutterColor)
	}
	printCaret(w, f.Line(start.Line), start, end, tabWidth, gutterColor)

	for _, n := range d.Notes {
		ns, _ := fs.Resolve(n.Span)
		nf := fs.Get(n.Span.File)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", nf.Path, ns.Line, ns.Col, color.New(color.FgCyan).Sprint("note"), n.Msg)
	}
	for _, fix := range d.Fixes {
		if len(fix.Edits) == 1 && fix.Edits[0].NewText != "" && !fix.Edits[0].Span.Empty() {
			fmt.Fprintf(w, "fix: replace with '%s'\n", fix.Edits[0].NewText)
		} else if len(fix.Edits) == 1 && fix.Edits[0].NewText == "" {
			fmt.Fprintln(w, "fix: remove this code")
		} else {
			fmt.Fprintf(w, "fix: %s\n", fix.Title)
		}
	}
}

func printGutterLine(w io.Writer, f *source.File, line uint32, gutterColor *color.Color) {
	fmt.Fprintf(w, "%s | %s\n", gutterColor.Sprintf("%5d", line), f.Line(line))
}

// printCaret underlines the span [start,end) on its own line: a single '^'
// at the start column and '~' for the remainder of the range that falls on
// the same source line, honoring tab stops and grapheme-cluster widths so
// combining marks and wide CJK glyphs align correctly.
func printCaret(w io.Writer, lineText string, start, end source.LineCol, tabWidth int, gutterColor *color.Color) {
	prefixWidth := visualWidth(lineText, int(start.Col)-1, tabWidth)
	underlineWidth := 1
	if end.Line == start.Line && end.Col > start.Col {
		underlineWidth = visualWidth(lineText, int(end.Col)-1, tabWidth) - prefixWidth
		if underlineWidth < 1 {
			underlineWidth = 1
		}
	}
	gutter := gutterColor.Sprint("      |")
	fmt.Fprintf(w, "%s %s%s%s\n", gutter, strings.Repeat(" ", prefixWidth), "^", strings.Repeat("~", underlineWidth-1))
}

// visualWidth computes the on-screen column width of lineText up to the
// given byte offset, expanding tabs to tabWidth-column stops and summing
// per-grapheme-cluster display width (so e.g. combining accents count once).
func visualWidth(lineText string, byteOffset, tabWidth int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(lineText) {
		byteOffset = len(lineText)
	}
	visual := 0
	segs := graphemes.FromString(lineText[:byteOffset])
	for segs.Next() {
		cluster := segs.Value()
		if cluster == "\t" {
			visual = ((visual / tabWidth) + 1) * tabWidth
			continue
		}
		visual += runewidth.StringWidth(cluster)
	}
	return visual
}
