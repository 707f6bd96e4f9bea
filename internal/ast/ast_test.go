package ast_test

import (
	"bytes"
	"strings"
	"testing"

	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/diagfmt"
	"yuanc/internal/lexer"
	"yuanc/internal/parser"
	"yuanc/internal/source"
	"yuanc/internal/types"
)

// parseSource lexes and parses src with a fresh FileSet/Context, failing
// the test on any parse error, and returns the file, its context, and the
// source.File backing it (needed by PrintFile's span-copy reprint).
func parseSource(t *testing.T, src string) (*ast.Context, *ast.File, *source.File) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.Add("test.yu", []byte(src), 0)

	bag := diag.NewBag(diag.Ignoring{})
	lx := lexer.New(fileID, []byte(src), bag)
	actx := ast.NewContext(types.Width64)
	pf := parser.ParseFile(lx, actx, bag, fileID, parser.Options{MaxErrors: 200})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, bag.Items())
	}
	return actx, pf, fs.Get(fileID)
}

func TestDumpFileRendersTopLevelDecls(t *testing.T) {
	src := "func main() {\n}\n"
	actx, pf, _ := parseSource(t, src)

	root := actx.DumpFile(pf)
	if root.Kind != "File" {
		t.Fatalf("root kind = %q, want File", root.Kind)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level decl, got %d", len(root.Children))
	}

	var buf bytes.Buffer
	diagfmt.Dump(&buf, root, diagfmt.DumpOpts{})
	if !strings.Contains(buf.String(), "FuncDecl") {
		t.Fatalf("dump output missing FuncDecl: %s", buf.String())
	}
}

func TestDumpFileVarDeclCarriesNameAndMutability(t *testing.T) {
	src := "func f() {\n    var mut x: i32 = 1;\n}\n"
	actx, pf, _ := parseSource(t, src)

	var buf bytes.Buffer
	diagfmt.Dump(&buf, actx.DumpFile(pf), diagfmt.DumpOpts{})
	out := buf.String()
	if !strings.Contains(out, "name=x") {
		t.Fatalf("dump output missing name=x: %s", out)
	}
	if !strings.Contains(out, "mut=true") {
		t.Fatalf("dump output missing mut=true: %s", out)
	}
}

func TestPrintFileRoundTripsSourceVerbatim(t *testing.T) {
	src := "func main() {\n}\n"
	actx, pf, sf := parseSource(t, src)

	out := actx.PrintFile(pf, sf)
	if string(out) != src {
		t.Fatalf("PrintFile round-trip = %q, want %q", out, src)
	}
}

func TestPrintFileRoundTripsMultiDecl(t *testing.T) {
	src := "func a() {\n}\nfunc b() {\n}\n"
	actx, pf, sf := parseSource(t, src)

	out := actx.PrintFile(pf, sf)
	if string(out) != src {
		t.Fatalf("PrintFile round-trip = %q, want %q", out, src)
	}
}

func TestCheckSpanInvariantsHoldsForParsedFile(t *testing.T) {
	src := "func a() {\n}\nfunc b() {\n}\nvar x: i32 = 1;\n"
	actx, pf, sf := parseSource(t, src)

	if err := actx.CheckSpanInvariants(pf, sf); err != nil {
		t.Fatalf("CheckSpanInvariants: %v", err)
	}
}
