package sema_test

import (
	"testing"

	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/lexer"
	"yuanc/internal/parser"
	"yuanc/internal/sema"
	"yuanc/internal/source"
	"yuanc/internal/symbols"
	"yuanc/internal/types"
)

// checkSource lexes, parses, and runs Sema over src, returning the
// collected diagnostics. It mirrors the pipeline internal/driver builds,
// one file at a time with its own fresh FileSet/Context/Table.
func checkSource(t *testing.T, src string) *diag.Bag {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.Add("test.yu", []byte(src), 0)

	bag := diag.NewBag(diag.Ignoring{})
	bag.SetErrorLimit(200)

	lx := lexer.New(fileID, []byte(src), bag)
	actx := ast.NewContext(types.Width64)
	pf := parser.ParseFile(lx, actx, bag, fileID, parser.Options{MaxErrors: 200})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, bag.Items())
	}

	syms := symbols.NewTable(actx.Strings)
	sema.Check(actx, pf, bag, syms, sema.Options{ErrorTypeName: "Error"})
	return bag
}

func TestCheckValidProgramHasNoDiagnostics(t *testing.T) {
	bag := checkSource(t, "func main() {\n}\n")
	if bag.HasErrors() {
		t.Fatalf("expected no errors, got: %v", bag.Items())
	}
}

func TestCheckValidProgramWithLocalsHasNoDiagnostics(t *testing.T) {
	src := "func add(a: i32, b: i32) -> i32 {\n" +
		"    var sum: i32 = a + b;\n" +
		"    return sum;\n" +
		"}\n"
	bag := checkSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("expected no errors, got: %v", bag.Items())
	}
}

func TestCheckUndeclaredIdentifierReported(t *testing.T) {
	src := "func main() {\n" +
		"    return missing;\n" +
		"}\n"
	bag := checkSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected an undeclared-identifier error, got none")
	}
	found := false
	for _, item := range bag.Items() {
		if item.Code == diag.SemaUndeclaredIdentifier {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diag code %v among %v", diag.SemaUndeclaredIdentifier, bag.Items())
	}
}

func TestCheckIntegerWideningOnReturnIsAccepted(t *testing.T) {
	src := "func f(a: i16) -> i32 {\n" +
		"    return a;\n" +
		"}\n"
	bag := checkSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("expected widening i16 -> i32 return to be accepted, got: %v", bag.Items())
	}
}

func TestCheckIntegerWideningOnVarInitIsAccepted(t *testing.T) {
	src := "func f(a: i16) {\n" +
		"    var b: i32 = a;\n" +
		"}\n"
	bag := checkSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("expected widening i16 -> i32 var init to be accepted, got: %v", bag.Items())
	}
}

func TestCheckIntegerWideningOnCallArgIsAccepted(t *testing.T) {
	src := "func g(x: i32) {\n}\n" +
		"func f(a: i16) {\n" +
		"    g(a);\n" +
		"}\n"
	bag := checkSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("expected widening i16 -> i32 call argument to be accepted, got: %v", bag.Items())
	}
}

func TestCheckIntegerNarrowingOnReturnIsRejected(t *testing.T) {
	src := "func f(a: i32) -> i16 {\n" +
		"    return a;\n" +
		"}\n"
	bag := checkSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected narrowing i32 -> i16 return to be rejected")
	}
	found := false
	for _, item := range bag.Items() {
		if item.Code == diag.SemaTypeMismatch || item.Code == diag.SemaReturnTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a type-mismatch diagnostic among %v", bag.Items())
	}
}

func TestCheckIntegerWideningAcrossSignednessIsRejected(t *testing.T) {
	src := "func f(a: u16) -> i32 {\n" +
		"    return a;\n" +
		"}\n"
	bag := checkSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected u16 -> i32 (different signedness) to be rejected")
	}
}

func TestCheckRedeclaredSymbolReported(t *testing.T) {
	src := "func main() {\n}\n" +
		"func main() {\n}\n"
	bag := checkSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected a redeclaration error, got none")
	}
	found := false
	for _, item := range bag.Items() {
		if item.Code == diag.SemaRedefinition {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diag code %v among %v", diag.SemaRedefinition, bag.Items())
	}
}
