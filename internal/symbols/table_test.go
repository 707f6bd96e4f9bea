package symbols

import (
	"testing"

	"yuanc/internal/ast"
	"yuanc/internal/source"
	"yuanc/internal/types"
)

func TestTableGlobalDepth(t *testing.T) {
	table := NewTable(source.NewInterner())
	if got := table.Depth(); got != 1 {
		t.Fatalf("expected initial depth 1, got %d", got)
	}
	scope := table.EnterScope(ScopeBlock, source.NoStringID)
	if !scope.IsValid() {
		t.Fatalf("expected valid scope ID")
	}
	if got := table.Depth(); got != 2 {
		t.Fatalf("expected depth 2 after enter, got %d", got)
	}
	table.ExitScope()
	if got := table.Depth(); got != 1 {
		t.Fatalf("expected depth 1 after exit, got %d", got)
	}
	table.ExitScope() // popping the global scope must be a no-op
	if got := table.Depth(); got != 1 {
		t.Fatalf("expected global scope to survive an extra exit, got depth %d", got)
	}
}

func TestTableDeclareRejectsDuplicateAtSameScope(t *testing.T) {
	table := NewTable(source.NewInterner())
	name := table.strings.Intern("x")

	if _, ok := table.Declare(name, source.NoSpan, SymbolVar, ast.NoDeclID, types.NoTypeID, true); !ok {
		t.Fatalf("first declaration should succeed")
	}
	if _, ok := table.Declare(name, source.NoSpan, SymbolVar, ast.NoDeclID, types.NoTypeID, true); ok {
		t.Fatalf("duplicate declaration at the same scope should fail")
	}
}

func TestTableShadowingAcrossScopes(t *testing.T) {
	table := NewTable(source.NewInterner())
	name := table.strings.Intern("x")

	outer, _ := table.Declare(name, source.NoSpan, SymbolVar, ast.NoDeclID, types.NoTypeID, true)

	table.EnterScope(ScopeBlock, source.NoStringID)
	inner, ok := table.Declare(name, source.NoSpan, SymbolVar, ast.NoDeclID, types.NoTypeID, false)
	if !ok {
		t.Fatalf("shadowing declaration in a nested scope should succeed")
	}

	got, ok := table.Lookup(name)
	if !ok || got != inner {
		t.Fatalf("lookup should resolve the deepest shadowing binding, got %v want %v", got, inner)
	}

	table.ExitScope()
	got, ok = table.Lookup(name)
	if !ok || got != outer {
		t.Fatalf("after leaving the inner scope, lookup should resolve the outer binding, got %v want %v", got, outer)
	}
}

func TestTableLookupLocalDoesNotWalkParents(t *testing.T) {
	table := NewTable(source.NewInterner())
	name := table.strings.Intern("x")
	table.Declare(name, source.NoSpan, SymbolVar, ast.NoDeclID, types.NoTypeID, true)

	table.EnterScope(ScopeBlock, source.NoStringID)
	if _, ok := table.LookupLocal(name); ok {
		t.Fatalf("LookupLocal must not see bindings from an enclosing scope")
	}
	if _, ok := table.Lookup(name); !ok {
		t.Fatalf("Lookup should still find the outer binding")
	}
}

func TestTableInFunctionAndInLoop(t *testing.T) {
	table := NewTable(source.NewInterner())
	if table.InFunction() {
		t.Fatalf("global scope is not inside a function")
	}
	if _, ok := table.InLoop(); ok {
		t.Fatalf("global scope is not inside a loop")
	}

	table.EnterScope(ScopeFunction, source.NoStringID)
	if !table.InFunction() {
		t.Fatalf("expected InFunction to be true inside a function scope")
	}

	loopLabel := table.strings.Intern("outer")
	loopScope := table.EnterScope(ScopeLoop, loopLabel)
	if got, ok := table.InLoop(); !ok || got != loopScope {
		t.Fatalf("expected InLoop to report the innermost loop scope")
	}

	table.EnterScope(ScopeBlock, source.NoStringID)
	if resolved, ok := table.ResolveLabel(loopLabel); !ok || resolved != loopScope {
		t.Fatalf("ResolveLabel should find the labeled loop through an intervening block scope")
	}
	if _, ok := table.ResolveLabel(table.strings.Intern("nonexistent")); ok {
		t.Fatalf("ResolveLabel should fail for an unknown label")
	}
}

func TestTableSeedBuiltins(t *testing.T) {
	table := NewTable(source.NewInterner())
	in := types.NewInterner(types.Width64)
	errType := in.Intern(types.MakeError(types.NoTypeID))
	table.SeedBuiltins(in.Builtins(), errType, "Error")

	for _, name := range []string{"void", "bool", "char", "str", "i32", "u64", "f64", "Error"} {
		if _, ok := table.Lookup(table.strings.Intern(name)); !ok {
			t.Fatalf("expected builtin %q to be seeded in the global scope", name)
		}
	}
}
