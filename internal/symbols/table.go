package symbols

import (
	"yuanc/internal/ast"
	"yuanc/internal/source"
	"yuanc/internal/types"
)

// Table is a stack of lexical scopes. It is created with the global scope
// already pushed (spec §4.6: scope depth is always >= 1) and exposes the
// declare/lookup operations Sema drives while walking a compilation unit.
type Table struct {
	scopes  *scopes
	symbols *symbolArena
	strings *source.Interner
	stack   []ScopeID

	enters int
	exits  int
}

// NewTable constructs a table with a freshly pushed global scope.
func NewTable(strings *source.Interner) *Table {
	t := &Table{
		scopes:  newScopes(0),
		symbols: newSymbolArena(0),
		strings: strings,
		stack:   make([]ScopeID, 0, 16),
	}
	global := t.scopes.new(ScopeGlobal, NoScopeID, source.NoStringID)
	t.stack = append(t.stack, global)
	t.enters++
	return t
}

// SeedBuiltins installs the global scope's built-in type aliases: void,
// bool, char, str, every integer/float width, and the system-level tagged
// error type its caller passes (sema.Check builds one when an error type
// name is set); an errorType of NoTypeID installs no error type.
func (t *Table) SeedBuiltins(b types.Builtins, errorType types.TypeID, errorTypeName string) {
	builtin := func(name string, id types.TypeID) {
		t.Declare(t.strings.Intern(name), source.NoSpan, SymbolBuiltinType, ast.NoDeclID, id, false)
	}
	builtin("void", b.Void)
	builtin("bool", b.Bool)
	builtin("char", b.Char)
	builtin("str", b.String)
	builtin("i8", b.I8)
	builtin("i16", b.I16)
	builtin("i32", b.I32)
	builtin("i64", b.I64)
	builtin("i128", b.I128)
	builtin("isize", b.Isize)
	builtin("u8", b.U8)
	builtin("u16", b.U16)
	builtin("u32", b.U32)
	builtin("u64", b.U64)
	builtin("u128", b.U128)
	builtin("usize", b.Usize)
	builtin("f32", b.F32)
	builtin("f64", b.F64)
	if errorType != types.NoTypeID {
		builtin(errorTypeName, errorType)
	}
}

// CurrentScope returns the scope at the top of the stack.
func (t *Table) CurrentScope() ScopeID {
	return t.stack[len(t.stack)-1]
}

// Depth reports the number of enterScope calls minus exitScope calls since
// construction; it is always >= 1 (the global scope is never popped).
func (t *Table) Depth() int {
	return t.enters - t.exits
}

// EnterScope pushes a new scope linked to the current top and returns its ID.
func (t *Table) EnterScope(kind ScopeKind, label source.StringID) ScopeID {
	parent := t.CurrentScope()
	id := t.scopes.new(kind, parent, label)
	t.stack = append(t.stack, id)
	t.enters++
	return id
}

// ExitScope pops the current scope. It never pops the global scope.
func (t *Table) ExitScope() {
	if len(t.stack) <= 1 {
		return
	}
	t.stack = t.stack[:len(t.stack)-1]
	t.exits++
}

// Declare installs a symbol into the current scope. It fails (returning
// NoSymbolID, false) and leaves the table unchanged if a symbol with the
// same name already exists at the current scope — spec §4.6 does not
// special-case overloading.
func (t *Table) Declare(name source.StringID, span source.Span, kind SymbolKind, decl ast.DeclID, typ types.TypeID, mutable bool) (SymbolID, bool) {
	scopeID := t.CurrentScope()
	scope := t.scopes.get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}
	if _, exists := scope.NameIndex[name]; exists {
		return NoSymbolID, false
	}
	id := t.symbols.new(Symbol{
		Name:    name,
		Kind:    kind,
		Scope:   scopeID,
		Span:    span,
		Decl:    decl,
		Type:    typ,
		Mutable: mutable,
	})
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[name] = id
	return id, true
}

// Lookup walks parent scopes from the current scope and returns the first
// (deepest) match.
func (t *Table) Lookup(name source.StringID) (SymbolID, bool) {
	return t.lookupFrom(t.CurrentScope(), name)
}

func (t *Table) lookupFrom(scopeID ScopeID, name source.StringID) (SymbolID, bool) {
	for scopeID.IsValid() {
		scope := t.scopes.get(scopeID)
		if scope == nil {
			break
		}
		if id, ok := scope.NameIndex[name]; ok {
			return id, true
		}
		scopeID = scope.Parent
	}
	return NoSymbolID, false
}

// LookupLocal looks up name in the current scope only, without walking parents.
func (t *Table) LookupLocal(name source.StringID) (SymbolID, bool) {
	scope := t.scopes.get(t.CurrentScope())
	if scope == nil {
		return NoSymbolID, false
	}
	id, ok := scope.NameIndex[name]
	return id, ok
}

// Symbol resolves a SymbolID to its data.
func (t *Table) Symbol(id SymbolID) *Symbol { return t.symbols.get(id) }

// Scope resolves a ScopeID to its data.
func (t *Table) Scope(id ScopeID) *Scope { return t.scopes.get(id) }

// InFunction reports whether the current scope is nested inside a function
// scope (walking parents), stopping at the global scope.
func (t *Table) InFunction() bool {
	for id := t.CurrentScope(); id.IsValid(); {
		scope := t.scopes.get(id)
		if scope == nil {
			return false
		}
		if scope.Kind == ScopeFunction {
			return true
		}
		id = scope.Parent
	}
	return false
}

// InLoop reports whether the current scope is nested inside a loop scope,
// returning that loop scope's ID.
func (t *Table) InLoop() (ScopeID, bool) {
	for id := t.CurrentScope(); id.IsValid(); {
		scope := t.scopes.get(id)
		if scope == nil {
			return NoScopeID, false
		}
		if scope.Kind == ScopeLoop {
			return id, true
		}
		if scope.Kind == ScopeFunction {
			return NoScopeID, false // a loop in an outer function does not count
		}
		id = scope.Parent
	}
	return NoScopeID, false
}

// ResolveLabel finds the loop scope matching label, walking parents from
// the current scope. An empty label resolves to the innermost loop scope,
// stopping at the nearest enclosing function boundary.
func (t *Table) ResolveLabel(label source.StringID) (ScopeID, bool) {
	for id := t.CurrentScope(); id.IsValid(); {
		scope := t.scopes.get(id)
		if scope == nil {
			return NoScopeID, false
		}
		if scope.Kind == ScopeLoop {
			if label == source.NoStringID || scope.Label == label {
				return id, true
			}
		}
		if scope.Kind == ScopeFunction {
			return NoScopeID, false
		}
		id = scope.Parent
	}
	return NoScopeID, false
}
