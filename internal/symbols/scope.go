package symbols

import "yuanc/internal/source"

// ScopeKind enumerates the lexical scope categories the table tracks.
type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeLoop
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeLoop:
		return "loop"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is one entry in the scope stack: a set of bindings plus a link to
// its enclosing scope. A loop scope additionally carries the (possibly
// absent) label used to resolve a labeled break/continue.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Label     source.StringID // zero StringID unless Kind == ScopeLoop and the loop is labeled
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
}
