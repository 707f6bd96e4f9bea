package symbols

import (
	"yuanc/internal/ast"
	"yuanc/internal/source"
	"yuanc/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar
	SymbolConst
	SymbolFunc
	SymbolStruct
	SymbolEnum
	SymbolEnumVariant
	SymbolTypeAlias
	SymbolTrait
	SymbolParam
	SymbolGenericParam
	SymbolBuiltinType
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "var"
	case SymbolConst:
		return "const"
	case SymbolFunc:
		return "func"
	case SymbolStruct:
		return "struct"
	case SymbolEnum:
		return "enum"
	case SymbolEnumVariant:
		return "enum-variant"
	case SymbolTypeAlias:
		return "type-alias"
	case SymbolTrait:
		return "trait"
	case SymbolParam:
		return "param"
	case SymbolGenericParam:
		return "generic-param"
	case SymbolBuiltinType:
		return "builtin-type"
	default:
		return "invalid"
	}
}

// Symbol describes a named entity visible in some scope.
type Symbol struct {
	Name    source.StringID
	Kind    SymbolKind
	Scope   ScopeID
	Span    source.Span
	Decl    ast.DeclID // NoDeclID for params/generics/builtins, which have no top-level Decl
	Type    types.TypeID
	Mutable bool
}
