package sema

import (
	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/symbols"
	"yuanc/internal/types"
)

// collectDecl installs a module-level symbol for d without examining its
// body or resolving any type expression: spec's first pass exists
// precisely so mutually-recursive declarations (two structs referencing
// each other, a function calling one declared later) see every name
// before any signature is typed.
func (c *Checker) collectDecl(d ast.DeclID) {
	decl := c.ctx.Decls.Get(d)
	if decl == nil {
		return
	}
	switch decl.Kind {
	case ast.DeclVar:
		data, _ := c.ctx.Decls.Var(d)
		if data.Name == 0 {
			return // destructuring top-level binding; not spec-required to support
		}
		c.declareSymbol(data.Name, decl.Span, symbols.SymbolVar, d, types.NoTypeID, data.Mutable)

	case ast.DeclConst:
		data, _ := c.ctx.Decls.Const(d)
		c.declareSymbol(data.Name, decl.Span, symbols.SymbolConst, d, types.NoTypeID, false)

	case ast.DeclFunc:
		data, _ := c.ctx.Decls.Func(d)
		c.buildGenericScope(d, data.Generics)
		c.declareSymbol(data.Name, decl.Span, symbols.SymbolFunc, d, types.NoTypeID, false)

	case ast.DeclStruct:
		data, _ := c.ctx.Decls.Struct(d)
		c.buildGenericScope(d, data.Generics)
		t := c.ctx.Types.NewStruct(types.StructInfo{Name: data.Name})
		c.declTypes[d] = t
		c.declareSymbol(data.Name, decl.Span, symbols.SymbolStruct, d, t, false)

	case ast.DeclEnum:
		data, _ := c.ctx.Decls.Enum(d)
		c.buildGenericScope(d, data.Generics)
		t := c.ctx.Types.NewEnum(types.EnumInfo{Name: data.Name})
		c.declTypes[d] = t
		c.declareSymbol(data.Name, decl.Span, symbols.SymbolEnum, d, t, false)

	case ast.DeclTypeAlias:
		data, _ := c.ctx.Decls.TypeAlias(d)
		c.buildGenericScope(d, data.Generics)
		t := c.ctx.Types.NewAlias(types.AliasInfo{Name: data.Name})
		c.declTypes[d] = t
		c.declareSymbol(data.Name, decl.Span, symbols.SymbolTypeAlias, d, t, false)

	case ast.DeclTrait:
		data, _ := c.ctx.Decls.Trait(d)
		c.buildGenericScope(d, data.Generics)
		c.declareSymbol(data.Name, decl.Span, symbols.SymbolTrait, d, types.NoTypeID, false)
		c.traits[data.Name] = &traitInfo{Decl: d, Name: data.Name, Methods: make(map[source.StringID]*funcSignature)}

	case ast.DeclImpl:
		// Indexed in pass 3, after every nominal type and trait is known.
	}
}

// declareSymbol wraps symbols.Table.Declare, reporting a redefinition
// diagnostic on collision and recording the successful binding's symbol
// under its originating decl for later passes to recover it by DeclID.
func (c *Checker) declareSymbol(name source.StringID, span source.Span, kind symbols.SymbolKind, d ast.DeclID, t types.TypeID, mutable bool) (symbols.SymbolID, bool) {
	sym, ok := c.syms.Declare(name, span, kind, d, t, mutable)
	if !ok {
		c.report(diag.SemaRedefinition, span, c.str(name))
		return symbols.NoSymbolID, false
	}
	c.declSymbols[d] = sym
	return sym, true
}

func (c *Checker) collectEnumVariantShortcuts(decls []ast.DeclID) {
	for _, d := range decls {
		decl := c.ctx.Decls.Get(d)
		if decl == nil || decl.Kind != ast.DeclEnum {
			continue
		}
		data, _ := c.ctx.Decls.Enum(d)
		enumType := c.declTypes[d]
		for _, vid := range data.Variants {
			vdata := c.ctx.Decls.Variant(vid)
			if vdata == nil {
				continue
			}
			if existing, ok := c.syms.LookupLocal(vdata.Name); ok {
				sym := c.syms.Symbol(existing)
				if sym != nil && sym.Kind == symbols.SymbolFunc {
					c.report(diag.WarnEnumVariantFnPreferred, vdata.Span, c.str(vdata.Name))
				}
				continue
			}
			c.syms.Declare(vdata.Name, vdata.Span, symbols.SymbolEnumVariant, d, enumType, false)
		}
	}
}
