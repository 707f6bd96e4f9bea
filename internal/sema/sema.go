// Package sema runs the four ordered semantic passes over a parsed file —
// declaration collection, type resolution, trait/impl indexing, and body
// analysis (typing plus ownership/move/borrow dataflow) — reporting every
// violation to a diag.Bag and annotating the AST in place with resolved
// types.
package sema

import (
	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/symbols"
	"yuanc/internal/types"
)

// Options configures one Check run.
type Options struct {
	// ErrorTypeName names the builtin tagged-error type seeded into global
	// scope (e.g. "Error"); "" seeds no error type (`!` and error handlers
	// are still checked, and a handler's error binding is then untyped).
	ErrorTypeName string
}

// funcSignature is the resolved call shape of a function or method, built
// once during type resolution / impl indexing and consulted by every call
// site during body analysis.
type funcSignature struct {
	Decl       ast.DeclID
	Params     []types.TypeID
	ParamKinds []ast.ParamKind
	Variadic   bool
	Return     types.TypeID
	ErrorRet   bool
	Async      bool
	Generics   []types.TypeID
}

// traitInfo is a declared trait's method/assoc-type surface, built during
// declaration collection and consulted while indexing impls.
type traitInfo struct {
	Decl    ast.DeclID
	Name    source.StringID
	Methods map[source.StringID]*funcSignature
}

// Checker owns every table Sema builds while walking one file: the symbol
// table, the type interner (reached through ctx.Types), and the
// intermediate maps that let later passes look up what earlier passes
// already resolved.
type Checker struct {
	ctx  *ast.Context
	bag  *diag.Bag
	syms *symbols.Table
	opts Options

	errorTypeName string
	errorType     types.TypeID

	// declTypes maps a DeclStruct/DeclEnum/DeclTypeAlias node to the
	// nominal TypeID declaration collection allocated for it.
	declTypes map[ast.DeclID]types.TypeID
	// declSymbols maps any top-level decl to the symbol declaration collection registered for it.
	declSymbols map[ast.DeclID]symbols.SymbolID
	// declGenerics maps a generic-bearing decl to its own parameter scope:
	// the GenericParam's name interned against the fresh types.TypeID
	// standing in for that parameter within the decl's signature/body.
	declGenerics map[ast.DeclID]map[source.StringID]types.TypeID
	// genericArity records how many generic parameters a nominal type (or
	// function) declares, for arity-checking `Name<Args...>` type exprs
	// and turbofish call sites.
	genericArity map[ast.DeclID]int

	funcSigs map[ast.DeclID]*funcSignature
	traits   map[source.StringID]*traitInfo

	// implsSeen guards spec invariant 7: a (target, trait) pair may be
	// implemented at most once.
	implsSeen map[implKey]bool

	currentFunc *funcAnalysis

	// currentImplTarget/currentImplGenerics are set while resolving or
	// indexing the methods of one impl block, so a `self` parameter and any
	// impl-level generic parameter resolve against that impl's target/scope.
	currentImplTarget   types.TypeID
	currentImplGenerics map[source.StringID]types.TypeID
}

type implKey struct {
	Target types.TypeID
	Trait  source.StringID
}

// funcAnalysis is the per-function-body state body analysis threads
// through statement/expression checking: the declared signature, the
// move/borrow state of every tracked local, and the stack of enclosing
// loops for break-with-value typing.
type funcAnalysis struct {
	sig   *funcSignature
	moves map[symbols.SymbolID]MoveState
	loops []*loopState
}

type loopState struct {
	scope     symbols.ScopeID
	valueType types.TypeID
	hasValue  bool
}

// Check runs all four passes over file and returns the populated Checker,
// whose maps a driver can use for downstream reporting or tooling.
func Check(ctx *ast.Context, file *ast.File, bag *diag.Bag, syms *symbols.Table, opts Options) *Checker {
	c := &Checker{
		ctx:           ctx,
		bag:           bag,
		syms:          syms,
		opts:          opts,
		errorTypeName: opts.ErrorTypeName,
		declTypes:     make(map[ast.DeclID]types.TypeID),
		declSymbols:   make(map[ast.DeclID]symbols.SymbolID),
		declGenerics:  make(map[ast.DeclID]map[source.StringID]types.TypeID),
		genericArity:  make(map[ast.DeclID]int),
		funcSigs:      make(map[ast.DeclID]*funcSignature),
		traits:        make(map[source.StringID]*traitInfo),
		implsSeen:     make(map[implKey]bool),
	}
	errType := types.NoTypeID
	if c.errorTypeName != "" {
		errType = ctx.Types.Intern(types.MakeError(types.NoTypeID))
	}
	syms.SeedBuiltins(ctx.Types.Builtins(), errType, c.errorTypeName)
	if c.errorTypeName != "" {
		name := ctx.Strings.Intern(c.errorTypeName)
		if id, ok := syms.Lookup(name); ok {
			c.errorType = syms.Symbol(id).Type
		}
	}

	for _, d := range file.Decls {
		c.collectDecl(d)
	}
	c.collectEnumVariantShortcuts(file.Decls)

	for _, d := range file.Decls {
		c.resolveDecl(d)
	}

	for _, d := range file.Decls {
		if decl := ctx.Decls.Get(d); decl != nil && decl.Kind == ast.DeclImpl {
			c.indexImpl(d)
		}
	}

	for _, d := range file.Decls {
		c.analyzeDeclBody(d)
	}

	return c
}

func (c *Checker) report(code diag.Code, span source.Span, args ...string) {
	b := c.bag.Report(code, span)
	for _, a := range args {
		b.Arg(a)
	}
	b.Emit()
}

func (c *Checker) str(id source.StringID) string { return c.ctx.Strings.Lookup(id) }

func (c *Checker) exprSpan(id ast.ExprID) source.Span {
	if n := c.ctx.Exprs.Get(id); n != nil {
		return n.Span
	}
	return source.NoSpan
}

// lookupGeneric resolves name against the generic-parameter scope of decl
// (and, while analyzing a method, the owning impl's scope too).
func (c *Checker) lookupGeneric(scopes []map[source.StringID]types.TypeID, name source.StringID) (types.TypeID, bool) {
	for i := len(scopes) - 1; i >= 0; i-- {
		if scopes[i] == nil {
			continue
		}
		if t, ok := scopes[i][name]; ok {
			return t, true
		}
	}
	return types.NoTypeID, false
}

// buildGenericScope allocates a fresh generic TypeID per declared parameter
// and caches the name->TypeID map under d, for later lookup by every
// type-expression this decl's signature or body may reference.
func (c *Checker) buildGenericScope(d ast.DeclID, params []ast.GenericParamID) map[source.StringID]types.TypeID {
	if len(params) == 0 {
		return nil
	}
	scope := make(map[source.StringID]types.TypeID, len(params))
	for _, gid := range params {
		gp := c.ctx.Decls.Generic(gid)
		if gp == nil {
			continue
		}
		t := c.ctx.Types.NewGeneric(types.GenericInfo{Name: gp.Name, Bounds: gp.Bounds})
		scope[gp.Name] = t
	}
	c.declGenerics[d] = scope
	c.genericArity[d] = len(params)
	return scope
}
