// Package ast defines the arena-owned AST node graph built by the parser
// and annotated in place by the semantic analyzer, plus the type-interning
// context that owns every canonical semantic type and the impl/trait
// registries that resolve against them.
package ast

import (
	"yuanc/internal/source"
	"yuanc/internal/types"
)

// methodKey identifies one (receiver type, method name) pair in the method
// registry; spec invariant 7 requires this pair be unique across impls.
type methodKey struct {
	Type types.TypeID
	Name source.StringID
}

// Context owns every AST node allocated while parsing and checking a set
// of files, the canonical type interner, and the registries Sema populates
// while indexing impl blocks.
type Context struct {
	Decls     *Decls
	Stmts     *Stmts
	Exprs     *Exprs
	TypeExprs *TypeExprs
	Patterns  *Patterns
	Files     *Arena[File]
	Strings   *source.Interner

	Types *types.Interner

	methods    map[methodKey]DeclID
	traitImpls map[types.TypeID][]source.StringID

	// displaySpecs / debugSpecs record, per type, the impl-provided method
	// that implements that type's Display/Debug formatting, when present.
	displaySpecs map[types.TypeID]DeclID
	debugSpecs   map[types.TypeID]DeclID
}

// NewContext constructs an empty Context. pointerWidth configures what
// isize/usize resolve to and must be set before Sema's type-resolution pass.
func NewContext(pointerWidth types.Width) *Context {
	return &Context{
		Decls:      NewDecls(0),
		Stmts:      NewStmts(0),
		Exprs:      NewExprs(0),
		TypeExprs:  NewTypeExprs(0),
		Patterns:   NewPatterns(0),
		Files:      NewArena[File](16),
		Strings:    source.NewInterner(),
		Types:      types.NewInterner(pointerWidth),
		methods:    make(map[methodKey]DeclID),
		traitImpls: make(map[types.TypeID][]source.StringID),
		displaySpecs: make(map[types.TypeID]DeclID),
		debugSpecs:   make(map[types.TypeID]DeclID),
	}
}

// AddFile records a parsed file's top-level declarations.
func (c *Context) AddFile(f File) source.FileID {
	c.Files.Allocate(f)
	return f.ID
}

// RegisterMethod records that fn implements the method methodName for
// recv, built from an impl block. It reports false (and leaves the
// registry unchanged) if that (type, name) pair is already registered,
// so the caller can report the spec's uniqueness violation (invariant 7).
func (c *Context) RegisterMethod(recv types.TypeID, methodName source.StringID, fn DeclID) bool {
	key := methodKey{Type: recv, Name: methodName}
	if _, exists := c.methods[key]; exists {
		return false
	}
	c.methods[key] = fn
	return true
}

// LookupMethod finds the FuncDecl implementing methodName on recv, if any.
func (c *Context) LookupMethod(recv types.TypeID, methodName source.StringID) (DeclID, bool) {
	fn, ok := c.methods[methodKey{Type: recv, Name: methodName}]
	return fn, ok
}

// RegisterTraitImpl records that recv implements the named trait.
func (c *Context) RegisterTraitImpl(recv types.TypeID, traitName source.StringID) {
	for _, existing := range c.traitImpls[recv] {
		if existing == traitName {
			return
		}
	}
	c.traitImpls[recv] = append(c.traitImpls[recv], traitName)
}

// ImplementsTrait reports whether recv has a registered impl of traitName.
func (c *Context) ImplementsTrait(recv types.TypeID, traitName source.StringID) bool {
	for _, existing := range c.traitImpls[recv] {
		if existing == traitName {
			return true
		}
	}
	return false
}

// Traits lists every trait name recv implements.
func (c *Context) Traits(recv types.TypeID) []source.StringID {
	return c.traitImpls[recv]
}

// SetDisplaySpec / SetDebugSpec record the method implementing a type's
// Display/Debug formatting, per spec §4.4's "specializations of
// Display/Debug per concrete type" registry.
func (c *Context) SetDisplaySpec(t types.TypeID, fn DeclID) { c.displaySpecs[t] = fn }
func (c *Context) SetDebugSpec(t types.TypeID, fn DeclID)   { c.debugSpecs[t] = fn }

func (c *Context) DisplaySpec(t types.TypeID) (DeclID, bool) {
	fn, ok := c.displaySpecs[t]
	return fn, ok
}

func (c *Context) DebugSpec(t types.TypeID) (DeclID, bool) {
	fn, ok := c.debugSpecs[t]
	return fn, ok
}
