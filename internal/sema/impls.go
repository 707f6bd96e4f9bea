package sema

import (
	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/types"
)

// indexImpl is pass 3 for one impl block: resolve its target type, reject
// an operator-trait impl on a builtin target (err 3048), register each
// method in the AST context's method registry (guarding spec invariant
// 7's (type, name) uniqueness), and — if the impl names a trait — verify
// every trait method is present with a unifying signature (err 3033, 3034).
func (c *Checker) indexImpl(d ast.DeclID) {
	data, ok := c.ctx.Decls.Impl(d)
	if !ok {
		return
	}
	decl := c.ctx.Decls.Get(d)

	savedTarget, savedGenerics := c.currentImplTarget, c.currentImplGenerics
	c.currentImplGenerics = c.buildGenericScope(d, data.Generics)

	target := c.resolveTypeExpr(data.Target, d)
	c.currentImplTarget = target
	defer func() {
		c.currentImplTarget, c.currentImplGenerics = savedTarget, savedGenerics
	}()

	traitName := data.TraitName
	if data.HasTrait {
		if isOperatorTraitName(c.str(traitName)) && c.isBuiltinOperatorForbiddenTarget(target) {
			c.report(diag.SemaBuiltinOperatorOverloadForbidden, decl.Span, c.str(traitName), c.typeName(target))
			return
		}
		key := implKey{Target: target, Trait: traitName}
		if c.implsSeen[key] {
			c.report(diag.SemaDuplicateTraitImpl, decl.Span, c.str(traitName), c.typeName(target))
			return
		}
		c.implsSeen[key] = true
	}

	for _, mid := range data.Methods {
		mdata, mok := c.ctx.Decls.Func(mid)
		if !mok {
			continue
		}
		c.resolveFuncSignature(mid)
		c.ctx.RegisterMethod(target, mdata.Name, mid)
		switch c.str(mdata.Name) {
		case "display":
			c.ctx.SetDisplaySpec(target, mid)
		case "debug":
			c.ctx.SetDebugSpec(target, mid)
		}
	}

	if !data.HasTrait {
		return
	}
	c.ctx.RegisterTraitImpl(target, traitName)

	trait := c.traits[traitName]
	if trait == nil {
		return
	}
	for name, want := range trait.Methods {
		fnID, found := c.ctx.LookupMethod(target, name)
		if !found {
			c.report(diag.SemaMissingTraitMethod, decl.Span, c.str(name), c.str(traitName))
			continue
		}
		got := c.funcSigs[fnID]
		if got == nil || !signaturesUnify(got, want) {
			c.report(diag.SemaTraitMethodSignature, decl.Span, c.str(name), c.str(traitName))
		}
	}
}

// signaturesUnify reports whether an impl method's resolved signature
// matches what its trait declares, modulo the leading self parameter (whose
// receiver form the impl's own target fixes, not the trait declaration).
func signaturesUnify(got, want *funcSignature) bool {
	if len(got.Params) != len(want.Params) {
		return false
	}
	for i := range got.Params {
		if i == 0 {
			continue // self: receiver form is impl-specific, not trait-checked here
		}
		if got.Params[i] != want.Params[i] {
			return false
		}
	}
	if got.Return != want.Return {
		return false
	}
	return got.Variadic == want.Variadic && got.ErrorRet == want.ErrorRet && got.Async == want.Async
}

// typeName renders a type's declared name for diagnostics, falling back to
// its Kind when the type has no Name (e.g. a builtin primitive interned
// without one — spec's builtin names come from the symbol table, not the
// type itself, so this is best-effort for error text only).
func (c *Checker) typeName(t types.TypeID) string {
	ty, ok := c.ctx.Types.Lookup(t)
	if !ok {
		return "<unknown>"
	}
	if ty.Name != 0 {
		return c.str(source.StringID(ty.Name))
	}
	return ty.Kind.String()
}
