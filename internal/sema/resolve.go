package sema

import (
	"strconv"

	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/types"
)

// resolveDecl is pass 2: every type expression a declaration's own surface
// mentions (struct fields, enum variant payloads, alias targets, function
// signatures, trait method signatures) is resolved into a canonical
// types.TypeID, and forward-declared symbols get their real .Type patched
// in now that it is knowable.
func (c *Checker) resolveDecl(d ast.DeclID) {
	decl := c.ctx.Decls.Get(d)
	if decl == nil {
		return
	}

	switch decl.Kind {
	case ast.DeclVar:
		data, _ := c.ctx.Decls.Var(d)
		if data.Annotation == ast.NoTypeExprID {
			return
		}
		t := c.resolveTypeExpr(data.Annotation, d)
		c.patchSymbolType(d, t)

	case ast.DeclConst:
		data, _ := c.ctx.Decls.Const(d)
		if data.Annotation == ast.NoTypeExprID {
			return
		}
		t := c.resolveTypeExpr(data.Annotation, d)
		c.patchSymbolType(d, t)

	case ast.DeclFunc:
		c.resolveFuncSignature(d)

	case ast.DeclStruct:
		data, _ := c.ctx.Decls.Struct(d)
		target := c.declTypes[d]
		fields := make([]types.StructField, 0, len(data.Fields))
		for _, fid := range data.Fields {
			fd := c.ctx.Decls.Field(fid)
			if fd == nil {
				continue
			}
			ft := c.resolveTypeExpr(fd.Type, d)
			fields = append(fields, types.StructField{Name: fd.Name, Type: ft})
		}
		c.ctx.Types.SetStructFields(target, fields)

	case ast.DeclEnum:
		data, _ := c.ctx.Decls.Enum(d)
		target := c.declTypes[d]
		variants := make([]types.EnumVariantInfo, 0, len(data.Variants))
		for _, vid := range data.Variants {
			vd := c.ctx.Decls.Variant(vid)
			if vd == nil {
				continue
			}
			variants = append(variants, types.EnumVariantInfo{
				Name:    vd.Name,
				Payload: c.resolveVariantPayload(vd, d),
			})
		}
		c.ctx.Types.SetEnumVariants(target, variants)

	case ast.DeclTypeAlias:
		data, _ := c.ctx.Decls.TypeAlias(d)
		target := c.declTypes[d]
		if data.Aliased != ast.NoTypeExprID {
			aliased := c.resolveTypeExpr(data.Aliased, d)
			c.ctx.Types.SetAliasTarget(target, aliased)
		}

	case ast.DeclTrait:
		c.resolveTraitSignatures(d)

	case ast.DeclImpl:
		// Target/method resolution happens in pass 3 (indexImpl), which also
		// needs the nominal-type table fully populated by this pass.
	}
}

// resolveVariantPayload builds the tuple/struct payload type of one enum
// variant, or NoTypeID for a unit variant.
func (c *Checker) resolveVariantPayload(vd *ast.EnumVariantDeclData, owner ast.DeclID) types.TypeID {
	switch vd.Kind {
	case ast.VariantUnit:
		return types.NoTypeID
	case ast.VariantTuple:
		elems := make([]types.TypeID, 0, len(vd.TupleFields))
		for _, te := range vd.TupleFields {
			elems = append(elems, c.resolveTypeExpr(te, owner))
		}
		return c.ctx.Types.InternTuple(elems)
	case ast.VariantStruct:
		fields := make([]types.StructField, 0, len(vd.StructFields))
		for _, fid := range vd.StructFields {
			fd := c.ctx.Decls.Field(fid)
			if fd == nil {
				continue
			}
			fields = append(fields, types.StructField{Name: fd.Name, Type: c.resolveTypeExpr(fd.Type, owner)})
		}
		t := c.ctx.Types.NewStruct(types.StructInfo{})
		c.ctx.Types.SetStructFields(t, fields)
		return t
	default:
		return types.NoTypeID
	}
}

// resolveFuncSignature resolves a function's parameter and return types,
// builds its funcSignature, and patches the declaration's own symbol with
// the resulting function type so calls to it type-check before its body is
// analyzed.
func (c *Checker) resolveFuncSignature(d ast.DeclID) *funcSignature {
	if sig, ok := c.funcSigs[d]; ok {
		return sig
	}
	data, ok := c.ctx.Decls.Func(d)
	if !ok {
		return nil
	}
	sig := &funcSignature{Decl: d, Async: data.Async, ErrorRet: data.ErrorRet}
	variadic := false
	for _, pid := range data.Params {
		p := c.ctx.Decls.Param(pid)
		if p == nil {
			continue
		}
		var pt types.TypeID
		switch p.Kind {
		case ast.ParamSelf, ast.ParamRefSelf, ast.ParamMutRefSelf:
			pt = c.selfType(d, p.Kind)
		case ast.ParamVariadic:
			elem := c.resolveTypeExpr(p.Type, d)
			pt = c.ctx.Types.Intern(types.Type{Kind: types.KindVarArgs, Elem: elem})
		default:
			pt = c.resolveTypeExpr(p.Type, d)
		}
		p.ResolvedType = pt
		sig.Params = append(sig.Params, pt)
		sig.ParamKinds = append(sig.ParamKinds, p.Kind)
		if p.Kind == ast.ParamVariadic {
			variadic = true
		}
	}
	sig.Variadic = variadic
	if data.ReturnType != ast.NoTypeExprID {
		sig.Return = c.resolveTypeExpr(data.ReturnType, d)
	} else {
		sig.Return = c.ctx.Types.Builtins().Void
	}
	if g := c.declGenerics[d]; g != nil {
		for _, t := range g {
			sig.Generics = append(sig.Generics, t)
		}
	}
	c.funcSigs[d] = sig

	paramTypes := append([]types.TypeID(nil), sig.Params...)
	ft := c.ctx.Types.InternFunction(paramTypes, sig.Return, sig.Variadic)
	c.patchSymbolType(d, ft)
	if decl := c.ctx.Decls.Get(d); decl != nil {
		decl.Type = ft
	}
	return sig
}

// selfType resolves the implicit type of a `self`/`&self`/`&mut self`
// receiver parameter; it is only meaningful while resolving a method inside
// an impl block, where implTarget records the impl's own target type.
func (c *Checker) selfType(d ast.DeclID, kind ast.ParamKind) types.TypeID {
	target := c.currentImplTarget
	switch kind {
	case ast.ParamRefSelf:
		return c.ctx.Types.Intern(types.MakeReference(target, false))
	case ast.ParamMutRefSelf:
		return c.ctx.Types.Intern(types.MakeReference(target, true))
	default:
		return target
	}
}

// resolveTraitSignatures resolves every method's signature inside a trait
// declaration, recording each under the trait's traitInfo for later
// impl-conformance checking.
func (c *Checker) resolveTraitSignatures(d ast.DeclID) {
	data, ok := c.ctx.Decls.Trait(d)
	if !ok {
		return
	}
	info := c.traits[data.Name]
	if info == nil {
		return
	}
	for _, mid := range data.Methods {
		sig := c.resolveFuncSignature(mid)
		if sig == nil {
			continue
		}
		mdata, _ := c.ctx.Decls.Func(mid)
		info.Methods[mdata.Name] = sig
	}
}

// patchSymbolType fills in the .Type of the symbol collectDecl registered
// for d, now that its real type is known; the symbol table hands back a
// mutable pointer precisely so this can happen after the fact.
func (c *Checker) patchSymbolType(d ast.DeclID, t types.TypeID) {
	sid, ok := c.declSymbols[d]
	if !ok {
		return
	}
	if sym := c.syms.Symbol(sid); sym != nil {
		sym.Type = t
	}
}

// resolveTypeExpr resolves one surface type expression into a canonical
// TypeID, consulting owner's generic-parameter scope before falling back to
// the global symbol table (which carries every builtin primitive, plus
// every struct/enum/alias/trait declared so far).
func (c *Checker) resolveTypeExpr(te ast.TypeExprID, owner ast.DeclID) types.TypeID {
	if te == ast.NoTypeExprID {
		return types.NoTypeID
	}
	node := c.ctx.TypeExprs.Get(te)
	if node == nil {
		return types.NoTypeID
	}
	var resolved types.TypeID
	switch node.Kind {
	case ast.TypeExprIdent:
		resolved = c.resolveIdentTypeExpr(te, owner)
	case ast.TypeExprReference:
		data, _ := c.ctx.TypeExprs.Reference(te)
		pointee := c.resolveTypeExpr(data.Pointee, owner)
		resolved = c.ctx.Types.Intern(types.MakeReference(pointee, data.Mutable))
	case ast.TypeExprPointer:
		data, _ := c.ctx.TypeExprs.Pointer(te)
		pointee := c.resolveTypeExpr(data.Pointee, owner)
		resolved = c.ctx.Types.Intern(types.MakePointer(pointee, data.Mutable))
	case ast.TypeExprArray:
		data, _ := c.ctx.TypeExprs.Array(te)
		elem := c.resolveTypeExpr(data.Elem, owner)
		count := c.fixedArraySize(data.Size)
		resolved = c.ctx.Types.Intern(types.MakeArray(elem, count))
	case ast.TypeExprSlice:
		data, _ := c.ctx.TypeExprs.Slice(te)
		elem := c.resolveTypeExpr(data.Elem, owner)
		resolved = c.ctx.Types.Intern(types.MakeSlice(elem, data.Mutable))
	case ast.TypeExprTuple:
		data, _ := c.ctx.TypeExprs.Tuple(te)
		elems := make([]types.TypeID, 0, len(data.Elems))
		for _, e := range data.Elems {
			elems = append(elems, c.resolveTypeExpr(e, owner))
		}
		resolved = c.ctx.Types.InternTuple(elems)
	case ast.TypeExprOptional:
		data, _ := c.ctx.TypeExprs.Optional(te)
		inner := c.resolveTypeExpr(data.Inner, owner)
		resolved = c.ctx.Types.Intern(types.MakeOptional(inner))
	case ast.TypeExprFunction:
		data, _ := c.ctx.TypeExprs.Function(te)
		params := make([]types.TypeID, 0, len(data.Params))
		for _, p := range data.Params {
			params = append(params, c.resolveTypeExpr(p, owner))
		}
		ret := c.ctx.Types.Builtins().Void
		if data.Return != ast.NoTypeExprID {
			ret = c.resolveTypeExpr(data.Return, owner)
		}
		resolved = c.ctx.Types.InternFunction(params, ret, false)
	}
	c.ctx.TypeExprs.SetResolved(te, resolved)
	return resolved
}

// fixedArraySize evaluates a fixed-array-size expression to its
// integer-literal value; any other expression yields 0.
func (c *Checker) fixedArraySize(sizeExpr ast.ExprID) uint32 {
	if sizeExpr == ast.NoExprID {
		return 0
	}
	node := c.ctx.Exprs.Get(sizeExpr)
	if node == nil || node.Kind != ast.ExprLiteral {
		return 0
	}
	lit, ok := c.ctx.Exprs.Literal(sizeExpr)
	if !ok || lit.Kind != ast.LitInt {
		return 0
	}
	n, err := strconv.ParseUint(c.str(lit.Text), 0, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// resolveIdentTypeExpr resolves a bare `Name` or `Name<Args...>` type
// expression: generic parameters in scope shadow everything else, then the
// symbol table (builtins, structs, enums, aliases) is consulted.
func (c *Checker) resolveIdentTypeExpr(te ast.TypeExprID, owner ast.DeclID) types.TypeID {
	data, _ := c.ctx.TypeExprs.Ident(te)
	node := c.ctx.TypeExprs.Get(te)

	if gt, ok := c.declGenerics[owner][data.Name]; ok {
		return gt
	}
	if c.currentImplGenerics != nil {
		if gt, ok := c.currentImplGenerics[data.Name]; ok {
			return gt
		}
	}

	sid, ok := c.syms.Lookup(data.Name)
	if !ok {
		c.report(diag.SemaUndeclaredIdentifier, node.Span, c.str(data.Name))
		return types.NoTypeID
	}
	sym := c.syms.Symbol(sid)
	base := sym.Type

	if len(data.Args) == 0 {
		return base
	}

	arity := c.genericArity[sym.Decl]
	if arity != len(data.Args) {
		c.report(diag.SemaGenericParamCountMismatch, node.Span, strconv.Itoa(arity), strconv.Itoa(len(data.Args)))
	}
	args := make([]types.TypeID, 0, len(data.Args))
	for _, a := range data.Args {
		args = append(args, c.resolveTypeExpr(a, owner))
	}
	return c.ctx.Types.InternGenericInstance(base, args)
}
