package sema

import (
	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/symbols"
	"yuanc/internal/types"
)

// analyzeDeclBody is pass 4 for one top-level declaration: type-check a
// function's body (pushing its scope, binding parameters, then walking its
// block in execution order under move/borrow tracking), or type-check a
// module-level var/const initializer against its declared or inferred type.
func (c *Checker) analyzeDeclBody(d ast.DeclID) {
	decl := c.ctx.Decls.Get(d)
	if decl == nil {
		return
	}
	switch decl.Kind {
	case ast.DeclFunc:
		c.analyzeFuncBody(d)
	case ast.DeclVar:
		c.analyzeVarDecl(d)
	case ast.DeclConst:
		c.analyzeConstDecl(d)
	case ast.DeclImpl:
		data, _ := c.ctx.Decls.Impl(d)
		saved, savedG := c.currentImplTarget, c.currentImplGenerics
		c.currentImplTarget = c.resolveTypeExpr(data.Target, d)
		c.currentImplGenerics = c.declGenerics[d]
		for _, mid := range data.Methods {
			c.analyzeFuncBody(mid)
		}
		c.currentImplTarget, c.currentImplGenerics = saved, savedG
	}
}

func (c *Checker) analyzeVarDecl(d ast.DeclID) {
	data, _ := c.ctx.Decls.Var(d)
	sid := c.declSymbols[d]
	declared := types.NoTypeID
	if sym := c.syms.Symbol(sid); sym != nil {
		declared = sym.Type
	}
	if data.Init == ast.NoExprID {
		return
	}
	initType := c.checkExpr(data.Init)
	if declared == types.NoTypeID {
		c.patchSymbolType(d, initType)
		if decl := c.ctx.Decls.Get(d); decl != nil {
			decl.Type = initType
		}
		return
	}
	if !c.assignable(declared, initType) {
		c.report(diag.SemaTypeMismatch, c.exprSpan(data.Init), c.typeName(declared), c.typeName(initType))
	}
}

func (c *Checker) analyzeConstDecl(d ast.DeclID) {
	data, _ := c.ctx.Decls.Const(d)
	sid := c.declSymbols[d]
	declared := types.NoTypeID
	if sym := c.syms.Symbol(sid); sym != nil {
		declared = sym.Type
	}
	if data.Init == ast.NoExprID {
		return
	}
	initType := c.checkExpr(data.Init)
	if declared == types.NoTypeID {
		c.patchSymbolType(d, initType)
		if decl := c.ctx.Decls.Get(d); decl != nil {
			decl.Type = initType
		}
		return
	}
	if !c.assignable(declared, initType) {
		c.report(diag.SemaTypeMismatch, c.exprSpan(data.Init), c.typeName(declared), c.typeName(initType))
	}
}

// analyzeFuncBody type-checks one function's body against its already
// resolved signature: pushes a function scope, binds every parameter
// (receiver included), walks the body block, and reports a missing-return
// diagnostic when a non-void, non-error-propagating path can fall off the
// end without a value.
func (c *Checker) analyzeFuncBody(d ast.DeclID) {
	data, ok := c.ctx.Decls.Func(d)
	if !ok || data.Body == ast.NoStmtID {
		return // extern/declaration-only function: no body to analyze
	}
	sig := c.funcSigs[d]
	if sig == nil {
		sig = c.resolveFuncSignature(d)
	}
	if sig == nil {
		return
	}

	c.syms.EnterScope(symbols.ScopeFunction, 0)
	savedFunc := c.currentFunc
	c.currentFunc = newFuncAnalysis(sig)

	for i, pid := range data.Params {
		p := c.ctx.Decls.Param(pid)
		if p == nil {
			continue
		}
		name := p.Name
		if p.Kind == ast.ParamSelf || p.Kind == ast.ParamRefSelf || p.Kind == ast.ParamMutRefSelf {
			name = c.ctx.Strings.Intern("self")
		}
		mutable := p.Mutable || p.Kind == ast.ParamMutRefSelf
		sid, declOK := c.syms.Declare(name, p.Span, symbols.SymbolParam, ast.NoDeclID, sig.Params[i], mutable)
		if !declOK {
			c.report(diag.SemaRedefinition, p.Span, c.str(name))
		}
		_ = sid
	}

	bodyStmt, _ := c.ctx.Stmts.ExprStmt(data.Body)
	if bodyStmt != nil {
		c.checkExpr(bodyStmt.Expr)

		if sig.Return != c.ctx.Types.Builtins().Void && !sig.ErrorRet {
			if !c.blockGuaranteesValue(bodyStmt.Expr) {
				span := source.NoSpan
				if decl := c.ctx.Decls.Get(d); decl != nil {
					span = decl.Span
				}
				c.report(diag.SemaMissingReturn, span)
			}
		}
	}

	c.currentFunc = savedFunc
	c.syms.ExitScope()
}

// blockGuaranteesValue reports whether a block expression is guaranteed to
// either produce a trailing value or exit via an unconditional return on
// every path that falls through to its end — a conservative approximation
// good enough to catch the common missing-return mistakes without a full
// control-flow graph.
func (c *Checker) blockGuaranteesValue(id ast.ExprID) bool {
	block, ok := c.ctx.Exprs.Block(id)
	if !ok {
		return exprGuaranteesValue(c, id)
	}
	if block.Result != ast.NoExprID {
		return true
	}
	if len(block.Stmts) == 0 {
		return false
	}
	last := c.ctx.Stmts.Get(block.Stmts[len(block.Stmts)-1])
	if last == nil {
		return false
	}
	switch last.Kind {
	case ast.StmtReturn:
		return true
	case ast.StmtExpr:
		data, _ := c.ctx.Stmts.ExprStmt(block.Stmts[len(block.Stmts)-1])
		return exprGuaranteesValue(c, data.Expr)
	default:
		return false
	}
}

// exprGuaranteesValue extends blockGuaranteesValue's fallthrough analysis to
// an expression in tail position: an if/else or match whose every arm
// guarantees a value also guarantees one, a nested block defers to
// blockGuaranteesValue, and anything else does not.
func exprGuaranteesValue(c *Checker, id ast.ExprID) bool {
	node := c.ctx.Exprs.Get(id)
	if node == nil {
		return false
	}
	switch node.Kind {
	case ast.ExprBlock:
		return c.blockGuaranteesValue(id)
	case ast.ExprIf:
		data, _ := c.ctx.Exprs.If(id)
		if data.Else == ast.NoExprID {
			return false
		}
		return exprGuaranteesValue(c, data.Then) && exprGuaranteesValue(c, data.Else)
	case ast.ExprMatch:
		data, _ := c.ctx.Exprs.Match(id)
		if len(data.Arms) == 0 {
			return false
		}
		for _, arm := range data.Arms {
			if !exprGuaranteesValue(c, arm.Body) {
				return false
			}
		}
		return true
	case ast.ExprLoop:
		// an unconditional `loop {}` only exits via break/return, both
		// already tracked through the enclosing block/arm analysis
		data, _ := c.ctx.Exprs.Loop(id)
		return data.Kind == ast.LoopPlain
	default:
		return true
	}
}
