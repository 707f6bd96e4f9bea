package sema

import (
	"strconv"

	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/types"
)

// checkStmt type-checks one statement inside a block, threading move/borrow
// state and loop/function context through whichever kind it dispatches to.
func (c *Checker) checkStmt(id ast.StmtID) {
	stmt := c.ctx.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtLocalDecl:
		data, _ := c.ctx.Stmts.LocalDecl(id)
		c.collectDecl(data.Decl)
		c.resolveDecl(data.Decl)
		c.analyzeDeclBody(data.Decl)

	case ast.StmtExpr:
		data, _ := c.ctx.Stmts.ExprStmt(id)
		t := c.checkExpr(data.Expr)
		if !data.Semicolon && t != c.ctx.Types.Builtins().Void && !c.isCallLike(data.Expr) {
			c.report(diag.WarnUnusedResult, stmt.Span, c.typeName(t))
		}

	case ast.StmtReturn:
		data, _ := c.ctx.Stmts.Return(id)
		if c.currentFunc == nil || c.currentFunc.sig == nil {
			c.report(diag.SemaReturnOutsideFunction, stmt.Span)
			if data.Value != ast.NoExprID {
				c.checkExpr(data.Value)
			}
			return
		}
		want := c.currentFunc.sig.Return
		var got types.TypeID
		if data.Value != ast.NoExprID {
			got = c.checkExpr(data.Value)
			if ident, ok := c.ctx.Exprs.Ident(data.Value); ok && !c.ctx.Types.IsCopy(got) {
				if sid, found := c.syms.Lookup(ident.Name); found {
					c.markMoved(sid, stmt.Span)
				}
			}
		} else {
			got = c.ctx.Types.Builtins().Void
		}
		if !c.assignable(want, got) && want != got {
			c.report(diag.SemaReturnTypeMismatch, stmt.Span, c.typeName(want), c.typeName(got))
		}

	case ast.StmtBreak:
		data, _ := c.ctx.Stmts.Break(id)
		ls := c.resolveLoop(data.Label, stmt.Span, diag.SemaBreakOutsideLoop)
		if ls == nil {
			return
		}
		if data.Value != ast.NoExprID {
			vt := c.checkExpr(data.Value)
			if !ls.hasValue {
				ls.valueType, ls.hasValue = vt, true
			} else if common, ok := c.commonType(ls.valueType, vt); ok {
				ls.valueType = common
			}
		}

	case ast.StmtContinue:
		data, _ := c.ctx.Stmts.Continue(id)
		c.resolveLoop(data.Label, stmt.Span, diag.SemaContinueOutsideLoop)

	case ast.StmtDefer:
		data, _ := c.ctx.Stmts.Defer(id)
		c.checkExpr(data.Expr)
	}
}

// resolveLoop finds the break/continue target loop (by label, or the
// innermost loop when unlabeled), reporting outsideCode when there is no
// enclosing loop at all or the label doesn't name one of them.
func (c *Checker) resolveLoop(label source.StringID, span source.Span, outsideCode diag.Code) *loopState {
	if c.currentFunc == nil || len(c.currentFunc.loops) == 0 {
		c.report(outsideCode, span)
		return nil
	}
	if label == 0 {
		return c.currentFunc.loops[len(c.currentFunc.loops)-1]
	}
	scopeID, ok := c.syms.ResolveLabel(label)
	if !ok {
		c.report(outsideCode, span, c.str(label))
		return nil
	}
	for i := len(c.currentFunc.loops) - 1; i >= 0; i-- {
		if c.currentFunc.loops[i].scope == scopeID {
			return c.currentFunc.loops[i]
		}
	}
	c.report(outsideCode, span, c.str(label))
	return nil
}

// isCallLike reports whether expr is a call/method-call/builtin-call,
// whose non-void result a bare statement commonly discards on purpose
// (side-effecting calls), so checkStmt doesn't warn on every one of them.
func (c *Checker) isCallLike(id ast.ExprID) bool {
	node := c.ctx.Exprs.Get(id)
	if node == nil {
		return false
	}
	switch node.Kind {
	case ast.ExprCall, ast.ExprBuiltinCall, ast.ExprAwait, ast.ExprErrorPropagate, ast.ExprAssign:
		return true
	default:
		return false
	}
}

// constArrayLength evaluates a `[value; count]` repeat expression's count
// to a literal integer for the resulting array type's size; a non-literal
// count (e.g. a const identifier) can't be resolved without constant
// folding, so it conservatively reports zero rather than fabricate a size.
func (c *Checker) constArrayLength(id ast.ExprID) uint32 {
	node := c.ctx.Exprs.Get(id)
	if node == nil || node.Kind != ast.ExprLiteral {
		return 0
	}
	lit, ok := c.ctx.Exprs.Literal(id)
	if !ok || lit.Kind != ast.LitInt {
		return 0
	}
	n, err := strconv.ParseUint(c.str(lit.Text), 0, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}
