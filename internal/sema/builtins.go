package sema

import (
	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/types"
)

// checkBuiltinCall type-checks a `@name(args...)` call. @format is the only
// builtin concretely attested; unknown builtin names are rejected so the
// registry stays honest about what it actually supports rather than
// silently accepting invented ones.
func (c *Checker) checkBuiltinCall(id ast.ExprID) types.TypeID {
	node := c.ctx.Exprs.Get(id)
	data, _ := c.ctx.Exprs.BuiltinCall(id)
	switch c.str(data.Name) {
	case "format":
		return c.checkFormatBuiltin(node.Span, data.Args)
	default:
		c.report(diag.SemaFunctionNotFound, node.Span, "@"+c.str(data.Name))
		return types.NoTypeID
	}
}

// checkFormatBuiltin requires a leading string format argument followed by
// zero or more displayable arguments (numeric, bool, char, string, or a
// struct/enum with a Display or Debug impl), and yields str.
func (c *Checker) checkFormatBuiltin(span source.Span, args []ast.ExprID) types.TypeID {
	strType := c.ctx.Types.Builtins().String
	if len(args) < 1 {
		c.report(diag.SemaWrongBuiltinArgumentCount, span, "@format", "at least 1")
		return strType
	}
	fmtType := c.checkExpr(args[0])
	if c.unwrapValueType(fmtType) != strType {
		c.report(diag.SemaTypeMismatch, c.exprSpan(args[0]), "str", c.typeName(fmtType))
	}
	for _, a := range args[1:] {
		at := c.checkExpr(a)
		if !c.isDisplayable(at) {
			c.report(diag.SemaTraitNotImplemented, c.exprSpan(a), "Display", c.typeName(at))
		}
	}
	return strType
}

// isDisplayable reports whether a value of type t may appear as a @format
// argument: every scalar builtin, or a struct/enum with a registered
// Display or Debug specialization.
func (c *Checker) isDisplayable(t types.TypeID) bool {
	base := c.unwrapValueType(t)
	ty, ok := c.ctx.Types.Lookup(base)
	if !ok {
		return false
	}
	switch ty.Kind {
	case types.KindInteger, types.KindFloat, types.KindBool, types.KindChar, types.KindString:
		return true
	case types.KindStruct, types.KindEnum:
		if _, ok := c.ctx.DisplaySpec(base); ok {
			return true
		}
		if _, ok := c.ctx.DebugSpec(base); ok {
			return true
		}
		return false
	default:
		return false
	}
}
