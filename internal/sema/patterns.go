package sema

import (
	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/symbols"
	"yuanc/internal/types"
)

// checkPattern type-checks a pattern against the type of the value it
// destructures, binding every name it introduces into the current scope,
// and reports SemaInvalidPatternForType on a shape mismatch.
func (c *Checker) checkPattern(pid ast.PatternID, scrutinee types.TypeID) {
	p := c.ctx.Patterns.Get(pid)
	if p == nil {
		return
	}
	switch p.Kind {
	case ast.PatternWildcard:
		// binds nothing

	case ast.PatternIdent:
		data, _ := c.ctx.Patterns.Ident(pid)
		declared := scrutinee
		if data.Annotation != ast.NoTypeExprID {
			declared = c.resolveTypeExpr(data.Annotation, ast.NoDeclID)
			if !c.assignable(declared, scrutinee) {
				c.report(diag.SemaInvalidPatternForType, p.Span, c.typeName(declared), c.typeName(scrutinee))
			}
		}
		c.ctx.Patterns.Get(pid).Resolved = declared
		c.syms.Declare(data.Name, p.Span, symbols.SymbolVar, ast.NoDeclID, declared, data.Mutable)

	case ast.PatternLiteral:
		data, _ := c.ctx.Patterns.Literal(pid)
		litType := c.checkExpr(data.Literal)
		if !c.assignable(scrutinee, litType) && !c.assignable(litType, scrutinee) {
			c.report(diag.SemaInvalidPatternForType, p.Span, c.typeName(scrutinee), c.typeName(litType))
		}
		c.ctx.Patterns.Get(pid).Resolved = scrutinee

	case ast.PatternTuple:
		data, _ := c.ctx.Patterns.Tuple(pid)
		tup, ok := c.ctx.Types.Tuple(c.unwrapValueType(scrutinee))
		if !ok || len(tup.Elems) != len(data.Elems) {
			c.report(diag.SemaInvalidPatternForType, p.Span, "tuple", c.typeName(scrutinee))
			for _, e := range data.Elems {
				c.checkPattern(e, types.NoTypeID)
			}
			return
		}
		for i, e := range data.Elems {
			c.checkPattern(e, tup.Elems[i])
		}
		c.ctx.Patterns.Get(pid).Resolved = scrutinee

	case ast.PatternStruct:
		c.checkStructPattern(pid, p, scrutinee)

	case ast.PatternEnumVariant:
		c.checkEnumVariantPattern(pid, p, scrutinee)

	case ast.PatternRange:
		data, _ := c.ctx.Patterns.Range(pid)
		if data.Low != ast.NoExprID {
			c.checkExpr(data.Low)
		}
		if data.High != ast.NoExprID {
			c.checkExpr(data.High)
		}
		c.ctx.Patterns.Get(pid).Resolved = scrutinee

	case ast.PatternOr:
		data, _ := c.ctx.Patterns.Or(pid)
		for _, alt := range data.Alternatives {
			c.checkPattern(alt, scrutinee)
		}
		c.ctx.Patterns.Get(pid).Resolved = scrutinee

	case ast.PatternBind:
		data, _ := c.ctx.Patterns.Bind(pid)
		c.syms.Declare(data.Name, p.Span, symbols.SymbolVar, ast.NoDeclID, scrutinee, data.Mutable)
		c.checkPattern(data.Inner, scrutinee)
		c.ctx.Patterns.Get(pid).Resolved = scrutinee
	}
}

func (c *Checker) checkStructPattern(pid ast.PatternID, p *ast.Pattern, scrutinee types.TypeID) {
	data, _ := c.ctx.Patterns.Struct(pid)
	target := scrutinee
	if data.Type != ast.NoTypeExprID {
		target = c.resolveTypeExpr(data.Type, ast.NoDeclID)
	}
	base := c.unwrapValueType(target)
	info, ok := c.ctx.Types.Struct(base)
	if !ok {
		c.report(diag.SemaInvalidPatternForType, p.Span, "struct", c.typeName(scrutinee))
		for _, f := range data.Fields {
			c.checkPattern(f.Pattern, types.NoTypeID)
		}
		return
	}
	for _, f := range data.Fields {
		var ft types.TypeID = types.NoTypeID
		found := false
		for _, sf := range info.Fields {
			if sf.Name == f.Name {
				ft, found = sf.Type, true
				break
			}
		}
		if !found {
			c.report(diag.SemaFieldNotFound, p.Span, c.str(f.Name), c.typeName(base))
			continue
		}
		if f.Shorthand {
			c.syms.Declare(f.Name, p.Span, symbols.SymbolVar, ast.NoDeclID, ft, false)
			continue
		}
		c.checkPattern(f.Pattern, ft)
	}
	c.ctx.Patterns.Get(pid).Resolved = target
}

func (c *Checker) checkEnumVariantPattern(pid ast.PatternID, p *ast.Pattern, scrutinee types.TypeID) {
	data, _ := c.ctx.Patterns.EnumVariant(pid)
	base := c.unwrapValueType(scrutinee)
	info, ok := c.ctx.Types.Enum(base)
	if !ok {
		c.report(diag.SemaInvalidPatternForType, p.Span, "enum", c.typeName(scrutinee))
		return
	}
	var variant *types.EnumVariantInfo
	for i := range info.Variants {
		if info.Variants[i].Name == data.VariantName {
			variant = &info.Variants[i]
			break
		}
	}
	if variant == nil {
		c.report(diag.SemaFieldNotFound, p.Span, c.str(data.VariantName), c.typeName(base))
		return
	}
	switch {
	case len(data.TuplePats) > 0:
		tup, tupOK := c.ctx.Types.Tuple(variant.Payload)
		if !tupOK {
			// a single-element tuple-payload variant is interned bare, not as a 1-tuple
			if len(data.TuplePats) == 1 {
				c.checkPattern(data.TuplePats[0], variant.Payload)
			} else {
				c.report(diag.SemaInvalidPatternForType, p.Span, "tuple variant", c.str(data.VariantName))
			}
			break
		}
		for i, pat := range data.TuplePats {
			if i < len(tup.Elems) {
				c.checkPattern(pat, tup.Elems[i])
			}
		}
	case len(data.StructPats) > 0:
		sinfo, sok := c.ctx.Types.Struct(variant.Payload)
		if !sok {
			c.report(diag.SemaInvalidPatternForType, p.Span, "struct variant", c.str(data.VariantName))
			break
		}
		for _, f := range data.StructPats {
			ft := types.NoTypeID
			found := false
			for _, sf := range sinfo.Fields {
				if sf.Name == f.Name {
					ft, found = sf.Type, true
					break
				}
			}
			if !found {
				c.report(diag.SemaFieldNotFound, p.Span, c.str(f.Name), c.str(data.VariantName))
				continue
			}
			if f.Shorthand {
				c.syms.Declare(f.Name, p.Span, symbols.SymbolVar, ast.NoDeclID, ft, false)
				continue
			}
			c.checkPattern(f.Pattern, ft)
		}
	}
	c.ctx.Patterns.Get(pid).Resolved = base
}

// checkMatchExhaustive approximates spec's exhaustiveness requirement
// (err 3023): a bool scrutinee needs both true/false or a catch-all; an
// enum scrutinee needs every variant named or a catch-all; any other
// scrutinee type needs a catch-all (wildcard, bare ident, or bind pattern).
func (c *Checker) checkMatchExhaustive(span source.Span, scrutinee types.TypeID, arms []ast.MatchArm) {
	if c.hasCatchAllArm(arms) {
		c.checkDuplicateArms(span, arms)
		return
	}
	base := c.unwrapValueType(scrutinee)
	ty, ok := c.ctx.Types.Lookup(base)
	if !ok {
		c.report(diag.SemaNonExhaustiveMatch, span, "_")
		return
	}
	switch ty.Kind {
	case types.KindEnum:
		info, iok := c.ctx.Types.Enum(base)
		if !iok {
			c.report(diag.SemaNonExhaustiveMatch, span, "_")
			return
		}
		covered := map[source.StringID]bool{}
		for _, arm := range arms {
			if pd := c.ctx.Patterns.Get(arm.Pattern); pd != nil && pd.Kind == ast.PatternEnumVariant {
				ed, _ := c.ctx.Patterns.EnumVariant(arm.Pattern)
				covered[ed.VariantName] = true
			}
		}
		for _, v := range info.Variants {
			if !covered[v.Name] {
				c.report(diag.SemaNonExhaustiveMatch, span, c.str(v.Name))
			}
		}
	case types.KindBool:
		var sawTrue, sawFalse bool
		for _, arm := range arms {
			if pd := c.ctx.Patterns.Get(arm.Pattern); pd != nil && pd.Kind == ast.PatternLiteral {
				ld, _ := c.ctx.Patterns.Literal(arm.Pattern)
				if lit, lok := c.ctx.Exprs.Literal(ld.Literal); lok {
					switch c.str(lit.Text) {
					case "true":
						sawTrue = true
					case "false":
						sawFalse = true
					}
				}
			}
		}
		if !sawTrue || !sawFalse {
			missing := "true"
			if sawTrue {
				missing = "false"
			}
			c.report(diag.SemaNonExhaustiveMatch, span, missing)
		}
	default:
		c.report(diag.SemaNonExhaustiveMatch, span, "_")
	}
	c.checkDuplicateArms(span, arms)
}

func (c *Checker) hasCatchAllArm(arms []ast.MatchArm) bool {
	for _, arm := range arms {
		if arm.Guard != ast.NoExprID {
			continue
		}
		if pd := c.ctx.Patterns.Get(arm.Pattern); pd != nil {
			switch pd.Kind {
			case ast.PatternWildcard, ast.PatternIdent, ast.PatternBind:
				return true
			}
		}
	}
	return false
}

// checkDuplicateArms reports err 3024 for an unreachable unconditional arm
// following another unconditional arm that already matches the same shape
// (a conservative check limited to duplicate enum-variant and literal arms).
func (c *Checker) checkDuplicateArms(span source.Span, arms []ast.MatchArm) {
	seenVariants := map[source.StringID]bool{}
	seenLits := map[string]bool{}
	for _, arm := range arms {
		if arm.Guard != ast.NoExprID {
			continue
		}
		pd := c.ctx.Patterns.Get(arm.Pattern)
		if pd == nil {
			continue
		}
		switch pd.Kind {
		case ast.PatternEnumVariant:
			ed, _ := c.ctx.Patterns.EnumVariant(arm.Pattern)
			if seenVariants[ed.VariantName] {
				c.report(diag.SemaDuplicateMatchArm, pd.Span, c.str(ed.VariantName))
			}
			seenVariants[ed.VariantName] = true
		case ast.PatternLiteral:
			ld, _ := c.ctx.Patterns.Literal(arm.Pattern)
			if lit, ok := c.ctx.Exprs.Literal(ld.Literal); ok {
				key := c.str(lit.Text)
				if seenLits[key] {
					c.report(diag.SemaDuplicateMatchArm, pd.Span, key)
				}
				seenLits[key] = true
			}
		}
	}
}
