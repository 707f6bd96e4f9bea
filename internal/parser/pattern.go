package parser

import (
	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/token"
)

// parsePattern parses a pattern, including a top-level `a | b | c`
// or-pattern chain.
func (p *Parser) parsePattern() ast.PatternID {
	span := p.peek().Span
	first := p.parsePatternPrimary()
	if !p.at(token.Pipe) {
		return first
	}
	alts := []ast.PatternID{first}
	for p.at(token.Pipe) {
		p.advance()
		alts = append(alts, p.parsePatternPrimary())
	}
	return p.ctx.Patterns.NewOr(span.Cover(p.lastSpan), alts)
}

func isPatternLiteralStart(k token.Kind) bool {
	switch k {
	case token.KwNone, token.KwTrue, token.KwFalse, token.IntLit, token.FloatLit,
		token.CharLit, token.StringLit, token.RawStringLit, token.MultilineStringLit, token.Minus:
		return true
	}
	return false
}

func (p *Parser) parsePatternPrimary() ast.PatternID {
	span := p.peek().Span

	if isPatternLiteralStart(p.peek().Kind) {
		lit := p.parseLiteralExpr()
		if p.atOr(token.DotDot, token.DotDotEq) {
			inclusive := p.at(token.DotDotEq)
			p.advance()
			high := p.parseLiteralExpr()
			return p.ctx.Patterns.NewRange(span.Cover(p.lastSpan), lit, high, inclusive)
		}
		return p.ctx.Patterns.NewLiteral(span.Cover(p.lastSpan), lit)
	}

	switch {
	case p.at(token.LParen):
		return p.parseTuplePattern()

	case p.at(token.KwMut):
		p.advance()
		name, _ := p.parseIdent()
		ann := ast.NoTypeExprID
		if p.at(token.Colon) {
			p.advance()
			ann = p.parseTypeExpr()
		}
		return p.ctx.Patterns.NewIdent(span.Cover(p.lastSpan), ast.PatternIdentData{Name: name, Mutable: true, Annotation: ann})

	case p.at(token.Ident):
		if p.peek().Text == "_" && !p.identFollowedByPatternQualifier() {
			p.advance()
			return p.ctx.Patterns.NewWildcard(span)
		}
		name := p.mustIdent()
		switch {
		case p.at(token.Dot):
			p.advance()
			variant, _ := p.parseIdent()
			return p.parseEnumVariantPatternTail(name, variant, span)
		case p.at(token.LParen):
			return p.parseEnumVariantPatternTail(source.NoStringID, name, span)
		case p.at(token.LBrace) && p.noStructLit == 0:
			return p.parseStructPatternTail(name, span)
		case p.at(token.At):
			p.advance()
			inner := p.parsePatternPrimary()
			return p.ctx.Patterns.NewBind(span.Cover(p.lastSpan), name, false, inner)
		case p.at(token.Colon):
			p.advance()
			ann := p.parseTypeExpr()
			return p.ctx.Patterns.NewIdent(span.Cover(p.lastSpan), ast.PatternIdentData{Name: name, Annotation: ann})
		default:
			return p.ctx.Patterns.NewIdent(span, ast.PatternIdentData{Name: name})
		}

	default:
		p.errorAt1(diag.SynExpectedPattern, span, p.peek().String())
		if !p.at(token.EOF) {
			p.advance()
		}
		return p.ctx.Patterns.NewWildcard(span)
	}
}

// identFollowedByPatternQualifier reports whether the token after a bare
// "_" identifier would turn it into something other than a wildcard (a
// qualified/tuple/struct/bind/annotated pattern); exceedingly rare in
// practice but kept so "_" retains its ordinary meaning in those spots too.
func (p *Parser) identFollowedByPatternQualifier() bool {
	switch p.peekAt(1).Kind {
	case token.Dot, token.LParen, token.At, token.Colon:
		return true
	case token.LBrace:
		return p.noStructLit == 0
	default:
		return false
	}
}

func (p *Parser) parseTuplePattern() ast.PatternID {
	span := p.peek().Span
	p.advance() // '('
	if p.at(token.RParen) {
		p.advance()
		return p.ctx.Patterns.NewTuple(span.Cover(p.lastSpan), nil)
	}
	elems := []ast.PatternID{p.parsePattern()}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RParen) {
			break
		}
		elems = append(elems, p.parsePattern())
	}
	p.expectToken(token.RParen)
	return p.ctx.Patterns.NewTuple(span.Cover(p.lastSpan), elems)
}

func (p *Parser) parseEnumVariantPatternTail(enumName, variantName source.StringID, span source.Span) ast.PatternID {
	data := ast.PatternEnumVariantData{EnumName: enumName, VariantName: variantName}
	switch {
	case p.at(token.LParen):
		p.advance()
		var pats []ast.PatternID
		rest := false
		for !p.at(token.RParen) && !p.at(token.EOF) {
			if p.at(token.DotDot) {
				p.advance()
				rest = true
				break
			}
			pats = append(pats, p.parsePattern())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expectToken(token.RParen)
		data.TuplePats = pats
		data.Rest = rest
	case p.at(token.LBrace):
		p.advance()
		var fields []ast.PatternStructField
		rest := false
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			if p.at(token.DotDot) {
				p.advance()
				rest = true
				break
			}
			fields = append(fields, p.parsePatternStructField())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expectToken(token.RBrace)
		data.StructPats = fields
		data.Rest = rest
	}
	return p.ctx.Patterns.NewEnumVariant(span.Cover(p.lastSpan), data)
}

func (p *Parser) parseStructPatternTail(name source.StringID, span source.Span) ast.PatternID {
	typeExpr := p.ctx.TypeExprs.NewIdent(span, name, nil)
	p.advance() // '{'
	var fields []ast.PatternStructField
	rest := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDot) {
			p.advance()
			rest = true
			break
		}
		fields = append(fields, p.parsePatternStructField())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expectToken(token.RBrace)
	return p.ctx.Patterns.NewStruct(span.Cover(p.lastSpan), typeExpr, fields, rest)
}

func (p *Parser) parsePatternStructField() ast.PatternStructField {
	name, _ := p.parseIdent()
	if p.at(token.Colon) {
		p.advance()
		return ast.PatternStructField{Name: name, Pattern: p.parsePattern()}
	}
	return ast.PatternStructField{Name: name, Shorthand: true}
}
