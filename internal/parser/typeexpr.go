package parser

import (
	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/token"
)

var builtinTypeKeywords = map[token.Kind]bool{
	token.KwI8: true, token.KwI16: true, token.KwI32: true, token.KwI64: true,
	token.KwI128: true, token.KwIsize: true,
	token.KwU8: true, token.KwU16: true, token.KwU32: true, token.KwU64: true,
	token.KwU128: true, token.KwUsize: true,
	token.KwF32: true, token.KwF64: true,
	token.KwBool: true, token.KwChar: true, token.KwStr: true, token.KwVoid: true,
}

// parseTypeExpr parses a type expression, including any trailing `?`
// optional-wrapping suffixes.
func (p *Parser) parseTypeExpr() ast.TypeExprID {
	base := p.parseTypeExprPrimary()
	for p.at(token.Question) {
		span := p.peek().Span
		p.advance()
		base = p.ctx.TypeExprs.NewOptional(span, base)
	}
	return base
}

func (p *Parser) parseTypeExprPrimary() ast.TypeExprID {
	span := p.peek().Span
	switch {
	case p.at(token.Amp):
		p.advance()
		mutable := false
		if p.at(token.KwMut) {
			p.advance()
			mutable = true
		}
		inner := p.parseTypeExpr()
		return p.ctx.TypeExprs.NewReference(span.Cover(p.lastSpan), mutable, inner)

	case p.at(token.KwPtr):
		p.advance()
		mutable := false
		if p.at(token.KwMut) {
			p.advance()
			mutable = true
		}
		inner := p.parseTypeExpr()
		return p.ctx.TypeExprs.NewPointer(span.Cover(p.lastSpan), mutable, inner)

	case p.at(token.LBracket):
		p.advance()
		mutable := false
		if p.at(token.KwMut) {
			p.advance()
			mutable = true
		}
		elem := p.parseTypeExpr()
		if p.at(token.Semicolon) {
			p.advance()
			size := p.parseExpr()
			p.expectToken(token.RBracket)
			return p.ctx.TypeExprs.NewArray(span.Cover(p.lastSpan), elem, size)
		}
		p.expectToken(token.RBracket)
		return p.ctx.TypeExprs.NewSlice(span.Cover(p.lastSpan), elem, mutable)

	case p.at(token.LParen):
		p.advance()
		if p.at(token.RParen) {
			p.advance()
			return p.ctx.TypeExprs.NewTuple(span.Cover(p.lastSpan), nil)
		}
		first := p.parseTypeExpr()
		if p.at(token.Comma) {
			elems := []ast.TypeExprID{first}
			for p.at(token.Comma) {
				p.advance()
				if p.at(token.RParen) {
					break
				}
				elems = append(elems, p.parseTypeExpr())
			}
			p.expectToken(token.RParen)
			return p.ctx.TypeExprs.NewTuple(span.Cover(p.lastSpan), elems)
		}
		p.expectToken(token.RParen)
		return first

	case p.at(token.KwFunc):
		p.advance()
		p.expectToken(token.LParen)
		var params []ast.TypeExprID
		for !p.at(token.RParen) && !p.at(token.EOF) {
			params = append(params, p.parseTypeExpr())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expectToken(token.RParen)
		ret := ast.NoTypeExprID
		if p.at(token.Arrow) {
			p.advance()
			ret = p.parseTypeExpr()
		}
		return p.ctx.TypeExprs.NewFunction(span.Cover(p.lastSpan), params, ret)

	case p.at(token.KwSelfType):
		p.advance()
		name := p.ctx.Strings.Intern("Self")
		return p.ctx.TypeExprs.NewIdent(span, name, nil)

	case builtinTypeKeywords[p.peek().Kind]:
		tok := p.advance()
		name := p.ctx.Strings.Intern(tok.Text)
		return p.ctx.TypeExprs.NewIdent(span, name, nil)

	case p.at(token.Ident):
		tok := p.advance()
		name := p.ctx.Strings.Intern(tok.Text)
		var args []ast.TypeExprID
		if p.at(token.Lt) {
			args = p.parseGenericArgList()
		}
		return p.ctx.TypeExprs.NewIdent(span.Cover(p.lastSpan), name, args)

	default:
		p.errorAt1(diag.SynExpectedType, p.peek().Span, p.peek().String())
		return ast.NoTypeExprID
	}
}

// atGenericClose reports whether the current token can close a generic
// argument/parameter list, either as a lone '>' or as the first half of a
// '>>' that must be split.
func (p *Parser) atGenericClose() bool {
	return p.at(token.Gt) || p.at(token.Shr)
}

// consumeGenericClose consumes one logical '>' closing a generic list. If
// the current token is '>>' it splits it via the lexer's SplitShr so the
// second '>' remains available to close an enclosing generic list.
func (p *Parser) consumeGenericClose() bool {
	if p.at(token.Gt) {
		p.advance()
		return true
	}
	if p.at(token.Shr) {
		shr := p.advance()
		p.lx.SplitShr(shr)
		return true
	}
	p.errorAt2(diag.SynExpectedToken, p.peek().Span, token.Gt.String(), p.peek().String())
	return false
}

// parseGenericArgList parses `<Type, Type, ...>` with the current token on
// the opening '<'.
func (p *Parser) parseGenericArgList() []ast.TypeExprID {
	p.advance() // '<'
	var args []ast.TypeExprID
	if !p.atGenericClose() {
		args = append(args, p.parseTypeExpr())
		for p.at(token.Comma) {
			p.advance()
			if p.atGenericClose() {
				break
			}
			args = append(args, p.parseTypeExpr())
		}
	}
	p.consumeGenericClose()
	return args
}

// parseGenericParams parses an optional `<T: Bound + Bound, U>` declaration
// list of generic type parameters.
func (p *Parser) parseGenericParams() []ast.GenericParamID {
	if !p.at(token.Lt) {
		return nil
	}
	p.advance()
	var params []ast.GenericParamID
	for !p.atGenericClose() && !p.at(token.EOF) {
		span := p.peek().Span
		name, _ := p.parseIdent()
		var bounds []source.StringID
		if p.at(token.Colon) {
			p.advance()
			for {
				bt, ok := p.parseIdent()
				if ok {
					bounds = append(bounds, bt)
				}
				if !p.at(token.Plus) {
					break
				}
				p.advance()
			}
		}
		gp := p.ctx.Decls.NewGeneric(ast.GenericParam{Name: name, Span: span.Cover(p.lastSpan), Bounds: bounds})
		params = append(params, gp)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.consumeGenericClose()
	return params
}

// parseWhereClause folds an optional trailing `where T: Bound, U: Bound`
// clause's bounds into the matching entries of generics by name.
func (p *Parser) parseWhereClause(generics []ast.GenericParamID) []ast.GenericParamID {
	if !p.at(token.KwWhere) {
		return generics
	}
	p.advance()
	for {
		name, ok := p.parseIdent()
		p.expectToken(token.Colon)
		var bounds []source.StringID
		for {
			bt, bok := p.parseIdent()
			if bok {
				bounds = append(bounds, bt)
			}
			if !p.at(token.Plus) {
				break
			}
			p.advance()
		}
		if ok {
			for _, gid := range generics {
				gp := p.ctx.Decls.Generic(gid)
				if gp != nil && gp.Name == name {
					gp.Bounds = append(gp.Bounds, bounds...)
				}
			}
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return generics
}
