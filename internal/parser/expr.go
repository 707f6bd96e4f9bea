package parser

import (
	"strings"

	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/token"
)

// parseExpr parses a full expression, including assignment.
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.ExprID {
	span := p.peek().Span
	lhs := p.parseRangeExpr()
	if op, ok := assignOpFromToken(p.peek().Kind); ok {
		p.advance()
		rhs := p.parseAssignment()
		return p.ctx.Exprs.NewAssign(span.Cover(p.lastSpan), op, lhs, rhs)
	}
	return lhs
}

// parseRangeExpr wraps parseBinaryExpr to recognize the looser-binding
// `..`/`..=` range operator, including the open forms `..hi`/`lo..`/`..`.
func (p *Parser) parseRangeExpr() ast.ExprID {
	span := p.peek().Span
	if p.atOr(token.DotDot, token.DotDotEq) {
		inclusive := p.at(token.DotDotEq)
		p.advance()
		high := ast.NoExprID
		if canStartExpr(p.peek().Kind) {
			high = p.parseBinaryExpr(precOrElse)
		}
		return p.ctx.Exprs.NewRange(span.Cover(p.lastSpan), ast.NoExprID, high, inclusive)
	}
	lhs := p.parseBinaryExpr(precOrElse)
	if p.atOr(token.DotDot, token.DotDotEq) {
		inclusive := p.at(token.DotDotEq)
		p.advance()
		high := ast.NoExprID
		if canStartExpr(p.peek().Kind) {
			high = p.parseBinaryExpr(precOrElse)
		}
		return p.ctx.Exprs.NewRange(span.Cover(p.lastSpan), lhs, high, inclusive)
	}
	return lhs
}

// parseBinaryExpr climbs the precedence table in op_table.go, left-associative
// at every level reached through getBinaryOperatorPrec.
func (p *Parser) parseBinaryExpr(minPrec int) ast.ExprID {
	span := p.peek().Span
	left := p.parseCastExpr()
	for {
		prec, ok := getBinaryOperatorPrec(p.peek().Kind)
		if !ok || prec < minPrec {
			break
		}
		opTok := p.advance()
		op := tokenKindToBinaryOp(opTok.Kind)
		right := p.parseBinaryExpr(prec + 1)
		left = p.ctx.Exprs.NewBinary(span.Cover(p.lastSpan), op, left, right)
	}
	return left
}

func (p *Parser) parseCastExpr() ast.ExprID {
	span := p.peek().Span
	left := p.parseUnaryExpr()
	for p.at(token.KwAs) {
		p.advance()
		typ := p.parseTypeExpr()
		left = p.ctx.Exprs.NewCast(span.Cover(p.lastSpan), left, typ)
	}
	return left
}

func (p *Parser) parseUnaryExpr() ast.ExprID {
	span := p.peek().Span
	if op, ok := getUnaryOperator(p.peek().Kind); ok {
		p.advance()
		operand := p.parseUnaryExpr()
		return p.ctx.Exprs.NewUnary(span.Cover(p.lastSpan), op, operand)
	}
	if p.at(token.Amp) {
		p.advance()
		mutable := false
		if p.at(token.KwMut) {
			p.advance()
			mutable = true
		}
		operand := p.parseUnaryExpr()
		op := ast.UnaryRef
		if mutable {
			op = ast.UnaryRefMut
		}
		return p.ctx.Exprs.NewUnary(span.Cover(p.lastSpan), op, operand)
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr parses the call/index/member/error-handling suffix chain
// that follows a primary expression.
func (p *Parser) parsePostfixExpr() ast.ExprID {
	span := p.peek().Span
	target := p.parsePrimaryExpr()
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			if p.at(token.KwAwait) {
				p.advance()
				target = p.ctx.Exprs.NewAwait(span.Cover(p.lastSpan), target)
				continue
			}
			name := p.parseMemberName()
			target = p.ctx.Exprs.NewMember(span.Cover(p.lastSpan), target, name, false)

		case p.at(token.QuestionDot):
			p.advance()
			name := p.parseMemberName()
			target = p.ctx.Exprs.NewMember(span.Cover(p.lastSpan), target, name, true)

		case p.at(token.ColonColon) && p.peekAt(1).Kind == token.Lt:
			p.advance() // '::'
			p.pendingTypeArgs = p.parseGenericArgList()

		case p.at(token.ColonColon):
			p.advance()
			name, _ := p.parseIdent()
			target = p.ctx.Exprs.NewMember(span.Cover(p.lastSpan), target, name, false)

		case p.at(token.LParen):
			args := p.parseCallArgList()
			typeArgs := p.pendingTypeArgs
			p.pendingTypeArgs = nil
			target = p.ctx.Exprs.NewCall(span.Cover(p.lastSpan), target, args, typeArgs)

		case p.at(token.LBracket):
			target = p.parseIndexOrSlice(target, span)

		case p.at(token.Bang):
			p.advance()
			target = p.ctx.Exprs.NewErrorPropagate(span.Cover(p.lastSpan), target)

		case p.at(token.Arrow):
			p.advance()
			errName, _ := p.parseIdent()
			body := p.parseBlockExpr()
			target = p.ctx.Exprs.NewErrorHandle(span.Cover(p.lastSpan), target, errName, body)

		default:
			return target
		}
	}
}

// parseMemberName parses the name after '.'/'? .'/'::': an ordinary
// identifier, or a decimal tuple-field index such as `.0`.
func (p *Parser) parseMemberName() source.StringID {
	if p.at(token.IntLit) {
		tok := p.advance()
		return p.ctx.Strings.Intern(tok.Text)
	}
	name, _ := p.parseIdent()
	return name
}

func (p *Parser) parseIndexOrSlice(target ast.ExprID, span source.Span) ast.ExprID {
	p.advance() // '['
	if p.atOr(token.DotDot, token.DotDotEq) {
		p.advance()
		high := ast.NoExprID
		if !p.at(token.RBracket) {
			high = p.parseExpr()
		}
		p.expectToken(token.RBracket)
		return p.ctx.Exprs.NewSlice(span.Cover(p.lastSpan), target, ast.NoExprID, high)
	}
	if p.at(token.RBracket) {
		p.errorAt(diag.SynExpectedExpression, p.peek().Span)
		p.advance()
		return target
	}
	low := p.parseExpr()
	if p.atOr(token.DotDot, token.DotDotEq) {
		p.advance()
		high := ast.NoExprID
		if !p.at(token.RBracket) {
			high = p.parseExpr()
		}
		p.expectToken(token.RBracket)
		return p.ctx.Exprs.NewSlice(span.Cover(p.lastSpan), target, low, high)
	}
	p.expectToken(token.RBracket)
	return p.ctx.Exprs.NewIndex(span.Cover(p.lastSpan), target, low)
}

func (p *Parser) parseCallArgList() []ast.CallArg {
	p.advance() // '('
	var args []ast.CallArg
	for !p.at(token.RParen) && !p.at(token.EOF) {
		val := p.parseExpr()
		spread := false
		if p.at(token.Ellipsis) {
			p.advance()
			spread = true
		}
		args = append(args, ast.CallArg{Value: val, Spread: spread})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expectToken(token.RParen)
	return args
}

// isLiteralStart reports whether kind begins a scalar literal (the same
// literal-token set pattern.go recognizes for literal/range patterns).
func isLiteralStart(k token.Kind) bool {
	switch k {
	case token.KwTrue, token.KwFalse, token.KwNone, token.IntLit, token.FloatLit,
		token.CharLit, token.StringLit, token.RawStringLit, token.MultilineStringLit:
		return true
	}
	return false
}

func isLoopStartKeyword(k token.Kind) bool {
	switch k {
	case token.KwLoop, token.KwWhile, token.KwFor:
		return true
	}
	return false
}

// canStartExpr reports whether kind can begin parsePrimaryExpr or
// parseUnaryExpr, used by parseBreakStmt to distinguish `break;` and
// `break label;` from `break value;`.
func canStartExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.RawStringLit, token.MultilineStringLit, token.KwTrue, token.KwFalse, token.KwNone,
		token.KwSelf, token.LParen, token.LBracket, token.LBrace, token.KwIf, token.KwMatch,
		token.KwLoop, token.KwWhile, token.KwFor, token.Pipe, token.PipePipe, token.BuiltinIdent,
		token.Minus, token.Bang, token.Tilde, token.Star, token.Amp, token.DotDot, token.DotDotEq:
		return true
	}
	return false
}

func (p *Parser) parsePrimaryExpr() ast.ExprID {
	span := p.peek().Span
	switch {
	case isLiteralStart(p.peek().Kind):
		return p.parseLiteralExpr()

	case p.at(token.Ident):
		return p.parseIdentPrimary()

	case p.at(token.KwSelf):
		p.advance()
		return p.ctx.Exprs.NewIdent(span, p.ctx.Strings.Intern("self"))

	case p.at(token.LParen):
		return p.parseParenOrTupleExpr()

	case p.at(token.LBracket):
		return p.parseArrayExpr()

	case p.at(token.LBrace):
		return p.parseBlockExpr()

	case p.at(token.KwIf):
		return p.parseIfExpr()

	case p.at(token.KwMatch):
		return p.parseMatchExpr()

	case p.at(token.KwLoop), p.at(token.KwWhile), p.at(token.KwFor):
		return p.parseLoopExpr(source.NoStringID)

	case p.at(token.Pipe), p.at(token.PipePipe):
		return p.parseClosureExpr()

	case p.at(token.BuiltinIdent):
		return p.parseBuiltinCallExpr()

	case p.atOr(token.DotDot, token.DotDotEq):
		inclusive := p.at(token.DotDotEq)
		p.advance()
		high := ast.NoExprID
		if canStartExpr(p.peek().Kind) {
			high = p.parseBinaryExpr(precOrElse)
		}
		return p.ctx.Exprs.NewRange(span.Cover(p.lastSpan), ast.NoExprID, high, inclusive)

	default:
		p.errorAt(diag.SynExpectedExpression, span)
		if !p.at(token.EOF) {
			p.advance()
		}
		return p.ctx.Exprs.NewNone(span)
	}
}

// parseIdentPrimary handles every construct that starts with a bare
// identifier in expression position: a loop label, an explicit-generic
// (turbofish) call or struct literal head, an ordinary struct literal head,
// or a plain name reference.
func (p *Parser) parseIdentPrimary() ast.ExprID {
	span := p.peek().Span

	if p.peekAt(1).Kind == token.Colon && isLoopStartKeyword(p.peekAt(2).Kind) {
		tok := p.advance() // label name
		label := p.ctx.Strings.Intern(tok.Text)
		p.advance() // ':'
		return p.parseLoopExpr(label)
	}

	name := p.mustIdent()

	if p.at(token.ColonColon) && p.peekAt(1).Kind == token.Lt {
		p.advance() // '::'
		typeArgs := p.parseGenericArgList()
		if p.at(token.LBrace) && p.noStructLit == 0 {
			typeExpr := p.ctx.TypeExprs.NewIdent(span, name, typeArgs)
			return p.parseStructLitTail(typeExpr, span)
		}
		p.pendingTypeArgs = typeArgs
		return p.ctx.Exprs.NewIdent(span, name)
	}

	if p.at(token.LBrace) && p.noStructLit == 0 {
		typeExpr := p.ctx.TypeExprs.NewIdent(span, name, nil)
		return p.parseStructLitTail(typeExpr, span)
	}

	return p.ctx.Exprs.NewIdent(span, name)
}

func (p *Parser) parseStructLitTail(typeExpr ast.TypeExprID, span source.Span) ast.ExprID {
	p.advance() // '{'
	var fields []ast.StructLitField
	base := ast.NoExprID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDot) {
			p.advance()
			base = p.parseExpr()
			break
		}
		fname, ok := p.parseIdent()
		if !ok {
			break
		}
		var val ast.ExprID
		if p.at(token.Colon) {
			p.advance()
			val = p.parseExpr()
		} else {
			val = p.ctx.Exprs.NewIdent(p.lastSpan, fname)
		}
		fields = append(fields, ast.StructLitField{Name: fname, Value: val})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expectToken(token.RBrace)
	return p.ctx.Exprs.NewStructLit(span.Cover(p.lastSpan), typeExpr, fields, base)
}

func (p *Parser) parseParenOrTupleExpr() ast.ExprID {
	span := p.peek().Span
	p.advance() // '('
	if p.at(token.RParen) {
		p.advance()
		return p.ctx.Exprs.NewTuple(span.Cover(p.lastSpan), nil)
	}
	first := p.parseExpr()
	if p.at(token.Comma) {
		elems := []ast.ExprID{first}
		for p.at(token.Comma) {
			p.advance()
			if p.at(token.RParen) {
				break
			}
			elems = append(elems, p.parseExpr())
		}
		p.expectToken(token.RParen)
		return p.ctx.Exprs.NewTuple(span.Cover(p.lastSpan), elems)
	}
	p.expectToken(token.RParen)
	return first
}

func (p *Parser) parseArrayExpr() ast.ExprID {
	span := p.peek().Span
	p.advance() // '['
	if p.at(token.RBracket) {
		p.advance()
		return p.ctx.Exprs.NewArray(span.Cover(p.lastSpan), nil)
	}
	first := p.parseExpr()
	if p.at(token.Semicolon) {
		p.advance()
		count := p.parseExpr()
		p.expectToken(token.RBracket)
		return p.ctx.Exprs.NewArrayRepeat(span.Cover(p.lastSpan), first, count)
	}
	elems := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RBracket) {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expectToken(token.RBracket)
	return p.ctx.Exprs.NewArray(span.Cover(p.lastSpan), elems)
}

// parseElseChain parses an optional `elif cond {...}`* `else {...}?` tail,
// folding each elif into a nested ExprIf the way the `else` arm of the
// preceding if is represented.
func (p *Parser) parseElseChain() ast.ExprID {
	if p.at(token.KwElif) {
		span := p.peek().Span
		p.advance()
		p.noStructLit++
		cond := p.parseExpr()
		p.noStructLit--
		then := p.parseBlockExpr()
		els := p.parseElseChain()
		return p.ctx.Exprs.NewIf(span.Cover(p.lastSpan), cond, then, els)
	}
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			return p.parseIfExpr()
		}
		return p.parseBlockExpr()
	}
	return ast.NoExprID
}

func (p *Parser) parseIfExpr() ast.ExprID {
	span := p.peek().Span
	p.advance() // 'if'
	p.noStructLit++
	cond := p.parseExpr()
	p.noStructLit--
	then := p.parseBlockExpr()
	els := p.parseElseChain()
	return p.ctx.Exprs.NewIf(span.Cover(p.lastSpan), cond, then, els)
}

func (p *Parser) parseMatchExpr() ast.ExprID {
	span := p.peek().Span
	p.advance() // 'match'
	p.noStructLit++
	scrutinee := p.parseExpr()
	p.noStructLit--
	p.expectToken(token.LBrace)
	var arms []ast.MatchArm
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.peek()
		pat := p.parsePattern()
		guard := ast.NoExprID
		if p.at(token.KwIf) {
			p.advance()
			guard = p.parseExpr()
		}
		p.expect(token.FatArrow, diag.SynExpectedFatArrow)
		body := p.parseExpr()
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		if p.at(token.Comma) {
			p.advance()
		}
		if p.peek().Span == before.Span && p.peek().Kind == before.Kind && !p.at(token.RBrace) && !p.at(token.EOF) {
			p.advance()
		}
	}
	p.expectToken(token.RBrace)
	return p.ctx.Exprs.NewMatch(span.Cover(p.lastSpan), scrutinee, arms)
}

// parseLoopExpr parses `loop {...}` / `while cond {...}` / `for pat in iter
// {...}` with the current token on the leading keyword; label is the
// already-consumed `label:` prefix's name, or NoStringID if unlabeled.
func (p *Parser) parseLoopExpr(label source.StringID) ast.ExprID {
	span := p.peek().Span
	switch {
	case p.at(token.KwLoop):
		p.advance()
		body := p.parseBlockExpr()
		return p.ctx.Exprs.NewLoop(span.Cover(p.lastSpan), ast.LoopData{
			Kind: ast.LoopPlain, Label: label, Body: body,
		})

	case p.at(token.KwWhile):
		p.advance()
		p.noStructLit++
		cond := p.parseExpr()
		p.noStructLit--
		body := p.parseBlockExpr()
		return p.ctx.Exprs.NewLoop(span.Cover(p.lastSpan), ast.LoopData{
			Kind: ast.LoopWhile, Label: label, Cond: cond, Body: body,
		})

	case p.at(token.KwFor):
		p.advance()
		p.noStructLit++
		pat := p.parsePattern()
		p.expect(token.KwIn, diag.SynExpectedIn)
		iter := p.parseExpr()
		p.noStructLit--
		body := p.parseBlockExpr()
		return p.ctx.Exprs.NewLoop(span.Cover(p.lastSpan), ast.LoopData{
			Kind: ast.LoopForIn, Label: label, Pat: pat, Iter: iter, Body: body,
		})

	default:
		p.errorAt(diag.SynExpectedExpression, span)
		return p.ctx.Exprs.NewNone(span)
	}
}

// parseClosureExpr parses `|params| body` or `|| body`, with the current
// token on the opening '|' or '||'.
func (p *Parser) parseClosureExpr() ast.ExprID {
	span := p.peek().Span
	var params []ast.ParamID
	if p.at(token.PipePipe) {
		p.advance()
	} else {
		p.advance() // '|'
		for !p.at(token.Pipe) && !p.at(token.EOF) {
			params = append(params, p.parseClosureParam())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expectToken(token.Pipe)
	}

	retType := ast.NoTypeExprID
	if p.at(token.Arrow) {
		p.advance()
		retType = p.parseTypeExpr()
	}

	var body ast.ExprID
	if p.at(token.LBrace) {
		body = p.parseBlockExpr()
	} else {
		body = p.parseExpr()
	}
	return p.ctx.Exprs.NewClosure(span.Cover(p.lastSpan), params, retType, body)
}

func (p *Parser) parseClosureParam() ast.ParamID {
	span := p.peek().Span
	mutable := false
	if p.at(token.KwMut) {
		p.advance()
		mutable = true
	}
	name, _ := p.parseIdent()
	typ := ast.NoTypeExprID
	if p.at(token.Colon) {
		p.advance()
		typ = p.parseTypeExpr()
	}
	return p.ctx.Decls.NewParam(ast.Param{
		Name: name, Span: span.Cover(p.lastSpan), Type: typ, Mutable: mutable, Kind: ast.ParamNormal,
	})
}

func (p *Parser) parseBuiltinCallExpr() ast.ExprID {
	span := p.peek().Span
	tok := p.advance() // BuiltinIdent, e.g. "@sizeof"
	name := p.ctx.Strings.Intern(stripBuiltinSigil(tok.Text))
	var args []ast.ExprID
	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			args = append(args, p.parseExpr())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expectToken(token.RParen)
	}
	return p.ctx.Exprs.NewBuiltinCall(span.Cover(p.lastSpan), name, args)
}

// parseLiteralExpr parses one scalar literal, or a unary-negated literal
// (`-1`), as used by both ordinary expression position and pattern.go's
// literal/range patterns.
func (p *Parser) parseLiteralExpr() ast.ExprID {
	span := p.peek().Span
	switch {
	case p.at(token.KwNone):
		p.advance()
		return p.ctx.Exprs.NewNone(span)

	case p.at(token.KwTrue):
		p.advance()
		return p.ctx.Exprs.NewLiteral(span, ast.LiteralData{Kind: ast.LitBool, Text: p.ctx.Strings.Intern("true")})

	case p.at(token.KwFalse):
		p.advance()
		return p.ctx.Exprs.NewLiteral(span, ast.LiteralData{Kind: ast.LitBool, Text: p.ctx.Strings.Intern("false")})

	case p.at(token.IntLit):
		tok := p.advance()
		text, suffix := splitNumericSuffix(tok.Text, intSuffixes)
		return p.ctx.Exprs.NewLiteral(span, ast.LiteralData{
			Kind: ast.LitInt, Text: p.ctx.Strings.Intern(text), Suffix: p.internSuffix(suffix),
		})

	case p.at(token.FloatLit):
		tok := p.advance()
		text, suffix := splitNumericSuffix(tok.Text, floatSuffixes)
		return p.ctx.Exprs.NewLiteral(span, ast.LiteralData{
			Kind: ast.LitFloat, Text: p.ctx.Strings.Intern(text), Suffix: p.internSuffix(suffix),
		})

	case p.at(token.CharLit):
		tok := p.advance()
		return p.ctx.Exprs.NewLiteral(span, ast.LiteralData{Kind: ast.LitChar, Text: p.ctx.Strings.Intern(tok.Text)})

	case p.atOr(token.StringLit, token.RawStringLit, token.MultilineStringLit):
		tok := p.advance()
		return p.ctx.Exprs.NewLiteral(span, ast.LiteralData{Kind: ast.LitString, Text: p.ctx.Strings.Intern(tok.Text)})

	case p.at(token.Minus):
		p.advance()
		inner := p.parseLiteralExpr()
		return p.ctx.Exprs.NewUnary(span.Cover(p.lastSpan), ast.UnaryNeg, inner)

	default:
		p.errorAt(diag.SynExpectedExpression, span)
		if !p.at(token.EOF) {
			p.advance()
		}
		return p.ctx.Exprs.NewNone(span)
	}
}

// intSuffixes/floatSuffixes list declared numeric-literal width/signedness
// suffixes, longest-named first so e.g. "i128" is tried before "i8".
var intSuffixes = []string{"i128", "u128", "isize", "usize", "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64"}
var floatSuffixes = []string{"f32", "f64"}

func splitNumericSuffix(text string, suffixes []string) (string, string) {
	for _, s := range suffixes {
		if strings.HasSuffix(text, s) && len(text) > len(s) {
			return text[:len(text)-len(s)], s
		}
	}
	return text, ""
}

func (p *Parser) internSuffix(s string) source.StringID {
	if s == "" {
		return source.NoStringID
	}
	return p.ctx.Strings.Intern(s)
}
