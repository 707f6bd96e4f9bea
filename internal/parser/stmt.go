package parser

import (
	"yuanc/internal/ast"
	"yuanc/internal/source"
	"yuanc/internal/token"
)

// parseBlockExpr parses a `{ stmt* expr? }` block, with the current token
// on the opening '{'.
func (p *Parser) parseBlockExpr() ast.ExprID {
	span := p.peek().Span
	p.expectToken(token.LBrace)

	var stmts []ast.StmtID
	result := ast.NoExprID

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.peek()
		if p.at(token.KwVar) || p.at(token.KwConst) {
			decl := p.parseLocalDecl()
			stmts = append(stmts, p.ctx.Stmts.NewLocalDecl(before.Span.Cover(p.lastSpan), decl))
			continue
		}
		switch p.peek().Kind {
		case token.KwReturn:
			stmts = append(stmts, p.parseReturnStmt())
		case token.KwBreak:
			stmts = append(stmts, p.parseBreakStmt())
		case token.KwContinue:
			stmts = append(stmts, p.parseContinueStmt())
		case token.KwDefer:
			stmts = append(stmts, p.parseDeferStmt())
		default:
			exprSpan := p.peek().Span
			expr := p.parseExpr()
			if p.at(token.RBrace) {
				result = expr
				goto closeBlock
			}
			if p.at(token.Semicolon) {
				p.advance()
				stmts = append(stmts, p.ctx.Stmts.NewExprStmt(exprSpan.Cover(p.lastSpan), expr, true))
			} else if isBlockLikeExpr(p.ctx, expr) {
				stmts = append(stmts, p.ctx.Stmts.NewExprStmt(exprSpan.Cover(p.lastSpan), expr, false))
			} else {
				p.expectToken(token.Semicolon)
				stmts = append(stmts, p.ctx.Stmts.NewExprStmt(exprSpan.Cover(p.lastSpan), expr, false))
			}
		}
		if p.peek().Span == before.Span && p.peek().Kind == before.Kind && !p.at(token.EOF) && !p.at(token.RBrace) {
			p.advance()
		}
	}

closeBlock:
	p.expectToken(token.RBrace)
	return p.ctx.Exprs.NewBlock(span.Cover(p.lastSpan), stmts, result)
}

// isBlockLikeExpr reports whether expr is a control-flow expression that
// does not require a trailing semicolon when used as a statement.
func isBlockLikeExpr(ctx *ast.Context, expr ast.ExprID) bool {
	n := ctx.Exprs.Get(expr)
	if n == nil {
		return false
	}
	switch n.Kind {
	case ast.ExprIf, ast.ExprMatch, ast.ExprLoop, ast.ExprBlock:
		return true
	}
	return false
}

func (p *Parser) parseLocalDecl() ast.DeclID {
	if p.at(token.KwConst) {
		return p.parseConstDecl(ast.VisPriv)
	}
	return p.parseVarDecl(ast.VisPriv)
}

func (p *Parser) parseReturnStmt() ast.StmtID {
	span := p.peek().Span
	p.advance() // 'return'
	value := ast.NoExprID
	if !p.at(token.Semicolon) && !p.at(token.RBrace) {
		value = p.parseExpr()
	}
	p.expectToken(token.Semicolon)
	return p.ctx.Stmts.NewReturn(span.Cover(p.lastSpan), value)
}

func (p *Parser) parseBreakStmt() ast.StmtID {
	span := p.peek().Span
	p.advance() // 'break'
	label := source.NoStringID
	value := ast.NoExprID
	if p.at(token.Ident) && p.peekAt(1).Kind == token.Semicolon {
		tok := p.advance()
		label = p.ctx.Strings.Intern(tok.Text)
	} else if canStartExpr(p.peek().Kind) {
		value = p.parseExpr()
	}
	p.expectToken(token.Semicolon)
	return p.ctx.Stmts.NewBreak(span.Cover(p.lastSpan), label, value)
}

func (p *Parser) parseContinueStmt() ast.StmtID {
	span := p.peek().Span
	p.advance() // 'continue'
	label := source.NoStringID
	if p.at(token.Ident) {
		tok := p.advance()
		label = p.ctx.Strings.Intern(tok.Text)
	}
	p.expectToken(token.Semicolon)
	return p.ctx.Stmts.NewContinue(span.Cover(p.lastSpan), label)
}

func (p *Parser) parseDeferStmt() ast.StmtID {
	span := p.peek().Span
	p.advance() // 'defer'
	expr := p.parseExpr()
	p.expectToken(token.Semicolon)
	return p.ctx.Stmts.NewDefer(span.Cover(p.lastSpan), expr)
}

