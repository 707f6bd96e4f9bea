// Package parser turns a token stream into an AST, driving the lexer
// through its Peek/Next interface with unbounded lookahead and reporting
// malformed input to a diag.Bag rather than failing outright: every
// production recovers far enough to keep parsing the rest of the file.
package parser

import (
	"strings"

	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/lexer"
	"yuanc/internal/source"
	"yuanc/internal/token"
)

// Options configures a parse run.
type Options struct {
	// MaxErrors stops new top-level recovery attempts once the bag has
	// reported this many errors; 0 means unlimited.
	MaxErrors int
}

// Parser holds the mutable state of one top-to-bottom parse of a single
// file. It is not safe for concurrent use and is discarded after ParseFile
// returns (spec's explicit non-goal: no multi-threaded parsing).
type Parser struct {
	lx   *lexer.Lexer
	ctx  *ast.Context
	bag  *diag.Bag
	file source.FileID
	opts Options

	lastSpan source.Span

	// noStructLit suppresses struct-literal parsing for a bare `Ident {`
	// while parsing the condition/iterator head of if/while/match/for, so
	// the opening '{' is read as the body block instead (spec §4.5).
	noStructLit int

	// pendingTypeArgs carries an explicit `::<...>` turbofish argument list
	// from the postfix loop's ColonColon branch to the Call it precedes.
	pendingTypeArgs []ast.TypeExprID
}

// ParseFile lexes and parses one file's full token stream into top-level
// declarations, registering the result with ctx and returning it.
func ParseFile(lx *lexer.Lexer, ctx *ast.Context, bag *diag.Bag, file source.FileID, opts Options) *ast.File {
	p := &Parser{lx: lx, ctx: ctx, bag: bag, file: file, opts: opts}
	decls := p.parseItems()
	f := ast.File{ID: file, Decls: decls}
	ctx.AddFile(f)
	return &f
}

// --- token-stream helpers ---

func (p *Parser) peek() token.Token      { return p.lx.Peek(0) }
func (p *Parser) peekAt(n int) token.Token { return p.lx.Peek(n) }

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) atOr(kinds ...token.Kind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// advance consumes and returns the current token and records its span as
// lastSpan. A '>>' closing a generic list is split by consumeGenericClose,
// not here.
func (p *Parser) advance() token.Token {
	t := p.lx.Next()
	p.lastSpan = t.Span
	return t
}

// expect consumes the current token if it matches k, else reports code at
// the current token's span with the expected/found surface text and
// returns the zero token with ok=false without consuming anything.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorAt2(code, p.peek().Span, k.String(), p.peek().String())
	return token.Token{}, false
}

// expectToken is expect with the common SynExpectedToken diagnostic.
func (p *Parser) expectToken(k token.Kind) (token.Token, bool) {
	return p.expect(k, diag.SynExpectedToken)
}

func (p *Parser) errorAt(code diag.Code, span source.Span) {
	p.bag.Report(code, span).Emit()
}

func (p *Parser) errorAt1(code diag.Code, span source.Span, a string) {
	p.bag.Report(code, span).Arg(a).Emit()
}

func (p *Parser) errorAt2(code diag.Code, span source.Span, a, b string) {
	p.bag.Report(code, span).Arg(a).Arg(b).Emit()
}

func (p *Parser) enoughErrors() bool {
	return p.opts.MaxErrors > 0 && p.bag.ErrorCount() >= p.opts.MaxErrors
}

// parseIdent consumes an Ident token (or the literal underscore, which the
// lexer also lexes as Ident text "_") and interns its text. On failure it
// reports SynExpectedIdentifier and returns the zero StringID.
func (p *Parser) parseIdent() (source.StringID, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.ctx.Strings.Intern(tok.Text), true
	}
	p.errorAt1(diag.SynExpectedIdentifier, p.peek().Span, p.peek().String())
	return source.NoStringID, false
}

// mustIdent is parseIdent for call sites that already know the current
// token is an Ident (e.g. a prior at(token.Ident) switch case).
func (p *Parser) mustIdent() source.StringID {
	tok := p.advance()
	return p.ctx.Strings.Intern(tok.Text)
}

// --- top-level declaration loop ---

var topLevelStarters = map[token.Kind]bool{
	token.KwVar: true, token.KwConst: true, token.KwFunc: true,
	token.KwStruct: true, token.KwEnum: true, token.KwTrait: true,
	token.KwImpl: true, token.KwType: true,
	token.KwPub: true, token.KwPriv: true, token.KwInternal: true,
	token.KwAsync: true, token.Semicolon: true,
}

func isTopLevelStarter(k token.Kind) bool { return topLevelStarters[k] }

func (p *Parser) parseItems() []ast.DeclID {
	var decls []ast.DeclID
	for !p.at(token.EOF) {
		if p.enoughErrors() {
			break
		}
		before := p.peek()
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		id, ok := p.parseItem()
		if ok {
			decls = append(decls, id)
		} else {
			p.resyncTop()
		}
		if p.peek().Span == before.Span && p.peek().Kind == before.Kind && !p.at(token.EOF) {
			// no progress was made; force one token forward to avoid looping.
			p.advance()
		}
	}
	return decls
}

// resyncTop skips tokens until a plausible top-level declaration starter
// or a statement-terminating semicolon, which it also consumes.
func (p *Parser) resyncTop() {
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if isTopLevelStarter(p.peek().Kind) {
			return
		}
		p.advance()
	}
}

// parseItem dispatches on the current token to the declaration parser for
// one top-level item, consuming any leading visibility/async modifiers.
func (p *Parser) parseItem() (ast.DeclID, bool) {
	vis := ast.VisPriv
	sawVis := false
	switch p.peek().Kind {
	case token.KwPub:
		p.advance()
		vis = ast.VisPub
		sawVis = true
	case token.KwPriv:
		p.advance()
		vis = ast.VisPriv
		sawVis = true
	case token.KwInternal:
		p.advance()
		vis = ast.VisInternal
		sawVis = true
	}
	if sawVis {
		for p.atOr(token.KwPub, token.KwPriv, token.KwInternal) {
			p.errorAt1(diag.SynDuplicateModifier, p.peek().Span, p.peek().String())
			p.advance()
		}
	}

	async := false
	if p.at(token.KwAsync) {
		p.advance()
		async = true
	}

	switch p.peek().Kind {
	case token.KwVar:
		return p.parseVarDecl(vis), true
	case token.KwConst:
		return p.parseConstDecl(vis), true
	case token.KwFunc:
		return p.parseFuncDecl(vis, async), true
	case token.KwStruct:
		return p.parseStructDecl(vis), true
	case token.KwEnum:
		return p.parseEnumDecl(vis), true
	case token.KwTrait:
		return p.parseTraitDecl(vis), true
	case token.KwImpl:
		return p.parseImplDecl(), true
	case token.KwType:
		return p.parseTypeAliasDecl(vis), true
	default:
		if async {
			p.errorAt1(diag.SynExpectedDeclaration, p.peek().Span, p.peek().String())
			return ast.NoDeclID, false
		}
		p.errorAt1(diag.SynExpectedDeclaration, p.peek().Span, p.peek().String())
		return ast.NoDeclID, false
	}
}

// stripBuiltinSigil removes the leading '@' the lexer keeps on a
// BuiltinIdent token's text.
func stripBuiltinSigil(text string) string {
	return strings.TrimPrefix(text, "@")
}
