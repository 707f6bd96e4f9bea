package parser

import (
	"yuanc/internal/ast"
	"yuanc/internal/diag"
	"yuanc/internal/source"
	"yuanc/internal/token"
)

// parseVarDecl parses `var [mut] name[: Type][= init];` or a destructuring
// form `var [mut] (a, b)[: Type] = init;`, consuming the leading 'var'.
func (p *Parser) parseVarDecl(vis ast.Visibility) ast.DeclID {
	span := p.peek().Span
	p.advance() // 'var'
	mutable := false
	if p.at(token.KwMut) {
		p.advance()
		mutable = true
	}

	name := source.NoStringID
	pattern := ast.NoPatternID
	if p.at(token.Ident) && (p.peekAt(1).Kind == token.Colon || p.peekAt(1).Kind == token.Assign || p.peekAt(1).Kind == token.Semicolon) {
		name = p.mustIdent()
	} else {
		pattern = p.parsePattern()
	}

	annotation := ast.NoTypeExprID
	if p.at(token.Colon) {
		p.advance()
		annotation = p.parseTypeExpr()
	}
	init := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		init = p.parseExpr()
	}
	p.expectToken(token.Semicolon)

	return p.ctx.Decls.NewVar(span.Cover(p.lastSpan), ast.VarDeclData{
		Name: name, Annotation: annotation, Init: init, Pattern: pattern, Mutable: mutable, Vis: vis,
	})
}

func (p *Parser) parseConstDecl(vis ast.Visibility) ast.DeclID {
	span := p.peek().Span
	p.advance() // 'const'
	name, _ := p.parseIdent()
	annotation := ast.NoTypeExprID
	if p.at(token.Colon) {
		p.advance()
		annotation = p.parseTypeExpr()
	}
	init := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		init = p.parseExpr()
	}
	p.expectToken(token.Semicolon)
	return p.ctx.Decls.NewConst(span.Cover(p.lastSpan), ast.ConstDeclData{
		Name: name, Annotation: annotation, Init: init, Vis: vis,
	})
}

// parseFuncDecl parses a function declaration/definition, consuming the
// leading 'func'. vis/async are the modifiers already consumed by the
// caller (top-level items) or passed explicitly (trait/impl members).
func (p *Parser) parseFuncDecl(vis ast.Visibility, async bool) ast.DeclID {
	span := p.peek().Span
	p.advance() // 'func'
	name, _ := p.parseIdent()
	generics := p.parseGenericParams()
	params := p.parseParamList()

	retType := ast.NoTypeExprID
	errorRet := false
	if p.at(token.Arrow) {
		p.advance()
		retType = p.parseTypeExpr()
		if p.at(token.Bang) {
			p.advance()
			errorRet = true
		}
	}
	generics = p.parseWhereClause(generics)

	body := ast.NoStmtID
	if p.at(token.LBrace) {
		bodySpan := p.peek().Span
		blockExpr := p.parseBlockExpr()
		body = p.ctx.Stmts.NewExprStmt(bodySpan.Cover(p.lastSpan), blockExpr, false)
	} else {
		p.expectToken(token.Semicolon)
	}

	return p.ctx.Decls.NewFunc(span.Cover(p.lastSpan), ast.FuncDeclData{
		Name: name, Params: params, ReturnType: retType, Body: body,
		Async: async, ErrorRet: errorRet, Vis: vis, Generics: generics,
	})
}

func (p *Parser) parseParamList() []ast.ParamID {
	p.expect(token.LParen, diag.SynExpectedParamList)
	var params []ast.ParamID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		params = append(params, p.parseParam())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expectToken(token.RParen)
	return params
}

func (p *Parser) parseParam() ast.ParamID {
	span := p.peek().Span

	if p.at(token.Amp) {
		p.advance()
		mutable := false
		if p.at(token.KwMut) {
			p.advance()
			mutable = true
		}
		p.expectToken(token.KwSelf)
		kind := ast.ParamRefSelf
		if mutable {
			kind = ast.ParamMutRefSelf
		}
		return p.ctx.Decls.NewParam(ast.Param{Name: p.selfName(), Span: span.Cover(p.lastSpan), Kind: kind})
	}
	if p.at(token.KwSelf) {
		p.advance()
		return p.ctx.Decls.NewParam(ast.Param{Name: p.selfName(), Span: span.Cover(p.lastSpan), Kind: ast.ParamSelf})
	}

	mutable := false
	if p.at(token.KwMut) {
		p.advance()
		mutable = true
	}
	name, _ := p.parseIdent()
	p.expectToken(token.Colon)
	typ := p.parseTypeExpr()

	kind := ast.ParamNormal
	if p.at(token.Ellipsis) {
		p.advance()
		kind = ast.ParamVariadic
	}

	def := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		def = p.parseExpr()
	}

	return p.ctx.Decls.NewParam(ast.Param{
		Name: name, Span: span.Cover(p.lastSpan), Type: typ, Default: def, Mutable: mutable, Kind: kind,
	})
}

func (p *Parser) selfName() source.StringID { return p.ctx.Strings.Intern("self") }

func (p *Parser) parseStructDecl(vis ast.Visibility) ast.DeclID {
	span := p.peek().Span
	p.advance() // 'struct'
	name, _ := p.parseIdent()
	generics := p.parseGenericParams()
	p.expectToken(token.LBrace)
	var fields []ast.FieldID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fieldSpan := p.peek().Span
		fieldVis := ast.VisPriv
		if p.at(token.KwPub) {
			p.advance()
			fieldVis = ast.VisPub
		} else if p.at(token.KwInternal) {
			p.advance()
			fieldVis = ast.VisInternal
		}
		fname, ok := p.parseIdent()
		if !ok {
			break
		}
		p.expectToken(token.Colon)
		ftype := p.parseTypeExpr()
		fields = append(fields, p.ctx.Decls.NewField(ast.FieldDeclData{
			Name: fname, Span: fieldSpan.Cover(p.lastSpan), Type: ftype, Vis: fieldVis,
		}))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expectToken(token.RBrace)
	return p.ctx.Decls.NewStruct(span.Cover(p.lastSpan), ast.StructDeclData{
		Name: name, Fields: fields, Vis: vis, Generics: generics,
	})
}

func (p *Parser) parseEnumDecl(vis ast.Visibility) ast.DeclID {
	span := p.peek().Span
	p.advance() // 'enum'
	name, _ := p.parseIdent()
	generics := p.parseGenericParams()
	p.expectToken(token.LBrace)
	var variants []ast.VariantID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		variants = append(variants, p.parseEnumVariant())
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expectToken(token.RBrace)
	return p.ctx.Decls.NewEnum(span.Cover(p.lastSpan), ast.EnumDeclData{
		Name: name, Variants: variants, Vis: vis, Generics: generics,
	})
}

func (p *Parser) parseEnumVariant() ast.VariantID {
	span := p.peek().Span
	vname, _ := p.parseIdent()

	kind := ast.VariantUnit
	var tupleFields []ast.TypeExprID
	var structFields []ast.FieldID

	switch {
	case p.at(token.LParen):
		kind = ast.VariantTuple
		p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			tupleFields = append(tupleFields, p.parseTypeExpr())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expectToken(token.RParen)
	case p.at(token.LBrace):
		kind = ast.VariantStruct
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			fspan := p.peek().Span
			fname, ok := p.parseIdent()
			if !ok {
				break
			}
			p.expectToken(token.Colon)
			ftype := p.parseTypeExpr()
			structFields = append(structFields, p.ctx.Decls.NewField(ast.FieldDeclData{
				Name: fname, Span: fspan.Cover(p.lastSpan), Type: ftype, Vis: ast.VisPub,
			}))
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expectToken(token.RBrace)
	}

	discriminant := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		discriminant = p.parseExpr()
	}

	return p.ctx.Decls.NewVariant(ast.EnumVariantDeclData{
		Name: vname, Span: span.Cover(p.lastSpan), Kind: kind,
		TupleFields: tupleFields, StructFields: structFields, Discriminant: discriminant,
	})
}

func (p *Parser) parseTraitDecl(vis ast.Visibility) ast.DeclID {
	span := p.peek().Span
	p.advance() // 'trait'
	name, _ := p.parseIdent()
	generics := p.parseGenericParams()

	var supers []source.StringID
	if p.at(token.Colon) {
		p.advance()
		for {
			bt, ok := p.parseIdent()
			if ok {
				supers = append(supers, bt)
			}
			if !p.at(token.Plus) {
				break
			}
			p.advance()
		}
	}

	p.expectToken(token.LBrace)
	var methods, assoc []ast.DeclID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.peek()
		switch {
		case p.at(token.KwType):
			assoc = append(assoc, p.parseAssocTypeDecl())
		default:
			async := false
			if p.at(token.KwAsync) {
				p.advance()
				async = true
			}
			if p.at(token.KwFunc) {
				methods = append(methods, p.parseFuncDecl(ast.VisPub, async))
			} else {
				p.errorAt1(diag.SynExpectedDeclaration, p.peek().Span, p.peek().String())
				p.advance()
			}
		}
		if p.peek().Span == before.Span && p.peek().Kind == before.Kind && !p.at(token.RBrace) && !p.at(token.EOF) {
			p.advance()
		}
	}
	p.expectToken(token.RBrace)

	return p.ctx.Decls.NewTrait(span.Cover(p.lastSpan), ast.TraitDeclData{
		Name: name, Methods: methods, AssocTypes: assoc, SuperTraits: supers, Generics: generics, Vis: vis,
	})
}

// parseAssocTypeDecl parses a trait's `type Name[= Type];` member (an
// abstract associated type when Aliased is left unset, a default when set).
// A `: Bound` list after the name is not accepted.
func (p *Parser) parseAssocTypeDecl() ast.DeclID {
	span := p.peek().Span
	p.advance() // 'type'
	name, _ := p.parseIdent()
	aliased := ast.NoTypeExprID
	if p.at(token.Assign) {
		p.advance()
		aliased = p.parseTypeExpr()
	}
	p.expectToken(token.Semicolon)
	return p.ctx.Decls.NewTypeAlias(span.Cover(p.lastSpan), ast.TypeAliasDeclData{Name: name, Aliased: aliased, Vis: ast.VisPub})
}

func (p *Parser) parseImplDecl() ast.DeclID {
	span := p.peek().Span
	p.advance() // 'impl'
	generics := p.parseGenericParams()

	first := p.parseTypeExpr()
	target := first
	traitName := source.NoStringID
	hasTrait := false
	if p.at(token.KwFor) {
		p.advance()
		hasTrait = true
		if identData, ok := p.ctx.TypeExprs.Ident(first); ok {
			traitName = identData.Name
		}
		target = p.parseTypeExpr()
	}
	generics = p.parseWhereClause(generics)

	p.expectToken(token.LBrace)
	var methods, assoc []ast.DeclID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.peek()
		switch {
		case p.at(token.KwType):
			assoc = append(assoc, p.parseAssocTypeDecl())
		default:
			async := false
			if p.at(token.KwAsync) {
				p.advance()
				async = true
			}
			visMember := ast.VisPriv
			if p.at(token.KwPub) {
				p.advance()
				visMember = ast.VisPub
			}
			if p.at(token.KwFunc) {
				methods = append(methods, p.parseFuncDecl(visMember, async))
			} else {
				p.errorAt1(diag.SynExpectedDeclaration, p.peek().Span, p.peek().String())
				p.advance()
			}
		}
		if p.peek().Span == before.Span && p.peek().Kind == before.Kind && !p.at(token.RBrace) && !p.at(token.EOF) {
			p.advance()
		}
	}
	p.expectToken(token.RBrace)

	return p.ctx.Decls.NewImpl(span.Cover(p.lastSpan), ast.ImplDeclData{
		Target: target, TraitName: traitName, HasTrait: hasTrait, Methods: methods, AssocTypes: assoc, Generics: generics,
	})
}

func (p *Parser) parseTypeAliasDecl(vis ast.Visibility) ast.DeclID {
	span := p.peek().Span
	p.advance() // 'type'
	name, _ := p.parseIdent()
	generics := p.parseGenericParams()
	aliased := ast.NoTypeExprID
	if p.at(token.Assign) {
		p.advance()
		aliased = p.parseTypeExpr()
	}
	p.expectToken(token.Semicolon)
	return p.ctx.Decls.NewTypeAlias(span.Cover(p.lastSpan), ast.TypeAliasDeclData{
		Name: name, Aliased: aliased, Vis: vis, Generics: generics,
	})
}
