package parser

import (
	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/source"
	"pyplus/internal/token"
)

// parseStatement разбирает один оператор (или несколько простых через ';').
// Синтаксическая ошибка превращается в ast.StmtBad, покрывающий пропущенный текст.
func (p *Parser) parseStatement() []ast.StmtID {
	p.failed = false
	p.failMsg = ""
	startPos := p.pos
	tok := p.peek()

	var ids []ast.StmtID
	switch tok.Kind {
	case token.Newline, token.Dedent:
		p.advance()
		return nil
	case token.Indent:
		p.fail(diag.SynUnexpectedIndent, "unexpected indent")
		p.skipBlock()
		bad := p.badFrom(startPos)
		p.failed = false
		return []ast.StmtID{bad}
	case token.KwElif, token.KwElse, token.KwExcept, token.KwFinally:
		p.fail(diag.SynStrayClause, "'"+tok.Text+"' without a matching statement")
	case token.KwIf, token.KwWhile, token.KwFor, token.KwDef, token.KwClass,
		token.KwTry, token.KwWith, token.At, token.KwAsync:
		if id := p.parseCompound(); !p.failed {
			ids = append(ids, id)
		}
	default:
		ids = p.parseSimpleStatements()
	}

	if p.failed {
		bad := p.recover(startPos)
		// ошибка локальна: объемлющий блок продолжает разбор
		p.failed = false
		return []ast.StmtID{bad}
	}
	return ids
}

// recover пропускает остаток логической строки и, если строка открыла
// блок, весь блок; возвращает StmtBad на пропущенный текст.
func (p *Parser) recover(startPos int) ast.StmtID {
	if prev := p.toks[max(p.pos-1, 0)].Kind; p.pos == startPos || prev != token.Newline && prev != token.Dedent {
		for !p.atOr(token.Newline, token.EOF) {
			p.advance()
		}
		p.eat(token.Newline)
	}
	if p.at(token.Indent) {
		p.skipBlock()
	}
	return p.badFrom(startPos)
}

func (p *Parser) badFrom(startPos int) ast.StmtID {
	start := p.toks[startPos].Span
	// Indent/Dedent имеют пустой span на позиции первого токена строки
	for i := startPos; i < p.pos; i++ {
		if !p.toks[i].IsLayout() {
			start = p.toks[i].Span
			break
		}
	}
	sp := start
	if p.lastSpan.End > start.Start {
		sp = start.Cover(p.lastSpan)
	}
	reason := p.failMsg
	if reason == "" {
		reason = "invalid syntax"
	}
	return p.arenas.Stmts.NewBad(sp, reason)
}

// skipBlock съедает Indent и всё до парного Dedent включительно.
func (p *Parser) skipBlock() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

// parseBlock разбирает тело после ':' — либо NEWLINE INDENT ... DEDENT,
// либо простые операторы на той же строке.
func (p *Parser) parseBlock() []ast.StmtID {
	if !p.at(token.Newline) {
		return p.parseSimpleStatements()
	}
	p.advance()
	if _, ok := p.expect(token.Indent, diag.SynExpectIndent, "expected an indented block"); !ok {
		return nil
	}
	var body []ast.StmtID
	for !p.atOr(token.Dedent, token.EOF) {
		body = append(body, p.parseStatement()...)
	}
	p.eat(token.Dedent)
	return body
}

// expectColon съедает ':' заголовка и возвращает смещение сразу после него.
func (p *Parser) expectColon() uint32 {
	tok, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':', got "+describe(p.peek()))
	if !ok {
		return 0
	}
	return tok.Span.End
}

func (p *Parser) parseSimpleStatements() []ast.StmtID {
	var out []ast.StmtID
	for {
		id := p.parseSimple()
		if p.failed {
			return nil
		}
		out = append(out, id)
		if !p.eat(token.Semicolon) || p.atOr(token.Newline, token.EOF) {
			break
		}
	}
	if !p.eat(token.Newline) && !p.at(token.EOF) {
		p.fail(diag.SynExpectNewline, "expected end of line, got "+describe(p.peek()))
	}
	return out
}

func (p *Parser) parseSimple() ast.StmtID {
	tok := p.peek()
	switch tok.Kind {
	case token.KwPass:
		p.advance()
		return p.arenas.Stmts.NewSimple(ast.StmtPass, tok.Span)
	case token.KwBreak:
		p.advance()
		return p.arenas.Stmts.NewSimple(ast.StmtBreak, tok.Span)
	case token.KwContinue:
		p.advance()
		return p.arenas.Stmts.NewSimple(ast.StmtContinue, tok.Span)
	case token.KwReturn:
		return p.parseReturn()
	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseImportFrom()
	case token.KwGlobal, token.KwNonlocal:
		return p.parseNames()
	case token.KwDel:
		return p.parseDel()
	case token.KwAssert:
		return p.parseAssert()
	case token.KwRaise:
		return p.parseRaise()
	}
	return p.parseExprOrAssign()
}

func (p *Parser) parseReturn() ast.StmtID {
	kw := p.advance()
	if p.funcDepth == 0 {
		p.failAt(diag.SynUnexpectedToken, kw.Span, "'return' outside function")
		return ast.NoStmtID
	}
	value := ast.NoExprID
	if !p.atOr(token.Newline, token.Semicolon, token.EOF) {
		value = p.parseStarExpressions()
	}
	return p.arenas.Stmts.NewReturn(p.spanFrom(kw.Span), value)
}

func (p *Parser) parseExprOrAssign() ast.StmtID {
	start := p.peek().Span
	first := p.parseExprOrYield()
	if p.failed {
		return ast.NoStmtID
	}

	switch k := p.peek().Kind; {
	case k == token.Assign:
		exprs := []ast.ExprID{first}
		for p.eat(token.Assign) {
			exprs = append(exprs, p.parseExprOrYield())
			if p.failed {
				return ast.NoStmtID
			}
		}
		targets := exprs[:len(exprs)-1]
		for _, t := range targets {
			if !p.checkTarget(t, true) {
				return ast.NoStmtID
			}
		}
		return p.arenas.Stmts.NewAssign(p.spanFrom(start), targets, exprs[len(exprs)-1])

	case k.IsAugAssign():
		if !p.checkTarget(first, false) {
			return ast.NoStmtID
		}
		opTok := p.advance()
		base, _ := opTok.Kind.AugBase()
		op, _ := binaryOpFor(base)
		value := p.parseExprOrYield()
		return p.arenas.Stmts.NewAugAssign(p.spanFrom(start), first, op, value)

	case k == token.Colon:
		if !p.checkTarget(first, false) {
			return ast.NoStmtID
		}
		p.advance()
		ann := p.parseExpression()
		value := ast.NoExprID
		if p.eat(token.Assign) {
			value = p.parseExprOrYield()
		}
		return p.arenas.Stmts.NewAnnAssign(p.spanFrom(start), first, ann, value)
	}
	return p.arenas.Stmts.NewExpr(p.spanFrom(start), first)
}

// checkTarget проверяет, что выражение может стоять слева от '='.
func (p *Parser) checkTarget(id ast.ExprID, allowUnpack bool) bool {
	ex := p.arenas.Exprs.Get(id)
	if ex == nil {
		return false
	}
	switch ex.Kind {
	case ast.ExprName, ast.ExprAttribute, ast.ExprSubscript:
		return true
	case ast.ExprTuple, ast.ExprList:
		if allowUnpack {
			seq, _ := p.arenas.Exprs.Seq(id)
			for _, e := range seq.Elts {
				if !p.checkTarget(e, true) {
					return false
				}
			}
			return true
		}
	case ast.ExprStarred:
		if allowUnpack {
			st, _ := p.arenas.Exprs.Starred(id)
			return p.checkTarget(st.Value, true)
		}
	}
	p.failAt(diag.SynInvalidTarget, ex.Span, "cannot assign to "+ex.Kind.String())
	return false
}

func (p *Parser) parseDel() ast.StmtID {
	kw := p.advance()
	var targets []ast.ExprID
	for {
		t := p.parseBitOr()
		if p.failed || !p.checkTarget(t, true) {
			return ast.NoStmtID
		}
		targets = append(targets, t)
		if !p.eat(token.Comma) || p.atOr(token.Newline, token.Semicolon, token.EOF) {
			break
		}
	}
	return p.arenas.Stmts.NewDel(p.spanFrom(kw.Span), targets)
}

func (p *Parser) parseAssert() ast.StmtID {
	kw := p.advance()
	test := p.parseExpression()
	msg := ast.NoExprID
	if p.eat(token.Comma) {
		msg = p.parseExpression()
	}
	return p.arenas.Stmts.NewAssert(p.spanFrom(kw.Span), test, msg)
}

func (p *Parser) parseRaise() ast.StmtID {
	kw := p.advance()
	exc, cause := ast.NoExprID, ast.NoExprID
	if !p.atOr(token.Newline, token.Semicolon, token.EOF) {
		exc = p.parseExpression()
		if p.eat(token.KwFrom) {
			cause = p.parseExpression()
		}
	}
	return p.arenas.Stmts.NewRaise(p.spanFrom(kw.Span), exc, cause)
}

func (p *Parser) parseNames() ast.StmtID {
	kw := p.advance()
	kind := ast.StmtGlobal
	if kw.Kind == token.KwNonlocal {
		kind = ast.StmtNonlocal
	}
	var ids []source.StringID
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after '"+kw.Text+"'")
		if !ok {
			return ast.NoStmtID
		}
		ids = append(ids, p.arenas.Strings.Intern(name.Text))
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewNames(kind, p.spanFrom(kw.Span), ids)
}
