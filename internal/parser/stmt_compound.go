package parser

import (
	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/source"
	"pyplus/internal/token"
)

func (p *Parser) parseCompound() ast.StmtID {
	switch p.peek().Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor(p.peek().Span, false)
	case token.KwDef:
		return p.parseDef(p.peek().Span, nil, false)
	case token.KwClass:
		return p.parseClass(p.peek().Span, nil)
	case token.KwTry:
		return p.parseTry()
	case token.KwWith:
		return p.parseWith(p.peek().Span, false)
	case token.At:
		return p.parseDecorated()
	case token.KwAsync:
		kw := p.advance()
		switch p.peek().Kind {
		case token.KwDef:
			return p.parseDef(kw.Span, nil, true)
		case token.KwFor:
			return p.parseFor(kw.Span, true)
		case token.KwWith:
			return p.parseWith(kw.Span, true)
		}
		p.fail(diag.SynUnexpectedToken, "expected 'def', 'for' or 'with' after 'async'")
	}
	return ast.NoStmtID
}

// finishCompound выставляет span от начала заголовка до конца тела и Header.
func (p *Parser) finishCompound(id ast.StmtID, start source.Span, header uint32) ast.StmtID {
	p.arenas.Stmts.SetSpan(id, p.spanFrom(start))
	p.arenas.Stmts.SetHeader(id, header)
	return id
}

// parseIf разбирает if/elif/else; начальный токен — 'if' или 'elif'.
func (p *Parser) parseIf() ast.StmtID {
	kw := p.advance()
	test := p.parseNamedExpr()
	if p.failed {
		return ast.NoStmtID
	}
	header := p.expectColon()
	if p.failed {
		return ast.NoStmtID
	}
	body := p.parseBlock()
	if p.failed {
		return ast.NoStmtID
	}
	var orelse []ast.StmtID
	switch p.peek().Kind {
	case token.KwElif:
		elif := p.parseIf()
		if p.failed {
			return ast.NoStmtID
		}
		orelse = []ast.StmtID{elif}
	case token.KwElse:
		orelse = p.parseElse()
		if p.failed {
			return ast.NoStmtID
		}
	}
	id := p.arenas.Stmts.NewIf(kw.Span, ast.StmtIfData{Test: test, Body: body, Orelse: orelse})
	return p.finishCompound(id, kw.Span, header)
}

// parseElse разбирает 'else' ':' блок.
func (p *Parser) parseElse() []ast.StmtID {
	p.advance()
	p.expectColon()
	if p.failed {
		return nil
	}
	return p.parseBlock()
}

func (p *Parser) parseWhile() ast.StmtID {
	kw := p.advance()
	test := p.parseNamedExpr()
	if p.failed {
		return ast.NoStmtID
	}
	header := p.expectColon()
	if p.failed {
		return ast.NoStmtID
	}
	body := p.parseBlock()
	var orelse []ast.StmtID
	if !p.failed && p.at(token.KwElse) {
		orelse = p.parseElse()
	}
	if p.failed {
		return ast.NoStmtID
	}
	id := p.arenas.Stmts.NewWhile(kw.Span, ast.StmtWhileData{Test: test, Body: body, Orelse: orelse})
	return p.finishCompound(id, kw.Span, header)
}

func (p *Parser) parseFor(start source.Span, async bool) ast.StmtID {
	p.advance() // for
	target := p.parseTargetList()
	if p.failed || !p.checkTarget(target, true) {
		return ast.NoStmtID
	}
	if _, ok := p.expect(token.KwIn, diag.SynExpectIn, "expected 'in', got "+describe(p.peek())); !ok {
		return ast.NoStmtID
	}
	iter := p.parseStarExpressions()
	if p.failed {
		return ast.NoStmtID
	}
	header := p.expectColon()
	if p.failed {
		return ast.NoStmtID
	}
	body := p.parseBlock()
	var orelse []ast.StmtID
	if !p.failed && p.at(token.KwElse) {
		orelse = p.parseElse()
	}
	if p.failed {
		return ast.NoStmtID
	}
	id := p.arenas.Stmts.NewFor(start, ast.StmtForData{Target: target, Iter: iter, Body: body, Orelse: orelse, Async: async})
	return p.finishCompound(id, start, header)
}

func (p *Parser) parseDecorated() ast.StmtID {
	start := p.peek().Span
	var decorators []ast.ExprID
	for p.at(token.At) {
		p.advance()
		decorators = append(decorators, p.parseNamedExpr())
		if p.failed {
			return ast.NoStmtID
		}
		if _, ok := p.expect(token.Newline, diag.SynExpectNewline, "expected end of line after decorator"); !ok {
			return ast.NoStmtID
		}
	}
	switch p.peek().Kind {
	case token.KwDef:
		return p.parseDef(start, decorators, false)
	case token.KwClass:
		return p.parseClass(start, decorators)
	case token.KwAsync:
		if p.peekN(1).Kind == token.KwDef {
			p.advance()
			return p.parseDef(start, decorators, true)
		}
	}
	p.fail(diag.SynUnexpectedToken, "expected 'def' or 'class' after decorator, got "+describe(p.peek()))
	return ast.NoStmtID
}

func (p *Parser) parseDef(start source.Span, decorators []ast.ExprID, async bool) ast.StmtID {
	p.advance() // def
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name, got "+describe(p.peek()))
	if !ok {
		return ast.NoStmtID
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoStmtID
	}
	params := p.parseParams(token.RParen, true)
	if p.failed {
		return ast.NoStmtID
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list"); !ok {
		return ast.NoStmtID
	}
	returns := ast.NoExprID
	if p.eat(token.Arrow) {
		returns = p.parseExpression()
	}
	header := p.expectColon()
	if p.failed {
		return ast.NoStmtID
	}
	p.funcDepth++
	body := p.parseBlock()
	p.funcDepth--
	if p.failed {
		return ast.NoStmtID
	}
	id := p.arenas.Stmts.NewFunctionDef(start, ast.StmtFunctionDefData{
		Name:       p.arenas.Strings.Intern(name.Text),
		NameSpan:   name.Span,
		Params:     params,
		Returns:    returns,
		Body:       body,
		Decorators: decorators,
		Async:      async,
	})
	return p.finishCompound(id, start, header)
}

func (p *Parser) parseClass(start source.Span, decorators []ast.ExprID) ast.StmtID {
	p.advance() // class
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected class name, got "+describe(p.peek()))
	if !ok {
		return ast.NoStmtID
	}
	var bases []ast.ExprID
	var keywords []ast.Keyword
	if p.eat(token.LParen) {
		bases, keywords = p.parseCallArgs()
		if p.failed {
			return ast.NoStmtID
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close base list"); !ok {
			return ast.NoStmtID
		}
	}
	header := p.expectColon()
	if p.failed {
		return ast.NoStmtID
	}
	depth := p.funcDepth
	p.funcDepth = 0
	body := p.parseBlock()
	p.funcDepth = depth
	if p.failed {
		return ast.NoStmtID
	}
	id := p.arenas.Stmts.NewClassDef(start, ast.StmtClassDefData{
		Name:       p.arenas.Strings.Intern(name.Text),
		Bases:      bases,
		Keywords:   keywords,
		Body:       body,
		Decorators: decorators,
	})
	return p.finishCompound(id, start, header)
}

func (p *Parser) parseTry() ast.StmtID {
	kw := p.advance()
	header := p.expectColon()
	if p.failed {
		return ast.NoStmtID
	}
	data := ast.StmtTryData{Body: p.parseBlock()}
	for !p.failed && p.at(token.KwExcept) {
		ex := p.advance()
		h := ast.ExceptHandler{Type: ast.NoExprID, Name: source.NoStringID}
		if !p.at(token.Colon) {
			h.Type = p.parseExpression()
			if p.eat(token.KwAs) {
				name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after 'as'")
				if !ok {
					return ast.NoStmtID
				}
				h.Name = p.arenas.Strings.Intern(name.Text)
			}
		}
		p.expectColon()
		if p.failed {
			return ast.NoStmtID
		}
		h.Body = p.parseBlock()
		h.Span = p.spanFrom(ex.Span)
		data.Handlers = append(data.Handlers, h)
	}
	if !p.failed && p.at(token.KwElse) {
		data.Orelse = p.parseElse()
	}
	if !p.failed && p.at(token.KwFinally) {
		p.advance()
		p.expectColon()
		if !p.failed {
			data.Finalbody = p.parseBlock()
		}
	}
	if p.failed {
		return ast.NoStmtID
	}
	if len(data.Handlers) == 0 && len(data.Finalbody) == 0 {
		p.fail(diag.SynExpectTryHandlers, "expected 'except' or 'finally' block")
		return ast.NoStmtID
	}
	id := p.arenas.Stmts.NewTry(kw.Span, data)
	return p.finishCompound(id, kw.Span, header)
}

func (p *Parser) parseWith(start source.Span, async bool) ast.StmtID {
	p.advance() // with
	var items []ast.WithItem
	for {
		item := ast.WithItem{Context: p.parseExpression(), Vars: ast.NoExprID}
		if p.eat(token.KwAs) {
			item.Vars = p.parseTarget()
			if !p.failed && !p.checkTarget(item.Vars, true) {
				return ast.NoStmtID
			}
		}
		if p.failed {
			return ast.NoStmtID
		}
		items = append(items, item)
		if !p.eat(token.Comma) {
			break
		}
	}
	header := p.expectColon()
	if p.failed {
		return ast.NoStmtID
	}
	body := p.parseBlock()
	if p.failed {
		return ast.NoStmtID
	}
	id := p.arenas.Stmts.NewWith(start, ast.StmtWithData{Items: items, Body: body, Async: async})
	return p.finishCompound(id, start, header)
}
