package parser

import (
	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/source"
	"pyplus/internal/token"
)

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if ex := p.arenas.Exprs.Get(id); ex != nil {
		return ex.Span
	}
	return p.diagSpan()
}

// parseStarExpressions: star_expression (',' star_expression)* [','].
// Запятая верхнего уровня даёт Tuple без скобок.
func (p *Parser) parseStarExpressions() ast.ExprID {
	first := p.parseStarExpression()
	if p.failed || !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.atExprEnd() {
			break
		}
		elts = append(elts, p.parseStarExpression())
		if p.failed {
			return ast.NoExprID
		}
	}
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(p.exprSpan(first)), elts)
}

// atExprEnd — токены, на которых список выражений заканчивается.
func (p *Parser) atExprEnd() bool {
	switch p.peek().Kind {
	case token.Newline, token.EOF, token.Semicolon, token.Assign, token.Colon,
		token.RParen, token.RBracket, token.RBrace, token.KwIn:
		return true
	}
	return p.peek().Kind.IsAugAssign()
}

func (p *Parser) parseStarExpression() ast.ExprID {
	if p.at(token.Star) {
		star := p.advance()
		value := p.parseBitOr()
		return p.arenas.Exprs.NewStarred(p.spanFrom(star.Span), value, false)
	}
	return p.parseExpression()
}

// parseExprOrYield — правая часть присваивания и оператор-выражение.
func (p *Parser) parseExprOrYield() ast.ExprID {
	if p.at(token.KwYield) {
		return p.parseYield()
	}
	return p.parseStarExpressions()
}

func (p *Parser) parseYield() ast.ExprID {
	kw := p.advance()
	if p.eat(token.KwFrom) {
		value := p.parseExpression()
		return p.arenas.Exprs.NewYield(p.spanFrom(kw.Span), value, true)
	}
	value := ast.NoExprID
	if !p.atExprEnd() {
		value = p.parseStarExpressions()
	}
	return p.arenas.Exprs.NewYield(p.spanFrom(kw.Span), value, false)
}

// parseNamedExpr: NAME ':=' expression | expression.
func (p *Parser) parseNamedExpr() ast.ExprID {
	if p.at(token.Ident) && p.peekN(1).Kind == token.Walrus {
		name := p.advance()
		target := p.arenas.Exprs.NewName(name.Span, p.arenas.Strings.Intern(name.Text))
		p.advance()
		value := p.parseExpression()
		return p.arenas.Exprs.NewNamed(p.spanFrom(name.Span), target, value)
	}
	return p.parseExpression()
}

// parseExpression: lambda | disjunction ['if' disjunction 'else' expression].
func (p *Parser) parseExpression() ast.ExprID {
	if p.failed {
		return ast.NoExprID
	}
	if p.at(token.KwLambda) {
		return p.parseLambda()
	}
	body := p.parseDisjunction()
	if p.failed || !p.at(token.KwIf) {
		return body
	}
	p.advance()
	test := p.parseDisjunction()
	if _, ok := p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' in conditional expression"); !ok {
		return ast.NoExprID
	}
	orelse := p.parseExpression()
	return p.arenas.Exprs.NewIfExp(p.spanFrom(p.exprSpan(body)), test, body, orelse)
}

func (p *Parser) parseLambda() ast.ExprID {
	kw := p.advance()
	params := p.parseParams(token.Colon, false)
	if p.failed {
		return ast.NoExprID
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in lambda"); !ok {
		return ast.NoExprID
	}
	body := p.parseExpression()
	return p.arenas.Exprs.NewLambda(p.spanFrom(kw.Span), params, body)
}

func (p *Parser) parseDisjunction() ast.ExprID {
	return p.parseBoolChain(token.KwOr, ast.OpOr, p.parseConjunction)
}

func (p *Parser) parseConjunction() ast.ExprID {
	return p.parseBoolChain(token.KwAnd, ast.OpAnd, p.parseInversion)
}

// parseBoolChain собирает `a op b op c` в один плоский BoolOp.
func (p *Parser) parseBoolChain(k token.Kind, op ast.BoolOp, next func() ast.ExprID) ast.ExprID {
	first := next()
	if p.failed || !p.at(k) {
		return first
	}
	values := []ast.ExprID{first}
	for p.eat(k) {
		values = append(values, next())
		if p.failed {
			return ast.NoExprID
		}
	}
	return p.arenas.Exprs.NewBoolOp(p.spanFrom(p.exprSpan(first)), op, values)
}

func (p *Parser) parseInversion() ast.ExprID {
	if p.at(token.KwNot) {
		kw := p.advance()
		operand := p.parseInversion()
		return p.arenas.Exprs.NewUnary(p.spanFrom(kw.Span), ast.OpNot, operand)
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.ExprID {
	left := p.parseBitOr()
	if p.failed {
		return ast.NoExprID
	}
	var ops []ast.CmpOp
	var comparators []ast.ExprID
	for {
		op, n, ok := p.cmpOpAt()
		if !ok {
			break
		}
		for range n {
			p.advance()
		}
		ops = append(ops, op)
		comparators = append(comparators, p.parseBitOr())
		if p.failed {
			return ast.NoExprID
		}
	}
	if len(ops) == 0 {
		return left
	}
	return p.arenas.Exprs.NewCompare(p.spanFrom(p.exprSpan(left)), left, ops, comparators)
}

func (p *Parser) parseBitOr() ast.ExprID {
	return p.parseBinary(precBitOr)
}

// parseBinary — Pratt-цикл по таблице binaryPrec; все операторы левоассоциативны.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	left := p.parseFactor()
	for !p.failed {
		tok := p.peek()
		prec, ok := binaryPrec(tok.Kind)
		if !ok || prec < minPrec {
			break
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		if p.failed {
			return ast.NoExprID
		}
		op, _ := binaryOpFor(tok.Kind)
		left = p.arenas.Exprs.NewBinary(p.exprSpan(left).Cover(p.exprSpan(right)), op, left, right)
	}
	return left
}

// parseFactor: ('+' | '-' | '~') factor | power.
func (p *Parser) parseFactor() ast.ExprID {
	var op ast.UnaryOp
	switch p.peek().Kind {
	case token.Plus:
		op = ast.OpUAdd
	case token.Minus:
		op = ast.OpUSub
	case token.Tilde:
		op = ast.OpInvert
	default:
		return p.parsePower()
	}
	tok := p.advance()
	operand := p.parseFactor()
	return p.arenas.Exprs.NewUnary(p.spanFrom(tok.Span), op, operand)
}

// parsePower: await_primary ['**' factor]; правая часть — factor,
// поэтому `-x ** 2` == `-(x ** 2)`, а `2 ** -1` допустимо.
func (p *Parser) parsePower() ast.ExprID {
	base := p.parseAwaitPrimary()
	if p.failed || !p.at(token.DoubleStar) {
		return base
	}
	p.advance()
	exp := p.parseFactor()
	if p.failed {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewBinary(p.exprSpan(base).Cover(p.exprSpan(exp)), ast.OpPow, base, exp)
}

func (p *Parser) parseAwaitPrimary() ast.ExprID {
	if p.at(token.KwAwait) {
		kw := p.advance()
		value := p.parsePrimary()
		return p.arenas.Exprs.NewAwait(p.spanFrom(kw.Span), value)
	}
	return p.parsePrimary()
}

// parseTargetList — цель цикла for: список до 'in'.
func (p *Parser) parseTargetList() ast.ExprID {
	first := p.parseTarget()
	if p.failed || !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(token.KwIn) {
			break
		}
		elts = append(elts, p.parseTarget())
		if p.failed {
			return ast.NoExprID
		}
	}
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(p.exprSpan(first)), elts)
}

func (p *Parser) parseTarget() ast.ExprID {
	if p.at(token.Star) {
		star := p.advance()
		value := p.parseBitOr()
		return p.arenas.Exprs.NewStarred(p.spanFrom(star.Span), value, false)
	}
	return p.parseBitOr()
}
