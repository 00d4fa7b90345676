package parser

import (
	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/source"
	"pyplus/internal/token"
)

// parsePrimary: atom ('.' NAME | '(' args ')' | '[' slices ']')*.
func (p *Parser) parsePrimary() ast.ExprID {
	expr := p.parseAtom()
	for !p.failed {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected attribute name after '.'")
			if !ok {
				return ast.NoExprID
			}
			expr = p.arenas.Exprs.NewAttribute(p.spanFrom(p.exprSpan(expr)), expr, p.arenas.Strings.Intern(name.Text))
		case token.LParen:
			open := p.advance()
			args, keywords := p.parseCallArgs()
			if !p.closeBracket(open, token.RParen) {
				return ast.NoExprID
			}
			expr = p.arenas.Exprs.NewCall(p.spanFrom(p.exprSpan(expr)), expr, args, keywords)
		case token.LBracket:
			open := p.advance()
			index := p.parseSlices()
			if !p.closeBracket(open, token.RBracket) {
				return ast.NoExprID
			}
			expr = p.arenas.Exprs.NewSubscript(p.spanFrom(p.exprSpan(expr)), expr, index)
		default:
			return expr
		}
	}
	return ast.NoExprID
}

// closeBracket ожидает закрывающую скобку; при ошибке диагностика
// указывает на открывающую.
func (p *Parser) closeBracket(open token.Token, closing token.Kind) bool {
	if p.failed {
		return false
	}
	if p.eat(closing) {
		return true
	}
	var code diag.Code
	var what string
	switch closing {
	case token.RParen:
		code, what = diag.SynUnclosedParen, "'('"
	case token.RBracket:
		code, what = diag.SynUnclosedBracket, "'['"
	default:
		code, what = diag.SynUnclosedBrace, "'{'"
	}
	if p.at(token.EOF) || p.at(token.Newline) {
		p.failAt(code, open.Span, what+" was never closed")
		return false
	}
	p.fail(diag.SynUnexpectedToken, "unexpected "+describe(p.peek())+", expected '"+closing.String()+"'")
	return false
}

// parseCallArgs разбирает аргументы вызова до ')'. Позиционные после
// именованных запрещены; единственный аргумент может быть генератором без скобок.
func (p *Parser) parseCallArgs() ([]ast.ExprID, []ast.Keyword) {
	var args []ast.ExprID
	var keywords []ast.Keyword
	for !p.failed && !p.atOr(token.RParen, token.Newline, token.EOF) {
		start := p.peek()
		switch {
		case start.Kind == token.DoubleStar:
			p.advance()
			value := p.parseExpression()
			keywords = append(keywords, ast.Keyword{Name: source.NoStringID, Value: value, Span: p.spanFrom(start.Span)})
		case start.Kind == token.Star:
			p.advance()
			value := p.parseExpression()
			args = append(args, p.arenas.Exprs.NewStarred(p.spanFrom(start.Span), value, false))
		case start.Kind == token.Ident && p.peekN(1).Kind == token.Assign:
			p.advance()
			p.advance()
			value := p.parseExpression()
			keywords = append(keywords, ast.Keyword{
				Name:  p.arenas.Strings.Intern(start.Text),
				Value: value,
				Span:  p.spanFrom(start.Span),
			})
		default:
			value := p.parseNamedExpr()
			if p.failed {
				return nil, nil
			}
			if p.at(token.KwFor) || p.at(token.KwAsync) {
				value = p.parseComprehension(ast.CompGenerator, value, ast.NoExprID, p.exprSpan(value))
			}
			if len(keywords) > 0 {
				p.failAt(diag.SynUnexpectedToken, p.exprSpan(value), "positional argument follows keyword argument")
				return nil, nil
			}
			args = append(args, value)
		}
		if p.failed || !p.eat(token.Comma) {
			break
		}
	}
	return args, keywords
}

// parseSlices: slice (',' slice)*; несколько срезов дают Tuple.
func (p *Parser) parseSlices() ast.ExprID {
	first := p.parseSlice()
	if p.failed || !p.at(token.Comma) {
		return first
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(token.RBracket) {
			break
		}
		elts = append(elts, p.parseSlice())
		if p.failed {
			return ast.NoExprID
		}
	}
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(p.exprSpan(first)), elts)
}

func (p *Parser) parseSlice() ast.ExprID {
	start := p.diagSpan()
	lower := ast.NoExprID
	if !p.at(token.Colon) {
		lower = p.parseNamedExpr()
		if p.failed || !p.at(token.Colon) {
			return lower
		}
		start = p.exprSpan(lower)
	}
	p.advance()
	upper, step := ast.NoExprID, ast.NoExprID
	if !p.at(token.Colon) && !p.at(token.RBracket) && !p.at(token.Comma) {
		upper = p.parseExpression()
	}
	if p.eat(token.Colon) && !p.at(token.RBracket) && !p.at(token.Comma) {
		step = p.parseExpression()
	}
	return p.arenas.Exprs.NewSlice(p.spanFrom(start), lower, upper, step)
}

func (p *Parser) parseAtom() ast.ExprID {
	if p.failed {
		return ast.NoExprID
	}
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewName(tok.Span, p.arenas.Strings.Intern(tok.Text))
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ExprConstData{
			Kind:  ast.ConstBool,
			Bool:  tok.Kind == token.KwTrue,
			Value: p.arenas.Strings.Intern(tok.Text),
		})
	case token.KwNone:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ExprConstData{Kind: ast.ConstNone, Value: p.arenas.Strings.Intern("None")})
	case token.Ellipsis:
		p.advance()
		return p.arenas.Exprs.NewConst(tok.Span, ast.ExprConstData{Kind: ast.ConstEllipsis, Value: p.arenas.Strings.Intern("...")})
	case token.IntLit, token.FloatLit, token.ImagLit:
		p.advance()
		return p.numberConst(tok)
	case token.StringLit:
		return p.parseStrings()
	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()
	case token.Invalid:
		p.advance()
		p.failQuiet("invalid token")
		return ast.NoExprID
	}
	p.fail(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return ast.NoExprID
}

// parseParenAtom: () | (yield) | (expr) | (a, b) | (x for ...).
func (p *Parser) parseParenAtom() ast.ExprID {
	open := p.advance()
	if p.eat(token.RParen) {
		return p.arenas.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(open.Span), nil)
	}
	if p.at(token.KwYield) {
		inner := p.parseYield()
		if !p.closeBracket(open, token.RParen) {
			return ast.NoExprID
		}
		return inner
	}
	first := p.parseStarOrNamed()
	if p.failed {
		return ast.NoExprID
	}
	if p.at(token.KwFor) || p.at(token.KwAsync) {
		comp := p.parseComprehension(ast.CompGenerator, first, ast.NoExprID, open.Span)
		if !p.closeBracket(open, token.RParen) {
			return ast.NoExprID
		}
		return p.widen(comp, p.spanFrom(open.Span))
	}
	if !p.at(token.Comma) {
		if !p.closeBracket(open, token.RParen) {
			return ast.NoExprID
		}
		return first
	}
	elts := []ast.ExprID{first}
	for p.eat(token.Comma) {
		if p.at(token.RParen) {
			break
		}
		elts = append(elts, p.parseStarOrNamed())
		if p.failed {
			return ast.NoExprID
		}
	}
	if !p.closeBracket(open, token.RParen) {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, p.spanFrom(open.Span), elts)
}

func (p *Parser) parseStarOrNamed() ast.ExprID {
	if p.at(token.Star) {
		return p.parseStarExpression()
	}
	return p.parseNamedExpr()
}

func (p *Parser) parseListAtom() ast.ExprID {
	open := p.advance()
	if p.eat(token.RBracket) {
		return p.arenas.Exprs.NewSeq(ast.ExprList, p.spanFrom(open.Span), nil)
	}
	first := p.parseStarOrNamed()
	if p.failed {
		return ast.NoExprID
	}
	if p.at(token.KwFor) || p.at(token.KwAsync) {
		comp := p.parseComprehension(ast.CompList, first, ast.NoExprID, open.Span)
		if !p.closeBracket(open, token.RBracket) {
			return ast.NoExprID
		}
		return p.widen(comp, p.spanFrom(open.Span))
	}
	elts := p.parseSeqTail(first, token.RBracket)
	if !p.closeBracket(open, token.RBracket) {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewSeq(ast.ExprList, p.spanFrom(open.Span), elts)
}

func (p *Parser) parseSeqTail(first ast.ExprID, closing token.Kind) []ast.ExprID {
	elts := []ast.ExprID{first}
	for !p.failed && p.eat(token.Comma) {
		if p.at(closing) {
			break
		}
		elts = append(elts, p.parseStarOrNamed())
	}
	return elts
}

// parseBraceAtom: {} | {k: v, **d} | {a, b} | {k: v for ...} | {x for ...}.
func (p *Parser) parseBraceAtom() ast.ExprID {
	open := p.advance()
	if p.eat(token.RBrace) {
		return p.arenas.Exprs.NewDict(p.spanFrom(open.Span), nil, nil)
	}
	if p.at(token.DoubleStar) {
		return p.parseDictTail(open, nil, nil)
	}
	first := p.parseStarOrNamed()
	if p.failed {
		return ast.NoExprID
	}
	if p.eat(token.Colon) {
		value := p.parseExpression()
		if p.failed {
			return ast.NoExprID
		}
		if p.at(token.KwFor) || p.at(token.KwAsync) {
			comp := p.parseComprehension(ast.CompDict, first, value, open.Span)
			if !p.closeBracket(open, token.RBrace) {
				return ast.NoExprID
			}
			return p.widen(comp, p.spanFrom(open.Span))
		}
		return p.parseDictTail(open, []ast.ExprID{first}, []ast.ExprID{value})
	}
	if p.at(token.KwFor) || p.at(token.KwAsync) {
		comp := p.parseComprehension(ast.CompSet, first, ast.NoExprID, open.Span)
		if !p.closeBracket(open, token.RBrace) {
			return ast.NoExprID
		}
		return p.widen(comp, p.spanFrom(open.Span))
	}
	elts := p.parseSeqTail(first, token.RBrace)
	if !p.closeBracket(open, token.RBrace) {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewSeq(ast.ExprSet, p.spanFrom(open.Span), elts)
}

// parseDictTail дочитывает пары словаря; первая пара (если есть) уже разобрана.
func (p *Parser) parseDictTail(open token.Token, keys, values []ast.ExprID) ast.ExprID {
	needComma := len(keys) > 0
	for !p.failed && !p.at(token.RBrace) {
		if needComma {
			if !p.eat(token.Comma) {
				break
			}
			if p.at(token.RBrace) {
				break
			}
		}
		needComma = true
		if p.eat(token.DoubleStar) {
			keys = append(keys, ast.NoExprID)
			values = append(values, p.parseBitOr())
			continue
		}
		key := p.parseExpression()
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after dictionary key"); !ok {
			return ast.NoExprID
		}
		keys = append(keys, key)
		values = append(values, p.parseExpression())
	}
	if !p.closeBracket(open, token.RBrace) {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewDict(p.spanFrom(open.Span), keys, values)
}

// parseComprehension: ('async'? 'for' targets 'in' disjunction ('if' disjunction)*)+.
func (p *Parser) parseComprehension(kind ast.ComprehensionKind, elt, value ast.ExprID, start source.Span) ast.ExprID {
	var gens []ast.Generator
	for !p.failed && (p.at(token.KwFor) || p.at(token.KwAsync)) {
		async := p.eat(token.KwAsync)
		if _, ok := p.expect(token.KwFor, diag.SynUnexpectedToken, "expected 'for' after 'async'"); !ok {
			return ast.NoExprID
		}
		target := p.parseTargetList()
		p.checkTarget(target, true)
		if _, ok := p.expect(token.KwIn, diag.SynExpectIn, "expected 'in' in comprehension"); !ok {
			return ast.NoExprID
		}
		gen := ast.Generator{Target: target, Iter: p.parseDisjunction(), Async: async}
		for !p.failed && p.eat(token.KwIf) {
			gen.Ifs = append(gen.Ifs, p.parseDisjunction())
		}
		gens = append(gens, gen)
	}
	if p.failed {
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewComprehension(p.spanFrom(start), ast.ExprComprehensionData{
		Kind:       kind,
		Elt:        elt,
		Value:      value,
		Generators: gens,
	})
}

// widen расширяет span узла до охватывающих скобок.
func (p *Parser) widen(id ast.ExprID, sp source.Span) ast.ExprID {
	if ex := p.arenas.Exprs.Get(id); ex != nil {
		ex.Span = sp
	}
	return id
}
