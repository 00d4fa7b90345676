package parser

import (
	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/token"
)

// parseParams разбирает список параметров def (closing = ')') или lambda
// (closing = ':'); annotations разрешены только у def.
func (p *Parser) parseParams(closing token.Kind, annotations bool) ast.Params {
	var params ast.Params
	kwOnly := false
	seenDefault := false

	for !p.at(closing) && !p.failed {
		switch {
		case p.at(token.Slash):
			tok := p.advance()
			if params.HasPosSep || kwOnly || len(params.Args) == 0 {
				p.failAt(diag.SynBadParameters, tok.Span, "'/' must follow at least one positional parameter")
				return params
			}
			params.HasPosSep = true
			params.PosOnly = append(params.PosOnly, params.Args...)
			params.Args = nil

		case p.at(token.Star):
			tok := p.advance()
			if kwOnly {
				p.failAt(diag.SynBadParameters, tok.Span, "'*' may appear only once")
				return params
			}
			kwOnly = true
			if p.at(token.Ident) {
				prm := p.parseParam(annotations, false)
				params.Vararg = &prm
			} else {
				params.BareStar = true
			}

		case p.at(token.DoubleStar):
			p.advance()
			prm := p.parseParam(annotations, false)
			params.Kwarg = &prm
			p.eat(token.Comma)
			if !p.at(closing) {
				p.fail(diag.SynBadParameters, "'**' parameter must be last")
			}
			return params

		default:
			prm := p.parseParam(annotations, true)
			if p.failed {
				return params
			}
			switch {
			case kwOnly:
				params.KwOnly = append(params.KwOnly, prm)
			case prm.Default.IsValid():
				seenDefault = true
				params.Args = append(params.Args, prm)
			case seenDefault:
				p.failAt(diag.SynBadParameters, prm.Span, "non-default parameter follows default parameter")
				return params
			default:
				params.Args = append(params.Args, prm)
			}
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	if params.BareStar && len(params.KwOnly) == 0 && !p.failed {
		p.fail(diag.SynBadParameters, "named parameters must follow bare '*'")
	}
	return params
}

func (p *Parser) parseParam(annotations, defaults bool) ast.Param {
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name, got "+describe(p.peek()))
	prm := ast.Param{Span: name.Span, Annotation: ast.NoExprID, Default: ast.NoExprID}
	if !ok {
		return prm
	}
	prm.Name = p.arenas.Strings.Intern(name.Text)
	if annotations && p.eat(token.Colon) {
		prm.Annotation = p.parseExpression()
	}
	if defaults && p.eat(token.Assign) {
		prm.Default = p.parseExpression()
	}
	prm.Span = p.spanFrom(name.Span)
	return prm
}
