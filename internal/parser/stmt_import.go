package parser

import (
	"strings"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/source"
	"pyplus/internal/token"
)

// parseDottedName читает NAME ('.' NAME)*.
func (p *Parser) parseDottedName() (string, source.Span, bool) {
	first, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name, got "+describe(p.peek()))
	if !ok {
		return "", first.Span, false
	}
	parts := []string{first.Text}
	sp := first.Span
	for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
		p.advance()
		part := p.advance()
		parts = append(parts, part.Text)
		sp = sp.Cover(part.Span)
	}
	return strings.Join(parts, "."), sp, true
}

func (p *Parser) parseAsName() source.StringID {
	if !p.eat(token.KwAs) {
		return source.NoStringID
	}
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after 'as'")
	if !ok {
		return source.NoStringID
	}
	return p.arenas.Strings.Intern(name.Text)
}

func (p *Parser) parseImport() ast.StmtID {
	kw := p.advance()
	var names []ast.Alias
	for {
		name, sp, ok := p.parseDottedName()
		if !ok {
			return ast.NoStmtID
		}
		alias := ast.Alias{Name: p.arenas.Strings.Intern(name), AsName: p.parseAsName(), Span: sp}
		alias.Span = p.spanFrom(sp)
		names = append(names, alias)
		if !p.eat(token.Comma) {
			break
		}
	}
	return p.arenas.Stmts.NewImport(p.spanFrom(kw.Span), names)
}

func (p *Parser) parseImportFrom() ast.StmtID {
	kw := p.advance()
	level := 0
	for p.atOr(token.Dot, token.Ellipsis) {
		if p.advance().Kind == token.Ellipsis {
			level += 3
		} else {
			level++
		}
	}
	module := source.NoStringID
	if p.at(token.Ident) {
		name, _, ok := p.parseDottedName()
		if !ok {
			return ast.NoStmtID
		}
		module = p.arenas.Strings.Intern(name)
	} else if level == 0 {
		p.fail(diag.SynExpectIdentifier, "expected module name, got "+describe(p.peek()))
		return ast.NoStmtID
	}
	if _, ok := p.expect(token.KwImport, diag.SynUnexpectedToken, "expected 'import', got "+describe(p.peek())); !ok {
		return ast.NoStmtID
	}

	var names []ast.Alias
	if star := p.peek(); star.Kind == token.Star {
		p.advance()
		names = append(names, ast.Alias{Name: p.arenas.Strings.Intern("*"), Span: star.Span})
		return p.arenas.Stmts.NewImportFrom(p.spanFrom(kw.Span), ast.StmtImportFromData{Module: module, Level: level, Names: names})
	}
	paren := p.eat(token.LParen)
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name to import, got "+describe(p.peek()))
		if !ok {
			return ast.NoStmtID
		}
		names = append(names, ast.Alias{Name: p.arenas.Strings.Intern(name.Text), AsName: p.parseAsName(), Span: p.spanFrom(name.Span)})
		if !p.eat(token.Comma) {
			break
		}
		if paren && p.at(token.RParen) {
			break
		}
	}
	if paren {
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close import list"); !ok {
			return ast.NoStmtID
		}
	}
	return p.arenas.Stmts.NewImportFrom(p.spanFrom(kw.Span), ast.StmtImportFromData{Module: module, Level: level, Names: names})
}
