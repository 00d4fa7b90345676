package parser

import (
	"pyplus/internal/diag"
	"pyplus/internal/source"
	"pyplus/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	if !tok.IsLayout() && tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat съедает токен вида k, если он следующий.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// diagSpan — лучший span для диагностики: для layout-токенов и EOF
// используем позицию сразу после последнего значимого токена.
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.IsLayout() || peek.Kind == token.EOF {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и помечаем оператор как сломанный.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan(), Text: p.peek().Text}, false
}

// fail репортит первую ошибку оператора; последующие подавляются до восстановления.
func (p *Parser) fail(code diag.Code, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	p.failMsg = msg
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) failAt(code diag.Code, sp source.Span, msg string) {
	if p.failed {
		return
	}
	p.failed = true
	p.failMsg = msg
	p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Newline:
		return "end of line"
	case token.Indent:
		return "indent"
	case token.Dedent:
		return "dedent"
	case token.EOF:
		return "end of file"
	}
	return "'" + tok.Text + "'"
}

// failQuiet помечает оператор сломанным без собственной диагностики:
// лексер уже сообщил об ошибке в токене.
func (p *Parser) failQuiet(msg string) {
	if p.failed {
		return
	}
	p.failed = true
	p.failMsg = msg
	p.opts.CurrentErrors++
}
