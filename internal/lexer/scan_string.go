package lexer

import (
	"pyplus/internal/diag"
	"pyplus/internal/token"
)

// scanString читает строковый литерал начиная с кавычки; префикс (если был)
// уже прочитан с метки start. Token.Text — исходный срез с префиксом и кавычками.
// Обычная строка не может пересекать конец строки, тройная — может.
func (lx *Lexer) scanString(start Mark) token.Token {
	quote := lx.cursor.Peek()
	triple := lx.cursor.PeekAt(1) == quote && lx.cursor.PeekAt(2) == quote
	if triple {
		lx.cursor.Off += 3
	} else {
		lx.cursor.Bump()
	}

	for {
		if lx.cursor.EOF() {
			return lx.unterminated(start)
		}
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			// экранирование пропускает следующий байт и в raw-строках
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case b == '\n' && !triple:
			return lx.unterminated(start)
		case b == quote && !triple:
			lx.cursor.Bump()
			return lx.stringToken(start)
		case b == quote && lx.try3(quote, quote, quote):
			return lx.stringToken(start)
		default:
			lx.cursor.Bump()
		}
	}
}

func (lx *Lexer) stringToken(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) unterminated(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errorf(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
