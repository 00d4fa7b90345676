package lexer

import (
	"pyplus/internal/diag"
	"pyplus/internal/token"
)

// Поддержка: 0, 1_000, 0b..., 0o..., 0x..., 1., .5, 1.0e-3, 2j.
// Неверные формы репортятся, токен становится Invalid, лексинг продолжается.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	ok := true

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = isOct
		case 'b', 'B':
			digit = isBin
		}
		if digit != nil {
			lx.cursor.Off += 2
			ok = lx.scanDigits(digit)
			return lx.finishNumber(start, token.IntLit, ok)
		}
	}

	if lx.cursor.Peek() != '.' {
		ok = lx.scanDigits(isDec)
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		if isDec(lx.cursor.Peek()) {
			ok = lx.scanDigits(isDec) && ok
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			lx.cursor.Bump()
			if next == '+' || next == '-' {
				lx.cursor.Bump()
			}
			kind = token.FloatLit
			ok = lx.scanDigits(isDec) && ok
		}
	}
	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
		kind = token.ImagLit
	}
	return lx.finishNumber(start, kind, ok)
}

// scanDigits читает цифры с одиночными '_' между ними.
func (lx *Lexer) scanDigits(digit func(byte) bool) bool {
	ok := true
	seen := false
	prevUnderscore := false
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			seen = true
			prevUnderscore = false
		case b == '_':
			if prevUnderscore {
				ok = false
			}
			prevUnderscore = true
		default:
			return ok && seen && !prevUnderscore
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) finishNumber(start Mark, kind token.Kind, ok bool) token.Token {
	// "12abc", "0x1g": хвост идентификатора делает литерал неверным
	if isIdentContinueByte(lx.cursor.Peek()) {
		ok = false
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !ok {
		lx.errorf(diag.LexBadNumber, sp, "invalid number literal "+quoteText(text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
