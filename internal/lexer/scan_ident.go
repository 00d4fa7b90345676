package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"pyplus/internal/diag"
	"pyplus/internal/token"
)

// scanIdentKeywordOrString сканирует идентификатор; если это строковый
// префикс (r, b, u, f и их сочетания) и следом кавычка — строку.
// Не-ASCII идентификаторы приводятся к NFKC.
func (lx *Lexer) scanIdentKeywordOrString() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	ascii := true
	if sz == 0 || !(r < utf8RuneSelf && isIdentStartByte(byte(r)) || r >= utf8RuneSelf && isIdentStartRune(r)) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errorf(diag.LexUnknownChar, sp, "invalid character "+quoteText(lx.text(sp))+" in identifier")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	for {
		r, sz = lx.peekRune()
		if sz == 0 {
			break
		}
		if r < utf8RuneSelf {
			if !isIdentContinueByte(byte(r)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r) {
			break
		}
		ascii = false
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if q := lx.cursor.Peek(); (q == '"' || q == '\'') && isStringPrefix(text) {
		return lx.scanString(start)
	}

	if !ascii {
		text = norm.NFKC.String(text)
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	}
	return false
}

func quoteText(s string) string {
	return "'" + s + "'"
}
