package lexer

import (
	"pyplus/internal/diag"
	"pyplus/internal/token"
)

type opEntry struct {
	text string
	kind token.Kind
}

// Порядок важен: длинные формы раньше коротких.
var (
	ops3 = []opEntry{
		{"**=", token.DoubleStarAssign}, {"//=", token.DoubleSlashAssign},
		{"<<=", token.ShlAssign}, {">>=", token.ShrAssign}, {"...", token.Ellipsis},
	}
	ops2 = []opEntry{
		{"**", token.DoubleStar}, {"//", token.DoubleSlash}, {"<<", token.Shl}, {">>", token.Shr},
		{"<=", token.LtEq}, {">=", token.GtEq}, {"==", token.EqEq}, {"!=", token.BangEq},
		{":=", token.Walrus}, {"->", token.Arrow},
		{"+=", token.PlusAssign}, {"-=", token.MinusAssign}, {"*=", token.StarAssign},
		{"/=", token.SlashAssign}, {"%=", token.PercentAssign}, {"@=", token.AtAssign},
		{"&=", token.AmpAssign}, {"|=", token.PipeAssign}, {"^=", token.CaretAssign},
	}
	ops1 = map[byte]token.Kind{
		'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
		'@': token.At, '&': token.Amp, '|': token.Pipe, '^': token.Caret, '~': token.Tilde,
		'<': token.Lt, '>': token.Gt, '=': token.Assign,
		'(': token.LParen, ')': token.RParen, '[': token.LBracket, ']': token.RBracket,
		'{': token.LBrace, '}': token.RBrace, ',': token.Comma, ':': token.Colon,
		';': token.Semicolon, '.': token.Dot,
	}
)

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range ops3 {
		if lx.try3(op.text[0], op.text[1], op.text[2]) {
			return lx.opToken(start, op.kind)
		}
	}
	for _, op := range ops2 {
		if lx.try2(op.text[0], op.text[1]) {
			return lx.opToken(start, op.kind)
		}
	}
	if k, ok := ops1[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		switch k {
		case token.LParen, token.LBracket, token.LBrace:
			lx.depth++
		case token.RParen, token.RBracket, token.RBrace:
			if lx.depth > 0 {
				lx.depth--
			}
		}
		return lx.opToken(start, k)
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errorf(diag.LexUnknownChar, sp, "invalid character "+quoteText(lx.text(sp)))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) opToken(start Mark, k token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
