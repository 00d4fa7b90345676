package lexer

import (
	"pyplus/internal/source"
	"pyplus/internal/token"
)

// Lexer turns a Python source file into significant tokens plus the layout
// tokens Newline, Indent and Dedent. Comments and whitespace are kept as
// leading trivia of the following token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	look    *token.Token  // 1 элементный буфер для Peek
	pending []token.Token // Indent/Dedent/Newline, ожидающие выдачи
	hold    []token.Trivia

	indents     []int // стек ширин отступа, indents[0] == 0
	depth       int   // глубина вложенности (), [], {}
	atLineStart bool
	lineHasTok  bool // на текущей логической строке уже был значимый токен
	done        bool
}

func New(file *source.File, opts Options) *Lexer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Next возвращает следующий токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	for {
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			return tok
		}
		if lx.done {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}
		if lx.atLineStart && lx.depth == 0 {
			lx.atLineStart = false
			lx.scanIndentation()
			continue
		}

		lx.collectInlineTrivia()

		if lx.cursor.EOF() {
			lx.finish()
			continue
		}

		if lx.cursor.Peek() == '\n' {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.depth > 0 {
				lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: lx.cursor.SpanFrom(start), Text: "\n"})
				continue
			}
			lx.atLineStart = true
			if !lx.lineHasTok {
				continue
			}
			lx.lineHasTok = false
			tok := token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(start), Text: "\n"}
			tok.Leading = lx.takeHold()
			return tok
		}

		tok := lx.scanToken()
		tok.Leading = lx.takeHold()
		lx.lineHasTok = true
		return tok
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer, EOF included.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentKeywordOrString()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"' || ch == '\'':
		return lx.scanString(lx.cursor.Mark())
	default:
		return lx.scanOperatorOrPunct()
	}
}

// finish закрывает последнюю строку и все открытые отступы.
func (lx *Lexer) finish() {
	sp := lx.emptySpan()
	if lx.lineHasTok {
		lx.lineHasTok = false
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: sp, Leading: lx.takeHold()})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
	}
	eof := token.Token{Kind: token.EOF, Span: sp, Leading: lx.takeHold()}
	lx.pending = append(lx.pending, eof)
	lx.done = true
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
