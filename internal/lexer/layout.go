package lexer

import (
	"fmt"

	"pyplus/internal/diag"
	"pyplus/internal/token"
)

// scanIndentation обрабатывает начало физической строки вне скобок:
// пустые и комментарные строки уходят в trivia, для первой строки с кодом
// сравнивается ширина отступа со стеком и ставятся в очередь Indent/Dedent.
func (lx *Lexer) scanIndentation() {
	for {
		start := lx.cursor.Mark()
		width := 0
		sawSpace, sawTab := false, false
	measure:
		for {
			switch lx.cursor.Peek() {
			case ' ':
				width++
				sawSpace = true
			case '\t':
				width += lx.opts.TabWidth - width%lx.opts.TabWidth
				sawTab = true
			case '\f':
				width = 0
			default:
				break measure
			}
			lx.cursor.Bump()
		}
		if lx.cursor.Off > uint32(start) {
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
		}

		switch lx.cursor.Peek() {
		case '\n':
			nl := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaBlankLine, Span: lx.cursor.SpanFrom(nl), Text: "\n"})
			continue
		case '#':
			lx.scanComment()
			if lx.cursor.Eat('\n') {
				continue
			}
			return
		}
		if lx.cursor.EOF() {
			return
		}

		if sawSpace && sawTab {
			lx.report(diag.LexTabSpaceMix, diag.SevWarning, lx.cursor.SpanFrom(start), "inconsistent use of tabs and spaces in indentation")
		}
		lx.applyIndent(width)
		return
	}
}

func (lx *Lexer) applyIndent(width int) {
	sp := lx.emptySpan()
	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: sp})
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
		}
		if cur := lx.indents[len(lx.indents)-1]; cur != width {
			// строка остаётся на уровне cur
			lx.errorf(diag.LexInconsistentDedent, sp,
				fmt.Sprintf("unindent to column %d does not match any outer indentation level", width))
		}
	}
}

// collectInlineTrivia собирает пробелы, комментарий до конца строки и
// продолжения строки через обратный слэш.
func (lx *Lexer) collectInlineTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch lx.cursor.Peek() {
		case ' ', '\t', '\f':
			for b := lx.cursor.Peek(); b == ' ' || b == '\t' || b == '\f'; b = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
		case '#':
			lx.scanComment()
		case '\\':
			lx.cursor.Bump()
			if !lx.cursor.Eat('\n') {
				lx.errorf(diag.LexBadContinuation, lx.cursor.SpanFrom(start), "unexpected character after line continuation character")
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaContinuation, Span: sp, Text: lx.text(sp)})
		default:
			return
		}
	}
}

// scanComment читает '#' до конца строки, не включая '\n'.
func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaComment, Span: sp, Text: lx.text(sp)})
}
