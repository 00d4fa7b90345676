package lexer

import (
	"pyplus/internal/diag"
	"pyplus/internal/source"
)

// DefaultTabWidth is the column a tab advances to a multiple of.
const DefaultTabWidth = 8

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	TabWidth int           // 0 → DefaultTabWidth
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

func (lx *Lexer) errorf(code diag.Code, sp source.Span, msg string) {
	lx.report(code, diag.SevError, sp, msg)
}
