package translate

import (
	"strconv"
	"strings"

	"pyplus/internal/cpp"
	"pyplus/internal/diag"
	"pyplus/internal/source"
	"pyplus/internal/symbols"
	"pyplus/internal/trace"
)

// fallback сохраняет исходный текст оператора в комментарии с пометкой TODO
// и сообщает причину предупреждением TRN.
func (t *Translator) fallback(scope symbols.ScopeID, sp source.Span, indent int, ue *UnsupportedError) {
	t.pending = t.pending[:0]
	p := t.spanPos(sp)
	t.linesOf(scope).Put(&cpp.CodeLine{
		Start:      p.Line,
		End:        p.EndLine,
		EndCol:     p.EndCol,
		Indent:     indent,
		PreComment: "TODO: " + ue.Reason,
		Text:       blockComment(t.verbatim(p.Line, p.EndLine)),
		Verbatim:   true,
	})
	t.fallbacks++

	code := ue.Code
	if code == diag.UnknownCode {
		code = diag.TrnUnsupported
	}
	diag.ReportWarning(t.opts.Reporter, code, sp, ue.Error()).Emit()
	trace.Point(t.tracer, trace.ScopeStmt, "fallback", ue.Error(), t.parent, map[string]string{
		"line": strconv.Itoa(p.Line),
		"code": code.ID(),
	})
}

// blockComment заключает text в /* */. Текст, содержащий "*/", идёт
// построчно через //, иначе блок закрылся бы посреди текста.
func blockComment(text string) string {
	if !strings.Contains(text, "*/") {
		return "/*" + text + "*/"
	}
	return lineComments(strings.Split(text, "\n"))
}

func lineComments(lines []string) string {
	return "//" + strings.Join(lines, "\n//")
}

// verbatim — строки [from, to] без базового отступа первой строки.
func (t *Translator) verbatim(from, to int) string {
	base := leadingWidth(t.rawLine(from))
	out := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		raw := t.rawLine(n)
		cut := min(base, leadingWidth(raw))
		out = append(out, strings.TrimRight(raw[cut:], " \t"))
	}
	return strings.Join(out, "\n")
}
