package translate

import (
	"strings"

	"pyplus/internal/ast"
	"pyplus/internal/cpp"
	"pyplus/internal/diag"
	"pyplus/internal/symbols"
)

// ifStmt переводит if/elif/else. Всё, что может провалить оператор
// целиком, проверяется до первой выведенной строки.
func (t *Translator) ifStmt(scope symbols.ScopeID, sid ast.StmtID, indent int, elseIf bool) error {
	d, _ := t.b.Stmts.If(sid)
	sp := t.b.Stmts.Get(sid).Span
	if t.bodyOnHeaderLine(sid, d.Body) {
		return unsupported(diag.TrnUnsupported, sp, "body on the header line")
	}

	elif := ast.NoStmtID
	elseLine, elseCol := 0, 0
	if len(d.Orelse) > 0 {
		if len(d.Orelse) == 1 && t.isElif(d.Orelse[0]) {
			elif = d.Orelse[0]
		} else {
			line, col, ok := t.findElse(d.Orelse[0])
			if !ok {
				return unsupportedReason(ReasonNoElse, diag.TrnElseNotFound, sp, "")
			}
			if line == t.stmtPos(d.Orelse[0]).Line {
				return unsupported(diag.TrnUnsupported, sp, "else body on the else line")
			}
			elseLine, elseCol = line, col
		}
	}

	test, _, err := t.expr(scope, d.Test)
	if err != nil {
		return err
	}
	head := "if ("
	if elseIf {
		head = "else if ("
	}
	start := t.emitHeader(scope, sid, indent, head+test+")\n{")
	t.walkBody(scope, d.Body, indent+1)
	t.closeBrace(scope, start, t.lastLine(d.Body, start), indent)

	switch {
	case elif.IsValid():
		if err := t.ifStmt(scope, elif, indent, true); err != nil {
			esp := t.b.Stmts.Get(elif).Span
			t.fallback(scope, esp, indent, asUnsupported(err, esp))
		}
	case elseLine > 0:
		t.linesOf(scope).Put(&cpp.CodeLine{
			Start: elseLine, End: elseLine, EndCol: elseCol,
			Indent: indent, Text: "else\n{",
		})
		t.walkBody(scope, d.Orelse, indent+1)
		t.closeBrace(scope, elseLine, t.lastLine(d.Orelse, elseLine), indent)
	}
	return nil
}

func (t *Translator) whileStmt(scope symbols.ScopeID, sid ast.StmtID, indent int) error {
	d, _ := t.b.Stmts.While(sid)
	sp := t.b.Stmts.Get(sid).Span
	if len(d.Orelse) > 0 {
		return unsupported(diag.TrnUnsupported, sp, "while loop with an else clause")
	}
	if t.bodyOnHeaderLine(sid, d.Body) {
		return unsupported(diag.TrnUnsupported, sp, "body on the header line")
	}
	test, _, err := t.expr(scope, d.Test)
	if err != nil {
		return err
	}
	start := t.emitHeader(scope, sid, indent, "while ("+test+")\n{")
	t.walkBody(scope, d.Body, indent+1)
	t.closeBrace(scope, start, t.lastLine(d.Body, start), indent)
	return nil
}

// emitHeader кладёт заголовок с открывающей скобкой; inline-комментарий
// ищется после ':' заголовка.
func (t *Translator) emitHeader(scope symbols.ScopeID, sid ast.StmtID, indent int, text string) int {
	p := t.stmtPos(sid)
	line, col := t.headerPos(sid)
	t.linesOf(scope).Put(&cpp.CodeLine{Start: p.Line, End: line, EndCol: col, Indent: indent, Text: text})
	t.commit()
	return p.Line
}

// closeBrace дописывает '}' к последней строке кода в [from, to].
func (t *Translator) closeBrace(scope symbols.ScopeID, from, to, indent int) {
	if cl, ok := t.linesOf(scope).LastIn(from, to); ok {
		cl.Close(indent, leadingWidth(t.rawLine(from)))
	}
}

func (t *Translator) lastLine(body []ast.StmtID, fallback int) int {
	if len(body) == 0 {
		return fallback
	}
	return t.stmtPos(body[len(body)-1]).EndLine
}

func (t *Translator) bodyOnHeaderLine(sid ast.StmtID, body []ast.StmtID) bool {
	if len(body) == 0 {
		return false
	}
	line, _ := t.headerPos(sid)
	return t.stmtPos(body[0]).Line == line
}

// isElif: вложенный If из цепочки elif начинается с ключевого слова elif.
func (t *Translator) isElif(sid ast.StmtID) bool {
	st := t.b.Stmts.Get(sid)
	if st.Kind != ast.StmtIf {
		return false
	}
	return strings.HasPrefix(t.file.Slice(st.Span), "elif")
}

// findElse восстанавливает строку `else:` по исходнику: её нет в дереве.
// Сканирование идёт вверх от первой строки тела else, пропуская
// пустые строки и комментарии.
func (t *Translator) findElse(first ast.StmtID) (line, col int, ok bool) {
	p := t.stmtPos(first)
	raw := t.rawLine(p.Line)
	if p.Col <= len(raw) {
		if c, ok := elseColon(raw[:p.Col]); ok {
			return p.Line, c, true
		}
	}
	for n := p.Line - 1; n >= 1; n-- {
		raw := t.rawLine(n)
		if isBlankLine(raw) || isCommentLine(raw) {
			continue
		}
		if c, ok := elseColon(raw); ok {
			return n, c, true
		}
		return 0, 0, false
	}
	return 0, 0, false
}

// elseColon — столбец сразу после ':' в строке вида `else:`.
func elseColon(raw string) (int, bool) {
	rest := strings.TrimLeft(raw, " \t")
	if !strings.HasPrefix(rest, "else") {
		return 0, false
	}
	rest = strings.TrimLeft(rest[len("else"):], " \t")
	if !strings.HasPrefix(rest, ":") {
		return 0, false
	}
	return len(raw) - len(rest) + 1, true
}
