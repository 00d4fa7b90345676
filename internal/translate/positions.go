package translate

import (
	"strings"

	"pyplus/internal/ast"
	"pyplus/internal/source"
)

// pos — позиция оператора: строки 1-based, столбцы 0-based байтовые,
// конечный столбец исключающий.
type pos struct {
	Line, Col       int
	EndLine, EndCol int
}

func (t *Translator) spanPos(sp source.Span) pos {
	start := t.file.Position(sp.Start)
	end := t.file.Position(sp.End)
	p := pos{
		Line:    int(start.Line),
		Col:     int(start.Col) - 1,
		EndLine: int(end.Line),
		EndCol:  int(end.Col) - 1,
	}
	// конец сразу за '\n' относится к предыдущей строке
	if p.EndCol == 0 && p.EndLine > p.Line {
		p.EndLine--
		p.EndCol = len(t.rawLine(p.EndLine))
	}
	return p
}

func (t *Translator) stmtPos(id ast.StmtID) pos {
	return t.spanPos(t.b.Stmts.Get(id).Span)
}

// headerPos — строка и столбец сразу после ':' заголовка составного оператора.
func (t *Translator) headerPos(id ast.StmtID) (line, col int) {
	st := t.b.Stmts.Get(id)
	if st.Header == 0 {
		p := t.spanPos(st.Span)
		return p.Line, p.EndCol
	}
	lc := t.file.Position(st.Header)
	return int(lc.Line), int(lc.Col) - 1
}

// rawLine — строка исходника, 1-based; за пределами — "".
func (t *Translator) rawLine(n int) string {
	if n <= 0 || n >= len(t.lines) {
		return ""
	}
	return t.lines[n]
}

func isCommentLine(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "#")
}

func isBlankLine(s string) bool {
	return strings.TrimSpace(s) == ""
}

// leadingWidth — длина ведущих пробелов и табов в байтах.
func leadingWidth(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
