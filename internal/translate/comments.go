package translate

import (
	"strings"

	"github.com/sirkon/rbtree"

	"pyplus/internal/cpp"
	"pyplus/internal/symbols"
)

// lineRange — строки одной функции [start, end].
type lineRange struct {
	start, end int
	scope      symbols.ScopeID
}

// Cmp упорядочивает непересекающиеся диапазоны; пересечение считается
// совпадением, поэтому вставка точки возвращает содержащий её диапазон.
func (r *lineRange) Cmp(other *lineRange) int {
	if r.end < other.start {
		return -1
	}
	if r.start > other.end {
		return 1
	}
	return 0
}

// enclosing ищет функцию, в диапазон которой попадает строка n. Точка
// вставляется в дерево; если дерево вернуло другой элемент, это он.
func enclosing(ranges *rbtree.Tree[*lineRange], n int) (*lineRange, bool) {
	point := &lineRange{start: n, end: n}
	r := ranges.InsertReturn(point)
	if r == point {
		ranges.Delete(point)
		return nil, false
	}
	return r, true
}

// attachComments возвращает комментарии исходника в вывод: inline на
// строках, занятых операторами, и отдельные строки в остальных местах.
func (t *Translator) attachComments() {
	owned := make(map[int]bool)
	for _, fn := range t.funcs {
		for _, cl := range fn.Lines.Sorted() {
			for n := cl.Start; n <= cl.End; n++ {
				owned[n] = true
			}
			if !cl.Verbatim && cl.Text != "" {
				cl.Comment = t.inlineComment(cl)
			}
		}
	}

	ranges := rbtree.New[*lineRange]()
	for _, id := range t.tbl.Functions() {
		sc := t.tbl.Scopes.Get(id)
		ranges.InsertReturn(&lineRange{start: sc.Line, end: sc.End, scope: id})
	}

	for n := 1; n < len(t.lines); n++ {
		if owned[n] || !isCommentLine(t.lines[n]) {
			continue
		}
		text := commentText(t.lines[n])
		if text == "" {
			continue
		}
		cl := &cpp.CodeLine{Start: n, End: n, Comment: text}
		if r, ok := enclosing(ranges, n); ok {
			cl.Indent = 1
			t.putComment(r.scope, r.start, cl)
			continue
		}
		cl.Indent = 2
		t.putComment(t.entry, 0, cl)
	}
}

// putComment кладёт отдельный комментарий. Если предыдущая строка кода
// закрывает блоки, в которые комментарий входит по отступу, их скобки
// переезжают за комментарий.
func (t *Translator) putComment(scope symbols.ScopeID, from int, cl *cpp.CodeLine) {
	lines := t.linesOf(scope)
	if prev, ok := lines.LastIn(from, cl.Start-1); ok {
		cl.Tail = prev.SplitTail(leadingWidth(t.rawLine(cl.Start)))
	}
	lines.Put(cl)
}

func (t *Translator) inlineComment(cl *cpp.CodeLine) string {
	raw := t.rawLine(cl.End)
	if cl.EndCol < 0 || cl.EndCol > len(raw) {
		return ""
	}
	rest := strings.TrimSpace(raw[cl.EndCol:])
	if !strings.HasPrefix(rest, "#") {
		return ""
	}
	return commentText(rest)
}

// commentText снимает маркер и один пробел за ним.
func commentText(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	return strings.TrimRight(strings.TrimPrefix(s, " "), " \t")
}
