package translate

import (
	"errors"
	"fmt"
	"strings"

	"pyplus/internal/ast"
	"pyplus/internal/cpp"
	"pyplus/internal/diag"
	"pyplus/internal/source"
	"pyplus/internal/symbols"
	"pyplus/internal/types"
)

// walkBody переводит список операторов. Несколько операторов на одной
// строке (через ';') делят ключ строки и уходят в откат одной группой.
func (t *Translator) walkBody(scope symbols.ScopeID, body []ast.StmtID, indent int) {
	for i := 0; i < len(body); {
		j := i + 1
		last := t.stmtPos(body[i]).EndLine
		for j < len(body) {
			p := t.stmtPos(body[j])
			if p.Line != last {
				break
			}
			last = p.EndLine
			j++
		}
		if j-i > 1 {
			sp := t.b.Stmts.Get(body[i]).Span.Cover(t.b.Stmts.Get(body[j-1]).Span)
			t.fallback(scope, sp, indent, &UnsupportedError{
				Reason: ReasonDefault, Code: diag.TrnUnsupported, Span: sp,
				Detail: "several statements on one line",
			})
		} else {
			t.stmt(scope, body[i], indent)
		}
		i = j
	}
}

// stmt — граница восстановления: любая ошибка перевода превращается
// в дословный откат этого оператора.
func (t *Translator) stmt(scope symbols.ScopeID, sid ast.StmtID, indent int) {
	if err := t.translateStmt(scope, sid, indent); err != nil {
		sp := t.b.Stmts.Get(sid).Span
		t.fallback(scope, sp, indent, asUnsupported(err, sp))
	}
}

func (t *Translator) translateStmt(scope symbols.ScopeID, sid ast.StmtID, indent int) error {
	st := t.b.Stmts.Get(sid)
	switch st.Kind {
	case ast.StmtImport, ast.StmtImportFrom:
		return nil
	case ast.StmtFunctionDef:
		if _, ok := t.defs[sid]; ok {
			return nil
		}
		if reason, ok := t.rejected[sid]; ok {
			return unsupported(diag.TrnHeaderRejected, st.Span, reason)
		}
		return unsupported(diag.TrnUnsupported, st.Span, "nested function definition")
	case ast.StmtBad:
		bad, _ := t.b.Stmts.Bad(sid)
		return unsupportedReason(ReasonUnparsed, diag.TrnUnparsed, st.Span, bad.Reason)
	case ast.StmtAssign:
		return t.assign(scope, sid, indent)
	case ast.StmtAugAssign:
		return t.augAssign(scope, sid, indent)
	case ast.StmtAnnAssign:
		return t.annAssign(scope, sid, indent)
	case ast.StmtIf:
		return t.ifStmt(scope, sid, indent, false)
	case ast.StmtWhile:
		return t.whileStmt(scope, sid, indent)
	case ast.StmtBreak:
		t.emit(scope, sid, indent, "break;")
		return nil
	case ast.StmtContinue:
		t.emit(scope, sid, indent, "continue;")
		return nil
	case ast.StmtReturn:
		return t.returnStmt(scope, sid, indent)
	case ast.StmtExpr:
		return t.exprStmt(scope, sid, indent)
	default:
		return unsupported(diag.TrnUnsupported, st.Span, st.Kind.String()+" statement")
	}
}

// emit кладёт строку простого оператора и фиксирует его include-ы.
func (t *Translator) emit(scope symbols.ScopeID, sid ast.StmtID, indent int, text string) *cpp.CodeLine {
	p := t.stmtPos(sid)
	cl := &cpp.CodeLine{Start: p.Line, End: p.EndLine, EndCol: p.EndCol, Indent: indent, Text: text}
	t.linesOf(scope).Put(cl)
	t.commit()
	return cl
}

func (t *Translator) assign(scope symbols.ScopeID, sid ast.StmtID, indent int) error {
	a, _ := t.b.Stmts.Assign(sid)
	sp := t.b.Stmts.Get(sid).Span
	if len(a.Targets) > 1 {
		return unsupportedReason(ReasonChained, diag.TrnChainedAssign, sp, "")
	}
	name, ok := t.b.Name(a.Targets[0])
	if !ok {
		return unsupported(diag.TrnUnsupported, sp, "assignment target is not a name")
	}
	text, tag, err := t.expr(scope, a.Value)
	if err != nil {
		return err
	}
	if err := t.store(scope, name, tag, t.stmtPos(sid).Line, sp); err != nil {
		return err
	}
	t.emit(scope, sid, indent, name+" = "+text+";")
	return nil
}

// store объявляет новую переменную или проверяет, что присваивание
// не меняет её тип. Допустимо только int в переменную float.
func (t *Translator) store(scope symbols.ScopeID, name string, tag types.Tag, line int, sp source.Span) error {
	id, err := t.tbl.FindSymbol(scope, name)
	if errors.Is(err, symbols.ErrNotFound) {
		if !tag.Declarable() {
			return unsupported(diag.TrnUnsupportedType, sp, fmt.Sprintf("%s value cannot be stored in %s", tag, name))
		}
		t.tbl.Declare(scope, name, line, tag)
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve %s: %w", name, err)
	}
	sym := t.tbl.Symbols.Get(id)
	switch {
	case sym.Role == symbols.RoleParam && (!sym.Bound || sym.Type == types.Auto):
		return nil
	case sym.Type == tag:
		return nil
	case sym.Type == types.Float && tag == types.Int:
		return nil
	}
	return unsupportedReason(ReasonTypeChange, diag.TrnTypeChange, sp,
		fmt.Sprintf("%s is %s, assigned %s", name, sym.Type, tag))
}

func (t *Translator) augAssign(scope symbols.ScopeID, sid ast.StmtID, indent int) error {
	a, _ := t.b.Stmts.AugAssign(sid)
	sp := t.b.Stmts.Get(sid).Span
	name, ok := t.b.Name(a.Target)
	if !ok {
		return unsupported(diag.TrnUnsupported, sp, "assignment target is not a name")
	}
	l, lt, err := t.name(scope, a.Target)
	if err != nil {
		return err
	}
	r, rt, err := t.expr(scope, a.Value)
	if err != nil {
		return err
	}
	text, tag, err := t.binaryText(a.Op, l, lt, r, rt, sp)
	if err != nil {
		return err
	}
	if err := t.store(scope, name, tag, t.stmtPos(sid).Line, sp); err != nil {
		return err
	}
	t.emit(scope, sid, indent, name+" = "+text+";")
	return nil
}

func (t *Translator) annAssign(scope symbols.ScopeID, sid ast.StmtID, indent int) error {
	a, _ := t.b.Stmts.AnnAssign(sid)
	sp := t.b.Stmts.Get(sid).Span
	name, ok := t.b.Name(a.Target)
	if !ok {
		return unsupported(diag.TrnUnsupported, sp, "annotated target is not a name")
	}
	tag, ok := t.annotationType(a.Annotation)
	if !ok || !tag.Declarable() {
		return unsupported(diag.TrnUnsupportedType, sp, "annotation has no C++ type")
	}
	if _, err := t.tbl.FindSymbol(scope, name); err == nil {
		return unsupported(diag.TrnUnsupported, sp, "redeclaration of "+name)
	}
	text := name + ";"
	if a.Value.IsValid() {
		v, vt, err := t.expr(scope, a.Value)
		if err != nil {
			return err
		}
		if vt != tag && (tag != types.Float || vt != types.Int) {
			return unsupportedReason(ReasonTypeChange, diag.TrnTypeChange, sp,
				fmt.Sprintf("%s is declared %s, assigned %s", name, tag, vt))
		}
		text = name + " = " + v + ";"
	}
	t.tbl.Declare(scope, name, t.stmtPos(sid).Line, tag)
	t.emit(scope, sid, indent, text)
	return nil
}

// returnStmt расширяет ячейку возврата функции типом значения.
func (t *Translator) returnStmt(scope symbols.ScopeID, sid ast.StmtID, indent int) error {
	r, _ := t.b.Stmts.Return(sid)
	sp := t.b.Stmts.Get(sid).Span
	if scope == t.entry {
		return unsupported(diag.TrnUnsupported, sp, "return outside of a function")
	}
	if !r.Value.IsValid() {
		t.emit(scope, sid, indent, "return;")
		return nil
	}
	text, tag, err := t.expr(scope, r.Value)
	if err != nil {
		return err
	}
	t.tbl.WidenReturn(scope, tag)
	t.emit(scope, sid, indent, "return "+text+";")
	return nil
}

func (t *Translator) exprStmt(scope symbols.ScopeID, sid ast.StmtID, indent int) error {
	e, _ := t.b.Stmts.Expr(sid)
	sp := t.b.Stmts.Get(sid).Span
	if c, ok := t.b.Exprs.Const(e.Value); ok {
		if c.Kind == ast.ConstString && !c.FString && t.isDocstring(sid) {
			cl := t.emit(scope, sid, indent, docComment(t.b.Str(c.Value)))
			cl.Verbatim = true
			return nil
		}
		if c.Kind == ast.ConstString {
			return unsupportedReason(ReasonUnusedString, diag.TrnUnusedValue, sp, "")
		}
		return unsupportedReason(ReasonUnusedConst, diag.TrnUnusedValue, sp, "")
	}
	if t.b.Exprs.Get(e.Value).Kind != ast.ExprCall {
		return unsupportedReason(ReasonUnusedValue, diag.TrnUnusedValue, sp, "")
	}
	text, _, err := t.expr(scope, e.Value)
	if err != nil {
		return err
	}
	t.emit(scope, sid, indent, text+";")
	return nil
}

func (t *Translator) isDocstring(sid ast.StmtID) bool {
	raw := strings.TrimSpace(t.rawLine(t.stmtPos(sid).Line))
	return strings.HasPrefix(raw, `"""`) || strings.HasPrefix(raw, `'''`)
}

// docComment — блочный комментарий, каждая строка без своих отступов.
func docComment(s string) string {
	parts := strings.Split(s, "\n")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return "/**/"
	}
	body := strings.Join(parts, "\n")
	if strings.Contains(body, "*/") {
		return lineComments(parts)
	}
	return "/*\n" + body + "\n*/"
}
