package translate

import (
	"pyplus/internal/cpp"
	"pyplus/internal/symbols"
	"pyplus/internal/types"
)

// finalize дописывает типы объявлений и сигнатуры из итоговых ячеек
// таблицы символов. До этого момента типы могли расширяться.
func (t *Translator) finalize() {
	for id, fn := range t.funcs {
		sc := t.tbl.Scopes.Get(id)
		for _, sid := range sc.Locals {
			sym := t.tbl.Symbols.Get(sid)
			cl, ok := fn.Lines.Get(sym.Line)
			if !ok {
				continue
			}
			cl.Text = sym.Type.CppName() + " " + cl.Text
			t.noteType(sym.Type)
		}

		fn.Params = fn.Params[:0]
		for _, pid := range sc.Params {
			sym := t.tbl.Symbols.Get(pid)
			fn.Params = append(fn.Params, cpp.Param{Name: sym.Name, Type: sym.Type, Default: sym.Default})
			t.noteType(sym.Type)
		}
		fn.Return = t.returnType(sc)
		t.noteType(fn.Return)
		fn.Invalidate()
	}
}

func (t *Translator) returnType(sc *symbols.Scope) types.Tag {
	if sc.Entry {
		return types.Int
	}
	ret := t.tbl.Symbols.Get(sc.Return)
	if !ret.Bound || ret.Type == types.None {
		return types.Void
	}
	return ret.Type
}

func (t *Translator) noteType(tag types.Tag) {
	if tag == types.String {
		t.out.AddInclude("string")
	}
}
