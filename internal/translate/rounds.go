package translate

import (
	"slices"

	"pyplus/internal/symbols"
	"pyplus/internal/types"
)

// maxRounds ограничивает число тихих проходов; на практике хватает трёх.
const maxRounds = 8

// seed — итоговые ячейки одной функции после прохода.
type seed struct {
	params   []types.Tag
	ret      types.Tag
	retBound bool
}

func (s seed) equal(o seed) bool {
	return s.ret == o.ret && s.retBound == o.retBound && slices.Equal(s.params, o.params)
}

func (t *Translator) snapshot() map[symbols.ScopeID]seed {
	out := make(map[symbols.ScopeID]seed, len(t.tbl.Functions()))
	for _, id := range t.tbl.Functions() {
		sc := t.tbl.Scopes.Get(id)
		s := seed{params: make([]types.Tag, len(sc.Params))}
		for i, pid := range sc.Params {
			s.params[i] = t.tbl.Type(pid)
		}
		ret := t.tbl.Symbols.Get(sc.Return)
		s.ret, s.retBound = ret.Type, ret.Bound
		out[id] = s
	}
	return out
}

// applySeed подставляет в несвязанные параметры типы прошлого прохода.
// Ячейка остаётся несвязанной: первый вызов этого прохода перезапишет её.
func (t *Translator) applySeed(id symbols.ScopeID) {
	s, ok := t.seeds[id]
	if !ok {
		return
	}
	sc := t.tbl.Scopes.Get(id)
	for i, pid := range sc.Params {
		sym := t.tbl.Symbols.Get(pid)
		if !sym.Bound && i < len(s.params) {
			sym.Type = s.params[i]
		}
	}
}

// callReturn — тип результата вызова fn. Пока тело в этом проходе не
// обойдено, берётся ячейка прошлого прохода, иначе auto.
func (t *Translator) callReturn(fn symbols.ScopeID) types.Tag {
	ret := t.tbl.Symbols.Get(t.tbl.Scopes.Get(fn).Return)
	if ret.Bound || t.analyzed[fn] {
		return ret.Type
	}
	if s, ok := t.seeds[fn]; ok && s.retBound {
		return s.ret
	}
	return types.Auto
}
