package symbols

import (
	"fmt"

	"pyplus/internal/types"
)

// FindSymbol ищет имя сначала среди параметров, затем среди локальных.
func (t *Table) FindSymbol(scope ScopeID, name string) (SymbolID, error) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return NoSymbolID, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if id, ok := sc.byName[name]; ok {
		return id, nil
	}
	return NoSymbolID, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Declare объявляет локальную переменную с уже известным типом.
func (t *Table) Declare(scope ScopeID, name string, line int, tag types.Tag) SymbolID {
	sc := t.Scopes.Get(scope)
	id := t.Symbols.New(Symbol{Name: name, Line: line, Role: RoleLocal, Type: tag, Bound: true})
	sc.Locals = append(sc.Locals, id)
	sc.byName[name] = id
	return id
}

// Type читает текущее значение ячейки.
func (t *Table) Type(id SymbolID) types.Tag {
	if sym := t.Symbols.Get(id); sym != nil {
		return sym.Type
	}
	return types.Auto
}

// UpdateParameterTypes расширяет типы параметров типами аргументов вызова.
// Лишние аргументы игнорируются; проверка арности — забота вызывающего.
// Повторный вызов с теми же типами ничего не меняет. Аргумент auto
// ещё не выведен и ячейку не трогает.
func (t *Table) UpdateParameterTypes(scope ScopeID, args []types.Tag) {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return
	}
	for i, tag := range args {
		if i >= len(sc.Params) {
			return
		}
		if tag == types.Auto {
			continue
		}
		t.Symbols.Widen(sc.Params[i], tag)
	}
}

// WidenReturn учитывает тип очередного `return value`.
func (t *Table) WidenReturn(scope ScopeID, tag types.Tag) types.Tag {
	sc := t.Scopes.Get(scope)
	if sc == nil {
		return types.Auto
	}
	return t.Symbols.Widen(sc.Return, tag)
}
