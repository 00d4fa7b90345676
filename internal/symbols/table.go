// Package symbols хранит таблицу символов транслятора: арены областей
// и символов, реестр функций в порядке регистрации.
package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"pyplus/internal/types"
)

var (
	// ErrNotFound — имя не объявлено в области. Это сигнал для ветвления
	// «объявить или присвоить», а не ошибка пользователя.
	ErrNotFound = errors.New("symbol not found")
	// ErrDuplicate — функция с таким именем уже зарегистрирована.
	ErrDuplicate = errors.New("duplicate function")
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol arenas and the function registry.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols

	funcs map[string]ScopeID
	order []ScopeID
}

func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		funcs:   make(map[string]ScopeID),
	}
}

// ParamSpec описывает параметр при регистрации заголовка.
type ParamSpec struct {
	Name    string
	Type    types.Tag
	Bound   bool
	Default string
}

// NewFunction создаёт область функции с параметрами и ячейкой возврата.
// Entry-функция не попадает в реестр вызываемых.
func (t *Table) NewFunction(name string, line, end int, params []ParamSpec, ret types.Tag, retBound, entry bool) (ScopeID, error) {
	if !entry {
		if _, dup := t.funcs[name]; dup {
			return NoScopeID, fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
	}
	id := t.Scopes.New(Scope{Name: name, Line: line, End: end, Entry: entry})
	sc := t.Scopes.Get(id)
	for _, p := range params {
		sym := t.Symbols.New(Symbol{
			Name:    p.Name,
			Line:    line,
			Role:    RoleParam,
			Type:    p.Type,
			Bound:   p.Bound,
			Default: p.Default,
		})
		sc.Params = append(sc.Params, sym)
		sc.byName[p.Name] = sym
		if p.Default == "" {
			sc.Required++
		}
	}
	sc.Return = t.Symbols.New(Symbol{Name: name, Line: line, Role: RoleReturn, Type: ret, Bound: retBound})
	if !entry {
		t.funcs[name] = id
		t.order = append(t.order, id)
	}
	return id, nil
}

// Function ищет зарегистрированную функцию по имени.
func (t *Table) Function(name string) (ScopeID, bool) {
	id, ok := t.funcs[name]
	return id, ok
}

// Functions — зарегистрированные функции в порядке регистрации.
func (t *Table) Functions() []ScopeID { return t.order }
