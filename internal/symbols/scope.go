package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Scope — область одной функции: параметры в порядке объявления,
// локальные переменные и ячейка возвращаемого типа.
type Scope struct {
	Name   string
	Line   int // строка def
	End    int // последняя строка тела
	Params []SymbolID
	Locals []SymbolID
	Return SymbolID
	// Required — число параметров без значения по умолчанию.
	Required int
	Entry    bool

	byName map[string]SymbolID
}

// Scopes — арена областей.
type Scopes struct {
	data []Scope
}

func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 8
	}
	return &Scopes{data: make([]Scope, 1, capacity+1)}
}

func (s *Scopes) New(sc Scope) ScopeID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	if sc.byName == nil {
		sc.byName = make(map[string]SymbolID)
	}
	s.data = append(s.data, sc)
	return ScopeID(value)
}

// Get returns the scope pointer or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

func (s *Scopes) Len() int { return len(s.data) - 1 }
