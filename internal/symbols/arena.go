package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"pyplus/internal/types"
)

// Symbols — арена символов; индекс 0 зарезервирован под NoSymbolID.
type Symbols struct {
	data []Symbol
}

func NewSymbols(capacity uint32) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	return &Symbols{data: make([]Symbol, 1, capacity+1)}
}

// New кладёт символ в арену и возвращает его ID.
func (s *Symbols) New(sym Symbol) SymbolID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	s.data = append(s.data, sym)
	return SymbolID(value)
}

// Get returns the symbol pointer or nil if ID is invalid.
func (s *Symbols) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

func (s *Symbols) Len() int { return len(s.data) - 1 }

// Widen расширяет ячейку типа. Несвязанная заглушка получает тип как есть;
// связанная — types.Widen(старый, новый), так что ранг только растёт к auto.
func (s *Symbols) Widen(id SymbolID, tag types.Tag) types.Tag {
	sym := s.Get(id)
	if sym == nil {
		return types.Auto
	}
	if !sym.Bound {
		sym.Type = tag
		sym.Bound = true
		return sym.Type
	}
	if sym.Type != tag {
		sym.Type = types.Widen(sym.Type, tag)
	}
	return sym.Type
}
