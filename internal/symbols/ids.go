package symbols

// SymbolID индексирует арену символов; 0 — нет символа.
type SymbolID uint32

// ScopeID индексирует арену областей; 0 — нет области.
type ScopeID uint32

const (
	NoSymbolID SymbolID = 0
	NoScopeID  ScopeID  = 0
)

func (id SymbolID) IsValid() bool { return id != NoSymbolID }
func (id ScopeID) IsValid() bool  { return id != NoScopeID }
