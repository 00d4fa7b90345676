package symbols

import "pyplus/internal/types"

// Role различает параметры, локальные переменные и ячейку возвращаемого типа.
type Role uint8

const (
	RoleLocal Role = iota
	RoleParam
	RoleReturn
)

func (r Role) String() string {
	switch r {
	case RoleParam:
		return "param"
	case RoleReturn:
		return "return"
	default:
		return "local"
	}
}

// Symbol — запись о переменной. Type — общая изменяемая ячейка: все
// ссылки идут через SymbolID, поэтому рендер читает итоговый тип.
type Symbol struct {
	Name string
	Line int // строка объявления, 1-based
	Role Role
	Type types.Tag
	// Bound == false у заглушки: первый Widen записывает тип, а не расширяет.
	Bound bool
	// Default — уже отрендеренное значение по умолчанию параметра ("" если нет).
	Default string
}
