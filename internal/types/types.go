// Package types описывает решётку скалярных типов, общую для вывода типов
// транслятора и для рендера C++.
package types

import "fmt"

// Tag — тип значения с точки зрения транслятора.
type Tag uint8

const (
	Auto Tag = iota // неизвестен; рендерится как `auto`
	String
	Float
	Int
	Bool
	None
	Void
	CharPtrPtr // только argv у точки входа
)

var tagNames = [...]string{
	Auto: "auto", String: "str", Float: "float", Int: "int", Bool: "bool",
	None: "None", Void: "void", CharPtrPtr: "char **",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", t)
}

// rank — приоритет при расширении: меньше значит сильнее.
// Теги вне таблицы не упорядочены.
func (t Tag) rank() (int, bool) {
	switch t {
	case String:
		return 0, true
	case Float:
		return 1, true
	case Int:
		return 2, true
	case Bool:
		return 3, true
	}
	return 0, false
}

// Ordered сообщает, участвует ли тег в порядке расширения.
func (t Tag) Ordered() bool {
	_, ok := t.rank()
	return ok
}

// Widen возвращает общий тип двух значений. Если оба тега упорядочены,
// побеждает тег с меньшим рангом; иначе результат Auto.
func Widen(a, b Tag) Tag {
	ra, okA := a.rank()
	rb, okB := b.rank()
	if !okA || !okB {
		return Auto
	}
	if ra < rb {
		return a
	}
	return b
}

// Numeric — int или float.
func (t Tag) Numeric() bool { return t == Int || t == Float }

// Declarable сообщает, можно ли объявить переменную такого типа.
func (t Tag) Declarable() bool { return t != None && t != Void }
