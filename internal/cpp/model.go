// Package cpp — модель выходного C++ (File → Function → CodeLine)
// и её рендер в текст.
package cpp

import (
	"slices"
	"strings"

	"pyplus/internal/types"
)

// Param — параметр в сигнатуре; Default уже отрендерен.
type Param struct {
	Name    string
	Type    types.Tag
	Default string
}

// Function — функция C++. Params и Return заполняются финализацией
// из ячеек таблицы символов, до первого рендера.
type Function struct {
	Name   string
	Line   int // строка def; 0 у точки входа
	End    int
	Entry  bool
	Params []Param
	Return types.Tag
	Lines  *Lines

	sig string
}

func NewFunction(name string, line, end int, entry bool) *Function {
	return &Function{Name: name, Line: line, End: end, Entry: entry, Return: types.Void, Lines: NewLines()}
}

// Signature строит `T name(T a, T b=3)` один раз и кэширует.
// withDefaults=false — вариант для forward-объявления, он не кэшируется.
func (f *Function) Signature(withDefaults bool) string {
	if withDefaults && f.sig != "" {
		return f.sig
	}
	var sb strings.Builder
	sb.WriteString(f.Return.CppName())
	sb.WriteByte(' ')
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type.Decl(p.Name))
		if withDefaults && p.Default != "" {
			sb.WriteByte('=')
			sb.WriteString(p.Default)
		}
	}
	sb.WriteByte(')')
	if !withDefaults {
		return sb.String()
	}
	f.sig = sb.String()
	return f.sig
}

// Invalidate сбрасывает кэш сигнатуры после изменения типов.
func (f *Function) Invalidate() { f.sig = "" }

// File — единица вывода: include-ы в порядке добавления и функции,
// точка входа первой.
type File struct {
	Name      string
	Includes  []string
	Functions []*Function
}

func NewFile(name string) *File {
	return &File{Name: name}
}

// AddInclude добавляет заголовок, если его ещё нет.
func (f *File) AddInclude(name string) {
	if name == "" || slices.Contains(f.Includes, name) {
		return
	}
	f.Includes = append(f.Includes, name)
}

// Entry возвращает точку входа, если она есть.
func (f *File) Entry() *Function {
	for _, fn := range f.Functions {
		if fn.Entry {
			return fn
		}
	}
	return nil
}
