package types

// CppName — написание типа в C++.
func (t Tag) CppName() string {
	switch t {
	case String:
		return "std::string"
	case Float:
		return "double"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case None:
		return "NULL"
	case Void:
		return "void"
	case CharPtrPtr:
		return "char **"
	default:
		return "auto"
	}
}

// Decl рендерит объявление `T name`; у указателя звёздочки прилегают к имени.
func (t Tag) Decl(name string) string {
	if t == CharPtrPtr {
		return t.CppName() + name
	}
	return t.CppName() + " " + name
}

// FromTypeName переводит имя типа Python (аннотация или имя приведения).
func FromTypeName(name string) (Tag, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "str":
		return String, true
	case "bool":
		return Bool, true
	case "None":
		return None, true
	}
	return Auto, false
}

// IsCastName сообщает, является ли вызов name(...) приведением типа.
func IsCastName(name string) bool {
	switch name {
	case "int", "float", "str", "bool":
		return true
	}
	return false
}
