// Package fuzztests houses Go fuzz harnesses for the front end of the
// converter (source -> lexer -> parser -> translate). They guard against
// panics and hangs on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
