package translate

import (
	"errors"

	"pyplus/internal/diag"
	"pyplus/internal/source"
)

// Причины отката. Строки стабильны: они попадают в вывод как
// `//TODO: <reason>` и в диагностики TRN.
const (
	ReasonDefault      = "Code not directly translatable, manual port required"
	ReasonTypeChange   = "Refactor for C++. Variable types cannot change or potential loss of precision occurred"
	ReasonChained      = "Unable to translate chained assignment"
	ReasonNotInScope   = "Call to function not in scope"
	ReasonInvalidCall  = "Not a valid call"
	ReasonUnusedString = "Constant string not used"
	ReasonUnusedConst  = "Constant not used"
	ReasonUnusedValue  = "Value not assigned or used"
	ReasonNoElse       = "Unable to locate else keyword"
	ReasonUnparsed     = "Unable to parse statement"
)

// UnsupportedError — конструкцию нельзя перевести. Ловится на границе
// оператора и превращается в дословный откат.
type UnsupportedError struct {
	Reason string
	Code   diag.Code
	Span   source.Span
	// Detail уточняет причину в диагностике, в вывод не попадает.
	Detail string
}

func (e *UnsupportedError) Error() string {
	if e.Detail != "" {
		return e.Reason + ": " + e.Detail
	}
	return e.Reason
}

func unsupported(code diag.Code, sp source.Span, detail string) error {
	return &UnsupportedError{Reason: ReasonDefault, Code: code, Span: sp, Detail: detail}
}

func unsupportedReason(reason string, code diag.Code, sp source.Span, detail string) error {
	return &UnsupportedError{Reason: reason, Code: code, Span: sp, Detail: detail}
}

// asUnsupported достаёт UnsupportedError из цепочки; прочие ошибки
// считаются внутренними и тоже дают откат с причиной по умолчанию.
func asUnsupported(err error, sp source.Span) *UnsupportedError {
	var ue *UnsupportedError
	if errors.As(err, &ue) {
		return ue
	}
	return &UnsupportedError{Reason: ReasonDefault, Code: diag.TrnUnsupported, Span: sp, Detail: err.Error()}
}
