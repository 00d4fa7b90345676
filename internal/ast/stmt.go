package ast

import (
	"pyplus/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtAssign
	StmtAugAssign
	StmtAnnAssign
	StmtIf
	StmtWhile
	StmtFor
	StmtBreak
	StmtContinue
	StmtPass
	StmtReturn
	StmtFunctionDef
	StmtClassDef
	StmtImport
	StmtImportFrom
	StmtGlobal
	StmtNonlocal
	StmtDel
	StmtAssert
	StmtRaise
	StmtTry
	StmtWith
	StmtBad
)

var stmtKindNames = [...]string{
	StmtExpr: "Expr", StmtAssign: "Assign", StmtAugAssign: "AugAssign", StmtAnnAssign: "AnnAssign",
	StmtIf: "If", StmtWhile: "While", StmtFor: "For", StmtBreak: "Break", StmtContinue: "Continue",
	StmtPass: "Pass", StmtReturn: "Return", StmtFunctionDef: "FunctionDef", StmtClassDef: "ClassDef",
	StmtImport: "Import", StmtImportFrom: "ImportFrom", StmtGlobal: "Global", StmtNonlocal: "Nonlocal",
	StmtDel: "Delete", StmtAssert: "Assert", StmtRaise: "Raise", StmtTry: "Try", StmtWith: "With",
	StmtBad: "Bad",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "StmtKind(?)"
}

// Compound reports whether statements of this kind own an indented body.
func (k StmtKind) Compound() bool {
	switch k {
	case StmtIf, StmtWhile, StmtFor, StmtFunctionDef, StmtClassDef, StmtTry, StmtWith:
		return true
	}
	return false
}

type Stmt struct {
	Kind StmtKind
	Span source.Span
	// Header — смещение сразу после ':' заголовка составного оператора, 0 у простых.
	Header  uint32
	Payload PayloadID
}

type StmtExprData struct {
	Value ExprID
}

// StmtAssignData: несколько Targets означает цепочку `a = b = v`.
type StmtAssignData struct {
	Targets []ExprID
	Value   ExprID
}

type StmtAugAssignData struct {
	Target ExprID
	Op     BinaryOp
	Value  ExprID
}

type StmtAnnAssignData struct {
	Target     ExprID
	Annotation ExprID
	Value      ExprID // NoExprID для `x: int`
}

// StmtIfData: elif хранится как Orelse из одного If.
type StmtIfData struct {
	Test   ExprID
	Body   []StmtID
	Orelse []StmtID
}

type StmtWhileData struct {
	Test   ExprID
	Body   []StmtID
	Orelse []StmtID
}

type StmtForData struct {
	Target ExprID
	Iter   ExprID
	Body   []StmtID
	Orelse []StmtID
	Async  bool
}

type StmtReturnData struct {
	Value ExprID
}

type StmtFunctionDefData struct {
	Name       source.StringID
	NameSpan   source.Span
	Params     Params
	Returns    ExprID
	Body       []StmtID
	Decorators []ExprID
	Async      bool
}

type StmtClassDefData struct {
	Name       source.StringID
	Bases      []ExprID
	Keywords   []Keyword
	Body       []StmtID
	Decorators []ExprID
}

type Alias struct {
	Name   source.StringID // dotted для import
	AsName source.StringID
	Span   source.Span
}

type StmtImportData struct {
	Names []Alias
}

type StmtImportFromData struct {
	Module source.StringID
	Level  int
	Names  []Alias // `*` хранится как Alias{Name: "*"}
}

// StmtNamesData — Global/Nonlocal.
type StmtNamesData struct {
	Names []source.StringID
}

type StmtDelData struct {
	Targets []ExprID
}

type StmtAssertData struct {
	Test ExprID
	Msg  ExprID
}

type StmtRaiseData struct {
	Exc   ExprID
	Cause ExprID
}

type ExceptHandler struct {
	Type ExprID
	Name source.StringID
	Body []StmtID
	Span source.Span
}

type StmtTryData struct {
	Body      []StmtID
	Handlers  []ExceptHandler
	Orelse    []StmtID
	Finalbody []StmtID
}

type WithItem struct {
	Context ExprID
	Vars    ExprID
}

type StmtWithData struct {
	Items []WithItem
	Body  []StmtID
	Async bool
}

// StmtBadData — оператор, который не удалось разобрать; Span покрывает пропущенный текст.
type StmtBadData struct {
	Reason string
}
