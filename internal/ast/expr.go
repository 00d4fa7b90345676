package ast

import (
	"pyplus/internal/source"
)

type ExprKind uint8

const (
	ExprName ExprKind = iota
	ExprConst
	ExprUnary
	ExprBinary
	ExprBoolOp
	ExprCompare
	ExprCall
	ExprAttribute
	ExprSubscript
	ExprSlice
	ExprList
	ExprTuple
	ExprSet
	ExprDict
	ExprComprehension
	ExprLambda
	ExprIfExp
	ExprStarred
	ExprYield
	ExprAwait
	ExprNamed
	ExprBad
)

var exprKindNames = [...]string{
	ExprName: "Name", ExprConst: "Constant", ExprUnary: "UnaryOp", ExprBinary: "BinOp",
	ExprBoolOp: "BoolOp", ExprCompare: "Compare", ExprCall: "Call", ExprAttribute: "Attribute",
	ExprSubscript: "Subscript", ExprSlice: "Slice", ExprList: "List", ExprTuple: "Tuple",
	ExprSet: "Set", ExprDict: "Dict", ExprComprehension: "Comprehension", ExprLambda: "Lambda",
	ExprIfExp: "IfExp", ExprStarred: "Starred", ExprYield: "Yield", ExprAwait: "Await",
	ExprNamed: "NamedExpr", ExprBad: "BadExpr",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprNameData struct {
	Name source.StringID
}

// ConstKind — вид литерала.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstImag
	ConstString
	ConstBytes
	ConstBool
	ConstNone
	ConstEllipsis
)

var constKindNames = [...]string{
	ConstInt: "int", ConstFloat: "float", ConstImag: "complex", ConstString: "str",
	ConstBytes: "bytes", ConstBool: "bool", ConstNone: "NoneType", ConstEllipsis: "ellipsis",
}

func (k ConstKind) String() string {
	if int(k) < len(constKindNames) {
		return constKindNames[k]
	}
	return "ConstKind(?)"
}

// ExprConstData хранит уже декодированное значение литерала.
// Int — десятичная запись, String/Bytes — содержимое без кавычек и escape.
type ExprConstData struct {
	Kind    ConstKind
	Value   source.StringID
	Float   float64
	Bool    bool
	FString bool
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

// ExprBoolOpData — плоская цепочка `a and b and c`.
type ExprBoolOpData struct {
	Op     BoolOp
	Values []ExprID
}

// ExprCompareData — цепочка `a < b < c`: len(Ops) == len(Comparators).
type ExprCompareData struct {
	Left        ExprID
	Ops         []CmpOp
	Comparators []ExprID
}

// Keyword — именованный аргумент вызова; Name == NoStringID для **kwargs.
type Keyword struct {
	Name  source.StringID
	Value ExprID
	Span  source.Span
}

type ExprCallData struct {
	Func     ExprID
	Args     []ExprID // позиционные, включая *args как ExprStarred
	Keywords []Keyword
}

type ExprAttributeData struct {
	Value ExprID
	Attr  source.StringID
}

type ExprSubscriptData struct {
	Value ExprID
	Index ExprID
}

type ExprSliceData struct {
	Lower ExprID
	Upper ExprID
	Step  ExprID
}

// ExprSeqData — элементы List, Tuple или Set.
type ExprSeqData struct {
	Elts []ExprID
}

// ExprDictData: Keys[i] == NoExprID означает `**Values[i]`.
type ExprDictData struct {
	Keys   []ExprID
	Values []ExprID
}

type ComprehensionKind uint8

const (
	CompList ComprehensionKind = iota
	CompSet
	CompDict
	CompGenerator
)

type Generator struct {
	Target ExprID
	Iter   ExprID
	Ifs    []ExprID
	Async  bool
}

type ExprComprehensionData struct {
	Kind       ComprehensionKind
	Elt        ExprID // ключ для CompDict
	Value      ExprID // только CompDict
	Generators []Generator
}

type ExprLambdaData struct {
	Params Params
	Body   ExprID
}

type ExprIfExpData struct {
	Test   ExprID
	Body   ExprID
	Orelse ExprID
}

type ExprStarredData struct {
	Value  ExprID
	Double bool // `**x` в аргументах
}

type ExprYieldData struct {
	Value ExprID
	From  bool
}

type ExprAwaitData struct {
	Value ExprID
}

type ExprNamedData struct {
	Target ExprID
	Value  ExprID
}
