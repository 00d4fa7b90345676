package ast

import (
	"pyplus/internal/source"
)

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena          *Arena[Expr]
	Names          *Arena[ExprNameData]
	Consts         *Arena[ExprConstData]
	Unaries        *Arena[ExprUnaryData]
	Binaries       *Arena[ExprBinaryData]
	BoolOps        *Arena[ExprBoolOpData]
	Compares       *Arena[ExprCompareData]
	Calls          *Arena[ExprCallData]
	Attributes     *Arena[ExprAttributeData]
	Subscripts     *Arena[ExprSubscriptData]
	Slices         *Arena[ExprSliceData]
	Seqs           *Arena[ExprSeqData]
	Dicts          *Arena[ExprDictData]
	Comprehensions *Arena[ExprComprehensionData]
	Lambdas        *Arena[ExprLambdaData]
	IfExps         *Arena[ExprIfExpData]
	Starreds       *Arena[ExprStarredData]
	Yields         *Arena[ExprYieldData]
	Awaits         *Arena[ExprAwaitData]
	Nameds         *Arena[ExprNamedData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:          NewArena[Expr](capHint),
		Names:          NewArena[ExprNameData](capHint),
		Consts:         NewArena[ExprConstData](capHint),
		Unaries:        NewArena[ExprUnaryData](small),
		Binaries:       NewArena[ExprBinaryData](capHint),
		BoolOps:        NewArena[ExprBoolOpData](small),
		Compares:       NewArena[ExprCompareData](small),
		Calls:          NewArena[ExprCallData](small),
		Attributes:     NewArena[ExprAttributeData](small),
		Subscripts:     NewArena[ExprSubscriptData](small),
		Slices:         NewArena[ExprSliceData](small),
		Seqs:           NewArena[ExprSeqData](small),
		Dicts:          NewArena[ExprDictData](small),
		Comprehensions: NewArena[ExprComprehensionData](small),
		Lambdas:        NewArena[ExprLambdaData](small),
		IfExps:         NewArena[ExprIfExpData](small),
		Starreds:       NewArena[ExprStarredData](small),
		Yields:         NewArena[ExprYieldData](small),
		Awaits:         NewArena[ExprAwaitData](small),
		Nameds:         NewArena[ExprNamedData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewName(span source.Span, name source.StringID) ExprID {
	return e.new(ExprName, span, e.Names.Allocate(ExprNameData{Name: name}))
}

func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	p, ok := e.payload(id, ExprName)
	if !ok {
		return nil, false
	}
	return e.Names.Get(p), true
}

func (e *Exprs) NewConst(span source.Span, data ExprConstData) ExprID {
	return e.new(ExprConst, span, e.Consts.Allocate(data))
}

func (e *Exprs) Const(id ExprID) (*ExprConstData, bool) {
	p, ok := e.payload(id, ExprConst)
	if !ok {
		return nil, false
	}
	return e.Consts.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewBoolOp(span source.Span, op BoolOp, values []ExprID) ExprID {
	return e.new(ExprBoolOp, span, e.BoolOps.Allocate(ExprBoolOpData{Op: op, Values: values}))
}

func (e *Exprs) BoolOp(id ExprID) (*ExprBoolOpData, bool) {
	p, ok := e.payload(id, ExprBoolOp)
	if !ok {
		return nil, false
	}
	return e.BoolOps.Get(p), true
}

func (e *Exprs) NewCompare(span source.Span, left ExprID, ops []CmpOp, comparators []ExprID) ExprID {
	return e.new(ExprCompare, span, e.Compares.Allocate(ExprCompareData{Left: left, Ops: ops, Comparators: comparators}))
}

func (e *Exprs) Compare(id ExprID) (*ExprCompareData, bool) {
	p, ok := e.payload(id, ExprCompare)
	if !ok {
		return nil, false
	}
	return e.Compares.Get(p), true
}

func (e *Exprs) NewCall(span source.Span, fn ExprID, args []ExprID, keywords []Keyword) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Func: fn, Args: args, Keywords: keywords}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewAttribute(span source.Span, value ExprID, attr source.StringID) ExprID {
	return e.new(ExprAttribute, span, e.Attributes.Allocate(ExprAttributeData{Value: value, Attr: attr}))
}

func (e *Exprs) Attribute(id ExprID) (*ExprAttributeData, bool) {
	p, ok := e.payload(id, ExprAttribute)
	if !ok {
		return nil, false
	}
	return e.Attributes.Get(p), true
}

func (e *Exprs) NewSubscript(span source.Span, value, index ExprID) ExprID {
	return e.new(ExprSubscript, span, e.Subscripts.Allocate(ExprSubscriptData{Value: value, Index: index}))
}

func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	p, ok := e.payload(id, ExprSubscript)
	if !ok {
		return nil, false
	}
	return e.Subscripts.Get(p), true
}

func (e *Exprs) NewSlice(span source.Span, lower, upper, step ExprID) ExprID {
	return e.new(ExprSlice, span, e.Slices.Allocate(ExprSliceData{Lower: lower, Upper: upper, Step: step}))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	p, ok := e.payload(id, ExprSlice)
	if !ok {
		return nil, false
	}
	return e.Slices.Get(p), true
}

// NewSeq creates a List, Tuple or Set display.
func (e *Exprs) NewSeq(kind ExprKind, span source.Span, elts []ExprID) ExprID {
	switch kind {
	case ExprList, ExprTuple, ExprSet:
	default:
		panic("ast: NewSeq with non-sequence kind " + kind.String())
	}
	return e.new(kind, span, e.Seqs.Allocate(ExprSeqData{Elts: elts}))
}

// Seq returns the elements of a List, Tuple or Set.
func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ExprList, ExprTuple, ExprSet:
		return e.Seqs.Get(uint32(expr.Payload)), true
	}
	return nil, false
}

func (e *Exprs) NewDict(span source.Span, keys, values []ExprID) ExprID {
	return e.new(ExprDict, span, e.Dicts.Allocate(ExprDictData{Keys: keys, Values: values}))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	p, ok := e.payload(id, ExprDict)
	if !ok {
		return nil, false
	}
	return e.Dicts.Get(p), true
}

func (e *Exprs) NewComprehension(span source.Span, data ExprComprehensionData) ExprID {
	return e.new(ExprComprehension, span, e.Comprehensions.Allocate(data))
}

func (e *Exprs) Comprehension(id ExprID) (*ExprComprehensionData, bool) {
	p, ok := e.payload(id, ExprComprehension)
	if !ok {
		return nil, false
	}
	return e.Comprehensions.Get(p), true
}

func (e *Exprs) NewLambda(span source.Span, params Params, body ExprID) ExprID {
	return e.new(ExprLambda, span, e.Lambdas.Allocate(ExprLambdaData{Params: params, Body: body}))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	p, ok := e.payload(id, ExprLambda)
	if !ok {
		return nil, false
	}
	return e.Lambdas.Get(p), true
}

func (e *Exprs) NewIfExp(span source.Span, test, body, orelse ExprID) ExprID {
	return e.new(ExprIfExp, span, e.IfExps.Allocate(ExprIfExpData{Test: test, Body: body, Orelse: orelse}))
}

func (e *Exprs) IfExp(id ExprID) (*ExprIfExpData, bool) {
	p, ok := e.payload(id, ExprIfExp)
	if !ok {
		return nil, false
	}
	return e.IfExps.Get(p), true
}

func (e *Exprs) NewStarred(span source.Span, value ExprID, double bool) ExprID {
	return e.new(ExprStarred, span, e.Starreds.Allocate(ExprStarredData{Value: value, Double: double}))
}

func (e *Exprs) Starred(id ExprID) (*ExprStarredData, bool) {
	p, ok := e.payload(id, ExprStarred)
	if !ok {
		return nil, false
	}
	return e.Starreds.Get(p), true
}

func (e *Exprs) NewYield(span source.Span, value ExprID, from bool) ExprID {
	return e.new(ExprYield, span, e.Yields.Allocate(ExprYieldData{Value: value, From: from}))
}

func (e *Exprs) Yield(id ExprID) (*ExprYieldData, bool) {
	p, ok := e.payload(id, ExprYield)
	if !ok {
		return nil, false
	}
	return e.Yields.Get(p), true
}

func (e *Exprs) NewAwait(span source.Span, value ExprID) ExprID {
	return e.new(ExprAwait, span, e.Awaits.Allocate(ExprAwaitData{Value: value}))
}

func (e *Exprs) Await(id ExprID) (*ExprAwaitData, bool) {
	p, ok := e.payload(id, ExprAwait)
	if !ok {
		return nil, false
	}
	return e.Awaits.Get(p), true
}

func (e *Exprs) NewNamed(span source.Span, target, value ExprID) ExprID {
	return e.new(ExprNamed, span, e.Nameds.Allocate(ExprNamedData{Target: target, Value: value}))
}

func (e *Exprs) Named(id ExprID) (*ExprNamedData, bool) {
	p, ok := e.payload(id, ExprNamed)
	if !ok {
		return nil, false
	}
	return e.Nameds.Get(p), true
}

// NewBad records an expression the parser could not build.
func (e *Exprs) NewBad(span source.Span) ExprID {
	return e.new(ExprBad, span, 0)
}
