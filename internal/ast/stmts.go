package ast

import (
	"pyplus/internal/source"
)

type Stmts struct {
	Arena       *Arena[Stmt]
	Exprs       *Arena[StmtExprData]
	Assigns     *Arena[StmtAssignData]
	AugAssigns  *Arena[StmtAugAssignData]
	AnnAssigns  *Arena[StmtAnnAssignData]
	Ifs         *Arena[StmtIfData]
	Whiles      *Arena[StmtWhileData]
	Fors        *Arena[StmtForData]
	Returns     *Arena[StmtReturnData]
	Funcs       *Arena[StmtFunctionDefData]
	Classes     *Arena[StmtClassDefData]
	Imports     *Arena[StmtImportData]
	ImportFroms *Arena[StmtImportFromData]
	Names       *Arena[StmtNamesData]
	Dels        *Arena[StmtDelData]
	Asserts     *Arena[StmtAssertData]
	Raises      *Arena[StmtRaiseData]
	Tries       *Arena[StmtTryData]
	Withs       *Arena[StmtWithData]
	Bads        *Arena[StmtBadData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Stmts{
		Arena:       NewArena[Stmt](capHint),
		Exprs:       NewArena[StmtExprData](capHint),
		Assigns:     NewArena[StmtAssignData](capHint),
		AugAssigns:  NewArena[StmtAugAssignData](small),
		AnnAssigns:  NewArena[StmtAnnAssignData](small),
		Ifs:         NewArena[StmtIfData](small),
		Whiles:      NewArena[StmtWhileData](small),
		Fors:        NewArena[StmtForData](small),
		Returns:     NewArena[StmtReturnData](small),
		Funcs:       NewArena[StmtFunctionDefData](small),
		Classes:     NewArena[StmtClassDefData](small),
		Imports:     NewArena[StmtImportData](small),
		ImportFroms: NewArena[StmtImportFromData](small),
		Names:       NewArena[StmtNamesData](small),
		Dels:        NewArena[StmtDelData](small),
		Asserts:     NewArena[StmtAssertData](small),
		Raises:      NewArena[StmtRaiseData](small),
		Tries:       NewArena[StmtTryData](small),
		Withs:       NewArena[StmtWithData](small),
		Bads:        NewArena[StmtBadData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// SetHeader records where a compound statement's header colon ends.
func (s *Stmts) SetHeader(id StmtID, off uint32) {
	if st := s.Get(id); st != nil {
		st.Header = off
	}
}

// SetSpan extends a statement span once its body is known.
func (s *Stmts) SetSpan(id StmtID, sp source.Span) {
	if st := s.Get(id); st != nil {
		st.Span = sp
	}
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

// NewSimple allocates Break, Continue or Pass.
func (s *Stmts) NewSimple(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}

func (s *Stmts) NewExpr(span source.Span, value ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Value: value}))
}

func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewAssign(span source.Span, targets []ExprID, value ExprID) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(StmtAssignData{Targets: targets, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewAugAssign(span source.Span, target ExprID, op BinaryOp, value ExprID) StmtID {
	return s.new(StmtAugAssign, span, s.AugAssigns.Allocate(StmtAugAssignData{Target: target, Op: op, Value: value}))
}

func (s *Stmts) AugAssign(id StmtID) (*StmtAugAssignData, bool) {
	p, ok := s.payload(id, StmtAugAssign)
	if !ok {
		return nil, false
	}
	return s.AugAssigns.Get(p), true
}

func (s *Stmts) NewAnnAssign(span source.Span, target, annotation, value ExprID) StmtID {
	return s.new(StmtAnnAssign, span, s.AnnAssigns.Allocate(StmtAnnAssignData{Target: target, Annotation: annotation, Value: value}))
}

func (s *Stmts) AnnAssign(id StmtID) (*StmtAnnAssignData, bool) {
	p, ok := s.payload(id, StmtAnnAssign)
	if !ok {
		return nil, false
	}
	return s.AnnAssigns.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, data StmtIfData) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(data))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, data StmtWhileData) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(data))
}

func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewFunctionDef(span source.Span, data StmtFunctionDefData) StmtID {
	return s.new(StmtFunctionDef, span, s.Funcs.Allocate(data))
}

func (s *Stmts) FunctionDef(id StmtID) (*StmtFunctionDefData, bool) {
	p, ok := s.payload(id, StmtFunctionDef)
	if !ok {
		return nil, false
	}
	return s.Funcs.Get(p), true
}

func (s *Stmts) NewClassDef(span source.Span, data StmtClassDefData) StmtID {
	return s.new(StmtClassDef, span, s.Classes.Allocate(data))
}

func (s *Stmts) ClassDef(id StmtID) (*StmtClassDefData, bool) {
	p, ok := s.payload(id, StmtClassDef)
	if !ok {
		return nil, false
	}
	return s.Classes.Get(p), true
}

func (s *Stmts) NewImport(span source.Span, names []Alias) StmtID {
	return s.new(StmtImport, span, s.Imports.Allocate(StmtImportData{Names: names}))
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	p, ok := s.payload(id, StmtImport)
	if !ok {
		return nil, false
	}
	return s.Imports.Get(p), true
}

func (s *Stmts) NewImportFrom(span source.Span, data StmtImportFromData) StmtID {
	return s.new(StmtImportFrom, span, s.ImportFroms.Allocate(data))
}

func (s *Stmts) ImportFrom(id StmtID) (*StmtImportFromData, bool) {
	p, ok := s.payload(id, StmtImportFrom)
	if !ok {
		return nil, false
	}
	return s.ImportFroms.Get(p), true
}

// NewNames allocates Global or Nonlocal.
func (s *Stmts) NewNames(kind StmtKind, span source.Span, names []source.StringID) StmtID {
	return s.new(kind, span, s.Names.Allocate(StmtNamesData{Names: names}))
}

func (s *Stmts) NamesOf(id StmtID) (*StmtNamesData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtGlobal && st.Kind != StmtNonlocal) {
		return nil, false
	}
	return s.Names.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewDel(span source.Span, targets []ExprID) StmtID {
	return s.new(StmtDel, span, s.Dels.Allocate(StmtDelData{Targets: targets}))
}

func (s *Stmts) Del(id StmtID) (*StmtDelData, bool) {
	p, ok := s.payload(id, StmtDel)
	if !ok {
		return nil, false
	}
	return s.Dels.Get(p), true
}

func (s *Stmts) NewAssert(span source.Span, test, msg ExprID) StmtID {
	return s.new(StmtAssert, span, s.Asserts.Allocate(StmtAssertData{Test: test, Msg: msg}))
}

func (s *Stmts) Assert(id StmtID) (*StmtAssertData, bool) {
	p, ok := s.payload(id, StmtAssert)
	if !ok {
		return nil, false
	}
	return s.Asserts.Get(p), true
}

func (s *Stmts) NewRaise(span source.Span, exc, cause ExprID) StmtID {
	return s.new(StmtRaise, span, s.Raises.Allocate(StmtRaiseData{Exc: exc, Cause: cause}))
}

func (s *Stmts) Raise(id StmtID) (*StmtRaiseData, bool) {
	p, ok := s.payload(id, StmtRaise)
	if !ok {
		return nil, false
	}
	return s.Raises.Get(p), true
}

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	return s.new(StmtTry, span, s.Tries.Allocate(data))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	p, ok := s.payload(id, StmtTry)
	if !ok {
		return nil, false
	}
	return s.Tries.Get(p), true
}

func (s *Stmts) NewWith(span source.Span, data StmtWithData) StmtID {
	return s.new(StmtWith, span, s.Withs.Allocate(data))
}

func (s *Stmts) With(id StmtID) (*StmtWithData, bool) {
	p, ok := s.payload(id, StmtWith)
	if !ok {
		return nil, false
	}
	return s.Withs.Get(p), true
}

func (s *Stmts) NewBad(span source.Span, reason string) StmtID {
	return s.new(StmtBad, span, s.Bads.Allocate(StmtBadData{Reason: reason}))
}

func (s *Stmts) Bad(id StmtID) (*StmtBadData, bool) {
	p, ok := s.payload(id, StmtBad)
	if !ok {
		return nil, false
	}
	return s.Bads.Get(p), true
}
