package ast

import (
	"testing"

	"github.com/nalgeon/be"

	"pyplus/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	be.True(t, a.Get(0) == nil)
	id := a.Allocate(42)
	be.Equal(t, id, uint32(1))
	be.Equal(t, *a.Get(id), 42)
	be.True(t, a.Get(2) == nil)
	be.Equal(t, a.Len(), uint32(1))
}

func TestTypedAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	x := b.Exprs.NewName(source.Span{Start: 0, End: 1}, b.Strings.Intern("x"))
	one := b.Exprs.NewConst(source.Span{Start: 4, End: 5}, ExprConstData{Kind: ConstInt, Value: b.Strings.Intern("1")})
	sum := b.Exprs.NewBinary(source.Span{Start: 0, End: 5}, OpAdd, x, one)

	_, ok := b.Exprs.Name(sum)
	be.True(t, !ok)
	bin, ok := b.Exprs.Binary(sum)
	be.True(t, ok)
	be.Equal(t, bin.Op, OpAdd)
	name, ok := b.Name(x)
	be.True(t, ok)
	be.Equal(t, name, "x")
	be.Equal(t, b.ExprChildren(sum), []ExprID{x, one})
}

func TestWalkVisitsNestedBodies(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	file := b.NewFile(source.Span{})
	test := b.Exprs.NewName(source.Span{}, b.Strings.Intern("c"))
	inner := b.Stmts.NewSimple(StmtBreak, source.Span{})
	loop := b.Stmts.NewWhile(source.Span{}, StmtWhileData{Test: test, Body: []StmtID{inner}})
	b.PushStmt(file, loop)

	var stmts []StmtKind
	var depths []int
	exprs := 0
	b.Walk(b.Files.Get(file).Body, Visitor{
		Stmt: func(id StmtID, depth int) bool {
			stmts = append(stmts, b.Stmts.Get(id).Kind)
			depths = append(depths, depth)
			return true
		},
		Expr: func(ExprID, int) bool { exprs++; return true },
	})
	be.Equal(t, stmts, []StmtKind{StmtWhile, StmtBreak})
	be.Equal(t, depths, []int{0, 1})
	be.Equal(t, exprs, 1)
}

func TestParamsSimple(t *testing.T) {
	p := Params{Args: []Param{{}, {}}}
	be.True(t, p.Simple())
	p.Vararg = &Param{}
	be.True(t, !p.Simple())
	be.Equal(t, len(p.All()), 3)
}
