package parser

import (
	"testing"

	"github.com/nalgeon/be"

	"pyplus/internal/ast"
	"pyplus/internal/source"
)

func TestChainedComparisonIsSingleNode(t *testing.T) {
	arenas, id := onlyExpr(t, "a < b <= c\n")
	cmp, ok := arenas.Exprs.Compare(id)
	be.True(t, ok)
	be.Equal(t, cmp.Ops, []ast.CmpOp{ast.CmpLt, ast.CmpLtE})
	be.Equal(t, len(cmp.Comparators), 2)
}

func TestTwoWordComparisons(t *testing.T) {
	arenas, id := onlyExpr(t, "a not in b is not c\n")
	cmp, ok := arenas.Exprs.Compare(id)
	be.True(t, ok)
	be.Equal(t, cmp.Ops, []ast.CmpOp{ast.CmpNotIn, ast.CmpIsNot})
}

func TestBoolOpIsFlat(t *testing.T) {
	arenas, id := onlyExpr(t, "a or b or c\n")
	op, ok := arenas.Exprs.BoolOp(id)
	be.True(t, ok)
	be.Equal(t, op.Op, ast.OpOr)
	be.Equal(t, len(op.Values), 3)
}

func TestAndBindsTighterThanOr(t *testing.T) {
	arenas, id := onlyExpr(t, "a or b and c\n")
	op, _ := arenas.Exprs.BoolOp(id)
	be.Equal(t, op.Op, ast.OpOr)
	be.Equal(t, len(op.Values), 2)
	inner, ok := arenas.Exprs.BoolOp(op.Values[1])
	be.True(t, ok)
	be.Equal(t, inner.Op, ast.OpAnd)
}

func TestUnaryMinusBindsLooserThanPower(t *testing.T) {
	arenas, id := onlyExpr(t, "-x ** 2\n")
	un, ok := arenas.Exprs.Unary(id)
	be.True(t, ok)
	be.Equal(t, un.Op, ast.OpUSub)
	pow, ok := arenas.Exprs.Binary(un.Operand)
	be.True(t, ok)
	be.Equal(t, pow.Op, ast.OpPow)
}

func TestPowerIsRightAssociative(t *testing.T) {
	arenas, id := onlyExpr(t, "2 ** 3 ** 2\n")
	outer, _ := arenas.Exprs.Binary(id)
	be.Equal(t, outer.Op, ast.OpPow)
	_, leftIsConst := arenas.Exprs.Const(outer.Left)
	be.True(t, leftIsConst)
	inner, ok := arenas.Exprs.Binary(outer.Right)
	be.True(t, ok)
	be.Equal(t, inner.Op, ast.OpPow)
}

func TestBinaryPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		root ast.BinaryOp
	}{
		{"a + b * c\n", ast.OpAdd},
		{"a * b + c\n", ast.OpAdd},
		{"a - b - c\n", ast.OpSub},
		{"a // b % c\n", ast.OpMod},
		{"a | b & c\n", ast.OpBitOr},
		{"a << 1 + 2\n", ast.OpLShift},
		{"a ^ b | c\n", ast.OpBitOr},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			arenas, id := onlyExpr(t, tt.src)
			bin, ok := arenas.Exprs.Binary(id)
			be.True(t, ok)
			be.Equal(t, bin.Op, tt.root)
		})
	}
}

func TestLeftAssociativeSubtraction(t *testing.T) {
	arenas, id := onlyExpr(t, "a - b - c\n")
	outer, _ := arenas.Exprs.Binary(id)
	inner, ok := arenas.Exprs.Binary(outer.Left)
	be.True(t, ok)
	be.Equal(t, inner.Op, ast.OpSub)
	name, _ := arenas.Name(outer.Right)
	be.Equal(t, name, "c")
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		src   string
		kind  ast.ConstKind
		value string
	}{
		{"42\n", ast.ConstInt, "42"},
		{"0x1F\n", ast.ConstInt, "31"},
		{"1_000_000\n", ast.ConstInt, "1000000"},
		{"0b101\n", ast.ConstInt, "5"},
		{"123456789012345678901234567890\n", ast.ConstInt, "123456789012345678901234567890"},
		{"3.14\n", ast.ConstFloat, "3.14"},
		{"1e3\n", ast.ConstFloat, "1000.0"},
		{"1e20\n", ast.ConstFloat, "1e+20"},
		{"2j\n", ast.ConstImag, "2.0j"},
		{"True\n", ast.ConstBool, "True"},
		{"None\n", ast.ConstNone, "None"},
		{"'a\\tb'\n", ast.ConstString, "a\tb"},
		{"r'a\\tb'\n", ast.ConstString, "a\\tb"},
		{"'ab' \"cd\"\n", ast.ConstString, "abcd"},
		{"'\\x41\\u00e9'\n", ast.ConstString, "Aé"},
		{"b'\\x00'\n", ast.ConstBytes, "\x00"},
		{"'''multi\nline'''\n", ast.ConstString, "multi\nline"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			arenas, id := onlyExpr(t, tt.src)
			c, ok := arenas.Exprs.Const(id)
			be.True(t, ok)
			be.Equal(t, c.Kind, tt.kind)
			be.Equal(t, arenas.Str(c.Value), tt.value)
		})
	}
}

func TestFloatRepr(t *testing.T) {
	tests := map[float64]string{
		0.1:     "0.1",
		5:       "5.0",
		1e16:    "1e+16",
		1.5e-5:  "1.5e-05",
		0.0001:  "0.0001",
		-2.5:    "-2.5",
		123e100: "1.23e+102",
	}
	for in, want := range tests {
		be.Equal(t, FloatRepr(in), want)
	}
}

func TestCallArguments(t *testing.T) {
	arenas, id := onlyExpr(t, "f(a, *rest, key=1, **opts)\n")
	call, ok := arenas.Exprs.Call(id)
	be.True(t, ok)
	be.Equal(t, len(call.Args), 2)
	be.Equal(t, arenas.Exprs.Get(call.Args[1]).Kind, ast.ExprStarred)
	be.Equal(t, len(call.Keywords), 2)
	be.Equal(t, arenas.Str(call.Keywords[0].Name), "key")
	be.Equal(t, call.Keywords[1].Name, source.NoStringID)
}

func TestCallGeneratorArgument(t *testing.T) {
	arenas, id := onlyExpr(t, "sum(x for x in xs if x)\n")
	call, _ := arenas.Exprs.Call(id)
	be.Equal(t, len(call.Args), 1)
	comp, ok := arenas.Exprs.Comprehension(call.Args[0])
	be.True(t, ok)
	be.Equal(t, comp.Kind, ast.CompGenerator)
	be.Equal(t, len(comp.Generators[0].Ifs), 1)
}

func TestPostfixChain(t *testing.T) {
	arenas, id := onlyExpr(t, "a.b(c)[1:2]\n")
	sub, ok := arenas.Exprs.Subscript(id)
	be.True(t, ok)
	sl, ok := arenas.Exprs.Slice(sub.Index)
	be.True(t, ok)
	be.Equal(t, sl.Step, ast.NoExprID)
	call, ok := arenas.Exprs.Call(sub.Value)
	be.True(t, ok)
	attr, ok := arenas.Exprs.Attribute(call.Func)
	be.True(t, ok)
	be.Equal(t, arenas.Str(attr.Attr), "b")
}

func TestCollections(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.ExprKind
	}{
		{"[1, 2]\n", ast.ExprList},
		{"(1, 2)\n", ast.ExprTuple},
		{"()\n", ast.ExprTuple},
		{"{1, 2}\n", ast.ExprSet},
		{"{}\n", ast.ExprDict},
		{"{'a': 1, **d}\n", ast.ExprDict},
		{"[x for x in y]\n", ast.ExprComprehension},
		{"{k: v for k, v in items}\n", ast.ExprComprehension},
		{"lambda x, y=1: x + y\n", ast.ExprLambda},
		{"a if b else c\n", ast.ExprIfExp},
		{"(y := 5)\n", ast.ExprNamed},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			arenas, id := onlyExpr(t, tt.src)
			be.Equal(t, arenas.Exprs.Get(id).Kind, tt.kind)
		})
	}
}

func TestParenthesizedExpressionKeepsInnerNode(t *testing.T) {
	arenas, id := onlyExpr(t, "(a + b) * c\n")
	bin, _ := arenas.Exprs.Binary(id)
	be.Equal(t, bin.Op, ast.OpMult)
	inner, ok := arenas.Exprs.Binary(bin.Left)
	be.True(t, ok)
	be.Equal(t, inner.Op, ast.OpAdd)
}

func TestExpressionSpans(t *testing.T) {
	arenas, id := onlyExpr(t, "foo + bar(1)\n")
	ex := arenas.Exprs.Get(id)
	be.Equal(t, ex.Span.Start, uint32(0))
	be.Equal(t, ex.Span.End, uint32(12))
	bin, _ := arenas.Exprs.Binary(id)
	right := arenas.Exprs.Get(bin.Right)
	be.Equal(t, right.Span.Start, uint32(6))
}
