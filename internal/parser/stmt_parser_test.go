package parser

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
)

func TestSimpleStatements(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.StmtKind
	}{
		{"x = 1\n", ast.StmtAssign},
		{"x += 1\n", ast.StmtAugAssign},
		{"x: int = 1\n", ast.StmtAnnAssign},
		{"pass\n", ast.StmtPass},
		{"import os.path as p\n", ast.StmtImport},
		{"from . import a, b\n", ast.StmtImportFrom},
		{"global a, b\n", ast.StmtGlobal},
		{"del a[0]\n", ast.StmtDel},
		{"assert x, 'msg'\n", ast.StmtAssert},
		{"raise ValueError('x') from e\n", ast.StmtRaise},
		{"print(1)\n", ast.StmtExpr},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			arenas, file := parseClean(t, tt.src)
			be.Equal(t, len(file.Body), 1)
			be.Equal(t, arenas.Stmts.Get(file.Body[0]).Kind, tt.kind)
		})
	}
}

func TestSemicolonSeparatedStatements(t *testing.T) {
	_, file := parseClean(t, "a = 1; b = 2; pass\n")
	be.Equal(t, len(file.Body), 3)
}

func TestChainedAssignmentKeepsAllTargets(t *testing.T) {
	arenas, file := parseClean(t, "a = b = 3\n")
	data, ok := arenas.Stmts.Assign(file.Body[0])
	be.True(t, ok)
	be.Equal(t, len(data.Targets), 2)
}

func TestAugAssignOperator(t *testing.T) {
	arenas, file := parseClean(t, "x //= 2\n")
	data, _ := arenas.Stmts.AugAssign(file.Body[0])
	be.Equal(t, data.Op, ast.OpFloorDiv)
}

func TestElifNestsAsOrelse(t *testing.T) {
	src := "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n"
	arenas, file := parseClean(t, src)
	be.Equal(t, len(file.Body), 1)
	outer, ok := arenas.Stmts.If(file.Body[0])
	be.True(t, ok)
	be.Equal(t, len(outer.Orelse), 1)
	inner, ok := arenas.Stmts.If(outer.Orelse[0])
	be.True(t, ok)
	be.Equal(t, len(inner.Orelse), 1)
	be.Equal(t, arenas.Stmts.Get(inner.Orelse[0]).Kind, ast.StmtAssign)
}

func TestCompoundHeaderAndSpan(t *testing.T) {
	src := "while x < 10:\n    x += 1\ny = 0\n"
	arenas, file := parseClean(t, src)
	st := arenas.Stmts.Get(file.Body[0])
	be.Equal(t, st.Kind, ast.StmtWhile)
	be.Equal(t, st.Header, uint32(strings.Index(src, ":")+1))
	be.Equal(t, st.Span.Start, uint32(0))
	be.Equal(t, st.Span.End, uint32(strings.Index(src, "\ny")))
}

func TestFunctionDef(t *testing.T) {
	src := "@dec\ndef f(a, b: int = 2, *args, c, **kw) -> int:\n    return a\n"
	arenas, file := parseClean(t, src)
	fn, ok := arenas.Stmts.FunctionDef(file.Body[0])
	be.True(t, ok)
	be.Equal(t, arenas.Str(fn.Name), "f")
	be.Equal(t, len(fn.Decorators), 1)
	be.Equal(t, len(fn.Params.Args), 2)
	be.True(t, fn.Params.Vararg != nil)
	be.Equal(t, len(fn.Params.KwOnly), 1)
	be.True(t, fn.Params.Kwarg != nil)
	be.True(t, fn.Returns.IsValid())
	be.Equal(t, fn.Params.Simple(), false)
	// span начинается с декоратора
	be.Equal(t, arenas.Stmts.Get(file.Body[0]).Span.Start, uint32(0))
}

func TestSimpleParams(t *testing.T) {
	arenas, file := parseClean(t, "def add(a, b=1):\n    return a + b\n")
	fn, _ := arenas.Stmts.FunctionDef(file.Body[0])
	be.True(t, fn.Params.Simple())
	be.True(t, fn.Params.Args[1].Default.IsValid())
}

func TestForWithTupleTarget(t *testing.T) {
	arenas, file := parseClean(t, "for i, v in enumerate(xs):\n    pass\nelse:\n    pass\n")
	data, ok := arenas.Stmts.For(file.Body[0])
	be.True(t, ok)
	be.Equal(t, arenas.Exprs.Get(data.Target).Kind, ast.ExprTuple)
	be.Equal(t, len(data.Orelse), 1)
}

func TestTryAndWith(t *testing.T) {
	src := "try:\n    pass\nexcept ValueError as e:\n    pass\nfinally:\n    pass\nwith open(p) as f, lock:\n    pass\n"
	arenas, file := parseClean(t, src)
	be.Equal(t, len(file.Body), 2)
	tr, ok := arenas.Stmts.Try(file.Body[0])
	be.True(t, ok)
	be.Equal(t, len(tr.Handlers), 1)
	be.Equal(t, arenas.Str(tr.Handlers[0].Name), "e")
	w, ok := arenas.Stmts.With(file.Body[1])
	be.True(t, ok)
	be.Equal(t, len(w.Items), 2)
}

func TestSyntaxErrorRecovery(t *testing.T) {
	src := "x = (1 +\ny = 2\n"
	_, file, bag := parseSource(t, src)
	be.True(t, bag.HasErrors())
	be.True(t, len(file.Body) >= 1)
}

func TestBadStatementThenContinue(t *testing.T) {
	src := "x = = 1\ny = 2\n"
	arenas, file, bag := parseSource(t, src)
	be.Equal(t, bag.Len(), 1)
	be.Equal(t, bag.Items()[0].Code, diag.SynExpectExpression)
	be.Equal(t, len(file.Body), 2)
	bad, ok := arenas.Stmts.Bad(file.Body[0])
	be.True(t, ok)
	be.True(t, bad.Reason != "")
	be.Equal(t, arenas.Stmts.Get(file.Body[1]).Kind, ast.StmtAssign)
}

func TestBadStatementInsideBlockKeepsEnclosing(t *testing.T) {
	src := "def f():\n    x = )\n    return 1\n"
	arenas, file, bag := parseSource(t, src)
	be.True(t, bag.HasErrors())
	fn, ok := arenas.Stmts.FunctionDef(file.Body[0])
	be.True(t, ok)
	be.Equal(t, len(fn.Body), 2)
	be.Equal(t, arenas.Stmts.Get(fn.Body[0]).Kind, ast.StmtBad)
	be.Equal(t, arenas.Stmts.Get(fn.Body[1]).Kind, ast.StmtReturn)
}

func TestMissingColonSkipsBlock(t *testing.T) {
	src := "if x\n    y = 1\nz = 2\n"
	arenas, file, bag := parseSource(t, src)
	be.Equal(t, bag.Items()[0].Code, diag.SynExpectColon)
	be.Equal(t, len(file.Body), 2)
	be.Equal(t, arenas.Stmts.Get(file.Body[0]).Kind, ast.StmtBad)
	be.Equal(t, arenas.Stmts.Get(file.Body[1]).Kind, ast.StmtAssign)
}

func TestSyntaxErrorCodes(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"return 1\n", diag.SynUnexpectedToken},
		{"  x = 1\n", diag.SynUnexpectedIndent},
		{"else:\n    pass\n", diag.SynStrayClause},
		{"f(\n", diag.SynUnclosedParen},
		{"[1, 2\n", diag.SynUnclosedBracket},
		{"1 = x\n", diag.SynInvalidTarget},
		{"for x of y:\n    pass\n", diag.SynExpectIn},
		{"try:\n    pass\nx = 1\n", diag.SynExpectTryHandlers},
		{"def f(a=1, b):\n    pass\n", diag.SynBadParameters},
		{"if x:\npass\n", diag.SynExpectIndent},
		{"x = 1 2\n", diag.SynExpectNewline},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, _, bag := parseSource(t, tt.src)
			if !bag.HasErrors() {
				t.Fatal("expected a syntax error")
			}
			be.Equal(t, bag.Items()[0].Code, tt.code)
		})
	}
}

func TestMaxErrorsStopsReporting(t *testing.T) {
	src := strings.Repeat("x = = 1\n", 10)
	_, _, bag := parseSource(t, src)
	be.Equal(t, bag.Len(), 10)
}
