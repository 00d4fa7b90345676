package translate

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/sirkon/deepequal"

	"pyplus/internal/ast"
	"pyplus/internal/cpp"
	"pyplus/internal/diag"
	"pyplus/internal/lexer"
	"pyplus/internal/parser"
	"pyplus/internal/source"
	"pyplus/internal/trace"
	"pyplus/internal/types"
)

// convert разбирает src, переводит и рендерит; диагностики перевода
// возвращаются отдельно от диагностик разбора.
func convert(t *testing.T, ctx context.Context, src string) (string, *Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("prog.py", []byte(src))
	file := fs.Get(id)
	parseRep := &diag.BagReporter{Bag: diag.NewBag(100)}
	lx := lexer.New(file, lexer.Options{Reporter: parseRep})
	b := ast.NewBuilder(ast.Hints{}, nil)
	pr := parser.ParseFile(file, lx, b, parser.Options{Reporter: parseRep})
	bag := diag.NewBag(100)
	res := Translate(ctx, file, b, pr.File, Options{Reporter: &diag.BagReporter{Bag: bag}})
	return cpp.Render(res.File, cpp.RenderOptions{}), res, bag
}

// functionBody — строки тела функции с заголовком header.
func functionBody(out, header string) []string {
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		if l != header || i+1 >= len(lines) || lines[i+1] != "{" {
			continue
		}
		body := []string{}
		for _, line := range lines[i+2:] {
			if line == "}" {
				return body
			}
			body = append(body, line)
		}
	}
	return nil
}

const entryHeader = "int main(int argc, char **argv)"

func mainBody(t *testing.T, src string) []string {
	t.Helper()
	out, _, _ := convert(t, context.Background(), src)
	return functionBody(out, entryHeader)
}

func checkLines[T comparable](t *testing.T, name string, want, got []T) {
	t.Helper()
	if !slices.Equal(want, got) {
		deepequal.SideBySide(t, name, want, got)
		t.FailNow()
	}
}

func codes(bag *diag.Bag) []diag.Code {
	out := []diag.Code{}
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestReassignmentRules(t *testing.T) {
	src := "x = 10\nx = 3.3\ny = 1.1\ny = 1\n"
	want := []string{
		"    int x = 10;",
		"    //TODO: " + ReasonTypeChange,
		"    /*x = 3.3*/",
		"    double y = 1.1;",
		"    y = 1;",
	}
	checkLines(t, "main", want, mainBody(t, src))
}

func TestFullProgram(t *testing.T) {
	src := `def add(a, b=3):
    """Adds."""
    return a + b

x = add(1, 2)
y = add(2.5)
print(x)
`
	out, res, bag := convert(t, context.Background(), src)
	want := strings.Join([]string{
		"#include <iostream>",
		"",
		"double add(double a, int b);",
		"",
		entryHeader,
		"{",
		"    double x = add(1, 2);",
		"    double y = add(2.5);",
		"    std::cout << x << std::endl;",
		"}",
		"",
		"double add(double a, int b=3)",
		"{",
		"    /*",
		"    Adds.",
		"    */",
		"    return (a+b);",
		"}",
		"",
	}, "\n")
	checkLines(t, "program", strings.Split(want, "\n"), strings.Split(out, "\n"))
	be.Equal(t, bag.Len(), 0)
	be.Equal(t, res.Fallbacks, 0)
}

func TestCallSiteBackPropagation(t *testing.T) {
	src := "def f(p):\n    return 0\n\nf(1)\nf(2.5)\n"
	_, res, _ := convert(t, context.Background(), src)
	fn, ok := res.Table.Function("f")
	be.True(t, ok)
	sc := res.Table.Scopes.Get(fn)
	be.Equal(t, res.Table.Type(sc.Params[0]), types.Widen(types.Int, types.Float))
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "division",
			src:  "a = 7\nb = 2\nc = a // b\nd = a / b\ne = 1.5 / 2.0\n",
			want: []string{
				"    int a = 7;",
				"    int b = 2;",
				"    int c = (a / b);",
				"    double d = ((double)a / b);",
				"    double e = (1.5 / 2.0);",
			},
		},
		{
			name: "floor division of floats",
			src:  "q = 7.5 // 2\n",
			want: []string{"    int q = ((int)(7.5 / 2));"},
		},
		{
			name: "chained comparison",
			src:  "a = 1\nb = 2\nc = 3\nf = a < b < c\n",
			want: []string{
				"    int a = 1;",
				"    int b = 2;",
				"    int c = 3;",
				"    bool f = ((a < b) && (b < c));",
			},
		},
		{
			name: "bool ops and unary",
			src:  "t = True\nu = not t\nv = t and u or False\nw = -5\n",
			want: []string{
				"    bool t = true;",
				"    bool u = (!t);",
				"    bool v = ((t && u) || false);",
				"    int w = (-5);",
			},
		},
		{
			name: "arithmetic widening",
			src:  "m = 2 * 3.5 + 1\nn = 7 % 3\n",
			want: []string{
				"    double m = ((2 * 3.5)+1);",
				"    int n = (7 % 3);",
			},
		},
		{
			name: "strings",
			src:  "s = \"a\\\"b\\n\"\n",
			want: []string{`    std::string s = "a\"b\n";`},
		},
		{
			name: "annotated",
			src:  "q: float = 1\nr: int\n",
			want: []string{
				"    double q = 1;",
				"    int r;",
			},
		},
		{
			name: "augmented",
			src:  "t = 1.5\nt += 1\nk = 1\nk += 0.5\n",
			want: []string{
				"    double t = 1.5;",
				"    t = (t+1);",
				"    int k = 1;",
				"    //TODO: " + ReasonTypeChange,
				"    /*k += 0.5*/",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkLines(t, tt.name, tt.want, mainBody(t, tt.src))
		})
	}
}

func TestCastsAndPorted(t *testing.T) {
	src := "import math\nn = int(5.4)\ns = str(n)\nr = sqrt(16)\np = 2 ** 3\n"
	out, res, _ := convert(t, context.Background(), src)
	checkLines(t, "main", []string{
		"    int n = (int)(5.4);",
		"    std::string s = std::to_string(n);",
		"    double r = sqrt(16);",
		"    double p = (pow(2, 3));",
	}, functionBody(out, entryHeader))
	checkLines(t, "includes", []string{"string", "math.h"}, res.File.Includes)
}

func TestIfElifElseWithComments(t *testing.T) {
	src := `x = 5  # five
# standalone
if x > 3:
    print(x)
elif x > 1:
    x = 2
else:
    # inside else
    x = 0
`
	want := []string{
		"    int x = 5; // five",
		"        // standalone",
		"    if ((x > 3))",
		"    {",
		"        std::cout << x << std::endl;",
		"    }",
		"    else if ((x > 1))",
		"    {",
		"        x = 2;",
		"    }",
		"    else",
		"    {",
		"        // inside else",
		"        x = 0;",
		"    }",
	}
	checkLines(t, "main", want, mainBody(t, src))
}

func TestWhileBreakContinue(t *testing.T) {
	src := "i = 0\nwhile i < 10:\n    i += 1\n    if i == 5:\n        continue\n    break\n"
	want := []string{
		"    int i = 0;",
		"    while ((i < 10))",
		"    {",
		"        i = (i+1);",
		"        if ((i == 5))",
		"        {",
		"            continue;",
		"        }",
		"        break;",
		"    }",
	}
	checkLines(t, "main", want, mainBody(t, src))
}

func TestCumulativeReturnType(t *testing.T) {
	src := "def g(n):\n    if n > 0:\n        return 1\n    return 2.5\n\nv = g(3)\n"
	out, _, _ := convert(t, context.Background(), src)
	be.True(t, strings.Contains(out, "double g(int n);\n"))
	checkLines(t, "g", []string{
		"    if ((n > 0))",
		"    {",
		"        return 1;",
		"    }",
		"    return 2.5;",
	}, functionBody(out, "double g(int n)"))
	checkLines(t, "main", []string{"    double v = g(3);"}, functionBody(out, entryHeader))
}

func TestFallbacks(t *testing.T) {
	src := "a = b = 1\nfoo(1)\nclass C:\n    pass\nw = 1\n"
	out, res, bag := convert(t, context.Background(), src)
	want := []string{
		"    //TODO: " + ReasonChained,
		"    /*a = b = 1*/",
		"    //TODO: " + ReasonNotInScope,
		"    /*foo(1)*/",
		"    //TODO: " + ReasonDefault,
		"    /*class C:",
		"        pass*/",
		"    int w = 1;",
	}
	checkLines(t, "main", want, functionBody(out, entryHeader))
	be.Equal(t, res.Fallbacks, 3)
	checkLines(t, "codes", []diag.Code{diag.TrnChainedAssign, diag.TrnCallNotInScope, diag.TrnUnsupported}, codes(bag))
	for _, d := range bag.Items() {
		be.Equal(t, d.Severity, diag.SevWarning)
	}
}

func TestUnparsedStatement(t *testing.T) {
	src := "z = = 2\nw = 1\n"
	body := mainBody(t, src)
	be.Equal(t, len(body), 3)
	be.Equal(t, body[0], "    //TODO: "+ReasonUnparsed)
	be.True(t, strings.HasPrefix(body[1], "    /*z = = 2"))
	be.Equal(t, body[2], "    int w = 1;")
}

func TestRejectedHeaders(t *testing.T) {
	src := "def f(*args):\n    return 1\n\ndef main():\n    return 2\n\nx = f(1)\n"
	_, res, bag := convert(t, context.Background(), src)
	be.Equal(t, len(res.File.Functions), 1)
	be.Equal(t, res.Fallbacks, 3)
	checkLines(t, "codes", []diag.Code{diag.TrnHeaderRejected, diag.TrnHeaderRejected, diag.TrnCallNotInScope}, codes(bag))
	_, ok := res.Table.Function("f")
	be.True(t, !ok)
}

func TestUserCallArity(t *testing.T) {
	src := "def h(a, b=1):\n    return a\n\nh()\nh(1, 2, 3)\nh(1)\n"
	_, _, bag := convert(t, context.Background(), src)
	checkLines(t, "codes", []diag.Code{diag.TrnArgumentCount, diag.TrnArgumentCount}, codes(bag))
}

func TestVoidDeclarationFallsBack(t *testing.T) {
	_, res, bag := convert(t, context.Background(), "x = print()\n")
	be.Equal(t, res.Fallbacks, 1)
	checkLines(t, "codes", []diag.Code{diag.TrnUnsupportedType}, codes(bag))
}

func TestUnusedExpressions(t *testing.T) {
	tests := []struct {
		src    string
		reason string
	}{
		{src: "'text'\n", reason: ReasonUnusedString},
		{src: "42\n", reason: ReasonUnusedConst},
		{src: "x = 1\nx + 1\n", reason: ReasonUnusedValue},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			body := mainBody(t, tt.src)
			be.True(t, len(body) >= 2)
			be.Equal(t, body[len(body)-2], "    //TODO: "+tt.reason)
		})
	}
}

func TestSemicolonGroupFallsBack(t *testing.T) {
	body := mainBody(t, "a = 1; b = 2\n")
	checkLines(t, "main", []string{
		"    //TODO: " + ReasonDefault,
		"    /*a = 1; b = 2*/",
	}, body)
}

func TestCommentsInsideFunctionRange(t *testing.T) {
	src := "def h():\n    # note\n    return 1\n# end\n"
	out, _, _ := convert(t, context.Background(), src)
	checkLines(t, "h", []string{"    // note", "    return 1;"}, functionBody(out, "int h()"))
	checkLines(t, "main", []string{"        // end"}, functionBody(out, entryHeader))
}

func TestInlineCommentStripsOneSpace(t *testing.T) {
	body := mainBody(t, "x = 10  # comment\ny = 2 #  two\n")
	checkLines(t, "main", []string{
		"    int x = 10; // comment",
		"    int y = 2; //  two",
	}, body)
}

func TestElseBodyOnElseLine(t *testing.T) {
	// ключ строки уже занят заголовком else
	src := "x = 1\nif x:\n    x = 2\nelse: x = 3\n"
	_, res, bag := convert(t, context.Background(), src)
	be.Equal(t, res.Fallbacks, 1)
	checkLines(t, "codes", []diag.Code{diag.TrnUnsupported}, codes(bag))
}

func TestFallbackEmitsTracePoint(t *testing.T) {
	rec := trace.NewRecorder(16, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), rec)
	convert(t, ctx, "a = b = 1\n")
	events := rec.Events()
	be.Equal(t, len(events), 1)
	be.Equal(t, events[0].Name, "fallback")
	be.Equal(t, events[0].Extra["line"], "1")
}

func TestElseColon(t *testing.T) {
	tests := []struct {
		raw string
		col int
		ok  bool
	}{
		{raw: "else:", col: 5, ok: true},
		{raw: "    else  :  # c", col: 11, ok: true},
		{raw: "elsewhere = 1", ok: false},
		{raw: "x = 1", ok: false},
	}
	for _, tt := range tests {
		col, ok := elseColon(tt.raw)
		be.Equal(t, ok, tt.ok)
		be.Equal(t, col, tt.col)
	}
}

func TestUnsupportedErrorUnwrap(t *testing.T) {
	err := unsupportedReason(ReasonChained, diag.TrnChainedAssign, source.Span{}, "")
	var ue *UnsupportedError
	be.True(t, errors.As(err, &ue))
	be.Equal(t, ue.Reason, ReasonChained)

	plain := asUnsupported(errors.New("boom"), source.Span{})
	be.Equal(t, plain.Reason, ReasonDefault)
	be.Equal(t, plain.Error(), ReasonDefault+": boom")
}

func TestReturnTypeFromCallSite(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		decls []string
		main  []string
	}{
		{
			name:  "direct call",
			src:   "def sub(a, b):\n    return a - b\n\nx = sub(1, 2)\n",
			decls: []string{"int sub(int a, int b);"},
			main:  []string{"    int x = sub(1, 2);"},
		},
		{
			name:  "through another function",
			src:   "def sub(a, b):\n    return a - b\n\ndef twice(v):\n    return sub(v, v) * 2\n\ny = twice(1.5)\n",
			decls: []string{"double sub(double a, double b);", "double twice(double v);"},
			main:  []string{"    double y = twice(1.5);"},
		},
		{
			name:  "recursive",
			src:   "def fib(n):\n    if n < 2:\n        return n\n    return fib(n - 1) + fib(n - 2)\n\nr = fib(10)\n",
			decls: []string{"int fib(int n);"},
			main:  []string{"    int r = fib(10);"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, bag := convert(t, context.Background(), tt.src)
			for _, d := range tt.decls {
				if !strings.Contains(out, d+"\n") {
					t.Fatalf("missing %q in\n%s", d, out)
				}
			}
			checkLines(t, "main", tt.main, functionBody(out, entryHeader))
			be.Equal(t, bag.Len(), 0)
		})
	}
}

func TestFallbackInFunctionReportedOnce(t *testing.T) {
	rec := trace.NewRecorder(16, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), rec)
	src := "def f(p):\n    a = b = p\n    return p\n\nz = f(1)\n"
	out, res, bag := convert(t, ctx, src)
	be.Equal(t, res.Fallbacks, 1)
	checkLines(t, "codes", []diag.Code{diag.TrnChainedAssign}, codes(bag))
	be.Equal(t, len(rec.Events()), 1)
	checkLines(t, "f", []string{
		"    //TODO: " + ReasonChained,
		"    /*a = b = p*/",
		"    return p;",
	}, functionBody(out, "int f(int p)"))
}

func TestMissingElseAnchor(t *testing.T) {
	src := "x = 1\nif x:\n    x = 2\nelse \\\n:\n    x = 3\n"
	out, res, bag := convert(t, context.Background(), src)
	be.Equal(t, res.Fallbacks, 1)
	checkLines(t, "codes", []diag.Code{diag.TrnElseNotFound}, codes(bag))
	checkLines(t, "main", []string{
		"    int x = 1;",
		"    //TODO: " + ReasonNoElse,
		"    /*if x:",
		"        x = 2",
		"    else \\",
		"    :",
		"        x = 3*/",
	}, functionBody(out, entryHeader))
}

func TestCommentTerminatorInVerbatim(t *testing.T) {
	t.Run("fallback", func(t *testing.T) {
		body := mainBody(t, "a = b = '*/'\nclass C:\n    s = '*/'\n")
		checkLines(t, "main", []string{
			"    //TODO: " + ReasonChained,
			"    //a = b = '*/'",
			"    //TODO: " + ReasonDefault,
			"    //class C:",
			"    //    s = '*/'",
		}, body)
	})
	t.Run("docstring", func(t *testing.T) {
		src := "def f():\n    \"\"\"Ends */ early.\n    Second.\"\"\"\n    return 1\n\nf()\n"
		out, _, _ := convert(t, context.Background(), src)
		checkLines(t, "f", []string{
			"    //Ends */ early.",
			"    //Second.",
			"    return 1;",
		}, functionBody(out, "int f()"))
	})
}

func TestBlockComment(t *testing.T) {
	be.Equal(t, blockComment("x = 1"), "/*x = 1*/")
	be.Equal(t, blockComment("s = '*/'\n    t = 2"), "//s = '*/'\n//    t = 2")
	be.Equal(t, docComment("\n  one\n  two\n"), "/*\none\ntwo\n*/")
	be.Equal(t, docComment("a */ b"), "//a */ b")
	be.Equal(t, docComment("   "), "/**/")
}

func TestCommentClosingBlockBody(t *testing.T) {
	src := "x = 1\nif x:\n    x = 2\n    # last\nelse:\n    x = 3\n# after\ny = 1\n"
	checkLines(t, "main", []string{
		"    int x = 1;",
		"    if (x)",
		"    {",
		"        x = 2;",
		"        // last",
		"    }",
		"    else",
		"    {",
		"        x = 3;",
		"    }",
		"        // after",
		"    int y = 1;",
	}, mainBody(t, src))
}
