package parser

import (
	"fmt"
	"strings"
	"testing"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/lexer"
	"pyplus/internal/source"
	"pyplus/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil || bag.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range bag.Items() {
		fmt.Fprintf(&sb, "%s %s\n", d.Code.ID(), d.Message)
	}
	return sb.String()
}

// parseSource разбирает src и возвращает арены, корневой файл и собранные диагностики.
func parseSource(t *testing.T, src string) (*ast.Builder, *ast.File, *diag.Bag) {
	t.Helper()
	arenas, _, fileID, bag := parseWithSource(t, src)
	return arenas, arenas.Files.Get(fileID), bag
}

func parseWithSource(t *testing.T, src string) (*ast.Builder, *source.File, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(src))
	file := fs.Get(fileID)
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	arenas := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(file, lx, arenas, Options{Reporter: reporter})
	return arenas, file, res.File, bag
}

// parseClean — как parseSource, но падает на любой диагностике.
func parseClean(t *testing.T, src string) (*ast.Builder, *ast.File) {
	t.Helper()
	arenas, sf, fileID, bag := parseWithSource(t, src)
	if bag.Len() > 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diagnosticsSummary(bag))
	}
	if err := testkit.CheckSpanInvariants(arenas, fileID, sf); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return arenas, arenas.Files.Get(fileID)
}

// onlyExpr разбирает одно выражение-оператор и возвращает его значение.
func onlyExpr(t *testing.T, src string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	arenas, file := parseClean(t, src)
	if len(file.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(file.Body))
	}
	data, ok := arenas.Stmts.Expr(file.Body[0])
	if !ok {
		t.Fatalf("expected expression statement, got %v", arenas.Stmts.Get(file.Body[0]).Kind)
	}
	return arenas, data.Value
}
