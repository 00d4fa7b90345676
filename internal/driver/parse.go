package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/lexer"
	"pyplus/internal/parser"
	"pyplus/internal/source"
	"pyplus/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
	// SyntaxErrors считает и ошибки, не попавшие в Bag из-за лимита.
	SyntaxErrors uint
}

// Parse загружает и разбирает один файл.
func Parse(ctx context.Context, filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(diagLimit(maxDiagnostics))

	builder, astFile, syntaxErrors, err := parseFile(ctx, file, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &ParseResult{
		FileSet:      fs,
		File:         file,
		Builder:      builder,
		FileID:       astFile,
		Bag:          bag,
		SyntaxErrors: syntaxErrors,
	}, nil
}

// parseFile лексит и разбирает file, складывая LEX/SYN диагностики в bag.
func parseFile(ctx context.Context, file *source.File, bag *diag.Bag, maxDiagnostics int) (*ast.Builder, ast.FileID, uint, error) {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, ast.NoFileID, 0, fmt.Errorf("invalid diagnostics limit: %w", err)
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	// лексер и восстановление парсера могут сообщить одно и то же место дважды
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	result := parser.ParseFile(file, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	span.WithExtra("syntax_errors", fmt.Sprint(result.Errors))
	return builder, result.File, result.Errors, nil
}
