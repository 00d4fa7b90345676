package fuzztests

import (
	"context"
	"testing"
	"time"

	"pyplus/internal/ast"
	"pyplus/internal/cpp"
	"pyplus/internal/diag"
	"pyplus/internal/lexer"
	"pyplus/internal/parser"
	"pyplus/internal/source"
	"pyplus/internal/testkit"
	"pyplus/internal/translate"
)

// parseTimeout — дольше этого разбор одного входа считается зависанием.
const parseTimeout = 5 * time.Second

func parseInput(input []byte) (*source.File, *ast.Builder, parser.Result) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fuzz.py", input)
	file := fs.Get(fileID)

	bag := diag.NewBag(128)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(file, lx, builder, parser.Options{Reporter: reporter, MaxErrors: 128})
	return file, builder, res
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file, builder, res := parseInput(clampInput(input))
		if res.Errors > 0 {
			return
		}
		if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, input)
		}
	})
}

// FuzzParserNoHang ловит зацикливание восстановления после ошибок.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("def f(:\n    pass\n"))
	f.Add([]byte("if x\n    y = 1\n"))
	f.Add([]byte("x = [1, 2\ny = 3\n"))
	f.Add([]byte("((((((((((\n"))
	f.Add([]byte("class :\n  def\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _ = parseInput(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzTranslateRenders прогоняет весь конвейер: перевод не должен паниковать,
// а результат всегда содержит main.
func FuzzTranslateRenders(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		file, builder, res := parseInput(clampInput(input))
		out := translate.Translate(context.Background(), file, builder, res.File, translate.Options{Name: "fuzz"})
		text := cpp.Render(out.File, cpp.RenderOptions{Indent: 4})
		if len(text) == 0 {
			t.Fatalf("empty output for %q", input)
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
