package fuzztests

import (
	"testing"

	"pyplus/internal/diag"
	"pyplus/internal/lexer"
	"pyplus/internal/source"
	"pyplus/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.py", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		indent := 0
		// каждый токен должен сдвигать позицию, иначе лексер зациклится
		for steps := 0; ; steps++ {
			if steps > 4*len(input)+64 {
				t.Fatalf("lexer did not reach EOF on %q", input)
			}
			tok := lx.Next()
			switch tok.Kind {
			case token.Indent:
				indent++
			case token.Dedent:
				indent--
			}
			if indent < 0 {
				t.Fatalf("dedent below zero on %q", input)
			}
			if tok.Kind.IsEOF() {
				break
			}
		}
		if indent != 0 {
			t.Fatalf("unbalanced indentation (%d) on %q", indent, input)
		}
	})
}
