package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/lexer"
	"pyplus/internal/parser"
	"pyplus/internal/source"
	"pyplus/internal/token"
)

func parseSample(t *testing.T, src string) (*source.FileSet, *ast.Builder, ast.FileID, *lexer.Lexer) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("prog.py", []byte(src))
	file := fs.Get(id)
	rep := &diag.BagReporter{Bag: diag.NewBag(10)}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(file, lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	be.Equal(t, rep.Bag.Len(), 0)
	return fs, b, res.File, lexer.New(file, lexer.Options{Reporter: rep})
}

func TestFormatASTPretty(t *testing.T) {
	src := "def add(a, b=2):\n    return a + b\nx = add(1)\n"
	fs, b, fileID, _ := parseSample(t, src)

	var buf bytes.Buffer
	be.Err(t, FormatASTPretty(&buf, b, fileID, fs), nil)
	out := buf.String()

	for _, want := range []string{
		"prog.py (span: 1:1-",
		"├─ FunctionDef add (span: 1:1-2:17)",
		"│  ├─ Params",
		"│  │  ├─ a (span: 1:9-1:10)",
		"│  │  └─ b (span: 1:12-1:15)",
		"│  │     └─ Default",
		"│  │        └─ Constant int 2",
		"BinOp Add",
		"└─ Assign (span: 3:1-3:11)",
		"Name add",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	fs, b, fileID, _ := parseSample(t, "if x:\n    pass\nelse:\n    y = 'a'\n")
	_ = fs

	var buf bytes.Buffer
	be.Err(t, FormatASTJSON(&buf, b, fileID), nil)

	var root ASTNodeOutput
	be.Err(t, json.Unmarshal(buf.Bytes(), &root), nil)
	be.Equal(t, root.Type, "File")
	be.Equal(t, len(root.Children), 1)

	ifNode := root.Children[0]
	be.Equal(t, ifNode.Type, "If")
	labels := make([]string, len(ifNode.Children))
	for i, c := range ifNode.Children {
		labels[i] = c.Type
	}
	be.Equal(t, labels, []string{"Test", "Body", "Orelse"})
	assign := ifNode.Children[2].Children[0]
	be.Equal(t, assign.Children[1].Children[0].Type, `Constant str "a"`)
}

func TestFormatTokens(t *testing.T) {
	fs, _, _, lx := parseSample(t, "x = 1  # one\n")
	toks := lx.All()

	var buf bytes.Buffer
	be.Err(t, FormatTokensPretty(&buf, toks, fs), nil)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	be.True(t, strings.HasPrefix(lines[0], "  1: Ident      \"x\""))
	be.True(t, strings.Contains(lines[0], "at 1:1-1:2"))
	be.True(t, strings.Contains(buf.String(), "(leading: space"))

	buf.Reset()
	be.Err(t, FormatTokensJSON(&buf, toks), nil)
	var out []TokenOutput
	be.Err(t, json.Unmarshal(buf.Bytes(), &out), nil)
	be.Equal(t, out[0].Kind, token.Ident.String())
	be.Equal(t, out[len(out)-1].Kind, token.EOF.String())
}
