package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pyplus/internal/ast"
	"pyplus/internal/source"
)

// ASTNodeOutput — узел дерева для JSON-вывода.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// treeNode — общее промежуточное дерево для pretty и JSON.
type treeNode struct {
	label    string
	span     source.Span
	hasSpan  bool
	children []*treeNode
}

type treeBuilder struct {
	b  *ast.Builder
	fs *source.FileSet
}

func (tb *treeBuilder) str(id source.StringID) string { return tb.b.Str(id) }

// group — узел-метка без собственного span.
func group(label string, children ...*treeNode) *treeNode {
	out := &treeNode{label: label}
	for _, c := range children {
		if c != nil {
			out.children = append(out.children, c)
		}
	}
	return out
}

func (tb *treeBuilder) file(id ast.FileID) (*treeNode, error) {
	file := tb.b.Files.Get(id)
	if file == nil {
		return nil, fmt.Errorf("file %d not found", id)
	}
	header := "File"
	if tb.fs != nil {
		header = tb.fs.Get(file.Span.File).FormatPath("auto", tb.fs.BaseDir())
	}
	root := &treeNode{label: header, span: file.Span, hasSpan: true}
	root.children = tb.stmts(file.Body)
	return root, nil
}

func (tb *treeBuilder) stmts(ids []ast.StmtID) []*treeNode {
	out := make([]*treeNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, tb.stmt(id))
	}
	return out
}

func (tb *treeBuilder) body(label string, ids []ast.StmtID) *treeNode {
	if len(ids) == 0 {
		return nil
	}
	return group(label, tb.stmts(ids)...)
}

func (tb *treeBuilder) exprs(label string, ids []ast.ExprID) *treeNode {
	if len(ids) == 0 {
		return nil
	}
	n := group(label)
	for _, id := range ids {
		n.children = append(n.children, tb.expr(id))
	}
	return n
}

func (tb *treeBuilder) opt(label string, id ast.ExprID) *treeNode {
	if !id.IsValid() {
		return nil
	}
	return group(label, tb.expr(id))
}

func (tb *treeBuilder) stmt(id ast.StmtID) *treeNode {
	st := tb.b.Stmts.Get(id)
	if st == nil {
		return &treeNode{label: "<nil stmt>"}
	}
	n := &treeNode{label: st.Kind.String(), span: st.Span, hasSpan: true}
	s := tb.b.Stmts
	add := func(children ...*treeNode) {
		for _, c := range children {
			if c != nil {
				n.children = append(n.children, c)
			}
		}
	}
	switch st.Kind {
	case ast.StmtExpr:
		d, _ := s.Expr(id)
		add(tb.expr(d.Value))
	case ast.StmtAssign:
		d, _ := s.Assign(id)
		add(tb.exprs("Targets", d.Targets), tb.opt("Value", d.Value))
	case ast.StmtAugAssign:
		d, _ := s.AugAssign(id)
		n.label += " " + d.Op.String()
		add(tb.opt("Target", d.Target), tb.opt("Value", d.Value))
	case ast.StmtAnnAssign:
		d, _ := s.AnnAssign(id)
		add(tb.opt("Target", d.Target), tb.opt("Annotation", d.Annotation), tb.opt("Value", d.Value))
	case ast.StmtIf:
		d, _ := s.If(id)
		add(tb.opt("Test", d.Test), tb.body("Body", d.Body), tb.body("Orelse", d.Orelse))
	case ast.StmtWhile:
		d, _ := s.While(id)
		add(tb.opt("Test", d.Test), tb.body("Body", d.Body), tb.body("Orelse", d.Orelse))
	case ast.StmtFor:
		d, _ := s.For(id)
		if d.Async {
			n.label = "Async" + n.label
		}
		add(tb.opt("Target", d.Target), tb.opt("Iter", d.Iter), tb.body("Body", d.Body), tb.body("Orelse", d.Orelse))
	case ast.StmtReturn:
		d, _ := s.Return(id)
		add(tb.opt("Value", d.Value))
	case ast.StmtFunctionDef:
		d, _ := s.FunctionDef(id)
		n.label += " " + tb.str(d.Name)
		if d.Async {
			n.label = "Async" + n.label
		}
		add(tb.exprs("Decorators", d.Decorators), tb.params(d.Params), tb.opt("Returns", d.Returns), tb.body("Body", d.Body))
	case ast.StmtClassDef:
		d, _ := s.ClassDef(id)
		n.label += " " + tb.str(d.Name)
		add(tb.exprs("Decorators", d.Decorators), tb.exprs("Bases", d.Bases), tb.keywords(d.Keywords), tb.body("Body", d.Body))
	case ast.StmtImport:
		d, _ := s.Import(id)
		n.label += " " + tb.aliases(d.Names)
	case ast.StmtImportFrom:
		d, _ := s.ImportFrom(id)
		n.label += fmt.Sprintf(" %s%s: %s", strings.Repeat(".", d.Level), tb.str(d.Module), tb.aliases(d.Names))
	case ast.StmtGlobal, ast.StmtNonlocal:
		d, _ := s.NamesOf(id)
		names := make([]string, len(d.Names))
		for i, nm := range d.Names {
			names[i] = tb.str(nm)
		}
		n.label += " " + strings.Join(names, ", ")
	case ast.StmtDel:
		d, _ := s.Del(id)
		add(tb.exprs("Targets", d.Targets))
	case ast.StmtAssert:
		d, _ := s.Assert(id)
		add(tb.opt("Test", d.Test), tb.opt("Msg", d.Msg))
	case ast.StmtRaise:
		d, _ := s.Raise(id)
		add(tb.opt("Exc", d.Exc), tb.opt("Cause", d.Cause))
	case ast.StmtTry:
		d, _ := s.Try(id)
		add(tb.body("Body", d.Body))
		for _, h := range d.Handlers {
			label := "Handler"
			if h.Name != source.NoStringID {
				label += " as " + tb.str(h.Name)
			}
			hn := group(label, tb.opt("Type", h.Type), tb.body("Body", h.Body))
			hn.span, hn.hasSpan = h.Span, true
			add(hn)
		}
		add(tb.body("Orelse", d.Orelse), tb.body("Finally", d.Finalbody))
	case ast.StmtWith:
		d, _ := s.With(id)
		if d.Async {
			n.label = "Async" + n.label
		}
		for _, it := range d.Items {
			add(group("Item", tb.opt("Context", it.Context), tb.opt("Vars", it.Vars)))
		}
		add(tb.body("Body", d.Body))
	case ast.StmtBad:
		d, _ := s.Bad(id)
		n.label += ": " + d.Reason
	}
	return n
}

func (tb *treeBuilder) aliases(names []ast.Alias) string {
	parts := make([]string, len(names))
	for i, a := range names {
		parts[i] = tb.str(a.Name)
		if a.AsName != source.NoStringID {
			parts[i] += " as " + tb.str(a.AsName)
		}
	}
	return strings.Join(parts, ", ")
}

func (tb *treeBuilder) params(p ast.Params) *treeNode {
	all := p.All()
	if len(all) == 0 {
		return nil
	}
	n := group("Params")
	for _, prm := range all {
		label := tb.str(prm.Name)
		switch {
		case p.Vararg != nil && prm.Span == p.Vararg.Span:
			label = "*" + label
		case p.Kwarg != nil && prm.Span == p.Kwarg.Span:
			label = "**" + label
		}
		pn := group(label, tb.opt("Annotation", prm.Annotation), tb.opt("Default", prm.Default))
		pn.span, pn.hasSpan = prm.Span, true
		n.children = append(n.children, pn)
	}
	return n
}

func (tb *treeBuilder) keywords(kws []ast.Keyword) *treeNode {
	if len(kws) == 0 {
		return nil
	}
	n := group("Keywords")
	for _, kw := range kws {
		label := "**"
		if kw.Name != source.NoStringID {
			label = tb.str(kw.Name) + "="
		}
		kn := group(label, tb.expr(kw.Value))
		kn.span, kn.hasSpan = kw.Span, true
		n.children = append(n.children, kn)
	}
	return n
}

func (tb *treeBuilder) expr(id ast.ExprID) *treeNode {
	e := tb.b.Exprs.Get(id)
	if e == nil {
		return &treeNode{label: "<nil expr>"}
	}
	n := &treeNode{label: e.Kind.String(), span: e.Span, hasSpan: true}
	x := tb.b.Exprs
	add := func(children ...*treeNode) {
		for _, c := range children {
			if c != nil {
				n.children = append(n.children, c)
			}
		}
	}
	switch e.Kind {
	case ast.ExprName:
		d, _ := x.Name(id)
		n.label += " " + tb.str(d.Name)
	case ast.ExprConst:
		d, _ := x.Const(id)
		n.label += " " + constLabel(d, tb.str(d.Value))
	case ast.ExprUnary:
		d, _ := x.Unary(id)
		n.label += " " + d.Op.String()
		add(tb.expr(d.Operand))
	case ast.ExprBinary:
		d, _ := x.Binary(id)
		n.label += " " + d.Op.String()
		add(tb.expr(d.Left), tb.expr(d.Right))
	case ast.ExprBoolOp:
		d, _ := x.BoolOp(id)
		n.label += " " + d.Op.String()
		for _, v := range d.Values {
			add(tb.expr(v))
		}
	case ast.ExprCompare:
		d, _ := x.Compare(id)
		ops := make([]string, len(d.Ops))
		for i, op := range d.Ops {
			ops[i] = op.String()
		}
		n.label += " " + strings.Join(ops, ", ")
		add(tb.expr(d.Left))
		for _, c := range d.Comparators {
			add(tb.expr(c))
		}
	case ast.ExprCall:
		d, _ := x.Call(id)
		add(tb.opt("Func", d.Func), tb.exprs("Args", d.Args), tb.keywords(d.Keywords))
	case ast.ExprAttribute:
		d, _ := x.Attribute(id)
		n.label += " ." + tb.str(d.Attr)
		add(tb.expr(d.Value))
	case ast.ExprSubscript:
		d, _ := x.Subscript(id)
		add(tb.opt("Value", d.Value), tb.opt("Index", d.Index))
	case ast.ExprSlice:
		d, _ := x.Slice(id)
		add(tb.opt("Lower", d.Lower), tb.opt("Upper", d.Upper), tb.opt("Step", d.Step))
	case ast.ExprList, ast.ExprTuple, ast.ExprSet:
		d, _ := x.Seq(id)
		for _, el := range d.Elts {
			add(tb.expr(el))
		}
	case ast.ExprDict:
		d, _ := x.Dict(id)
		for i, v := range d.Values {
			add(group("Entry", tb.opt("Key", d.Keys[i]), tb.expr(v)))
		}
	case ast.ExprComprehension:
		d, _ := x.Comprehension(id)
		add(tb.opt("Elt", d.Elt), tb.opt("Value", d.Value))
		for _, g := range d.Generators {
			add(group("For", tb.opt("Target", g.Target), tb.opt("Iter", g.Iter), tb.exprs("Ifs", g.Ifs)))
		}
	case ast.ExprLambda:
		d, _ := x.Lambda(id)
		add(tb.params(d.Params), tb.opt("Body", d.Body))
	case ast.ExprIfExp:
		d, _ := x.IfExp(id)
		add(tb.opt("Test", d.Test), tb.opt("Body", d.Body), tb.opt("Orelse", d.Orelse))
	case ast.ExprStarred:
		d, _ := x.Starred(id)
		if d.Double {
			n.label = "DoubleStarred"
		}
		add(tb.expr(d.Value))
	case ast.ExprYield:
		d, _ := x.Yield(id)
		if d.From {
			n.label = "YieldFrom"
		}
		add(tb.opt("Value", d.Value))
	case ast.ExprAwait:
		d, _ := x.Await(id)
		add(tb.expr(d.Value))
	case ast.ExprNamed:
		d, _ := x.Named(id)
		add(tb.opt("Target", d.Target), tb.opt("Value", d.Value))
	}
	return n
}

func constLabel(d *ast.ExprConstData, value string) string {
	switch d.Kind {
	case ast.ConstString, ast.ConstBytes:
		prefix := ""
		if d.FString {
			prefix = "f"
		}
		return d.Kind.String() + " " + prefix + strconv.Quote(value)
	case ast.ConstBool:
		return d.Kind.String() + " " + strconv.FormatBool(d.Bool)
	case ast.ConstNone, ast.ConstEllipsis:
		return d.Kind.String()
	default:
		return d.Kind.String() + " " + value
	}
}

// FormatASTPretty печатает дерево с ветками ├─ └─.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	tb := &treeBuilder{b: builder, fs: fs}
	root, err := tb.file(fileID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (span: %s)\n", root.label, formatSpan(root.span, fs))
	printChildren(w, root, "", fs)
	return nil
}

func printChildren(w io.Writer, n *treeNode, prefix string, fs *source.FileSet) {
	for i, c := range n.children {
		branch, next := "├─ ", "│  "
		if i == len(n.children)-1 {
			branch, next = "└─ ", "   "
		}
		if c.hasSpan {
			fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, c.label, formatSpan(c.span, fs))
		} else {
			fmt.Fprintf(w, "%s%s%s\n", prefix, branch, c.label)
		}
		printChildren(w, c, prefix+next, fs)
	}
}

// FormatASTJSON выводит то же дерево в JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	tb := &treeBuilder{b: builder}
	root, err := tb.file(fileID)
	if err != nil {
		return err
	}
	root.label = "File"
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toOutput(root))
}

func toOutput(n *treeNode) ASTNodeOutput {
	out := ASTNodeOutput{Type: n.label, Span: n.span}
	for _, c := range n.children {
		out.Children = append(out.Children, toOutput(c))
	}
	return out
}

// formatSpan formats a source.Span as "startLine:startCol-endLine:endCol",
// or as raw offsets when no FileSet is available.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
