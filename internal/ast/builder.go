package ast

import (
	"pyplus/internal/source"
)

type Hints struct{ Files, Stmts, Exprs uint }

// Builder владеет всеми аренами одного разбора и интернированными строками.
type Builder struct {
	Files   *Files
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 9
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Files:   NewFiles(hints.Files),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Strings: strings,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.Files.Get(file)
	f.Body = append(f.Body, stmt)
}

// Name returns the identifier text behind a Name expression.
func (b *Builder) Name(id ExprID) (string, bool) {
	n, ok := b.Exprs.Name(id)
	if !ok {
		return "", false
	}
	return b.Strings.Lookup(n.Name)
}

// Str resolves an interned string; unknown IDs yield "".
func (b *Builder) Str(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}
