package ast

// Visitor получает узлы в порядке обхода в глубину; false у Stmt/Expr
// прекращает спуск в детей этого узла.
type Visitor struct {
	Stmt func(id StmtID, depth int) bool
	Expr func(id ExprID, depth int) bool
}

// Walk обходит операторы body и все вложенные выражения.
func (b *Builder) Walk(body []StmtID, v Visitor) {
	for _, id := range body {
		b.walkStmt(id, 0, v)
	}
}

func (b *Builder) walkStmt(id StmtID, depth int, v Visitor) {
	if v.Stmt != nil && !v.Stmt(id, depth) {
		return
	}
	for _, e := range b.StmtExprs(id) {
		b.walkExpr(e, depth+1, v)
	}
	for _, body := range b.StmtBodies(id) {
		for _, child := range body {
			b.walkStmt(child, depth+1, v)
		}
	}
}

func (b *Builder) walkExpr(id ExprID, depth int, v Visitor) {
	if !id.IsValid() {
		return
	}
	if v.Expr != nil && !v.Expr(id, depth) {
		return
	}
	for _, child := range b.ExprChildren(id) {
		b.walkExpr(child, depth+1, v)
	}
}

// StmtExprs returns the expressions directly owned by a statement, in source order.
func (b *Builder) StmtExprs(id StmtID) []ExprID {
	st := b.Stmts.Get(id)
	if st == nil {
		return nil
	}
	var out []ExprID
	add := func(ids ...ExprID) {
		for _, e := range ids {
			if e.IsValid() {
				out = append(out, e)
			}
		}
	}
	switch st.Kind {
	case StmtExpr:
		d, _ := b.Stmts.Expr(id)
		add(d.Value)
	case StmtAssign:
		d, _ := b.Stmts.Assign(id)
		add(d.Targets...)
		add(d.Value)
	case StmtAugAssign:
		d, _ := b.Stmts.AugAssign(id)
		add(d.Target, d.Value)
	case StmtAnnAssign:
		d, _ := b.Stmts.AnnAssign(id)
		add(d.Target, d.Annotation, d.Value)
	case StmtIf:
		d, _ := b.Stmts.If(id)
		add(d.Test)
	case StmtWhile:
		d, _ := b.Stmts.While(id)
		add(d.Test)
	case StmtFor:
		d, _ := b.Stmts.For(id)
		add(d.Target, d.Iter)
	case StmtReturn:
		d, _ := b.Stmts.Return(id)
		add(d.Value)
	case StmtFunctionDef:
		d, _ := b.Stmts.FunctionDef(id)
		add(d.Decorators...)
		add(paramExprs(&d.Params)...)
		add(d.Returns)
	case StmtClassDef:
		d, _ := b.Stmts.ClassDef(id)
		add(d.Decorators...)
		add(d.Bases...)
		for _, kw := range d.Keywords {
			add(kw.Value)
		}
	case StmtDel:
		d, _ := b.Stmts.Del(id)
		add(d.Targets...)
	case StmtAssert:
		d, _ := b.Stmts.Assert(id)
		add(d.Test, d.Msg)
	case StmtRaise:
		d, _ := b.Stmts.Raise(id)
		add(d.Exc, d.Cause)
	case StmtTry:
		d, _ := b.Stmts.Try(id)
		for _, h := range d.Handlers {
			add(h.Type)
		}
	case StmtWith:
		d, _ := b.Stmts.With(id)
		for _, it := range d.Items {
			add(it.Context, it.Vars)
		}
	}
	return out
}

// StmtBodies returns the nested statement lists of a compound statement.
func (b *Builder) StmtBodies(id StmtID) [][]StmtID {
	st := b.Stmts.Get(id)
	if st == nil {
		return nil
	}
	switch st.Kind {
	case StmtIf:
		d, _ := b.Stmts.If(id)
		return [][]StmtID{d.Body, d.Orelse}
	case StmtWhile:
		d, _ := b.Stmts.While(id)
		return [][]StmtID{d.Body, d.Orelse}
	case StmtFor:
		d, _ := b.Stmts.For(id)
		return [][]StmtID{d.Body, d.Orelse}
	case StmtFunctionDef:
		d, _ := b.Stmts.FunctionDef(id)
		return [][]StmtID{d.Body}
	case StmtClassDef:
		d, _ := b.Stmts.ClassDef(id)
		return [][]StmtID{d.Body}
	case StmtTry:
		d, _ := b.Stmts.Try(id)
		out := [][]StmtID{d.Body}
		for _, h := range d.Handlers {
			out = append(out, h.Body)
		}
		return append(out, d.Orelse, d.Finalbody)
	case StmtWith:
		d, _ := b.Stmts.With(id)
		return [][]StmtID{d.Body}
	}
	return nil
}

// ExprChildren returns the direct sub-expressions of an expression.
func (b *Builder) ExprChildren(id ExprID) []ExprID {
	ex := b.Exprs.Get(id)
	if ex == nil {
		return nil
	}
	var out []ExprID
	add := func(ids ...ExprID) {
		for _, e := range ids {
			if e.IsValid() {
				out = append(out, e)
			}
		}
	}
	switch ex.Kind {
	case ExprUnary:
		d, _ := b.Exprs.Unary(id)
		add(d.Operand)
	case ExprBinary:
		d, _ := b.Exprs.Binary(id)
		add(d.Left, d.Right)
	case ExprBoolOp:
		d, _ := b.Exprs.BoolOp(id)
		add(d.Values...)
	case ExprCompare:
		d, _ := b.Exprs.Compare(id)
		add(d.Left)
		add(d.Comparators...)
	case ExprCall:
		d, _ := b.Exprs.Call(id)
		add(d.Func)
		add(d.Args...)
		for _, kw := range d.Keywords {
			add(kw.Value)
		}
	case ExprAttribute:
		d, _ := b.Exprs.Attribute(id)
		add(d.Value)
	case ExprSubscript:
		d, _ := b.Exprs.Subscript(id)
		add(d.Value, d.Index)
	case ExprSlice:
		d, _ := b.Exprs.Slice(id)
		add(d.Lower, d.Upper, d.Step)
	case ExprList, ExprTuple, ExprSet:
		d, _ := b.Exprs.Seq(id)
		add(d.Elts...)
	case ExprDict:
		d, _ := b.Exprs.Dict(id)
		for i := range d.Values {
			add(d.Keys[i], d.Values[i])
		}
	case ExprComprehension:
		d, _ := b.Exprs.Comprehension(id)
		add(d.Elt, d.Value)
		for _, g := range d.Generators {
			add(g.Target, g.Iter)
			add(g.Ifs...)
		}
	case ExprLambda:
		d, _ := b.Exprs.Lambda(id)
		add(paramExprs(&d.Params)...)
		add(d.Body)
	case ExprIfExp:
		d, _ := b.Exprs.IfExp(id)
		add(d.Body, d.Test, d.Orelse)
	case ExprStarred:
		d, _ := b.Exprs.Starred(id)
		add(d.Value)
	case ExprYield:
		d, _ := b.Exprs.Yield(id)
		add(d.Value)
	case ExprAwait:
		d, _ := b.Exprs.Await(id)
		add(d.Value)
	case ExprNamed:
		d, _ := b.Exprs.Named(id)
		add(d.Target, d.Value)
	}
	return out
}

func paramExprs(p *Params) []ExprID {
	var out []ExprID
	for _, prm := range p.All() {
		out = append(out, prm.Annotation, prm.Default)
	}
	return out
}
