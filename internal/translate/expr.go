package translate

import (
	"errors"
	"fmt"
	"strings"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/ported"
	"pyplus/internal/source"
	"pyplus/internal/symbols"
	"pyplus/internal/types"
)

var binaryOps = map[ast.BinaryOp]string{
	ast.OpAdd:    "+",
	ast.OpSub:    "-",
	ast.OpMult:   " * ",
	ast.OpMod:    " % ",
	ast.OpLShift: " << ",
	ast.OpRShift: " >> ",
	ast.OpBitOr:  " | ",
	ast.OpBitAnd: " & ",
	ast.OpBitXor: " ^ ",
}

var unaryOps = map[ast.UnaryOp]string{
	ast.OpNot:    "!",
	ast.OpUSub:   "-",
	ast.OpUAdd:   "+",
	ast.OpInvert: "~",
}

var cmpOps = map[ast.CmpOp]string{
	ast.CmpEq:    " == ",
	ast.CmpNotEq: " != ",
	ast.CmpLt:    " < ",
	ast.CmpLtE:   " <= ",
	ast.CmpGt:    " > ",
	ast.CmpGtE:   " >= ",
}

var boolOps = map[ast.BoolOp]string{
	ast.OpAnd: " && ",
	ast.OpOr:  " || ",
}

// expr переводит выражение в текст C++ и выводит его тип.
func (t *Translator) expr(scope symbols.ScopeID, id ast.ExprID) (string, types.Tag, error) {
	if !id.IsValid() {
		return "", types.Auto, unsupported(diag.TrnUnsupported, source.Span{}, "missing expression")
	}
	e := t.b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprConst:
		c, _ := t.b.Exprs.Const(id)
		return t.constant(id, c)
	case ast.ExprName:
		return t.name(scope, id)
	case ast.ExprUnary:
		return t.unary(scope, id)
	case ast.ExprBinary:
		return t.binary(scope, id)
	case ast.ExprBoolOp:
		return t.boolOp(scope, id)
	case ast.ExprCompare:
		return t.compare(scope, id)
	case ast.ExprCall:
		return t.call(scope, id)
	default:
		return "", types.Auto, unsupported(diag.TrnUnsupported, e.Span, e.Kind.String()+" expression")
	}
}

func (t *Translator) name(scope symbols.ScopeID, id ast.ExprID) (string, types.Tag, error) {
	name, _ := t.b.Name(id)
	sym, err := t.tbl.FindSymbol(scope, name)
	if errors.Is(err, symbols.ErrNotFound) {
		return "", types.Auto, unsupported(diag.TrnUnsupported, t.b.Exprs.Get(id).Span, fmt.Sprintf("name %q is not defined", name))
	}
	if err != nil {
		return "", types.Auto, fmt.Errorf("resolve %s: %w", name, err)
	}
	return name, t.tbl.Type(sym), nil
}

// unary: логическое отрицание даёт bool, остальные операторы — int.
func (t *Translator) unary(scope symbols.ScopeID, id ast.ExprID) (string, types.Tag, error) {
	u, _ := t.b.Exprs.Unary(id)
	op, ok := unaryOps[u.Op]
	if !ok {
		return "", types.Auto, unsupported(diag.TrnUnsupported, t.b.Exprs.Get(id).Span, "unary "+u.Op.String())
	}
	text, _, err := t.expr(scope, u.Operand)
	if err != nil {
		return "", types.Auto, err
	}
	tag := types.Int
	if u.Op == ast.OpNot {
		tag = types.Bool
	}
	return "(" + op + text + ")", tag, nil
}

func (t *Translator) binary(scope symbols.ScopeID, id ast.ExprID) (string, types.Tag, error) {
	bin, _ := t.b.Exprs.Binary(id)
	// левый операнд целиком раньше правого: порядок include детерминирован
	l, lt, err := t.expr(scope, bin.Left)
	if err != nil {
		return "", types.Auto, err
	}
	r, rt, err := t.expr(scope, bin.Right)
	if err != nil {
		return "", types.Auto, err
	}
	return t.binaryText(bin.Op, l, lt, r, rt, t.b.Exprs.Get(id).Span)
}

func (t *Translator) binaryText(op ast.BinaryOp, l string, lt types.Tag, r string, rt types.Tag, sp source.Span) (string, types.Tag, error) {
	switch op {
	case ast.OpPow:
		t.require("math.h")
		return "(pow(" + l + ", " + r + "))", types.Float, nil
	case ast.OpFloorDiv:
		text := l + " / " + r
		if lt != types.Int || rt != types.Int {
			text = "(int)(" + text + ")"
		}
		return "(" + text + ")", types.Int, nil
	case ast.OpDiv:
		text := l + " / " + r
		if lt != types.Float || rt != types.Float {
			text = "(double)" + text
		}
		return "(" + text + ")", types.Float, nil
	}
	sym, ok := binaryOps[op]
	if !ok {
		return "", types.Auto, unsupported(diag.TrnUnsupported, sp, "operator "+op.String())
	}
	return "(" + l + sym + r + ")", types.Widen(lt, rt), nil
}

func (t *Translator) boolOp(scope symbols.ScopeID, id ast.ExprID) (string, types.Tag, error) {
	bo, _ := t.b.Exprs.BoolOp(id)
	sp := t.b.Exprs.Get(id).Span
	if len(bo.Values) < 2 {
		return "", types.Auto, unsupported(diag.TrnUnsupported, sp, "boolean operator with fewer than two operands")
	}
	texts := make([]string, len(bo.Values))
	var common types.Tag
	for i, v := range bo.Values {
		text, tag, err := t.expr(scope, v)
		if err != nil {
			return "", types.Auto, err
		}
		texts[i] = text
		switch {
		case i == 0:
			common = tag
		case common != tag:
			common = types.Auto
		}
	}
	return "(" + strings.Join(texts, boolOps[bo.Op]) + ")", common, nil
}

// compare: цепочка a < b < c раскрывается в попарные сравнения через &&.
func (t *Translator) compare(scope symbols.ScopeID, id ast.ExprID) (string, types.Tag, error) {
	cmp, _ := t.b.Exprs.Compare(id)
	sp := t.b.Exprs.Get(id).Span
	for _, op := range cmp.Ops {
		if _, ok := cmpOps[op]; !ok {
			return "", types.Auto, unsupported(diag.TrnUnsupported, sp, "comparison "+op.String())
		}
	}
	left, _, err := t.expr(scope, cmp.Left)
	if err != nil {
		return "", types.Auto, err
	}
	pairs := make([]string, 0, len(cmp.Ops))
	for i, op := range cmp.Ops {
		right, _, err := t.expr(scope, cmp.Comparators[i])
		if err != nil {
			return "", types.Auto, err
		}
		pairs = append(pairs, "("+left+cmpOps[op]+right+")")
		left = right
	}
	if len(pairs) == 1 {
		return pairs[0], types.Bool, nil
	}
	return "(" + strings.Join(pairs, " && ") + ")", types.Bool, nil
}

func (t *Translator) call(scope symbols.ScopeID, id ast.ExprID) (string, types.Tag, error) {
	c, _ := t.b.Exprs.Call(id)
	sp := t.b.Exprs.Get(id).Span
	name, ok := t.b.Name(c.Func)
	if !ok {
		return "", types.Auto, unsupportedReason(ReasonInvalidCall, diag.TrnInvalidCall, sp, "callee is not a plain name")
	}
	if len(c.Keywords) > 0 {
		return "", types.Auto, unsupported(diag.TrnUnsupported, sp, "keyword arguments in call to "+name)
	}
	args := make([]ported.Arg, 0, len(c.Args))
	for _, a := range c.Args {
		if t.b.Exprs.Get(a).Kind == ast.ExprStarred {
			return "", types.Auto, unsupported(diag.TrnUnsupported, sp, "starred argument in call to "+name)
		}
		text, tag, err := t.expr(scope, a)
		if err != nil {
			return "", types.Auto, err
		}
		args = append(args, ported.Arg{Text: text, Type: tag})
	}

	if types.IsCastName(name) {
		return t.cast(name, args, sp)
	}
	if fn, ok := t.tbl.Function(name); ok {
		return t.userCall(fn, name, args, sp)
	}
	if rule, ok := ported.Lookup(name); ok {
		res, err := rule(args)
		if err != nil {
			return "", types.Auto, unsupported(diag.TrnArgumentCount, sp, err.Error())
		}
		t.require(res.Include)
		return res.Text, res.Type, nil
	}
	return "", types.Auto, unsupportedReason(ReasonNotInScope, diag.TrnCallNotInScope, sp, name)
}

func joinArgs(args []ported.Arg) string {
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.Text
	}
	return strings.Join(texts, ", ")
}

func (t *Translator) cast(name string, args []ported.Arg, sp source.Span) (string, types.Tag, error) {
	if len(args) == 0 {
		return "", types.Auto, unsupported(diag.TrnArgumentCount, sp, name+"() without arguments")
	}
	tag, _ := types.FromTypeName(name)
	if tag == types.String {
		if len(args) == 1 && args[0].Type == types.String {
			return args[0].Text, types.String, nil
		}
		t.require("string")
		return "std::to_string(" + joinArgs(args) + ")", types.String, nil
	}
	return "(" + tag.CppName() + ")(" + joinArgs(args) + ")", tag, nil
}

// userCall проверяет арность и расширяет ячейки параметров типами аргументов.
func (t *Translator) userCall(fn symbols.ScopeID, name string, args []ported.Arg, sp source.Span) (string, types.Tag, error) {
	sc := t.tbl.Scopes.Get(fn)
	if len(args) < sc.Required || len(args) > len(sc.Params) {
		return "", types.Auto, unsupported(diag.TrnArgumentCount, sp,
			fmt.Sprintf("%s() takes %d to %d arguments, got %d", name, sc.Required, len(sc.Params), len(args)))
	}
	tags := make([]types.Tag, len(args))
	for i, a := range args {
		tags[i] = a.Type
	}
	t.tbl.UpdateParameterTypes(fn, tags)
	return name + "(" + joinArgs(args) + ")", t.callReturn(fn), nil
}
