package translate

import (
	"errors"
	"fmt"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/symbols"
	"pyplus/internal/types"
)

// registerHeaders — первый проход: заголовки всех def верхнего уровня
// попадают в реестр до обхода тел, чтобы вызовы вперёд разрешались.
func (t *Translator) registerHeaders(body []ast.StmtID) {
	for _, sid := range body {
		fd, ok := t.b.Stmts.FunctionDef(sid)
		if !ok {
			continue
		}
		id, err := t.registerHeader(sid, fd)
		if err != nil {
			t.rejected[sid] = err.Error()
			continue
		}
		t.defs[sid] = id
		t.defOf[id] = sid
	}
}

func (t *Translator) registerHeader(sid ast.StmtID, fd *ast.StmtFunctionDefData) (symbols.ScopeID, error) {
	name := t.b.Str(fd.Name)
	switch {
	case name == EntryName:
		return symbols.NoScopeID, fmt.Errorf("function name %q collides with the entry point", name)
	case len(fd.Decorators) > 0:
		return symbols.NoScopeID, errors.New("decorators are not supported")
	case fd.Async:
		return symbols.NoScopeID, errors.New("async functions are not supported")
	case fd.Params.Vararg != nil:
		return symbols.NoScopeID, errors.New("variadic parameters are not supported")
	case len(fd.Params.KwOnly) > 0 || fd.Params.BareStar:
		return symbols.NoScopeID, errors.New("keyword-only parameters are not supported")
	case len(fd.Params.PosOnly) > 0 || fd.Params.HasPosSep:
		return symbols.NoScopeID, errors.New("positional-only parameters are not supported")
	case fd.Params.Kwarg != nil:
		return symbols.NoScopeID, errors.New("keyword arguments are not supported")
	}

	specs := make([]symbols.ParamSpec, 0, len(fd.Params.Args))
	seenDefault := false
	for _, p := range fd.Params.Args {
		spec := symbols.ParamSpec{Name: t.b.Str(p.Name), Type: types.Auto}
		if p.Annotation.IsValid() {
			if tag, ok := t.annotationType(p.Annotation); ok {
				spec.Type, spec.Bound = tag, true
			}
		}
		if p.Default.IsValid() {
			text, tag, err := t.literalDefault(p.Default)
			if err != nil {
				return symbols.NoScopeID, fmt.Errorf("parameter %s: %w", spec.Name, err)
			}
			spec.Default = text
			if !spec.Bound {
				spec.Type, spec.Bound = tag, true
			}
			seenDefault = true
		} else if seenDefault {
			return symbols.NoScopeID, fmt.Errorf("parameter %s without default follows a defaulted one", spec.Name)
		}
		specs = append(specs, spec)
	}

	ret, retBound := types.Void, false
	if fd.Returns.IsValid() {
		if tag, ok := t.annotationType(fd.Returns); ok {
			ret, retBound = tag, true
			if tag == types.None {
				ret = types.Void
			}
		}
	}

	p := t.stmtPos(sid)
	id, err := t.tbl.NewFunction(name, p.Line, p.EndLine, specs, ret, retBound, false)
	if err != nil {
		return symbols.NoScopeID, fmt.Errorf("register %s: %w", name, err)
	}
	t.applySeed(id)
	fn := t.newFunction(id, name, p.Line, p.EndLine)
	t.out.Functions = append(t.out.Functions, fn)
	return id, nil
}

// annotationType понимает только простые имена типов.
func (t *Translator) annotationType(id ast.ExprID) (types.Tag, bool) {
	if c, ok := t.b.Exprs.Const(id); ok && c.Kind == ast.ConstNone {
		return types.None, true
	}
	name, ok := t.b.Name(id)
	if !ok {
		return types.Auto, false
	}
	return types.FromTypeName(name)
}

// literalDefault принимает литерал или литерал со знаком.
func (t *Translator) literalDefault(id ast.ExprID) (string, types.Tag, error) {
	target := id
	if u, ok := t.b.Exprs.Unary(id); ok && (u.Op == ast.OpUSub || u.Op == ast.OpUAdd) {
		target = u.Operand
	}
	c, ok := t.b.Exprs.Const(target)
	if !ok {
		return "", types.Auto, unsupported(diag.TrnHeaderRejected, t.b.Exprs.Get(id).Span, "default value is not a literal")
	}
	if target != id && c.Kind != ast.ConstInt && c.Kind != ast.ConstFloat {
		return "", types.Auto, unsupported(diag.TrnHeaderRejected, t.b.Exprs.Get(id).Span, "signed non-numeric default")
	}
	text, tag, err := t.constant(target, c)
	if err != nil {
		return "", types.Auto, err
	}
	if target != id {
		u, _ := t.b.Exprs.Unary(id)
		sign := "-"
		if u.Op == ast.OpUAdd {
			sign = "+"
		}
		text = sign + text
	}
	return text, tag, nil
}
