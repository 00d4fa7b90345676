package ast

import "pyplus/internal/source"

// Param — один параметр функции или lambda.
type Param struct {
	Name       source.StringID
	Span       source.Span
	Annotation ExprID
	Default    ExprID
}

// Params сохраняет деление параметров на позиционно-только, обычные,
// *args, только-именованные и **kwargs.
type Params struct {
	PosOnly   []Param
	Args      []Param
	Vararg    *Param
	KwOnly    []Param
	Kwarg     *Param
	BareStar  bool // `*` без имени перед kw-only
	HasPosSep bool // `/` присутствовал
}

// Simple reports whether only regular positional parameters are used.
func (p *Params) Simple() bool {
	return len(p.PosOnly) == 0 && p.Vararg == nil && len(p.KwOnly) == 0 && p.Kwarg == nil && !p.BareStar
}

// All returns every parameter in declaration order.
func (p *Params) All() []Param {
	out := make([]Param, 0, len(p.PosOnly)+len(p.Args)+len(p.KwOnly)+2)
	out = append(out, p.PosOnly...)
	out = append(out, p.Args...)
	if p.Vararg != nil {
		out = append(out, *p.Vararg)
	}
	out = append(out, p.KwOnly...)
	if p.Kwarg != nil {
		out = append(out, *p.Kwarg)
	}
	return out
}
