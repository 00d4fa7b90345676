package cpp

import (
	"strings"
)

const DefaultIndent = 4

// RenderOptions управляют форматированием.
type RenderOptions struct {
	// Indent — пробелов на уровень; 0 означает DefaultIndent.
	Indent int
}

type renderer struct {
	sb   strings.Builder
	unit string
}

// Render сериализует файл: include-ы, пустая строка, forward-объявления
// всех функций кроме точки входа, затем тела. Точка входа всегда первая.
func Render(f *File, opts RenderOptions) string {
	if opts.Indent <= 0 {
		opts.Indent = DefaultIndent
	}
	r := renderer{unit: strings.Repeat(" ", opts.Indent)}

	for _, inc := range f.Includes {
		r.sb.WriteString("#include <" + inc + ">\n")
	}
	if len(f.Includes) > 0 {
		r.sb.WriteByte('\n')
	}

	funcs := ordered(f.Functions)
	forward := false
	for _, fn := range funcs {
		if fn.Entry {
			continue
		}
		r.sb.WriteString(fn.Signature(false) + ";\n")
		forward = true
	}
	if forward {
		r.sb.WriteByte('\n')
	}

	for i, fn := range funcs {
		if i > 0 {
			r.sb.WriteByte('\n')
		}
		r.function(fn)
	}
	return r.sb.String()
}

func ordered(funcs []*Function) []*Function {
	out := make([]*Function, 0, len(funcs))
	for _, fn := range funcs {
		if fn.Entry {
			out = append(out, fn)
		}
	}
	for _, fn := range funcs {
		if !fn.Entry {
			out = append(out, fn)
		}
	}
	return out
}

func (r *renderer) function(fn *Function) {
	r.sb.WriteString(fn.Signature(true) + "\n{\n")
	for _, cl := range fn.Lines.Sorted() {
		r.codeLine(cl)
	}
	r.sb.WriteString("}\n")
}

func (r *renderer) indent(n int) {
	for range n {
		r.sb.WriteString(r.unit)
	}
}

func (r *renderer) codeLine(cl *CodeLine) {
	if cl.PreComment != "" {
		r.indent(cl.Indent)
		r.sb.WriteString("//" + cl.PreComment + "\n")
	}
	if cl.Text == "" && cl.Comment != "" {
		r.indent(cl.Indent)
		r.sb.WriteString("// " + cl.Comment + "\n")
	}
	if cl.Text != "" {
		for i, line := range strings.Split(cl.Text, "\n") {
			if line != "" {
				r.indent(cl.Indent)
			}
			r.sb.WriteString(line)
			if i == 0 && cl.Comment != "" && !cl.Verbatim {
				r.sb.WriteString(" // " + cl.Comment)
			}
			r.sb.WriteByte('\n')
		}
	}
	for _, p := range cl.Tail {
		r.indent(p.Indent)
		r.sb.WriteString(p.Text + "\n")
	}
}
