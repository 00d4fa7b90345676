package translate

import (
	"fmt"
	"math"
	"strings"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/types"
)

func (t *Translator) constant(id ast.ExprID, c *ast.ExprConstData) (string, types.Tag, error) {
	sp := t.b.Exprs.Get(id).Span
	switch c.Kind {
	case ast.ConstInt:
		return t.b.Str(c.Value), types.Int, nil
	case ast.ConstFloat:
		if math.IsInf(c.Float, 0) || math.IsNaN(c.Float) {
			return "", types.Auto, unsupported(diag.TrnUnsupported, sp, "non-finite float literal")
		}
		return t.b.Str(c.Value), types.Float, nil
	case ast.ConstString:
		if c.FString {
			return "", types.Auto, unsupported(diag.TrnUnsupported, sp, "f-strings are not supported")
		}
		return cppString(t.b.Str(c.Value)), types.String, nil
	case ast.ConstBool:
		if c.Bool {
			return "true", types.Bool, nil
		}
		return "false", types.Bool, nil
	case ast.ConstNone:
		return types.None.CppName(), types.None, nil
	default:
		return "", types.Auto, unsupported(diag.TrnUnsupported, sp, fmt.Sprintf("%s literal", c.Kind))
	}
}

// cppString — строковый литерал C++. Управляющие байты пишутся
// восьмеричными escape, они не поглощают следующие цифры так, как \x.
func cppString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '?':
			// триграфы
			if i+1 < len(s) && s[i+1] == '?' {
				sb.WriteString(`\?`)
			} else {
				sb.WriteByte(c)
			}
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&sb, `\%03o`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
