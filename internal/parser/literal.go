package parser

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/token"
)

// numberConst декодирует числовой литерал. Int хранится десятичной
// строкой произвольной длины, Float — в repr-форме и как float64.
func (p *Parser) numberConst(tok token.Token) ast.ExprID {
	text := strings.ReplaceAll(tok.Text, "_", "")
	switch tok.Kind {
	case token.IntLit:
		n, ok := parseIntLiteral(text)
		if !ok {
			p.failAt(diag.LexBadNumber, tok.Span, "invalid integer literal '"+tok.Text+"'")
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewConst(tok.Span, ast.ExprConstData{
			Kind:  ast.ConstInt,
			Value: p.arenas.Strings.Intern(n.String()),
		})
	case token.ImagLit:
		f, err := strconv.ParseFloat(strings.TrimRight(text, "jJ"), 64)
		if err != nil {
			p.failAt(diag.LexBadNumber, tok.Span, "invalid imaginary literal '"+tok.Text+"'")
			return ast.NoExprID
		}
		return p.arenas.Exprs.NewConst(tok.Span, ast.ExprConstData{
			Kind:  ast.ConstImag,
			Float: f,
			Value: p.arenas.Strings.Intern(FloatRepr(f) + "j"),
		})
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !isRangeErr(err) {
		p.failAt(diag.LexBadNumber, tok.Span, "invalid float literal '"+tok.Text+"'")
		return ast.NoExprID
	}
	return p.arenas.Exprs.NewConst(tok.Span, ast.ExprConstData{
		Kind:  ast.ConstFloat,
		Float: f,
		Value: p.arenas.Strings.Intern(FloatRepr(f)),
	})
}

func isRangeErr(err error) bool {
	var ne *strconv.NumError
	return errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange)
}

func parseIntLiteral(text string) (*big.Int, bool) {
	base := 10
	digits := text
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			base, digits = 16, text[2:]
		case 'o', 'O':
			base, digits = 8, text[2:]
		case 'b', 'B':
			base, digits = 2, text[2:]
		}
	}
	if digits == "" {
		return nil, false
	}
	n, ok := new(big.Int).SetString(digits, base)
	return n, ok
}

// FloatRepr печатает float так же, как repr() в Python:
// кратчайшее представление, ".0" у целых, экспонента вне [1e-4, 1e16).
func FloatRepr(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

type stringPrefix struct {
	raw, bytes, format bool
}

func splitStringToken(text string) (stringPrefix, string) {
	var pre stringPrefix
	i := 0
	for i < len(text) && text[i] != '"' && text[i] != '\'' {
		switch text[i] {
		case 'r', 'R':
			pre.raw = true
		case 'b', 'B':
			pre.bytes = true
		case 'f', 'F':
			pre.format = true
		}
		i++
	}
	body := text[i:]
	q := 1
	if len(body) >= 6 && (strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, `'''`)) {
		q = 3
	}
	if len(body) < 2*q {
		return pre, ""
	}
	return pre, body[q : len(body)-q]
}

// parseStrings склеивает подряд идущие строковые литералы ("a" "b").
// Смешивать bytes и str нельзя.
func (p *Parser) parseStrings() ast.ExprID {
	first := p.peek()
	var sb strings.Builder
	data := ast.ExprConstData{Kind: ast.ConstString}
	for i := 0; p.at(token.StringLit); i++ {
		tok := p.advance()
		pre, body := splitStringToken(tok.Text)
		if i == 0 && pre.bytes {
			data.Kind = ast.ConstBytes
		} else if pre.bytes != (data.Kind == ast.ConstBytes) {
			p.failAt(diag.SynUnexpectedToken, tok.Span, "cannot mix bytes and nonbytes literals")
			return ast.NoExprID
		}
		if pre.format {
			data.FString = true
		}
		if pre.raw || pre.format {
			sb.WriteString(body)
			continue
		}
		decoded, ok := decodeEscapes(body, pre.bytes)
		if !ok {
			p.failAt(diag.LexBadEscape, tok.Span, "invalid escape sequence in string literal")
			return ast.NoExprID
		}
		sb.WriteString(decoded)
	}
	data.Value = p.arenas.Strings.Intern(sb.String())
	return p.arenas.Exprs.NewConst(p.spanFrom(first.Span), data)
}

// decodeEscapes раскрывает escape-последовательности. Неизвестные
// последовательности вроде "\d" остаются как есть; обрезанные \x, \u — ошибка.
func decodeEscapes(s string, bytes bool) (string, bool) {
	if !strings.Contains(s, `\`) {
		return s, true
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch c = s[i]; c {
		case '\n':
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			sb.WriteByte(c)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 8, 32)
			writeCode(&sb, rune(v), bytes)
			i = j - 1
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
			if c != 'x' && bytes {
				sb.WriteByte('\\')
				sb.WriteByte(c)
				continue
			}
			if i+1+width > len(s) {
				return "", false
			}
			v, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil || v > utf8.MaxRune {
				return "", false
			}
			writeCode(&sb, rune(v), bytes)
			i += width
		default:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		}
	}
	return sb.String(), true
}

func writeCode(sb *strings.Builder, r rune, bytes bool) {
	if bytes {
		sb.WriteByte(byte(r))
		return
	}
	sb.WriteRune(r)
}
