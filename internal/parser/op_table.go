package parser

import (
	"pyplus/internal/ast"
	"pyplus/internal/token"
)

// Таблица приоритетов бинарных операторов внутри bitor.
// Чем больше число, тем выше приоритет. Всё ниже (not, and, or,
// сравнения) и выше (унарные, **, await) разбирается отдельными функциями.
const (
	precBitOr = 1 + iota // |
	precBitXor           // ^
	precBitAnd           // &
	precShift            // << >>
	precAdditive         // + -
	precMultiplicative   // * / // % @
)

func binaryPrec(k token.Kind) (int, bool) {
	switch k {
	case token.Pipe:
		return precBitOr, true
	case token.Caret:
		return precBitXor, true
	case token.Amp:
		return precBitAnd, true
	case token.Shl, token.Shr:
		return precShift, true
	case token.Plus, token.Minus:
		return precAdditive, true
	case token.Star, token.Slash, token.DoubleSlash, token.Percent, token.At:
		return precMultiplicative, true
	}
	return 0, false
}

func binaryOpFor(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.Plus:
		return ast.OpAdd, true
	case token.Minus:
		return ast.OpSub, true
	case token.Star:
		return ast.OpMult, true
	case token.At:
		return ast.OpMatMult, true
	case token.Slash:
		return ast.OpDiv, true
	case token.DoubleSlash:
		return ast.OpFloorDiv, true
	case token.Percent:
		return ast.OpMod, true
	case token.DoubleStar:
		return ast.OpPow, true
	case token.Shl:
		return ast.OpLShift, true
	case token.Shr:
		return ast.OpRShift, true
	case token.Pipe:
		return ast.OpBitOr, true
	case token.Caret:
		return ast.OpBitXor, true
	case token.Amp:
		return ast.OpBitAnd, true
	}
	return 0, false
}

// cmpOpAt распознаёт оператор сравнения в текущей позиции, включая
// двухсловные 'not in' и 'is not'. Возвращает число токенов оператора.
func (p *Parser) cmpOpAt() (ast.CmpOp, int, bool) {
	switch p.peek().Kind {
	case token.EqEq:
		return ast.CmpEq, 1, true
	case token.BangEq:
		return ast.CmpNotEq, 1, true
	case token.Lt:
		return ast.CmpLt, 1, true
	case token.LtEq:
		return ast.CmpLtE, 1, true
	case token.Gt:
		return ast.CmpGt, 1, true
	case token.GtEq:
		return ast.CmpGtE, 1, true
	case token.KwIn:
		return ast.CmpIn, 1, true
	case token.KwIs:
		if p.peekN(1).Kind == token.KwNot {
			return ast.CmpIsNot, 2, true
		}
		return ast.CmpIs, 1, true
	case token.KwNot:
		if p.peekN(1).Kind == token.KwIn {
			return ast.CmpNotIn, 2, true
		}
	}
	return 0, 0, false
}
