package ast

// BinaryOp — арифметические, битовые и сдвиговые операторы.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMult
	OpMatMult
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpLShift
	OpRShift
	OpBitOr
	OpBitXor
	OpBitAnd
)

var binaryOpNames = [...]string{
	OpAdd: "Add", OpSub: "Sub", OpMult: "Mult", OpMatMult: "MatMult", OpDiv: "Div",
	OpFloorDiv: "FloorDiv", OpMod: "Mod", OpPow: "Pow", OpLShift: "LShift", OpRShift: "RShift",
	OpBitOr: "BitOr", OpBitXor: "BitXor", OpBitAnd: "BitAnd",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "BinaryOp(?)"
}

type UnaryOp uint8

const (
	OpNot UnaryOp = iota
	OpInvert
	OpUAdd
	OpUSub
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "Not"
	case OpInvert:
		return "Invert"
	case OpUAdd:
		return "UAdd"
	case OpUSub:
		return "USub"
	}
	return "UnaryOp(?)"
}

type BoolOp uint8

const (
	OpAnd BoolOp = iota
	OpOr
)

func (op BoolOp) String() string {
	if op == OpAnd {
		return "And"
	}
	return "Or"
}

type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNotEq
	CmpLt
	CmpLtE
	CmpGt
	CmpGtE
	CmpIs
	CmpIsNot
	CmpIn
	CmpNotIn
)

var cmpOpNames = [...]string{
	CmpEq: "Eq", CmpNotEq: "NotEq", CmpLt: "Lt", CmpLtE: "LtE", CmpGt: "Gt", CmpGtE: "GtE",
	CmpIs: "Is", CmpIsNot: "IsNot", CmpIn: "In", CmpNotIn: "NotIn",
}

func (op CmpOp) String() string {
	if int(op) < len(cmpOpNames) {
		return cmpOpNames[op]
	}
	return "CmpOp(?)"
}
