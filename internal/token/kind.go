package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline ends a logical line.
	Newline
	// Indent opens a block.
	Indent
	// Dedent closes a block.
	Dedent

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal (decimal, 0x, 0o, 0b).
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// ImagLit represents an imaginary literal such as 2j.
	ImagLit
	// StringLit represents a string or bytes literal, with any prefix.
	StringLit

	// KwDef represents the 'def' keyword.
	KwDef // def
	KwReturn   // return
	KwIf       // if
	KwElif     // elif
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwIn       // in
	KwIs       // is
	KwNot      // not
	KwAnd      // and
	KwOr       // or
	KwBreak    // break
	KwContinue // continue
	KwPass     // pass
	KwImport   // import
	KwFrom     // from
	KwAs       // as
	KwClass    // class
	KwTrue     // True
	KwFalse    // False
	KwNone     // None
	KwLambda   // lambda
	KwTry      // try
	KwExcept   // except
	KwFinally  // finally
	KwRaise    // raise
	KwWith     // with
	KwYield    // yield
	KwGlobal   // global
	KwNonlocal // nonlocal
	KwDel      // del
	KwAssert   // assert
	KwAsync    // async
	KwAwait    // await

	Plus        // +
	Minus       // -
	Star        // *
	DoubleStar  // **
	Slash       // /
	DoubleSlash // //
	Percent     // %
	At          // @
	Shl         // <<
	Shr         // >>
	Amp         // &
	Pipe        // |
	Caret       // ^
	Tilde       // ~
	Lt          // <
	Gt          // >
	LtEq        // <=
	GtEq        // >=
	EqEq        // ==
	BangEq      // !=
	Assign      // =
	Walrus      // :=
	Arrow       // ->

	PlusAssign        // +=
	MinusAssign       // -=
	StarAssign        // *=
	DoubleStarAssign  // **=
	SlashAssign       // /=
	DoubleSlashAssign // //=
	PercentAssign     // %=
	AtAssign          // @=
	ShlAssign         // <<=
	ShrAssign         // >>=
	AmpAssign         // &=
	PipeAssign        // |=
	CaretAssign       // ^=

	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Dot       // .
	Ellipsis  // ...
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Newline: "Newline", Indent: "Indent", Dedent: "Dedent",
	Ident: "Ident", IntLit: "IntLit", FloatLit: "FloatLit", ImagLit: "ImagLit", StringLit: "StringLit",
	KwDef: "def", KwReturn: "return", KwIf: "if", KwElif: "elif", KwElse: "else", KwWhile: "while",
	KwFor: "for", KwIn: "in", KwIs: "is", KwNot: "not", KwAnd: "and", KwOr: "or", KwBreak: "break",
	KwContinue: "continue", KwPass: "pass", KwImport: "import", KwFrom: "from", KwAs: "as",
	KwClass: "class", KwTrue: "True", KwFalse: "False", KwNone: "None", KwLambda: "lambda",
	KwTry: "try", KwExcept: "except", KwFinally: "finally", KwRaise: "raise", KwWith: "with",
	KwYield: "yield", KwGlobal: "global", KwNonlocal: "nonlocal", KwDel: "del", KwAssert: "assert",
	KwAsync: "async", KwAwait: "await",
	Plus: "+", Minus: "-", Star: "*", DoubleStar: "**", Slash: "/", DoubleSlash: "//", Percent: "%",
	At: "@", Shl: "<<", Shr: ">>", Amp: "&", Pipe: "|", Caret: "^", Tilde: "~", Lt: "<", Gt: ">",
	LtEq: "<=", GtEq: ">=", EqEq: "==", BangEq: "!=", Assign: "=", Walrus: ":=", Arrow: "->",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", DoubleStarAssign: "**=", SlashAssign: "/=",
	DoubleSlashAssign: "//=", PercentAssign: "%=", AtAssign: "@=", ShlAssign: "<<=", ShrAssign: ">>=",
	AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Comma: ",", Colon: ":", Semicolon: ";", Dot: ".", Ellipsis: "...",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether the kind terminates the stream.
func (k Kind) IsEOF() bool { return k == EOF }

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k >= KwDef && k <= KwAwait }

// IsAugAssign reports whether k is an augmented assignment operator such as +=.
func (k Kind) IsAugAssign() bool { return k >= PlusAssign && k <= CaretAssign }

// AugBase maps an augmented assignment to its binary operator: += → +.
func (k Kind) AugBase() (Kind, bool) {
	switch k {
	case PlusAssign:
		return Plus, true
	case MinusAssign:
		return Minus, true
	case StarAssign:
		return Star, true
	case DoubleStarAssign:
		return DoubleStar, true
	case SlashAssign:
		return Slash, true
	case DoubleSlashAssign:
		return DoubleSlash, true
	case PercentAssign:
		return Percent, true
	case AtAssign:
		return At, true
	case ShlAssign:
		return Shl, true
	case ShrAssign:
		return Shr, true
	case AmpAssign:
		return Amp, true
	case PipeAssign:
		return Pipe, true
	case CaretAssign:
		return Caret, true
	default:
		return Invalid, false
	}
}
