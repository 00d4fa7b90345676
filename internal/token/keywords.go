package token

var keywords = map[string]Kind{
	"def":      KwDef,
	"return":   KwReturn,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"is":       KwIs,
	"not":      KwNot,
	"and":      KwAnd,
	"or":       KwOr,
	"break":    KwBreak,
	"continue": KwContinue,
	"pass":     KwPass,
	"import":   KwImport,
	"from":     KwFrom,
	"as":       KwAs,
	"class":    KwClass,
	"True":     KwTrue,
	"False":    KwFalse,
	"None":     KwNone,
	"lambda":   KwLambda,
	"try":      KwTry,
	"except":   KwExcept,
	"finally":  KwFinally,
	"raise":    KwRaise,
	"with":     KwWith,
	"yield":    KwYield,
	"global":   KwGlobal,
	"nonlocal": KwNonlocal,
	"del":      KwDel,
	"assert":   KwAssert,
	"async":    KwAsync,
	"await":    KwAwait,
}

// LookupKeyword returns the keyword kind for ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
