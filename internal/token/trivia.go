package token

import "pyplus/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaComment
	TriviaContinuation // backslash-newline
	TriviaBlankLine
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaComment:
		return "comment"
	case TriviaContinuation:
		return "continuation"
	case TriviaBlankLine:
		return "blank"
	}
	return "trivia(?)"
}
