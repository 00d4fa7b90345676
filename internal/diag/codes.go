package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadEscape          Code = 1003
	LexBadNumber          Code = 1004
	LexInconsistentDedent Code = 1006
	LexTabSpaceMix        Code = 1007
	LexBadContinuation    Code = 1009

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynExpectColon       Code = 2003
	SynExpectIndent      Code = 2004
	SynExpectNewline     Code = 2005
	SynUnclosedParen     Code = 2006
	SynUnclosedBracket   Code = 2007
	SynUnclosedBrace     Code = 2008
	SynExpectIdentifier  Code = 2009
	SynInvalidTarget     Code = 2010
	SynBadParameters     Code = 2011
	SynUnexpectedIndent  Code = 2012
	SynStrayClause       Code = 2013
	SynExpectIn          Code = 2014
	SynExpectTryHandlers Code = 2015

	// Трансляция в C++
	TrnInfo            Code = 3000
	TrnUnsupported     Code = 3001
	TrnTypeChange      Code = 3002
	TrnChainedAssign   Code = 3003
	TrnCallNotInScope  Code = 3004
	TrnInvalidCall     Code = 3005
	TrnUnusedValue     Code = 3006
	TrnElseNotFound    Code = 3007
	TrnHeaderRejected  Code = 3008
	TrnUnparsed        Code = 3009
	TrnArgumentCount   Code = 3010
	TrnUnsupportedType Code = 3011

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOCacheError     Code = 4003

	// Проект
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
	ProjNoSources       Code = 5002
	ProjDuplicateOutput Code = 5003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		LexBadEscape:          "Invalid escape sequence",
		LexBadNumber:          "Bad number literal",
		LexInconsistentDedent: "Inconsistent dedent",
		LexTabSpaceMix:        "Inconsistent use of tabs and spaces in indentation",
		LexBadContinuation:    "Unexpected character after line continuation",

		SynInfo:              "Syntax information",
		SynUnexpectedToken:   "Unexpected token",
		SynExpectExpression:  "Expected expression",
		SynExpectColon:       "Expected ':'",
		SynExpectIndent:      "Expected an indented block",
		SynExpectNewline:     "Expected end of line",
		SynUnclosedParen:     "Unclosed parenthesis",
		SynUnclosedBracket:   "Unclosed bracket",
		SynUnclosedBrace:     "Unclosed brace",
		SynExpectIdentifier:  "Expected identifier",
		SynInvalidTarget:     "Invalid assignment target",
		SynBadParameters:     "Invalid parameter list",
		SynUnexpectedIndent:  "Unexpected indent",
		SynStrayClause:       "Clause without a matching statement",
		SynExpectIn:          "Expected 'in'",
		SynExpectTryHandlers: "Expected 'except' or 'finally' block",

		TrnInfo:            "Translation information",
		TrnUnsupported:     "Code not directly translatable",
		TrnTypeChange:      "Variable type change",
		TrnChainedAssign:   "Chained assignment",
		TrnCallNotInScope:  "Call to function not in scope",
		TrnInvalidCall:     "Not a valid call",
		TrnUnusedValue:     "Value not assigned or used",
		TrnElseNotFound:    "Unable to locate else keyword",
		TrnHeaderRejected:  "Function header not translatable",
		TrnUnparsed:        "Statement could not be parsed",
		TrnArgumentCount:   "Wrong number of arguments",
		TrnUnsupportedType: "Type has no C++ declaration",

		IOLoadFileError:  "I/O load file error",
		IOWriteFileError: "I/O write file error",
		IOCacheError:     "Cache error",

		ProjInfo:            "Project information",
		ProjManifestInvalid: "Invalid project manifest",
		ProjNoSources:       "No sources to translate",
		ProjDuplicateOutput: "Two sources map to the same output",

		ObsInfo:    "Observability information",
		ObsTimings: "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TRN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
