package parser

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"pyplus/internal/ast"
	"pyplus/internal/diag"
	"pyplus/internal/lexer"
	"pyplus/internal/source"
	"pyplus/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors > o.MaxErrors
}

type Result struct {
	File ast.FileID
	// Errors — число синтаксических ошибок (включая не попавшие в Reporter из-за лимита).
	Errors uint
}

// Parser — состояние парсера на один файл.
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного значимого токена

	// failed выставляется первой ошибкой внутри оператора; до восстановления
	// остальные ошибки этого оператора не репортятся.
	failed  bool
	failMsg string
	// funcDepth > 0 внутри тела def (для return/yield вне функции)
	funcDepth int
}

// ParseFile — входная точка для разбора одного файла.
func ParseFile(file *source.File, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		toks:   lx.All(),
		arenas: arenas,
		file:   file,
		opts:   opts,
	}
	p.lastSpan = source.Span{File: file.ID}

	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	fileID := arenas.NewFile(source.Span{File: file.ID, Start: 0, End: end})
	for !p.at(token.EOF) {
		for _, id := range p.parseStatement() {
			arenas.PushStmt(fileID, id)
		}
	}
	return Result{File: fileID, Errors: p.opts.CurrentErrors}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом — EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}
