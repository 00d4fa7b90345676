// Package translate переводит синтаксическое дерево одного файла в
// модель cpp.File: предварительный анализ заголовков, обход тел функций,
// затем верхнего уровня в синтезированный main, финализация типов и
// возврат комментариев.
package translate

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"pyplus/internal/ast"
	"pyplus/internal/cpp"
	"pyplus/internal/diag"
	"pyplus/internal/observ"
	"pyplus/internal/source"
	"pyplus/internal/symbols"
	"pyplus/internal/trace"
	"pyplus/internal/types"
)

// EntryName — имя синтезированной точки входа.
const EntryName = "main"

// Options настраивают один перевод.
type Options struct {
	Reporter diag.Reporter
	// Name — имя выходного файла без расширения.
	Name string
	// Timer получает фазы translate/finalize/comments; nil отключает замеры.
	Timer *observ.Timer
}

// Result — итог перевода файла.
type Result struct {
	File      *cpp.File
	Table     *symbols.Table
	Fallbacks int
}

// Translator держит состояние перевода одного файла.
type Translator struct {
	file  *source.File
	b     *ast.Builder
	lines []string
	opts  Options

	tbl   *symbols.Table
	out   *cpp.File
	entry symbols.ScopeID
	funcs map[symbols.ScopeID]*cpp.Function
	// defs — зарегистрированные заголовки по оператору def.
	defs  map[ast.StmtID]symbols.ScopeID
	defOf map[symbols.ScopeID]ast.StmtID
	// rejected — причина отказа для def, не прошедших предварительный анализ.
	rejected map[ast.StmtID]string
	analyzed map[symbols.ScopeID]bool
	// seeds — ячейки предыдущего прохода; nil на первом.
	seeds map[symbols.ScopeID]seed

	// pending — include-ы текущего оператора; попадают в файл только при успехе.
	pending []string

	tracer    trace.Tracer
	parent    uint64
	fallbacks int
}

// Translate выполняет все проходы над файлом root.
func Translate(ctx context.Context, file *source.File, b *ast.Builder, root ast.FileID, opts Options) *Result {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if opts.Name == "" {
		base := source.BaseName(file.Path)
		opts.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	body := b.Files.Get(root).Body

	phase := opts.Timer.Begin("translate")
	// Тихие проходы уточняют ячейки параметров и возврата: типы аргументов
	// на местах вызова попадают в тела функций только следующим проходом.
	var prev map[symbols.ScopeID]seed
	rounds := 0
	for rounds < maxRounds {
		rounds++
		quiet := newTranslator(file, b, Options{Reporter: diag.NopReporter{}, Name: opts.Name}, trace.Nop, 0)
		quiet.seeds = prev
		quiet.walk(body)
		next := quiet.snapshot()
		if maps.EqualFunc(prev, next, seed.equal) {
			break
		}
		prev = next
	}

	t := newTranslator(file, b, opts, trace.FromContext(ctx), trace.CurrentSpan(ctx).SpanID)
	t.seeds = prev
	t.walk(body)
	opts.Timer.End(phase, fmt.Sprintf("%d rounds, %d fallbacks", rounds, t.fallbacks))

	phase = opts.Timer.Begin("finalize")
	t.finalize()
	opts.Timer.End(phase, "")

	phase = opts.Timer.Begin("comments")
	t.attachComments()
	opts.Timer.End(phase, "")

	return &Result{File: t.out, Table: t.tbl, Fallbacks: t.fallbacks}
}

func newTranslator(file *source.File, b *ast.Builder, opts Options, tracer trace.Tracer, parent uint64) *Translator {
	return &Translator{
		file:     file,
		b:        b,
		lines:    file.Lines(),
		opts:     opts,
		tbl:      symbols.NewTable(symbols.Hints{}),
		out:      cpp.NewFile(opts.Name),
		funcs:    make(map[symbols.ScopeID]*cpp.Function),
		defs:     make(map[ast.StmtID]symbols.ScopeID),
		defOf:    make(map[symbols.ScopeID]ast.StmtID),
		rejected: make(map[ast.StmtID]string),
		analyzed: make(map[symbols.ScopeID]bool),
		tracer:   tracer,
		parent:   parent,
	}
}

// walk — заголовки, тела функций, затем верхний уровень.
func (t *Translator) walk(body []ast.StmtID) {
	t.registerHeaders(body)
	t.entry = t.newEntry()
	for _, id := range t.tbl.Functions() {
		t.walkFunction(id)
	}
	t.walkBody(t.entry, body, 1)
	t.analyzed[t.entry] = true
}

func (t *Translator) newEntry() symbols.ScopeID {
	params := []symbols.ParamSpec{
		{Name: "argc", Type: types.Int, Bound: true},
		{Name: "argv", Type: types.CharPtrPtr, Bound: true},
	}
	end := len(t.lines) - 1
	// Ошибки быть не может: точка входа не регистрируется в реестре.
	id, _ := t.tbl.NewFunction(EntryName, 0, end, params, types.Int, true, true)
	fn := t.newFunction(id, EntryName, 0, end)
	fn.Entry = true
	// Точка входа рендерится первой.
	t.out.Functions = append([]*cpp.Function{fn}, t.out.Functions...)
	return id
}

func (t *Translator) newFunction(id symbols.ScopeID, name string, line, end int) *cpp.Function {
	fn := cpp.NewFunction(name, line, end, false)
	t.funcs[id] = fn
	return fn
}

func (t *Translator) walkFunction(id symbols.ScopeID) {
	fd, ok := t.b.Stmts.FunctionDef(t.defOf[id])
	if !ok {
		return
	}
	t.walkBody(id, fd.Body, 1)
	t.analyzed[id] = true
}

// commit переносит include-ы успешно переведённого оператора в файл.
func (t *Translator) commit() {
	for _, inc := range t.pending {
		t.out.AddInclude(inc)
	}
	t.pending = t.pending[:0]
}

func (t *Translator) require(include string) {
	if include != "" {
		t.pending = append(t.pending, include)
	}
}

func (t *Translator) linesOf(scope symbols.ScopeID) *cpp.Lines {
	return t.funcs[scope].Lines
}
