package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"pyplus/internal/cpp"
	"pyplus/internal/diag"
	"pyplus/internal/observ"
	"pyplus/internal/project"
	"pyplus/internal/source"
	"pyplus/internal/trace"
	"pyplus/internal/translate"
	"pyplus/internal/version"
)

// ConvertOptions настраивают перевод одного файла.
type ConvertOptions struct {
	// Name — базовое имя выходного файла; пусто означает имя исходника без расширения.
	Name           string
	Indent         int
	MaxDiagnostics int
	Cache          *DiskCache
	Observer       PhaseObserver
}

// ConvertResult — итог перевода одного файла.
type ConvertResult struct {
	Path   string
	FileID source.FileID
	Name   string
	// Output — отрендеренный C++; пуст при ошибке загрузки.
	Output       string
	Bag          *diag.Bag
	Fallbacks    int
	SyntaxErrors uint
	Timing       observ.Report
	Cached       bool
	// Err — ошибка загрузки файла; остальные файлы при этом обрабатываются.
	Err error
}

// OutputFile — имя файла результата.
func (r *ConvertResult) OutputFile() string {
	return r.Name + ".cpp"
}

// Failed reports whether the file must make the command exit with status 1.
func (r *ConvertResult) Failed() bool {
	return r.Err != nil || r.SyntaxErrors > 0 || r.Bag.HasErrors()
}

// DefaultMaxDiagnostics — лимит Bag, когда он не задан.
const DefaultMaxDiagnostics = 100

func diagLimit(n int) int {
	if n <= 0 {
		return DefaultMaxDiagnostics
	}
	return n
}

// OutputName возвращает имя результата без расширения.
func OutputName(path, override string) string {
	if override != "" {
		return override
	}
	base := source.BaseName(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Convert переводит уже загруженный файл: parse, translate, render.
// При наличии кэша неизменённый файл с теми же опциями берётся с диска.
func Convert(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts ConvertOptions) (*ConvertResult, error) {
	file := fs.Get(fileID)
	if file == nil {
		return nil, fmt.Errorf("file %d not found", fileID)
	}
	res := &ConvertResult{
		Path:   file.Path,
		FileID: fileID,
		Name:   OutputName(file.Path, opts.Name),
		Bag:    diag.NewBag(diagLimit(opts.MaxDiagnostics)),
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, file.Path, trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
	defer func() {
		span.WithExtra("fallbacks", fmt.Sprint(res.Fallbacks)).WithExtra("cached", fmt.Sprint(res.Cached))
		if res.Failed() {
			span.Fail(fmt.Sprintf("%d syntax errors", res.SyntaxErrors))
			return
		}
		span.End(res.Name)
	}()

	key := cacheKey(file, res.Name, opts)
	if opts.Cache != nil {
		started := opts.Observer.start(file.Path, PhaseCache)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		opts.Observer.end(file.Path, PhaseCache, started)
		if err != nil {
			diag.ReportWarning(&diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: fileID},
				fmt.Sprintf("cache read failed: %v", err)).Emit()
		}
		if hit && payload.restore(res, fileID) {
			res.Cached = true
			return res, nil
		}
	}

	timer := observ.NewTimer()
	reporter := &diag.BagReporter{Bag: res.Bag}

	started := opts.Observer.start(file.Path, PhaseParse)
	phase := timer.Begin("parse")
	builder, astFile, syntaxErrors, err := parseFile(ctx, file, res.Bag, opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	res.SyntaxErrors = syntaxErrors
	timer.End(phase, fmt.Sprintf("%d syntax errors", syntaxErrors))
	opts.Observer.end(file.Path, PhaseParse, started)

	started = opts.Observer.start(file.Path, PhaseTranslate)
	tspan := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "translate", span.ID())
	tr := translate.Translate(trace.WithSpanContext(ctx, trace.SpanContext{SpanID: tspan.ID()}), file, builder, astFile, translate.Options{
		Reporter: reporter,
		Name:     res.Name,
		Timer:    timer,
	})
	tspan.End("")
	res.Fallbacks = tr.Fallbacks
	opts.Observer.end(file.Path, PhaseTranslate, started)

	started = opts.Observer.start(file.Path, PhaseRender)
	phase = timer.Begin("render")
	res.Output = cpp.Render(tr.File, cpp.RenderOptions{Indent: opts.Indent})
	timer.End(phase, "")
	opts.Observer.end(file.Path, PhaseRender, started)

	res.Timing = timer.Report()

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, newDiskPayload(res, file)); err != nil {
			diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: fileID},
				fmt.Sprintf("cache write failed: %v", err)).Emit()
		}
	}
	return res, nil
}

// cacheKey: H(content || options || version). Смена версии инвалидирует кэш.
func cacheKey(file *source.File, name string, opts ConvertOptions) project.Digest {
	optsText := fmt.Sprintf("name=%s indent=%d max=%d schema=%d", name, opts.Indent, opts.MaxDiagnostics, diskCacheSchemaVersion)
	return project.Combine(project.Digest(file.Hash), project.Sum([]byte(optsText)), project.Sum([]byte(version.Version)))
}
