package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"pyplus/internal/diag"
	"pyplus/internal/source"
	"pyplus/internal/trace"
)

// ConvertFiles переводит файлы параллельно, не более jobs одновременно.
// Результаты идут в порядке paths. Ошибка загрузки одного файла попадает
// в его ConvertResult (Err и IO диагностика) и не останавливает остальные.
// opts.Name применяется только к единственному файлу.
func ConvertFiles(ctx context.Context, baseDir string, paths []string, opts ConvertOptions, jobs int) (*source.FileSet, []*ConvertResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	results := make([]*ConvertResult, len(paths))
	if len(paths) == 0 {
		return fileSet, results, nil
	}
	if len(paths) > 1 {
		opts.Name = ""
	}

	tracer := trace.FromContext(ctx)
	pass := trace.Begin(tracer, trace.ScopePass, "convert", trace.CurrentSpan(ctx).SpanID)
	pass.WithExtra("files", fmt.Sprint(len(paths)))
	defer pass.End("")
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: pass.ID()})

	// FileSet не потокобезопасен: грузим всё до запуска горутин.
	fileIDs := make([]source.FileID, len(paths))
	for i, path := range paths {
		fileID, err := fileSet.Load(path)
		if err != nil {
			results[i] = loadFailure(fileSet, path, opts, err)
			trace.Failure(tracer, trace.ScopeFile, path, err.Error(), pass.ID())
			continue
		}
		fileIDs[i] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i := range paths {
		if results[i] != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := Convert(gctx, fileSet, fileIDs[i], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", paths[i], err)
			}
			// индексы уникальны для каждой горутины, мьютекс не нужен
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// loadFailure регистрирует пустой виртуальный файл под тем же путём,
// чтобы IO диагностика имела валидный span.
func loadFailure(fileSet *source.FileSet, path string, opts ConvertOptions, err error) *ConvertResult {
	fileID := fileSet.AddVirtual(path, nil)
	res := &ConvertResult{
		Path:   path,
		FileID: fileID,
		Name:   OutputName(path, opts.Name),
		Bag:    diag.NewBag(diagLimit(opts.MaxDiagnostics)),
		Err:    err,
	}
	diag.ReportError(&diag.BagReporter{Bag: res.Bag}, diag.IOLoadFileError, source.Span{File: fileID},
		fmt.Sprintf("failed to load %s: %v", path, err)).Emit()
	return res
}
