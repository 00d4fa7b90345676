// Package buildpipeline связывает конвертацию файлов, запись результатов
// и события прогресса для CLI.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pyplus/internal/diag"
	"pyplus/internal/driver"
	"pyplus/internal/source"
)

// ConvertRequest configures a multi-file conversion.
type ConvertRequest struct {
	Files   []string
	BaseDir string
	OutDir  string
	// Name переопределяет имя результата; действует только для одного файла.
	Name           string
	Indent         int
	MaxDiagnostics int
	Jobs           int
	Cache          *driver.DiskCache
	Progress       ProgressSink
}

// ConvertResult captures per-file results, written outputs and stage timings.
type ConvertResult struct {
	FileSet *source.FileSet
	Files   []*driver.ConvertResult
	Written []string
	// Bag — все диагностики всех файлов, отсортированные.
	Bag     *diag.Bag
	Timings Timings
}

// Failed reports whether any file had load, parse or write errors.
func (r ConvertResult) Failed() bool {
	for _, f := range r.Files {
		if f != nil && f.Failed() {
			return true
		}
	}
	return false
}

// Fallbacks — суммарное число откатов по всем файлам.
func (r ConvertResult) Fallbacks() int {
	n := 0
	for _, f := range r.Files {
		if f != nil {
			n += f.Fallbacks
		}
	}
	return n
}

var errNoSources = errors.New("no source files to convert")

// Convert переводит req.Files и пишет <OutDir>/<name>.cpp для каждого.
// Ошибки отдельных файлов попадают в их диагностики; error возвращается
// только когда конвейер не может продолжать целиком.
func Convert(ctx context.Context, req *ConvertRequest) (ConvertResult, error) {
	var result ConvertResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing convert request")
	}
	if len(req.Files) == 0 {
		return result, errNoSources
	}
	if req.OutDir == "" {
		return result, fmt.Errorf("missing output directory")
	}

	display := DisplayPaths(req.Files, req.BaseDir)
	emitQueued(req.Progress, display)
	emit(req.Progress, Event{Stage: StageParse, Status: StatusWorking})

	obs := &phaseObserver{sink: req.Progress, baseDir: req.BaseDir}
	fs, files, err := driver.ConvertFiles(ctx, req.BaseDir, req.Files, driver.ConvertOptions{
		Name:           req.Name,
		Indent:         req.Indent,
		MaxDiagnostics: req.MaxDiagnostics,
		Cache:          req.Cache,
		Observer:       obs.OnPhase,
	}, req.Jobs)
	result.FileSet = fs
	result.Files = files
	if err != nil {
		emit(req.Progress, Event{Stage: StageTranslate, Status: StatusError, Err: err})
		return result, err
	}
	for _, f := range files {
		recordFileTimings(&result.Timings, f)
	}

	writeStart := time.Now()
	emit(req.Progress, Event{Stage: StageWrite, Status: StatusWorking})
	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		err = fmt.Errorf("failed to create output dir: %w", err)
		emit(req.Progress, Event{Stage: StageWrite, Status: StatusError, Err: err})
		return result, err
	}
	owners := make(map[string]string, len(files))
	for i, f := range files {
		emit(req.Progress, Event{File: display[i], Stage: StageWrite, Status: StatusWorking})
		path, werr := writeOutput(req.OutDir, f, owners)
		if path != "" {
			result.Written = append(result.Written, path)
		}
		status := StatusDone
		if werr != nil || f.Failed() {
			status = StatusError
		}
		emit(req.Progress, Event{
			File:      display[i],
			Stage:     StageWrite,
			Status:    status,
			Err:       werr,
			Fallbacks: f.Fallbacks,
			Cached:    f.Cached,
		})
	}
	result.Timings.Set(StageWrite, time.Since(writeStart))
	emit(req.Progress, Event{Stage: StageWrite, Status: StatusDone})

	result.Bag = mergeBags(files)
	return result, nil
}

// writeOutput пишет результат файла. Повтор имени результата и ошибки
// записи становятся диагностиками этого файла.
func writeOutput(outDir string, f *driver.ConvertResult, owners map[string]string) (string, error) {
	if f.Err != nil {
		return "", nil
	}
	reporter := &diag.BagReporter{Bag: f.Bag}
	name := f.OutputFile()
	if prev, ok := owners[name]; ok {
		err := fmt.Errorf("output %s already produced by %s", name, prev)
		diag.ReportError(reporter, diag.ProjDuplicateOutput, source.Span{File: f.FileID}, err.Error()).Emit()
		f.Err = err
		return "", err
	}
	owners[name] = f.Path

	path := filepath.Join(outDir, name)
	// #nosec G306 -- generated sources are meant to be readable
	if err := os.WriteFile(path, []byte(f.Output), 0o644); err != nil {
		err = fmt.Errorf("failed to write %s: %w", path, err)
		diag.ReportError(reporter, diag.IOWriteFileError, source.Span{File: f.FileID}, err.Error()).Emit()
		f.Err = err
		return "", err
	}
	return path, nil
}

func mergeBags(files []*driver.ConvertResult) *diag.Bag {
	total := 0
	for _, f := range files {
		total += f.Bag.Len()
	}
	bag := diag.NewBag(total)
	for _, f := range files {
		bag.Merge(f.Bag)
	}
	bag.Sort()
	return bag
}

func recordFileTimings(t *Timings, f *driver.ConvertResult) {
	if f == nil || len(f.Timing.Phases) == 0 {
		return
	}
	r := f.Timing
	t.Add(StageParse, r.Duration("parse"))
	t.Add(StageTranslate, r.Duration("translate")+r.Duration("finalize")+r.Duration("comments"))
	t.Add(StageRender, r.Duration("render"))
}

type phaseObserver struct {
	sink    ProgressSink
	baseDir string
}

// OnPhase переводит события фаз драйвера в события стадий для прогресса.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p == nil || p.sink == nil || ev.Status != driver.PhaseStart {
		return
	}
	var stage Stage
	switch ev.Name {
	case driver.PhaseCache, driver.PhaseParse:
		stage = StageParse
	case driver.PhaseTranslate:
		stage = StageTranslate
	case driver.PhaseRender:
		stage = StageRender
	default:
		return
	}
	p.sink.OnEvent(Event{File: DisplayPath(ev.File, p.baseDir), Stage: stage, Status: StatusWorking})
}

func emitQueued(sink ProgressSink, files []string) {
	for _, file := range files {
		emit(sink, Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emit(sink ProgressSink, ev Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}
