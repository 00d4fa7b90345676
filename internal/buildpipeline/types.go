package buildpipeline

import "time"

// Stage — стадия обработки одного исходника.
type Stage string

const (
	// StageParse is lex+parse, or a cache lookup.
	StageParse Stage = "parse"
	// StageTranslate covers translation, finalization and comment reattachment.
	StageTranslate Stage = "translate"
	// StageRender is the C++ rendering stage.
	StageRender Stage = "render"
	// StageWrite writes <out>/<name>.cpp.
	StageWrite Stage = "write"
)

type stageInfo struct {
	stage    Stage
	progress string  // подпись в прогрессе
	finished string  // подпись в --timings
	weight   float64 // доля работы над файлом к началу стадии
}

// stages в порядке выполнения.
var stages = [...]stageInfo{
	{StageParse, "parsing", "parsed", 0.2},
	{StageTranslate, "translating", "translated", 0.5},
	{StageRender, "rendering", "rendered", 0.8},
	{StageWrite, "writing", "written", 0.95},
}

func (s Stage) index() int {
	for i, info := range stages {
		if info.stage == s {
			return i
		}
	}
	return -1
}

// Label — подпись стадии в прогрессе ("translating"); пусто для неизвестной.
func (s Stage) Label() string {
	if i := s.index(); i >= 0 {
		return stages[i].progress
	}
	return ""
}

// Weight — доля работы над файлом, выполненная к началу стадии.
func (s Stage) Weight() float64 {
	if i := s.index(); i >= 0 {
		return stages[i].weight
	}
	return 0
}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Finished reports whether the file needs no more work.
func (s Status) Finished() bool {
	return s == StatusDone || s == StatusError
}

// Event reports progress for a file, or for the whole run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Fallbacks и Cached заполняются в итоговом событии файла.
	Fallbacks int
	Cached    bool
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings — длительности стадий, просуммированные по всем файлам.
// Нулевое значение готово к использованию.
type Timings struct {
	dur  [len(stages)]time.Duration
	seen [len(stages)]bool
}

// Set stores a duration for stage, replacing the previous one.
func (t *Timings) Set(stage Stage, d time.Duration) {
	if i := stage.index(); i >= 0 {
		t.dur[i], t.seen[i] = d, true
	}
}

// Add accumulates a duration for stage.
func (t *Timings) Add(stage Stage, d time.Duration) {
	if i := stage.index(); i >= 0 {
		t.dur[i] += d
		t.seen[i] = true
	}
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	i := stage.index()
	return i >= 0 && t.seen[i]
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if i := stage.index(); i >= 0 {
		return t.dur[i]
	}
	return 0
}

// Sum returns the total over the given stages.
func (t Timings) Sum(list ...Stage) time.Duration {
	var total time.Duration
	for _, s := range list {
		total += t.Duration(s)
	}
	return total
}
