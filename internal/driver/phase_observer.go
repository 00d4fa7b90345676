package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a conversion phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// Имена фаз одного файла.
const (
	PhaseParse     = "parse"
	PhaseTranslate = "translate"
	PhaseRender    = "render"
	PhaseCache     = "cache"
)

// PhaseEvent describes a timing phase boundary for one file.
type PhaseEvent struct {
	File    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Convert.
// При параллельной конвертации вызывается из нескольких горутин.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) start(file, name string) time.Time {
	if o != nil {
		o(PhaseEvent{File: file, Name: name, Status: PhaseStart})
	}
	return time.Now()
}

func (o PhaseObserver) end(file, name string, started time.Time) {
	if o != nil {
		o(PhaseEvent{File: file, Name: name, Status: PhaseEnd, Elapsed: time.Since(started)})
	}
}
