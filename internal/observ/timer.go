// Package observ замеряет длительность фаз конвертации.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase — одна замеренная фаза; Start нулевой у фаз, добавленных через Add.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases in the order they were started. A nil *Timer is
// valid and records nothing, so callers never need to check.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin opens a phase and returns a handle for End; -1 on a nil Timer.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase opened by Begin. Unknown handles are ignored.
func (t *Timer) End(handle int, note string) {
	if t == nil || handle < 0 || handle >= len(t.phases) {
		return
	}
	ph := &t.phases[handle]
	ph.Dur, ph.Note = time.Since(ph.Start), note
}

// Add records a phase measured elsewhere.
func (t *Timer) Add(name string, dur time.Duration, note string) {
	if t != nil {
		t.phases = append(t.phases, Phase{Name: name, Dur: dur, Note: note})
	}
}

// Duration sums every phase called name.
func (t *Timer) Duration(name string) time.Duration {
	var sum time.Duration
	if t != nil {
		for _, ph := range t.phases {
			if ph.Name == name {
				sum += ph.Dur
			}
		}
	}
	return sum
}

// PhaseReport is the serializable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report — снимок таймера; попадает в кэш и в JSON-диагностики.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Report snapshots all phases; empty for a nil or unused Timer.
func (t *Timer) Report() Report {
	var r Report
	if t == nil || len(t.phases) == 0 {
		return r
	}
	var total time.Duration
	r.Phases = make([]PhaseReport, 0, len(t.phases))
	for _, ph := range t.phases {
		total += ph.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: ph.Name, DurationMS: ms(ph.Dur), Note: ph.Note})
	}
	r.TotalMS = ms(total)
	return r
}

// Millis sums the phases called name.
func (r Report) Millis(name string) float64 {
	sum := 0.0
	for _, ph := range r.Phases {
		if ph.Name == name {
			sum += ph.DurationMS
		}
	}
	return sum
}

// Duration is Millis as a time.Duration.
func (r Report) Duration(name string) time.Duration {
	return time.Duration(r.Millis(name) * float64(time.Millisecond))
}

// Summary formats a table of phases followed by the total.
func (t *Timer) Summary() string {
	r := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	row := func(name string, v float64, note string) {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", name, v)
		if note != "" {
			fmt.Fprintf(&b, "  // %s", note)
		}
		b.WriteByte('\n')
	}
	for _, ph := range r.Phases {
		row(ph.Name, ph.DurationMS, ph.Note)
	}
	row("total", r.TotalMS, "")
	return b.String()
}
