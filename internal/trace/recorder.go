package trace

import "sync"

// Recorder keeps the last limit accepted events in memory.
type Recorder struct {
	mu      sync.Mutex
	events  []Event
	limit   int
	level   Level
	seq     uint64
	dropped int
}

// NewRecorder creates a Recorder; limit <= 0 means 1024.
func NewRecorder(limit int, level Level) *Recorder {
	if limit <= 0 {
		limit = 1024
	}
	return &Recorder{limit: limit, level: level}
}

func (r *Recorder) Emit(ev *Event) {
	if !r.level.Accepts(ev) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ev.Seq = r.seq
	if len(r.events) == r.limit {
		r.events = append(r.events[:0], r.events[1:]...)
		r.dropped++
	}
	r.events = append(r.events, *ev)
}

// Events returns a copy of the recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Dropped — сколько старых событий вытеснено лимитом.
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

func (r *Recorder) Flush() error { return nil }
func (r *Recorder) Close() error { return nil }
func (r *Recorder) Level() Level { return r.level }
