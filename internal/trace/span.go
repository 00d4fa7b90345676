package trace

import (
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span — открытая операция; End закрывает её ровно один раз.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
	done    bool
}

// Begin opens a span under parent (0 for a root span). With a disabled
// tracer it returns an inert span whose methods do nothing.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !enabled(t) {
		return &Span{done: true}
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
	})
	return s
}

// WithExtra attaches a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.done {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	return s.finish(detail, false)
}

// Fail closes the span as failed; it passes the error level filter.
func (s *Span) Fail(detail string) time.Duration {
	return s.finish(detail, true)
}

func (s *Span) finish(detail string, failed bool) time.Duration {
	if s == nil || s.done {
		return 0
	}
	s.done = true
	now := time.Now()
	elapsed := now.Sub(s.started)
	s.tracer.Emit(&Event{
		Time:     now,
		Kind:     KindEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Failed:   failed,
		Elapsed:  elapsed,
		Extra:    s.extra,
	})
	return elapsed
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	point(t, scope, name, detail, parent, extra, false)
}

// Failure emits an instant failed event.
func Failure(t Tracer, scope Scope, name, detail string, parent uint64) {
	point(t, scope, name, detail, parent, nil, true)
}

func point(t Tracer, scope Scope, name, detail string, parent uint64, extra map[string]string, failed bool) {
	if !enabled(t) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
		Failed:   failed,
		Extra:    extra,
	})
}
