package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "12 stmts")
	tm.Add("translate", 3*time.Millisecond, "")
	tm.Add("translate", 2*time.Millisecond, "")

	report := tm.Report()
	be.Equal(t, len(report.Phases), 3)
	be.Equal(t, report.Phases[0].Note, "12 stmts")
	be.Equal(t, report.Millis("translate"), 5.0)
	be.Equal(t, tm.Duration("translate"), 5*time.Millisecond)
	be.True(t, report.TotalMS >= 5.0)

	summary := tm.Summary()
	be.True(t, strings.HasPrefix(summary, "timings:\n"))
	be.True(t, strings.Contains(summary, "// 12 stmts"))
	be.True(t, strings.Contains(summary, "total"))
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	be.Equal(t, idx, -1)
	tm.End(idx, "note")
	tm.Add("y", time.Second, "")
	be.Equal(t, tm.Duration("y"), time.Duration(0))
	be.Equal(t, len(tm.Report().Phases), 0)
}

func TestEndIgnoresBadIndex(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "nothing")
	be.Equal(t, len(tm.Report().Phases), 0)
}
