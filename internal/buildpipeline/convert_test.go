package buildpipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nalgeon/be"

	"pyplus/internal/diag"
)

func writeSource(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) statuses(file string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, ev := range s.events {
		if ev.File == file {
			out = append(out, string(ev.Stage)+":"+string(ev.Status))
		}
	}
	return out
}

func TestConvertWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, filepath.Join(dir, "src", "a.py"), "x = 1\nprint(x)\n")
	b := writeSource(t, filepath.Join(dir, "src", "b.py"), "y = 1.5\ny = \"s\"\n")
	out := filepath.Join(dir, "output")
	sink := &recordingSink{}

	res, err := Convert(context.Background(), &ConvertRequest{
		Files:    []string{a, b},
		BaseDir:  dir,
		OutDir:   out,
		Jobs:     2,
		Progress: sink,
	})
	be.Err(t, err, nil)
	be.True(t, !res.Failed())
	be.Equal(t, res.Written, []string{filepath.Join(out, "a.cpp"), filepath.Join(out, "b.cpp")})
	be.Equal(t, res.Fallbacks(), 1)
	be.Equal(t, res.Bag.Len(), 1)
	be.Equal(t, res.Bag.Items()[0].Code, diag.TrnTypeChange)

	data, err := os.ReadFile(filepath.Join(out, "a.cpp"))
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(string(data), "#include <iostream>\n"))

	be.Equal(t, sink.statuses("src/a.py"), []string{
		"parse:queued", "parse:working", "translate:working", "render:working", "write:working", "write:done",
	})
	be.True(t, res.Timings.Has(StageParse))
	be.True(t, res.Timings.Has(StageTranslate))
	be.True(t, res.Timings.Has(StageRender))
	be.True(t, res.Timings.Has(StageWrite))
}

func TestConvertDuplicateOutputName(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, filepath.Join(dir, "one", "main.py"), "x = 1\n")
	b := writeSource(t, filepath.Join(dir, "two", "main.py"), "y = 2\n")

	res, err := Convert(context.Background(), &ConvertRequest{
		Files:   []string{a, b},
		BaseDir: dir,
		OutDir:  filepath.Join(dir, "out"),
	})
	be.Err(t, err, nil)
	be.True(t, res.Failed())
	be.Equal(t, len(res.Written), 1)
	be.Equal(t, res.Files[1].Bag.Items()[0].Code, diag.ProjDuplicateOutput)
}

func TestConvertRejectsEmptyRequest(t *testing.T) {
	_, err := Convert(context.Background(), &ConvertRequest{OutDir: "x"})
	be.Err(t, err, errNoSources)
	_, err = Convert(context.Background(), nil)
	be.True(t, err != nil)
}

func TestDisplayPath(t *testing.T) {
	be.Equal(t, DisplayPath("/p/src/a.py", "/p"), "src/a.py")
	be.Equal(t, DisplayPath("/q/a.py", "/p"), "/q/a.py")
	be.Equal(t, DisplayPath("src/../a.py", ""), "a.py")
	be.Equal(t, DisplayPaths([]string{"", "/p/b.py"}, "/p"), []string{"b.py"})
}

func TestPrintStageTimings(t *testing.T) {
	var timings Timings
	timings.Add(StageParse, 2*time.Millisecond)
	timings.Add(StageParse, time.Millisecond)
	timings.Set(StageRender, 500*time.Microsecond)

	var buf bytes.Buffer
	be.Err(t, PrintStageTimings(&buf, timings), nil)
	be.Equal(t, buf.String(), "parsed 3.0 ms\nrendered 0.5 ms\n")
	be.Equal(t, timings.Sum(StageParse, StageRender), 3500*time.Microsecond)
}

func TestStageTable(t *testing.T) {
	be.Equal(t, StageTranslate.Label(), "translating")
	be.Equal(t, StageRender.Weight(), 0.8)
	be.Equal(t, Stage("link").Label(), "")
	be.True(t, StatusError.Finished())
	be.True(t, !StatusWorking.Finished())

	var timings Timings
	timings.Add(Stage("link"), time.Second)
	be.Equal(t, timings.Sum(StageParse, StageTranslate, StageRender, StageWrite), time.Duration(0))
}
