package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nalgeon/be"

	"pyplus/internal/diag"
	"pyplus/internal/observ"
	"pyplus/internal/token"
	"pyplus/internal/trace"
)

const sampleProgram = `def add(a, b=2):
    return a + b


x = add(1)
x = "text"
`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestConvertFilesSingle(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog.py", sampleProgram)

	_, results, err := ConvertFiles(context.Background(), dir, []string{path}, ConvertOptions{Name: "custom"}, 1)
	be.Err(t, err, nil)
	be.Equal(t, len(results), 1)

	res := results[0]
	be.Equal(t, res.Name, "custom")
	be.Equal(t, res.OutputFile(), "custom.cpp")
	be.Equal(t, res.Fallbacks, 1)
	be.True(t, !res.Failed())
	be.True(t, strings.Contains(res.Output, "int add(int a, int b);\n\nint main(int argc, char **argv)\n{"))
	be.True(t, strings.Contains(res.Output, "int add(int a, int b=2)"))
	be.Equal(t, res.Bag.Count(diag.SevWarning), 1)
	be.Equal(t, res.Bag.Items()[0].Code, diag.TrnTypeChange)

	names := make([]string, 0, len(res.Timing.Phases))
	for _, p := range res.Timing.Phases {
		names = append(names, p.Name)
	}
	be.Equal(t, names, []string{"parse", "translate", "finalize", "comments", "render"})
}

func TestConvertFilesKeepsOrderAndIgnoresNameForMany(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.py", "a.py", "b.py"} {
		paths = append(paths, writeSource(t, dir, name, "y = 1\n"))
	}

	_, results, err := ConvertFiles(context.Background(), dir, paths, ConvertOptions{Name: "ignored"}, 2)
	be.Err(t, err, nil)
	got := make([]string, len(results))
	for i, r := range results {
		got[i] = r.Name
	}
	be.Equal(t, got, []string{"c", "a", "b"})
}

func TestConvertFilesLoadFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.py", "y = 1\n")
	missing := filepath.Join(dir, "missing.py")

	fs, results, err := ConvertFiles(context.Background(), dir, []string{missing, good}, ConvertOptions{}, 0)
	be.Err(t, err, nil)

	be.True(t, results[0].Err != nil)
	be.True(t, results[0].Failed())
	be.Equal(t, results[0].Bag.Items()[0].Code, diag.IOLoadFileError)
	// span указывает на виртуальный файл с тем же путём
	be.True(t, strings.HasSuffix(fs.Get(results[0].Bag.Items()[0].Primary.File).Path, "missing.py"))

	be.True(t, !results[1].Failed())
	be.True(t, strings.Contains(results[1].Output, "int y = 1;"))
}

func TestSyntaxErrorFailsButStillRenders(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.py", "x = (1 +\ny = 2\n")

	_, results, err := ConvertFiles(context.Background(), dir, []string{path}, ConvertOptions{}, 1)
	be.Err(t, err, nil)
	res := results[0]
	be.True(t, res.SyntaxErrors > 0)
	be.True(t, res.Failed())
	be.True(t, strings.Contains(res.Output, "//TODO: Unable to parse statement"))
}

func TestDiskCacheServesIdenticalOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog.py", sampleProgram)
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	be.Err(t, err, nil)
	opts := ConvertOptions{Cache: cache, Indent: 4}

	_, first, err := ConvertFiles(context.Background(), dir, []string{path}, opts, 1)
	be.Err(t, err, nil)
	be.True(t, !first[0].Cached)

	var mu sync.Mutex
	var phases []string
	opts.Observer = func(ev PhaseEvent) {
		mu.Lock()
		defer mu.Unlock()
		if ev.Status == PhaseStart {
			phases = append(phases, ev.Name)
		}
	}
	_, second, err := ConvertFiles(context.Background(), dir, []string{path}, opts, 1)
	be.Err(t, err, nil)
	be.True(t, second[0].Cached)
	be.Equal(t, second[0].Output, first[0].Output)
	be.Equal(t, second[0].Fallbacks, first[0].Fallbacks)
	be.Equal(t, second[0].Bag.Len(), first[0].Bag.Len())
	be.Equal(t, second[0].Bag.Items()[0].Primary.Start, first[0].Bag.Items()[0].Primary.Start)
	be.Equal(t, phases, []string{PhaseCache})

	// другой отступ — другой ключ
	opts.Indent = 2
	opts.Observer = nil
	_, third, err := ConvertFiles(context.Background(), dir, []string{path}, opts, 1)
	be.Err(t, err, nil)
	be.True(t, !third[0].Cached)
	be.True(t, strings.Contains(third[0].Output, "\n  return (a+b);"))

	be.Err(t, cache.DropAll(), nil)
	_, fourth, err := ConvertFiles(context.Background(), dir, []string{path}, opts, 1)
	be.Err(t, err, nil)
	be.True(t, !fourth[0].Cached)
}

func TestConvertEmitsFileAndPassSpans(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog.py", sampleProgram)
	rec := trace.NewRecorder(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), rec)

	_, _, err := ConvertFiles(ctx, dir, []string{path}, ConvertOptions{}, 1)
	be.Err(t, err, nil)

	seen := map[string]bool{}
	for _, ev := range rec.Events() {
		seen[ev.Scope.String()+":"+ev.Name] = true
	}
	be.True(t, seen["pass:convert"])
	be.True(t, seen["pass:parse"])
	be.True(t, seen["pass:translate"])
	be.True(t, seen["file:"+path])
	be.True(t, seen["stmt:fallback"])
}

func TestTokenizeAndParse(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "prog.py", "if x:\n    y = 1\n")

	tr, err := Tokenize(path, 0)
	be.Err(t, err, nil)
	be.Equal(t, tr.Tokens[len(tr.Tokens)-1].Kind, token.EOF)
	be.Equal(t, tr.Bag.Len(), 0)

	pr, err := Parse(context.Background(), path, 10)
	be.Err(t, err, nil)
	be.Equal(t, pr.SyntaxErrors, uint(0))
	be.Equal(t, len(pr.Builder.Files.Get(pr.FileID).Body), 1)

	_, err = Tokenize(filepath.Join(dir, "none.py"), 0)
	be.True(t, err != nil)
}

func TestAppendTimingDiagnosticOverflowsLimit(t *testing.T) {
	bag := diag.NewBag(0)
	AppendTimingDiagnostic(bag, "", "a.py", observReport())
	be.Equal(t, bag.Len(), 1)
	d := bag.Items()[0]
	be.Equal(t, d.Code, diag.ObsTimings)
	be.True(t, strings.HasPrefix(d.Message, "timings (pipeline): total 1.50 ms"))
	be.True(t, strings.Contains(d.Notes[0].Msg, `"name":"parse"`))
}

func observReport() observ.Report {
	return observ.Report{TotalMS: 1.5, Phases: []observ.PhaseReport{{Name: "parse", DurationMS: 1.5}}}
}
