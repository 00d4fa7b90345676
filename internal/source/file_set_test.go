package source

import (
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.py", []byte("x = 1"), 0)
	id2 := fs.Add("test.py", []byte("x = 2"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("test.py")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "x = 1" {
		t.Errorf("old version content = %q", got)
	}
}

func TestAddVirtualNormalizes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.py", []byte("\xEF\xBB\xBFa = 1\r\nb = 2\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "a = 1\nb = 2\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	want := FileVirtual | FileHadBOM | FileNormalizedCRLF
	if f.Flags != want {
		t.Errorf("flags = %b, want %b", f.Flags, want)
	}
}

func TestGetLineAndLines(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("lines.py", []byte("first\n\nthird\nlast")))

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, ""},
		{3, "third"},
		{4, "last"},
		{5, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}

	if f.LineCount() != 4 {
		t.Fatalf("LineCount = %d, want 4", f.LineCount())
	}
	lines := f.Lines()
	if len(lines) != 5 || lines[0] != "" || lines[4] != "last" {
		t.Errorf("Lines = %q", lines)
	}
}

func TestLineCountTrailingNewline(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.py", []byte("a\nb\n")))
	if f.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", f.LineCount())
	}
	if f.LineStart(2) != 2 {
		t.Errorf("LineStart(2) = %d, want 2", f.LineStart(2))
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.py", []byte("ab\ncd\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{5, LineCol{2, 3}},
		{6, LineCol{3, 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 8 {
		t.Fatalf("Cover = %v", c)
	}
	if !c.Contains(a) || !c.Contains(b) {
		t.Errorf("cover must contain both inputs")
	}
	other := Span{File: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Errorf("spans from different files must not merge")
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	x := in.Intern("x")
	if in.Intern("x") != x {
		t.Fatal("intern must be idempotent")
	}
	if s, ok := in.Lookup(x); !ok || s != "x" {
		t.Errorf("Lookup = %q,%v", s, ok)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("unknown id must not resolve")
	}
	if in.MustLookup(NoStringID) != "" {
		t.Error("NoStringID must map to empty string")
	}
}
