package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"pyplus/internal/diag"
	"pyplus/internal/source"
)

// sampleBag — один warning перевода на строке 2 с заметкой.
func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("x = 1\ny = \"abc\"\n")
	fileID := fs.AddVirtual("/home/user/project/src/prog.py", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevWarning,
		diag.TrnTypeChange,
		source.Span{File: fileID, Start: 10, End: 15},
		"Variable type change not supported",
	).WithNote(source.Span{File: fileID, Start: 0, End: 1}, "first declared here")
	bag.Add(d)
	return bag, fs
}

func TestPathModes(t *testing.T) {
	bag, fs := sampleBag(t)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/prog.py:2:5"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/prog.py:2:5"},
		{name: "Basename only", mode: PathModeBasename, contains: "prog.py:2:5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING TRN3002: Variable type change not supported") {
				t.Errorf("missing header line:\n%s", output)
			}
		})
	}
}

func TestPrettySnippetAndNotes(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true, Summary: true})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	be.Equal(t, len(lines), 6)
	be.Equal(t, lines[1], "1 | x = 1")
	be.Equal(t, lines[2], "2 | y = \"abc\"")
	be.Equal(t, lines[3], "  |     ^~~~~")
	be.Equal(t, lines[4], "  note: prog.py:1:1: first declared here")
	be.Equal(t, lines[5], "0 error(s), 1 warning(s)")
}

func TestPrettyHidesNotesByDefault(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	be.True(t, !strings.Contains(buf.String(), "note:"))
	// без контекста печатается только сама строка
	be.True(t, !strings.Contains(buf.String(), "x = 1"))
}

func TestPrettyUnderlineCountsWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	// "имя" — 6 байт, 3 колонки
	content := []byte("имя = 1\n")
	fileID := fs.AddVirtual("wide.py", content)
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 7, End: 8}, "bad"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	be.Equal(t, lines[len(lines)-1], "  |     ^")
}
