package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"pyplus/internal/source"
)

// shortLine — одна строка краткого вывода: "<sev> <code> <path>:<line>:<col> <msg>".
type shortLine struct {
	sev, code, path, msg string
	line, col            uint32
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatShort renders one line per diagnostic (and per note when withNotes),
// sorted by location. Paths are relative to the FileSet base directory, so
// the output is stable enough for golden files. Diagnostics pointing at
// unknown files are skipped.
func FormatShort(diags []Diagnostic, fs *source.FileSet, withNotes bool) string {
	if fs == nil {
		return ""
	}
	base := fs.BaseDir()
	var lines []shortLine
	add := func(sev, code string, span source.Span, msg string) {
		f := fs.Get(span.File)
		if f == nil {
			return
		}
		pos := f.Position(span.Start)
		lines = append(lines, shortLine{
			sev:  sev,
			code: code,
			path: f.FormatPath("relative", base),
			msg:  flatten(msg),
			line: pos.Line,
			col:  pos.Col,
		})
	}
	for i := range diags {
		d := &diags[i]
		add(strings.ToLower(d.Severity.String()), d.Code.ID(), d.Primary, d.Message)
		if !withNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code.ID(), n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(lines, compareShort)

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.String())
	}
	return b.String()
}

// flatten склеивает многострочное сообщение в одну строку.
func flatten(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
