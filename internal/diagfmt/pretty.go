package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pyplus/internal/diag"
	"pyplus/internal/source"
)

type palette struct {
	sev    map[diag.Severity]*color.Color
	code   *color.Color
	gutter *color.Color
	caret  *color.Color
	note   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	all := []*color.Color{p.code, p.gutter, p.caret, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(f, fs, opts.PathMode), start.Line, start.Col,
			pal.sev[d.Severity].Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message)
		snippet(w, fs, d.Primary, int(opts.Context), pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			nf := fs.Get(n.Span.File)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
				formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
	if opts.Summary && bag.Len() > 0 {
		fmt.Fprintf(w, "%d error(s), %d warning(s)\n", bag.Count(diag.SevError), bag.Count(diag.SevWarning))
	}
}

// snippet печатает строку span-а с context строками выше и подчёркивание.
// Ширина префикса считается в колонках терминала, а не в байтах.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, pal palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	if start.Line == 0 || start.Line > f.LineCount() {
		return
	}
	first := max(int(start.Line)-context, 1)
	width := len(fmt.Sprint(start.Line))
	for n := first; n <= int(start.Line); n++ {
		line := expandTabs(f.GetLine(uint32(n)))
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, n), line)
	}

	raw := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(raw))
	endCol := len(raw)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(raw))
	}
	pad := runewidth.StringWidth(expandTabs(raw[:col]))
	span := max(runewidth.StringWidth(expandTabs(raw[col:max(endCol, col)])), 1)
	marker := "^" + strings.Repeat("~", span-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
