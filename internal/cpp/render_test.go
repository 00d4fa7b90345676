package cpp

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/sirkon/deepequal"

	"pyplus/internal/types"
)

func sampleFile() *File {
	f := NewFile("main")
	f.AddInclude("iostream")
	f.AddInclude("math.h")
	f.AddInclude("iostream")

	add := NewFunction("add", 1, 3, false)
	add.Params = []Param{{Name: "a", Type: types.Int}, {Name: "b", Type: types.Int, Default: "3"}}
	add.Return = types.Int
	add.Lines.Put(&CodeLine{Start: 3, End: 3, Indent: 1, Text: "return (a+b);"})
	add.Lines.Put(&CodeLine{Start: 2, End: 2, Indent: 1, Comment: "sum"})

	entry := NewFunction("main", 0, 0, true)
	entry.Params = []Param{{Name: "argc", Type: types.Int}, {Name: "argv", Type: types.CharPtrPtr}}
	entry.Return = types.Int
	hdr := &CodeLine{Start: 5, End: 5, Indent: 1, Text: "if (x)\n{", Comment: "check"}
	entry.Lines.Put(hdr)
	body := &CodeLine{Start: 6, End: 6, Indent: 2, Text: "x = add(1, 2);"}
	body.Append(1, "}")
	entry.Lines.Put(body)
	entry.Lines.Put(&CodeLine{Start: 7, End: 7, Indent: 1, PreComment: "TODO: Constant not used", Text: "/*1*/", Verbatim: true})

	f.Functions = append(f.Functions, add, entry)
	return f
}

func TestRender(t *testing.T) {
	got := Render(sampleFile(), RenderOptions{})
	want := strings.Join([]string{
		"#include <iostream>",
		"#include <math.h>",
		"",
		"int add(int a, int b);",
		"",
		"int main(int argc, char **argv)",
		"{",
		"    if (x) // check",
		"    {",
		"        x = add(1, 2);",
		"    }",
		"    //TODO: Constant not used",
		"    /*1*/",
		"}",
		"",
		"int add(int a, int b=3)",
		"{",
		"    // sum",
		"    return (a+b);",
		"}",
		"",
	}, "\n")
	if got != want {
		deepequal.SideBySide(t, "render", strings.Split(want, "\n"), strings.Split(got, "\n"))
		t.FailNow()
	}
}

func TestRenderIndentOption(t *testing.T) {
	f := NewFile("main")
	entry := NewFunction("main", 0, 0, true)
	entry.Return = types.Int
	entry.Lines.Put(&CodeLine{Start: 1, End: 1, Indent: 1, Text: "return 0;"})
	f.Functions = append(f.Functions, entry)
	be.Equal(t, Render(f, RenderOptions{Indent: 2}), "int main()\n{\n  return 0;\n}\n")
}

func TestLinesOrderAndLastIn(t *testing.T) {
	l := NewLines()
	for _, n := range []int{10, 2, 7, 4} {
		l.Put(&CodeLine{Start: n, End: n})
	}
	var keys []int
	for _, cl := range l.Sorted() {
		keys = append(keys, cl.Start)
	}
	if !reflect.DeepEqual(keys, []int{2, 4, 7, 10}) {
		deepequal.SideBySide(t, "keys", []int{2, 4, 7, 10}, keys)
		t.FailNow()
	}

	cl, ok := l.LastIn(3, 9)
	be.True(t, ok)
	be.Equal(t, cl.Start, 7)
	_, ok = l.LastIn(5, 6)
	be.Equal(t, ok, false)
}

func TestSignatureCache(t *testing.T) {
	fn := NewFunction("f", 1, 1, false)
	fn.Params = []Param{{Name: "a", Type: types.Auto}}
	be.Equal(t, fn.Signature(true), "void f(auto a)")
	fn.Params[0].Type = types.Float
	be.Equal(t, fn.Signature(true), "void f(auto a)")
	fn.Invalidate()
	be.Equal(t, fn.Signature(true), "void f(double a)")
	be.Equal(t, fn.Signature(false), "void f(double a)")
}

func TestSplitTail(t *testing.T) {
	cl := &CodeLine{Start: 4, End: 4, Indent: 3, Text: "x = 1;"}
	cl.Close(2, 8)
	cl.Close(1, 4)

	// комментарий на отступе 8 закрывает только внутренний блок
	open := cl.SplitTail(8)
	be.Equal(t, len(cl.Tail), 1)
	be.Equal(t, cl.Tail[0].Col, 8)
	be.Equal(t, len(open), 1)
	be.Equal(t, open[0], Piece{Indent: 1, Text: "}", Col: 4})

	// на нулевом отступе все блоки уже закрыты
	be.Equal(t, len(cl.SplitTail(0)), 0)
	be.Equal(t, len(cl.Tail), 1)
}
