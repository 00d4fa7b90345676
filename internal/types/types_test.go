package types

import (
	"testing"

	"github.com/nalgeon/be"
)

var all = []Tag{Auto, String, Float, Int, Bool, None, Void, CharPtrPtr}

func TestWidenIsCommutative(t *testing.T) {
	for _, a := range all {
		for _, b := range all {
			be.Equal(t, Widen(a, b), Widen(b, a))
		}
	}
}

func TestWidenNeverNarrows(t *testing.T) {
	for _, a := range all {
		for _, b := range all {
			w := Widen(a, b)
			if !w.Ordered() {
				be.Equal(t, w, Auto)
				continue
			}
			rw, _ := w.rank()
			ra, _ := a.rank()
			rb, _ := b.rank()
			be.True(t, rw <= ra && rw <= rb)
		}
	}
}

func TestWidenTable(t *testing.T) {
	tests := []struct {
		a, b, want Tag
	}{
		{Int, Float, Float},
		{Int, Int, Int},
		{Bool, Int, Int},
		{String, Int, String},
		{Float, Bool, Float},
		{Int, Auto, Auto},
		{None, Int, Auto},
		{Void, Void, Auto},
	}
	for _, tt := range tests {
		t.Run(tt.a.String()+"+"+tt.b.String(), func(t *testing.T) {
			be.Equal(t, Widen(tt.a, tt.b), tt.want)
		})
	}
}

func TestCppSpelling(t *testing.T) {
	be.Equal(t, Float.CppName(), "double")
	be.Equal(t, String.Decl("s"), "std::string s")
	be.Equal(t, CharPtrPtr.Decl("argv"), "char **argv")
	be.Equal(t, Auto.Decl("x"), "auto x")
	tag, ok := FromTypeName("float")
	be.True(t, ok)
	be.Equal(t, tag, Float)
	_, ok = FromTypeName("list")
	be.Equal(t, ok, false)
}
