package token_test

import (
	"testing"

	"pyplus/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want token.Kind
		ok   bool
	}{
		{"def", token.KwDef, true},
		{"elif", token.KwElif, true},
		{"True", token.KwTrue, true},
		{"true", token.Invalid, false},
		{"print", token.Invalid, false},
		{"None", token.KwNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := token.LookupKeyword(tt.text)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Fatalf("LookupKeyword(%q) = %v,%v; want %v,%v", tt.text, got, ok, tt.want, tt.ok)
			}
			if ok && !got.IsKeyword() {
				t.Errorf("%v must report IsKeyword", got)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if token.DoubleSlashAssign.String() != "//=" {
		t.Errorf("String() = %q", token.DoubleSlashAssign.String())
	}
	if token.Indent.String() != "Indent" {
		t.Errorf("String() = %q", token.Indent.String())
	}
	if token.Kind(250).String() != "Kind(?)" {
		t.Errorf("out of range kinds must not panic")
	}
}

func TestAugBase(t *testing.T) {
	pairs := map[token.Kind]token.Kind{
		token.PlusAssign:        token.Plus,
		token.DoubleStarAssign:  token.DoubleStar,
		token.DoubleSlashAssign: token.DoubleSlash,
		token.CaretAssign:       token.Caret,
	}
	for aug, base := range pairs {
		if !aug.IsAugAssign() {
			t.Errorf("%v must be augmented", aug)
		}
		got, ok := aug.AugBase()
		if !ok || got != base {
			t.Errorf("%v.AugBase() = %v,%v; want %v", aug, got, ok, base)
		}
	}
	if _, ok := token.Assign.AugBase(); ok {
		t.Error("plain '=' has no base operator")
	}
}

func TestTokenClassifiers(t *testing.T) {
	lit := token.Token{Kind: token.StringLit}
	if !lit.IsLiteral() || lit.IsLayout() {
		t.Errorf("string literal misclassified")
	}
	nl := token.Token{Kind: token.Dedent}
	if !nl.IsLayout() || nl.IsLiteral() {
		t.Errorf("dedent misclassified")
	}
}
