// Package ported содержит ручные правила перевода встроенных функций
// Python в выражения C++.
package ported

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"pyplus/internal/types"
)

// ErrArity — неверное число аргументов для встроенной функции.
var ErrArity = errors.New("wrong number of arguments")

// Arg — уже переведённый аргумент вызова.
type Arg struct {
	Text string
	Type types.Tag
}

// Result — текст вызова, его тип и заголовок, который нужно подключить.
type Result struct {
	Text    string
	Type    types.Tag
	Include string
}

// Rule переводит вызов встроенной функции.
type Rule func(args []Arg) (Result, error)

var rules = map[string]Rule{
	"print": printRule,
	"sqrt":  mathUnary("sqrt"),
	"floor": mathUnary("floor"),
	"ceil":  mathUnary("ceil"),
	"pow":   powRule,
	"abs":   absRule,
}

// Lookup возвращает правило для имени встроенной функции.
func Lookup(name string) (Rule, bool) {
	r, ok := rules[name]
	return r, ok
}

// Names — отсортированный список поддерживаемых функций.
func Names() []string {
	names := make([]string, 0, len(rules))
	for n := range rules {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func arity(name string, args []Arg, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s() takes %d, got %d", ErrArity, name, want, len(args))
	}
	return nil
}

// printRule: все аргументы склеиваются через `+` перед выводом в cout.
func printRule(args []Arg) (Result, error) {
	res := Result{Type: types.Void, Include: "iostream"}
	if len(args) == 0 {
		res.Text = "std::cout << std::endl"
		return res, nil
	}
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.Text
	}
	res.Text = "std::cout << " + strings.Join(texts, " + ") + " << std::endl"
	return res, nil
}

func mathUnary(name string) Rule {
	return func(args []Arg) (Result, error) {
		if err := arity(name, args, 1); err != nil {
			return Result{}, err
		}
		return Result{Text: name + "(" + args[0].Text + ")", Type: types.Float, Include: "math.h"}, nil
	}
}

func powRule(args []Arg) (Result, error) {
	if err := arity("pow", args, 2); err != nil {
		return Result{}, err
	}
	return Result{Text: "pow(" + args[0].Text + ", " + args[1].Text + ")", Type: types.Float, Include: "math.h"}, nil
}

// absRule: для int — abs из stdlib.h, иначе fabs.
func absRule(args []Arg) (Result, error) {
	if err := arity("abs", args, 1); err != nil {
		return Result{}, err
	}
	if args[0].Type == types.Int || args[0].Type == types.Bool {
		return Result{Text: "abs(" + args[0].Text + ")", Type: types.Int, Include: "stdlib.h"}, nil
	}
	return Result{Text: "fabs(" + args[0].Text + ")", Type: types.Float, Include: "math.h"}, nil
}
