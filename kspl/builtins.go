package kspl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// registerCoreBuiltins installs the language-level builtins every
// interpreter carries. Hosts layer their own on top via Register.
func registerCoreBuiltins(interp *Interp) {
	interp.RegisterFunc("print", func(args []Value) (Value, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = arg.String()
		}
		interp.display(strings.Join(parts, " "))
		return NewNull(), nil
	})
	interp.RegisterFunc("len", builtinLen)
	interp.RegisterFunc("str", builtinStr)
	interp.RegisterFunc("int", builtinInt)
	interp.RegisterFunc("float", builtinFloat)
	interp.RegisterFunc("bool", builtinBool)
}

func builtinLen(args []Value) (Value, error) {
	if len(args) != 1 {
		return NewNull(), &TypeError{Message: "len expects one argument"}
	}
	if args[0].Kind() != KindString {
		return NewNull(), &TypeError{Message: fmt.Sprintf("len expects a string, got %s", args[0].Kind())}
	}
	return NewInt(int64(utf8.RuneCountInString(args[0].Text()))), nil
}

func builtinStr(args []Value) (Value, error) {
	if len(args) != 1 {
		return NewNull(), &TypeError{Message: "str expects one argument"}
	}
	return NewString(args[0].String()), nil
}

func builtinInt(args []Value) (Value, error) {
	if len(args) != 1 {
		return NewNull(), &TypeError{Message: "int expects one argument"}
	}
	arg := args[0]
	switch arg.Kind() {
	case KindInt:
		return arg, nil
	case KindFloat:
		return NewInt(int64(arg.Float())), nil
	case KindBool:
		if arg.Bool() {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(arg.Text()), 10, 64)
		if err != nil {
			return NewNull(), &TypeError{Message: fmt.Sprintf("cannot convert '%s' to int", arg.Text())}
		}
		return NewInt(n), nil
	default:
		return NewNull(), &TypeError{Message: fmt.Sprintf("cannot convert %s to int", arg.Kind())}
	}
}

func builtinFloat(args []Value) (Value, error) {
	if len(args) != 1 {
		return NewNull(), &TypeError{Message: "float expects one argument"}
	}
	arg := args[0]
	switch arg.Kind() {
	case KindFloat:
		return arg, nil
	case KindInt:
		return NewFloat(arg.Float()), nil
	case KindBool:
		if arg.Bool() {
			return NewFloat(1), nil
		}
		return NewFloat(0), nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(arg.Text()), 64)
		if err != nil {
			return NewNull(), &TypeError{Message: fmt.Sprintf("cannot convert '%s' to float", arg.Text())}
		}
		return NewFloat(f), nil
	default:
		return NewNull(), &TypeError{Message: fmt.Sprintf("cannot convert %s to float", arg.Kind())}
	}
}

func builtinBool(args []Value) (Value, error) {
	if len(args) != 1 {
		return NewNull(), &TypeError{Message: "bool expects one argument"}
	}
	return NewBool(args[0].Truthy()), nil
}
