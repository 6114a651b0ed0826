package kspl

import (
	"fmt"
	"strconv"
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindHost:
		return "host"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the value the way print and str display it.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return strconv.FormatFloat(v.data.(float64), 'g', -1, 64)
	case KindString:
		return v.data.(string)
	case KindFunction:
		return fmt.Sprintf("<fn %s>", v.data.(*FunctionDecl).Name)
	case KindBuiltin:
		return fmt.Sprintf("<builtin %s>", v.data.(*Builtin).Name)
	case KindClass:
		return fmt.Sprintf("<class %s>", v.data.(*ClassDecl).Name)
	case KindInstance:
		return fmt.Sprintf("<%s instance>", v.data.(*Instance).Class.Name)
	case KindHost:
		hv := v.data.(HostValue)
		if s, ok := hv.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("<%s>", hv.TypeName())
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Truthy is the conversion the bool builtin applies: null and false are
// false, zero numbers and empty strings are false, everything else is
// true. The if statement and logical operators do not use it; they
// require Bool operands.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.data.(int64) != 0
	case KindFloat:
		return v.data.(float64) != 0
	case KindString:
		return v.data.(string) != ""
	default:
		return true
	}
}

func (v Value) isNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// Equal compares two values of the same kind class. Int and Float form
// one numeric class and compare promoted, so 1 == 1.0 holds. Reference
// kinds compare by identity and mismatched kinds are simply unequal.
func (v Value) Equal(other Value) bool {
	if v.isNumeric() && other.isNumeric() {
		if v.kind == KindFloat || other.kind == KindFloat {
			return v.Float() == other.Float()
		}
		return v.Int() == other.Int()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindString:
		return v.data.(string) == other.data.(string)
	default:
		return v.data == other.data
	}
}
