package kspl

import (
	"math"
	"strings"
)

func (exec *Execution) evalPrefix(e *PrefixExpr, env *Env) (Value, error) {
	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewNull(), err
	}
	switch e.Operator {
	case "!":
		if right.Kind() != KindBool {
			return NewNull(), exec.errorAt(e.Pos(), "operator ! expects bool, got %s", right.Kind())
		}
		return NewBool(!right.Bool()), nil
	case "-":
		switch right.Kind() {
		case KindInt:
			return NewInt(-right.Int()), nil
		case KindFloat:
			return NewFloat(-right.Float()), nil
		}
		return NewNull(), exec.errorAt(e.Pos(), "operator - expects a number, got %s", right.Kind())
	default:
		return NewNull(), exec.errorAt(e.Pos(), "unknown operator %s", e.Operator)
	}
}

// evalInfix evaluates binary operators. && and || short-circuit and
// insist on bool operands; everything else evaluates both sides first.
func (exec *Execution) evalInfix(e *InfixExpr, env *Env) (Value, error) {
	if e.Operator == "&&" || e.Operator == "||" {
		return exec.evalLogical(e, env)
	}

	left, err := exec.evalExpression(e.Left, env)
	if err != nil {
		return NewNull(), err
	}
	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewNull(), err
	}

	switch e.Operator {
	case "+":
		return exec.addValues(left, right, e.Pos())
	case "-", "*", "/", "%":
		return exec.arithmeticValues(e.Operator, left, right, e.Pos())
	case "==":
		return NewBool(left.Equal(right)), nil
	case "!=":
		return NewBool(!left.Equal(right)), nil
	case "<", ">", "<=", ">=":
		return exec.compareValues(e.Operator, left, right, e.Pos())
	default:
		return NewNull(), exec.errorAt(e.Pos(), "unknown operator %s", e.Operator)
	}
}

func (exec *Execution) evalLogical(e *InfixExpr, env *Env) (Value, error) {
	left, err := exec.evalExpression(e.Left, env)
	if err != nil {
		return NewNull(), err
	}
	if left.Kind() != KindBool {
		return NewNull(), exec.errorAt(e.Pos(), "operator %s expects bool operands, got %s", e.Operator, left.Kind())
	}
	if e.Operator == "&&" && !left.Bool() {
		return NewBool(false), nil
	}
	if e.Operator == "||" && left.Bool() {
		return NewBool(true), nil
	}

	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewNull(), err
	}
	if right.Kind() != KindBool {
		return NewNull(), exec.errorAt(e.Pos(), "operator %s expects bool operands, got %s", e.Operator, right.Kind())
	}
	return NewBool(right.Bool()), nil
}

func (exec *Execution) addValues(left, right Value, line int) (Value, error) {
	switch {
	case left.Kind() == KindString && right.Kind() == KindString:
		return NewString(left.Text() + right.Text()), nil
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() + right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() + right.Float()), nil
	default:
		return NewNull(), exec.errorAt(line, "unsupported operand types for +: %s and %s", left.Kind(), right.Kind())
	}
}

// arithmeticValues handles - * / % on numbers. Two Ints stay Int, with
// / truncating toward zero; any Float operand promotes the result.
func (exec *Execution) arithmeticValues(op string, left, right Value, line int) (Value, error) {
	if !left.isNumeric() || !right.isNumeric() {
		return NewNull(), exec.errorAt(line, "unsupported operand types for %s: %s and %s", op, left.Kind(), right.Kind())
	}

	if left.Kind() == KindInt && right.Kind() == KindInt {
		a, b := left.Int(), right.Int()
		switch op {
		case "-":
			return NewInt(a - b), nil
		case "*":
			return NewInt(a * b), nil
		case "/":
			if b == 0 {
				return NewNull(), exec.errorAt(line, "division by zero")
			}
			return NewInt(a / b), nil
		case "%":
			if b == 0 {
				return NewNull(), exec.errorAt(line, "modulo by zero")
			}
			return NewInt(a % b), nil
		}
	}

	a, b := left.Float(), right.Float()
	switch op {
	case "-":
		return NewFloat(a - b), nil
	case "*":
		return NewFloat(a * b), nil
	case "/":
		if b == 0 {
			return NewNull(), exec.errorAt(line, "division by zero")
		}
		return NewFloat(a / b), nil
	case "%":
		if b == 0 {
			return NewNull(), exec.errorAt(line, "modulo by zero")
		}
		return NewFloat(math.Mod(a, b)), nil
	}
	return NewNull(), exec.errorAt(line, "unknown operator %s", op)
}

func (exec *Execution) compareValues(op string, left, right Value, line int) (Value, error) {
	var cmp int
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		a, b := left.Int(), right.Int()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case left.isNumeric() && right.isNumeric():
		a, b := left.Float(), right.Float()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case left.Kind() == KindString && right.Kind() == KindString:
		cmp = strings.Compare(left.Text(), right.Text())
	default:
		return NewNull(), exec.errorAt(line, "cannot compare %s and %s", left.Kind(), right.Kind())
	}
	return NewBool(orderMatches(op, cmp)), nil
}

func orderMatches(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	case ">=":
		return cmp >= 0
	}
	return false
}
