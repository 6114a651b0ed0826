package kspl

func (exec *Execution) evalExpression(expr Expression, env *Env) (Value, error) {
	if err := exec.step(); err != nil {
		return NewNull(), exec.wrap(err, expr.Pos())
	}
	switch e := expr.(type) {
	case *IntegerLiteral:
		return NewInt(e.Value), nil
	case *FloatLiteral:
		return NewFloat(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *NullLiteral:
		return NewNull(), nil
	case *Identifier:
		if val, ok := env.Get(e.Name); ok {
			return val, nil
		}
		return NewNull(), exec.wrap(&NameError{Name: e.Name}, e.Pos())
	case *MemberExpr:
		obj, err := exec.evalExpression(e.Object, env)
		if err != nil {
			return NewNull(), err
		}
		return exec.getProperty(obj, e.Property, e.Pos())
	case *CallExpr:
		return exec.evalCall(e, env)
	case *PrefixExpr:
		return exec.evalPrefix(e, env)
	case *InfixExpr:
		return exec.evalInfix(e, env)
	default:
		return NewNull(), exec.errorAt(expr.Pos(), "unsupported expression")
	}
}
