package kspl

import "fmt"

// evalCall evaluates arguments left to right, then dispatches on the
// callee shape: a bare name resolves through class table, scope chain,
// and host registry; a dotted callee is a method call on its receiver.
func (exec *Execution) evalCall(call *CallExpr, env *Env) (Value, error) {
	switch callee := call.Callee.(type) {
	case *Identifier:
		args, err := exec.evalArgs(call.Args, env)
		if err != nil {
			return NewNull(), err
		}
		return exec.callNamed(callee.Name, args, env, call.Pos())
	case *MemberExpr:
		receiver, err := exec.evalExpression(callee.Object, env)
		if err != nil {
			return NewNull(), err
		}
		args, err := exec.evalArgs(call.Args, env)
		if err != nil {
			return NewNull(), err
		}
		return exec.callMethodOn(receiver, callee.Property, args, call.Pos())
	default:
		target, err := exec.evalExpression(call.Callee, env)
		if err != nil {
			return NewNull(), err
		}
		args, err := exec.evalArgs(call.Args, env)
		if err != nil {
			return NewNull(), err
		}
		return exec.invoke(target, args, call.Pos())
	}
}

func (exec *Execution) evalArgs(exprs []Expression, env *Env) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, expr := range exprs {
		val, err := exec.evalExpression(expr, env)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return args, nil
}

// callNamed resolves a bare-name call: class constructors win, then
// any callable the scope chain binds, then the host registry as a
// backstop so shadowing a builtin name with data does not break calls
// to it.
func (exec *Execution) callNamed(name string, args []Value, env *Env, line int) (Value, error) {
	if cls, ok := exec.interp.classes[name]; ok {
		return exec.instantiate(cls, args, line)
	}
	if val, ok := env.Get(name); ok && callable(val) {
		return exec.invokeNamed(name, val, args, line)
	}
	if val, ok := exec.interp.registry[name]; ok {
		return exec.invokeNamed(name, val, args, line)
	}
	return NewNull(), exec.wrap(&CallTargetError{Name: name}, line)
}

func callable(v Value) bool {
	switch v.Kind() {
	case KindFunction, KindBuiltin, KindClass:
		return true
	}
	return false
}

func (exec *Execution) invokeNamed(name string, val Value, args []Value, line int) (Value, error) {
	switch val.Kind() {
	case KindFunction:
		return exec.callFunction(val.Function(), NewNull(), args, line)
	case KindBuiltin:
		return exec.callBuiltin(val.Builtin(), args, line)
	case KindClass:
		return exec.instantiate(val.Class(), args, line)
	default:
		return NewNull(), exec.wrap(&CallTargetError{Name: name}, line)
	}
}

// invoke handles calls whose callee is an arbitrary expression, such
// as a parenthesized value.
func (exec *Execution) invoke(target Value, args []Value, line int) (Value, error) {
	switch target.Kind() {
	case KindFunction:
		return exec.callFunction(target.Function(), NewNull(), args, line)
	case KindBuiltin:
		return exec.callBuiltin(target.Builtin(), args, line)
	case KindClass:
		return exec.instantiate(target.Class(), args, line)
	default:
		return NewNull(), exec.errorAt(line, "%s is not callable", target.Kind())
	}
}

func (exec *Execution) callMethodOn(receiver Value, name string, args []Value, line int) (Value, error) {
	switch receiver.Kind() {
	case KindInstance:
		inst := receiver.Instance()
		decl, ok := inst.Method(name)
		if !ok {
			return NewNull(), exec.wrap(&MethodNotFoundError{Class: inst.Class.Name, Method: name}, line)
		}
		return exec.callFunction(decl, receiver, args, line)
	case KindHost:
		hv := receiver.Host()
		val, ok := hv.Property(name)
		if !ok {
			return NewNull(), exec.wrap(&MethodNotFoundError{Class: hv.TypeName(), Method: name}, line)
		}
		if builtin := val.Builtin(); builtin != nil {
			return exec.callBuiltin(builtin, args, line)
		}
		return NewNull(), exec.errorAt(line, "property '%s' of %s is not callable", name, hv.TypeName())
	default:
		return NewNull(), exec.errorAt(line, "cannot call method '%s' on %s", name, receiver.Kind())
	}
}

func (exec *Execution) callBuiltin(builtin *Builtin, args []Value, line int) (Value, error) {
	result, err := builtin.Fn(args)
	if err != nil {
		return NewNull(), exec.wrap(err, line)
	}
	return result, nil
}

// callFunction runs a script function in a fresh scope parented to the
// global scope; call-site locals are never visible inside the callee.
// Missing arguments bind to Null and extras are dropped.
func (exec *Execution) callFunction(fn *FunctionDecl, receiver Value, args []Value, line int) (Value, error) {
	if len(exec.callStack) >= exec.recursionCap {
		return NewNull(), exec.wrap(fmt.Errorf("%w (%d)", errCallDepthExceeded, exec.recursionCap), line)
	}

	callEnv := newEnv(exec.interp.global)
	if !receiver.IsNull() {
		callEnv.Define("self", receiver)
	}
	for i, param := range fn.Params {
		if i < len(args) {
			callEnv.Define(param, args[i])
		} else {
			callEnv.Define(param, NewNull())
		}
	}

	frameName := fn.Name
	if inst := receiver.Instance(); inst != nil {
		frameName = inst.Class.Name + "." + fn.Name
	}
	exec.callStack = append(exec.callStack, callFrame{Function: frameName, Line: line})
	val, _, err := exec.evalStatements(fn.Body, callEnv)
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
	if err != nil {
		return NewNull(), err
	}
	return val, nil
}

// instantiate builds an instance of cls. Field defaults evaluate in a
// fields-only scope in declaration order, so a default may reference
// earlier fields but nothing else. init then runs with the arguments;
// without an init, a single argument lands in the field named "name",
// which old scripts rely on.
func (exec *Execution) instantiate(cls *ClassDecl, args []Value, line int) (Value, error) {
	fieldEnv := newEnv(nil)
	inst := &Instance{Class: cls, Fields: make(map[string]Value, len(cls.Fields))}
	for _, field := range cls.Fields {
		val, err := exec.evalExpression(field.Default, fieldEnv)
		if err != nil {
			return NewNull(), err
		}
		fieldEnv.Define(field.Name, val)
		inst.Fields[field.Name] = val
	}

	instVal := NewInstance(inst)
	if initFn, ok := cls.Methods["init"]; ok {
		if _, err := exec.callFunction(initFn, instVal, args, line); err != nil {
			return NewNull(), err
		}
	} else if len(args) > 0 {
		inst.Fields["name"] = args[0]
	}
	return instVal, nil
}
