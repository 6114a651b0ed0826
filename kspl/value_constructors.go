package kspl

func NewNull() Value           { return Value{kind: KindNull} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }

func NewBuiltin(name string, fn HostFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, Fn: fn}}
}

func NewHost(hv HostValue) Value {
	if hv == nil {
		return NewNull()
	}
	return Value{kind: KindHost, data: hv}
}

func NewFunction(decl *FunctionDecl) Value {
	return Value{kind: KindFunction, data: decl}
}

func NewClass(decl *ClassDecl) Value {
	return Value{kind: KindClass, data: decl}
}

func NewInstance(inst *Instance) Value {
	return Value{kind: KindInstance, data: inst}
}
