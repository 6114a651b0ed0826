package kspl

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

// Text returns the string payload of a String value, or "".
func (v Value) Text() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

func (v Value) Builtin() *Builtin {
	if v.kind != KindBuiltin {
		return nil
	}
	return v.data.(*Builtin)
}

func (v Value) Function() *FunctionDecl {
	if v.kind != KindFunction {
		return nil
	}
	return v.data.(*FunctionDecl)
}

func (v Value) Class() *ClassDecl {
	if v.kind != KindClass {
		return nil
	}
	return v.data.(*ClassDecl)
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

func (v Value) Host() HostValue {
	if v.kind != KindHost {
		return nil
	}
	return v.data.(HostValue)
}
