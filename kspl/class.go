package kspl

// Instance is one object of a script class. Fields carries the live
// field values; the method table lives on the class declaration and is
// fixed once the program loads.
type Instance struct {
	Class  *ClassDecl
	Fields map[string]Value
}

func (inst *Instance) Method(name string) (*FunctionDecl, bool) {
	m, ok := inst.Class.Methods[name]
	return m, ok
}
