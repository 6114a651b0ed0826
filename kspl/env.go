package kspl

// Env is one scope in the chained environment. Lookups walk toward the
// root; the root scope holds globals and host registrations.
type Env struct {
	parent *Env
	values map[string]Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	if val, ok := e.values[name]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

// Define creates or replaces a binding in this scope, shadowing any
// binding of the same name in enclosing scopes.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Assign updates the nearest scope that already binds name. An unbound
// name falls through to the root, so plain assignment inside a call
// creates a global.
func (e *Env) Assign(name string, val Value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = val
		return true
	}
	if e.parent != nil {
		if e.parent.Assign(name, val) {
			return true
		}
	}
	e.values[name] = val
	return true
}

// Snapshot copies the bindings of this scope only, without parents.
func (e *Env) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}
