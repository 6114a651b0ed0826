package kspl

type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindFunction
	KindBuiltin
	KindClass
	KindInstance
	KindHost
)

// Value is the single runtime representation for everything a script
// can touch. The zero Value is Null.
type Value struct {
	kind ValueKind
	data any
}

// HostFunc is the signature of a host-registered function. Arguments
// arrive fully evaluated, left to right; returning an error aborts the
// running script.
type HostFunc func(args []Value) (Value, error)

// Builtin pairs a HostFunc with the name it was registered under.
type Builtin struct {
	Name string
	Fn   HostFunc
}

// HostValue is the one capability interface host objects implement to
// become scriptable. Property returns false for unknown names, and
// SetProperty returns false when the property does not exist or cannot
// be written. Methods are exposed as Builtin-valued properties.
type HostValue interface {
	TypeName() string
	Property(name string) (Value, bool)
	SetProperty(name string, val Value) bool
}
