package kspl

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
)

// Config controls the interpreter's display sink and execution bounds.
// The zero value is usable: print writes to stdout and the default
// quotas apply.
type Config struct {
	// Output receives one line per print call. Defaults to os.Stdout.
	Output io.Writer
	// Display, when set, overrides Output and receives each print
	// message without a trailing newline.
	Display func(string)
	// StepQuota bounds evaluation steps per Run or CallMethod.
	StepQuota int
	// RecursionLimit bounds script call depth.
	RecursionLimit int
}

// Interp owns the global scope, the loaded class table, and the host
// registry. One Interp runs scripts sequentially and keeps globals
// between runs; create one per concurrent session.
type Interp struct {
	config   Config
	display  func(string)
	registry map[string]Value
	classes  map[string]*ClassDecl
	global   *Env
}

// New constructs an interpreter with defaults applied and the core
// builtins (print, len, str, int, float, bool) registered.
func New(cfg Config) *Interp {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.StepQuota <= 0 {
		cfg.StepQuota = 50000
	}
	if cfg.RecursionLimit <= 0 {
		cfg.RecursionLimit = 64
	}

	interp := &Interp{
		config:   cfg,
		registry: make(map[string]Value),
		classes:  make(map[string]*ClassDecl),
		global:   newEnv(nil),
	}
	if cfg.Display != nil {
		interp.display = cfg.Display
	} else {
		interp.display = interp.writeOutput
	}
	registerCoreBuiltins(interp)
	return interp
}

func (interp *Interp) writeOutput(msg string) {
	fmt.Fprintln(interp.config.Output, msg)
}

// Register binds a host value under name. Registered names live in the
// registry and in the global scope; scripts can shadow the global
// binding but the registry keeps serving bare-name call resolution.
func (interp *Interp) Register(name string, val Value) {
	interp.registry[name] = val
	interp.global.Define(name, val)
}

// RegisterFunc registers fn as a callable builtin named name.
func (interp *Interp) RegisterFunc(name string, fn HostFunc) {
	interp.Register(name, NewBuiltin(name, fn))
}

// SetDisplay reroutes print output. A nil fn restores the configured
// Output writer.
func (interp *Interp) SetDisplay(fn func(string)) {
	if fn == nil {
		interp.display = interp.writeOutput
		return
	}
	interp.display = fn
}

// Compile scans and parses source without executing anything.
func (interp *Interp) Compile(source string) (*Program, error) {
	return Parse(Scan(source))
}

// Run compiles and executes source. Classes load first and become
// global constructors; top-level statements then execute in source
// order, with free functions registered as their declarations are
// reached. A failed statement aborts the run immediately and earlier
// effects persist.
func (interp *Interp) Run(ctx context.Context, source string) error {
	prog, err := interp.Compile(source)
	if err != nil {
		return err
	}
	return interp.runProgram(ctx, prog)
}

func (interp *Interp) runProgram(ctx context.Context, prog *Program) error {
	for name, cls := range prog.Classes {
		interp.classes[name] = cls
		interp.global.Define(name, NewClass(cls))
	}

	fns := make([]*FunctionDecl, 0, len(prog.Functions))
	for _, fn := range prog.Functions {
		fns = append(fns, fn)
	}
	sort.Slice(fns, func(i, j int) bool { return fns[i].Pos() < fns[j].Pos() })

	exec := newExecution(interp, ctx)
	next := 0
	for _, stmt := range prog.TopLevel {
		for next < len(fns) && fns[next].Pos() < stmt.Pos() {
			interp.global.Define(fns[next].Name, NewFunction(fns[next]))
			next++
		}
		if _, _, err := exec.evalStatement(stmt, interp.global); err != nil {
			return err
		}
	}
	for ; next < len(fns); next++ {
		interp.global.Define(fns[next].Name, NewFunction(fns[next]))
	}
	return nil
}

// CallMethod invokes a method on an instance produced by an earlier
// run. The receiver must be an Instance value.
func (interp *Interp) CallMethod(ctx context.Context, receiver Value, method string, args []Value) (Value, error) {
	inst := receiver.Instance()
	if inst == nil {
		return NewNull(), &TypeError{Message: fmt.Sprintf("cannot call method on %s", receiver.Kind())}
	}
	decl, ok := inst.Method(method)
	if !ok {
		return NewNull(), &MethodNotFoundError{Class: inst.Class.Name, Method: method}
	}
	exec := newExecution(interp, ctx)
	return exec.callFunction(decl, receiver, args, decl.Pos())
}

// Global returns the current global binding for name.
func (interp *Interp) Global(name string) (Value, bool) {
	return interp.global.Get(name)
}

// Globals returns a copy of the global scope's bindings.
func (interp *Interp) Globals() map[string]Value {
	return interp.global.Snapshot()
}

// Class returns the loaded class declaration for name.
func (interp *Interp) Class(name string) (*ClassDecl, bool) {
	cls, ok := interp.classes[name]
	return cls, ok
}
