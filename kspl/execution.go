package kspl

import (
	"context"
	"fmt"
)

type callFrame struct {
	Function string
	Line     int
}

// Execution tracks one Run or CallMethod: the step budget, the script
// call stack, and the context checked at step boundaries.
type Execution struct {
	interp       *Interp
	ctx          context.Context
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
}

func newExecution(interp *Interp, ctx context.Context) *Execution {
	return &Execution{
		interp:       interp,
		ctx:          ctx,
		quota:        interp.config.StepQuota,
		recursionCap: interp.config.RecursionLimit,
	}
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", errStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

// wrap attaches the script call stack to err at the line evaluation
// failed. Errors already carrying frames pass through unchanged, so
// the stack snapshot is taken exactly once, at the raise site.
func (exec *Execution) wrap(err error, line int) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*ScriptError); ok {
		return err
	}
	setErrorLine(err, line)
	return &ScriptError{Err: err, Frames: exec.stackFrames(line)}
}

func (exec *Execution) errorAt(line int, format string, args ...any) error {
	return exec.wrap(&TypeError{Message: fmt.Sprintf(format, args...), Line: line}, line)
}

func (exec *Execution) stackFrames(line int) []StackFrame {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) == 0 {
		return append(frames, StackFrame{Function: "<script>", Line: line})
	}
	current := exec.callStack[len(exec.callStack)-1]
	frames = append(frames, StackFrame{Function: current.Function, Line: line})
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		cf := exec.callStack[i]
		frames = append(frames, StackFrame{Function: cf.Function, Line: cf.Line})
	}
	return frames
}

func setErrorLine(err error, line int) {
	switch e := err.(type) {
	case *NameError:
		if e.Line == 0 {
			e.Line = line
		}
	case *MethodNotFoundError:
		if e.Line == 0 {
			e.Line = line
		}
	case *PropertyNotFoundError:
		if e.Line == 0 {
			e.Line = line
		}
	case *CallTargetError:
		if e.Line == 0 {
			e.Line = line
		}
	case *TypeError:
		if e.Line == 0 {
			e.Line = line
		}
	}
}

// evalStatements runs stmts in env and reports whether a return
// unwound the block. The value is the last statement's result, which
// is what a function body without an explicit return yields.
func (exec *Execution) evalStatements(stmts []Statement, env *Env) (Value, bool, error) {
	result := NewNull()
	for _, stmt := range stmts {
		val, returned, err := exec.evalStatement(stmt, env)
		if err != nil {
			return NewNull(), false, err
		}
		if returned {
			return val, true, nil
		}
		result = val
	}
	return result, false, nil
}

func (exec *Execution) evalStatement(stmt Statement, env *Env) (Value, bool, error) {
	if err := exec.step(); err != nil {
		return NewNull(), false, exec.wrap(err, stmt.Pos())
	}
	switch s := stmt.(type) {
	case *LetStmt:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNull(), false, err
		}
		env.Define(s.Name, val)
		return val, false, nil
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNull(), false, err
		}
		if err := exec.assign(s.Path, val, env, s.Pos()); err != nil {
			return NewNull(), false, err
		}
		return val, false, nil
	case *ReturnStmt:
		if s.Value == nil {
			return NewNull(), true, nil
		}
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNull(), false, err
		}
		return val, true, nil
	case *IfStmt:
		return exec.evalIf(s, env)
	case *ExprStmt:
		val, err := exec.evalExpression(s.Expr, env)
		if err != nil {
			return NewNull(), false, err
		}
		return val, false, nil
	default:
		return NewNull(), false, exec.errorAt(stmt.Pos(), "unsupported statement")
	}
}

// evalIf branches on a Bool condition. Branches run in the enclosing
// scope, so a let inside a branch stays visible after it.
func (exec *Execution) evalIf(s *IfStmt, env *Env) (Value, bool, error) {
	cond, err := exec.evalExpression(s.Condition, env)
	if err != nil {
		return NewNull(), false, err
	}
	if cond.Kind() != KindBool {
		return NewNull(), false, exec.errorAt(s.Pos(), "if condition must be bool, got %s", cond.Kind())
	}
	if cond.Bool() {
		return exec.evalStatements(s.Consequent, env)
	}
	if s.Alternate != nil {
		return exec.evalStatements(s.Alternate, env)
	}
	return NewNull(), false, nil
}

// assign writes val to a plain or dotted target. Intermediate path
// steps resolve like property reads; the final step writes an instance
// field or a writable host property.
func (exec *Execution) assign(path []string, val Value, env *Env, line int) error {
	if len(path) == 1 {
		env.Assign(path[0], val)
		return nil
	}
	target, ok := env.Get(path[0])
	if !ok {
		return exec.wrap(&NameError{Name: path[0]}, line)
	}
	for _, prop := range path[1 : len(path)-1] {
		next, err := exec.getProperty(target, prop, line)
		if err != nil {
			return err
		}
		target = next
	}
	return exec.setProperty(target, path[len(path)-1], val, line)
}
