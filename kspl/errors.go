package kspl

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxError reports a malformed construct or expression found while
// parsing. Nothing executes when parsing fails.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
}

// NameError reports an identifier that no scope binds.
type NameError struct {
	Name string
	Line int
}

func (e *NameError) Error() string {
	return fmt.Sprintf("variable '%s' not found", e.Name)
}

// MethodNotFoundError reports a method call the receiver's class (or
// host type) does not define.
type MethodNotFoundError struct {
	Class  string
	Method string
	Line   int
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("method '%s' not found in class '%s'", e.Method, e.Class)
}

// PropertyNotFoundError reports a property access that did not resolve.
type PropertyNotFoundError struct {
	Property string
	Line     int
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property '%s' not found", e.Property)
}

// CallTargetError reports a bare-name call that matched no class
// constructor, registered builtin, or global callable.
type CallTargetError struct {
	Name string
	Line int
}

func (e *CallTargetError) Error() string {
	return fmt.Sprintf("function '%s' not found", e.Name)
}

// TypeError reports an operation applied to operands it is not defined
// for.
type TypeError struct {
	Message string
	Line    int
}

func (e *TypeError) Error() string {
	return e.Message
}

var (
	errStepQuotaExceeded = errors.New("step quota exceeded")
	errCallDepthExceeded = errors.New("max call depth exceeded")
)

type StackFrame struct {
	Function string
	Line     int
}

const (
	scriptErrorFrameHead = 8
	scriptErrorFrameTail = 8
)

// ScriptError is what Run and CallMethod return when evaluation fails.
// It carries the underlying typed error plus the script call stack at
// the point of failure; errors.As reaches the wrapped error.
type ScriptError struct {
	Err    error
	Frames []StackFrame
}

func (e *ScriptError) Unwrap() error { return e.Err }

func (e *ScriptError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	renderStackFrames(&b, e.Frames)
	return b.String()
}

func renderStackFrames(b *strings.Builder, frames []StackFrame) {
	renderFrame := func(frame StackFrame) {
		if frame.Line > 0 {
			fmt.Fprintf(b, "\n  at %s (line %d)", frame.Function, frame.Line)
		} else {
			fmt.Fprintf(b, "\n  at %s", frame.Function)
		}
	}

	if len(frames) <= scriptErrorFrameHead+scriptErrorFrameTail {
		for _, frame := range frames {
			renderFrame(frame)
		}
		return
	}

	for _, frame := range frames[:scriptErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(frames) - (scriptErrorFrameHead + scriptErrorFrameTail)
	fmt.Fprintf(b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range frames[len(frames)-scriptErrorFrameTail:] {
		renderFrame(frame)
	}
}

// errorLine extracts the script line an error points at, or 0.
func errorLine(err error) int {
	var (
		syntaxErr   *SyntaxError
		nameErr     *NameError
		methodErr   *MethodNotFoundError
		propertyErr *PropertyNotFoundError
		callErr     *CallTargetError
		typeErr     *TypeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return syntaxErr.Line
	case errors.As(err, &nameErr):
		return nameErr.Line
	case errors.As(err, &methodErr):
		return methodErr.Line
	case errors.As(err, &propertyErr):
		return propertyErr.Line
	case errors.As(err, &callErr):
		return callErr.Line
	case errors.As(err, &typeErr):
		return typeErr.Line
	}
	return 0
}
