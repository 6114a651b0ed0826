package kspl

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestStepQuotaExceeded(t *testing.T) {
	interp := New(Config{Output: io.Discard, StepQuota: 40, RecursionLimit: 1000})
	err := interp.Run(context.Background(), `fn loop() {
  return loop()
}
loop()`)
	if err == nil {
		t.Fatal("expected step quota error")
	}
	if !strings.Contains(err.Error(), "step quota exceeded (40)") {
		t.Fatalf("unexpected error: %v", err)
	}
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("expected *ScriptError, got %T", err)
	}
}

func TestStepQuotaAllowsShortScripts(t *testing.T) {
	interp := New(Config{Output: io.Discard, StepQuota: 200})
	err := interp.Run(context.Background(), `let a = 1
let b = a + 1
let c = b * 2`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got, _ := interp.Global("c"); got.Int() != 4 {
		t.Fatalf("c = %v, want 4", got)
	}
}

func TestRecursionLimitExceeded(t *testing.T) {
	interp := New(Config{Output: io.Discard, RecursionLimit: 8})
	err := interp.Run(context.Background(), `fn loop() {
  return loop()
}
loop()`)
	if err == nil {
		t.Fatal("expected recursion error")
	}
	if !strings.Contains(err.Error(), "max call depth exceeded (8)") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecursionWithinLimit(t *testing.T) {
	interp := New(Config{Output: io.Discard, RecursionLimit: 32})
	err := interp.Run(context.Background(), `fn count(n) {
  if n == 0 {
    return 0
  }
  return count(n - 1) + 1
}
let r = count(10)`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := globalInt(t, interp, "r"); got != 10 {
		t.Fatalf("r = %d, want 10", got)
	}
}

func TestContextCancellationStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	interp := New(Config{Output: io.Discard})
	err := interp.Run(ctx, "let a = 1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, ok := interp.Global("a"); ok {
		t.Fatal("cancelled run must not execute statements")
	}
}

func TestContextCancelledMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	interp := New(Config{Output: io.Discard})
	interp.RegisterFunc("trip", func(args []Value) (Value, error) {
		cancel()
		return NewNull(), nil
	})
	err := interp.Run(ctx, "let before = 1\ntrip()\nlet after = 2")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, ok := interp.Global("before"); !ok {
		t.Fatal("statement before cancellation must have run")
	}
	if _, ok := interp.Global("after"); ok {
		t.Fatal("statement after cancellation must not run")
	}
}
