package kspl

import (
	"bytes"
	"context"
	"io"
	"testing"
)

// runScript executes source on a fresh interpreter and fails the test
// on any error. print output accumulates in the returned buffer.
func runScript(t testing.TB, source string) (*Interp, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	interp := New(Config{Output: &buf})
	if err := interp.Run(context.Background(), source); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return interp, &buf
}

// runScriptErr executes source expecting it to fail and returns the
// error.
func runScriptErr(t testing.TB, source string) error {
	t.Helper()
	interp := New(Config{Output: io.Discard})
	err := interp.Run(context.Background(), source)
	if err == nil {
		t.Fatal("expected script to fail")
	}
	return err
}

func globalValue(t testing.TB, interp *Interp, name string) Value {
	t.Helper()
	val, ok := interp.Global(name)
	if !ok {
		t.Fatalf("global '%s' not defined", name)
	}
	return val
}

func globalInt(t testing.TB, interp *Interp, name string) int64 {
	t.Helper()
	val := globalValue(t, interp, name)
	if val.Kind() != KindInt {
		t.Fatalf("global '%s' is %s, want int", name, val.Kind())
	}
	return val.Int()
}

func globalFloat(t testing.TB, interp *Interp, name string) float64 {
	t.Helper()
	val := globalValue(t, interp, name)
	if val.Kind() != KindFloat {
		t.Fatalf("global '%s' is %s, want float", name, val.Kind())
	}
	return val.Float()
}

func globalBool(t testing.TB, interp *Interp, name string) bool {
	t.Helper()
	val := globalValue(t, interp, name)
	if val.Kind() != KindBool {
		t.Fatalf("global '%s' is %s, want bool", name, val.Kind())
	}
	return val.Bool()
}

func globalText(t testing.TB, interp *Interp, name string) string {
	t.Helper()
	val := globalValue(t, interp, name)
	if val.Kind() != KindString {
		t.Fatalf("global '%s' is %s, want string", name, val.Kind())
	}
	return val.Text()
}
