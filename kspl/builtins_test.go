package kspl

import (
	"errors"
	"strings"
	"testing"
)

func TestLenBuiltin(t *testing.T) {
	interp, _ := runScript(t, `let ascii = len("hello")
let runes = len("héllo")
let empty = len("")`)
	if got := globalInt(t, interp, "ascii"); got != 5 {
		t.Fatalf("ascii = %d, want 5", got)
	}
	if got := globalInt(t, interp, "runes"); got != 5 {
		t.Fatalf("runes = %d, want 5", got)
	}
	if got := globalInt(t, interp, "empty"); got != 0 {
		t.Fatalf("empty = %d, want 0", got)
	}
}

func TestStrBuiltin(t *testing.T) {
	interp, _ := runScript(t, `let i = str(42)
let f = str(1.5)
let b = str(true)
let n = str(null)
let s = str("x")`)
	want := map[string]string{"i": "42", "f": "1.5", "b": "true", "n": "null", "s": "x"}
	for name, expect := range want {
		if got := globalText(t, interp, name); got != expect {
			t.Fatalf("%s = %q, want %q", name, got, expect)
		}
	}
}

func TestIntBuiltin(t *testing.T) {
	interp, _ := runScript(t, `let parsed = int("12")
let padded = int(" 7 ")
let truncated = int(3.9)
let yes = int(true)
let no = int(false)
let same = int(5)`)
	want := map[string]int64{"parsed": 12, "padded": 7, "truncated": 3, "yes": 1, "no": 0, "same": 5}
	for name, expect := range want {
		if got := globalInt(t, interp, name); got != expect {
			t.Fatalf("%s = %d, want %d", name, got, expect)
		}
	}
}

func TestFloatBuiltin(t *testing.T) {
	interp, _ := runScript(t, `let widened = float(2)
let parsed = float("2.5")
let yes = float(true)`)
	if got := globalFloat(t, interp, "widened"); got != 2 {
		t.Fatalf("widened = %g, want 2", got)
	}
	if got := globalFloat(t, interp, "parsed"); got != 2.5 {
		t.Fatalf("parsed = %g, want 2.5", got)
	}
	if got := globalFloat(t, interp, "yes"); got != 1 {
		t.Fatalf("yes = %g, want 1", got)
	}
}

func TestBoolBuiltin(t *testing.T) {
	interp, _ := runScript(t, `class Thing {
}
let zero = bool(0)
let one = bool(1)
let zerof = bool(0.0)
let blank = bool("")
let text = bool("x")
let none = bool(null)
let same = bool(true)
let thing = bool(Thing())`)
	wantTrue := []string{"one", "text", "same", "thing"}
	wantFalse := []string{"zero", "zerof", "blank", "none"}
	for _, name := range wantTrue {
		if !globalBool(t, interp, name) {
			t.Fatalf("%s = false, want true", name)
		}
	}
	for _, name := range wantFalse {
		if globalBool(t, interp, name) {
			t.Fatalf("%s = true, want false", name)
		}
	}
}

func TestBuiltinArgumentErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"len_no_args", "len()", "len expects one argument"},
		{"len_two_args", `len("a", "b")`, "len expects one argument"},
		{"len_non_string", "len(5)", "len expects a string, got int"},
		{"str_no_args", "str()", "str expects one argument"},
		{"int_bad_string", `int("abc")`, "cannot convert 'abc' to int"},
		{"int_null", "int(null)", "cannot convert null to int"},
		{"float_bad_string", `float("x")`, "cannot convert 'x' to float"},
		{"bool_no_args", "bool()", "bool expects one argument"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := runScriptErr(t, tc.source)
			var typeErr *TypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("expected *TypeError, got %T: %v", err, err)
			}
			if !strings.Contains(typeErr.Message, tc.wantMsg) {
				t.Fatalf("message %q does not contain %q", typeErr.Message, tc.wantMsg)
			}
		})
	}
}
