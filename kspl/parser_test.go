package kspl

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t testing.TB, source string) *Program {
	t.Helper()
	prog, err := Parse(Scan(source))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return prog
}

func TestParseProgramStructure(t *testing.T) {
	prog := mustParse(t, `class Point {
  field x = 1
  field y = 2
  fn sum() {
    return self.x + self.y
  }
}
fn helper(n) {
  return n
}
let p = Point()
p.x = 5`)

	cls, ok := prog.Classes["Point"]
	if !ok {
		t.Fatal("class Point missing")
	}
	if cls.Pos() != 1 {
		t.Fatalf("class position = %d, want 1", cls.Pos())
	}
	if len(cls.Fields) != 2 || cls.Fields[0].Name != "x" || cls.Fields[1].Name != "y" {
		t.Fatalf("unexpected fields: %#v", cls.Fields)
	}
	if _, ok := cls.Methods["sum"]; !ok {
		t.Fatal("method sum missing")
	}

	fn, ok := prog.Functions["helper"]
	if !ok {
		t.Fatal("function helper missing")
	}
	if fn.Pos() != 8 {
		t.Fatalf("function position = %d, want 8", fn.Pos())
	}
	if len(fn.Params) != 1 || fn.Params[0] != "n" {
		t.Fatalf("unexpected params: %v", fn.Params)
	}

	if len(prog.TopLevel) != 2 {
		t.Fatalf("top level count = %d, want 2", len(prog.TopLevel))
	}
	let, ok := prog.TopLevel[0].(*LetStmt)
	if !ok || let.Name != "p" || let.Pos() != 11 {
		t.Fatalf("unexpected first statement: %#v", prog.TopLevel[0])
	}
	assign, ok := prog.TopLevel[1].(*AssignStmt)
	if !ok || assign.Pos() != 12 {
		t.Fatalf("unexpected second statement: %#v", prog.TopLevel[1])
	}
	if len(assign.Path) != 2 || assign.Path[0] != "p" || assign.Path[1] != "x" {
		t.Fatalf("unexpected assign path: %v", assign.Path)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, `fn pick(flag) {
  if flag {
    return 1
  } else {
    return 2
  }
}`)

	fn := prog.Functions["pick"]
	if fn == nil || len(fn.Body) != 1 {
		t.Fatalf("unexpected function body: %#v", fn)
	}
	ifStmt, ok := fn.Body[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected *IfStmt, got %#v", fn.Body[0])
	}
	cond, ok := ifStmt.Condition.(*Identifier)
	if !ok || cond.Name != "flag" {
		t.Fatalf("unexpected condition: %#v", ifStmt.Condition)
	}
	if len(ifStmt.Consequent) != 1 || len(ifStmt.Alternate) != 1 {
		t.Fatalf("branch sizes = %d/%d, want 1/1", len(ifStmt.Consequent), len(ifStmt.Alternate))
	}
}

func TestParseNestedIf(t *testing.T) {
	prog := mustParse(t, `fn grade(n) {
  if n > 10 {
    if n > 100 {
      return "huge"
    }
    return "big"
  }
  return "small"
}`)

	fn := prog.Functions["grade"]
	if len(fn.Body) != 2 {
		t.Fatalf("body length = %d, want 2", len(fn.Body))
	}
	outer, ok := fn.Body[0].(*IfStmt)
	if !ok {
		t.Fatalf("expected *IfStmt, got %#v", fn.Body[0])
	}
	if len(outer.Consequent) != 2 || outer.Alternate != nil {
		t.Fatalf("unexpected outer branches: %#v", outer)
	}
	if _, ok := outer.Consequent[0].(*IfStmt); !ok {
		t.Fatalf("expected nested *IfStmt, got %#v", outer.Consequent[0])
	}
	if _, ok := fn.Body[1].(*ReturnStmt); !ok {
		t.Fatalf("expected trailing *ReturnStmt, got %#v", fn.Body[1])
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog := mustParse(t, "let x = 1 + 2 * 3")
	let := prog.TopLevel[0].(*LetStmt)
	sum, ok := let.Value.(*InfixExpr)
	if !ok || sum.Operator != "+" {
		t.Fatalf("expected + at the top, got %#v", let.Value)
	}
	if _, ok := sum.Left.(*IntegerLiteral); !ok {
		t.Fatalf("unexpected left operand: %#v", sum.Left)
	}
	product, ok := sum.Right.(*InfixExpr)
	if !ok || product.Operator != "*" {
		t.Fatalf("expected * on the right, got %#v", sum.Right)
	}

	prog = mustParse(t, "let y = (1 + 2) * 3")
	let = prog.TopLevel[0].(*LetStmt)
	product, ok = let.Value.(*InfixExpr)
	if !ok || product.Operator != "*" {
		t.Fatalf("expected * at the top, got %#v", let.Value)
	}
	if inner, ok := product.Left.(*InfixExpr); !ok || inner.Operator != "+" {
		t.Fatalf("grouping lost: %#v", product.Left)
	}

	prog = mustParse(t, "let z = a < b && c == d")
	let = prog.TopLevel[0].(*LetStmt)
	and, ok := let.Value.(*InfixExpr)
	if !ok || and.Operator != "&&" {
		t.Fatalf("expected && at the top, got %#v", let.Value)
	}
	if lt, ok := and.Left.(*InfixExpr); !ok || lt.Operator != "<" {
		t.Fatalf("unexpected left operand: %#v", and.Left)
	}
	if eq, ok := and.Right.(*InfixExpr); !ok || eq.Operator != "==" {
		t.Fatalf("unexpected right operand: %#v", and.Right)
	}

	prog = mustParse(t, "let n = -2 + 3")
	let = prog.TopLevel[0].(*LetStmt)
	sum, ok = let.Value.(*InfixExpr)
	if !ok || sum.Operator != "+" {
		t.Fatalf("expected + at the top, got %#v", let.Value)
	}
	if neg, ok := sum.Left.(*PrefixExpr); !ok || neg.Operator != "-" {
		t.Fatalf("prefix minus must bind tighter than +: %#v", sum.Left)
	}
}

func TestParseCallArguments(t *testing.T) {
	prog := mustParse(t, `let r = f(g(1, 2), "a,b", 3)`)
	let := prog.TopLevel[0].(*LetStmt)
	call, ok := let.Value.(*CallExpr)
	if !ok {
		t.Fatalf("expected *CallExpr, got %#v", let.Value)
	}
	if callee, ok := call.Callee.(*Identifier); !ok || callee.Name != "f" {
		t.Fatalf("unexpected callee: %#v", call.Callee)
	}
	if len(call.Args) != 3 {
		t.Fatalf("argument count = %d, want 3", len(call.Args))
	}
	inner, ok := call.Args[0].(*CallExpr)
	if !ok || len(inner.Args) != 2 {
		t.Fatalf("nested call mangled: %#v", call.Args[0])
	}
	str, ok := call.Args[1].(*StringLiteral)
	if !ok || str.Value != "a,b" {
		t.Fatalf("comma inside string split an argument: %#v", call.Args[1])
	}
	if _, ok := call.Args[2].(*IntegerLiteral); !ok {
		t.Fatalf("unexpected third argument: %#v", call.Args[2])
	}
}

func TestParseMemberChainsAndMethodCalls(t *testing.T) {
	prog := mustParse(t, "let v = a.b.c")
	let := prog.TopLevel[0].(*LetStmt)
	outer, ok := let.Value.(*MemberExpr)
	if !ok || outer.Property != "c" {
		t.Fatalf("expected member access, got %#v", let.Value)
	}
	inner, ok := outer.Object.(*MemberExpr)
	if !ok || inner.Property != "b" {
		t.Fatalf("unexpected chain: %#v", outer.Object)
	}
	if base, ok := inner.Object.(*Identifier); !ok || base.Name != "a" {
		t.Fatalf("unexpected chain base: %#v", inner.Object)
	}

	prog = mustParse(t, "obj.method(1)")
	stmt := prog.TopLevel[0].(*ExprStmt)
	call, ok := stmt.Expr.(*CallExpr)
	if !ok {
		t.Fatalf("expected *CallExpr, got %#v", stmt.Expr)
	}
	member, ok := call.Callee.(*MemberExpr)
	if !ok || member.Property != "method" {
		t.Fatalf("unexpected callee: %#v", call.Callee)
	}
}

func TestParseLiterals(t *testing.T) {
	prog := mustParse(t, "let t = true\nlet u = null\nlet f = 1.5\nlet i = 10")
	if _, ok := prog.TopLevel[0].(*LetStmt).Value.(*BoolLiteral); !ok {
		t.Fatalf("expected bool literal")
	}
	if _, ok := prog.TopLevel[1].(*LetStmt).Value.(*NullLiteral); !ok {
		t.Fatalf("expected null literal")
	}
	if lit, ok := prog.TopLevel[2].(*LetStmt).Value.(*FloatLiteral); !ok || lit.Value != 1.5 {
		t.Fatalf("expected float literal 1.5")
	}
	if lit, ok := prog.TopLevel[3].(*LetStmt).Value.(*IntegerLiteral); !ok || lit.Value != 10 {
		t.Fatalf("expected integer literal 10")
	}
}

func TestParseStringLiterals(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"double_quoted", `let s = "hello"`, "hello"},
		{"single_quoted", "let s = 'hi'", "hi"},
		{"newline_escape", `let s = "a\nb"`, "a\nb"},
		{"tab_escape", `let s = "a\tb"`, "a\tb"},
		{"escaped_quote", `let s = "say \"hi\""`, `say "hi"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog := mustParse(t, tc.source)
			let := prog.TopLevel[0].(*LetStmt)
			lit, ok := let.Value.(*StringLiteral)
			if !ok {
				t.Fatalf("expected string literal, got %#v", let.Value)
			}
			if lit.Value != tc.want {
				t.Fatalf("literal = %q, want %q", lit.Value, tc.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		wantMsg string
	}{
		{"return_at_top_level", "return 1", "return outside function"},
		{"field_at_top_level", "field x = 1", "field declaration outside class"},
		{"unmatched_close", "}", "unmatched }"},
		{"unclosed_class", "class A {", "class 'A' not closed"},
		{"unclosed_block", "fn f() {\nlet x = 1", "block not closed"},
		{"duplicate_class", "class A {\n}\nclass A {\n}", "duplicate class 'A'"},
		{"duplicate_function", "fn f() {\n}\nfn f() {\n}", "duplicate function 'f'"},
		{"duplicate_field", "class A {\nfield x = 1\nfield x = 2\n}", "duplicate field 'x' in class 'A'"},
		{"duplicate_method", "class A {\nfn m() {\n}\nfn m() {\n}\n}", "duplicate method 'm' in class 'A'"},
		{"class_inside_function", "fn f() {\nclass B {\n}\n}", "class declaration inside block"},
		{"nested_function", "fn f() {\nfn g() {\n}\n}", "nested function declaration"},
		{"field_inside_function", "fn f() {\nfield x = 1\n}", "field declaration outside class"},
		{"let_in_class_body", "class A {\nlet x = 1\n}", "LET not allowed in class body"},
		{"invalid_parameter", "fn f(1x) {\n}", "invalid parameter '1x'"},
		{"invalid_assign_target", "a.1 = 2", "invalid assignment target 'a.1'"},
		{"empty_assignment", "x =", "missing expression"},
		{"unterminated_string", `let s = "abc`, "unterminated string"},
		{"unclosed_paren", "let x = (1 + 2", "expected ')'"},
		{"bad_character", "let x = 1 @ 2", "unexpected character '@'"},
		{"trailing_junk", "let x = 1 2", "unexpected '2'"},
		{"missing_property", "let x = a.", "expected property name after '.'"},
		{"detached_else", "if true {\n}\nelse {\n}", "unexpected character '{'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(Scan(tc.source))
			if err == nil {
				t.Fatal("expected parse error")
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if !strings.Contains(synErr.Message, tc.wantMsg) {
				t.Fatalf("message %q does not contain %q", synErr.Message, tc.wantMsg)
			}
		})
	}
}

func TestSyntaxErrorReportsLine(t *testing.T) {
	_, err := Parse(Scan("let a = 1\nx ="))
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if synErr.Line != 2 {
		t.Fatalf("line = %d, want 2", synErr.Line)
	}
	if got := synErr.Error(); got != "syntax error at line 2: missing expression" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestParseBareAndValuedReturns(t *testing.T) {
	prog := mustParse(t, "fn f() {\nreturn\n}\nfn g() {\nreturn 1\n}")
	bare := prog.Functions["f"].Body[0].(*ReturnStmt)
	if bare.Value != nil {
		t.Fatalf("bare return carries a value: %#v", bare.Value)
	}
	valued := prog.Functions["g"].Body[0].(*ReturnStmt)
	if _, ok := valued.Value.(*IntegerLiteral); !ok {
		t.Fatalf("expected integer return value, got %#v", valued.Value)
	}
}
