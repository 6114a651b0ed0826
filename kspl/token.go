package kspl

import "fmt"

// TokenType identifies the construct a scanned line produced.
type TokenType string

const (
	// TokenClass marks a class header line. Text holds the class name.
	TokenClass TokenType = "CLASS"
	// TokenFn marks a function header line. Text holds the function
	// name, Expr the raw parameter list between the parentheses.
	TokenFn TokenType = "FN"
	// TokenField marks a field declaration. Text holds the field name,
	// Expr the default-value expression.
	TokenField TokenType = "FIELD"
	// TokenLet marks a let declaration. Text holds the variable name,
	// Expr the initializer expression.
	TokenLet TokenType = "LET"
	// TokenAssign marks an assignment. Text holds the (possibly dotted)
	// target path, Expr the right-hand side expression.
	TokenAssign TokenType = "ASSIGN"
	// TokenReturn marks a return statement. Expr holds the optional
	// result expression and is empty for a bare return.
	TokenReturn TokenType = "RETURN"
	// TokenIf marks an if header line. Expr holds the condition.
	TokenIf TokenType = "IF"
	// TokenElse marks the else keyword of a "} else {" line.
	TokenElse TokenType = "ELSE"
	// TokenBlockOpen marks an opening brace emitted after a class,
	// function, if, or else header.
	TokenBlockOpen TokenType = "BLOCK_OPEN"
	// TokenBlockClose marks a closing brace line.
	TokenBlockClose TokenType = "BLOCK_CLOSE"
	// TokenStmt marks a generic statement line. Expr holds the whole
	// line for the expression parser.
	TokenStmt TokenType = "STMT"
	// TokenEOF terminates every token stream.
	TokenEOF TokenType = "EOF"
)

// Token is one construct recognized by the scanner. Expression payloads
// are carried verbatim in Expr and parsed later; the scanner never
// rejects input.
type Token struct {
	Type TokenType
	Text string
	Expr string
	Line int
}

func (t Token) String() string {
	switch {
	case t.Text != "" && t.Expr != "":
		return fmt.Sprintf("%s(%s, %q) @%d", t.Type, t.Text, t.Expr, t.Line)
	case t.Text != "":
		return fmt.Sprintf("%s(%s) @%d", t.Type, t.Text, t.Line)
	case t.Expr != "":
		return fmt.Sprintf("%s(%q) @%d", t.Type, t.Expr, t.Line)
	default:
		return fmt.Sprintf("%s @%d", t.Type, t.Line)
	}
}
