package kspl

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// exprTokenType identifies the lexical category of an expression token.
type exprTokenType string

const (
	exprIllegal exprTokenType = "ILLEGAL"
	exprEOF     exprTokenType = "EOF"

	exprIdent  exprTokenType = "IDENT"
	exprInt    exprTokenType = "INT"
	exprFloat  exprTokenType = "FLOAT"
	exprString exprTokenType = "STRING"
	exprTrue   exprTokenType = "TRUE"
	exprFalse  exprTokenType = "FALSE"
	exprNull   exprTokenType = "NULL"

	exprPlus    exprTokenType = "+"
	exprMinus   exprTokenType = "-"
	exprStar    exprTokenType = "*"
	exprSlash   exprTokenType = "/"
	exprPercent exprTokenType = "%"
	exprBang    exprTokenType = "!"
	exprLT      exprTokenType = "<"
	exprGT      exprTokenType = ">"
	exprLTE     exprTokenType = "<="
	exprGTE     exprTokenType = ">="
	exprEQ      exprTokenType = "=="
	exprNotEQ   exprTokenType = "!="
	exprAnd     exprTokenType = "&&"
	exprOr      exprTokenType = "||"

	exprComma  exprTokenType = ","
	exprDot    exprTokenType = "."
	exprLParen exprTokenType = "("
	exprRParen exprTokenType = ")"
)

type exprToken struct {
	Type    exprTokenType
	Literal string
}

// exprLexer tokenizes the expression text carried by a single construct
// token. Construct scanning already consumed line structure, so the
// input here never spans lines.
type exprLexer struct {
	input  string
	offset int
	ch     rune
}

func newExprLexer(input string) *exprLexer {
	l := &exprLexer{input: input}
	l.readRune()
	return l
}

func (l *exprLexer) readRune() {
	if l.offset >= len(l.input) {
		l.ch = 0
		l.offset = len(l.input) + 1
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.ch = r
	l.offset += w
}

func (l *exprLexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *exprLexer) nextToken() exprToken {
	for l.ch == ' ' || l.ch == '\t' {
		l.readRune()
	}

	switch l.ch {
	case 0:
		return exprToken{Type: exprEOF}
	case '+':
		l.readRune()
		return exprToken{Type: exprPlus, Literal: "+"}
	case '-':
		l.readRune()
		return exprToken{Type: exprMinus, Literal: "-"}
	case '*':
		l.readRune()
		return exprToken{Type: exprStar, Literal: "*"}
	case '/':
		l.readRune()
		return exprToken{Type: exprSlash, Literal: "/"}
	case '%':
		l.readRune()
		return exprToken{Type: exprPercent, Literal: "%"}
	case '(':
		l.readRune()
		return exprToken{Type: exprLParen, Literal: "("}
	case ')':
		l.readRune()
		return exprToken{Type: exprRParen, Literal: ")"}
	case ',':
		l.readRune()
		return exprToken{Type: exprComma, Literal: ","}
	case '.':
		l.readRune()
		return exprToken{Type: exprDot, Literal: "."}
	case '=':
		if l.peekRune() == '=' {
			l.readRune()
			l.readRune()
			return exprToken{Type: exprEQ, Literal: "=="}
		}
		l.readRune()
		return exprToken{Type: exprIllegal, Literal: "="}
	case '!':
		if l.peekRune() == '=' {
			l.readRune()
			l.readRune()
			return exprToken{Type: exprNotEQ, Literal: "!="}
		}
		l.readRune()
		return exprToken{Type: exprBang, Literal: "!"}
	case '<':
		if l.peekRune() == '=' {
			l.readRune()
			l.readRune()
			return exprToken{Type: exprLTE, Literal: "<="}
		}
		l.readRune()
		return exprToken{Type: exprLT, Literal: "<"}
	case '>':
		if l.peekRune() == '=' {
			l.readRune()
			l.readRune()
			return exprToken{Type: exprGTE, Literal: ">="}
		}
		l.readRune()
		return exprToken{Type: exprGT, Literal: ">"}
	case '&':
		if l.peekRune() == '&' {
			l.readRune()
			l.readRune()
			return exprToken{Type: exprAnd, Literal: "&&"}
		}
		l.readRune()
		return exprToken{Type: exprIllegal, Literal: "&"}
	case '|':
		if l.peekRune() == '|' {
			l.readRune()
			l.readRune()
			return exprToken{Type: exprOr, Literal: "||"}
		}
		l.readRune()
		return exprToken{Type: exprIllegal, Literal: "|"}
	case '"', '\'':
		return l.readString(l.ch)
	}

	switch {
	case isIdentStart(l.ch):
		literal := l.readIdentifier()
		return exprToken{Type: lookupExprIdent(literal), Literal: literal}
	case unicode.IsDigit(l.ch):
		return l.readNumber()
	default:
		tok := exprToken{Type: exprIllegal, Literal: string(l.ch)}
		l.readRune()
		return tok
	}
}

func (l *exprLexer) readIdentifier() string {
	var sb strings.Builder
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readRune()
	}
	return sb.String()
}

func (l *exprLexer) readNumber() exprToken {
	var sb strings.Builder
	hasDot := false
	for {
		switch {
		case unicode.IsDigit(l.ch):
			sb.WriteRune(l.ch)
			l.readRune()
		case l.ch == '.' && !hasDot && unicode.IsDigit(l.peekRune()):
			hasDot = true
			sb.WriteRune('.')
			l.readRune()
		default:
			if hasDot {
				return exprToken{Type: exprFloat, Literal: sb.String()}
			}
			return exprToken{Type: exprInt, Literal: sb.String()}
		}
	}
}

// readString consumes a quoted literal. Both double and single quotes
// delimit strings; the closing quote must match the opening one.
func (l *exprLexer) readString(quote rune) exprToken {
	var sb strings.Builder
	for {
		l.readRune()
		switch l.ch {
		case 0:
			return exprToken{Type: exprIllegal, Literal: "unterminated string"}
		case quote:
			l.readRune()
			return exprToken{Type: exprString, Literal: sb.String()}
		case '\\':
			next := l.peekRune()
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 0:
				return exprToken{Type: exprIllegal, Literal: "unterminated string"}
			default:
				sb.WriteRune(next)
			}
			l.readRune()
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func lookupExprIdent(ident string) exprTokenType {
	switch ident {
	case "true":
		return exprTrue
	case "false":
		return exprFalse
	case "null":
		return exprNull
	default:
		return exprIdent
	}
}
