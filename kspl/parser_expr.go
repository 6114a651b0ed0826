package kspl

import (
	"fmt"
	"strconv"
)

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

const (
	lowestPrec = iota
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precPrefix
	precCall
)

var exprPrecedences = map[exprTokenType]int{
	exprOr:      precOr,
	exprAnd:     precAnd,
	exprEQ:      precEquality,
	exprNotEQ:   precEquality,
	exprLT:      precComparison,
	exprLTE:     precComparison,
	exprGT:      precComparison,
	exprGTE:     precComparison,
	exprPlus:    precSum,
	exprMinus:   precSum,
	exprStar:    precProduct,
	exprSlash:   precProduct,
	exprPercent: precProduct,
	exprLParen:  precCall,
	exprDot:     precCall,
}

// parseExpressionText parses the expression payload of one construct
// token. Every node it produces carries the construct's line.
func parseExpressionText(text string, line int) (Expression, error) {
	p := newExprParser(text, line)
	if p.curToken.Type == exprEOF {
		return nil, &SyntaxError{Line: line, Message: "missing expression"}
	}
	expr := p.parseExpression(lowestPrec)
	if p.err != nil {
		return nil, p.err
	}
	if p.peekToken.Type != exprEOF {
		p.errorUnexpected(p.peekToken)
		return nil, p.err
	}
	return expr, nil
}

type exprParser struct {
	lex  *exprLexer
	line int

	curToken  exprToken
	peekToken exprToken

	err error

	prefixFns map[exprTokenType]prefixParseFn
	infixFns  map[exprTokenType]infixParseFn
}

func newExprParser(text string, line int) *exprParser {
	p := &exprParser{lex: newExprLexer(text), line: line}

	p.prefixFns = make(map[exprTokenType]prefixParseFn)
	p.infixFns = make(map[exprTokenType]infixParseFn)

	p.registerPrefix(exprIdent, p.parseIdentifier)
	p.registerPrefix(exprInt, p.parseIntegerLiteral)
	p.registerPrefix(exprFloat, p.parseFloatLiteral)
	p.registerPrefix(exprString, p.parseStringLiteral)
	p.registerPrefix(exprTrue, p.parseBooleanLiteral)
	p.registerPrefix(exprFalse, p.parseBooleanLiteral)
	p.registerPrefix(exprNull, p.parseNullLiteral)
	p.registerPrefix(exprLParen, p.parseGroupedExpression)
	p.registerPrefix(exprBang, p.parsePrefixExpression)
	p.registerPrefix(exprMinus, p.parsePrefixExpression)

	p.infixFns[exprPlus] = p.parseInfixExpression
	p.infixFns[exprMinus] = p.parseInfixExpression
	p.infixFns[exprStar] = p.parseInfixExpression
	p.infixFns[exprSlash] = p.parseInfixExpression
	p.infixFns[exprPercent] = p.parseInfixExpression
	p.infixFns[exprEQ] = p.parseInfixExpression
	p.infixFns[exprNotEQ] = p.parseInfixExpression
	p.infixFns[exprLT] = p.parseInfixExpression
	p.infixFns[exprLTE] = p.parseInfixExpression
	p.infixFns[exprGT] = p.parseInfixExpression
	p.infixFns[exprGTE] = p.parseInfixExpression
	p.infixFns[exprAnd] = p.parseInfixExpression
	p.infixFns[exprOr] = p.parseInfixExpression
	p.infixFns[exprLParen] = p.parseCallExpression
	p.infixFns[exprDot] = p.parseMemberExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *exprParser) registerPrefix(tt exprTokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *exprParser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.nextToken()
}

func (p *exprParser) expectPeek(tt exprTokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.failf("expected '%s'", tt)
	return false
}

func (p *exprParser) failf(format string, args ...any) {
	if p.err == nil {
		p.err = &SyntaxError{Line: p.line, Message: fmt.Sprintf(format, args...)}
	}
}

func (p *exprParser) errorUnexpected(tok exprToken) {
	switch {
	case tok.Type == exprIllegal && tok.Literal == "unterminated string":
		p.failf("unterminated string")
	case tok.Type == exprIllegal:
		p.failf("unexpected character '%s'", tok.Literal)
	case tok.Type == exprEOF:
		p.failf("unexpected end of expression")
	default:
		p.failf("unexpected '%s'", tok.Literal)
	}
}

func (p *exprParser) peekPrecedence() int {
	return exprPrecedences[p.peekToken.Type]
}

func (p *exprParser) curPrecedence() int {
	return exprPrecedences[p.curToken.Type]
}

func (p *exprParser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()

	for p.err == nil && p.peekToken.Type != exprEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *exprParser) parseIdentifier() Expression {
	return &Identifier{Name: p.curToken.Literal, line: p.line}
}

func (p *exprParser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.failf("invalid integer literal '%s'", p.curToken.Literal)
		return nil
	}
	return &IntegerLiteral{Value: value, line: p.line}
}

func (p *exprParser) parseFloatLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.failf("invalid float literal '%s'", p.curToken.Literal)
		return nil
	}
	return &FloatLiteral{Value: value, line: p.line}
}

func (p *exprParser) parseStringLiteral() Expression {
	return &StringLiteral{Value: p.curToken.Literal, line: p.line}
}

func (p *exprParser) parseBooleanLiteral() Expression {
	return &BoolLiteral{Value: p.curToken.Type == exprTrue, line: p.line}
}

func (p *exprParser) parseNullLiteral() Expression {
	return &NullLiteral{line: p.line}
}

func (p *exprParser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if !p.expectPeek(exprRParen) {
		return nil
	}
	return expr
}

func (p *exprParser) parsePrefixExpression() Expression {
	op := p.curToken.Literal
	p.nextToken()
	right := p.parseExpression(precPrefix)
	return &PrefixExpr{Operator: op, Right: right, line: p.line}
}

func (p *exprParser) parseInfixExpression(left Expression) Expression {
	op := p.curToken.Literal
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &InfixExpr{Operator: op, Left: left, Right: right, line: p.line}
}

// parseCallExpression parses the argument list after an opening paren.
// Commas inside nested calls and string literals never split an outer
// argument because arguments are parsed as full expressions.
func (p *exprParser) parseCallExpression(callee Expression) Expression {
	args := []Expression{}
	if p.peekToken.Type == exprRParen {
		p.nextToken()
		return &CallExpr{Callee: callee, Args: args, line: p.line}
	}

	p.nextToken()
	args = append(args, p.parseExpression(lowestPrec))

	for p.err == nil && p.peekToken.Type == exprComma {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(lowestPrec))
	}

	if !p.expectPeek(exprRParen) {
		return nil
	}
	return &CallExpr{Callee: callee, Args: args, line: p.line}
}

func (p *exprParser) parseMemberExpression(obj Expression) Expression {
	if p.peekToken.Type != exprIdent {
		p.failf("expected property name after '.'")
		return nil
	}
	p.nextToken()
	return &MemberExpr{Object: obj, Property: p.curToken.Literal, line: p.line}
}
