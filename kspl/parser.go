package kspl

import (
	"fmt"
	"regexp"
	"strings"
)

var identRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// Parse assembles construct tokens into a Program. The first problem
// found aborts with a *SyntaxError and nothing of the program is kept,
// so a script either loads whole or not at all.
func Parse(tokens []Token) (*Program, error) {
	p := &programParser{tokens: tokens}
	return p.parseProgram()
}

type programParser struct {
	tokens []Token
	pos    int
}

func (p *programParser) cur() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *programParser) advance() Token {
	tok := p.cur()
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *programParser) expect(tt TokenType) (Token, error) {
	tok := p.cur()
	if tok.Type != tt {
		return tok, p.failf(tok.Line, "expected %s, found %s", tt, tok.Type)
	}
	return p.advance(), nil
}

func (p *programParser) failf(line int, format string, args ...any) error {
	return &SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)}
}

func (p *programParser) parseProgram() (*Program, error) {
	prog := &Program{
		Classes:   make(map[string]*ClassDecl),
		Functions: make(map[string]*FunctionDecl),
	}
	for {
		tok := p.cur()
		switch tok.Type {
		case TokenEOF:
			return prog, nil
		case TokenClass:
			cls, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			if _, exists := prog.Classes[cls.Name]; exists {
				return nil, p.failf(cls.Pos(), "duplicate class '%s'", cls.Name)
			}
			prog.Classes[cls.Name] = cls
		case TokenFn:
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			if _, exists := prog.Functions[fn.Name]; exists {
				return nil, p.failf(fn.Pos(), "duplicate function '%s'", fn.Name)
			}
			prog.Functions[fn.Name] = fn
		case TokenField:
			return nil, p.failf(tok.Line, "field declaration outside class")
		case TokenReturn:
			return nil, p.failf(tok.Line, "return outside function")
		case TokenElse:
			return nil, p.failf(tok.Line, "else without matching if")
		case TokenBlockClose:
			return nil, p.failf(tok.Line, "unmatched }")
		case TokenBlockOpen:
			return nil, p.failf(tok.Line, "unexpected {")
		default:
			stmt, err := p.parseStatement(false)
			if err != nil {
				return nil, err
			}
			prog.TopLevel = append(prog.TopLevel, stmt)
		}
	}
}

func (p *programParser) parseClass() (*ClassDecl, error) {
	tok := p.advance()
	if _, err := p.expect(TokenBlockOpen); err != nil {
		return nil, err
	}
	cls := &ClassDecl{
		Name:    tok.Text,
		Methods: make(map[string]*FunctionDecl),
		line:    tok.Line,
	}
	for {
		t := p.cur()
		switch t.Type {
		case TokenField:
			p.advance()
			expr, err := parseExpressionText(t.Expr, t.Line)
			if err != nil {
				return nil, err
			}
			if cls.Field(t.Text) != nil {
				return nil, p.failf(t.Line, "duplicate field '%s' in class '%s'", t.Text, cls.Name)
			}
			cls.Fields = append(cls.Fields, &FieldDecl{Name: t.Text, Default: expr, line: t.Line})
		case TokenFn:
			m, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			if _, exists := cls.Methods[m.Name]; exists {
				return nil, p.failf(m.Pos(), "duplicate method '%s' in class '%s'", m.Name, cls.Name)
			}
			cls.Methods[m.Name] = m
		case TokenBlockClose:
			p.advance()
			return cls, nil
		case TokenEOF:
			return nil, p.failf(t.Line, "class '%s' not closed", cls.Name)
		default:
			return nil, p.failf(t.Line, "%s not allowed in class body", t.Type)
		}
	}
}

func (p *programParser) parseFunction() (*FunctionDecl, error) {
	tok := p.advance()
	params, err := parseParamList(tok.Expr, tok.Line)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenBlockOpen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(true)
	if err != nil {
		return nil, err
	}
	return &FunctionDecl{Name: tok.Text, Params: params, Body: body, line: tok.Line}, nil
}

// parseBlock consumes statements up to and including the closing
// BLOCK_CLOSE. Declarations cannot appear inside blocks.
func (p *programParser) parseBlock(inFunction bool) ([]Statement, error) {
	var stmts []Statement
	for {
		t := p.cur()
		switch t.Type {
		case TokenBlockClose:
			p.advance()
			return stmts, nil
		case TokenEOF:
			return nil, p.failf(t.Line, "block not closed")
		case TokenClass:
			return nil, p.failf(t.Line, "class declaration inside block")
		case TokenFn:
			return nil, p.failf(t.Line, "nested function declaration")
		case TokenField:
			return nil, p.failf(t.Line, "field declaration outside class")
		case TokenElse:
			return nil, p.failf(t.Line, "else without matching if")
		default:
			stmt, err := p.parseStatement(inFunction)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		}
	}
}

func (p *programParser) parseStatement(inFunction bool) (Statement, error) {
	t := p.cur()
	switch t.Type {
	case TokenLet:
		p.advance()
		expr, err := parseExpressionText(t.Expr, t.Line)
		if err != nil {
			return nil, err
		}
		return &LetStmt{Name: t.Text, Value: expr, line: t.Line}, nil
	case TokenAssign:
		p.advance()
		path, err := splitAssignTarget(t.Text, t.Line)
		if err != nil {
			return nil, err
		}
		expr, err := parseExpressionText(t.Expr, t.Line)
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Path: path, Value: expr, line: t.Line}, nil
	case TokenReturn:
		if !inFunction {
			return nil, p.failf(t.Line, "return outside function")
		}
		p.advance()
		var expr Expression
		if t.Expr != "" {
			var err error
			expr, err = parseExpressionText(t.Expr, t.Line)
			if err != nil {
				return nil, err
			}
		}
		return &ReturnStmt{Value: expr, line: t.Line}, nil
	case TokenIf:
		return p.parseIf(inFunction)
	case TokenStmt:
		p.advance()
		expr, err := parseExpressionText(t.Expr, t.Line)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Expr: expr, line: t.Line}, nil
	default:
		return nil, p.failf(t.Line, "unexpected %s", t.Type)
	}
}

func (p *programParser) parseIf(inFunction bool) (Statement, error) {
	tok := p.advance()
	cond, err := parseExpressionText(tok.Expr, tok.Line)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenBlockOpen); err != nil {
		return nil, err
	}
	consequent, err := p.parseBlock(inFunction)
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Condition: cond, Consequent: consequent, line: tok.Line}
	if p.cur().Type == TokenElse {
		p.advance()
		if _, err := p.expect(TokenBlockOpen); err != nil {
			return nil, err
		}
		stmt.Alternate, err = p.parseBlock(inFunction)
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func parseParamList(raw string, line int) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	params := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if !identRe.MatchString(name) {
			return nil, &SyntaxError{Line: line, Message: fmt.Sprintf("invalid parameter '%s'", name)}
		}
		params = append(params, name)
	}
	return params, nil
}

func splitAssignTarget(target string, line int) ([]string, error) {
	path := strings.Split(target, ".")
	for _, segment := range path {
		if !identRe.MatchString(segment) {
			return nil, &SyntaxError{Line: line, Message: fmt.Sprintf("invalid assignment target '%s'", target)}
		}
	}
	return path, nil
}
