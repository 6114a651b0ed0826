package kspl

// KSPL is line-oriented, so a node position is just a 1-based line
// number in the scanned source.

type Node interface {
	Pos() int
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Program is the parsed form of one script: classes and free functions
// by name, plus the top-level statements in source order.
type Program struct {
	Classes   map[string]*ClassDecl
	Functions map[string]*FunctionDecl
	TopLevel  []Statement
}

type ClassDecl struct {
	Name    string
	Fields  []*FieldDecl
	Methods map[string]*FunctionDecl
	line    int
}

func (d *ClassDecl) Pos() int { return d.line }

// Field returns the declared field with the given name, or nil.
func (d *ClassDecl) Field(name string) *FieldDecl {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

type FieldDecl struct {
	Name    string
	Default Expression
	line    int
}

func (d *FieldDecl) Pos() int { return d.line }

type FunctionDecl struct {
	Name   string
	Params []string
	Body   []Statement
	line   int
}

func (d *FunctionDecl) Pos() int { return d.line }

type LetStmt struct {
	Name  string
	Value Expression
	line  int
}

func (s *LetStmt) stmtNode() {}
func (s *LetStmt) Pos() int  { return s.line }

// AssignStmt covers both plain and dotted assignments; Path holds the
// target split on dots, so "self.count" becomes ["self", "count"].
type AssignStmt struct {
	Path  []string
	Value Expression
	line  int
}

func (s *AssignStmt) stmtNode() {}
func (s *AssignStmt) Pos() int  { return s.line }

type ReturnStmt struct {
	Value Expression // nil for a bare return
	line  int
}

func (s *ReturnStmt) stmtNode() {}
func (s *ReturnStmt) Pos() int  { return s.line }

type IfStmt struct {
	Condition  Expression
	Consequent []Statement
	Alternate  []Statement
	line       int
}

func (s *IfStmt) stmtNode() {}
func (s *IfStmt) Pos() int  { return s.line }

type ExprStmt struct {
	Expr Expression
	line int
}

func (s *ExprStmt) stmtNode() {}
func (s *ExprStmt) Pos() int  { return s.line }

type Identifier struct {
	Name string
	line int
}

func (e *Identifier) exprNode() {}
func (e *Identifier) Pos() int  { return e.line }

type IntegerLiteral struct {
	Value int64
	line  int
}

func (e *IntegerLiteral) exprNode() {}
func (e *IntegerLiteral) Pos() int  { return e.line }

type FloatLiteral struct {
	Value float64
	line  int
}

func (e *FloatLiteral) exprNode() {}
func (e *FloatLiteral) Pos() int  { return e.line }

type StringLiteral struct {
	Value string
	line  int
}

func (e *StringLiteral) exprNode() {}
func (e *StringLiteral) Pos() int  { return e.line }

type BoolLiteral struct {
	Value bool
	line  int
}

func (e *BoolLiteral) exprNode() {}
func (e *BoolLiteral) Pos() int  { return e.line }

type NullLiteral struct {
	line int
}

func (e *NullLiteral) exprNode() {}
func (e *NullLiteral) Pos() int  { return e.line }

type PrefixExpr struct {
	Operator string
	Right    Expression
	line     int
}

func (e *PrefixExpr) exprNode() {}
func (e *PrefixExpr) Pos() int  { return e.line }

type InfixExpr struct {
	Operator string
	Left     Expression
	Right    Expression
	line     int
}

func (e *InfixExpr) exprNode() {}
func (e *InfixExpr) Pos() int  { return e.line }

type CallExpr struct {
	Callee Expression
	Args   []Expression
	line   int
}

func (e *CallExpr) exprNode() {}
func (e *CallExpr) Pos() int  { return e.line }

type MemberExpr struct {
	Object   Expression
	Property string
	line     int
}

func (e *MemberExpr) exprNode() {}
func (e *MemberExpr) Pos() int  { return e.line }
