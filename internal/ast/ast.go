package ast

import (
	"strconv"
	"strings"
)

type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Node is implemented by every statement and expression.
type Node interface {
	Position() Pos
	String() string
}

type Statement interface {
	Node
	statement()
}

type Expression interface {
	Node
	expression()
}

// Block is an ordered sequence of statements.
type Block []Statement

type If struct {
	Pos     Pos
	Cond    Expression
	Then    Block
	ElseIfs []ElseIf
	Else    *Block // nil when there is no else branch
}

type ElseIf struct {
	Pos   Pos
	Cond  Expression
	Block Block
}

type ExpressionStatement struct {
	Pos  Pos
	Expr Expression
}

func (s *If) Position() Pos                  { return s.Pos }
func (s *ExpressionStatement) Position() Pos { return s.Pos }

func (s *If) String() string {
	var b strings.Builder
	b.WriteString("if (" + s.Cond.String() + ") {...}")
	for _, ei := range s.ElseIfs {
		b.WriteString(" elseif (" + ei.Cond.String() + ") {...}")
	}
	if s.Else != nil {
		b.WriteString(" else {...}")
	}
	return b.String()
}

func (s *ExpressionStatement) String() string { return s.Expr.String() + ";" }

func (*If) statement()                  {}
func (*ExpressionStatement) statement() {}

type Variable struct {
	Pos  Pos
	Name string
}

type Identifier struct {
	Pos  Pos
	Name string
}

type ConstantString struct {
	Pos   Pos
	Value string
}

type Int struct {
	Pos   Pos
	Value int64
}

type Float struct {
	Pos   Pos
	Value float64
}

type Bool struct {
	Pos   Pos
	Value bool
}

type PropertyFetch struct {
	Pos      Pos
	Target   Expression
	Property Expression
}

type ArrayIndex struct {
	Pos   Pos
	Array Expression
	Index Expression // nil for $a[]
}

type Call struct {
	Pos    Pos
	Target Expression
	Args   []Expression
}

type Infix struct {
	Pos Pos
	LHS Expression
	Op  string
	RHS Expression
}

type Not struct {
	Pos  Pos
	Expr Expression
}

func (e *Variable) Position() Pos       { return e.Pos }
func (e *Identifier) Position() Pos     { return e.Pos }
func (e *ConstantString) Position() Pos { return e.Pos }
func (e *Int) Position() Pos            { return e.Pos }
func (e *Float) Position() Pos          { return e.Pos }
func (e *Bool) Position() Pos           { return e.Pos }
func (e *PropertyFetch) Position() Pos  { return e.Pos }
func (e *ArrayIndex) Position() Pos     { return e.Pos }
func (e *Call) Position() Pos           { return e.Pos }
func (e *Infix) Position() Pos          { return e.Pos }
func (e *Not) Position() Pos            { return e.Pos }

func (e *Variable) String() string   { return "$" + e.Name }
func (e *Identifier) String() string { return e.Name }
func (e *ConstantString) String() string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(e.Value) + "'"
}
func (e *Int) String() string   { return strconv.FormatInt(e.Value, 10) }
func (e *Float) String() string { return strconv.FormatFloat(e.Value, 'f', -1, 64) }
func (e *Bool) String() string  { return strconv.FormatBool(e.Value) }
func (e *PropertyFetch) String() string {
	return e.Target.String() + "->" + e.Property.String()
}
func (e *ArrayIndex) String() string {
	if e.Index == nil {
		return e.Array.String() + "[]"
	}
	return e.Array.String() + "[" + e.Index.String() + "]"
}
func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Target.String() + "(" + strings.Join(args, ", ") + ")"
}
func (e *Infix) String() string { return e.LHS.String() + " " + e.Op + " " + e.RHS.String() }
func (e *Not) String() string   { return "!" + e.Expr.String() }

func (*Variable) expression()       {}
func (*Identifier) expression()     {}
func (*ConstantString) expression() {}
func (*Int) expression()            {}
func (*Float) expression()          {}
func (*Bool) expression()           {}
func (*PropertyFetch) expression()  {}
func (*ArrayIndex) expression()     {}
func (*Call) expression()           {}
func (*Infix) expression()          {}
func (*Not) expression()            {}
