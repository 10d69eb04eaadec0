package ast

import (
	"strings"

	"github.com/cwbudde/pineql/internal/lexer"
)

// LiteralKind tags the primitive kind of a Literal node.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBool
	LiteralColor
	LiteralNA
)

// Literal is a constant value token: int, float, string, bool, color, or na.
type Literal struct {
	Token    lexer.Token
	Kind     LiteralKind
	Text     string // original lexeme, for diagnostics and printing
	IntVal   int64
	FloatVal float64
	BoolVal  bool
}

func (l *Literal) expressionNode()     {}
func (l *Literal) Pos() lexer.Position { return l.Token.Pos }
func (l *Literal) String() string {
	if l.Kind == LiteralString {
		return "\"" + l.Text + "\""
	}
	return l.Text
}

// Identifier is a bare name reference.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) expressionNode()     {}
func (i *Identifier) Pos() lexer.Position { return i.Token.Pos }
func (i *Identifier) String() string      { return i.Name }

// BinaryOp is a two-operand operator expression.
type BinaryOp struct {
	Token lexer.Token
	Left  Expression
	Op    string
	Right Expression
}

func (b *BinaryOp) expressionNode()     {}
func (b *BinaryOp) Pos() lexer.Position { return b.Token.Pos }
func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// UnaryOp is a prefix operator expression (not x, -x).
type UnaryOp struct {
	Token   lexer.Token
	Op      string
	Operand Expression
}

func (u *UnaryOp) expressionNode()     {}
func (u *UnaryOp) Pos() lexer.Position { return u.Token.Pos }
func (u *UnaryOp) String() string {
	sep := ""
	if len(u.Op) > 0 && u.Op[0] >= 'a' && u.Op[0] <= 'z' {
		sep = " "
	}
	return "(" + u.Op + sep + u.Operand.String() + ")"
}

// Arg is a call argument, optionally named.
type Arg struct {
	Value Expression
	Name  string // empty unless this is a named argument
}

// FunctionCall is a (possibly dotted, possibly generic-typed) function call.
type FunctionCall struct {
	Token      lexer.Token // the callee's first token
	DottedName string
	GenericArg string // the single type token between < and >, if any
	Args       []Arg
}

func (f *FunctionCall) expressionNode()     {}
func (f *FunctionCall) Pos() lexer.Position { return f.Token.Pos }
func (f *FunctionCall) String() string {
	var parts []string
	for _, a := range f.Args {
		if a.Name != "" {
			parts = append(parts, a.Name+"="+a.Value.String())
		} else {
			parts = append(parts, a.Value.String())
		}
	}
	callee := f.DottedName
	if f.GenericArg != "" {
		callee += "<" + f.GenericArg + ">"
	}
	return callee + "(" + strings.Join(parts, ", ") + ")"
}

// TernaryOp is `cond ? then : else`.
type TernaryOp struct {
	Token lexer.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (t *TernaryOp) expressionNode()     {}
func (t *TernaryOp) Pos() lexer.Position { return t.Token.Pos }
func (t *TernaryOp) String() string {
	return "(" + t.Cond.String() + " ? " + t.Then.String() + " : " + t.Else.String() + ")"
}

// ArrayAccess is `base[index, ...]`.
type ArrayAccess struct {
	Token   lexer.Token
	Base    Expression
	Indices []Expression
}

func (a *ArrayAccess) expressionNode()     {}
func (a *ArrayAccess) Pos() lexer.Position { return a.Token.Pos }
func (a *ArrayAccess) String() string {
	var idx []string
	for _, e := range a.Indices {
		idx = append(idx, e.String())
	}
	return a.Base.String() + "[" + strings.Join(idx, ", ") + "]"
}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()     {}
func (a *ArrayLiteral) Pos() lexer.Position { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	var els []string
	for _, e := range a.Elements {
		els = append(els, e.String())
	}
	return "[" + strings.Join(els, ", ") + "]"
}
