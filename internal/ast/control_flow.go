package ast

import (
	"strings"

	"github.com/cwbudde/pineql/internal/lexer"
)

// IfBranch is one `if`/`else if` arm.
type IfBranch struct {
	Cond Expression // nil for a trailing `else`
	Body *Block
}

// IfExpr is both a statement and an expression: it yields the value of the
// last statement of whichever branch ran.
type IfExpr struct {
	Token    lexer.Token
	Branches []IfBranch
}

func (i *IfExpr) statementNode()      {}
func (i *IfExpr) expressionNode()     {}
func (i *IfExpr) Pos() lexer.Position { return i.Token.Pos }
func (i *IfExpr) String() string {
	var b strings.Builder
	for idx, br := range i.Branches {
		if idx == 0 {
			b.WriteString("if ")
			b.WriteString(br.Cond.String())
		} else if br.Cond != nil {
			b.WriteString("else if ")
			b.WriteString(br.Cond.String())
		} else {
			b.WriteString("else")
		}
		b.WriteString("\n")
		b.WriteString(br.Body.String())
	}
	return b.String()
}

// ForExpr is a `for name = start to end [by step]` loop.
type ForExpr struct {
	Token    lexer.Token
	Var      string
	Start    Expression
	End      Expression
	Step     Expression // nil if not given
	Downward bool        // never set by the parser, which has no `downto` form
	Body     *Block
}

func (f *ForExpr) statementNode()      {}
func (f *ForExpr) expressionNode()     {}
func (f *ForExpr) Pos() lexer.Position { return f.Token.Pos }
func (f *ForExpr) String() string {
	dir := "to"
	if f.Downward {
		dir = "downto"
	}
	return "for " + f.Var + " = " + f.Start.String() + " " + dir + " " + f.End.String() + "\n" + f.Body.String()
}

// WhileExpr is a `while cond` loop.
type WhileExpr struct {
	Token lexer.Token
	Cond  Expression
	Body  *Block
}

func (w *WhileExpr) statementNode()      {}
func (w *WhileExpr) expressionNode()     {}
func (w *WhileExpr) Pos() lexer.Position { return w.Token.Pos }
func (w *WhileExpr) String() string {
	return "while " + w.Cond.String() + "\n" + w.Body.String()
}

// SwitchCase is one `value/cond => body` arm, or the default arm when Test
// is nil.
type SwitchCase struct {
	Test Expression
	Body *Block
}

// SwitchExpr covers both switch forms: with a Subject (case-value form)
// or without one (condition-chain form).
type SwitchExpr struct {
	Token   lexer.Token
	Subject Expression // nil for the subject-less form
	Cases   []SwitchCase
}

func (s *SwitchExpr) statementNode()      {}
func (s *SwitchExpr) expressionNode()     {}
func (s *SwitchExpr) Pos() lexer.Position { return s.Token.Pos }
func (s *SwitchExpr) String() string {
	var b strings.Builder
	b.WriteString("switch")
	if s.Subject != nil {
		b.WriteString(" ")
		b.WriteString(s.Subject.String())
	}
	b.WriteString("\n")
	for _, c := range s.Cases {
		b.WriteString("    ")
		if c.Test != nil {
			b.WriteString(c.Test.String())
		}
		b.WriteString(" =>\n")
		b.WriteString(c.Body.String())
	}
	return b.String()
}

// BreakStatement is `break`.
type BreakStatement struct{ Token lexer.Token }

func (b *BreakStatement) statementNode()      {}
func (b *BreakStatement) Pos() lexer.Position { return b.Token.Pos }
func (b *BreakStatement) String() string      { return "break" }

// ContinueStatement is `continue`.
type ContinueStatement struct{ Token lexer.Token }

func (c *ContinueStatement) statementNode()      {}
func (c *ContinueStatement) Pos() lexer.Position { return c.Token.Pos }
func (c *ContinueStatement) String() string      { return "continue" }
