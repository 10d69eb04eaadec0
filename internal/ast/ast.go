// Package ast defines the syntax tree produced by the parser. Every node
// carries its starting source position (each node's (line, column) lies
// within the source span); the tree is a pure tree with no back edges —
// scope/symbol cross-references live in the semantic package instead.
package ast

import (
	"strings"

	"github.com/cwbudde/pineql/internal/lexer"
)

// Node is implemented by every tree element.
type Node interface {
	Pos() lexer.Position
	String() string
}

// Expression is a Node that yields a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node parsed in statement position. Several statement kinds
// (IfExpr, ForExpr, WhileExpr, SwitchExpr) also implement Expression: they
// yield the value of their last-executed branch statement.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the tree: the ordered list of top-level statements
// a file parses to. Error recovery means this list may be partial even when
// the source contained errors.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}
