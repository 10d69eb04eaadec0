package parser

import (
	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/lexer"
)

// parseBlock parses `NEWLINE INDENT statement+ DEDENT`. On a
// missing NEWLINE/INDENT it records an error and returns an empty block
// rather than aborting the surrounding construct.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{}

	if _, ok := p.expect(lexer.NEWLINE, "end of line before an indented block"); !ok {
		return block
	}
	p.skipNewlines()
	if _, ok := p.expect(lexer.INDENT, "an indented block"); !ok {
		return block
	}

	for !p.isKind(lexer.DEDENT) && !p.isKind(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.skipNewlines()
	}
	p.expect(lexer.DEDENT, "end of indented block")
	return block
}

// parseCaseBody parses a switch case's body: either an indented block, or a
// single inline statement on the same line as '=>'.
func (p *Parser) parseCaseBody() *ast.Block {
	if p.isKind(lexer.NEWLINE) {
		return p.parseBlock()
	}
	tok := p.cur()
	expr := p.parseExpression()
	return &ast.Block{Statements: []ast.Statement{&ast.ExpressionStatement{Token: tok, Expr: expr}}}
}

// parseIfExpr parses `if cond` followed by a block, then any number of
// `else if cond` blocks, then an optional trailing `else` block.
func (p *Parser) parseIfExpr() *ast.IfExpr {
	tok := p.advance() // 'if'
	node := &ast.IfExpr{Token: tok}

	cond := p.parseExpression()
	body := p.parseBlock()
	node.Branches = append(node.Branches, ast.IfBranch{Cond: cond, Body: body})

	for p.isKeyword("else") {
		p.advance()
		if p.isKeyword("if") {
			p.advance()
			elifCond := p.parseExpression()
			elifBody := p.parseBlock()
			node.Branches = append(node.Branches, ast.IfBranch{Cond: elifCond, Body: elifBody})
			continue
		}
		elseBody := p.parseBlock()
		node.Branches = append(node.Branches, ast.IfBranch{Cond: nil, Body: elseBody})
		break
	}
	return node
}

// parseForExpr parses `for name = start to end [by step]` followed by a
// block. The grammar's keyword set has no "downto"; reverse
// iteration is expressed with a negative `by` step, so Downward is always
// false at parse time.
func (p *Parser) parseForExpr() *ast.ForExpr {
	tok := p.advance() // 'for'
	node := &ast.ForExpr{Token: tok}

	name, ok := p.expect(lexer.IDENT, "loop variable name")
	if ok {
		node.Var = name.Lexeme
	}
	if !p.isOperator("=") {
		p.addError("expected '=' in for loop header", p.cur().Pos)
	} else {
		p.advance()
	}
	node.Start = p.parseExpression()

	if !p.isKeyword("to") {
		p.addError("expected 'to' in for loop header", p.cur().Pos)
	} else {
		p.advance()
	}
	node.End = p.parseExpression()

	if p.isKeyword("by") {
		p.advance()
		node.Step = p.parseExpression()
	}

	node.Body = p.parseBlock()
	return node
}

// parseWhileExpr parses `while cond` followed by a block.
func (p *Parser) parseWhileExpr() *ast.WhileExpr {
	tok := p.advance() // 'while'
	node := &ast.WhileExpr{Token: tok}
	node.Cond = p.parseExpression()
	node.Body = p.parseBlock()
	return node
}

// parseSwitchExpr parses both switch forms: with a
// subject expression (case-value matching) or without one (a chain of
// boolean conditions), distinguished by whether a NEWLINE immediately
// follows the `switch` keyword.
func (p *Parser) parseSwitchExpr() *ast.SwitchExpr {
	tok := p.advance() // 'switch'
	node := &ast.SwitchExpr{Token: tok}

	if !p.isKind(lexer.NEWLINE) {
		node.Subject = p.parseExpression()
	}

	if _, ok := p.expect(lexer.NEWLINE, "end of line before switch cases"); !ok {
		return node
	}
	p.skipNewlines()
	if _, ok := p.expect(lexer.INDENT, "indented switch cases"); !ok {
		return node
	}

	for !p.isKind(lexer.DEDENT) && !p.isKind(lexer.EOF) {
		var test ast.Expression
		if !p.isOperator("=>") {
			test = p.parseExpression()
		}
		if !p.isOperator("=>") {
			p.addError("expected '=>' in switch case", p.cur().Pos)
			p.synchronize()
			p.skipNewlines()
			continue
		}
		p.advance() // '=>'
		body := p.parseCaseBody()
		node.Cases = append(node.Cases, ast.SwitchCase{Test: test, Body: body})
		p.skipNewlines()
	}
	p.expect(lexer.DEDENT, "end of switch cases")
	return node
}
