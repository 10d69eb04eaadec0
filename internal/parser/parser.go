// Package parser implements the predictive recursive-descent statement
// parser and Pratt expression parser, grounded on go-dws's
// file split (statements/expressions/operators/error-recovery in
// separate files) and its panic-mode synchronization strategy
// (internal/parser/error_recovery.go), re-keyed from DWScript's
// end/until block closers to this grammar's NEWLINE-driven
// resynchronization.
package parser

import (
	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/lexer"
)

// Parser holds an already-tokenized stream (the lexer's indentation pass
// has already run) and walks it with an explicit index cursor — simpler
// than go-dws's TokenCursor-over-lexer abstraction since the whole
// stream is already materialized in memory by the time parsing starts.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []ParseError
}

// New creates a Parser over an already-lexed token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns all recorded parse errors in the order they were found.
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) addError(msg string, pos lexer.Position) {
	p.errors = append(p.errors, ParseError{Message: msg, Pos: pos})
}

// cur returns the token at the cursor; past the end of the stream it keeps
// returning the trailing EOF token.
func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// peek returns the token n positions ahead of the cursor.
func (p *Parser) peek(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) isKind(k lexer.TokenKind) bool { return p.cur().Kind == k }

func (p *Parser) isKeyword(word string) bool {
	return p.cur().Kind == lexer.KEYWORD && p.cur().Lexeme == word
}

func (p *Parser) isOperator(op string) bool {
	return p.cur().Kind == lexer.OPERATOR && p.cur().Lexeme == op
}

// accept consumes the current token if it has kind k, returning ok.
func (p *Parser) accept(k lexer.TokenKind) (lexer.Token, bool) {
	if p.isKind(k) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

// expect consumes the current token if it has kind k, else records a parse
// error at the current position and returns ok=false without advancing.
func (p *Parser) expect(k lexer.TokenKind, what string) (lexer.Token, bool) {
	if p.isKind(k) {
		return p.advance(), true
	}
	p.addError("expected "+what+", got "+p.cur().Kind.String()+" "+quoteLexeme(p.cur()), p.cur().Pos)
	return lexer.Token{}, false
}

func quoteLexeme(t lexer.Token) string {
	if t.Lexeme == "" {
		return ""
	}
	return "(" + t.Lexeme + ")"
}

// skipNewlines consumes any run of NEWLINE tokens (blank lines between
// statements are allowed).
func (p *Parser) skipNewlines() {
	for p.isKind(lexer.NEWLINE) {
		p.advance()
	}
}

// ParseProgram parses the entire token stream into a Program, accumulating
// ParseErrors and always returning a (possibly partial) statement list.
func ParseProgram(tokens []lexer.Token) (*ast.Program, []ParseError) {
	p := New(tokens)
	prog := &ast.Program{}

	p.skipNewlines()
	for !p.isKind(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipNewlines()
	}
	return prog, p.errors
}
