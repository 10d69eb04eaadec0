package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/lexer"
)

// parseExpression is the Pratt entry point. Precedence climbs from ternary
// (loosest) down through or/and/equality/comparison/additive/multiplicative
// to unary and postfix (tightest).
func (p *Parser) parseExpression() ast.Expression {
	return p.parseTernary()
}

func (p *Parser) parseTernary() ast.Expression {
	cond := p.parseOr()
	if p.isKind(lexer.QUESTION) {
		tok := p.advance()
		then := p.parseTernary()
		if _, ok := p.expect(lexer.COLON, "':' in ternary expression"); !ok {
			return cond
		}
		els := p.parseTernary()
		return &ast.TernaryOp{Token: tok, Cond: cond, Then: then, Else: els}
	}
	return cond
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.isKeyword("or") {
		tok := p.advance()
		depth := p.skipContinuation()
		right := p.parseAnd()
		p.skipDedents(depth)
		left = &ast.BinaryOp{Token: tok, Left: left, Op: "or", Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.isKeyword("and") {
		tok := p.advance()
		depth := p.skipContinuation()
		right := p.parseEquality()
		p.skipDedents(depth)
		left = &ast.BinaryOp{Token: tok, Left: left, Op: "and", Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.isOperator("==") || p.isOperator("!=") {
		tok := p.advance()
		depth := p.skipContinuation()
		right := p.parseComparison()
		p.skipDedents(depth)
		left = &ast.BinaryOp{Token: tok, Left: left, Op: tok.Lexeme, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for p.isOperator("<") || p.isOperator(">") || p.isOperator("<=") || p.isOperator(">=") {
		tok := p.advance()
		depth := p.skipContinuation()
		right := p.parseAdditive()
		p.skipDedents(depth)
		left = &ast.BinaryOp{Token: tok, Left: left, Op: tok.Lexeme, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.isOperator("+") || p.isOperator("-") {
		tok := p.advance()
		depth := p.skipContinuation()
		right := p.parseMultiplicative()
		p.skipDedents(depth)
		left = &ast.BinaryOp{Token: tok, Left: left, Op: tok.Lexeme, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.isOperator("*") || p.isOperator("/") || p.isOperator("%") {
		tok := p.advance()
		depth := p.skipContinuation()
		right := p.parseUnary()
		p.skipDedents(depth)
		left = &ast.BinaryOp{Token: tok, Left: left, Op: tok.Lexeme, Right: right}
	}
	return left
}

// skipContinuation consumes a NEWLINE immediately followed by one or more
// INDENT tokens — the shape the indenter produces when an infix operator's
// right-hand operand is written on a more-deeply-indented continuation
// line. Returns the number of INDENTs consumed so the caller can balance
// them with skipDedents once the operand has been parsed. Returns 0 (and
// leaves the cursor untouched) when the current token isn't a
// continuation boundary.
func (p *Parser) skipContinuation() int {
	if !p.isKind(lexer.NEWLINE) || p.peek(1).Kind != lexer.INDENT {
		return 0
	}
	p.advance() // NEWLINE
	depth := 0
	for p.isKind(lexer.INDENT) {
		p.advance()
		depth++
	}
	return depth
}

// skipDedents consumes up to n DEDENT tokens, balancing a prior
// skipContinuation so the indent stack stays aligned once the expression
// is left.
func (p *Parser) skipDedents(n int) {
	if n > 0 && p.isKind(lexer.NEWLINE) && p.peek(1).Kind == lexer.DEDENT {
		// The operand's line ended: move its NEWLINE past the balancing
		// DEDENTs so the statement still ends on a NEWLINE.
		i := p.pos
		nl := p.tokens[i]
		j := i
		for j-i < n && p.tokens[j+1].Kind == lexer.DEDENT {
			p.tokens[j] = p.tokens[j+1]
			j++
		}
		p.tokens[j] = nl
	}
	for i := 0; i < n && p.isKind(lexer.DEDENT); i++ {
		p.advance()
	}
}

func (p *Parser) parseUnary() ast.Expression {
	if p.isKeyword("not") || p.isOperator("-") || p.isOperator("+") {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryOp{Token: tok, Op: tok.Lexeme, Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix handles member access (.name), array/history indexing
// ([...]), plain calls, and generic calls (Name<Type>(...)).
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()

	for {
		switch {
		case p.isKind(lexer.DOT):
			ident, ok := expr.(*ast.Identifier)
			if !ok {
				p.addError("dotted member access requires an identifier base", p.cur().Pos)
				return expr
			}
			dotTok := p.advance()
			name, ok := p.expect(lexer.IDENT, "identifier after '.'")
			if !ok {
				return expr
			}
			expr = &ast.Identifier{Token: ident.Token, Name: ident.Name + "." + name.Lexeme}
			_ = dotTok

		case p.isKind(lexer.LBRACKET):
			tok := p.advance()
			indices := []ast.Expression{p.parseExpression()}
			for p.accept2(lexer.COMMA) {
				indices = append(indices, p.parseExpression())
			}
			p.expect(lexer.RBRACKET, "']'")
			expr = &ast.ArrayAccess{Token: tok, Base: expr, Indices: indices}

		case p.isOperator("<"):
			if ident, ok := expr.(*ast.Identifier); ok {
				if call, ok := p.tryParseGenericCall(ident); ok {
					expr = call
					continue
				}
			}
			return expr

		case p.isKind(lexer.LPAREN):
			ident, ok := expr.(*ast.Identifier)
			if !ok {
				p.addError("calls require a name before '('", p.cur().Pos)
				return expr
			}
			expr = p.parseCallArgs(ident.Token, ident.Name, "")

		default:
			return expr
		}
	}
}

func (p *Parser) accept2(k lexer.TokenKind) bool {
	_, ok := p.accept(k)
	return ok
}

// tryParseGenericCall speculatively parses `Name<Type>(...)`, restoring the
// cursor and reporting ok=false if the lookahead doesn't pan out (so the
// caller falls back to treating '<' as the comparison operator).
func (p *Parser) tryParseGenericCall(ident *ast.Identifier) (ast.Expression, bool) {
	save := p.pos
	savedErrs := len(p.errors)

	p.advance() // consume '<'
	if !p.isKind(lexer.IDENT) && !p.isKind(lexer.KEYWORD) {
		p.pos = save
		return nil, false
	}
	typeTok := p.advance()
	if !p.isOperator(">") {
		p.pos = save
		p.errors = p.errors[:savedErrs]
		return nil, false
	}
	p.advance() // consume '>'
	if !p.isKind(lexer.LPAREN) {
		p.pos = save
		p.errors = p.errors[:savedErrs]
		return nil, false
	}
	call := p.parseCallArgs(ident.Token, ident.Name, typeTok.Lexeme)
	return call, true
}

// parseCallArgs parses the `(arg, name=arg, ...)` suffix of a call; the
// opening LPAREN is expected to be the current token.
func (p *Parser) parseCallArgs(tok lexer.Token, dottedName, generic string) *ast.FunctionCall {
	p.advance() // consume '('
	call := &ast.FunctionCall{Token: tok, DottedName: dottedName, GenericArg: generic}

	if p.isKind(lexer.RPAREN) {
		p.advance()
		return call
	}

	for {
		arg := p.parseArg()
		call.Args = append(call.Args, arg)
		if !p.accept2(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN, "')'")
	return call
}

// parseArg parses one call argument, recognizing the `name = value` named
// form by a one-token lookahead for IDENT '=' that is not itself a
// comparison.
func (p *Parser) parseArg() ast.Arg {
	if p.isKind(lexer.IDENT) && p.peek(1).Kind == lexer.OPERATOR && p.peek(1).Lexeme == "=" {
		name := p.advance()
		p.advance() // consume '='
		return ast.Arg{Name: name.Lexeme, Value: p.parseExpression()}
	}
	return ast.Arg{Value: p.parseExpression()}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()

	switch {
	case p.isKind(lexer.INT):
		p.advance()
		v, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return &ast.Literal{Token: tok, Kind: ast.LiteralInt, Text: tok.Lexeme, IntVal: v}

	case p.isKind(lexer.FLOAT):
		p.advance()
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.Literal{Token: tok, Kind: ast.LiteralFloat, Text: tok.Lexeme, FloatVal: v}

	case p.isKind(lexer.STRING):
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralString, Text: tok.Lexeme}

	case p.isKind(lexer.COLOR):
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralColor, Text: tok.Lexeme}

	case p.isKeyword("true"), p.isKeyword("false"):
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralBool, Text: tok.Lexeme, BoolVal: tok.Lexeme == "true"}

	case p.isKeyword("na"):
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralNA, Text: "na"}

	case p.isKeyword("if"):
		return p.parseIfExpr()

	case p.isKeyword("for"):
		return p.parseForExpr()

	case p.isKeyword("while"):
		return p.parseWhileExpr()

	case p.isKeyword("switch"):
		return p.parseSwitchExpr()

	case p.isKind(lexer.IDENT):
		p.advance()
		return &ast.Identifier{Token: tok, Name: tok.Lexeme}

	case p.isKind(lexer.LPAREN):
		p.advance()
		inner := p.parseExpression()
		p.expect(lexer.RPAREN, "')'")
		return inner

	case p.isKind(lexer.LBRACKET):
		return p.parseArrayLiteral()

	default:
		p.addError("unexpected token "+tok.Kind.String()+" "+quoteLexeme(tok)+" in expression", tok.Pos)
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralNA, Text: "na"}
	}
}

func (p *Parser) parseArrayLiteral() *ast.ArrayLiteral {
	tok := p.advance() // '['
	lit := &ast.ArrayLiteral{Token: tok}
	if p.isKind(lexer.RBRACKET) {
		p.advance()
		return lit
	}
	for {
		lit.Elements = append(lit.Elements, p.parseExpression())
		if !p.accept2(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACKET, "']'")
	return lit
}

// dottedLexeme reconstructs the literal dotted form of an identifier chain
// without building an AST node for it. Nothing in the package calls it.
func dottedLexeme(parts []string) string {
	return strings.Join(parts, ".")
}
