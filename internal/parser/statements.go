package parser

import (
	"strconv"
	"strings"

	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/lexer"
)

// parseStatement dispatches on the current token to one of the statement
// forms, recovering to the next NEWLINE on error so a single bad line
// never aborts the rest of the file.
func (p *Parser) parseStatement() ast.Statement {
	stmt := p.parseStatementInner()
	if stmt == nil {
		return nil
	}
	if !p.isKind(lexer.NEWLINE) && !p.isKind(lexer.EOF) && !p.isKind(lexer.DEDENT) {
		p.addError("expected end of line after statement, got "+p.cur().Kind.String(), p.cur().Pos)
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseStatementInner() ast.Statement {
	switch {
	case p.isKind(lexer.VERSION):
		return p.parseVersionDecl()

	case p.isKeyword("export"):
		return p.parseExportedDecl()

	case p.isKeyword("method"):
		p.advance()
		return p.parseFunctionDef(false, true)

	case p.isKeyword("type"):
		return p.parseTypeDef(false)

	case p.isKeyword("import"):
		return p.parseImportDecl()

	case p.isKeyword("indicator"), p.isKeyword("strategy"), p.isKeyword("library"):
		return p.parseScriptDecl()

	case p.isKeyword("var"), p.isKeyword("varip"):
		return p.parsePersistentVarDecl()

	case p.isKeyword("break"):
		tok := p.advance()
		return &ast.BreakStatement{Token: tok}

	case p.isKeyword("continue"):
		tok := p.advance()
		return &ast.ContinueStatement{Token: tok}

	case p.isKeyword("if"):
		return p.parseIfExpr()

	case p.isKeyword("for"):
		return p.parseForExpr()

	case p.isKeyword("while"):
		return p.parseWhileExpr()

	case p.isKeyword("switch"):
		return p.parseSwitchExpr()

	case p.isKind(lexer.IDENT), p.isKind(lexer.LBRACKET):
		return p.parseIdentLed()

	case p.isKind(lexer.INT), p.isKind(lexer.FLOAT), p.isKind(lexer.STRING), p.isKind(lexer.COLOR),
		p.isKind(lexer.LPAREN), p.isKeyword("true"), p.isKeyword("false"), p.isKeyword("na"),
		p.isKeyword("not"), p.isOperator("-"), p.isOperator("+"):
		return p.parseSimpleStatementFromExpr()

	case p.isKind(lexer.NEWLINE), p.isKind(lexer.EOF), p.isKind(lexer.DEDENT):
		return nil

	default:
		tok := p.cur()
		p.addError("unexpected token "+tok.Kind.String()+" "+quoteLexeme(tok)+" at start of statement", tok.Pos)
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseVersionDecl() *ast.VersionDecl {
	tok := p.advance()
	v, err := strconv.Atoi(tok.Lexeme)
	if err != nil {
		p.addError("invalid //@version= directive", tok.Pos)
	}
	return &ast.VersionDecl{Token: tok, Version: v}
}

func (p *Parser) parseExportedDecl() ast.Statement {
	p.advance() // 'export'
	switch {
	case p.isKeyword("type"):
		return p.parseTypeDef(true)
	case p.isKeyword("method"):
		p.advance()
		return p.parseFunctionDef(true, true)
	case p.isKind(lexer.IDENT) && p.matchesFunctionDefAhead():
		return p.parseFunctionDef(true, false)
	default:
		p.addError("expected a function or type definition after 'export'", p.cur().Pos)
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseTypeDef(exported bool) *ast.TypeDef {
	tok := p.advance() // 'type'
	def := &ast.TypeDef{Token: tok, Exported: exported}
	name, ok := p.expect(lexer.IDENT, "type name")
	if !ok {
		return def
	}
	def.Name = name.Lexeme

	if !p.isKind(lexer.NEWLINE) {
		return def
	}
	p.advance()
	p.skipNewlines()
	if _, ok := p.expect(lexer.INDENT, "indented type fields"); !ok {
		return def
	}
	for !p.isKind(lexer.DEDENT) && !p.isKind(lexer.EOF) {
		fieldType, ok := p.expect(lexer.IDENT, "field type")
		if !ok {
			p.synchronize()
			p.skipNewlines()
			continue
		}
		fieldName, ok := p.expect(lexer.IDENT, "field name")
		if ok {
			def.Fields = append(def.Fields, ast.Field{Name: fieldName.Lexeme, Type: fieldType.Lexeme})
		}
		if !p.isKind(lexer.NEWLINE) && !p.isKind(lexer.DEDENT) {
			p.synchronize()
		}
		p.skipNewlines()
	}
	p.expect(lexer.DEDENT, "end of type fields")
	return def
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	tok := p.advance() // 'import'
	decl := &ast.ImportDecl{Token: tok}

	var path strings.Builder
	name, ok := p.expect(lexer.IDENT, "import path")
	if !ok {
		return decl
	}
	path.WriteString(name.Lexeme)
	for p.isKind(lexer.DOT) {
		p.advance()
		part, ok := p.expect(lexer.IDENT, "import path segment")
		if !ok {
			break
		}
		path.WriteString("/")
		path.WriteString(part.Lexeme)
	}
	decl.Path = path.String()

	if p.isKeyword("as") || (p.isKind(lexer.IDENT) && p.cur().Lexeme == "as") {
		p.advance()
		alias, ok := p.expect(lexer.IDENT, "import alias")
		if ok {
			decl.Alias = alias.Lexeme
		}
	}
	return decl
}

func (p *Parser) parseScriptDecl() *ast.ScriptDecl {
	tok := p.advance()
	kind := ast.ScriptIndicator
	switch tok.Lexeme {
	case "strategy":
		kind = ast.ScriptStrategy
	case "library":
		kind = ast.ScriptLibrary
	}
	decl := &ast.ScriptDecl{Token: tok, Kind: kind}

	if _, ok := p.expect(lexer.LPAREN, "'(' after "+tok.Lexeme); !ok {
		return decl
	}
	if p.isKind(lexer.RPAREN) {
		p.advance()
		return decl
	}
	for {
		decl.Args = append(decl.Args, p.parseArg())
		if !p.accept2(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN, "')'")
	return decl
}

// parsePersistentVarDecl parses `var`/`varip` followed by a tuple
// `[a, b] = expr`, a typed `Type name = expr` or a plain `name = expr`.
func (p *Parser) parsePersistentVarDecl() *ast.VarDecl {
	tok := p.advance() // 'var' or 'varip'
	decl := &ast.VarDecl{Token: tok}

	if p.isKind(lexer.LBRACKET) {
		if hdr, ok := p.tryParseTupleHeader(); ok {
			decl.IsTuple = true
			decl.Names = hdr
			decl.Value = p.parseExpression()
			return decl
		}
	}

	name, ok := p.expect(lexer.IDENT, "variable name")
	if !ok {
		return decl
	}
	decl.Names = []string{name.Lexeme}
	if p.isKind(lexer.IDENT) {
		typeName := name.Lexeme
		nameTok, ok := p.expect(lexer.IDENT, "variable name")
		if ok {
			decl.TypeHint = typeName
			decl.Names = []string{nameTok.Lexeme}
		}
	}
	p.expectOperator("=")
	decl.Value = p.parseExpression()
	return decl
}

func (p *Parser) expectOperator(op string) bool {
	if p.isOperator(op) {
		p.advance()
		return true
	}
	p.addError("expected '"+op+"'", p.cur().Pos)
	return false
}

// parseIdentLed handles the identifier-prefixed (and tuple-led) statement
// forms: function definitions, qualifier/type-hinted var declarations,
// plain inferred var declarations, assignments, and bare expression
// statements — disambiguated by bounded lookahead.
func (p *Parser) parseIdentLed() ast.Statement {
	if p.isKind(lexer.LBRACKET) {
		tok := p.cur()
		if names, ok := p.tryParseTupleHeader(); ok {
			value := p.parseExpression()
			return &ast.VarDecl{Token: tok, Names: names, IsTuple: true, Value: value}
		}
		return p.parseSimpleStatementFromExpr()
	}

	if p.matchesFunctionDefAhead() {
		return p.parseFunctionDef(false, false)
	}

	if qualifier, typeHint, name, tok, ok := p.tryParseVarDeclHeader(); ok {
		value := p.parseExpression()
		return &ast.VarDecl{Token: tok, Names: []string{name}, Qualifier: qualifier, TypeHint: typeHint, Value: value}
	}

	return p.parseSimpleStatementFromExpr()
}

// parseSimpleStatementFromExpr parses a full expression as an assignment
// target or a bare expression statement, distinguishing them by whether
// ':=' follows.
func (p *Parser) parseSimpleStatementFromExpr() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression()
	if p.isOperator(":=") {
		p.advance()
		value := p.parseExpression()
		return &ast.Assignment{Token: tok, Target: expr, Value: value}
	}
	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}

// tryParseVarDeclHeader speculatively recognizes `[qualifier] [type] name =`
// using plain-identifier lookahead (no generic `<...>` type-hint suffixes —
// those fall back to ordinary expression parsing). Restores the cursor and
// returns ok=false on any mismatch.
func (p *Parser) tryParseVarDeclHeader() (qualifier, typeHint, name string, tok lexer.Token, ok bool) {
	count := 0
	for p.peek(count).Kind == lexer.IDENT && count < 3 {
		count++
	}
	if count == 0 {
		return "", "", "", lexer.Token{}, false
	}
	if !(p.peek(count).Kind == lexer.OPERATOR && p.peek(count).Lexeme == "=") {
		return "", "", "", lexer.Token{}, false
	}

	tok = p.cur()
	parts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		parts = append(parts, p.advance().Lexeme)
	}
	p.advance() // consume '='

	name = parts[len(parts)-1]
	switch len(parts) {
	case 1:
		return "", "", name, tok, true
	case 2:
		return "", parts[0], name, tok, true
	case 3:
		return parts[0], parts[1], name, tok, true
	default:
		return "", "", "", lexer.Token{}, false
	}
}

// tryParseTupleHeader speculatively recognizes `[a, b, ...] =` tuple
// destructuring. Restores the cursor and returns ok=false on
// mismatch, including when '[' instead begins an array-literal expression
// statement.
func (p *Parser) tryParseTupleHeader() ([]string, bool) {
	save := p.pos
	savedErrs := len(p.errors)
	restore := func() {
		p.pos = save
		p.errors = p.errors[:savedErrs]
	}

	p.advance() // '['
	var names []string
	for {
		if !p.isKind(lexer.IDENT) {
			restore()
			return nil, false
		}
		names = append(names, p.advance().Lexeme)
		if p.accept2(lexer.COMMA) {
			continue
		}
		break
	}
	if !p.isKind(lexer.RBRACKET) {
		restore()
		return nil, false
	}
	p.advance()
	if !p.isOperator("=") {
		restore()
		return nil, false
	}
	p.advance()
	return names, true
}

// matchesFunctionDefAhead reports whether the tokens starting at the
// cursor form a function definition header: either `IDENT '(' ... ')'
// '=>'` (untyped/inferred return) or `IDENT IDENT '(' ... ')' '=>'` (an
// explicit leading return-type name before the function name). Lookahead
// only, no cursor mutation, so it is safe to call before committing to a
// parse path.
func (p *Parser) matchesFunctionDefAhead() bool {
	if p.cur().Kind != lexer.IDENT {
		return false
	}
	parenOffset := 1
	if p.peek(1).Kind == lexer.IDENT && p.peek(2).Kind == lexer.LPAREN {
		parenOffset = 2
	} else if p.peek(1).Kind != lexer.LPAREN {
		return false
	}
	depth := 0
	for i := parenOffset; i < 4096; i++ {
		tok := p.peek(i)
		if tok.Kind == lexer.EOF {
			return false
		}
		if tok.Kind == lexer.LPAREN {
			depth++
		}
		if tok.Kind == lexer.RPAREN {
			depth--
			if depth == 0 {
				next := p.peek(i + 1)
				return next.Kind == lexer.OPERATOR && next.Lexeme == "=>"
			}
		}
	}
	return false
}

func (p *Parser) parseFunctionDef(exported, method bool) *ast.FunctionDef {
	returnType := ""
	if p.cur().Kind == lexer.IDENT && p.peek(1).Kind == lexer.IDENT && p.peek(2).Kind == lexer.LPAREN {
		returnType = p.advance().Lexeme
	}

	tok := p.cur()
	name, ok := p.expect(lexer.IDENT, "function name")
	if !ok {
		return &ast.FunctionDef{Token: tok, Exported: exported, IsMethod: method, ReturnType: returnType}
	}
	def := &ast.FunctionDef{Token: name, Name: name.Lexeme, Exported: exported, IsMethod: method, ReturnType: returnType}

	p.expect(lexer.LPAREN, "'(' after function name")
	if !p.isKind(lexer.RPAREN) {
		for {
			def.Params = append(def.Params, p.parseParam())
			if !p.accept2(lexer.COMMA) {
				break
			}
		}
	}
	p.expect(lexer.RPAREN, "')'")
	p.expectOperator("=>")

	if p.isKind(lexer.NEWLINE) {
		def.Body = p.parseBlock()
	} else {
		def.InlineBody = p.parseExpression()
	}
	return def
}

// parseParam parses one function parameter: an optional type-hint
// identifier followed by the parameter name, and an optional default
// value, distinguished with the same bounded-lookahead trick as var decls.
func (p *Parser) parseParam() ast.Param {
	count := 0
	for p.peek(count).Kind == lexer.IDENT && count < 2 {
		count++
	}
	if count == 0 {
		p.addError("expected parameter name", p.cur().Pos)
		return ast.Param{}
	}
	parts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		parts = append(parts, p.advance().Lexeme)
	}
	param := ast.Param{Name: parts[len(parts)-1]}
	if len(parts) == 2 {
		param.Type = parts[0]
	}
	if p.isOperator("=") {
		p.advance()
		param.Default = p.parseExpression()
	}
	return param
}
