package lexer

import "testing"

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []Token, want []TokenKind) {
	t.Helper()
	gotKinds := kinds(got)
	if len(gotKinds) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", gotKinds, want)
	}
	for i := range want {
		if gotKinds[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (full: %v)", i, gotKinds[i], want[i], gotKinds)
		}
	}
}

func TestLexSimpleAssignment(t *testing.T) {
	tokens, errs := Lex("x = 1\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, tokens, []TokenKind{IDENT, OPERATOR, INT, NEWLINE, EOF})
}

func TestLexVersionDirective(t *testing.T) {
	tokens, errs := Lex("//@version=5\nx = 1\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Kind != VERSION {
		t.Fatalf("expected first token VERSION, got %s", tokens[0].Kind)
	}
	if tokens[0].Lexeme != "5" {
		t.Fatalf("expected version lexeme '5', got %q", tokens[0].Lexeme)
	}
}

func TestLexVersionDirectiveMissingDigits(t *testing.T) {
	_, errs := Lex("//@version=\n")
	if len(errs) == 0 {
		t.Fatalf("expected a lex error for missing version digits")
	}
	if errs[0].Code != "E_LEX" {
		t.Fatalf("expected E_LEX, got %s", errs[0].Code)
	}
}

func TestLexOrdinaryCommentDiscarded(t *testing.T) {
	tokens, errs := Lex("// just a comment\nx = 1\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, tokens, []TokenKind{NEWLINE, IDENT, OPERATOR, INT, NEWLINE, EOF})
}

func TestLexIndentDedent(t *testing.T) {
	src := "if x\n    y = 1\n    z = 2\nw = 3\n"
	tokens, errs := Lex(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, tokens, []TokenKind{
		KEYWORD, IDENT, NEWLINE,
		INDENT,
		IDENT, OPERATOR, INT, NEWLINE,
		IDENT, OPERATOR, INT, NEWLINE,
		DEDENT,
		IDENT, OPERATOR, INT, NEWLINE,
		EOF,
	})
}

func TestLexNestedIndentDedentAtEOF(t *testing.T) {
	src := "if x\n    if y\n        z = 1\n"
	tokens, errs := Lex(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// Both nested blocks must be closed by synthetic DEDENTs at EOF.
	last := tokens[len(tokens)-1]
	if last.Kind != EOF {
		t.Fatalf("expected stream to end in EOF, got %s", last.Kind)
	}
	dedents := 0
	for _, tok := range tokens {
		if tok.Kind == DEDENT {
			dedents++
		}
	}
	if dedents != 2 {
		t.Fatalf("expected 2 DEDENTs, got %d", dedents)
	}
}

func TestLexMismatchedUnindentIsFatal(t *testing.T) {
	src := "if x\n    y = 1\n  z = 2\n"
	_, errs := Lex(src)
	if len(errs) == 0 {
		t.Fatalf("expected a lex error for mismatched unindent")
	}
	if errs[0].Code != "E_INDENT" {
		t.Fatalf("expected E_INDENT, got %s", errs[0].Code)
	}
}

func TestLexBracketsSuppressNewlines(t *testing.T) {
	src := "f(1,\n2)\n"
	tokens, errs := Lex(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, tokens, []TokenKind{
		IDENT, LPAREN, INT, COMMA, INT, RPAREN, NEWLINE, EOF,
	})
}

func TestLexStringLiterals(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
	}{
		{"single quoted", `'hello'`, "hello"},
		{"double quoted", `"world"`, "world"},
		{"empty", `''`, ""},
		{"escaped quote", `'it\'s'`, `it\'s`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Lex(tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if tokens[0].Kind != STRING {
				t.Fatalf("expected STRING, got %s", tokens[0].Kind)
			}
			if tokens[0].Lexeme != tt.literal {
				t.Fatalf("expected literal %q, got %q", tt.literal, tokens[0].Lexeme)
			}
		})
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, errs := Lex("'unterminated")
	if len(errs) == 0 {
		t.Fatalf("expected an unterminated-string error")
	}
	if errs[0].Code != "E_LEX" {
		t.Fatalf("expected E_LEX, got %s", errs[0].Code)
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"42", INT},
		{"3.14", FLOAT},
		{".5", FLOAT},
		{"1e10", FLOAT},
		{"1.5e-3", FLOAT},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, errs := Lex(tt.input)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if tokens[0].Kind != tt.kind {
				t.Fatalf("expected %s, got %s", tt.kind, tokens[0].Kind)
			}
			if tokens[0].Lexeme != tt.input {
				t.Fatalf("expected lexeme %q, got %q", tt.input, tokens[0].Lexeme)
			}
		})
	}
}

func TestLexHexColor(t *testing.T) {
	tokens, errs := Lex("#FF0000\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Kind != COLOR {
		t.Fatalf("expected COLOR, got %s", tokens[0].Kind)
	}
}

func TestLexKeywordsAreCaseSensitive(t *testing.T) {
	tokens, _ := Lex("If\n")
	if tokens[0].Kind != IDENT {
		t.Fatalf("expected 'If' (capitalized) to lex as IDENT, got %s", tokens[0].Kind)
	}
	tokens, _ = Lex("if\n")
	if tokens[0].Kind != KEYWORD {
		t.Fatalf("expected 'if' to lex as KEYWORD, got %s", tokens[0].Kind)
	}
}

func TestLexMultiCharOperators(t *testing.T) {
	tokens, errs := Lex("a == b != c <= d >= e := f => g\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var ops []string
	for _, tok := range tokens {
		if tok.Kind == OPERATOR {
			ops = append(ops, tok.Lexeme)
		}
	}
	want := []string{"==", "!=", "<=", ">=", ":=", "=>"}
	if len(ops) != len(want) {
		t.Fatalf("got operators %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("operator %d: got %q, want %q", i, ops[i], want[i])
		}
	}
}

func TestLexIllegalCharacter(t *testing.T) {
	_, errs := Lex("x = `\n")
	if len(errs) == 0 {
		t.Fatalf("expected an illegal-character error")
	}
	if errs[0].Code != "E_LEX" {
		t.Fatalf("expected E_LEX, got %s", errs[0].Code)
	}
}
