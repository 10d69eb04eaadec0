package lexer

// keywords is the reserved-word set. Operator words
// (and, or, not) are keywords too, not identifiers, so they never reach
// the Pratt parser as IDENT tokens.
var keywords = map[string]struct{}{
	"and": {}, "or": {}, "not": {},
	"if": {}, "else": {}, "for": {}, "while": {}, "switch": {},
	"break": {}, "continue": {}, "to": {}, "by": {}, "in": {},
	"var": {}, "varip": {}, "type": {}, "method": {}, "export": {}, "import": {},
	"true": {}, "false": {}, "na": {},
	"indicator": {}, "strategy": {}, "library": {},
}

// LookupIdent returns KEYWORD if literal is reserved, else IDENT.
func LookupIdent(literal string) TokenKind {
	if _, ok := keywords[literal]; ok {
		return KEYWORD
	}
	return IDENT
}
