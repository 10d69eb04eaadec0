package parser

import (
	"fmt"

	"github.com/cwbudde/pineql/internal/lexer"
)

// ParseError is a single recorded parse failure. The parser
// never stops at the first one: it records a ParseError and resynchronizes,
// since multiple parse errors per file are normal.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}
