package parser

import "github.com/cwbudde/pineql/internal/lexer"

// synchronize implements panic-mode error recovery: after a
// parse error, discard tokens up to the next NEWLINE, DEDENT or EOF,
// whichever comes first, leaving that token for the caller to consume.
// Grounded on go-dws's internal/parser/error_recovery.go
// synchronization-set approach, re-keyed from DWScript's statement-closer
// keywords (end, until, ...) to this grammar's line-oriented NEWLINE.
func (p *Parser) synchronize() {
	for {
		switch p.cur().Kind {
		case lexer.NEWLINE, lexer.DEDENT, lexer.EOF:
			return
		}
		p.advance()
	}
}
