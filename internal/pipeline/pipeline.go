// Package pipeline wires the lexer, parser, semantic analyzer, and rule
// engine into a single entry point: one Analyze call per file, producing
// a Report. Each pipeline.Analyze call
// constructs its own Sink and SymbolTable chain, so concurrent callers
// sharing only the process-global catalog.Default() catalog (read-only)
// never interfere with each other.
package pipeline

import (
	"fmt"

	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/catalog"
	"github.com/cwbudde/pineql/internal/config"
	"github.com/cwbudde/pineql/internal/diag"
	"github.com/cwbudde/pineql/internal/lexer"
	"github.com/cwbudde/pineql/internal/parser"
	"github.com/cwbudde/pineql/internal/report"
	"github.com/cwbudde/pineql/internal/rules"
	"github.com/cwbudde/pineql/internal/semantic"
)

// Result is everything a caller might want out of one Analyze call: the
// rendered Report, the raw Sink it was built from (for custom rendering),
// and the parsed tree (nil if lexing failed outright).
type Result struct {
	Report  *report.Report
	Sink    *diag.Sink
	Program *ast.Program
}

// Analyze runs the full pipeline over source: lex, parse,
// resolve scopes/types, run the rule engine, then assemble a Report.
// Lexing is fatal-stop: a lex error halts the pipeline
// before parsing, since the token stream past that point is unreliable.
func Analyze(source, filename string, opts ...config.Option) (res *Result, err error) {
	cfg := config.New(opts...)
	sink := diag.NewSink(filename)

	defer func() {
		if r := recover(); r != nil {
			sink.Add(diag.Diagnostic{
				Severity: diag.Error,
				Code:     "E999",
				Message:  fmt.Sprintf("internal error: %v", r),
			})
			res = &Result{Report: buildFiltered(sink, cfg), Sink: sink}
		}
	}()

	tokens, lexErrs := lexer.Lex(source)
	for _, le := range lexErrs {
		sink.Add(diag.Diagnostic{Severity: diag.Error, Code: le.Code, Message: le.Message, Line: le.Pos.Line, Column: le.Pos.Column})
	}
	if len(lexErrs) > 0 {
		return &Result{Report: buildFiltered(sink, cfg), Sink: sink}, nil
	}

	prog, parseErrs := parser.ParseProgram(tokens)
	for _, pe := range parseErrs {
		sink.Add(diag.Diagnostic{Severity: diag.Error, Code: "E002", Message: pe.Message, Line: pe.Pos.Line, Column: pe.Pos.Column})
	}

	cat, catErr := catalog.Default()
	if catErr != nil {
		return nil, fmt.Errorf("pipeline: load built-in catalog: %w", catErr)
	}

	analyzer := semantic.New(cat, sink)
	analyzer.Analyze(prog)

	rules.Run(rules.Default(), source, prog, sink)

	return &Result{Report: buildFiltered(sink, cfg), Sink: sink, Program: prog}, nil
}

func buildFiltered(sink *diag.Sink, cfg *config.Config) *report.Report {
	rep := report.Build(sink)
	if len(cfg.DisabledRules) == 0 {
		return rep
	}
	kept := rep.Diagnostics[:0:0]
	errCount, warnCount := 0, 0
	for _, d := range rep.Diagnostics {
		if cfg.DisabledRules[d.Code] {
			continue
		}
		kept = append(kept, d)
		switch d.Severity {
		case "error":
			errCount++
		case "warning":
			warnCount++
		}
	}
	return &report.Report{Valid: errCount == 0, ErrorCount: errCount, WarningCount: warnCount, Diagnostics: kept}
}
