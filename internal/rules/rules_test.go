package rules

import (
	"testing"

	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/diag"
	"github.com/cwbudde/pineql/internal/lexer"
	"github.com/cwbudde/pineql/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, lexErrs := lexer.Lex(src)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	prog, parseErrs := parser.ParseProgram(tokens)
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	return prog
}

func codes(ds []diag.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

func contains(codes []string, want string) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}

func TestCheckVersionPresentMissing(t *testing.T) {
	src := "x = 1\n"
	prog := mustParse(t, src)
	sink := diag.NewSink("t.pine")
	CheckVersionPresent(src, prog, sink)
	if !contains(codes(sink.Diagnostics()), "R001") {
		t.Fatalf("expected R001, got %v", codes(sink.Diagnostics()))
	}
}

func TestCheckVersionPresentOK(t *testing.T) {
	src := "//@version=5\nx = 1\n"
	prog := mustParse(t, src)
	sink := diag.NewSink("t.pine")
	CheckVersionPresent(src, prog, sink)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("expected no diagnostics, got %v", sink.Diagnostics())
	}
}

func TestCheckVersionSupported(t *testing.T) {
	src := "//@version=5\nx = 1\n"
	prog := mustParse(t, src)
	sink := diag.NewSink("t.pine")
	CheckVersionSupported(src, prog, sink)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("expected version 5 to be supported, got %v", sink.Diagnostics())
	}
}

func TestCheckVersionUnsupported(t *testing.T) {
	src := "//@version=99\nx = 1\n"
	prog := mustParse(t, src)
	sink := diag.NewSink("t.pine")
	CheckVersionSupported(src, prog, sink)
	if !contains(codes(sink.Diagnostics()), "R003") {
		t.Fatalf("expected R003, got %v", codes(sink.Diagnostics()))
	}
}

func TestCheckSuspiciousPatterns(t *testing.T) {
	src := `//@version=5
x = "fine"
import os
y = eval("1 + 1")
`
	prog := mustParse(t, src)
	sink := diag.NewSink("t.pine")
	CheckSuspiciousPatterns(src, prog, sink)
	ds := sink.Diagnostics()
	if len(ds) != 2 {
		t.Fatalf("expected exactly two SEC01 findings, got %v", ds)
	}
	for _, d := range ds {
		if d.Code != "SEC01" {
			t.Fatalf("expected SEC01, got %s", d.Code)
		}
	}
	if ds[0].Line != 3 || ds[1].Line != 4 {
		t.Fatalf("expected findings on lines 3 and 4, got %v", ds)
	}
}

func TestCheckSuspiciousPatternsIgnoresUnrelatedText(t *testing.T) {
	src := `//@version=5
x = "api_key: abc123"
y = "just a plain label"
`
	prog := mustParse(t, src)
	sink := diag.NewSink("t.pine")
	CheckSuspiciousPatterns(src, prog, sink)
	if len(sink.Diagnostics()) != 0 {
		t.Fatalf("expected no SEC01 findings, got %v", sink.Diagnostics())
	}
}

func TestDefaultRunsAllRulesInOrder(t *testing.T) {
	src := "x = 1\n"
	prog := mustParse(t, src)
	sink := diag.NewSink("t.pine")
	Run(Default(), src, prog, sink)
	if !contains(codes(sink.Diagnostics()), "R001") {
		t.Fatalf("expected R001 from the default rule set, got %v", codes(sink.Diagnostics()))
	}
}
