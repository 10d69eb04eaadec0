// Package rules runs the ordered, independent checks that don't
// belong to lexing, parsing, or scope/type resolution: version-directive
// presence and validity, and suspicious-pattern
// heuristics. Grounded on go-dws's HintsLevel split observed across
// fixture_test.go, generalized from an on/off hint level to an ordered
// list of independent rule functions over a Sink.
package rules

import (
	"strings"

	"github.com/cwbudde/pineql/internal/ast"
	"github.com/cwbudde/pineql/internal/diag"
)

// allowedVersions enumerates the pine script versions R003 accepts.
var allowedVersions = map[int]bool{4: true, 5: true, 6: true}

// Rule is one independent, side-effecting check. It receives the raw
// source text alongside the parsed tree so rules that must scan lines
// directly (SEC01) can run without depending on what did or didn't
// parse.
type Rule func(source string, prog *ast.Program, sink *diag.Sink)

// Default returns the rule list in execution order: version checks
// first, then content heuristics.
func Default() []Rule {
	return []Rule{
		CheckVersionPresent,
		CheckVersionSupported,
		CheckSuspiciousPatterns,
	}
}

// Run executes every rule in order against prog, recording findings in
// sink.
func Run(rules []Rule, source string, prog *ast.Program, sink *diag.Sink) {
	for _, r := range rules {
		r(source, prog, sink)
	}
}

func findVersionDecl(prog *ast.Program) (*ast.VersionDecl, bool) {
	for _, stmt := range prog.Statements {
		if v, ok := stmt.(*ast.VersionDecl); ok {
			return v, true
		}
	}
	return nil, false
}

// CheckVersionPresent implements R001: it reports a script that has no
// `//@version=N` directive. Where the directive sits in the file is not
// checked.
func CheckVersionPresent(source string, prog *ast.Program, sink *diag.Sink) {
	if _, ok := findVersionDecl(prog); ok {
		return
	}
	line, col := 1, 1
	if len(prog.Statements) > 0 {
		line, col = prog.Statements[0].Pos().Line, prog.Statements[0].Pos().Column
	}
	sink.Add(diag.Diagnostic{
		Severity:   diag.Error,
		Code:       "R001",
		Message:    "missing //@version= directive",
		Line:       line,
		Column:     col,
		Suggestion: "add //@version=5 (or 4, or 6) as the first line",
	})
}

// CheckVersionSupported implements R003: the declared version must be one
// this analyzer understands.
func CheckVersionSupported(source string, prog *ast.Program, sink *diag.Sink) {
	v, ok := findVersionDecl(prog)
	if !ok {
		return
	}
	if allowedVersions[v.Version] {
		return
	}
	sink.Add(diag.Diagnostic{
		Severity: diag.Error,
		Code:     "R003",
		Message:  "unsupported script version: " + v.String(),
		Line:     v.Pos().Line,
		Column:   v.Pos().Column,
	})
}

// suspiciousPatterns are the literal substrings SEC01 flags, matched
// against raw source lines rather than the parsed tree: a line like
// `exec(` is suspicious whether or not it parses, and a script that
// fails to parse should still be scanned for it.
var suspiciousPatterns = []string{"import os", "import sys", "exec(", "eval(", "__import__"}

// CheckSuspiciousPatterns implements SEC01: a line-by-line scan of the
// raw source for text that has no business appearing in a trading
// script — host-language escape hatches that would only show up if a
// script was copy-pasted from something else or doctored.
func CheckSuspiciousPatterns(source string, prog *ast.Program, sink *diag.Sink) {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		for _, pat := range suspiciousPatterns {
			if strings.Contains(line, pat) {
				sink.Add(diag.Diagnostic{
					Severity: diag.Warning,
					Code:     "SEC01",
					Message:  "suspicious pattern found: '" + pat + "'. Verify this is intended Pine Script.",
					Line:     i + 1,
					Column:   1,
				})
			}
		}
	}
}
