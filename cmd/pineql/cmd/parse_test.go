package cmd

import (
	"strings"
	"testing"
)

func TestRunParseCleanScriptNoOutput(t *testing.T) {
	path := withScript(t, "//@version=5\nx = 1\n")

	dumpAST = false
	out := captureStdout(t, func() {
		if err := runParse(parseCmd, []string{path}); err != nil {
			t.Fatalf("runParse() error: %v", err)
		}
	})

	if strings.TrimSpace(out) != "" {
		t.Errorf("expected no stdout output without --dump-ast, got:\n%s", out)
	}
}

func TestRunParseDumpAST(t *testing.T) {
	path := withScript(t, "//@version=5\nx = 1\n")

	dumpAST = true
	defer func() { dumpAST = false }()

	out := captureStdout(t, func() {
		if err := runParse(parseCmd, []string{path}); err != nil {
			t.Fatalf("runParse() error: %v", err)
		}
	})

	if !strings.Contains(out, "x") {
		t.Errorf("expected the dumped AST to mention the declared variable, got:\n%s", out)
	}
}

func TestRunParseReportsParseErrors(t *testing.T) {
	path := withScript(t, "//@version=5\nx = (1 +\n")

	dumpAST = false
	err := runParse(parseCmd, []string{path})
	if err == nil {
		t.Fatalf("expected an error for a malformed expression")
	}
}

func TestRunParseAbortsOnLexError(t *testing.T) {
	path := withScript(t, "x = \"unterminated\n")

	dumpAST = false
	err := runParse(parseCmd, []string{path})
	if err == nil {
		t.Fatalf("expected an error when lexing fails before parsing")
	}
}
