package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/pineql/internal/errors"
	"github.com/cwbudde/pineql/internal/report"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestAnalyzerFixtures runs every .pine script under testdata/fixtures
// through the full pipeline and snapshots the rendered diagnostic report
// with go-snaps, one category of subtests per directory (mirrors go-dws's
// TestDWScriptFixtures: categorized table + filepath.Glob + snaps.MatchSnapshot,
// adapted from an execute-and-compare-output harness to a pure
// analyze-and-snapshot-the-report harness since pineql never runs a script).
func TestAnalyzerFixtures(t *testing.T) {
	categories := []struct {
		name        string
		description string
	}{
		{"VersionDirective", "//@version= presence and range checks"},
		{"Declarations", "bare, typed, qualified, and tuple var-decl forms"},
		{"Scoping", "shadowing and unused-variable detection"},
		{"TypeLattice", "const/input/simple/series widening and mismatches"},
		{"ControlFlow", "for/while loops with persistent accumulators"},
		{"Switch", "subject and bare switch expressions"},
		{"GenericCalls", "generic-call type-argument syntax"},
		{"Builtins", "built-in catalog function and variable signatures"},
		{"ErrorRecovery", "parser synchronization and lexer fatal-stop"},
	}

	totalTests := 0
	for _, category := range categories {
		t.Run(category.name, func(t *testing.T) {
			dir := filepath.Join("..", "..", "testdata", "fixtures", category.name)
			files, err := filepath.Glob(filepath.Join(dir, "*.pine"))
			if err != nil {
				t.Fatalf("glob %s: %v", dir, err)
			}
			if len(files) == 0 {
				t.Skipf("no .pine files found in %s", dir)
				return
			}

			for _, path := range files {
				testName := strings.TrimSuffix(filepath.Base(path), ".pine")
				totalTests++
				t.Run(testName, func(t *testing.T) {
					runFixture(t, path)
				})
			}
		})
	}

	t.Logf("ran %d fixture scripts across %d categories", totalTests, len(categories))
}

func runFixture(t *testing.T, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	res, err := Analyze(string(source), filepath.Base(path))
	if err != nil {
		t.Fatalf("analyze %s: %v", path, err)
	}

	renderer := errors.NewRenderer(filepath.Base(path))
	rendered := report.Text(res.Sink, renderer, false)

	snaps.MatchSnapshot(t, fmt.Sprintf("%s_report", fixtureName(path)), rendered)
}

func fixtureName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".pine")
}
