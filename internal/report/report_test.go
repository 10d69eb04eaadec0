package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cwbudde/pineql/internal/diag"
	"github.com/cwbudde/pineql/internal/errors"
)

func TestBuildSortsByLineColumnCode(t *testing.T) {
	sink := diag.NewSink("t.pine")
	sink.Errorf("R200", 5, 3, "second line")
	sink.Errorf("E002", 1, 1, "first line")
	sink.Errorf("R003", 1, 1, "tie on position, sorted by code")

	rep := Build(sink)
	if len(rep.Diagnostics) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(rep.Diagnostics))
	}
	if rep.Diagnostics[0].Code != "E002" || rep.Diagnostics[1].Code != "R003" || rep.Diagnostics[2].Code != "R200" {
		t.Fatalf("unexpected sort order: %v", rep.Diagnostics)
	}
}

func TestBuildValidWithOnlyWarnings(t *testing.T) {
	sink := diag.NewSink("t.pine")
	sink.Warnf("W002", 1, 1, "unused variable", "")

	rep := Build(sink)
	if !rep.Valid {
		t.Errorf("expected Valid=true when only warnings are present")
	}
	if rep.ErrorCount != 0 || rep.WarningCount != 1 {
		t.Errorf("expected 0 errors, 1 warning, got %d/%d", rep.ErrorCount, rep.WarningCount)
	}
}

func TestBuildInvalidWithErrors(t *testing.T) {
	sink := diag.NewSink("t.pine")
	sink.Errorf("R200", 1, 1, "undefined")

	rep := Build(sink)
	if rep.Valid {
		t.Errorf("expected Valid=false when an error diagnostic is present")
	}
}

func TestJSONRoundTrips(t *testing.T) {
	sink := diag.NewSink("t.pine")
	sink.Errorf("R200", 2, 4, "undefined identifier 'x'")

	rep := Build(sink)
	out, err := rep.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}
	if decoded.ErrorCount != 1 || len(decoded.Diagnostics) != 1 {
		t.Fatalf("decoded report mismatch: %+v", decoded)
	}
}

func TestTextIncludesSummaryLine(t *testing.T) {
	sink := diag.NewSink("t.pine")
	sink.Errorf("R201", 1, 1, "undefined identifier 'x'")

	renderer := errors.NewRenderer("t.pine")
	out := Text(sink, renderer, false)

	if !strings.Contains(out, "Found 1 errors, 0 warnings.") {
		t.Errorf("expected a summary line, got:\n%s", out)
	}
	if !strings.Contains(out, "R201") {
		t.Errorf("expected the diagnostic code in the rendered text, got:\n%s", out)
	}
	if !strings.Contains(out, "t.pine:1:1: ERROR[R201]: undefined identifier 'x'") {
		t.Errorf("expected the exact path:line:col: SEVERITY[CODE]: message line, got:\n%s", out)
	}
}

func TestTextOKWhenNoErrors(t *testing.T) {
	sink := diag.NewSink("t.pine")
	renderer := errors.NewRenderer("t.pine")
	out := Text(sink, renderer, false)
	if !strings.Contains(out, "Found 0 errors, 0 warnings.") {
		t.Errorf("expected a zero-count summary line, got:\n%s", out)
	}
}
