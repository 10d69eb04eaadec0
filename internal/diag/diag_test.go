package diag

import "testing"

func TestSinkDedupesExactRepeats(t *testing.T) {
	s := NewSink("script.pine")
	s.Errorf("R200", 3, 5, "undefined identifier 'x'")
	s.Errorf("R200", 3, 5, "undefined identifier 'x'")
	s.Errorf("R200", 3, 6, "undefined identifier 'y'")

	if got := len(s.Diagnostics()); got != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", got)
	}
}

func TestSinkStampsFile(t *testing.T) {
	s := NewSink("script.pine")
	s.Errorf("E002", 1, 1, "boom")
	ds := s.Diagnostics()
	if ds[0].File != "script.pine" {
		t.Errorf("expected diagnostic to be stamped with the sink's file, got %q", ds[0].File)
	}
}

func TestSinkPreservesExplicitFile(t *testing.T) {
	s := NewSink("script.pine")
	s.Add(Diagnostic{Severity: Error, Code: "E002", Message: "boom", File: "other.pine"})
	ds := s.Diagnostics()
	if ds[0].File != "other.pine" {
		t.Errorf("expected explicit File to be preserved, got %q", ds[0].File)
	}
}

func TestSinkCounts(t *testing.T) {
	s := NewSink("script.pine")
	s.Errorf("E002", 1, 1, "err1")
	s.Warnf("W002", 2, 1, "unused", "remove it")
	s.Warnf("W001", 3, 1, "shadow", "")

	errs, warns := s.Counts()
	if errs != 1 || warns != 2 {
		t.Fatalf("expected 1 error and 2 warnings, got %d errors, %d warnings", errs, warns)
	}
}

func TestSinkEmissionOrderPreserved(t *testing.T) {
	s := NewSink("script.pine")
	s.Errorf("E002", 5, 1, "first")
	s.Errorf("E002", 1, 1, "second")

	ds := s.Diagnostics()
	if ds[0].Message != "first" || ds[1].Message != "second" {
		t.Errorf("expected Diagnostics() to preserve emission order, not sort, got %v", ds)
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  Severity
		want string
	}{
		{Error, "error"},
		{Warning, "warning"},
		{Info, "info"},
		{Hint, "hint"},
	}
	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.sev, got, tt.want)
		}
	}
}
