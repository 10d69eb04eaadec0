// Package report renders a finished diagnostic list as the CLI/JSON
// contract, grounded on stdlib encoding/json as go-dws's own
// structured-data boundary (see DESIGN.md: internal/catalog makes the
// same choice for the built-in table).
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/pineql/internal/diag"
	"github.com/cwbudde/pineql/internal/errors"
)

// Location is a diagnostic's nested position within the JSON contract.
type Location struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	File   string `json:"file,omitempty"`
}

// Diagnostic is the JSON-facing shape of a diag.Diagnostic.
type Diagnostic struct {
	Severity   string   `json:"severity"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Location   Location `json:"location"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Report is the full analysis result for one file.
type Report struct {
	Valid        bool         `json:"valid"`
	ErrorCount   int          `json:"error_count"`
	WarningCount int          `json:"warning_count"`
	Diagnostics  []Diagnostic `json:"diagnostics"`
}

// Build assembles a Report from a Sink's diagnostics, sorted by
// (line, column, code) for stable output.
func Build(sink *diag.Sink) *Report {
	ds := append([]diag.Diagnostic(nil), sink.Diagnostics()...)
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Line != ds[j].Line {
			return ds[i].Line < ds[j].Line
		}
		if ds[i].Column != ds[j].Column {
			return ds[i].Column < ds[j].Column
		}
		return ds[i].Code < ds[j].Code
	})

	errCount, warnCount := 0, 0
	out := make([]Diagnostic, 0, len(ds))
	for _, d := range ds {
		switch d.Severity {
		case diag.Error:
			errCount++
		case diag.Warning:
			warnCount++
		}
		out = append(out, Diagnostic{
			Severity:   d.Severity.String(),
			Code:       d.Code,
			Message:    d.Message,
			Location:   Location{Line: d.Line, Column: d.Column, File: d.File},
			Suggestion: d.Suggestion,
		})
	}
	return &Report{
		Valid:        errCount == 0,
		ErrorCount:   errCount,
		WarningCount: warnCount,
		Diagnostics:  out,
	}
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Text renders the report as one "path:line:col: SEVERITY[CODE]: message"
// line per diagnostic, followed by a final summary line reading
// "Found N errors, M warnings.".
func Text(sink *diag.Sink, renderer *errors.Renderer, color bool) string {
	rep := Build(sink)

	var sb strings.Builder
	for _, d := range rep.Diagnostics {
		diagD := diag.Diagnostic{
			Severity:   severityFromString(d.Severity),
			Code:       d.Code,
			Message:    d.Message,
			Line:       d.Location.Line,
			Column:     d.Location.Column,
			Suggestion: d.Suggestion,
		}
		sb.WriteString(renderer.Format(diagD, color))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Found %d errors, %d warnings.\n", rep.ErrorCount, rep.WarningCount))
	return sb.String()
}

func severityFromString(s string) diag.Severity {
	switch s {
	case "error":
		return diag.Error
	case "warning":
		return diag.Warning
	case "info":
		return diag.Info
	default:
		return diag.Hint
	}
}
