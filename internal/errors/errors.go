// Package errors renders diag.Diagnostics as the one-line text contract
// (`path:line:col: SEVERITY[CODE]: message`), carried over from go-dws's
// CompilerError.Format (internal/errors/errors.go) and re-keyed from a
// single fatal error to a diagnostic-list shape (severity tag, code,
// many per file, none fatal to formatting).
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/pineql/internal/diag"
)

// Renderer formats diagnostics for one named file (file may be "" for
// stdin/anonymous sources, matching go-dws's behavior).
type Renderer struct {
	File string
}

// NewRenderer creates a Renderer over file.
func NewRenderer(file string) *Renderer {
	return &Renderer{File: file}
}

// Format renders one diagnostic as a single line:
// `path:line:col: SEVERITY[CODE]: message`. If color is true, ANSI codes
// highlight the severity tag.
func (r *Renderer) Format(d diag.Diagnostic, color bool) string {
	file := r.File
	if file == "" {
		file = "<stdin>"
	}

	severity := strings.ToUpper(d.Severity.String())
	if color {
		severity = severityColor(d.Severity) + severity + "\033[0m"
	}

	return fmt.Sprintf("%s:%d:%d: %s[%s]: %s", file, d.Line, d.Column, severity, d.Code, d.Message)
}

// FormatAll renders a whole diagnostic list in emission order, one line
// per diagnostic.
func (r *Renderer) FormatAll(ds []diag.Diagnostic, color bool) string {
	if len(ds) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, d := range ds {
		sb.WriteString(r.Format(d, color))
		if i < len(ds)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func severityColor(s diag.Severity) string {
	switch s {
	case diag.Error:
		return "\033[1;31m"
	case diag.Warning:
		return "\033[1;33m"
	default:
		return "\033[1;36m"
	}
}
