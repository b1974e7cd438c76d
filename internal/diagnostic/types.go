package diagnostic

import (
	"errors"
	"iter"
	"slices"
	"strings"

	"inspector-binding/internal/common"
)

// Codes of the resolution taxonomy.
const (
	CodePathUnresolved = "PATH_UNRESOLVED"
	CodeMemberNotFound = "MEMBER_NOT_FOUND"
	CodeShapeMismatch  = "SHAPE_MISMATCH"
	CodeArityMismatch  = "ARITY_MISMATCH"
	CodeTargetFailure  = "TARGET_FAILURE"
	CodeBadDecoration  = "BAD_DECORATION"
)

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

var severityNames = [...]string{"info", "warning", "error"}

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return common.UnknownStr
	}

	return severityNames[s]
}

// Diagnostic is one finding about a decorated field.
type Diagnostic struct {
	Severity DiagnosticSeverity
	// Code is one of the Code* constants.
	Code    string
	Message string
	// Owner names the type the lookup ran against, if known.
	Owner string
	// Field is the decorated field path, if known.
	Field       string
	Suggestions []string
}

// String renders d on one line:
// "[owner] field: [CODE] message (did you mean a, b?)".
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.Owner != "" {
		sb.WriteString("[" + d.Owner + "]")
		if d.Field != "" {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString(d.Field)
	if sb.Len() > 0 {
		sb.WriteString(": ")
	}

	if d.Code != "" {
		sb.WriteString("[" + d.Code + "] ")
	}
	sb.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		sb.WriteString(" (did you mean " + strings.Join(d.Suggestions, ", ") + "?)")
	}

	return sb.String()
}

// Error makes an error-severity Diagnostic usable as an error.
func (d Diagnostic) Error() string {
	return d.String()
}

// Diagnostics collects the findings of a pass over an object graph.
// Infos are not kept.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Add files diag by its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, owner, field string) {
	d.Add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Owner: owner, Field: field})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, owner, field string) {
	d.Add(Diagnostic{Severity: DiagnosticWarning, Code: code, Message: message, Owner: owner, Field: field})
}

// Merge appends everything other holds.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// All yields the errors, then the warnings, each in the order they were added.
func (d *Diagnostics) All() iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		for _, diag := range slices.Concat(d.Errors, d.Warnings) {
			if !yield(diag) {
				return
			}
		}
	}
}

// HasErrors reports whether any error was added.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid is the negation of HasErrors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error joins the error diagnostics, or returns nil when there are none.
// Each joined error is a Diagnostic.
func (d *Diagnostics) Error() error {
	errs := make([]error, len(d.Errors))
	for i, diag := range d.Errors {
		errs[i] = diag
	}

	return errors.Join(errs...)
}
