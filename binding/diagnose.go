package binding

import (
	"errors"
	"fmt"

	"inspector-binding/graphpath"
	"inspector-binding/internal/common"
	"inspector-binding/internal/diagnostic"
	"inspector-binding/member"
)

// Diagnose turns a failed lookup into the one-line warning shown in place of
// the widget of field. Successful variants yield false.
func Diagnose(field string, rs ResolvedSource) (diagnostic.Diagnostic, bool) {
	switch rs := rs.(type) {
	case NotFound:
		return diagnostic.Diagnostic{
			Severity:    diagnostic.DiagnosticWarning,
			Code:        diagnostic.CodeMemberNotFound,
			Message:     fmt.Sprintf("%s source %q could not be found", rs.Want, rs.Source),
			Field:       field,
			Suggestions: rs.Suggestions,
		}, true

	case WrongShape:
		code := diagnostic.CodeShapeMismatch
		if errors.Is(rs.Err(), member.ErrArityMismatch) {
			code = diagnostic.CodeArityMismatch
		}

		var owner string
		if rs.Member.DeclaringType != nil {
			owner = common.TypeName(rs.Member.DeclaringType)
		}

		return diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticWarning,
			Code:     code,
			Message:  rs.Reason,
			Owner:    owner,
			Field:    field,
		}, true

	default:
		return diagnostic.Diagnostic{}, false
	}
}

// DiagnoseError classifies an error returned by the engine. Taxonomy errors
// become warnings; anything else is a failure of user code and an error.
func DiagnoseError(field string, err error) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticWarning,
		Message:  err.Error(),
		Field:    field,
	}

	switch {
	case errors.Is(err, graphpath.ErrPathUnresolved), errors.Is(err, graphpath.ErrInvalidPath):
		d.Code = diagnostic.CodePathUnresolved
	case errors.Is(err, member.ErrArityMismatch):
		d.Code = diagnostic.CodeArityMismatch
	case errors.Is(err, member.ErrMemberNotFound):
		d.Code = diagnostic.CodeMemberNotFound
	case errors.Is(err, member.ErrShapeMismatch):
		d.Code = diagnostic.CodeShapeMismatch
	default:
		d.Severity = diagnostic.DiagnosticError
		d.Code = diagnostic.CodeTargetFailure
	}

	return d
}
