package validate

// Severity classifies how a failed check affects the overall verdict. Only
// error-severity failures flip a report to invalid; warnings are recorded
// without failing validation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// FieldResult records the outcome of a single check against one field.
type FieldResult struct {
	Field    string
	Check    string
	Passed   bool
	Severity Severity
	Message  string
}

// Report is the aggregate outcome of a validation pass. It is always
// returned by value, never raised as an error: callers branch on Valid and
// inspect Errors/Warnings for messages.
type Report struct {
	Valid    bool
	Errors   []string
	Warnings []string
	Fields   []FieldResult
}

func newReport() Report {
	return Report{Valid: true}
}

func (r *Report) pass(field, check string) {
	r.Fields = append(r.Fields, FieldResult{
		Field:    field,
		Check:    check,
		Passed:   true,
		Severity: SeverityError,
	})
}

func (r *Report) fail(field, check, message string, severity Severity) {
	if severity != SeverityWarning {
		severity = SeverityError
	}

	r.Fields = append(r.Fields, FieldResult{
		Field:    field,
		Check:    check,
		Severity: severity,
		Message:  message,
	})

	if severity == SeverityWarning {
		r.Warnings = append(r.Warnings, message)
		return
	}
	r.Valid = false
	r.Errors = append(r.Errors, message)
}
