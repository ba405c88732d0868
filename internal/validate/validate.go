// Package validate runs declarative rule sets against frontmatter snapshots.
// Every entry point is a pure function returning a Report; input data is
// never mutated and failures are reported, not raised.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-docmeta/internal/frontmatter"
)

// RequiredFields checks that every named field is present and non-empty. A
// field absent from the data is reported as missing; a field present but
// holding "" or null is reported as empty. The two produce distinguishable
// messages so callers can tell an authoring omission from a blank value.
func RequiredFields(data *frontmatter.Data, fields []string) Report {
	report := newReport()

	for _, field := range fields {
		value, ok := data.Get(field)
		if !ok {
			report.fail(field, CheckRequired, fmt.Sprintf("field %q is missing", field), SeverityError)
			continue
		}
		if isEmptyValue(value) {
			report.fail(field, CheckRequired, fmt.Sprintf("field %q is empty", field), SeverityError)
			continue
		}
		report.pass(field, CheckRequired)
	}

	return report
}

// FieldTypes checks each field against its expected value type. Fields
// absent from the data are skipped; mismatches name the field, the expected
// type, and the actual type.
func FieldTypes(data *frontmatter.Data, rules []TypeRule) Report {
	report := newReport()

	for _, rule := range rules {
		value, ok := data.Get(rule.Field)
		if !ok {
			continue
		}
		checkValueType(&report, rule.Field, rule.Type, value, SeverityError)
	}

	return report
}

// AgainstRules evaluates a full declarative rule set, dispatching on each
// rule's check type. Warning-severity failures are recorded without making
// the report invalid. Rules referencing absent fields are skipped.
func AgainstRules(data *frontmatter.Data, rules Rules) Report {
	report := newReport()

	for _, rule := range rules {
		value, ok := data.Get(rule.Field)
		if !ok {
			continue
		}

		switch rule.Type {
		case CheckType:
			checkValueType(&report, rule.Field, rule.ValueType, value, rule.Severity)
		case CheckFormat:
			checkFormat(&report, rule, value)
		case CheckRange:
			checkRange(&report, rule, value)
		case CheckLength:
			checkLength(&report, rule, value)
		case CheckEnum:
			checkEnum(&report, rule, value)
		case CheckPattern:
			checkPattern(&report, rule, value)
		default:
			report.fail(rule.Field, rule.Type, fmt.Sprintf("field %q has unknown check type %q", rule.Field, rule.Type), SeverityError)
		}
	}

	return report
}

func checkValueType(report *Report, field, expected string, value any, severity Severity) {
	actual := typeName(value)
	if actual == expected {
		report.pass(field, CheckType)
		return
	}
	report.fail(field, CheckType, fmt.Sprintf("field %q expected type %s, got %s", field, expected, actual), severity)
}

func checkFormat(report *Report, rule Rule, value any) {
	text, ok := value.(string)
	if !ok {
		report.fail(rule.Field, CheckFormat, fmt.Sprintf("field %q expected type string for format check, got %s", rule.Field, typeName(value)), rule.Severity)
		return
	}

	var err error
	switch rule.Format {
	case "email":
		err = validation.Validate(text, is.Email)
	case "url":
		err = validation.Validate(text, is.URL)
	case "uuid":
		err = validation.Validate(text, is.UUID)
	case "date":
		err = validateDate(text)
	default:
		report.fail(rule.Field, CheckFormat, fmt.Sprintf("field %q references unknown format %q", rule.Field, rule.Format), SeverityError)
		return
	}

	if err != nil {
		report.fail(rule.Field, CheckFormat, fmt.Sprintf("field %q must be a valid %s: %v", rule.Field, rule.Format, err), rule.Severity)
		return
	}
	report.pass(rule.Field, CheckFormat)
}

func validateDate(text string) error {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if _, err := time.Parse(layout, text); err == nil {
			return nil
		}
	}
	return fmt.Errorf("must be an ISO date")
}

func checkRange(report *Report, rule Rule, value any) {
	number, ok := toFloat(value)
	if !ok {
		report.fail(rule.Field, CheckRange, fmt.Sprintf("field %q expected type number for range check, got %s", rule.Field, typeName(value)), rule.Severity)
		return
	}

	// Bounds are inclusive on both ends.
	if rule.Min != nil && number < *rule.Min {
		report.fail(rule.Field, CheckRange, fmt.Sprintf("field %q value %v is below minimum %v", rule.Field, number, *rule.Min), rule.Severity)
		return
	}
	if rule.Max != nil && number > *rule.Max {
		report.fail(rule.Field, CheckRange, fmt.Sprintf("field %q value %v is above maximum %v", rule.Field, number, *rule.Max), rule.Severity)
		return
	}
	report.pass(rule.Field, CheckRange)
}

func checkLength(report *Report, rule Rule, value any) {
	text, ok := value.(string)
	if !ok {
		report.fail(rule.Field, CheckLength, fmt.Sprintf("field %q expected type string for length check, got %s", rule.Field, typeName(value)), rule.Severity)
		return
	}

	min, max := 0, 0
	if rule.MinLength != nil {
		min = *rule.MinLength
	}
	if rule.MaxLength != nil {
		max = *rule.MaxLength
	}

	if err := validation.Validate(text, validation.RuneLength(min, max)); err != nil {
		report.fail(rule.Field, CheckLength, fmt.Sprintf("field %q length check failed: %v", rule.Field, err), rule.Severity)
		return
	}
	report.pass(rule.Field, CheckLength)
}

func checkEnum(report *Report, rule Rule, value any) {
	for _, allowed := range rule.Enum {
		if looselyEqual(value, allowed) {
			report.pass(rule.Field, CheckEnum)
			return
		}
	}
	report.fail(rule.Field, CheckEnum, fmt.Sprintf("field %q value %v must be one of %v", rule.Field, value, rule.Enum), rule.Severity)
}

func checkPattern(report *Report, rule Rule, value any) {
	text, ok := value.(string)
	if !ok {
		report.fail(rule.Field, CheckPattern, fmt.Sprintf("field %q expected type string for pattern check, got %s", rule.Field, typeName(value)), rule.Severity)
		return
	}

	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		report.fail(rule.Field, CheckPattern, fmt.Sprintf("field %q has invalid pattern %q: %v", rule.Field, rule.Pattern, err), SeverityError)
		return
	}

	if err := validation.Validate(text, validation.Match(re)); err != nil {
		report.fail(rule.Field, CheckPattern, fmt.Sprintf("field %q must match pattern %q", rule.Field, rule.Pattern), rule.Severity)
		return
	}
	report.pass(rule.Field, CheckPattern)
}

func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	text, ok := value.(string)
	return ok && text == ""
}

// typeName maps a frontmatter value onto the declarative type vocabulary.
// Numbers cover both integer and floating decode results so a YAML integer
// and a JSON number validate identically.
func typeName(value any) string {
	switch value.(type) {
	case string:
		return TypeString
	case int64, float64:
		return TypeNumber
	case bool:
		return TypeBoolean
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case int64:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}

// looselyEqual compares values with numeric tolerance: an int64 from YAML
// equals the float64 a JSON-sourced enum carries when they are the same
// number. Containers compare structurally.
func looselyEqual(a, b any) bool {
	af, aok := numeric(a)
	bf, bok := numeric(b)
	if aok && bok {
		return af == bf
	}
	if aok != bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func numeric(value any) (float64, bool) {
	switch typed := value.(type) {
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}
