package validate_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-docmeta/internal/frontmatter"
	"github.com/goliatone/go-docmeta/internal/validate"
)

func testData(tb testing.TB, fields map[string]any) *frontmatter.Data {
	tb.Helper()
	data, err := frontmatter.New(fields)
	if err != nil {
		tb.Fatalf("building test data: %v", err)
	}
	return data
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestRequiredFields_MissingAndEmptyAreDistinct(t *testing.T) {
	data := testData(t, map[string]any{
		"title":   "Guide",
		"summary": "",
		"author":  nil,
	})

	report := validate.RequiredFields(data, []string{"title", "summary", "author", "category"})

	if report.Valid {
		t.Fatalf("expected report to be invalid")
	}
	if len(report.Errors) != 3 {
		t.Fatalf("expected three errors, got %v", report.Errors)
	}

	assertMessage(t, report.Errors, "category", "missing")
	assertMessage(t, report.Errors, "summary", "empty")
	assertMessage(t, report.Errors, "author", "empty")

	for _, msg := range report.Errors {
		if strings.Contains(msg, "category") && strings.Contains(msg, "empty") {
			t.Fatalf("missing field must not be reported as empty: %s", msg)
		}
	}
}

func TestRequiredFields_AllPresent(t *testing.T) {
	data := testData(t, map[string]any{"title": "Guide", "weight": int64(0)})

	report := validate.RequiredFields(data, []string{"title", "weight"})

	if !report.Valid || len(report.Errors) != 0 {
		t.Fatalf("expected valid report, got %+v", report)
	}
	if len(report.Fields) != 2 {
		t.Fatalf("expected per-field results, got %d", len(report.Fields))
	}
}

func TestFieldTypes_MismatchNamesBothTypes(t *testing.T) {
	data := testData(t, map[string]any{
		"title": "Guide",
		"tags":  []any{"go"},
		"count": int64(3),
	})

	report := validate.FieldTypes(data, []validate.TypeRule{
		{Field: "title", Type: validate.TypeString},
		{Field: "tags", Type: validate.TypeString},
		{Field: "count", Type: validate.TypeNumber},
		{Field: "absent", Type: validate.TypeBoolean},
	})

	if report.Valid {
		t.Fatalf("expected invalid report")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected a single error, got %v", report.Errors)
	}
	msg := report.Errors[0]
	for _, want := range []string{"tags", "string", "array"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected message to contain %q, got %s", want, msg)
		}
	}
}

func TestAgainstRules_WarningsDoNotInvalidate(t *testing.T) {
	data := testData(t, map[string]any{"summary": "ok", "weight": int64(50)})

	report := validate.AgainstRules(data, validate.Rules{
		{Field: "summary", Type: validate.CheckLength, MinLength: intPtr(5), Severity: validate.SeverityWarning},
		{Field: "weight", Type: validate.CheckRange, Min: floatPtr(0), Max: floatPtr(100)},
	})

	if !report.Valid {
		t.Fatalf("expected warnings to keep report valid, got errors %v", report.Errors)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", report.Warnings)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", report.Errors)
	}
}

func TestAgainstRules_RangeInclusiveBounds(t *testing.T) {
	rules := validate.Rules{
		{Field: "weight", Type: validate.CheckRange, Min: floatPtr(1), Max: floatPtr(10)},
	}

	for _, tc := range []struct {
		value int64
		valid bool
	}{
		{1, true},
		{10, true},
		{0, false},
		{11, false},
	} {
		data := testData(t, map[string]any{"weight": tc.value})
		report := validate.AgainstRules(data, rules)
		if report.Valid != tc.valid {
			t.Fatalf("weight %d: expected valid=%v, got %+v", tc.value, tc.valid, report)
		}
	}
}

func TestAgainstRules_FloatAndIntBothValidateAsNumber(t *testing.T) {
	rules := validate.Rules{
		{Field: "ratio", Type: validate.CheckType, ValueType: validate.TypeNumber},
	}

	for _, value := range []any{int64(2), 2.5} {
		data := testData(t, map[string]any{"ratio": value})
		if report := validate.AgainstRules(data, rules); !report.Valid {
			t.Fatalf("value %#v: expected number type to accept it, got %v", value, report.Errors)
		}
	}
}

func TestAgainstRules_LengthCountsCharacters(t *testing.T) {
	data := testData(t, map[string]any{"title": "héllo"})

	report := validate.AgainstRules(data, validate.Rules{
		{Field: "title", Type: validate.CheckLength, MinLength: intPtr(5), MaxLength: intPtr(5)},
	})

	if !report.Valid {
		t.Fatalf("expected rune count of 5 to satisfy bounds, got %v", report.Errors)
	}
}

func TestAgainstRules_Enum(t *testing.T) {
	rules := validate.Rules{
		{Field: "status", Type: validate.CheckEnum, Enum: []any{"draft", "published"}},
	}

	data := testData(t, map[string]any{"status": "published"})
	if report := validate.AgainstRules(data, rules); !report.Valid {
		t.Fatalf("expected published to pass, got %v", report.Errors)
	}

	data = testData(t, map[string]any{"status": "archived"})
	report := validate.AgainstRules(data, rules)
	if report.Valid {
		t.Fatalf("expected archived to fail")
	}
	if !strings.Contains(report.Errors[0], "status") {
		t.Fatalf("expected message to name the field, got %s", report.Errors[0])
	}
}

func TestAgainstRules_EnumNumericTolerance(t *testing.T) {
	// Schema-sourced enums often carry float64 where YAML data carries int64.
	rules := validate.Rules{
		{Field: "level", Type: validate.CheckEnum, Enum: []any{float64(1), float64(2)}},
	}

	data := testData(t, map[string]any{"level": int64(2)})
	if report := validate.AgainstRules(data, rules); !report.Valid {
		t.Fatalf("expected int64(2) to match float64(2), got %v", report.Errors)
	}
}

func TestAgainstRules_PatternAndFormat(t *testing.T) {
	data := testData(t, map[string]any{
		"slug":    "release-notes",
		"contact": "docs@example.com",
		"link":    "https://example.com/guide",
		"id":      "8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999",
		"date":    "2024-05-01",
	})

	report := validate.AgainstRules(data, validate.Rules{
		{Field: "slug", Type: validate.CheckPattern, Pattern: `^[a-z0-9-]+$`},
		{Field: "contact", Type: validate.CheckFormat, Format: "email"},
		{Field: "link", Type: validate.CheckFormat, Format: "url"},
		{Field: "id", Type: validate.CheckFormat, Format: "uuid"},
		{Field: "date", Type: validate.CheckFormat, Format: "date"},
	})

	if !report.Valid {
		t.Fatalf("expected all checks to pass, got %v", report.Errors)
	}

	data = testData(t, map[string]any{"slug": "Release Notes!"})
	report = validate.AgainstRules(data, validate.Rules{
		{Field: "slug", Type: validate.CheckPattern, Pattern: `^[a-z0-9-]+$`},
	})
	if report.Valid {
		t.Fatalf("expected pattern mismatch to fail")
	}
}

func TestAgainstRules_SkipsAbsentFields(t *testing.T) {
	data := testData(t, map[string]any{"title": "Guide"})

	report := validate.AgainstRules(data, validate.Rules{
		{Field: "optional", Type: validate.CheckFormat, Format: "email"},
		{Field: "missing", Type: validate.CheckRange, Min: floatPtr(0)},
	})

	if !report.Valid {
		t.Fatalf("expected absent fields to be skipped, got %v", report.Errors)
	}
	if len(report.Fields) != 0 {
		t.Fatalf("expected no field results for skipped rules, got %v", report.Fields)
	}
}

func TestAgainstRules_UnknownCheckTypeFails(t *testing.T) {
	data := testData(t, map[string]any{"title": "Guide"})

	report := validate.AgainstRules(data, validate.Rules{
		{Field: "title", Type: "sorcery"},
	})

	if report.Valid {
		t.Fatalf("expected unknown check type to be an error")
	}
}

func assertMessage(tb testing.TB, messages []string, field, fragment string) {
	tb.Helper()
	for _, msg := range messages {
		if strings.Contains(msg, field) && strings.Contains(msg, fragment) {
			return
		}
	}
	tb.Fatalf("expected a message naming %q with %q, got %v", field, fragment, messages)
}
