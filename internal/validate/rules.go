package validate

// Check identifiers dispatched by AgainstRules.
const (
	CheckRequired = "required"
	CheckType     = "type"
	CheckFormat   = "format"
	CheckRange    = "range"
	CheckLength   = "length"
	CheckEnum     = "enum"
	CheckPattern  = "pattern"
)

// Value type names accepted by type checks.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// TypeRule pins a field to an expected value type.
type TypeRule struct {
	Field string
	Type  string
}

// Rule is one declarative check against a field. Type selects the check;
// the parameter fields used depend on it. Rules referencing fields absent
// from the data are skipped, so optional fields validate cleanly.
type Rule struct {
	Field    string
	Type     string
	Severity Severity

	// ValueType is the expected type for type checks.
	ValueType string
	// Format names a string format for format checks: email, url, uuid, or date.
	Format string
	// Min and Max bound numeric values for range checks, inclusive on both ends.
	Min *float64
	Max *float64
	// MinLength and MaxLength bound string length in characters, not bytes.
	MinLength *int
	MaxLength *int
	// Enum lists the allowed values for enum checks.
	Enum []any
	// Pattern is an RE2 expression for pattern checks.
	Pattern string
}

// Rules is the rule set consumed by AgainstRules.
type Rules []Rule
