package schema

import "errors"

// ErrDefinitionInvalid indicates a schema definition that does not conform
// to the definition dialect: wrong key types, malformed nodes, or markers
// placed where they cannot take effect.
var ErrDefinitionInvalid = errors.New("schema: definition invalid")

// ErrFrontmatterPartNotFound signals that no node in the definition carries
// the frontmatter-part marker. Callers that can aggregate without a part
// location treat this as an expected outcome, not a failure.
var ErrFrontmatterPartNotFound = errors.New("schema: frontmatter-part marker not found")

// ErrNilDefinition indicates an operation invoked on a nil definition.
var ErrNilDefinition = errors.New("schema: definition is nil")
