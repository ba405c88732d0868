package aggregate

import "errors"

// ErrMergeFailed indicates the aggregate could not be reconstructed into a
// valid frontmatter value: a placement path collided with a scalar, or the
// merged result carried no fields.
var ErrMergeFailed = errors.New("aggregate: merge failed")

// ErrDerivedFieldsExceeded indicates a definition carries more derivation
// rules than the configured processing bound allows.
var ErrDerivedFieldsExceeded = errors.New("aggregate: derived field bound exceeded")

// ErrNilDefinition indicates aggregation was invoked without a definition.
var ErrNilDefinition = errors.New("aggregate: definition is required")
