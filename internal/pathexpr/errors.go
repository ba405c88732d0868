package pathexpr

import "errors"

// ErrEmptyPath indicates an empty or whitespace-only path expression.
var ErrEmptyPath = errors.New("pathexpr: empty path")

// ErrInvalidPath indicates a path expression that violates the grammar.
// Wrapped errors carry the offending detail for diagnostics.
var ErrInvalidPath = errors.New("pathexpr: invalid path")
