package frontmatter

import "errors"

// ErrNotObject indicates a top-level frontmatter value that is not a
// key/value mapping (arrays, scalars, and null are rejected).
var ErrNotObject = errors.New("frontmatter: top-level value must be an object")

// ErrEmptyData indicates frontmatter that carries no fields. An empty
// fenced block is distinct from a document with no frontmatter at all,
// which extraction reports as a nil Data with no error.
var ErrEmptyData = errors.New("frontmatter: frontmatter contains no fields")

// ErrInvalidFormat indicates a structurally broken frontmatter block, such
// as an opening fence without a closing fence.
var ErrInvalidFormat = errors.New("frontmatter: invalid frontmatter format")

// ErrParse indicates frontmatter content that failed to decode in its
// detected format.
var ErrParse = errors.New("frontmatter: parse error")

// ErrFieldRequired indicates an operation that needs a non-empty field key.
var ErrFieldRequired = errors.New("frontmatter: field key is required")
