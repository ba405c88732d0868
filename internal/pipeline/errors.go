package pipeline

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// ErrBoundsExceeded indicates the file set failed the processing-bounds
// pre-check. The check runs before any file content is read.
var ErrBoundsExceeded = errors.New("pipeline: processing bounds exceeded")

// ErrNoValidDocuments indicates every matched document failed extraction or
// validation, or the pattern matched nothing.
var ErrNoValidDocuments = errors.New("pipeline: no valid documents found")

// ErrDefinitionRequired indicates a transform request without a schema
// definition.
var ErrDefinitionRequired = errors.New("pipeline: schema definition is required")

const (
	codeBoundsViolation    = "MEMORY_BOUNDS_VIOLATION"
	codeAggregationFailed  = "AGGREGATION_FAILED"
	codeConfigurationError = "CONFIGURATION_ERROR"
)

func wrapBoundsError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "processing bounds exceeded").
		WithTextCode(codeBoundsViolation)
}

func wrapAggregationError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryCommand, "aggregation failed").
		WithTextCode(codeAggregationFailed)
}

func wrapConfigurationError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "pipeline misconfigured").
		WithTextCode(codeConfigurationError)
}
