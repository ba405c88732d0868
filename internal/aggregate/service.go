// Package aggregate combines per-document frontmatter records into one
// structure as directed by a schema definition: documents collapse into an
// array at the frontmatter-part path, derivation rules compute new fields by
// querying the assembled structure, and caller-supplied base properties are
// folded in with a deep merge.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-docmeta/internal/frontmatter"
	"github.com/goliatone/go-docmeta/internal/logging"
	"github.com/goliatone/go-docmeta/internal/pathexpr"
	"github.com/goliatone/go-docmeta/internal/runtimeconfig"
	"github.com/goliatone/go-docmeta/internal/schema"
	"github.com/goliatone/go-docmeta/pkg/interfaces"
)

// Service describes the aggregation contract.
type Service interface {
	Aggregate(ctx context.Context, docs []*frontmatter.Data, def *schema.Definition, base map[string]any) (*Result, error)
}

// Result is the outcome of an aggregation run. RuleErrors carries per-rule
// derivation failures; they never abort the run, so callers that want them
// visible must read them from here.
type Result struct {
	Data         *frontmatter.Data
	RulesApplied int
	RulesFailed  int
	RuleErrors   []error
}

// Option configures the aggregation service.
type Option func(*service)

// WithLogger injects the logger used for per-rule diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds an aggregation service bound to the supplied processing
// bounds. Only MaxDerivedFields is enforced here; file-level bounds belong
// to the pipeline.
func NewService(bounds runtimeconfig.ProcessingBounds, opts ...Option) Service {
	s := &service{
		maxDerived: bounds.MaxDerivedFields,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type service struct {
	maxDerived int
	logger     interfaces.Logger
}

// Aggregate runs the linear aggregation sequence. Without a frontmatter-part
// path the documents union shallowly, last document winning on key
// collisions. With one, each document becomes one element of an array placed
// at that path, intermediate containers created as needed; an empty document
// set still places an empty array. Derivation rules then query the assembled
// structure, and base properties deep-merge underneath the result.
func (s *service) Aggregate(ctx context.Context, docs []*frontmatter.Data, def *schema.Definition, base map[string]any) (*Result, error) {
	if def == nil {
		return nil, ErrNilDefinition
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assembled, err := s.assemble(docs, def)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if err := s.derive(assembled, def, result); err != nil {
		return nil, err
	}

	if len(base) > 0 {
		assembled = deepMerge(base, assembled)
	}

	data, err := frontmatter.New(assembled)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}

	result.Data = data
	return result, nil
}

func (s *service) assemble(docs []*frontmatter.Data, def *schema.Definition) (map[string]any, error) {
	partPath, err := def.FrontmatterPartPath()
	if err != nil {
		if !errors.Is(err, schema.ErrFrontmatterPartNotFound) {
			return nil, err
		}
		// No part location: the definition describes a flat result, so the
		// documents union directly.
		s.logger.Debug("aggregate.part_path.absent")
		merged := map[string]any{}
		for _, doc := range docs {
			for key, value := range doc.Fields() {
				merged[key] = value
			}
		}
		return merged, nil
	}

	entries := make([]any, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, doc.Fields())
	}

	assembled := map[string]any{}
	if err := setPath(assembled, partPath, entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMergeFailed, err)
	}

	s.logger.Debug("aggregate.part_path.placed", "path", partPath, "documents", len(entries))
	return assembled, nil
}

func (s *service) derive(assembled map[string]any, def *schema.Definition, result *Result) error {
	conv, err := def.DerivationRules()
	if err != nil {
		return err
	}

	result.RulesFailed = conv.Failed
	result.RuleErrors = append(result.RuleErrors, conv.Errors...)

	if s.maxDerived > 0 && len(conv.Rules) > s.maxDerived {
		return fmt.Errorf("%w: definition declares %d derivation rules, bound is %d",
			ErrDerivedFieldsExceeded, len(conv.Rules), s.maxDerived)
	}

	for _, rule := range conv.Rules {
		expr, err := pathexpr.ParseQuery(rule.SourcePath)
		if err != nil {
			// Conversion already parse-checked the source path; reaching
			// this means the rule was constructed by hand.
			result.RulesFailed++
			result.RuleErrors = append(result.RuleErrors, fmt.Errorf("rule %q: %w", rule.TargetField, err))
			continue
		}

		values, resolved := evalQuery(assembled, expr)
		if !resolved {
			s.logger.Debug("aggregate.derive.unresolved", "source", rule.SourcePath, "target", rule.TargetField)
			continue
		}

		var derived any
		if expr.HasWildcard() {
			if rule.Unique {
				values = dedupe(values)
			}
			derived = values
		} else {
			derived = values[0]
		}

		if err := setPath(assembled, rule.TargetField, derived); err != nil {
			return fmt.Errorf("%w: %v", ErrMergeFailed, err)
		}
		result.RulesApplied++
	}

	return nil
}
