// Package pipeline orchestrates a transformation run: list matching files,
// enforce processing bounds before any content is read, extract and validate
// each document, and hand the surviving records to the aggregator.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-docmeta/internal/aggregate"
	"github.com/goliatone/go-docmeta/internal/document"
	"github.com/goliatone/go-docmeta/internal/frontmatter"
	"github.com/goliatone/go-docmeta/internal/logging"
	"github.com/goliatone/go-docmeta/internal/runtimeconfig"
	"github.com/goliatone/go-docmeta/internal/schema"
	"github.com/goliatone/go-docmeta/internal/validate"
	"github.com/goliatone/go-docmeta/pkg/interfaces"
)

// Service describes the transformation pipeline contract.
type Service interface {
	Transform(ctx context.Context, req TransformRequest) (*TransformResult, error)
	CollectPartItems(ctx context.Context, data *frontmatter.Data, def *schema.Definition) (*PartItems, error)
}

// TransformRequest scopes a single pipeline run. ContentDir and Pattern fall
// back to the configured pipeline defaults when empty.
type TransformRequest struct {
	ContentDir     string
	Pattern        string
	Definition     *schema.Definition
	BaseProperties map[string]any
	RequiredFields []string
	Rules          validate.Rules
}

// Diagnostic records a per-document failure. Failed documents are excluded
// from aggregation; the run itself continues.
type Diagnostic struct {
	Path    string
	Stage   string
	Message string
}

// Diagnostic stages.
const (
	StageRead     = "read"
	StageExtract  = "extract"
	StageValidate = "validate"
)

// TransformResult is the composed outcome of a pipeline run.
type TransformResult struct {
	RunID              uuid.UUID
	Data               *frontmatter.Data
	FilesMatched       int
	DocumentsProcessed int
	DocumentsFailed    int
	Diagnostics        []Diagnostic
	Warnings           []string
	Duration           time.Duration
}

// PartItems is the result of re-extracting the assembled frontmatter-part
// array into per-item records for dual-template rendering. Warnings flag
// part data that could not convert; the aggregated data itself is never
// modified by the collection.
type PartItems struct {
	Path     string
	Items    []*frontmatter.Data
	Template string
	Warnings []string
}

// Dependencies lists the collaborators required by the pipeline.
type Dependencies struct {
	Reader     interfaces.FileReader
	Lister     interfaces.FileLister
	Aggregator aggregate.Service
	Logger     interfaces.Logger
	Clock      func() time.Time
}

// NewService wires a pipeline with the provided configuration and dependencies.
func NewService(cfg runtimeconfig.Config, deps Dependencies) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &service{cfg: cfg, deps: deps}
}

type service struct {
	cfg  runtimeconfig.Config
	deps Dependencies
}

// Transform runs the full sequence. Per-document failures become diagnostics
// and exclude the document; the run aborts only on a bounds violation, a
// misconfiguration, or when no document survives.
func (s *service) Transform(ctx context.Context, req TransformRequest) (*TransformResult, error) {
	started := s.deps.Clock()

	if req.Definition == nil {
		return nil, wrapConfigurationError(ErrDefinitionRequired)
	}
	if s.deps.Lister == nil || s.deps.Reader == nil || s.deps.Aggregator == nil {
		return nil, wrapConfigurationError(fmt.Errorf("pipeline: reader, lister, and aggregator are required"))
	}

	contentDir := req.ContentDir
	if contentDir == "" {
		contentDir = s.cfg.Pipeline.ContentDir
	}
	pattern := req.Pattern
	if pattern == "" {
		pattern = s.cfg.Pipeline.Pattern
	}

	result := &TransformResult{RunID: uuid.New()}
	logger := logging.WithFields(s.deps.Logger, map[string]any{"run_id": result.RunID.String()})

	files, err := s.deps.Lister.ListFiles(ctx, contentDir, pattern)
	if err != nil {
		return nil, fmt.Errorf("pipeline: list %s/%s: %w", contentDir, pattern, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	result.FilesMatched = len(files)

	if err := s.checkBounds(files); err != nil {
		logger.Warn("pipeline.bounds.violation", "error", err)
		return nil, wrapBoundsError(err)
	}

	records := s.collectDocuments(ctx, files, req, logger, result)

	if len(records) == 0 {
		logger.Error("pipeline.documents.none_valid", "matched", len(files), "failed", result.DocumentsFailed)
		return nil, wrapAggregationError(fmt.Errorf("%w: no valid documents found", ErrNoValidDocuments))
	}

	aggregated, err := s.deps.Aggregator.Aggregate(ctx, records, req.Definition, req.BaseProperties)
	if err != nil {
		return nil, wrapAggregationError(err)
	}

	for _, ruleErr := range aggregated.RuleErrors {
		result.Warnings = append(result.Warnings, fmt.Sprintf("derivation rule skipped: %v", ruleErr))
	}

	result.Data = aggregated.Data
	result.Duration = s.deps.Clock().Sub(started)

	logger.Info("pipeline.transform.completed",
		"processed", result.DocumentsProcessed,
		"failed", result.DocumentsFailed,
		"rules_applied", aggregated.RulesApplied,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// checkBounds enforces the resource ceilings before any file content is
// read, so oversized corpora fail fast. Memory budgeting rounds each file up
// to whole memory units.
func (s *service) checkBounds(files []interfaces.FileInfo) error {
	bounds := s.cfg.Bounds

	if bounds.MaxFiles > 0 && len(files) > bounds.MaxFiles {
		return fmt.Errorf("%w: %d files matched, max files is %d", ErrBoundsExceeded, len(files), bounds.MaxFiles)
	}

	if bounds.MaxMemoryUnits > 0 {
		var units int64
		for _, file := range files {
			units += (file.Size + runtimeconfig.MemoryUnitBytes - 1) / runtimeconfig.MemoryUnitBytes
		}
		if units > bounds.MaxMemoryUnits {
			return fmt.Errorf("%w: %d memory units required, max memory units is %d", ErrBoundsExceeded, units, bounds.MaxMemoryUnits)
		}
	}

	return nil
}

func (s *service) collectDocuments(ctx context.Context, files []interfaces.FileInfo, req TransformRequest, logger interfaces.Logger, result *TransformResult) []*frontmatter.Data {
	var records []*frontmatter.Data

	for _, file := range files {
		entry := logging.WithFields(logger, map[string]any{"document_path": file.Path})

		source, err := s.deps.Reader.ReadFile(ctx, file.Path)
		if err != nil {
			entry.Warn("pipeline.document.read_failed", "error", err)
			result.fail(file.Path, StageRead, err.Error())
			continue
		}

		doc, err := document.Build(file.Path, source, file.ModTime)
		if err != nil {
			entry.Warn("pipeline.document.extract_failed", "error", err)
			result.fail(file.Path, StageExtract, err.Error())
			continue
		}

		if !doc.HasFrontmatter() {
			entry.Debug("pipeline.document.no_frontmatter")
			result.fail(file.Path, StageExtract, "document has no frontmatter block")
			continue
		}

		if report, ok := s.validateDocument(doc.Data, req); !ok {
			entry.Warn("pipeline.document.invalid", "errors", report.Errors)
			result.fail(file.Path, StageValidate, joinMessages(report.Errors))
			continue
		}

		records = append(records, doc.Data)
		result.DocumentsProcessed++
	}

	return records
}

func (s *service) validateDocument(data *frontmatter.Data, req TransformRequest) (validate.Report, bool) {
	if len(req.RequiredFields) > 0 {
		if report := validate.RequiredFields(data, req.RequiredFields); !report.Valid {
			return report, false
		}
	}
	if len(req.Rules) > 0 {
		if report := validate.AgainstRules(data, req.Rules); !report.Valid {
			return report, false
		}
	}
	return validate.Report{Valid: true}, true
}

func (r *TransformResult) fail(path, stage, message string) {
	r.DocumentsFailed++
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Path: path, Stage: stage, Message: message})
}

func joinMessages(messages []string) string {
	switch len(messages) {
	case 0:
		return "validation failed"
	case 1:
		return messages[0]
	default:
		joined := messages[0]
		for _, msg := range messages[1:] {
			joined += "; " + msg
		}
		return joined
	}
}
