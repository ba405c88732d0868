// Package docmeta extracts YAML, JSON, and TOML frontmatter from Markdown
// documents, validates it against declarative rules, aggregates it across
// documents as directed by a schema definition, and renders the result into
// JSON, YAML, or Markdown output.
package docmeta

import (
	"github.com/goliatone/go-docmeta/internal/aggregate"
	"github.com/goliatone/go-docmeta/internal/di"
	"github.com/goliatone/go-docmeta/internal/frontmatter"
	"github.com/goliatone/go-docmeta/internal/pipeline"
	"github.com/goliatone/go-docmeta/internal/render"
	"github.com/goliatone/go-docmeta/internal/schema"
	"github.com/goliatone/go-docmeta/internal/validate"
	"github.com/goliatone/go-docmeta/pkg/interfaces"
)

// PipelineService exports the transformation pipeline contract.
type PipelineService = pipeline.Service

// TransformRequest exports the pipeline request type.
type TransformRequest = pipeline.TransformRequest

// TransformResult exports the pipeline result type.
type TransformResult = pipeline.TransformResult

// AggregateService exports the aggregation service contract.
type AggregateService = aggregate.Service

// RenderService exports the template renderer contract.
type RenderService = render.Service

// RenderDescriptor exports the renderer output descriptor.
type RenderDescriptor = render.Descriptor

// Data exports the immutable frontmatter value type.
type Data = frontmatter.Data

// Extraction exports the frontmatter extraction result.
type Extraction = frontmatter.Extraction

// Definition exports the parsed schema definition type.
type Definition = schema.Definition

// ValidationReport exports the validation report type.
type ValidationReport = validate.Report

// ValidationRules exports the declarative rule set type.
type ValidationRules = validate.Rules

// Extract splits a Markdown document into frontmatter and body.
func Extract(content string) (Extraction, error) {
	return frontmatter.Extract(content)
}

// ParseDefinition decodes and loads a schema definition document.
func ParseDefinition(data []byte) (*Definition, error) {
	return schema.ParseDefinition(data)
}

// ValidateRequiredFields checks that every named field is present and non-empty.
func ValidateRequiredFields(data *Data, fields []string) ValidationReport {
	return validate.RequiredFields(data, fields)
}

// ValidateAgainstRules evaluates a declarative rule set against the data.
func ValidateAgainstRules(data *Data, rules ValidationRules) ValidationReport {
	return validate.AgainstRules(data, rules)
}

// Module is the top level docmeta runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a docmeta module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Pipeline returns the configured transformation pipeline.
func (m *Module) Pipeline() PipelineService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.PipelineService()
}

// Aggregator returns the configured aggregation service.
func (m *Module) Aggregator() AggregateService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.AggregateService()
}

// Renderer returns the configured template renderer.
func (m *Module) Renderer() RenderService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.RenderService()
}

// HTML returns the Markdown-to-HTML renderer when the HTML feature is enabled.
func (m *Module) HTML() interfaces.HTMLRenderer {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.HTMLRenderer()
}

// Logger returns a module-scoped logger from the configured provider.
func (m *Module) Logger() interfaces.LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}
