package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-docmeta/pkg/interfaces"
)

const (
	rootModule        = "docmeta"
	frontmatterModule = "docmeta.frontmatter"
	schemaModule      = "docmeta.schema"
	aggregateModule   = "docmeta.aggregate"
	pipelineModule    = "docmeta.pipeline"
	renderModule      = "docmeta.render"
)

const (
	fieldDocumentPath   = "document_path"
	fieldDocumentFormat = "format"
	fieldPipelineRun    = "run_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// FrontmatterLogger returns the logger namespace reserved for frontmatter extraction.
func FrontmatterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, frontmatterModule)
}

// SchemaLogger returns the logger namespace reserved for schema and derivation services.
func SchemaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, schemaModule)
}

// AggregateLogger returns the logger namespace reserved for aggregation services.
func AggregateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, aggregateModule)
}

// PipelineLogger returns the logger namespace reserved for transformation runs.
func PipelineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pipelineModule)
}

// RenderLogger returns the logger namespace reserved for template rendering.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// WithDocumentContext enriches the provided logger with common document fields
// such as file path, frontmatter format, and pipeline run ID. Empty values are
// ignored.
func WithDocumentContext(logger interfaces.Logger, path, format, runID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(format); trimmed != "" {
		fields[fieldDocumentFormat] = trimmed
	}
	if trimmed := strings.TrimSpace(runID); trimmed != "" {
		fields[fieldPipelineRun] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
