package transformcmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docmeta/internal/commands"
	"github.com/goliatone/go-docmeta/internal/document"
	"github.com/goliatone/go-docmeta/internal/logging"
	"github.com/goliatone/go-docmeta/internal/pipeline"
	"github.com/goliatone/go-docmeta/internal/render"
	"github.com/goliatone/go-docmeta/internal/schema"
	"github.com/goliatone/go-docmeta/internal/validate"
	"github.com/goliatone/go-docmeta/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	transformOperation = "transform.run"
	inspectOperation   = "transform.inspect"
)

// ErrPipelineRequired is returned when a handler is constructed without the
// services it orchestrates.
var ErrPipelineRequired = errors.New("transform command: pipeline service is required")

var (
	_ command.Commander[TransformCommand] = (*TransformHandler)(nil)
	_ command.Commander[InspectCommand]   = (*InspectHandler)(nil)
)

// Dependencies lists the collaborators transform handlers execute against.
type Dependencies struct {
	Pipeline pipeline.Service
	Renderer render.Service
	Reader   interfaces.FileReader
	Writer   interfaces.FileWriter
	Logger   interfaces.Logger
	// Output receives rendered results when a command has no output path.
	Output io.Writer
}

// TransformHandler orchestrates full pipeline runs via the shared command
// handler foundation.
type TransformHandler struct {
	inner *commands.Handler[TransformCommand]
}

// NewTransformHandler creates a handler bound to the supplied services.
func NewTransformHandler(deps Dependencies, opts ...commands.HandlerOption[TransformCommand]) *TransformHandler {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg TransformCommand) error {
		if deps.Pipeline == nil || deps.Renderer == nil || deps.Reader == nil {
			return ErrPipelineRequired
		}

		def, err := loadDefinition(ctx, deps.Reader, msg.SchemaPath)
		if err != nil {
			return err
		}

		base, err := loadBaseProperties(ctx, deps.Reader, msg.BasePropertiesPath)
		if err != nil {
			return err
		}

		result, err := deps.Pipeline.Transform(ctx, pipeline.TransformRequest{
			ContentDir:     msg.ContentDir,
			Pattern:        msg.Pattern,
			Definition:     def,
			BaseProperties: base,
			RequiredFields: msg.RequiredFields,
		})
		if err != nil {
			return err
		}

		for _, warning := range result.Warnings {
			logger.Warn("transform.command.warning", "warning", warning)
		}

		output, err := deps.Renderer.Render(ctx, result.Data, render.Descriptor{
			Path:   msg.TemplatePath,
			Format: render.Format(msg.Format),
		})
		if err != nil {
			return err
		}

		if strings.TrimSpace(msg.ItemsTemplatePath) != "" {
			items, err := deps.Pipeline.CollectPartItems(ctx, result.Data, def)
			if err != nil {
				return err
			}
			for _, warning := range items.Warnings {
				logger.Warn("transform.command.part_warning", "warning", warning)
			}

			rendered, err := deps.Renderer.RenderItems(ctx, items.Items, render.Descriptor{
				Path:   msg.ItemsTemplatePath,
				Format: render.Format(msg.Format),
			})
			if err != nil {
				return err
			}
			output += strings.Join(rendered, "")
		}

		if err := writeOutput(ctx, deps, msg.OutputPath, output); err != nil {
			return err
		}

		logging.WithFields(logger, map[string]any{
			"run_id":    result.RunID.String(),
			"processed": result.DocumentsProcessed,
			"failed":    result.DocumentsFailed,
			"warnings":  len(result.Warnings),
		}).Info("transform.command.completed")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[TransformCommand]{
		commands.WithLogger[TransformCommand](logger),
		commands.WithOperation[TransformCommand](transformOperation),
		commands.WithMessageFields[TransformCommand](func(msg TransformCommand) map[string]any {
			return map[string]any{"content_dir": msg.ContentDir, "schema": msg.SchemaPath}
		}),
		commands.WithTelemetry[TransformCommand](commands.DefaultTelemetry[TransformCommand](logger)),
	}, opts...)

	return &TransformHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *TransformHandler) Execute(ctx context.Context, msg TransformCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InspectReport is the serialized outcome of a single-document inspection.
type InspectReport struct {
	Path   string          `json:"path"`
	Format string          `json:"format"`
	Fields map[string]any  `json:"fields,omitempty"`
	Body   int             `json:"body_bytes"`
	Report validate.Report `json:"report"`
}

// InspectHandler extracts and validates a single document.
type InspectHandler struct {
	inner *commands.Handler[InspectCommand]
}

// NewInspectHandler creates a handler bound to the supplied reader.
func NewInspectHandler(deps Dependencies, opts ...commands.HandlerOption[InspectCommand]) *InspectHandler {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg InspectCommand) error {
		if deps.Reader == nil {
			return ErrPipelineRequired
		}

		source, err := deps.Reader.ReadFile(ctx, msg.Path)
		if err != nil {
			return err
		}

		doc, err := document.Build(msg.Path, source, time.Time{})
		if err != nil {
			return err
		}

		report := validate.Report{Valid: true}
		if len(msg.RequiredFields) > 0 {
			report = validate.RequiredFields(doc.Data, msg.RequiredFields)
		}

		inspection := InspectReport{
			Path:   msg.Path,
			Format: string(doc.Format),
			Fields: doc.Data.Fields(),
			Body:   len(doc.Body),
			Report: report,
		}

		encoded, err := json.MarshalIndent(inspection, "", "  ")
		if err != nil {
			return fmt.Errorf("transform command: encode report: %w", err)
		}

		if deps.Output != nil {
			fmt.Fprintln(deps.Output, string(encoded))
		}

		if !report.Valid {
			return fmt.Errorf("transform command: %s failed validation: %s", msg.Path, strings.Join(report.Errors, "; "))
		}
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[InspectCommand]{
		commands.WithLogger[InspectCommand](logger),
		commands.WithOperation[InspectCommand](inspectOperation),
		commands.WithMessageFields[InspectCommand](func(msg InspectCommand) map[string]any {
			return map[string]any{"path": msg.Path}
		}),
	}, opts...)

	return &InspectHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *InspectHandler) Execute(ctx context.Context, msg InspectCommand) error {
	return h.inner.Execute(ctx, msg)
}

func loadDefinition(ctx context.Context, reader interfaces.FileReader, path string) (*schema.Definition, error) {
	source, err := reader.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("transform command: read schema %s: %w", path, err)
	}
	def, err := schema.ParseDefinition(source)
	if err != nil {
		return nil, fmt.Errorf("transform command: schema %s: %w", path, err)
	}
	return def, nil
}

func loadBaseProperties(ctx context.Context, reader interfaces.FileReader, path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}

	source, err := reader.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("transform command: read base properties %s: %w", path, err)
	}

	var base map[string]any
	if err := yaml.Unmarshal(source, &base); err != nil {
		return nil, fmt.Errorf("transform command: base properties %s: %w", path, err)
	}
	return base, nil
}

func writeOutput(ctx context.Context, deps Dependencies, path, output string) error {
	if strings.TrimSpace(path) == "" {
		if deps.Output != nil {
			_, err := io.WriteString(deps.Output, output)
			return err
		}
		return nil
	}
	if deps.Writer == nil {
		return fmt.Errorf("transform command: output path %s set but no file writer configured", path)
	}
	return deps.Writer.WriteFile(ctx, path, []byte(output))
}
