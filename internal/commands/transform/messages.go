// Package transformcmd exposes the transformation pipeline as go-command
// messages so CLI binaries and host applications share one execution path.
package transformcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	transformMessageType = "docmeta.transform.run"
	inspectMessageType   = "docmeta.transform.inspect"
)

// TransformCommand runs the full pipeline: discover documents under
// ContentDir, validate them, aggregate against the schema definition at
// SchemaPath, and render the result. An empty OutputPath prints to the
// handler's output writer instead of a file.
type TransformCommand struct {
	// ContentDir selects the filesystem root to scan for Markdown documents.
	ContentDir string `json:"content_dir"`
	// Pattern is the glob applied when discovering documents.
	Pattern string `json:"pattern,omitempty"`
	// SchemaPath locates the schema definition file (YAML or JSON).
	SchemaPath string `json:"schema_path"`
	// BasePropertiesPath optionally locates a YAML/JSON file deep-merged
	// under the aggregated result.
	BasePropertiesPath string `json:"base_properties_path,omitempty"`
	// TemplatePath optionally renders the result through a template.
	TemplatePath string `json:"template_path,omitempty"`
	// ItemsTemplatePath optionally renders each frontmatter-part item.
	ItemsTemplatePath string `json:"items_template_path,omitempty"`
	// Format selects the output serialization: json, yaml, or markdown.
	Format string `json:"format,omitempty"`
	// OutputPath writes the rendered result to a file when set.
	OutputPath string `json:"output_path,omitempty"`
	// RequiredFields lists frontmatter fields every document must carry.
	RequiredFields []string `json:"required_fields,omitempty"`
}

// Type implements command.Message.
func (TransformCommand) Type() string { return transformMessageType }

// Validate ensures the command carries enough input for a run.
func (cmd TransformCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ContentDir, validation.Required, validation.By(nonBlank("docmeta.transform.run.content_dir_required", "content dir is required"))),
		validation.Field(&cmd.SchemaPath, validation.Required, validation.By(nonBlank("docmeta.transform.run.schema_path_required", "schema path is required"))),
	)
}

// InspectCommand extracts and validates a single document, reporting the
// detected format, the parsed fields, and the validation outcome.
type InspectCommand struct {
	// Path locates the Markdown document to inspect.
	Path string `json:"path"`
	// RequiredFields lists frontmatter fields the document must carry.
	RequiredFields []string `json:"required_fields,omitempty"`
}

// Type implements command.Message.
func (InspectCommand) Type() string { return inspectMessageType }

// Validate ensures a document path is present before handlers execute.
func (cmd InspectCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(nonBlank("docmeta.transform.inspect.path_required", "path is required"))),
	)
}

func nonBlank(code, message string) func(any) error {
	return func(value any) error {
		if text, ok := value.(string); ok && strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
