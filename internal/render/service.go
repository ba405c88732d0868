// Package render turns aggregated frontmatter into output text. JSON and
// YAML serialize directly or through a template; markdown always goes
// through a template because it has no direct serialization form.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docmeta/internal/frontmatter"
	"github.com/goliatone/go-docmeta/internal/logging"
	"github.com/goliatone/go-docmeta/pkg/interfaces"
)

// Format identifies the output serialization.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Descriptor selects how a render run produces output. Path locates a
// template file; when empty, JSON and YAML serialize the data directly.
type Descriptor struct {
	Path   string
	Format Format
}

// Service describes the template rendering contract.
type Service interface {
	Render(ctx context.Context, data *frontmatter.Data, desc Descriptor) (string, error)
	RenderItems(ctx context.Context, items []*frontmatter.Data, desc Descriptor) ([]string, error)
}

// Dependencies lists the collaborators required by the renderer.
type Dependencies struct {
	Reader interfaces.FileReader
	Logger interfaces.Logger
}

// NewService wires a renderer with the provided dependencies.
func NewService(deps Dependencies) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{deps: deps}
}

type service struct {
	deps Dependencies
}

// Render produces output text for the aggregated data. With a template path
// the template's output is the result regardless of format; without one,
// JSON and YAML serialize the fields directly and markdown fails.
func (s *service) Render(ctx context.Context, data *frontmatter.Data, desc Descriptor) (string, error) {
	format, err := normalizeFormat(desc.Format)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", fmt.Errorf("render: data is required")
	}

	if strings.TrimSpace(desc.Path) != "" {
		return s.executeTemplate(ctx, desc.Path, data.Fields())
	}

	switch format {
	case FormatJSON:
		encoded, err := json.MarshalIndent(data.Fields(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("render: encode json: %w", err)
		}
		return string(encoded) + "\n", nil
	case FormatYAML:
		encoded, err := yaml.Marshal(data.Fields())
		if err != nil {
			return "", fmt.Errorf("render: encode yaml: %w", err)
		}
		return string(encoded), nil
	default:
		return "", ErrTemplateRequired
	}
}

// RenderItems renders each item through the descriptor's template, one
// output per item, in input order. Items rendering always needs a template.
func (s *service) RenderItems(ctx context.Context, items []*frontmatter.Data, desc Descriptor) ([]string, error) {
	if strings.TrimSpace(desc.Path) == "" {
		return nil, ErrTemplateRequired
	}

	tmpl, err := s.loadTemplate(ctx, desc.Path)
	if err != nil {
		return nil, err
	}

	outputs := make([]string, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w: item %d is nil", ErrTemplateFailed, i)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, item.Fields()); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrTemplateFailed, i, err)
		}
		outputs = append(outputs, buf.String())
	}

	return outputs, nil
}

func (s *service) executeTemplate(ctx context.Context, path string, fields map[string]any) (string, error) {
	tmpl, err := s.loadTemplate(ctx, path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, fields); err != nil {
		return "", fmt.Errorf("%w: execute %s: %v", ErrTemplateFailed, path, err)
	}
	return buf.String(), nil
}

func (s *service) loadTemplate(ctx context.Context, path string) (*template.Template, error) {
	if s.deps.Reader == nil {
		return nil, fmt.Errorf("%w: no file reader configured", ErrTemplateFailed)
	}

	source, err := s.deps.Reader.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", ErrTemplateFailed, path, err)
	}

	tmpl, err := template.New(filepath.Base(path)).
		Option("missingkey=error").
		Funcs(templateFuncs()).
		Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrTemplateFailed, path, err)
	}

	return tmpl, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"json": func(value any) (string, error) {
			encoded, err := json.Marshal(value)
			return string(encoded), err
		},
		"yaml": func(value any) (string, error) {
			encoded, err := yaml.Marshal(value)
			return strings.TrimRight(string(encoded), "\n"), err
		},
		"join": func(values []any, sep string) string {
			parts := make([]string, len(values))
			for i, value := range values {
				parts[i] = fmt.Sprint(value)
			}
			return strings.Join(parts, sep)
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"trim":  strings.TrimSpace,
	}
}

func normalizeFormat(format Format) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(string(format)))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
