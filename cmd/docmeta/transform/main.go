package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-docmeta/cmd/docmeta/internal/bootstrap"
	transformcmd "github.com/goliatone/go-docmeta/internal/commands/transform"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runTransform(os.Args[1:]); err != nil {
		log.Fatalf("docmeta transform: %v", err)
	}
}

func runTransform(args []string) error {
	fs := flag.NewFlagSet("docmeta-transform", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	schemaPath := fs.String("schema", "", "Path to the schema definition file (YAML or JSON)")
	basePath := fs.String("base-properties", "", "Path to a base properties file merged under the result")
	templatePath := fs.String("template", "", "Template applied to the aggregated result")
	itemsTemplatePath := fs.String("items-template", "", "Template applied to each frontmatter part item")
	format := fs.String("format", "json", "Output format: json, yaml, or markdown")
	outputPath := fs.String("output", "", "Write the rendered result to this path instead of stdout")
	requiredFields := fs.String("required-fields", "", "Comma separated frontmatter fields every document must carry")
	logLevel := fs.String("log-level", "", "Enable logging at the given level (debug, info, warn, error)")
	verbose := fs.Bool("verbose", false, "Enable info-level logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		LogLevel:   *logLevel,
		Verbose:    *verbose,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := transformcmd.NewTransformHandler(module.Deps)
	cmd := transformcmd.TransformCommand{
		ContentDir:         *contentDir,
		Pattern:            *pattern,
		SchemaPath:         *schemaPath,
		BasePropertiesPath: *basePath,
		TemplatePath:       *templatePath,
		ItemsTemplatePath:  *itemsTemplatePath,
		Format:             *format,
		OutputPath:         *outputPath,
		RequiredFields:     bootstrap.SplitFields(*requiredFields),
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute transform command: %w", err)
	}

	return nil
}
